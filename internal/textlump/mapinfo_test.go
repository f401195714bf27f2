package textlump

import (
	"reflect"
	"testing"
)

func collectEntries(seq func(func(Entry) bool)) []Entry {
	var out []Entry
	for entry := range seq {
		out = append(out, entry)
	}
	return out
}

func TestParseMapinfo(t *testing.T) {
	input := `
// ZDoom MAPINFO
map MAP01 "Foyer"
MAP map02 "Courtyard" {
	music = "D_RUNNIN"
}
map MAP03 Gallery {
map MAP04 lookup HUSTR_4
map MAP05 "lookup table"
map MAP06
map MAP07 NoBrace
	map E1M1 "Hangar"
mapinfo MAP08 "Not a map line"
`
	got := collectEntries(ParseMapinfo(input))
	want := []Entry{
		{Slot: "MAP01", Name: "Foyer"},
		{Slot: "MAP02", Name: "Courtyard"},
		{Slot: "MAP03", Name: "Gallery"},
		{Slot: "E1M1", Name: "Hangar"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected entries:\n got %v\nwant %v", got, want)
	}
}

func TestParseDehacked(t *testing.T) {
	input := "Patch File for DeHackEd v3.0\n" +
		"[STRINGS]\n" +
		"HUSTR_1 = Entryway\n" +
		"HUSTR_12 = The Factory\n" +
		"HUSTR_123=Deep\n" +
		"HUSTR_E1M1 = Hangar\n" +
		"HUSTR_5\n" +
		"HUSTR_6 =   \n" +
		"HUSTR_7 = a = b\n"
	got := collectEntries(ParseDehacked(input))
	want := []Entry{
		{Slot: "MAP01", Name: "Entryway"},
		{Slot: "MAP12", Name: "The Factory"},
		{Slot: "MAP123", Name: "Deep"},
		{Slot: "MAP07", Name: "a = b"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected entries:\n got %v\nwant %v", got, want)
	}
}

func TestSourcesOnlyPatchKnownSlots(t *testing.T) {
	known := map[string]struct{}{"MAP01": {}}
	tests := []struct {
		source Source
		text   string
	}{
		{Dehacked(), "HUSTR_1 = A\nHUSTR_2 = B"},
		{Mapinfo(), "map MAP01 \"A\"\nmap MAP02 \"B\""},
		{Umapinfo(), "map MAP01 { levelname = \"A\" }\nmap MAP02 { levelname = \"B\" }"},
	}
	for _, tt := range tests {
		got := tt.source.Apply(tt.text, known)
		want := []Entry{{Slot: "MAP01", Name: "A"}}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("%s: got %v want %v", tt.source.Lump(), got, want)
		}
	}
}

func TestSourcesPriorityOrder(t *testing.T) {
	var lumps []string
	for _, source := range Sources() {
		lumps = append(lumps, source.Lump())
	}
	want := []string{"DEHACKED", "MAPINFO", "UMAPINFO"}
	if !reflect.DeepEqual(lumps, want) {
		t.Fatalf("got %v want %v", lumps, want)
	}
}
