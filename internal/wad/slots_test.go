package wad_test

import (
	"reflect"
	"testing"

	"wadmaps/internal/wad"
)

func lumps(names ...string) []wad.Lump {
	out := make([]wad.Lump, len(names))
	for i, name := range names {
		out[i] = wad.Lump{Index: i, Name: name}
	}
	return out
}

func TestDetectSlots(t *testing.T) {
	tests := []struct {
		name  string
		lumps []wad.Lump
		want  []string
	}{
		{
			name:  "minimal map",
			lumps: lumps("MAP01", "THINGS", "LINEDEFS", "SIDEDEFS", "VERTEXES", "SECTORS"),
			want:  []string{"MAP01"},
		},
		{
			name: "full map with node lumps",
			lumps: lumps("E1M1", "THINGS", "LINEDEFS", "SIDEDEFS", "VERTEXES", "SEGS",
				"SSECTORS", "NODES", "SECTORS", "REJECT", "BLOCKMAP"),
			want: []string{"E1M1"},
		},
		{
			name: "consecutive maps",
			lumps: lumps("MAP01", "THINGS", "LINEDEFS", "SIDEDEFS", "VERTEXES", "SECTORS",
				"MAP02", "THINGS", "LINEDEFS", "SIDEDEFS", "VERTEXES", "SECTORS"),
			want: []string{"MAP01", "MAP02"},
		},
		{
			name:  "missing mandatory lump",
			lumps: lumps("MAP01", "THINGS", "LINEDEFS", "SIDEDEFS", "VERTEXES", "SEGS"),
			want:  nil,
		},
		{
			name:  "run interrupted before completion",
			lumps: lumps("MAP01", "THINGS", "LINEDEFS", "PLAYPAL", "SIDEDEFS", "VERTEXES", "SECTORS"),
			want:  nil,
		},
		{
			name:  "interrupting lump becomes the candidate",
			lumps: lumps("MAP01", "THINGS", "MAP02", "THINGS", "LINEDEFS", "SIDEDEFS", "VERTEXES", "SECTORS"),
			want:  []string{"MAP02"},
		},
		{
			name:  "marker followed by marker",
			lumps: lumps("FOO", "MAP03", "THINGS", "LINEDEFS", "SIDEDEFS", "VERTEXES", "SECTORS", "ENDOOM"),
			want:  []string{"MAP03"},
		},
		{
			name:  "names are upper-cased",
			lumps: lumps("map07", "things", "linedefs", "sidedefs", "vertexes", "sectors"),
			want:  []string{"MAP07"},
		},
		{
			name:  "reordered mandatory lumps still count",
			lumps: lumps("MAP04", "SECTORS", "VERTEXES", "SIDEDEFS", "LINEDEFS", "THINGS"),
			want:  []string{"MAP04"},
		},
		{
			name:  "optional lumps alone",
			lumps: lumps("MAP05", "SEGS", "SSECTORS", "NODES", "REJECT", "BLOCKMAP"),
			want:  nil,
		},
		{
			name:  "empty directory",
			lumps: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wad.DetectSlots(tt.lumps)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("DetectSlots: got %v want %v", got, tt.want)
			}
		})
	}
}

func TestIsMapDataLump(t *testing.T) {
	for _, name := range []string{"THINGS", "blockmap", "Reject"} {
		if !wad.IsMapDataLump(name) {
			t.Fatalf("expected %q to be a map data lump", name)
		}
	}
	if wad.IsMapDataLump("MAP01") {
		t.Fatal("MAP01 is a marker, not map data")
	}
}

func TestLocateAuxLastOccurrenceWins(t *testing.T) {
	dir := []wad.Lump{
		{Index: 0, Name: "DEHACKED", Offset: 1},
		{Index: 1, Name: "MAPINFO", Offset: 2},
		{Index: 2, Name: "PLAYPAL", Offset: 3},
		{Index: 3, Name: "DEHACKED", Offset: 4},
	}
	aux := wad.LocateAux(dir)
	if len(aux) != 2 {
		t.Fatalf("expected 2 aux lumps, got %d", len(aux))
	}
	if aux[wad.LumpDehacked].Index != 3 {
		t.Fatalf("expected later DEHACKED to win, got index %d", aux[wad.LumpDehacked].Index)
	}
	if aux[wad.LumpMapinfo].Index != 1 {
		t.Fatalf("unexpected MAPINFO index %d", aux[wad.LumpMapinfo].Index)
	}
	if _, ok := aux[wad.LumpUmapinfo]; ok {
		t.Fatal("did not expect UMAPINFO")
	}
}
