package textlump

import "iter"

// Source is one metadata grammar. Apply parses the text of its lump and
// returns the titles it found for slots in known, in the order they appear.
// Later patches for the same slot override earlier ones.
type Source interface {
	Lump() string
	Apply(text string, known map[string]struct{}) []Entry
}

type entrySource struct {
	lump  string
	parse func(string) iter.Seq[Entry]
}

func (s entrySource) Lump() string {
	return s.lump
}

func (s entrySource) Apply(text string, known map[string]struct{}) []Entry {
	var patches []Entry
	for entry := range s.parse(text) {
		if _, ok := known[entry.Slot]; !ok {
			continue
		}
		patches = append(patches, entry)
	}
	return patches
}

// Dehacked returns the DEHACKED source.
func Dehacked() Source {
	return entrySource{lump: "DEHACKED", parse: ParseDehacked}
}

// Mapinfo returns the MAPINFO source.
func Mapinfo() Source {
	return entrySource{lump: "MAPINFO", parse: ParseMapinfo}
}

// Umapinfo returns the UMAPINFO source.
func Umapinfo() Source {
	return entrySource{lump: "UMAPINFO", parse: func(text string) iter.Seq[Entry] {
		return ParseUmapinfo(Tokens(text))
	}}
}

// Sources returns the three sources in ascending priority. A caller that
// applies them in this order lets UMAPINFO override MAPINFO and MAPINFO
// override DEHACKED.
func Sources() []Source {
	return []Source{Dehacked(), Mapinfo(), Umapinfo()}
}
