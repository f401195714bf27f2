package textlump

import (
	"iter"
	"strings"
)

const mapinfoPrefix = "map "

// ParseMapinfo yields slot titles from ZDoom-style MAPINFO definitions:
//
//	map MAP01 "Entryway"
//	map MAP01 Entryway {
//
// Definitions that use "lookup" to reference the string table are skipped.
// Hexen, Eternity and Doomsday variants are not recognized.
func ParseMapinfo(text string) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for line := range strings.SplitSeq(text, "\n") {
			entry, ok := parseMapinfoLine(line)
			if !ok {
				continue
			}
			if !yield(entry) {
				return
			}
		}
	}
}

func parseMapinfoLine(line string) (Entry, bool) {
	line = strings.TrimSpace(line)
	if len(line) < len(mapinfoPrefix) || !strings.EqualFold(line[:len(mapinfoPrefix)], mapinfoPrefix) {
		return Entry{}, false
	}
	slot, rest, _ := strings.Cut(line[len(mapinfoPrefix):], " ")
	slot = strings.ToUpper(strings.TrimSpace(slot))
	if slot == "" || strings.Contains(rest, "lookup") {
		return Entry{}, false
	}
	rest = strings.TrimSpace(rest)

	var name string
	switch {
	case strings.HasPrefix(rest, `"`):
		name = rest[1:]
		if end := strings.IndexByte(name, '"'); end >= 0 {
			name = name[:end]
		}
	case strings.Contains(rest, "{"):
		name, _, _ = strings.Cut(rest, "{")
		name = strings.TrimSpace(name)
	}
	if name == "" {
		return Entry{}, false
	}
	return Entry{Slot: slot, Name: name}, true
}
