package wad

import "strings"

// Metadata lump names consulted by the name extractor.
const (
	LumpDehacked = "DEHACKED"
	LumpMapinfo  = "MAPINFO"
	LumpUmapinfo = "UMAPINFO"
)

var auxLumpNames = map[string]struct{}{
	LumpDehacked: {},
	LumpMapinfo:  {},
	LumpUmapinfo: {},
}

// LocateAux returns the metadata lumps present in the directory keyed by
// their upper-cased name. When a name repeats, the later entry wins.
func LocateAux(lumps []Lump) map[string]Lump {
	found := make(map[string]Lump, len(auxLumpNames))
	for _, lump := range lumps {
		name := strings.ToUpper(lump.Name)
		if _, ok := auxLumpNames[name]; ok {
			found[name] = lump
		}
	}
	return found
}
