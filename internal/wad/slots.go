package wad

import "strings"

type mapLumpRole int

const (
	roleOptional mapLumpRole = iota
	roleMandatory
)

// mapDataLumps lists the lump names that follow a classic (binary format)
// map marker. Only the mandatory ones count toward confirming a slot.
var mapDataLumps = map[string]mapLumpRole{
	"THINGS":   roleMandatory,
	"LINEDEFS": roleMandatory,
	"SIDEDEFS": roleMandatory,
	"VERTEXES": roleMandatory,
	"SECTORS":  roleMandatory,
	"SEGS":     roleOptional,
	"SSECTORS": roleOptional,
	"NODES":    roleOptional,
	"REJECT":   roleOptional,
	"BLOCKMAP": roleOptional,
}

var mandatoryMapLumps = func() int {
	n := 0
	for _, role := range mapDataLumps {
		if role == roleMandatory {
			n++
		}
	}
	return n
}()

// IsMapDataLump reports whether name is one of the lumps that make up a
// binary-format map.
func IsMapDataLump(name string) bool {
	_, ok := mapDataLumps[strings.ToUpper(name)]
	return ok
}

// DetectSlots walks the directory and returns, in directory order, the
// upper-cased names of lumps that are immediately followed by a run of map
// data lumps containing every mandatory one. The first lump outside the
// recognized set becomes the next candidate, so markers placed back to back
// are all examined.
func DetectSlots(lumps []Lump) []string {
	var slots []string
	seen := make(map[string]struct{})

	i := 0
	for i < len(lumps) {
		candidate := strings.ToUpper(lumps[i].Name)
		mandatory := make(map[string]struct{}, mandatoryMapLumps)

		j := i + 1
		for ; j < len(lumps); j++ {
			name := strings.ToUpper(lumps[j].Name)
			role, ok := mapDataLumps[name]
			if !ok {
				break
			}
			if role == roleMandatory {
				mandatory[name] = struct{}{}
			}
		}

		if len(mandatory) == mandatoryMapLumps {
			if _, dup := seen[candidate]; !dup {
				seen[candidate] = struct{}{}
				slots = append(slots, candidate)
			}
		}
		i = j
	}
	return slots
}
