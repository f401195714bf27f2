package wad

import (
	"fmt"
	"strings"
)

// Archive is a parsed header and directory over a caller-owned buffer.
type Archive struct {
	Header Header
	Lumps  []Lump

	view ByteView
}

// Open parses the header and directory of data. Any error matches
// ErrFormat.
func Open(data []byte) (*Archive, error) {
	header, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	lumps, err := ParseDirectory(data, header)
	if err != nil {
		return nil, err
	}
	return &Archive{Header: header, Lumps: lumps, view: NewByteView(data)}, nil
}

// Size returns the byte length of the underlying buffer.
func (a *Archive) Size() int64 {
	return a.view.Len()
}

// LumpData returns the payload of lump, or ErrLumpRange when the directory
// entry points outside the buffer.
func (a *Archive) LumpData(lump Lump) ([]byte, error) {
	data, err := a.view.Slice(lump.Offset, lump.Size)
	if err != nil {
		return nil, fmt.Errorf("%w: %s at %d+%d in %d bytes", ErrLumpRange, lump.Name, lump.Offset, lump.Size, a.view.Len())
	}
	return data, nil
}

// Find returns the last lump named name (case-insensitive).
func (a *Archive) Find(name string) (Lump, bool) {
	for i := len(a.Lumps) - 1; i >= 0; i-- {
		if strings.EqualFold(a.Lumps[i].Name, name) {
			return a.Lumps[i], true
		}
	}
	return Lump{}, false
}

// Slots runs DetectSlots over the archive directory.
func (a *Archive) Slots() []string {
	return DetectSlots(a.Lumps)
}

// Aux runs LocateAux over the archive directory.
func (a *Archive) Aux() map[string]Lump {
	return LocateAux(a.Lumps)
}
