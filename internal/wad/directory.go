package wad

import "fmt"

// Lump is one directory entry. Offset and Size are reported as stored and
// have not been checked against the archive length.
type Lump struct {
	Index  int
	Name   string
	Offset int64
	Size   int64
}

// End returns the offset one past the last payload byte.
func (l Lump) End() int64 {
	return l.Offset + l.Size
}

// ParseDirectory reads header.LumpCount entries starting at
// header.DirectoryOffset, preserving directory order.
func ParseDirectory(data []byte, header Header) ([]Lump, error) {
	view := NewByteView(data)
	lumps := make([]Lump, 0, header.LumpCount)
	for i := int64(0); i < header.LumpCount; i++ {
		base := header.DirectoryOffset + i*DirectoryEntrySize
		offset, err := view.Uint32(base)
		if err != nil {
			return nil, formatError(ReasonTruncatedDirectory, fmt.Sprintf("entry %d: %v", i, err))
		}
		size, err := view.Uint32(base + 4)
		if err != nil {
			return nil, formatError(ReasonTruncatedDirectory, fmt.Sprintf("entry %d: %v", i, err))
		}
		name, err := view.String(base+8, LumpNameSize)
		if err != nil {
			return nil, formatError(ReasonTruncatedDirectory, fmt.Sprintf("entry %d: %v", i, err))
		}
		lumps = append(lumps, Lump{
			Index:  int(i),
			Name:   name,
			Offset: int64(offset),
			Size:   int64(size),
		})
	}
	return lumps, nil
}
