package testsupport

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// WADBuilder assembles synthetic archives for tests. Lumps are laid out
// after the header in the order they were added, followed by the directory.
type WADBuilder struct {
	kind    string
	entries []builderEntry
}

type builderEntry struct {
	name string
	data []byte

	// rawOffset/rawSize override the computed directory values when set.
	rawOffset *uint32
	rawSize   *uint32
}

// NewWAD returns a builder for a PWAD archive.
func NewWAD() *WADBuilder {
	return &WADBuilder{kind: "PWAD"}
}

// Kind overrides the four-byte identification tag.
func (b *WADBuilder) Kind(tag string) *WADBuilder {
	b.kind = tag
	return b
}

// Lump appends a lump with the given payload.
func (b *WADBuilder) Lump(name string, data []byte) *WADBuilder {
	b.entries = append(b.entries, builderEntry{name: name, data: data})
	return b
}

// Text appends a lump whose payload is text.
func (b *WADBuilder) Text(name, text string) *WADBuilder {
	return b.Lump(name, []byte(text))
}

// Marker appends an empty lump.
func (b *WADBuilder) Marker(name string) *WADBuilder {
	return b.Lump(name, nil)
}

// Map appends a map marker followed by the five mandatory map data lumps
// and the usual node lumps.
func (b *WADBuilder) Map(slot string) *WADBuilder {
	b.Marker(slot)
	for _, name := range []string{"THINGS", "LINEDEFS", "SIDEDEFS", "VERTEXES", "SEGS", "SSECTORS", "NODES", "SECTORS", "REJECT", "BLOCKMAP"} {
		b.Lump(name, []byte{0, 0, 0, 0})
	}
	return b
}

// BadRange appends a lump entry whose directory values are written as given
// without any payload, so the entry can point outside the archive.
func (b *WADBuilder) BadRange(name string, offset, size uint32) *WADBuilder {
	b.entries = append(b.entries, builderEntry{name: name, rawOffset: &offset, rawSize: &size})
	return b
}

// Bytes renders the archive.
func (b *WADBuilder) Bytes() []byte {
	payloadSize := 0
	for _, entry := range b.entries {
		payloadSize += len(entry.data)
	}
	dirOffset := 12 + payloadSize
	out := make([]byte, dirOffset+16*len(b.entries))

	tag := []byte(b.kind + "\x00\x00\x00\x00")
	copy(out[0:4], tag[:4])
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(b.entries)))
	binary.LittleEndian.PutUint32(out[8:12], uint32(dirOffset))

	pos := 12
	for i, entry := range b.entries {
		offset := uint32(pos)
		size := uint32(len(entry.data))
		copy(out[pos:], entry.data)
		pos += len(entry.data)
		if entry.rawOffset != nil {
			offset = *entry.rawOffset
		}
		if entry.rawSize != nil {
			size = *entry.rawSize
		}

		base := dirOffset + i*16
		binary.LittleEndian.PutUint32(out[base:base+4], offset)
		binary.LittleEndian.PutUint32(out[base+4:base+8], size)
		name := make([]byte, 8)
		copy(name, entry.name)
		copy(out[base+8:base+16], name)
	}
	return out
}

// WriteWAD renders b to dir/name and returns the full path.
func WriteWAD(t testing.TB, dir, name string, b *WADBuilder) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
