package wad

import "fmt"

const (
	// HeaderSize is the byte length of the archive header.
	HeaderSize = 12
	// DirectoryEntrySize is the byte length of one directory entry.
	DirectoryEntrySize = 16
	// LumpNameSize is the width of the NUL-padded lump name field.
	LumpNameSize = 8
)

// Kind is the four-character archive identification tag.
type Kind string

const (
	KindIWAD Kind = "IWAD"
	KindPWAD Kind = "PWAD"
)

// Header is the parsed 12-byte archive header.
type Header struct {
	Kind            Kind
	LumpCount       int64
	DirectoryOffset int64
}

// ParseHeader validates the header at the start of data and checks that the
// directory it describes fits inside the buffer.
func ParseHeader(data []byte) (Header, error) {
	view := NewByteView(data)
	if view.Len() < HeaderSize {
		return Header{}, formatError(ReasonTooSmall, fmt.Sprintf("%d bytes, need at least %d", view.Len(), HeaderSize))
	}

	tag, err := view.String(0, 4)
	if err != nil {
		return Header{}, formatError(ReasonTooSmall, err.Error())
	}
	kind := Kind(tag)
	if kind != KindIWAD && kind != KindPWAD {
		return Header{}, formatError(ReasonBadMagic, fmt.Sprintf("identification %q", tag))
	}

	count, err := view.Int32(4)
	if err != nil {
		return Header{}, formatError(ReasonTooSmall, err.Error())
	}
	offset, err := view.Int32(8)
	if err != nil {
		return Header{}, formatError(ReasonTooSmall, err.Error())
	}
	if count < 0 {
		return Header{}, formatError(ReasonNegativeLumpCount, fmt.Sprintf("lump count %d", count))
	}
	if offset < 0 {
		return Header{}, formatError(ReasonNegativeDirOffset, fmt.Sprintf("directory offset %d", offset))
	}

	header := Header{
		Kind:            kind,
		LumpCount:       int64(count),
		DirectoryOffset: int64(offset),
	}
	if end := header.DirectoryEnd(); end > view.Len() {
		return Header{}, formatError(ReasonTruncatedDirectory,
			fmt.Sprintf("directory ends at %d, archive is %d bytes", end, view.Len()))
	}
	return header, nil
}

// DirectoryEnd returns the offset one past the last directory byte.
func (h Header) DirectoryEnd() int64 {
	return h.DirectoryOffset + h.LumpCount*DirectoryEntrySize
}
