package wad

import (
	"errors"
	"strings"
)

// ErrFormat marks every fatal container-level parse failure.
var ErrFormat = errors.New("wad format error")

// ErrLumpRange is returned when a directory entry points outside the buffer.
var ErrLumpRange = errors.New("lump range exceeds archive")

// Reasons reported by FormatError.
const (
	ReasonTooSmall           = "too small"
	ReasonBadMagic           = "bad magic"
	ReasonTruncatedDirectory = "truncated directory"
	ReasonNegativeLumpCount  = "negative lump count"
	ReasonNegativeDirOffset  = "negative directory offset"
)

// FormatError describes why an archive was rejected. It matches ErrFormat
// with errors.Is.
type FormatError struct {
	Reason string
	Detail string
}

func (e *FormatError) Error() string {
	var b strings.Builder
	b.WriteString("wad: ")
	b.WriteString(e.Reason)
	if detail := strings.TrimSpace(e.Detail); detail != "" {
		b.WriteString(": ")
		b.WriteString(detail)
	}
	return b.String()
}

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// ErrorKind classifies format failures as validation errors so callers
// can tell bad input apart from I/O failures.
func (e *FormatError) ErrorKind() string {
	return "validation"
}

func formatError(reason, detail string) error {
	return &FormatError{Reason: reason, Detail: detail}
}
