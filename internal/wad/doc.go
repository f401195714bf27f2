// Package wad parses the container layer of DOOM-engine resource archives.
//
// An archive is a 12-byte header followed by lump payloads and a flat
// directory of 16-byte entries. The package validates the header against the
// buffer length, reads the directory in order, and exposes the two directory
// scans the name extractor needs: positional map slot detection and the
// location of the optional metadata lumps (DEHACKED, MAPINFO, UMAPINFO).
//
// Directory offsets and lengths are not trusted. They are reported as read,
// and only Archive.LumpData checks them against the buffer, returning
// ErrLumpRange when a lump points outside it.
package wad
