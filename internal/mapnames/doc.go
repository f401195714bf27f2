// Package mapnames recovers the map slots an archive defines and a display
// title for each.
//
// Extraction parses the container with package wad, seeds a Table with every
// detected slot, then applies the DEHACKED, MAPINFO and UMAPINFO sources from
// package textlump in that order so each later source overrides the earlier
// ones. Titles are finally normalized so each one names its slot.
//
// Only container format errors are returned. Missing, out-of-range or
// unparseable metadata lumps leave the affected slots with their identifier
// as the title.
package mapnames
