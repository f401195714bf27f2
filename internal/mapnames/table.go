package mapnames

import (
	"sort"
	"strings"
)

// Table maps upper-case slot identifiers to display titles.
type Table map[string]string

// Slots returns the table keys in sorted order.
func (t Table) Slots() []string {
	slots := make([]string, 0, len(t))
	for slot := range t {
		slots = append(slots, slot)
	}
	sort.Strings(slots)
	return slots
}

// Normalize rewrites every title in place: one pair of surrounding double
// quotes is removed, and titles that do not mention their slot
// (case-insensitively) are prefixed with "<slot>: ". A second pass changes
// nothing unless a title was wrapped in two or more quote pairs and already
// named its slot.
func (t Table) Normalize() {
	for slot, name := range t {
		t[slot] = stripQuotes(name)
	}
	for slot, name := range t {
		if !strings.Contains(strings.ToUpper(name), strings.ToUpper(slot)) {
			t[slot] = slot + ": " + name
		}
	}
}

// stripQuotes removes a single matching outer quote pair.
func stripQuotes(name string) string {
	if len(name) >= 2 && name[0] == '"' && name[len(name)-1] == '"' {
		return name[1 : len(name)-1]
	}
	return name
}
