package textlump

import (
	"iter"
	"strings"
)

const hustrPrefix = "HUSTR_"

// ParseDehacked yields map titles from DEHACKED/BEX string replacements of
// the form "HUSTR_<n> = <name>". HUSTR_1 maps to MAP01, HUSTR_32 to MAP32.
// Keys whose suffix is not a decimal number are skipped.
func ParseDehacked(text string) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for line := range strings.SplitSeq(text, "\n") {
			if !strings.Contains(line, hustrPrefix) {
				continue
			}
			key, value, found := strings.Cut(line, "=")
			if !found {
				continue
			}
			slot, ok := hustrSlot(strings.TrimSpace(key))
			if !ok {
				continue
			}
			name := strings.TrimSpace(value)
			if name == "" {
				continue
			}
			if !yield(Entry{Slot: slot, Name: name}) {
				return
			}
		}
	}
}

// hustrSlot converts "HUSTR_<n>" into "MAP<n>" with n left-padded to two
// digits. Longer numbers are kept as written.
func hustrSlot(key string) (string, bool) {
	idx := strings.Index(key, hustrPrefix)
	if idx < 0 {
		return "", false
	}
	number := key[idx+len(hustrPrefix):]
	if number == "" {
		return "", false
	}
	for i := 0; i < len(number); i++ {
		if number[i] < '0' || number[i] > '9' {
			return "", false
		}
	}
	if len(number) < 2 {
		number = strings.Repeat("0", 2-len(number)) + number
	}
	return "MAP" + number, true
}
