package textlump

import (
	"iter"
	"strings"
)

// Entry is one slot title reported by a parser.
type Entry struct {
	Slot string
	Name string
}

type umapState int

const (
	umapIdle umapState = iota
	umapAwaitingSlot
	umapInBlock
)

func (s umapState) String() string {
	switch s {
	case umapIdle:
		return "idle"
	case umapAwaitingSlot:
		return "awaiting_slot"
	case umapInBlock:
		return "in_block"
	default:
		return "unknown"
	}
}

// umapMachine is the UMAPINFO block recognizer. Inside a block it collects
// one "key = value" statement at a time; a statement ends at a newline or at
// the closing brace.
type umapMachine struct {
	state umapState
	slot  string

	key      []string
	value    []string
	inValue  bool
	hasEqual bool
}

// step advances the machine by one token and returns an entry when a
// levelname statement completes inside a block that has a slot.
func (m *umapMachine) step(tok Token) (Entry, bool) {
	switch m.state {
	case umapIdle:
		m.stepIdle(tok)
	case umapAwaitingSlot:
		m.stepAwaitingSlot(tok)
	case umapInBlock:
		return m.stepInBlock(tok)
	}
	return Entry{}, false
}

func (m *umapMachine) stepIdle(tok Token) {
	switch {
	case tok.Kind == TokenText && strings.EqualFold(tok.Text, "map"):
		m.state = umapAwaitingSlot
		m.slot = ""
	case tok.IsSymbol(SymbolOpenBrace):
		m.enterBlock("")
	}
}

func (m *umapMachine) stepAwaitingSlot(tok Token) {
	switch {
	case tok.Kind == TokenText:
		if m.slot == "" {
			m.slot = tok.Text
			return
		}
		if strings.EqualFold(tok.Text, "map") {
			m.slot = ""
			return
		}
		m.reset()
	case tok.IsSymbol(SymbolOpenBrace):
		m.enterBlock(m.slot)
	case tok.IsSymbol(SymbolNewline):
		// "map MAP01\n{" is the usual header layout, so a newline after the
		// slot keeps waiting for the brace. A newline before any slot
		// abandons the header.
		if m.slot == "" {
			m.reset()
		}
	default:
		m.reset()
	}
}

func (m *umapMachine) stepInBlock(tok Token) (Entry, bool) {
	switch {
	case tok.Kind == TokenText:
		if m.inValue {
			m.value = append(m.value, tok.Text)
		} else {
			m.key = append(m.key, tok.Text)
		}
	case tok.IsSymbol(SymbolEquals):
		if m.inValue || len(m.key) == 0 {
			m.clearStatement()
			return Entry{}, false
		}
		m.inValue = true
		m.hasEqual = true
	case tok.IsSymbol(SymbolNewline):
		entry, ok := m.finishStatement()
		return entry, ok
	case tok.IsSymbol(SymbolCloseBrace):
		entry, ok := m.finishStatement()
		m.reset()
		return entry, ok
	default:
		m.clearStatement()
	}
	return Entry{}, false
}

func (m *umapMachine) finishStatement() (Entry, bool) {
	defer m.clearStatement()
	if !m.hasEqual || m.slot == "" {
		return Entry{}, false
	}
	if !strings.EqualFold(strings.Join(m.key, " "), "levelname") {
		return Entry{}, false
	}
	value := strings.Join(m.value, " ")
	if value == "" {
		return Entry{}, false
	}
	return Entry{Slot: strings.ToUpper(m.slot), Name: value}, true
}

func (m *umapMachine) enterBlock(slot string) {
	m.state = umapInBlock
	m.slot = slot
	m.clearStatement()
}

func (m *umapMachine) clearStatement() {
	m.key = m.key[:0]
	m.value = m.value[:0]
	m.inValue = false
	m.hasEqual = false
}

func (m *umapMachine) reset() {
	m.state = umapIdle
	m.slot = ""
	m.clearStatement()
}

// ParseUmapinfo yields the levelname of every map block in token order.
// Malformed statements are dropped without ending the block.
func ParseUmapinfo(tokens iter.Seq[Token]) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		var m umapMachine
		for tok := range tokens {
			if entry, ok := m.step(tok); ok {
				if !yield(entry) {
					return
				}
			}
		}
	}
}
