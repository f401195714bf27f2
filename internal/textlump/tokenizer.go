package textlump

import (
	"iter"
	"strings"
	"unicode"
)

func isSymbol(c byte) bool {
	switch c {
	case SymbolOpenBrace, SymbolCloseBrace, SymbolEquals, SymbolComma:
		return true
	}
	return false
}

// Tokens returns a single-pass token stream over text. Each input line
// (split on '\n') ends with a newline symbol, blank lines included.
//
// Within a line: a leading '"' with a matching '"' later on the same line
// yields the quoted contents as one text token; a leading '{', '}', '=' or
// ',' yields a symbol; anything else yields the run of bytes up to the next
// whitespace. An unmatched quote is treated as ordinary text.
func Tokens(text string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for line := range strings.SplitSeq(text, "\n") {
			rest := strings.TrimSpace(line)
			for rest != "" {
				var tok Token
				tok, rest = nextToken(rest)
				if !yield(tok) {
					return
				}
				rest = strings.TrimSpace(rest)
			}
			if !yield(Symbol(SymbolNewline)) {
				return
			}
		}
	}
}

// nextToken consumes one token from a non-empty, left-trimmed line.
func nextToken(line string) (Token, string) {
	if line[0] == '"' {
		if end := strings.IndexByte(line[1:], '"'); end >= 0 {
			return Text(line[1 : end+1]), line[end+2:]
		}
	}
	if isSymbol(line[0]) {
		return Symbol(rune(line[0])), line[1:]
	}
	end := strings.IndexFunc(line, unicode.IsSpace)
	if end < 0 {
		return Text(line), ""
	}
	return Text(line[:end]), line[end:]
}

// Collect drains a token stream into a slice.
func Collect(tokens iter.Seq[Token]) []Token {
	var out []Token
	for tok := range tokens {
		out = append(out, tok)
	}
	return out
}
