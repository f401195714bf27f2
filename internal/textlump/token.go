package textlump

import "fmt"

// TokenKind distinguishes text from punctuation.
type TokenKind int

const (
	TokenText TokenKind = iota
	TokenSymbol
)

// Symbols emitted by the tokenizer.
const (
	SymbolOpenBrace  = '{'
	SymbolCloseBrace = '}'
	SymbolEquals     = '='
	SymbolComma      = ','
	SymbolNewline    = '\n'
)

// Token is either a Text token (a bare word or the contents of a quoted
// string) or a Symbol token.
type Token struct {
	Kind   TokenKind
	Text   string
	Symbol rune
}

// Text builds a text token.
func Text(s string) Token {
	return Token{Kind: TokenText, Text: s}
}

// Symbol builds a symbol token.
func Symbol(r rune) Token {
	return Token{Kind: TokenSymbol, Symbol: r}
}

// IsSymbol reports whether t is the symbol r.
func (t Token) IsSymbol(r rune) bool {
	return t.Kind == TokenSymbol && t.Symbol == r
}

func (t Token) String() string {
	if t.Kind == TokenText {
		return fmt.Sprintf("Text(%q)", t.Text)
	}
	if t.Symbol == SymbolNewline {
		return "Symbol(newline)"
	}
	return fmt.Sprintf("Symbol(%c)", t.Symbol)
}
