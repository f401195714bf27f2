package textlump

import (
	"reflect"
	"testing"
)

func TestTokensQuotedMapHeader(t *testing.T) {
	got := Collect(Tokens(`map MAP01 "Entryway"`))
	want := []Token{Text("map"), Text("MAP01"), Text("Entryway"), Symbol(SymbolNewline)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tokens:\n got %v\nwant %v", got, want)
	}
}

func TestTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "symbols",
			input: "{ } = ,",
			want: []Token{
				Symbol(SymbolOpenBrace), Symbol(SymbolCloseBrace), Symbol(SymbolEquals), Symbol(SymbolComma),
				Symbol(SymbolNewline),
			},
		},
		{
			name:  "blank lines still end with newline",
			input: "a\n\n  \nb",
			want: []Token{
				Text("a"), Symbol(SymbolNewline),
				Symbol(SymbolNewline),
				Symbol(SymbolNewline),
				Text("b"), Symbol(SymbolNewline),
			},
		},
		{
			name:  "quoted text keeps inner spaces",
			input: `  levelname = "Entryway Plaza"  `,
			want:  []Token{Text("levelname"), Symbol(SymbolEquals), Text("Entryway Plaza"), Symbol(SymbolNewline)},
		},
		{
			name:  "unterminated quote falls back to words",
			input: `levelname = "Broken title`,
			want:  []Token{Text("levelname"), Symbol(SymbolEquals), Text(`"Broken`), Text("title"), Symbol(SymbolNewline)},
		},
		{
			name:  "empty quoted string",
			input: `""`,
			want:  []Token{Text(""), Symbol(SymbolNewline)},
		},
		{
			name:  "words run to whitespace",
			input: "key=value {x",
			want:  []Token{Text("key=value"), Symbol(SymbolOpenBrace), Text("x"), Symbol(SymbolNewline)},
		},
		{
			name:  "carriage returns are trimmed",
			input: "map MAP01\r\n{\r\n",
			want: []Token{
				Text("map"), Text("MAP01"), Symbol(SymbolNewline),
				Symbol(SymbolOpenBrace), Symbol(SymbolNewline),
				Symbol(SymbolNewline),
			},
		},
		{
			name:  "text after closing quote continues",
			input: `"a"b "c"`,
			want:  []Token{Text("a"), Text("b"), Text("c"), Symbol(SymbolNewline)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Collect(Tokens(tt.input))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("unexpected tokens:\n got %v\nwant %v", got, tt.want)
			}
		})
	}
}

func TestTokensStopsWhenConsumerStops(t *testing.T) {
	count := 0
	for range Tokens("a b c\nd e f") {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Fatalf("expected early stop after 2 tokens, got %d", count)
	}
}

func TestTokenString(t *testing.T) {
	if got := Text("x").String(); got != `Text("x")` {
		t.Fatalf("unexpected %q", got)
	}
	if got := Symbol(SymbolNewline).String(); got != "Symbol(newline)" {
		t.Fatalf("unexpected %q", got)
	}
	if got := Symbol(SymbolEquals).String(); got != "Symbol(=)" {
		t.Fatalf("unexpected %q", got)
	}
}
