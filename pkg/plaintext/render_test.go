package plaintext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func txt(s string) Token {
	return Token{Type: TokenText, Text: s}
}

func item(children ...Token) Token {
	return Token{Type: TokenListItem, Children: children}
}

func TestRender_NestedListsAfterContent(t *testing.T) {
	nested := Token{Type: TokenList, Items: []Token{item(txt("child"))}}
	tokens := []Token{{
		Type:  TokenList,
		Items: []Token{item(txt("a "), nested, txt("c"))},
	}}

	assert.Equal(t, "• a c\n  • child\n", Render(tokens, DefaultSettings()))
}

func TestRender_ListItemDoesNotMutateTokens(t *testing.T) {
	li := Token{
		Type:    TokenListItem,
		Task:    true,
		Checked: true,
		Children: []Token{{
			Type:     TokenText,
			Children: []Token{{Type: TokenCheckbox, Checked: true}, txt("done")},
		}},
	}
	tokens := []Token{{Type: TokenList, Items: []Token{li}}}

	assert.Equal(t, "☑ done\n", Render(tokens, DefaultSettings()))
	assert.Len(t, tokens[0].Items[0].Children[0].Children, 2)
}

func TestRender_IndentationIgnoresParentMarker(t *testing.T) {
	unordered := Token{Type: TokenList, Items: []Token{item(txt("u"))}}
	tokens := []Token{{
		Type:    TokenList,
		Ordered: true,
		Items:   []Token{item(txt("first"), unordered)},
	}}

	assert.Equal(t, "1. first\n  • u\n", Render(tokens, DefaultSettings()))
}

func TestRender_NoMarkerSkipsIndent(t *testing.T) {
	settings := DefaultSettings()
	settings.EnableBullet = false

	nested := Token{Type: TokenList, Items: []Token{item(txt("inner"))}}
	tokens := []Token{{Type: TokenList, Items: []Token{item(txt("outer"), nested)}}}

	assert.Equal(t, "outer\ninner\n", Render(tokens, settings))
}

func TestRender_UnknownTokens(t *testing.T) {
	tests := []struct {
		name     string
		token    Token
		expected string
	}{
		{"raw passthrough", Token{Type: "table", Raw: "| a |\n"}, "| a |\n"},
		{"no raw", Token{Type: "footnote"}, ""},
		{"html", Token{Type: TokenHTML, Raw: "<br/>"}, "<br/>"},
		{"escape", Token{Type: TokenEscape, Raw: `\#`, Text: "#"}, "#"},
		{"line break", Token{Type: TokenLineBreak}, "\n"},
		{"space", Token{Type: TokenSpace}, "\n"},
		{"stray checkbox", Token{Type: TokenCheckbox, Checked: true}, ""},
		{"image without alt", Token{Type: TokenImage, Href: "x.png"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Render([]Token{tt.token}, DefaultSettings()))
		})
	}
}

func TestRender_TextPrefersChildren(t *testing.T) {
	tok := Token{
		Type:     TokenText,
		Text:     "**raw**",
		Children: []Token{{Type: TokenStrong, Children: []Token{txt("x")}}},
	}

	assert.Equal(t, ToBold("x"), Render([]Token{tok}, DefaultSettings()))
}

func TestRender_BlockquoteSkipsEmptyLines(t *testing.T) {
	tok := Token{Type: TokenBlockquote, Children: []Token{
		{Type: TokenParagraph, Children: []Token{txt("one")}},
		{Type: TokenSpace},
		{Type: TokenParagraph, Children: []Token{txt("two")}},
	}}

	assert.Equal(t, "│ one\n\n│ two\n", Render([]Token{tok}, DefaultSettings()))
}

func TestPrefixLines(t *testing.T) {
	assert.Equal(t, "> a\n\n> b\n", prefixLines("a\n\nb\n", "> ", true))
	assert.Equal(t, "> a\n> \n> b\n> ", prefixLines("a\n\nb\n", "> ", false))
}

func TestBullet(t *testing.T) {
	settings := DefaultSettings()
	ctx := renderContext{settings: &settings}

	tests := []struct {
		name       string
		item       Token
		ordered    bool
		index      int
		bullet     bool
		checkbox   bool
		wantMarker string
		wantOK     bool
	}{
		{"unordered", Token{}, false, 0, true, true, "•", true},
		{"unordered without bullets", Token{}, false, 0, false, true, "", false},
		{"ordered", Token{}, true, 2, false, true, "3.", true},
		{"task checked", Token{Task: true, Checked: true}, false, 0, true, true, "☑", true},
		{"task unchecked", Token{Task: true}, true, 0, true, true, "☐", true},
		{"task without checkboxes", Token{Task: true}, false, 0, true, false, "", false},
		{"ordered task without checkboxes", Token{Task: true}, true, 0, true, false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings.EnableBullet = tt.bullet
			settings.EnableCheckbox = tt.checkbox

			marker, ok := ctx.bullet(tt.item, tt.ordered, tt.index)
			assert.Equal(t, tt.wantMarker, marker)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
