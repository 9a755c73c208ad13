package plaintext

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// GoldmarkLexer is the default Lexer. It parses GitHub Flavored Markdown with
// goldmark and adapts the resulting AST into Tokens.
type GoldmarkLexer struct {
	md goldmark.Markdown
}

// NewGoldmarkLexer returns a lexer with the GFM extensions (tables,
// strikethrough, task lists, autolinks) enabled.
func NewGoldmarkLexer() *GoldmarkLexer {
	return &GoldmarkLexer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Lex implements Lexer.
func (l *GoldmarkLexer) Lex(markdown string) []Token {
	source := []byte(markdown)
	doc := l.md.Parser().Parse(text.NewReader(source))

	b := &tokenBuilder{source: source}
	return b.blocks(doc)
}

// tokenBuilder holds state during AST adaptation.
type tokenBuilder struct {
	source []byte
}

// blocks converts the block children of n, inserting a space token where the
// source had blank lines between two blocks.
func (b *tokenBuilder) blocks(n ast.Node) []Token {
	var tokens []Token
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if child != n.FirstChild() && child.HasBlankPreviousLines() {
			tokens = append(tokens, Token{Type: TokenSpace, Raw: "\n"})
		}
		tokens = append(tokens, b.block(child))
	}
	return tokens
}

func (b *tokenBuilder) block(n ast.Node) Token {
	switch node := n.(type) {
	case *ast.Heading:
		return Token{Type: TokenHeading, Depth: node.Level, Children: b.inlines(node)}
	case *ast.Paragraph:
		return Token{Type: TokenParagraph, Children: b.inlines(node)}
	case *ast.TextBlock:
		// Tight list items hold their inline content directly.
		return Token{Type: TokenText, Children: b.inlines(node)}
	case *ast.FencedCodeBlock:
		return Token{Type: TokenCode, Text: b.codeText(node), Lang: string(node.Language(b.source))}
	case *ast.CodeBlock:
		return Token{Type: TokenCode, Text: b.codeText(node)}
	case *ast.Blockquote:
		return Token{Type: TokenBlockquote, Children: b.blocks(node)}
	case *ast.List:
		return b.list(node)
	case *ast.ThematicBreak:
		return Token{Type: TokenHorizontalRule, Raw: b.rawSource(node)}
	case *ast.HTMLBlock:
		return Token{Type: TokenHTML, Raw: b.htmlBlock(node)}
	default:
		return Token{Type: kindType(n), Raw: b.rawSource(n)}
	}
}

func (b *tokenBuilder) list(n *ast.List) Token {
	tok := Token{Type: TokenList, Ordered: n.IsOrdered()}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		li, ok := child.(*ast.ListItem)
		if !ok {
			continue
		}
		tok.Items = append(tok.Items, b.listItem(li))
	}
	return tok
}

func (b *tokenBuilder) listItem(n *ast.ListItem) Token {
	tok := Token{Type: TokenListItem, Children: b.blocks(n)}

	// The task list extension puts the checkbox first in the item's first
	// text block or paragraph.
	if len(tok.Children) > 0 {
		first := tok.Children[0]
		if len(first.Children) > 0 && first.Children[0].Type == TokenCheckbox {
			tok.Task = true
			tok.Checked = first.Children[0].Checked
		}
	}
	return tok
}

// inlines converts the inline children of n.
func (b *tokenBuilder) inlines(n ast.Node) []Token {
	var tokens []Token
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		tokens = append(tokens, b.inline(child)...)
	}
	return tokens
}

func (b *tokenBuilder) inline(n ast.Node) []Token {
	switch node := n.(type) {
	case *ast.Text:
		return b.text(node)

	case *ast.String:
		return []Token{{Type: TokenText, Text: string(node.Value)}}

	case *ast.Emphasis:
		typ := TokenEm
		if node.Level == 2 {
			typ = TokenStrong
		}
		return []Token{{Type: typ, Children: b.inlines(node)}}

	case *extast.Strikethrough:
		return []Token{{Type: TokenDel, Children: b.inlines(node)}}

	case *ast.CodeSpan:
		var code strings.Builder
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			switch c := child.(type) {
			case *ast.Text:
				value := c.Segment.Value(b.source)
				if bytes.HasSuffix(value, []byte("\n")) {
					code.Write(value[:len(value)-1])
					code.WriteByte(' ')
				} else {
					code.Write(value)
				}
			case *ast.String:
				code.Write(c.Value)
			}
		}
		return []Token{{Type: TokenCodespan, Text: code.String()}}

	case *ast.Link:
		return []Token{{
			Type:     TokenLink,
			Href:     string(node.Destination),
			Title:    string(node.Title),
			Children: b.inlines(node),
		}}

	case *ast.AutoLink:
		label := string(node.Label(b.source))
		return []Token{{
			Type:     TokenLink,
			Href:     string(node.URL(b.source)),
			Children: []Token{{Type: TokenText, Text: label}},
		}}

	case *ast.Image:
		return []Token{{
			Type:  TokenImage,
			Href:  string(node.Destination),
			Title: string(node.Title),
			Text:  b.plainText(node),
		}}

	case *ast.RawHTML:
		var raw strings.Builder
		for i := 0; i < node.Segments.Len(); i++ {
			segment := node.Segments.At(i)
			raw.Write(segment.Value(b.source))
		}
		return []Token{{Type: TokenHTML, Raw: raw.String()}}

	case *extast.TaskCheckBox:
		return []Token{{Type: TokenCheckbox, Checked: node.IsChecked}}

	default:
		return []Token{{Type: kindType(n), Raw: b.plainText(n), Children: b.inlines(n)}}
	}
}

// text converts a text node, splitting out backslash escapes and resolving
// entity references. Line breaks become a trailing newline (soft) or a line
// break token (hard).
func (b *tokenBuilder) text(n *ast.Text) []Token {
	value := n.Segment.Value(b.source)

	var tokens []Token
	if n.IsRaw() {
		tokens = append(tokens, Token{Type: TokenText, Text: string(value)})
	} else {
		tokens = splitEscapes(value)
	}

	switch {
	case n.HardLineBreak():
		tokens = append(tokens, Token{Type: TokenLineBreak, Raw: "\n"})
	case n.SoftLineBreak():
		if last := len(tokens) - 1; last >= 0 && tokens[last].Type == TokenText {
			tokens[last].Text += "\n"
		} else {
			tokens = append(tokens, Token{Type: TokenText, Text: "\n"})
		}
	}
	return tokens
}

func splitEscapes(value []byte) []Token {
	var tokens []Token
	start := 0
	flush := func(end int) {
		if end > start {
			resolved := util.ResolveNumericReferences(util.ResolveEntityNames(value[start:end]))
			tokens = append(tokens, Token{Type: TokenText, Text: string(resolved)})
		}
	}
	for i := 0; i < len(value); i++ {
		if value[i] != '\\' || i+1 >= len(value) || !util.IsPunct(value[i+1]) {
			continue
		}
		flush(i)
		tokens = append(tokens, Token{
			Type: TokenEscape,
			Raw:  string(value[i : i+2]),
			Text: string(value[i+1]),
		})
		i++
		start = i + 1
	}
	flush(len(value))
	return tokens
}

func (b *tokenBuilder) codeText(n ast.Node) string {
	var code strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		code.Write(line.Value(b.source))
	}
	return strings.TrimSuffix(code.String(), "\n")
}

func (b *tokenBuilder) htmlBlock(n *ast.HTMLBlock) string {
	var raw strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		raw.Write(line.Value(b.source))
	}
	if n.HasClosure() {
		raw.Write(n.ClosureLine.Value(b.source))
	}
	return raw.String()
}

// plainText collects the literal text below n, used for image alt text.
func (b *tokenBuilder) plainText(n ast.Node) string {
	var sb strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			value := c.Segment.Value(b.source)
			if !c.IsRaw() {
				value = util.ResolveNumericReferences(util.ResolveEntityNames(util.UnescapePunctuations(value)))
			}
			sb.Write(value)
		case *ast.String:
			sb.Write(c.Value)
		default:
			sb.WriteString(b.plainText(c))
		}
	}
	return sb.String()
}

// rawSource returns the whole source lines spanned by a block node and its
// descendants, or "" if it has no source positions.
func (b *tokenBuilder) rawSource(n ast.Node) string {
	start, stop := -1, -1
	extend := func(s text.Segment) {
		if start < 0 || s.Start < start {
			start = s.Start
		}
		if s.Stop > stop {
			stop = s.Stop
		}
	}

	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			extend(t.Segment)
			return ast.WalkContinue, nil
		}
		if c.Type() == ast.TypeBlock {
			if lines := c.Lines(); lines != nil {
				for i := 0; i < lines.Len(); i++ {
					extend(lines.At(i))
				}
			}
		}
		return ast.WalkContinue, nil
	})

	if start < 0 || stop > len(b.source) {
		return ""
	}
	for start > 0 && b.source[start-1] != '\n' {
		start--
	}
	for stop < len(b.source) && b.source[stop] != '\n' {
		stop++
	}
	return strings.TrimRight(string(b.source[start:stop]), "\n") + "\n"
}

func kindType(n ast.Node) TokenType {
	return TokenType(strings.ToLower(n.Kind().String()))
}
