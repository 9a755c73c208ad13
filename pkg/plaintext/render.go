// render.go turns a token tree into visually formatted plain text.
package plaintext

import (
	"strconv"
	"strings"
)

// renderContext is created once per conversion and copied on the way down
// into nested lists.
type renderContext struct {
	settings  *Settings
	listDepth int
}

// Render renders a token tree with the given settings. Custom rules and the
// master toggle are not consulted; see Converter.Convert for the full pipeline.
func Render(tokens []Token, settings Settings) string {
	ctx := renderContext{settings: &settings}
	return ctx.render(tokens)
}

func (ctx renderContext) render(tokens []Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(ctx.renderOne(tok))
	}
	return sb.String()
}

func (ctx renderContext) renderOne(tok Token) string {
	s := ctx.settings

	switch tok.Type {
	case TokenHeading:
		content := ctx.render(tok.Children)
		if prefix := s.HeadingPrefix(tok.Depth); s.EnableHeadings && prefix != "" {
			content = prefix + " " + content
		}
		return content + "\n"

	case TokenParagraph:
		return ctx.render(tok.Children) + "\n"

	case TokenText:
		if len(tok.Children) > 0 {
			return ctx.render(tok.Children)
		}
		return tok.Text

	case TokenStrong:
		return decorate(ctx.render(tok.Children), s.BoldMode, "**", ToBold)

	case TokenEm:
		return decorate(ctx.render(tok.Children), s.ItalicMode, "*", ToItalic)

	case TokenDel:
		return decorate(ctx.render(tok.Children), s.StrikethroughMode, "~~", ToStrikethrough)

	case TokenCodespan:
		if s.EnableInlineCode {
			return s.InlineCodeWrapper + tok.Text + s.InlineCodeWrapper
		}
		return tok.Text

	case TokenCode:
		if !s.EnableCodeBlock {
			return tok.Text + "\n"
		}
		return prefixLines(tok.Text, s.CodeBlockPrefix, false) + "\n"

	case TokenBlockquote:
		content := ctx.render(tok.Children)
		if !s.EnableBlockquote {
			return content
		}
		return prefixLines(content, s.BlockquotePrefix, true)

	case TokenList:
		var sb strings.Builder
		for i, item := range tok.Items {
			sb.WriteString(ctx.renderListItem(item, tok.Ordered, i))
		}
		return sb.String()

	case TokenListItem:
		// A stray item outside a list renders as the first item of an
		// unordered list.
		return ctx.renderListItem(tok, false, 0)

	case TokenCheckbox:
		return ""

	case TokenLink:
		return ctx.render(tok.Children)

	case TokenImage:
		return tok.Text

	case TokenHorizontalRule:
		if s.EnableHorizontalRule {
			return s.HorizontalRule + "\n"
		}
		return ""

	case TokenLineBreak, TokenSpace:
		return "\n"

	case TokenHTML:
		return tok.Raw

	case TokenEscape:
		return tok.Text

	default:
		return tok.Raw
	}
}

// renderListItem renders one item followed by its nested lists. Nested lists
// always come after the item's own content.
func (ctx renderContext) renderListItem(item Token, ordered bool, index int) string {
	var content, nested []Token
	for _, child := range withoutCheckbox(item.Children) {
		if child.Type == TokenList {
			nested = append(nested, child)
		} else {
			content = append(content, child)
		}
	}

	text := strings.TrimSpace(ctx.render(content))

	child := ctx
	child.listDepth++
	nestedOut := child.render(nested)

	marker, ok := ctx.bullet(item, ordered, index)
	if !ok {
		return text + "\n" + nestedOut
	}
	indent := strings.Repeat("  ", ctx.listDepth)
	return indent + marker + " " + text + "\n" + nestedOut
}

// bullet picks the leading marker of a list item. ok is false when the item
// gets no marker at all.
func (ctx renderContext) bullet(item Token, ordered bool, index int) (marker string, ok bool) {
	s := ctx.settings
	switch {
	case item.Task:
		if !s.EnableCheckbox {
			return "", false
		}
		if item.Checked {
			return s.CheckboxChecked, true
		}
		return s.CheckboxUnchecked, true
	case ordered:
		return strconv.Itoa(index+1) + ".", true
	case s.EnableBullet:
		return s.BulletChar, true
	default:
		return "", false
	}
}

// withoutCheckbox drops checkbox tokens from a list item's content, looking
// one level into the leading text block where lexers place them. The input
// is not modified.
func withoutCheckbox(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type == TokenCheckbox {
			continue
		}
		if len(tok.Children) > 0 && (tok.Type == TokenText || tok.Type == TokenParagraph) {
			children := make([]Token, 0, len(tok.Children))
			for _, c := range tok.Children {
				if c.Type != TokenCheckbox {
					children = append(children, c)
				}
			}
			tok.Children = children
		}
		out = append(out, tok)
	}
	return out
}

func decorate(inner string, mode Mode, wrapper string, toUnicode func(string) string) string {
	switch mode {
	case ModeKeep:
		return wrapper + inner + wrapper
	case ModeUnicode:
		return toUnicode(inner)
	default:
		return inner
	}
}

// prefixLines prefixes every line of s. With skipEmpty, empty lines are left
// as they are.
func prefixLines(s, prefix string, skipEmpty bool) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if skipEmpty && line == "" {
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
