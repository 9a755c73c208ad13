// tokens.go defines the token tree consumed by the renderer.
package plaintext

// TokenType tags a Token. It is a string so that lexers may emit types the
// renderer does not know; those fall through to the Raw passthrough.
type TokenType string

const (
	TokenHeading        TokenType = "heading"
	TokenParagraph      TokenType = "paragraph"
	TokenText           TokenType = "text"
	TokenStrong         TokenType = "strong"
	TokenEm             TokenType = "em"
	TokenDel            TokenType = "del"
	TokenCodespan       TokenType = "codespan"
	TokenCode           TokenType = "code"
	TokenBlockquote     TokenType = "blockquote"
	TokenList           TokenType = "list"
	TokenListItem       TokenType = "list_item"
	TokenCheckbox       TokenType = "checkbox"
	TokenLink           TokenType = "link"
	TokenImage          TokenType = "image"
	TokenHorizontalRule TokenType = "hr"
	TokenLineBreak      TokenType = "br"
	TokenSpace          TokenType = "space" // blank line(s) between blocks
	TokenHTML           TokenType = "html"
	TokenEscape         TokenType = "escape"
)

// Token is one node of a Markdown syntax tree. Which fields are meaningful
// depends on Type.
type Token struct {
	Type TokenType

	// Raw is the original source of the token, if the lexer kept it.
	Raw string
	// Text is the literal content of leaf tokens (text, codespan, code,
	// escape) and the alt text of images.
	Text string

	Depth int    // heading level
	Lang  string // code fence info string
	Href  string // link and image destination
	Title string // link and image title

	Ordered bool    // list
	Items   []Token // list items of a list

	Task    bool // list item carries a checkbox
	Checked bool // list item or checkbox state

	Children []Token
}

// Lexer turns Markdown source into a token tree. Implementations must be
// total: every input yields some token sequence.
type Lexer interface {
	Lex(markdown string) []Token
}
