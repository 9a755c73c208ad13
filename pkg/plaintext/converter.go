// Package plaintext converts Markdown into visually formatted plain text.
//
// Headings, emphasis, lists and quotes are kept visible through Unicode glyph
// substitution instead of markup, for targets that cannot render Markdown.
// User-defined regex rules may run before and after the conversion.
package plaintext

import (
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultMatchTimeout bounds the time a single custom rule may spend matching.
const DefaultMatchTimeout = time.Second

// Option configures a Converter.
type Option func(*Converter)

// WithLexer replaces the default goldmark lexer.
func WithLexer(lexer Lexer) Option {
	return func(c *Converter) {
		c.lexer = lexer
	}
}

// WithLogger sets the entry custom rule diagnostics are logged to.
func WithLogger(logger *logrus.Entry) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// WithMatchTimeout sets the regex match budget per rule. Zero disables it.
func WithMatchTimeout(d time.Duration) Option {
	return func(c *Converter) {
		c.matchTimeout = d
	}
}

// Converter runs the conversion pipeline. It holds no per-call state and is
// safe for concurrent use.
type Converter struct {
	lexer        Lexer
	logger       *logrus.Entry
	matchTimeout time.Duration
}

// New returns a Converter with the given options applied over the defaults.
func New(opts ...Option) *Converter {
	c := &Converter{
		lexer:        NewGoldmarkLexer(),
		logger:       logrus.WithField("component", "plaintext"),
		matchTimeout: DefaultMatchTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultConverter = New()

// Convert converts markdown with the default Converter.
func Convert(markdown string, settings Settings) string {
	return defaultConverter.Convert(markdown, settings)
}

// ApplyRules applies the enabled rules in order with the default Converter.
func ApplyRules(text string, rules []CustomRule) string {
	return defaultConverter.ApplyRules(text, rules)
}

// Convert runs before-rules, lexing, rendering and after-rules. With the
// master toggle off the input is returned untouched, before-rules included.
// Convert never fails; a broken rule is logged and skipped.
func (c *Converter) Convert(markdown string, settings Settings) string {
	if !settings.EnableMarkdownConversion {
		return markdown
	}

	before, after := settings.splitRules()

	text := c.ApplyRules(markdown, before)
	tokens := c.lexer.Lex(text)
	text = Render(tokens, settings)
	return c.ApplyRules(text, after)
}

// ApplyRules folds the enabled rules over text in slice order.
func (c *Converter) ApplyRules(text string, rules []CustomRule) string {
	return applyRules(text, rules, c.matchTimeout, c.logger)
}
