package plaintext

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mode selects how an emphasis-like decoration (bold, italic, strikethrough)
// is rendered.
type Mode uint8

const (
	// ModeKeep re-emits the Markdown wrapper syntax around the inner text.
	ModeKeep Mode = iota
	// ModeRemove drops the decoration and keeps the inner text.
	ModeRemove
	// ModeUnicode maps the inner text onto mathematical Unicode variants.
	ModeUnicode
)

var modeNames = map[Mode]string{
	ModeKeep:    "keep",
	ModeRemove:  "remove",
	ModeUnicode: "unicode",
}

// String returns the lowercase name of the mode.
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// ParseMode parses "keep", "remove" or "unicode" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == want {
			return m, nil
		}
	}
	return ModeKeep, fmt.Errorf("invalid mode %q: must be one of keep, remove, unicode", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if _, ok := modeNames[m]; !ok {
		return nil, fmt.Errorf("invalid mode %d", m)
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// CustomRule is a user-defined regex find-and-replace applied before or after
// the Markdown conversion.
type CustomRule struct {
	Name                  string `yaml:"name" json:"name"`
	Pattern               string `yaml:"pattern" json:"pattern"`
	Replacement           string `yaml:"replacement" json:"replacement"`
	CaseInsensitive       bool   `yaml:"case_insensitive" json:"case_insensitive"`
	Enabled               bool   `yaml:"enabled" json:"enabled"`
	ApplyBeforeConversion bool   `yaml:"apply_before_conversion" json:"apply_before_conversion"`
}

// UnmarshalYAML decodes a rule, treating a missing enabled key as true.
func (r *CustomRule) UnmarshalYAML(value *yaml.Node) error {
	type plain CustomRule
	p := plain{Enabled: true}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*r = CustomRule(p)
	return nil
}

// Settings is the complete per-call conversion configuration. Every field must
// hold a defined value; use DefaultSettings as the starting point.
type Settings struct {
	EnableMarkdownConversion bool `yaml:"enable_markdown_conversion" json:"enable_markdown_conversion"`

	EnableHeadings bool   `yaml:"enable_headings" json:"enable_headings"`
	H1Prefix       string `yaml:"h1_prefix" json:"h1_prefix"`
	H2Prefix       string `yaml:"h2_prefix" json:"h2_prefix"`
	H3Prefix       string `yaml:"h3_prefix" json:"h3_prefix"`
	H4Prefix       string `yaml:"h4_prefix" json:"h4_prefix"`

	EnableBullet      bool   `yaml:"enable_bullet" json:"enable_bullet"`
	BulletChar        string `yaml:"bullet_char" json:"bullet_char"`
	EnableCheckbox    bool   `yaml:"enable_checkbox" json:"enable_checkbox"`
	CheckboxChecked   string `yaml:"checkbox_checked" json:"checkbox_checked"`
	CheckboxUnchecked string `yaml:"checkbox_unchecked" json:"checkbox_unchecked"`

	BoldMode          Mode `yaml:"bold_mode" json:"bold_mode"`
	ItalicMode        Mode `yaml:"italic_mode" json:"italic_mode"`
	StrikethroughMode Mode `yaml:"strikethrough_mode" json:"strikethrough_mode"`

	EnableHorizontalRule bool   `yaml:"enable_horizontal_rule" json:"enable_horizontal_rule"`
	HorizontalRule       string `yaml:"horizontal_rule" json:"horizontal_rule"`
	EnableBlockquote     bool   `yaml:"enable_blockquote" json:"enable_blockquote"`
	BlockquotePrefix     string `yaml:"blockquote_prefix" json:"blockquote_prefix"`

	EnableCodeBlock   bool   `yaml:"enable_code_block" json:"enable_code_block"`
	CodeBlockPrefix   string `yaml:"code_block_prefix" json:"code_block_prefix"`
	EnableInlineCode  bool   `yaml:"enable_inline_code" json:"enable_inline_code"`
	InlineCodeWrapper string `yaml:"inline_code_wrapper" json:"inline_code_wrapper"`

	// CustomRules are applied in slice order.
	CustomRules []CustomRule `yaml:"custom_rules" json:"custom_rules"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		EnableMarkdownConversion: true,

		EnableHeadings: true,
		H1Prefix:       "▌",
		H2Prefix:       "▍",
		H3Prefix:       "▎",
		H4Prefix:       "▏",

		EnableBullet:      true,
		BulletChar:        "•",
		EnableCheckbox:    true,
		CheckboxChecked:   "☑",
		CheckboxUnchecked: "☐",

		BoldMode:          ModeUnicode,
		ItalicMode:        ModeUnicode,
		StrikethroughMode: ModeUnicode,

		EnableHorizontalRule: true,
		HorizontalRule:       "───────────────",
		EnableBlockquote:     true,
		BlockquotePrefix:     "│ ",

		EnableCodeBlock:   true,
		CodeBlockPrefix:   "    ",
		EnableInlineCode:  true,
		InlineCodeWrapper: "`",

		CustomRules: []CustomRule{},
	}
}

// HeadingPrefix returns the configured prefix for a heading level. Levels
// outside 1-4 have no prefix.
func (s Settings) HeadingPrefix(level int) string {
	switch level {
	case 1:
		return s.H1Prefix
	case 2:
		return s.H2Prefix
	case 3:
		return s.H3Prefix
	case 4:
		return s.H4Prefix
	default:
		return ""
	}
}

// splitRules partitions rules into the before-conversion and after-conversion
// stages, preserving relative order within each stage.
func (s Settings) splitRules() (before, after []CustomRule) {
	for _, r := range s.CustomRules {
		if r.ApplyBeforeConversion {
			before = append(before, r)
		} else {
			after = append(after, r)
		}
	}
	return before, after
}
