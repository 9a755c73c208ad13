// rules.go applies user-defined regex substitutions.
package plaintext

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/sirupsen/logrus"
)

// compileRule builds the multiline regex for a rule using ECMAScript
// semantics: ASCII-only \w and \d classes and JavaScript's [^] set.
func compileRule(rule CustomRule, timeout time.Duration) (*regexp2.Regexp, error) {
	opts := regexp2.RegexOptions(regexp2.Multiline | regexp2.ECMAScript)
	if rule.CaseInsensitive {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(rule.Pattern, opts)
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}
	return re, nil
}

// ValidateRule reports whether the rule's pattern compiles.
func ValidateRule(rule CustomRule) error {
	if rule.Pattern == "" {
		return fmt.Errorf("rule %q: pattern is empty", rule.Name)
	}
	if _, err := compileRule(rule, 0); err != nil {
		return fmt.Errorf("rule %q: invalid pattern: %w", rule.Name, err)
	}
	return nil
}

// applyRules folds the enabled rules over text in slice order. A rule whose
// pattern is empty or does not compile, or whose matching times out, is
// logged and skipped.
func applyRules(text string, rules []CustomRule, timeout time.Duration, logger *logrus.Entry) string {
	for i, rule := range rules {
		if !rule.Enabled {
			continue
		}
		if rule.Pattern == "" {
			logger.WithFields(logrus.Fields{
				"rule":  rule.Name,
				"index": i,
			}).Warn("skipping custom rule: empty pattern")
			continue
		}

		re, err := compileRule(rule, timeout)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"rule":  rule.Name,
				"index": i,
				"error": err,
			}).Warn("skipping custom rule: invalid pattern")
			continue
		}

		out, err := re.Replace(text, unescapeReplacement(rule.Replacement), -1, -1)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"rule":  rule.Name,
				"index": i,
				"error": err,
			}).Warn("skipping custom rule: replace failed")
			continue
		}
		text = out
	}
	return text
}

// unescapeReplacement turns the two-character sequences \n, \t, \r and \\
// into their control characters in one left-to-right pass. Other backslashes
// and $-references are left for the regex engine.
func unescapeReplacement(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			sb.WriteByte(s[i])
			continue
		}
		switch s[i+1] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '\\':
			sb.WriteByte('\\')
		default:
			sb.WriteByte(s[i])
			continue
		}
		i++
	}
	return sb.String()
}
