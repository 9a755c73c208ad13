package plaintext

import "strings"

const (
	boldUpper   = 0x1D400
	boldLower   = 0x1D41A
	boldDigit   = 0x1D7CE
	italicUpper = 0x1D434
	italicLower = 0x1D44E

	// The italic small h slot (U+1D455) is unassigned; the letter lives in
	// the Letterlike Symbols block instead.
	italicSmallH = 0x210E

	combiningLongStroke = 0x0336
)

// ToBold maps ASCII letters and digits to Mathematical Bold code points.
func ToBold(s string) string {
	return strings.Map(boldRune, s)
}

// ToItalic maps ASCII letters to Mathematical Italic code points. Digits have
// no italic variant and pass through.
func ToItalic(s string) string {
	return strings.Map(italicRune, s)
}

// ToStrikethrough appends U+0336 COMBINING LONG STROKE OVERLAY after every
// character except the line breaks "\n" and "\r", which are copied bare so
// the overlay never dangles at the start of the next line.
func ToStrikethrough(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) * 3)
	for _, r := range s {
		sb.WriteRune(r)
		if r != '\n' && r != '\r' {
			sb.WriteRune(combiningLongStroke)
		}
	}
	return sb.String()
}

func boldRune(r rune) rune {
	switch {
	case r >= 'A' && r <= 'Z':
		return boldUpper + (r - 'A')
	case r >= 'a' && r <= 'z':
		return boldLower + (r - 'a')
	case r >= '0' && r <= '9':
		return boldDigit + (r - '0')
	}
	return r
}

func italicRune(r rune) rune {
	switch {
	case r >= 'A' && r <= 'Z':
		return italicUpper + (r - 'A')
	case r == 'h':
		return italicSmallH
	case r >= 'a' && r <= 'z':
		return italicLower + (r - 'a')
	}
	return r
}
