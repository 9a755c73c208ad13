package plaintext

import (
	"github.com/muesli/reflow/wordwrap"
)

// Wrap word-wraps converted text to width terminal cells. Existing line breaks
// are kept and words longer than width are not split. A width of zero or less
// returns text unchanged.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}
