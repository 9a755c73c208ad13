package plaintext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{"disabled", "one two three", 0, "one two three"},
		{"fits", "one two", 7, "one two"},
		{"breaks at space", "one two three", 7, "one two\nthree"},
		{"keeps newlines", "a\nb c d", 3, "a\nb c\nd"},
		{"long word kept whole", "abcdefgh", 4, "abcdefgh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Wrap(tt.input, tt.width))
		})
	}
}
