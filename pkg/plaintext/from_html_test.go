package plaintext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{
			name:     "bold",
			input:    "<p><strong>Hi</strong> there</p>",
			contains: []string{"**Hi** there"},
		},
		{
			name:     "heading",
			input:    "<h1>Title</h1>",
			contains: []string{"# Title"},
		},
		{
			name:     "list",
			input:    "<ul><li>one</li><li>two</li></ul>",
			contains: []string{"one", "two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := FromHTML(tt.input)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, result, want)
			}
		})
	}
}

func TestFromHTML_Empty(t *testing.T) {
	result, err := FromHTML("  ")
	require.NoError(t, err)
	assert.Equal(t, "", result)
}

func TestFromHTML_ThenConvert(t *testing.T) {
	markdown, err := FromHTML("<h2>News</h2><p><strong>Hello</strong></p>")
	require.NoError(t, err)

	result := Convert(markdown, DefaultSettings())
	assert.Contains(t, result, "▍ News")
	assert.Contains(t, result, boldHello)
}
