package plaintext

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// FromHTML converts an HTML fragment, such as rich clipboard content, to
// Markdown so it can be fed to Convert.
func FromHTML(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert html: %w", err)
	}

	return strings.TrimSpace(markdown), nil
}
