package markdown

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// Terminal renders md for a terminal with glamour. style is a glamour
// standard style name ("dark", "light", "notty", ...); "" or "auto" detects
// the terminal background. wrap <= 0 disables word wrapping.
func Terminal(md, style string, wrap int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(max(wrap, 0))}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("markdown: renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("markdown: render: %w", err)
	}
	return out, nil
}
