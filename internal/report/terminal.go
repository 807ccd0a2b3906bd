package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
)

// DefaultWidth is the word wrap width used for terminal output.
const DefaultWidth = 100

// Print writes md to w. Unless raw is set, the markdown is styled for a
// terminal first.
func Print(w io.Writer, md string, raw bool) error {
	if raw {
		_, err := io.WriteString(w, md)
		return err
	}
	out, err := Terminal(md, DefaultWidth)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// Terminal styles md for a terminal, wrapping at width columns.
func Terminal(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
