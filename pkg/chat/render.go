package chat

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	assistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1)
)

// renderer turns assistant replies into terminal output.
type renderer struct {
	plain bool
	md    *glamour.TermRenderer
}

func newRenderer(plain bool, wordWrap int) *renderer {
	r := &renderer{plain: plain}
	if plain {
		return r
	}

	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		slog.Debug("markdown renderer unavailable, using plain text", "error", err)
		r.plain = true
		return r
	}
	r.md = md
	return r
}

// reply renders an assistant message. Markdown failures fall back to the
// raw text.
func (r *renderer) reply(text string) string {
	if r.plain || r.md == nil {
		return text
	}
	out, err := r.md.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

// style applies s unless output is plain.
func (r *renderer) style(s lipgloss.Style, text string) string {
	if r.plain {
		return text
	}
	return s.Render(text)
}

func (r *renderer) panel(text string) string {
	if r.plain {
		return text
	}
	return panelStyle.Render(text)
}
