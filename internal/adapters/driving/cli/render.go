package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
)

// Palette used for insight panels.
var (
	colourPrimary   = lipgloss.Color("#7C3AED")
	colourSecondary = lipgloss.Color("#06B6D4")
	colourMuted     = lipgloss.Color("#6C7086")
	colourBorder    = lipgloss.Color("#45475A")
)

// renderer draws a content tree for a terminal.
type renderer struct {
	panel    lipgloss.Style
	heading  lipgloss.Style
	bold     lipgloss.Style
	italic   lipgloss.Style
	muted    lipgloss.Style
	copyable lipgloss.Style
}

// newRenderer creates a renderer whose colour support matches w.
func newRenderer(w io.Writer) *renderer {
	r := lipgloss.NewRenderer(w)
	return &renderer{
		panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colourBorder).
			Padding(0, 1),
		heading:  r.NewStyle().Bold(true).Foreground(colourPrimary),
		bold:     r.NewStyle().Bold(true),
		italic:   r.NewStyle().Italic(true),
		muted:    r.NewStyle().Foreground(colourMuted),
		copyable: r.NewStyle().Foreground(colourSecondary),
	}
}

func (r *renderer) Render(c domain.Component) string {
	switch c.Type {
	case domain.ComponentPanel:
		parts := make([]string, 0, len(c.Children))
		for _, child := range c.Children {
			parts = append(parts, r.Render(child))
		}
		return r.panel.Render(strings.Join(parts, "\n"))
	case domain.ComponentHeading:
		return r.heading.Render(c.Value)
	case domain.ComponentDivider:
		return r.muted.Render(strings.Repeat("─", 24))
	case domain.ComponentCopyable:
		return r.copyable.Render(c.Value)
	default:
		return r.inline(c.Value)
	}
}

// inline renders the **bold** and _italic_ markers used in insight text.
func (r *renderer) inline(s string) string {
	var (
		out          strings.Builder
		seg          strings.Builder
		bold, italic bool
	)

	flush := func() {
		if seg.Len() == 0 {
			return
		}
		style := lipgloss.NewStyle()
		switch {
		case bold && italic:
			style = r.bold.Inherit(r.italic)
		case bold:
			style = r.bold
		case italic:
			style = r.italic
		}
		for i, line := range strings.Split(seg.String(), "\n") {
			if i > 0 {
				out.WriteString("\n")
			}
			if line != "" {
				out.WriteString(style.Render(line))
			}
		}
		seg.Reset()
	}

	for i := 0; i < len(s); i++ {
		switch {
		case strings.HasPrefix(s[i:], "**"):
			flush()
			bold = !bold
			i++
		case s[i] == '_':
			flush()
			italic = !italic
		default:
			seg.WriteByte(s[i])
		}
	}
	flush()
	return out.String()
}
