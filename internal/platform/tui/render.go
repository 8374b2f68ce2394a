package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/core"
)

type styleKey struct {
	color core.Color
	bold  bool
}

// styleCache is shared by every SSH session.
var (
	styleMu    sync.Mutex
	styleCache = map[styleKey]lipgloss.Style{}
)

// styleFor returns the lipgloss style for a cell color and weight.
func styleFor(c core.Color, bold bool) lipgloss.Style {
	styleMu.Lock()
	defer styleMu.Unlock()

	k := styleKey{c, bold}
	if s, ok := styleCache[k]; ok {
		return s
	}
	s := lipgloss.NewStyle().Bold(bold)
	if code := c.ANSI(); code != "" {
		s = s.Foreground(lipgloss.Color(code))
	}
	styleCache[k] = s
	return s
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same style are rendered as one span.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for _, span := range s.Runs(y) {
			if span.Color == core.ColorDefault && !span.Bold {
				sb.WriteString(span.Text)
				continue
			}
			sb.WriteString(styleFor(span.Color, span.Bold).Render(span.Text))
		}
	}
	return sb.String()
}
