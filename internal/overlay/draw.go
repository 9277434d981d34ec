package overlay

import (
	"github.com/dshills/switchboard/internal/backend"
	"github.com/dshills/switchboard/internal/button"
)

// Theme holds the styles the panel is drawn with.
type Theme struct {
	Handle   backend.Style
	Normal   backend.Style
	Active   backend.Style
	Disabled backend.Style
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		Handle:   backend.Style{Reverse: true, Bold: true},
		Normal:   backend.DefaultStyle(),
		Active:   backend.DefaultStyle().WithForeground(button.RGB(0x5f, 0xd7, 0x87)),
		Disabled: backend.Style{Dim: true},
	}
}

// Title is drawn on the handle row.
const Title = "≡ switchboard"

// Draw renders the panel.
func (l *Layout) Draw(b backend.Backend, theme Theme) {
	handle := l.Handle()
	backend.Fill(b, handle.X, handle.Y, handle.W, 1, backend.Cell{Rune: ' ', Style: theme.Handle})
	backend.DrawText(b, handle.X, handle.Y, Title, theme.Handle, handle.W)

	for _, it := range l.Items() {
		style := itemStyle(it.View, theme)
		backend.Fill(b, it.Rect.X, it.Rect.Y, it.Rect.W, 1, backend.Cell{Rune: ' ', Style: style})
		backend.DrawText(b, it.Rect.X, it.Rect.Y, Label(it.View), style, it.Rect.W)
	}
}

func itemStyle(v button.View, theme Theme) backend.Style {
	switch {
	case !v.Enabled:
		return theme.Disabled
	case v.Toggled || v.Held:
		return theme.Active
	case v.Hints.Tint != 0:
		return theme.Normal.WithForeground(v.Hints.Tint)
	default:
		return theme.Normal
	}
}

// Label renders the text of one control row: a state marker and the
// optional icon in front of the control's own label.
func Label(v button.View) string {
	marker := "  "
	switch v.Mode {
	case button.ModeToggle:
		if v.Toggled {
			marker = "● "
		} else {
			marker = "○ "
		}
	case button.ModeHold:
		if v.Held {
			marker = "▶ "
		} else {
			marker = "▷ "
		}
	}

	s := marker
	if v.Hints.Icon != "" {
		s += v.Hints.Icon + " "
	}
	return s + v.Label()
}
