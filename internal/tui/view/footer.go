package view

import (
	"strings"

	"github.com/keydesk/keydesk/internal/tui/styles"
)

// Hint is one key binding shown in the footer.
type Hint struct {
	Key  string
	Desc string
}

// FooterView renders the help bar at the bottom of each screen.
type FooterView struct{}

// NewFooterView creates a new FooterView instance.
func NewFooterView() *FooterView {
	return &FooterView{}
}

// Render renders the hints separated by bullets.
func (v *FooterView) Render(hints []Hint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpText.Render(h.Desc))
	}
	return strings.Join(parts, styles.HelpText.Render(" • "))
}

// LoginHints are the footer hints for the login screen.
func LoginHints() []Hint {
	return []Hint{
		{Key: "tab", Desc: "switch field"},
		{Key: "enter", Desc: "sign in"},
		{Key: "ctrl+c", Desc: "quit"},
	}
}

// AssignmentHints are the footer hints for the assignment screen.
func AssignmentHints() []Hint {
	return []Hint{
		{Key: "tab", Desc: "switch focus"},
		{Key: "enter", Desc: "issue/return"},
		{Key: "f2", Desc: "dashboard"},
		{Key: "ctrl+q", Desc: "logout"},
		{Key: "ctrl+c", Desc: "quit"},
	}
}

// DashboardHints are the footer hints for the dashboard screen.
func DashboardHints() []Hint {
	return []Hint{
		{Key: "type", Desc: "search"},
		{Key: "↑/↓", Desc: "scroll history"},
		{Key: "f2", Desc: "back to assignments (sign in again)"},
		{Key: "ctrl+q", Desc: "logout"},
		{Key: "ctrl+c", Desc: "quit"},
	}
}
