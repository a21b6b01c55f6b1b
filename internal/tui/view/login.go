// Package view provides view components for the TUI.
// Views are responsible for rendering state to strings.
// They do not hold state themselves - state is passed in.
package view

import (
	"strings"

	"github.com/keydesk/keydesk/internal/tui/styles"
)

// LoginState holds the state needed to render the login screen.
// The field strings are the already-rendered text inputs.
type LoginState struct {
	UsernameField string
	PasswordField string
	Submitting    bool
}

// LoginView renders the login screen.
type LoginView struct{}

// NewLoginView creates a new LoginView instance.
func NewLoginView() *LoginView {
	return &LoginView{}
}

// Render renders the login screen to a string.
func (v *LoginView) Render(state *LoginState, width int) string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("RFID Key Assignment System"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Sign in to continue"))
	b.WriteString("\n\n")

	b.WriteString("Username\n")
	b.WriteString(state.UsernameField)
	b.WriteString("\n\n")

	b.WriteString("Password\n")
	b.WriteString(state.PasswordField)
	b.WriteString("\n\n")

	if state.Submitting {
		b.WriteString(styles.Muted.Render("Signing in..."))
	} else {
		b.WriteString(styles.Muted.Render("Press enter to sign in"))
	}

	return styles.ContentBox.Width(boxWidth(width)).Render(b.String())
}

// boxWidth clamps the content box to the terminal width.
func boxWidth(width int) int {
	w := width - 4
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}
