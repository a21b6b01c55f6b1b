package tui

import (
	"strings"

	"github.com/keydesk/keydesk/internal/tui/styles"
	"github.com/keydesk/keydesk/internal/tui/view"
)

// View renders the active screen with the notification banner above it and
// the help bar below.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderNotification())

	switch m.view {
	case viewLogin:
		b.WriteString(m.loginView.Render(&view.LoginState{
			UsernameField: m.usernameInput.View(),
			PasswordField: m.passwordInput.View(),
			Submitting:    m.loggingIn,
		}, m.width))
		b.WriteString("\n\n")
		b.WriteString(m.footerView.Render(view.LoginHints()))

	case viewAssignment:
		b.WriteString(m.assignmentView.Render(&view.AssignmentState{
			StaffField:  m.staffInput.View(),
			KeyField:    m.keyInput.View(),
			Submitting:  m.submitting,
			Active:      m.store.Active(),
			Cursor:      m.cursor,
			ListFocused: m.focus == focusList,
		}, m.width))
		b.WriteString("\n\n")
		b.WriteString(m.footerView.Render(view.AssignmentHints()))

	case viewDashboard:
		b.WriteString(m.dashboardView.Render(&view.DashboardState{
			Counts:      m.store.Counts(),
			SearchField: m.searchInput.View(),
			Table:       m.historyTable.View(),
			Loading:     m.loading,
			Spinner:     m.spinner.View(),
			Err:         m.dashboardErr,
		}, m.width))
		b.WriteString("\n\n")
		b.WriteString(m.footerView.Render(view.DashboardHints()))
	}

	return b.String()
}

// renderNotification renders the current transient notification, or an empty
// placeholder line so the layout doesn't jump when one appears.
func (m Model) renderNotification() string {
	n := m.notifications.Current()
	if n == nil {
		return "\n"
	}

	style := styles.NotifyInfo
	if n.Severity == SeverityError {
		style = styles.NotifyError
	}
	return style.Render(n.Message) + "\n"
}
