package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/keydesk/keydesk/internal/errors"
)

// Init starts the cursor blink and the notification tick loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeypress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		m.notifications.CheckTimeout()
		return m, tick()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loginDoneMsg:
		return m.handleLoginDone(msg)

	case fetchDoneMsg:
		return m.handleFetchDone(msg)

	case issueDoneMsg:
		return m.handleIssueDone(msg)

	case returnDoneMsg:
		return m.handleReturnDone(msg)
	}

	return m, nil
}

// handleLoginDone processes a completed credential exchange.
func (m Model) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	// Stale completion from a session that has since ended.
	if msg.epoch != m.gate.Epoch() {
		return m, nil
	}

	m.loggingIn = false

	if msg.err != nil {
		m.log.Warn("login failed", "error", msg.err)
		m.notifications.Error(errors.UserMessage(msg.err))
		return m, nil
	}

	m.gate.Login(msg.token)
	m.log.Info("login succeeded", "state", m.statusLine())

	m.usernameInput.Reset()
	m.passwordInput.Reset()

	m.view = viewAssignment
	m.focus = focusStaff
	m.staffInput.Focus()

	// Epoch advanced on login, so this fetch binds to the new session.
	return m, m.fetchCmd()
}

// handleFetchDone processes a completed collection fetch.
func (m Model) handleFetchDone(msg fetchDoneMsg) (tea.Model, tea.Cmd) {
	if msg.epoch != m.gate.Epoch() {
		return m, nil
	}

	m.loading = false

	if msg.err != nil {
		m.log.Warn("fetch failed", "error", msg.err)
		// The cache may no longer reflect the server; drop it rather
		// than show stale data.
		m.store.Clear()
		m.clampCursor()

		if m.view == viewDashboard {
			m.dashboardErr = errors.UserMessage(msg.err)
			m.historyTable.SetRows(nil)
		} else {
			m.notifications.Error(errors.UserMessage(msg.err))
		}
		return m, nil
	}

	m.dashboardErr = ""
	m.store.Replace(msg.assignments)
	m.clampCursor()
	if m.view == viewDashboard {
		m.refreshHistory()
	}
	return m, nil
}

// handleIssueDone processes a completed issue operation.
func (m Model) handleIssueDone(msg issueDoneMsg) (tea.Model, tea.Cmd) {
	if msg.epoch != m.gate.Epoch() {
		return m, nil
	}

	m.submitting = false

	if msg.err != nil {
		// Auth failures are not treated specially: the session stays up
		// and the form keeps its values so the user can retry.
		m.log.Warn("issue failed", "error", msg.err)
		m.notifications.Error(errors.UserMessage(msg.err))
		return m, nil
	}

	m.log.Info("key issued", "staff_id", msg.created.StaffID, "key_id", msg.created.KeyID)
	m.notifications.Info("Key issued successfully!")

	m.staffInput.Reset()
	m.keyInput.Reset()
	m.focus = focusStaff
	m.staffInput.Focus()
	m.keyInput.Blur()

	// The server owns record identity and timestamps; re-fetch the whole
	// collection instead of patching the cache locally.
	return m, m.fetchCmd()
}

// handleReturnDone processes a completed return operation.
func (m Model) handleReturnDone(msg returnDoneMsg) (tea.Model, tea.Cmd) {
	if msg.epoch != m.gate.Epoch() {
		return m, nil
	}

	m.submitting = false

	if msg.err != nil {
		m.log.Warn("return failed", "error", msg.err)
		m.notifications.Error(errors.UserMessage(msg.err))
		return m, nil
	}

	m.log.Info("key returned", "staff_id", msg.updated.StaffID, "key_id", msg.updated.KeyID)
	m.notifications.Info("Key returned successfully!")

	return m, m.fetchCmd()
}

// handleKeypress processes keyboard input.
func (m Model) handleKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global bindings
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+q":
		if m.view != viewLogin {
			m.log.Info("logout requested")
			m.resetSession()
			return m, nil
		}
	}

	switch m.view {
	case viewLogin:
		return m.handleLoginKeys(msg)
	case viewAssignment:
		return m.handleAssignmentKeys(msg)
	case viewDashboard:
		return m.handleDashboardKeys(msg)
	}

	return m, nil
}

// handleLoginKeys processes keyboard input on the login screen.
func (m Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		if m.focus == focusUsername {
			m.focus = focusPassword
			m.usernameInput.Blur()
			m.passwordInput.Focus()
		} else {
			m.focus = focusUsername
			m.passwordInput.Blur()
			m.usernameInput.Focus()
		}
		return m, nil

	case "enter":
		if m.loggingIn {
			return m, nil
		}
		username := m.usernameInput.Value()
		password := m.passwordInput.Value()
		if username == "" {
			m.notifications.Error(errors.UserMessage(errors.NewValidationError("Username")))
			return m, nil
		}
		if password == "" {
			m.notifications.Error(errors.UserMessage(errors.NewValidationError("Password")))
			return m, nil
		}
		m.loggingIn = true
		return m, m.loginCmd(username, password)
	}

	var cmd tea.Cmd
	if m.focus == focusUsername {
		m.usernameInput, cmd = m.usernameInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

// handleAssignmentKeys processes keyboard input on the assignment screen.
func (m Model) handleAssignmentKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.cycleAssignmentFocus(false)
		return m, nil

	case "shift+tab":
		m.cycleAssignmentFocus(true)
		return m, nil

	case "up":
		if m.focus == focusList && m.cursor > 0 {
			m.cursor--
			return m, nil
		}

	case "down":
		if m.focus == focusList {
			if m.cursor < len(m.store.Active())-1 {
				m.cursor++
			}
			return m, nil
		}

	case "enter":
		if m.submitting {
			return m, nil
		}
		if m.focus == focusList {
			active := m.store.Active()
			if len(active) == 0 {
				return m, nil
			}
			m.clampCursor()
			m.submitting = true
			return m, m.returnCmd(active[m.cursor].ID)
		}

		staffID := m.staffInput.Value()
		keyID := m.keyInput.Value()
		if staffID == "" {
			m.notifications.Error(errors.UserMessage(errors.NewValidationError("Staff ID")))
			return m, nil
		}
		if keyID == "" {
			m.notifications.Error(errors.UserMessage(errors.NewValidationError("Key ID")))
			return m, nil
		}
		m.submitting = true
		return m, m.issueCmd(staffID, keyID)

	case "f2":
		m.view = viewDashboard
		m.loading = true
		m.dashboardErr = ""
		m.staffInput.Blur()
		m.keyInput.Blur()
		m.searchInput.Reset()
		m.searchInput.Focus()
		return m, tea.Batch(m.fetchCmd(), m.spinner.Tick)
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusStaff:
		m.staffInput, cmd = m.staffInput.Update(msg)
	case focusKey:
		m.keyInput, cmd = m.keyInput.Update(msg)
	}
	return m, cmd
}

// cycleAssignmentFocus moves focus between the form fields and the active
// key list.
func (m *Model) cycleAssignmentFocus(reverse bool) {
	order := []focusArea{focusStaff, focusKey, focusList}
	idx := 0
	for i, f := range order {
		if f == m.focus {
			idx = i
			break
		}
	}
	if reverse {
		idx = (idx + len(order) - 1) % len(order)
	} else {
		idx = (idx + 1) % len(order)
	}
	m.focus = order[idx]

	m.staffInput.Blur()
	m.keyInput.Blur()
	switch m.focus {
	case focusStaff:
		m.staffInput.Focus()
	case focusKey:
		m.keyInput.Focus()
	case focusList:
		m.clampCursor()
	}
}

// handleDashboardKeys processes keyboard input on the dashboard screen.
func (m Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "f2":
		// Leaving the dashboard ends the session entirely: the operator
		// must sign in again to reach the assignment screen.
		m.log.Info("dashboard exited, session reset")
		m.resetSession()
		return m, nil

	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		m.historyTable, cmd = m.historyTable.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.refreshHistory()
	return m, cmd
}
