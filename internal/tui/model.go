// Package tui implements the terminal user interface for the key desk.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/keydesk/keydesk/internal/api"
	"github.com/keydesk/keydesk/internal/config"
	"github.com/keydesk/keydesk/internal/logging"
	"github.com/keydesk/keydesk/internal/session"
	"github.com/keydesk/keydesk/internal/store"
	"github.com/keydesk/keydesk/internal/tui/styles"
	"github.com/keydesk/keydesk/internal/tui/view"
)

// viewState identifies which screen is active.
type viewState int

const (
	viewLogin viewState = iota
	viewAssignment
	viewDashboard
)

// focusArea identifies which part of a screen has keyboard focus.
type focusArea int

const (
	focusUsername focusArea = iota
	focusPassword
	focusStaff
	focusKey
	focusList
)

// historyTimeLayout is how timestamps are shown in the dashboard table.
const historyTimeLayout = "2006-01-02 15:04"

// Model is the top-level Bubbletea model. It routes between the login,
// assignment and dashboard screens and owns all mutable UI state.
type Model struct {
	cfg           *config.Config
	gate          *session.Gate
	client        *api.Client
	store         *store.Store
	log           *logging.Logger
	notifications *NotificationManager

	view  viewState
	focus focusArea

	// Login screen
	usernameInput textinput.Model
	passwordInput textinput.Model
	loggingIn     bool

	// Assignment screen
	staffInput textinput.Model
	keyInput   textinput.Model
	cursor     int
	submitting bool

	// Dashboard screen
	searchInput  textinput.Model
	historyTable table.Model
	spinner      spinner.Model
	loading      bool
	dashboardErr string

	// Views
	loginView      *view.LoginView
	assignmentView *view.AssignmentView
	dashboardView  *view.DashboardView
	footerView     *view.FooterView

	width    int
	height   int
	ready    bool
	quitting bool
}

// NewModel creates the top-level model. The gate starts unauthenticated, so
// the login screen is always shown first.
func NewModel(cfg *config.Config, gate *session.Gate, client *api.Client, st *store.Store, log *logging.Logger) Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 64
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	staff := textinput.New()
	staff.Placeholder = "scan badge or type staff ID"
	staff.CharLimit = 64

	key := textinput.New()
	key.Placeholder = "key ID"
	key.CharLimit = 64

	search := textinput.New()
	search.Placeholder = "search by staff or key ID"
	search.CharLimit = 64
	search.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Primary

	return Model{
		cfg:           cfg,
		gate:          gate,
		client:        client,
		store:         st,
		log:           log.With("component", "tui"),
		notifications: NewNotificationManager(cfg.Notifications.AutoDismiss),

		view:  viewLogin,
		focus: focusUsername,

		usernameInput: username,
		passwordInput: password,
		staffInput:    staff,
		keyInput:      key,
		searchInput:   search,
		historyTable:  newHistoryTable(),
		spinner:       sp,

		loginView:      view.NewLoginView(),
		assignmentView: view.NewAssignmentView(),
		dashboardView:  view.NewDashboardView(),
		footerView:     view.NewFooterView(),
	}
}

// newHistoryTable builds the dashboard history table with fixed columns.
func newHistoryTable() table.Model {
	columns := []table.Column{
		{Title: "Staff ID", Width: 16},
		{Title: "Key ID", Width: 12},
		{Title: "Status", Width: 10},
		{Title: "Issued", Width: 18},
		{Title: "Returned", Width: 18},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).Foreground(styles.PrimaryColor)
	s.Selected = styles.SelectedRow
	t.SetStyles(s)

	return t
}

// historyRows converts assignments into table rows, newest first as the
// server returns them.
func historyRows(assignments []api.KeyAssignment) []table.Row {
	rows := make([]table.Row, 0, len(assignments))
	for _, a := range assignments {
		returned := "-"
		if a.ReturnTime != nil {
			returned = a.ReturnTime.Local().Format(historyTimeLayout)
		}
		rows = append(rows, table.Row{
			a.StaffID,
			a.KeyID,
			string(a.Status),
			a.IssueTime.Local().Format(historyTimeLayout),
			returned,
		})
	}
	return rows
}

// refreshHistory rebuilds the table rows from the store, applying the
// current search filter.
func (m *Model) refreshHistory() {
	m.historyTable.SetRows(historyRows(m.store.Filter(m.searchInput.Value())))
	m.historyTable.SetCursor(0)
}

// clampCursor keeps the active-list cursor within bounds after the list
// shrinks.
func (m *Model) clampCursor() {
	active := m.store.Active()
	if m.cursor >= len(active) {
		m.cursor = len(active) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// resetSession tears the whole session down: credential, cached data,
// notifications and every input. The next screen is always login.
func (m *Model) resetSession() {
	m.gate.Logout()
	m.store.Clear()
	m.notifications.ClearAll()

	m.usernameInput.Reset()
	m.passwordInput.Reset()
	m.staffInput.Reset()
	m.keyInput.Reset()
	m.searchInput.Reset()
	m.historyTable.SetRows(nil)

	m.loggingIn = false
	m.submitting = false
	m.loading = false
	m.dashboardErr = ""
	m.cursor = 0

	m.view = viewLogin
	m.focus = focusUsername
	m.usernameInput.Focus()
	m.passwordInput.Blur()
	m.staffInput.Blur()
	m.keyInput.Blur()
}

// statusLine is a debug summary used in logs.
func (m *Model) statusLine() string {
	return fmt.Sprintf("view=%d focus=%d cached=%d", m.view, m.focus, m.store.Len())
}
