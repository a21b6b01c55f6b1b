package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/keydesk/keydesk/internal/api"
)

// tickMsg drives notification timeout checks.
type tickMsg time.Time

// tickInterval is how often the model wakes to check notification timeouts.
const tickInterval = 250 * time.Millisecond

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Completion messages for async API calls. Each carries the session epoch
// captured when the call started; the update loop discards completions whose
// epoch no longer matches the gate.

type loginDoneMsg struct {
	epoch uint64
	token string
	err   error
}

type fetchDoneMsg struct {
	epoch       uint64
	assignments []api.KeyAssignment
	err         error
}

type issueDoneMsg struct {
	epoch   uint64
	created *api.KeyAssignment
	err     error
}

type returnDoneMsg struct {
	epoch   uint64
	updated *api.KeyAssignment
	err     error
}

// loginCmd exchanges credentials for a token.
func (m *Model) loginCmd(username, password string) tea.Cmd {
	epoch := m.gate.Epoch()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.API.Timeout)
		defer cancel()

		token, err := m.client.Login(ctx, username, password)
		return loginDoneMsg{epoch: epoch, token: token, err: err}
	}
}

// fetchCmd re-fetches the entire assignment collection.
func (m *Model) fetchCmd() tea.Cmd {
	epoch := m.gate.Epoch()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.API.Timeout)
		defer cancel()

		assignments, err := m.client.List(ctx)
		return fetchDoneMsg{epoch: epoch, assignments: assignments, err: err}
	}
}

// issueCmd creates a new assignment in Issued state.
func (m *Model) issueCmd(staffID, keyID string) tea.Cmd {
	epoch := m.gate.Epoch()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.API.Timeout)
		defer cancel()

		created, err := m.client.Issue(ctx, staffID, keyID)
		return issueDoneMsg{epoch: epoch, created: created, err: err}
	}
}

// returnCmd marks an assignment as returned, stamped with the current time.
func (m *Model) returnCmd(id int) tea.Cmd {
	epoch := m.gate.Epoch()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.API.Timeout)
		defer cancel()

		updated, err := m.client.Return(ctx, id, time.Now())
		return returnDoneMsg{epoch: epoch, updated: updated, err: err}
	}
}
