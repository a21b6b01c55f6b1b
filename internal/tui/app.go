package tui

import (
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/keydesk/keydesk/internal/api"
	"github.com/keydesk/keydesk/internal/config"
	"github.com/keydesk/keydesk/internal/logging"
	"github.com/keydesk/keydesk/internal/session"
	"github.com/keydesk/keydesk/internal/store"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
}

// New creates a new TUI application
func New(cfg *config.Config, gate *session.Gate, client *api.Client, st *store.Store, log *logging.Logger) *App {
	return &App{
		model: NewModel(cfg, gate, client, st, log),
	}
}

// Run starts the TUI application
func (a *App) Run() error {
	a.program = tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
	)

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		<-sigChan
		if a.program != nil {
			a.program.Send(tea.Quit())
		}
	}()

	_, err := a.program.Run()

	signal.Stop(sigChan)

	return err
}
