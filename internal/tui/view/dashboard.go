package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/keydesk/keydesk/internal/store"
	"github.com/keydesk/keydesk/internal/tui/styles"
)

// DashboardState holds the state needed to render the admin dashboard.
type DashboardState struct {
	Counts store.Counts

	// Rendered search input and history table
	SearchField string
	Table       string

	// Loading shows the spinner instead of the data views
	Loading bool
	Spinner string

	// Err, when non-empty, replaces the data views with a standalone error
	Err string
}

// DashboardView renders the admin dashboard: aggregate counts and the
// searchable assignment history table.
type DashboardView struct{}

// NewDashboardView creates a new DashboardView instance.
func NewDashboardView() *DashboardView {
	return &DashboardView{}
}

// Render renders the dashboard screen to a string.
func (v *DashboardView) Render(state *DashboardState, width int) string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Admin Dashboard"))
	b.WriteString("\n")

	if state.Loading {
		b.WriteString(state.Spinner)
		b.WriteString(" Loading...")
		return b.String()
	}

	// A failed fetch halts the data views in favor of the error display.
	if state.Err != "" {
		b.WriteString(styles.Error.Render(state.Err))
		return b.String()
	}

	b.WriteString(v.renderStats(state.Counts))
	b.WriteString("\n\n")

	b.WriteString(styles.Primary.Render("Assignment History"))
	b.WriteString("\n")
	b.WriteString(state.SearchField)
	b.WriteString("\n\n")
	b.WriteString(state.Table)

	return b.String()
}

// renderStats renders the three aggregate count boxes.
func (v *DashboardView) renderStats(c store.Counts) string {
	total := styles.StatBox.Render(fmt.Sprintf("Total Assignments\n%s", styles.StatValue.Render(fmt.Sprintf("%d", c.Total))))
	issued := styles.StatBox.Render(fmt.Sprintf("Issued Keys\n%s", styles.StatValue.Foreground(styles.StatusIssued).Render(fmt.Sprintf("%d", c.Issued))))
	returned := styles.StatBox.Render(fmt.Sprintf("Returned Keys\n%s", styles.StatValue.Foreground(styles.StatusReturned).Render(fmt.Sprintf("%d", c.Returned))))

	return lipgloss.JoinHorizontal(lipgloss.Top, total, " ", issued, " ", returned)
}
