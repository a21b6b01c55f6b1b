package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/keydesk/keydesk/internal/api"
	"github.com/keydesk/keydesk/internal/tui/styles"
)

// timeLayout is how timestamps are shown to the user.
const timeLayout = "2006-01-02 15:04"

// AssignmentState holds the state needed to render the assignment screen.
// This struct is populated by the Model and passed to the view for rendering.
type AssignmentState struct {
	// Rendered form inputs
	StaffField string
	KeyField   string

	// Submitting disables the submit hint while an issue call is in flight
	Submitting bool

	// Active assignments in server order, and the list cursor
	Active      []api.KeyAssignment
	Cursor      int
	ListFocused bool
}

// AssignmentView renders the issue form and the active key list side by side.
// It is stateless - all state is passed in via AssignmentState.
type AssignmentView struct{}

// NewAssignmentView creates a new AssignmentView instance.
func NewAssignmentView() *AssignmentView {
	return &AssignmentView{}
}

// Render renders the assignment screen to a string.
func (v *AssignmentView) Render(state *AssignmentState, width int) string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("RFID Key Assignment System"))
	b.WriteString("\n")

	paneWidth := (width - 8) / 2
	if paneWidth < 30 {
		paneWidth = 30
	}

	form := styles.ContentBox.Width(paneWidth).Render(v.renderForm(state))
	list := styles.ContentBox.Width(paneWidth).Render(v.renderActiveList(state))

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, form, " ", list))
	return b.String()
}

// renderForm renders the "Issue New Key" form pane.
func (v *AssignmentView) renderForm(state *AssignmentState) string {
	var b strings.Builder

	b.WriteString(styles.Primary.Render("Issue New Key"))
	b.WriteString("\n\n")

	b.WriteString("Staff ID (RFID Scan)\n")
	b.WriteString(state.StaffField)
	b.WriteString("\n\n")

	b.WriteString("Key ID\n")
	b.WriteString(state.KeyField)
	b.WriteString("\n\n")

	if state.Submitting {
		b.WriteString(styles.Muted.Render("Submitting..."))
	} else {
		b.WriteString(styles.Muted.Render("Press enter to issue"))
	}

	return b.String()
}

// renderActiveList renders the "Issued Keys" pane.
func (v *AssignmentView) renderActiveList(state *AssignmentState) string {
	var b strings.Builder

	b.WriteString(styles.Primary.Render(fmt.Sprintf("Issued Keys (%d)", len(state.Active))))
	b.WriteString("\n\n")

	if len(state.Active) == 0 {
		b.WriteString(styles.Muted.Render("No keys are currently issued."))
		return b.String()
	}

	for i, a := range state.Active {
		line := fmt.Sprintf("%s → %s  (issued %s)", a.StaffID, a.KeyID, a.IssueTime.Local().Format(timeLayout))
		if state.ListFocused && i == state.Cursor {
			b.WriteString(styles.SelectedRow.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if state.ListFocused {
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render("enter returns the selected key"))
	}

	return b.String()
}
