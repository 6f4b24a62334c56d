package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/buildplan/internal/contract"
	"github.com/alexanderramin/buildplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// IssueColor returns the style for an edit issue. Conditions that leave a
// field unchanged are yellow; informational ones are dim.
func IssueColor(code contract.IssueCode) lipgloss.Style {
	switch code {
	case contract.IssueInvalidQuantity, contract.IssueInvalidPrice, contract.IssueUnknownMaterial:
		return StyleRed
	case contract.IssueZeroBaseline, contract.IssueRoundingDrift, contract.IssueAmbiguousBudgetItem:
		return StyleYellow
	default:
		return StyleDim
	}
}

// MilestoneIndicator returns a colored status marker such as "● DUE".
func MilestoneIndicator(status domain.MilestoneStatus) string {
	switch status {
	case domain.MilestoneCompleted:
		return StyleGreen.Render("● COMPLETED")
	case domain.MilestoneDue:
		return StyleYellow.Render("● DUE")
	case domain.MilestonePending:
		return StyleDim.Render("● PENDING")
	default:
		return StyleDim.Render("● " + strings.ToUpper(string(status)))
	}
}

// TicketIndicator colors a ticket status.
func TicketIndicator(status domain.TicketStatus) string {
	switch status {
	case domain.TicketResolved:
		return StyleGreen.Render(string(status))
	case domain.TicketOpen:
		return StyleYellow.Render(string(status))
	default:
		return StyleBlue.Render(string(status))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Error renders an error line the way the shell shows it.
func Error(err error) string {
	return StyleRed.Render(fmt.Sprintf("Error: %v", err))
}
