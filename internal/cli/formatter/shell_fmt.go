package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/buildplan/internal/domain"
)

// FormatShellWelcome renders the welcome banner shown on shell startup.
func FormatShellWelcome(active bool) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(StylePurple.Render("  buildplan") + "\n")
	b.WriteString(StyleDim.Render("  ─────────────────────────────") + "\n")
	b.WriteString("\n")
	if active {
		b.WriteString(StyleDim.Render("  Every edit recalculates the plan and can be undone.") + "\n")
	} else {
		b.WriteString(StyleDim.Render("  No plan loaded. Start one with 'new' or 'load <file>'.") + "\n")
	}
	b.WriteString("\n")
	b.WriteString("  " + StyleGreen.Render("show") + StyleDim.Render("                  Plan summary") + "\n")
	b.WriteString("  " + StyleGreen.Render("materials") + StyleDim.Render("             Quantities per material") + "\n")
	b.WriteString("  " + StyleGreen.Render("total Cement 60") + StyleDim.Render("       Set a material's total") + "\n")
	b.WriteString("  " + StyleGreen.Render("adjust Cement 1") + StyleDim.Render("       Live-edit one floor") + "\n")
	b.WriteString("  " + StyleGreen.Render("undo / redo") + StyleDim.Render("           Walk the edit history") + "\n")
	b.WriteString("  " + StyleGreen.Render("help") + StyleDim.Render("                  Show all commands") + "\n")
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("  Tab for autocomplete. Type 'help' for all commands.") + "\n")
	b.WriteString("\n")

	return b.String()
}

// helpCategory groups commands under a section header for the help display.
type helpCategory struct {
	title    string
	commands [][]string
}

func renderHelpCategory(cat helpCategory) string {
	var b strings.Builder
	b.WriteString("\n " + StyleHeader.Render(strings.ToUpper(cat.title)) + "\n")
	for _, c := range cat.commands {
		b.WriteString(fmt.Sprintf("  %-44s %s\n",
			StyleGreen.Render(c[0]),
			StyleDim.Render(c[1])))
	}
	return b.String()
}

// FormatShellHelp renders the categorized command reference.
func FormatShellHelp() string {
	categories := []helpCategory{
		{
			title: "Plan",
			commands: [][]string{
				{"new", "Answer the intake wizard and generate a plan"},
				{"load <file>", "Load a plan document (JSON or YAML)"},
				{"save <file>", "Write the current plan (JSON or YAML)"},
				{"show", "Plan summary and budget sections"},
				{"materials [name]", "Material totals, or one material by floor"},
				{"export <file.xlsx>", "Bill-of-materials workbook"},
				{"reset", "Discard the plan and its history"},
			},
		},
		{
			title: "Editing",
			commands: [][]string{
				{"set <material> <floor> [qty=N] [price=N]", "Edit one floor entry (--preview to dry-run)"},
				{"total <material> <qty>", "Set a material's total, split across floors (--preview)"},
				{"bulk <increase|decrease> <quantity|price> <pct> <m1,m2>", "Percentage edit (--independent rounds per floor)"},
				{"adjust <material> <floor>", "Live mode: ↑/↓ ±1, shift ±10, enter done"},
				{"undo / redo", "Step through history"},
				{"history", "List every snapshot"},
			},
		},
		{
			title: "Project",
			commands: [][]string{
				{"suggest [cost|materials|design|all]", "Advisor suggestions (--post adds them to chat)"},
				{"chat [text]", "Message the advisor, or show the chat"},
				{"pay", "Pay the booking amount"},
				{"paid <milestone>", "Mark a due milestone paid"},
				{"payments", "Payment schedule"},
				{"ticket <description>", "Raise a support ticket"},
				{"note <date> <text>", "Add your note to a weekly update"},
			},
		},
		{
			title: "Utilities",
			commands: [][]string{
				{"help", "Show this command reference"},
				{"clear", "Clear the screen"},
				{"exit / quit", "Quit buildplan"},
			},
		},
	}

	var b strings.Builder
	for _, cat := range categories {
		b.WriteString(renderHelpCategory(cat))
	}
	b.WriteString("\n" + StyleDim.Render("Material names are case-insensitive. Floors are numbered from 0 (Foundation)."))

	return RenderBox("Commands", b.String())
}

// FormatAdjust renders the live adjust line: the committed quantity, the
// pending one, and the previewed plan total.
func FormatAdjust(material string, floor int, unit string, committed, pending, previewTotal float64) string {
	label := fmt.Sprintf("%s @ %s", material, domain.FloorLabel(floor))
	qty := StyleBold.Render(Quantity(pending) + " " + unit)
	if pending != committed {
		qty = Dim(Quantity(committed)+" → ") + StyleYellow.Render(Quantity(pending)+" "+unit)
	}
	return fmt.Sprintf("%s %s  %s  %s %s\n%s",
		StylePurple.Render("adjust"),
		StyleFg.Render(label),
		qty,
		Dim("total"),
		StyleBold.Render(INR(previewTotal)),
		Dim("↑/↓ ±1 · shift+↑/↓ ±10 · enter done · esc discard pending"))
}
