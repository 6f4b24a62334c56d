package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/buildplan/internal/cli/formatter"
	"github.com/alexanderramin/buildplan/internal/domain"
	"github.com/alexanderramin/buildplan/internal/llm"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const minPlotArea = 500

var additionalRoomOptions = []string{"Pooja Room", "Store Room", "Office", "Gym", "Home Theatre"}

// buildplanHuhTheme returns a huh theme using the formatter's Gruvbox palette.
func buildplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// intakeWizard collects the requirements a plan is generated from. The
// form binds directly to its fields, so it must not be copied once the
// form is built.
type intakeWizard struct {
	intake   domain.Intake
	plotArea string
}

func newIntakeWizard(start domain.Intake) *intakeWizard {
	return &intakeWizard{
		intake:   start,
		plotArea: strconv.FormatFloat(start.PlotArea, 'f', -1, 64),
	}
}

func validateLocation(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("location is required")
	}
	return nil
}

func validatePlotArea(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errors.New("enter the plot area in sq. ft.")
	}
	if v < minPlotArea {
		return fmt.Errorf("plot area must be at least %d sq. ft.", minPlotArea)
	}
	return nil
}

func intOptions(from, to int) []huh.Option[int] {
	opts := make([]huh.Option[int], 0, to-from+1)
	for i := from; i <= to; i++ {
		opts = append(opts, huh.NewOption(strconv.Itoa(i), i))
	}
	return opts
}

// form builds the multi-page intake form.
func (w *intakeWizard) form() *huh.Form {
	in := &w.intake
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Where are you building?").
				Placeholder("e.g. Bengaluru").
				Value(&in.Location).
				Validate(validateLocation),
			huh.NewInput().
				Title("Plot area (sq. ft.)").
				Value(&w.plotArea).
				Validate(validatePlotArea),
			huh.NewSelect[int]().
				Title("Floors").
				Options(intOptions(1, 6)...).
				Value(&in.Floors),
			huh.NewConfirm().
				Title("Duplex?").
				Value(&in.IsDuplex),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Bedrooms").
				Options(intOptions(1, 8)...).
				Value(&in.Bedrooms),
			huh.NewSelect[int]().
				Title("Bathrooms").
				Options(intOptions(1, 8)...).
				Value(&in.Bathrooms),
			huh.NewMultiSelect[string]().
				Title("Additional rooms").
				Options(huh.NewOptions(additionalRoomOptions...)...).
				Value(&in.AdditionalRooms),
		),
		huh.NewGroup(
			huh.NewSelect[domain.ConstructionQuality]().
				Title("Construction quality").
				Options(huh.NewOptions(
					domain.QualityBasic, domain.QualityStandard, domain.QualityPremium,
					domain.QualityEco, domain.QualityLuxury,
				)...).
				Value(&in.ConstructionQuality),
			huh.NewSelect[string]().
				Title("Foundation").
				Options(huh.NewOptions("Isolated Footing", "Standard Raft")...).
				Value(&in.FoundationType),
			huh.NewSelect[string]().
				Title("Walls").
				Options(huh.NewOptions("Red Bricks", "Concrete Blocks", "AAC Blocks")...).
				Value(&in.WallType),
			huh.NewSelect[string]().
				Title("Flooring").
				Options(huh.NewOptions("Vitrified Tiles", "Marble")...).
				Value(&in.FlooringType),
		),
		huh.NewGroup(
			huh.NewSelect[domain.KitchenType]().
				Title("Kitchen").
				Options(huh.NewOptions(domain.KitchenModular, domain.KitchenStandard)...).
				Value(&in.KitchenType),
			huh.NewSelect[string]().
				Title("Doors and windows").
				Options(huh.NewOptions("Teak Wood Frame", "Sal Wood Frame", "UPVC")...).
				Value(&in.DoorWindowMaterial),
			huh.NewSelect[string]().
				Title("Electrical").
				Options(huh.NewOptions("Standard (ISI Brands)", "Premium (Modular Switches)")...).
				Value(&in.ElectricalSpec),
			huh.NewConfirm().Title("False ceiling?").Value(&in.HasFalseCeiling),
			huh.NewConfirm().Title("Underground sump?").Value(&in.HasSump),
			huh.NewConfirm().Title("Solar panels?").Value(&in.HasSolar),
			huh.NewConfirm().Title("Compound wall?").Value(&in.HasCompoundWall),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Anything else?").
				Placeholder("Tell us more about the project").
				Value(&in.AdditionalNotes),
		),
	).WithTheme(buildplanHuhTheme()).WithShowHelp(false)
}

// Intake returns the answers as a validated Intake.
func (w *intakeWizard) Intake() (domain.Intake, error) {
	if err := validatePlotArea(w.plotArea); err != nil {
		return domain.Intake{}, err
	}
	in := w.intake
	in.Location = strings.TrimSpace(in.Location)
	in.PlotArea, _ = strconv.ParseFloat(strings.TrimSpace(w.plotArea), 64)
	if err := llm.ValidateTags(in); err != nil {
		return domain.Intake{}, fmt.Errorf("intake: %w", err)
	}
	return in, nil
}
