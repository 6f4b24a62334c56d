package intelligence

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alexanderramin/buildplan/internal/domain"
)

const advisorSystemPrompt = `You are a friendly construction advisor for homeowners in India.
You answer in a conversational tone, as a single message, using markdown lists where useful.
Keep suggestions practical and specific to the plan you are given. Do not invent figures that
contradict the plan.`

// Opening lines each suggestion kind must start with.
const (
	costSavingsOpening  = "I've analyzed your plan and here are a few ideas to optimize the budget:"
	alternativesOpening = "Considering your project goals, here are some interesting material alternatives to think about:"
	designOpening       = "From an architectural perspective, here are a couple of ideas to enhance your home's design and feel:"
)

func buildSuggestionPrompt(kind SuggestionKind, p *domain.ProjectPlan) string {
	in := p.Intake
	var b strings.Builder
	switch kind {
	case SuggestCostSavings:
		b.WriteString("Suggest actionable cost savings that do not significantly compromise the quality level.\n")
		fmt.Fprintf(&b, "Start with %q.\n\n", costSavingsOpening)
		b.WriteString("## Project Context\n")
		fmt.Fprintf(&b, "- Location: %s\n- Quality: %s\n- Total Cost: %.0f\n", in.Location, in.ConstructionQuality, p.TotalCost)
		b.WriteString("- Budget Breakdown:\n")
		for _, s := range p.BudgetBreakdown {
			fmt.Fprintf(&b, "  - %s: %.0f\n", s.SectionName, s.TotalCost)
		}
	case SuggestMaterialAlternatives:
		fmt.Fprintf(&b, "Suggest 1-2 alternative materials offering better value, durability or aesthetics for %s quality.\n", in.ConstructionQuality)
		fmt.Fprintf(&b, "Start with %q.\n\n", alternativesOpening)
		b.WriteString("## Project Context\n")
		fmt.Fprintf(&b, "- Location: %s\n- Quality: %s\n- Walls: %s\n- Flooring: %s\n",
			in.Location, in.ConstructionQuality, in.WallType, in.FlooringType)
	case SuggestDesignImprovements:
		fmt.Fprintf(&b, "Suggest 1-2 creative design improvements for a %g sq ft plot: space use, natural light, ventilation.\n", in.PlotArea)
		fmt.Fprintf(&b, "Start with %q.\n\n", designOpening)
		b.WriteString("## Project Context\n")
		fmt.Fprintf(&b, "- Location: %s\n- Plot Area: %g sq ft\n- Floors: %d\n- Rooms: %d Bed, %d Bath\n",
			in.Location, in.PlotArea, in.Floors, in.Bedrooms, in.Bathrooms)
	}
	if spec, err := json.MarshalIndent(in, "", "  "); err == nil {
		b.WriteString("- Key Specs:\n")
		b.Write(spec)
		b.WriteString("\n")
	}
	return b.String()
}
