package intelligence

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/buildplan/internal/domain"
	"github.com/alexanderramin/buildplan/internal/estimate"
)

// DeterministicSuggestion builds suggestion text from the plan alone.
func DeterministicSuggestion(kind SuggestionKind, p *domain.ProjectPlan) *Suggestion {
	var text string
	switch kind {
	case SuggestCostSavings:
		text = costSavingsFallback(p)
	case SuggestMaterialAlternatives:
		text = alternativesFallback(p)
	default:
		text = designFallback(p)
	}
	return &Suggestion{Kind: kind, Text: text, Source: "deterministic"}
}

func costSavingsFallback(p *domain.ProjectPlan) string {
	var b strings.Builder
	b.WriteString(costSavingsOpening)
	b.WriteString("\n")

	sections := append([]domain.BudgetSection(nil), p.BudgetBreakdown...)
	sort.SliceStable(sections, func(i, j int) bool { return sections[i].TotalCost > sections[j].TotalCost })
	if len(sections) > 0 && p.TotalCost > 0 {
		top := sections[0]
		fmt.Fprintf(&b, "- **%s** is your largest section at %.0f (%.0f%% of the total). Get two more quotes for it before committing.\n",
			top.SectionName, top.TotalCost, 100*top.TotalCost/p.TotalCost)
	}

	summaries := estimate.SummarizeMaterials(p)
	sort.SliceStable(summaries, func(i, j int) bool { return summaries[i].Cost > summaries[j].Cost })
	for i, s := range summaries {
		if i == 2 {
			break
		}
		fmt.Fprintf(&b, "- **%s** costs %.0f for %g %s. Buying in bulk from one supplier usually trims a few percent.\n",
			s.Material, s.Cost, s.TotalQuantity, s.Unit)
	}

	switch p.Intake.ConstructionQuality {
	case domain.QualityPremium, domain.QualityLuxury:
		b.WriteString("- Keep premium finishes for living areas and use standard specs in utility rooms.\n")
	default:
		b.WriteString("- Lock material rates early; cement and steel prices move with the season.\n")
	}
	return b.String()
}

func alternativesFallback(p *domain.ProjectPlan) string {
	in := p.Intake
	var b strings.Builder
	b.WriteString(alternativesOpening)
	b.WriteString("\n")

	wall := strings.ToLower(in.WallType)
	switch {
	case strings.Contains(wall, "brick"):
		b.WriteString("- **AAC blocks instead of red bricks**: lighter, better thermal insulation and faster to lay, which saves on mortar and labour.\n")
	case strings.Contains(wall, "aac"):
		b.WriteString("- **Fly-ash bricks** are a cheaper option to AAC where walls carry more load.\n")
	default:
		b.WriteString("- **AAC blocks** are worth pricing against your current wall material.\n")
	}

	floor := strings.ToLower(in.FlooringType)
	switch {
	case strings.Contains(floor, "marble") || strings.Contains(floor, "granite"):
		b.WriteString("- **Large-format vitrified tiles** give a similar look to stone at a lower cost and need no polishing.\n")
	default:
		b.WriteString("- **Polished concrete** in common areas is durable and costs less than most tiles over its lifetime.\n")
	}
	return b.String()
}

func designFallback(p *domain.ProjectPlan) string {
	in := p.Intake
	var b strings.Builder
	b.WriteString(designOpening)
	b.WriteString("\n")

	if in.IsDuplex {
		b.WriteString("- A **double-height living area** makes the most of the duplex and pulls light into both levels.\n")
	} else if in.Floors > 1 {
		b.WriteString("- Place the **staircase near the centre** of the plan with a skylight above to light the core of every floor.\n")
	} else {
		b.WriteString("- A small **internal courtyard** brings light and air into a single-storey home.\n")
	}
	if in.PlotArea > 0 && in.PlotArea < 1500 {
		fmt.Fprintf(&b, "- On a %g sq ft plot, built-in storage under stairs and beds frees up floor space.\n", in.PlotArea)
	} else {
		b.WriteString("- Align windows on opposite walls for **cross-ventilation** in bedrooms.\n")
	}
	return b.String()
}
