package estimate

import (
	"sort"
	"strings"

	"github.com/alexanderramin/buildplan/internal/domain"
)

// Baseline is the cost pair captured from history index 0. Cost per
// square foot is always rescaled from it, never derived from plot area.
type Baseline struct {
	TotalCost   float64
	CostPerSqFt float64
}

func baselineOf(p *domain.ProjectPlan) Baseline {
	return Baseline{TotalCost: p.TotalCost, CostPerSqFt: p.CostPerSqFt}
}

// Scale rescales the baseline cost per square foot by total/baseline
// total. With no baseline total it returns fallback.
func (b Baseline) Scale(total, fallback float64) float64 {
	if b.TotalCost <= 0 {
		return fallback
	}
	return b.CostPerSqFt * total / b.TotalCost
}

// Recalculate reprices the named materials' budget items, then re-sums the
// Materials section, the plan total and the cost per square foot.
func Recalculate(d *Draft, materials []string, base Baseline) {
	budget := d.Budget()
	entries := d.Peek().MaterialQuantities

	if si := d.Peek().SectionIndex(domain.MaterialsSection); si >= 0 {
		section := &budget[si]
		for _, name := range materials {
			item := linkedItem(section.Items, name)
			if item == nil {
				continue
			}
			cost, floors := materialCost(entries, name)
			item.Cost = cost
			if len(item.FloorBreakdown) > 0 {
				item.FloorBreakdown = floors
			}
		}
		section.TotalCost = 0
		for _, it := range section.Items {
			section.TotalCost += it.Cost
		}
	}

	var total float64
	for _, s := range budget {
		total += s.TotalCost
	}
	d.SetTotalCost(total)
	d.SetCostPerSqFt(base.Scale(total, d.Peek().CostPerSqFt))
}

// materialCost sums quantity*price over a material's entries and returns
// the per-floor split, ordered by floor.
func materialCost(entries []domain.MaterialQuantity, material string) (float64, []domain.FloorCost) {
	byFloor := make(map[int]float64)
	var total float64
	for _, e := range entries {
		if e.Material != material {
			continue
		}
		total += e.Cost()
		byFloor[e.Floor] += e.Cost()
	}
	floors := make([]int, 0, len(byFloor))
	for f := range byFloor {
		floors = append(floors, f)
	}
	sort.Ints(floors)
	out := make([]domain.FloorCost, len(floors))
	for i, f := range floors {
		out[i] = domain.FloorCost{Floor: domain.FloorLabel(f), Cost: byFloor[f]}
	}
	return total, out
}

func linkedItem(items []domain.BudgetItem, material string) *domain.BudgetItem {
	for i := range items {
		if strings.EqualFold(items[i].Material, material) {
			return &items[i]
		}
	}
	return nil
}
