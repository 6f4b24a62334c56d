package estimate

import (
	"github.com/alexanderramin/buildplan/internal/contract"
	"github.com/alexanderramin/buildplan/internal/domain"
)

// SummarizeMaterials aggregates every material across floors, in the
// order materials first appear in the plan.
func SummarizeMaterials(p *domain.ProjectPlan) []contract.MaterialSummary {
	if p == nil {
		return nil
	}
	var items []domain.BudgetItem
	if si := p.SectionIndex(domain.MaterialsSection); si >= 0 {
		items = p.BudgetBreakdown[si].Items
	}

	names := p.MaterialNames()
	out := make([]contract.MaterialSummary, 0, len(names))
	for _, name := range names {
		s := contract.MaterialSummary{Material: name}
		for _, e := range p.MaterialQuantities {
			if e.Material != name {
				continue
			}
			if s.Floors == 0 {
				s.Unit = e.Unit
				s.Discrete = e.Discrete()
			}
			s.Floors++
			s.TotalQuantity += e.Quantity
			s.BaselineQuantity += e.Baseline()
			s.Cost += e.Cost()
		}
		s.Delta = s.TotalQuantity - s.BaselineQuantity
		if item := linkedItem(items, name); item != nil {
			s.BudgetItem = item.Item
		}
		out = append(out, s)
	}
	return out
}

// Materials summarises the current plan's materials.
func (w *Workspace) Materials() []contract.MaterialSummary {
	return SummarizeMaterials(w.Current())
}

// History lists every snapshot with its label, marking the cursor.
func (w *Workspace) History() []contract.HistoryEntry {
	if w.history == nil {
		return nil
	}
	entries := w.history.Entries()
	out := make([]contract.HistoryEntry, len(entries))
	for i, s := range entries {
		out[i] = contract.HistoryEntry{
			Index:     i,
			Label:     s.Label,
			At:        s.At,
			TotalCost: s.Plan.TotalCost,
			Current:   i == w.history.Index(),
		}
	}
	return out
}
