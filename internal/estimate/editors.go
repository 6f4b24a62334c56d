package estimate

import (
	"fmt"
	"math"

	"github.com/alexanderramin/buildplan/internal/allocation"
	"github.com/alexanderramin/buildplan/internal/contract"
)

// driftTolerance is how far a rounded sum may sit from the exact scaled
// total before it is reported.
const driftTolerance = 1e-9

func validAmount(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

func floorPtr(f int) *int { return &f }

// editFloorEntry sets quantity and/or unit price on one entry. Invalid
// values leave their field untouched and produce an issue. Discrete
// quantities are rounded to the nearest whole unit.
func editFloorEntry(d *Draft, idx int, req contract.FloorEditRequest, base Baseline) []contract.Issue {
	var issues []contract.Issue
	entries := d.Materials()
	e := &entries[idx]

	if req.Quantity != nil {
		q := *req.Quantity
		if validAmount(q) {
			if e.Discrete() {
				q = math.Round(q)
			}
			e.Quantity = q
		} else {
			issues = append(issues, contract.Issue{
				Code:     contract.IssueInvalidQuantity,
				Material: e.Material,
				Floor:    floorPtr(e.Floor),
				Message:  fmt.Sprintf("quantity %g ignored", q),
			})
		}
	}
	if req.UnitPrice != nil {
		p := *req.UnitPrice
		if validAmount(p) {
			e.UnitPrice = p
		} else {
			issues = append(issues, contract.Issue{
				Code:     contract.IssueInvalidPrice,
				Material: e.Material,
				Floor:    floorPtr(e.Floor),
				Message:  fmt.Sprintf("unit price %g ignored", p),
			})
		}
	}

	Recalculate(d, []string{e.Material}, base)
	return issues
}

// editTotalQuantity re-splits a material's aggregate quantity across its
// floors through the allocator.
func editTotalQuantity(d *Draft, material string, total float64, base Baseline) []contract.Issue {
	var issues []contract.Issue
	idx := d.Peek().EntryIndexes(material)

	if !validAmount(total) {
		issues = append(issues, contract.Issue{
			Code:     contract.IssueInvalidQuantity,
			Material: material,
			Message:  fmt.Sprintf("total %g ignored", total),
		})
	} else if issue, ok := redistribute(d, idx, total); !ok {
		issues = append(issues, issue)
	}

	Recalculate(d, []string{material}, base)
	return issues
}

// redistribute writes an allocator split of target over the entries at
// idx. The first entry's unit decides whether the material is discrete.
func redistribute(d *Draft, idx []int, target float64) (contract.Issue, bool) {
	if len(idx) == 0 {
		return contract.Issue{}, true
	}
	entries := d.Peek().MaterialQuantities
	current := make([]float64, len(idx))
	for k, i := range idx {
		current[k] = entries[i].Quantity
	}
	material := entries[idx[0]].Material

	res := allocation.Redistribute(current, target, entries[idx[0]].Discrete())
	switch res.Outcome {
	case allocation.ZeroBaseline:
		return contract.Issue{
			Code:     contract.IssueZeroBaseline,
			Material: material,
			Message:  fmt.Sprintf("current total is 0; cannot split %g across floors", target),
		}, false
	case allocation.InvalidTarget:
		return contract.Issue{
			Code:     contract.IssueInvalidQuantity,
			Material: material,
			Message:  fmt.Sprintf("total %g ignored", target),
		}, false
	case allocation.Applied:
		mutable := d.Materials()
		for k, i := range idx {
			mutable[i].Quantity = res.Quantities[k]
		}
	}
	return contract.Issue{}, true
}

// editBulk scales quantity or price of every entry of the named materials.
// Quantities are re-split through the allocator so each material lands on
// exactly its scaled total. With req.Independent every entry is rounded on
// its own and any resulting drift is reported.
func editBulk(d *Draft, materials []string, req contract.BulkEditRequest, base Baseline) []contract.Issue {
	var issues []contract.Issue
	factor := req.Factor()

	for _, name := range materials {
		idx := d.Peek().EntryIndexes(name)
		switch {
		case req.Field == contract.FieldPrice:
			entries := d.Materials()
			for _, i := range idx {
				entries[i].UnitPrice *= factor
			}
		case req.Independent:
			if issue, ok := scaleIndependently(d, idx, factor); !ok {
				issues = append(issues, issue)
			}
		default:
			var current float64
			for _, i := range idx {
				current += d.Peek().MaterialQuantities[i].Quantity
			}
			if current == 0 {
				continue
			}
			if issue, ok := redistribute(d, idx, current*factor); !ok {
				issues = append(issues, issue)
			}
		}
	}

	Recalculate(d, materials, base)
	return issues
}

func scaleIndependently(d *Draft, idx []int, factor float64) (contract.Issue, bool) {
	entries := d.Materials()
	var exact float64
	scaled := make([]float64, len(idx))
	for k, i := range idx {
		q := entries[i].Quantity * factor
		exact += q
		if entries[i].Discrete() {
			q = math.Round(q)
		}
		entries[i].Quantity = q
		scaled[k] = q
	}
	if len(idx) == 0 {
		return contract.Issue{}, true
	}
	// Discrete materials can at best land on the nearest whole total.
	want := exact
	if entries[idx[0]].Discrete() {
		want = math.Round(exact)
	}
	if math.Abs(allocation.Drift(scaled, want)) <= driftTolerance {
		return contract.Issue{}, true
	}
	return contract.Issue{
		Code:     contract.IssueRoundingDrift,
		Material: entries[idx[0]].Material,
		Message:  fmt.Sprintf("floor totals sum to %g, scaled total is %g", allocation.Sum(scaled), want),
	}, false
}
