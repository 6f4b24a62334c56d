package estimate

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/buildplan/internal/contract"
	"github.com/alexanderramin/buildplan/internal/domain"
)

// LinkBudgetItems resolves, once per plan, which Materials budget item
// prices each material and stores the answer on BudgetItem.Material.
// Explicit links win. Unlinked materials take the first unclaimed item
// whose label contains the material name, ignoring case. Misses and
// multiple candidates are reported, never fatal.
func LinkBudgetItems(p *domain.ProjectPlan) []contract.Issue {
	names := p.MaterialNames()
	si := p.SectionIndex(domain.MaterialsSection)
	if si < 0 {
		issues := make([]contract.Issue, 0, len(names))
		for _, name := range names {
			issues = append(issues, contract.Issue{
				Code:     contract.IssueUnmatchedBudgetItem,
				Material: name,
				Message:  "plan has no Materials section",
			})
		}
		return issues
	}
	items := p.BudgetBreakdown[si].Items

	claimed := make(map[int]bool)
	linked := make(map[string]bool)
	for i := range items {
		if items[i].Material == "" {
			continue
		}
		if name, ok := p.ResolveMaterialName(items[i].Material); ok && !linked[name] {
			items[i].Material = name
			claimed[i] = true
			linked[name] = true
		}
	}

	var issues []contract.Issue
	for _, name := range names {
		if linked[name] {
			continue
		}
		var candidates []int
		for i := range items {
			if !claimed[i] && strings.Contains(strings.ToLower(items[i].Item), strings.ToLower(name)) {
				candidates = append(candidates, i)
			}
		}
		switch {
		case len(candidates) == 0:
			issues = append(issues, contract.Issue{
				Code:     contract.IssueUnmatchedBudgetItem,
				Material: name,
				Message:  "no Materials budget item mentions this material; its cost will not reach the budget",
			})
			continue
		case len(candidates) > 1:
			labels := make([]string, len(candidates))
			for k, i := range candidates {
				labels[k] = items[i].Item
			}
			issues = append(issues, contract.Issue{
				Code:     contract.IssueAmbiguousBudgetItem,
				Material: name,
				Message:  fmt.Sprintf("linked to %q; also matched %s", items[candidates[0]].Item, strings.Join(labels[1:], ", ")),
			})
		}
		items[candidates[0]].Material = name
		claimed[candidates[0]] = true
		linked[name] = true
	}
	return issues
}
