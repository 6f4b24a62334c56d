package domain

import (
	"sort"
	"strings"
)

// MaterialsSection is the budget section whose items are derived from
// material quantities.
const MaterialsSection SectionName = "Materials"

// ProjectPlan is one complete snapshot of a project's costs and materials.
// Snapshots held by the estimate history are immutable; edits always derive
// a new plan.
type ProjectPlan struct {
	ID                 string             `json:"id" yaml:"id"`
	Intake             Intake             `json:"wizardData" yaml:"wizardData"`
	TotalCost          float64            `json:"totalCost" yaml:"totalCost" validate:"gt=0"`
	CostPerSqFt        float64            `json:"costPerSqFt" yaml:"costPerSqFt" validate:"gte=0"`
	BudgetBreakdown    []BudgetSection    `json:"budgetBreakdown" yaml:"budgetBreakdown" validate:"required,min=1,dive"`
	MaterialQuantities []MaterialQuantity `json:"materialQuantities" yaml:"materialQuantities" validate:"dive"`

	// Collaborator-owned records. The estimate engine passes them through
	// untouched except for the dedicated chat/payment/ticket edits.
	ChatHistory     []ChatMessage      `json:"chatHistory" yaml:"chatHistory"`
	PaymentSchedule []PaymentMilestone `json:"paymentSchedule" yaml:"paymentSchedule"`
	PaymentStatus   PaymentStatus      `json:"paymentStatus" yaml:"paymentStatus"`
	Timeline        []TimelineEvent    `json:"timeline" yaml:"timeline"`
	WeeklyUpdates   []WeeklyUpdate     `json:"weeklyUpdates" yaml:"weeklyUpdates"`
	SupportTickets  []SupportTicket    `json:"supportTickets" yaml:"supportTickets"`
	SnagList        []SnagListItem     `json:"snagList" yaml:"snagList"`
}

// BudgetSection is a named cost bucket such as "Materials" or "Labour".
type BudgetSection struct {
	SectionName SectionName  `json:"sectionName" yaml:"sectionName" validate:"required"`
	TotalCost   float64      `json:"totalCost" yaml:"totalCost" validate:"gte=0"`
	Items       []BudgetItem `json:"items" yaml:"items" validate:"dive"`
}

// BudgetItem is a single budget line. When FloorBreakdown is non-empty,
// Cost equals the sum of the breakdown.
type BudgetItem struct {
	Item           string      `json:"item" yaml:"item" validate:"required"`
	Cost           float64     `json:"cost" yaml:"cost" validate:"gte=0"`
	Details        string      `json:"details,omitempty" yaml:"details,omitempty"`
	FloorBreakdown []FloorCost `json:"floorBreakdown,omitempty" yaml:"floorBreakdown,omitempty" validate:"dive"`

	// Material is the explicit link to MaterialQuantity.Material. It is
	// resolved once when a plan enters history.
	Material string `json:"material,omitempty" yaml:"material,omitempty"`
}

// FloorCost is one floor's share of a budget item.
type FloorCost struct {
	Floor string  `json:"floor" yaml:"floor" validate:"required"`
	Cost  float64 `json:"cost" yaml:"cost" validate:"gte=0"`
}

// MaterialQuantity is the quantity of one material on one floor.
// Floor 0 is foundation/common works; floor n is the n-th level.
type MaterialQuantity struct {
	Material         string   `json:"material" yaml:"material" validate:"required"`
	Quantity         float64  `json:"quantity" yaml:"quantity" validate:"gte=0"`
	Unit             string   `json:"unit" yaml:"unit"`
	UnitPrice        float64  `json:"unitPrice" yaml:"unitPrice" validate:"gte=0"`
	Floor            int      `json:"floor" yaml:"floor" validate:"gte=0"`
	OriginalQuantity *float64 `json:"originalQuantity,omitempty" yaml:"originalQuantity,omitempty"`
}

// Discrete reports whether the entry is counted in whole units.
func (m MaterialQuantity) Discrete() bool {
	return IsDiscreteUnit(m.Unit)
}

// Cost returns quantity times unit price.
func (m MaterialQuantity) Cost() float64 {
	return m.Quantity * m.UnitPrice
}

// Baseline returns the quantity captured when the plan was generated,
// falling back to the current quantity.
func (m MaterialQuantity) Baseline() float64 {
	return Float64FromPtrWithDefault(m.Quantity, m.OriginalQuantity)
}

// IsDiscreteUnit reports whether quantities in the given unit must be whole
// numbers. Any unit label containing "bag" qualifies.
func IsDiscreteUnit(unit string) bool {
	return strings.Contains(strings.ToLower(unit), "bag")
}

// SectionIndex returns the index of the named section, or -1.
func (p *ProjectPlan) SectionIndex(name SectionName) int {
	for i := range p.BudgetBreakdown {
		if strings.EqualFold(string(p.BudgetBreakdown[i].SectionName), string(name)) {
			return i
		}
	}
	return -1
}

// EntryIndexes returns the indexes of every entry for material, ordered by
// ascending floor whatever order the entries are stored in.
func (p *ProjectPlan) EntryIndexes(material string) []int {
	var idx []int
	for i := range p.MaterialQuantities {
		if p.MaterialQuantities[i].Material == material {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return p.MaterialQuantities[idx[a]].Floor < p.MaterialQuantities[idx[b]].Floor
	})
	return idx
}

// EntryIndex returns the index of the (material, floor) entry, or -1.
func (p *ProjectPlan) EntryIndex(material string, floor int) int {
	for i := range p.MaterialQuantities {
		if p.MaterialQuantities[i].Material == material && p.MaterialQuantities[i].Floor == floor {
			return i
		}
	}
	return -1
}

// MaterialNames returns each distinct material once, in first-seen order.
func (p *ProjectPlan) MaterialNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range p.MaterialQuantities {
		if !seen[m.Material] {
			seen[m.Material] = true
			names = append(names, m.Material)
		}
	}
	return names
}

// ResolveMaterialName maps a case-insensitive name to the plan's spelling.
func (p *ProjectPlan) ResolveMaterialName(name string) (string, bool) {
	for _, m := range p.MaterialNames() {
		if strings.EqualFold(m, name) {
			return m, true
		}
	}
	return "", false
}
