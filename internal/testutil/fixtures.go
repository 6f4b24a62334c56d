package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/buildplan/internal/domain"
)

// FixedNow is the clock used by workspace tests.
var FixedNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

// Clock returns a func that always reports FixedNow.
func Clock() func() time.Time {
	return func() time.Time { return FixedNow }
}

// Plan options
type PlanOption func(*domain.ProjectPlan)

// WithMaterial adds a material entry, replacing any existing entry for the
// same (material, floor).
func WithMaterial(material string, floor int, qty float64, unit string, price float64) PlanOption {
	return func(p *domain.ProjectPlan) {
		e := domain.MaterialQuantity{Material: material, Floor: floor, Quantity: qty, Unit: unit, UnitPrice: price}
		if i := p.EntryIndex(material, floor); i >= 0 {
			p.MaterialQuantities[i] = e
			return
		}
		p.MaterialQuantities = append(p.MaterialQuantities, e)
	}
}

// WithMaterialsItem adds a budget item to the Materials section.
func WithMaterialsItem(label string, cost float64, breakdown ...domain.FloorCost) PlanOption {
	return func(p *domain.ProjectPlan) {
		si := p.SectionIndex(domain.MaterialsSection)
		if si < 0 {
			p.BudgetBreakdown = append(p.BudgetBreakdown, domain.BudgetSection{SectionName: domain.MaterialsSection})
			si = len(p.BudgetBreakdown) - 1
		}
		p.BudgetBreakdown[si].Items = append(p.BudgetBreakdown[si].Items, domain.BudgetItem{Item: label, Cost: cost, FloorBreakdown: breakdown})
		p.BudgetBreakdown[si].TotalCost += cost
		p.TotalCost += cost
	}
}

// WithoutMaterialsSection drops the Materials section and its cost.
func WithoutMaterialsSection() PlanOption {
	return func(p *domain.ProjectPlan) {
		si := p.SectionIndex(domain.MaterialsSection)
		if si < 0 {
			return
		}
		p.TotalCost -= p.BudgetBreakdown[si].TotalCost
		p.BudgetBreakdown = append(p.BudgetBreakdown[:si], p.BudgetBreakdown[si+1:]...)
	}
}

func WithCosts(total, perSqFt float64) PlanOption {
	return func(p *domain.ProjectPlan) {
		p.TotalCost = total
		p.CostPerSqFt = perSqFt
	}
}

func WithPlanID(id string) PlanOption {
	return func(p *domain.ProjectPlan) {
		p.ID = id
	}
}

// NewTestPlan builds a three-floor plan whose figures are consistent:
//
//	Cement  bags  400/bag  floors 0,1,2 = 10,20,30   cost  24000
//	Steel   kg     70/kg   floors 0,1,2 = 500,300,200 cost 70000
//	Sand    cu.ft  50/cu.ft floors 0,1  = 100,100     cost 10000
//
// with Structure 100000, Materials 104000 and Labour 50000, a total of
// 254000 at 127 per sq ft.
func NewTestPlan(opts ...PlanOption) *domain.ProjectPlan {
	p := &domain.ProjectPlan{
		ID: uuid.New().String(),
		Intake: domain.Intake{
			Location:            "Pune",
			PlotArea:            1000,
			Floors:              2,
			Bedrooms:            3,
			Bathrooms:           2,
			ConstructionQuality: domain.QualityStandard,
		},
		TotalCost:   254000,
		CostPerSqFt: 127,
		BudgetBreakdown: []domain.BudgetSection{
			{SectionName: domain.SectionStructure, TotalCost: 100000, Items: []domain.BudgetItem{{Item: "RCC Frame", Cost: 100000}}},
			{SectionName: domain.MaterialsSection, TotalCost: 104000, Items: []domain.BudgetItem{
				{Item: "Cement (OPC 53 grade)", Cost: 24000, FloorBreakdown: []domain.FloorCost{
					{Floor: "Foundation", Cost: 4000}, {Floor: "Ground Floor", Cost: 8000}, {Floor: "First Floor", Cost: 12000},
				}},
				{Item: "TMT Steel Bars", Cost: 70000},
				{Item: "River Sand", Cost: 10000},
			}},
			{SectionName: domain.SectionLabour, TotalCost: 50000, Items: []domain.BudgetItem{{Item: "Masons and helpers", Cost: 50000}}},
		},
		MaterialQuantities: []domain.MaterialQuantity{
			{Material: "Cement", Floor: 0, Quantity: 10, Unit: "bags", UnitPrice: 400},
			{Material: "Cement", Floor: 1, Quantity: 20, Unit: "bags", UnitPrice: 400},
			{Material: "Cement", Floor: 2, Quantity: 30, Unit: "bags", UnitPrice: 400},
			{Material: "Steel", Floor: 0, Quantity: 500, Unit: "kg", UnitPrice: 70},
			{Material: "Steel", Floor: 1, Quantity: 300, Unit: "kg", UnitPrice: 70},
			{Material: "Steel", Floor: 2, Quantity: 200, Unit: "kg", UnitPrice: 70},
			{Material: "Sand", Floor: 0, Quantity: 100, Unit: "cu.ft", UnitPrice: 50},
			{Material: "Sand", Floor: 1, Quantity: 100, Unit: "cu.ft", UnitPrice: 50},
		},
		PaymentStatus: domain.PaymentPendingBooking,
		PaymentSchedule: []domain.PaymentMilestone{
			{Milestone: "Booking", Percentage: 10, Amount: 25400, Status: domain.MilestoneDue},
			{Milestone: "Foundation", Percentage: 30, Amount: 76200, Status: domain.MilestonePending},
			{Milestone: "Handover", Percentage: 60, Amount: 152400, Status: domain.MilestonePending},
		},
		Timeline: []domain.TimelineEvent{
			{Stage: "Excavation", ExpectedDate: "2025-04-01", Status: domain.TimelinePending},
		},
		WeeklyUpdates: []domain.WeeklyUpdate{
			{Date: "2025-03-10", EngineerNotes: "Site cleared", Photos: []string{"https://example.com/1.jpg"}, MaterialLogs: "None"},
		},
		SnagList: []domain.SnagListItem{{Description: "Gate hinge", Status: domain.SnagReported}},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
