package estimate

import (
	"slices"

	"github.com/alexanderramin/buildplan/internal/domain"
)

// Draft is a writable working copy of a snapshot. The root is copied up
// front; each container is cloned the first time its accessor is called,
// so untouched containers stay shared with the base snapshot and touched
// ones never alias it.
//
// Containers must be reached through the accessors. Peek is for reads.
type Draft struct {
	plan *domain.ProjectPlan

	materials bool
	budget    bool
	chat      bool
	payments  bool
	updates   bool
	tickets   bool
}

func newDraft(base *domain.ProjectPlan) *Draft {
	root := *base
	return &Draft{plan: &root}
}

// Apply derives a new snapshot from current by running edit over a draft.
// current is never modified. A nil current is returned as is and edit is
// not called.
func Apply(current *domain.ProjectPlan, edit func(*Draft)) *domain.ProjectPlan {
	if current == nil {
		return nil
	}
	d := newDraft(current)
	edit(d)
	return d.plan
}

// Peek returns the draft's current state for reading.
func (d *Draft) Peek() *domain.ProjectPlan {
	return d.plan
}

func (d *Draft) Materials() []domain.MaterialQuantity {
	if !d.materials {
		d.plan.MaterialQuantities = domain.CloneMaterials(d.plan.MaterialQuantities)
		d.materials = true
	}
	return d.plan.MaterialQuantities
}

func (d *Draft) Budget() []domain.BudgetSection {
	if !d.budget {
		d.plan.BudgetBreakdown = domain.CloneSections(d.plan.BudgetBreakdown)
		d.budget = true
	}
	return d.plan.BudgetBreakdown
}

// Chat returns a pointer so callers can append.
func (d *Draft) Chat() *[]domain.ChatMessage {
	if !d.chat {
		d.plan.ChatHistory = slices.Clone(d.plan.ChatHistory)
		d.chat = true
	}
	return &d.plan.ChatHistory
}

func (d *Draft) Payments() []domain.PaymentMilestone {
	if !d.payments {
		d.plan.PaymentSchedule = slices.Clone(d.plan.PaymentSchedule)
		d.payments = true
	}
	return d.plan.PaymentSchedule
}

func (d *Draft) WeeklyUpdates() []domain.WeeklyUpdate {
	if !d.updates {
		d.plan.WeeklyUpdates = domain.CloneWeeklyUpdates(d.plan.WeeklyUpdates)
		d.updates = true
	}
	return d.plan.WeeklyUpdates
}

// Tickets returns a pointer so callers can prepend.
func (d *Draft) Tickets() *[]domain.SupportTicket {
	if !d.tickets {
		d.plan.SupportTickets = domain.CloneTickets(d.plan.SupportTickets)
		d.tickets = true
	}
	return &d.plan.SupportTickets
}

func (d *Draft) SetTotalCost(v float64)   { d.plan.TotalCost = v }
func (d *Draft) SetCostPerSqFt(v float64) { d.plan.CostPerSqFt = v }

func (d *Draft) SetPaymentStatus(s domain.PaymentStatus) {
	d.plan.PaymentStatus = s
}
