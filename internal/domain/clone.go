package domain

import "slices"

// Clone returns a deep copy of the plan. Nothing in the result aliases p.
func (p *ProjectPlan) Clone() *ProjectPlan {
	if p == nil {
		return nil
	}
	c := *p
	c.Intake.AdditionalRooms = slices.Clone(p.Intake.AdditionalRooms)
	c.BudgetBreakdown = CloneSections(p.BudgetBreakdown)
	c.MaterialQuantities = CloneMaterials(p.MaterialQuantities)
	c.ChatHistory = slices.Clone(p.ChatHistory)
	c.PaymentSchedule = slices.Clone(p.PaymentSchedule)
	c.Timeline = slices.Clone(p.Timeline)
	c.WeeklyUpdates = CloneWeeklyUpdates(p.WeeklyUpdates)
	c.SupportTickets = CloneTickets(p.SupportTickets)
	c.SnagList = slices.Clone(p.SnagList)
	return &c
}

// CloneSections deep-copies budget sections, their items and breakdowns.
func CloneSections(in []BudgetSection) []BudgetSection {
	if in == nil {
		return nil
	}
	out := make([]BudgetSection, len(in))
	for i, s := range in {
		out[i] = s
		if s.Items != nil {
			out[i].Items = make([]BudgetItem, len(s.Items))
			for j, it := range s.Items {
				out[i].Items[j] = it
				out[i].Items[j].FloorBreakdown = slices.Clone(it.FloorBreakdown)
			}
		}
	}
	return out
}

// CloneMaterials deep-copies material entries, including baseline pointers.
func CloneMaterials(in []MaterialQuantity) []MaterialQuantity {
	if in == nil {
		return nil
	}
	out := make([]MaterialQuantity, len(in))
	for i, m := range in {
		out[i] = m
		if m.OriginalQuantity != nil {
			out[i].OriginalQuantity = Float64Ptr(*m.OriginalQuantity)
		}
	}
	return out
}

func CloneWeeklyUpdates(in []WeeklyUpdate) []WeeklyUpdate {
	if in == nil {
		return nil
	}
	out := make([]WeeklyUpdate, len(in))
	for i, u := range in {
		out[i] = u
		out[i].Photos = slices.Clone(u.Photos)
		out[i].Videos = slices.Clone(u.Videos)
	}
	return out
}

func CloneTickets(in []SupportTicket) []SupportTicket {
	if in == nil {
		return nil
	}
	out := make([]SupportTicket, len(in))
	for i, t := range in {
		out[i] = t
		out[i].Activity = slices.Clone(t.Activity)
	}
	return out
}
