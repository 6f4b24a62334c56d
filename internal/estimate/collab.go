package estimate

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/buildplan/internal/contract"
	"github.com/alexanderramin/buildplan/internal/domain"
)

const (
	timestampLayout  = "2006-01-02T15:04:05.000Z07:00"
	ticketAssignee   = "Project Manager"
	ticketResolveIn  = 3 * 24 * time.Hour
	advisorAckReply  = "Thank you for your message. Let me review your request and I will get back to you shortly with a revised proposal based on our discussion."
	advisorReplyLag  = time.Second
	ticketIDRandSize = 9
)

func newTicketID() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "TKT-" + raw[:ticketIDRandSize]
}

func (w *Workspace) stamp(offset time.Duration) string {
	return w.now().Add(offset).UTC().Format(timestampLayout)
}

// SendMessage appends the user's message and the advisor's acknowledgement
// to the chat.
func (w *Workspace) SendMessage(text string) (*contract.EditResult, error) {
	user := domain.ChatMessage{Sender: domain.SenderUser, Text: text, Timestamp: w.stamp(0)}
	reply := domain.ChatMessage{Sender: domain.SenderAdvisor, Text: advisorAckReply, Timestamp: w.stamp(advisorReplyLag)}
	return w.Apply(contract.EditChat, "chat message", func(d *Draft) []contract.Issue {
		chat := d.Chat()
		*chat = append(*chat, user, reply)
		return nil
	}, true)
}

// AddAdvisorMessage appends an advisor message, for example a suggestion.
func (w *Workspace) AddAdvisorMessage(text string) (*contract.EditResult, error) {
	msg := domain.ChatMessage{Sender: domain.SenderAdvisor, Text: text, Timestamp: w.stamp(0)}
	return w.Apply(contract.EditChat, "advisor message", func(d *Draft) []contract.Issue {
		chat := d.Chat()
		*chat = append(*chat, msg)
		return nil
	}, true)
}

// PayBooking marks the booking as paid: the first Due milestone completes
// and the first Pending one becomes Due.
func (w *Workspace) PayBooking() (*contract.EditResult, error) {
	return w.Apply(contract.EditPayment, "booking payment", func(d *Draft) []contract.Issue {
		d.SetPaymentStatus(domain.PaymentBookingPaid)
		schedule := d.Payments()
		if i := milestoneWithStatus(schedule, domain.MilestoneDue); i >= 0 {
			schedule[i].Status = domain.MilestoneCompleted
		}
		if i := milestoneWithStatus(schedule, domain.MilestonePending); i >= 0 {
			schedule[i].Status = domain.MilestoneDue
		}
		return nil
	}, true)
}

// MarkMilestonePaid completes the named milestone if it is Due and moves
// the next Pending milestone to Due. A milestone that is not Due is left
// alone; the edit is still recorded.
func (w *Workspace) MarkMilestonePaid(name string) (*contract.EditResult, error) {
	cur := w.Current()
	if cur == nil {
		return nil, ErrNoActivePlan
	}
	found := false
	for _, m := range cur.PaymentSchedule {
		if m.Milestone == name {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMilestone, name)
	}

	return w.Apply(contract.EditPayment, "milestone paid "+name, func(d *Draft) []contract.Issue {
		schedule := d.Payments()
		for i := range schedule {
			if schedule[i].Milestone != name {
				continue
			}
			if schedule[i].Status != domain.MilestoneDue {
				return nil
			}
			schedule[i].Status = domain.MilestoneCompleted
			if next := milestoneWithStatus(schedule, domain.MilestonePending); next >= 0 {
				schedule[next].Status = domain.MilestoneDue
			}
			return nil
		}
		return nil
	}, true)
}

func milestoneWithStatus(schedule []domain.PaymentMilestone, status domain.MilestoneStatus) int {
	for i := range schedule {
		if schedule[i].Status == status {
			return i
		}
	}
	return -1
}

// RaiseTicket puts a new Open ticket at the top of the support list.
func (w *Workspace) RaiseTicket(subject string, category domain.TicketCategory, description string) (*contract.EditResult, error) {
	if !domain.ValidTicketCategories[string(category)] {
		category = domain.TicketOther
	}
	ticket := domain.SupportTicket{
		ID:                 w.ticketID(),
		Subject:            subject,
		Category:           category,
		Status:             domain.TicketOpen,
		AssignedTo:         ticketAssignee,
		ExpectedResolution: w.now().Add(ticketResolveIn).UTC().Format("2006-01-02"),
		Activity: []domain.TicketActivity{{
			Update:    fmt.Sprintf("Ticket created. User reported: %q", description),
			Timestamp: w.stamp(0),
		}},
	}
	return w.Apply(contract.EditTicket, "ticket "+ticket.ID, func(d *Draft) []contract.Issue {
		tickets := d.Tickets()
		*tickets = append([]domain.SupportTicket{ticket}, *tickets...)
		return nil
	}, true)
}

// AddUserNote sets the homeowner's note on the weekly update for date.
func (w *Workspace) AddUserNote(date, note string) (*contract.EditResult, error) {
	cur := w.Current()
	if cur == nil {
		return nil, ErrNoActivePlan
	}
	idx := -1
	for i, u := range cur.WeeklyUpdates {
		if u.Date == date {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUpdate, date)
	}
	return w.Apply(contract.EditNote, "user note "+date, func(d *Draft) []contract.Issue {
		d.WeeklyUpdates()[idx].UserNotes = note
		return nil
	}, true)
}
