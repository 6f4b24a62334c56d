package estimate

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/buildplan/internal/contract"
	"github.com/alexanderramin/buildplan/internal/domain"
	"github.com/alexanderramin/buildplan/internal/testutil"
)

func TestSendMessage_AppendsUserAndAdvisor(t *testing.T) {
	w := newTestWorkspace(t)

	res, err := w.SendMessage("Can we use fly ash bricks?")
	require.NoError(t, err)
	assert.Equal(t, contract.EditChat, res.Kind)

	chat := w.Current().ChatHistory
	require.Len(t, chat, 2)
	assert.Equal(t, domain.SenderUser, chat[0].Sender)
	assert.Equal(t, "Can we use fly ash bricks?", chat[0].Text)
	assert.Equal(t, "2025-03-15T12:00:00.000Z", chat[0].Timestamp)
	assert.Equal(t, domain.SenderAdvisor, chat[1].Sender)
	assert.Equal(t, "2025-03-15T12:00:01.000Z", chat[1].Timestamp)

	w.Undo()
	assert.Empty(t, w.Current().ChatHistory)
}

func TestAddAdvisorMessage(t *testing.T) {
	w := newTestWorkspace(t)
	_, err := w.AddAdvisorMessage("Consider AAC blocks.")
	require.NoError(t, err)
	require.Len(t, w.Current().ChatHistory, 1)
	assert.Equal(t, domain.SenderAdvisor, w.Current().ChatHistory[0].Sender)
}

func TestPayBooking_AdvancesMilestones(t *testing.T) {
	w := newTestWorkspace(t)

	_, err := w.PayBooking()
	require.NoError(t, err)

	cur := w.Current()
	assert.Equal(t, domain.PaymentBookingPaid, cur.PaymentStatus)
	assert.Equal(t, domain.MilestoneCompleted, cur.PaymentSchedule[0].Status)
	assert.Equal(t, domain.MilestoneDue, cur.PaymentSchedule[1].Status)
	assert.Equal(t, domain.MilestonePending, cur.PaymentSchedule[2].Status)
}

func TestMarkMilestonePaid(t *testing.T) {
	w := newTestWorkspace(t)
	_, err := w.PayBooking()
	require.NoError(t, err)

	_, err = w.MarkMilestonePaid("Foundation")
	require.NoError(t, err)
	cur := w.Current()
	assert.Equal(t, domain.MilestoneCompleted, cur.PaymentSchedule[1].Status)
	assert.Equal(t, domain.MilestoneDue, cur.PaymentSchedule[2].Status)
}

func TestMarkMilestonePaid_NotDueIsRecordedNoop(t *testing.T) {
	w := newTestWorkspace(t)
	before := w.Current()

	res, err := w.MarkMilestonePaid("Handover")
	require.NoError(t, err)
	assert.True(t, res.Recorded)
	assert.Equal(t, before.PaymentSchedule, w.Current().PaymentSchedule)

	_, err = w.MarkMilestonePaid("Roof")
	assert.ErrorIs(t, err, ErrUnknownMilestone)
}

func TestRaiseTicket(t *testing.T) {
	w := NewWorkspace(WithClock(testutil.Clock()), WithTicketIDs(func() string { return "TKT-ABC123XYZ" }))
	_, err := w.CreateHistory(testutil.NewTestPlan())
	require.NoError(t, err)

	_, err = w.RaiseTicket("Wall crack", domain.TicketWorkQuality, "crack in the east wall")
	require.NoError(t, err)
	_, err = w.RaiseTicket("Late delivery", "Weather", "sand arrived late")
	require.NoError(t, err)

	tickets := w.Current().SupportTickets
	require.Len(t, tickets, 2)
	assert.Equal(t, "Late delivery", tickets[0].Subject, "newest ticket first")
	assert.Equal(t, domain.TicketOther, tickets[0].Category)

	wall := tickets[1]
	assert.Equal(t, "TKT-ABC123XYZ", wall.ID)
	assert.Equal(t, domain.TicketOpen, wall.Status)
	assert.Equal(t, "Project Manager", wall.AssignedTo)
	assert.Equal(t, "2025-03-18", wall.ExpectedResolution)
	require.Len(t, wall.Activity, 1)
	assert.Equal(t, `Ticket created. User reported: "crack in the east wall"`, wall.Activity[0].Update)
}

func TestNewTicketID_Format(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`^TKT-[0-9A-F]{9}$`), newTicketID())
}

func TestAddUserNote(t *testing.T) {
	w := newTestWorkspace(t)

	_, err := w.AddUserNote("2025-03-10", "Please keep the neem tree")
	require.NoError(t, err)
	assert.Equal(t, "Please keep the neem tree", w.Current().WeeklyUpdates[0].UserNotes)

	_, err = w.AddUserNote("2099-01-01", "x")
	assert.ErrorIs(t, err, ErrUnknownUpdate)
}

func TestSummarizeMaterials(t *testing.T) {
	w := newTestWorkspace(t)
	_, err := w.ApplyTotalQuantityEdit(contract.TotalQuantityRequest{Material: "Cement", Total: 66})
	require.NoError(t, err)

	got := w.Materials()
	require.Len(t, got, 3)
	cement := got[0]
	assert.Equal(t, "Cement", cement.Material)
	assert.Equal(t, "bags", cement.Unit)
	assert.True(t, cement.Discrete)
	assert.Equal(t, 3, cement.Floors)
	assert.Equal(t, 66.0, cement.TotalQuantity)
	assert.Equal(t, 60.0, cement.BaselineQuantity)
	assert.Equal(t, 6.0, cement.Delta)
	assert.InDelta(t, 26400, cement.Cost, 1e-6)
	assert.Equal(t, "Cement (OPC 53 grade)", cement.BudgetItem)

	assert.Nil(t, SummarizeMaterials(nil))
}

type recordingObserver struct {
	edits []EditEvent
	moves []HistoryEvent
}

func (r *recordingObserver) ObserveEdit(e EditEvent)       { r.edits = append(r.edits, e) }
func (r *recordingObserver) ObserveHistory(e HistoryEvent) { r.moves = append(r.moves, e) }

func TestWorkspace_NotifiesObserver(t *testing.T) {
	obs := &recordingObserver{}
	var buf bytes.Buffer
	w := NewWorkspace(WithObserver(MultiObserver{obs, NewLogObserver(&buf)}))
	_, err := w.CreateHistory(testutil.NewTestPlan())
	require.NoError(t, err)

	_, err = w.ApplyFloorEdit(contract.NewFloorEditRequest("Sand", 0).WithQuantity(-2))
	require.NoError(t, err)
	w.Undo()
	w.Undo()
	w.Reset()

	require.Len(t, obs.edits, 1)
	assert.Equal(t, contract.EditFloor, obs.edits[0].Kind)
	assert.Len(t, obs.edits[0].Issues, 1)

	require.Len(t, obs.moves, 4)
	assert.Equal(t, MoveCreate, obs.moves[0].Move)
	assert.True(t, obs.moves[1].Moved)
	assert.False(t, obs.moves[2].Moved)
	assert.Equal(t, MoveReset, obs.moves[3].Move)

	assert.Contains(t, buf.String(), "plan_edit")
	assert.Contains(t, buf.String(), "INVALID_QUANTITY")
	assert.Contains(t, buf.String(), "plan_history")
}

func TestNewLogObserver_NilWriter(t *testing.T) {
	assert.IsType(t, NoopObserver{}, NewLogObserver(nil))
}
