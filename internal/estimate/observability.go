package estimate

import (
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/buildplan/internal/contract"
)

// EditEvent captures one committed or previewed edit.
type EditEvent struct {
	Kind      contract.EditKind
	Label     string
	Index     int
	Recorded  bool
	Issues    []contract.Issue
	TotalCost float64
	Duration  time.Duration
}

type HistoryMove string

const (
	MoveCreate HistoryMove = "create"
	MoveUndo   HistoryMove = "undo"
	MoveRedo   HistoryMove = "redo"
	MoveReset  HistoryMove = "reset"
)

// HistoryEvent captures a cursor move. Moved is false for an undo or redo
// at either end of the history.
type HistoryEvent struct {
	Move   HistoryMove
	Moved  bool
	Index  int
	Length int
}

// Observer receives workspace events.
type Observer interface {
	ObserveEdit(event EditEvent)
	ObserveHistory(event HistoryEvent)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) ObserveEdit(EditEvent)       {}
func (NoopObserver) ObserveHistory(HistoryEvent) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes workspace events to the provided writer.
func NewLogObserver(w io.Writer) Observer {
	if w == nil {
		return NoopObserver{}
	}
	return &logObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logObserver) ObserveEdit(event EditEvent) {
	attrs := []any{
		"kind", string(event.Kind),
		"label", event.Label,
		"index", event.Index,
		"recorded", event.Recorded,
		"total_cost", event.TotalCost,
		"duration_us", event.Duration.Microseconds(),
	}
	if len(event.Issues) > 0 {
		codes := make([]string, len(event.Issues))
		for i, is := range event.Issues {
			codes[i] = string(is.Code)
		}
		attrs = append(attrs, "issues", codes)
		o.logger.Warn("plan_edit", attrs...)
		return
	}
	o.logger.Info("plan_edit", attrs...)
}

func (o *logObserver) ObserveHistory(event HistoryEvent) {
	o.logger.Info("plan_history",
		"move", string(event.Move),
		"moved", event.Moved,
		"index", event.Index,
		"length", event.Length,
	)
}

// MultiObserver fans events out to several observers.
type MultiObserver []Observer

func (m MultiObserver) ObserveEdit(event EditEvent) {
	for _, o := range m {
		o.ObserveEdit(event)
	}
}

func (m MultiObserver) ObserveHistory(event HistoryEvent) {
	for _, o := range m {
		o.ObserveHistory(event)
	}
}
