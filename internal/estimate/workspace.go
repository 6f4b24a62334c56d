package estimate

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/buildplan/internal/contract"
	"github.com/alexanderramin/buildplan/internal/domain"
)

// EditFunc mutates a draft and reports any non-fatal issues.
type EditFunc func(d *Draft) []contract.Issue

// Workspace owns the active plan's history and applies edits to it.
// A Workspace is either Absent (no plan) or Active. It is not safe for
// concurrent use; callers serialise access.
type Workspace struct {
	history  *History
	baseline Baseline

	observer Observer
	logger   *slog.Logger
	now      func() time.Time
	ticketID func() string
}

type Option func(*Workspace)

func WithObserver(o Observer) Option {
	return func(w *Workspace) {
		if o != nil {
			w.observer = o
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(w *Workspace) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithClock overrides the time source used for history stamps, chat
// messages and ticket dates.
func WithClock(now func() time.Time) Option {
	return func(w *Workspace) {
		if now != nil {
			w.now = now
		}
	}
}

// WithTicketIDs overrides the support ticket id generator.
func WithTicketIDs(gen func() string) Option {
	return func(w *Workspace) {
		if gen != nil {
			w.ticketID = gen
		}
	}
}

func NewWorkspace(opts ...Option) *Workspace {
	w := &Workspace{
		observer: NoopObserver{},
		logger:   slog.Default(),
		now:      time.Now,
		ticketID: newTicketID,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// CreateHistory makes plan the active plan at history index 0 and captures
// the cost baseline from it. plan is copied, never retained. Discrete
// quantities are rounded, missing originalQuantity baselines are stamped
// and budget items are linked to materials; linkage problems are returned
// as issues.
func (w *Workspace) CreateHistory(plan *domain.ProjectPlan) ([]contract.Issue, error) {
	if plan == nil {
		return nil, ErrNilPlan
	}
	p := plan.Clone()

	seen := make(map[string]bool, len(p.MaterialQuantities))
	var issues []contract.Issue
	for i := range p.MaterialQuantities {
		e := &p.MaterialQuantities[i]
		key := fmt.Sprintf("%s@%d", e.Material, e.Floor)
		if seen[key] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEntry, key)
		}
		seen[key] = true

		if !validAmount(e.Quantity) {
			issues = append(issues, contract.Issue{
				Code:     contract.IssueInvalidQuantity,
				Material: e.Material,
				Floor:    floorPtr(e.Floor),
				Message:  fmt.Sprintf("quantity %g reset to 0", e.Quantity),
			})
			e.Quantity = 0
		}
		if e.Discrete() {
			e.Quantity = math.Round(e.Quantity)
		}
		if e.OriginalQuantity == nil {
			e.OriginalQuantity = domain.Float64Ptr(e.Quantity)
		}
	}
	issues = append(issues, LinkBudgetItems(p)...)

	w.history = NewHistory(Snapshot{Plan: p, Kind: contract.EditSnapshot, Label: "initial plan", At: w.now()})
	w.baseline = baselineOf(p)
	w.observer.ObserveHistory(HistoryEvent{Move: MoveCreate, Moved: true, Index: 0, Length: 1})
	for _, is := range issues {
		w.logger.Warn("plan linkage", "code", is.Code, "material", is.Material, "detail", is.Message)
	}
	return issues, nil
}

// Active reports whether a plan is loaded.
func (w *Workspace) Active() bool {
	return w.history != nil
}

// Current returns the snapshot at the history cursor, or nil when absent.
func (w *Workspace) Current() *domain.ProjectPlan {
	if w.history == nil {
		return nil
	}
	return w.history.Current().Plan
}

// Baseline returns the cost pair captured at plan creation.
func (w *Workspace) Baseline() Baseline {
	return w.baseline
}

// Apply runs edit over a draft of the current snapshot. Tracked edits are
// recorded in history; untracked ones only return the derived snapshot.
func (w *Workspace) Apply(kind contract.EditKind, label string, edit EditFunc, tracked bool) (*contract.EditResult, error) {
	if w.history == nil {
		return nil, ErrNoActivePlan
	}
	start := time.Now()

	var issues []contract.Issue
	next := Apply(w.history.Current().Plan, func(d *Draft) {
		issues = edit(d)
	})

	res := &contract.EditResult{
		Plan:        next,
		Kind:        kind,
		Label:       label,
		Index:       w.history.Index(),
		Recorded:    tracked,
		TotalCost:   next.TotalCost,
		CostPerSqFt: next.CostPerSqFt,
		Issues:      issues,
	}
	if tracked {
		res.Index = w.history.Record(Snapshot{Plan: next, Kind: kind, Label: label, At: w.now()})
		w.logger.Debug("plan edit committed", "kind", kind, "label", label, "index", res.Index)
	}
	for _, is := range issues {
		w.logger.Warn("plan edit degraded", "label", label, "issue", is.String())
	}
	w.observer.ObserveEdit(EditEvent{
		Kind:      kind,
		Label:     label,
		Index:     res.Index,
		Recorded:  tracked,
		Issues:    issues,
		TotalCost: next.TotalCost,
		Duration:  time.Since(start),
	})
	return res, nil
}

// ApplyFloorEdit changes one (material, floor) entry and records it.
func (w *Workspace) ApplyFloorEdit(req contract.FloorEditRequest) (*contract.EditResult, error) {
	return w.floorEdit(req, true)
}

// PreviewFloorEdit returns what ApplyFloorEdit would produce without
// recording it.
func (w *Workspace) PreviewFloorEdit(req contract.FloorEditRequest) (*contract.EditResult, error) {
	return w.floorEdit(req, false)
}

func (w *Workspace) floorEdit(req contract.FloorEditRequest, tracked bool) (*contract.EditResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	cur := w.Current()
	if cur == nil {
		return nil, ErrNoActivePlan
	}
	material, ok := cur.ResolveMaterialName(req.Material)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMaterial, req.Material)
	}
	idx := cur.EntryIndex(material, req.Floor)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s on %s", ErrUnknownEntry, material, domain.FloorLabel(req.Floor))
	}
	label := fmt.Sprintf("floor edit %s@%d", material, req.Floor)
	return w.Apply(contract.EditFloor, label, func(d *Draft) []contract.Issue {
		return editFloorEntry(d, idx, req, w.baseline)
	}, tracked)
}

// ApplyTotalQuantityEdit sets a material's aggregate quantity, split across
// floors by the allocator, and records it.
func (w *Workspace) ApplyTotalQuantityEdit(req contract.TotalQuantityRequest) (*contract.EditResult, error) {
	return w.totalEdit(req, true)
}

// PreviewTotalQuantityEdit returns what ApplyTotalQuantityEdit would
// produce without recording it.
func (w *Workspace) PreviewTotalQuantityEdit(req contract.TotalQuantityRequest) (*contract.EditResult, error) {
	return w.totalEdit(req, false)
}

func (w *Workspace) totalEdit(req contract.TotalQuantityRequest, tracked bool) (*contract.EditResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	cur := w.Current()
	if cur == nil {
		return nil, ErrNoActivePlan
	}
	material, ok := cur.ResolveMaterialName(req.Material)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMaterial, req.Material)
	}
	label := fmt.Sprintf("total %s=%g", material, req.Total)
	return w.Apply(contract.EditTotal, label, func(d *Draft) []contract.Issue {
		return editTotalQuantity(d, material, req.Total, w.baseline)
	}, tracked)
}

// ApplyBulkEdit scales quantity or price across the named materials and
// records it. Names the plan does not contain are reported as issues; the
// rest are still edited.
func (w *Workspace) ApplyBulkEdit(req contract.BulkEditRequest) (*contract.EditResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	cur := w.Current()
	if cur == nil {
		return nil, ErrNoActivePlan
	}

	var (
		materials []string
		unknown   []contract.Issue
	)
	seen := make(map[string]bool)
	for _, name := range req.Materials {
		resolved, ok := cur.ResolveMaterialName(strings.TrimSpace(name))
		if !ok {
			unknown = append(unknown, contract.Issue{
				Code:     contract.IssueUnknownMaterial,
				Material: name,
				Message:  "not in plan; skipped",
			})
			continue
		}
		if !seen[resolved] {
			seen[resolved] = true
			materials = append(materials, resolved)
		}
	}

	label := fmt.Sprintf("bulk %s %s %g%% %s", req.Action, req.Field, req.Percentage, strings.Join(materials, ","))
	return w.Apply(contract.EditBulk, label, func(d *Draft) []contract.Issue {
		return append(unknown, editBulk(d, materials, req, w.baseline)...)
	}, true)
}

// Undo moves the cursor back one snapshot and returns it. At the start of
// history, or with no plan, nothing changes and ok is false.
func (w *Workspace) Undo() (*domain.ProjectPlan, bool) {
	return w.move(MoveUndo)
}

// Redo moves the cursor forward one snapshot and returns it. At the end of
// history, or with no plan, nothing changes and ok is false.
func (w *Workspace) Redo() (*domain.ProjectPlan, bool) {
	return w.move(MoveRedo)
}

func (w *Workspace) move(dir HistoryMove) (*domain.ProjectPlan, bool) {
	if w.history == nil {
		return nil, false
	}
	var (
		s  Snapshot
		ok bool
	)
	if dir == MoveUndo {
		s, ok = w.history.Undo()
	} else {
		s, ok = w.history.Redo()
	}
	w.observer.ObserveHistory(HistoryEvent{Move: dir, Moved: ok, Index: w.history.Index(), Length: w.history.Len()})
	return s.Plan, ok
}

func (w *Workspace) CanUndo() bool {
	return w.history != nil && w.history.CanUndo()
}

func (w *Workspace) CanRedo() bool {
	return w.history != nil && w.history.CanRedo()
}

// Reset discards the plan and its history.
func (w *Workspace) Reset() {
	if w.history == nil {
		return
	}
	w.history = nil
	w.baseline = Baseline{}
	w.observer.ObserveHistory(HistoryEvent{Move: MoveReset, Moved: true, Index: -1, Length: 0})
}
