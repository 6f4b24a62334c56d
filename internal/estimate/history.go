package estimate

import (
	"time"

	"github.com/alexanderramin/buildplan/internal/contract"
	"github.com/alexanderramin/buildplan/internal/domain"
)

// Snapshot is one immutable entry in the history.
type Snapshot struct {
	Plan  *domain.ProjectPlan
	Kind  contract.EditKind
	Label string
	At    time.Time
}

// History is a linear undo/redo stack of snapshots with a cursor.
// Snapshots are only dropped by the truncation in Record.
type History struct {
	entries []Snapshot
	index   int
}

// NewHistory starts a history whose only entry, at index 0, is initial.
func NewHistory(initial Snapshot) *History {
	return &History{entries: []Snapshot{initial}}
}

// Record drops every snapshot after the cursor, appends s and moves the
// cursor onto it. It returns the new index.
func (h *History) Record(s Snapshot) int {
	h.entries = append(h.entries[:h.index+1], s)
	h.index = len(h.entries) - 1
	return h.index
}

// Undo steps back one snapshot. At the start it returns the current
// snapshot and false.
func (h *History) Undo() (Snapshot, bool) {
	if !h.CanUndo() {
		return h.Current(), false
	}
	h.index--
	return h.Current(), true
}

// Redo steps forward one snapshot. At the end it returns the current
// snapshot and false.
func (h *History) Redo() (Snapshot, bool) {
	if !h.CanRedo() {
		return h.Current(), false
	}
	h.index++
	return h.Current(), true
}

func (h *History) CanUndo() bool { return h.index > 0 }

func (h *History) CanRedo() bool { return h.index < len(h.entries)-1 }

func (h *History) Current() Snapshot { return h.entries[h.index] }

// Baseline is the snapshot at index 0.
func (h *History) Baseline() Snapshot { return h.entries[0] }

func (h *History) Index() int { return h.index }

func (h *History) Len() int { return len(h.entries) }

// Entries returns a copy of the snapshot list.
func (h *History) Entries() []Snapshot {
	out := make([]Snapshot, len(h.entries))
	copy(out, h.entries)
	return out
}
