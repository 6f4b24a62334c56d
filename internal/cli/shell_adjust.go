package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/buildplan/internal/cli/formatter"
	"github.com/alexanderramin/buildplan/internal/contract"
	"github.com/alexanderramin/buildplan/internal/debounce"
	"github.com/alexanderramin/buildplan/internal/estimate"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	adjustStep      = 1
	adjustLargeStep = 10
)

// adjustKey identifies the floor entry being adjusted.
type adjustKey struct {
	material string
	floor    int
}

// adjustDueMsg fires once the debounce delay after a keypress has passed.
type adjustDueMsg struct {
	tok debounce.Token[adjustKey]
}

// adjustSession is the state of one live adjustment. committed is the
// quantity recorded in the workspace; pending is what the user has dialled
// in and not yet committed.
type adjustSession struct {
	key          adjustKey
	unit         string
	discrete     bool
	committed    float64
	pending      float64
	previewTotal float64
	commits      int
}

func (s *adjustSession) view() string {
	return formatter.FormatAdjust(s.key.material, s.key.floor, s.unit, s.committed, s.pending, s.previewTotal)
}

// cmdAdjust handles "adjust <material> <floor>".
func (m *shellModel) cmdAdjust(args []string) string {
	if len(args) < 2 {
		return usage("adjust <material> <floor>")
	}
	cur := m.app.Workspace.Current()
	if cur == nil {
		return shellError(estimate.ErrNoActivePlan)
	}
	floor, err := strconv.Atoi(args[len(args)-1])
	if err != nil {
		return shellError(fmt.Errorf("floor %q is not a number", args[len(args)-1]))
	}
	name := strings.Join(args[:len(args)-1], " ")
	material, ok := cur.ResolveMaterialName(name)
	if !ok {
		return shellError(fmt.Errorf("%w: %s", estimate.ErrUnknownMaterial, name))
	}
	idx := cur.EntryIndex(material, floor)
	if idx < 0 {
		return shellError(fmt.Errorf("%w: %s on floor %d", estimate.ErrUnknownEntry, material, floor))
	}

	e := cur.MaterialQuantities[idx]
	m.adjust = &adjustSession{
		key:          adjustKey{material: material, floor: floor},
		unit:         e.Unit,
		discrete:     e.Discrete(),
		committed:    e.Quantity,
		pending:      e.Quantity,
		previewTotal: cur.TotalCost,
	}
	m.mode = modeAdjust
	return ""
}

func (m shellModel) updateAdjust(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k", "+", "=":
		return m, m.nudge(adjustStep)
	case "down", "j", "-":
		return m, m.nudge(-adjustStep)
	case "shift+up", "pgup", "K":
		return m, m.nudge(adjustLargeStep)
	case "shift+down", "pgdown", "J":
		return m, m.nudge(-adjustLargeStep)
	case "enter":
		out := m.flushAdjust()
		m.mode = modePrompt
		return m, tea.Println(out)
	case "esc":
		s := m.adjust
		m.debouncer.Cancel(s.key)
		m.adjust = nil
		m.mode = modePrompt
		out := formatter.Dim(fmt.Sprintf("Left adjust at %s %s.", formatter.Quantity(s.committed), s.unit))
		if s.pending != s.committed {
			out = formatter.Dim(fmt.Sprintf("Discarded pending %s %s; kept %s %s.",
				formatter.Quantity(s.pending), s.unit, formatter.Quantity(s.committed), s.unit))
		}
		return m, tea.Println(out)
	}
	return m, nil
}

// nudge moves the pending quantity, previews the total and schedules a
// debounced commit.
func (m *shellModel) nudge(delta float64) tea.Cmd {
	s := m.adjust
	next := s.pending + delta
	if s.discrete {
		next = math.Round(next)
	}
	if next < 0 {
		next = 0
	}
	if next == s.pending {
		return nil
	}
	s.pending = next

	req := contract.NewFloorEditRequest(s.key.material, s.key.floor).WithQuantity(next)
	if res, err := m.app.Workspace.PreviewFloorEdit(req); err == nil {
		s.previewTotal = res.TotalCost
	}

	tok := m.debouncer.Submit(s.key, next)
	return tea.Tick(m.debouncer.Delay(), func(time.Time) tea.Msg {
		return adjustDueMsg{tok: tok}
	})
}

// commitAdjust records the pending quantity if tok is still the latest
// submission. Stale ticks are ignored.
func (m *shellModel) commitAdjust(tok debounce.Token[adjustKey]) string {
	v, ok := m.debouncer.Due(tok)
	if !ok {
		return ""
	}
	return m.commitQuantity(tok.Key, v)
}

// flushAdjust commits anything still pending and leaves adjust mode.
func (m *shellModel) flushAdjust() string {
	s := m.adjust
	if s == nil {
		return ""
	}
	var out []string
	for key, v := range m.debouncer.Flush() {
		if line := m.commitQuantity(key, v); line != "" {
			out = append(out, line)
		}
	}
	m.adjust = nil
	if len(out) == 0 {
		if s.commits == 0 {
			return formatter.Dim("No change.")
		}
		return formatter.Dim(fmt.Sprintf("Done at %s %s.", formatter.Quantity(s.committed), s.unit))
	}
	return strings.Join(out, "\n")
}

func (m *shellModel) commitQuantity(key adjustKey, v float64) string {
	if s := m.adjust; s != nil && s.key == key && v == s.committed {
		return ""
	}
	req := contract.NewFloorEditRequest(key.material, key.floor).WithQuantity(v)
	res, err := m.app.Workspace.ApplyFloorEdit(req)
	if err != nil {
		return shellError(err)
	}
	if s := m.adjust; s != nil && s.key == key {
		if i := res.Plan.EntryIndex(key.material, key.floor); i >= 0 {
			s.committed = res.Plan.MaterialQuantities[i].Quantity
		}
		s.previewTotal = res.TotalCost
		s.commits++
	}
	return formatter.FormatEditResult(res)
}
