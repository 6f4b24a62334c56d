package cli

import (
	"strings"

	"github.com/alexanderramin/buildplan/internal/cli/formatter"
	"github.com/alexanderramin/buildplan/internal/debounce"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// shellMode tracks which interaction mode the shell is in.
type shellMode int

const (
	modePrompt  shellMode = iota // Normal command input.
	modeWizard                   // huh form is active.
	modeConfirm                  // Awaiting y/n for a destructive command.
	modeAdjust                   // Live quantity adjustment.
)

// pendingConfirmation is a command waiting for the user's y/n.
type pendingConfirmation struct {
	description string
	run         func(m *shellModel) (string, tea.Cmd)
}

// shellModel is the bubbletea Model for the interactive shell. Only Update
// touches the workspace; LLM calls run as Cmds against immutable snapshots
// and report back through messages.
type shellModel struct {
	// bubbletea components
	input textinput.Model
	form  *huh.Form // active wizard form (nil when not in wizard mode)
	width int

	app     *App
	history *shellHistory

	// mode management
	mode       shellMode
	wizardDone func(m *shellModel) tea.Cmd // called when wizard form completes

	pendingConfirm *pendingConfirmation

	// adjust mode
	adjust    *adjustSession
	debouncer *debounce.Coalescer[adjustKey, float64]

	// busy names the LLM call in flight, if any.
	busy string

	quitting bool
}

func newShellModel(app *App, history *shellHistory) shellModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.ShowSuggestions = true
	ti.CharLimit = 500
	// Use Tab for suggestion acceptance, reserve Up/Down for history.
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))

	if history == nil {
		history = openShellHistory("")
	}

	return shellModel{
		input:     ti,
		app:       app,
		history:   history,
		debouncer: debounce.New[adjustKey, float64](app.debounceDelay()),
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m shellModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.Println(formatter.FormatShellWelcome(m.app.Workspace.Active())),
	)
}

func (m shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(m.promptPrefix()) - 1
		if m.form != nil {
			m.form = m.form.WithWidth(msg.Width)
		}
		return m, nil

	case tea.KeyMsg:
		// Global quit. Pending adjustments are committed first.
		if msg.Type == tea.KeyCtrlC {
			out := m.flushAdjust()
			m.quitting = true
			if out != "" {
				return m, tea.Sequence(tea.Println(out), tea.Quit)
			}
			return m, tea.Quit
		}

		switch m.mode {
		case modeWizard:
			return m.updateWizard(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		case modeAdjust:
			return m.updateAdjust(msg)
		default:
			return m.updatePrompt(msg)
		}

	case planGeneratedMsg:
		return m, tea.Println(m.handlePlanGenerated(msg))

	case suggestionsMsg:
		return m, tea.Println(m.handleSuggestions(msg))

	case ticketClassifiedMsg:
		return m, tea.Println(m.handleTicketClassified(msg))

	case adjustDueMsg:
		if out := m.commitAdjust(msg.tok); out != "" {
			return m, tea.Println(out)
		}
		return m, nil
	}

	// When in wizard mode, forward non-key messages to the huh form
	// (e.g. init messages, focus transitions) so it can function properly.
	if m.mode == modeWizard && m.form != nil {
		return m.updateWizard(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m shellModel) View() string {
	if m.quitting {
		return formatter.Dim("Goodbye.") + "\n"
	}

	switch m.mode {
	case modeWizard:
		if m.form != nil {
			return m.form.View()
		}
	case modeAdjust:
		if m.adjust != nil {
			return m.adjust.view()
		}
	}

	return m.promptPrefix() + m.input.View()
}

// ── prompt prefix ────────────────────────────────────────────────────────────

func (m *shellModel) promptPrefix() string {
	if m.mode == modeConfirm {
		return formatter.StyleYellow.Render("confirm (y/n)") + " " + formatter.Dim("❯") + " "
	}
	name := formatter.StylePurple.Render("buildplan")
	if m.busy != "" {
		name += " " + formatter.Dim(m.busy+"…")
	}
	cur := m.app.Workspace.Current()
	if cur == nil {
		return name + " " + formatter.Dim("❯") + " "
	}
	return name + " " +
		formatter.Dim("(") + formatter.StyleGreen.Render(formatter.INR(cur.TotalCost)) + formatter.Dim(")") +
		" " + formatter.Dim("❯") + " "
}

// ── prompt mode ──────────────────────────────────────────────────────────────

func (m shellModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		input := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		m.input.SetSuggestions(nil)
		if input == "" {
			return m, nil
		}
		m.history.add(input)
		output, cmd := m.executeCommand(input)
		return m, printThen(output, cmd)

	case tea.KeyUp:
		if line, ok := m.history.prev(); ok {
			m.input.SetValue(line)
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyDown:
		m.input.SetValue(m.history.next())
		m.input.CursorEnd()
		return m, nil

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.updateSuggestions()
		return m, cmd
	}
}

// printThen prints output (if any) before running cmd.
func printThen(output string, cmd tea.Cmd) tea.Cmd {
	var cmds []tea.Cmd
	if output != "" {
		cmds = append(cmds, tea.Println(output))
	}
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Sequence(cmds...)
}

// ── wizard mode ──────────────────────────────────────────────────────────────

// startWizard switches to wizard mode with the given form and completion callback.
func (m *shellModel) startWizard(form *huh.Form, done func(m *shellModel) tea.Cmd) tea.Cmd {
	m.mode = modeWizard
	m.form = form
	m.wizardDone = done
	if m.width > 0 {
		m.form = m.form.WithWidth(m.width)
	}
	return m.form.Init()
}

func (m shellModel) updateWizard(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Escape cancels the wizard.
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.mode = modePrompt
		m.form = nil
		m.wizardDone = nil
		return m, tea.Println(formatter.Dim("Cancelled."))
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.mode = modePrompt
		done := m.wizardDone
		m.form = nil
		m.wizardDone = nil
		if done != nil {
			return m, tea.Batch(cmd, done(&m))
		}
		return m, cmd
	case huh.StateAborted:
		m.mode = modePrompt
		m.form = nil
		m.wizardDone = nil
		return m, tea.Println(formatter.Dim("Cancelled."))
	}

	return m, cmd
}

// ── confirm mode ─────────────────────────────────────────────────────────────

// confirm asks before running a command that discards history.
func (m *shellModel) confirm(description string, run func(m *shellModel) (string, tea.Cmd)) string {
	m.mode = modeConfirm
	m.pendingConfirm = &pendingConfirmation{description: description, run: run}
	return formatter.StyleYellow.Render("Confirm:") + " " + description + "?\n" +
		formatter.Dim("Enter y to confirm, anything else to cancel.")
}

func (m shellModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		input := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		pending := m.pendingConfirm
		m.pendingConfirm = nil
		m.mode = modePrompt

		switch strings.ToLower(input) {
		case "y", "yes":
			output, cmd := pending.run(&m)
			return m, printThen(output, cmd)
		default:
			return m, tea.Println(formatter.Dim("Cancelled."))
		}
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// ── suggestions ──────────────────────────────────────────────────────────────

// updateSuggestions offers whole-line completions: command names for the
// first word, then material names, floors or keywords depending on the
// command.
func (m *shellModel) updateSuggestions() {
	text := m.input.Value()
	if text == "" {
		m.input.SetSuggestions(nil)
		return
	}

	parts := strings.Fields(text)
	trailingSpace := strings.HasSuffix(text, " ")

	if len(parts) <= 1 && !trailingSpace {
		m.input.SetSuggestions(filterSuggestions(allCommandNames(), parts[0]))
		return
	}

	word := len(parts)
	prefix := ""
	if !trailingSpace {
		word = len(parts) - 1
		prefix = parts[len(parts)-1]
	}
	lead := strings.Join(parts[:word], " ") + " "

	pool := m.argumentPool(strings.ToLower(parts[0]), parts[1:word], word)
	matches := filterSuggestions(pool, prefix)
	lines := make([]string, 0, len(matches))
	for _, s := range matches {
		lines = append(lines, lead+s)
	}
	m.input.SetSuggestions(lines)
}

// argumentPool returns candidates for argument number pos (1-based) of cmd.
func (m *shellModel) argumentPool(cmd string, prior []string, pos int) []string {
	cur := m.app.Workspace.Current()
	switch cmd {
	case "materials", "set", "total", "adjust":
		if cur == nil {
			return nil
		}
		if pos == 1 {
			return cur.MaterialNames()
		}
		if pos == 2 && (cmd == "set" || cmd == "adjust") && len(prior) > 0 {
			material, ok := cur.ResolveMaterialName(prior[0])
			if !ok {
				return nil
			}
			var floors []string
			for _, i := range cur.EntryIndexes(material) {
				floors = append(floors, itoa(cur.MaterialQuantities[i].Floor))
			}
			return floors
		}
		if pos >= 3 && cmd == "set" {
			return []string{"qty=", "price="}
		}
	case "bulk":
		switch pos {
		case 1:
			return []string{"increase", "decrease"}
		case 2:
			return []string{"quantity", "price"}
		case 3:
			return []string{"5", "10", "20"}
		case 4:
			if cur != nil {
				return []string{strings.Join(cur.MaterialNames(), ",")}
			}
		}
	case "suggest":
		if pos == 1 {
			return []string{"cost", "materials", "design", "all"}
		}
	case "paid":
		if cur != nil && pos == 1 {
			var names []string
			for _, ms := range cur.PaymentSchedule {
				names = append(names, ms.Milestone)
			}
			return names
		}
	case "note":
		if cur != nil && pos == 1 {
			var dates []string
			for _, u := range cur.WeeklyUpdates {
				dates = append(dates, u.Date)
			}
			return dates
		}
	}
	return nil
}

// allCommandNames returns all top-level shell command names.
func allCommandNames() []string {
	return []string{
		"show", "materials", "set", "total", "bulk", "adjust",
		"undo", "redo", "history",
		"chat", "pay", "paid", "payments", "ticket", "tickets", "note",
		"suggest", "export", "save", "load", "new", "reset",
		"clear", "help", "exit", "quit",
	}
}

// filterSuggestions returns items from pool that start with prefix (case-insensitive).
func filterSuggestions(pool []string, prefix string) []string {
	if prefix == "" {
		return pool
	}
	lp := strings.ToLower(prefix)
	var result []string
	for _, s := range pool {
		if strings.HasPrefix(strings.ToLower(s), lp) {
			result = append(result, s)
		}
	}
	return result
}
