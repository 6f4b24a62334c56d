package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/buildplan/internal/cli/formatter"
	"github.com/alexanderramin/buildplan/internal/contract"
	"github.com/alexanderramin/buildplan/internal/domain"
	"github.com/alexanderramin/buildplan/internal/estimate"
	"github.com/alexanderramin/buildplan/internal/export"
	"github.com/alexanderramin/buildplan/internal/intelligence"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
)

const recentChatMessages = 10

// planGeneratedMsg carries the result of an asynchronous plan generation.
type planGeneratedMsg struct {
	plan *domain.ProjectPlan
	err  error
}

// suggestionsMsg carries advisor output for a snapshot of the plan.
type suggestionsMsg struct {
	suggestions []intelligence.Suggestion
	post        bool
	err         error
}

// ticketClassifiedMsg carries the classifier's verdict for a description.
type ticketClassifiedMsg struct {
	description string
	analysis    *intelligence.TicketAnalysis
	err         error
}

// executeCommand runs one shell line. It returns text to print and an
// optional follow-up Cmd. Errors are rendered inline; the shell never exits
// on a failed command.
func (m *shellModel) executeCommand(input string) (string, tea.Cmd) {
	args, err := splitShellArgs(input)
	if err != nil {
		return shellError(err), nil
	}
	if len(args) == 0 {
		return "", nil
	}
	name := strings.ToLower(args[0])
	rest := args[1:]

	switch name {
	case "exit", "quit", "q":
		m.quitting = true
		return "", tea.Quit
	case "help", "?":
		return formatter.FormatShellHelp(), nil
	case "clear":
		return "", tea.ClearScreen

	case "new":
		return m.cmdNew()
	case "load":
		return m.cmdLoad(rest)
	case "save":
		return m.cmdSave(rest), nil
	case "show":
		return m.cmdShow(), nil
	case "materials", "mat":
		return m.cmdMaterials(rest), nil
	case "export":
		return m.cmdExport(rest), nil
	case "reset":
		if !m.app.Workspace.Active() {
			return formatter.Dim("Nothing to reset."), nil
		}
		return m.confirm("Discard the plan and its history", func(m *shellModel) (string, tea.Cmd) {
			m.app.Workspace.Reset()
			return formatter.Dim("Plan discarded."), nil
		}), nil

	case "set":
		return m.cmdSet(rest), nil
	case "total":
		return m.cmdTotal(rest), nil
	case "bulk":
		return m.cmdBulk(rest), nil
	case "adjust":
		return m.cmdAdjust(rest), nil
	case "undo":
		return m.cmdStep(m.app.Workspace.Undo, "undo"), nil
	case "redo":
		return m.cmdStep(m.app.Workspace.Redo, "redo"), nil
	case "history":
		return formatter.FormatHistory(m.app.Workspace.History()), nil

	case "suggest":
		return m.cmdSuggest(rest)
	case "chat":
		return m.cmdChat(rest), nil
	case "pay":
		return m.cmdPay(), nil
	case "paid":
		return m.cmdPaid(rest), nil
	case "payments":
		cur := m.app.Workspace.Current()
		if cur == nil {
			return shellError(estimate.ErrNoActivePlan), nil
		}
		return formatter.FormatPayments(cur), nil
	case "ticket":
		return m.cmdTicket(rest)
	case "tickets":
		return m.cmdTickets(), nil
	case "note":
		return m.cmdNote(rest), nil
	}

	return unknownCommand(name), nil
}

// shellError renders err inline with a hint where one helps.
func shellError(err error) string {
	out := formatter.Error(err)
	if errors.Is(err, estimate.ErrNoActivePlan) {
		out += "\n" + formatter.Dim("Start one with 'new' or 'load <file>'.")
	}
	return out
}

func usage(line string) string {
	return formatter.Dim("Usage: " + line)
}

func unknownCommand(name string) string {
	msg := formatter.Error(fmt.Errorf("unknown command %q", name))
	var near []string
	if len(name) >= 2 {
		near = filterSuggestions(allCommandNames(), name[:2])
	}
	if len(near) > 0 {
		msg += "\n" + formatter.Dim("Did you mean: "+strings.Join(near, ", ")+"?")
	} else {
		msg += "\n" + formatter.Dim("Type 'help' for commands.")
	}
	return msg
}

func itoa(i int) string { return strconv.Itoa(i) }

// parseShellFlags strips --flags from a shell command's arguments and
// returns the positional rest.
func parseShellFlags(name string, args []string, define func(fs *pflag.FlagSet)) ([]string, error) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	define(fs)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return fs.Args(), nil
}

// parseAmount accepts plain finite numbers with optional thousands
// separators.
func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

// ── plan lifecycle ───────────────────────────────────────────────────────────

func (m *shellModel) cmdNew() (string, tea.Cmd) {
	if m.app.Generator == nil {
		return shellError(errNoGenerator), nil
	}
	start := func(m *shellModel) (string, tea.Cmd) {
		wiz := newIntakeWizard(domain.DefaultIntake())
		return "", m.startWizard(wiz.form(), func(m *shellModel) tea.Cmd {
			intake, err := wiz.Intake()
			if err != nil {
				return tea.Println(shellError(err))
			}
			m.busy = "generating plan"
			return generatePlanCmd(m.app.Generator, intake)
		})
	}
	if m.app.Workspace.Active() {
		return m.confirm("Replace the current plan and its history", start), nil
	}
	return start(m)
}

func generatePlanCmd(gen intelligence.PlanGenerator, intake domain.Intake) tea.Cmd {
	return func() tea.Msg {
		plan, err := gen.Generate(context.Background(), intake)
		return planGeneratedMsg{plan: plan, err: err}
	}
}

func (m *shellModel) handlePlanGenerated(msg planGeneratedMsg) string {
	m.busy = ""
	if msg.err != nil {
		return shellError(msg.err)
	}
	issues, err := m.app.Workspace.CreateHistory(msg.plan)
	if err != nil {
		return shellError(err)
	}
	out := formatter.FormatPlanSummary(m.app.Workspace.Current(), m.app.Workspace.Baseline().TotalCost)
	if len(issues) > 0 {
		out += "\n" + formatter.FormatIssues(issues)
	}
	return out
}

func (m *shellModel) cmdLoad(args []string) (string, tea.Cmd) {
	if len(args) != 1 {
		return usage("load <file.json|file.yaml>"), nil
	}
	path := args[0]
	load := func(m *shellModel) (string, tea.Cmd) {
		plan, err := loadPlanFile(path)
		if err != nil {
			return shellError(err), nil
		}
		issues, err := m.app.Workspace.CreateHistory(plan)
		if err != nil {
			return shellError(err), nil
		}
		out := formatter.StyleGreen.Render("Loaded "+path) + "\n" +
			formatter.FormatPlanSummary(m.app.Workspace.Current(), m.app.Workspace.Baseline().TotalCost)
		if len(issues) > 0 {
			out += "\n" + formatter.FormatIssues(issues)
		}
		return out, nil
	}
	if m.app.Workspace.Active() {
		return m.confirm("Replace the current plan and its history with "+path, load), nil
	}
	return load(m)
}

func (m *shellModel) cmdSave(args []string) string {
	if len(args) != 1 {
		return usage("save <file.json|file.yaml>")
	}
	cur := m.app.Workspace.Current()
	if cur == nil {
		return shellError(estimate.ErrNoActivePlan)
	}
	if err := savePlanFile(args[0], cur); err != nil {
		return shellError(err)
	}
	return formatter.StyleGreen.Render("Saved " + args[0])
}

func (m *shellModel) cmdShow() string {
	cur := m.app.Workspace.Current()
	if cur == nil {
		return shellError(estimate.ErrNoActivePlan)
	}
	return formatter.FormatPlanSummary(cur, m.app.Workspace.Baseline().TotalCost)
}

func (m *shellModel) cmdMaterials(args []string) string {
	cur := m.app.Workspace.Current()
	if cur == nil {
		return shellError(estimate.ErrNoActivePlan)
	}
	if len(args) == 0 {
		return formatter.FormatMaterials(m.app.Workspace.Materials())
	}
	name := strings.Join(args, " ")
	out, ok := formatter.FormatMaterialDetail(cur, name)
	if !ok {
		return shellError(fmt.Errorf("%w: %s", estimate.ErrUnknownMaterial, name))
	}
	return out
}

func (m *shellModel) cmdExport(args []string) string {
	if len(args) != 1 {
		return usage("export <file.xlsx>")
	}
	cur := m.app.Workspace.Current()
	if cur == nil {
		return shellError(estimate.ErrNoActivePlan)
	}
	if err := export.WriteFile(args[0], cur); err != nil {
		return shellError(err)
	}
	return formatter.StyleGreen.Render("Exported " + args[0])
}

// ── editing ──────────────────────────────────────────────────────────────────

// cmdSet handles "set <material> <floor> [qty=N] [price=N] [--preview]".
func (m *shellModel) cmdSet(args []string) string {
	const line = "set <material> <floor> [qty=N] [price=N] [--preview]"
	var preview bool
	args, err := parseShellFlags("set", args, func(fs *pflag.FlagSet) {
		fs.BoolVar(&preview, "preview", false, "compute without recording")
	})
	if err != nil {
		return shellError(err)
	}
	if len(args) < 3 {
		return usage(line)
	}
	floor, err := strconv.Atoi(args[1])
	if err != nil {
		return shellError(fmt.Errorf("floor %q is not a number", args[1]))
	}

	req := contract.NewFloorEditRequest(args[0], floor)
	for _, a := range args[2:] {
		key, val, ok := strings.Cut(a, "=")
		if !ok {
			return usage(line)
		}
		v, err := parseAmount(val)
		if err != nil {
			return shellError(err)
		}
		switch strings.ToLower(key) {
		case "qty", "quantity":
			req = req.WithQuantity(v)
		case "price", "rate":
			req = req.WithUnitPrice(v)
		default:
			return usage(line)
		}
	}

	apply := m.app.Workspace.ApplyFloorEdit
	if preview {
		apply = m.app.Workspace.PreviewFloorEdit
	}
	res, err := apply(req)
	if err != nil {
		return shellError(err)
	}
	return formatter.FormatEditResult(res)
}

// cmdTotal handles "total <material> <qty> [--preview]".
func (m *shellModel) cmdTotal(args []string) string {
	var preview bool
	args, err := parseShellFlags("total", args, func(fs *pflag.FlagSet) {
		fs.BoolVar(&preview, "preview", false, "compute without recording")
	})
	if err != nil {
		return shellError(err)
	}
	if len(args) < 2 {
		return usage("total <material> <qty> [--preview]")
	}
	total, err := parseAmount(args[len(args)-1])
	if err != nil {
		return shellError(err)
	}
	req := contract.TotalQuantityRequest{Material: strings.Join(args[:len(args)-1], " "), Total: total}

	apply := m.app.Workspace.ApplyTotalQuantityEdit
	if preview {
		apply = m.app.Workspace.PreviewTotalQuantityEdit
	}
	res, err := apply(req)
	if err != nil {
		return shellError(err)
	}
	return formatter.FormatEditResult(res)
}

// cmdBulk handles "bulk <increase|decrease> <quantity|price> <pct> <m1,m2,...> [--independent]".
func (m *shellModel) cmdBulk(args []string) string {
	var independent bool
	args, err := parseShellFlags("bulk", args, func(fs *pflag.FlagSet) {
		fs.BoolVar(&independent, "independent", false, "round each floor entry on its own")
	})
	if err != nil {
		return shellError(err)
	}
	if len(args) < 4 {
		return usage("bulk <increase|decrease> <quantity|price> <pct> <m1,m2,...> [--independent]")
	}
	pct, err := parseAmount(strings.TrimSuffix(args[2], "%"))
	if err != nil {
		return shellError(err)
	}
	var materials []string
	for _, part := range strings.Split(strings.Join(args[3:], " "), ",") {
		if part = strings.TrimSpace(part); part != "" {
			materials = append(materials, part)
		}
	}
	req := contract.NewBulkEditRequest(
		contract.BulkAction(strings.ToLower(args[0])),
		contract.BulkField(strings.ToLower(args[1])),
		pct, materials...)
	req.Independent = independent
	res, err := m.app.Workspace.ApplyBulkEdit(req)
	if err != nil {
		return shellError(err)
	}
	return formatter.FormatEditResult(res)
}

// cmdStep moves through history and reports where the cursor landed.
func (m *shellModel) cmdStep(move func() (*domain.ProjectPlan, bool), verb string) string {
	if !m.app.Workspace.Active() {
		return shellError(estimate.ErrNoActivePlan)
	}
	plan, ok := move()
	if !ok {
		return formatter.Dim("Nothing to " + verb + ".")
	}
	label := ""
	for _, e := range m.app.Workspace.History() {
		if e.Current {
			label = fmt.Sprintf("#%d %s", e.Index, e.Label)
		}
	}
	return fmt.Sprintf("%s %s  %s %s",
		formatter.StyleBlue.Render(verb),
		formatter.StyleFg.Render(label),
		formatter.Dim("total"),
		formatter.StyleBold.Render(formatter.INR(plan.TotalCost)))
}

// ── collaborators ────────────────────────────────────────────────────────────

// cmdSuggest fetches advisor text off the update loop. "--post" also adds
// each suggestion to the chat.
func (m *shellModel) cmdSuggest(args []string) (string, tea.Cmd) {
	cur := m.app.Workspace.Current()
	if cur == nil {
		return shellError(estimate.ErrNoActivePlan), nil
	}
	var post bool
	args, err := parseShellFlags("suggest", args, func(fs *pflag.FlagSet) {
		fs.BoolVar(&post, "post", false, "add the suggestions to the chat")
	})
	if err != nil {
		return shellError(err), nil
	}
	kind := "all"
	if len(args) > 0 {
		kind = strings.ToLower(args[0])
	}

	advisor := m.app.Advisor
	if kind != "all" && !validSuggestionKind(kind) {
		return usage("suggest [cost|materials|design|all] [--post]"), nil
	}
	if advisor == nil {
		// Without an advisor the local suggestions are immediate.
		var out []intelligence.Suggestion
		for _, k := range kindsFor(kind) {
			out = append(out, *intelligence.DeterministicSuggestion(k, cur))
		}
		return m.handleSuggestions(suggestionsMsg{suggestions: out, post: post}), nil
	}

	m.busy = "asking advisor"
	return formatter.Dim("Asking the advisor…"), func() tea.Msg {
		ctx := context.Background()
		if kind == "all" {
			s, err := advisor.All(ctx, cur)
			return suggestionsMsg{suggestions: s, post: post, err: err}
		}
		s, err := advisor.Suggest(ctx, intelligence.SuggestionKind(kind), cur)
		if err != nil {
			return suggestionsMsg{err: err}
		}
		return suggestionsMsg{suggestions: []intelligence.Suggestion{*s}, post: post}
	}
}

func validSuggestionKind(kind string) bool {
	for _, k := range intelligence.SuggestionKinds {
		if string(k) == kind {
			return true
		}
	}
	return false
}

func kindsFor(kind string) []intelligence.SuggestionKind {
	if kind == "all" {
		return intelligence.SuggestionKinds
	}
	return []intelligence.SuggestionKind{intelligence.SuggestionKind(kind)}
}

func (m *shellModel) handleSuggestions(msg suggestionsMsg) string {
	m.busy = ""
	if msg.err != nil {
		return shellError(msg.err)
	}
	out := formatter.FormatSuggestions(msg.suggestions)
	if !msg.post {
		return out
	}
	for _, s := range msg.suggestions {
		if _, err := m.app.Workspace.AddAdvisorMessage(s.Text); err != nil {
			return out + "\n" + shellError(err)
		}
	}
	return out + "\n" + formatter.Dim(fmt.Sprintf("Posted %d suggestion(s) to the chat.", len(msg.suggestions)))
}

func (m *shellModel) cmdChat(args []string) string {
	cur := m.app.Workspace.Current()
	if cur == nil {
		return shellError(estimate.ErrNoActivePlan)
	}
	if len(args) == 0 {
		return formatter.FormatChat(cur.ChatHistory, recentChatMessages)
	}
	res, err := m.app.Workspace.SendMessage(strings.Join(args, " "))
	if err != nil {
		return shellError(err)
	}
	return formatter.FormatChat(res.Plan.ChatHistory, 2)
}

func (m *shellModel) cmdPay() string {
	res, err := m.app.Workspace.PayBooking()
	if err != nil {
		return shellError(err)
	}
	return formatter.FormatEditResult(res) + "\n" + formatter.FormatPayments(res.Plan)
}

func (m *shellModel) cmdPaid(args []string) string {
	if len(args) == 0 {
		return usage("paid <milestone>")
	}
	res, err := m.app.Workspace.MarkMilestonePaid(strings.Join(args, " "))
	if err != nil {
		return shellError(err)
	}
	return formatter.FormatEditResult(res) + "\n" + formatter.FormatPayments(res.Plan)
}

// cmdTicket classifies the description, then raises the ticket. With no
// classifier configured the keyword rules answer immediately.
func (m *shellModel) cmdTicket(args []string) (string, tea.Cmd) {
	if !m.app.Workspace.Active() {
		return shellError(estimate.ErrNoActivePlan), nil
	}
	if len(args) == 0 {
		return usage("ticket <description>"), nil
	}
	desc := strings.Join(args, " ")
	classifier := m.app.Classifier
	if classifier == nil {
		return m.handleTicketClassified(ticketClassifiedMsg{
			description: desc,
			analysis:    intelligence.ClassifyTicketByKeywords(desc),
		}), nil
	}
	m.busy = "classifying ticket"
	return "", func() tea.Msg {
		a, err := classifier.Classify(context.Background(), desc)
		return ticketClassifiedMsg{description: desc, analysis: a, err: err}
	}
}

func (m *shellModel) handleTicketClassified(msg ticketClassifiedMsg) string {
	m.busy = ""
	analysis := msg.analysis
	if msg.err != nil || analysis == nil {
		analysis = intelligence.ClassifyTicketByKeywords(msg.description)
	}
	res, err := m.app.Workspace.RaiseTicket(analysis.Subject, analysis.Category, msg.description)
	if err != nil {
		return shellError(err)
	}
	return formatter.FormatTicket(res.Plan.SupportTickets[0])
}

func (m *shellModel) cmdTickets() string {
	cur := m.app.Workspace.Current()
	if cur == nil {
		return shellError(estimate.ErrNoActivePlan)
	}
	if len(cur.SupportTickets) == 0 {
		return formatter.Dim("No tickets.")
	}
	lines := make([]string, 0, len(cur.SupportTickets))
	for _, t := range cur.SupportTickets {
		lines = append(lines, formatter.FormatTicket(t))
	}
	return strings.Join(lines, "\n")
}

func (m *shellModel) cmdNote(args []string) string {
	if len(args) < 2 {
		return usage("note <date> <text>")
	}
	if _, err := m.app.Workspace.AddUserNote(args[0], strings.Join(args[1:], " ")); err != nil {
		return shellError(err)
	}
	return formatter.StyleGreen.Render("Note saved for " + args[0])
}
