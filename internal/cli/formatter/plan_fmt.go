package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/buildplan/internal/contract"
	"github.com/alexanderramin/buildplan/internal/domain"
)

// FormatPlanSummary renders the headline figures and the budget sections.
// When baselineTotal is positive the change since generation is shown.
func FormatPlanSummary(p *domain.ProjectPlan, baselineTotal float64) string {
	var b strings.Builder

	in := p.Intake
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Location     "), StyleFg.Render(in.Location)))
	b.WriteString(fmt.Sprintf("%s %s %s\n", Dim("Built-up     "),
		StyleFg.Render(Area(in.BuiltUpArea())),
		Dim(fmt.Sprintf("(%d floors on %s)", in.Floors, Area(in.PlotArea)))))
	if in.ConstructionQuality != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Quality      "), StyleFg.Render(string(in.ConstructionQuality))))
	}

	total := StyleBold.Render(INR(p.TotalCost))
	if baselineTotal > 0 && p.TotalCost != baselineTotal {
		total += "  " + Delta(p.TotalCost-baselineTotal, INR) + Dim(" vs generated")
	}
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Total cost   "), total))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Cost / sq.ft "), StyleFg.Render(INR(p.CostPerSqFt))))
	if p.PaymentStatus != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Payment      "), StyleFg.Render(string(p.PaymentStatus))))
	}

	b.WriteString("\n")
	b.WriteString(Header("Budget"))
	b.WriteString("\n")
	rows := make([][]string, 0, len(p.BudgetBreakdown))
	for _, s := range p.BudgetBreakdown {
		share := ""
		if p.TotalCost > 0 {
			share = RenderShare(s.TotalCost/p.TotalCost, 12)
		}
		rows = append(rows, []string{string(s.SectionName), strconv.Itoa(len(s.Items)), INR(s.TotalCost), share})
	}
	b.WriteString(Table{
		Headers: []string{"SECTION", "ITEMS", "COST", "SHARE"},
		Rows:    rows,
		Align:   []Align{AlignLeft, AlignRight, AlignRight, AlignLeft},
	}.Render())

	return RenderBox("Plan "+shortID(p.ID), strings.TrimRight(b.String(), "\n"))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// FormatMaterials renders the per-material aggregate table.
func FormatMaterials(summaries []contract.MaterialSummary) string {
	if len(summaries) == 0 {
		return Dim("No materials in this plan.")
	}
	rows := make([][]string, 0, len(summaries))
	var total float64
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Material,
			strconv.Itoa(s.Floors),
			Quantity(s.TotalQuantity),
			s.Unit,
			Quantity(s.BaselineQuantity),
			Delta(s.Delta, Quantity),
			INR(s.Cost),
			Dim(s.BudgetItem),
		})
		total += s.Cost
	}
	rows = append(rows, []string{Bold("Total"), "", "", "", "", "", Bold(INR(total)), ""})

	return Header("Materials") + "\n" + Table{
		Headers: []string{"MATERIAL", "FLOORS", "QTY", "UNIT", "GENERATED", "DELTA", "COST", "BUDGET ITEM"},
		Rows:    rows,
		Align:   []Align{AlignLeft, AlignRight, AlignRight, AlignLeft, AlignRight, AlignRight, AlignRight, AlignLeft},
	}.Render()
}

// FormatMaterialDetail renders one material floor by floor. ok is false
// when the plan has no such material.
func FormatMaterialDetail(p *domain.ProjectPlan, name string) (string, bool) {
	material, found := p.ResolveMaterialName(name)
	if !found {
		return "", false
	}
	var rows [][]string
	for _, i := range p.EntryIndexes(material) {
		e := p.MaterialQuantities[i]
		rows = append(rows, []string{
			strconv.Itoa(e.Floor),
			domain.FloorLabel(e.Floor),
			Quantity(e.Quantity),
			e.Unit,
			INR(e.UnitPrice),
			INR(e.Cost()),
			Dim(Quantity(e.Baseline())),
		})
	}
	return Header(material) + "\n" + Table{
		Headers: []string{"#", "FLOOR", "QTY", "UNIT", "PRICE", "COST", "GENERATED"},
		Rows:    rows,
		Align:   []Align{AlignRight, AlignLeft, AlignRight, AlignLeft, AlignRight, AlignRight, AlignRight},
	}.Render(), true
}

// FormatEditResult renders a one-line outcome for an edit plus any issues.
func FormatEditResult(res *contract.EditResult) string {
	var b strings.Builder
	marker := StyleGreen.Render("✔")
	if !res.Recorded {
		marker = StyleBlue.Render("◇ preview")
	}
	b.WriteString(fmt.Sprintf("%s %s  %s %s  %s",
		marker,
		StyleFg.Render(res.Label),
		Dim("total"),
		StyleBold.Render(INR(res.TotalCost)),
		Dim(fmt.Sprintf("%s/sq.ft", INR(res.CostPerSqFt))),
	))
	if res.Recorded {
		b.WriteString(Dim(fmt.Sprintf("  [#%d]", res.Index)))
	}
	if len(res.Issues) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatIssues(res.Issues))
	}
	return b.String()
}

// FormatIssues renders one line per issue.
func FormatIssues(issues []contract.Issue) string {
	lines := make([]string, 0, len(issues))
	for _, is := range issues {
		lines = append(lines, "  "+IssueColor(is.Code).Render("! "+is.String()))
	}
	return strings.Join(lines, "\n")
}

// FormatHistory renders the undo history with the cursor marked.
func FormatHistory(entries []contract.HistoryEntry) string {
	if len(entries) == 0 {
		return Dim("No history.")
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		cursor := ""
		label := e.Label
		if e.Current {
			cursor = StyleGreen.Render("▶")
			label = StyleBold.Render(label)
		}
		rows = append(rows, []string{
			cursor,
			strconv.Itoa(e.Index),
			label,
			INR(e.TotalCost),
			Dim(e.At.Local().Format("15:04:05")),
		})
	}
	return Header("History") + "\n" + Table{
		Headers: []string{"", "#", "EDIT", "TOTAL", "AT"},
		Rows:    rows,
		Align:   []Align{AlignLeft, AlignRight, AlignLeft, AlignRight, AlignLeft},
	}.Render()
}

// FormatPayments renders the payment schedule.
func FormatPayments(p *domain.ProjectPlan) string {
	if len(p.PaymentSchedule) == 0 {
		return Dim("No payment schedule.")
	}
	rows := make([][]string, 0, len(p.PaymentSchedule))
	for _, m := range p.PaymentSchedule {
		rows = append(rows, []string{
			m.Milestone,
			Quantity(m.Percentage) + "%",
			INR(m.Amount),
			MilestoneIndicator(m.Status),
		})
	}
	return Header("Payments") + "\n" + Dim(string(p.PaymentStatus)) + "\n" + Table{
		Headers: []string{"MILESTONE", "SHARE", "AMOUNT", "STATUS"},
		Rows:    rows,
		Align:   []Align{AlignLeft, AlignRight, AlignRight, AlignLeft},
	}.Render()
}

// FormatTicket renders a newly raised or listed support ticket.
func FormatTicket(t domain.SupportTicket) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s  %s\n",
		StylePurple.Render(t.ID),
		StyleBold.Render(t.Subject),
		TicketIndicator(t.Status)))
	b.WriteString(Dim(fmt.Sprintf("  %s · %s · expected by %s", t.Category, t.AssignedTo, t.ExpectedResolution)))
	return b.String()
}
