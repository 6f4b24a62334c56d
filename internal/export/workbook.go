// Package export writes a plan's bill of materials as an .xlsx workbook.
package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/alexanderramin/buildplan/internal/domain"
	"github.com/alexanderramin/buildplan/internal/estimate"
	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet   = "Summary"
	MaterialsSheet = "Materials"
	BudgetSheet    = "Budget"
)

var materialHeader = []any{"Material", "Floor", "Quantity", "Unit", "Unit Price", "Cost", "Original Quantity"}

var budgetHeader = []any{"Section", "Item", "Cost", "Floor", "Floor Cost", "Material"}

// Workbook builds the workbook. Callers must Close the returned file.
func Workbook(p *domain.ProjectPlan) (*excelize.File, error) {
	if p == nil {
		return nil, errors.New("plan is nil")
	}
	f := excelize.NewFile()
	b := &builder{f: f}

	b.sheet(SummarySheet)
	f.SetActiveSheet(0)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		b.fail(err)
	}
	b.writeSummary(p)

	b.sheet(MaterialsSheet)
	b.writeMaterials(p)

	b.sheet(BudgetSheet)
	b.writeBudget(p)

	if b.err != nil {
		f.Close()
		return nil, fmt.Errorf("building workbook: %w", b.err)
	}
	return f, nil
}

// Write streams the workbook to w.
func Write(w io.Writer, p *domain.ProjectPlan) error {
	f, err := Workbook(p)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteTo(w)
	return err
}

// WriteFile saves the workbook at path.
func WriteFile(path string, p *domain.ProjectPlan) error {
	f, err := Workbook(p)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

// builder keeps the first error so the sheet writers stay linear.
type builder struct {
	f      *excelize.File
	err    error
	header int
}

func (b *builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *builder) sheet(name string) {
	if _, err := b.f.NewSheet(name); err != nil {
		b.fail(err)
	}
}

func (b *builder) row(sheet string, r int, values []any) {
	cell, err := excelize.CoordinatesToCellName(1, r)
	if err != nil {
		b.fail(err)
		return
	}
	if err := b.f.SetSheetRow(sheet, cell, &values); err != nil {
		b.fail(err)
	}
}

func (b *builder) headerStyle() int {
	if b.header != 0 {
		return b.header
	}
	id, err := b.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
	})
	if err != nil {
		b.fail(err)
		return 0
	}
	b.header = id
	return id
}

func (b *builder) styleHeader(sheet string, cols int) {
	end, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		b.fail(err)
		return
	}
	if err := b.f.SetCellStyle(sheet, "A1", end, b.headerStyle()); err != nil {
		b.fail(err)
	}
}

func (b *builder) writeSummary(p *domain.ProjectPlan) {
	rows := [][]any{
		{"Project ID", p.ID},
		{"Location", p.Intake.Location},
		{"Built-up Area (sq ft)", p.Intake.BuiltUpArea()},
		{"Total Cost", p.TotalCost},
		{"Cost per Sq Ft", p.CostPerSqFt},
		{"Payment Status", string(p.PaymentStatus)},
	}
	for i, r := range rows {
		b.row(SummarySheet, i+1, r)
	}
	next := len(rows) + 2
	b.row(SummarySheet, next, []any{"Material", "Unit", "Total Quantity", "Baseline Quantity", "Delta", "Cost", "Budget Item"})
	for i, s := range estimate.SummarizeMaterials(p) {
		b.row(SummarySheet, next+1+i, []any{s.Material, s.Unit, s.TotalQuantity, s.BaselineQuantity, s.Delta, s.Cost, s.BudgetItem})
	}
	if err := b.f.SetColWidth(SummarySheet, "A", "A", 24); err != nil {
		b.fail(err)
	}
}

func (b *builder) writeMaterials(p *domain.ProjectPlan) {
	b.row(MaterialsSheet, 1, materialHeader)
	for i, m := range p.MaterialQuantities {
		b.row(MaterialsSheet, i+2, []any{
			m.Material, domain.FloorLabel(m.Floor), m.Quantity, m.Unit, m.UnitPrice, m.Cost(), m.Baseline(),
		})
	}
	b.styleHeader(MaterialsSheet, len(materialHeader))
}

func (b *builder) writeBudget(p *domain.ProjectPlan) {
	b.row(BudgetSheet, 1, budgetHeader)
	r := 2
	for _, s := range p.BudgetBreakdown {
		b.row(BudgetSheet, r, []any{string(s.SectionName), "", s.TotalCost})
		r++
		for _, item := range s.Items {
			b.row(BudgetSheet, r, []any{"", item.Item, item.Cost, "", "", item.Material})
			r++
			for _, fc := range item.FloorBreakdown {
				b.row(BudgetSheet, r, []any{"", "", "", fc.Floor, fc.Cost})
				r++
			}
		}
	}
	b.styleHeader(BudgetSheet, len(budgetHeader))
}
