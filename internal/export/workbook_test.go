package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/buildplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWrite_Sheets(t *testing.T) {
	plan := testutil.NewTestPlan()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, plan))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, MaterialsSheet, BudgetSheet}, f.GetSheetList())

	total, err := f.GetCellValue(SummarySheet, "B4")
	require.NoError(t, err)
	assert.Equal(t, "254000", total)

	rows, err := f.GetRows(MaterialsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1+len(plan.MaterialQuantities))
	assert.Equal(t, "Material", rows[0][0])
	assert.Equal(t, []string{"Cement", "Foundation", "10", "bags", "400", "4000", "10"}, rows[1])

	budget, err := f.GetRows(BudgetSheet)
	require.NoError(t, err)
	var sections []string
	for _, r := range budget[1:] {
		if len(r) > 0 && r[0] != "" {
			sections = append(sections, r[0])
		}
	}
	assert.Equal(t, []string{"Structure", "Materials", "Labour"}, sections)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.xlsx")
	require.NoError(t, WriteFile(path, testutil.NewTestPlan()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), MaterialsSheet)
}

func TestWorkbook_NilPlan(t *testing.T) {
	_, err := Workbook(nil)
	assert.Error(t, err)
}
