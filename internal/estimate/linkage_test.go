package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/buildplan/internal/contract"
	"github.com/alexanderramin/buildplan/internal/domain"
	"github.com/alexanderramin/buildplan/internal/testutil"
)

func issueCodes(issues []contract.Issue) map[string]contract.IssueCode {
	out := make(map[string]contract.IssueCode, len(issues))
	for _, is := range issues {
		out[is.Material] = is.Code
	}
	return out
}

func TestLinkBudgetItems_SubstringMatch(t *testing.T) {
	p := testutil.NewTestPlan()
	issues := LinkBudgetItems(p)
	assert.Empty(t, issues)

	items := p.BudgetBreakdown[p.SectionIndex(domain.MaterialsSection)].Items
	assert.Equal(t, "Cement", items[0].Material)
	assert.Equal(t, "Steel", items[1].Material)
	assert.Equal(t, "Sand", items[2].Material)
}

func TestLinkBudgetItems_AmbiguousTakesFirst(t *testing.T) {
	p := testutil.NewTestPlan(testutil.WithMaterialsItem("White cement putty", 5000))
	issues := LinkBudgetItems(p)

	require.Len(t, issues, 1)
	assert.Equal(t, contract.IssueAmbiguousBudgetItem, issues[0].Code)
	assert.Contains(t, issues[0].Message, "White cement putty")

	items := p.BudgetBreakdown[p.SectionIndex(domain.MaterialsSection)].Items
	assert.Equal(t, "Cement", items[0].Material)
	assert.Empty(t, items[3].Material)
}

func TestLinkBudgetItems_ExplicitLinkWins(t *testing.T) {
	p := testutil.NewTestPlan(testutil.WithMaterialsItem("Binder", 0))
	items := p.BudgetBreakdown[p.SectionIndex(domain.MaterialsSection)].Items
	items[3].Material = "cement"

	issues := LinkBudgetItems(p)
	assert.Empty(t, issues)
	assert.Equal(t, "Cement", items[3].Material, "explicit link is normalised to the plan's spelling")
	assert.Empty(t, items[0].Material)
}

func TestLinkBudgetItems_Unmatched(t *testing.T) {
	p := testutil.NewTestPlan(testutil.WithMaterial("Gravel", 0, 4, "bags", 60))
	codes := issueCodes(LinkBudgetItems(p))
	assert.Equal(t, map[string]contract.IssueCode{"Gravel": contract.IssueUnmatchedBudgetItem}, codes)
}

func TestLinkBudgetItems_NoMaterialsSection(t *testing.T) {
	p := testutil.NewTestPlan(testutil.WithoutMaterialsSection())
	codes := issueCodes(LinkBudgetItems(p))
	assert.Len(t, codes, 3)
	for _, c := range codes {
		assert.Equal(t, contract.IssueUnmatchedBudgetItem, c)
	}
}

func TestRecalculate_NoMaterialsSectionStillTotals(t *testing.T) {
	w := newTestWorkspace(t, testutil.WithoutMaterialsSection())

	res, err := w.ApplyTotalQuantityEdit(contract.TotalQuantityRequest{Material: "Cement", Total: 90})
	require.NoError(t, err)
	assert.Equal(t, []float64{15, 30, 45}, quantities(w.Current(), "Cement"))
	assert.InDelta(t, 150000, res.TotalCost, 1e-6)
	assert.InDelta(t, 127, res.CostPerSqFt, 1e-9)
}

func TestBaseline_CostPerSqFt(t *testing.T) {
	b := Baseline{TotalCost: 200, CostPerSqFt: 10}
	assert.InDelta(t, 15, b.Scale(300, 0), 1e-12)
	assert.Equal(t, 7.0, Baseline{}.Scale(300, 7))
}
