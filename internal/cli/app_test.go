package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/buildplan/internal/domain"
	"github.com/alexanderramin/buildplan/internal/estimate"
	"github.com/alexanderramin/buildplan/internal/intelligence"
	"github.com/alexanderramin/buildplan/internal/testutil"
)

// testDebounce is long enough that the driver's cmd timeout always skips
// the tick, so tests deliver adjustDueMsg themselves.
const testDebounce = 200 * time.Millisecond

func testWorkspace() *estimate.Workspace {
	return estimate.NewWorkspace(
		estimate.WithClock(testutil.Clock()),
		estimate.WithTicketIDs(func() string { return "TKT-TEST00001" }),
	)
}

// testApp returns an App with an empty workspace and no intelligence.
func testApp(t *testing.T) *App {
	t.Helper()
	return &App{
		Workspace:     testWorkspace(),
		DebounceDelay: testDebounce,
	}
}

// testAppWithPlan returns an App with the standard test plan loaded.
func testAppWithPlan(t *testing.T, opts ...testutil.PlanOption) *App {
	t.Helper()
	app := testApp(t)
	_, err := app.Workspace.CreateHistory(testutil.NewTestPlan(opts...))
	require.NoError(t, err)
	return app
}

func testShell(app *App) shellModel {
	return newShellModel(app, openShellHistory(""))
}

// ── fakes ────────────────────────────────────────────────────────────────────

type fakeGenerator struct {
	plan   *domain.ProjectPlan
	err    error
	intake domain.Intake
}

func (g *fakeGenerator) Generate(_ context.Context, intake domain.Intake) (*domain.ProjectPlan, error) {
	g.intake = intake
	if g.err != nil {
		return nil, g.err
	}
	p := g.plan.Clone()
	p.Intake = intake
	return p, nil
}

type fakeAdvisor struct {
	calls int
}

func (a *fakeAdvisor) suggestion(kind intelligence.SuggestionKind) *intelligence.Suggestion {
	a.calls++
	return &intelligence.Suggestion{Kind: kind, Text: "use " + string(kind) + " wisely", Source: "llm"}
}

func (a *fakeAdvisor) CostSavings(_ context.Context, _ *domain.ProjectPlan) (*intelligence.Suggestion, error) {
	return a.suggestion(intelligence.SuggestCostSavings), nil
}

func (a *fakeAdvisor) MaterialAlternatives(_ context.Context, _ *domain.ProjectPlan) (*intelligence.Suggestion, error) {
	return a.suggestion(intelligence.SuggestMaterialAlternatives), nil
}

func (a *fakeAdvisor) DesignImprovements(_ context.Context, _ *domain.ProjectPlan) (*intelligence.Suggestion, error) {
	return a.suggestion(intelligence.SuggestDesignImprovements), nil
}

func (a *fakeAdvisor) Suggest(_ context.Context, kind intelligence.SuggestionKind, _ *domain.ProjectPlan) (*intelligence.Suggestion, error) {
	return a.suggestion(kind), nil
}

func (a *fakeAdvisor) All(_ context.Context, _ *domain.ProjectPlan) ([]intelligence.Suggestion, error) {
	out := make([]intelligence.Suggestion, 0, len(intelligence.SuggestionKinds))
	for _, k := range intelligence.SuggestionKinds {
		out = append(out, *a.suggestion(k))
	}
	return out, nil
}

type fakeClassifier struct {
	analysis *intelligence.TicketAnalysis
	err      error
}

func (c *fakeClassifier) Classify(_ context.Context, _ string) (*intelligence.TicketAnalysis, error) {
	return c.analysis, c.err
}
