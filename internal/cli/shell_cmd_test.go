package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/buildplan/internal/domain"
	"github.com/alexanderramin/buildplan/internal/intelligence"
	"github.com/alexanderramin/buildplan/internal/teatest"
	"github.com/alexanderramin/buildplan/internal/testutil"
)

func TestSplitShellArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{
			name:  "single word",
			input: "show",
			want:  []string{"show"},
		},
		{
			name:  "double quoted material",
			input: `total "River Sand" 240`,
			want:  []string{"total", "River Sand", "240"},
		},
		{
			name:  "single quoted phrase",
			input: "chat 'can we use AAC blocks?'",
			want:  []string{"chat", "can we use AAC blocks?"},
		},
		{
			name:  "key value pairs",
			input: "set Cement 1 qty=23 price=410",
			want:  []string{"set", "Cement", "1", "qty=23", "price=410"},
		},
		{
			name:  "empty quoted arg",
			input: `chat ""`,
			want:  []string{"chat", ""},
		},
		{
			name:    "unterminated quote",
			input:   `ticket "oops`,
			wantErr: true,
		},
		{
			name:    "unterminated escape",
			input:   `ticket hi\`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := splitShellArgs(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShellModel_CommandsWithoutPlanShowHint(t *testing.T) {
	m := testShell(testApp(t))

	for _, line := range []string{"show", "materials", "set Cement 1 qty=2", "payments", "export out.xlsx"} {
		out, _ := m.executeCommand(line)
		assert.Contains(t, out, "no active plan", line)
		assert.Contains(t, out, "Start one with 'new'", line)
	}
}

func TestShellModel_ShowAndMaterials(t *testing.T) {
	m := testShell(testAppWithPlan(t))

	out, _ := m.executeCommand("show")
	assert.Contains(t, out, "₹2,54,000")
	assert.Contains(t, out, "Materials")

	out, _ = m.executeCommand("materials")
	assert.Contains(t, out, "Cement")
	assert.Contains(t, out, "Steel")

	out, _ = m.executeCommand("materials cement")
	assert.Contains(t, out, "Ground Floor")

	out, _ = m.executeCommand("materials Gravel")
	assert.Contains(t, out, "unknown material")
}

func TestShellModel_SetRecordsFloorEdit(t *testing.T) {
	app := testAppWithPlan(t)
	m := testShell(app)

	out, _ := m.executeCommand("set cement 1 qty=23")
	assert.Contains(t, out, "₹2,55,200")
	assert.Contains(t, out, "[#1]")

	cur := app.Workspace.Current()
	assert.Equal(t, 23.0, cur.MaterialQuantities[cur.EntryIndex("Cement", 1)].Quantity)
	assert.InDelta(t, 255200, cur.TotalCost, 0.001)
	assert.True(t, app.Workspace.CanUndo())
}

func TestShellModel_SetPreviewDoesNotRecord(t *testing.T) {
	app := testAppWithPlan(t)
	m := testShell(app)

	out, _ := m.executeCommand("set Cement 1 price=500 --preview")
	assert.Contains(t, out, "preview")
	assert.False(t, app.Workspace.CanUndo())
	assert.InDelta(t, 254000, app.Workspace.Current().TotalCost, 0.001)
}

func TestShellModel_SetRejectsBadInput(t *testing.T) {
	m := testShell(testAppWithPlan(t))

	out, _ := m.executeCommand("set Cement 1")
	assert.Contains(t, out, "Usage: set")

	out, _ = m.executeCommand("set Cement first qty=2")
	assert.Contains(t, out, "not a number")

	out, _ = m.executeCommand("set Cement 7 qty=2")
	assert.Contains(t, out, "unknown material entry")

	out, _ = m.executeCommand("set Cement 1 qty=-4")
	assert.Contains(t, out, "INVALID_QUANTITY")

	out, _ = m.executeCommand("set Cement 1 qty=2 --bogus")
	assert.Contains(t, out, "unknown flag: --bogus")
}

func TestShellModel_NonFiniteNumbersRejected(t *testing.T) {
	app := testAppWithPlan(t)
	m := testShell(app)

	for _, line := range []string{
		"bulk increase price NaN Cement",
		"bulk decrease quantity Inf% Cement",
		"set Cement 1 price=NaN",
		"total Cement +Inf",
	} {
		out, _ := m.executeCommand(line)
		assert.Contains(t, out, "is not a number", line)
	}
	assert.False(t, app.Workspace.CanUndo())
	assert.InDelta(t, 254000, app.Workspace.Current().TotalCost, 1e-6)
}

func TestShellModel_BulkIndependentRounding(t *testing.T) {
	app := testAppWithPlan(t)
	m := testShell(app)

	out, _ := m.executeCommand("bulk increase quantity 5 Cement --independent")
	assert.Contains(t, out, "✔")

	cur := app.Workspace.Current()
	// 10.5, 21, 31.5 rounded one by one.
	assert.Equal(t, []float64{11, 21, 32}, []float64{
		quantityAt(cur, "Cement", 0), quantityAt(cur, "Cement", 1), quantityAt(cur, "Cement", 2),
	})
}

func TestShellModel_TotalRedistributesAcrossFloors(t *testing.T) {
	app := testAppWithPlan(t)
	m := testShell(app)

	out, _ := m.executeCommand("total Cement 66")
	assert.Contains(t, out, "✔")

	cur := app.Workspace.Current()
	var sum float64
	for _, i := range cur.EntryIndexes("Cement") {
		sum += cur.MaterialQuantities[i].Quantity
	}
	assert.Equal(t, 66.0, sum)
	assert.InDelta(t, 256400, cur.TotalCost, 0.001)
}

func TestShellModel_BulkPriceIncrease(t *testing.T) {
	app := testAppWithPlan(t)
	m := testShell(app)

	out, _ := m.executeCommand("bulk increase price 10% Cement, Steel")
	assert.Contains(t, out, "bulk increase price")
	assert.InDelta(t, 263400, app.Workspace.Current().TotalCost, 0.01)

	out, _ = m.executeCommand("bulk sideways price 10 Cement")
	assert.Contains(t, out, "Error")
}

func TestShellModel_UndoRedo(t *testing.T) {
	app := testAppWithPlan(t)
	m := testShell(app)

	out, _ := m.executeCommand("undo")
	assert.Contains(t, out, "Nothing to undo.")

	m.executeCommand("set Cement 1 qty=23")

	out, _ = m.executeCommand("undo")
	assert.Contains(t, out, "#0 initial plan")
	assert.Contains(t, out, "₹2,54,000")

	out, _ = m.executeCommand("redo")
	assert.Contains(t, out, "floor edit Cement@1")

	out, _ = m.executeCommand("redo")
	assert.Contains(t, out, "Nothing to redo.")

	out, _ = m.executeCommand("history")
	assert.Contains(t, out, "initial plan")
	assert.Contains(t, out, "▶")
}

func TestShellModel_CollaboratorCommands(t *testing.T) {
	app := testAppWithPlan(t)
	m := testShell(app)

	out, _ := m.executeCommand("chat can we reduce steel?")
	assert.Contains(t, out, "can we reduce steel?")
	assert.Len(t, app.Workspace.Current().ChatHistory, 2)

	out, _ = m.executeCommand("pay")
	assert.Contains(t, out, "booking payment")
	cur := app.Workspace.Current()
	assert.Equal(t, domain.MilestoneCompleted, cur.PaymentSchedule[0].Status)
	assert.Equal(t, domain.MilestoneDue, cur.PaymentSchedule[1].Status)

	m.executeCommand("paid Foundation")
	cur = app.Workspace.Current()
	assert.Equal(t, domain.MilestoneCompleted, cur.PaymentSchedule[1].Status)
	assert.Equal(t, domain.MilestoneDue, cur.PaymentSchedule[2].Status)

	out, _ = m.executeCommand("paid Roofing")
	assert.Contains(t, out, "unknown payment milestone")

	out, _ = m.executeCommand("note 2025-03-10 slab looks good")
	assert.Contains(t, out, "Note saved")
	assert.Equal(t, "slab looks good", app.Workspace.Current().WeeklyUpdates[0].UserNotes)

	out, _ = m.executeCommand("note 2099-01-01 nothing")
	assert.Contains(t, out, "unknown weekly update")
}

func TestShellModel_TicketUsesKeywordsWithoutClassifier(t *testing.T) {
	app := testAppWithPlan(t)
	m := testShell(app)

	out, _ := m.executeCommand("ticket Work is delayed by two weeks")
	assert.Contains(t, out, "TKT-TEST00001")

	tickets := app.Workspace.Current().SupportTickets
	require.Len(t, tickets, 1)
	assert.Equal(t, domain.TicketDelay, tickets[0].Category)
	assert.Equal(t, domain.TicketOpen, tickets[0].Status)
}

func TestShellModel_TicketUsesClassifier(t *testing.T) {
	app := testAppWithPlan(t)
	app.Classifier = &fakeClassifier{analysis: &intelligence.TicketAnalysis{
		Subject: "Wall crack", Category: domain.TicketWorkQuality, Source: "llm",
	}}
	d := teatest.New(t, testShell(app))

	d.Submit("ticket there is a crack near the window")

	assert.Contains(t, d.Output(), "Wall crack")
	tickets := app.Workspace.Current().SupportTickets
	require.Len(t, tickets, 1)
	assert.Equal(t, domain.TicketWorkQuality, tickets[0].Category)
}

func TestShellModel_TicketFallsBackWhenClassifierFails(t *testing.T) {
	app := testAppWithPlan(t)
	app.Classifier = &fakeClassifier{err: errors.New("model down")}
	d := teatest.New(t, testShell(app))

	d.Submit("ticket cement delivery is short")

	tickets := app.Workspace.Current().SupportTickets
	require.Len(t, tickets, 1)
	assert.Equal(t, domain.TicketMaterial, tickets[0].Category)
}

func TestShellModel_SuggestLocalWithoutAdvisor(t *testing.T) {
	m := testShell(testAppWithPlan(t))

	out, _ := m.executeCommand("suggest cost")
	assert.Contains(t, out, "Cost Savings")
	assert.Contains(t, out, "[Local]")

	out, _ = m.executeCommand("suggest everything")
	assert.Contains(t, out, "Usage: suggest")
}

func TestShellModel_SuggestPostsToChat(t *testing.T) {
	app := testAppWithPlan(t)
	adv := &fakeAdvisor{}
	app.Advisor = adv
	d := teatest.New(t, testShell(app))

	d.Submit("suggest all --post")

	assert.Equal(t, 3, adv.calls)
	out := d.Output()
	assert.Contains(t, out, "Material Alternatives")
	assert.Contains(t, out, "Posted 3 suggestion(s)")

	chat := app.Workspace.Current().ChatHistory
	require.Len(t, chat, 3)
	assert.Equal(t, domain.SenderAdvisor, chat[0].Sender)
	assert.Empty(t, d.Model.(shellModel).busy)
}

func TestShellModel_SaveLoadExport(t *testing.T) {
	dir := t.TempDir()
	app := testAppWithPlan(t)
	m := testShell(app)

	m.executeCommand("set Cement 1 qty=23")
	yamlPath := filepath.Join(dir, "plan.yaml")
	out, _ := m.executeCommand("save " + yamlPath)
	assert.Contains(t, out, "Saved")

	xlsx := filepath.Join(dir, "plan.xlsx")
	out, _ = m.executeCommand("export " + xlsx)
	assert.Contains(t, out, "Exported")
	_, err := os.Stat(xlsx)
	require.NoError(t, err)

	fresh := testApp(t)
	m2 := testShell(fresh)
	out, _ = m2.executeCommand("load " + yamlPath)
	assert.Contains(t, out, "Loaded")
	require.True(t, fresh.Workspace.Active())
	assert.InDelta(t, 255200, fresh.Workspace.Current().TotalCost, 0.001)
	assert.False(t, fresh.Workspace.CanUndo())

	out, _ = m2.executeCommand("load " + filepath.Join(dir, "missing.json"))
	assert.Contains(t, out, "reading plan")
}

func TestShellModel_LoadOverActivePlanAsksFirst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, savePlanFile(path, testutil.NewTestPlan(testutil.WithCosts(300000, 150))))

	app := testAppWithPlan(t)
	d := teatest.New(t, testShell(app))

	d.Submit("load " + path)
	assert.Contains(t, d.View(), "confirm (y/n)")

	d.Submit("n")
	assert.InDelta(t, 254000, app.Workspace.Current().TotalCost, 0.001)

	d.Submit("load " + path)
	d.Submit("y")
	assert.Contains(t, d.Output(), "Loaded")
	assert.NotContains(t, d.View(), "confirm")
}

func TestShellModel_ResetConfirmation(t *testing.T) {
	app := testAppWithPlan(t)
	d := teatest.New(t, testShell(app))

	d.Submit("reset")
	assert.Contains(t, d.Output(), "Discard the plan")
	d.Submit("no")
	assert.True(t, app.Workspace.Active())

	d.Submit("reset")
	d.Submit("y")
	assert.False(t, app.Workspace.Active())
	assert.Contains(t, d.LastOutput(), "Plan discarded.")

	shell := testShell(app)
	out, _ := shell.executeCommand("reset")
	assert.Contains(t, out, "Nothing to reset.")
}

func TestShellModel_NewRequiresGenerator(t *testing.T) {
	m := testShell(testApp(t))

	out, _ := m.executeCommand("new")
	assert.Contains(t, out, "plan generation is not configured")
	assert.Equal(t, modePrompt, m.mode)
}

func TestShellModel_NewGeneratesPlan(t *testing.T) {
	app := testApp(t)
	gen := &fakeGenerator{plan: testutil.NewTestPlan()}
	app.Generator = gen
	m := testShell(app)

	m.executeCommand("new")
	require.Equal(t, modeWizard, m.mode)
	require.NotNil(t, m.wizardDone)

	// Completing the form with its defaults starts generation.
	cmd := m.wizardDone(&m)
	require.NotNil(t, cmd)
	assert.Equal(t, "generating plan", m.busy)

	msg, ok := cmd().(planGeneratedMsg)
	require.True(t, ok)
	out := m.handlePlanGenerated(msg)

	assert.Contains(t, out, "₹2,54,000")
	assert.Empty(t, m.busy)
	assert.True(t, app.Workspace.Active())
	assert.Equal(t, "Bengaluru", gen.intake.Location)
	assert.Equal(t, "Bengaluru", app.Workspace.Current().Intake.Location)
}

func TestShellModel_GenerationFailureKeepsShell(t *testing.T) {
	app := testApp(t)
	m := testShell(app)

	out := m.handlePlanGenerated(planGeneratedMsg{err: errors.New("model unavailable")})
	assert.Contains(t, out, "model unavailable")
	assert.False(t, app.Workspace.Active())
}

func TestShellModel_WizardEscCancels(t *testing.T) {
	app := testApp(t)
	app.Generator = &fakeGenerator{plan: testutil.NewTestPlan()}
	d := teatest.New(t, testShell(app), teatest.WithSize(100, 40))

	d.Submit("new")
	assert.Equal(t, modeWizard, d.Model.(shellModel).mode)

	d.PressEsc()
	assert.Equal(t, modePrompt, d.Model.(shellModel).mode)
	assert.Contains(t, d.LastOutput(), "Cancelled.")
	assert.False(t, app.Workspace.Active())
}

func TestShellModel_UnknownCommandSuggests(t *testing.T) {
	m := testShell(testApp(t))

	out, _ := m.executeCommand("sho")
	assert.Contains(t, out, `unknown command "sho"`)
	assert.Contains(t, out, "Did you mean: show")

	out, _ = m.executeCommand("zzz")
	assert.Contains(t, out, "Type 'help'")
}

func TestShellModel_ExitQuits(t *testing.T) {
	d := teatest.New(t, testShell(testApp(t)))
	d.Submit("exit")

	assert.True(t, d.Quitting)
	assert.Contains(t, d.View(), "Goodbye.")
}

func TestShellModel_WelcomeAndPrompt(t *testing.T) {
	d := teatest.New(t, testShell(testApp(t)))
	d.DrainInit()
	assert.Contains(t, d.Output(), "No plan loaded")
	assert.Contains(t, d.View(), "buildplan")
	assert.NotContains(t, d.View(), "₹")

	d2 := teatest.New(t, testShell(testAppWithPlan(t)))
	d2.DrainInit()
	assert.Contains(t, d2.Output(), "can be undone")
	assert.Contains(t, d2.View(), "₹2,54,000")
}

func TestShellModel_HistoryRecall(t *testing.T) {
	d := teatest.New(t, testShell(testAppWithPlan(t)))

	d.Submit("show")
	d.Submit("materials")

	d.PressUp()
	assert.Equal(t, "materials", d.Model.(shellModel).input.Value())
	d.PressUp()
	assert.Equal(t, "show", d.Model.(shellModel).input.Value())
	d.PressDown()
	assert.Equal(t, "materials", d.Model.(shellModel).input.Value())
}

func TestShellModel_Suggestions(t *testing.T) {
	m := testShell(testAppWithPlan(t))

	m.input.SetValue("mat")
	m.updateSuggestions()
	assert.Equal(t, []string{"materials"}, m.input.AvailableSuggestions())

	m.input.SetValue("set Ce")
	m.updateSuggestions()
	assert.Equal(t, []string{"set Cement"}, m.input.AvailableSuggestions())

	m.input.SetValue("adjust Steel ")
	m.updateSuggestions()
	assert.Equal(t, []string{"adjust Steel 0", "adjust Steel 1", "adjust Steel 2"}, m.input.AvailableSuggestions())

	m.input.SetValue("suggest d")
	m.updateSuggestions()
	assert.Equal(t, []string{"suggest design"}, m.input.AvailableSuggestions())
}
