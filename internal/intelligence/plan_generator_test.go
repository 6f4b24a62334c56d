package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexanderramin/buildplan/internal/domain"
	"github.com/alexanderramin/buildplan/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const generatedPlan = "```json\n" + `{
  "totalCost": 250000,
  "costPerSqFt": 125,
  "budgetBreakdown": [
    {"sectionName": "Materials", "totalCost": 100000, "items": [
      {"item": "Cement (OPC 53 grade)", "cost": 24000},
      {"item": "TMT Steel Bars", "cost": 76000, "material": "Steel"}
    ]},
    {"sectionName": "Labour", "totalCost": 150000, "items": [{"item": "Masons", "cost": 150000}]}
  ],
  "materialQuantities": [
    {"material": "Cement", "quantity": 10.4, "unit": "bags", "unitPrice": 400, "floor": 0},
    {"material": "Cement", "quantity": 49.6, "unit": "bags", "unitPrice": 400, "floor": 1},
    {"material": "Steel", "quantity": 1085.7, "unit": "kg", "unitPrice": 70, "floor": 0},
  ],
  "paymentSchedule": [{"milestone": "Booking Amount", "percentage": 10, "amount": 25000, "status": "Due"}]
}` + "\n```"

func TestPlanGenerator_Generate_Normalizes(t *testing.T) {
	client := &fakeClient{responses: map[llm.TaskType]string{llm.TaskPlanGenerate: generatedPlan}}
	gen := NewPlanGenerator(client, nil)

	intake := domain.DefaultIntake()
	plan, err := gen.Generate(context.Background(), intake)
	require.NoError(t, err)

	assert.NotEmpty(t, plan.ID)
	assert.Equal(t, intake, plan.Intake)
	assert.Equal(t, domain.PaymentPendingBooking, plan.PaymentStatus)

	require.Len(t, plan.MaterialQuantities, 3)
	assert.Equal(t, 10.0, plan.MaterialQuantities[0].Quantity)
	assert.Equal(t, 50.0, plan.MaterialQuantities[1].Quantity)
	assert.Equal(t, 1085.7, plan.MaterialQuantities[2].Quantity, "continuous units are not rounded")
	for _, m := range plan.MaterialQuantities {
		require.NotNil(t, m.OriginalQuantity)
		assert.Equal(t, m.Quantity, *m.OriginalQuantity)
	}

	items := plan.BudgetBreakdown[0].Items
	assert.Equal(t, "Cement", items[0].Material)
	assert.Equal(t, "Steel", items[1].Material)

	calls := client.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, llm.TaskPlanGenerate, calls[0].Task)
	assert.True(t, calls[0].JSON)
	assert.Contains(t, calls[0].UserPrompt, "Bengaluru")
}

func TestPlanGenerator_Generate_KeepsProvidedID(t *testing.T) {
	raw := `{"id":"plan-7","totalCost":1,"budgetBreakdown":[{"sectionName":"Labour","totalCost":1,"items":[]}]}`
	gen := NewPlanGenerator(&fakeClient{responses: map[llm.TaskType]string{llm.TaskPlanGenerate: raw}}, nil)

	plan, err := gen.Generate(context.Background(), domain.DefaultIntake())
	require.NoError(t, err)
	assert.Equal(t, "plan-7", plan.ID)
}

func TestPlanGenerator_Generate_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "Sorry, I cannot help with that."},
		{"missing total", `{"budgetBreakdown":[{"sectionName":"Labour","totalCost":1,"items":[]}]}`},
		{"empty breakdown", `{"totalCost":100,"budgetBreakdown":[]}`},
		{"negative quantity", `{"totalCost":100,"budgetBreakdown":[{"sectionName":"Materials","totalCost":1,"items":[]}],
			"materialQuantities":[{"material":"Sand","quantity":-1,"unit":"cu.ft","unitPrice":50,"floor":0}]}`},
		{"duplicate entry", `{"totalCost":100,"budgetBreakdown":[{"sectionName":"Materials","totalCost":1,"items":[]}],
			"materialQuantities":[{"material":"Sand","quantity":1,"unit":"cu.ft","unitPrice":50,"floor":0},
			{"material":"Sand","quantity":2,"unit":"cu.ft","unitPrice":50,"floor":0}]}`},
		{"materials without section", `{"totalCost":100,"budgetBreakdown":[{"sectionName":"Labour","totalCost":1,"items":[]}],
			"materialQuantities":[{"material":"Sand","quantity":1,"unit":"cu.ft","unitPrice":50,"floor":0}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewPlanGenerator(&fakeClient{responses: map[llm.TaskType]string{llm.TaskPlanGenerate: tt.raw}}, nil)
			_, err := gen.Generate(context.Background(), domain.DefaultIntake())
			assert.ErrorIs(t, err, ErrMalformedPlan)
			assert.NotErrorIs(t, err, ErrServiceUnavailable)
		})
	}
}

func TestPlanGenerator_Generate_InvalidIntakeIsMalformed(t *testing.T) {
	raw := `{"totalCost":1,"budgetBreakdown":[{"sectionName":"Labour","totalCost":1,"items":[]}]}`
	gen := NewPlanGenerator(&fakeClient{responses: map[llm.TaskType]string{llm.TaskPlanGenerate: raw}}, nil)

	intake := domain.DefaultIntake()
	intake.Location = ""
	_, err := gen.Generate(context.Background(), intake)
	assert.ErrorIs(t, err, ErrMalformedPlan)
}

func TestPlanGenerator_Generate_Unavailable(t *testing.T) {
	for _, cause := range []error{llm.ErrUnavailable, llm.ErrTimeout, llm.ErrRetryExhausted, llm.ErrDisabled} {
		t.Run(cause.Error(), func(t *testing.T) {
			gen := NewPlanGenerator(&fakeClient{err: cause}, nil)
			_, err := gen.Generate(context.Background(), domain.DefaultIntake())
			assert.ErrorIs(t, err, ErrServiceUnavailable)
			assert.ErrorIs(t, err, cause)
			assert.NotErrorIs(t, err, ErrMalformedPlan)
		})
	}
}

func TestPlanGenerator_Generate_WithHTTPTestServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "json", body["format"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"model": "test-model", "response": generatedPlan})
	}))
	defer srv.Close()

	cfg := llm.DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = srv.URL
	cfg.MaxRetries = 0

	gen := NewPlanGenerator(llm.NewClient(cfg, nil), nil)
	plan, err := gen.Generate(context.Background(), domain.DefaultIntake())
	require.NoError(t, err)
	assert.Equal(t, 250000.0, plan.TotalCost)
}

func TestPlanGenerator_Generate_ServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, "model loading")
	}))
	defer srv.Close()

	cfg := llm.DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = srv.URL
	cfg.MaxRetries = 1
	cfg.RetryInitialMs = 1

	gen := NewPlanGenerator(llm.NewClient(cfg, nil), nil)
	_, err := gen.Generate(context.Background(), domain.DefaultIntake())
	assert.ErrorIs(t, err, ErrServiceUnavailable)
	assert.ErrorIs(t, err, llm.ErrUnavailable)
}
