package intelligence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/alexanderramin/buildplan/internal/domain"
	"github.com/alexanderramin/buildplan/internal/estimate"
	"github.com/alexanderramin/buildplan/internal/llm"
	"github.com/google/uuid"
)

// PlanGenerator turns intake answers into a complete plan.
type PlanGenerator interface {
	// Generate fails with ErrMalformedPlan or ErrServiceUnavailable.
	Generate(ctx context.Context, intake domain.Intake) (*domain.ProjectPlan, error)
}

type planGenerator struct {
	client llm.LLMClient
	logger *slog.Logger
	newID  func() string
}

// NewPlanGenerator creates a PlanGenerator backed by an LLM client.
func NewPlanGenerator(client llm.LLMClient, logger *slog.Logger) PlanGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &planGenerator{client: client, logger: logger, newID: uuid.NewString}
}

func (g *planGenerator) Generate(ctx context.Context, intake domain.Intake) (*domain.ProjectPlan, error) {
	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskPlanGenerate,
		SystemPrompt: planSystemPrompt,
		UserPrompt:   buildPlanPrompt(intake),
		JSON:         true,
	})
	if err != nil {
		return nil, generationError(err)
	}

	plan, err := llm.ExtractJSON[domain.ProjectPlan](resp.Text, nil)
	if err != nil {
		return nil, generationError(err)
	}
	// The provider never sees the intake echoed back, so attach it before
	// validating the nested intake tags.
	plan.Intake = intake
	if err := validatePlan(plan); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPlan, err)
	}

	g.normalize(&plan)
	for _, is := range estimate.LinkBudgetItems(&plan) {
		g.logger.Warn("generated plan linkage", "issue", is.String())
	}
	g.logger.Debug("plan generated", "id", plan.ID, "total", plan.TotalCost,
		"materials", len(plan.MaterialQuantities), "model", resp.Model)
	return &plan, nil
}

func validatePlan(p domain.ProjectPlan) error {
	if err := llm.ValidateTags(p); err != nil {
		return err
	}
	if p.SectionIndex(domain.MaterialsSection) < 0 && len(p.MaterialQuantities) > 0 {
		return errors.New("material quantities without a Materials budget section")
	}
	seen := make(map[string]bool, len(p.MaterialQuantities))
	for _, m := range p.MaterialQuantities {
		key := fmt.Sprintf("%s@%d", m.Material, m.Floor)
		if seen[key] {
			return fmt.Errorf("duplicate material entry %s", key)
		}
		seen[key] = true
	}
	return nil
}

// normalize fills the fields the engine relies on: an id, whole-number
// quantities for discrete units, the originalQuantity baseline, and the
// initial payment status.
func (g *planGenerator) normalize(p *domain.ProjectPlan) {
	if p.ID == "" {
		p.ID = g.newID()
	}
	for i := range p.MaterialQuantities {
		m := &p.MaterialQuantities[i]
		if m.Discrete() {
			m.Quantity = math.Round(m.Quantity)
		}
		m.OriginalQuantity = domain.Float64Ptr(m.Quantity)
	}
	if p.PaymentStatus == "" {
		p.PaymentStatus = domain.PaymentPendingBooking
	}
}
