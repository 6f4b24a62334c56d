package intelligence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alexanderramin/buildplan/internal/domain"
	"github.com/alexanderramin/buildplan/internal/llm"
	"golang.org/x/sync/errgroup"
)

// SuggestionKind names one of the advisor's three perspectives.
type SuggestionKind string

const (
	SuggestCostSavings          SuggestionKind = "cost"
	SuggestMaterialAlternatives SuggestionKind = "materials"
	SuggestDesignImprovements   SuggestionKind = "design"
)

// SuggestionKinds lists every kind in display order.
var SuggestionKinds = []SuggestionKind{SuggestCostSavings, SuggestMaterialAlternatives, SuggestDesignImprovements}

// Suggestion is advisor free text for one kind.
type Suggestion struct {
	Kind   SuggestionKind `json:"kind"`
	Text   string         `json:"text"`
	Source string         `json:"source"` // "llm" or "deterministic"
}

// Advisor produces plan suggestions. It always answers: when the model is
// disabled or fails, deterministic text derived from the plan is returned.
type Advisor interface {
	CostSavings(ctx context.Context, plan *domain.ProjectPlan) (*Suggestion, error)
	MaterialAlternatives(ctx context.Context, plan *domain.ProjectPlan) (*Suggestion, error)
	DesignImprovements(ctx context.Context, plan *domain.ProjectPlan) (*Suggestion, error)
	Suggest(ctx context.Context, kind SuggestionKind, plan *domain.ProjectPlan) (*Suggestion, error)

	// All fetches the three kinds concurrently, in SuggestionKinds order.
	All(ctx context.Context, plan *domain.ProjectPlan) ([]Suggestion, error)
}

var errNilPlan = errors.New("plan is nil")

type advisor struct {
	client llm.LLMClient
	logger *slog.Logger
}

// NewAdvisor creates an Advisor backed by an LLM client.
func NewAdvisor(client llm.LLMClient, logger *slog.Logger) Advisor {
	if logger == nil {
		logger = slog.Default()
	}
	return &advisor{client: client, logger: logger}
}

func (a *advisor) CostSavings(ctx context.Context, plan *domain.ProjectPlan) (*Suggestion, error) {
	return a.Suggest(ctx, SuggestCostSavings, plan)
}

func (a *advisor) MaterialAlternatives(ctx context.Context, plan *domain.ProjectPlan) (*Suggestion, error) {
	return a.Suggest(ctx, SuggestMaterialAlternatives, plan)
}

func (a *advisor) DesignImprovements(ctx context.Context, plan *domain.ProjectPlan) (*Suggestion, error) {
	return a.Suggest(ctx, SuggestDesignImprovements, plan)
}

func (a *advisor) Suggest(ctx context.Context, kind SuggestionKind, plan *domain.ProjectPlan) (*Suggestion, error) {
	if plan == nil {
		return nil, errNilPlan
	}
	if !validKind(kind) {
		return nil, fmt.Errorf("unknown suggestion kind %q", kind)
	}

	resp, err := a.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskSuggest,
		SystemPrompt: advisorSystemPrompt,
		UserPrompt:   buildSuggestionPrompt(kind, plan),
	})
	if err == nil && strings.TrimSpace(resp.Text) != "" {
		return &Suggestion{Kind: kind, Text: strings.TrimSpace(resp.Text), Source: "llm"}, nil
	}
	if err != nil && !errors.Is(err, llm.ErrDisabled) {
		a.logger.Warn("suggestion fell back", "kind", kind, "err", err)
	}
	return DeterministicSuggestion(kind, plan), nil
}

func (a *advisor) All(ctx context.Context, plan *domain.ProjectPlan) ([]Suggestion, error) {
	if plan == nil {
		return nil, errNilPlan
	}
	out := make([]Suggestion, len(SuggestionKinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range SuggestionKinds {
		g.Go(func() error {
			s, err := a.Suggest(gctx, kind, plan)
			if err != nil {
				return err
			}
			out[i] = *s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func validKind(kind SuggestionKind) bool {
	for _, k := range SuggestionKinds {
		if k == kind {
			return true
		}
	}
	return false
}
