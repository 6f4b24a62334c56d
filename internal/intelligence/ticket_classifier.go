package intelligence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alexanderramin/buildplan/internal/domain"
	"github.com/alexanderramin/buildplan/internal/llm"
)

const maxSubjectWords = 10

// TicketAnalysis is the suggested subject and category for a site issue.
type TicketAnalysis struct {
	Subject  string                `json:"subject" validate:"required"`
	Category domain.TicketCategory `json:"category" validate:"oneof=Material 'Work Quality' Delay Safety Other"`
	Source   string                `json:"source"`
}

// TicketClassifier suggests a subject and category for a free-text
// description of a site problem.
type TicketClassifier interface {
	Classify(ctx context.Context, description string) (*TicketAnalysis, error)
}

type ticketClassifier struct {
	client llm.LLMClient
	logger *slog.Logger
}

// NewTicketClassifier creates a TicketClassifier backed by an LLM client.
func NewTicketClassifier(client llm.LLMClient, logger *slog.Logger) TicketClassifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &ticketClassifier{client: client, logger: logger}
}

const ticketSystemPrompt = `You triage issues reported at a residential construction site.
Given the user's description, output ONLY a JSON object:
{"subject": "concise subject, at most 10 words", "category": "Material|Work Quality|Delay|Safety|Other"}`

func (c *ticketClassifier) Classify(ctx context.Context, description string) (*TicketAnalysis, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, errors.New("description is empty")
	}

	resp, err := c.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskTicketClassify,
		SystemPrompt: ticketSystemPrompt,
		UserPrompt:   fmt.Sprintf("Issue Description: %q", description),
		JSON:         true,
	})
	if err == nil {
		var analysis TicketAnalysis
		analysis, err = llm.ExtractJSON(resp.Text, llm.ValidateTags[TicketAnalysis])
		if err == nil {
			analysis.Subject = truncateWords(analysis.Subject, maxSubjectWords)
			analysis.Source = "llm"
			return &analysis, nil
		}
	}
	if !errors.Is(err, llm.ErrDisabled) {
		c.logger.Warn("ticket classification fell back", "err", err)
	}
	return ClassifyTicketByKeywords(description), nil
}

// ticketKeywords is checked in order; the first category with a hit wins.
var ticketKeywords = []struct {
	category domain.TicketCategory
	words    []string
}{
	{domain.TicketSafety, []string{"unsafe", "safety", "injur", "accident", "helmet", "scaffold", "hazard", "electrocut", "fall"}},
	{domain.TicketDelay, []string{"delay", "late", "behind schedule", "not started", "slow", "postpone", "waiting"}},
	{domain.TicketMaterial, []string{"cement", "steel", "sand", "brick", "aggregate", "material", "tile", "delivered", "delivery", "shortage"}},
	{domain.TicketWorkQuality, []string{"crack", "leak", "uneven", "seepage", "damp", "poor", "quality", "finish", "plaster", "alignment"}},
}

// ClassifyTicketByKeywords is the deterministic classifier: keyword
// category plus the description's first words as subject.
func ClassifyTicketByKeywords(description string) *TicketAnalysis {
	lower := strings.ToLower(description)
	category := domain.TicketOther
outer:
	for _, k := range ticketKeywords {
		for _, w := range k.words {
			if strings.Contains(lower, w) {
				category = k.category
				break outer
			}
		}
	}
	subject := strings.TrimRight(truncateWords(description, maxSubjectWords), ".!?,;:")
	return &TicketAnalysis{Subject: subject, Category: category, Source: "deterministic"}
}

func truncateWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}
