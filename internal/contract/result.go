package contract

import (
	"fmt"
	"time"

	"github.com/alexanderramin/buildplan/internal/domain"
)

type IssueCode string

const (
	IssueInvalidQuantity     IssueCode = "INVALID_QUANTITY"
	IssueInvalidPrice        IssueCode = "INVALID_PRICE"
	IssueZeroBaseline        IssueCode = "ZERO_BASELINE"
	IssueAmbiguousBudgetItem IssueCode = "AMBIGUOUS_BUDGET_ITEM"
	IssueUnmatchedBudgetItem IssueCode = "UNMATCHED_BUDGET_ITEM"
	IssueRoundingDrift       IssueCode = "ROUNDING_DRIFT"
	IssueUnknownMaterial     IssueCode = "UNKNOWN_MATERIAL"
)

// Issue is a non-fatal condition met while applying an edit. The edit
// still completes; the affected field or material is left unchanged.
type Issue struct {
	Code     IssueCode `json:"code"`
	Material string    `json:"material,omitempty"`
	Floor    *int      `json:"floor,omitempty"`
	Message  string    `json:"message"`
}

func (i Issue) String() string {
	if i.Floor != nil {
		return fmt.Sprintf("%s %s@%d: %s", i.Code, i.Material, *i.Floor, i.Message)
	}
	if i.Material != "" {
		return fmt.Sprintf("%s %s: %s", i.Code, i.Material, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.Code, i.Message)
}

// EditResult describes a committed or previewed edit. Plan is the
// resulting snapshot.
type EditResult struct {
	Plan        *domain.ProjectPlan `json:"-"`
	Kind        EditKind            `json:"kind"`
	Label       string              `json:"label"`
	Index       int                 `json:"index"`
	Recorded    bool                `json:"recorded"`
	TotalCost   float64             `json:"totalCost"`
	CostPerSqFt float64             `json:"costPerSqFt"`
	Issues      []Issue             `json:"issues,omitempty"`
}

// HasIssue reports whether any issue carries code.
func (r *EditResult) HasIssue(code IssueCode) bool {
	for _, i := range r.Issues {
		if i.Code == code {
			return true
		}
	}
	return false
}

// MaterialSummary aggregates one material across floors.
type MaterialSummary struct {
	Material         string  `json:"material"`
	Unit             string  `json:"unit"`
	Discrete         bool    `json:"discrete"`
	Floors           int     `json:"floors"`
	TotalQuantity    float64 `json:"totalQuantity"`
	BaselineQuantity float64 `json:"baselineQuantity"`
	Delta            float64 `json:"delta"`
	Cost             float64 `json:"cost"`
	BudgetItem       string  `json:"budgetItem,omitempty"`
}

// HistoryEntry is one snapshot in the undo history.
type HistoryEntry struct {
	Index     int       `json:"index"`
	Label     string    `json:"label"`
	At        time.Time `json:"at"`
	TotalCost float64   `json:"totalCost"`
	Current   bool      `json:"current"`
}
