package intelligence

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/buildplan/internal/llm"
)

var (
	// ErrMalformedPlan means the provider answered but the answer is not a
	// usable plan.
	ErrMalformedPlan = errors.New("malformed plan")
	// ErrServiceUnavailable means no answer could be obtained at all.
	ErrServiceUnavailable = errors.New("plan service unavailable")
)

// generationError sorts an llm failure into one of the two generation
// failures callers are allowed to see.
func generationError(err error) error {
	if errors.Is(err, llm.ErrInvalidOutput) {
		return fmt.Errorf("%w: %w", ErrMalformedPlan, err)
	}
	return fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
}
