package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// statusError is a non-2xx answer from a provider.
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.Code, e.Body)
}

// transient reports whether a failed attempt is worth repeating: rate
// limits, overloaded or failing upstreams, and dropped connections.
func transient(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		switch se.Code {
		case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}
	return isConnectionError(err)
}

// withRetry runs op up to 1+MaxRetries times with exponential backoff.
// Non-transient failures stop immediately. The returned error is mapped
// onto the package sentinels.
func withRetry[T any](ctx context.Context, cfg LLMConfig, op func(ctx context.Context) (T, error)) (T, error) {
	b := backoff.NewExponentialBackOff()
	if cfg.RetryInitialMs > 0 {
		b.InitialInterval = time.Duration(cfg.RetryInitialMs) * time.Millisecond
	}
	b.MaxInterval = 8 * b.InitialInterval

	var lastErr error
	res, err := backoff.Retry(ctx, func() (T, error) {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err
		if ctx.Err() != nil || !transient(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(1+max(cfg.MaxRetries, 0))),
	)
	if err == nil {
		return res, nil
	}
	return res, classify(ctx, lastErr)
}

func classify(ctx context.Context, err error) error {
	var se *statusError
	switch {
	case ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case isConnectionError(err):
		return ErrUnavailable
	case errors.As(err, &se) && se.Code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", ErrRateLimited, ErrRetryExhausted)
	case errors.As(err, &se) && se.Code == http.StatusServiceUnavailable:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrRateLimited):
		return "RATE_LIMITED"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	default:
		return "UNKNOWN"
	}
}
