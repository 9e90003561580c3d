package llm

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotConfigured is returned when no provider credentials were found.
var ErrNotConfigured = errors.New("LLM provider is not configured")

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the provider answered with something that
// carries no text block.
type ErrInvalidResponse struct {
	Err error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down, unreachable or
// rejected the request.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// Retryable reports whether err is worth another attempt.
func Retryable(err error) bool {
	if errors.Is(err, ErrNotConfigured) {
		return false
	}
	var rl *ErrRateLimit
	var unavail *ErrProviderUnavailable
	var invalid *ErrInvalidResponse
	return errors.As(err, &rl) || errors.As(err, &unavail) || errors.As(err, &invalid)
}

// ErrMaxTokensExceeded indicates generation stopped at the token budget
// before any text was produced.
type ErrMaxTokensExceeded struct {
	Model string
}

func (e *ErrMaxTokensExceeded) Error() string {
	return fmt.Sprintf("LLM response truncated: max tokens exceeded (%s)", e.Model)
}

// checkTruncated turns an empty answer cut off by the token budget into
// ErrMaxTokensExceeded. A truncated answer that carries text is kept.
func checkTruncated(resp *Response) (*Response, error) {
	if resp.StopReason == "max_tokens" && resp.Text == "" {
		return nil, &ErrMaxTokensExceeded{Model: resp.Model}
	}
	return resp, nil
}
