package llm

import (
	"errors"
	"fmt"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	Err error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

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

// ErrEmptyResponse indicates the provider answered without any text.
var ErrEmptyResponse = errors.New("LLM returned an empty response")

// Message extracts the most specific human-readable message from a provider
// error, dropping the wrapper prefixes added by this package.
func Message(err error) string {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.Err != nil {
		return rl.Err.Error()
	}
	var pu *ErrProviderUnavailable
	if errors.As(err, &pu) && pu.Err != nil {
		return pu.Err.Error()
	}
	return err.Error()
}
