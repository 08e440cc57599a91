package llm

import (
	"context"
	"time"

	"github.com/kassslll/creator-studio/backend/utils"
)

// LoggingProvider is a decorator that logs every provider call.
type LoggingProvider struct {
	inner  Provider
	logger *utils.Logger
}

func WithLogging(p Provider, logger *utils.Logger) Provider {
	return &LoggingProvider{inner: p, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	latency := time.Since(start)

	model := modelFor(req, l.inner.ModelID())
	if err != nil {
		l.logger.Error("llm request failed",
			"model", model,
			"temperature", req.Temperature,
			"latency", latency,
			"error", err,
		)
		return nil, err
	}

	l.logger.Info("llm request",
		"model", resp.Model,
		"temperature", req.Temperature,
		"prompt_chars", len(req.Prompt),
		"usage", resp.Usage.TotalTokens,
		"latency", latency,
	)
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// TimeoutProvider bounds every call with a deadline.
type TimeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout wraps p so each Generate call is cancelled after d. A
// non-positive d returns p unchanged.
func WithTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return &TimeoutProvider{inner: p, timeout: d}
}

func (t *TimeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Generate(ctx, req)
}

func (t *TimeoutProvider) ModelID() string {
	return t.inner.ModelID()
}
