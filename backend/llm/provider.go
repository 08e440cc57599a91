package llm

import "context"

// Provider is the generative text backend used by the content services.
type Provider interface {
	// Generate sends a single-turn prompt and returns the raw text reply.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model this provider uses when a request does not
	// name one.
	ModelID() string
}

// Request describes one call to the provider.
type Request struct {
	// System is the optional system instruction.
	System string

	// Prompt is the user turn.
	Prompt string

	// Model overrides the provider's default model when non-empty.
	Model string

	// Temperature controls randomness. Zero leaves the provider default.
	Temperature float64

	MaxTokens int
}

// Response holds the provider's output.
type Response struct {
	// Text is the reply as returned by the model, without post-processing.
	Text string

	// Model is the model that served the request.
	Model string

	Usage Usage
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// modelFor picks the request model over the provider default.
func modelFor(req Request, fallback string) string {
	if req.Model != "" {
		return req.Model
	}
	return fallback
}

// resolveModel maps a friendly model name to a provider model ID.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
