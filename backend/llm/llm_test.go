package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kassslll/creator-studio/backend/config"
	"github.com/kassslll/creator-studio/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProviderFIFO(t *testing.T) {
	boom := errors.New("boom")
	m := NewMockProvider(
		MockResponse{Text: "first"},
		MockResponse{Err: boom},
	)

	resp, err := m.Generate(context.Background(), Request{Prompt: "a"})
	require.NoError(t, err)
	assert.Equal(t, "first", resp.Text)
	assert.Equal(t, "mock", resp.Model)

	_, err = m.Generate(context.Background(), Request{Prompt: "b", Model: "custom"})
	assert.ErrorIs(t, err, boom)

	_, err = m.Generate(context.Background(), Request{Prompt: "c"})
	var unavailable *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavailable)

	assert.Equal(t, 3, m.CallCount())
	last, ok := m.LastCall()
	require.True(t, ok)
	assert.Equal(t, "c", last.Prompt)
}

func TestMockProviderFallbackAndModel(t *testing.T) {
	m := &MockProvider{Fallback: "always"}
	resp, err := m.Generate(context.Background(), Request{Model: "gemini-1.5-flash"})
	require.NoError(t, err)
	assert.Equal(t, "always", resp.Text)
	assert.Equal(t, "gemini-1.5-flash", resp.Model)
}

type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	select {
	case <-ctx.Done():
		return nil, &ErrProviderUnavailable{Err: ctx.Err()}
	case <-time.After(time.Second):
		return &Response{Text: "late"}, nil
	}
}

func (slowProvider) ModelID() string { return "slow" }

func TestWithTimeout(t *testing.T) {
	p := WithTimeout(slowProvider{}, 10*time.Millisecond)
	_, err := p.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "slow", p.ModelID())

	m := NewMockProvider()
	assert.Same(t, m, WithTimeout(m, 0))
}

func TestWithLoggingPassesThrough(t *testing.T) {
	m := NewMockProvider(MockResponse{Text: "ok"}, MockResponse{Err: errors.New("nope")})
	p := WithLogging(m, utils.NopLogger())

	resp, err := p.Generate(context.Background(), Request{Prompt: "x", Temperature: 0.7})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)

	_, err = p.Generate(context.Background(), Request{Prompt: "y"})
	assert.EqualError(t, err, "nope")
	assert.Equal(t, 2, m.CallCount())
}

func TestMessageUnwrapsProviderErrors(t *testing.T) {
	inner := errors.New("API key not valid")
	assert.Equal(t, "API key not valid", Message(&ErrProviderUnavailable{Err: inner}))
	assert.Equal(t, "API key not valid", Message(&ErrRateLimit{Err: inner}))
	assert.Equal(t, "LLM provider unavailable", Message(&ErrProviderUnavailable{}))
	assert.Equal(t, "plain", Message(errors.New("plain")))
}

func TestResolveModel(t *testing.T) {
	assert.Equal(t, DefaultGeminiModel, resolveModel("gemini-pro", geminiModels))
	assert.Equal(t, "gemini-1.5-flash", resolveModel("gemini-1.5-flash", geminiModels))
	assert.Equal(t, "gpt-4o-mini", resolveModel("gpt-4o-mini", openaiModels))
	assert.Equal(t, "override", modelFor(Request{Model: "override"}, "default"))
	assert.Equal(t, "default", modelFor(Request{}, "default"))
}

func TestConstructorsRequireKeys(t *testing.T) {
	_, err := NewOpenAIProvider(OpenAIConfig{})
	assert.Error(t, err)
	_, err = NewAnthropicProvider(AnthropicConfig{})
	assert.Error(t, err)
	_, err = NewGeminiProvider(context.Background(), GeminiConfig{})
	assert.Error(t, err)

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, DefaultOpenAIModel, p.ModelID())

	o, err := NewOllamaProvider(OllamaConfig{Host: "http://localhost:11434"})
	require.NoError(t, err)
	assert.Equal(t, DefaultOllamaModel, o.ModelID())
}

func TestNewProvider(t *testing.T) {
	logger := utils.NopLogger()

	p, err := NewProvider(context.Background(), &config.Config{LLMProvider: "mock"}, logger)
	require.NoError(t, err)
	resp, err := p.Generate(context.Background(), Request{Prompt: "hi"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Text)

	_, err = NewProvider(context.Background(), &config.Config{LLMProvider: "bogus"}, logger)
	assert.EqualError(t, err, `unknown LLM provider: "bogus"`)

	_, err = NewProvider(context.Background(), &config.Config{LLMProvider: "openai"}, logger)
	assert.Error(t, err)
}
