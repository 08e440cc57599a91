package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

const DefaultOllamaModel = "llama3.1"

type OllamaConfig struct {
	Host  string
	Model string
}

// OllamaProvider talks to a local or remote Ollama server.
type OllamaProvider struct {
	client *api.Client
	model  string
}

func NewOllamaProvider(cfg OllamaConfig) (*OllamaProvider, error) {
	u, err := url.Parse(cfg.Host)
	if err != nil {
		return nil, fmt.Errorf("parse ollama host %q: %w", cfg.Host, err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultOllamaModel
	}

	return &OllamaProvider{
		client: api.NewClient(u, &http.Client{}),
		model:  model,
	}, nil
}

func (p *OllamaProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var messages []api.Message
	if req.System != "" {
		messages = append(messages, api.Message{Role: "system", Content: req.System})
	}
	messages = append(messages, api.Message{Role: "user", Content: req.Prompt})

	opts := make(map[string]any)
	if req.Temperature > 0 {
		opts["temperature"] = req.Temperature
	}
	if req.MaxTokens > 0 {
		opts["num_predict"] = req.MaxTokens
	}

	stream := false
	chatReq := api.ChatRequest{
		Model:    modelFor(req, p.model),
		Messages: messages,
		Stream:   &stream,
		Options:  opts,
	}

	var (
		text  strings.Builder
		usage Usage
	)
	err := p.client.Chat(ctx, &chatReq, func(res api.ChatResponse) error {
		text.WriteString(res.Message.Content)
		if res.Done {
			usage = Usage{
				InputTokens:  res.PromptEvalCount,
				OutputTokens: res.EvalCount,
				TotalTokens:  res.PromptEvalCount + res.EvalCount,
			}
		}
		return nil
	})
	if err != nil {
		return nil, &ErrProviderUnavailable{Err: err}
	}
	if text.Len() == 0 {
		return nil, &ErrProviderUnavailable{Err: ErrEmptyResponse}
	}

	return &Response{Text: text.String(), Model: chatReq.Model, Usage: usage}, nil
}

func (p *OllamaProvider) ModelID() string {
	return p.model
}
