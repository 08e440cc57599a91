package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kassslll/creator-studio/backend/content"
	"github.com/kassslll/creator-studio/backend/llm"
	"github.com/kassslll/creator-studio/backend/utils"
)

const (
	// TemperatureCreative is used for generating and rewriting content.
	TemperatureCreative = 0.7
	// TemperatureAnalytical is used for query analysis.
	TemperatureAnalytical = 0.3

	DefaultStyle  = "comprehensive"
	DefaultFormat = "markdown"
)

type GenerationOptions struct {
	ProviderModel  string `json:"model"`
	Style          string `json:"style" validate:"omitempty,oneof=comprehensive concise interactive"`
	OutputFormat   string `json:"format" validate:"omitempty,oneof=markdown html json"`
	IncludeCode    bool   `json:"includeCode"`
	IncludeVisuals bool   `json:"includeVisuals"`
	IncludeChecks  bool   `json:"includeChecks"`
}

type GenerateParams struct {
	Title        string
	ContentType  string
	Difficulty   string
	Duration     string
	Objectives   string
	Instructions string
	Options      GenerationOptions
}

type GenerateResult struct {
	Body          string
	ProviderModel string
	ContentType   string
	Title         string
}

type GenerationService struct {
	provider llm.Provider
	logger   *utils.Logger
}

func NewGenerationService(provider llm.Provider, logger *utils.Logger) *GenerationService {
	return &GenerationService{provider: provider, logger: logger}
}

// Generate builds the prompt for params.ContentType and returns the
// provider's text untouched.
func (s *GenerationService) Generate(ctx context.Context, params GenerateParams) (*GenerateResult, error) {
	contentType := params.ContentType
	if strings.TrimSpace(contentType) == "" {
		contentType = content.KindLesson.String()
	}
	params.ContentType = contentType

	resp, err := s.provider.Generate(ctx, llm.Request{
		Prompt:      generationPrompt(params),
		Model:       params.Options.ProviderModel,
		Temperature: TemperatureCreative,
	})
	if err != nil {
		return nil, &GenerationError{Op: opGenerate, Err: err}
	}

	model := resp.Model
	if model == "" {
		model = s.provider.ModelID()
	}
	s.logger.Info("content generated", "title", params.Title, "content_type", contentType, "model", model)

	return &GenerateResult{
		Body:          resp.Text,
		ProviderModel: model,
		ContentType:   contentType,
		Title:         params.Title,
	}, nil
}

func generationPrompt(p GenerateParams) string {
	format := p.Options.OutputFormat
	if format == "" {
		format = DefaultFormat
	}
	style := p.Options.Style
	if style == "" {
		style = DefaultStyle
	}

	var b strings.Builder
	b.WriteString(templateFor(p.ContentType, format))
	fmt.Fprintf(&b, "\n\nGenerate a %s on %s with the following details:\n", p.ContentType, p.Title)
	fmt.Fprintf(&b, "- Difficulty: %s\n", p.Difficulty)
	fmt.Fprintf(&b, "- Duration: %s minutes\n", p.Duration)
	fmt.Fprintf(&b, "- Learning Objectives: %s\n", p.Objectives)
	fmt.Fprintf(&b, "- Additional Instructions: %s\n", p.Instructions)
	fmt.Fprintf(&b, "\nGeneration Style: %s\n", style)
	if p.Options.IncludeCode {
		b.WriteString("Please include code examples.\n")
	}
	if p.Options.IncludeVisuals {
		b.WriteString("Please include visual element descriptions.\n")
	}
	if p.Options.IncludeChecks {
		b.WriteString("Please include knowledge check questions.\n")
	}
	return b.String()
}

// templateFor returns the instruction template for a content-type label.
// Labels outside the four kinds get the generic template.
func templateFor(label, format string) string {
	if !content.Known(label) {
		return fmt.Sprintf(genericTemplate, format)
	}
	switch content.ParseKind(label) {
	case content.KindQuiz:
		return fmt.Sprintf(quizTemplate, format)
	case content.KindExercise:
		return fmt.Sprintf(exerciseTemplate, format)
	case content.KindProject:
		return fmt.Sprintf(projectTemplate, format)
	default:
		return fmt.Sprintf(lessonTemplate, format)
	}
}
