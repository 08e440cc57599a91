package content

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// View is what the preview endpoint returns for a record.
type View struct {
	Kind          string         `json:"kind"`
	Title         string         `json:"title,omitempty"`
	Description   string         `json:"description,omitempty"`
	HTML          string         `json:"html,omitempty"`
	Questions     []QuizQuestion `json:"questions,omitempty"`
	QuestionCount int            `json:"questionCount,omitempty"`
	Exercise      *Exercise      `json:"exercise,omitempty"`
	Cells         []RenderedCell `json:"cells,omitempty"`
}

type RenderedCell struct {
	Cell
	HTML string `json:"html,omitempty"`
}

// RenderMarkdown converts markdown to HTML.
func RenderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

func renderLesson(l *Lesson) (*View, error) {
	html, err := RenderMarkdown(l.Markdown)
	if err != nil {
		return nil, err
	}
	return &View{Kind: KindLesson.String(), HTML: html}, nil
}

func renderQuiz(q *Quiz) *View {
	return &View{
		Kind:          KindQuiz.String(),
		Title:         q.Title,
		Description:   q.Description,
		Questions:     q.Questions,
		QuestionCount: len(q.Questions),
	}
}

func renderExercise(e *Exercise) (*View, error) {
	html, err := RenderMarkdown(e.Instructions)
	if err != nil {
		return nil, err
	}
	return &View{
		Kind:        KindExercise.String(),
		Description: e.Description,
		HTML:        html,
		Exercise:    e,
	}, nil
}

func renderProject(p *Project) (*View, error) {
	cells := make([]RenderedCell, len(p.Cells))
	for i, c := range p.Cells {
		cells[i] = RenderedCell{Cell: c}
		if c.Type == CellMarkdown {
			html, err := RenderMarkdown(c.Content)
			if err != nil {
				return nil, err
			}
			cells[i].HTML = html
		}
	}
	return &View{
		Kind:        KindProject.String(),
		Description: p.Description,
		Cells:       cells,
	}, nil
}
