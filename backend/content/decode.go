package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Decoded is the outcome of decode-or-default. Value is always fully
// populated; Fallback reports that it is the placeholder built because the
// body could not be decoded, and Err says why.
type Decoded[T any] struct {
	Value    T
	Fallback bool
	Err      error
}

var errNotJSON = errors.New("body is not JSON")

const quizSchema = `{
  "type": "object",
  "required": ["questions"],
  "properties": {
    "title": {"type": "string"},
    "description": {"type": "string"},
    "questions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["question", "options"],
        "properties": {
          "question": {"type": "string"},
          "options": {"type": "array", "minItems": 2, "items": {"type": "string"}},
          "correctAnswerIndex": {"type": "integer"},
          "explanation": {"type": "string"}
        }
      }
    }
  }
}`

const exerciseSchema = `{
  "type": "object",
  "properties": {
    "description": {"type": "string"},
    "instructions": {"type": "string"},
    "initialCode": {"type": "string"},
    "language": {"type": "string"},
    "solution": {"type": "string"},
    "testCases": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "input": {"type": "string"},
          "expectedOutput": {"type": "string"},
          "description": {"type": "string"}
        }
      }
    }
  }
}`

const projectSchema = `{
  "type": "object",
  "properties": {
    "description": {"type": "string"},
    "cells": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["type", "content"],
        "properties": {
          "id": {"type": "string"},
          "type": {"enum": ["markdown", "code"]},
          "content": {"type": "string"},
          "language": {"type": "string"},
          "output": {"type": "string"}
        }
      }
    }
  }
}`

var (
	schemasOnce sync.Once
	schemas     map[Kind]*jsonschema.Schema
	schemasErr  error
)

func compiledSchema(k Kind) (*jsonschema.Schema, error) {
	schemasOnce.Do(func() {
		sources := map[Kind]string{
			KindQuiz:     quizSchema,
			KindExercise: exerciseSchema,
			KindProject:  projectSchema,
		}
		c := jsonschema.NewCompiler()
		schemas = make(map[Kind]*jsonschema.Schema, len(sources))
		for kind, src := range sources {
			doc, err := jsonschema.UnmarshalJSON(strings.NewReader(src))
			if err != nil {
				schemasErr = fmt.Errorf("parse %s schema: %w", kind, err)
				return
			}
			url := fmt.Sprintf("schema://%s.json", kind)
			if err := c.AddResource(url, doc); err != nil {
				schemasErr = fmt.Errorf("add %s schema: %w", kind, err)
				return
			}
			compiled, err := c.Compile(url)
			if err != nil {
				schemasErr = fmt.Errorf("compile %s schema: %w", kind, err)
				return
			}
			schemas[kind] = compiled
		}
	})
	if schemasErr != nil {
		return nil, schemasErr
	}
	return schemas[k], nil
}

// decodeChecked parses body, lets reshape adjust the generic value, checks
// it against the kind's schema and finally decodes into out.
func decodeChecked(k Kind, body string, reshape func(any) any, out any) error {
	body = StripCodeFence(body)
	if body == "" {
		return errNotJSON
	}
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", errNotJSON, err)
	}
	if reshape != nil {
		doc = reshape(doc)
	}

	schema, err := compiledSchema(k)
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%s shape: %w", k, err)
	}

	normalized, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(normalized, out)
}

// QuizFallback is the placeholder shown when a quiz body does not decode.
func QuizFallback() Quiz {
	return Quiz{
		Description: "Quiz content",
		Questions: []QuizQuestion{{
			Question:           "Sample question",
			Options:            []string{"Option 1", "Option 2", "Option 3"},
			CorrectAnswerIndex: 0,
		}},
	}
}

// DecodeQuiz accepts either a bare question array or an object with
// title, description and questions.
func DecodeQuiz(body string) Decoded[Quiz] {
	var q Quiz
	err := decodeChecked(KindQuiz, body, func(doc any) any {
		if arr, ok := doc.([]any); ok {
			return map[string]any{"questions": arr}
		}
		return doc
	}, &q)
	if err != nil {
		return Decoded[Quiz]{Value: QuizFallback(), Fallback: true, Err: err}
	}

	if q.Questions == nil {
		q.Questions = []QuizQuestion{}
	}
	for i := range q.Questions {
		if idx := q.Questions[i].CorrectAnswerIndex; idx < 0 || idx >= len(q.Questions[i].Options) {
			q.Questions[i].CorrectAnswerIndex = 0
		}
	}
	return Decoded[Quiz]{Value: q}
}

// ExerciseFallback keeps the raw body as the exercise instructions.
func ExerciseFallback(body string) Exercise {
	return Exercise{
		Description:  "Exercise description",
		Instructions: body,
		InitialCode:  DefaultInitialCode,
		Language:     DefaultLanguage,
		TestCases:    []TestCase{},
	}
}

func DecodeExercise(body string) Decoded[Exercise] {
	var e Exercise
	if err := decodeChecked(KindExercise, body, nil, &e); err != nil {
		return Decoded[Exercise]{Value: ExerciseFallback(body), Fallback: true, Err: err}
	}

	if e.InitialCode == "" {
		e.InitialCode = DefaultInitialCode
	}
	if e.Language == "" {
		e.Language = DefaultLanguage
	}
	if e.TestCases == nil {
		e.TestCases = []TestCase{}
	}
	return Decoded[Exercise]{Value: e}
}

// ProjectFallback wraps the raw body in a single markdown cell.
func ProjectFallback(body string) Project {
	return Project{
		Description: "Project description",
		Cells: []Cell{{
			ID:      "1",
			Type:    CellMarkdown,
			Content: body,
		}},
	}
}

func DecodeProject(body string) Decoded[Project] {
	var p Project
	if err := decodeChecked(KindProject, body, nil, &p); err != nil {
		return Decoded[Project]{Value: ProjectFallback(body), Fallback: true, Err: err}
	}

	if p.Cells == nil {
		p.Cells = []Cell{}
	}
	seen := make(map[string]bool, len(p.Cells))
	for i := range p.Cells {
		c := &p.Cells[i]
		if c.ID == "" || seen[c.ID] {
			c.ID = newCellID()
		}
		seen[c.ID] = true
		switch c.Type {
		case CellCode:
			if c.Language == "" {
				c.Language = DefaultLanguage
			}
		default:
			c.Language = ""
		}
	}
	return Decoded[Project]{Value: p}
}

func newCellID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
