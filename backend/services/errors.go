package services

import (
	"fmt"

	"github.com/kassslll/creator-studio/backend/llm"
)

// GenerationError is a terminal provider failure for one request. Its
// message carries the provider's own message so it can be shown to users.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("Failed to %s: %s", e.Op, llm.Message(e.Err))
}

func (e *GenerationError) Unwrap() error { return e.Err }

const (
	opGenerate = "generate content"
	opModify   = "modify content"
	opRAG      = "process RAG query"
	opAnalyze  = "analyze content query"
)
