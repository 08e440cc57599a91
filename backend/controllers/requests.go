package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/kassslll/creator-studio/backend/services"
)

type DiscoverRequest struct {
	Query string `json:"query" validate:"min=2"`
}

// Duration accepts either a JSON string or a number of minutes.
type Duration string

func (d *Duration) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*d = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = Duration(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("duration must be a string or a number")
	}
	*d = Duration(n.String())
	return nil
}

type GenerateRequest struct {
	Title             string                      `json:"title" validate:"min=3"`
	CurriculumID      *uint                       `json:"curriculumId" validate:"required"`
	ContentType       string                      `json:"contentType" validate:"required"`
	Difficulty        string                      `json:"difficulty"`
	Duration          Duration                    `json:"duration"`
	Objectives        string                      `json:"objectives"`
	Instructions      string                      `json:"instructions"`
	GenerationOptions *services.GenerationOptions `json:"generationOptions"`
}

func (r *GenerateRequest) params() services.GenerateParams {
	p := services.GenerateParams{
		Title:        r.Title,
		ContentType:  r.ContentType,
		Difficulty:   r.Difficulty,
		Duration:     string(r.Duration),
		Objectives:   r.Objectives,
		Instructions: r.Instructions,
	}
	if r.GenerationOptions != nil {
		p.Options = *r.GenerationOptions
	}
	return p
}

type GenerateResponse struct {
	ID            uint   `json:"id"`
	Body          string `json:"body"`
	ProviderModel string `json:"providerModel"`
	ContentType   string `json:"contentType"`
	Title         string `json:"title"`
}

type ModifyRequest struct {
	ContentID        *uint  `json:"contentId" validate:"required"`
	ModificationType string `json:"modificationType"`
	Instructions     string `json:"instructions"`
}

type ModifyResponse struct {
	ID               uint   `json:"id"`
	NewBody          string `json:"newBody"`
	OriginalBody     string `json:"originalBody"`
	ModificationType string `json:"modificationType"`
}

type RecentContent struct {
	ID      uint   `json:"id"`
	Title   string `json:"title"`
	Type    string `json:"type"`
	TimeAgo string `json:"timeAgo"`
}

type QuizCheckRequest struct {
	Selections []int `json:"selections" validate:"required"`
}

type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=100"`
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
