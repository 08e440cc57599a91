package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"thirty minutes", now.Add(-30 * time.Minute), "Just now"},
		{"one hour", now.Add(-61 * time.Minute), "1 hour ago"},
		{"five hours", now.Add(-5 * time.Hour), "5 hours ago"},
		{"thirty hours", now.Add(-30 * time.Hour), "Yesterday"},
		{"three days", now.Add(-75 * time.Hour), "3 days ago"},
		{"nine days", now.Add(-9 * 24 * time.Hour), "3/11/2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeAgo(tt.at, now))
		})
	}
}

func TestTimeAgoFutureIsJustNow(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "Just now", TimeAgo(now.Add(time.Minute), now))
}

type sampleRequest struct {
	Query string `json:"query" validate:"min=2"`
	ID    uint   `json:"contentId" validate:"required"`
}

func TestValidateStruct(t *testing.T) {
	msg, fields, ok := ValidateStruct(sampleRequest{Query: "go", ID: 1})
	assert.True(t, ok)
	assert.Empty(t, msg)
	assert.Nil(t, fields)

	msg, fields, ok = ValidateStruct(sampleRequest{Query: "g"})
	assert.False(t, ok)
	assert.Contains(t, msg, "Query must be at least 2 characters")
	assert.Contains(t, msg, "contentId is required")
	assert.Len(t, fields, 2)
}

func TestRedact(t *testing.T) {
	out := redact([]interface{}{"api_key", "sk-123", "model", "gpt-4o"})
	assert.Equal(t, "[REDACTED]", out[1])
	assert.Equal(t, "gpt-4o", out[3])
}

func TestErrorHelpersSendMessage(t *testing.T) {
	app := fiber.New()
	app.Get("/missing", func(c *fiber.Ctx) error { return NotFound(c, "Content not found") })
	app.Get("/bad", func(c *fiber.Ctx) error { return BadRequest(c, "Invalid content ID") })
	app.Get("/conflict", func(c *fiber.Ctx) error { return Conflict(c, "Quiz is unreadable") })
	app.Get("/upstream", func(c *fiber.Ctx) error { return BadGateway(c, "Failed to generate content: boom") })
	app.Get("/broken", func(c *fiber.Ctx) error { return InternalServerError(c, "store down") })

	tests := []struct {
		path    string
		status  int
		message string
	}{
		{"/missing", fiber.StatusNotFound, "Content not found"},
		{"/bad", fiber.StatusBadRequest, "Invalid content ID"},
		{"/conflict", fiber.StatusConflict, "Quiz is unreadable"},
		{"/upstream", fiber.StatusBadGateway, "Failed to generate content: boom"},
		{"/broken", fiber.StatusInternalServerError, "store down"},
	}
	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
		require.NoError(t, err)
		assert.Equal(t, tt.status, resp.StatusCode, tt.path)

		var body ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, tt.message, body.Message, tt.path)
	}
}
