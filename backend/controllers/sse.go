package controllers

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	eventThought  = "thought"
	eventProgress = "progress"
	eventResult   = "result"
	eventError    = "error"
)

func sseHeaders(c *fiber.Ctx) {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("Transfer-Encoding", "chunked")
	c.Set("X-Accel-Buffering", "no")
}

// writeEvent sends one SSE frame and flushes it. A flush error means the
// client has gone away.
func writeEvent(w *bufio.Writer, event string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	return w.Flush()
}

type progressEvent struct {
	Percent int `json:"percent"`
}

type errorEvent struct {
	Message string `json:"message"`
}
