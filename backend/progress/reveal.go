package progress

import (
	"context"
	"time"
)

// Step is one revealed line of a sequence.
type Step struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// RevealSequence paces a fixed list of lines out at a constant interval.
// It knows nothing about the work the lines describe; the caller decides
// when to start it and cancels it through the context.
type RevealSequence struct {
	steps    []string
	interval time.Duration
}

func NewRevealSequence(steps []string, interval time.Duration) *RevealSequence {
	return &RevealSequence{
		steps:    append([]string(nil), steps...),
		interval: interval,
	}
}

func (r *RevealSequence) Len() int { return len(r.steps) }

// Run emits the first step immediately and each following step one
// interval later. The channel is closed after the last step or as soon as
// ctx is done; no step is delivered after cancellation.
func (r *RevealSequence) Run(ctx context.Context) <-chan Step {
	out := make(chan Step)
	go func() {
		defer close(out)

		timer := time.NewTimer(0)
		defer timer.Stop()

		for i, text := range r.steps {
			if i > 0 {
				timer.Reset(r.interval)
			}
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			select {
			case <-ctx.Done():
				return
			case out <- Step{Index: i, Text: text}:
			}
		}
	}()
	return out
}
