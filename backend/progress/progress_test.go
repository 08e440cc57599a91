package progress

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(ch <-chan Step) []Step {
	var got []Step
	for s := range ch {
		got = append(got, s)
	}
	return got
}

func TestRevealSequenceEmitsInOrder(t *testing.T) {
	seq := NewRevealSequence([]string{"a", "b", "c"}, 5*time.Millisecond)
	assert.Equal(t, 3, seq.Len())

	start := time.Now()
	got := collect(seq.Run(context.Background()))
	require.Len(t, got, 3)
	for i, s := range got {
		assert.Equal(t, i, s.Index)
	}
	assert.Equal(t, "c", got[2].Text)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestRevealSequenceCancel(t *testing.T) {
	seq := NewRevealSequence([]string{"a", "b", "c"}, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	ch := seq.Run(ctx)

	first := <-ch
	assert.Equal(t, "a", first.Text)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "no step after cancellation")
	case <-time.After(time.Second):
		t.Fatal("sequence did not stop after cancel")
	}
}

func TestRevealSequenceEmpty(t *testing.T) {
	assert.Empty(t, collect(NewRevealSequence(nil, time.Millisecond).Run(context.Background())))
}

func TestTickerCapsAndCompletes(t *testing.T) {
	tk := StartTicker(context.Background(), time.Millisecond)

	var values []int
	for v := range tk.C() {
		values = append(values, v)
		if v == tickCap {
			tk.Stop(true)
			tk.Stop(false)
		}
	}

	require.NotEmpty(t, values)
	assert.Equal(t, tickStep, values[0])
	assert.Equal(t, Complete, values[len(values)-1])
	for i := 1; i < len(values)-1; i++ {
		assert.LessOrEqual(t, values[i], tickCap)
		assert.Greater(t, values[i], values[i-1])
	}
}

func TestTickerStopWithoutSuccess(t *testing.T) {
	tk := StartTicker(context.Background(), time.Hour)
	tk.Stop(false)

	var values []int
	for v := range tk.C() {
		values = append(values, v)
	}
	assert.Empty(t, values)
}

func TestTickerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	tk := StartTicker(ctx, time.Hour)
	cancel()

	select {
	case _, ok := <-tk.C():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("ticker did not close after cancel")
	}
	tk.Stop(true)
}
