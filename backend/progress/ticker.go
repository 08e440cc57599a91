package progress

import (
	"context"
	"sync"
	"time"
)

const (
	tickStep = 5
	tickCap  = 95
	// Complete is emitted once when a ticker is stopped successfully.
	Complete = 100

	DefaultTickInterval = 500 * time.Millisecond
)

// Ticker is a cosmetic percentage that creeps towards 95 while a request is
// in flight. The numbers are not tied to real progress.
type Ticker struct {
	interval time.Duration
	out      chan int
	stop     chan bool
	once     sync.Once
}

// StartTicker begins ticking immediately. Values are delivered on C until
// Stop is called or ctx is done, after which C is closed.
func StartTicker(ctx context.Context, interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	t := &Ticker{
		interval: interval,
		out:      make(chan int),
		stop:     make(chan bool, 1),
	}
	go t.run(ctx)
	return t
}

func (t *Ticker) C() <-chan int { return t.out }

// Stop ends the ticker. When success is true a final 100 is delivered
// before C closes. Only the first call has any effect.
func (t *Ticker) Stop(success bool) {
	t.once.Do(func() {
		t.stop <- success
	})
}

func (t *Ticker) run(ctx context.Context) {
	defer close(t.out)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	value := 0
	for {
		select {
		case <-ctx.Done():
			return
		case success := <-t.stop:
			t.finish(ctx, success)
			return
		case <-ticker.C:
			if value >= tickCap {
				continue
			}
			value = min(value+tickStep, tickCap)
			select {
			case t.out <- value:
			case success := <-t.stop:
				t.finish(ctx, success)
				return
			case <-ctx.Done():
				return
			}
		}
	}
}

func (t *Ticker) finish(ctx context.Context, success bool) {
	if !success {
		return
	}
	select {
	case t.out <- Complete:
	case <-ctx.Done():
	}
}
