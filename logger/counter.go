package logger

import (
	"github.com/viant/gmetric/counter"
	"time"
)

// Event represents a counted response outcome
type Event string

const (
	Success    Event = "Success"
	Error      Event = "Error"
	Compressed Event = "Compressed"
)

type Counter interface {
	Begin(started time.Time) counter.OnDone
	IncrementValue(value interface{}) int64
}

func NewCounter(counter Counter) *CounterAdapter {
	return &CounterAdapter{
		counter: counter,
	}
}

// CounterAdapter wraps optional counter
type CounterAdapter struct {
	counter Counter
}

func (c *CounterAdapter) Begin(started time.Time) counter.OnDone {
	if c == nil || c.counter == nil {
		return nopOnDone
	}
	return c.counter.Begin(started)
}

func (c *CounterAdapter) IncrementValue(value interface{}) int64 {
	if c == nil || c.counter == nil {
		return 0
	}
	return c.counter.IncrementValue(value)
}

// Count increments outcome events
func (c *CounterAdapter) Count(events ...Event) {
	for _, event := range events {
		c.IncrementValue(event)
	}
}

func nopOnDone(_ time.Time, _ ...interface{}) int64 {
	return 0
}
