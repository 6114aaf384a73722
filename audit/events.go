package audit

import (
	"context"
	"time"
)

// Batch kinds.
const (
	KindLoans      = "loans"
	KindOperations = "operations"
)

// Event records the outcome of one batch commit.
type Event struct {
	Epoch    uint64    `json:"epoch"`
	Kind     string    `json:"kind"`
	Accepted bool      `json:"accepted"`
	Requests int       `json:"requests"`
	Treasury uint64    `json:"treasury"`
	Time     time.Time `json:"time"`
}

// Sink receives commit outcome events. Publish may block on I/O;
// Close flushes anything buffered.
type Sink interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// Nop discards events. Used when no feed is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }
