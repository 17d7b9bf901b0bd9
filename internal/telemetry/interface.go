package telemetry

import (
	"context"
	"time"
)

// Collector defines the core domain interface
type Collector interface {
	Record(ctx context.Context, snapshot *SessionSnapshot) error
	Close() error
}

// SessionSnapshot captures the outcome of one recording session
type SessionSnapshot struct {
	ID          string
	TaskName    string
	StartedAt   time.Time
	StoppedAt   time.Time
	SampleCount int
	OutputPath  string
}
