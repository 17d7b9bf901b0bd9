// Package session drives the Idle → Countdown → Recording → Idle lifecycle
// of a capture session.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/HarwaniDev/activity-tracker/internal/activity"
	"github.com/HarwaniDev/activity-tracker/internal/device"
	"github.com/HarwaniDev/activity-tracker/internal/errors"
	"github.com/HarwaniDev/activity-tracker/internal/logger"
	"github.com/HarwaniDev/activity-tracker/internal/sampler"
	"github.com/HarwaniDev/activity-tracker/internal/telemetry"
	"github.com/HarwaniDev/activity-tracker/internal/writer"
)

// State identifies where the controller is in the session lifecycle.
type State int

const (
	StateIdle State = iota
	StateCountdown
	StateRecording
)

func (s State) String() string {
	switch s {
	case StateCountdown:
		return "countdown"
	case StateRecording:
		return "recording"
	default:
		return "idle"
	}
}

// MarshalJSON renders the state name rather than its ordinal.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// DefaultCountdown is the delay between a start request and the first sample.
const DefaultCountdown = 5 * time.Second

// Config controls session timing.
type Config struct {
	Countdown time.Duration
	Interval  time.Duration
	Clock     func() time.Time
}

// Status is a point-in-time view of the controller for the surface.
type Status struct {
	State     State  `json:"state"`
	Task      string `json:"task,omitempty"`
	Remaining int    `json:"remaining,omitempty"`
	Message   string `json:"message"`
}

// Controller owns at most one session at a time. A start request while a
// session is active is a hard error; stop requests during the countdown are
// deferred with a "not ready" report, leaving the session running.
type Controller struct {
	cfg     Config
	device  device.Device
	writer  *writer.Writer
	history telemetry.Collector
	clock   func() time.Time

	mu        sync.Mutex
	state     State
	stopping  bool
	id        string
	task      string
	startedAt time.Time
	cancel    context.CancelFunc
	results   chan []activity.Record
	message   string
}

// Option customizes controller construction.
type Option func(*Controller)

// WithHistory records finished sessions to the given collector.
func WithHistory(collector telemetry.Collector) Option {
	return func(c *Controller) { c.history = collector }
}

// WithPermissionNote seeds the idle status line with a permission hint
// resolved at startup.
func WithPermissionNote(probe device.PermissionProbe) Option {
	return func(c *Controller) {
		if probe.Message != "" {
			c.message = probe.Message
		}
	}
}

// NewController constructs an idle controller.
func NewController(dev device.Device, w *writer.Writer, cfg Config, opts ...Option) *Controller {
	if cfg.Countdown <= 0 {
		cfg.Countdown = DefaultCountdown
	}
	if cfg.Interval <= 0 {
		cfg.Interval = sampler.DefaultInterval
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	c := &Controller{
		cfg:    cfg,
		device: dev,
		writer: w,
		clock:  clock,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Start begins a countdown session for the given task name.
func (c *Controller) Start(task string) error {
	task = strings.TrimSpace(task)
	if task == "" {
		return errors.New(errors.ErrEmptyTaskName)
	}

	smp, err := sampler.New(c.device, sampler.Config{
		Interval: c.cfg.Interval,
		Clock:    c.clock,
	})
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return errors.New(errors.ErrSessionActive)
	}

	ctx, cancel := context.WithCancel(context.Background())
	results := make(chan []activity.Record, 1)

	c.state = StateCountdown
	c.id = uuid.NewString()
	c.task = task
	c.startedAt = c.clock()
	c.cancel = cancel
	c.results = results
	c.message = fmt.Sprintf("Preparing to record (%d second countdown)...",
		int(c.cfg.Countdown/time.Second))
	id := c.id
	c.mu.Unlock()

	logger.Info().Str("session_id", id).Str("task", task).Msg("session started")

	go c.run(ctx, smp, results)

	return nil
}

// run waits out the countdown, flips to recording, and hands the sampler's
// owned buffer back over the results channel.
func (c *Controller) run(ctx context.Context, smp *sampler.Sampler, results chan<- []activity.Record) {
	timer := time.NewTimer(c.cfg.Countdown)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		results <- nil
		return
	case <-timer.C:
	}

	c.mu.Lock()
	if c.state == StateCountdown {
		c.state = StateRecording
	}
	c.mu.Unlock()

	logger.Info().Msg("countdown complete, recording in progress")
	results <- smp.Run(ctx)
}

// Stop ends the active session and writes the recording. A stop before the
// countdown has elapsed is reported as not ready and the session continues.
func (c *Controller) Stop() (writer.Result, error) {
	c.mu.Lock()
	if c.state == StateIdle || c.stopping {
		c.mu.Unlock()
		return writer.Result{}, errors.New(errors.ErrNoSession)
	}

	if c.clock().Sub(c.startedAt) < c.cfg.Countdown {
		c.message = errors.GetErrorMessage(errors.ErrNotReady)
		c.mu.Unlock()
		return writer.Result{}, errors.New(errors.ErrNotReady)
	}

	c.stopping = true
	id := c.id
	task := c.task
	startedAt := c.startedAt
	cancel := c.cancel
	results := c.results
	c.mu.Unlock()

	cancel()
	records := <-results

	res, err := c.writer.Write(task, records)

	c.mu.Lock()
	c.state = StateIdle
	c.stopping = false
	c.cancel = nil
	c.results = nil
	if err != nil {
		c.message = err.Error()
	} else {
		c.message = fmt.Sprintf("Activity data saved to %s", res.Path)
	}
	c.mu.Unlock()

	c.recordHistory(id, task, startedAt, len(records), res.Path)

	if err != nil {
		logger.Warn().Str("session_id", id).Err(err).Msg("session ended without output")
		return writer.Result{}, err
	}

	logger.Info().Str("session_id", id).Str("path", res.Path).Int("rows", res.Rows).
		Msg("session completed")

	return res, nil
}

// Status reports the current state and status line.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := Status{
		State:   c.state,
		Task:    c.task,
		Message: c.message,
	}

	switch c.state {
	case StateCountdown:
		remaining := c.cfg.Countdown - c.clock().Sub(c.startedAt)
		status.Remaining = int((remaining + time.Second - 1) / time.Second)
		if status.Remaining < 0 {
			status.Remaining = 0
		}
		status.Message = fmt.Sprintf("Recording will start in %d seconds...", status.Remaining)
	case StateRecording:
		status.Message = "Recording in progress..."
	case StateIdle:
		if status.Message == "" {
			status.Message = "Idle"
		}
		status.Task = ""
	}

	return status
}

// Shutdown cancels any in-flight session and flushes recorded samples to
// disk before returning. Used on process termination.
func (c *Controller) Shutdown() error {
	c.mu.Lock()
	if c.state == StateIdle || c.stopping {
		c.mu.Unlock()
		return nil
	}

	id := c.id
	task := c.task
	startedAt := c.startedAt
	cancel := c.cancel
	results := c.results
	c.state = StateIdle
	c.cancel = nil
	c.results = nil
	c.mu.Unlock()

	cancel()
	records := <-results
	if len(records) == 0 {
		logger.Info().Str("session_id", id).Msg("session aborted before any samples")
		return nil
	}

	res, err := c.writer.Write(task, records)
	if err != nil {
		return err
	}

	c.recordHistory(id, task, startedAt, len(records), res.Path)
	logger.Info().Str("session_id", id).Str("path", res.Path).Msg("in-flight session flushed")

	return nil
}

func (c *Controller) recordHistory(id, task string, startedAt time.Time, samples int, path string) {
	if c.history == nil {
		return
	}

	snapshot := &telemetry.SessionSnapshot{
		ID:          id,
		TaskName:    task,
		StartedAt:   startedAt,
		StoppedAt:   c.clock(),
		SampleCount: samples,
		OutputPath:  path,
	}
	if err := c.history.Record(context.Background(), snapshot); err != nil {
		logger.Warn().Err(err).Msg("failed to record session history")
	}
}
