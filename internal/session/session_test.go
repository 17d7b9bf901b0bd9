package session_test

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HarwaniDev/activity-tracker/internal/device"
	"github.com/HarwaniDev/activity-tracker/internal/errors"
	"github.com/HarwaniDev/activity-tracker/internal/session"
	"github.com/HarwaniDev/activity-tracker/internal/telemetry"
	"github.com/HarwaniDev/activity-tracker/internal/writer"
)

type fakeHistory struct {
	mu        sync.Mutex
	snapshots []telemetry.SessionSnapshot
}

func (f *fakeHistory) Record(_ context.Context, snapshot *telemetry.SessionSnapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshots = append(f.snapshots, *snapshot)
	return nil
}

func (f *fakeHistory) Close() error { return nil }

func newController(t *testing.T, dir string, opts ...session.Option) *session.Controller {
	t.Helper()
	return session.NewController(
		device.NewSimulated(0, 0),
		writer.New(writer.Config{OutputDir: dir}),
		session.Config{
			Countdown: 60 * time.Millisecond,
			Interval:  10 * time.Millisecond,
		},
		opts...,
	)
}

func TestStartRejectsEmptyTaskName(t *testing.T) {
	dir := t.TempDir()
	c := newController(t, dir)

	for _, task := range []string{"", "   "} {
		err := c.Start(task)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrEmptyTaskName))
	}

	assert.Equal(t, session.StateIdle, c.Status().State)
}

func TestStartRejectsWhileActive(t *testing.T) {
	dir := t.TempDir()
	c := newController(t, dir)

	require.NoError(t, c.Start("first"))
	defer c.Shutdown()

	err := c.Start("second")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrSessionActive))
}

func TestPrematureStopLeavesSessionActive(t *testing.T) {
	dir := t.TempDir()
	c := newController(t, dir)

	require.NoError(t, c.Start("task"))
	defer c.Shutdown()

	_, err := c.Stop()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrNotReady))
	assert.Equal(t, "Please wait for timer to complete.", err.Error())

	assert.NotEqual(t, session.StateIdle, c.Status().State)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "premature stop must not produce a file")
}

func TestCountdownStatus(t *testing.T) {
	c := session.NewController(
		device.NewSimulated(0, 0),
		writer.New(writer.Config{OutputDir: t.TempDir()}),
		session.Config{
			Countdown: 5 * time.Second,
			Interval:  10 * time.Millisecond,
		},
	)

	require.NoError(t, c.Start("task"))
	defer c.Shutdown()

	status := c.Status()
	assert.Equal(t, session.StateCountdown, status.State)
	assert.Equal(t, "task", status.Task)
	assert.GreaterOrEqual(t, status.Remaining, 1)
	assert.LessOrEqual(t, status.Remaining, 5)
	assert.Contains(t, status.Message, "Recording will start in")
}

func TestFullSessionProducesFile(t *testing.T) {
	dir := t.TempDir()
	history := &fakeHistory{}
	c := newController(t, dir, session.WithHistory(history))

	require.NoError(t, c.Start("full session"))
	time.Sleep(260 * time.Millisecond) // 60ms countdown + ~200ms recording

	assert.Equal(t, session.StateRecording, c.Status().State)
	assert.Equal(t, "Recording in progress...", c.Status().Message)

	res, err := c.Stop()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Path, dir))
	assert.Contains(t, res.Path, "full_session_")
	assert.GreaterOrEqual(t, res.Rows, 5)

	raw, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	assert.Equal(t, writer.Header, lines[0])
	assert.Len(t, lines, res.Rows+1)

	status := c.Status()
	assert.Equal(t, session.StateIdle, status.State)
	assert.Contains(t, status.Message, "Activity data saved to")

	require.Len(t, history.snapshots, 1)
	assert.Equal(t, "full session", history.snapshots[0].TaskName)
	assert.Equal(t, res.Rows, history.snapshots[0].SampleCount)
	assert.Equal(t, res.Path, history.snapshots[0].OutputPath)
	assert.NotEmpty(t, history.snapshots[0].ID)
}

func TestSecondSessionAfterStop(t *testing.T) {
	dir := t.TempDir()
	c := newController(t, dir)

	require.NoError(t, c.Start("one"))
	time.Sleep(150 * time.Millisecond)
	_, err := c.Stop()
	require.NoError(t, err)

	require.NoError(t, c.Start("two"))
	time.Sleep(150 * time.Millisecond)
	res, err := c.Stop()
	require.NoError(t, err)
	assert.Contains(t, res.Path, "two_")
}

func TestStopWithoutSession(t *testing.T) {
	c := newController(t, t.TempDir())

	_, err := c.Stop()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrNoSession))
}

func TestShutdownFlushesInFlightRecording(t *testing.T) {
	dir := t.TempDir()
	c := newController(t, dir)

	require.NoError(t, c.Start("flush me"))
	time.Sleep(150 * time.Millisecond)

	require.NoError(t, c.Shutdown())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "flush_me_")
	assert.Equal(t, session.StateIdle, c.Status().State)
}

func TestPermissionNoteSeedsIdleStatus(t *testing.T) {
	c := newController(t, t.TempDir(), session.WithPermissionNote(device.PermissionProbe{
		Status:  device.PermissionPromptRequired,
		Message: "grant input monitoring",
	}))

	assert.Equal(t, "grant input monitoring", c.Status().Message)
}
