package device_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HarwaniDev/activity-tracker/internal/device"
)

func TestSimulatedStaysOnScreen(t *testing.T) {
	sim := device.NewSimulated(800, 600)

	for i := 0; i < 200; i++ {
		state, err := sim.Sample()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, state.MouseX, 0)
		assert.Less(t, state.MouseX, 800)
		assert.GreaterOrEqual(t, state.MouseY, 0)
		assert.Less(t, state.MouseY, 600)
	}
}

func TestSimulatedCyclesKeys(t *testing.T) {
	sim := device.NewSimulated(0, 0)

	sawKeys := false
	sawIdle := false
	for i := 0; i < 12; i++ {
		state, err := sim.Sample()
		require.NoError(t, err)
		if len(state.Keys) > 0 {
			sawKeys = true
		} else {
			sawIdle = true
		}
	}

	assert.True(t, sawKeys, "expected some samples with pressed keys")
	assert.True(t, sawIdle, "expected some samples with no pressed keys")
}

func TestFuncAdapter(t *testing.T) {
	dev := device.Func(func() (device.State, error) {
		return device.State{MouseX: 10, MouseY: 20, Keys: []string{"A"}}, nil
	})

	state, err := dev.Sample()
	require.NoError(t, err)
	assert.Equal(t, 10, state.MouseX)
	assert.Equal(t, 20, state.MouseY)
	assert.Equal(t, []string{"A"}, state.Keys)
}

func TestProbeInputMonitoringEnvOverride(t *testing.T) {
	lookup := func(value string, ok bool) device.LookupEnvFunc {
		return func(string) (string, bool) { return value, ok }
	}

	probe := device.ProbeInputMonitoring(lookup("granted", true))
	assert.Equal(t, device.PermissionGranted, probe.Status)

	probe = device.ProbeInputMonitoring(lookup("denied", true))
	assert.Equal(t, device.PermissionDenied, probe.Status)
	assert.NotEmpty(t, probe.Message)

	probe = device.ProbeInputMonitoring(lookup("maybe", true))
	assert.Equal(t, device.PermissionUnknown, probe.Status)
}
