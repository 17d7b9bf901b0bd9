// Package sampler polls the input device at a fixed rate and accumulates
// activity records for the life of one recording.
package sampler

import (
	"context"
	"time"

	"github.com/HarwaniDev/activity-tracker/internal/activity"
	"github.com/HarwaniDev/activity-tracker/internal/device"
	"github.com/HarwaniDev/activity-tracker/internal/errors"
	"github.com/HarwaniDev/activity-tracker/internal/logger"
)

// DefaultInterval is the nominal sample interval (10 Hz).
const DefaultInterval = 100 * time.Millisecond

// Config controls sampling cadence.
type Config struct {
	Interval time.Duration
	Clock    func() time.Time
}

// Sampler reads device state on a ticker and owns the record buffer until
// Run returns it.
type Sampler struct {
	device   device.Device
	interval time.Duration
	clock    func() time.Time
}

// New validates the configuration and constructs a sampler.
func New(dev device.Device, cfg Config) (*Sampler, error) {
	if dev == nil {
		return nil, errors.WithMessage(errors.ErrInvalidArgument, "device must not be nil")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New(errors.ErrInvalidInterval)
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Sampler{
		device:   dev,
		interval: cfg.Interval,
		clock:    clock,
	}, nil
}

// Run samples until ctx is cancelled and returns the accumulated records.
// The returned slice is owned by the caller; the sampler keeps no reference.
// Device read failures skip that sample without producing a record.
func (s *Sampler) Run(ctx context.Context) []activity.Record {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var records []activity.Record
	for {
		select {
		case <-ctx.Done():
			logger.Debug().Int("samples", len(records)).Msg("sampler stopped")
			return records
		case <-ticker.C:
			state, err := s.device.Sample()
			if err != nil {
				logger.Debug().Err(err).Msg("device read failed, skipping sample")
				continue
			}

			records = append(records, activity.Record{
				Timestamp: s.clock().Unix(),
				MouseX:    state.MouseX,
				MouseY:    state.MouseY,
				Keys:      append([]string(nil), state.Keys...),
			})
		}
	}
}
