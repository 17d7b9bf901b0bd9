package telemetry

import "github.com/HarwaniDev/activity-tracker/internal/errors"

const (
	defaultDirPerm = 0o755
	defaultDBPath  = "activitytracker.db"
)

type Config struct {
	DBPath string
}

func DefaultConfig() Config {
	return Config{
		DBPath: defaultDBPath,
	}
}

func (c Config) Validate() error {
	if c.DBPath == "" {
		return errors.New(ErrInvalidDBPath)
	}
	return nil
}
