// Package config loads settings from flags, environment, and an optional
// TOML file, with flags taking precedence over the file.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/HarwaniDev/activity-tracker/internal/errors"
)

const (
	// DefaultCountdown is the delay before sampling starts, in seconds.
	DefaultCountdown = 5
	// DefaultInterval is the sample interval in milliseconds (10 Hz).
	DefaultInterval = 100
	// DefaultListenAddr binds to localhost only; the surface is single-user.
	DefaultListenAddr = "127.0.0.1:8642"
	// DefaultTelemetryDB is the session history database path.
	DefaultTelemetryDB = "activitytracker.db"

	configEnvKey = "ACTIVITY_TRACKER_CONFIG"
	configName   = "activitytracker"
)

type Config struct {
	ListenAddr       string `mapstructure:"listen_addr"`
	Countdown        int    `mapstructure:"countdown"`
	Interval         int    `mapstructure:"interval"`
	OutputDir        string `mapstructure:"output_dir"`
	Telemetry        bool   `mapstructure:"telemetry"`
	TelemetryDB      string `mapstructure:"database"`
	PermissionPrompt bool   `mapstructure:"permission_prompt"`
	Debug            bool   `mapstructure:"debug"`
	Verbose          bool   `mapstructure:"verbose"`
}

// Load reads configuration from defaults, an optional TOML file, and
// command-line flags, in increasing order of precedence.
func Load() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	v := viper.New()

	v.SetDefault("listen_addr", DefaultListenAddr)
	v.SetDefault("countdown", DefaultCountdown)
	v.SetDefault("interval", DefaultInterval)
	v.SetDefault("output_dir", "")
	v.SetDefault("telemetry", false)
	v.SetDefault("database", DefaultTelemetryDB)
	v.SetDefault("permission_prompt", true)
	v.SetDefault("debug", false)
	v.SetDefault("verbose", false)

	flags := pflag.NewFlagSet(configName, pflag.ContinueOnError)
	flags.String("listen-addr", DefaultListenAddr, "Surface listen address")
	flags.Int("countdown", DefaultCountdown, "Seconds before sampling starts")
	flags.Int("interval", DefaultInterval, "Sample interval in milliseconds")
	flags.String("output-dir", "", "Output directory (default: Downloads)")
	flags.Bool("telemetry", false, "Enable session history storage")
	flags.String("database", DefaultTelemetryDB, "Session history database path")
	flags.Bool("permission-prompt", true, "Surface input-monitoring permission notes")
	flags.Bool("debug", false, "Enable debugging mode")
	flags.Bool("verbose", false, "Enable verbose logging")
	if err := flags.Parse(args); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfig, err)
	}

	// Load configuration from file
	if path := os.Getenv(configEnvKey); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "activitytracker"))
		}
		v.AddConfigPath("/etc")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(errors.ErrReadConfig, err)
		}
	}

	// Override config file values with command line flags
	flags.Visit(func(f *pflag.Flag) {
		key := flagKey(f.Name)
		v.Set(key, f.Value.String())
	})

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks timing values. Countdown and interval must be positive.
func (c *Config) Validate() error {
	if c.Countdown <= 0 {
		return errors.WithMessage(errors.ErrInvalidConfig, "countdown must be positive")
	}
	if c.Interval <= 0 {
		return errors.New(errors.ErrInvalidInterval)
	}
	if c.Telemetry && c.TelemetryDB == "" {
		return errors.WithMessage(errors.ErrInvalidConfig, "telemetry enabled without database path")
	}

	return nil
}

// flagKey maps a flag name to its config file key.
func flagKey(name string) string {
	switch name {
	case "listen-addr":
		return "listen_addr"
	case "output-dir":
		return "output_dir"
	case "permission-prompt":
		return "permission_prompt"
	default:
		return name
	}
}
