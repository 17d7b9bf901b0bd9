package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HarwaniDev/activity-tracker/internal/config"
	"github.com/HarwaniDev/activity-tracker/internal/device"
	"github.com/HarwaniDev/activity-tracker/internal/logger"
	"github.com/HarwaniDev/activity-tracker/internal/pidfile"
	"github.com/HarwaniDev/activity-tracker/internal/server"
	"github.com/HarwaniDev/activity-tracker/internal/session"
	"github.com/HarwaniDev/activity-tracker/internal/telemetry"
	"github.com/HarwaniDev/activity-tracker/internal/writer"
)

var cfg *config.Config

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Debug, cfg.Verbose, logger.IsService())
	logger.Debug().Msg("Config loaded")
}

func main() {
	if err := pidfile.Write(); err != nil {
		logger.Fatal().Err(err).Msg("failed to acquire PID file")
	}
	defer pidfile.Remove()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	var history telemetry.Collector
	if cfg.Telemetry {
		var err error
		history, err = telemetry.NewService(telemetry.Config{DBPath: cfg.TelemetryDB})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize session history")
		}
		defer history.Close()
	}

	opts := []session.Option{}
	if history != nil {
		opts = append(opts, session.WithHistory(history))
	}
	if cfg.PermissionPrompt {
		probe := device.ProbeInputMonitoring(nil)
		if probe.Message != "" {
			logger.Warn().Str("status", string(probe.Status)).Msg(probe.Message)
		}
		opts = append(opts, session.WithPermissionNote(probe))
	}

	controller := session.NewController(
		device.NewSimulated(0, 0),
		writer.New(writer.Config{OutputDir: cfg.OutputDir}),
		session.Config{
			Countdown: time.Duration(cfg.Countdown) * time.Second,
			Interval:  time.Duration(cfg.Interval) * time.Millisecond,
		},
		opts...,
	)

	srv := server.New(cfg.ListenAddr, controller)
	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Error().Err(err).Msg("surface error")
	}

	if err := controller.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("failed to flush in-flight session")
	}
	logger.Info().Msg("Exiting...")
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}
