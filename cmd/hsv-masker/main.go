package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"hsv-masker/internal/app"
	"hsv-masker/internal/cli"
	"hsv-masker/internal/config"
	"hsv-masker/internal/controllers"
	"hsv-masker/internal/debug/timing"
	"hsv-masker/internal/logger"
	"hsv-masker/internal/opencv"
	"hsv-masker/internal/opencv/conversion"
	"hsv-masker/internal/pipeline"
	"hsv-masker/internal/processing"
	"hsv-masker/internal/services"
	"hsv-masker/internal/shutdown"

	"github.com/rs/zerolog"
)

const shutdownStepTimeout = 5 * time.Second

func main() {
	opts, err := cli.Parse(os.Args[0], os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		log.Fatalf("hsv-masker: %v", err)
	}
}

func run(opts *cli.Options) error {
	cfg, cfgErr := loadConfig(opts)

	appLogger, err := newLogger(cfg.LogLevel, opts.LogJSON)
	if err != nil {
		return err
	}
	if cfgErr != nil {
		appLogger.Warning("Main", "config problems, using defaults where needed", map[string]interface{}{
			"error": cfgErr.Error(),
		})
	}

	tracker := timing.NewTracker(timing.DefaultHistory)
	store := services.NewImageService(appLogger, tracker, cfg.JPEGQuality)
	backend := newBackend(cfg.Backend, store, appLogger)

	controller := controllers.NewMaskingController(backend, store, appLogger, tracker)
	if err := controller.SetRange(cfg.InitialRange); err != nil {
		return err
	}

	if cfg.AsyncRecompute {
		controller.SetScheduler(pipeline.NewScheduler(appLogger))
	}

	shutdownMgr := shutdown.NewManager(appLogger, shutdownStepTimeout)
	shutdownMgr.Register("timing", shutdown.Func(func() {
		logTimings(appLogger, tracker)
	}))
	if closer, ok := backend.(shutdown.Shutdownable); ok {
		shutdownMgr.Register("backend", closer)
	}
	shutdownMgr.Register("controller", controller)

	appLogger.Info("Main", "starting", map[string]interface{}{
		"backend":  backend.Name(),
		"async":    cfg.AsyncRecompute,
		"range":    cfg.InitialRange.String(),
		"headless": opts.Headless(),
	})

	if opts.Headless() {
		defer shutdownMgr.Shutdown()
		shutdownMgr.Listen(nil)
		return cli.RunHeadless(shutdownMgr.Context(), controller, opts, appLogger)
	}

	app.NewApplication(cfg, controller, shutdownMgr, appLogger).Run()
	return nil
}

func loadConfig(opts *cli.Options) (*config.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			cfg := config.DefaultConfig()
			opts.Apply(cfg)
			return cfg, errors.Join(err, cfg.Validate())
		}
	}

	cfg, err := config.Load(path)
	opts.Apply(cfg)
	return cfg, errors.Join(err, cfg.Validate())
}

func newLogger(level string, jsonOutput bool) (logger.Logger, error) {
	lvl, err := logger.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano
	if jsonOutput {
		return logger.NewZerolog(os.Stderr, lvl), nil
	}
	return logger.NewConsoleLogger(lvl), nil
}

func newBackend(name string, store *services.ImageService, log logger.Logger) processing.Backend {
	if name == processing.BackendOpenCV {
		store.SetDecoder(conversion.Decode)
		return opencv.NewBackend(log)
	}
	return processing.NewNative()
}

func logTimings(log logger.Logger, tracker *timing.Tracker) {
	for _, op := range tracker.Operations() {
		stats := tracker.Summary(op)
		log.Debug("Main", "timing", map[string]interface{}{
			"operation": op,
			"count":     stats.Count,
			"average":   stats.Average.String(),
			"max":       stats.Max.String(),
		})
	}
}
