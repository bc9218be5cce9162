package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertwitch/piso/internal/configuration"
	"github.com/desertwitch/piso/internal/controller"
	"github.com/desertwitch/piso/internal/schema"
	"github.com/desertwitch/piso/internal/ui"
	"github.com/lmittmann/tint"
)

//nolint:gochecknoglobals
var (
	ExitCode = 0
	Version  string

	uiEnabled  = flag.Bool("ui", true, "enable the UI")
	configFile = flag.String("config", configuration.DefaultConfigFile, "configuration file")
	listOnly   = flag.Bool("list", false, "list the drives and exit")
)

func setupLogging() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
		}),
	))
}

func setupSignalHandlers(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-sigChan
		cancel()
	}()
}

func main() {
	defer func() {
		os.Exit(ExitCode)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flag.Parse()
	setupLogging()
	setupSignalHandlers(cancel)

	slog.Info("Starting up...", "version", Version)

	configHandler := configuration.NewHandler(&configuration.GodotenvProvider{})

	config, err := configHandler.LoadAppConfiguration(*configFile)
	if err != nil {
		slog.Error("Failed to load the configuration.",
			"path", *configFile,
			"err", err,
		)
		ExitCode = 1

		return
	}

	store, err := newStore(config, &schema.OS{}, &schema.Unix{}, &schema.Exec{})
	if err != nil {
		slog.Error("Failed to establish the volume store.",
			"backend", config.Backend,
			"err", err,
		)
		ExitCode = 1

		return
	}

	ctrl := controller.New(store, controller.Options{
		DefaultDriveSize: config.DefaultDriveSize,
		ReservedSpace:    config.ReservedSpace,
		Width:            config.DisplayWidth,
		Height:           config.DisplayHeight,
	})

	if err := ctrl.RebuildFromVolumes(); err != nil {
		slog.Error("Failed to read the existing drives.",
			"backend", config.Backend,
			"err", err,
		)
		ExitCode = 1

		return
	}

	app := NewApp(ctrl)

	if *listOnly {
		app.List(os.Stdout)

		return
	}

	if uiEnabled != nil && *uiEnabled {
		uiHandler := ui.NewHandler(ctx, cancel, ctrl)

		err := uiHandler.Launch()
		if err == nil || ctx.Err() != nil {
			return
		}
		slog.Error("UI failure: falling back to terminal.", "err", err)
	}

	if err := app.RunHeadless(ctx, os.Stdin, os.Stdout); err != nil {
		slog.Error("Menu loop failed.", "err", err)
		ExitCode = 1
	}
}
