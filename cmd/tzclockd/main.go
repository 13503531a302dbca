// Package main is the entry point for the tzclockd desktop clock panel.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"github.com/jmylchreest/tzclock/internal/audio"
	"github.com/jmylchreest/tzclock/internal/clock"
	"github.com/jmylchreest/tzclock/internal/config"
	"github.com/jmylchreest/tzclock/internal/daemon"
	"github.com/jmylchreest/tzclock/internal/dbus"
	"github.com/jmylchreest/tzclock/internal/display"
	"github.com/jmylchreest/tzclock/internal/scheduler"
	"github.com/jmylchreest/tzclock/internal/theme"
)

const (
	appID   = "io.github.jmylchreest.tzclockd"
	appName = "tzclockd"
)

var (
	// Build-time variables
	version = "dev"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: ~/.config/tzclock/config.toml)")
	verbose := flag.Bool("v", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		println(appName+" version", version)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	path := *configPath
	if path == "" {
		var err error
		path, err = config.ConfigPath()
		if err != nil {
			logger.Error("failed to get config path", "error", err)
			os.Exit(1)
		}
	}

	os.Exit(run(path, logger))
}

// run starts the GTK application and returns its exit status.
func run(configPath string, logger *slog.Logger) int {
	logger.Info("starting tzclockd", "version", version, "config", configPath)

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return 1
	}

	themesDir, err := config.ThemesDir()
	if err != nil {
		logger.Warn("failed to get themes directory", "error", err)
	}

	app := adw.NewApplication(appID, 0)

	// Owned by the GTK main loop.
	var (
		panel       *display.Panel
		appState    *clock.AppState
		themeLoader = theme.NewLoader(themesDir, logger)
		formatter   = clock.NewFormatter(logger)
	)

	// Shared with the scheduler goroutine.
	var (
		chime   atomic.Pointer[audio.Chime]
		running atomic.Bool
	)

	player := audio.NewPlayer(logger)
	busClient := dbus.NewClient(logger)
	notifier := daemon.NewNotifier(busClient, logger)
	sched := scheduler.New(cfg.Refresh.Interval.Duration(), logger)
	configWatcher := daemon.NewConfigWatcher(configPath, themesDir, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received signal, shutting down", "signal", sig)
			cancel()
			glib.IdleAdd(app.Quit)
		case <-ctx.Done():
		}
	}()

	applyChime := func(cfg *config.Config) {
		notifier.SetEnabled(cfg.Notify.Enabled)
		if !cfg.Chime.Enabled {
			chime.Store(nil)
			return
		}
		loc, err := formatter.Resolve(cfg.ChimeTimezone())
		if err != nil {
			logger.Warn("chime timezone invalid, using UTC", "timezone", cfg.ChimeTimezone(), "error", err)
		}
		player.SetVolume(cfg.Chime.Volume)
		if err := player.Preload(cfg.ChimeSound()); err != nil {
			logger.Warn("failed to preload chime sound", "path", cfg.ChimeSound(), "error", err)
		}
		chime.Store(audio.NewChime(player, cfg.ChimeSound(), loc, logger))
	}

	// tick refreshes the panel on the GTK loop and waits for the update to
	// finish, so the scheduler re-arms only after the labels are drawn.
	tick := func(ctx context.Context) {
		done := make(chan []clock.State, 1)
		glib.IdleAdd(func() {
			if !running.Load() || appState == nil {
				done <- nil
				return
			}
			states := appState.Tick()
			panel.Render(states)
			done <- states
		})

		var states []clock.State
		select {
		case states = <-done:
		case <-ctx.Done():
			return
		}

		notifier.ReportClockErrors(states)
		if c := chime.Load(); c != nil {
			c.Observe(time.Now())
		}
	}

	app.ConnectActivate(func() {
		if running.Load() {
			logger.Warn("application already running")
			return
		}

		applyColorScheme(cfg)

		clocks := cfg.ClockConfigs()
		stylesheet := themeLoader.Load(cfg.Theme.Name).Stylesheet(clocks)

		var err error
		panel, err = display.NewPanel(&app.Application, cfg, stylesheet, logger)
		if err != nil {
			logger.Error("failed to create panel", "error", err)
			app.Quit()
			return
		}
		appState = clock.NewAppState(clocks, formatter, clock.SystemSource{}, logger)
		panel.Render(appState.Tick())
		panel.Show()
		running.Store(true)

		applyChime(cfg)

		configWatcher.SetReloadCallback(func(newCfg *config.Config) {
			glib.IdleAdd(func() {
				if !running.Load() {
					return
				}
				applyColorScheme(newCfg)
				clocks := newCfg.ClockConfigs()
				panel.ApplyConfig(newCfg, themeLoader.Load(newCfg.Theme.Name).Stylesheet(clocks))
				appState = clock.NewAppState(clocks, formatter, clock.SystemSource{}, logger)
				panel.Render(appState.Tick())
			})
			if err := sched.SetInterval(newCfg.Refresh.Interval.Duration()); err != nil {
				logger.Warn("failed to update refresh interval", "error", err)
			}
			applyChime(newCfg)
			go notifier.NotifyConfigReloaded()
		})
		configWatcher.SetErrorCallback(func(err error) {
			go notifier.NotifyConfigError(err)
		})
		if err := configWatcher.Start(ctx, cfg); err != nil {
			logger.Warn("config hot-reload disabled", "error", err)
		}

		if err := sched.Start(ctx, tick); err != nil {
			logger.Error("failed to start refresh loop", "error", err)
			app.Quit()
			return
		}

		logger.Info("tzclockd started",
			"clocks", len(clocks),
			"interval", sched.Interval(),
			"anchor", cfg.Anchor(),
		)
	})

	app.ConnectShutdown(func() {
		logger.Info("shutting down")
		running.Store(false)
		cancel()
		sched.Stop()
		configWatcher.Stop()
		player.Close()
		_ = busClient.Close()
		if panel != nil {
			panel.Close()
		}
	})

	status := app.Run(os.Args[:1])
	if status != 0 {
		logger.Error("application exited with error", "status", status)
		return status
	}

	logger.Info("tzclockd stopped")
	return 0
}

// applyColorScheme sets the libadwaita color scheme from config.
func applyColorScheme(cfg *config.Config) {
	styleManager := adw.StyleManagerGetDefault()
	switch config.ColorScheme(cfg.Theme.ColorScheme) {
	case config.ColorSchemeLight:
		styleManager.SetColorScheme(adw.ColorSchemeForceLight)
	case config.ColorSchemeDark:
		styleManager.SetColorScheme(adw.ColorSchemeForceDark)
	default:
		styleManager.SetColorScheme(adw.ColorSchemeDefault)
	}
}
