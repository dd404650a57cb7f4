package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/milk9111/spacesurvival/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "config.yaml", "path to the config file")
	debug := flag.Bool("debug", false, "show the debug overlay and log at debug level")
	slot := flag.String("slot", "", "save slot name (overrides config)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *debug {
		cfg.Logging.Level = "debug"
	}
	if *slot != "" {
		cfg.Save.Slot = *slot
	}

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		}); err != nil {
			log.Warn("sentry disabled", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}
	defer func() {
		if r := recover(); r != nil {
			sentry.CurrentHub().Recover(r)
			sentry.Flush(2 * time.Second)
			panic(r)
		}
	}()

	if *baseMonitor {
		if m, ok := firstMonitor(ebiten.AppendMonitors(nil)); ok {
			ebiten.SetMonitor(m)
		} else {
			log.Warn("no monitor reported, keeping default placement")
		}
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowClosingHandled(true)

	game, err := NewGame(cfg, log, *debug)
	if err != nil {
		return fmt.Errorf("new game: %w", err)
	}
	defer game.Close()

	log.Info("starting",
		zap.String("slot", cfg.Save.Slot),
		zap.String("tool", cfg.Player.Tool),
		zap.Bool("hot_reload", cfg.Prefabs.HotReload),
	)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func firstMonitor(monitors []*ebiten.MonitorType) (*ebiten.MonitorType, bool) {
	if len(monitors) == 0 {
		return nil, false
	}
	return monitors[0], true
}
