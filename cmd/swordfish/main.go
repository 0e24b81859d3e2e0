// Command swordfish is a keyboard-driven quick launcher for the terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/custodia-labs/swordfish/internal/adapters/driven/calculator"
	"github.com/custodia-labs/swordfish/internal/adapters/driven/config/file"
	"github.com/custodia-labs/swordfish/internal/adapters/driven/fswatch"
	"github.com/custodia-labs/swordfish/internal/adapters/driven/resolver"
	"github.com/custodia-labs/swordfish/internal/adapters/driven/shell"
	"github.com/custodia-labs/swordfish/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/swordfish/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/swordfish/internal/adapters/driven/window"
	"github.com/custodia-labs/swordfish/internal/adapters/driving/cli"
	"github.com/custodia-labs/swordfish/internal/adapters/driving/tui"
	"github.com/custodia-labs/swordfish/internal/core/ports/driven"
	"github.com/custodia-labs/swordfish/internal/core/services"
	"github.com/custodia-labs/swordfish/internal/logger"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.SetOutput(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	cli.SetVersion(version)

	var closers []io.Closer
	defer func() {
		for _, c := range closers {
			if err := c.Close(); err != nil {
				logger.Warn("close: %v", err)
			}
		}
	}()

	cli.SetBootstrap(func(_ context.Context, configDir string) error {
		c, err := wire(configDir)
		closers = append(closers, c...)
		return err
	})

	if err := cli.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

// wire builds every adapter and service and installs them in the CLI.
// It returns the resources to release on exit.
func wire(configDir string) ([]io.Closer, error) {
	if configDir == "" {
		dir, err := file.DefaultConfigDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore, configDir)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	var closers []io.Closer
	var index driven.IndexStore
	store, err := sqlite.NewStore(configDir)
	if err != nil {
		logger.Warn("file index unavailable, using in-memory index: %v", err)
		index = memory.NewIndexStore()
	} else {
		index = store
		closers = append(closers, store)
	}

	history := sqlite.NewHistoryReader(settings.Browser.Databases)
	engine := resolver.New(resolver.Config{
		MaxResults: settings.Launcher.MaxResults,
		ScriptsDir: settings.Launcher.ScriptsDir,
	}, index, history, calculator.New())

	indexService := services.NewIndexService(index, settingsService, fswatch.New(settings.Index.MaxDepth))
	cli.SetServices(services.NewQueryService(engine), indexService, settingsService)

	win := window.NewTerminal(settings.Launcher.HideQuits)
	session := services.NewSession(services.NewQueryChannel(engine), win, shell.New())

	cli.SetTUIConfig(&cli.TUIConfig{
		Ports: &tui.Ports{
			Session:    session,
			Dispatcher: services.NewDispatcher(session),
			Window:     win,
			Settings:   settingsService,
			Index:      indexService,
		},
		Options: tui.Options{
			Debounce:   settings.Launcher.Debounce,
			HideOnBlur: settings.Launcher.HideOnBlur,
		},
		ControlAddr: settings.IPC.Addr,
		LogPath:     filepath.Join(configDir, "swordfish.log"),
	})

	return closers, nil
}
