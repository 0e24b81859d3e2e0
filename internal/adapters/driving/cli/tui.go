package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/swordfish/internal/adapters/driving/ipc"
	"github.com/custodia-labs/swordfish/internal/adapters/driving/tui"
	"github.com/custodia-labs/swordfish/internal/logger"
)

// TUIConfig holds configuration for the TUI command.
type TUIConfig struct {
	Ports   *tui.Ports
	Options tui.Options

	// ControlAddr is where the control endpoint listens. Empty disables it.
	ControlAddr string

	// LogPath receives log output while the launcher owns the terminal.
	LogPath string
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the launcher",
	Long: `Open the interactive launcher.

Controls:
  Tab / Shift+Tab  - Next / previous mode
  ↑/Ctrl+P, ↓/Ctrl+N - Move selection (↑ on the first row recalls history)
  Enter            - Open the selected result
  Alt+1..9         - Open the numbered result
  Alt+Shift+C      - Copy the selected value
  Alt+,            - Settings
  Esc              - Clear and hide
  Ctrl+C           - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	if tuiConfig == nil || tuiConfig.Ports == nil {
		return errors.New("launcher not configured")
	}

	if tuiConfig.LogPath != "" {
		f, err := os.OpenFile(tuiConfig.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logger.SetOutput(f)
		defer logger.SetOutput(os.Stderr)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	app, err := tui.NewApp(tuiConfig.Ports, tuiConfig.Options)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx)

	log := logger.Component("cli")

	// Keep the index fresh while the launcher runs.
	if indexService != nil {
		go func() {
			if err := indexService.Watch(ctx); err != nil && ctx.Err() == nil {
				log.Warn().Err(err).Msg("index watcher stopped")
			}
		}()
	}

	p := app.Program()

	if tuiConfig.ControlAddr != "" {
		server, err := ipc.NewServer(tuiConfig.ControlAddr, p)
		if err != nil {
			return fmt.Errorf("creating control endpoint: %w", err)
		}
		// A busy port only costs the external hotkey; the launcher still runs.
		if err := server.Start(); err != nil {
			log.Warn().Err(err).Msg("control endpoint disabled")
		} else {
			defer server.Stop() //nolint:errcheck
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
