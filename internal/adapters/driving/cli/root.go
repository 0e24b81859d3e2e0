// Package cli provides the swordfish command line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/swordfish/internal/core/ports/driving"
	"github.com/custodia-labs/swordfish/internal/logger"
)

// version is set by main from build flags.
var version = "dev"

// Services used by commands. They are installed by the bootstrap hook.
var (
	queryService    driving.QueryService
	indexService    driving.IndexService
	settingsService driving.SettingsService
)

// Persistent flag values.
var (
	verbose   bool
	configDir string
)

// Bootstrap builds the application for the given config directory and
// installs its services with SetServices and SetTUIConfig. An empty
// configDir selects the default location.
type Bootstrap func(ctx context.Context, configDir string) error

var bootstrap Bootstrap

var rootCmd = &cobra.Command{
	Use:   "swordfish",
	Short: "A keyboard-driven quick launcher for the terminal",
	Long: `swordfish is a quick launcher for files, applications, browser history
and scripts. Start typing to search, Tab to switch modes, Enter to open.

Run without a command to open the launcher.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
	RunE:              runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.config/swordfish)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap installs the hook that builds services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs the services used by commands.
func SetServices(query driving.QueryService, index driving.IndexService, settings driving.SettingsService) {
	queryService = query
	indexService = index
	settingsService = settings
}

// ExecuteContext runs the root command.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if bootstrap == nil {
		return nil
	}
	if err := bootstrap(cmd.Context(), configDir); err != nil {
		return fmt.Errorf("starting swordfish: %w", err)
	}
	return nil
}
