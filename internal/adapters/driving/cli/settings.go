package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View the launcher, index, browser history and control endpoint settings.

Settings are stored as TOML. Edit the file shown by 'swordfish settings path'
or use the settings screen in the launcher (Alt+,).`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if settingsService == nil {
			return errors.New("settings service not configured")
		}
		cmd.Println(settingsService.Path())
		return nil
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Launcher]")
	cmd.Printf("  Launch shortcut: %s\n", settings.Launcher.LaunchShortcut)
	cmd.Printf("  Debounce: %s\n", settings.Launcher.Debounce)
	cmd.Printf("  Max results: %d\n", settings.Launcher.MaxResults)
	cmd.Printf("  Scripts directory: %s\n", orNotSet(settings.Launcher.ScriptsDir))
	cmd.Printf("  Quit on hide: %s\n", yesNo(settings.Launcher.HideQuits))
	cmd.Printf("  Hide on focus loss: %s\n", yesNo(settings.Launcher.HideOnBlur))
	cmd.Println()

	cmd.Println("[Index]")
	cmd.Printf("  Search directories: %s\n", orNotSet(strings.Join(settings.Index.SearchDirectories, ", ")))
	cmd.Printf("  Exclude: %s\n", orNotSet(strings.Join(settings.Index.Exclude, ", ")))
	cmd.Printf("  Max depth: %d\n", settings.Index.MaxDepth)
	cmd.Println()

	cmd.Println("[Browser History]")
	if len(settings.Browser.Databases) == 0 {
		cmd.Println("  Databases: (auto-detect)")
	}
	for _, db := range settings.Browser.Databases {
		cmd.Printf("  %s: %s\n", db.Kind.Description(), db.Path)
	}
	cmd.Println()

	cmd.Println("[Control Endpoint]")
	if settings.IPC.Addr == "" {
		cmd.Println("  Address: (disabled)")
	} else {
		cmd.Printf("  Address: http://%s/emit\n", settings.IPC.Addr)
	}
	cmd.Println()

	cmd.Printf("Settings file: %s\n", settingsService.Path())
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	defaults := settingsService.GetDefaults()
	if err := settingsService.Save(&defaults); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Settings restored to defaults.")
	return nil
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
