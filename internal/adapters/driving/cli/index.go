package cli

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/swordfish/internal/core/domain"
)

var indexWatch bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the file index",
	Long: `Walks the configured search directories and replaces the file index
used by Search mode.

With --watch the command keeps running and re-indexes whenever a search
directory changes.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVarP(&indexWatch, "watch", "w", false, "keep the index up to date until interrupted")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	ctx := cmd.Context()

	if indexWatch {
		cmd.Println("Watching search directories. Press Ctrl+C to stop.")
		if err := indexService.Watch(ctx); err != nil && !errors.Is(err, ctx.Err()) {
			return fmt.Errorf("watch failed: %w", err)
		}
		return nil
	}

	cmd.Println("Indexing search directories...")
	stats, err := indexService.Rebuild(ctx)
	if err != nil {
		return fmt.Errorf("index failed: %w", err)
	}
	printIndexStats(cmd, stats)

	return nil
}

func printIndexStats(cmd *cobra.Command, stats domain.IndexStats) {
	cmd.Printf("Indexed %s paths.\n", humanize.Comma(int64(stats.Paths)))
}
