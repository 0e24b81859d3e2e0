package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/swordfish/internal/core/domain"
)

var (
	queryMode  string
	queryLimit int
	queryJSON  bool
)

// isTerminal reports whether w is an interactive terminal.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Run a launcher query and print the results",
	Long: `Resolves a query the same way the launcher does and prints the results.

Modes: Search (files and applications), BrowserHistory, Scripts, Chat.
Arithmetic such as "2*(3+4)" yields a calculator result in every mode.
Results are printed as JSON when --json is set or stdout is not a terminal.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVarP(&queryMode, "mode", "m", domain.ModeSearch.String(), "query mode")
	queryCmd.Flags().IntVarP(&queryLimit, "limit", "n", 10, "maximum number of results (0 = no limit)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	mode, err := domain.ParseQueryMode(queryMode)
	if err != nil {
		return err
	}

	q := domain.Query{Mode: mode, SearchString: strings.Join(args, " ")}
	resp, err := queryService.Query(cmd.Context(), q, queryLimit)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON || !isTerminal(cmd.OutOrStdout()) {
		return outputQueryJSON(cmd, resp)
	}

	return outputQueryTable(cmd, resp)
}

func outputQueryJSON(cmd *cobra.Command, resp *domain.QueryResponse) error {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func outputQueryTable(cmd *cobra.Command, resp *domain.QueryResponse) error {
	out := cmd.OutOrStdout()
	if len(resp.Results) == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}

	// Results go to stdout so they can be piped.
	for i := range resp.Results {
		e := &resp.Results[i]
		// Format: [N] Heading (Kind)
		fmt.Fprintf(out, "  [%d] %s (%s)\n", i+1, e.Heading, e.Kind())
		if e.Subheading != "" && e.Subheading != e.Heading {
			fmt.Fprintf(out, "      %s\n", e.Subheading)
		}
	}

	return nil
}
