package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/reqx/packages/core/config"
	"github.com/abdul-hamid-achik/reqx/packages/history"
)

var (
	historyLimitFlag int
	historyShowFlag  string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past runs",
	Long: `Show runs recorded with --history.

Examples:
  reqx history
  reqx history --limit 5
  reqx history --show <run-id>`,
	RunE: historyCommand,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimitFlag, "limit", 20, "Maximum number of runs to show")
	historyCmd.Flags().StringVar(&historyShowFlag, "show", "", "Show the requests of a specific run")
	historyCmd.Flags().StringVar(&configFlag, "config", getEnvString("REQX_CONFIG", ""), "Path to config file (env: REQX_CONFIG)")
}

func historyCommand(cmd *cobra.Command, args []string) error {
	fileConfig, err := config.LoadConfig(configFlag)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	path := fileConfig.HistoryPath
	if path == "" {
		path, err = history.DefaultPath()
		if err != nil {
			return err
		}
	}

	if _, err := os.Stat(path); err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "No history yet. Run with --history to start recording.")
		return nil
	}

	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if historyShowFlag != "" {
		return showRun(cmd, ctx, store, historyShowFlag)
	}

	runs, err := store.Recent(ctx, historyLimitFlag)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFILE\tWHEN\tREQUESTS\tDURATION")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%dms\n",
			run.ID[:8], run.File, run.StartedAt.Local().Format(time.DateTime),
			run.Executed, run.Total, run.DurationMs)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, ctx context.Context, store *history.Store, runID string) error {
	// Accept the short prefix shown by the list view.
	runs, err := store.Recent(ctx, 1000)
	if err != nil {
		return err
	}

	var fullID string
	for _, run := range runs {
		if run.ID == runID || (len(runID) >= 8 && len(run.ID) >= len(runID) && run.ID[:len(runID)] == runID) {
			fullID = run.ID
			break
		}
	}
	if fullID == "" {
		return fmt.Errorf("no run found with ID %s", runID)
	}

	records, err := store.Requests(ctx, fullID)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tMETHOD\tURL\tSTATUS\tDURATION")
	for _, rec := range records {
		status := fmt.Sprintf("%d", rec.Status)
		if rec.DryRun {
			status = "dry-run"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%dms\n", rec.Index, rec.Method, rec.URL, status, rec.DurationMs)
	}
	return w.Flush()
}
