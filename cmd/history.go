package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zjrosen/tsconv/internal/history"
)

var (
	historyLimit int
	historyAll   bool
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear recent conversions",
	Long: `Show the most recent conversions, newest first.

Examples:
  # The same three conversions the history panel shows
  tsconv history

  # Everything still kept
  tsconv history --all

  # Forget every conversion
  tsconv history --clear`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := openRuntime(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = rt.Close() }()

		limit := historyLimit
		if limit <= 0 {
			limit = cfg.History.Recent
		}
		opts := historyOptions{limit: limit, all: historyAll, clear: historyClear}
		return runHistory(cmd.Context(), rt.store, cmd.OutOrStdout(), opts)
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "number of conversions to show (default history.recent)")
	historyCmd.Flags().BoolVarP(&historyAll, "all", "a", false, "show every kept conversion")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "delete every conversion")
	historyCmd.MarkFlagsMutuallyExclusive("clear", "all")
	historyCmd.MarkFlagsMutuallyExclusive("clear", "limit")
	rootCmd.AddCommand(historyCmd)
}

type historyOptions struct {
	limit int
	all   bool
	clear bool
}

func runHistory(ctx context.Context, store *history.Store, w io.Writer, opts historyOptions) error {
	if opts.clear {
		if err := store.Clear(ctx); err != nil {
			return fmt.Errorf("clearing history: %w", err)
		}
		_, _ = fmt.Fprintln(w, "History cleared")
		return nil
	}

	n := opts.limit
	if opts.all {
		n = store.Limit()
	}
	records, err := store.Recent(ctx, n)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	if len(records) == 0 {
		_, _ = fmt.Fprintln(w, "No conversions yet")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "RECORDED\t_TS\tTIME")
	for _, r := range records {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\n",
			r.RecordedTime().Local().Format("2006-01-02 15:04:05"), r.OriginalValue, r.Time())
	}
	return tw.Flush()
}
