package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/abelbrown/touchline/internal/config"
	"github.com/abelbrown/touchline/internal/logging"
	"github.com/abelbrown/touchline/internal/store"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	flagRecentLimit    int
	flagPruneOlderThan  string
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect the local log of API requests",
	Long: `touchline records one row per API request (endpoint, status, outcome,
size and latency) in a local sqlite journal. Response bodies are never stored.`,
}

var journalStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show request counts, failures and latency per endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cfg, err := journalFromConfig()
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Journal: %s\n", cfg.Journal.Path)
		if len(stats) == 0 {
			fmt.Fprintln(out, "No requests recorded yet.")
			return nil
		}

		t := newTable("Endpoint", "Requests", "Failures", "Avg", "Last status", "Last request")
		for _, s := range stats {
			t.Row(
				s.Endpoint,
				strconv.Itoa(s.Requests),
				strconv.Itoa(s.Failures),
				s.AvgDuration.String(),
				statusText(s.LastStatus),
				humanize.Time(s.LastAt),
			)
		}
		fmt.Fprintln(out, t.Render())
		return nil
	},
}

var journalRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List the most recent requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := journalFromConfig()
		if err != nil {
			return err
		}
		defer st.Close()

		attempts, err := st.Recent(cmd.Context(), flagRecentLimit)
		if err != nil {
			return fmt.Errorf("reading journal: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(attempts) == 0 {
			fmt.Fprintln(out, "No requests recorded yet.")
			return nil
		}

		t := newTable("When", "Endpoint", "Outcome", "Status", "Size", "Took", "Request ID")
		for _, a := range attempts {
			t.Row(
				humanize.Time(a.At),
				a.Endpoint,
				string(a.Outcome),
				statusText(a.Status),
				humanize.Bytes(uint64(max(a.Bytes, 0))),
				a.Duration.String(),
				a.RequestID,
			)
		}
		fmt.Fprintln(out, t.Render())
		return nil
	},
}

var journalPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete journal rows older than the retention period",
	Long: `Delete journal rows older than the retention period.

Uses journal.retention from config (default: 7d) unless overridden with --older-than.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cfg, err := journalFromConfig()
		if err != nil {
			return err
		}
		defer st.Close()

		retention := cfg.Journal.Retention
		if flagPruneOlderThan != "" {
			d, err := parseAge(flagPruneOlderThan)
			if err != nil {
				return fmt.Errorf("invalid --older-than value: %w", err)
			}
			retention = d
		}

		deleted, err := st.Prune(cmd.Context(), time.Now().Add(-retention))
		if err != nil {
			return fmt.Errorf("pruning: %w", err)
		}

		out := cmd.OutOrStdout()
		if deleted == 0 {
			fmt.Fprintln(out, "Nothing to prune.")
		} else {
			fmt.Fprintf(out, "Pruned %d request(s) older than %s.\n", deleted, formatAge(retention))
		}
		return nil
	},
}

func init() {
	journalRecentCmd.Flags().IntVarP(&flagRecentLimit, "limit", "n", 20, "number of requests to show")
	journalPruneCmd.Flags().StringVar(&flagPruneOlderThan, "older-than", "", "override retention period (e.g., 30d, 720h)")

	journalCmd.AddCommand(journalStatsCmd)
	journalCmd.AddCommand(journalRecentCmd)
	journalCmd.AddCommand(journalPruneCmd)
}

func journalFromConfig() (*store.Store, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	st, err := openJournal(cfg)
	if err != nil {
		return nil, nil, err
	}
	return st, cfg, nil
}

// pruneJournal trims the journal to the configured retention on startup.
func pruneJournal(ctx context.Context, st *store.Store, cfg *config.Config) {
	if cfg.Journal.Retention <= 0 {
		return
	}
	n, err := st.Prune(ctx, time.Now().Add(-cfg.Journal.Retention))
	if err != nil {
		logging.Warn("journal prune failed", "err", err)
		return
	}
	if n > 0 {
		logging.Info("journal pruned", "rows", n, "retention", cfg.Journal.Retention)
	}
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(headers...)
}

func statusText(status int) string {
	if status == 0 {
		return "-"
	}
	return strconv.Itoa(status)
}

// parseAge accepts Go durations plus a day suffix: "7d", "36h", "90m".
func parseAge(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}

func formatAge(d time.Duration) string {
	if days := int(d.Hours() / 24); days > 0 && d%(24*time.Hour) == 0 {
		return fmt.Sprintf("%dd", days)
	}
	return d.String()
}
