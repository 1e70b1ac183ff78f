package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abelbrown/touchline/internal/config"
	"github.com/abelbrown/touchline/internal/fetch"
	"github.com/abelbrown/touchline/internal/logging"
	"github.com/abelbrown/touchline/internal/store"
	"github.com/abelbrown/touchline/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagRoute   string
	flagBaseURL string
)

var rootCmd = &cobra.Command{
	Use:   "touchline",
	Short: "Terminal dashboard for football fixtures and tables",
	Long: `touchline shows upcoming fixtures, live matches, league standings and
team lists from a football data API in your terminal.

The API base URL defaults to http://localhost:5000/api and can be set with
--base-url, TOUCHLINE_API_BASE or api.base_url in the config file.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default ~/.touchline/config.yaml)")
	rootCmd.Flags().StringVar(&flagRoute, "route", "/", "screen to open: /, /standings/<code> or /teams/<code>")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "override the API base URL")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(configCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "touchline %s (commit: %s, built: %s)\n",
			version, commit, date)
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig applies command-line overrides on top of config.Load.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagBaseURL != "" {
		cfg.API.BaseURL = flagBaseURL
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func openJournal(cfg *config.Config) (*store.Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Journal.Path), 0755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}
	st, err := store.Open(cfg.Journal.Path)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	return st, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	route, ok := ui.ParseRoute(flagRoute)
	if !ok {
		return fmt.Errorf("unknown route %q (want /, /standings/<code> or /teams/<code>)", flagRoute)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := logging.Init(cfg.Log.Dir, cfg.Log.Level); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logging.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	ring := fetch.NewRing(fetch.DefaultRingSize)
	recorders := []fetch.Recorder{ring}
	if !cfg.Journal.Disable {
		st, err := openJournal(cfg)
		if err != nil {
			// The dashboard works without its journal.
			logging.Warn("journal unavailable", "path", cfg.Journal.Path, "err", err)
		} else {
			defer st.Close()
			pruneJournal(ctx, st, cfg)
			recorders = append(recorders, st)
		}
	}

	client := fetch.NewClient(cfg.Client(), fetch.WithRecorder(fetch.Tee(recorders...)))
	if l := logging.WithPrefix("startup"); l != nil {
		l.Info("dashboard ready", "base", client.BaseURL(), "route", route.Path(), "window", cfg.UI.WindowSize)
	}

	app := ui.NewApp(ctx, client, ui.Options{
		Start:      route,
		WindowSize: cfg.UI.WindowSize,
		Requests:   ring,
	})

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if !cfg.UI.Inline {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(app, progOpts...).Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
