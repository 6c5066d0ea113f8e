package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/teniciavanaalten/simlog/internal/logbook"
	"github.com/teniciavanaalten/simlog/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "simlog",
	Short: "Flight simulator session and maintenance log",
	Long:  "SimLog records simulator training sessions, squawks and maintenance, and summarizes them for the owner.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loadDotEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SIMLOG_DB env var)")

	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(issueCmd)
	rootCmd.AddCommand(maintenanceCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadDotEnv reads .env from the working directory when one exists.
// Variables already set in the environment win.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: load .env: %v\n", err)
	}
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then SIMLOG_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the database selected by resolveDBPath. The caller
// closes it.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// withService runs fn against a logbook service on the selected database.
func withService(cmd *cobra.Command, fn func(*logbook.Service) error) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(logbook.NewService(s))
}
