// Package cli provides the command-line interface for nasasky.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mech-Kal/nasasky/internal/config"
	"github.com/Mech-Kal/nasasky/internal/history"
	"github.com/Mech-Kal/nasasky/internal/nasa"
	"github.com/Mech-Kal/nasasky/internal/store"
	"github.com/Mech-Kal/nasasky/internal/tui"
)

// Version and Commit are set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
)

var (
	configPath string
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "nasasky",
	Short: "Browse NASA's Astronomy Picture of the Day",
	Long: "nasasky looks up NASA's Astronomy Picture of the Day for any date,\n" +
		"keeps a short history of your searches, and lets you revisit them\n" +
		"from an interactive terminal viewer.",
	RunE: rootAction,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("nasasky %s (%s)\n", Version, Commit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI colors")
	rootCmd.AddCommand(versionCmd)
}

func rootAction(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = db.Close() }()

	cache, err := history.New(db, cfg.History.Limit)
	if err != nil {
		return fmt.Errorf("create history: %w", err)
	}

	client := nasa.NewClient(cfg.APIKey(), nasa.WithBaseURL(cfg.API.BaseURL))

	return tui.Run(tui.RunOpts{
		Client:  client,
		Cache:   cache,
		Timeout: cfg.API.Timeout.Duration,
	})
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
