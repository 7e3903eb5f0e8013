package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Mech-Kal/nasasky/internal/config"
	"github.com/Mech-Kal/nasasky/internal/history"
	"github.com/Mech-Kal/nasasky/internal/nasa"
	"github.com/Mech-Kal/nasasky/internal/render"
	"github.com/Mech-Kal/nasasky/internal/store"
)

var getCmd = &cobra.Command{
	Use:   "get <date>",
	Short: "Fetch the picture for a date (YYYY-MM-DD) and save the search",
	Args:  cobra.ExactArgs(1),
	RunE:  getAction,
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Fetch today's picture without saving it to the history",
	Args:  cobra.NoArgs,
	RunE:  todayAction,
}

func init() {
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(todayCmd)
}

func getAction(cmd *cobra.Command, args []string) error {
	return fetchAndPrint(cmd.Context(), args[0], true)
}

func todayAction(cmd *cobra.Command, _ []string) error {
	return fetchAndPrint(cmd.Context(), nasa.Today(), false)
}

// fetchAndPrint runs the pipeline shared by get and today: fetch, render,
// and - for explicit searches that succeeded - record the date.
func fetchAndPrint(ctx context.Context, date string, record bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client := nasa.NewClient(cfg.APIKey(), nasa.WithBaseURL(cfg.API.BaseURL))
	formatter := render.NewText(!noColor)

	fetchCtx, cancel := context.WithTimeout(ctx, cfg.API.Timeout.Duration)
	defer cancel()

	pic, err := client.Picture(fetchCtx, date)
	if err != nil {
		// Lookup failures are part of normal operation: render them,
		// don't exit nonzero through cobra's error path.
		formatter.Error(os.Stdout, date, err)
		return nil
	}

	formatter.Picture(os.Stdout, pic)

	if !record {
		return nil
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
	if _, err := cache.Load(ctx); err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if _, err := cache.Record(ctx, date); err != nil {
		return fmt.Errorf("record search: %w", err)
	}
	return nil
}
