package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Mech-Kal/nasasky/internal/config"
	"github.com/Mech-Kal/nasasky/internal/history"
	"github.com/Mech-Kal/nasasky/internal/render"
	"github.com/Mech-Kal/nasasky/internal/store"
)

var historyClear bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show saved searches, most recent first",
	Args:  cobra.NoArgs,
	RunE:  historyAction,
}

func init() {
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "forget all saved searches")
	rootCmd.AddCommand(historyCmd)
}

func historyAction(cmd *cobra.Command, _ []string) error {
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

	ctx := cmd.Context()

	if historyClear {
		if err := cache.Clear(ctx); err != nil {
			return err
		}
		fmt.Println("Search history cleared.")
		return nil
	}

	if _, err := cache.Load(ctx); err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	render.NewText(!noColor).History(os.Stdout, cache.MostRecentFirst())
	return nil
}
