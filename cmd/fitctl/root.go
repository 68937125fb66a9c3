package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fdg312/fitness-tracker/internal/analytics"
	"github.com/fdg312/fitness-tracker/internal/config"
	"github.com/fdg312/fitness-tracker/internal/owner"
	"github.com/fdg312/fitness-tracker/internal/storage"
	"github.com/fdg312/fitness-tracker/internal/storage/backend"
	"github.com/spf13/cobra"
)

var (
	cfg     *config.Config
	store   storage.Store
	ownerID owner.ID

	ownerFlag string
)

var rootCmd = &cobra.Command{
	Use:   "fitctl",
	Short: "Fitness tracker admin CLI",
	Long: `fitctl works directly against the configured record store
(DATABASE_URL, MONGODB_URI, or in-memory when neither is set).

EXAMPLES:

  fitctl seed --owner alice              # 30 days of metrics, 15 workouts
  fitctl summary --owner alice -p 7      # workout analytics for a week
  fitctl heatmap --owner alice --theme dark
  fitctl export --owner alice -f pdf -o report.pdf`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()

		raw := ownerFlag
		if raw == "" {
			raw = cfg.DefaultOwnerID
		}
		id, err := owner.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid owner %q: %w", raw, err)
		}
		ownerID = id

		store, err = backend.Open(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("failed to open %s store: %w", cfg.Backend(), err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&ownerFlag, "owner", "", "owner id (default DEFAULT_OWNER_ID)")
}

func analyticsService() *analytics.Service {
	return analytics.NewService(store, store, analytics.Options{
		Location:          cfg.Loc(),
		DefaultPeriodDays: cfg.AnalyticsDefaultPeriodDays,
		MaxPeriodDays:     cfg.AnalyticsMaxPeriodDays,
		DailyTrendMaxDays: cfg.DailyTrendMaxDays,
	})
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 2*time.Minute)
}
