package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/fdg312/fitness-tracker/internal/metrics"
	"github.com/fdg312/fitness-tracker/internal/seed"
	"github.com/fdg312/fitness-tracker/internal/workouts"
	"github.com/spf13/cobra"
)

var (
	seedDays     int
	seedWorkouts int
	seedValue    uint64
	seedReset    bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample workouts and health metrics",
	Long: `Seed writes one health metric per day for the last --days days and
--workouts workouts spread evenly over the same span, drawn from four
templates (cardio, upper body strength, yoga, HIIT).

Use --reset to delete the owner's existing workouts first. Metrics are
upserted per day and simply overwritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedDays <= 0 || seedWorkouts < 0 {
			return fmt.Errorf("--days must be > 0 and --workouts >= 0")
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		if seedReset {
			n, err := seed.Reset(ctx, store, ownerID)
			if err != nil {
				return fmt.Errorf("failed to reset workouts: %w", err)
			}
			color.Yellow("✗ Deleted %d existing workouts", n)
		}

		if seedValue == 0 {
			seedValue = uint64(time.Now().UnixNano())
		}
		loc := cfg.Loc()
		gen := seed.NewGenerator(seedValue, time.Now(), loc)
		res, err := gen.Run(ctx, ownerID,
			workouts.NewService(store, loc),
			metrics.NewService(store, loc),
			seedDays, seedWorkouts)
		if err != nil {
			return err
		}

		color.Green("✓ Seeded %d health metrics and %d workouts", res.Metrics, res.Workouts)
		fmt.Printf("  %s owner=%s store=%s\n", color.New(color.Faint).Sprint("→"), ownerID, store.Name())
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVarP(&seedDays, "days", "d", seed.DefaultDays, "days of history to generate")
	seedCmd.Flags().IntVarP(&seedWorkouts, "workouts", "w", seed.DefaultWorkouts, "number of workouts")
	seedCmd.Flags().Uint64Var(&seedValue, "seed", 0, "random seed (default: time based)")
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "delete existing workouts first")
	rootCmd.AddCommand(seedCmd)
}
