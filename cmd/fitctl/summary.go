package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/fdg312/fitness-tracker/internal/analytics"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	summaryPeriod int
	summaryYAML   bool
)

var summaryCmd = &cobra.Command{
	Use:     "summary",
	Aliases: []string{"sum"},
	Short:   "Show workout analytics and the dashboard snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		svc := analyticsService()
		wa, err := svc.WorkoutAnalytics(ctx, ownerID, summaryPeriod)
		if err != nil {
			return err
		}
		dash, err := svc.ComputeDashboardSnapshot(ctx, ownerID)
		if err != nil {
			return err
		}

		if summaryYAML {
			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(map[string]interface{}{
				"periodDays": summaryPeriod,
				"workouts":   wa,
				"dashboard":  dash,
			})
		}

		printSummary(summaryPeriod, wa, dash)
		return nil
	},
}

func printSummary(days int, wa *analytics.WorkoutAnalytics, dash *analytics.Dashboard) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	bold.Printf("Last %d days\n", days)
	s := wa.Summary
	fmt.Printf("  %s %d   %s %.0f   %s %.0f min\n",
		faint.Sprint("workouts"), s.TotalWorkouts,
		faint.Sprint("calories"), s.TotalCalories,
		faint.Sprint("duration"), s.TotalDuration)
	fmt.Printf("  %s %.1f kcal   %s %.1f min\n",
		faint.Sprint("avg/workout"), s.AvgCaloriesPerWorkout,
		faint.Sprint("avg duration"), s.AvgDuration)

	if len(wa.CategoryBreakdown) > 0 {
		bold.Println("\nCategories")
		for _, c := range wa.CategoryBreakdown {
			fmt.Printf("  %-12s %3d  %s\n", c.Category, c.Count, faint.Sprintf("%.0f kcal", c.TotalCalories))
		}
	}

	bold.Println("\nToday")
	fmt.Printf("  %s %d   %s %.0f\n",
		faint.Sprint("workouts"), dash.Today.Workouts,
		faint.Sprint("calories"), dash.Today.Calories)
	fmt.Printf("  %s %d\n", faint.Sprint("workouts this week"), dash.ThisWeek.Workouts)

	if s.TotalWorkouts == 0 {
		color.Yellow("\nNo workouts in this period. Try 'fitctl seed'.")
	}
}

func init() {
	summaryCmd.Flags().IntVarP(&summaryPeriod, "period", "p", 30, "period in days")
	summaryCmd.Flags().BoolVar(&summaryYAML, "yaml", false, "print YAML instead of text")
	rootCmd.AddCommand(summaryCmd)
}
