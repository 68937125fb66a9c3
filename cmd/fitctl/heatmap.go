package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/fdg312/fitness-tracker/internal/heatmap"
	"github.com/spf13/cobra"
)

var heatmapTheme string

// levelColors mirror the web palettes closely enough for a terminal.
var levelColors = map[heatmap.Theme][5]*color.Color{
	heatmap.ThemeLight: {
		color.New(color.FgWhite, color.Faint),
		color.New(color.FgGreen),
		color.New(color.FgYellow),
		color.New(color.FgHiYellow, color.Bold),
		color.New(color.FgRed, color.Bold),
	},
	heatmap.ThemeDark: {
		color.New(color.FgCyan, color.Faint),
		color.New(color.FgHiGreen),
		color.New(color.FgYellow),
		color.New(color.FgHiRed),
		color.New(color.FgHiMagenta, color.Bold),
	},
}

var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Print the one-year workout intensity heatmap",
	Long: `Heatmap prints one column per week (Sunday first) for the year
ending today, shading each day by intensity level 0-4, followed by the
streak and activity stats.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		theme, err := heatmap.ParseTheme(heatmapTheme)
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		svc := heatmap.NewService(store, cfg.Loc(), cfg.HeatmapFetchLimit)
		resp, err := svc.Build(ctx, ownerID, theme)
		if err != nil {
			return err
		}

		fmt.Print(renderGrid(resp.Weeks, theme))
		printStats(resp.Stats)
		return nil
	},
}

func renderGrid(weeks []heatmap.Week, theme heatmap.Theme) string {
	colors := levelColors[theme]
	var b strings.Builder
	for row := 0; row < 7; row++ {
		b.WriteString(fmt.Sprintf("%-4s", time.Weekday(row).String()[:3]))
		for _, week := range weeks {
			day := week[row]
			if day == nil {
				b.WriteString("  ")
				continue
			}
			b.WriteString(colors[day.IntensityLevel].Sprint("■ "))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n    less ")
	for level := 0; level <= 4; level++ {
		b.WriteString(colors[level].Sprint("■ "))
	}
	b.WriteString("more\n\n")
	return b.String()
}

func printStats(s heatmap.Stats) {
	faint := color.New(color.Faint)
	fmt.Printf("%s %d  %s %d  %s %d\n",
		faint.Sprint("workouts"), s.TotalWorkouts,
		faint.Sprint("active days"), s.ActiveDays,
		faint.Sprint("high intensity days"), s.HighIntensityDays)
	fmt.Printf("%s %.0f  %s %.1f\n",
		faint.Sprint("calories"), s.TotalCalories,
		faint.Sprint("avg intensity"), s.AverageIntensity)
	fmt.Printf("%s %d  %s %d\n",
		faint.Sprint("current streak"), s.CurrentStreak,
		faint.Sprint("longest streak"), s.LongestStreak)
}

func init() {
	heatmapCmd.Flags().StringVar(&heatmapTheme, "theme", "light", "light or dark")
	rootCmd.AddCommand(heatmapCmd)
}
