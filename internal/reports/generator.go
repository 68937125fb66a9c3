package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"gopkg.in/yaml.v3"

	"github.com/fdg312/fitness-tracker/internal/analytics"
	"github.com/fdg312/fitness-tracker/internal/owner"
)

// Snapshot is everything a report renders.
type Snapshot struct {
	Owner       owner.ID
	PeriodDays  int
	From        time.Time
	To          time.Time
	GeneratedAt time.Time
	Workouts    *analytics.WorkoutAnalytics
	Health      *analytics.HealthTrends
}

// Generator collects analytics and renders them.
type Generator struct {
	analytics *analytics.Service
	now       func() time.Time
}

func NewGenerator(svc *analytics.Service) *Generator {
	return &Generator{analytics: svc, now: time.Now}
}

func (g *Generator) Collect(ctx context.Context, ownerID owner.ID, days int) (*Snapshot, error) {
	workouts, err := g.analytics.WorkoutAnalytics(ctx, ownerID, days)
	if err != nil {
		return nil, err
	}
	health, err := g.analytics.ComputeHealthTrends(ctx, ownerID, days)
	if err != nil {
		return nil, err
	}
	now := g.now().UTC()
	return &Snapshot{
		Owner:       ownerID,
		PeriodDays:  days,
		From:        now.Add(-time.Duration(days) * 24 * time.Hour),
		To:          now,
		GeneratedAt: now,
		Workouts:    workouts,
		Health:      health,
	}, nil
}

func Render(format string, s *Snapshot) ([]byte, error) {
	switch format {
	case FormatCSV:
		return renderCSV(s)
	case FormatPDF:
		return renderPDF(s)
	case FormatYAML:
		return renderYAML(s)
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// renderCSV writes one row per data point; the first column names the
// section so the file can be filtered in a spreadsheet.
func renderCSV(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{{"section", "key", "workouts", "calories", "duration", "value"}}

	sum := s.Workouts.Summary
	rows = append(rows,
		[]string{"summary", "totalWorkouts", strconv.Itoa(sum.TotalWorkouts), "", "", ""},
		[]string{"summary", "totalCalories", "", num(sum.TotalCalories), "", ""},
		[]string{"summary", "totalDuration", "", "", num(sum.TotalDuration), ""},
		[]string{"summary", "avgCaloriesPerWorkout", "", num(sum.AvgCaloriesPerWorkout), "", ""},
		[]string{"summary", "avgDuration", "", "", num(sum.AvgDuration), ""},
	)
	for _, c := range s.Workouts.CategoryBreakdown {
		rows = append(rows, []string{"category", c.Category, strconv.Itoa(c.Count), num(c.TotalCalories), "", ""})
	}
	for _, p := range s.Workouts.DailyTrend {
		key := p.Date
		if key == "" {
			key = fmt.Sprintf("%d-W%02d", p.Year, p.Week)
		}
		rows = append(rows, []string{"trend", key, strconv.Itoa(p.Workouts), num(p.Calories), num(p.Duration), ""})
	}
	for _, series := range []struct {
		name   string
		points []analytics.HealthPoint
	}{
		{"weight", s.Health.WeightTrend},
		{"sleepHours", s.Health.SleepTrend},
		{"stepsCount", s.Health.StepsTrend},
	} {
		for _, p := range series.points {
			rows = append(rows, []string{series.name, p.Date, "", "", "", num(p.Value)})
		}
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type yamlReport struct {
	Owner       string                        `yaml:"owner"`
	PeriodDays  int                           `yaml:"periodDays"`
	From        string                        `yaml:"from"`
	To          string                        `yaml:"to"`
	GeneratedAt string                        `yaml:"generatedAt"`
	Summary     analytics.Summary             `yaml:"summary"`
	Categories  []analytics.CategoryBreakdown `yaml:"categoryBreakdown"`
	Trend       []analytics.TrendPoint        `yaml:"trend"`
	Health      analytics.HealthTrends        `yaml:"health"`
}

func renderYAML(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	err := enc.Encode(yamlReport{
		Owner:       s.Owner.String(),
		PeriodDays:  s.PeriodDays,
		From:        s.From.Format(time.RFC3339),
		To:          s.To.Format(time.RFC3339),
		GeneratedAt: s.GeneratedAt.Format(time.RFC3339),
		Summary:     s.Workouts.Summary,
		Categories:  s.Workouts.CategoryBreakdown,
		Trend:       s.Workouts.DailyTrend,
		Health:      *s.Health,
	})
	if err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderPDF(s *Snapshot) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Workout report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Workout report")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s to %s (%d days)", s.From.Format("2006-01-02"), s.To.Format("2006-01-02"), s.PeriodDays))
	pdf.Ln(8)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, title)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
	}
	row := func(cols ...string) {
		for _, c := range cols {
			pdf.CellFormat(45, 6, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	sum := s.Workouts.Summary
	section("Summary")
	row("Workouts", strconv.Itoa(sum.TotalWorkouts))
	row("Calories", fmt.Sprintf("%.0f", sum.TotalCalories))
	row("Duration (min)", fmt.Sprintf("%.0f", sum.TotalDuration))
	row("Avg calories", fmt.Sprintf("%.1f", sum.AvgCaloriesPerWorkout))
	row("Avg duration", fmt.Sprintf("%.1f", sum.AvgDuration))
	pdf.Ln(4)

	if len(s.Workouts.CategoryBreakdown) > 0 {
		section("Categories")
		row("Category", "Exercises", "Calories")
		for _, c := range s.Workouts.CategoryBreakdown {
			row(c.Category, strconv.Itoa(c.Count), fmt.Sprintf("%.0f", c.TotalCalories))
		}
		pdf.Ln(4)
	}

	if len(s.Workouts.DailyTrend) > 0 {
		section("Trend")
		row("Bucket", "Workouts", "Calories", "Duration")
		for _, p := range s.Workouts.DailyTrend {
			key := p.Date
			if key == "" {
				key = fmt.Sprintf("%d week %d", p.Year, p.Week)
			}
			row(key, strconv.Itoa(p.Workouts), fmt.Sprintf("%.0f", p.Calories), fmt.Sprintf("%.0f", p.Duration))
		}
		pdf.Ln(4)
	}

	section("Health")
	row("Records", strconv.Itoa(s.Health.TotalRecords))
	if n := len(s.Health.WeightTrend); n > 0 {
		row("Latest weight", fmt.Sprintf("%.1f", s.Health.WeightTrend[n-1].Value))
	}
	if n := len(s.Health.SleepTrend); n > 0 {
		row("Latest sleep (h)", fmt.Sprintf("%.1f", s.Health.SleepTrend[n-1].Value))
	}
	if n := len(s.Health.StepsTrend); n > 0 {
		row("Latest steps", fmt.Sprintf("%.0f", s.Health.StepsTrend[n-1].Value))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
