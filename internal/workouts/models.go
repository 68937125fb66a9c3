package workouts

import (
	"fmt"
	"strings"
	"time"

	"github.com/fdg312/fitness-tracker/internal/storage"
	"github.com/google/uuid"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 1000
)

var (
	Categories  = []string{"cardio", "strength", "flexibility", "sports", "other"}
	Intensities = []string{"low", "moderate", "high", "extreme"}
	Moods       = []string{"excellent", "good", "average", "poor", "terrible"}
)

const DefaultIntensity = "moderate"

type ExerciseDTO = storage.Exercise

type WorkoutDTO struct {
	ID                  uuid.UUID     `json:"id"`
	Title               string        `json:"title"`
	Date                time.Time     `json:"date"`
	Exercises           []ExerciseDTO `json:"exercises"`
	TotalDuration       float64       `json:"totalDuration"`
	TotalCaloriesBurned float64       `json:"totalCaloriesBurned"`
	Intensity           string        `json:"intensity"`
	Mood                string        `json:"mood,omitempty"`
	Notes               string        `json:"notes,omitempty"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`
}

// WorkoutRequest is the body of create and update calls. Totals are
// pointers so that a missing value can be told apart from zero.
type WorkoutRequest struct {
	Title               string        `json:"title"`
	Date                string        `json:"date"`
	Exercises           []ExerciseDTO `json:"exercises"`
	TotalDuration       *float64      `json:"totalDuration"`
	TotalCaloriesBurned *float64      `json:"totalCaloriesBurned"`
	Intensity           string        `json:"intensity"`
	Mood                string        `json:"mood"`
	Notes               string        `json:"notes"`
}

type ListResponse struct {
	Workouts    []WorkoutDTO `json:"workouts"`
	TotalPages  int          `json:"totalPages"`
	CurrentPage int          `json:"currentPage"`
	Total       int          `json:"total"`
}

type ListQuery struct {
	Page      int
	Limit     int
	StartDate string
	EndDate   string
}

func (r *WorkoutRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Intensity = strings.ToLower(strings.TrimSpace(r.Intensity))
	r.Mood = strings.ToLower(strings.TrimSpace(r.Mood))
	r.Notes = strings.TrimSpace(r.Notes)
	if r.Intensity == "" {
		r.Intensity = DefaultIntensity
	}
	for i := range r.Exercises {
		e := &r.Exercises[i]
		e.Name = strings.TrimSpace(e.Name)
		e.Category = strings.ToLower(strings.TrimSpace(e.Category))
	}
}

// Validate performs shape checks. Call after normalize.
func (r *WorkoutRequest) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if r.TotalDuration == nil || *r.TotalDuration < 0 {
		return fmt.Errorf("totalDuration is required and must be >= 0")
	}
	if r.TotalCaloriesBurned == nil || *r.TotalCaloriesBurned < 0 {
		return fmt.Errorf("totalCaloriesBurned is required and must be >= 0")
	}
	if !oneOf(r.Intensity, Intensities) {
		return fmt.Errorf("intensity must be one of %s", strings.Join(Intensities, ", "))
	}
	if r.Mood != "" && !oneOf(r.Mood, Moods) {
		return fmt.Errorf("mood must be one of %s", strings.Join(Moods, ", "))
	}
	for i, e := range r.Exercises {
		if e.Name == "" {
			return fmt.Errorf("exercises[%d].name is required", i)
		}
		if !oneOf(e.Category, Categories) {
			return fmt.Errorf("exercises[%d].category must be one of %s", i, strings.Join(Categories, ", "))
		}
		if negative(e.Duration) || negative(e.Weight) || negative(e.Distance) || negative(e.CaloriesBurned) {
			return fmt.Errorf("exercises[%d] values must be >= 0", i)
		}
		if (e.Sets != nil && *e.Sets < 0) || (e.Reps != nil && *e.Reps < 0) {
			return fmt.Errorf("exercises[%d] values must be >= 0", i)
		}
	}
	return nil
}

func oneOf(v string, set []string) bool {
	for _, s := range set {
		if v == s {
			return true
		}
	}
	return false
}

func negative(v *float64) bool {
	return v != nil && *v < 0
}

func ToDTO(w *storage.Workout) WorkoutDTO {
	exercises := w.Exercises
	if exercises == nil {
		exercises = []ExerciseDTO{}
	}
	return WorkoutDTO{
		ID:                  w.ID,
		Title:               w.Title,
		Date:                w.Date,
		Exercises:           exercises,
		TotalDuration:       w.TotalDuration,
		TotalCaloriesBurned: w.TotalCaloriesBurned,
		Intensity:           w.Intensity,
		Mood:                w.Mood,
		Notes:               w.Notes,
		CreatedAt:           w.CreatedAt,
		UpdatedAt:           w.UpdatedAt,
	}
}
