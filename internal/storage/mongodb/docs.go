package mongodb

import (
	"time"

	"github.com/fdg312/fitness-tracker/internal/owner"
	"github.com/fdg312/fitness-tracker/internal/storage"
	"github.com/google/uuid"
)

type exerciseDoc struct {
	Name           string   `bson:"name"`
	Category       string   `bson:"category"`
	Duration       *float64 `bson:"duration,omitempty"`
	Sets           *int     `bson:"sets,omitempty"`
	Reps           *int     `bson:"reps,omitempty"`
	Weight         *float64 `bson:"weight,omitempty"`
	Distance       *float64 `bson:"distance,omitempty"`
	CaloriesBurned *float64 `bson:"caloriesBurned,omitempty"`
	Notes          string   `bson:"notes,omitempty"`
}

type workoutDoc struct {
	ID                  string        `bson:"_id"`
	UserID              string        `bson:"userId"`
	Title               string        `bson:"title"`
	Date                time.Time     `bson:"date"`
	Exercises           []exerciseDoc `bson:"exercises"`
	TotalDuration       float64       `bson:"totalDuration"`
	TotalCaloriesBurned float64       `bson:"totalCaloriesBurned"`
	Intensity           string        `bson:"intensity"`
	Mood                string        `bson:"mood,omitempty"`
	Notes               string        `bson:"notes,omitempty"`
	CreatedAt           time.Time     `bson:"createdAt"`
	UpdatedAt           time.Time     `bson:"updatedAt"`
}

type bloodPressureDoc struct {
	Systolic  *int `bson:"systolic,omitempty"`
	Diastolic *int `bson:"diastolic,omitempty"`
}

type healthMetricDoc struct {
	ID                string            `bson:"_id"`
	UserID            string            `bson:"userId"`
	Date              time.Time         `bson:"date"`
	Weight            *float64          `bson:"weight"`
	BodyFatPercentage *float64          `bson:"bodyFatPercentage"`
	MuscleMass        *float64          `bson:"muscleMass"`
	RestingHeartRate  *int              `bson:"restingHeartRate"`
	BloodPressure     *bloodPressureDoc `bson:"bloodPressure"`
	SleepHours        *float64          `bson:"sleepHours"`
	WaterIntake       *float64          `bson:"waterIntake"`
	StepsCount        *int              `bson:"stepsCount"`
	Notes             string            `bson:"notes"`
	CreatedAt         time.Time         `bson:"createdAt"`
	UpdatedAt         time.Time         `bson:"updatedAt"`
}

type reportDoc struct {
	ID         string    `bson:"_id"`
	UserID     string    `bson:"userId"`
	Format     string    `bson:"format"`
	PeriodDays int       `bson:"periodDays"`
	From       time.Time `bson:"from"`
	To         time.Time `bson:"to"`
	ObjectKey  string    `bson:"objectKey,omitempty"`
	SizeBytes  int64     `bson:"sizeBytes"`
	Data       []byte    `bson:"data,omitempty"`
	CreatedAt  time.Time `bson:"createdAt"`
}

func toWorkoutDoc(w *storage.Workout) workoutDoc {
	exercises := make([]exerciseDoc, len(w.Exercises))
	for i, e := range w.Exercises {
		exercises[i] = exerciseDoc(e)
	}
	return workoutDoc{
		ID:                  w.ID.String(),
		UserID:              w.Owner.String(),
		Title:               w.Title,
		Date:                w.Date.UTC(),
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

func (d workoutDoc) toStorage() (storage.Workout, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return storage.Workout{}, err
	}
	exercises := make([]storage.Exercise, len(d.Exercises))
	for i, e := range d.Exercises {
		exercises[i] = storage.Exercise(e)
	}
	return storage.Workout{
		ID:                  id,
		Owner:               owner.ID(d.UserID),
		Title:               d.Title,
		Date:                d.Date,
		Exercises:           exercises,
		TotalDuration:       d.TotalDuration,
		TotalCaloriesBurned: d.TotalCaloriesBurned,
		Intensity:           d.Intensity,
		Mood:                d.Mood,
		Notes:               d.Notes,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}, nil
}

func (d healthMetricDoc) toStorage() (storage.HealthMetric, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return storage.HealthMetric{}, err
	}
	m := storage.HealthMetric{
		ID:                id,
		Owner:             owner.ID(d.UserID),
		Date:              d.Date.UTC(),
		Weight:            d.Weight,
		BodyFatPercentage: d.BodyFatPercentage,
		MuscleMass:        d.MuscleMass,
		RestingHeartRate:  d.RestingHeartRate,
		SleepHours:        d.SleepHours,
		WaterIntake:       d.WaterIntake,
		StepsCount:        d.StepsCount,
		Notes:             d.Notes,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
	if d.BloodPressure != nil {
		m.BloodPressure = &storage.BloodPressure{Systolic: d.BloodPressure.Systolic, Diastolic: d.BloodPressure.Diastolic}
	}
	return m, nil
}

func (d reportDoc) toStorage() (storage.Report, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return storage.Report{}, err
	}
	return storage.Report{
		ID:         id,
		Owner:      owner.ID(d.UserID),
		Format:     d.Format,
		PeriodDays: d.PeriodDays,
		From:       d.From,
		To:         d.To,
		ObjectKey:  d.ObjectKey,
		SizeBytes:  d.SizeBytes,
		Data:       d.Data,
		CreatedAt:  d.CreatedAt,
	}, nil
}
