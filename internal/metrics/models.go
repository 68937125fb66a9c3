package metrics

import (
	"fmt"
	"time"

	"github.com/fdg312/fitness-tracker/internal/dates"
	"github.com/fdg312/fitness-tracker/internal/storage"
	"github.com/google/uuid"
)

const (
	DefaultListLimit = 30
	MaxListLimit     = 366
)

type BloodPressureDTO struct {
	Systolic  *int `json:"systolic,omitempty"`
	Diastolic *int `json:"diastolic,omitempty"`
}

// HealthMetricDTO is one day of body measurements.
type HealthMetricDTO struct {
	ID                uuid.UUID         `json:"id"`
	Date              string            `json:"date"`
	Weight            *float64          `json:"weight,omitempty"`
	BodyFatPercentage *float64          `json:"bodyFatPercentage,omitempty"`
	MuscleMass        *float64          `json:"muscleMass,omitempty"`
	RestingHeartRate  *int              `json:"restingHeartRate,omitempty"`
	BloodPressure     *BloodPressureDTO `json:"bloodPressure,omitempty"`
	SleepHours        *float64          `json:"sleepHours,omitempty"`
	WaterIntake       *float64          `json:"waterIntake,omitempty"`
	StepsCount        *int              `json:"stepsCount,omitempty"`
	Notes             string            `json:"notes,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

type UpsertRequest struct {
	Date              string            `json:"date"`
	Weight            *float64          `json:"weight"`
	BodyFatPercentage *float64          `json:"bodyFatPercentage"`
	MuscleMass        *float64          `json:"muscleMass"`
	RestingHeartRate  *int              `json:"restingHeartRate"`
	BloodPressure     *BloodPressureDTO `json:"bloodPressure"`
	SleepHours        *float64          `json:"sleepHours"`
	WaterIntake       *float64          `json:"waterIntake"`
	StepsCount        *int              `json:"stepsCount"`
	Notes             string            `json:"notes"`
}

type ListResponse struct {
	Metrics []HealthMetricDTO `json:"metrics"`
}

// Validate performs shape checks only.
func (r *UpsertRequest) Validate() error {
	if err := nonNegative("weight", r.Weight); err != nil {
		return err
	}
	if err := nonNegative("muscleMass", r.MuscleMass); err != nil {
		return err
	}
	if err := nonNegative("waterIntake", r.WaterIntake); err != nil {
		return err
	}
	if r.BodyFatPercentage != nil && (*r.BodyFatPercentage < 0 || *r.BodyFatPercentage > 100) {
		return fmt.Errorf("bodyFatPercentage must be between 0 and 100")
	}
	if r.SleepHours != nil && (*r.SleepHours < 0 || *r.SleepHours > 24) {
		return fmt.Errorf("sleepHours must be between 0 and 24")
	}
	if r.RestingHeartRate != nil && *r.RestingHeartRate < 0 {
		return fmt.Errorf("restingHeartRate must be >= 0")
	}
	if r.StepsCount != nil && *r.StepsCount < 0 {
		return fmt.Errorf("stepsCount must be >= 0")
	}
	if bp := r.BloodPressure; bp != nil {
		if (bp.Systolic != nil && *bp.Systolic < 0) || (bp.Diastolic != nil && *bp.Diastolic < 0) {
			return fmt.Errorf("bloodPressure values must be >= 0")
		}
	}
	return nil
}

func nonNegative(field string, v *float64) error {
	if v != nil && *v < 0 {
		return fmt.Errorf("%s must be >= 0", field)
	}
	return nil
}

// ToDTO converts a stored metric. Its day key is read in UTC because
// stored dates are midnight UTC of the calendar day.
func ToDTO(m *storage.HealthMetric) HealthMetricDTO {
	dto := HealthMetricDTO{
		ID:                m.ID,
		Date:              m.Date.UTC().Format(dates.Layout),
		Weight:            m.Weight,
		BodyFatPercentage: m.BodyFatPercentage,
		MuscleMass:        m.MuscleMass,
		RestingHeartRate:  m.RestingHeartRate,
		SleepHours:        m.SleepHours,
		WaterIntake:       m.WaterIntake,
		StepsCount:        m.StepsCount,
		Notes:             m.Notes,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	if m.BloodPressure != nil {
		dto.BloodPressure = &BloodPressureDTO{Systolic: m.BloodPressure.Systolic, Diastolic: m.BloodPressure.Diastolic}
	}
	return dto
}
