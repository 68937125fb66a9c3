package mongodb

import (
	"testing"
	"time"

	"github.com/fdg312/fitness-tracker/internal/owner"
	"github.com/fdg312/fitness-tracker/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRange(t *testing.T) {
	assert.Nil(t, dateRange(nil, nil))

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	r := dateRange(&from, nil)
	require.Len(t, r, 1)
	assert.Equal(t, "$gte", r[0].Key)

	r = dateRange(&from, &to)
	require.Len(t, r, 2)
	assert.Equal(t, "$lte", r[1].Key)
	assert.Equal(t, to, r[1].Value)
}

func TestWorkoutDocKeepsOwnerAndExercises(t *testing.T) {
	cal := 120.0
	w := &storage.Workout{
		ID:        uuid.New(),
		Owner:     owner.MustParse("alice"),
		Title:     "Upper body",
		Date:      time.Date(2026, 2, 3, 18, 0, 0, 0, time.FixedZone("X", 3*3600)),
		Intensity: "high",
		Exercises: []storage.Exercise{{Name: "Bench", Category: "strength", CaloriesBurned: &cal}},
	}

	doc := toWorkoutDoc(w)
	assert.Equal(t, "alice", doc.UserID)
	assert.Equal(t, time.UTC, doc.Date.Location())

	back, err := doc.toStorage()
	require.NoError(t, err)
	assert.Equal(t, w.ID, back.ID)
	assert.True(t, w.Date.Equal(back.Date))
	require.Len(t, back.Exercises, 1)
	assert.Equal(t, 120.0, *back.Exercises[0].CaloriesBurned)
}

func TestDocWithBadIDIsRejected(t *testing.T) {
	_, err := workoutDoc{ID: "65f1a2b3c4d5e6f708192a3b"}.toStorage()
	assert.Error(t, err)
}
