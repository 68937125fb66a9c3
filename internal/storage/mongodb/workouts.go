package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/fdg312/fitness-tracker/internal/owner"
	"github.com/fdg312/fitness-tracker/internal/storage"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *MongoStorage) CreateWorkout(ctx context.Context, w *storage.Workout) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	w.CreatedAt = now
	w.UpdatedAt = now

	if _, err := s.workouts.InsertOne(ctx, toWorkoutDoc(w)); err != nil {
		return fmt.Errorf("failed to create workout: %w", err)
	}
	return nil
}

func (s *MongoStorage) GetWorkout(ctx context.Context, ownerID owner.ID, id uuid.UUID) (*storage.Workout, error) {
	var doc workoutDoc
	err := s.workouts.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}, {Key: "userId", Value: ownerID.String()}}).Decode(&doc)
	if err != nil {
		return nil, notFound(err)
	}
	w, err := doc.toStorage()
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *MongoStorage) UpdateWorkout(ctx context.Context, w *storage.Workout) error {
	filter := bson.D{{Key: "_id", Value: w.ID.String()}, {Key: "userId", Value: w.Owner.String()}}

	var existing workoutDoc
	if err := s.workouts.FindOne(ctx, filter).Decode(&existing); err != nil {
		return notFound(err)
	}
	w.CreatedAt = existing.CreatedAt
	w.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	res, err := s.workouts.ReplaceOne(ctx, filter, toWorkoutDoc(w))
	if err != nil {
		return fmt.Errorf("failed to update workout: %w", err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *MongoStorage) DeleteWorkout(ctx context.Context, ownerID owner.ID, id uuid.UUID) error {
	res, err := s.workouts.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}, {Key: "userId", Value: ownerID.String()}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *MongoStorage) ListWorkouts(ctx context.Context, ownerID owner.ID, f storage.WorkoutFilter) ([]storage.Workout, int, error) {
	filter := bson.D{{Key: "userId", Value: ownerID.String()}}
	if r := dateRange(f.From, f.To); r != nil {
		filter = append(filter, bson.E{Key: "date", Value: r})
	}

	total, err := s.workouts.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count workouts: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}}).
		SetSkip(int64(max(f.Offset, 0)))
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}

	cur, err := s.workouts.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list workouts: %w", err)
	}
	var docs []workoutDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	workouts := make([]storage.Workout, 0, len(docs))
	for _, d := range docs {
		w, err := d.toStorage()
		if err != nil {
			return nil, 0, err
		}
		workouts = append(workouts, w)
	}
	return workouts, int(total), nil
}
