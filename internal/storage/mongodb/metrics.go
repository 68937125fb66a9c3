package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/fdg312/fitness-tracker/internal/owner"
	"github.com/fdg312/fitness-tracker/internal/storage"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpsertHealthMetric keys on (userId, date) backed by a unique index.
func (s *MongoStorage) UpsertHealthMetric(ctx context.Context, m *storage.HealthMetric) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	newID := m.ID
	if newID == uuid.Nil {
		newID = uuid.New()
	}

	var bp *bloodPressureDoc
	if m.BloodPressure != nil {
		bp = &bloodPressureDoc{Systolic: m.BloodPressure.Systolic, Diastolic: m.BloodPressure.Diastolic}
	}

	filter := bson.D{{Key: "userId", Value: m.Owner.String()}, {Key: "date", Value: m.Date.UTC()}}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "weight", Value: m.Weight},
			{Key: "bodyFatPercentage", Value: m.BodyFatPercentage},
			{Key: "muscleMass", Value: m.MuscleMass},
			{Key: "restingHeartRate", Value: m.RestingHeartRate},
			{Key: "bloodPressure", Value: bp},
			{Key: "sleepHours", Value: m.SleepHours},
			{Key: "waterIntake", Value: m.WaterIntake},
			{Key: "stepsCount", Value: m.StepsCount},
			{Key: "notes", Value: m.Notes},
			{Key: "updatedAt", Value: now},
		}},
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "_id", Value: newID.String()},
			{Key: "createdAt", Value: now},
		}},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc healthMetricDoc
	if err := s.healthMetrics.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return fmt.Errorf("failed to upsert health metric: %w", err)
	}
	saved, err := doc.toStorage()
	if err != nil {
		return err
	}
	m.ID = saved.ID
	m.CreatedAt = saved.CreatedAt
	m.UpdatedAt = saved.UpdatedAt
	return nil
}

func (s *MongoStorage) ListHealthMetrics(ctx context.Context, ownerID owner.ID, f storage.MetricFilter) ([]storage.HealthMetric, error) {
	filter := bson.D{{Key: "userId", Value: ownerID.String()}}
	if r := dateRange(f.From, f.To); r != nil {
		filter = append(filter, bson.E{Key: "date", Value: r})
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}
	return s.findHealthMetrics(ctx, filter, opts)
}

func (s *MongoStorage) LatestHealthMetric(ctx context.Context, ownerID owner.ID) (*storage.HealthMetric, error) {
	rows, err := s.ListHealthMetrics(ctx, ownerID, storage.MetricFilter{Limit: 1})
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0], nil
}

func (s *MongoStorage) findHealthMetrics(ctx context.Context, filter bson.D, opts *options.FindOptions) ([]storage.HealthMetric, error) {
	cur, err := s.healthMetrics.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list health metrics: %w", err)
	}
	return decodeHealthMetrics(ctx, cur)
}

func decodeHealthMetrics(ctx context.Context, cur *mongo.Cursor) ([]storage.HealthMetric, error) {
	var docs []healthMetricDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	metrics := make([]storage.HealthMetric, 0, len(docs))
	for _, d := range docs {
		m, err := d.toStorage()
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, nil
}
