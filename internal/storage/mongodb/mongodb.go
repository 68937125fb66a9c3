package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fdg312/fitness-tracker/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	workoutsCollection      = "workouts"
	healthMetricsCollection = "healthmetrics"
	reportsCollection       = "reports"
)

// MongoStorage is the document-database storage.Store. Owner ids live in
// the userId field of every document.
type MongoStorage struct {
	client        *mongo.Client
	workouts      *mongo.Collection
	healthMetrics *mongo.Collection
	reports       *mongo.Collection
}

var (
	_ storage.Store             = (*MongoStorage)(nil)
	_ storage.WorkoutAggregator = (*MongoStorage)(nil)
)

func New(ctx context.Context, uri, database string) (*MongoStorage, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(database)
	s := &MongoStorage{
		client:        client,
		workouts:      db.Collection(workoutsCollection),
		healthMetrics: db.Collection(healthMetricsCollection),
		reports:       db.Collection(reportsCollection),
	}
	if err := s.ensureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *MongoStorage) ensureIndexes(ctx context.Context) error {
	if _, err := s.workouts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
	}); err != nil {
		return fmt.Errorf("create workouts index: %w", err)
	}
	if _, err := s.healthMetrics.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("create healthmetrics index: %w", err)
	}
	if _, err := s.reports.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	}); err != nil {
		return fmt.Errorf("create reports index: %w", err)
	}
	return nil
}

func (s *MongoStorage) Name() string { return "mongodb" }

func (s *MongoStorage) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return storage.ErrNotFound
	}
	return err
}

// dateRange builds a {$gte, $lte} filter, or nil when both ends are open.
func dateRange(from, to *time.Time) bson.D {
	var r bson.D
	if from != nil {
		r = append(r, bson.E{Key: "$gte", Value: *from})
	}
	if to != nil {
		r = append(r, bson.E{Key: "$lte", Value: *to})
	}
	return r
}
