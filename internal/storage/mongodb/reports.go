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

func (s *MongoStorage) CreateReport(ctx context.Context, r *storage.Report) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}

	doc := reportDoc{
		ID:         r.ID.String(),
		UserID:     r.Owner.String(),
		Format:     r.Format,
		PeriodDays: r.PeriodDays,
		From:       r.From.UTC(),
		To:         r.To.UTC(),
		ObjectKey:  r.ObjectKey,
		SizeBytes:  r.SizeBytes,
		Data:       r.Data,
		CreatedAt:  r.CreatedAt,
	}
	if _, err := s.reports.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (s *MongoStorage) GetReport(ctx context.Context, ownerID owner.ID, id uuid.UUID) (*storage.Report, error) {
	var doc reportDoc
	err := s.reports.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}, {Key: "userId", Value: ownerID.String()}}).Decode(&doc)
	if err != nil {
		return nil, notFound(err)
	}
	r, err := doc.toStorage()
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *MongoStorage) ListReports(ctx context.Context, ownerID owner.ID, limit, offset int) ([]storage.Report, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(max(offset, 0))).
		SetProjection(bson.D{{Key: "data", Value: 0}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := s.reports.Find(ctx, bson.D{{Key: "userId", Value: ownerID.String()}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	var docs []reportDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	reports := make([]storage.Report, 0, len(docs))
	for _, d := range docs {
		r, err := d.toStorage()
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

func (s *MongoStorage) DeleteReport(ctx context.Context, ownerID owner.ID, id uuid.UUID) error {
	res, err := s.reports.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}, {Key: "userId", Value: ownerID.String()}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}
