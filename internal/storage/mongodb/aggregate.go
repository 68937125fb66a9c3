package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/fdg312/fitness-tracker/internal/owner"
	"github.com/fdg312/fitness-tracker/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type totalsRow struct {
	Count    int     `bson:"count"`
	Calories float64 `bson:"calories"`
	Duration float64 `bson:"duration"`
}

type facetResult struct {
	Totals     []totalsRow `bson:"totals"`
	Categories []struct {
		ID       *string `bson:"_id"`
		Count    int     `bson:"count"`
		Calories float64 `bson:"calories"`
	} `bson:"categories"`
	Daily []struct {
		ID       string  `bson:"_id"`
		Count    int     `bson:"count"`
		Calories float64 `bson:"calories"`
		Duration float64 `bson:"duration"`
	} `bson:"daily"`
	Weekly []struct {
		ID struct {
			Year int `bson:"year"`
			Week int `bson:"week"`
		} `bson:"_id"`
		Count    int     `bson:"count"`
		Calories float64 `bson:"calories"`
		Duration float64 `bson:"duration"`
	} `bson:"weekly"`
}

// AggregateWorkouts runs one $facet pipeline: totals, categories,
// daily and ISO-week buckets in loc.
func (s *MongoStorage) AggregateWorkouts(ctx context.Context, ownerID owner.ID, from time.Time, loc *time.Location) (*storage.WorkoutAggregates, error) {
	tz := loc.String()
	if loc == time.Local {
		tz = "UTC"
	}
	sums := bson.D{
		{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		{Key: "calories", Value: bson.D{{Key: "$sum", Value: "$totalCaloriesBurned"}}},
		{Key: "duration", Value: bson.D{{Key: "$sum", Value: "$totalDuration"}}},
	}
	datePart := func(op string) bson.D {
		return bson.D{{Key: op, Value: bson.D{{Key: "date", Value: "$date"}, {Key: "timezone", Value: tz}}}}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "userId", Value: ownerID.String()},
			{Key: "date", Value: bson.D{{Key: "$gte", Value: from.UTC()}}},
		}}},
		{{Key: "$facet", Value: bson.D{
			{Key: "totals", Value: bson.A{
				bson.D{{Key: "$group", Value: append(bson.D{{Key: "_id", Value: nil}}, sums...)}},
			}},
			{Key: "categories", Value: bson.A{
				bson.D{{Key: "$unwind", Value: "$exercises"}},
				bson.D{{Key: "$group", Value: bson.D{
					{Key: "_id", Value: "$exercises.category"},
					{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
					{Key: "calories", Value: bson.D{{Key: "$sum", Value: "$exercises.caloriesBurned"}}},
				}}},
			}},
			{Key: "daily", Value: bson.A{
				bson.D{{Key: "$group", Value: append(bson.D{{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
					{Key: "format", Value: "%Y-%m-%d"},
					{Key: "date", Value: "$date"},
					{Key: "timezone", Value: tz},
				}}}}}, sums...)}},
				bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
			}},
			{Key: "weekly", Value: bson.A{
				bson.D{{Key: "$group", Value: append(bson.D{{Key: "_id", Value: bson.D{
					{Key: "year", Value: datePart("$isoWeekYear")},
					{Key: "week", Value: datePart("$isoWeek")},
				}}}, sums...)}},
				bson.D{{Key: "$sort", Value: bson.D{{Key: "_id.year", Value: 1}, {Key: "_id.week", Value: 1}}}},
			}},
		}}},
	}

	cur, err := s.workouts.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate workouts: %w", err)
	}
	var results []facetResult
	if err := cur.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode workout aggregates: %w", err)
	}

	agg := &storage.WorkoutAggregates{
		Categories: []storage.CategoryTotal{},
		Daily:      []storage.DayBucket{},
		Weekly:     []storage.WeekBucket{},
	}
	if len(results) == 0 {
		return agg, nil
	}
	r := results[0]
	if len(r.Totals) > 0 {
		agg.Totals = storage.Totals{Workouts: r.Totals[0].Count, Calories: r.Totals[0].Calories, Duration: r.Totals[0].Duration}
	}
	for _, c := range r.Categories {
		ct := storage.CategoryTotal{Count: c.Count, Calories: c.Calories}
		if c.ID != nil {
			ct.Category = *c.ID
		}
		agg.Categories = append(agg.Categories, ct)
	}
	for _, d := range r.Daily {
		agg.Daily = append(agg.Daily, storage.DayBucket{
			Date:   d.ID,
			Totals: storage.Totals{Workouts: d.Count, Calories: d.Calories, Duration: d.Duration},
		})
	}
	for _, w := range r.Weekly {
		agg.Weekly = append(agg.Weekly, storage.WeekBucket{
			Year:   w.ID.Year,
			Week:   w.ID.Week,
			Totals: storage.Totals{Workouts: w.Count, Calories: w.Calories, Duration: w.Duration},
		})
	}
	return agg, nil
}
