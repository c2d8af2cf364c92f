package mongodb

import (
	"context"
	"math"
	"time"

	"envmonitor/internal/domain"
	"envmonitor/internal/ports"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReadingRepository struct {
	collection *mongo.Collection
}

func NewReadingRepository(db *MongoDB) ports.ReadingRepository {
	return &ReadingRepository{
		collection: db.Database.Collection(ReadingsCollection),
	}
}

func (r *ReadingRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Reading, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	readings := make([]domain.Reading, 0)
	if err := cursor.All(ctx, &readings); err != nil {
		return nil, err
	}
	return readings, nil
}

func (r *ReadingRepository) ReadingsInWindow(ctx context.Context, start, end time.Time) ([]domain.Reading, error) {
	filter := bson.M{"timestamp": bson.M{"$gte": start, "$lt": end}}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})

	readings, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find readings in window")
	}
	return readings, nil
}

func (r *ReadingRepository) LatestReading(ctx context.Context) (*domain.Reading, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	var reading domain.Reading
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&reading)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find latest reading")
	}
	return &reading, nil
}

func (r *ReadingRepository) LatestReadingDate(ctx context.Context, loc *time.Location) (string, error) {
	latest, err := r.LatestReading(ctx)
	if err != nil {
		return "", err
	}
	if latest == nil {
		return "", domain.ErrNotFound
	}
	if loc == nil {
		loc = time.Local
	}
	return latest.Timestamp.In(loc).Format("2006-01-02"), nil
}

func (r *ReadingRepository) HistoricalSeries(ctx context.Context, q ports.SeriesQuery) ([]domain.HistoricalPoint, error) {
	cursor, err := r.collection.Aggregate(ctx, seriesPipeline(q))
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate historical series")
	}
	defer cursor.Close(ctx)

	var buckets []struct {
		Bucket      time.Time `bson:"_id"`
		Temperature float64   `bson:"temperature"`
		Humidity    float64   `bson:"humidity"`
		CO2         *float64  `bson:"co2"`
		Light       *float64  `bson:"light"`
	}
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, errors.Wrap(err, "failed to decode historical series")
	}

	points := make([]domain.HistoricalPoint, 0, len(buckets))
	for _, b := range buckets {
		p := domain.HistoricalPoint{Timestamp: b.Bucket, Temperature: b.Temperature, Humidity: b.Humidity}
		if b.CO2 != nil {
			p.CO2 = int(math.Round(*b.CO2))
		}
		if b.Light != nil {
			p.Light = int(math.Round(*b.Light))
		}
		points = append(points, p)
	}
	return points, nil
}

func (r *ReadingRepository) DailySummaries(ctx context.Context, from, to time.Time, loc *time.Location) ([]domain.DailySummary, error) {
	cursor, err := r.collection.Aggregate(ctx, dailySummariesPipeline(from, to, loc))
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate daily summaries")
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Date        string   `bson:"_id"`
		Quality     *float64 `bson:"quality"`
		Temperature float64  `bson:"temperature"`
		Humidity    float64  `bson:"humidity"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, errors.Wrap(err, "failed to decode daily summaries")
	}

	days := make([]domain.DailySummary, 0, len(rows))
	for _, row := range rows {
		d := domain.DailySummary{Date: row.Date, AvgTemperature: row.Temperature, AvgHumidity: row.Humidity}
		if row.Quality != nil {
			d.Quality = int(math.Round(*row.Quality))
		}
		days = append(days, d)
	}
	return days, nil
}

func (r *ReadingRepository) RecentReadings(ctx context.Context, limit, offset int) ([]domain.Reading, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	readings, err := r.find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find recent readings")
	}
	return readings, nil
}

// seriesPipeline averages readings since q.Since into q.Unit buckets, oldest first.
func seriesPipeline(q ports.SeriesQuery) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"timestamp": bson.M{"$gte": q.Since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":         bson.M{"$dateTrunc": bson.M{"date": "$timestamp", "unit": q.Unit}},
			"temperature": bson.M{"$avg": "$temperature"},
			"humidity":    bson.M{"$avg": "$humidity"},
			"co2":         bson.M{"$avg": "$co2"},
			"light":       bson.M{"$avg": "$light"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
		{{Key: "$limit", Value: q.Limit}},
	}
}

// dailySummariesPipeline groups readings in [from, to) by local date.
func dailySummariesPipeline(from, to time.Time, loc *time.Location) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"timestamp": bson.M{"$gte": from, "$lt": to}}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format":   "%Y-%m-%d",
				"date":     "$timestamp",
				"timezone": zoneName(loc),
			}},
			"quality":     bson.M{"$avg": "$quality"},
			"temperature": bson.M{"$avg": "$temperature"},
			"humidity":    bson.M{"$avg": "$humidity"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
}
