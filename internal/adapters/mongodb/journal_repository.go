package mongodb

import (
	"context"
	"time"

	"envmonitor/internal/domain"
	"envmonitor/internal/ports"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type JournalRepository struct {
	db       *MongoDB
	sessions *mongo.Collection
	moods    *mongo.Collection
	ratings  *mongo.Collection
}

func NewJournalRepository(db *MongoDB) ports.JournalRepository {
	return &JournalRepository{
		db:       db,
		sessions: db.Database.Collection(SessionsCollection),
		moods:    db.Database.Collection(MoodsCollection),
		ratings:  db.Database.Collection(SleepRatingsCollection),
	}
}

func (r *JournalRepository) LatestSession(ctx context.Context) (domain.Session, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "started_at", Value: -1}})

	var session domain.Session
	err := r.sessions.FindOne(ctx, bson.M{}, opts).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Session{}, domain.ErrNoActiveSession
	}
	if err != nil {
		return domain.Session{}, errors.Wrap(err, "failed to find latest session")
	}
	return session, nil
}

func (r *JournalRepository) InsertMood(ctx context.Context, sessionID int64, mood domain.MoodLevel) (int64, error) {
	id, err := r.db.nextID(ctx, MoodsCollection)
	if err != nil {
		return 0, err
	}

	_, err = r.moods.InsertOne(ctx, bson.M{
		"_id":        id,
		"session_id": sessionID,
		"mood":       mood,
		"timestamp":  time.Now(),
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to save mood")
	}
	return id, nil
}

func (r *JournalRepository) LatestMood(ctx context.Context) (*domain.MoodRecord, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	var record domain.MoodRecord
	err := r.moods.FindOne(ctx, bson.M{}, opts).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find latest mood")
	}
	return &record, nil
}

func (r *JournalRepository) DailyMoods(ctx context.Context, from, to time.Time, loc *time.Location) (map[string]domain.MoodLevel, error) {
	cursor, err := r.moods.Aggregate(ctx, dailyMoodsPipeline(from, to, loc))
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate daily moods")
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Date string           `bson:"_id"`
		Mood domain.MoodLevel `bson:"mood"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, errors.Wrap(err, "failed to decode daily moods")
	}

	moods := make(map[string]domain.MoodLevel, len(rows))
	for _, row := range rows {
		moods[row.Date] = row.Mood
	}
	return moods, nil
}

func (r *JournalRepository) UpsertSleepRating(ctx context.Context, rating domain.SleepRating) (int64, error) {
	id, err := r.db.nextID(ctx, SleepRatingsCollection)
	if err != nil {
		return 0, err
	}

	filter := bson.M{"session_id": rating.SessionID, "date": rating.Date}
	update := bson.D{
		{Key: "$set", Value: bson.M{"rating": rating.Rating, "notes": rating.Notes, "recorded_at": rating.RecordedAt}},
		{Key: "$setOnInsert", Value: bson.M{"_id": id}},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved domain.SleepRating
	if err := r.ratings.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		return 0, errors.Wrap(err, "failed to save sleep rating")
	}
	return saved.ID, nil
}

func (r *JournalRepository) SleepRatings(ctx context.Context, since time.Time) ([]domain.SleepRating, error) {
	filter := bson.M{"date": bson.M{"$gte": since.Format("2006-01-02")}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "recorded_at", Value: 1}})

	cursor, err := r.ratings.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find sleep ratings")
	}
	defer cursor.Close(ctx)

	ratings := make([]domain.SleepRating, 0)
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, errors.Wrap(err, "failed to decode sleep ratings")
	}
	return ratings, nil
}

// dailyMoodsPipeline keeps the latest mood of each local date in [from, to).
func dailyMoodsPipeline(from, to time.Time, loc *time.Location) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"timestamp": bson.M{"$gte": from, "$lt": to}}}},
		{{Key: "$sort", Value: bson.M{"timestamp": -1}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format":   "%Y-%m-%d",
				"date":     "$timestamp",
				"timezone": zoneName(loc),
			}},
			"mood": bson.M{"$first": "$mood"},
		}}},
	}
}
