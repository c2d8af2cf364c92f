package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ReadingsCollection     = "readings"
	SessionsCollection     = "sessions"
	MoodsCollection        = "moods"
	SleepRatingsCollection = "sleep_ratings"
	EventsCollection       = "events"
	countersCollection     = "counters"
)

type MongoDB struct {
	Database *mongo.Database
	client   *mongo.Client
}

func NewMongoDB(ctx context.Context, uri string, dbName string) (*MongoDB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to MongoDB")
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "failed to ping MongoDB")
	}

	db := client.Database(dbName)
	return &MongoDB{Database: db, client: client}, nil
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// nextID returns the next integer id for name. Ids are integers so both
// store backends expose the same identifiers.
func (m *MongoDB) nextID(ctx context.Context, name string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := m.Database.Collection(countersCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"seq": int64(1)}}, opts).
		Decode(&counter)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to allocate %s id", name)
	}
	return counter.Seq, nil
}

// zoneName returns the Olson name used in aggregation date operators.
func zoneName(loc *time.Location) string {
	if loc == nil || loc == time.Local {
		return "UTC"
	}
	return loc.String()
}

// SetUpCollections drops and recreates every collection with its validator and indexes.
func SetUpCollections(ctx context.Context, db *mongo.Database) error {
	collections := []struct {
		name    string
		schema  bson.M
		indexes []mongo.IndexModel
	}{
		{
			name: ReadingsCollection,
			schema: bson.M{
				"bsonType": "object",
				"required": []string{"timestamp", "temperature", "humidity"},
				"properties": bson.M{
					"timestamp":   bson.M{"bsonType": "date"},
					"temperature": bson.M{"bsonType": "double"},
					"humidity":    bson.M{"bsonType": "double"},
					"co2":         bson.M{"bsonType": []string{"int", "long"}},
					"light":       bson.M{"bsonType": "double"},
					"motion":      bson.M{"bsonType": "bool"},
					"noise":       bson.M{"bsonType": "bool"},
					"quality":     bson.M{"bsonType": "double", "minimum": 0, "maximum": 100},
				},
			},
			indexes: []mongo.IndexModel{{Keys: bson.D{{Key: "timestamp", Value: 1}}}},
		},
		{
			name: SessionsCollection,
			schema: bson.M{
				"bsonType":   "object",
				"required":   []string{"_id", "started_at"},
				"properties": bson.M{"started_at": bson.M{"bsonType": "date"}},
			},
			indexes: []mongo.IndexModel{{Keys: bson.D{{Key: "started_at", Value: -1}}}},
		},
		{
			name: MoodsCollection,
			schema: bson.M{
				"bsonType": "object",
				"required": []string{"_id", "session_id", "mood", "timestamp"},
				"properties": bson.M{
					"mood":      bson.M{"enum": []string{"good", "regular", "bad"}},
					"timestamp": bson.M{"bsonType": "date"},
				},
			},
			indexes: []mongo.IndexModel{{Keys: bson.D{{Key: "timestamp", Value: -1}}}},
		},
		{
			name: SleepRatingsCollection,
			schema: bson.M{
				"bsonType": "object",
				"required": []string{"_id", "session_id", "date", "rating"},
				"properties": bson.M{
					"date":   bson.M{"bsonType": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`},
					"rating": bson.M{"bsonType": []string{"int", "long"}, "minimum": 1, "maximum": 5},
				},
			},
			indexes: []mongo.IndexModel{{
				Keys:    bson.D{{Key: "session_id", Value: 1}, {Key: "date", Value: 1}},
				Options: options.Index().SetUnique(true),
			}},
		},
		{
			name: EventsCollection,
			schema: bson.M{
				"bsonType": "object",
				"required": []string{"_id", "timestamp", "kind"},
				"properties": bson.M{
					"timestamp": bson.M{"bsonType": "date"},
					"kind":      bson.M{"bsonType": "string"},
				},
			},
			indexes: []mongo.IndexModel{{Keys: bson.D{{Key: "timestamp", Value: -1}}}},
		},
	}

	for _, c := range collections {
		if err := db.Collection(c.name).Drop(ctx); err != nil {
			return errors.Wrapf(err, "failed to drop %s collection", c.name)
		}

		opt := options.CreateCollection().SetValidator(bson.M{"$jsonSchema": c.schema})
		if err := db.CreateCollection(ctx, c.name, opt); err != nil {
			return errors.Wrapf(err, "failed to create %s collection", c.name)
		}

		if _, err := db.Collection(c.name).Indexes().CreateMany(ctx, c.indexes); err != nil {
			return errors.Wrapf(err, "failed to create %s indexes", c.name)
		}
	}

	if err := db.Collection(countersCollection).Drop(ctx); err != nil {
		return errors.Wrap(err, "failed to drop counters collection")
	}

	return nil
}
