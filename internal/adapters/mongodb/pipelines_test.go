package mongodb

import (
	"testing"
	"time"
	_ "time/tzdata"

	"envmonitor/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func stage(t *testing.T, p mongo.Pipeline, i int, key string) interface{} {
	t.Helper()
	require.Greater(t, len(p), i)
	require.Len(t, p[i], 1)
	require.Equal(t, key, p[i][0].Key)
	return p[i][0].Value
}

func TestZoneName(t *testing.T) {
	bogota, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)

	assert.Equal(t, "UTC", zoneName(nil))
	assert.Equal(t, "UTC", zoneName(time.Local))
	assert.Equal(t, "UTC", zoneName(time.UTC))
	assert.Equal(t, "America/Bogota", zoneName(bogota))
}

func TestSeriesPipeline(t *testing.T) {
	since := time.Date(2024, 1, 17, 6, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		query ports.SeriesQuery
	}{
		{"minute buckets", ports.SeriesQuery{Unit: "minute", Since: since, Limit: 360}},
		{"hour buckets", ports.SeriesQuery{Unit: "hour", Since: since, Limit: 24}},
		{"day buckets", ports.SeriesQuery{Unit: "day", Since: since, Limit: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := seriesPipeline(tt.query)
			require.Len(t, p, 4)

			match := stage(t, p, 0, "$match").(bson.M)
			assert.Equal(t, bson.M{"$gte": tt.query.Since}, match["timestamp"])

			group := stage(t, p, 1, "$group").(bson.M)
			id := group["_id"].(bson.M)
			trunc := id["$dateTrunc"].(bson.M)
			assert.Equal(t, tt.query.Unit, trunc["unit"])
			assert.Equal(t, "$timestamp", trunc["date"])
			for _, field := range []string{"temperature", "humidity", "co2", "light"} {
				assert.Equal(t, bson.M{"$avg": "$" + field}, group[field], field)
			}

			assert.Equal(t, bson.M{"_id": 1}, stage(t, p, 2, "$sort"))
			assert.Equal(t, tt.query.Limit, stage(t, p, 3, "$limit"))
		})
	}
}

func TestDailySummariesPipeline(t *testing.T) {
	from := time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)
	bogota, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)

	p := dailySummariesPipeline(from, to, bogota)
	require.Len(t, p, 3)

	match := stage(t, p, 0, "$match").(bson.M)
	assert.Equal(t, bson.M{"$gte": from, "$lt": to}, match["timestamp"])

	group := stage(t, p, 1, "$group").(bson.M)
	day := group["_id"].(bson.M)["$dateToString"].(bson.M)
	assert.Equal(t, "%Y-%m-%d", day["format"])
	assert.Equal(t, "America/Bogota", day["timezone"])
	assert.Equal(t, bson.M{"$avg": "$quality"}, group["quality"])

	assert.Equal(t, bson.M{"_id": 1}, stage(t, p, 2, "$sort"))

	local := dailySummariesPipeline(from, to, nil)
	group = stage(t, local, 1, "$group").(bson.M)
	assert.Equal(t, "UTC", group["_id"].(bson.M)["$dateToString"].(bson.M)["timezone"])
}

func TestDailyMoodsPipeline(t *testing.T) {
	from := time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	p := dailyMoodsPipeline(from, to, time.UTC)
	require.Len(t, p, 3)

	match := stage(t, p, 0, "$match").(bson.M)
	assert.Equal(t, bson.M{"$gte": from, "$lt": to}, match["timestamp"])

	// newest first so $first keeps the latest mood of the day
	assert.Equal(t, bson.M{"timestamp": -1}, stage(t, p, 1, "$sort"))

	group := stage(t, p, 2, "$group").(bson.M)
	assert.Equal(t, bson.M{"$first": "$mood"}, group["mood"])
	assert.Equal(t, "UTC", group["_id"].(bson.M)["$dateToString"].(bson.M)["timezone"])
}
