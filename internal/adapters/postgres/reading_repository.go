package postgres

import (
	"context"
	"math"
	"time"

	"envmonitor/internal/domain"
	"envmonitor/internal/ports"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const readingColumns = `
	timestamp,
	temperatura::float8,
	humedad::float8,
	co2_estimado::int,
	luz::float8,
	COALESCE(movimiento, false),
	COALESCE(ruido, false),
	calidad_calculada::float8`

const readingsInWindowSQL = `SELECT` + readingColumns + `
	FROM lecturas
	WHERE timestamp >= $1 AND timestamp < $2
	ORDER BY timestamp ASC`

const latestReadingSQL = `SELECT` + readingColumns + `
	FROM lecturas
	ORDER BY timestamp DESC
	LIMIT 1`

const recentReadingsSQL = `SELECT` + readingColumns + `
	FROM lecturas
	ORDER BY timestamp DESC
	LIMIT $1 OFFSET $2`

const latestReadingDateSQL = `
	SELECT MAX((timestamp AT TIME ZONE $1)::date)
	FROM lecturas`

const historicalSeriesSQL = `
	SELECT
		date_trunc($1, timestamp) AS bucket,
		AVG(temperatura)::float8,
		AVG(humedad)::float8,
		COALESCE(AVG(co2_estimado), 0)::float8,
		COALESCE(AVG(luz), 0)::float8
	FROM lecturas
	WHERE timestamp >= $2
	GROUP BY bucket
	ORDER BY bucket ASC
	LIMIT $3`

const dailySummariesSQL = `
	SELECT
		(timestamp AT TIME ZONE $3)::date AS day,
		COALESCE(AVG(calidad_calculada), 0)::float8,
		COALESCE(AVG(temperatura), 0)::float8,
		COALESCE(AVG(humedad), 0)::float8
	FROM lecturas
	WHERE timestamp >= $1 AND timestamp < $2
	GROUP BY day
	ORDER BY day ASC`

type ReadingRepository struct {
	store *Store
}

func NewReadingRepository(store *Store) ports.ReadingRepository {
	return &ReadingRepository{store: store}
}

func scanReading(row pgx.Row) (domain.Reading, error) {
	var r domain.Reading
	err := row.Scan(
		&r.Timestamp,
		&r.Temperature,
		&r.Humidity,
		&r.CO2,
		&r.Light,
		&r.Motion,
		&r.Noise,
		&r.Quality,
	)
	return r, err
}

func (r *ReadingRepository) queryReadings(ctx context.Context, sql string, args ...any) ([]domain.Reading, error) {
	rows, err := r.store.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	readings := make([]domain.Reading, 0)
	for rows.Next() {
		reading, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		readings = append(readings, reading)
	}
	return readings, rows.Err()
}

func (r *ReadingRepository) ReadingsInWindow(ctx context.Context, start, end time.Time) ([]domain.Reading, error) {
	readings, err := r.queryReadings(ctx, readingsInWindowSQL, start, end)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch readings in window")
	}
	return readings, nil
}

func (r *ReadingRepository) LatestReading(ctx context.Context) (*domain.Reading, error) {
	reading, err := scanReading(r.store.pool.QueryRow(ctx, latestReadingSQL))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch latest reading")
	}
	return &reading, nil
}

func (r *ReadingRepository) LatestReadingDate(ctx context.Context, loc *time.Location) (string, error) {
	var day *time.Time
	if err := r.store.pool.QueryRow(ctx, latestReadingDateSQL, zoneName(loc)).Scan(&day); err != nil {
		return "", errors.Wrap(err, "failed to fetch latest reading date")
	}
	if day == nil {
		return "", domain.ErrNotFound
	}
	return day.Format("2006-01-02"), nil
}

func (r *ReadingRepository) HistoricalSeries(ctx context.Context, q ports.SeriesQuery) ([]domain.HistoricalPoint, error) {
	rows, err := r.store.pool.Query(ctx, historicalSeriesSQL, q.Unit, q.Since, q.Limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch historical series")
	}
	defer rows.Close()

	points := make([]domain.HistoricalPoint, 0)
	for rows.Next() {
		var p domain.HistoricalPoint
		var co2, light float64
		if err := rows.Scan(&p.Timestamp, &p.Temperature, &p.Humidity, &co2, &light); err != nil {
			return nil, errors.Wrap(err, "failed to scan historical point")
		}
		p.CO2 = int(math.Round(co2))
		p.Light = int(math.Round(light))
		points = append(points, p)
	}
	return points, errors.Wrap(rows.Err(), "failed to read historical series")
}

func (r *ReadingRepository) DailySummaries(ctx context.Context, from, to time.Time, loc *time.Location) ([]domain.DailySummary, error) {
	rows, err := r.store.pool.Query(ctx, dailySummariesSQL, from, to, zoneName(loc))
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch daily summaries")
	}
	defer rows.Close()

	days := make([]domain.DailySummary, 0)
	for rows.Next() {
		var day time.Time
		var quality float64
		var d domain.DailySummary
		if err := rows.Scan(&day, &quality, &d.AvgTemperature, &d.AvgHumidity); err != nil {
			return nil, errors.Wrap(err, "failed to scan daily summary")
		}
		d.Date = day.Format("2006-01-02")
		d.Quality = int(math.Round(quality))
		days = append(days, d)
	}
	return days, errors.Wrap(rows.Err(), "failed to read daily summaries")
}

func (r *ReadingRepository) RecentReadings(ctx context.Context, limit, offset int) ([]domain.Reading, error) {
	readings, err := r.queryReadings(ctx, recentReadingsSQL, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch recent readings")
	}
	return readings, nil
}
