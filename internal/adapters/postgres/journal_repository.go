package postgres

import (
	"context"
	"time"

	"envmonitor/internal/domain"
	"envmonitor/internal/ports"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const latestSessionSQL = `
	SELECT id, inicio
	FROM sesiones
	ORDER BY inicio DESC
	LIMIT 1`

const insertMoodSQL = `
	INSERT INTO encuesta (sesion_id, estres, timestamp)
	VALUES ($1, $2, NOW())
	RETURNING id`

const latestMoodSQL = `
	SELECT id, COALESCE(estres, ''), timestamp
	FROM encuesta
	ORDER BY timestamp DESC
	LIMIT 1`

const dailyMoodsSQL = `
	SELECT DISTINCT ON (day)
		(timestamp AT TIME ZONE $3)::date AS day,
		COALESCE(estres, '')
	FROM encuesta
	WHERE timestamp >= $1 AND timestamp < $2
	ORDER BY day, timestamp DESC`

const upsertSleepRatingSQL = `
	INSERT INTO estadisticas_diarias (sesion_id, fecha, calidad_sueno, notas, timestamp)
	VALUES ($1, $2::date, $3, $4, $5)
	ON CONFLICT (sesion_id, fecha) DO UPDATE SET
		calidad_sueno = EXCLUDED.calidad_sueno,
		notas = EXCLUDED.notas,
		timestamp = EXCLUDED.timestamp
	RETURNING id`

const sleepRatingsSQL = `
	SELECT id, sesion_id, fecha, calidad_sueno, notas, timestamp
	FROM estadisticas_diarias
	WHERE fecha >= $1::date AND calidad_sueno IS NOT NULL
	ORDER BY fecha ASC, timestamp ASC`

type JournalRepository struct {
	store *Store
}

func NewJournalRepository(store *Store) ports.JournalRepository {
	return &JournalRepository{store: store}
}

func (r *JournalRepository) LatestSession(ctx context.Context) (domain.Session, error) {
	var s domain.Session
	err := r.store.pool.QueryRow(ctx, latestSessionSQL).Scan(&s.ID, &s.StartedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Session{}, domain.ErrNoActiveSession
	}
	if err != nil {
		return domain.Session{}, errors.Wrap(err, "failed to fetch latest session")
	}
	return s, nil
}

func (r *JournalRepository) InsertMood(ctx context.Context, sessionID int64, mood domain.MoodLevel) (int64, error) {
	var id int64
	if err := r.store.pool.QueryRow(ctx, insertMoodSQL, sessionID, mood.StressLevel()).Scan(&id); err != nil {
		return 0, errors.Wrap(err, "failed to insert mood")
	}
	return id, nil
}

func (r *JournalRepository) LatestMood(ctx context.Context) (*domain.MoodRecord, error) {
	var rec domain.MoodRecord
	var stress string
	err := r.store.pool.QueryRow(ctx, latestMoodSQL).Scan(&rec.ID, &stress, &rec.Timestamp)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch latest mood")
	}
	rec.Mood = domain.MoodFromStress(stress)
	return &rec, nil
}

func (r *JournalRepository) DailyMoods(ctx context.Context, from, to time.Time, loc *time.Location) (map[string]domain.MoodLevel, error) {
	rows, err := r.store.pool.Query(ctx, dailyMoodsSQL, from, to, zoneName(loc))
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch daily moods")
	}
	defer rows.Close()

	moods := make(map[string]domain.MoodLevel)
	for rows.Next() {
		var day time.Time
		var stress string
		if err := rows.Scan(&day, &stress); err != nil {
			return nil, errors.Wrap(err, "failed to scan daily mood")
		}
		moods[day.Format("2006-01-02")] = domain.MoodFromStress(stress)
	}
	return moods, errors.Wrap(rows.Err(), "failed to read daily moods")
}

func (r *JournalRepository) UpsertSleepRating(ctx context.Context, rating domain.SleepRating) (int64, error) {
	var id int64
	err := r.store.pool.QueryRow(ctx, upsertSleepRatingSQL,
		rating.SessionID,
		rating.Date,
		rating.Rating,
		rating.Notes,
		rating.RecordedAt,
	).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "failed to upsert sleep rating")
	}
	return id, nil
}

func (r *JournalRepository) SleepRatings(ctx context.Context, since time.Time) ([]domain.SleepRating, error) {
	rows, err := r.store.pool.Query(ctx, sleepRatingsSQL, since.Format("2006-01-02"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch sleep ratings")
	}
	defer rows.Close()

	ratings := make([]domain.SleepRating, 0)
	for rows.Next() {
		var rating domain.SleepRating
		var day time.Time
		if err := rows.Scan(&rating.ID, &rating.SessionID, &day, &rating.Rating, &rating.Notes, &rating.RecordedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan sleep rating")
		}
		rating.Date = day.Format("2006-01-02")
		ratings = append(ratings, rating)
	}
	return ratings, errors.Wrap(rows.Err(), "failed to read sleep ratings")
}
