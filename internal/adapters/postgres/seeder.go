package postgres

import (
	"context"
	"time"

	"envmonitor/internal/domain"
	"envmonitor/internal/ports"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS sesiones (
		id SERIAL PRIMARY KEY,
		inicio TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE TABLE IF NOT EXISTS lecturas (
		id SERIAL PRIMARY KEY,
		timestamp TIMESTAMPTZ NOT NULL,
		temperatura DOUBLE PRECISION NOT NULL,
		humedad DOUBLE PRECISION NOT NULL,
		luz DOUBLE PRECISION,
		co2_estimado INTEGER,
		movimiento BOOLEAN DEFAULT FALSE,
		ruido BOOLEAN DEFAULT FALSE,
		calidad_calculada DOUBLE PRECISION
	);
	CREATE INDEX IF NOT EXISTS lecturas_timestamp_idx ON lecturas (timestamp);
	CREATE TABLE IF NOT EXISTS encuesta (
		id SERIAL PRIMARY KEY,
		sesion_id INTEGER REFERENCES sesiones (id),
		estres TEXT,
		timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE TABLE IF NOT EXISTS eventos (
		id SERIAL PRIMARY KEY,
		timestamp TIMESTAMPTZ NOT NULL,
		tipo TEXT NOT NULL,
		descripcion TEXT
	);
	CREATE TABLE IF NOT EXISTS estadisticas_diarias (
		id SERIAL PRIMARY KEY,
		sesion_id INTEGER REFERENCES sesiones (id),
		fecha DATE NOT NULL,
		calidad_sueno INTEGER CHECK (calidad_sueno BETWEEN 1 AND 5),
		notas TEXT,
		timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (sesion_id, fecha)
	);`

const insertSessionSQL = `INSERT INTO sesiones (inicio) VALUES ($1) RETURNING id`

const insertEventSQL = `INSERT INTO eventos (timestamp, tipo, descripcion) VALUES ($1, $2, $3)`

type Seeder struct {
	store *Store
}

// NewSeeder creates any missing table before returning the seeder.
func NewSeeder(ctx context.Context, store *Store) (ports.Seeder, error) {
	if _, err := store.pool.Exec(ctx, schemaSQL); err != nil {
		return nil, errors.Wrap(err, "failed to ensure schema")
	}
	return &Seeder{store: store}, nil
}

func (s *Seeder) CreateSession(ctx context.Context, startedAt time.Time) (int64, error) {
	var id int64
	if err := s.store.pool.QueryRow(ctx, insertSessionSQL, startedAt).Scan(&id); err != nil {
		return 0, errors.Wrap(err, "failed to insert session")
	}
	return id, nil
}

func (s *Seeder) InsertReadings(ctx context.Context, readings []domain.Reading) error {
	rows := make([][]any, len(readings))
	for i, r := range readings {
		rows[i] = []any{r.Timestamp, r.Temperature, r.Humidity, r.Light, r.CO2, r.Motion, r.Noise, r.Quality}
	}
	_, err := s.store.pool.CopyFrom(ctx,
		pgx.Identifier{"lecturas"},
		[]string{"timestamp", "temperatura", "humedad", "luz", "co2_estimado", "movimiento", "ruido", "calidad_calculada"},
		pgx.CopyFromRows(rows),
	)
	return errors.Wrap(err, "failed to copy readings")
}

func (s *Seeder) InsertEvents(ctx context.Context, events []domain.Event) error {
	batch := &pgx.Batch{}
	for _, e := range events {
		batch.Queue(insertEventSQL, e.Timestamp, storedEventType(e.Kind), e.Description)
	}
	return errors.Wrap(s.store.pool.SendBatch(ctx, batch).Close(), "failed to insert events")
}

func storedEventType(kind domain.EventKind) string {
	switch kind {
	case domain.EventMovement:
		return "movimiento"
	case domain.EventNoise:
		return "ruido"
	default:
		return "umbral"
	}
}
