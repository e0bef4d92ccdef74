package persistence

import (
	"context"
	"time"

	"github.com/felixgeelhaar/daybreak/internal/calendar/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresEventRepository implements domain.EventRepository using PostgreSQL.
type PostgresEventRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEventRepository creates a new PostgreSQL event repository.
func NewPostgresEventRepository(pool *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{pool: pool}
}

// EnsureSchema creates the events table when missing.
func (r *PostgresEventRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS events (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			start_at TIMESTAMPTZ NOT NULL,
			end_at TIMESTAMPTZ NOT NULL,
			location TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_events_span ON events (start_at, end_at);
	`
	_, err := r.pool.Exec(ctx, query)
	return err
}

// Save persists an event (create or update).
func (r *PostgresEventRepository) Save(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (id, title, start_at, end_at, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			start_at = EXCLUDED.start_at,
			end_at = EXCLUDED.end_at,
			location = EXCLUDED.location,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query,
		event.ID(),
		event.Title(),
		event.Start(),
		event.End(),
		string(event.Location()),
		event.CreatedAt(),
		event.UpdatedAt(),
	)
	return err
}

// FindByDay finds all events overlapping the given calendar day.
func (r *PostgresEventRepository) FindByDay(ctx context.Context, day time.Time) ([]*domain.Event, error) {
	y, m, d := day.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := `
		SELECT id, title, start_at, end_at, location, created_at, updated_at
		FROM events
		WHERE start_at < $1 AND end_at > $2
		ORDER BY start_at
	`
	rows, err := r.pool.Query(ctx, query, dayEnd, dayStart)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		var (
			id        uuid.UUID
			title     string
			start     time.Time
			end       time.Time
			location  string
			createdAt time.Time
			updatedAt time.Time
		)
		if err := rows.Scan(&id, &title, &start, &end, &location, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		events = append(events, domain.RehydrateEvent(id, title, start, end, domain.LocationLabel(location), createdAt, updatedAt))
	}
	return events, rows.Err()
}

// Delete removes an event.
func (r *PostgresEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	return err
}
