// Package persistence provides the SQLite and PostgreSQL event repositories.
package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/felixgeelhaar/daybreak/internal/calendar/domain"
	"github.com/google/uuid"
)

// SQLiteEventRepository implements domain.EventRepository using SQLite.
type SQLiteEventRepository struct {
	db *sql.DB
}

// NewSQLiteEventRepository creates a new SQLite event repository.
func NewSQLiteEventRepository(db *sql.DB) *SQLiteEventRepository {
	return &SQLiteEventRepository{db: db}
}

// EnsureSchema creates the events table when missing.
func (r *SQLiteEventRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			start_at TEXT NOT NULL,
			end_at TEXT NOT NULL,
			location TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_events_span ON events (start_at, end_at);
	`
	_, err := r.db.ExecContext(ctx, query)
	return err
}

// Save persists an event (create or update).
func (r *SQLiteEventRepository) Save(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (id, title, start_at, end_at, location, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			start_at = excluded.start_at,
			end_at = excluded.end_at,
			location = excluded.location,
			updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		event.ID().String(),
		event.Title(),
		event.Start().Format(time.RFC3339),
		event.End().Format(time.RFC3339),
		string(event.Location()),
		event.CreatedAt().Format(time.RFC3339),
		event.UpdatedAt().Format(time.RFC3339),
	)
	return err
}

// FindByDay finds all events overlapping the given calendar day, ordered by
// start time.
func (r *SQLiteEventRepository) FindByDay(ctx context.Context, day time.Time) ([]*domain.Event, error) {
	y, m, d := day.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := `
		SELECT id, title, start_at, end_at, location, created_at, updated_at
		FROM events
		WHERE start_at < ? AND end_at > ?
		ORDER BY start_at
	`
	rows, err := r.db.QueryContext(ctx, query,
		dayEnd.Format(time.RFC3339),
		dayStart.Format(time.RFC3339),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		var (
			idStr        string
			title        string
			startStr     string
			endStr       string
			location     string
			createdAtStr string
			updatedAtStr string
		)
		if err := rows.Scan(&idStr, &title, &startStr, &endStr, &location, &createdAtStr, &updatedAtStr); err != nil {
			return nil, err
		}

		event, err := buildEvent(idStr, title, startStr, endStr, location, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// Delete removes an event.
func (r *SQLiteEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id.String())
	return err
}

func buildEvent(idStr, title, startStr, endStr, location, createdAtStr, updatedAtStr string) (*domain.Event, error) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, err
	}
	updatedAt, err := time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateEvent(id, title, start, end, domain.LocationLabel(location), createdAt, updatedAt), nil
}
