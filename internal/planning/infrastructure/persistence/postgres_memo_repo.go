package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/daybreak/internal/planning/domain/memo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresMemoRepository implements memo.Repository using PostgreSQL. It keeps
// the same row image as the SQLite repository; only placeholders and the
// timestamp handling differ.
type PostgresMemoRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresMemoRepository creates a new PostgreSQL memo repository.
func NewPostgresMemoRepository(pool *pgxpool.Pool) *PostgresMemoRepository {
	return &PostgresMemoRepository{pool: pool}
}

// EnsureSchema creates the memos table when missing.
func (r *PostgresMemoRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS memos (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			type TEXT NOT NULL,
			genre TEXT NOT NULL DEFAULT '',
			deadline TIMESTAMPTZ,
			goal_count INTEGER NOT NULL DEFAULT 0,
			goal_period TEXT,
			location TEXT NOT NULL,
			importance TEXT NOT NULL,
			session_mins INTEGER NOT NULL,
			total_mins INTEGER NOT NULL DEFAULT 0,
			last_activity TIMESTAMPTZ NOT NULL,
			available_from TIMESTAMPTZ,
			archived BOOLEAN NOT NULL DEFAULT FALSE,
			state JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_memos_archived ON memos (archived);
	`
	_, err := r.pool.Exec(ctx, query)
	return err
}

// Save persists a memo (create or update).
func (r *PostgresMemoRepository) Save(ctx context.Context, m *memo.Memo) error {
	query := `
		INSERT INTO memos (
			id, title, type, genre, deadline, goal_count, goal_period,
			location, importance, session_mins, total_mins, last_activity,
			available_from, archived, state, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			genre = EXCLUDED.genre,
			deadline = EXCLUDED.deadline,
			goal_count = EXCLUDED.goal_count,
			goal_period = EXCLUDED.goal_period,
			location = EXCLUDED.location,
			importance = EXCLUDED.importance,
			session_mins = EXCLUDED.session_mins,
			total_mins = EXCLUDED.total_mins,
			last_activity = EXCLUDED.last_activity,
			available_from = EXCLUDED.available_from,
			archived = EXCLUDED.archived,
			state = EXCLUDED.state,
			updated_at = EXCLUDED.updated_at
	`

	state, err := marshalState(m)
	if err != nil {
		return err
	}

	var goalCount int
	var goalPeriod *string
	if goal := m.Goal(); goal != nil {
		goalCount = goal.Count
		p := string(goal.Period)
		goalPeriod = &p
	}

	_, err = r.pool.Exec(ctx, query,
		m.ID(),
		m.Title(),
		string(m.Type()),
		m.Genre(),
		m.Deadline(),
		goalCount,
		goalPeriod,
		string(m.Location()),
		string(m.Importance()),
		m.SessionDuration(),
		m.TotalDurationExpected(),
		m.LastActivity(),
		m.AvailableFrom(),
		m.IsArchived(),
		[]byte(state),
		m.CreatedAt(),
		m.UpdatedAt(),
	)
	return err
}

// FindByID finds a memo by ID. Returns (nil, nil) when absent.
func (r *PostgresMemoRepository) FindByID(ctx context.Context, id uuid.UUID) (*memo.Memo, error) {
	query := `SELECT ` + memoColumns + ` FROM memos WHERE id = $1`
	m, err := r.scanRow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

// FindActive finds all non-archived memos.
func (r *PostgresMemoRepository) FindActive(ctx context.Context) ([]*memo.Memo, error) {
	query := `SELECT ` + memoColumns + ` FROM memos WHERE archived = FALSE ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memos []*memo.Memo
	for rows.Next() {
		m, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		memos = append(memos, m)
	}
	return memos, rows.Err()
}

// Delete removes a memo permanently.
func (r *PostgresMemoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM memos WHERE id = $1`, id)
	return err
}

func (r *PostgresMemoRepository) scanRow(row pgx.Row) (*memo.Memo, error) {
	var (
		id            uuid.UUID
		title         string
		memoType      string
		genre         string
		deadline      *time.Time
		goalCount     int
		goalPeriod    *string
		location      string
		importance    string
		sessionMins   int
		totalMins     int
		lastActivity  time.Time
		availableFrom *time.Time
		archived      bool
		state         []byte
		createdAt     time.Time
		updatedAt     time.Time
	)

	err := row.Scan(
		&id, &title, &memoType, &genre, &deadline, &goalCount, &goalPeriod,
		&location, &importance, &sessionMins, &totalMins, &lastActivity,
		&availableFrom, &archived, &state, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	parsedType, err := memo.ParseType(memoType)
	if err != nil {
		return nil, err
	}

	var goal *memo.RecurrenceGoal
	if goalPeriod != nil {
		period, err := memo.ParsePeriod(*goalPeriod)
		if err != nil {
			return nil, err
		}
		goal = &memo.RecurrenceGoal{Count: goalCount, Period: period}
	}

	var doc stateDocument
	if err := json.Unmarshal(state, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal memo state: %w", err)
	}

	m := memo.RehydrateMemo(
		id,
		title,
		parsedType,
		genre,
		deadline,
		goal,
		memo.LocationPreference(location),
		memo.Importance(importance),
		sessionMins,
		totalMins,
		lastActivity,
		availableFrom,
		archived,
		createdAt, updatedAt,
		doc.Routine,
		doc.Deadline,
		doc.Backlog,
	)

	if err := m.ValidateState(); err != nil {
		return nil, fmt.Errorf("memo %s: %w", id, err)
	}
	return m, nil
}
