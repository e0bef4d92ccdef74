// Package persistence provides the SQLite and PostgreSQL implementations of
// the planning context's repositories. The per-type state record is stored as
// a JSON document next to the flat memo columns; rehydration re-validates it
// so a corrupt row surfaces as memo.ErrMissingState instead of a panic later.
package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/felixgeelhaar/daybreak/internal/planning/domain/memo"
	"github.com/google/uuid"
)

// SQLiteMemoRepository implements memo.Repository using SQLite.
type SQLiteMemoRepository struct {
	db *sql.DB
}

// NewSQLiteMemoRepository creates a new SQLite memo repository.
func NewSQLiteMemoRepository(db *sql.DB) *SQLiteMemoRepository {
	return &SQLiteMemoRepository{db: db}
}

// EnsureSchema creates the memos table when missing. The single-user desktop
// deployment runs this at startup instead of a migration tool.
func (r *SQLiteMemoRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS memos (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			type TEXT NOT NULL,
			genre TEXT NOT NULL DEFAULT '',
			deadline TEXT,
			goal_count INTEGER NOT NULL DEFAULT 0,
			goal_period TEXT,
			location TEXT NOT NULL,
			importance TEXT NOT NULL,
			session_mins INTEGER NOT NULL,
			total_mins INTEGER NOT NULL DEFAULT 0,
			last_activity TEXT NOT NULL,
			available_from TEXT,
			archived INTEGER NOT NULL DEFAULT 0,
			state TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_memos_archived ON memos (archived);
	`
	_, err := r.db.ExecContext(ctx, query)
	return err
}

// Save persists a memo (create or update).
func (r *SQLiteMemoRepository) Save(ctx context.Context, m *memo.Memo) error {
	query := `
		INSERT INTO memos (
			id, title, type, genre, deadline, goal_count, goal_period,
			location, importance, session_mins, total_mins, last_activity,
			available_from, archived, state, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			genre = excluded.genre,
			deadline = excluded.deadline,
			goal_count = excluded.goal_count,
			goal_period = excluded.goal_period,
			location = excluded.location,
			importance = excluded.importance,
			session_mins = excluded.session_mins,
			total_mins = excluded.total_mins,
			last_activity = excluded.last_activity,
			available_from = excluded.available_from,
			archived = excluded.archived,
			state = excluded.state,
			updated_at = excluded.updated_at
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

	_, err = r.db.ExecContext(ctx, query,
		m.ID().String(),
		m.Title(),
		string(m.Type()),
		m.Genre(),
		formatNullableTime(m.Deadline()),
		goalCount,
		goalPeriod,
		string(m.Location()),
		string(m.Importance()),
		m.SessionDuration(),
		m.TotalDurationExpected(),
		m.LastActivity().Format(time.RFC3339Nano),
		formatNullableTime(m.AvailableFrom()),
		boolToInt(m.IsArchived()),
		state,
		m.CreatedAt().Format(time.RFC3339Nano),
		m.UpdatedAt().Format(time.RFC3339Nano),
	)
	return err
}

const memoColumns = `id, title, type, genre, deadline, goal_count, goal_period,
       location, importance, session_mins, total_mins, last_activity,
       available_from, archived, state, created_at, updated_at`

// FindByID finds a memo by ID. Returns (nil, nil) when absent.
func (r *SQLiteMemoRepository) FindByID(ctx context.Context, id uuid.UUID) (*memo.Memo, error) {
	query := `SELECT ` + memoColumns + ` FROM memos WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id.String())
	return scanMemoRow(row.Scan)
}

// FindActive finds all non-archived memos.
func (r *SQLiteMemoRepository) FindActive(ctx context.Context) ([]*memo.Memo, error) {
	query := `SELECT ` + memoColumns + ` FROM memos WHERE archived = 0 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memos []*memo.Memo
	for rows.Next() {
		m, err := scanMemoRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		memos = append(memos, m)
	}
	return memos, rows.Err()
}

// Delete removes a memo permanently.
func (r *SQLiteMemoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM memos WHERE id = ?`, id.String())
	return err
}

// scanMemoRow reads one row through any Scan-shaped function, so the single
// and multi-row paths share the rehydration logic.
func scanMemoRow(scan func(dest ...any) error) (*memo.Memo, error) {
	var (
		idStr         string
		title         string
		memoType      string
		genre         string
		deadline      sql.NullString
		goalCount     int
		goalPeriod    sql.NullString
		location      string
		importance    string
		sessionMins   int
		totalMins     int
		lastActivity  string
		availableFrom sql.NullString
		archived      int
		state         string
		createdAtStr  string
		updatedAtStr  string
	)

	err := scan(
		&idStr, &title, &memoType, &genre, &deadline, &goalCount, &goalPeriod,
		&location, &importance, &sessionMins, &totalMins, &lastActivity,
		&availableFrom, &archived, &state, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return buildMemo(memoRow{
		id:            idStr,
		title:         title,
		memoType:      memoType,
		genre:         genre,
		deadline:      nullableString(deadline),
		goalCount:     goalCount,
		goalPeriod:    nullableString(goalPeriod),
		location:      location,
		importance:    importance,
		sessionMins:   sessionMins,
		totalMins:     totalMins,
		lastActivity:  lastActivity,
		availableFrom: nullableString(availableFrom),
		archived:      archived != 0,
		state:         state,
		createdAt:     createdAtStr,
		updatedAt:     updatedAtStr,
	})
}

// memoRow is the driver-neutral row image shared by the SQLite and Postgres
// repositories.
type memoRow struct {
	id            string
	title         string
	memoType      string
	genre         string
	deadline      *string
	goalCount     int
	goalPeriod    *string
	location      string
	importance    string
	sessionMins   int
	totalMins     int
	lastActivity  string
	availableFrom *string
	archived      bool
	state         string
	createdAt     string
	updatedAt     string
}

// stateDocument is the JSON shape of the state column. Exactly one field is
// set, matching the memo type.
type stateDocument struct {
	Routine  *memo.RoutineState  `json:"routine,omitempty"`
	Deadline *memo.DeadlineState `json:"deadline,omitempty"`
	Backlog  *memo.BacklogState  `json:"backlog,omitempty"`
}

func marshalState(m *memo.Memo) (string, error) {
	if err := m.ValidateState(); err != nil {
		return "", err
	}
	doc := stateDocument{
		Routine:  m.Routine(),
		Deadline: m.DeadlineState(),
		Backlog:  m.Backlog(),
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal memo state: %w", err)
	}
	return string(raw), nil
}

func buildMemo(row memoRow) (*memo.Memo, error) {
	id, err := uuid.Parse(row.id)
	if err != nil {
		return nil, err
	}

	memoType, err := memo.ParseType(row.memoType)
	if err != nil {
		return nil, err
	}

	lastActivity, err := time.Parse(time.RFC3339Nano, row.lastActivity)
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339Nano, row.createdAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, row.updatedAt)
	if err != nil {
		return nil, err
	}

	deadline, err := parseNullableTime(row.deadline)
	if err != nil {
		return nil, err
	}
	availableFrom, err := parseNullableTime(row.availableFrom)
	if err != nil {
		return nil, err
	}

	var goal *memo.RecurrenceGoal
	if row.goalPeriod != nil {
		period, err := memo.ParsePeriod(*row.goalPeriod)
		if err != nil {
			return nil, err
		}
		goal = &memo.RecurrenceGoal{Count: row.goalCount, Period: period}
	}

	var doc stateDocument
	if err := json.Unmarshal([]byte(row.state), &doc); err != nil {
		return nil, fmt.Errorf("unmarshal memo state: %w", err)
	}

	m := memo.RehydrateMemo(
		id,
		row.title,
		memoType,
		row.genre,
		deadline,
		goal,
		memo.LocationPreference(row.location),
		memo.Importance(row.importance),
		row.sessionMins,
		row.totalMins,
		lastActivity,
		availableFrom,
		row.archived,
		createdAt, updatedAt,
		doc.Routine,
		doc.Deadline,
		doc.Backlog,
	)

	if err := m.ValidateState(); err != nil {
		return nil, fmt.Errorf("memo %s: %w", row.id, err)
	}
	return m, nil
}

func formatNullableTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339Nano)
	return &s
}

func parseNullableTime(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
