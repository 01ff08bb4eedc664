package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"symposium/internal/registration"
)

// sqliteTimeLayout is fixed-width so text ordering matches time ordering.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore stores registrations in a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens dsn (a path, "file:" URI or ":memory:") and applies the schema.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer; also keeps ":memory:" databases on a single connection.
	db.SetMaxOpenConns(1)

	ddl, err := Schema("sqlite")
	if err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Insert(ctx context.Context, reg *registration.Registration) error {
	events, err := json.Marshal(reg.SelectedEvents)
	if err != nil {
		return fmt.Errorf("encode selected events: %w", err)
	}

	query := `
		INSERT INTO registrations (
			id, name, email, phone, college, department,
			year_of_study, selected_events, registered_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.ExecContext(ctx, query,
		reg.ID.String(),
		reg.Name,
		reg.Email,
		reg.Phone,
		reg.College,
		reg.Department,
		reg.YearOfStudy,
		string(events),
		reg.RegisteredAt.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]*registration.Registration, error) {
	query := `
		SELECT id, name, email, phone, college, department,
		       year_of_study, selected_events, registered_at
		FROM registrations
		ORDER BY registered_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query registrations: %w", err)
	}
	defer rows.Close()

	return collect(rows, func() (*registration.Registration, error) {
		var (
			reg          registration.Registration
			id           string
			events       string
			registeredAt string
		)
		if err := rows.Scan(
			&id,
			&reg.Name,
			&reg.Email,
			&reg.Phone,
			&reg.College,
			&reg.Department,
			&reg.YearOfStudy,
			&events,
			&registeredAt,
		); err != nil {
			return nil, err
		}

		parsedID, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse id: %w", err)
		}
		reg.ID = parsedID
		if err := json.Unmarshal([]byte(events), &reg.SelectedEvents); err != nil {
			return nil, fmt.Errorf("decode selected events: %w", err)
		}
		if reg.RegisteredAt, err = time.Parse(sqliteTimeLayout, registeredAt); err != nil {
			return nil, fmt.Errorf("parse registered_at: %w", err)
		}
		return &reg, nil
	})
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
