package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"symposium/internal/registration"
)

// PostgresStore stores registrations in the managed Postgres database.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres wraps an open *sql.DB.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgres opens a pool for url. No connection is made until first use.
func OpenPostgres(url string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	return NewPostgres(db), nil
}

func (s *PostgresStore) Insert(ctx context.Context, reg *registration.Registration) error {
	query := `
		INSERT INTO registrations (
			id, name, email, phone, college, department,
			year_of_study, selected_events, registered_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		reg.ID,
		reg.Name,
		reg.Email,
		reg.Phone,
		reg.College,
		reg.Department,
		reg.YearOfStudy,
		pq.Array(reg.SelectedEvents),
		reg.RegisteredAt,
	)
	if err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*registration.Registration, error) {
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
		var reg registration.Registration
		err := rows.Scan(
			&reg.ID,
			&reg.Name,
			&reg.Email,
			&reg.Phone,
			&reg.College,
			&reg.Department,
			&reg.YearOfStudy,
			pq.Array(&reg.SelectedEvents),
			&reg.RegisteredAt,
		)
		return &reg, err
	})
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
