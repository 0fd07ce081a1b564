// Package store is the persistence boundary: SQLite-backed, transactional,
// keyed by id. It holds no business logic and no caching; the state
// projection layered on top owns validation, cascades and consistency.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// queryer is satisfied by both *sql.DB and *sql.Tx so every entity
// method works inside and outside a transaction.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries bundles the per-entity operations over a queryer. Obtain one
// from Store directly, or transaction-scoped via InTx.
type Queries struct {
	q queryer
}

// Store owns the database handle.
type Store struct {
	Queries
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path and runs
// migrations. The parent directory is created when missing.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{Queries: Queries{q: db}, db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// InTx runs fn inside a single transaction, committing on nil and
// rolling back on error. Cascading deletes use it so a cascade is atomic
// with respect to the store.
func (s *Store) InTx(ctx context.Context, fn func(q *Queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(&Queries{q: tx}); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// runMigrations creates all tables and indexes.
func runMigrations(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS applicants (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL,
		first_name    TEXT,
		last_name     TEXT,
		email         TEXT,
		photo_url     TEXT,
		contact_info  TEXT,
		description   TEXT,
		cv_url        TEXT,
		legacy_skills TEXT
	);

	CREATE TABLE IF NOT EXISTS applicant_skills (
		applicant_id TEXT NOT NULL,
		position     INTEGER NOT NULL,
		skill        TEXT NOT NULL,
		PRIMARY KEY (applicant_id, position),
		FOREIGN KEY (applicant_id) REFERENCES applicants(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS employers (
		id              TEXT PRIMARY KEY,
		username        TEXT NOT NULL,
		first_name      TEXT,
		last_name       TEXT,
		email           TEXT,
		photo_url       TEXT,
		description     TEXT,
		enterprise_name TEXT,
		company_id      TEXT
	);

	CREATE TABLE IF NOT EXISTS companies (
		id                TEXT PRIMARY KEY,
		owner_employer_id TEXT,
		name              TEXT NOT NULL,
		location          TEXT,
		description       TEXT
	);

	CREATE TABLE IF NOT EXISTS job_offers (
		id              TEXT PRIMARY KEY,
		employer_id     TEXT NOT NULL,
		company_id      TEXT,
		title           TEXT NOT NULL,
		description     TEXT,
		employment_type TEXT,
		status          TEXT NOT NULL DEFAULT 'Draft',
		start_date      TEXT,
		end_date        TEXT,
		created_at      TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS job_offer_skills (
		offer_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		skill    TEXT NOT NULL,
		PRIMARY KEY (offer_id, position),
		FOREIGN KEY (offer_id) REFERENCES job_offers(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS job_offer_qualifications (
		offer_id      TEXT NOT NULL,
		position      INTEGER NOT NULL,
		qualification TEXT NOT NULL,
		PRIMARY KEY (offer_id, position),
		FOREIGN KEY (offer_id) REFERENCES job_offers(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS applications (
		id           TEXT PRIMARY KEY,
		job_offer_id TEXT NOT NULL,
		applicant_id TEXT NOT NULL,
		status       TEXT NOT NULL DEFAULT 'Submitted',
		match_score  REAL,
		submitted_at TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS interviews (
		id               TEXT PRIMARY KEY,
		job_offer_id     TEXT NOT NULL,
		applicant_id     TEXT NOT NULL,
		scheduled_at     TEXT NOT NULL,
		mode             TEXT NOT NULL DEFAULT 'Online',
		status           TEXT NOT NULL DEFAULT 'Scheduled',
		location_or_link TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_job_offers_employer ON job_offers(employer_id);
	CREATE INDEX IF NOT EXISTS idx_job_offers_company ON job_offers(company_id);
	CREATE INDEX IF NOT EXISTS idx_applications_offer ON applications(job_offer_id);
	CREATE INDEX IF NOT EXISTS idx_applications_applicant ON applications(applicant_id);
	CREATE INDEX IF NOT EXISTS idx_interviews_offer ON interviews(job_offer_id);
	CREATE INDEX IF NOT EXISTS idx_interviews_applicant ON interviews(applicant_id);
	CREATE INDEX IF NOT EXISTS idx_companies_owner ON companies(owner_employer_id);
	`

	_, err := db.Exec(schema)
	return err
}
