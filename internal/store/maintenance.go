package store

import (
	"context"
	"fmt"
)

// tables in child-first order so deletes never trip foreign keys.
var tables = []string{
	"interviews",
	"applications",
	"job_offer_qualifications",
	"job_offer_skills",
	"job_offers",
	"applicant_skills",
	"applicants",
	"employers",
	"companies",
}

// ClearAll deletes every row from every table, keeping the schema.
func (s *Queries) ClearAll(ctx context.Context) error {
	for _, table := range tables {
		if _, err := s.q.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// Reset drops every table and recreates the schema.
func (s *Store) Reset(ctx context.Context) error {
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, `DROP TABLE IF EXISTS `+table); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return runMigrations(s.db)
}
