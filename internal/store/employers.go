package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/doplab/jobfinder/pkg/models"
)

const employerColumns = `id, username, first_name, last_name, email, photo_url,
	description, enterprise_name, company_id`

// InsertEmployer writes a new employer row.
func (s *Queries) InsertEmployer(ctx context.Context, e *models.Employer) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO employers (`+employerColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID.String(), e.Username, e.FirstName, e.LastName, e.Email, e.PhotoURL,
		e.Description, e.EnterpriseName, uuidPtrText(e.CompanyID))
	if err != nil {
		return fmt.Errorf("insert employer: %w", err)
	}
	return nil
}

// UpdateEmployer rewrites an employer row.
func (s *Queries) UpdateEmployer(ctx context.Context, e *models.Employer) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE employers SET username=?, first_name=?, last_name=?, email=?, photo_url=?,
			description=?, enterprise_name=?, company_id=? WHERE id=?`,
		e.Username, e.FirstName, e.LastName, e.Email, e.PhotoURL,
		e.Description, e.EnterpriseName, uuidPtrText(e.CompanyID), e.ID.String())
	if err != nil {
		return fmt.Errorf("update employer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update employer %s: no such row", e.ID)
	}
	return nil
}

// GetEmployer returns the employer, or nil when absent.
func (s *Queries) GetEmployer(ctx context.Context, id uuid.UUID) (*models.Employer, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+employerColumns+` FROM employers WHERE id=?`, id.String())
	e, err := scanEmployer(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get employer: %w", err)
	}
	return e, nil
}

// ListEmployers returns all employers.
func (s *Queries) ListEmployers(ctx context.Context) ([]*models.Employer, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT `+employerColumns+` FROM employers`)
	if err != nil {
		return nil, fmt.Errorf("list employers: %w", err)
	}
	defer rows.Close()

	var employers []*models.Employer
	for rows.Next() {
		e, err := scanEmployer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employer: %w", err)
		}
		employers = append(employers, e)
	}
	return employers, rows.Err()
}

// DeleteEmployer removes an employer row.
func (s *Queries) DeleteEmployer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.q.ExecContext(ctx, `DELETE FROM employers WHERE id=?`, id.String()); err != nil {
		return fmt.Errorf("delete employer: %w", err)
	}
	return nil
}

func scanEmployer(row rowScanner) (*models.Employer, error) {
	e := &models.Employer{}
	var rawID string
	var companyID sql.NullString
	if err := row.Scan(&rawID, &e.Username, &e.FirstName, &e.LastName, &e.Email, &e.PhotoURL,
		&e.Description, &e.EnterpriseName, &companyID); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse employer id %q: %w", rawID, err)
	}
	e.ID = id
	e.CompanyID, err = parseUUIDPtr(companyID)
	if err != nil {
		return nil, fmt.Errorf("parse employer company id: %w", err)
	}
	return e, nil
}
