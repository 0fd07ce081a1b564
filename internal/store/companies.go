package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/doplab/jobfinder/pkg/models"
)

const companyColumns = `id, owner_employer_id, name, location, description`

// InsertCompany writes a new company row.
func (s *Queries) InsertCompany(ctx context.Context, c *models.Company) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO companies (`+companyColumns+`) VALUES (?, ?, ?, ?, ?)`,
		c.ID.String(), uuidPtrText(c.OwnerEmployerID), c.Name, c.Location, c.Description)
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// UpdateCompany rewrites a company row.
func (s *Queries) UpdateCompany(ctx context.Context, c *models.Company) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE companies SET owner_employer_id=?, name=?, location=?, description=? WHERE id=?`,
		uuidPtrText(c.OwnerEmployerID), c.Name, c.Location, c.Description, c.ID.String())
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update company %s: no such row", c.ID)
	}
	return nil
}

// GetCompany returns the company, or nil when absent.
func (s *Queries) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE id=?`, id.String())
	c, err := scanCompany(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// ListCompanies returns all companies.
func (s *Queries) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT `+companyColumns+` FROM companies`)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var companies []*models.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// DeleteCompany removes a company row.
func (s *Queries) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	if _, err := s.q.ExecContext(ctx, `DELETE FROM companies WHERE id=?`, id.String()); err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}

func scanCompany(row rowScanner) (*models.Company, error) {
	c := &models.Company{}
	var rawID string
	var ownerID sql.NullString
	if err := row.Scan(&rawID, &ownerID, &c.Name, &c.Location, &c.Description); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse company id %q: %w", rawID, err)
	}
	c.ID = id
	c.OwnerEmployerID, err = parseUUIDPtr(ownerID)
	if err != nil {
		return nil, fmt.Errorf("parse company owner id: %w", err)
	}
	return c, nil
}
