package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/doplab/jobfinder/pkg/models"
)

const applicantColumns = `id, username, first_name, last_name, email, photo_url,
	contact_info, description, cv_url, legacy_skills`

// InsertApplicant writes a new applicant row plus its skill list.
func (s *Queries) InsertApplicant(ctx context.Context, a *models.Applicant) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO applicants (`+applicantColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID.String(), a.Username, a.FirstName, a.LastName, a.Email, a.PhotoURL,
		a.ContactInfo, a.Description, a.CVURL, a.LegacySkills)
	if err != nil {
		return fmt.Errorf("insert applicant: %w", err)
	}
	return s.replaceApplicantSkills(ctx, a.ID, a.Skills)
}

// UpdateApplicant rewrites an applicant row and its skill list.
func (s *Queries) UpdateApplicant(ctx context.Context, a *models.Applicant) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE applicants SET username=?, first_name=?, last_name=?, email=?, photo_url=?,
			contact_info=?, description=?, cv_url=?, legacy_skills=? WHERE id=?`,
		a.Username, a.FirstName, a.LastName, a.Email, a.PhotoURL,
		a.ContactInfo, a.Description, a.CVURL, a.LegacySkills, a.ID.String())
	if err != nil {
		return fmt.Errorf("update applicant: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update applicant %s: no such row", a.ID)
	}
	return s.replaceApplicantSkills(ctx, a.ID, a.Skills)
}

// GetApplicant returns the applicant, or nil when absent.
func (s *Queries) GetApplicant(ctx context.Context, id uuid.UUID) (*models.Applicant, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+applicantColumns+` FROM applicants WHERE id=?`, id.String())
	a, err := scanApplicant(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get applicant: %w", err)
	}
	a.Skills, err = s.applicantSkills(ctx, id)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListApplicants returns all applicants with their skill lists.
func (s *Queries) ListApplicants(ctx context.Context) ([]*models.Applicant, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT `+applicantColumns+` FROM applicants`)
	if err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}
	defer rows.Close()

	var applicants []*models.Applicant
	byID := make(map[uuid.UUID]*models.Applicant)
	for rows.Next() {
		a, err := scanApplicant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan applicant: %w", err)
		}
		applicants = append(applicants, a)
		byID[a.ID] = a
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}

	skillRows, err := s.q.QueryContext(ctx,
		`SELECT applicant_id, skill FROM applicant_skills ORDER BY applicant_id, position`)
	if err != nil {
		return nil, fmt.Errorf("list applicant skills: %w", err)
	}
	defer skillRows.Close()
	for skillRows.Next() {
		var rawID, skill string
		if err := skillRows.Scan(&rawID, &skill); err != nil {
			return nil, fmt.Errorf("scan applicant skill: %w", err)
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("parse applicant id %q: %w", rawID, err)
		}
		if a, ok := byID[id]; ok {
			a.Skills = append(a.Skills, skill)
		}
	}
	return applicants, skillRows.Err()
}

// DeleteApplicant removes an applicant row; the skill list goes with it.
func (s *Queries) DeleteApplicant(ctx context.Context, id uuid.UUID) error {
	if _, err := s.q.ExecContext(ctx, `DELETE FROM applicants WHERE id=?`, id.String()); err != nil {
		return fmt.Errorf("delete applicant: %w", err)
	}
	return nil
}

func (s *Queries) replaceApplicantSkills(ctx context.Context, id uuid.UUID, skills []string) error {
	if _, err := s.q.ExecContext(ctx,
		`DELETE FROM applicant_skills WHERE applicant_id=?`, id.String()); err != nil {
		return fmt.Errorf("clear applicant skills: %w", err)
	}
	for i, skill := range skills {
		if _, err := s.q.ExecContext(ctx,
			`INSERT INTO applicant_skills (applicant_id, position, skill) VALUES (?, ?, ?)`,
			id.String(), i, skill); err != nil {
			return fmt.Errorf("insert applicant skill: %w", err)
		}
	}
	return nil
}

func (s *Queries) applicantSkills(ctx context.Context, id uuid.UUID) ([]string, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT skill FROM applicant_skills WHERE applicant_id=? ORDER BY position`, id.String())
	if err != nil {
		return nil, fmt.Errorf("load applicant skills: %w", err)
	}
	defer rows.Close()

	var skills []string
	for rows.Next() {
		var skill string
		if err := rows.Scan(&skill); err != nil {
			return nil, fmt.Errorf("scan skill: %w", err)
		}
		skills = append(skills, skill)
	}
	return skills, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplicant(row rowScanner) (*models.Applicant, error) {
	a := &models.Applicant{}
	var rawID string
	if err := row.Scan(&rawID, &a.Username, &a.FirstName, &a.LastName, &a.Email, &a.PhotoURL,
		&a.ContactInfo, &a.Description, &a.CVURL, &a.LegacySkills); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse applicant id %q: %w", rawID, err)
	}
	a.ID = id
	return a, nil
}
