package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/doplab/jobfinder/pkg/models"
)

const applicationColumns = `id, job_offer_id, applicant_id, status, match_score,
	submitted_at, updated_at`

// InsertApplication writes a new application row.
func (s *Queries) InsertApplication(ctx context.Context, a *models.Application) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO applications (`+applicationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID.String(), a.JobOfferID.String(), a.ApplicantID.String(), string(a.Status),
		scoreValue(a.MatchScore), timeText(a.SubmittedAt), timeText(a.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

// UpdateApplication rewrites an application row.
func (s *Queries) UpdateApplication(ctx context.Context, a *models.Application) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE applications SET job_offer_id=?, applicant_id=?, status=?, match_score=?,
			submitted_at=?, updated_at=? WHERE id=?`,
		a.JobOfferID.String(), a.ApplicantID.String(), string(a.Status),
		scoreValue(a.MatchScore), timeText(a.SubmittedAt), timeText(a.UpdatedAt), a.ID.String())
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update application %s: no such row", a.ID)
	}
	return nil
}

// GetApplication returns the application, or nil when absent.
func (s *Queries) GetApplication(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id=?`, id.String())
	a, err := scanApplication(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	return a, nil
}

// ListApplications returns all applications.
func (s *Queries) ListApplications(ctx context.Context) ([]*models.Application, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT `+applicationColumns+` FROM applications`)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var applications []*models.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		applications = append(applications, a)
	}
	return applications, rows.Err()
}

// DeleteApplication removes an application row.
func (s *Queries) DeleteApplication(ctx context.Context, id uuid.UUID) error {
	if _, err := s.q.ExecContext(ctx, `DELETE FROM applications WHERE id=?`, id.String()); err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	return nil
}

func scanApplication(row rowScanner) (*models.Application, error) {
	a := &models.Application{}
	var rawID, rawOfferID, rawApplicantID, status, submittedAt, updatedAt string
	var score sql.NullFloat64
	if err := row.Scan(&rawID, &rawOfferID, &rawApplicantID, &status, &score,
		&submittedAt, &updatedAt); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse application id %q: %w", rawID, err)
	}
	a.ID = id
	a.JobOfferID, err = uuid.Parse(rawOfferID)
	if err != nil {
		return nil, fmt.Errorf("parse application offer id %q: %w", rawOfferID, err)
	}
	a.ApplicantID, err = uuid.Parse(rawApplicantID)
	if err != nil {
		return nil, fmt.Errorf("parse application applicant id %q: %w", rawApplicantID, err)
	}
	a.Status = models.ApplicationStatus(status)
	a.MatchScore = scorePtr(score)
	a.SubmittedAt, err = parseTimeText(submittedAt)
	if err != nil {
		return nil, fmt.Errorf("parse application submitted at: %w", err)
	}
	a.UpdatedAt, err = parseTimeText(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse application updated at: %w", err)
	}
	return a, nil
}
