package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/doplab/jobfinder/pkg/models"
)

const interviewColumns = `id, job_offer_id, applicant_id, scheduled_at, mode, status,
	location_or_link`

// InsertInterview writes a new interview row.
func (s *Queries) InsertInterview(ctx context.Context, iv *models.Interview) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO interviews (`+interviewColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		iv.ID.String(), iv.JobOfferID.String(), iv.ApplicantID.String(),
		timeText(iv.ScheduledAt), string(iv.Mode), string(iv.Status), iv.LocationOrLink)
	if err != nil {
		return fmt.Errorf("insert interview: %w", err)
	}
	return nil
}

// UpdateInterview rewrites an interview row.
func (s *Queries) UpdateInterview(ctx context.Context, iv *models.Interview) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE interviews SET job_offer_id=?, applicant_id=?, scheduled_at=?, mode=?,
			status=?, location_or_link=? WHERE id=?`,
		iv.JobOfferID.String(), iv.ApplicantID.String(), timeText(iv.ScheduledAt),
		string(iv.Mode), string(iv.Status), iv.LocationOrLink, iv.ID.String())
	if err != nil {
		return fmt.Errorf("update interview: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update interview %s: no such row", iv.ID)
	}
	return nil
}

// GetInterview returns the interview, or nil when absent.
func (s *Queries) GetInterview(ctx context.Context, id uuid.UUID) (*models.Interview, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+interviewColumns+` FROM interviews WHERE id=?`, id.String())
	iv, err := scanInterview(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get interview: %w", err)
	}
	return iv, nil
}

// ListInterviews returns all interviews.
func (s *Queries) ListInterviews(ctx context.Context) ([]*models.Interview, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT `+interviewColumns+` FROM interviews`)
	if err != nil {
		return nil, fmt.Errorf("list interviews: %w", err)
	}
	defer rows.Close()

	var interviews []*models.Interview
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan interview: %w", err)
		}
		interviews = append(interviews, iv)
	}
	return interviews, rows.Err()
}

// DeleteInterview removes an interview row.
func (s *Queries) DeleteInterview(ctx context.Context, id uuid.UUID) error {
	if _, err := s.q.ExecContext(ctx, `DELETE FROM interviews WHERE id=?`, id.String()); err != nil {
		return fmt.Errorf("delete interview: %w", err)
	}
	return nil
}

func scanInterview(row rowScanner) (*models.Interview, error) {
	iv := &models.Interview{}
	var rawID, rawOfferID, rawApplicantID, scheduledAt, mode, status string
	if err := row.Scan(&rawID, &rawOfferID, &rawApplicantID, &scheduledAt, &mode, &status,
		&iv.LocationOrLink); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse interview id %q: %w", rawID, err)
	}
	iv.ID = id
	iv.JobOfferID, err = uuid.Parse(rawOfferID)
	if err != nil {
		return nil, fmt.Errorf("parse interview offer id %q: %w", rawOfferID, err)
	}
	iv.ApplicantID, err = uuid.Parse(rawApplicantID)
	if err != nil {
		return nil, fmt.Errorf("parse interview applicant id %q: %w", rawApplicantID, err)
	}
	iv.ScheduledAt, err = parseTimeText(scheduledAt)
	if err != nil {
		return nil, fmt.Errorf("parse interview scheduled at: %w", err)
	}
	iv.Mode = models.InterviewMode(mode)
	iv.Status = models.InterviewStatus(status)
	return iv, nil
}
