package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/doplab/jobfinder/pkg/models"
)

const offerColumns = `id, employer_id, company_id, title, description, employment_type,
	status, start_date, end_date, created_at`

// InsertOffer writes a new job offer row plus its requirement lists.
func (s *Queries) InsertOffer(ctx context.Context, o *models.JobOffer) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO job_offers (`+offerColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID.String(), o.EmployerID.String(), uuidPtrText(o.CompanyID),
		o.Title, o.Description, o.EmploymentType, string(o.Status),
		timePtrText(o.StartDate), timePtrText(o.EndDate), timeText(o.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert offer: %w", err)
	}
	return s.replaceOfferRequirements(ctx, o.ID, o.RequiredSkills, o.RequiredQualifications)
}

// UpdateOffer rewrites a job offer row and its requirement lists.
func (s *Queries) UpdateOffer(ctx context.Context, o *models.JobOffer) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE job_offers SET employer_id=?, company_id=?, title=?, description=?,
			employment_type=?, status=?, start_date=?, end_date=?, created_at=? WHERE id=?`,
		o.EmployerID.String(), uuidPtrText(o.CompanyID), o.Title, o.Description,
		o.EmploymentType, string(o.Status), timePtrText(o.StartDate), timePtrText(o.EndDate),
		timeText(o.CreatedAt), o.ID.String())
	if err != nil {
		return fmt.Errorf("update offer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update offer %s: no such row", o.ID)
	}
	return s.replaceOfferRequirements(ctx, o.ID, o.RequiredSkills, o.RequiredQualifications)
}

// GetOffer returns the job offer, or nil when absent.
func (s *Queries) GetOffer(ctx context.Context, id uuid.UUID) (*models.JobOffer, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+offerColumns+` FROM job_offers WHERE id=?`, id.String())
	o, err := scanOffer(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get offer: %w", err)
	}
	if err := s.loadOfferRequirements(ctx, map[uuid.UUID]*models.JobOffer{o.ID: o}); err != nil {
		return nil, err
	}
	return o, nil
}

// ListOffers returns all job offers with their requirement lists.
func (s *Queries) ListOffers(ctx context.Context) ([]*models.JobOffer, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT `+offerColumns+` FROM job_offers`)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	defer rows.Close()

	var offers []*models.JobOffer
	byID := make(map[uuid.UUID]*models.JobOffer)
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		offers = append(offers, o)
		byID[o.ID] = o
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	if err := s.loadOfferRequirements(ctx, byID); err != nil {
		return nil, err
	}
	return offers, nil
}

// DeleteOffer removes a job offer row; requirement lists go with it.
func (s *Queries) DeleteOffer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.q.ExecContext(ctx, `DELETE FROM job_offers WHERE id=?`, id.String()); err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}
	return nil
}

func (s *Queries) replaceOfferRequirements(ctx context.Context, id uuid.UUID, skills, quals []string) error {
	if _, err := s.q.ExecContext(ctx,
		`DELETE FROM job_offer_skills WHERE offer_id=?`, id.String()); err != nil {
		return fmt.Errorf("clear offer skills: %w", err)
	}
	for i, skill := range skills {
		if _, err := s.q.ExecContext(ctx,
			`INSERT INTO job_offer_skills (offer_id, position, skill) VALUES (?, ?, ?)`,
			id.String(), i, skill); err != nil {
			return fmt.Errorf("insert offer skill: %w", err)
		}
	}
	if _, err := s.q.ExecContext(ctx,
		`DELETE FROM job_offer_qualifications WHERE offer_id=?`, id.String()); err != nil {
		return fmt.Errorf("clear offer qualifications: %w", err)
	}
	for i, qual := range quals {
		if _, err := s.q.ExecContext(ctx,
			`INSERT INTO job_offer_qualifications (offer_id, position, qualification) VALUES (?, ?, ?)`,
			id.String(), i, qual); err != nil {
			return fmt.Errorf("insert offer qualification: %w", err)
		}
	}
	return nil
}

func (s *Queries) loadOfferRequirements(ctx context.Context, byID map[uuid.UUID]*models.JobOffer) error {
	if len(byID) == 0 {
		return nil
	}
	err := s.appendOfferList(ctx,
		`SELECT offer_id, skill FROM job_offer_skills ORDER BY offer_id, position`,
		byID, func(o *models.JobOffer, v string) { o.RequiredSkills = append(o.RequiredSkills, v) })
	if err != nil {
		return err
	}
	return s.appendOfferList(ctx,
		`SELECT offer_id, qualification FROM job_offer_qualifications ORDER BY offer_id, position`,
		byID, func(o *models.JobOffer, v string) {
			o.RequiredQualifications = append(o.RequiredQualifications, v)
		})
}

func (s *Queries) appendOfferList(ctx context.Context, query string,
	byID map[uuid.UUID]*models.JobOffer, add func(*models.JobOffer, string)) error {
	rows, err := s.q.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("load offer requirements: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var rawID, value string
		if err := rows.Scan(&rawID, &value); err != nil {
			return fmt.Errorf("scan offer requirement: %w", err)
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			return fmt.Errorf("parse offer id %q: %w", rawID, err)
		}
		if o, ok := byID[id]; ok {
			add(o, value)
		}
	}
	return rows.Err()
}

func scanOffer(row rowScanner) (*models.JobOffer, error) {
	o := &models.JobOffer{}
	var rawID, rawEmployerID, status, createdAt string
	var companyID, startDate, endDate sql.NullString
	if err := row.Scan(&rawID, &rawEmployerID, &companyID, &o.Title, &o.Description,
		&o.EmploymentType, &status, &startDate, &endDate, &createdAt); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse offer id %q: %w", rawID, err)
	}
	o.ID = id
	o.EmployerID, err = uuid.Parse(rawEmployerID)
	if err != nil {
		return nil, fmt.Errorf("parse offer employer id %q: %w", rawEmployerID, err)
	}
	o.CompanyID, err = parseUUIDPtr(companyID)
	if err != nil {
		return nil, fmt.Errorf("parse offer company id: %w", err)
	}
	o.Status = models.OfferStatus(status)
	o.StartDate, err = parseTimePtr(startDate)
	if err != nil {
		return nil, fmt.Errorf("parse offer start date: %w", err)
	}
	o.EndDate, err = parseTimePtr(endDate)
	if err != nil {
		return nil, fmt.Errorf("parse offer end date: %w", err)
	}
	o.CreatedAt, err = parseTimeText(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse offer created at: %w", err)
	}
	return o, nil
}
