package state

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/doplab/jobfinder/internal/store"
	"github.com/doplab/jobfinder/pkg/models"
)

// EmployerPatch carries a partial employer update. Nil fields are not
// applied; person fields ignore blanks. CompanyID uses the zero uuid to
// detach from the current company.
type EmployerPatch struct {
	Username       *string
	FirstName      *string
	LastName       *string
	Email          *string
	PhotoURL       *string
	Description    *string
	EnterpriseName *string
	CompanyID      *uuid.UUID
}

// CreateEmployer validates, persists and caches a new employer.
func (s *State) CreateEmployer(ctx context.Context, e *models.Employer) (*models.Employer, error) {
	if strings.TrimSpace(e.Username) == "" {
		return nil, fmt.Errorf("employer username is required: %w", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneEmployer(e)
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	if stored.CompanyID != nil {
		ok, err := s.companyExistsLocked(ctx, *stored.CompanyID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("unknown company %s: %w", *stored.CompanyID, ErrValidation)
		}
	}

	if err := s.store.InsertEmployer(ctx, stored); err != nil {
		return nil, err
	}
	s.employers[stored.ID] = stored
	if stored.CompanyID != nil {
		addToIndex(s.employersByCompany, *stored.CompanyID, stored.ID)
	}
	s.log.Debug("employer created", zap.String("id", stored.ID.String()))
	return cloneEmployer(stored), nil
}

// GetEmployer serves from the cache with a store fallback on miss.
func (s *State) GetEmployer(ctx context.Context, id uuid.UUID) (*models.Employer, error) {
	s.mu.RLock()
	if e, ok := s.employers[id]; ok {
		c := cloneEmployer(e)
		s.mu.RUnlock()
		return c, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.employers[id]; ok {
		return cloneEmployer(e), nil
	}
	e, err := s.store.GetEmployer(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("employer %s: %w", id, ErrNotFound)
	}
	s.employers[id] = e
	if e.CompanyID != nil {
		addToIndex(s.employersByCompany, *e.CompanyID, id)
	}
	return cloneEmployer(e), nil
}

// ListEmployers returns every cached employer sorted by username.
func (s *State) ListEmployers(ctx context.Context) ([]*models.Employer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Employer, 0, len(s.employers))
	for _, e := range s.employers {
		out = append(out, cloneEmployer(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// UpdateEmployer merges the patch into the authoritative record,
// persists it and refreshes the cache and the company index.
func (s *State) UpdateEmployer(ctx context.Context, id uuid.UUID, patch EmployerPatch) (*models.Employer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.store.GetEmployer(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("employer %s: %w", id, ErrNotFound)
	}

	oldCompany := e.CompanyID
	mergeString(&e.Username, patch.Username)
	mergeString(&e.FirstName, patch.FirstName)
	mergeString(&e.LastName, patch.LastName)
	mergeString(&e.Email, patch.Email)
	mergeString(&e.PhotoURL, patch.PhotoURL)
	setString(&e.Description, patch.Description)
	setString(&e.EnterpriseName, patch.EnterpriseName)
	mergeRef(&e.CompanyID, patch.CompanyID)
	if e.CompanyID != nil && (oldCompany == nil || *oldCompany != *e.CompanyID) {
		ok, err := s.companyExistsLocked(ctx, *e.CompanyID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("unknown company %s: %w", *e.CompanyID, ErrValidation)
		}
	}

	if err := s.store.UpdateEmployer(ctx, e); err != nil {
		return nil, err
	}
	s.employers[id] = e
	if oldCompany != nil {
		removeFromIndex(s.employersByCompany, *oldCompany, id)
	}
	if e.CompanyID != nil {
		addToIndex(s.employersByCompany, *e.CompanyID, id)
	}
	s.log.Debug("employer updated", zap.String("id", id.String()))
	return cloneEmployer(e), nil
}

// DeleteEmployer removes the employer and every offer it owns,
// transitively with their applications and interviews, in one store
// transaction.
func (s *State) DeleteEmployer(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.store.GetEmployer(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("employer %s: %w", id, ErrNotFound)
	}

	offerIDs := indexIDs(s.offersByEmployer, id)
	var appIDs, interviewIDs []uuid.UUID
	for _, offerID := range offerIDs {
		appIDs = append(appIDs, indexIDs(s.applicationsByOffer, offerID)...)
		interviewIDs = append(interviewIDs, indexIDs(s.interviewsByOffer, offerID)...)
	}
	// Companies owned by this employer are detached, not deleted.
	ownedCompanyIDs := indexIDs(s.companiesByOwner, id)
	detachedCompanies := make([]*models.Company, 0, len(ownedCompanyIDs))
	for _, companyID := range ownedCompanyIDs {
		if c, ok := s.companies[companyID]; ok {
			detached := cloneCompany(c)
			detached.OwnerEmployerID = nil
			detachedCompanies = append(detachedCompanies, detached)
		}
	}

	err = s.store.InTx(ctx, func(q *store.Queries) error {
		for _, ivID := range interviewIDs {
			if err := q.DeleteInterview(ctx, ivID); err != nil {
				return err
			}
		}
		for _, appID := range appIDs {
			if err := q.DeleteApplication(ctx, appID); err != nil {
				return err
			}
		}
		for _, offerID := range offerIDs {
			if err := q.DeleteOffer(ctx, offerID); err != nil {
				return err
			}
		}
		for _, c := range detachedCompanies {
			if err := q.UpdateCompany(ctx, c); err != nil {
				return err
			}
		}
		return q.DeleteEmployer(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete employer %s: %w", id, err)
	}

	for _, ivID := range interviewIDs {
		s.dropInterviewLocked(ivID)
	}
	for _, appID := range appIDs {
		s.dropApplicationLocked(appID)
	}
	for _, offerID := range offerIDs {
		s.dropOfferLocked(offerID)
	}
	for _, c := range detachedCompanies {
		s.companies[c.ID] = c
	}
	if e.CompanyID != nil {
		removeFromIndex(s.employersByCompany, *e.CompanyID, id)
	}
	delete(s.employers, id)
	delete(s.offersByEmployer, id)
	delete(s.companiesByOwner, id)
	s.log.Debug("employer deleted",
		zap.String("id", id.String()),
		zap.Int("offers", len(offerIDs)),
		zap.Int("applications", len(appIDs)))
	return nil
}
