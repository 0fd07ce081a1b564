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

// CompanyPatch carries a partial company update. Nil fields are not
// applied; blanks never erase. The owner is preserved when not sent and
// cleared when sent as the zero uuid.
type CompanyPatch struct {
	Name            *string
	Location        *string
	Description     *string
	OwnerEmployerID *uuid.UUID
}

// CreateCompany validates, persists and caches a new company.
func (s *State) CreateCompany(ctx context.Context, c *models.Company) (*models.Company, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, fmt.Errorf("company name is required: %w", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneCompany(c)
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	if stored.OwnerEmployerID != nil {
		ok, err := s.employerExistsLocked(ctx, *stored.OwnerEmployerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("unknown employer %s: %w", *stored.OwnerEmployerID, ErrValidation)
		}
	}

	if err := s.store.InsertCompany(ctx, stored); err != nil {
		return nil, err
	}
	s.companies[stored.ID] = stored
	if stored.OwnerEmployerID != nil {
		addToIndex(s.companiesByOwner, *stored.OwnerEmployerID, stored.ID)
	}
	s.log.Debug("company created", zap.String("id", stored.ID.String()))
	return cloneCompany(stored), nil
}

// GetCompany serves from the cache with a store fallback on miss.
func (s *State) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	s.mu.RLock()
	if c, ok := s.companies[id]; ok {
		out := cloneCompany(c)
		s.mu.RUnlock()
		return out, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.companyLocked(ctx, id)
	if err != nil {
		return nil, err
	}
	return cloneCompany(c), nil
}

// ListCompanies returns every cached company sorted by name.
func (s *State) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Company, 0, len(s.companies))
	for _, c := range s.companies {
		out = append(out, cloneCompany(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// CompaniesByOwner returns the companies whose owner edge points at the
// given employer.
func (s *State) CompaniesByOwner(ctx context.Context, employerID uuid.UUID) ([]*models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Company
	for id := range s.companiesByOwner[employerID] {
		if c, ok := s.companies[id]; ok {
			out = append(out, cloneCompany(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// UpdateCompany merges the patch into the authoritative record,
// persists it and refreshes the cache and the owner index.
func (s *State) UpdateCompany(ctx context.Context, id uuid.UUID, patch CompanyPatch) (*models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.store.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("company %s: %w", id, ErrNotFound)
	}

	oldOwner := c.OwnerEmployerID
	mergeString(&c.Name, patch.Name)
	mergeString(&c.Location, patch.Location)
	mergeString(&c.Description, patch.Description)
	mergeRef(&c.OwnerEmployerID, patch.OwnerEmployerID)
	if c.OwnerEmployerID != nil && (oldOwner == nil || *oldOwner != *c.OwnerEmployerID) {
		ok, err := s.employerExistsLocked(ctx, *c.OwnerEmployerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("unknown employer %s: %w", *c.OwnerEmployerID, ErrValidation)
		}
	}

	if err := s.store.UpdateCompany(ctx, c); err != nil {
		return nil, err
	}
	s.companies[id] = c
	if oldOwner != nil {
		removeFromIndex(s.companiesByOwner, *oldOwner, id)
	}
	if c.OwnerEmployerID != nil {
		addToIndex(s.companiesByOwner, *c.OwnerEmployerID, id)
	}
	s.log.Debug("company updated", zap.String("id", id.String()))
	return cloneCompany(c), nil
}

// DeleteCompany removes the company and detaches referencing job offers
// and employers. Nothing else is deleted.
func (s *State) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.store.GetCompany(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("company %s: %w", id, ErrNotFound)
	}

	offerIDs := indexIDs(s.offersByCompany, id)
	employerIDs := indexIDs(s.employersByCompany, id)
	detachedOffers := make([]*models.JobOffer, 0, len(offerIDs))
	for _, offerID := range offerIDs {
		if o, ok := s.offers[offerID]; ok {
			detached := cloneOffer(o)
			detached.CompanyID = nil
			detachedOffers = append(detachedOffers, detached)
		}
	}
	detachedEmployers := make([]*models.Employer, 0, len(employerIDs))
	for _, employerID := range employerIDs {
		if e, ok := s.employers[employerID]; ok {
			detached := cloneEmployer(e)
			detached.CompanyID = nil
			detachedEmployers = append(detachedEmployers, detached)
		}
	}

	err = s.store.InTx(ctx, func(q *store.Queries) error {
		for _, o := range detachedOffers {
			if err := q.UpdateOffer(ctx, o); err != nil {
				return err
			}
		}
		for _, e := range detachedEmployers {
			if err := q.UpdateEmployer(ctx, e); err != nil {
				return err
			}
		}
		return q.DeleteCompany(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete company %s: %w", id, err)
	}

	for _, o := range detachedOffers {
		s.offers[o.ID] = o
	}
	for _, e := range detachedEmployers {
		s.employers[e.ID] = e
	}
	if c.OwnerEmployerID != nil {
		removeFromIndex(s.companiesByOwner, *c.OwnerEmployerID, id)
	}
	delete(s.companies, id)
	delete(s.offersByCompany, id)
	delete(s.employersByCompany, id)
	s.log.Debug("company deleted",
		zap.String("id", id.String()),
		zap.Int("detached_offers", len(detachedOffers)),
		zap.Int("detached_employers", len(detachedEmployers)))
	return nil
}

// companyLocked resolves a company by id under the write lock, cache
// first then store, caching a hit.
func (s *State) companyLocked(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	if c, ok := s.companies[id]; ok {
		return c, nil
	}
	c, err := s.store.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("company %s: %w", id, ErrNotFound)
	}
	s.companies[id] = c
	if c.OwnerEmployerID != nil {
		addToIndex(s.companiesByOwner, *c.OwnerEmployerID, id)
	}
	return c, nil
}

// employerLocked resolves an employer by id under the write lock.
func (s *State) employerLocked(ctx context.Context, id uuid.UUID) (*models.Employer, error) {
	if e, ok := s.employers[id]; ok {
		return e, nil
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
	return e, nil
}

// applicantLocked resolves an applicant by id under the write lock.
func (s *State) applicantLocked(ctx context.Context, id uuid.UUID) (*models.Applicant, error) {
	if a, ok := s.applicants[id]; ok {
		return a, nil
	}
	a, err := s.store.GetApplicant(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("applicant %s: %w", id, ErrNotFound)
	}
	s.applicants[id] = a
	return a, nil
}

// offerLocked resolves a job offer by id under the write lock.
func (s *State) offerLocked(ctx context.Context, id uuid.UUID) (*models.JobOffer, error) {
	if o, ok := s.offers[id]; ok {
		return o, nil
	}
	o, err := s.store.GetOffer(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("job offer %s: %w", id, ErrNotFound)
	}
	s.offers[id] = o
	addToIndex(s.offersByEmployer, o.EmployerID, id)
	if o.CompanyID != nil {
		addToIndex(s.offersByCompany, *o.CompanyID, id)
	}
	return o, nil
}
