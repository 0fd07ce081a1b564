package state

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/doplab/jobfinder/internal/store"
	"github.com/doplab/jobfinder/pkg/models"
)

// OfferPatch carries a partial job offer update. Nil fields are not
// applied. CompanyID uses the zero uuid to detach; non-nil requirement
// slices replace the stored lists wholesale. EmployerID is never
// patchable.
type OfferPatch struct {
	Title                  *string
	Description            *string
	EmploymentType         *string
	Status                 *models.OfferStatus
	StartDate              *time.Time
	EndDate                *time.Time
	CompanyID              *uuid.UUID
	RequiredSkills         []string
	RequiredQualifications []string
}

// CreateOffer validates the owning employer (and company when set),
// applies defaults, persists and caches. Defaults: fresh id, status
// Draft, CreatedAt now.
func (s *State) CreateOffer(ctx context.Context, o *models.JobOffer) (*models.JobOffer, error) {
	if strings.TrimSpace(o.Title) == "" {
		return nil, fmt.Errorf("offer title is required: %w", ErrValidation)
	}
	if o.Status != "" && !models.ValidOfferStatus(o.Status) {
		return nil, fmt.Errorf("unknown offer status %q: %w", o.Status, ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.employerExistsLocked(ctx, o.EmployerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("unknown employer %s: %w", o.EmployerID, ErrValidation)
	}
	if o.CompanyID != nil {
		ok, err := s.companyExistsLocked(ctx, *o.CompanyID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("unknown company %s: %w", *o.CompanyID, ErrValidation)
		}
	}

	stored := cloneOffer(o)
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	if stored.Status == "" {
		stored.Status = models.OfferDraft
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	stored.RequiredSkills = normalizePhrases(stored.RequiredSkills)
	stored.RequiredQualifications = normalizePhrases(stored.RequiredQualifications)

	if err := s.store.InsertOffer(ctx, stored); err != nil {
		return nil, err
	}
	s.offers[stored.ID] = stored
	addToIndex(s.offersByEmployer, stored.EmployerID, stored.ID)
	if stored.CompanyID != nil {
		addToIndex(s.offersByCompany, *stored.CompanyID, stored.ID)
	}
	s.log.Debug("offer created",
		zap.String("id", stored.ID.String()),
		zap.String("employer", stored.EmployerID.String()))
	return cloneOffer(stored), nil
}

// GetOffer serves from the cache with a store fallback on miss.
func (s *State) GetOffer(ctx context.Context, id uuid.UUID) (*models.JobOffer, error) {
	s.mu.RLock()
	if o, ok := s.offers[id]; ok {
		c := cloneOffer(o)
		s.mu.RUnlock()
		return c, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := s.offerLocked(ctx, id)
	if err != nil {
		return nil, err
	}
	return cloneOffer(o), nil
}

// ListOffers returns offers newest-first, optionally restricted to one
// employer.
func (s *State) ListOffers(ctx context.Context, employerID *uuid.UUID) ([]*models.JobOffer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.JobOffer
	if employerID != nil {
		for id := range s.offersByEmployer[*employerID] {
			if o, ok := s.offers[id]; ok {
				out = append(out, cloneOffer(o))
			}
		}
	} else {
		for _, o := range s.offers {
			out = append(out, cloneOffer(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// UpdateOffer merges the patch into the authoritative record, persists
// it and refreshes the cache and the company index. The owning employer
// cannot be repointed.
func (s *State) UpdateOffer(ctx context.Context, id uuid.UUID, patch OfferPatch) (*models.JobOffer, error) {
	if patch.Status != nil && !models.ValidOfferStatus(*patch.Status) {
		return nil, fmt.Errorf("unknown offer status %q: %w", *patch.Status, ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.store.GetOffer(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("job offer %s: %w", id, ErrNotFound)
	}

	oldCompany := o.CompanyID
	mergeString(&o.Title, patch.Title)
	setString(&o.Description, patch.Description)
	setString(&o.EmploymentType, patch.EmploymentType)
	if patch.Status != nil {
		o.Status = *patch.Status
	}
	if patch.StartDate != nil {
		t := *patch.StartDate
		o.StartDate = &t
	}
	if patch.EndDate != nil {
		t := *patch.EndDate
		o.EndDate = &t
	}
	mergeRef(&o.CompanyID, patch.CompanyID)
	if o.CompanyID != nil && (oldCompany == nil || *oldCompany != *o.CompanyID) {
		ok, err := s.companyExistsLocked(ctx, *o.CompanyID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("unknown company %s: %w", *o.CompanyID, ErrValidation)
		}
	}
	if patch.RequiredSkills != nil {
		o.RequiredSkills = normalizePhrases(patch.RequiredSkills)
	}
	if patch.RequiredQualifications != nil {
		o.RequiredQualifications = normalizePhrases(patch.RequiredQualifications)
	}

	if err := s.store.UpdateOffer(ctx, o); err != nil {
		return nil, err
	}
	s.offers[id] = o
	addToIndex(s.offersByEmployer, o.EmployerID, id)
	if oldCompany != nil {
		removeFromIndex(s.offersByCompany, *oldCompany, id)
	}
	if o.CompanyID != nil {
		addToIndex(s.offersByCompany, *o.CompanyID, id)
	}
	s.log.Debug("offer updated", zap.String("id", id.String()))
	return cloneOffer(o), nil
}

// DeleteOffer removes the offer and every application and interview
// referencing it, atomically in one store transaction.
func (s *State) DeleteOffer(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.store.GetOffer(ctx, id)
	if err != nil {
		return err
	}
	if o == nil {
		return fmt.Errorf("job offer %s: %w", id, ErrNotFound)
	}

	appIDs := indexIDs(s.applicationsByOffer, id)
	interviewIDs := indexIDs(s.interviewsByOffer, id)
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
		return q.DeleteOffer(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete offer %s: %w", id, err)
	}

	for _, ivID := range interviewIDs {
		s.dropInterviewLocked(ivID)
	}
	for _, appID := range appIDs {
		s.dropApplicationLocked(appID)
	}
	s.dropOfferLocked(id)
	s.log.Debug("offer deleted",
		zap.String("id", id.String()),
		zap.Int("applications", len(appIDs)),
		zap.Int("interviews", len(interviewIDs)))
	return nil
}

// PublishOffer transitions an offer to Published on behalf of its
// owner. The configured publish rule decides whether only Draft offers
// qualify.
func (s *State) PublishOffer(ctx context.Context, offerID, callerEmployerID uuid.UUID) (*models.JobOffer, error) {
	return s.transitionOffer(ctx, offerID, callerEmployerID, models.OfferPublished)
}

// CloseOffer transitions an offer to Closed on behalf of its owner.
func (s *State) CloseOffer(ctx context.Context, offerID, callerEmployerID uuid.UUID) (*models.JobOffer, error) {
	return s.transitionOffer(ctx, offerID, callerEmployerID, models.OfferClosed)
}

// ReopenOffer transitions an offer to Reopened on behalf of its owner.
func (s *State) ReopenOffer(ctx context.Context, offerID, callerEmployerID uuid.UUID) (*models.JobOffer, error) {
	return s.transitionOffer(ctx, offerID, callerEmployerID, models.OfferReopened)
}

func (s *State) transitionOffer(ctx context.Context, offerID, callerEmployerID uuid.UUID, to models.OfferStatus) (*models.JobOffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.store.GetOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("job offer %s: %w", offerID, ErrNotFound)
	}
	if o.EmployerID != callerEmployerID {
		return nil, fmt.Errorf("employer %s does not own offer %s: %w",
			callerEmployerID, offerID, ErrForbidden)
	}
	if to == models.OfferPublished && s.publishRule == PublishDraftOnly && o.Status != models.OfferDraft {
		return nil, fmt.Errorf("offer %s is %s, only Draft offers can be published: %w",
			offerID, o.Status, ErrValidation)
	}

	o.Status = to
	if err := s.store.UpdateOffer(ctx, o); err != nil {
		return nil, err
	}
	s.offers[offerID] = o
	addToIndex(s.offersByEmployer, o.EmployerID, offerID)
	if o.CompanyID != nil {
		addToIndex(s.offersByCompany, *o.CompanyID, offerID)
	}
	s.log.Debug("offer status changed",
		zap.String("id", offerID.String()),
		zap.String("status", string(to)))
	return cloneOffer(o), nil
}
