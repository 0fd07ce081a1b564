package state

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/doplab/jobfinder/pkg/models"
)

// ApplicationPatch carries a partial application update. JobOfferID and
// ApplicantID are pinned at creation and cannot appear here. UpdatedAt
// is bumped on every successful update.
type ApplicationPatch struct {
	Status      *models.ApplicationStatus
	SubmittedAt *time.Time
	MatchScore  *float64
}

// CreateApplication validates both references, applies defaults,
// computes the match score when absent, persists and caches.
func (s *State) CreateApplication(ctx context.Context, a *models.Application) (*models.Application, error) {
	if a.Status != "" && !models.ValidApplicationStatus(a.Status) {
		return nil, fmt.Errorf("unknown application status %q: %w", a.Status, ErrValidation)
	}
	if a.MatchScore != nil && (*a.MatchScore < 0 || *a.MatchScore > 100) {
		return nil, fmt.Errorf("match score %v out of range: %w", *a.MatchScore, ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	offer, err := s.offerLocked(ctx, a.JobOfferID)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("unknown job offer %s: %w", a.JobOfferID, ErrValidation)
	}
	if err != nil {
		return nil, err
	}
	applicant, err := s.applicantLocked(ctx, a.ApplicantID)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("unknown applicant %s: %w", a.ApplicantID, ErrValidation)
	}
	if err != nil {
		return nil, err
	}

	stored := cloneApplication(a)
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	if stored.Status == "" {
		stored.Status = models.ApplicationSubmitted
	}
	now := time.Now().UTC()
	if stored.SubmittedAt.IsZero() {
		stored.SubmittedAt = now
	}
	stored.UpdatedAt = now
	if stored.MatchScore == nil {
		score := s.match.Score(applicantPhrasesOf(applicant), offer)
		stored.MatchScore = &score
	} else {
		score := roundScore(*stored.MatchScore)
		stored.MatchScore = &score
	}

	if err := s.store.InsertApplication(ctx, stored); err != nil {
		return nil, err
	}
	s.applications[stored.ID] = stored
	addToIndex(s.applicationsByOffer, stored.JobOfferID, stored.ID)
	addToIndex(s.applicationsByApplicant, stored.ApplicantID, stored.ID)
	s.log.Debug("application created",
		zap.String("id", stored.ID.String()),
		zap.Float64("score", *stored.MatchScore))
	return cloneApplication(stored), nil
}

// GetApplication serves from the cache with a store fallback on miss.
func (s *State) GetApplication(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	s.mu.RLock()
	if a, ok := s.applications[id]; ok {
		c := cloneApplication(a)
		s.mu.RUnlock()
		return c, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.applications[id]; ok {
		return cloneApplication(a), nil
	}
	a, err := s.store.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("application %s: %w", id, ErrNotFound)
	}
	s.applications[id] = a
	addToIndex(s.applicationsByOffer, a.JobOfferID, id)
	addToIndex(s.applicationsByApplicant, a.ApplicantID, id)
	return cloneApplication(a), nil
}

// ListApplications returns every cached application newest-first.
func (s *State) ListApplications(ctx context.Context) ([]*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Application, 0, len(s.applications))
	for _, a := range s.applications {
		out = append(out, cloneApplication(a))
	}
	sortApplications(out)
	return out, nil
}

// ApplicationsByOffer returns the applications referencing a job offer.
func (s *State) ApplicationsByOffer(ctx context.Context, offerID uuid.UUID) ([]*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.applicationsFromIndexLocked(s.applicationsByOffer, offerID), nil
}

// ApplicationsByApplicant returns the applications an applicant filed.
func (s *State) ApplicationsByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.applicationsFromIndexLocked(s.applicationsByApplicant, applicantID), nil
}

// ApplicationsByEmployer returns the applications against every offer
// the employer owns.
func (s *State) ApplicationsByEmployer(ctx context.Context, employerID uuid.UUID) ([]*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Application
	for offerID := range s.offersByEmployer[employerID] {
		out = append(out, s.applicationsFromIndexLocked(s.applicationsByOffer, offerID)...)
	}
	sortApplications(out)
	return out, nil
}

func (s *State) applicationsFromIndexLocked(index map[uuid.UUID]idSet, parent uuid.UUID) []*models.Application {
	var out []*models.Application
	for id := range index[parent] {
		if a, ok := s.applications[id]; ok {
			out = append(out, cloneApplication(a))
		}
	}
	sortApplications(out)
	return out
}

func sortApplications(apps []*models.Application) {
	sort.Slice(apps, func(i, j int) bool { return apps[i].SubmittedAt.After(apps[j].SubmittedAt) })
}

// roundScore keeps stored scores at one decimal, matching what the
// scoring engine emits.
func roundScore(v float64) float64 {
	return math.Round(v*10) / 10
}

// UpdateApplication merges the patch into the authoritative record.
// References stay pinned; UpdatedAt is bumped.
func (s *State) UpdateApplication(ctx context.Context, id uuid.UUID, patch ApplicationPatch) (*models.Application, error) {
	if patch.Status != nil && !models.ValidApplicationStatus(*patch.Status) {
		return nil, fmt.Errorf("unknown application status %q: %w", *patch.Status, ErrValidation)
	}
	if patch.MatchScore != nil && (*patch.MatchScore < 0 || *patch.MatchScore > 100) {
		return nil, fmt.Errorf("match score %v out of range: %w", *patch.MatchScore, ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.store.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("application %s: %w", id, ErrNotFound)
	}

	if patch.Status != nil {
		a.Status = *patch.Status
	}
	if patch.SubmittedAt != nil {
		a.SubmittedAt = *patch.SubmittedAt
	}
	if patch.MatchScore != nil {
		v := roundScore(*patch.MatchScore)
		a.MatchScore = &v
	}
	a.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateApplication(ctx, a); err != nil {
		return nil, err
	}
	s.applications[id] = a
	addToIndex(s.applicationsByOffer, a.JobOfferID, id)
	addToIndex(s.applicationsByApplicant, a.ApplicantID, id)
	s.log.Debug("application updated", zap.String("id", id.String()))
	return cloneApplication(a), nil
}

// UpdateApplicationStatus applies a status transition.
func (s *State) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) (*models.Application, error) {
	return s.UpdateApplication(ctx, id, ApplicationPatch{Status: &status})
}

// DeleteApplication removes an application.
func (s *State) DeleteApplication(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.store.GetApplication(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return fmt.Errorf("application %s: %w", id, ErrNotFound)
	}
	if err := s.store.DeleteApplication(ctx, id); err != nil {
		return err
	}
	// The cached copy may be absent after a cold start; removing it is
	// idempotent either way.
	if _, ok := s.applications[id]; !ok {
		s.applications[id] = a
	}
	s.dropApplicationLocked(id)
	s.log.Debug("application deleted", zap.String("id", id.String()))
	return nil
}
