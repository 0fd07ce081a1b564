package state

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/doplab/jobfinder/pkg/models"
)

// ScheduleInterview validates both references, applies defaults and
// persists a new interview. Unknown modes fall back to Online.
func (s *State) ScheduleInterview(ctx context.Context, iv *models.Interview) (*models.Interview, error) {
	if iv.ScheduledAt.IsZero() {
		return nil, fmt.Errorf("interview time is required: %w", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.offerLocked(ctx, iv.JobOfferID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("unknown job offer %s: %w", iv.JobOfferID, ErrValidation)
		}
		return nil, err
	}
	if _, err := s.applicantLocked(ctx, iv.ApplicantID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("unknown applicant %s: %w", iv.ApplicantID, ErrValidation)
		}
		return nil, err
	}

	stored := cloneInterview(iv)
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	stored.Mode = models.ParseInterviewMode(string(stored.Mode))
	if stored.Status == "" {
		stored.Status = models.InterviewScheduled
	} else if !models.ValidInterviewStatus(stored.Status) {
		return nil, fmt.Errorf("unknown interview status %q: %w", stored.Status, ErrValidation)
	}

	if err := s.store.InsertInterview(ctx, stored); err != nil {
		return nil, err
	}
	s.interviews[stored.ID] = stored
	addToIndex(s.interviewsByOffer, stored.JobOfferID, stored.ID)
	addToIndex(s.interviewsByApplicant, stored.ApplicantID, stored.ID)
	s.log.Debug("interview scheduled",
		zap.String("id", stored.ID.String()),
		zap.Time("at", stored.ScheduledAt))
	return cloneInterview(stored), nil
}

// GetInterview serves from the cache with a store fallback on miss.
func (s *State) GetInterview(ctx context.Context, id uuid.UUID) (*models.Interview, error) {
	s.mu.RLock()
	if iv, ok := s.interviews[id]; ok {
		c := cloneInterview(iv)
		s.mu.RUnlock()
		return c, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if iv, ok := s.interviews[id]; ok {
		return cloneInterview(iv), nil
	}
	iv, err := s.store.GetInterview(ctx, id)
	if err != nil {
		return nil, err
	}
	if iv == nil {
		return nil, fmt.Errorf("interview %s: %w", id, ErrNotFound)
	}
	s.interviews[id] = iv
	addToIndex(s.interviewsByOffer, iv.JobOfferID, id)
	addToIndex(s.interviewsByApplicant, iv.ApplicantID, id)
	return cloneInterview(iv), nil
}

// ListInterviews returns every cached interview soonest-first.
func (s *State) ListInterviews(ctx context.Context) ([]*models.Interview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Interview, 0, len(s.interviews))
	for _, iv := range s.interviews {
		out = append(out, cloneInterview(iv))
	}
	sortInterviews(out)
	return out, nil
}

// InterviewsByApplicant returns the interviews an applicant is invited
// to, soonest-first.
func (s *State) InterviewsByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*models.Interview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Interview
	for id := range s.interviewsByApplicant[applicantID] {
		if iv, ok := s.interviews[id]; ok {
			out = append(out, cloneInterview(iv))
		}
	}
	sortInterviews(out)
	return out, nil
}

// InterviewsByEmployer returns the interviews against every offer the
// employer owns, soonest-first.
func (s *State) InterviewsByEmployer(ctx context.Context, employerID uuid.UUID) ([]*models.Interview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Interview
	for offerID := range s.offersByEmployer[employerID] {
		for id := range s.interviewsByOffer[offerID] {
			if iv, ok := s.interviews[id]; ok {
				out = append(out, cloneInterview(iv))
			}
		}
	}
	sortInterviews(out)
	return out, nil
}

func sortInterviews(ivs []*models.Interview) {
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].ScheduledAt.Before(ivs[j].ScheduledAt) })
}

// UpdateInterviewStatus applies a status transition.
func (s *State) UpdateInterviewStatus(ctx context.Context, id uuid.UUID, status models.InterviewStatus) (*models.Interview, error) {
	if !models.ValidInterviewStatus(status) {
		return nil, fmt.Errorf("unknown interview status %q: %w", status, ErrValidation)
	}
	return s.mutateInterview(ctx, id, func(iv *models.Interview) {
		iv.Status = status
	})
}

// RescheduleInterview moves the interview to a new time, resets its
// status to Scheduled and optionally changes the mode.
func (s *State) RescheduleInterview(ctx context.Context, id uuid.UUID, at time.Time, mode string) (*models.Interview, error) {
	if at.IsZero() {
		return nil, fmt.Errorf("interview time is required: %w", ErrValidation)
	}
	return s.mutateInterview(ctx, id, func(iv *models.Interview) {
		iv.ScheduledAt = at
		iv.Status = models.InterviewScheduled
		if mode != "" {
			iv.Mode = models.ParseInterviewMode(mode)
		}
	})
}

// UpdateInterviewDetails replaces the location or meeting link.
func (s *State) UpdateInterviewDetails(ctx context.Context, id uuid.UUID, locationOrLink string) (*models.Interview, error) {
	return s.mutateInterview(ctx, id, func(iv *models.Interview) {
		iv.LocationOrLink = locationOrLink
	})
}

func (s *State) mutateInterview(ctx context.Context, id uuid.UUID, apply func(*models.Interview)) (*models.Interview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	iv, err := s.store.GetInterview(ctx, id)
	if err != nil {
		return nil, err
	}
	if iv == nil {
		return nil, fmt.Errorf("interview %s: %w", id, ErrNotFound)
	}

	apply(iv)
	if err := s.store.UpdateInterview(ctx, iv); err != nil {
		return nil, err
	}
	s.interviews[id] = iv
	addToIndex(s.interviewsByOffer, iv.JobOfferID, id)
	addToIndex(s.interviewsByApplicant, iv.ApplicantID, id)
	s.log.Debug("interview updated", zap.String("id", id.String()))
	return cloneInterview(iv), nil
}

// DeleteInterview removes an interview.
func (s *State) DeleteInterview(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	iv, err := s.store.GetInterview(ctx, id)
	if err != nil {
		return err
	}
	if iv == nil {
		return fmt.Errorf("interview %s: %w", id, ErrNotFound)
	}
	if err := s.store.DeleteInterview(ctx, id); err != nil {
		return err
	}
	if _, ok := s.interviews[id]; !ok {
		s.interviews[id] = iv
	}
	s.dropInterviewLocked(id)
	s.log.Debug("interview deleted", zap.String("id", id.String()))
	return nil
}
