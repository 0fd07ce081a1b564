package state

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/doplab/jobfinder/pkg/models"
)

// ComputeMatchScore scores an applicant against a job offer without
// persisting anything. Both references must resolve.
func (s *State) ComputeMatchScore(ctx context.Context, applicantID, offerID uuid.UUID) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	applicant, err := s.applicantLocked(ctx, applicantID)
	if err != nil {
		return 0, err
	}
	offer, err := s.offerLocked(ctx, offerID)
	if err != nil {
		return 0, err
	}
	return s.match.Score(applicantPhrasesOf(applicant), offer), nil
}

// RecomputeMatchScoresForApplicant rescores every application the
// applicant filed against its referenced offer, persisting each updated
// score. Applications whose offer no longer resolves are skipped, not
// failed. Returns the number of applications updated.
func (s *State) RecomputeMatchScoresForApplicant(ctx context.Context, applicantID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	applicant, err := s.applicantLocked(ctx, applicantID)
	if err != nil {
		return 0, err
	}
	return s.recomputeForApplicantLocked(ctx, applicant)
}

func (s *State) recomputeForApplicantLocked(ctx context.Context, applicant *models.Applicant) (int, error) {
	phrases := applicantPhrasesOf(applicant)
	updated := 0
	for _, appID := range indexIDs(s.applicationsByApplicant, applicant.ID) {
		a, ok := s.applications[appID]
		if !ok {
			continue
		}
		offer, ok := s.offers[a.JobOfferID]
		if !ok {
			continue
		}

		fresh := cloneApplication(a)
		score := s.match.Score(phrases, offer)
		fresh.MatchScore = &score
		fresh.UpdatedAt = time.Now().UTC()
		if err := s.store.UpdateApplication(ctx, fresh); err != nil {
			return updated, fmt.Errorf("persist score for application %s: %w", appID, err)
		}
		s.applications[appID] = fresh
		updated++
	}
	s.log.Debug("scores recomputed",
		zap.String("applicant", applicant.ID.String()),
		zap.Int("updated", updated))
	return updated, nil
}
