package state

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/doplab/jobfinder/internal/match"
	"github.com/doplab/jobfinder/internal/store"
	"github.com/doplab/jobfinder/pkg/models"
)

// ApplicantPatch carries a partial applicant update. Nil fields are not
// applied. Person fields ignore blank values; ContactInfo, Description
// and CVURL apply even when blank so callers can clear them. A non-nil
// Skills slice replaces the stored list wholesale.
type ApplicantPatch struct {
	Username     *string
	FirstName    *string
	LastName     *string
	Email        *string
	PhotoURL     *string
	ContactInfo  *string
	Description  *string
	CVURL        *string
	Skills       []string
	LegacySkills *string
}

// CreateApplicant validates, persists and caches a new applicant. An
// absent id is assigned.
func (s *State) CreateApplicant(ctx context.Context, a *models.Applicant) (*models.Applicant, error) {
	if strings.TrimSpace(a.Username) == "" {
		return nil, fmt.Errorf("applicant username is required: %w", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneApplicant(a)
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	stored.Skills = normalizePhrases(stored.Skills)

	if err := s.store.InsertApplicant(ctx, stored); err != nil {
		return nil, err
	}
	s.applicants[stored.ID] = stored
	s.log.Debug("applicant created", zap.String("id", stored.ID.String()))
	return cloneApplicant(stored), nil
}

// GetApplicant serves from the cache, falling back to the store on a
// miss and populating the cache.
func (s *State) GetApplicant(ctx context.Context, id uuid.UUID) (*models.Applicant, error) {
	s.mu.RLock()
	if a, ok := s.applicants[id]; ok {
		c := cloneApplicant(a)
		s.mu.RUnlock()
		return c, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.applicants[id]; ok {
		return cloneApplicant(a), nil
	}
	a, err := s.store.GetApplicant(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("applicant %s: %w", id, ErrNotFound)
	}
	s.applicants[id] = a
	return cloneApplicant(a), nil
}

// ListApplicants returns every cached applicant sorted by username.
func (s *State) ListApplicants(ctx context.Context) ([]*models.Applicant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Applicant, 0, len(s.applicants))
	for _, a := range s.applicants {
		out = append(out, cloneApplicant(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// UpdateApplicant merges the patch into the authoritative record,
// persists it and refreshes the cache. When the skill set changed, all
// of the applicant's application scores are recomputed.
func (s *State) UpdateApplicant(ctx context.Context, id uuid.UUID, patch ApplicantPatch) (*models.Applicant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.store.GetApplicant(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("applicant %s: %w", id, ErrNotFound)
	}

	oldPhrases := applicantPhrasesOf(a)
	mergeString(&a.Username, patch.Username)
	mergeString(&a.FirstName, patch.FirstName)
	mergeString(&a.LastName, patch.LastName)
	mergeString(&a.Email, patch.Email)
	mergeString(&a.PhotoURL, patch.PhotoURL)
	setString(&a.ContactInfo, patch.ContactInfo)
	setString(&a.Description, patch.Description)
	setString(&a.CVURL, patch.CVURL)
	setString(&a.LegacySkills, patch.LegacySkills)
	if patch.Skills != nil {
		a.Skills = normalizePhrases(patch.Skills)
	}

	if err := s.store.UpdateApplicant(ctx, a); err != nil {
		return nil, err
	}
	s.applicants[id] = a
	s.log.Debug("applicant updated", zap.String("id", id.String()))

	if !samePhrases(oldPhrases, applicantPhrasesOf(a)) {
		if _, err := s.recomputeForApplicantLocked(ctx, a); err != nil {
			return nil, fmt.Errorf("recompute scores after skill change: %w", err)
		}
	}
	return cloneApplicant(a), nil
}

// DeleteApplicant removes the applicant together with its applications
// and interviews, atomically in one store transaction.
func (s *State) DeleteApplicant(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.store.GetApplicant(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return fmt.Errorf("applicant %s: %w", id, ErrNotFound)
	}

	appIDs := indexIDs(s.applicationsByApplicant, id)
	interviewIDs := indexIDs(s.interviewsByApplicant, id)
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
		return q.DeleteApplicant(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete applicant %s: %w", id, err)
	}

	for _, ivID := range interviewIDs {
		s.dropInterviewLocked(ivID)
	}
	for _, appID := range appIDs {
		s.dropApplicationLocked(appID)
	}
	delete(s.applicants, id)
	delete(s.applicationsByApplicant, id)
	delete(s.interviewsByApplicant, id)
	s.log.Debug("applicant deleted",
		zap.String("id", id.String()),
		zap.Int("applications", len(appIDs)),
		zap.Int("interviews", len(interviewIDs)))
	return nil
}

// applicantPhrasesOf resolves the phrase list the scorer sees.
func applicantPhrasesOf(a *models.Applicant) []string {
	return match.ApplicantPhrases(a.Skills, a.LegacySkills)
}
