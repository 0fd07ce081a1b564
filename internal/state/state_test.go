package state

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/doplab/jobfinder/internal/store"
	"github.com/doplab/jobfinder/pkg/models"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	s := New(st, zap.NewNop(), PublishDraftOnly)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s
}

func seedEmployer(t *testing.T, s *State) *models.Employer {
	t.Helper()
	e, err := s.CreateEmployer(context.Background(), &models.Employer{
		Person: models.Person{Username: "employer-" + uuid.NewString()[:8]},
	})
	if err != nil {
		t.Fatalf("create employer: %v", err)
	}
	return e
}

func seedApplicant(t *testing.T, s *State, skills ...string) *models.Applicant {
	t.Helper()
	a, err := s.CreateApplicant(context.Background(), &models.Applicant{
		Person: models.Person{Username: "applicant-" + uuid.NewString()[:8]},
		Skills: skills,
	})
	if err != nil {
		t.Fatalf("create applicant: %v", err)
	}
	return a
}

func seedOffer(t *testing.T, s *State, employerID uuid.UUID, skills ...string) *models.JobOffer {
	t.Helper()
	o, err := s.CreateOffer(context.Background(), &models.JobOffer{
		EmployerID:     employerID,
		Title:          "Backend Developer",
		RequiredSkills: skills,
	})
	if err != nil {
		t.Fatalf("create offer: %v", err)
	}
	return o
}

func TestCreateOfferDefaults(t *testing.T) {
	s := newTestState(t)
	ctx := context.Background()
	employer := seedEmployer(t, s)

	o := seedOffer(t, s, employer.ID, "go")
	if o.ID == uuid.Nil {
		t.Error("id not assigned")
	}
	if o.Status != models.OfferDraft {
		t.Errorf("status = %q, want Draft", o.Status)
	}
	if o.CreatedAt.IsZero() {
		t.Error("created at not set")
	}

	got, err := s.GetOffer(ctx, o.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != o.ID || got.Status != models.OfferDraft || got.CreatedAt.IsZero() {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestCreateOfferUnknownEmployer(t *testing.T) {
	s := newTestState(t)
	_, err := s.CreateOffer(context.Background(), &models.JobOffer{
		EmployerID: uuid.New(),
		Title:      "Ghost",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestCreateApplicationScoreBounds(t *testing.T) {
	s := newTestState(t)
	ctx := context.Background()
	employer := seedEmployer(t, s)
	offer := seedOffer(t, s, employer.ID, "java")
	applicant := seedApplicant(t, s, "java")

	for _, bad := range []float64{-0.1, 100.1, 250.0} {
		score := bad
		_, err := s.CreateApplication(ctx, &models.Application{
			JobOfferID:  offer.ID,
			ApplicantID: applicant.ID,
			MatchScore:  &score,
		})
		if !errors.Is(err, ErrValidation) {
			t.Errorf("score %v: err = %v, want ErrValidation", bad, err)
		}
	}

	supplied := 87.6543
	a, err := s.CreateApplication(ctx, &models.Application{
		JobOfferID:  offer.ID,
		ApplicantID: applicant.ID,
		MatchScore:  &supplied,
	})
	if err != nil {
		t.Fatalf("create application: %v", err)
	}
	if a.MatchScore == nil || *a.MatchScore != 87.7 {
		t.Errorf("score = %v, want 87.7 (one decimal)", a.MatchScore)
	}

	got, err := s.GetApplication(ctx, a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.MatchScore == nil || *got.MatchScore != 87.7 {
		t.Errorf("persisted score = %v, want 87.7", got.MatchScore)
	}
}

func TestCreateApplicationComputesScore(t *testing.T) {
	s := newTestState(t)
	ctx := context.Background()
	employer := seedEmployer(t, s)
	offer := seedOffer(t, s, employer.ID, "java", "sql", "spring")
	applicant := seedApplicant(t, s, "java", "sql")

	a, err := s.CreateApplication(ctx, &models.Application{
		JobOfferID:  offer.ID,
		ApplicantID: applicant.ID,
	})
	if err != nil {
		t.Fatalf("create application: %v", err)
	}
	if a.Status != models.ApplicationSubmitted {
		t.Errorf("status = %q", a.Status)
	}
	if a.MatchScore == nil {
		t.Fatal("score not computed")
	}
	if *a.MatchScore != 66.7 {
		t.Errorf("score = %v, want 66.7", *a.MatchScore)
	}
	if a.SubmittedAt.IsZero() || a.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
}

func TestCreateApplicationUnknownReferences(t *testing.T) {
	s := newTestState(t)
	ctx := context.Background()
	employer := seedEmployer(t, s)
	offer := seedOffer(t, s, employer.ID, "go")
	applicant := seedApplicant(t, s, "go")

	_, err := s.CreateApplication(ctx, &models.Application{
		JobOfferID:  uuid.New(),
		ApplicantID: applicant.ID,
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("unknown offer: err = %v, want ErrValidation", err)
	}
	_, err = s.CreateApplication(ctx, &models.Application{
		JobOfferID:  offer.ID,
		ApplicantID: uuid.New(),
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("unknown applicant: err = %v, want ErrValidation", err)
	}
}

func TestDeleteOfferCascades(t *testing.T) {
	s := newTestState(t)
	ctx := context.Background()
	employer := seedEmployer(t, s)
	offer := seedOffer(t, s, employer.ID, "go")
	applicant := seedApplicant(t, s, "go")

	a, err := s.CreateApplication(ctx, &models.Application{
		JobOfferID:  offer.ID,
		ApplicantID: applicant.ID,
	})
	if err != nil {
		t.Fatalf("create application: %v", err)
	}
	iv, err := s.ScheduleInterview(ctx, &models.Interview{
		JobOfferID:  offer.ID,
		ApplicantID: applicant.ID,
		ScheduledAt: time.Now().Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("schedule interview: %v", err)
	}

	if err := s.DeleteOffer(ctx, offer.ID); err != nil {
		t.Fatalf("delete offer: %v", err)
	}

	if _, err := s.GetApplication(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("application survived cascade: %v", err)
	}
	if _, err := s.GetInterview(ctx, iv.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("interview survived cascade: %v", err)
	}
	if _, ok := s.offersByEmployer[employer.ID][offer.ID]; ok {
		t.Error("offer id still in employer inverse index")
	}
	offers, err := s.ListOffers(ctx, &employer.ID)
	if err != nil {
		t.Fatalf("list offers: %v", err)
	}
	if len(offers) != 0 {
		t.Errorf("employer still owns %d offers", len(offers))
	}
}

func TestDeleteApplicantCascades(t *testing.T) {
	s := newTestState(t)
	ctx := context.Background()
	employer := seedEmployer(t, s)
	offer := seedOffer(t, s, employer.ID, "go")
	applicant := seedApplicant(t, s, "go")

	a, err := s.CreateApplication(ctx, &models.Application{
		JobOfferID:  offer.ID,
		ApplicantID: applicant.ID,
	})
	if err != nil {
		t.Fatalf("create application: %v", err)
	}

	if err := s.DeleteApplicant(ctx, applicant.ID); err != nil {
		t.Fatalf("delete applicant: %v", err)
	}
	if _, err := s.GetApplication(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("application survived cascade: %v", err)
	}
	// Offer is untouched.
	if _, err := s.GetOffer(ctx, offer.ID); err != nil {
		t.Errorf("offer should survive: %v", err)
	}
	apps, _ := s.ApplicationsByOffer(ctx, offer.ID)
	if len(apps) != 0 {
		t.Errorf("offer index still lists %d applications", len(apps))
	}
}

func TestDeleteEmployerCascadesTransitively(t *testing.T) {
	s := newTestState(t)
	ctx := context.Background()
	employer := seedEmployer(t, s)
	offer := seedOffer(t, s, employer.ID, "go")
	applicant := seedApplicant(t, s, "go")

	a, err := s.CreateApplication(ctx, &models.Application{
		JobOfferID:  offer.ID,
		ApplicantID: applicant.ID,
	})
	if err != nil {
		t.Fatalf("create application: %v", err)
	}

	if err := s.DeleteEmployer(ctx, employer.ID); err != nil {
		t.Fatalf("delete employer: %v", err)
	}
	if _, err := s.GetOffer(ctx, offer.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("offer survived cascade: %v", err)
	}
	if _, err := s.GetApplication(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("application survived cascade: %v", err)
	}
	// The applicant is never part of an employer cascade.
	if _, err := s.GetApplicant(ctx, applicant.ID); err != nil {
		t.Errorf("applicant should survive: %v", err)
	}
}

func TestDeleteCompanyDetaches(t *testing.T) {
	s := newTestState(t)
	ctx := context.Background()
	employer := seedEmployer(t, s)

	company, err := s.CreateCompany(ctx, &models.Company{
		OwnerEmployerID: &employer.ID,
		Name:            "Acme",
	})
	if err != nil {
		t.Fatalf("create company: %v", err)
	}
	offer, err := s.CreateOffer(ctx, &models.JobOffer{
		EmployerID: employer.ID,
		CompanyID:  &company.ID,
		Title:      "Backend Developer",
	})
	if err != nil {
		t.Fatalf("create offer: %v", err)
	}
	if _, err := s.UpdateEmployer(ctx, employer.ID, EmployerPatch{CompanyID: &company.ID}); err != nil {
		t.Fatalf("attach employer: %v", err)
	}

	if err := s.DeleteCompany(ctx, company.ID); err != nil {
		t.Fatalf("delete company: %v", err)
	}

	gotOffer, err := s.GetOffer(ctx, offer.ID)
	if err != nil {
		t.Fatalf("offer should survive: %v", err)
	}
	if gotOffer.CompanyID != nil {
		t.Errorf("offer company id = %v, want nil", gotOffer.CompanyID)
	}
	gotEmployer, err := s.GetEmployer(ctx, employer.ID)
	if err != nil {
		t.Fatalf("employer should survive: %v", err)
	}
	if gotEmployer.CompanyID != nil {
		t.Errorf("employer company id = %v, want nil", gotEmployer.CompanyID)
	}
}

func TestPublishRules(t *testing.T) {
	s := newTestState(t)
	ctx := context.Background()
	owner := seedEmployer(t, s)
	other := seedEmployer(t, s)
	offer := seedOffer(t, s, owner.ID, "go")

	if _, err := s.PublishOffer(ctx, offer.ID, other.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign publish: err = %v, want ErrForbidden", err)
	}
	if _, err := s.PublishOffer(ctx, uuid.New(), owner.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing offer: err = %v, want ErrNotFound", err)
	}

	published, err := s.PublishOffer(ctx, offer.ID, owner.ID)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if published.Status != models.OfferPublished {
		t.Errorf("status = %q", published.Status)
	}

	// Draft-only rule rejects a second publish.
	if _, err := s.PublishOffer(ctx, offer.ID, owner.ID); !errors.Is(err, ErrValidation) {
		t.Errorf("republish under draft-only: err = %v, want ErrValidation", err)
	}

	closed, err := s.CloseOffer(ctx, offer.ID, owner.ID)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.Status != models.OfferClosed {
		t.Errorf("status = %q", closed.Status)
	}
	reopened, err := s.ReopenOffer(ctx, offer.ID, owner.ID)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Status != models.OfferReopened {
		t.Errorf("status = %q", reopened.Status)
	}
}

func TestPublishAnyRule(t *testing.T) {
	s := newTestState(t)
	s.publishRule = PublishAny
	ctx := context.Background()
	owner := seedEmployer(t, s)
	offer := seedOffer(t, s, owner.ID, "go")

	if _, err := s.CloseOffer(ctx, offer.ID, owner.ID); err != nil {
		t.Fatalf("close: %v", err)
	}
	published, err := s.PublishOffer(ctx, offer.ID, owner.ID)
	if err != nil {
		t.Fatalf("publish closed offer under any rule: %v", err)
	}
	if published.Status != models.OfferPublished {
		t.Errorf("status = %q", published.Status)
	}
}

func TestUpdateApplicantMergeRules(t *testing.T) {
	s := newTestState(t)
	ctx := context.Background()
	a, err := s.CreateApplicant(ctx, &models.Applicant{
		Person: models.Person{
			Username:  "carol",
			FirstName: "Carol",
			Email:     "carol@example.com",
		},
		Description: "Engineer",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	blank := ""
	name := "Caroline"
	got, err := s.UpdateApplicant(ctx, a.ID, ApplicantPatch{
		Username:    &blank,
		FirstName:   &name,
		Description: &blank,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Username != "carol" {
		t.Errorf("blank username erased stored value: %q", got.Username)
	}
	if got.FirstName != "Caroline" {
		t.Errorf("first name = %q", got.FirstName)
	}
	if got.Description != "" {
		t.Errorf("description should clear on explicit blank, got %q", got.Description)
	}
}

func TestUpdateApplicationPinsReferences(t *testing.T) {
	s := newTestState(t)
	ctx := context.Background()
	employer := seedEmployer(t, s)
	offer := seedOffer(t, s, employer.ID, "go")
	applicant := seedApplicant(t, s, "go")

	a, err := s.CreateApplication(ctx, &models.Application{
		JobOfferID:  offer.ID,
		ApplicantID: applicant.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.UpdateApplicationStatus(ctx, a.ID, models.ApplicationInReview)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if got.Status != models.ApplicationInReview {
		t.Errorf("status = %q", got.Status)
	}
	if got.JobOfferID != offer.ID || got.ApplicantID != applicant.ID {
		t.Error("references changed on update")
	}
	if !got.UpdatedAt.After(a.UpdatedAt) && !got.UpdatedAt.Equal(a.UpdatedAt) {
		t.Errorf("updated at not bumped: %v -> %v", a.UpdatedAt, got.UpdatedAt)
	}

	if _, err := s.UpdateApplicationStatus(ctx, a.ID, models.ApplicationStatus("Bogus")); !errors.Is(err, ErrValidation) {
		t.Errorf("bogus status: err = %v, want ErrValidation", err)
	}
}

func TestSkillChangeTriggersRecompute(t *testing.T) {
	s := newTestState(t)
	ctx := context.Background()
	employer := seedEmployer(t, s)
	offer := seedOffer(t, s, employer.ID, "java", "sql", "spring")
	applicant := seedApplicant(t, s, "java", "sql")

	a, err := s.CreateApplication(ctx, &models.Application{
		JobOfferID:  offer.ID,
		ApplicantID: applicant.ID,
	})
	if err != nil {
		t.Fatalf("create application: %v", err)
	}
	if *a.MatchScore != 66.7 {
		t.Fatalf("initial score = %v", *a.MatchScore)
	}

	if _, err := s.UpdateApplicant(ctx, applicant.ID, ApplicantPatch{
		Skills: []string{"java", "sql", "spring"},
	}); err != nil {
		t.Fatalf("update skills: %v", err)
	}

	got, err := s.GetApplication(ctx, a.ID)
	if err != nil {
		t.Fatalf("get application: %v", err)
	}
	if got.MatchScore == nil || *got.MatchScore != 100.0 {
		t.Errorf("score after skill change = %v, want 100", got.MatchScore)
	}
}

func TestRecomputeIdempotent(t *testing.T) {
	s := newTestState(t)
	ctx := context.Background()
	employer := seedEmployer(t, s)
	offerA := seedOffer(t, s, employer.ID, "java", "sql")
	offerB := seedOffer(t, s, employer.ID, "python")
	applicant := seedApplicant(t, s, "java", "python")

	for _, offerID := range []uuid.UUID{offerA.ID, offerB.ID} {
		if _, err := s.CreateApplication(ctx, &models.Application{
			JobOfferID:  offerID,
			ApplicantID: applicant.ID,
		}); err != nil {
			t.Fatalf("create application: %v", err)
		}
	}

	first, err := s.RecomputeMatchScoresForApplicant(ctx, applicant.ID)
	if err != nil {
		t.Fatalf("first recompute: %v", err)
	}
	scoresAfterFirst := applicationScores(t, s, applicant.ID)

	second, err := s.RecomputeMatchScoresForApplicant(ctx, applicant.ID)
	if err != nil {
		t.Fatalf("second recompute: %v", err)
	}
	if first != second || first != 2 {
		t.Errorf("counts = %d, %d, want 2, 2", first, second)
	}
	scoresAfterSecond := applicationScores(t, s, applicant.ID)
	for id, v := range scoresAfterFirst {
		if scoresAfterSecond[id] != v {
			t.Errorf("score for %s changed: %v -> %v", id, v, scoresAfterSecond[id])
		}
	}
}

func applicationScores(t *testing.T, s *State, applicantID uuid.UUID) map[uuid.UUID]float64 {
	t.Helper()
	apps, err := s.ApplicationsByApplicant(context.Background(), applicantID)
	if err != nil {
		t.Fatalf("list applications: %v", err)
	}
	scores := make(map[uuid.UUID]float64, len(apps))
	for _, a := range apps {
		if a.MatchScore == nil {
			t.Fatalf("application %s has no score", a.ID)
		}
		scores[a.ID] = *a.MatchScore
	}
	return scores
}

func TestLoadRebuildsIndexes(t *testing.T) {
	s := newTestState(t)
	ctx := context.Background()
	employer := seedEmployer(t, s)
	offer := seedOffer(t, s, employer.ID, "go")
	applicant := seedApplicant(t, s, "go")
	if _, err := s.CreateApplication(ctx, &models.Application{
		JobOfferID:  offer.ID,
		ApplicantID: applicant.ID,
	}); err != nil {
		t.Fatalf("create application: %v", err)
	}

	// A fresh projection over the same store must derive identical
	// inverse relations purely from foreign keys.
	fresh := New(s.store, zap.NewNop(), PublishDraftOnly)
	if err := fresh.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}

	offers, err := fresh.ListOffers(ctx, &employer.ID)
	if err != nil {
		t.Fatalf("list offers: %v", err)
	}
	if len(offers) != 1 || offers[0].ID != offer.ID {
		t.Errorf("employer offers after reload = %v", offers)
	}
	apps, err := fresh.ApplicationsByOffer(ctx, offer.ID)
	if err != nil {
		t.Fatalf("applications by offer: %v", err)
	}
	if len(apps) != 1 {
		t.Errorf("applications after reload = %d, want 1", len(apps))
	}
}

func TestRescheduleInterviewResetsStatus(t *testing.T) {
	s := newTestState(t)
	ctx := context.Background()
	employer := seedEmployer(t, s)
	offer := seedOffer(t, s, employer.ID, "go")
	applicant := seedApplicant(t, s, "go")

	iv, err := s.ScheduleInterview(ctx, &models.Interview{
		JobOfferID:  offer.ID,
		ApplicantID: applicant.ID,
		ScheduledAt: time.Now().Add(24 * time.Hour),
		Mode:        models.InterviewMode("Carrier pigeon"),
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if iv.Mode != models.InterviewOnline {
		t.Errorf("unknown mode should fall back to Online, got %q", iv.Mode)
	}

	if _, err := s.UpdateInterviewStatus(ctx, iv.ID, models.InterviewCanceled); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	later := time.Now().Add(72 * time.Hour).UTC()
	got, err := s.RescheduleInterview(ctx, iv.ID, later, "Phone")
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if got.Status != models.InterviewScheduled {
		t.Errorf("status = %q, want Scheduled", got.Status)
	}
	if got.Mode != models.InterviewPhone {
		t.Errorf("mode = %q, want Phone", got.Mode)
	}
	if !got.ScheduledAt.Equal(later) {
		t.Errorf("scheduled at = %v", got.ScheduledAt)
	}
}

func TestSeedPopulates(t *testing.T) {
	s := newTestState(t)
	ctx := context.Background()

	if err := s.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	offers, err := s.ListOffers(ctx, nil)
	if err != nil {
		t.Fatalf("list offers: %v", err)
	}
	if len(offers) != 2 {
		t.Errorf("offers = %d, want 2", len(offers))
	}
	for _, o := range offers {
		if o.Status != models.OfferPublished {
			t.Errorf("offer %s status = %q, want Published", o.Title, o.Status)
		}
	}
	apps, err := s.ListApplications(ctx)
	if err != nil {
		t.Fatalf("list applications: %v", err)
	}
	if len(apps) != 2 {
		t.Errorf("applications = %d, want 2", len(apps))
	}
	for _, a := range apps {
		if a.MatchScore == nil {
			t.Errorf("application %s has no score", a.ID)
		}
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	offers, err = s.ListOffers(ctx, nil)
	if err != nil {
		t.Fatalf("list after clear: %v", err)
	}
	if len(offers) != 0 {
		t.Errorf("offers after clear = %d", len(offers))
	}
}
