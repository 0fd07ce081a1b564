package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/doplab/jobfinder/pkg/models"
)

func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestApplicantRoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	a := &models.Applicant{
		Person: models.Person{
			ID:        uuid.New(),
			Username:  "amina",
			FirstName: "Amina",
			LastName:  "Diallo",
			Email:     "amina@example.com",
		},
		ContactInfo: "+41 79 000 00 00",
		Description: "Backend developer",
		Skills:      []string{"go", "postgresql", "docker"},
	}
	if err := s.InsertApplicant(ctx, a); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := s.GetApplicant(ctx, a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected applicant, got nil")
	}
	if got.Username != "amina" || got.Email != "amina@example.com" {
		t.Errorf("unexpected fields: %+v", got)
	}
	if len(got.Skills) != 3 || got.Skills[1] != "postgresql" {
		t.Errorf("skills = %v, want ordered list of 3", got.Skills)
	}

	a.Skills = []string{"go", "kubernetes"}
	a.Description = "Platform engineer"
	if err := s.UpdateApplicant(ctx, a); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err = s.GetApplicant(ctx, a.ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if len(got.Skills) != 2 || got.Skills[1] != "kubernetes" {
		t.Errorf("skills after update = %v", got.Skills)
	}
	if got.Description != "Platform engineer" {
		t.Errorf("description = %q", got.Description)
	}

	if err := s.DeleteApplicant(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err = s.GetApplicant(ctx, a.ID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}
	skills, err := s.applicantSkills(ctx, a.ID)
	if err != nil {
		t.Fatalf("skills after delete: %v", err)
	}
	if len(skills) != 0 {
		t.Errorf("skill rows survived delete: %v", skills)
	}
}

func TestGetAbsentReturnsNil(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if a, err := s.GetApplicant(ctx, uuid.New()); err != nil || a != nil {
		t.Errorf("GetApplicant = (%v, %v), want (nil, nil)", a, err)
	}
	if e, err := s.GetEmployer(ctx, uuid.New()); err != nil || e != nil {
		t.Errorf("GetEmployer = (%v, %v), want (nil, nil)", e, err)
	}
	if o, err := s.GetOffer(ctx, uuid.New()); err != nil || o != nil {
		t.Errorf("GetOffer = (%v, %v), want (nil, nil)", o, err)
	}
	if ap, err := s.GetApplication(ctx, uuid.New()); err != nil || ap != nil {
		t.Errorf("GetApplication = (%v, %v), want (nil, nil)", ap, err)
	}
	if iv, err := s.GetInterview(ctx, uuid.New()); err != nil || iv != nil {
		t.Errorf("GetInterview = (%v, %v), want (nil, nil)", iv, err)
	}
}

func TestOfferRoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	employer := &models.Employer{
		Person: models.Person{ID: uuid.New(), Username: "acme-hr"},
	}
	if err := s.InsertEmployer(ctx, employer); err != nil {
		t.Fatalf("insert employer: %v", err)
	}

	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	companyID := uuid.New()
	if err := s.InsertCompany(ctx, &models.Company{ID: companyID, Name: "Acme"}); err != nil {
		t.Fatalf("insert company: %v", err)
	}

	o := &models.JobOffer{
		ID:                     uuid.New(),
		EmployerID:             employer.ID,
		CompanyID:              &companyID,
		Title:                  "Backend Engineer",
		Description:            "Build services",
		EmploymentType:         "Full-time",
		Status:                 models.OfferDraft,
		StartDate:              &start,
		CreatedAt:              time.Now().UTC(),
		RequiredSkills:         []string{"go", "sql"},
		RequiredQualifications: []string{"bachelor degree"},
	}
	if err := s.InsertOffer(ctx, o); err != nil {
		t.Fatalf("insert offer: %v", err)
	}

	got, err := s.GetOffer(ctx, o.ID)
	if err != nil {
		t.Fatalf("get offer: %v", err)
	}
	if got.Status != models.OfferDraft {
		t.Errorf("status = %q", got.Status)
	}
	if got.CompanyID == nil || *got.CompanyID != companyID {
		t.Errorf("company id = %v", got.CompanyID)
	}
	if got.StartDate == nil || !got.StartDate.Equal(start) {
		t.Errorf("start date = %v", got.StartDate)
	}
	if got.EndDate != nil {
		t.Errorf("end date = %v, want nil", got.EndDate)
	}
	if len(got.RequiredSkills) != 2 || len(got.RequiredQualifications) != 1 {
		t.Errorf("requirements = %v / %v", got.RequiredSkills, got.RequiredQualifications)
	}

	o.Status = models.OfferPublished
	o.RequiredSkills = []string{"go"}
	if err := s.UpdateOffer(ctx, o); err != nil {
		t.Fatalf("update offer: %v", err)
	}
	got, err = s.GetOffer(ctx, o.ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.Status != models.OfferPublished || len(got.RequiredSkills) != 1 {
		t.Errorf("after update: status=%q skills=%v", got.Status, got.RequiredSkills)
	}
}

func TestListOffersLoadsRequirements(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	employerID := uuid.New()
	if err := s.InsertEmployer(ctx, &models.Employer{
		Person: models.Person{ID: employerID, Username: "hr"},
	}); err != nil {
		t.Fatalf("insert employer: %v", err)
	}
	for i, skills := range [][]string{{"go"}, {"python", "django"}} {
		o := &models.JobOffer{
			ID:             uuid.New(),
			EmployerID:     employerID,
			Title:          "Offer",
			Status:         models.OfferDraft,
			CreatedAt:      time.Now().UTC().Add(time.Duration(i) * time.Second),
			RequiredSkills: skills,
		}
		if err := s.InsertOffer(ctx, o); err != nil {
			t.Fatalf("insert offer %d: %v", i, err)
		}
	}

	offers, err := s.ListOffers(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(offers) != 2 {
		t.Fatalf("len = %d", len(offers))
	}
	total := len(offers[0].RequiredSkills) + len(offers[1].RequiredSkills)
	if total != 3 {
		t.Errorf("total requirement rows = %d, want 3", total)
	}
}

func TestApplicationScoreNullability(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	a := &models.Application{
		ID:          uuid.New(),
		JobOfferID:  uuid.New(),
		ApplicantID: uuid.New(),
		Status:      models.ApplicationSubmitted,
		SubmittedAt: now,
		UpdatedAt:   now,
	}
	if err := s.InsertApplication(ctx, a); err != nil {
		t.Fatalf("insert: %v", err)
	}
	got, err := s.GetApplication(ctx, a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.MatchScore != nil {
		t.Errorf("score = %v, want nil before computation", *got.MatchScore)
	}

	score := 66.7
	a.MatchScore = &score
	if err := s.UpdateApplication(ctx, a); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err = s.GetApplication(ctx, a.ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.MatchScore == nil || *got.MatchScore != 66.7 {
		t.Errorf("score = %v, want 66.7", got.MatchScore)
	}
}

func TestInterviewRoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	iv := &models.Interview{
		ID:             uuid.New(),
		JobOfferID:     uuid.New(),
		ApplicantID:    uuid.New(),
		ScheduledAt:    time.Date(2026, 9, 15, 14, 0, 0, 0, time.UTC),
		Mode:           models.InterviewPhone,
		Status:         models.InterviewScheduled,
		LocationOrLink: "+41 22 000 00 00",
	}
	if err := s.InsertInterview(ctx, iv); err != nil {
		t.Fatalf("insert: %v", err)
	}
	got, err := s.GetInterview(ctx, iv.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Mode != models.InterviewPhone || got.Status != models.InterviewScheduled {
		t.Errorf("mode/status = %q/%q", got.Mode, got.Status)
	}
	if !got.ScheduledAt.Equal(iv.ScheduledAt) {
		t.Errorf("scheduled at = %v", got.ScheduledAt)
	}
}

func TestInTxRollsBackOnError(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	id := uuid.New()
	sentinel := errors.New("boom")
	err := s.InTx(ctx, func(q *Queries) error {
		if err := q.InsertCompany(ctx, &models.Company{ID: id, Name: "Ghost"}); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want sentinel", err)
	}
	got, err := s.GetCompany(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Error("row survived rollback")
	}
}

func TestClearAllAndReset(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.InsertCompany(ctx, &models.Company{ID: uuid.New(), Name: "Acme"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.ClearAll(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	companies, err := s.ListCompanies(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(companies) != 0 {
		t.Errorf("companies after clear = %d", len(companies))
	}

	if err := s.InsertCompany(ctx, &models.Company{ID: uuid.New(), Name: "Beta"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	companies, err = s.ListCompanies(ctx)
	if err != nil {
		t.Fatalf("list after reset: %v", err)
	}
	if len(companies) != 0 {
		t.Errorf("companies after reset = %d", len(companies))
	}
}
