package state

import (
	"context"
	"fmt"
	"time"

	"github.com/doplab/jobfinder/pkg/models"
)

// Seed populates the store with a small demo data set through the
// regular create operations, so scores are computed and indices
// maintained exactly as they would be in normal use.
func (s *State) Seed(ctx context.Context) error {
	employer, err := s.CreateEmployer(ctx, &models.Employer{
		Person: models.Person{
			Username:  "acme-recruiting",
			FirstName: "Nadia",
			LastName:  "Keller",
			Email:     "recruiting@acme.example",
		},
		EnterpriseName: "Acme Software",
		Description:    "We build logistics software for small fleets.",
	})
	if err != nil {
		return fmt.Errorf("seed employer: %w", err)
	}

	company, err := s.CreateCompany(ctx, &models.Company{
		OwnerEmployerID: &employer.ID,
		Name:            "Acme Software",
		Location:        "Lausanne",
		Description:     "Logistics software vendor.",
	})
	if err != nil {
		return fmt.Errorf("seed company: %w", err)
	}

	if _, err := s.UpdateEmployer(ctx, employer.ID, EmployerPatch{CompanyID: &company.ID}); err != nil {
		return fmt.Errorf("seed employer company link: %w", err)
	}

	start := time.Now().UTC().AddDate(0, 1, 0)
	backend, err := s.CreateOffer(ctx, &models.JobOffer{
		EmployerID:     employer.ID,
		CompanyID:      &company.ID,
		Title:          "Backend Developer",
		Description:    "Design and run the services behind our dispatch platform.",
		EmploymentType: "Full-time",
		StartDate:      &start,
		RequiredSkills: []string{"java", "sql", "spring"},
		RequiredQualifications: []string{
			"bachelor degree in computer science",
			"3 years of experience",
		},
	})
	if err != nil {
		return fmt.Errorf("seed backend offer: %w", err)
	}
	frontend, err := s.CreateOffer(ctx, &models.JobOffer{
		EmployerID:     employer.ID,
		CompanyID:      &company.ID,
		Title:          "Frontend Developer",
		Description:    "Build the dispatcher console in the browser.",
		EmploymentType: "Full-time",
		RequiredSkills: []string{"javascript", "react", "css"},
	})
	if err != nil {
		return fmt.Errorf("seed frontend offer: %w", err)
	}
	for _, offer := range []*models.JobOffer{backend, frontend} {
		if _, err := s.PublishOffer(ctx, offer.ID, employer.ID); err != nil {
			return fmt.Errorf("seed publish offer: %w", err)
		}
	}

	alice, err := s.CreateApplicant(ctx, &models.Applicant{
		Person: models.Person{
			Username:  "alice",
			FirstName: "Alice",
			LastName:  "Martin",
			Email:     "alice@example.com",
		},
		Description: "Backend developer with a database background.",
		Skills:      []string{"java", "sql", "docker"},
	})
	if err != nil {
		return fmt.Errorf("seed applicant alice: %w", err)
	}
	bob, err := s.CreateApplicant(ctx, &models.Applicant{
		Person: models.Person{
			Username:  "bob",
			FirstName: "Bob",
			LastName:  "Nguyen",
			Email:     "bob@example.com",
		},
		Description:  "Frontend developer.",
		LegacySkills: "js, react, html, css",
	})
	if err != nil {
		return fmt.Errorf("seed applicant bob: %w", err)
	}

	if _, err := s.CreateApplication(ctx, &models.Application{
		JobOfferID:  backend.ID,
		ApplicantID: alice.ID,
	}); err != nil {
		return fmt.Errorf("seed application alice: %w", err)
	}
	if _, err := s.CreateApplication(ctx, &models.Application{
		JobOfferID:  frontend.ID,
		ApplicantID: bob.ID,
	}); err != nil {
		return fmt.Errorf("seed application bob: %w", err)
	}

	s.log.Info("seed data created")
	return nil
}
