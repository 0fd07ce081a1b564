package state

import (
	"strings"

	"github.com/google/uuid"

	"github.com/doplab/jobfinder/pkg/models"
)

// The cache hands out copies so callers can never mutate a cached entity
// behind the projection's back.

func cloneApplicant(a *models.Applicant) *models.Applicant {
	c := *a
	c.Skills = append([]string(nil), a.Skills...)
	return &c
}

func cloneEmployer(e *models.Employer) *models.Employer {
	c := *e
	c.CompanyID = cloneID(e.CompanyID)
	return &c
}

func cloneCompany(co *models.Company) *models.Company {
	c := *co
	c.OwnerEmployerID = cloneID(co.OwnerEmployerID)
	return &c
}

func cloneOffer(o *models.JobOffer) *models.JobOffer {
	c := *o
	c.CompanyID = cloneID(o.CompanyID)
	if o.StartDate != nil {
		t := *o.StartDate
		c.StartDate = &t
	}
	if o.EndDate != nil {
		t := *o.EndDate
		c.EndDate = &t
	}
	c.RequiredSkills = append([]string(nil), o.RequiredSkills...)
	c.RequiredQualifications = append([]string(nil), o.RequiredQualifications...)
	return &c
}

func cloneApplication(a *models.Application) *models.Application {
	c := *a
	if a.MatchScore != nil {
		v := *a.MatchScore
		c.MatchScore = &v
	}
	return &c
}

func cloneInterview(iv *models.Interview) *models.Interview {
	c := *iv
	return &c
}

func cloneID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// normalizePhrases trims each phrase, drops blanks and deduplicates
// case-insensitively while keeping the first spelling seen.
func normalizePhrases(phrases []string) []string {
	seen := make(map[string]struct{}, len(phrases))
	var out []string
	for _, p := range phrases {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		key := strings.ToLower(p)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}

// samePhrases reports whether two phrase lists are equal ignoring case.
func samePhrases(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !strings.EqualFold(a[i], b[i]) {
			return false
		}
	}
	return true
}
