// Package state keeps an in-memory projection of the entity graph in
// sync with the SQLite store. Every mutation flows through it: writes
// commit to the store first, then update the cache and the derived
// inverse-relation indices, so the store stays authoritative and the
// cache can always be rebuilt with Load.
package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/doplab/jobfinder/internal/match"
	"github.com/doplab/jobfinder/internal/store"
	"github.com/doplab/jobfinder/pkg/models"
)

// PublishRule selects which offer statuses may transition to Published.
type PublishRule string

const (
	// PublishDraftOnly restricts publishing to offers in Draft.
	PublishDraftOnly PublishRule = "draft-only"
	// PublishAny allows publishing from any status.
	PublishAny PublishRule = "any"
)

// idSet is a set of entity ids used by the inverse-relation indices.
type idSet map[uuid.UUID]struct{}

// State is the projection. All exported methods are safe for concurrent
// use; mutating calls hold the write lock for their full duration.
type State struct {
	mu          sync.RWMutex
	store       *store.Store
	log         *zap.Logger
	match       *match.Engine
	publishRule PublishRule

	applicants   map[uuid.UUID]*models.Applicant
	employers    map[uuid.UUID]*models.Employer
	companies    map[uuid.UUID]*models.Company
	offers       map[uuid.UUID]*models.JobOffer
	applications map[uuid.UUID]*models.Application
	interviews   map[uuid.UUID]*models.Interview

	// Derived from foreign keys, never authoritative. Rebuilt wholesale
	// by Load and maintained incrementally by every mutation.
	offersByEmployer        map[uuid.UUID]idSet
	offersByCompany         map[uuid.UUID]idSet
	employersByCompany      map[uuid.UUID]idSet
	companiesByOwner        map[uuid.UUID]idSet
	applicationsByOffer     map[uuid.UUID]idSet
	applicationsByApplicant map[uuid.UUID]idSet
	interviewsByOffer       map[uuid.UUID]idSet
	interviewsByApplicant   map[uuid.UUID]idSet
}

// New builds an empty projection over st. Call Load before serving.
func New(st *store.Store, log *zap.Logger, rule PublishRule) *State {
	if rule != PublishAny {
		rule = PublishDraftOnly
	}
	s := &State{
		store:       st,
		log:         log,
		match:       match.NewEngine(),
		publishRule: rule,
	}
	s.clearLocked()
	return s
}

// Load clears the cache, bulk-reads every entity type and recomputes
// every inverse-relation index from foreign keys. Re-runnable at any
// time to repair drift.
func (s *State) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	applicants, err := s.store.ListApplicants(ctx)
	if err != nil {
		return fmt.Errorf("load applicants: %w", err)
	}
	employers, err := s.store.ListEmployers(ctx)
	if err != nil {
		return fmt.Errorf("load employers: %w", err)
	}
	companies, err := s.store.ListCompanies(ctx)
	if err != nil {
		return fmt.Errorf("load companies: %w", err)
	}
	offers, err := s.store.ListOffers(ctx)
	if err != nil {
		return fmt.Errorf("load offers: %w", err)
	}
	applications, err := s.store.ListApplications(ctx)
	if err != nil {
		return fmt.Errorf("load applications: %w", err)
	}
	interviews, err := s.store.ListInterviews(ctx)
	if err != nil {
		return fmt.Errorf("load interviews: %w", err)
	}

	s.clearLocked()
	for _, a := range applicants {
		s.applicants[a.ID] = a
	}
	for _, e := range employers {
		s.employers[e.ID] = e
	}
	for _, c := range companies {
		s.companies[c.ID] = c
	}
	for _, o := range offers {
		s.offers[o.ID] = o
	}
	for _, a := range applications {
		s.applications[a.ID] = a
	}
	for _, iv := range interviews {
		s.interviews[iv.ID] = iv
	}
	s.rebuildIndexesLocked()

	s.log.Info("state loaded",
		zap.Int("applicants", len(applicants)),
		zap.Int("employers", len(employers)),
		zap.Int("companies", len(companies)),
		zap.Int("offers", len(offers)),
		zap.Int("applications", len(applications)),
		zap.Int("interviews", len(interviews)))
	return nil
}

func (s *State) clearLocked() {
	s.applicants = make(map[uuid.UUID]*models.Applicant)
	s.employers = make(map[uuid.UUID]*models.Employer)
	s.companies = make(map[uuid.UUID]*models.Company)
	s.offers = make(map[uuid.UUID]*models.JobOffer)
	s.applications = make(map[uuid.UUID]*models.Application)
	s.interviews = make(map[uuid.UUID]*models.Interview)
	s.offersByEmployer = make(map[uuid.UUID]idSet)
	s.offersByCompany = make(map[uuid.UUID]idSet)
	s.employersByCompany = make(map[uuid.UUID]idSet)
	s.companiesByOwner = make(map[uuid.UUID]idSet)
	s.applicationsByOffer = make(map[uuid.UUID]idSet)
	s.applicationsByApplicant = make(map[uuid.UUID]idSet)
	s.interviewsByOffer = make(map[uuid.UUID]idSet)
	s.interviewsByApplicant = make(map[uuid.UUID]idSet)
}

// rebuildIndexesLocked recomputes every inverse relation from the
// foreign keys currently cached.
func (s *State) rebuildIndexesLocked() {
	s.offersByEmployer = make(map[uuid.UUID]idSet)
	s.offersByCompany = make(map[uuid.UUID]idSet)
	s.employersByCompany = make(map[uuid.UUID]idSet)
	s.companiesByOwner = make(map[uuid.UUID]idSet)
	s.applicationsByOffer = make(map[uuid.UUID]idSet)
	s.applicationsByApplicant = make(map[uuid.UUID]idSet)
	s.interviewsByOffer = make(map[uuid.UUID]idSet)
	s.interviewsByApplicant = make(map[uuid.UUID]idSet)

	for id, o := range s.offers {
		addToIndex(s.offersByEmployer, o.EmployerID, id)
		if o.CompanyID != nil {
			addToIndex(s.offersByCompany, *o.CompanyID, id)
		}
	}
	for id, e := range s.employers {
		if e.CompanyID != nil {
			addToIndex(s.employersByCompany, *e.CompanyID, id)
		}
	}
	for id, c := range s.companies {
		if c.OwnerEmployerID != nil {
			addToIndex(s.companiesByOwner, *c.OwnerEmployerID, id)
		}
	}
	for id, a := range s.applications {
		addToIndex(s.applicationsByOffer, a.JobOfferID, id)
		addToIndex(s.applicationsByApplicant, a.ApplicantID, id)
	}
	for id, iv := range s.interviews {
		addToIndex(s.interviewsByOffer, iv.JobOfferID, id)
		addToIndex(s.interviewsByApplicant, iv.ApplicantID, id)
	}
}

func addToIndex(index map[uuid.UUID]idSet, parent, child uuid.UUID) {
	set, ok := index[parent]
	if !ok {
		set = make(idSet)
		index[parent] = set
	}
	set[child] = struct{}{}
}

func removeFromIndex(index map[uuid.UUID]idSet, parent, child uuid.UUID) {
	set, ok := index[parent]
	if !ok {
		return
	}
	delete(set, child)
	if len(set) == 0 {
		delete(index, parent)
	}
}

func indexIDs(index map[uuid.UUID]idSet, parent uuid.UUID) []uuid.UUID {
	set := index[parent]
	ids := make([]uuid.UUID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}
