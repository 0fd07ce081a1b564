package state

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// The exists helpers back required-reference validation on create and
// update paths: an unresolvable reference is a validation failure, not a
// not-found outcome for the entity being mutated.

func (s *State) companyExistsLocked(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := s.companyLocked(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *State) employerExistsLocked(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := s.employerLocked(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *State) applicantExistsLocked(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := s.applicantLocked(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *State) offerExistsLocked(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := s.offerLocked(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// mergeString applies v only when it was sent and is not blank, so a
// partial payload never erases a stored value.
func mergeString(dst *string, v *string) {
	if v == nil {
		return
	}
	if strings.TrimSpace(*v) == "" {
		return
	}
	*dst = *v
}

// setString applies v whenever it was sent, blank included.
func setString(dst *string, v *string) {
	if v == nil {
		return
	}
	*dst = *v
}

// mergeRef applies an optional foreign key. Nil means not sent; the zero
// uuid clears the reference.
func mergeRef(dst **uuid.UUID, v *uuid.UUID) {
	if v == nil {
		return
	}
	if *v == uuid.Nil {
		*dst = nil
		return
	}
	id := *v
	*dst = &id
}

// dropApplicationLocked removes an application from the cache and from
// both of its inverse indices.
func (s *State) dropApplicationLocked(id uuid.UUID) {
	a, ok := s.applications[id]
	if !ok {
		return
	}
	removeFromIndex(s.applicationsByOffer, a.JobOfferID, id)
	removeFromIndex(s.applicationsByApplicant, a.ApplicantID, id)
	delete(s.applications, id)
}

// dropInterviewLocked removes an interview from the cache and from both
// of its inverse indices.
func (s *State) dropInterviewLocked(id uuid.UUID) {
	iv, ok := s.interviews[id]
	if !ok {
		return
	}
	removeFromIndex(s.interviewsByOffer, iv.JobOfferID, id)
	removeFromIndex(s.interviewsByApplicant, iv.ApplicantID, id)
	delete(s.interviews, id)
}

// dropOfferLocked removes an offer from the cache and from its employer
// and company inverse indices. Child applications and interviews are the
// caller's responsibility.
func (s *State) dropOfferLocked(id uuid.UUID) {
	o, ok := s.offers[id]
	if !ok {
		return
	}
	removeFromIndex(s.offersByEmployer, o.EmployerID, id)
	if o.CompanyID != nil {
		removeFromIndex(s.offersByCompany, *o.CompanyID, id)
	}
	delete(s.offers, id)
	delete(s.applicationsByOffer, id)
	delete(s.interviewsByOffer, id)
}
