package validation

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core"
)

type (
	// ReferenceRepository reads the reference collections used for reference
	// and uniqueness checks. It is a read-only collaborator; retry policy
	// belongs to the caller.
	ReferenceRepository interface {
		QueryDepartmentNames(ctx context.Context) ([]string, error)
		QuerySectionNames(ctx context.Context) ([]string, error)
		QueryAccountEmails(ctx context.Context) ([]string, error)
		QueryRollNumbers(ctx context.Context) ([]string, error)
	}

	// Snapshot is a point-in-time copy of the reference data, captured once at
	// the start of a validation call and never refreshed mid-call.
	Snapshot struct {
		Departments []string
		Sections    []string

		emails      map[string]struct{} // lower-cased
		rollNumbers map[string]struct{} // upper-cased
	}
)

func loadSnapshot(ctx context.Context, repo ReferenceRepository) (*Snapshot, error) {
	departments, err := repo.QueryDepartmentNames(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying department names")
	}
	sections, err := repo.QuerySectionNames(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying section names")
	}
	emails, err := repo.QueryAccountEmails(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying account emails")
	}
	rollNumbers, err := repo.QueryRollNumbers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying roll numbers")
	}

	snap := &Snapshot{
		Departments: departments,
		Sections:    sections,
		emails:      make(map[string]struct{}, len(emails)),
		rollNumbers: make(map[string]struct{}, len(rollNumbers)),
	}
	for _, email := range emails {
		snap.emails[core.CleanString(email, true)] = struct{}{}
	}
	for _, rn := range rollNumbers {
		snap.rollNumbers[strings.ToUpper(core.CleanString(rn))] = struct{}{}
	}
	return snap, nil
}

// HasEmail reports whether a persisted account already uses this email.
func (s *Snapshot) HasEmail(email string) bool {
	_, ok := s.emails[core.CleanString(email, true)]
	return ok
}

// HasRollNumber reports whether a persisted record already holds this identifier.
func (s *Snapshot) HasRollNumber(rollNumber string) bool {
	_, ok := s.rollNumbers[strings.ToUpper(core.CleanString(rollNumber))]
	return ok
}

func (s *Snapshot) referenceSet(target refTarget) []string {
	if target == refSections {
		return s.Sections
	}
	return s.Departments
}
