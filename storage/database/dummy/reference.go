package dummydb

import (
	"context"

	"github.com/trezcool/mahudhurio/core/validation"
)

type referenceRepository struct {
	db *DB
}

var _ validation.ReferenceRepository = (*referenceRepository)(nil) // interface compliance check

func NewReferenceRepository(db *DB) validation.ReferenceRepository {
	return &referenceRepository{db: db}
}

func (repo *referenceRepository) QueryDepartmentNames(context.Context) ([]string, error) {
	return repo.db.departments.query(), nil
}

func (repo *referenceRepository) QuerySectionNames(context.Context) ([]string, error) {
	return repo.db.sections.query(), nil
}

func (repo *referenceRepository) QueryAccountEmails(context.Context) ([]string, error) {
	return repo.db.emails.query(), nil
}

func (repo *referenceRepository) QueryRollNumbers(context.Context) ([]string, error) {
	return repo.db.rollNumbers.query(), nil
}
