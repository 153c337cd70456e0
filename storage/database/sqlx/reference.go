package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/validation"
)

type referenceRepository struct {
	db *sqlx.DB
}

var _ validation.ReferenceRepository = (*referenceRepository)(nil) // interface compliance check

func NewReferenceRepository(db *sqlx.DB) validation.ReferenceRepository {
	return &referenceRepository{db: db}
}

// queryErr wraps a failed query. When the database itself is gone the error
// becomes a shutdown signal so the server stops serving instead of failing
// every request.
func (repo *referenceRepository) queryErr(err error, msg string) error {
	if repo.db.Ping() != nil {
		return errors.Wrap(core.NewShutdownError("database unreachable: "+err.Error()), msg)
	}
	return errors.Wrap(err, msg)
}

type (
	departmentRow struct {
		Name string `db:"name"`
	}
	sectionRow struct {
		Name string `db:"section_name"`
	}
	accountRow struct {
		Email null.String `db:"email"`
	}
	identifierRow struct {
		Identifier null.String `db:"identifier"`
	}
)

func (repo *referenceRepository) QueryDepartmentNames(ctx context.Context) ([]string, error) {
	var rows []departmentRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT name FROM department ORDER BY name`); err != nil {
		return nil, repo.queryErr(err, "selecting departments")
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.Name)
	}
	return names, nil
}

func (repo *referenceRepository) QuerySectionNames(ctx context.Context) ([]string, error) {
	var rows []sectionRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT section_name FROM section ORDER BY section_name`); err != nil {
		return nil, repo.queryErr(err, "selecting sections")
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.Name)
	}
	return names, nil
}

func (repo *referenceRepository) QueryAccountEmails(ctx context.Context) ([]string, error) {
	var rows []accountRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT email FROM account`); err != nil {
		return nil, repo.queryErr(err, "selecting account emails")
	}
	emails := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Email.Valid {
			emails = append(emails, row.Email.String)
		}
	}
	return emails, nil
}

// QueryRollNumbers returns every persisted person identifier: student roll
// numbers and teacher employee IDs share one uniqueness pool.
func (repo *referenceRepository) QueryRollNumbers(ctx context.Context) ([]string, error) {
	var rows []identifierRow
	query := `SELECT roll_number AS identifier FROM student
		UNION SELECT employee_id AS identifier FROM teacher`
	if err := repo.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, repo.queryErr(err, "selecting person identifiers")
	}
	identifiers := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Identifier.Valid {
			identifiers = append(identifiers, row.Identifier.String)
		}
	}
	return identifiers, nil
}
