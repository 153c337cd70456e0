package validation

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/trezcool/mahudhurio/core"
)

type stubRepo struct {
	departments []string
	sections    []string
	emails      []string
	rollNumbers []string
	err         error
}

var _ ReferenceRepository = (*stubRepo)(nil)

func (r stubRepo) QueryDepartmentNames(context.Context) ([]string, error) { return r.departments, r.err }
func (r stubRepo) QuerySectionNames(context.Context) ([]string, error)    { return r.sections, r.err }
func (r stubRepo) QueryAccountEmails(context.Context) ([]string, error)   { return r.emails, r.err }
func (r stubRepo) QueryRollNumbers(context.Context) ([]string, error)     { return r.rollNumbers, r.err }

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(stubRepo{
		departments: []string{"Computer Science", "Mathematics", "Physics"},
		sections:    []string{"A", "B", "C"},
		emails:      []string{"taken@university.edu"},
		rollNumbers: []string{"CS200"},
	}, nil)
}

func validStudent() StudentRecord {
	return StudentRecord{
		Name:          "Jane Doe",
		RollNumber:    "CS101",
		Email:         "jane.doe@university.edu",
		Department:    "Computer Science",
		Section:       "A",
		Semester:      "3",
		ContactNumber: "+1234567890",
		ParentContact: "+1098765432",
	}
}

func TestValidateValidStudent(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Validate(context.Background(), validStudent())
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if !res.IsValid() {
		t.Errorf("IsValid() = false, errors: %+v", res.Errors)
	}
	if res.CorrectedData != nil {
		t.Errorf("CorrectedData = %+v, want nil", res.CorrectedData)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %+v, want none", res.Warnings)
	}
}

// The messy-record scenario: every heuristic fires at once.
func TestValidateMessyStudent(t *testing.T) {
	svc := newTestService(t)

	rec := StudentRecord{
		Name:       "john smith",
		RollNumber: "cs-101!",
		Email:      "JOHN@X",
		Department: "Computer Scince",
		Semester:   "9",
	}
	res, err := svc.Validate(context.Background(), rec)
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if res.IsValid() {
		t.Fatal("IsValid() = true for a messy record")
	}

	for _, code := range []string{CodeInvalidFormat, CodeInvalidReference, CodeInvalidSemester, CodeAutoCorrection} {
		if !res.HasCode(code) {
			t.Errorf("missing finding with code %s", code)
		}
	}

	corrected, ok := res.CorrectedData.(StudentRecord)
	if !ok {
		t.Fatalf("CorrectedData is %T, want StudentRecord", res.CorrectedData)
	}
	if corrected.Name != "John Smith" {
		t.Errorf("corrected name = %q, want %q", corrected.Name, "John Smith")
	}
	if corrected.RollNumber != "CS101" {
		t.Errorf("corrected roll number = %q, want %q", corrected.RollNumber, "CS101")
	}
	if corrected.Email != "john@x" {
		t.Errorf("corrected email = %q, want %q", corrected.Email, "john@x")
	}

	// the department typo is a reference failure, with the right suggestion
	var refIssue *Issue
	for i := range res.Errors {
		if res.Errors[i].Code == CodeInvalidReference {
			refIssue = &res.Errors[i]
		}
	}
	if refIssue == nil {
		t.Fatal("no INVALID_REFERENCE finding")
	}
	if len(refIssue.Suggestions) == 0 || refIssue.Suggestions[0] != "Computer Science" {
		t.Errorf("reference suggestions = %v, want [Computer Science ...]", refIssue.Suggestions)
	}

	// input record must be untouched
	if rec.Name != "john smith" || rec.RollNumber != "cs-101!" {
		t.Error("input record was mutated")
	}
}

func TestValidateRequiredFields(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Validate(context.Background(), StudentRecord{})
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	required := 0
	for _, iss := range res.Errors {
		if iss.Code == CodeRequiredFieldMissing {
			required++
		}
	}
	// name, roll number, email, department, semester
	if required != 5 {
		t.Errorf("got %d REQUIRED_FIELD_MISSING errors, want 5: %+v", required, res.Errors)
	}
}

func TestValidateUniquenessAgainstPersistedData(t *testing.T) {
	svc := newTestService(t)

	rec := validStudent()
	rec.Email = "Taken@University.EDU" // case-folded against the snapshot
	res, err := svc.Validate(context.Background(), rec)
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if !res.HasCode(CodeDuplicateValue) {
		t.Errorf("missing DUPLICATE_VALUE, errors: %+v", res.Errors)
	}

	rec = validStudent()
	rec.RollNumber = "CS200"
	res, err = svc.Validate(context.Background(), rec)
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if !res.HasCode(CodeDuplicateValue) {
		t.Errorf("missing DUPLICATE_VALUE for roll number, errors: %+v", res.Errors)
	}
}

func TestValidateIdempotent(t *testing.T) {
	svc := newTestService(t)

	rec := StudentRecord{
		Name:       "john smith",
		RollNumber: "cs-101!",
		Email:      "JOHN@X",
		Department: "Computer Scince",
		Semester:   "9",
	}
	first, err := svc.Validate(context.Background(), rec)
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	second, err := svc.Validate(context.Background(), rec)
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Validate() is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestValidateSnapshotLoadFailure(t *testing.T) {
	dbErr := errors.New("connection refused")
	svc := NewService(stubRepo{err: dbErr}, nil)

	if _, err := svc.Validate(context.Background(), validStudent()); !errors.Is(err, dbErr) {
		t.Errorf("Validate() error = %v, want cause %v", err, dbErr)
	}
	if _, err := svc.ValidateBatch(context.Background(), []Record{validStudent()}); !errors.Is(err, dbErr) {
		t.Errorf("ValidateBatch() error = %v, want cause %v", err, dbErr)
	}
}

// A repository signaling database loss must still be recognizable as a
// shutdown condition after the engine wraps it.
func TestValidateDatabaseLossSignalsShutdown(t *testing.T) {
	svc := NewService(stubRepo{err: core.NewShutdownError("database unreachable")}, nil)

	_, err := svc.Validate(context.Background(), validStudent())
	if !core.IsShutdown(err) {
		t.Errorf("Validate() error = %v, want a shutdown error", err)
	}
	_, err = svc.ValidateBatch(context.Background(), []Record{validStudent()})
	if !core.IsShutdown(err) {
		t.Errorf("ValidateBatch() error = %v, want a shutdown error", err)
	}
}

func TestValidateTeacher(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Validate(context.Background(), TeacherRecord{
		Name:       "Alan Turing",
		Email:      "alan.turing@university.edu",
		Department: "Mathematics",
		EmployeeID: "EMP042",
	})
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if !res.IsValid() {
		t.Errorf("IsValid() = false, errors: %+v", res.Errors)
	}

	// teacher kind has no cross-field checks
	res, err = svc.Validate(context.Background(), TeacherRecord{
		Name:       "Ada Lovelace",
		Email:      "ada@gmail.com",
		Department: "Mathematics",
		EmployeeID: "EMP043",
	})
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if res.HasCode(CodeSuspiciousEmailDomain) {
		t.Error("teacher records must not get student cross-field warnings")
	}
}

func TestValidateBatchDuplicateEmails(t *testing.T) {
	svc := newTestService(t)

	a := validStudent()
	a.Email = "a@b.com"
	b := validStudent()
	b.RollNumber = "CS102"
	b.Email = "A@B.com" // duplicate modulo case
	c := validStudent()
	c.Name = "Someone Else"
	c.RollNumber = "CS103"
	c.Email = "c@university.edu"

	results, err := svc.ValidateBatch(context.Background(), []Record{a, b, c})
	if err != nil {
		t.Fatalf("ValidateBatch() failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		if !results[i].HasCode(CodeBatchDuplicateEmail) {
			t.Errorf("row %d: missing BATCH_DUPLICATE_EMAIL", i+1)
		}
		if results[i].IsValid() {
			t.Errorf("row %d: IsValid() = true after batch duplicate append", i+1)
		}
		found := false
		for _, iss := range results[i].Errors {
			if iss.Code == CodeBatchDuplicateEmail {
				found = true
				if want := "rows 1, 2"; !strings.Contains(iss.Message, want) {
					t.Errorf("row %d: message %q does not reference %q", i+1, iss.Message, want)
				}
			}
		}
		if !found {
			t.Errorf("row %d: BATCH_DUPLICATE_EMAIL not in Errors", i+1)
		}
	}
	if results[2].HasCode(CodeBatchDuplicateEmail) {
		t.Error("row 3: unrelated record flagged as batch duplicate")
	}
}

func TestValidateBatchDuplicateRollNumbers(t *testing.T) {
	svc := newTestService(t)

	a := validStudent()
	b := validStudent()
	b.Name = "Someone Else"
	b.Email = "someone.else@university.edu"
	b.RollNumber = "cs101" // duplicate of a's CS101 modulo case

	results, err := svc.ValidateBatch(context.Background(), []Record{a, b})
	if err != nil {
		t.Fatalf("ValidateBatch() failed: %v", err)
	}
	for i := range results {
		if !results[i].HasCode(CodeBatchDuplicateRoll) {
			t.Errorf("row %d: missing BATCH_DUPLICATE_ROLL_NUMBER", i+1)
		}
	}
}

func TestValidateBatchTeachers(t *testing.T) {
	svc := newTestService(t)

	shared := TeacherRecord{Name: "Grace Hopper", Email: "t@x.com", Department: "Physics", EmployeeID: "EMP100"}
	other := TeacherRecord{Name: "Someone Different", Email: "unique@x.com", Department: "Physics", EmployeeID: "EMP101"}
	dup := shared
	dup.Name = "Second Entry"
	dup.EmployeeID = "EMP102"

	results, err := svc.ValidateBatch(context.Background(), []Record{shared, other, dup})
	if err != nil {
		t.Fatalf("ValidateBatch() failed: %v", err)
	}
	if !results[0].HasCode(CodeBatchDuplicateEmail) || !results[2].HasCode(CodeBatchDuplicateEmail) {
		t.Error("colliding teacher rows missing BATCH_DUPLICATE_EMAIL")
	}
	if results[1].HasCode(CodeBatchDuplicateEmail) {
		t.Error("unrelated teacher row flagged")
	}
	// teachers never get the roll number pass
	for i := range results {
		if results[i].HasCode(CodeBatchDuplicateRoll) {
			t.Errorf("row %d: teacher got BATCH_DUPLICATE_ROLL_NUMBER", i+1)
		}
	}
}

func TestValidateBatchSimilarNames(t *testing.T) {
	svc := newTestService(t)

	a := validStudent()
	b := validStudent()
	b.Name = "Jane Doee"
	b.RollNumber = "CS102"
	b.Email = "jane.doee@university.edu"

	results, err := svc.ValidateBatch(context.Background(), []Record{a, b})
	if err != nil {
		t.Fatalf("ValidateBatch() failed: %v", err)
	}
	for i := range results {
		if !results[i].HasCode(CodeBatchSimilarName) {
			t.Errorf("row %d: missing BATCH_SIMILAR_NAME warning", i+1)
		}
		if !results[i].IsValid() {
			t.Errorf("row %d: similar-name warning must not block validity: %+v", i+1, results[i].Errors)
		}
	}
}

func TestValidateBatchMixedKinds(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ValidateBatch(context.Background(), []Record{
		validStudent(),
		TeacherRecord{Name: "Alan Turing", Email: "a@university.edu", Department: "Mathematics", EmployeeID: "EMP001"},
	})
	if !errors.Is(err, ErrMixedBatch) {
		t.Errorf("ValidateBatch() error = %v, want ErrMixedBatch", err)
	}
}

func TestValidateBatchEmpty(t *testing.T) {
	svc := newTestService(t)

	results, err := svc.ValidateBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("ValidateBatch() failed: %v", err)
	}
	if results != nil {
		t.Errorf("ValidateBatch(nil) = %+v, want nil", results)
	}
}
