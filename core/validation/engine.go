package validation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/mahudhurio/core"
)

var (
	// ErrMixedBatch is returned when a batch mixes entity kinds; a batch must
	// be homogeneous so one catalog and one duplicate pass apply throughout.
	ErrMixedBatch = errors.New("all records in a batch must have the same entity kind")
)

// nameSimilarityFloor is the QuickRatio above which two batch records' names
// are flagged as near-duplicates.
const nameSimilarityFloor = 0.9

type (
	// Options are the engine tunables: they drive false-positive rates on
	// reference suggestions and are configuration, not constants.
	Options struct {
		SimilarityThreshold float64 `json:"similarity_threshold" validate:"gt=0,lte=1"`
		MaxSuggestions      int     `json:"max_suggestions" validate:"min=1"`
	}

	// Service is the data-entry validation engine. It holds no long-lived
	// mutable state: the reference snapshot is rebuilt on every entry point.
	Service struct {
		repo ReferenceRepository
		opts Options
	}
)

func DefaultOptions() Options {
	return Options{SimilarityThreshold: 0.6, MaxSuggestions: 3}
}

func (o Options) Validate(validate *validator.Validate) error {
	return validate.Struct(o)
}

// NewService returns an engine reading reference data through repo.
// Nil opts means DefaultOptions.
func NewService(repo ReferenceRepository, opts *Options) *Service {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	return &Service{repo: repo, opts: o}
}

// Validate runs one record through its kind's rule catalog and cross-field
// checks against a fresh reference snapshot. Only a snapshot load failure
// returns a non-nil error; rule findings land on the Result.
func (svc *Service) Validate(ctx context.Context, rec Record) (Result, error) {
	snap, err := loadSnapshot(ctx, svc.repo)
	if err != nil {
		return Result{}, err
	}
	return svc.validateRecord(rec, snap), nil
}

// ValidateBatch validates each record independently against a single fresh
// snapshot, then runs the batch-wide duplicate pass. Results keep the caller's
// record ordering.
func (svc *Service) ValidateBatch(ctx context.Context, recs []Record) ([]Result, error) {
	if len(recs) == 0 {
		return nil, nil
	}
	kind := recs[0].Kind()
	for _, rec := range recs[1:] {
		if rec.Kind() != kind {
			return nil, ErrMixedBatch
		}
	}

	snap, err := loadSnapshot(ctx, svc.repo)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(recs))
	for i, rec := range recs {
		results[i] = svc.validateRecord(rec, snap)
	}
	svc.checkBatchDuplicates(kind, recs, results)
	return results, nil
}

func (svc *Service) validateRecord(rec Record, snap *Snapshot) Result {
	var res Result
	corrected := make(map[string]string)

	for _, rule := range catalogFor(rec.Kind()) {
		svc.evalRule(rule, rec, snap, corrected, &res)
	}
	for _, check := range crossFieldChecks[rec.Kind()] {
		check(rec, &res)
	}

	if len(corrected) > 0 {
		res.CorrectedData = rec.apply(corrected)
	}
	return res
}

// checkBatchDuplicates finds duplicates introduced within the batch itself,
// as opposed to collisions with persisted data (the unique rules' job).
func (svc *Service) checkBatchDuplicates(kind EntityKind, recs []Record, results []Result) {
	byEmail := make(map[string][]int)
	byRollNumber := make(map[string][]int)
	for i, rec := range recs {
		if email := core.CleanString(rec.Field(FieldEmail), true); email != "" {
			byEmail[email] = append(byEmail[email], i)
		}
		if kind != KindStudent {
			continue
		}
		if rn := strings.ToUpper(core.CleanString(rec.Field(FieldRollNumber))); rn != "" {
			byRollNumber[rn] = append(byRollNumber[rn], i)
		}
	}

	for email, indices := range byEmail {
		if len(indices) < 2 {
			continue
		}
		for _, i := range indices {
			results[i].add(Issue{
				Field:    FieldEmail,
				Value:    recs[i].Field(FieldEmail),
				Message:  fmt.Sprintf("email %q is duplicated within the batch (rows %s)", email, joinRows(indices)),
				Severity: SeverityError,
				Code:     CodeBatchDuplicateEmail,
			})
		}
	}
	for rn, indices := range byRollNumber {
		if len(indices) < 2 {
			continue
		}
		for _, i := range indices {
			results[i].add(Issue{
				Field:    FieldRollNumber,
				Value:    recs[i].Field(FieldRollNumber),
				Message:  fmt.Sprintf("roll number %q is duplicated within the batch (rows %s)", rn, joinRows(indices)),
				Severity: SeverityError,
				Code:     CodeBatchDuplicateRoll,
			})
		}
	}

	svc.checkSimilarNames(recs, results)
}

// checkSimilarNames flags pairs of records whose names are nearly identical.
// Advisory only: typos aside, homonyms are perfectly legal.
func (svc *Service) checkSimilarNames(recs []Record, results []Result) {
	names := make([]string, len(recs))
	for i, rec := range recs {
		names[i] = core.CleanString(rec.Field(FieldName), true)
	}

	for i := 0; i < len(recs); i++ {
		if names[i] == "" {
			continue
		}
		for j := i + 1; j < len(recs); j++ {
			if names[j] == "" {
				continue
			}
			matcher := difflib.NewMatcher(strings.Split(names[i], ""), strings.Split(names[j], ""))
			if matcher.QuickRatio() < nameSimilarityFloor {
				continue
			}
			results[i].add(similarNameIssue(recs[i].Field(FieldName), j))
			results[j].add(similarNameIssue(recs[j].Field(FieldName), i))
		}
	}
}

func similarNameIssue(name string, otherIdx int) Issue {
	return Issue{
		Field:    FieldName,
		Value:    name,
		Message:  fmt.Sprintf("name closely matches row %d; possible duplicate entry", otherIdx+1),
		Severity: SeverityWarning,
		Code:     CodeBatchSimilarName,
	}
}

// joinRows renders 1-based row numbers: [0 2] -> "1, 3".
func joinRows(indices []int) string {
	rows := make([]string, 0, len(indices))
	for _, i := range indices {
		rows = append(rows, strconv.Itoa(i+1))
	}
	return strings.Join(rows, ", ")
}
