package validation

// Severity levels, ordered by blocking power: only SeverityError makes a
// Result invalid.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue codes.
const (
	CodeRequiredFieldMissing  = "REQUIRED_FIELD_MISSING"
	CodeInvalidFormat         = "INVALID_FORMAT"
	CodeDuplicateValue        = "DUPLICATE_VALUE"
	CodeInvalidReference      = "INVALID_REFERENCE"
	CodeInvalidSemester       = "INVALID_SEMESTER"
	CodeAutoCorrection        = "AUTO_CORRECTION"
	CodeSuspiciousEmailDomain = "SUSPICIOUS_EMAIL_DOMAIN"
	CodeSuspiciousSemester    = "SUSPICIOUS_SEMESTER"
	CodeIdenticalContacts     = "IDENTICAL_CONTACTS"
	CodeBatchDuplicateEmail   = "BATCH_DUPLICATE_EMAIL"
	CodeBatchDuplicateRoll    = "BATCH_DUPLICATE_ROLL_NUMBER"
	CodeBatchSimilarName      = "BATCH_SIMILAR_NAME"
)

// Issue is a single finding against one field of one record.
// Issues are produced once and never mutated.
type Issue struct {
	Field       string   `json:"field"`
	Value       string   `json:"value,omitempty"`
	Message     string   `json:"message"`
	Severity    Severity `json:"severity"`
	Code        string   `json:"code"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Result holds all findings for one record.
type Result struct {
	Errors      []Issue
	Warnings    []Issue
	Suggestions []Issue // info-severity findings (auto-corrections)

	// CorrectedData is a corrected copy of the input record. It is nil unless
	// at least one auto-correction changed a field value.
	CorrectedData Record
}

// IsValid is derived, never stored, so it always reflects errors appended by
// the batch duplicate pass.
func (res *Result) IsValid() bool {
	return len(res.Errors) == 0
}

func (res *Result) add(iss Issue) {
	switch iss.Severity {
	case SeverityWarning:
		res.Warnings = append(res.Warnings, iss)
	case SeverityInfo:
		res.Suggestions = append(res.Suggestions, iss)
	default:
		res.Errors = append(res.Errors, iss)
	}
}

// HasCode reports whether any finding of any severity carries the given code.
func (res *Result) HasCode(code string) bool {
	for _, group := range [][]Issue{res.Errors, res.Warnings, res.Suggestions} {
		for _, iss := range group {
			if iss.Code == code {
				return true
			}
		}
	}
	return false
}
