package validation

import (
	"fmt"
	"strconv"
	"strings"
)

// crossFieldCheck is a plausibility check spanning multiple fields of one
// record. Cross-field findings are always advisory (warnings), never errors.
type crossFieldCheck func(rec Record, res *Result)

// crossFieldChecks maps each entity kind to its check set. Kinds without an
// entry simply have no cross-field checks.
var crossFieldChecks = map[EntityKind][]crossFieldCheck{
	KindStudent: {
		checkEmailDomainPlausibility,
		checkSemesterBound,
		checkIdenticalContacts,
	},
}

// checkEmailDomainPlausibility flags emails whose domain looks personal rather
// than institutional.
func checkEmailDomainPlausibility(rec Record, res *Result) {
	email := strings.ToLower(strings.TrimSpace(rec.Field(FieldEmail)))
	at := strings.Index(email, "@")
	if at <= 0 {
		return
	}
	local, domain := email[:at], email[at+1:]
	if strings.Contains(domain, "university") || strings.Contains(domain, "edu") {
		return
	}
	res.add(Issue{
		Field:       FieldEmail,
		Value:       rec.Field(FieldEmail),
		Message:     "email domain does not look institutional",
		Severity:    SeverityWarning,
		Code:        CodeSuspiciousEmailDomain,
		Suggestions: []string{local + "@" + defaultEmailDomain},
	})
}

// checkSemesterBound flags numeric semesters above the upper bound. The
// catalog rule rejects them as errors; this adds the advisory tier.
func checkSemesterBound(rec Record, res *Result) {
	semester := strings.TrimSpace(rec.Field(FieldSemester))
	if n, err := strconv.Atoi(semester); err == nil && n > maxSemester {
		res.add(Issue{
			Field:    FieldSemester,
			Value:    semester,
			Message:  fmt.Sprintf("semester %d is beyond the usual range (1-%d)", n, maxSemester),
			Severity: SeverityWarning,
			Code:     CodeSuspiciousSemester,
		})
	}
}

// checkIdenticalContacts warns when the student's own contact number equals
// the parent/guardian number once formatting is stripped.
func checkIdenticalContacts(rec Record, res *Result) {
	own := nonDigitRegex.ReplaceAllString(rec.Field(FieldContactNumber), "")
	parent := nonDigitRegex.ReplaceAllString(rec.Field(FieldParentContact), "")
	if own == "" || parent == "" || own != parent {
		return
	}
	res.add(Issue{
		Field:    FieldParentContact,
		Value:    rec.Field(FieldParentContact),
		Message:  "student and parent contact numbers are identical",
		Severity: SeverityWarning,
		Code:     CodeIdenticalContacts,
	})
}
