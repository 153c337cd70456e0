package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

type ruleKind int

const (
	ruleRequired ruleKind = iota
	ruleFormat
	ruleUnique
	ruleReference
	ruleCustom
)

// refTarget selects the reference set a reference rule checks against.
type refTarget int

const (
	refDepartments refTarget = iota
	refSections
)

// uniqueTarget selects the persisted-value set a unique rule checks against.
type uniqueTarget int

const (
	uniqueEmails uniqueTarget = iota
	uniqueRollNumbers
)

type (
	// CheckResult is returned by custom rule predicates.
	CheckResult struct {
		Valid    bool
		Message  string
		Severity Severity // defaults to SeverityError
		Code     string
	}

	// CheckFunc is an arbitrary predicate receiving the field value and the
	// full record, for constraints the other rule kinds cannot express.
	CheckFunc func(value string, rec Record) CheckResult

	// Rule is one immutable field rule in a catalog. Exactly one of Pattern,
	// Ref, Unique or Check is meaningful, depending on the kind.
	Rule struct {
		Field   string
		Kind    ruleKind
		Message string

		Pattern *regexp.Regexp // format
		Class   fieldClass     // format: suggestion/correction heuristics
		Ref     refTarget      // reference
		Unique  uniqueTarget   // unique
		Check   CheckFunc      // custom
	}
)

// evalRule evaluates one rule against one field and appends findings to res.
// Corrections from earlier rules are visible through the corrected
// accumulator; the input record is never touched.
func (svc *Service) evalRule(rule Rule, rec Record, snap *Snapshot, corrected map[string]string, res *Result) {
	value := rec.Field(rule.Field)
	if v, ok := corrected[rule.Field]; ok {
		value = v
	}

	switch rule.Kind {
	case ruleRequired:
		if strings.TrimSpace(value) == "" {
			res.add(Issue{
				Field:    rule.Field,
				Value:    value,
				Message:  rule.Message,
				Severity: SeverityError,
				Code:     CodeRequiredFieldMissing,
			})
		}

	case ruleFormat:
		if strings.TrimSpace(value) == "" {
			return // absence is the required rule's business
		}
		if rule.Pattern.MatchString(value) {
			return
		}

		iss := Issue{
			Field:    rule.Field,
			Value:    value,
			Message:  rule.Message,
			Severity: SeverityError,
			Code:     CodeInvalidFormat,
		}
		if sug := formatSuggestion(rule.Class, value); sug != "" {
			iss.Suggestions = []string{sug}
		}
		res.add(iss)

		if corr := autoCorrect(rule.Class, value); corr != "" && corr != value {
			corrected[rule.Field] = corr
			res.add(Issue{
				Field:       rule.Field,
				Value:       value,
				Message:     fmt.Sprintf("auto-corrected to %q", corr),
				Severity:    SeverityInfo,
				Code:        CodeAutoCorrection,
				Suggestions: []string{corr},
			})
		}

	case ruleUnique:
		if strings.TrimSpace(value) == "" {
			return
		}
		var duplicate bool
		switch rule.Unique {
		case uniqueEmails:
			duplicate = snap.HasEmail(value)
		case uniqueRollNumbers:
			duplicate = snap.HasRollNumber(value)
		}
		if duplicate {
			res.add(Issue{
				Field:    rule.Field,
				Value:    value,
				Message:  rule.Message,
				Severity: SeverityError,
				Code:     CodeDuplicateValue,
			})
		}

	case ruleReference:
		if strings.TrimSpace(value) == "" {
			return
		}
		candidates := snap.referenceSet(rule.Ref)
		for _, candidate := range candidates {
			if strings.EqualFold(strings.TrimSpace(value), candidate) {
				return
			}
		}
		res.add(Issue{
			Field:       rule.Field,
			Value:       value,
			Message:     rule.Message,
			Severity:    SeverityError,
			Code:        CodeInvalidReference,
			Suggestions: svc.suggestReferences(value, candidates),
		})

	case ruleCustom:
		if strings.TrimSpace(value) == "" {
			return
		}
		cr := rule.Check(value, rec)
		if cr.Valid {
			return
		}
		severity := cr.Severity
		if severity == "" {
			severity = SeverityError
		}
		message := cr.Message
		if message == "" {
			message = rule.Message
		}
		res.add(Issue{
			Field:    rule.Field,
			Value:    value,
			Message:  message,
			Severity: severity,
			Code:     cr.Code,
		})
	}
}

// suggestReferences ranks reference candidates by similarity to the rejected
// value, keeps those above the configured threshold and returns at most the
// configured number, best first.
func (svc *Service) suggestReferences(value string, candidates []string) []string {
	type scored struct {
		candidate string
		score     float64
	}

	matches := make([]scored, 0, len(candidates))
	for _, candidate := range candidates {
		if score := Similarity(value, candidate); score > svc.opts.SimilarityThreshold {
			matches = append(matches, scored{candidate, score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })

	if len(matches) > svc.opts.MaxSuggestions {
		matches = matches[:svc.opts.MaxSuggestions]
	}
	suggestions := make([]string, 0, len(matches))
	for _, m := range matches {
		suggestions = append(suggestions, m.candidate)
	}
	return suggestions
}
