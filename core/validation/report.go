package validation

import (
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/mahudhurio/core"
)

// Report summarizes one batch validation run, e.g. for registrar emails.
type Report struct {
	ID        uuid.UUID  `json:"id"`
	Kind      EntityKind `json:"kind"`
	Total     int        `json:"total"`
	Valid     int        `json:"valid"`
	Invalid   int        `json:"invalid"`
	Corrected int        `json:"corrected"`

	// IssueCounts counts findings of any severity by code.
	IssueCounts map[string]int `json:"issue_counts,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func NewReport(kind EntityKind, results []Result) Report {
	rep := Report{
		ID:          uuid.New(),
		Kind:        kind,
		Total:       len(results),
		IssueCounts: make(map[string]int),
		CreatedAt:   time.Now().UTC(),
	}
	for i := range results {
		res := &results[i]
		if res.IsValid() {
			rep.Valid++
		} else {
			rep.Invalid++
		}
		if res.CorrectedData != nil {
			rep.Corrected++
		}
		for _, group := range [][]Issue{res.Errors, res.Warnings, res.Suggestions} {
			for _, iss := range group {
				rep.IssueCounts[iss.Code]++
			}
		}
	}
	return rep
}

// Summary renders a plain-text report body.
func (rep Report) Summary() string {
	b := new(strings.Builder)
	fmt.Fprintf(b, "Validation report %s (%s records)\n", rep.ID, rep.Kind)
	fmt.Fprintf(b, "Ran at: %s\n\n", rep.CreatedAt.Format(time.RFC1123))
	fmt.Fprintf(b, "Total:     %d\n", rep.Total)
	fmt.Fprintf(b, "Valid:     %d\n", rep.Valid)
	fmt.Fprintf(b, "Invalid:   %d\n", rep.Invalid)
	fmt.Fprintf(b, "Corrected: %d\n", rep.Corrected)

	if len(rep.IssueCounts) > 0 {
		b.WriteString("\nFindings by code:\n")
		codes := make([]string, 0, len(rep.IssueCounts))
		for code := range rep.IssueCounts {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			fmt.Fprintf(b, "  %-28s %d\n", code, rep.IssueCounts[code])
		}
	}
	return b.String()
}

// EmailMessage wraps the report for delivery through a core.EmailService.
func (rep Report) EmailMessage(to ...mail.Address) *core.EmailMessage {
	return &core.EmailMessage{
		To:          to,
		Subject:     fmt.Sprintf("Validation report: %d/%d %s records valid", rep.Valid, rep.Total, rep.Kind),
		TextContent: rep.Summary(),
	}
}
