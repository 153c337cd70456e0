package validation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/trezcool/mahudhurio/core"
)

// fieldClass drives the format suggestion and auto-correction heuristics.
// Rules whose field carries no class produce neither.
type fieldClass int

const (
	classNone fieldClass = iota
	className
	classIdentifier
	classEmail
	classDepartment
	classPhone
)

// defaultEmailDomain is appended when an email has no domain at all.
const defaultEmailDomain = "university.edu"

var (
	nonAlnumRegex = regexp.MustCompile(`[^a-zA-Z0-9]`)
	nonDigitRegex = regexp.MustCompile(`[^0-9]`)
)

// formatSuggestion proposes a user-facing replacement for a value that failed
// its format check. It returns "" when no heuristic applies. Suggestions and
// auto-corrections are independent: a mismatch can yield either, both or
// neither.
func formatSuggestion(class fieldClass, value string) string {
	switch class {
	case classEmail:
		v := core.CleanString(value, true)
		if v == "" {
			return ""
		}
		if !strings.Contains(v, "@") {
			return v + "@" + defaultEmailDomain
		}
		if domain := v[strings.Index(v, "@")+1:]; !strings.Contains(domain, ".") {
			return v + ".com"
		}
	case classIdentifier:
		if stripped := nonAlnumRegex.ReplaceAllString(value, ""); stripped != "" {
			return strings.ToUpper(stripped)
		}
	case classPhone:
		if digits := nonDigitRegex.ReplaceAllString(value, ""); len(digits) >= 10 {
			return "+" + digits
		}
	}
	return ""
}

// autoCorrect computes a deterministic replacement the engine is confident
// enough to pre-fill. It returns "" when the field class has no correction
// heuristic or the heuristic produces nothing usable.
func autoCorrect(class fieldClass, value string) string {
	switch class {
	case className:
		return titleCase(value)
	case classIdentifier:
		return strings.ToUpper(nonAlnumRegex.ReplaceAllString(value, ""))
	case classEmail:
		return core.CleanString(value, true)
	case classDepartment:
		return capitalize(value)
	case classPhone:
		if digits := nonDigitRegex.ReplaceAllString(value, ""); len(digits) >= 10 {
			return "+" + digits
		}
	}
	return ""
}

// titleCase upper-cases the first letter of each word and lowers the rest,
// collapsing runs of whitespace: "john  smith" -> "John Smith".
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// capitalize upper-cases the first letter only: "computer science" -> "Computer science".
func capitalize(s string) string {
	s = core.CleanString(s, true)
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
