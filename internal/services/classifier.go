package services

import (
	"regexp"
	"strings"

	"parcel-intake-service/internal/domain"
)

var (
	// Characters outside this set are stripped before any pattern runs.
	disallowedChars = regexp.MustCompile(`[^a-zA-Z0-9\s,+\-.]`)

	awbPattern  = regexp.MustCompile(`\b\d{10,15}\b`)
	phoneHint   = regexp.MustCompile(`(\+?91|0)?\s?\d{10}\b`)
	phoneDigits = regexp.MustCompile(`\d{10}\b`)
	rollPattern = regexp.MustCompile(`(?i)\b\d{2}[A-Z0-9]{8}\b`)
	namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z\s.]{2,40}$`)
)

// Courier names recognized by substring membership, lower-cased.
var courierKeywords = []string{
	"flipkart", "ekart", "delhivery", "amazon",
	"bluedart", "xpressbees", "ecom", "shadowfax",
}

// One classification rule: the field it populates and the heuristic that
// extracts a value from a line.
type classifyRule struct {
	field string
	slot  func(*domain.FieldMapping) *string
	match func(line string) (string, bool)
}

// Rules are tested per line in this fixed priority order. The first rule
// whose field is still unset and whose pattern matches claims the line; the
// remaining rules never see it. A 10-digit number that could be either a
// tracking fragment or a phone number therefore resolves to whichever
// pattern runs first — a known precision limit of the heuristic.
var classifyRules = []classifyRule{
	{"AWB No", func(f *domain.FieldMapping) *string { return &f.AWB }, matchAWB},
	{"Phone No", func(f *domain.FieldMapping) *string { return &f.Phone }, matchPhone},
	{"Roll No", func(f *domain.FieldMapping) *string { return &f.RollNo }, matchRoll},
	{"Company", func(f *domain.FieldMapping) *string { return &f.Company }, matchCompany},
	{"Name", func(f *domain.FieldMapping) *string { return &f.Name }, matchName},
}

// Classify turns ordered OCR text lines into a typed field mapping.
//
// Pure and total: no input errors, no I/O. Fields are first-match-wins
// globally — a value set from an earlier line is never overwritten by a
// later one. Fields never matched come back as empty strings.
func Classify(lines []string) domain.FieldMapping {
	var fields domain.FieldMapping

	for _, raw := range lines {
		if len(strings.TrimSpace(raw)) <= 2 {
			continue
		}
		line := strings.TrimSpace(disallowedChars.ReplaceAllString(raw, ""))
		if line == "" {
			continue
		}

		for _, rule := range classifyRules {
			slot := rule.slot(&fields)
			if *slot != "" {
				continue
			}
			if v, ok := rule.match(line); ok {
				*slot = v
				// A line claims only the first rule it satisfies.
				break
			}
		}
	}

	return fields
}

func matchAWB(line string) (string, bool) {
	if m := awbPattern.FindString(line); m != "" {
		return m, true
	}
	return "", false
}

func matchPhone(line string) (string, bool) {
	if !phoneHint.MatchString(line) {
		return "", false
	}
	if m := phoneDigits.FindString(line); m != "" {
		return m, true
	}
	return "", false
}

func matchRoll(line string) (string, bool) {
	if m := rollPattern.FindString(line); m != "" {
		return m, true
	}
	return "", false
}

func matchCompany(line string) (string, bool) {
	lower := strings.ToLower(line)
	for _, kw := range courierKeywords {
		if strings.Contains(lower, kw) {
			return line, true
		}
	}
	return "", false
}

func matchName(line string) (string, bool) {
	if namePattern.MatchString(line) {
		return strings.TrimSpace(line), true
	}
	return "", false
}
