// Package review grades an extraction result field by field without editing it.
package review

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"securexid/internal/domain"
)

var (
	nationalIDPattern = regexp.MustCompile(`^[2-9]\d{3} \d{4} \d{4}$`)
	passportPattern   = regexp.MustCompile(`^[A-Z][0-9]{7}$`)
	licensePattern    = regexp.MustCompile(`^[A-Z]{2}\d{2}[A-Z0-9]\d{7,}$`)
)

var knownGenders = map[string]bool{"MALE": true, "FEMALE": true, "TRANSGENDER": true}

// FieldStatus is the review outcome of one field.
type FieldStatus struct {
	Status   domain.FieldStatus `json:"status"`
	Messages []string           `json:"messages"`
}

// Report is the review of one extraction result.
type Report struct {
	Fields   map[domain.Field]*FieldStatus `json:"fields"`
	Missing  []domain.Field                `json:"missing"`
	Complete bool                          `json:"complete"`
}

// check returns a message for every problem found in value.
type check func(value string, now time.Time) []string

type fieldRule struct {
	field     domain.Field
	mandatory bool
	checks    []check
}

var rulesByType = map[domain.DocumentType][]fieldRule{
	domain.DocumentTypeNationalID: {
		{domain.FieldDocumentNumber, true, []check{shape(nationalIDPattern, "12 digits in groups of four, not starting with 0 or 1"), aadhaarChecksum}},
		{domain.FieldName, true, []check{hasLetters}},
		{domain.FieldDateOfBirth, true, []check{dateFormat, notInFuture}},
		{domain.FieldGender, false, []check{gender}},
		{domain.FieldAddress, false, nil},
	},
	domain.DocumentTypePassport: {
		{domain.FieldDocumentNumber, true, []check{shape(passportPattern, "one letter and seven digits")}},
		{domain.FieldName, true, []check{hasLetters}},
		{domain.FieldDateOfBirth, true, []check{dateFormat, notInFuture}},
		{domain.FieldNationality, false, []check{hasLetters}},
	},
	domain.DocumentTypeLicense: {
		{domain.FieldDocumentNumber, true, []check{shape(licensePattern, "state code, RTO code and serial")}},
		{domain.FieldName, true, []check{hasLetters}},
		{domain.FieldDateOfBirth, true, []check{dateFormat, notInFuture}},
		{domain.FieldValidUntil, false, []check{dateFormat, notExpired}},
		{domain.FieldAddress, false, nil},
	},
}

// Check reviews every field of result's document type as of now. Unknown
// results have no fields to review and are never complete.
func Check(result *domain.ExtractionResult, now time.Time) Report {
	rep := Report{Fields: make(map[domain.Field]*FieldStatus)}
	if result == nil || result.Fields == nil {
		return rep
	}

	values := result.Fields.Values()
	invalid := false
	for _, fr := range rulesByType[result.DocumentType] {
		v, ok := values[fr.field]
		if !ok {
			rep.Fields[fr.field] = &FieldStatus{Status: domain.FieldStatusMissing, Messages: []string{}}
			if fr.mandatory {
				rep.Missing = append(rep.Missing, fr.field)
			}
			continue
		}

		fs := &FieldStatus{Status: domain.FieldStatusValid, Messages: []string{}}
		for _, c := range fr.checks {
			fs.Messages = append(fs.Messages, c(v, now)...)
		}
		if len(fs.Messages) > 0 {
			fs.Status = domain.FieldStatusInvalid
			invalid = true
		}
		rep.Fields[fr.field] = fs
	}

	rep.Complete = len(rep.Missing) == 0 && !invalid
	return rep
}

func shape(re *regexp.Regexp, expected string) check {
	return func(v string, _ time.Time) []string {
		if re.MatchString(v) {
			return nil
		}
		return []string{fmt.Sprintf("%q does not match the expected format (%s)", v, expected)}
	}
}

func aadhaarChecksum(v string, _ time.Time) []string {
	if verhoeffValid(strings.ReplaceAll(v, " ", "")) {
		return nil
	}
	return []string{"check digit does not match"}
}

func hasLetters(v string, _ time.Time) []string {
	if strings.IndexFunc(v, unicode.IsLetter) >= 0 {
		return nil
	}
	return []string{"contains no letters"}
}

func gender(v string, _ time.Time) []string {
	if knownGenders[v] {
		return nil
	}
	return []string{fmt.Sprintf("unrecognized gender %q", v)}
}

func dateFormat(v string, _ time.Time) []string {
	if _, err := parseDate(v); err != nil {
		return []string{err.Error()}
	}
	return nil
}

func notInFuture(v string, now time.Time) []string {
	t, err := parseDate(v)
	if err != nil {
		return nil
	}
	if t.After(now) {
		return []string{fmt.Sprintf("date %s is in the future", v)}
	}
	return nil
}

func notExpired(v string, now time.Time) []string {
	t, err := parseDate(v)
	if err != nil {
		return nil
	}
	// Documents are valid through the whole of their last day.
	if t.AddDate(0, 0, 1).Before(now) {
		return []string{fmt.Sprintf("document expired on %s", v)}
	}
	return nil
}

// parseDate accepts the day-first layouts printed on Indian documents.
func parseDate(s string) (time.Time, error) {
	formats := []string{
		"02-01-2006",
		"02/01/2006",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, strings.TrimSpace(s)); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date: %s", s)
}
