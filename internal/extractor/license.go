package extractor

import (
	"securexid/internal/domain"
	"securexid/internal/patterns"
)

// LicenseExtractor reads driving licenses. The address is printed on the front.
//
// When no date sits on a labeled line, the date of birth and validity fall back
// to position: the second date (else the first) is taken as birth, the last as
// validity. Those positional values are best-effort and unverified.
type LicenseExtractor struct {
	base
}

func NewLicenseExtractor(lib *patterns.Library) *LicenseExtractor {
	dt := domain.DocumentTypeLicense
	e := &LicenseExtractor{base: newBase(lib, dt, domain.SideFront)}
	stop := newStopWords(lib.NameStopWords())
	dates := lib.DatePattern()

	e.chains[domain.FieldDocumentNumber] = concat(ruleSteps(lib.FieldRules(dt, domain.FieldDocumentNumber)))
	e.chains[domain.FieldName] = concat(nameRuleSteps(lib.FieldRules(dt, domain.FieldName), stop))
	e.chains[domain.FieldDateOfBirth] = Chain{
		keywordLineDateStep("birth_line", lib.BirthKeywords(), dates),
		positionalDateStep("second_date", dates, secondElseFirst),
	}
	e.chains[domain.FieldValidUntil] = Chain{
		keywordLineDateStep("validity_line", lib.ValidityKeywords(), dates),
		positionalDateStep("last_date", dates, last),
	}
	return e
}

func (e *LicenseExtractor) Extract(text string, side domain.Side) domain.ExtractedFields {
	return &domain.LicenseFields{
		LicenseNumber: e.resolve(domain.FieldDocumentNumber, text),
		Name:          e.resolve(domain.FieldName, text),
		DateOfBirth:   e.resolve(domain.FieldDateOfBirth, text),
		ValidUntil:    e.resolve(domain.FieldValidUntil, text),
		Address:       e.address(text, side),
	}
}
