package extractor

import (
	"securexid/internal/domain"
	"securexid/internal/patterns"
)

// PassportExtractor reads the passport data page. Passports carry no address field.
type PassportExtractor struct {
	base
}

func NewPassportExtractor(lib *patterns.Library) *PassportExtractor {
	dt := domain.DocumentTypePassport
	e := &PassportExtractor{base: newBase(lib, dt, "")}
	stop := newStopWords(lib.NameStopWords())

	e.chains[domain.FieldDocumentNumber] = concat(ruleSteps(lib.FieldRules(dt, domain.FieldDocumentNumber)))
	e.chains[domain.FieldName] = concat(nameRuleSteps(lib.FieldRules(dt, domain.FieldName), stop))
	e.chains[domain.FieldDateOfBirth] = concat(
		[]Step{keywordLineDateStep("birth_line", lib.BirthKeywords(), lib.DatePattern())},
		ruleSteps(lib.FieldRules(dt, domain.FieldDateOfBirth)),
	)
	e.chains[domain.FieldNationality] = concat(ruleSteps(lib.FieldRules(dt, domain.FieldNationality)))
	return e
}

func (e *PassportExtractor) Extract(text string, _ domain.Side) domain.ExtractedFields {
	return &domain.PassportFields{
		PassportNumber: e.resolve(domain.FieldDocumentNumber, text),
		Name:           e.resolve(domain.FieldName, text),
		DateOfBirth:    e.resolve(domain.FieldDateOfBirth, text),
		Nationality:    e.resolve(domain.FieldNationality, text),
	}
}
