package extractor

import (
	"securexid/internal/domain"
	"securexid/internal/patterns"
)

// NationalIDExtractor reads Aadhaar cards. The address is printed on the back.
type NationalIDExtractor struct {
	base
}

func NewNationalIDExtractor(lib *patterns.Library) *NationalIDExtractor {
	dt := domain.DocumentTypeNationalID
	e := &NationalIDExtractor{base: newBase(lib, dt, domain.SideBack)}
	stop := newStopWords(lib.NameStopWords())

	e.chains[domain.FieldDocumentNumber] = concat(ruleSteps(lib.FieldRules(dt, domain.FieldDocumentNumber)))
	e.chains[domain.FieldName] = concat(
		[]Step{aboveAnchorStep(lib.NameAnchors(), stop)},
		nameRuleSteps(lib.FieldRules(dt, domain.FieldName), stop),
	)
	e.chains[domain.FieldDateOfBirth] = concat(
		[]Step{keywordLineDateStep("birth_line", lib.BirthKeywords(), lib.DatePattern())},
		ruleSteps(lib.FieldRules(dt, domain.FieldDateOfBirth)),
	)
	e.chains[domain.FieldGender] = concat(ruleSteps(lib.FieldRules(dt, domain.FieldGender)))
	return e
}

func (e *NationalIDExtractor) Extract(text string, side domain.Side) domain.ExtractedFields {
	return &domain.NationalIDFields{
		IDNumber:    e.resolve(domain.FieldDocumentNumber, text),
		Name:        e.resolve(domain.FieldName, text),
		DateOfBirth: e.resolve(domain.FieldDateOfBirth, text),
		Gender:      e.resolve(domain.FieldGender, text),
		Address:     e.address(text, side),
	}
}
