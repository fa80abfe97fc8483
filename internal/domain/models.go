package domain

import "fmt"

// ExtractedFields is the per-document-type field record. The concrete type is one of
// *NationalIDFields, *PassportFields or *LicenseFields; callers switch on it.
// A nil field pointer means no pattern matched for that field.
type ExtractedFields interface {
	DocumentType() DocumentType
	// Values returns the populated fields keyed by Field, in no particular order.
	Values() map[Field]string
	extractedFields()
}

// NationalIDFields holds fields read from a national ID (Aadhaar) card.
type NationalIDFields struct {
	IDNumber    *string `json:"id_number,omitempty"`
	Name        *string `json:"name,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	Gender      *string `json:"gender,omitempty"`
	Address     *string `json:"address,omitempty"`
}

// DocumentType returns DocumentTypeNationalID.
func (*NationalIDFields) DocumentType() DocumentType { return DocumentTypeNationalID }
func (*NationalIDFields) extractedFields()           {}

// Values returns the populated fields keyed by Field.
func (f *NationalIDFields) Values() map[Field]string {
	return collect(map[Field]*string{
		FieldDocumentNumber: f.IDNumber,
		FieldName:           f.Name,
		FieldDateOfBirth:    f.DateOfBirth,
		FieldGender:         f.Gender,
		FieldAddress:        f.Address,
	})
}

// PassportFields holds fields read from a passport data page.
type PassportFields struct {
	PassportNumber *string `json:"passport_number,omitempty"`
	Name           *string `json:"name,omitempty"`
	DateOfBirth    *string `json:"date_of_birth,omitempty"`
	Nationality    *string `json:"nationality,omitempty"`
}

// DocumentType returns DocumentTypePassport.
func (*PassportFields) DocumentType() DocumentType { return DocumentTypePassport }
func (*PassportFields) extractedFields()           {}

// Values returns the populated fields keyed by Field.
func (f *PassportFields) Values() map[Field]string {
	return collect(map[Field]*string{
		FieldDocumentNumber: f.PassportNumber,
		FieldName:           f.Name,
		FieldDateOfBirth:    f.DateOfBirth,
		FieldNationality:    f.Nationality,
	})
}

// LicenseFields holds fields read from a driving license.
type LicenseFields struct {
	LicenseNumber *string `json:"license_number,omitempty"`
	Name          *string `json:"name,omitempty"`
	DateOfBirth   *string `json:"date_of_birth,omitempty"`
	ValidUntil    *string `json:"valid_until,omitempty"`
	Address       *string `json:"address,omitempty"`
}

// DocumentType returns DocumentTypeLicense.
func (*LicenseFields) DocumentType() DocumentType { return DocumentTypeLicense }
func (*LicenseFields) extractedFields()           {}

// Values returns the populated fields keyed by Field.
func (f *LicenseFields) Values() map[Field]string {
	return collect(map[Field]*string{
		FieldDocumentNumber: f.LicenseNumber,
		FieldName:           f.Name,
		FieldDateOfBirth:    f.DateOfBirth,
		FieldValidUntil:     f.ValidUntil,
		FieldAddress:        f.Address,
	})
}

func collect(in map[Field]*string) map[Field]string {
	out := make(map[Field]string, len(in))
	for k, v := range in {
		if v != nil {
			out[k] = *v
		}
	}
	return out
}

// ExtractionResult is the single output of one extraction call. RawText is the
// caller's input, unmodified, kept for audit.
type ExtractionResult struct {
	DocumentType DocumentType    `json:"document_type"`
	Side         Side            `json:"side"`
	Fields       ExtractedFields `json:"fields,omitempty"`
	RawText      string          `json:"raw_text"`
	Reason       string          `json:"reason,omitempty"`
}

// PopulatedFields returns how many fields carry a value.
func (r *ExtractionResult) PopulatedFields() int {
	if r.Fields == nil {
		return 0
	}
	return len(r.Fields.Values())
}

// PairResult merges the extractions of the two scanned sides of one document.
// Fields is nil when the sides disagree on the document type or neither side
// was classified; Reason then says why.
type PairResult struct {
	DocumentType DocumentType     `json:"document_type"`
	Fields       ExtractedFields  `json:"fields,omitempty"`
	Front        ExtractionResult `json:"front"`
	Back         ExtractionResult `json:"back"`
	Reason       string           `json:"reason,omitempty"`
}

// PopulatedFields returns how many merged fields carry a value.
func (r *PairResult) PopulatedFields() int {
	if r.Fields == nil {
		return 0
	}
	return len(r.Fields.Values())
}

// MergeFields combines the fields read from the front and back of one document.
// Front values win, except the address, which is taken from the back and only
// falls back to the front. Either side may be nil. It returns
// ErrDocumentTypeMismatch when both sides are set and of different types.
func MergeFields(front, back ExtractedFields) (ExtractedFields, error) {
	switch {
	case front == nil && back == nil:
		return nil, nil
	case front == nil:
		front = emptyFields(back.DocumentType())
	case back == nil:
		back = emptyFields(front.DocumentType())
	}
	if front.DocumentType() != back.DocumentType() {
		return nil, fmt.Errorf("merging %s front with %s back: %w", front.DocumentType(), back.DocumentType(), ErrDocumentTypeMismatch)
	}

	switch f := front.(type) {
	case *NationalIDFields:
		b := back.(*NationalIDFields)
		return &NationalIDFields{
			IDNumber:    firstSet(f.IDNumber, b.IDNumber),
			Name:        firstSet(f.Name, b.Name),
			DateOfBirth: firstSet(f.DateOfBirth, b.DateOfBirth),
			Gender:      firstSet(f.Gender, b.Gender),
			Address:     firstSet(b.Address, f.Address),
		}, nil
	case *PassportFields:
		b := back.(*PassportFields)
		return &PassportFields{
			PassportNumber: firstSet(f.PassportNumber, b.PassportNumber),
			Name:           firstSet(f.Name, b.Name),
			DateOfBirth:    firstSet(f.DateOfBirth, b.DateOfBirth),
			Nationality:    firstSet(f.Nationality, b.Nationality),
		}, nil
	case *LicenseFields:
		b := back.(*LicenseFields)
		return &LicenseFields{
			LicenseNumber: firstSet(f.LicenseNumber, b.LicenseNumber),
			Name:          firstSet(f.Name, b.Name),
			DateOfBirth:   firstSet(f.DateOfBirth, b.DateOfBirth),
			ValidUntil:    firstSet(f.ValidUntil, b.ValidUntil),
			Address:       firstSet(b.Address, f.Address),
		}, nil
	default:
		return nil, fmt.Errorf("merging %s fields: %w", front.DocumentType(), ErrUnsupportedDocumentType)
	}
}

func emptyFields(dt DocumentType) ExtractedFields {
	switch dt {
	case DocumentTypeNationalID:
		return &NationalIDFields{}
	case DocumentTypePassport:
		return &PassportFields{}
	case DocumentTypeLicense:
		return &LicenseFields{}
	default:
		return nil
	}
}

func firstSet(vals ...*string) *string {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}
