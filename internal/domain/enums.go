package domain

// DocumentType identifies which identity document template a text was read from.
type DocumentType string

const (
	DocumentTypeNationalID DocumentType = "national_id"
	DocumentTypePassport   DocumentType = "passport"
	DocumentTypeLicense    DocumentType = "license"
	DocumentTypeUnknown    DocumentType = "unknown"
)

// KnownDocumentTypes lists every classifiable type. Unknown is not included.
var KnownDocumentTypes = []DocumentType{
	DocumentTypeNationalID,
	DocumentTypePassport,
	DocumentTypeLicense,
}

// ParseDocumentType maps a tag back to a DocumentType. Unrecognized tags map to Unknown.
func ParseDocumentType(s string) DocumentType {
	for _, t := range KnownDocumentTypes {
		if string(t) == s {
			return t
		}
	}
	return DocumentTypeUnknown
}

// Side represents the physical face of a document that was scanned.
type Side string

const (
	SideFront   Side = "front"
	SideBack    Side = "back"
	SideUnknown Side = "unknown"
)

// Field names a single structured value pulled out of document text.
type Field string

const (
	FieldDocumentNumber Field = "document_number"
	FieldName           Field = "name"
	FieldDateOfBirth    Field = "date_of_birth"
	FieldGender         Field = "gender"
	FieldNationality    Field = "nationality"
	FieldValidUntil     Field = "valid_until"
	FieldAddress        Field = "address"
)

// FieldStatus is the review outcome for one extracted field.
type FieldStatus string

const (
	FieldStatusValid   FieldStatus = "valid"
	FieldStatusInvalid FieldStatus = "invalid"
	FieldStatusMissing FieldStatus = "missing"
)

// ReasonUnknownDocumentType marks results whose text matched no document signature.
const ReasonUnknownDocumentType = "unknown document type"

// ReasonDocumentTypeMismatch marks pair results whose two scans classified as
// different document types.
const ReasonDocumentTypeMismatch = "front and back document types differ"
