package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"securexid/internal/domain"
)

var now = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func ptr(s string) *string { return &s }

func TestVerhoeffValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"2363", true},
		{"234567890124", true},
		{"498765432102", true},
		{"234567890123", false},
		{"123456789012", false},
		{"", false},
		{"2345a6789012", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, verhoeffValid(tt.in))
		})
	}
}

func TestCheck_NationalIDComplete(t *testing.T) {
	res := &domain.ExtractionResult{
		DocumentType: domain.DocumentTypeNationalID,
		Fields: &domain.NationalIDFields{
			IDNumber:    ptr("2345 6789 0124"),
			Name:        ptr("RAHUL KUMAR"),
			DateOfBirth: ptr("01-01-1990"),
			Gender:      ptr("MALE"),
		},
	}

	rep := Check(res, now)

	assert.True(t, rep.Complete)
	assert.Empty(t, rep.Missing)
	assert.Equal(t, domain.FieldStatusValid, rep.Fields[domain.FieldDocumentNumber].Status)
	assert.Equal(t, domain.FieldStatusMissing, rep.Fields[domain.FieldAddress].Status)
	assert.Len(t, rep.Fields, 5)
}

func TestCheck_NationalIDProblems(t *testing.T) {
	res := &domain.ExtractionResult{
		DocumentType: domain.DocumentTypeNationalID,
		Fields: &domain.NationalIDFields{
			IDNumber:    ptr("1234 5678 9012"),
			DateOfBirth: ptr("01-01-2030"),
			Gender:      ptr("M"),
		},
	}

	rep := Check(res, now)

	assert.False(t, rep.Complete)
	assert.Equal(t, []domain.Field{domain.FieldName}, rep.Missing)

	id := rep.Fields[domain.FieldDocumentNumber]
	assert.Equal(t, domain.FieldStatusInvalid, id.Status)
	assert.Len(t, id.Messages, 2)

	dob := rep.Fields[domain.FieldDateOfBirth]
	assert.Equal(t, domain.FieldStatusInvalid, dob.Status)
	assert.Equal(t, []string{"date 01-01-2030 is in the future"}, dob.Messages)

	assert.Equal(t, domain.FieldStatusInvalid, rep.Fields[domain.FieldGender].Status)
}

func TestCheck_LicenseValidity(t *testing.T) {
	tests := []struct {
		name       string
		validUntil string
		status     domain.FieldStatus
		messages   []string
	}{
		{"in force", "09-02-2035", domain.FieldStatusValid, []string{}},
		{"last day", "15/06/2026", domain.FieldStatusValid, []string{}},
		{"expired", "09-02-2020", domain.FieldStatusInvalid, []string{"document expired on 09-02-2020"}},
		{"unparseable", "31-02-20", domain.FieldStatusInvalid, []string{"unparseable date: 31-02-20"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := &domain.ExtractionResult{
				DocumentType: domain.DocumentTypeLicense,
				Fields: &domain.LicenseFields{
					LicenseNumber: ptr("TN01Z20190001234"),
					Name:          ptr("N.KEERTHIVELAN"),
					DateOfBirth:   ptr("01-01-1990"),
					ValidUntil:    ptr(tt.validUntil),
				},
			}

			rep := Check(res, now)

			fs := rep.Fields[domain.FieldValidUntil]
			require.NotNil(t, fs)
			assert.Equal(t, tt.status, fs.Status)
			assert.Equal(t, tt.messages, fs.Messages)
			assert.Equal(t, tt.status == domain.FieldStatusValid, rep.Complete)
		})
	}
}

func TestCheck_PassportShape(t *testing.T) {
	res := &domain.ExtractionResult{
		DocumentType: domain.DocumentTypePassport,
		Fields: &domain.PassportFields{
			PassportNumber: ptr("J12345"),
			Name:           ptr("PRIYA"),
			DateOfBirth:    ptr("15/08/1985"),
		},
	}

	rep := Check(res, now)

	assert.Equal(t, domain.FieldStatusInvalid, rep.Fields[domain.FieldDocumentNumber].Status)
	assert.Equal(t, domain.FieldStatusMissing, rep.Fields[domain.FieldNationality].Status)
	assert.Empty(t, rep.Missing)
	assert.False(t, rep.Complete)
}

func TestCheck_DoesNotEditFields(t *testing.T) {
	fields := &domain.NationalIDFields{IDNumber: ptr("1234 5678 9012")}
	res := &domain.ExtractionResult{DocumentType: domain.DocumentTypeNationalID, Fields: fields}

	Check(res, now)

	assert.Equal(t, &domain.NationalIDFields{IDNumber: ptr("1234 5678 9012")}, res.Fields)
}

func TestCheck_Unknown(t *testing.T) {
	rep := Check(&domain.ExtractionResult{
		DocumentType: domain.DocumentTypeUnknown,
		Side:         domain.SideUnknown,
		Reason:       domain.ReasonUnknownDocumentType,
	}, now)

	assert.Empty(t, rep.Fields)
	assert.Empty(t, rep.Missing)
	assert.False(t, rep.Complete)

	assert.False(t, Check(nil, now).Complete)
}
