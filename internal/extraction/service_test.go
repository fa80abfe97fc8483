package extraction_test

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"securexid/internal/domain"
	"securexid/internal/extraction"
	"securexid/internal/extractor"
	"securexid/internal/patterns"
	"securexid/internal/port"
	"securexid/mocks"
)

const (
	nationalIDFront = "GOVERNMENT OF INDIA\nRAHUL KUMAR\nDOB: 01-01-1990\nMALE\n1234 5678 9012"
	nationalIDBack  = "Unique Identification Authority of India\nAddress: S/O: Ramesh Kumar, 12/4 MG Road, Chennai help@uidai.gov.in\n1234 5678 9012"
)

func newService(t *testing.T, opts ...extraction.Option) *extraction.Service {
	t.Helper()
	lib, err := patterns.Default()
	require.NoError(t, err)
	return extraction.NewService(lib, opts...)
}

func ptr(s string) *string { return &s }

func TestService_Extract_NationalIDFront(t *testing.T) {
	svc := newService(t)

	res := svc.Extract(nationalIDFront)

	assert.Equal(t, domain.DocumentTypeNationalID, res.DocumentType)
	assert.Equal(t, domain.SideFront, res.Side)
	assert.Equal(t, nationalIDFront, res.RawText)
	assert.Empty(t, res.Reason)
	assert.Equal(t, &domain.NationalIDFields{
		IDNumber:    ptr("1234 5678 9012"),
		Name:        ptr("RAHUL KUMAR"),
		DateOfBirth: ptr("01-01-1990"),
		Gender:      ptr("MALE"),
	}, res.Fields)
}

func TestService_Extract_NationalIDBack(t *testing.T) {
	svc := newService(t)

	res := svc.Extract(nationalIDBack)

	assert.Equal(t, domain.DocumentTypeNationalID, res.DocumentType)
	assert.Equal(t, domain.SideBack, res.Side)
	fields, ok := res.Fields.(*domain.NationalIDFields)
	require.True(t, ok)
	require.NotNil(t, fields.Address)
	assert.Equal(t, "Ramesh Kumar, 12/4 MG Road, Chennai", *fields.Address)
}

func TestService_Extract_LicenseWinsOverGroupedNumber(t *testing.T) {
	svc := newService(t)

	res := svc.Extract("DRIVING LICENCE\nRef 1234 5678 9012\nName: N.KEERTHIVELAN")

	assert.Equal(t, domain.DocumentTypeLicense, res.DocumentType)
	assert.IsType(t, &domain.LicenseFields{}, res.Fields)
}

func TestService_Extract_LicenseWithoutDates(t *testing.T) {
	svc := newService(t)

	var res domain.ExtractionResult
	require.NotPanics(t, func() {
		res = svc.Extract("DRIVING LICENCE\nTN0120190001234\nName: N.KEERTHIVELAN")
	})

	fields := res.Fields.(*domain.LicenseFields)
	assert.Nil(t, fields.DateOfBirth)
	assert.Nil(t, fields.ValidUntil)
	assert.Equal(t, ptr("TN0120190001234"), fields.LicenseNumber)
}

func TestService_Extract_Unknown(t *testing.T) {
	svc := newService(t)

	for _, raw := range []string{"", "   \n\t", "hello world\nnothing to see"} {
		res := svc.Extract(raw)
		assert.Equal(t, domain.DocumentTypeUnknown, res.DocumentType)
		assert.Equal(t, domain.SideUnknown, res.Side)
		assert.Nil(t, res.Fields)
		assert.Equal(t, domain.ReasonUnknownDocumentType, res.Reason)
		assert.Equal(t, raw, res.RawText)
		assert.Zero(t, res.PopulatedFields())
	}
}

func TestService_Extract_KeepsRawTextVerbatim(t *testing.T) {
	svc := newService(t)
	raw := "GOVERNMENT OF INDIA\r\nRAHUL KUMAR\r\nDOB:\t01-01-1990\r\n1234 5678 9012"

	res := svc.Extract(raw)

	assert.Equal(t, raw, res.RawText)
	fields := res.Fields.(*domain.NationalIDFields)
	assert.Equal(t, ptr("RAHUL KUMAR"), fields.Name)
	assert.Equal(t, ptr("01-01-1990"), fields.DateOfBirth)
}

func TestService_ExtractAs(t *testing.T) {
	svc := newService(t)

	res, err := svc.ExtractAs("Passport No: J1234567\nGiven Name: PRIYA", domain.DocumentTypePassport)
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentTypePassport, res.DocumentType)
	fields := res.Fields.(*domain.PassportFields)
	assert.Equal(t, ptr("J1234567"), fields.PassportNumber)
	assert.Equal(t, ptr("PRIYA"), fields.Name)
}

func TestService_ExtractAs_Unsupported(t *testing.T) {
	svc := newService(t)

	_, err := svc.ExtractAs(nationalIDFront, domain.DocumentTypeUnknown)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedDocumentType))

	_, err = svc.ExtractAs(nationalIDFront, domain.DocumentType("visa"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedDocumentType)
}

func TestService_ExtractPair(t *testing.T) {
	svc := newService(t)

	pair := svc.ExtractPair(nationalIDFront, nationalIDBack)

	assert.Empty(t, pair.Reason)
	assert.Equal(t, domain.DocumentTypeNationalID, pair.DocumentType)
	assert.Equal(t, domain.SideFront, pair.Front.Side)
	assert.Equal(t, domain.SideBack, pair.Back.Side)
	assert.Equal(t, nationalIDBack, pair.Back.RawText)
	assert.Equal(t, &domain.NationalIDFields{
		IDNumber:    ptr("1234 5678 9012"),
		Name:        ptr("RAHUL KUMAR"),
		DateOfBirth: ptr("01-01-1990"),
		Gender:      ptr("MALE"),
		Address:     ptr("Ramesh Kumar, 12/4 MG Road, Chennai"),
	}, pair.Fields)
	assert.Equal(t, 5, pair.PopulatedFields())
}

func TestService_ExtractPair_BackReadAsBackSide(t *testing.T) {
	svc := newService(t)
	back := "Aadhaar\nAddress: S/O: Ramesh Kumar, 12/4 MG Road, Chennai help@uidai.gov.in"

	pair := svc.ExtractPair(nationalIDFront, back)

	require.Empty(t, pair.Reason)
	assert.Equal(t, domain.SideBack, pair.Back.Side)
	fields := pair.Fields.(*domain.NationalIDFields)
	assert.Equal(t, ptr("Ramesh Kumar, 12/4 MG Road, Chennai"), fields.Address)
	assert.Equal(t, ptr("RAHUL KUMAR"), fields.Name)
}

func TestService_ExtractPair_BackWithoutSignature(t *testing.T) {
	svc := newService(t)
	back := "Address: S/O: Ramesh Kumar, 12/4 MG Road, Chennai help@uidai.gov.in"

	pair := svc.ExtractPair(nationalIDFront, back)

	require.Empty(t, pair.Reason)
	assert.Equal(t, domain.DocumentTypeNationalID, pair.DocumentType)
	assert.Equal(t, domain.DocumentTypeNationalID, pair.Back.DocumentType)
	fields := pair.Fields.(*domain.NationalIDFields)
	assert.Equal(t, ptr("1234 5678 9012"), fields.IDNumber)
	assert.Equal(t, ptr("Ramesh Kumar, 12/4 MG Road, Chennai"), fields.Address)
}

func TestService_ExtractPair_TypeMismatch(t *testing.T) {
	svc := newService(t)
	license := "DRIVING LICENCE\nTN0120190001234\nName: N.KEERTHIVELAN"

	pair := svc.ExtractPair(license, nationalIDBack)

	assert.Equal(t, domain.ReasonDocumentTypeMismatch, pair.Reason)
	assert.Equal(t, domain.DocumentTypeUnknown, pair.DocumentType)
	assert.Nil(t, pair.Fields)
	assert.Zero(t, pair.PopulatedFields())
	assert.Equal(t, domain.DocumentTypeLicense, pair.Front.DocumentType)
	assert.Equal(t, domain.DocumentTypeNationalID, pair.Back.DocumentType)
	assert.NotNil(t, pair.Front.Fields)
	assert.NotNil(t, pair.Back.Fields)
}

func TestService_ExtractPair_NeitherClassified(t *testing.T) {
	svc := newService(t)

	pair := svc.ExtractPair("hello", "world")

	assert.Equal(t, domain.ReasonUnknownDocumentType, pair.Reason)
	assert.Equal(t, domain.DocumentTypeUnknown, pair.DocumentType)
	assert.Nil(t, pair.Fields)
	assert.Equal(t, domain.ReasonUnknownDocumentType, pair.Front.Reason)
	assert.Equal(t, domain.ReasonUnknownDocumentType, pair.Back.Reason)
}

func TestService_ExtractPair_RecordsBothSides(t *testing.T) {
	recorder := new(mocks.MockExtractionRecorder)
	svc := newService(t, extraction.WithRecorder(recorder))

	recorder.On("RecordExtraction", mock.MatchedBy(func(obs port.ExtractionObservation) bool {
		return obs.DocumentType == domain.DocumentTypeNationalID && obs.Side == domain.SideFront
	})).Once()
	recorder.On("RecordExtraction", mock.MatchedBy(func(obs port.ExtractionObservation) bool {
		return obs.DocumentType == domain.DocumentTypeNationalID && obs.Side == domain.SideBack
	})).Once()

	svc.ExtractPair(nationalIDFront, nationalIDBack)

	recorder.AssertExpectations(t)
}

func TestService_Extract_RecordsObservation(t *testing.T) {
	recorder := new(mocks.MockExtractionRecorder)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ticks := 0
	clock := func() time.Time {
		ticks++
		return base.Add(time.Duration(ticks) * 5 * time.Millisecond)
	}
	svc := newService(t, extraction.WithRecorder(recorder), extraction.WithClock(clock))

	recorder.On("RecordExtraction", port.ExtractionObservation{
		DocumentType:    domain.DocumentTypeNationalID,
		Side:            domain.SideFront,
		PopulatedFields: 4,
		Duration:        5 * time.Millisecond,
	}).Once()

	svc.Extract(nationalIDFront)

	recorder.AssertExpectations(t)
}

func TestService_Extract_RecordsUnknown(t *testing.T) {
	recorder := new(mocks.MockExtractionRecorder)
	svc := newService(t, extraction.WithRecorder(recorder))

	recorder.On("RecordExtraction", mock.MatchedBy(func(obs port.ExtractionObservation) bool {
		return obs.DocumentType == domain.DocumentTypeUnknown && obs.PopulatedFields == 0
	})).Once()

	svc.Extract("nothing recognizable")

	recorder.AssertExpectations(t)
}

func TestService_Extract_LogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	svc := newService(t, extraction.WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))

	svc.Extract(nationalIDFront)

	assert.Contains(t, buf.String(), `"document_type":"national_id"`)
	assert.Contains(t, buf.String(), `"populated_fields":4`)
}

func TestService_Extract_CustomRegistry(t *testing.T) {
	ext := new(mocks.MockExtractor)
	ext.On("DocumentType").Return(domain.DocumentTypeNationalID)
	ext.On("Extract", mock.Anything, domain.SideFront).Return(&domain.NationalIDFields{Name: ptr("stub")})

	reg := extractor.NewRegistry()
	reg.Register(ext)
	svc := newService(t, extraction.WithRegistry(reg))

	res := svc.Extract(nationalIDFront)
	assert.Equal(t, &domain.NationalIDFields{Name: ptr("stub")}, res.Fields)

	passport := svc.Extract("PASSPORT\nJ1234567")
	assert.Equal(t, domain.DocumentTypePassport, passport.DocumentType)
	assert.Nil(t, passport.Fields)
	assert.Contains(t, passport.Reason, domain.ErrUnsupportedDocumentType.Error())

	ext.AssertExpectations(t)
}

func TestService_Extract_Concurrent(t *testing.T) {
	svc := newService(t)
	inputs := []string{nationalIDFront, nationalIDBack, "PASSPORT\nJ1234567", "nothing"}

	want := make([]domain.ExtractionResult, len(inputs))
	for i, in := range inputs {
		want[i] = svc.Extract(in)
	}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, in := range inputs {
				assert.Equal(t, want[i], svc.Extract(in))
			}
		}()
	}
	wg.Wait()
}
