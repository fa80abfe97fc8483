package mocks

import (
	"github.com/stretchr/testify/mock"

	"securexid/internal/domain"
)

// MockExtractor is a mock implementation of port.Extractor.
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) DocumentType() domain.DocumentType {
	args := m.Called()
	return args.Get(0).(domain.DocumentType)
}

func (m *MockExtractor) Extract(text string, side domain.Side) domain.ExtractedFields {
	args := m.Called(text, side)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(domain.ExtractedFields)
}
