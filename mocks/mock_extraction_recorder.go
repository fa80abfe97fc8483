package mocks

import (
	"github.com/stretchr/testify/mock"

	"securexid/internal/port"
)

// MockExtractionRecorder is a mock implementation of port.ExtractionRecorder.
type MockExtractionRecorder struct {
	mock.Mock
}

func (m *MockExtractionRecorder) RecordExtraction(obs port.ExtractionObservation) {
	m.Called(obs)
}
