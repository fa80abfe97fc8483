package port

import (
	"time"

	"securexid/internal/domain"
)

// Extractor pulls the fields of one document type out of prepared OCR text.
type Extractor interface {
	DocumentType() domain.DocumentType
	Extract(text string, side domain.Side) domain.ExtractedFields
}

// ExtractionObservation describes one finished extraction call.
type ExtractionObservation struct {
	DocumentType    domain.DocumentType
	Side            domain.Side
	PopulatedFields int
	Duration        time.Duration
}

// ExtractionRecorder receives an observation per extraction call.
type ExtractionRecorder interface {
	RecordExtraction(obs ExtractionObservation)
}
