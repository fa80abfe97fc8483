// Package extraction wires the classifier, side detector and field extractors
// into the single entry point callers use.
package extraction

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"securexid/internal/classifier"
	"securexid/internal/domain"
	"securexid/internal/extractor"
	"securexid/internal/ocrtext"
	"securexid/internal/patterns"
	"securexid/internal/port"
	"securexid/internal/side"
)

// Service runs one extraction per call and keeps no state between calls, so a
// single Service may be shared across goroutines.
type Service struct {
	classifier *classifier.Classifier
	detector   *side.Detector
	registry   *extractor.Registry
	logger     zerolog.Logger
	recorder   port.ExtractionRecorder
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for per-call debug lines.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithRecorder sets where per-call observations are reported.
func WithRecorder(r port.ExtractionRecorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithClock replaces time.Now when timing calls.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRegistry replaces the built-in extractors.
func WithRegistry(r *extractor.Registry) Option {
	return func(s *Service) {
		if r != nil {
			s.registry = r
		}
	}
}

// NewService builds every component from lib.
func NewService(lib *patterns.Library, opts ...Option) *Service {
	s := &Service{
		classifier: classifier.New(lib),
		detector:   side.NewDetector(lib),
		registry:   extractor.NewDefaultRegistry(lib),
		logger:     zerolog.Nop(),
		recorder:   nopRecorder{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Extract classifies raw, detects its side and extracts the fields of its type.
// It never fails: text matching no signature yields an Unknown result whose
// Reason says so, and fields no pattern matched are left nil.
func (s *Service) Extract(raw string) domain.ExtractionResult {
	start := s.now()
	text := ocrtext.Prepare(raw)

	docType := s.classifier.Classify(text)
	if docType == domain.DocumentTypeUnknown {
		res := domain.ExtractionResult{
			DocumentType: domain.DocumentTypeUnknown,
			Side:         domain.SideUnknown,
			RawText:      raw,
			Reason:       domain.ReasonUnknownDocumentType,
		}
		s.observe(&res, start)
		return res
	}

	res, err := s.run(raw, text, docType)
	if err != nil {
		// Classification only returns types the library knows; a missing
		// extractor means the registry was replaced without it.
		s.logger.Warn().Err(err).Str("document_type", string(docType)).Msg("no extractor registered for classified type")
		res = domain.ExtractionResult{
			DocumentType: docType,
			Side:         domain.SideUnknown,
			RawText:      raw,
			Reason:       err.Error(),
		}
	}
	s.observe(&res, start)
	return res
}

// ExtractAs skips classification and extracts raw as docType. It returns
// domain.ErrUnsupportedDocumentType for Unknown or for a type without an extractor.
func (s *Service) ExtractAs(raw string, docType domain.DocumentType) (domain.ExtractionResult, error) {
	start := s.now()
	res, err := s.run(raw, ocrtext.Prepare(raw), docType)
	if err != nil {
		return domain.ExtractionResult{}, err
	}
	s.observe(&res, start)
	return res, nil
}

// ExtractPair extracts the front and back scans of one document and merges
// them with domain.MergeFields. Sides come from the caller rather than from
// side detection, so the back scan always yields its address. A scan that
// matches no signature is read as the type of the other scan. When the scans
// classify as different types, or neither classifies, the merged Fields stay
// nil and Reason says why; Front and Back still carry each scan's own result.
func (s *Service) ExtractPair(front, back string) domain.PairResult {
	frontText, backText := ocrtext.Prepare(front), ocrtext.Prepare(back)
	frontType := s.classifier.Classify(frontText)
	backType := s.classifier.Classify(backText)

	switch {
	case frontType == domain.DocumentTypeUnknown && backType == domain.DocumentTypeUnknown:
		return domain.PairResult{
			DocumentType: domain.DocumentTypeUnknown,
			Front:        s.Extract(front),
			Back:         s.Extract(back),
			Reason:       domain.ReasonUnknownDocumentType,
		}
	case frontType != domain.DocumentTypeUnknown && backType != domain.DocumentTypeUnknown && frontType != backType:
		s.logger.Debug().
			Str("front_type", string(frontType)).
			Str("back_type", string(backType)).
			Msg("pair document types differ")
		return domain.PairResult{
			DocumentType: domain.DocumentTypeUnknown,
			Front:        s.Extract(front),
			Back:         s.Extract(back),
			Reason:       domain.ReasonDocumentTypeMismatch,
		}
	}

	docType := frontType
	if docType == domain.DocumentTypeUnknown {
		docType = backType
	}
	pair := domain.PairResult{DocumentType: docType}

	var err error
	if pair.Front, err = s.extractSide(front, frontText, docType, domain.SideFront); err != nil {
		pair.Reason = err.Error()
		return pair
	}
	if pair.Back, err = s.extractSide(back, backText, docType, domain.SideBack); err != nil {
		pair.Reason = err.Error()
		return pair
	}
	if pair.Fields, err = domain.MergeFields(pair.Front.Fields, pair.Back.Fields); err != nil {
		pair.Reason = err.Error()
	}
	return pair
}

func (s *Service) extractSide(raw, text string, docType domain.DocumentType, sd domain.Side) (domain.ExtractionResult, error) {
	start := s.now()
	ext := s.registry.Get(docType)
	if ext == nil {
		return domain.ExtractionResult{}, fmt.Errorf("extracting %s as %q: %w", sd, docType, domain.ErrUnsupportedDocumentType)
	}
	res := domain.ExtractionResult{
		DocumentType: docType,
		Side:         sd,
		Fields:       ext.Extract(text, sd),
		RawText:      raw,
	}
	s.observe(&res, start)
	return res, nil
}

func (s *Service) run(raw, text string, docType domain.DocumentType) (domain.ExtractionResult, error) {
	ext := s.registry.Get(docType)
	if ext == nil {
		return domain.ExtractionResult{}, fmt.Errorf("extracting as %q: %w", docType, domain.ErrUnsupportedDocumentType)
	}

	sd, err := s.detector.Detect(text, docType)
	if err != nil {
		return domain.ExtractionResult{}, err
	}

	return domain.ExtractionResult{
		DocumentType: docType,
		Side:         sd,
		Fields:       ext.Extract(text, sd),
		RawText:      raw,
	}, nil
}

func (s *Service) observe(res *domain.ExtractionResult, start time.Time) {
	obs := port.ExtractionObservation{
		DocumentType:    res.DocumentType,
		Side:            res.Side,
		PopulatedFields: res.PopulatedFields(),
		Duration:        s.now().Sub(start),
	}
	s.recorder.RecordExtraction(obs)
	s.logger.Debug().
		Str("document_type", string(obs.DocumentType)).
		Str("side", string(obs.Side)).
		Int("populated_fields", obs.PopulatedFields).
		Dur("duration", obs.Duration).
		Msg("extraction completed")
}

type nopRecorder struct{}

func (nopRecorder) RecordExtraction(port.ExtractionObservation) {}
