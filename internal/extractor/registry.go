package extractor

import (
	"securexid/internal/domain"
	"securexid/internal/patterns"
	"securexid/internal/port"
)

// Registry maps document types to Extractor implementations.
type Registry struct {
	extractors map[domain.DocumentType]port.Extractor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{extractors: make(map[domain.DocumentType]port.Extractor)}
}

// NewDefaultRegistry registers the built-in extractor of every document type in lib.
func NewDefaultRegistry(lib *patterns.Library) *Registry {
	r := NewRegistry()
	r.Register(NewNationalIDExtractor(lib))
	r.Register(NewPassportExtractor(lib))
	r.Register(NewLicenseExtractor(lib))
	return r
}

// Register adds an extractor, replacing any previous one for the same type.
func (r *Registry) Register(e port.Extractor) {
	r.extractors[e.DocumentType()] = e
}

// Get returns the extractor for a document type, or nil if not found.
func (r *Registry) Get(docType domain.DocumentType) port.Extractor {
	return r.extractors[docType]
}

// All returns the registered extractors in classification order.
func (r *Registry) All() []port.Extractor {
	out := make([]port.Extractor, 0, len(r.extractors))
	for _, dt := range patterns.Precedence() {
		if e, ok := r.extractors[dt]; ok {
			out = append(out, e)
		}
	}
	return out
}
