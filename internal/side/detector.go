// Package side determines which face of a document a text was read from.
package side

import (
	"fmt"
	"strings"

	"securexid/internal/domain"
	"securexid/internal/patterns"
)

// Detector holds the per-type keyword lists. Adding a document type only
// requires new lists in the pattern library.
type Detector struct {
	keywords map[domain.DocumentType]patterns.SideKeywords
}

// NewDetector snapshots the side vocabularies of lib.
func NewDetector(lib *patterns.Library) *Detector {
	d := &Detector{keywords: make(map[domain.DocumentType]patterns.SideKeywords)}
	for _, dt := range lib.DocumentTypes() {
		if kw, ok := lib.SideKeywords(dt); ok {
			d.keywords[dt] = kw
		}
	}
	return d
}

// Detect checks every front keyword in list order, then every back keyword.
// The first case-insensitive substring hit decides; no hit yields SideUnknown.
// Types without keyword lists are a caller error.
func (d *Detector) Detect(text string, docType domain.DocumentType) (domain.Side, error) {
	kw, ok := d.keywords[docType]
	if !ok {
		return domain.SideUnknown, fmt.Errorf("detecting side of %q: %w", docType, domain.ErrUnsupportedDocumentType)
	}
	lower := strings.ToLower(text)
	if containsAny(lower, kw.Front) {
		return domain.SideFront, nil
	}
	if containsAny(lower, kw.Back) {
		return domain.SideBack, nil
	}
	return domain.SideUnknown, nil
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
