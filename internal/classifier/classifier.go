// Package classifier decides which document template a text was read from.
package classifier

import (
	"strings"

	"securexid/internal/domain"
	"securexid/internal/patterns"
)

type entry struct {
	docType   domain.DocumentType
	signature patterns.Signature
}

// Classifier evaluates document signatures in the fixed precedence order.
type Classifier struct {
	entries []entry
}

// New snapshots the signatures of lib in precedence order.
func New(lib *patterns.Library) *Classifier {
	c := &Classifier{}
	for _, dt := range patterns.Precedence() {
		sig, ok := lib.Signature(dt)
		if !ok {
			continue
		}
		c.entries = append(c.entries, entry{docType: dt, signature: sig})
	}
	return c
}

// Classify returns the first document type whose signature the text satisfies,
// or DocumentTypeUnknown. It never fails; empty input is Unknown.
func (c *Classifier) Classify(text string) domain.DocumentType {
	if strings.TrimSpace(text) == "" {
		return domain.DocumentTypeUnknown
	}
	lower := strings.ToLower(text)
	for i := range c.entries {
		if matches(&c.entries[i].signature, text, lower) {
			return c.entries[i].docType
		}
	}
	return domain.DocumentTypeUnknown
}

func matches(sig *patterns.Signature, text, lower string) bool {
	for _, kw := range sig.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, re := range sig.Patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
