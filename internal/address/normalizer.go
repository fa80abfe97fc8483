// Package address locates the address region of a document text and rewrites
// it into a single comma-separated line.
package address

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"securexid/internal/domain"
	"securexid/internal/patterns"
)

var (
	reLineBreak  = regexp.MustCompile(`\r\n|\r|\n`)
	reEmptyComma = regexp.MustCompile(`,\s*,`)
	reWhitespace = regexp.MustCompile(`\s+`)
	reTrailComma = regexp.MustCompile(`,\s*$`)
)

// Fragments shorter than this many runes are OCR debris.
const minFragmentLen = 2

// Normalizer holds the region rules and cleanup tables from a pattern library.
type Normalizer struct {
	regions     map[domain.DocumentType][]*patterns.Rule
	labels      *regexp.Regexp
	boilerplate *regexp.Regexp
}

// NewNormalizer snapshots the address tables of lib.
func NewNormalizer(lib *patterns.Library) *Normalizer {
	n := &Normalizer{
		regions:     make(map[domain.DocumentType][]*patterns.Rule),
		labels:      lib.AddressLabels(),
		boilerplate: lib.AddressBoilerplate(),
	}
	for _, dt := range lib.DocumentTypes() {
		if rules := lib.AddressRules(dt); len(rules) > 0 {
			n.regions[dt] = rules
		}
	}
	return n
}

// Normalize returns the cleaned address from the first region rule of docType
// that matches. It reports false when no rule matched or cleanup dropped every
// fragment. Types without region rules never yield an address.
//
// Normalize is not idempotent on its own output: feeding a result back through
// the region rules can trim it again (the door number block starts at the first
// "12/4" style token and drops whatever precedes it) or find no region at all.
// Only Clean is idempotent.
func (n *Normalizer) Normalize(text string, docType domain.DocumentType) (string, bool) {
	for _, rule := range n.regions[docType] {
		region, ok := rule.Find(text)
		if !ok {
			continue
		}
		if addr, ok := n.Clean(region); ok {
			return addr, true
		}
	}
	return "", false
}

// Clean strips relationship and label prefixes, turns line breaks into commas,
// collapses repeated separators, drops boilerplate and one-character fragments,
// and rejoins the rest with ", ". Clean is idempotent.
func (n *Normalizer) Clean(fragment string) (string, bool) {
	s := n.labels.ReplaceAllString(fragment, "")
	s = reLineBreak.ReplaceAllString(s, ", ")
	for reEmptyComma.MatchString(s) {
		s = reEmptyComma.ReplaceAllString(s, ",")
	}
	s = reWhitespace.ReplaceAllString(s, " ")
	s = strings.TrimSpace(reTrailComma.ReplaceAllString(s, ""))

	parts := strings.Split(s, ",")
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if utf8.RuneCountInString(p) < minFragmentLen || n.boilerplate.MatchString(p) {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return "", false
	}
	return strings.Join(kept, ", "), true
}
