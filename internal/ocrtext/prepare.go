// Package ocrtext prepares recognized text for pattern matching.
package ocrtext

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	reCRLF = regexp.MustCompile(`\r\n?`)
	reTabs = regexp.MustCompile(`\t+`)
)

// Prepare normalizes line endings and tabs and composes Unicode to NFC so that
// Devanagari keywords compare equal whatever form the OCR engine emitted.
// Invalid UTF-8 byte sequences are dropped first. Line structure is kept.
// Prepare is idempotent.
func Prepare(s string) string {
	if s == "" {
		return s
	}
	s = strings.ToValidUTF8(s, "")
	s = norm.NFC.String(s)
	s = reCRLF.ReplaceAllString(s, "\n")
	return reTabs.ReplaceAllString(s, " ")
}

// Lines splits prepared text into lines without trimming them.
func Lines(s string) []string {
	return strings.Split(s, "\n")
}
