// Package extractor turns prepared OCR text into per-document-type field records.
package extractor

// Matcher looks for one field value in text.
type Matcher func(text string) (string, bool)

// Step is one named strategy in a fallback chain.
type Step struct {
	Name  string
	Match Matcher
}

// Chain is an ordered list of strategies for one field. Later steps run only
// when every earlier step found nothing.
type Chain []Step

// Resolve returns the first hit, or nil when the chain is exhausted.
func (c Chain) Resolve(text string) *string {
	v, _, ok := c.Trace(text)
	if !ok {
		return nil
	}
	return &v
}

// Trace is Resolve that also reports which step produced the value.
func (c Chain) Trace(text string) (value, step string, ok bool) {
	for _, s := range c {
		if v, hit := s.Match(text); hit && v != "" {
			return v, s.Name, true
		}
	}
	return "", "", false
}

// Names lists the step names in evaluation order.
func (c Chain) Names() []string {
	out := make([]string, len(c))
	for i, s := range c {
		out[i] = s.Name
	}
	return out
}
