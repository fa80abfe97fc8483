package patterns

import (
	"fmt"
	"regexp"
	"strings"

	"securexid/internal/domain"
)

// Transform names a canonicalization applied to a rule's match.
type Transform string

const (
	TransformNone          Transform = ""
	TransformUpper         Transform = "upper"
	TransformCollapseSpace Transform = "collapse_space"
)

var reWhitespace = regexp.MustCompile(`\s+`)

type ruleSpec struct {
	Name      string `yaml:"name"`
	Pattern   string `yaml:"pattern"`
	Group     int    `yaml:"group"`
	Transform string `yaml:"transform"`
}

// Rule is one compiled extraction pattern. Group selects the capture that holds
// the value; group 0 is the whole match.
type Rule struct {
	name      string
	expr      *regexp.Regexp
	group     int
	transform Transform
}

func newRule(path string, spec *ruleSpec) (*Rule, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: %s: rule has no name", domain.ErrInvalidPatternLibrary, path)
	}
	re, err := compile(path, spec.Pattern)
	if err != nil {
		return nil, err
	}
	if spec.Group < 0 || spec.Group > re.NumSubexp() {
		return nil, fmt.Errorf("%w: %s: group %d out of range", domain.ErrInvalidPatternLibrary, path, spec.Group)
	}
	t := Transform(spec.Transform)
	switch t {
	case TransformNone, TransformUpper, TransformCollapseSpace:
	default:
		return nil, fmt.Errorf("%w: %s: unknown transform %q", domain.ErrInvalidPatternLibrary, path, spec.Transform)
	}
	return &Rule{name: spec.Name, expr: re, group: spec.Group, transform: t}, nil
}

// Name identifies the rule within its chain.
func (r *Rule) Name() string { return r.name }

// Find returns the first match with surrounding whitespace trimmed. An empty
// capture counts as no match.
func (r *Rule) Find(text string) (string, bool) {
	m := r.expr.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return r.finish(m[r.group])
}

// FindAll returns every non-empty match in order of appearance.
func (r *Rule) FindAll(text string) []string {
	var out []string
	for _, m := range r.expr.FindAllStringSubmatch(text, -1) {
		if v, ok := r.finish(m[r.group]); ok {
			out = append(out, v)
		}
	}
	return out
}

func (r *Rule) finish(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	switch r.transform {
	case TransformUpper:
		v = strings.ToUpper(v)
	case TransformCollapseSpace:
		v = reWhitespace.ReplaceAllString(v, " ")
	}
	return v, true
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
