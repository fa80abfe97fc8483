// Package patterns holds the immutable rule tables that drive classification,
// side detection and field extraction.
package patterns

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"

	"securexid/internal/domain"
)

//go:embed library.yaml
var defaultLibrary []byte

// Precedence returns the fixed classification order. License numbers can
// resemble substrings checked later, so license signatures are evaluated first.
func Precedence() []domain.DocumentType {
	return []domain.DocumentType{
		domain.DocumentTypeLicense,
		domain.DocumentTypeNationalID,
		domain.DocumentTypePassport,
	}
}

// Signature is the evidence that a text belongs to one document type.
type Signature struct {
	Keywords []string
	Patterns []*regexp.Regexp
}

// SideKeywords are the ordered front and back vocabularies of one document type.
type SideKeywords struct {
	Front []string
	Back  []string
}

type template struct {
	signature Signature
	sides     SideKeywords
	fields    map[domain.Field][]*Rule
	address   []*Rule
}

// Library is the read-only pattern table. Build it once at startup with Default
// or Load and pass it to the components that need it. All accessors return
// copies, so a Library is safe for concurrent use.
type Library struct {
	templates          map[domain.DocumentType]*template
	datePattern        *regexp.Regexp
	birthKeywords      []string
	validityKeywords   []string
	nameAnchors        []string
	nameStopWords      []string
	addressLabels      *regexp.Regexp
	addressBoilerplate *regexp.Regexp
}

type fileSpec struct {
	Dates struct {
		Pattern          string   `yaml:"pattern"`
		BirthKeywords    []string `yaml:"birth_keywords"`
		ValidityKeywords []string `yaml:"validity_keywords"`
	} `yaml:"dates"`
	Names struct {
		Anchors   []string `yaml:"anchors"`
		StopWords []string `yaml:"stop_words"`
	} `yaml:"names"`
	Address struct {
		Labels      string `yaml:"labels"`
		Boilerplate string `yaml:"boilerplate"`
	} `yaml:"address"`
	Documents map[string]documentSpec `yaml:"documents"`
}

type documentSpec struct {
	Signature struct {
		Keywords []string `yaml:"keywords"`
		Patterns []string `yaml:"patterns"`
	} `yaml:"signature"`
	Sides struct {
		Front []string `yaml:"front"`
		Back  []string `yaml:"back"`
	} `yaml:"sides"`
	Fields  map[string][]ruleSpec `yaml:"fields"`
	Address []ruleSpec            `yaml:"address"`
}

// Default builds the Library from the rule file compiled into the binary.
func Default() (*Library, error) {
	return Parse(defaultLibrary)
}

// Load builds the Library from a rule file on disk.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pattern file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds the Library from YAML rule data.
func Parse(data []byte) (*Library, error) {
	var spec fileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("%w: decoding yaml: %v", domain.ErrInvalidPatternLibrary, err)
	}
	return build(&spec)
}

func build(spec *fileSpec) (*Library, error) {
	lib := &Library{
		templates:        make(map[domain.DocumentType]*template, len(spec.Documents)),
		birthKeywords:    lowerAll(spec.Dates.BirthKeywords),
		validityKeywords: lowerAll(spec.Dates.ValidityKeywords),
		nameAnchors:      slices.Clone(spec.Names.Anchors),
		nameStopWords:    lowerAll(spec.Names.StopWords),
	}

	var err error
	if lib.datePattern, err = compile("dates.pattern", spec.Dates.Pattern); err != nil {
		return nil, err
	}
	if lib.addressLabels, err = compile("address.labels", spec.Address.Labels); err != nil {
		return nil, err
	}
	if lib.addressBoilerplate, err = compile("address.boilerplate", spec.Address.Boilerplate); err != nil {
		return nil, err
	}

	for key, doc := range spec.Documents {
		docType := domain.ParseDocumentType(key)
		if docType == domain.DocumentTypeUnknown {
			return nil, fmt.Errorf("%w: unknown document type %q", domain.ErrInvalidPatternLibrary, key)
		}
		tpl, err := buildTemplate(key, &doc)
		if err != nil {
			return nil, err
		}
		lib.templates[docType] = tpl
	}

	for _, docType := range Precedence() {
		tpl, ok := lib.templates[docType]
		if !ok {
			return nil, fmt.Errorf("%w: missing document type %q", domain.ErrInvalidPatternLibrary, docType)
		}
		if len(tpl.signature.Keywords) == 0 && len(tpl.signature.Patterns) == 0 {
			return nil, fmt.Errorf("%w: %s has an empty signature", domain.ErrInvalidPatternLibrary, docType)
		}
		if len(tpl.sides.Front) == 0 && len(tpl.sides.Back) == 0 {
			return nil, fmt.Errorf("%w: %s has no side keywords", domain.ErrInvalidPatternLibrary, docType)
		}
		if len(tpl.fields[domain.FieldDocumentNumber]) == 0 {
			return nil, fmt.Errorf("%w: %s has no document number rule", domain.ErrInvalidPatternLibrary, docType)
		}
	}

	return lib, nil
}

var knownFields = map[string]domain.Field{
	string(domain.FieldDocumentNumber): domain.FieldDocumentNumber,
	string(domain.FieldName):           domain.FieldName,
	string(domain.FieldDateOfBirth):    domain.FieldDateOfBirth,
	string(domain.FieldGender):         domain.FieldGender,
	string(domain.FieldNationality):    domain.FieldNationality,
	string(domain.FieldValidUntil):     domain.FieldValidUntil,
	string(domain.FieldAddress):        domain.FieldAddress,
}

func buildTemplate(key string, doc *documentSpec) (*template, error) {
	tpl := &template{
		signature: Signature{Keywords: lowerAll(doc.Signature.Keywords)},
		sides: SideKeywords{
			Front: lowerAll(doc.Sides.Front),
			Back:  lowerAll(doc.Sides.Back),
		},
		fields: make(map[domain.Field][]*Rule, len(doc.Fields)),
	}

	for i, p := range doc.Signature.Patterns {
		re, err := compile(fmt.Sprintf("%s.signature.patterns[%d]", key, i), p)
		if err != nil {
			return nil, err
		}
		tpl.signature.Patterns = append(tpl.signature.Patterns, re)
	}

	for name, specs := range doc.Fields {
		field, ok := knownFields[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s: unknown field %q", domain.ErrInvalidPatternLibrary, key, name)
		}
		rules, err := compileRules(fmt.Sprintf("%s.fields.%s", key, name), specs)
		if err != nil {
			return nil, err
		}
		tpl.fields[field] = rules
	}

	rules, err := compileRules(key+".address", doc.Address)
	if err != nil {
		return nil, err
	}
	tpl.address = rules
	return tpl, nil
}

func compileRules(path string, specs []ruleSpec) ([]*Rule, error) {
	rules := make([]*Rule, 0, len(specs))
	for i := range specs {
		r, err := newRule(fmt.Sprintf("%s[%d]", path, i), &specs[i])
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

func compile(path, pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: %s: empty pattern", domain.ErrInvalidPatternLibrary, path)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidPatternLibrary, path, err)
	}
	return re, nil
}

// Signature returns the classification evidence for docType.
func (l *Library) Signature(docType domain.DocumentType) (Signature, bool) {
	tpl, ok := l.templates[docType]
	if !ok {
		return Signature{}, false
	}
	return Signature{
		Keywords: slices.Clone(tpl.signature.Keywords),
		Patterns: slices.Clone(tpl.signature.Patterns),
	}, true
}

// SideKeywords returns the front/back vocabulary for docType.
func (l *Library) SideKeywords(docType domain.DocumentType) (SideKeywords, bool) {
	tpl, ok := l.templates[docType]
	if !ok {
		return SideKeywords{}, false
	}
	return SideKeywords{
		Front: slices.Clone(tpl.sides.Front),
		Back:  slices.Clone(tpl.sides.Back),
	}, true
}

// FieldRules returns the ordered rules for one field of docType. Nil when none are defined.
func (l *Library) FieldRules(docType domain.DocumentType, field domain.Field) []*Rule {
	tpl, ok := l.templates[docType]
	if !ok {
		return nil
	}
	return slices.Clone(tpl.fields[field])
}

// AddressRules returns the ordered address-region rules of docType.
func (l *Library) AddressRules(docType domain.DocumentType) []*Rule {
	tpl, ok := l.templates[docType]
	if !ok {
		return nil
	}
	return slices.Clone(tpl.address)
}

// DocumentTypes returns the types that have a template, in classification order.
func (l *Library) DocumentTypes() []domain.DocumentType {
	out := make([]domain.DocumentType, 0, len(l.templates))
	for _, t := range Precedence() {
		if _, ok := l.templates[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

// DatePattern returns the shared date regex used by every date step.
func (l *Library) DatePattern() *regexp.Regexp { return l.datePattern }

// BirthKeywords returns the lowercase words that mark a date-of-birth line.
func (l *Library) BirthKeywords() []string { return slices.Clone(l.birthKeywords) }

// ValidityKeywords returns the lowercase words that mark a validity line.
func (l *Library) ValidityKeywords() []string { return slices.Clone(l.validityKeywords) }

// NameAnchors returns the markers whose preceding line holds the holder's name.
func (l *Library) NameAnchors() []string { return slices.Clone(l.nameAnchors) }

// NameStopWords returns the words that disqualify a name candidate.
func (l *Library) NameStopWords() []string { return slices.Clone(l.nameStopWords) }

// AddressLabels returns the regex of label and relationship prefixes stripped
// from address fragments.
func (l *Library) AddressLabels() *regexp.Regexp { return l.addressLabels }

// AddressBoilerplate returns the regex of fragments dropped from an address.
func (l *Library) AddressBoilerplate() *regexp.Regexp { return l.addressBoilerplate }
