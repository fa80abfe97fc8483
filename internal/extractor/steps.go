package extractor

import (
	"regexp"
	"strings"
	"unicode"

	"securexid/internal/ocrtext"
	"securexid/internal/patterns"
)

// stopWords rejects candidates that contain a boilerplate word.
type stopWords map[string]struct{}

func newStopWords(words []string) stopWords {
	sw := make(stopWords, len(words))
	for _, w := range words {
		sw[strings.ToLower(w)] = struct{}{}
	}
	return sw
}

func (sw stopWords) blocks(s string) bool {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool { return !unicode.IsLetter(r) })
	for _, w := range words {
		if _, ok := sw[w]; ok {
			return true
		}
	}
	return false
}

func ruleSteps(rules []*patterns.Rule) []Step {
	steps := make([]Step, 0, len(rules))
	for _, r := range rules {
		steps = append(steps, Step{Name: r.Name(), Match: r.Find})
	}
	return steps
}

// nameRuleSteps walks every match of each rule and keeps the first one that is
// free of stop words.
func nameRuleSteps(rules []*patterns.Rule, stop stopWords) []Step {
	steps := make([]Step, 0, len(rules))
	for _, r := range rules {
		steps = append(steps, Step{Name: r.Name(), Match: func(text string) (string, bool) {
			for _, v := range r.FindAll(text) {
				if !stop.blocks(v) {
					return v, true
				}
			}
			return "", false
		}})
	}
	return steps
}

// aboveAnchorStep takes the nearest line above the first line holding an anchor.
// Blank lines, lines without letters and stop-word lines are skipped. A labeled
// line ends the scan; labeled names belong to the label rules.
func aboveAnchorStep(anchors []string, stop stopWords) Step {
	return Step{Name: "above_dob", Match: func(text string) (string, bool) {
		lines := ocrtext.Lines(text)
		at := -1
		for i, line := range lines {
			if containsAny(line, anchors) {
				at = i
				break
			}
		}
		for i := at - 1; i >= 0; i-- {
			line := strings.TrimSpace(lines[i])
			if strings.Contains(line, ":") {
				return "", false
			}
			if !hasLetter(line) || stop.blocks(line) {
				continue
			}
			return line, true
		}
		return "", false
	}}
}

// keywordLineDateStep returns the first date-shaped substring on a line that
// mentions one of the keywords.
func keywordLineDateStep(name string, keywords []string, date *regexp.Regexp) Step {
	return Step{Name: name, Match: func(text string) (string, bool) {
		for _, line := range ocrtext.Lines(text) {
			if !containsAny(strings.ToLower(line), keywords) {
				continue
			}
			if d := date.FindString(line); d != "" {
				return d, true
			}
		}
		return "", false
	}}
}

// positionalDateStep picks from all dates in text by position. It is a layout
// approximation, not a guarantee.
func positionalDateStep(name string, date *regexp.Regexp, pick func(dates []string) string) Step {
	return Step{Name: name, Match: func(text string) (string, bool) {
		dates := date.FindAllString(text, -1)
		if len(dates) == 0 {
			return "", false
		}
		v := pick(dates)
		return v, v != ""
	}}
}

// secondElseFirst is the license date-of-birth position: issue date usually comes first.
func secondElseFirst(dates []string) string {
	if len(dates) > 1 {
		return dates[1]
	}
	return dates[0]
}

// last is the license validity position.
func last(dates []string) string {
	return dates[len(dates)-1]
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func hasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}
