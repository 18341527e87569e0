// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package fieldlabel extracts personal-data values tied to known roles in
// structured Dutch reports: "Opdrachtgever: J. Visser" and the colon-less
// "Boormeester J. de Boer" form.
package fieldlabel

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"avg-scan/internal/config"
	"avg-scan/internal/detector"
	"avg-scan/internal/exclusion"
	"avg-scan/internal/lexicon"
)

// Extractor finds label/value pairs for the configured field labels.
type Extractor struct {
	lex  *lexicon.Store
	excl *exclusion.Engine
	th   config.Thresholds

	colonPattern *regexp.Regexp
	plainPattern *regexp.Regexp
}

// NewExtractor compiles the label patterns from the lexicon.
func NewExtractor(lex *lexicon.Store, excl *exclusion.Engine, th config.Thresholds) *Extractor {
	quoted := make([]string, len(lex.FieldLabels))
	for i, l := range lex.FieldLabels {
		quoted[i] = regexp.QuoteMeta(l)
	}
	alternation := strings.Join(quoted, "|")

	return &Extractor{
		lex:  lex,
		excl: excl,
		th:   th,
		// "Label:" followed by free text, bounded by the line end.
		colonPattern: regexp.MustCompile(fmt.Sprintf(
			`(?i)\b(?:%s)\s*:[ \t]*([^\n]{1,50})`, alternation,
		)),
		// "Label Value" without colon; the capitalization requirement in
		// acceptValue keeps this from grabbing a following sentence.
		plainPattern: regexp.MustCompile(fmt.Sprintf(
			`(?i)\b(?:%s)[ \t]+([^\n:]{1,50})`, alternation,
		)),
	}
}

// Extract returns the validated field values found in the page text.
func (e *Extractor) Extract(text string, page int) []detector.Detection {
	if text == "" {
		return nil
	}

	var out []detector.Detection
	seen := make(map[string]bool)

	collect := func(pattern *regexp.Regexp, requireCapitalized bool) {
		for _, loc := range pattern.FindAllStringSubmatchIndex(text, -1) {
			start, end := loc[2], loc[3]
			if start < 0 {
				continue
			}
			value, valueStart := trimSpan(text, start, end)
			if requireCapitalized {
				// The colon-less form captures to the line end, so running
				// prose after the name must be clipped off first.
				value = e.clipToNameRun(value)
				if !majorityCapitalized(value) {
					continue
				}
			}
			if !e.acceptValue(value, valueStart, text) {
				continue
			}
			key := strings.ToLower(value)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, detector.Detection{
				Category:    detector.CategoryField,
				DisplayName: "Veldwaarde",
				Icon:        "📋",
				Value:       value,
				Page:        page,
				StartIndex:  valueStart,
				EndIndex:    valueStart + len(value),
				Confidence:  detector.ConfidenceMedium,
				Selected:    true,
			})
		}
	}

	collect(e.colonPattern, false)
	collect(e.plainPattern, true)

	return out
}

// acceptValue applies the value filters: professional-party denylist, the
// shared exclusion engine, a minimum-length/non-numeric check, and a
// maximum length to reject accidental whole-sentence captures.
func (e *Extractor) acceptValue(value string, index int, fullText string) bool {
	if len([]rune(value)) < 3 || len([]rune(value)) > e.th.MaxFieldLength {
		return false
	}

	lower := strings.ToLower(value)
	for _, kw := range e.lex.ProfessionalValueKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}

	if !containsLetter(value) {
		return false
	}

	return !e.excl.ShouldExclude(value, index, fullText)
}

// clipToNameRun keeps the leading run of capitalized tokens and
// tussenvoegsels and drops everything after it. "J. de Boer voerde de
// boringen uit" clips to "J. de Boer".
func (e *Extractor) clipToNameRun(value string) string {
	end := 0
	i := 0
	for i < len(value) {
		for i < len(value) && (value[i] == ' ' || value[i] == '\t') {
			i++
		}
		start := i
		for i < len(value) && value[i] != ' ' && value[i] != '\t' {
			i++
		}
		if start == i {
			break
		}
		token := value[start:i]
		first := []rune(token)[0]
		if unicode.IsUpper(first) || e.lex.Tussenvoegsels.Has(strings.Trim(strings.ToLower(token), ".,;:")) {
			end = i
			continue
		}
		break
	}
	return strings.TrimRight(value[:end], ".,; ")
}

// trimSpan trims surrounding whitespace from the captured span while
// keeping the start offset aligned with the page text.
func trimSpan(text string, start, end int) (string, int) {
	for start < end && (text[start] == ' ' || text[start] == '\t') {
		start++
	}
	for end > start {
		c := text[end-1]
		if c == ' ' || c == '\t' || c == '.' || c == ',' || c == ';' {
			end--
			continue
		}
		break
	}
	return text[start:end], start
}

// majorityCapitalized reports whether more than half of the tokens start
// with an uppercase letter.
func majorityCapitalized(value string) bool {
	tokens := strings.Fields(value)
	if len(tokens) == 0 {
		return false
	}
	capitalized := 0
	for _, t := range tokens {
		r := []rune(t)[0]
		if unicode.IsUpper(r) {
			capitalized++
		}
	}
	return capitalized*2 > len(tokens)
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
