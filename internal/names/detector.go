// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package names detects person names with two heuristic strategies: a
// prefix-triggered scan keyed on Dutch honorifics and role words, and a
// lower-confidence standalone scan for capitalized word pairs. Both feed
// the shared exclusion engine; the standalone strategy carries additional
// linguistic filters because of its false-positive rate.
package names

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"avg-scan/internal/detector"
	"avg-scan/internal/exclusion"
	"avg-scan/internal/lexicon"
	"avg-scan/internal/matchers"
)

// Detector finds person-name candidates in page text.
type Detector struct {
	lex  *lexicon.Store
	excl *exclusion.Engine

	prefixPattern     *regexp.Regexp
	standalonePattern *regexp.Regexp
}

// NewDetector compiles the name patterns from the lexicon's prefixes and
// tussenvoegsels.
func NewDetector(lex *lexicon.Store, excl *exclusion.Engine) *Detector {
	tussen := matchers.TussenvoegselAlternation(lex)

	// Longest prefixes first so "prof. dr." wins over "prof.".
	prefixes := make([]string, len(lex.NamePrefixes))
	copy(prefixes, lex.NamePrefixes)
	sort.Slice(prefixes, func(i, j int) bool {
		if len(prefixes[i]) != len(prefixes[j]) {
			return len(prefixes[i]) > len(prefixes[j])
		}
		return prefixes[i] < prefixes[j]
	})
	quoted := make([]string, len(prefixes))
	for i, p := range prefixes {
		quoted[i] = regexp.QuoteMeta(p)
	}

	namePart := fmt.Sprintf(`[A-Z]\p{Ll}+(?:\s+(?:%s))?\s+[A-Z]\p{Ll}+`, tussen)

	prefixPattern := regexp.MustCompile(fmt.Sprintf(
		`(?i:\b(?:%s))\s+(%s)`, strings.Join(quoted, "|"), namePart,
	))
	standalonePattern := regexp.MustCompile(fmt.Sprintf(
		`\b%s(?:\s+[A-Z]\p{Ll}+)?\b`, namePart,
	))

	return &Detector{
		lex:               lex,
		excl:              excl,
		prefixPattern:     prefixPattern,
		standalonePattern: standalonePattern,
	}
}

// Detect runs both strategies and returns the case-insensitively
// deduplicated union, prefix-triggered candidates first.
func (d *Detector) Detect(text string, page int) []detector.Detection {
	if text == "" {
		return nil
	}

	var out []detector.Detection
	seen := make(map[string]bool)

	for _, det := range d.detectPrefixed(text, page) {
		key := strings.ToLower(det.Value)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, det)
	}

	for _, det := range d.detectStandalone(text, page) {
		key := strings.ToLower(det.Value)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, det)
	}

	return out
}

// detectPrefixed finds names introduced by an honorific or role prefix.
// The prefix makes these high-confidence; they are auto-selected.
func (d *Detector) detectPrefixed(text string, page int) []detector.Detection {
	var out []detector.Detection

	for _, loc := range d.prefixPattern.FindAllStringSubmatchIndex(text, -1) {
		// Group 1 is the name without the trigger prefix.
		start, end := loc[2], loc[3]
		if start < 0 {
			continue
		}
		value := text[start:end]
		if d.excl.ShouldExclude(value, start, text) {
			continue
		}
		out = append(out, detector.Detection{
			Category:    detector.CategoryName,
			DisplayName: "Persoonsnaam",
			Icon:        "👤",
			Value:       value,
			Page:        page,
			StartIndex:  start,
			EndIndex:    end,
			Confidence:  detector.ConfidenceHigh,
			Selected:    true,
		})
	}

	return out
}

// detectStandalone finds bare capitalized word sequences. Section headers
// and organization names match this shape too, so candidates pass extra
// filters and are not auto-selected.
func (d *Detector) detectStandalone(text string, page int) []detector.Detection {
	var out []detector.Detection

	for _, loc := range d.standalonePattern.FindAllStringIndex(text, -1) {
		value := text[loc[0]:loc[1]]
		if !d.plausibleStandaloneName(value) {
			continue
		}
		if d.excl.ShouldExclude(value, loc[0], text) {
			continue
		}
		out = append(out, detector.Detection{
			Category:    detector.CategoryName,
			DisplayName: "Persoonsnaam",
			Icon:        "👤",
			Value:       value,
			Page:        page,
			StartIndex:  loc[0],
			EndIndex:    loc[1],
			Confidence:  detector.ConfidenceLow,
			Selected:    false,
		})
	}

	return out
}

// plausibleStandaloneName applies the linguistic filters of the standalone
// strategy.
func (d *Detector) plausibleStandaloneName(value string) bool {
	lower := strings.ToLower(value)
	tokens := strings.Fields(lower)
	if len(tokens) < 2 {
		return false
	}

	if d.lex.FalsePositiveBigrams.Has(lower) ||
		d.lex.FalsePositiveBigrams.Has(strings.Join(tokens[:2], " ")) {
		return false
	}

	for _, token := range tokens {
		if d.lex.IsExcludedToken(token) {
			return false
		}
	}

	// A determiner as first token marks a sentence start, not a name.
	if d.lex.SentenceStarters.Has(tokens[0]) {
		return false
	}

	// Adjectives are not first names ("Provinciale", "Landelijke").
	for _, ending := range d.lex.AdjectiveEndings {
		if strings.HasSuffix(tokens[0], ending) {
			return false
		}
	}

	return true
}
