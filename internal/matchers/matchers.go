// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package matchers contains the per-category pattern matchers of the
// detection engine. Every matcher pairs a compiled pattern with a validator
// that inspects the surrounding text to confirm or veto a raw match.
package matchers

import (
	"regexp"
	"strings"

	"avg-scan/internal/config"
	"avg-scan/internal/detector"
	"avg-scan/internal/exclusion"
	"avg-scan/internal/lexicon"
)

// ValidateFunc confirms or vetoes a raw pattern match. match is the matched
// text, index its start offset in fullText.
type ValidateFunc func(match string, index int, fullText string) bool

// Matcher is one pattern-based PII detector.
type Matcher struct {
	Category    string
	DisplayName string
	Icon        string
	Confidence  detector.Confidence
	Selected    bool

	regex    *regexp.Regexp
	validate ValidateFunc
}

// FindMatches scans the page text and returns validated, per-value
// deduplicated detections.
func (m *Matcher) FindMatches(text string, page int) []detector.Detection {
	if text == "" {
		return nil
	}

	var out []detector.Detection
	seen := make(map[string]bool)

	for _, loc := range m.regex.FindAllStringIndex(text, -1) {
		value := text[loc[0]:loc[1]]
		if seen[value] {
			continue
		}
		if m.validate != nil && !m.validate(value, loc[0], text) {
			continue
		}
		seen[value] = true
		out = append(out, detector.Detection{
			Category:    m.Category,
			DisplayName: m.DisplayName,
			Icon:        m.Icon,
			Value:       value,
			Page:        page,
			StartIndex:  loc[0],
			EndIndex:    loc[1],
			Confidence:  m.Confidence,
			Selected:    m.Selected,
		})
	}

	return out
}

// Registry returns all pattern matchers in a fixed order, so that detection
// output is deterministic for a given input and lexicon state.
func Registry(lex *lexicon.Store, th config.Thresholds, excl *exclusion.Engine) []*Matcher {
	return []*Matcher{
		newBSNMatcher(),
		newIBANMatcher(),
		newEmailMatcher(),
		newPhoneMatcher(lex, th),
		newPostalCodeMatcher(),
		newAddressMatcher(lex, th),
		newCadastralMatcher(),
		newSignatureLabelMatcher(lex),
		newInitialsMatcher(lex, excl),
	}
}

// contextBefore returns up to window characters of text preceding index,
// lowercased for keyword scanning.
func contextBefore(text string, index, window int) string {
	if index <= 0 || index > len(text) {
		return ""
	}
	start := index - window
	if start < 0 {
		start = 0
	}
	return strings.ToLower(text[start:index])
}

// containsAnyKeyword reports whether s contains any of the given lowercase
// keywords.
func containsAnyKeyword(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// isDigit reports whether b is an ASCII digit.
func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
