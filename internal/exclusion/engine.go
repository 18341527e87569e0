// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package exclusion decides whether a candidate string is professional or
// organizational noise rather than personal data. It is the single decision
// procedure shared by the name detector, the field-label extractor and the
// signature detector.
package exclusion

import (
	"regexp"
	"strings"

	"avg-scan/internal/lexicon"
)

// sectionPrefix matches a numeric section header ("7.3 ", "2.1.4 ")
// immediately before a candidate.
var sectionPrefix = regexp.MustCompile(`\d+(\.\d+)*\.?\s*$`)

// Engine applies the exclusion rules against a loaded lexicon.
type Engine struct {
	lex *lexicon.Store

	// contextWindow is the number of characters before the match that are
	// inspected for organization-context triggers.
	contextWindow int
}

// NewEngine creates an exclusion engine over the given lexicon.
func NewEngine(lex *lexicon.Store, contextWindow int) *Engine {
	if contextWindow <= 0 {
		contextWindow = 50
	}
	return &Engine{lex: lex, contextWindow: contextWindow}
}

// ShouldExclude reports whether the candidate at matchIndex in fullText is a
// known organization, role or structural term and must be suppressed.
//
// The decision order is deliberate. Certified-organization matching is
// substring (organization names vary in form); role and title matching is
// whole-word per token (substring matching on short tokens causes false
// exclusions, e.g. "ja" inside "Jansen").
func (e *Engine) ShouldExclude(candidate string, matchIndex int, fullText string) bool {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return true
	}

	if e.lex.MatchesCertifiedOrganization(candidate) {
		return true
	}

	tokens := strings.Fields(candidate)
	for _, token := range tokens {
		if e.lex.IsExcludedToken(token) {
			return true
		}
	}

	// A single short token is too weak a signal to be a full name.
	if len(tokens) == 1 && len([]rune(candidate)) < 15 {
		return true
	}

	if e.hasOrganizationContext(matchIndex, fullText) {
		return true
	}

	if e.hasSectionPrefix(matchIndex, fullText) {
		return true
	}

	last := strings.Trim(strings.ToLower(tokens[len(tokens)-1]), ".,;:()")
	if e.lex.CompanySuffixes.Has(last) {
		return true
	}

	return false
}

// hasOrganizationContext reports whether the last word before the match is
// an organization-context trigger ("bureau", "firma", "gemeente", ...).
func (e *Engine) hasOrganizationContext(matchIndex int, fullText string) bool {
	if matchIndex <= 0 || matchIndex > len(fullText) {
		return false
	}
	start := matchIndex - e.contextWindow
	if start < 0 {
		start = 0
	}
	before := strings.Fields(strings.ToLower(fullText[start:matchIndex]))
	if len(before) == 0 {
		return false
	}
	lastWord := strings.Trim(before[len(before)-1], ".,;:()'\"")
	return e.lex.OrganizationTriggers.Has(lastWord)
}

// hasSectionPrefix reports whether the match is immediately preceded by a
// numeric section header such as "7.3 ".
func (e *Engine) hasSectionPrefix(matchIndex int, fullText string) bool {
	if matchIndex <= 0 || matchIndex > len(fullText) {
		return false
	}
	start := matchIndex - 12
	if start < 0 {
		start = 0
	}
	return sectionPrefix.MatchString(fullText[start:matchIndex])
}
