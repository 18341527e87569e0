// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package signature detects signer identifications: professional-title plus
// name sequences ("ing. J. de Vries") and "<verb> door: Naam" attributions
// common in Dutch report colophons.
package signature

import (
	"fmt"
	"regexp"
	"strings"

	"avg-scan/internal/detector"
	"avg-scan/internal/exclusion"
	"avg-scan/internal/lexicon"
	"avg-scan/internal/matchers"
)

const (
	minLength = 5
	maxLength = 50
)

// Detector finds signer names in page text.
type Detector struct {
	lex  *lexicon.Store
	excl *exclusion.Engine

	titledPattern *regexp.Regexp
	doorPattern   *regexp.Regexp
}

// NewDetector compiles the signature patterns.
func NewDetector(lex *lexicon.Store, excl *exclusion.Engine) *Detector {
	tussen := matchers.TussenvoegselAlternation(lex)

	titled := fmt.Sprintf(
		`\b(?:ing|ir|drs|dr|mr|prof)\.\s?(?:[A-Z]\.\s?)*(?:(?:%s)\s+)?[A-Z]\p{Ll}+(?:\s[A-Z]\p{Ll}+)?`,
		tussen,
	)
	// Same-line whitespace only: a signer attribution never wraps past the
	// line it is printed on.
	door := `(?i:\b(?:opgesteld|gecontroleerd|goedgekeurd|vrijgegeven|uitgevoerd|getekend|geparafeerd|akkoord)[ \t]+door)[ \t]*:?[ \t]+((?:[A-Z][\p{Ll}.]*[ \t]?){1,4})`

	return &Detector{
		lex:           lex,
		excl:          excl,
		titledPattern: regexp.MustCompile(titled),
		doorPattern:   regexp.MustCompile(door),
	}
}

// Detect returns the validated signer-name detections for one page.
func (d *Detector) Detect(text string, page int) []detector.Detection {
	if text == "" {
		return nil
	}

	var out []detector.Detection
	seen := make(map[string]bool)

	add := func(value string, start int) {
		value = strings.TrimRight(value, " .,;")
		if !d.acceptName(value, start, text) {
			return
		}
		key := strings.ToLower(value)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, detector.Detection{
			Category:    detector.CategorySignature,
			DisplayName: "Handtekening",
			Icon:        "✍️",
			Value:       value,
			Page:        page,
			StartIndex:  start,
			EndIndex:    start + len(value),
			Confidence:  detector.ConfidenceHigh,
			Selected:    true,
		})
	}

	for _, loc := range d.titledPattern.FindAllStringIndex(text, -1) {
		add(text[loc[0]:loc[1]], loc[0])
	}
	for _, loc := range d.doorPattern.FindAllStringSubmatchIndex(text, -1) {
		if loc[2] < 0 {
			continue
		}
		add(text[loc[2]:loc[3]], loc[2])
	}

	return out
}

// acceptName applies the post-filters: plausible length (paragraph-length
// captures are false positives), the drawing-keyword denylist (technical
// drawings label scale and date blocks in ways that pattern-match names),
// and the shared exclusion engine.
func (d *Detector) acceptName(value string, index int, fullText string) bool {
	n := len([]rune(value))
	if n < minLength || n > maxLength {
		return false
	}
	for _, token := range strings.Fields(strings.ToLower(value)) {
		if d.lex.DrawingKeywords.Has(strings.Trim(token, ".,:;")) {
			return false
		}
	}
	return !d.excl.ShouldExclude(value, index, fullText)
}
