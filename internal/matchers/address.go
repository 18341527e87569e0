// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package matchers

import (
	"fmt"
	"regexp"
	"strings"

	"avg-scan/internal/config"
	"avg-scan/internal/detector"
	"avg-scan/internal/lexicon"
)

// newAddressMatcher detects street addresses: a capitalized word ending in
// a street-type suffix followed by a house number with an optional letter
// or range suffix. The suffix alternation is built from the lexicon so the
// recognized street types stay configuration, not code.
func newAddressMatcher(lex *lexicon.Store, th config.Thresholds) *Matcher {
	pattern := fmt.Sprintf(
		`\b[A-Z][\p{Ll}']*(?:%s)\s+\d+(?:\s?[a-zA-Z])?(?:\s?[-/]\s?\d+[a-zA-Z]?)?\b`,
		strings.Join(lex.StreetSuffixes, "|"),
	)

	return &Matcher{
		Category:    detector.CategoryAddress,
		DisplayName: "Adres",
		Icon:        "🏠",
		Confidence:  detector.ConfidenceHigh,
		Selected:    true,
		regex:       regexp.MustCompile(pattern),
		validate: func(match string, index int, fullText string) bool {
			return validateAddress(match, index, fullText, lex, th.AddressContextWindow)
		},
	}
}

// validateAddress vetoes an address match when the preceding context marks
// it as a business location or report metadata rather than a personal
// address.
func validateAddress(match string, index int, fullText string, lex *lexicon.Store, window int) bool {
	before := contextBefore(fullText, index, window)
	if containsAnyKeyword(before, lex.BusinessIndicators) {
		return false
	}
	if containsAnyKeyword(before, lex.MetadataKeywords) {
		return false
	}
	return true
}
