// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package matchers

import (
	"regexp"
	"strings"

	"avg-scan/internal/config"
	"avg-scan/internal/detector"
	"avg-scan/internal/lexicon"
)

// phonePattern matches a Dutch phone number: a +31/0031/0 prefix followed
// by nine digit groups, each optionally preceded by a space, dot or dash.
var phonePattern = regexp.MustCompile(`(\+31|0031|0)(?:[ .\-]?\d){9}`)

var (
	// datePrefix / dateSuffix recognize dd-mm- shapes that indicate the
	// digits belong to a calendar date, not a phone number.
	datePrefix = regexp.MustCompile(`^\d{1,2}[-./]\d{1,2}[-./]`)
	dateSuffix = regexp.MustCompile(`[-./]\d{1,2}[-./]\d{2,4}$`)
)

// newPhoneMatcher detects mobile and landline phone numbers with
// differentiated context rules: mobile numbers are accepted unless a
// lab/sample context suggests a barcode; landline numbers need either a
// phone keyword nearby or separator formatting.
func newPhoneMatcher(lex *lexicon.Store, th config.Thresholds) *Matcher {
	window := th.PhoneKeywordWindow

	return &Matcher{
		Category:    detector.CategoryPhone,
		DisplayName: "Telefoonnummer",
		Icon:        "📞",
		Confidence:  detector.ConfidenceHigh,
		Selected:    true,
		regex:       phonePattern,
		validate: func(match string, index int, fullText string) bool {
			if strings.ContainsAny(match, "\r\n") {
				return false
			}
			if datePrefix.MatchString(match) || dateSuffix.MatchString(match) {
				return false
			}
			if adjacentToNumber(index, index+len(match), fullText) {
				return false
			}

			before := contextBefore(fullText, index, window)
			if isMobileNumber(match) {
				// An 06 run right after lab/sample vocabulary is far more
				// likely a barcode or sample number.
				return !containsAnyKeyword(before, lex.LabKeywords)
			}

			if containsAnyKeyword(before, lex.PhoneKeywords) {
				return true
			}
			// Without a phone-context keyword, only separator-formatted
			// numbers qualify; a bare 10-digit run is likely non-phone data.
			return strings.ContainsAny(match, " .-")
		},
	}
}

// isMobileNumber reports whether the normalized number has the Dutch mobile
// 06 prefix.
func isMobileNumber(match string) bool {
	digits := normalizePhoneDigits(match)
	return strings.HasPrefix(digits, "06")
}

// normalizePhoneDigits strips separators and rewrites the +31/0031 country
// prefix to the domestic 0 form.
func normalizePhoneDigits(match string) string {
	var b strings.Builder
	for i := 0; i < len(match); i++ {
		if isDigit(match[i]) {
			b.WriteByte(match[i])
		}
	}
	digits := b.String()
	if strings.HasPrefix(digits, "0031") {
		return "0" + digits[4:]
	}
	if strings.HasPrefix(match, "+31") && strings.HasPrefix(digits, "31") {
		return "0" + digits[2:]
	}
	return digits
}

// adjacentToNumber reports whether the match borders another digit or a
// decimal separator followed by a digit, which marks it as a slice of a
// larger number (measurement, date, decimal) rather than a phone number.
func adjacentToNumber(start, end int, fullText string) bool {
	if start > 0 {
		prev := fullText[start-1]
		if isDigit(prev) {
			return true
		}
		if (prev == '.' || prev == ',' || prev == '-' || prev == '/') && start > 1 && isDigit(fullText[start-2]) {
			return true
		}
	}
	if end < len(fullText) {
		next := fullText[end]
		if isDigit(next) {
			return true
		}
		if (next == '.' || next == ',' || next == '-' || next == '/') && end+1 < len(fullText) && isDigit(fullText[end+1]) {
			return true
		}
	}
	return false
}
