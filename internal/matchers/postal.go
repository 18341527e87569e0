// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package matchers

import (
	"regexp"
	"strconv"

	"avg-scan/internal/detector"
)

// postalPattern matches a Dutch postal code: four digits (first nonzero),
// an optional space, and two uppercase letters. The trailing word boundary
// rejects codes followed by more letters.
var postalPattern = regexp.MustCompile(`\b[1-9]\d{3} ?[A-Z]{2}\b`)

// newPostalCodeMatcher detects postal codes. A four-digit prefix that
// parses as a plausible calendar year is rejected: "2024 AB" is far more
// likely a year with a section label than a postal code.
func newPostalCodeMatcher() *Matcher {
	return &Matcher{
		Category:    detector.CategoryPostalCode,
		DisplayName: "Postcode",
		Icon:        "📮",
		Confidence:  detector.ConfidenceMedium,
		Selected:    true,
		regex:       postalPattern,
		validate: func(match string, index int, fullText string) bool {
			year, err := strconv.Atoi(match[:4])
			if err != nil {
				return false
			}
			return year < 1900 || year > 2100
		},
	}
}
