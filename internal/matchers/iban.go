// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package matchers

import (
	"regexp"

	"avg-scan/internal/detector"
)

// ibanPattern matches the Dutch IBAN shape: country code, two check digits,
// four-letter bank code, ten-digit account number.
var ibanPattern = regexp.MustCompile(`\b[A-Za-z]{2}\d{2}[A-Za-z]{4}\d{10}\b`)

// newIBANMatcher detects IBAN-style bank account numbers. The shape is
// specific enough that no further validation is applied.
func newIBANMatcher() *Matcher {
	return &Matcher{
		Category:    detector.CategoryIBAN,
		DisplayName: "IBAN-rekeningnummer",
		Icon:        "🏦",
		Confidence:  detector.ConfidenceHigh,
		Selected:    true,
		regex:       ibanPattern,
	}
}
