// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package matchers

import (
	"regexp"

	"avg-scan/internal/detector"
)

// bsnPattern matches any maximal run of exactly 9 digits on word
// boundaries. The 11-proof checksum does the actual qualification.
var bsnPattern = regexp.MustCompile(`\b\d{9}\b`)

// newBSNMatcher detects Dutch citizen service numbers (BSN).
func newBSNMatcher() *Matcher {
	return &Matcher{
		Category:    detector.CategoryBSN,
		DisplayName: "BSN",
		Icon:        "🆔",
		Confidence:  detector.ConfidenceHigh,
		Selected:    true,
		regex:       bsnPattern,
		validate: func(match string, index int, fullText string) bool {
			return ValidBSN(match)
		},
	}
}

// ValidBSN applies the 11-proof to a 9-digit candidate: the first eight
// digits weighted 9 down to 2, the ninth digit subtracted, and the total
// must be divisible by 11.
func ValidBSN(number string) bool {
	if len(number) != 9 || number == "000000000" {
		return false
	}
	sum := 0
	for i := 0; i < 8; i++ {
		if !isDigit(number[i]) {
			return false
		}
		sum += int(number[i]-'0') * (9 - i)
	}
	if !isDigit(number[8]) {
		return false
	}
	sum -= int(number[8] - '0')
	return sum%11 == 0
}
