// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package matchers

import (
	"regexp"

	"avg-scan/internal/detector"
)

var emailPattern = regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`)

// newEmailMatcher detects e-mail addresses.
func newEmailMatcher() *Matcher {
	return &Matcher{
		Category:    detector.CategoryEmail,
		DisplayName: "E-mailadres",
		Icon:        "📧",
		Confidence:  detector.ConfidenceHigh,
		Selected:    true,
		regex:       emailPattern,
	}
}
