// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package matchers

import (
	"regexp"

	"avg-scan/internal/detector"
)

// cadastralPattern matches a cadastral parcel designation: a three-letter
// municipality code, a two-digit section, a section letter and a four or
// five digit parcel number ("AMR01D1234").
var cadastralPattern = regexp.MustCompile(`\b[A-Za-z]{3}\d{2}[A-Za-z]\d{4,5}\b`)

// newCadastralMatcher detects cadastral parcel numbers.
func newCadastralMatcher() *Matcher {
	return &Matcher{
		Category:    detector.CategoryCadastral,
		DisplayName: "Kadastraal nummer",
		Icon:        "🗺️",
		Confidence:  detector.ConfidenceMedium,
		Selected:    true,
		regex:       cadastralPattern,
	}
}
