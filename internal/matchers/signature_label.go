// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package matchers

import (
	"fmt"
	"regexp"
	"strings"

	"avg-scan/internal/detector"
	"avg-scan/internal/lexicon"
)

// newSignatureLabelMatcher locates signature block labels: lines ending in
// a signature-related keyword ("paraaf", "handtekening", "akkoord"). The
// match marks the label, not the signature itself — the user still draws
// the redaction box over the actual signature.
func newSignatureLabelMatcher(lex *lexicon.Store) *Matcher {
	pattern := fmt.Sprintf(
		`(?im)^[^\n]{0,80}\b(?:%s)\s*:?[ \t]*$`,
		strings.Join(lex.SignatureKeywords, "|"),
	)

	return &Matcher{
		Category:    detector.CategorySignature,
		DisplayName: "Handtekening",
		Icon:        "✍️",
		Confidence:  detector.ConfidenceMedium,
		Selected:    false,
		regex:       regexp.MustCompile(pattern),
	}
}
