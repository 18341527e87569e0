// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package matchers

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"avg-scan/internal/detector"
	"avg-scan/internal/exclusion"
	"avg-scan/internal/lexicon"
)

// newInitialsMatcher detects initials-plus-surname forms such as
// "J. Visser" and "A.B. van der Berg". Dotted abbreviations (B.V., T.A.V.)
// are rejected, and the shared exclusion engine filters organizational
// candidates.
func newInitialsMatcher(lex *lexicon.Store, excl *exclusion.Engine) *Matcher {
	pattern := fmt.Sprintf(
		`\b(?:[A-Z]\.\s?){1,4}(?:(?:%s)\s+)?[A-Z]\p{Ll}+(?:\s[A-Z]\p{Ll}+)?`,
		TussenvoegselAlternation(lex),
	)

	return &Matcher{
		Category:    detector.CategoryInitials,
		DisplayName: "Initialen + achternaam",
		Icon:        "👤",
		Confidence:  detector.ConfidenceMedium,
		Selected:    true,
		regex:       regexp.MustCompile(pattern),
		validate: func(match string, index int, fullText string) bool {
			if isKnownAbbreviation(match, lex) {
				return false
			}
			return !excl.ShouldExclude(match, index, fullText)
		},
	}
}

// TussenvoegselAlternation renders the lexicon's tussenvoegsels as a regex
// alternation, longest entries first so compound infixes ("van der") win
// over their prefixes ("van").
func TussenvoegselAlternation(lex *lexicon.Store) string {
	words := lex.Tussenvoegsels.Words()
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(quoted, "|")
}

// isKnownAbbreviation reports whether the dotted-capitals part of the match
// is a known abbreviation rather than a person's initials.
func isKnownAbbreviation(match string, lex *lexicon.Store) bool {
	compact := strings.ToUpper(strings.ReplaceAll(match, " ", ""))
	for abbr := range lex.KnownAbbreviations {
		a := strings.ToUpper(strings.ReplaceAll(abbr, " ", ""))
		if strings.HasPrefix(compact, a) {
			return true
		}
	}
	return false
}
