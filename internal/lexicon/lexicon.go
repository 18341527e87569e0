// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package lexicon holds the static word lists the detection engine matches
// against: organizations, roles, government bodies, exclusion words and the
// structural vocabulary (prefixes, tussenvoegsels, street suffixes, field
// labels). The lists live in an embedded YAML file so categories can be
// extended without touching matcher logic.
package lexicon

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data.yaml
var rawData []byte

// data mirrors the YAML layout of the embedded lexicon file.
type data struct {
	Version                   string   `yaml:"version"`
	CertifiedOrganizations    []string `yaml:"certified_organizations"`
	PublicOfficials           []string `yaml:"public_officials"`
	GovernmentBodies          []string `yaml:"government_bodies"`
	JobTitles                 []string `yaml:"job_titles"`
	ExcludeWords              []string `yaml:"exclude_words"`
	OrganizationTriggers      []string `yaml:"organization_triggers"`
	CompanySuffixes           []string `yaml:"company_suffixes"`
	BusinessIndicators        []string `yaml:"business_indicators"`
	MetadataKeywords          []string `yaml:"metadata_keywords"`
	PhoneKeywords             []string `yaml:"phone_keywords"`
	LabKeywords               []string `yaml:"lab_keywords"`
	SignatureKeywords         []string `yaml:"signature_keywords"`
	DrawingKeywords           []string `yaml:"drawing_keywords"`
	ProfessionalValueKeywords []string `yaml:"professional_value_keywords"`
	NamePrefixes              []string `yaml:"name_prefixes"`
	Tussenvoegsels            []string `yaml:"tussenvoegsels"`
	StreetSuffixes            []string `yaml:"street_suffixes"`
	FieldLabels               []string `yaml:"field_labels"`
	KnownAbbreviations        []string `yaml:"known_abbreviations"`
	FalsePositiveBigrams      []string `yaml:"false_positive_bigrams"`
	SentenceStarters          []string `yaml:"sentence_starters"`
	AdjectiveEndings          []string `yaml:"adjective_endings"`
}

// Set is a case-folded membership set.
type Set map[string]struct{}

// NewSet builds a set from the given words, lowercasing each entry.
func NewSet(words []string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			s[w] = struct{}{}
		}
	}
	return s
}

// Has reports whether word is in the set (case-insensitive, whole entry).
func (s Set) Has(word string) bool {
	_, ok := s[strings.ToLower(strings.TrimSpace(word))]
	return ok
}

// Words returns the entries of the set in unspecified order.
func (s Set) Words() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	return out
}

// Store is the loaded lexicon. It is read-only after Load and safe for
// concurrent use.
type Store struct {
	Version string

	// Exclusion categories.
	CertifiedOrganizations []string // substring-matched, keep slice order
	PublicOfficials        Set
	GovernmentBodies       Set
	JobTitles              Set
	ExcludeWords           Set
	OrganizationTriggers   Set
	CompanySuffixes        Set

	// Matcher context vocabularies.
	BusinessIndicators        []string
	MetadataKeywords          []string
	PhoneKeywords             []string
	LabKeywords               []string
	SignatureKeywords         []string
	DrawingKeywords           Set
	ProfessionalValueKeywords []string

	// Structural vocabulary.
	NamePrefixes         []string
	Tussenvoegsels       Set
	StreetSuffixes       []string
	FieldLabels          []string
	KnownAbbreviations   Set
	FalsePositiveBigrams Set
	SentenceStarters     Set
	AdjectiveEndings     []string
}

// Load parses the embedded lexicon data. A corrupt embedded file is a
// build-time defect, so Load fails fast rather than degrading.
func Load() (*Store, error) {
	var d data
	if err := yaml.Unmarshal(rawData, &d); err != nil {
		return nil, fmt.Errorf("failed to parse embedded lexicon data: %w", err)
	}
	if len(d.StreetSuffixes) == 0 || len(d.NamePrefixes) == 0 || len(d.FieldLabels) == 0 {
		return nil, fmt.Errorf("embedded lexicon data is incomplete (version %q)", d.Version)
	}

	return &Store{
		Version:                   d.Version,
		CertifiedOrganizations:    lowerAll(d.CertifiedOrganizations),
		PublicOfficials:           NewSet(d.PublicOfficials),
		GovernmentBodies:          NewSet(d.GovernmentBodies),
		JobTitles:                 NewSet(d.JobTitles),
		ExcludeWords:              NewSet(d.ExcludeWords),
		OrganizationTriggers:      NewSet(d.OrganizationTriggers),
		CompanySuffixes:           NewSet(d.CompanySuffixes),
		BusinessIndicators:        lowerAll(d.BusinessIndicators),
		MetadataKeywords:          lowerAll(d.MetadataKeywords),
		PhoneKeywords:             lowerAll(d.PhoneKeywords),
		LabKeywords:               lowerAll(d.LabKeywords),
		SignatureKeywords:         lowerAll(d.SignatureKeywords),
		DrawingKeywords:           NewSet(d.DrawingKeywords),
		ProfessionalValueKeywords: lowerAll(d.ProfessionalValueKeywords),
		NamePrefixes:              lowerAll(d.NamePrefixes),
		Tussenvoegsels:            NewSet(d.Tussenvoegsels),
		StreetSuffixes:            lowerAll(d.StreetSuffixes),
		FieldLabels:               lowerAll(d.FieldLabels),
		KnownAbbreviations:        NewSet(d.KnownAbbreviations),
		FalsePositiveBigrams:      NewSet(d.FalsePositiveBigrams),
		SentenceStarters:          NewSet(d.SentenceStarters),
		AdjectiveEndings:          lowerAll(d.AdjectiveEndings),
	}, nil
}

// MustLoad is Load for program initialization paths where a broken lexicon
// should abort startup.
func MustLoad() *Store {
	s, err := Load()
	if err != nil {
		panic(err)
	}
	return s
}

// IsExcludedToken reports whether a single token is a known public-official
// title, government body, job title or generic exclude word. Whole-word, not
// substring: substring matching on short tokens causes false exclusions
// ("ja" inside "Jansen").
func (s *Store) IsExcludedToken(token string) bool {
	token = strings.Trim(strings.ToLower(token), ".,;:()[]'\"")
	if token == "" {
		return false
	}
	return s.PublicOfficials.Has(token) ||
		s.GovernmentBodies.Has(token) ||
		s.JobTitles.Has(token) ||
		s.ExcludeWords.Has(token)
}

// MatchesCertifiedOrganization reports whether the candidate overlaps a
// certified-organization entry. Matching is substring in both directions on
// purpose: organization names vary in form.
func (s *Store) MatchesCertifiedOrganization(candidate string) bool {
	c := strings.ToLower(strings.TrimSpace(candidate))
	if c == "" {
		return false
	}
	for _, org := range s.CertifiedOrganizations {
		if strings.Contains(c, org) || strings.Contains(org, c) {
			return true
		}
	}
	return false
}

func lowerAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
