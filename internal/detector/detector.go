// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

// Confidence classifies how certain a detector is about a finding.
type Confidence string

const (
	ConfidenceHigh    Confidence = "high"
	ConfidenceMedium  Confidence = "medium"
	ConfidenceLow     Confidence = "low"
	ConfidenceLearned Confidence = "learned"
)

// Category describes a detection category as shown to the user.
type Category struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Icon        string `json:"icon"`
}

// Well-known category identifiers. Matchers and detectors carry their own
// display metadata; these constants keep bucket keys consistent across
// packages.
const (
	CategoryBSN        = "bsn"
	CategoryIBAN       = "iban"
	CategoryEmail      = "email"
	CategoryPhone      = "telefoon"
	CategoryPostalCode = "postcode"
	CategoryAddress    = "adres"
	CategoryCadastral  = "kadastraal"
	CategorySignature  = "handtekening"
	CategoryInitials   = "initialen"
	CategoryName       = "naam"
	CategoryField      = "veldwaarde"
	CategoryLearned    = "geleerd"
	CategoryCustom     = "zoekterm"
)

// Detection is a single PII finding inside one page's text.
//
// StartIndex and EndIndex are character offsets into the page's concatenated
// text representation (all text fragments joined with a single space). The
// joining convention must match the one used when the page text was built,
// or downstream bounding-box lookups will misalign.
type Detection struct {
	Category    string     `json:"category"`
	DisplayName string     `json:"displayName"`
	Icon        string     `json:"icon"`
	Value       string     `json:"value"`
	Page        int        `json:"page"`
	StartIndex  int        `json:"startIndex"`
	EndIndex    int        `json:"endIndex"`
	Confidence  Confidence `json:"confidence"`
	Selected    bool       `json:"selected"`
}

// Length returns the span length of the detection in characters.
func (d Detection) Length() int {
	return d.EndIndex - d.StartIndex
}

// Contains reports whether d's span fully contains other's span.
func (d Detection) Contains(other Detection) bool {
	return other.StartIndex >= d.StartIndex && other.EndIndex <= d.EndIndex
}

// Overlap returns the number of overlapping characters between two spans.
func (d Detection) Overlap(other Detection) int {
	start := max(d.StartIndex, other.StartIndex)
	end := min(d.EndIndex, other.EndIndex)
	if end <= start {
		return 0
	}
	return end - start
}

// CategoryGroup aggregates the detections of one category.
type CategoryGroup struct {
	Name  string      `json:"name"`
	Icon  string      `json:"icon"`
	Items []Detection `json:"items"`
}

// Stats summarizes a detection result.
type Stats struct {
	Total      int `json:"total"`
	Categories int `json:"categories"`
}

// Result is the categorized output of one detection run.
type Result struct {
	ByCategory map[string]*CategoryGroup `json:"byCategory"`
	All        []Detection               `json:"all"`
	Stats      Stats                     `json:"stats"`
}

// EmptyResult returns a well-formed result with no findings, used for
// malformed or empty input so callers never see a nil map.
func EmptyResult() *Result {
	return &Result{
		ByCategory: map[string]*CategoryGroup{},
		All:        []Detection{},
	}
}

// ExternalCandidate is a PII candidate produced by an external detector
// (such as the AI analysis backend). The orchestrator merges candidates into
// the regex-based result using the same index and exclusion rules.
type ExternalCandidate struct {
	Type       string  `json:"type"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}
