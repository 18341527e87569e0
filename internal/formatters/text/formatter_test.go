// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"strings"
	"testing"

	"avg-scan/internal/detector"
	"avg-scan/internal/formatters"
)

func sampleResult() *detector.Result {
	result := detector.EmptyResult()
	result.All = []detector.Detection{
		{
			Category:    detector.CategoryBSN,
			DisplayName: "BSN",
			Icon:        "🆔",
			Value:       "111222333",
			Page:        1,
			StartIndex:  10,
			EndIndex:    19,
			Confidence:  detector.ConfidenceHigh,
			Selected:    true,
		},
		{
			Category:    detector.CategoryName,
			DisplayName: "Persoonsnaam",
			Icon:        "👤",
			Value:       "Jan Jansen",
			Page:        2,
			StartIndex:  4,
			EndIndex:    14,
			Confidence:  detector.ConfidenceLow,
		},
	}
	for _, d := range result.All {
		result.ByCategory[d.Category] = &detector.CategoryGroup{
			Name:  d.DisplayName,
			Icon:  d.Icon,
			Items: []detector.Detection{d},
		}
	}
	result.Stats = detector.Stats{Total: 2, Categories: 2}
	return result
}

func TestFormat(t *testing.T) {
	f := NewFormatter()
	options := formatters.DefaultOptions()
	options.NoColor = true

	out, err := f.Format(sampleResult(), options)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	for _, want := range []string{"BSN", "111222333", "Persoonsnaam", "Jan Jansen", "pagina"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// BSN renders before the name category.
	if strings.Index(out, "BSN") > strings.Index(out, "Persoonsnaam") {
		t.Error("expected BSN category before names")
	}
}

func TestFormat_ConfidenceFilter(t *testing.T) {
	f := NewFormatter()
	options := formatters.DefaultOptions()
	options.NoColor = true
	options.ConfidenceLevel = map[string]bool{string(detector.ConfidenceHigh): true}

	out, err := f.Format(sampleResult(), options)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(out, "111222333") {
		t.Error("high-confidence detection should be shown")
	}
	if strings.Contains(out, "Jan Jansen") {
		t.Error("low-confidence detection should be filtered out")
	}
}

func TestFormat_RedactedValues(t *testing.T) {
	f := NewFormatter()
	options := formatters.DefaultOptions()
	options.NoColor = true
	options.ShowMatch = false

	out, err := f.Format(sampleResult(), options)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if strings.Contains(out, "111222333") {
		t.Error("values should be redacted when ShowMatch is off")
	}
	if !strings.Contains(out, "[AFGESCHERMD]") {
		t.Error("expected redaction placeholder")
	}
}

func TestFormat_EmptyResult(t *testing.T) {
	f := NewFormatter()
	options := formatters.DefaultOptions()
	options.NoColor = true

	out, err := f.Format(detector.EmptyResult(), options)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(out, "Geen persoonsgegevens") {
		t.Errorf("expected empty-result message, got %q", out)
	}
}
