// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package fieldlabel

import (
	"testing"

	"avg-scan/internal/config"
	"avg-scan/internal/detector"
	"avg-scan/internal/exclusion"
	"avg-scan/internal/lexicon"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	lex, err := lexicon.Load()
	if err != nil {
		t.Fatalf("failed to load lexicon: %v", err)
	}
	th := config.Default().Thresholds
	return NewExtractor(lex, exclusion.NewEngine(lex, th.ContextWindow), th)
}

func TestExtract_ColonForm(t *testing.T) {
	e := newTestExtractor(t)

	dets := e.Extract("Opdrachtgever: J. Visser\nProjectnummer: 2024-117", 1)
	if len(dets) != 1 {
		t.Fatalf("expected 1 detection, got %d: %v", len(dets), dets)
	}
	if dets[0].Value != "J. Visser" {
		t.Errorf("unexpected value %q", dets[0].Value)
	}
	if dets[0].Confidence != detector.ConfidenceMedium {
		t.Errorf("field values are medium confidence, got %s", dets[0].Confidence)
	}
}

func TestExtract_SpanOffsets(t *testing.T) {
	e := newTestExtractor(t)

	text := "Eigenaar:   Piet de Wit."
	dets := e.Extract(text, 1)
	if len(dets) != 1 {
		t.Fatalf("expected 1 detection, got %d: %v", len(dets), dets)
	}
	d := dets[0]
	if d.Value != "Piet de Wit" {
		t.Errorf("trailing punctuation should be trimmed, got %q", d.Value)
	}
	if text[d.StartIndex:d.EndIndex] != d.Value {
		t.Errorf("span %d-%d does not slice back to the value: %q", d.StartIndex, d.EndIndex, text[d.StartIndex:d.EndIndex])
	}
}

func TestExtract_PlainFormNeedsCapitalization(t *testing.T) {
	e := newTestExtractor(t)

	dets := e.Extract("Boormeester J. de Boer voerde de boringen uit.", 1)
	if len(dets) != 1 {
		t.Fatalf("expected 1 detection, got %d: %v", len(dets), dets)
	}
	if dets[0].Value != "J. de Boer" {
		t.Errorf("unexpected value %q", dets[0].Value)
	}

	// A lowercase continuation is running prose, not a field value.
	if dets := e.Extract("De boormeester heeft de werkzaamheden afgerond.", 1); len(dets) != 0 {
		t.Errorf("lowercase continuation should not be extracted, got %v", dets)
	}
}

func TestExtract_RejectsProfessionalValues(t *testing.T) {
	e := newTestExtractor(t)

	if dets := e.Extract("Uitgevoerd door: Gecertificeerd conform BRL SIKB 2000", 1); len(dets) != 0 {
		t.Errorf("certification boilerplate should be rejected, got %v", dets)
	}
	if dets := e.Extract("Opdrachtgever: Gemeente Utrecht", 1); len(dets) != 0 {
		t.Errorf("government body value should be rejected, got %v", dets)
	}
}

func TestExtract_RejectsNonValues(t *testing.T) {
	e := newTestExtractor(t)

	// Too short, numeric only.
	if dets := e.Extract("Eigenaar: 12", 1); len(dets) != 0 {
		t.Errorf("numeric value should be rejected, got %v", dets)
	}
}

func TestExtract_Deduplicates(t *testing.T) {
	e := newTestExtractor(t)

	dets := e.Extract("Opdrachtgever: J. Visser\nContactpersoon: J. Visser", 1)
	if len(dets) != 1 {
		t.Errorf("identical values should be reported once, got %d: %v", len(dets), dets)
	}
}
