// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package matchers

import (
	"testing"

	"avg-scan/internal/config"
	"avg-scan/internal/detector"
	"avg-scan/internal/exclusion"
	"avg-scan/internal/lexicon"
)

func testDeps(t *testing.T) (*lexicon.Store, config.Thresholds, *exclusion.Engine) {
	t.Helper()
	lex, err := lexicon.Load()
	if err != nil {
		t.Fatalf("failed to load lexicon: %v", err)
	}
	th := config.Default().Thresholds
	return lex, th, exclusion.NewEngine(lex, th.ContextWindow)
}

func findByCategory(dets []detector.Detection, category string) []detector.Detection {
	var out []detector.Detection
	for _, d := range dets {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

func scanAll(t *testing.T, text string) []detector.Detection {
	t.Helper()
	lex, th, excl := testDeps(t)

	var all []detector.Detection
	for _, m := range Registry(lex, th, excl) {
		all = append(all, m.FindMatches(text, 1)...)
	}
	return all
}

func TestValidBSN(t *testing.T) {
	tests := []struct {
		number string
		want   bool
	}{
		{"111222333", true},
		{"111222334", false}, // checksum off by one
		{"123456789", false},
		{"000000000", false}, // explicit zero exception
		{"12345678", false},  // too short
		{"1234567890", false},
	}
	for _, tt := range tests {
		if got := ValidBSN(tt.number); got != tt.want {
			t.Errorf("ValidBSN(%q) = %v, want %v", tt.number, got, tt.want)
		}
	}
}

func TestBSNMatcher(t *testing.T) {
	dets := scanAll(t, "BSN van betrokkene: 111222333. Dossiernummer 123456789.")

	bsn := findByCategory(dets, detector.CategoryBSN)
	if len(bsn) != 1 {
		t.Fatalf("expected 1 BSN detection, got %d", len(bsn))
	}
	if bsn[0].Value != "111222333" {
		t.Errorf("expected value 111222333, got %q", bsn[0].Value)
	}
	if bsn[0].Confidence != detector.ConfidenceHigh {
		t.Errorf("expected high confidence, got %s", bsn[0].Confidence)
	}
	if bsn[0].StartIndex != 20 || bsn[0].EndIndex != 29 {
		t.Errorf("unexpected span %d-%d", bsn[0].StartIndex, bsn[0].EndIndex)
	}
}

func TestIBANMatcher(t *testing.T) {
	dets := scanAll(t, "Betaling via NL91ABNA0417164300 ontvangen.")

	iban := findByCategory(dets, detector.CategoryIBAN)
	if len(iban) != 1 {
		t.Fatalf("expected 1 IBAN detection, got %d", len(iban))
	}
	if iban[0].Value != "NL91ABNA0417164300" {
		t.Errorf("unexpected value %q", iban[0].Value)
	}
}

func TestEmailMatcher(t *testing.T) {
	dets := scanAll(t, "Contact: j.visser@voorbeeld.nl of via de website.")

	email := findByCategory(dets, detector.CategoryEmail)
	if len(email) != 1 {
		t.Fatalf("expected 1 email detection, got %d", len(email))
	}
	if email[0].Value != "j.visser@voorbeeld.nl" {
		t.Errorf("unexpected value %q", email[0].Value)
	}
}

func TestPhoneMatcher_Mobile(t *testing.T) {
	dets := scanAll(t, "Bel mij op 06-12345678 voor een afspraak.")

	phone := findByCategory(dets, detector.CategoryPhone)
	if len(phone) != 1 {
		t.Fatalf("expected 1 phone detection, got %d", len(phone))
	}
	if phone[0].Value != "06-12345678" {
		t.Errorf("unexpected value %q", phone[0].Value)
	}
}

func TestPhoneMatcher_MobileInLabContext(t *testing.T) {
	dets := scanAll(t, "Monsternummer 0612345678 is geanalyseerd.")

	if phone := findByCategory(dets, detector.CategoryPhone); len(phone) != 0 {
		t.Errorf("06 run in lab context should not be a phone number, got %v", phone)
	}
}

func TestPhoneMatcher_LandlineNeedsContext(t *testing.T) {
	// A bare unseparated landline run without a phone keyword is rejected.
	dets := scanAll(t, "Referentie 0101234567 vastgelegd.")
	if phone := findByCategory(dets, detector.CategoryPhone); len(phone) != 0 {
		t.Errorf("bare landline digits without context should be rejected, got %v", phone)
	}

	// The same number with a phone keyword nearby is accepted.
	dets = scanAll(t, "Tel. 0101234567 bereikbaar op werkdagen.")
	if phone := findByCategory(dets, detector.CategoryPhone); len(phone) != 1 {
		t.Errorf("landline with phone keyword should be accepted, got %v", phone)
	}

	// Separator formatting alone also qualifies.
	dets = scanAll(t, "Storing melden via 010-123 45 67 graag.")
	if phone := findByCategory(dets, detector.CategoryPhone); len(phone) != 1 {
		t.Errorf("separator-formatted landline should be accepted, got %v", phone)
	}
}

func TestPhoneMatcher_AdjacentDigits(t *testing.T) {
	dets := scanAll(t, "Meetwaarde 00612345678901 geregistreerd.")

	if phone := findByCategory(dets, detector.CategoryPhone); len(phone) != 0 {
		t.Errorf("digit run inside a larger number should be rejected, got %v", phone)
	}
}

func TestPostalCodeMatcher(t *testing.T) {
	dets := scanAll(t, "Gelegen aan de kade, 9711 AB Groningen.")

	postal := findByCategory(dets, detector.CategoryPostalCode)
	if len(postal) != 1 {
		t.Fatalf("expected 1 postal code, got %d", len(postal))
	}
	if postal[0].Value != "9711 AB" {
		t.Errorf("unexpected value %q", postal[0].Value)
	}
}

func TestPostalCodeMatcher_YearRejected(t *testing.T) {
	dets := scanAll(t, "In 2024 AB is de norm herzien.")

	if postal := findByCategory(dets, detector.CategoryPostalCode); len(postal) != 0 {
		t.Errorf("plausible year should not be a postal code, got %v", postal)
	}
}

func TestAddressMatcher(t *testing.T) {
	dets := scanAll(t, "De bewoner van Dorpsstraat 12a is geïnformeerd.")

	addr := findByCategory(dets, detector.CategoryAddress)
	if len(addr) != 1 {
		t.Fatalf("expected 1 address, got %d", len(addr))
	}
	if addr[0].Value != "Dorpsstraat 12a" {
		t.Errorf("unexpected value %q", addr[0].Value)
	}
}

func TestAddressMatcher_BusinessContextRejected(t *testing.T) {
	dets := scanAll(t, "Bezoekadres: Stationsweg 5 te Utrecht.")
	if addr := findByCategory(dets, detector.CategoryAddress); len(addr) != 0 {
		t.Errorf("business-context address should be rejected, got %v", addr)
	}

	dets = scanAll(t, "Locatie: Hoofdweg 10 in het plangebied.")
	if addr := findByCategory(dets, detector.CategoryAddress); len(addr) != 0 {
		t.Errorf("metadata-labeled location should be rejected, got %v", addr)
	}
}

func TestCadastralMatcher(t *testing.T) {
	dets := scanAll(t, "Perceel AMR01D1234 is onderzocht.")

	cad := findByCategory(dets, detector.CategoryCadastral)
	if len(cad) != 1 {
		t.Fatalf("expected 1 cadastral number, got %d", len(cad))
	}
	if cad[0].Value != "AMR01D1234" {
		t.Errorf("unexpected value %q", cad[0].Value)
	}
}

func TestSignatureLabelMatcher(t *testing.T) {
	dets := scanAll(t, "Voor akkoord opdrachtnemer\nParaaf:\nDatum van ondertekening volgt.")

	sig := findByCategory(dets, detector.CategorySignature)
	if len(sig) == 0 {
		t.Fatal("expected a signature label detection")
	}
	for _, d := range sig {
		if d.Selected {
			t.Errorf("signature labels locate a region and must not be auto-selected: %v", d)
		}
	}
}

func TestInitialsMatcher(t *testing.T) {
	dets := scanAll(t, "Uitgevoerd in overleg met J. Visser namens de bewoners.")

	ini := findByCategory(dets, detector.CategoryInitials)
	if len(ini) != 1 {
		t.Fatalf("expected 1 initials detection, got %d", len(ini))
	}
	if ini[0].Value != "J. Visser" {
		t.Errorf("unexpected value %q", ini[0].Value)
	}
}

func TestInitialsMatcher_Tussenvoegsel(t *testing.T) {
	dets := scanAll(t, "Gesproken met A.B. van der Berg over de planning.")

	ini := findByCategory(dets, detector.CategoryInitials)
	if len(ini) != 1 {
		t.Fatalf("expected 1 initials detection, got %d", len(ini))
	}
	if ini[0].Value != "A.B. van der Berg" {
		t.Errorf("unexpected value %q", ini[0].Value)
	}
}

func TestInitialsMatcher_AbbreviationRejected(t *testing.T) {
	dets := scanAll(t, "Aangeboden aan Aannemersbedrijf B.V. Jansen te Zwolle.")

	for _, d := range findByCategory(dets, detector.CategoryInitials) {
		t.Errorf("dotted abbreviation should not match as initials: %q", d.Value)
	}
}

func TestFindMatches_DeduplicatesValues(t *testing.T) {
	dets := scanAll(t, "BSN 111222333 en nogmaals 111222333.")

	if bsn := findByCategory(dets, detector.CategoryBSN); len(bsn) != 1 {
		t.Errorf("repeated value should be reported once, got %d", len(bsn))
	}
}
