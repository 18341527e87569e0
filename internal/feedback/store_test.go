// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package feedback

import (
	"path/filepath"
	"testing"
)

func TestLearnAndIgnoreAreMutuallyExclusive(t *testing.T) {
	s := NewInMemoryStore(2)

	if !s.LearnWord("Jansen") {
		t.Fatal("LearnWord should accept the term")
	}
	if got := s.LearnedWords(); len(got) != 1 || got[0] != "jansen" {
		t.Fatalf("expected normalized learned term, got %v", got)
	}

	if !s.IgnoreWord("jansen") {
		t.Fatal("IgnoreWord should accept the term")
	}
	if got := s.LearnedWords(); len(got) != 0 {
		t.Errorf("ignoring a term must remove it from the learned set, got %v", got)
	}
	if !s.ShouldIgnore("JANSEN") {
		t.Error("ShouldIgnore should match case-insensitively")
	}

	if !s.LearnWord("jansen") {
		t.Fatal("LearnWord should accept the term again")
	}
	if s.ShouldIgnore("jansen") {
		t.Error("learning a term must remove it from the ignored set")
	}
}

func TestMinimumTermLength(t *testing.T) {
	s := NewInMemoryStore(2)

	if s.LearnWord("a") {
		t.Error("single-character term should be rejected")
	}
	if s.IgnoreWord(" x ") {
		t.Error("term below minimum normalized length should be rejected")
	}
	if !s.LearnWord("ab") {
		t.Error("term at minimum length should be accepted")
	}
}

func TestClear(t *testing.T) {
	s := NewInMemoryStore(2)
	s.LearnWord("alpha")
	s.IgnoreWord("beta")

	s.Clear()
	if len(s.LearnedWords()) != 0 || len(s.IgnoredWords()) != 0 {
		t.Error("Clear should empty both sets")
	}
}

func TestDetectLearnedWords(t *testing.T) {
	s := NewInMemoryStore(2)
	s.LearnWord("visser")

	text := "Gesprek met Visser en later nogmaals met VISSER."
	dets := s.DetectLearnedWords(text, 3)
	if len(dets) != 2 {
		t.Fatalf("expected 2 detections, got %d: %v", len(dets), dets)
	}
	if dets[0].Value != "Visser" || dets[1].Value != "VISSER" {
		t.Errorf("detections should preserve source casing, got %q and %q", dets[0].Value, dets[1].Value)
	}
	for _, d := range dets {
		if d.Page != 3 {
			t.Errorf("expected page 3, got %d", d.Page)
		}
		if text[d.StartIndex:d.EndIndex] != d.Value {
			t.Errorf("span %d-%d does not slice back to %q", d.StartIndex, d.EndIndex, d.Value)
		}
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "feedback.db")

	s := NewStore(dbPath, 2)
	s.LearnWord("visser")
	s.IgnoreWord("kiwa")

	reopened := NewStore(dbPath, 2)
	if got := reopened.LearnedWords(); len(got) != 1 || got[0] != "visser" {
		t.Errorf("expected learned term to survive reopen, got %v", got)
	}
	if got := reopened.IgnoredWords(); len(got) != 1 || got[0] != "kiwa" {
		t.Errorf("expected ignored term to survive reopen, got %v", got)
	}
}

func TestUnwritableDBFallsBackToMemory(t *testing.T) {
	// A directory path that cannot be created degrades to in-memory
	// operation instead of failing.
	s := NewStore(string([]byte{0})+"/nope/feedback.db", 2)
	if !s.LearnWord("visser") {
		t.Error("in-memory fallback should still accept terms")
	}
}
