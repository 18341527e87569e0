// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package feedback maintains the learned/ignored term sets that adapt
// future detections to user corrections. The sets are persisted as one
// record under a fixed key and reloaded across sessions; persistence
// failures degrade to in-memory operation and never break detection.
package feedback

import (
	"encoding/json"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"avg-scan/internal/detector"
	"avg-scan/internal/paths"
)

// recordKey is the fixed key of the single persisted feedback record.
const recordKey = "avg-scan-feedback"

// record is the persisted shape: one row holding both term sets as JSON
// arrays.
type record struct {
	Key       string    `gorm:"primaryKey;column:key"`
	Learned   string    `gorm:"column:learned"`
	Ignored   string    `gorm:"column:ignored"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (record) TableName() string { return "feedback_records" }

// Store holds the learned and ignored term sets.
//
// Invariant: a term is never in both sets; adding to one removes it from
// the other. Mutations are serialized and persisted before the lock is
// released.
type Store struct {
	mu      sync.Mutex
	db      *gorm.DB
	learned map[string]struct{}
	ignored map[string]struct{}

	minTermLength int
	log           *slog.Logger
}

// NewStore opens (or creates) the SQLite feedback database at dbPath and
// loads the persisted sets. Any open, migration or load failure is logged
// and the store starts with empty in-memory sets — feedback persistence is
// best-effort by contract.
func NewStore(dbPath string, minTermLength int) *Store {
	s := newMemoryStore(minTermLength)

	if dbPath == "" {
		return s
	}
	if err := paths.EnsureDir(filepath.Dir(dbPath)); err != nil {
		s.log.Warn("failed to create feedback data directory", "path", dbPath, "error", err)
		return s
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		s.log.Warn("failed to open feedback database, continuing in memory", "path", dbPath, "error", err)
		return s
	}
	if err := db.AutoMigrate(&record{}); err != nil {
		s.log.Warn("failed to migrate feedback database, continuing in memory", "error", err)
		return s
	}

	s.db = db
	s.load()
	return s
}

// NewInMemoryStore creates a store without persistence, for tests and
// embedded use.
func NewInMemoryStore(minTermLength int) *Store {
	return newMemoryStore(minTermLength)
}

func newMemoryStore(minTermLength int) *Store {
	if minTermLength < 2 {
		minTermLength = 2
	}
	return &Store{
		learned:       make(map[string]struct{}),
		ignored:       make(map[string]struct{}),
		minTermLength: minTermLength,
		log:           slog.Default(),
	}
}

// load repopulates both sets from the persisted record. Missing or corrupt
// storage falls back to empty sets.
func (s *Store) load() {
	var rec record
	err := s.db.First(&rec, "key = ?", recordKey).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			s.log.Warn("failed to load feedback record, starting empty", "error", err)
		}
		return
	}

	var learned, ignored []string
	if err := json.Unmarshal([]byte(rec.Learned), &learned); err != nil {
		s.log.Warn("corrupt learned-word data, starting empty", "error", err)
		learned = nil
	}
	if err := json.Unmarshal([]byte(rec.Ignored), &ignored); err != nil {
		s.log.Warn("corrupt ignored-word data, starting empty", "error", err)
		ignored = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range learned {
		if t = normalizeTerm(t); t != "" {
			s.learned[t] = struct{}{}
		}
	}
	for _, t := range ignored {
		if t = normalizeTerm(t); t != "" {
			delete(s.learned, t)
			s.ignored[t] = struct{}{}
		}
	}
}

// LearnWord adds a term to the learned set and removes it from the ignored
// set. Terms shorter than the minimum normalized length are rejected.
func (s *Store) LearnWord(term string) bool {
	t := normalizeTerm(term)
	if len([]rune(t)) < s.minTermLength {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.learned[t] = struct{}{}
	delete(s.ignored, t)
	s.persistLocked()
	return true
}

// IgnoreWord adds a term to the ignored set and removes it from the learned
// set.
func (s *Store) IgnoreWord(term string) bool {
	t := normalizeTerm(term)
	if len([]rune(t)) < s.minTermLength {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ignored[t] = struct{}{}
	delete(s.learned, t)
	s.persistLocked()
	return true
}

// ShouldIgnore reports whether a detection value is on the ignored list.
func (s *Store) ShouldIgnore(value string) bool {
	t := normalizeTerm(value)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ignored[t]
	return ok
}

// LearnedWords returns the learned terms, sorted for stable output.
func (s *Store) LearnedWords() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedTerms(s.learned)
}

// IgnoredWords returns the ignored terms, sorted for stable output.
func (s *Store) IgnoredWords() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedTerms(s.ignored)
}

// Clear empties both sets and persists the cleared state.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.learned = make(map[string]struct{})
	s.ignored = make(map[string]struct{})
	s.persistLocked()
}

// DetectLearnedWords finds every literal, case-insensitive occurrence of a
// learned term in the page text and emits a learned-category detection that
// preserves the original casing from the source text.
func (s *Store) DetectLearnedWords(text string, page int) []detector.Detection {
	if text == "" {
		return nil
	}

	s.mu.Lock()
	terms := sortedTerms(s.learned)
	s.mu.Unlock()

	lowerText := strings.ToLower(text)
	var out []detector.Detection

	for _, term := range terms {
		// Both sets are mutually exclusive by invariant, so no ignored
		// check is needed here.
		from := 0
		for {
			i := strings.Index(lowerText[from:], term)
			if i < 0 {
				break
			}
			start := from + i
			end := start + len(term)
			out = append(out, detector.Detection{
				Category:    detector.CategoryLearned,
				DisplayName: "Geleerde term",
				Icon:        "🔖",
				Value:       text[start:end],
				Page:        page,
				StartIndex:  start,
				EndIndex:    end,
				Confidence:  detector.ConfidenceLearned,
				Selected:    true,
			})
			from = end
		}
	}

	return out
}

// persistLocked serializes the sets to the single feedback record. Save
// failures are logged and skipped; the in-memory state stays authoritative
// for the session. Callers must hold s.mu.
func (s *Store) persistLocked() {
	if s.db == nil {
		return
	}

	learned, err := json.Marshal(sortedTerms(s.learned))
	if err != nil {
		s.log.Warn("failed to serialize learned words", "error", err)
		return
	}
	ignored, err := json.Marshal(sortedTerms(s.ignored))
	if err != nil {
		s.log.Warn("failed to serialize ignored words", "error", err)
		return
	}

	rec := record{
		Key:       recordKey,
		Learned:   string(learned),
		Ignored:   string(ignored),
		UpdatedAt: time.Now(),
	}
	if err := s.db.Save(&rec).Error; err != nil {
		s.log.Warn("failed to persist feedback record", "error", err)
	}
}

// normalizeTerm trims and lowercases a feedback term.
func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

func sortedTerms(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
