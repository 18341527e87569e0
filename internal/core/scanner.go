// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package core wires all detectors into the detection orchestrator shared
// by the CLI and the HTTP server.
package core

import (
	"sort"
	"strings"
	"sync"

	"avg-scan/internal/config"
	"avg-scan/internal/detector"
	"avg-scan/internal/exclusion"
	"avg-scan/internal/feedback"
	"avg-scan/internal/fieldlabel"
	"avg-scan/internal/lexicon"
	"avg-scan/internal/matchers"
	"avg-scan/internal/names"
	"avg-scan/internal/overlap"
	"avg-scan/internal/signature"
)

// Scanner runs the full layered detection pipeline over one page of text.
// It is stateless per call except for the shared read-mostly lexicon and
// the feedback store, so pages may be scanned concurrently.
type Scanner struct {
	cfg  *config.Config
	lex  *lexicon.Store
	excl *exclusion.Engine

	matchers   []*matchers.Matcher
	names      *names.Detector
	fields     *fieldlabel.Extractor
	signatures *signature.Detector
	resolver   *overlap.Resolver
	feedback   *feedback.Store
}

// NewScanner builds a scanner from the given configuration, lexicon and
// feedback store.
func NewScanner(cfg *config.Config, lex *lexicon.Store, store *feedback.Store) *Scanner {
	excl := exclusion.NewEngine(lex, cfg.Thresholds.ContextWindow)
	return &Scanner{
		cfg:        cfg,
		lex:        lex,
		excl:       excl,
		matchers:   matchers.Registry(lex, cfg.Thresholds, excl),
		names:      names.NewDetector(lex, excl),
		fields:     fieldlabel.NewExtractor(lex, excl, cfg.Thresholds),
		signatures: signature.NewDetector(lex, excl),
		resolver:   overlap.NewResolver(cfg.Thresholds.OverlapRatio),
		feedback:   store,
	}
}

// Feedback exposes the scanner's feedback store to the surrounding
// CLI/server layer.
func (s *Scanner) Feedback() *feedback.Store { return s.feedback }

// Detect runs every detector over one page of text and returns the merged,
// overlap-resolved, categorized result. It never fails: empty or malformed
// input yields an empty result. Output is deterministic for a fixed input
// and lexicon/feedback state.
func (s *Scanner) Detect(text string, pageNumber int) *detector.Result {
	if strings.TrimSpace(text) == "" {
		return detector.EmptyResult()
	}

	var all []detector.Detection
	for _, m := range s.matchers {
		all = append(all, m.FindMatches(text, pageNumber)...)
	}
	all = append(all, s.signatures.Detect(text, pageNumber)...)
	all = append(all, s.fields.Extract(text, pageNumber)...)
	all = append(all, s.names.Detect(text, pageNumber)...)
	all = append(all, s.feedback.DetectLearnedWords(text, pageNumber)...)

	// User-ignored terms are filtered from the combined list before
	// overlap resolution so they cannot displace kept spans.
	filtered := all[:0]
	for _, d := range all {
		if s.feedback.ShouldIgnore(d.Value) {
			continue
		}
		filtered = append(filtered, d)
	}

	resolved := s.resolver.Resolve(filtered)
	return buildResult(resolved)
}

// DetectCustom performs a literal case-insensitive search for an
// interactive "find & redact globally" term and returns non-overlapping
// matches with original casing.
func (s *Scanner) DetectCustom(text, searchTerm string) []detector.Detection {
	term := strings.ToLower(strings.TrimSpace(searchTerm))
	if term == "" || text == "" {
		return nil
	}

	lowerText := strings.ToLower(text)
	var out []detector.Detection

	from := 0
	for {
		i := strings.Index(lowerText[from:], term)
		if i < 0 {
			break
		}
		start := from + i
		end := start + len(term)
		out = append(out, detector.Detection{
			Category:    detector.CategoryCustom,
			DisplayName: "Zoekterm",
			Icon:        "🔍",
			Value:       text[start:end],
			StartIndex:  start,
			EndIndex:    end,
			Confidence:  detector.ConfidenceHigh,
			Selected:    true,
		})
		from = end
	}

	return out
}

// MergeExternal folds candidates from the external AI detector into a
// regex-based result. Candidates are located in the page text by literal
// case-insensitive search and pass the same exclusion, ignore and overlap
// rules as regex detections. A nil or empty candidate list returns the
// base result unchanged, so an AI failure never costs regex findings.
func (s *Scanner) MergeExternal(text string, pageNumber int, base *detector.Result, candidates []detector.ExternalCandidate) *detector.Result {
	if base == nil {
		base = detector.EmptyResult()
	}
	if len(candidates) == 0 || text == "" {
		return base
	}

	lowerText := strings.ToLower(text)
	merged := append([]detector.Detection(nil), base.All...)

	for _, cand := range candidates {
		value := strings.TrimSpace(cand.Value)
		if value == "" || s.feedback.ShouldIgnore(value) {
			continue
		}
		cat, ok := externalCategory(cand.Type)
		if !ok {
			continue
		}

		lowerValue := strings.ToLower(value)
		from := 0
		for {
			i := strings.Index(lowerText[from:], lowerValue)
			if i < 0 {
				break
			}
			start := from + i
			end := start + len(lowerValue)
			from = end

			// Name candidates still face the exclusion engine: the AI
			// detector is a supplement, not an override.
			if cat.ID == detector.CategoryName && s.excl.ShouldExclude(value, start, text) {
				continue
			}

			merged = append(merged, detector.Detection{
				Category:    cat.ID,
				DisplayName: cat.DisplayName,
				Icon:        cat.Icon,
				Value:       text[start:end],
				Page:        pageNumber,
				StartIndex:  start,
				EndIndex:    end,
				Confidence:  externalConfidence(cand.Confidence),
				Selected:    true,
			})
		}
	}

	return buildResult(s.resolver.Resolve(merged))
}

// ScanPages runs Detect over every page with a bounded worker fan-out and
// merges the per-page results into one document-level result. Safe because
// Detect only reads the shared lexicon and feedback state.
func (s *Scanner) ScanPages(pages []string) *detector.Result {
	if len(pages) == 0 {
		return detector.EmptyResult()
	}

	const maxWorkers = 4
	workers := min(maxWorkers, len(pages))

	results := make([]*detector.Result, len(pages))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.Detect(pages[i], i+1)
			}
		}()
	}
	for i := range pages {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var all []detector.Detection
	for _, r := range results {
		all = append(all, r.All...)
	}
	return buildResult(all)
}

// buildResult buckets resolved detections per category and computes stats.
func buildResult(resolved []detector.Detection) *detector.Result {
	result := detector.EmptyResult()
	result.All = resolved

	for _, d := range resolved {
		group, ok := result.ByCategory[d.Category]
		if !ok {
			group = &detector.CategoryGroup{Name: d.DisplayName, Icon: d.Icon}
			result.ByCategory[d.Category] = group
		}
		group.Items = append(group.Items, d)
	}

	result.Stats = detector.Stats{
		Total:      len(resolved),
		Categories: len(result.ByCategory),
	}
	return result
}

// CategoryOrder returns the bucket keys of a result in a fixed, readable
// order for formatters.
func CategoryOrder(result *detector.Result) []string {
	known := []string{
		detector.CategoryBSN,
		detector.CategoryIBAN,
		detector.CategoryEmail,
		detector.CategoryPhone,
		detector.CategoryPostalCode,
		detector.CategoryAddress,
		detector.CategoryCadastral,
		detector.CategorySignature,
		detector.CategoryInitials,
		detector.CategoryName,
		detector.CategoryField,
		detector.CategoryLearned,
		detector.CategoryCustom,
	}

	var order []string
	seen := make(map[string]bool)
	for _, id := range known {
		if _, ok := result.ByCategory[id]; ok {
			order = append(order, id)
			seen[id] = true
		}
	}

	// Categories introduced by external detectors keep a stable tail.
	var rest []string
	for id := range result.ByCategory {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

// externalCategory maps the external detector's type vocabulary onto the
// engine's categories.
func externalCategory(typ string) (detector.Category, bool) {
	switch strings.ToLower(strings.TrimSpace(typ)) {
	case "name", "naam", "person":
		return detector.Category{ID: detector.CategoryName, DisplayName: "Persoonsnaam", Icon: "👤"}, true
	case "phone", "telefoon":
		return detector.Category{ID: detector.CategoryPhone, DisplayName: "Telefoonnummer", Icon: "📞"}, true
	case "email", "e-mail":
		return detector.Category{ID: detector.CategoryEmail, DisplayName: "E-mailadres", Icon: "📧"}, true
	case "bsn":
		return detector.Category{ID: detector.CategoryBSN, DisplayName: "BSN", Icon: "🆔"}, true
	case "iban":
		return detector.Category{ID: detector.CategoryIBAN, DisplayName: "IBAN-rekeningnummer", Icon: "🏦"}, true
	case "address", "adres":
		return detector.Category{ID: detector.CategoryAddress, DisplayName: "Adres", Icon: "🏠"}, true
	default:
		return detector.Category{}, false
	}
}

// externalConfidence maps a numeric [0,1] confidence onto the engine's
// levels.
func externalConfidence(score float64) detector.Confidence {
	switch {
	case score >= 0.8:
		return detector.ConfidenceHigh
	case score >= 0.5:
		return detector.ConfidenceMedium
	default:
		return detector.ConfidenceLow
	}
}
