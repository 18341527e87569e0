// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package overlap reduces the union of all detector outputs for one page to
// a set without redundant overlapping spans, preferring longer and more
// specific matches.
package overlap

import (
	"sort"

	"avg-scan/internal/detector"
)

// DefaultRatio is the overlap fraction of the shorter span above which two
// partially overlapping detections collapse into the longer one.
const DefaultRatio = 0.8

// Resolver deduplicates overlapping detections.
type Resolver struct {
	ratio float64
}

// NewResolver creates a resolver with the given overlap ratio; values
// outside (0,1] fall back to DefaultRatio.
func NewResolver(ratio float64) *Resolver {
	if ratio <= 0 || ratio > 1 {
		ratio = DefaultRatio
	}
	return &Resolver{ratio: ratio}
}

// Resolve sorts candidates by (startIndex asc, span length desc) and walks
// them once, keeping a lastKept pointer. Candidates fully contained in the
// last kept span are dropped; partial overlaps exceeding the ratio of the
// shorter span keep only the longer detection. The result is deterministic
// for a fixed input set: after resolution no two retained detections
// overlap by more than the ratio of the shorter one, and containment always
// resolves to the larger span.
func (r *Resolver) Resolve(in []detector.Detection) []detector.Detection {
	if len(in) <= 1 {
		return in
	}

	sorted := make([]detector.Detection, len(in))
	copy(sorted, in)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].StartIndex != sorted[j].StartIndex {
			return sorted[i].StartIndex < sorted[j].StartIndex
		}
		return sorted[i].Length() > sorted[j].Length()
	})

	out := make([]detector.Detection, 0, len(sorted))
	out = append(out, sorted[0])

	for _, cand := range sorted[1:] {
		last := &out[len(out)-1]

		if last.Contains(cand) {
			continue
		}

		overlapLen := last.Overlap(cand)
		if overlapLen > 0 {
			shorter := min(last.Length(), cand.Length())
			if shorter > 0 && float64(overlapLen) > r.ratio*float64(shorter) {
				if cand.Length() > last.Length() {
					*last = cand
				}
				continue
			}
		}

		out = append(out, cand)
	}

	return out
}
