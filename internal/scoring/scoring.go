// Package scoring computes audit scores from sampled defects and manual
// deductions. All functions are pure; they are recomputed on every change
// rather than cached.
package scoring

import (
	"math"

	"github.com/opsdeck/qcdesk-backend/internal/catalog"
	"github.com/opsdeck/qcdesk-backend/internal/domain/evaluation"
)

const baseScore = 100

// SampleScore is 100 minus the sample's own deductions, floored at 0.
// Labels missing from the catalog contribute nothing.
func SampleScore(cat *catalog.Catalog, errorLabels []string) int {
	total := 0
	for _, label := range errorLabels {
		ded, ok := cat.Deduction(label)
		if !ok {
			continue
		}
		total += ded
	}
	score := baseScore - total
	if score < 0 {
		score = 0
	}
	return score
}

// Rescore recomputes a sample's derived fields after its error set changed,
// keeping the invariant IsClean == (no errors).
func Rescore(cat *catalog.Catalog, sample *evaluation.SampleResult) {
	sample.Score = SampleScore(cat, sample.Errors)
	sample.IsClean = len(sample.Errors) == 0
}

// ComputeScore produces the final audit score. With samples present the base
// is the rounded mean of the per-sample scores; otherwise the audit starts
// from 100. Manual QC deductions apply on top, floored at 0; unknown labels
// are data-integrity no-ops.
func ComputeScore(cat *catalog.Catalog, samples []evaluation.SampleResult, manualQC bool, manualErrors []string) int {
	score := baseScore
	if len(samples) > 0 {
		sum := 0
		for _, s := range samples {
			sum += s.Score
		}
		score = int(math.Round(float64(sum) / float64(len(samples))))
	}
	if manualQC {
		for _, label := range manualErrors {
			ded, ok := cat.Deduction(label)
			if !ok {
				continue
			}
			score -= ded
		}
		if score < 0 {
			score = 0
		}
	}
	return score
}
