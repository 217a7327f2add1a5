// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"math"

	"github.com/pdiddy/scholar-engine/pkg/types"
)

// Scoring weights. Kept as named constants so they can be tuned and tested
// independently of any I/O.
const (
	weightPerSource      = 0.2
	weightHasPapers      = 0.3
	weightCompleteness   = 0.1
	maxCompletenessBonus = 0.2
)

// Score computes the confidence score for a merged profile:
//
//	min(1.0, 0.2×|sources| + 0.3×has_papers + completeness_bonus)
//
// where has_papers is 1 when the merged paper count is positive, and the
// completeness bonus grants 0.1 each for a non-empty ORCID and a non-empty
// affiliation list, capped at 0.2. The result is clamped to [0, 1] and
// rounded to two decimals. Monotonically non-decreasing in the number of
// sources, holding the other merged fields fixed.
func Score(p types.AuthorProfile) float64 {
	score := weightPerSource * float64(len(p.Sources))

	if p.PaperCount != nil && *p.PaperCount > 0 {
		score += weightHasPapers
	}

	bonus := 0.0
	if p.ORCID != "" {
		bonus += weightCompleteness
	}
	if len(p.Affiliations) > 0 {
		bonus += weightCompleteness
	}
	if bonus > maxCompletenessBonus {
		bonus = maxCompletenessBonus
	}
	score += bonus

	if score > 1.0 {
		score = 1.0
	}
	if score < 0.0 {
		score = 0.0
	}
	return math.Round(score*100) / 100
}
