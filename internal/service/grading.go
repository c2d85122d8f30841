package service

import (
	"math"

	"github.com/NagaNitishChowdary/Study-Buddy-Agent/internal/models"
)

// DefaultWeakThreshold is the score below which a subject needs remedial
// support.
const DefaultWeakThreshold = 60

// Performance tiers derived from a combined test score.
const (
	TierNeedsImprovement = "needs improvement"
	TierDeveloping       = "developing"
	TierProficient       = "proficient"
)

// WeakSubjects returns the subjects scoring strictly between 0 and the
// threshold, in canonical subject order. A score of exactly 0 means "not yet
// recorded" and is never weak; this mirrors the store, where an explicit zero
// is indistinguishable from an absent score.
func WeakSubjects(scores map[string]int, threshold int) []string {
	if threshold <= 0 {
		threshold = DefaultWeakThreshold
	}
	weak := make([]string, 0, len(models.Subjects))
	for _, subject := range models.Subjects {
		score := scores[subject]
		if score > 0 && score < threshold {
			weak = append(weak, subject)
		}
	}
	return weak
}

// CombineScores averages the quiz and evaluated scores, rounding half up.
// Inputs are assumed already clamped to [0,100].
func CombineScores(quiz, evaluated int) int {
	return int(math.Round(float64(quiz+evaluated) / 2))
}

// PerformanceTier buckets a combined score: below 60 needs improvement,
// 60 through 75 inclusive developing, above 75 proficient.
func PerformanceTier(total int) string {
	switch {
	case total < 60:
		return TierNeedsImprovement
	case total <= 75:
		return TierDeveloping
	default:
		return TierProficient
	}
}
