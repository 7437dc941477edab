// Package ranking computes the global "hot" score for aggregated items.
//
// The score combines three signals: source trust weight, freshness (a linear
// decay that reaches zero at 72 hours), and engagement (folded in
// logarithmically so large vote counts do not dominate). Items older than the
// freshness window are not excluded, they just earn no freshness. The score is
// the sort key of the default ranking; the "latest" ranking orders purely by
// publication time and ignores it.
package ranking

import (
	"math"
	"time"
)

// freshnessWindowHours is how long an item keeps earning freshness.
const freshnessWindowHours = 72.0

// defaultAgeHours is assumed when an item has no publication time.
const defaultAgeHours = 24.0

// weightFactor scales the source trust weight into the score.
const weightFactor = 10.0

// engagementFactor scales the log-engagement boost.
const engagementFactor = 8.0

// Score computes the ranking value for one item.
// A nil publishedAt is treated as exactly 24 hours old.
func Score(sourceWeight float64, publishedAt *time.Time, engagement int, now time.Time) float64 {
	ageHours := defaultAgeHours
	if publishedAt != nil {
		ageHours = now.Sub(*publishedAt).Hours()
		if ageHours < 0 {
			ageHours = 0
		}
	}

	freshness := freshnessWindowHours - ageHours
	if freshness < 0 {
		freshness = 0
	}

	boost := 0.0
	if engagement > 0 {
		boost = math.Log10(float64(engagement)+1) * engagementFactor
	}

	return sourceWeight*weightFactor + freshness + boost
}
