package scoring

import (
	"math"

	"github.com/samber/lo"

	"github.com/yungbote/speechcoach-backend/internal/domain"
)

// Overall is the mean of the five criterion scores rounded to one decimal.
// It is always recomputed, never stored.
func Overall(scores domain.Scores) float64 {
	if len(domain.Criteria) == 0 {
		return 0
	}
	sum := lo.SumBy(domain.Criteria, func(c domain.Criterion) int { return scores[c] })
	mean := float64(sum) / float64(len(domain.Criteria))
	return math.Round(mean*10) / 10
}

type Item struct {
	Key   domain.Criterion `json:"key"`
	Label string           `json:"label"`
	Score int              `json:"score"`
}

// Breakdown lists the scores in rubric order.
func Breakdown(scores domain.Scores) []Item {
	return lo.Map(domain.Criteria, func(c domain.Criterion, _ int) Item {
		return Item{Key: c, Label: c.Label(), Score: scores[c]}
	})
}

// Band gives a short verbal reading of an overall score.
func Band(overall float64) string {
	switch {
	case overall >= 8.5:
		return "excellent"
	case overall >= 7:
		return "good"
	case overall >= 5:
		return "fair"
	default:
		return "needs work"
	}
}
