package workout

import "github.com/misterclayt0n/ironlog/internal/models"

func CalculateEpley1RM(weight, reps float64) float64 {
	if reps == 0 {
		return 0
	}

	return weight * (1 + reps/30)
}

// BestEstimated1RM returns the highest Epley estimate among completed sets.
func BestEstimated1RM(ex models.Exercise) float64 {
	var best float64
	for _, s := range ex.Sets {
		if !s.Completed {
			continue
		}
		best = max(best, CalculateEpley1RM(s.CurrentWeight, s.CurrentReps))
	}
	return best
}
