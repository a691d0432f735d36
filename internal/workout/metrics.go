package workout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/misterclayt0n/ironlog/internal/models"
)

// TotalVolume sums reps x weight over completed sets only.
func TotalVolume(w *models.Workout) float64 {
	if w == nil {
		return 0
	}
	var total float64
	for _, ex := range w.Exercises {
		total += ExerciseVolume(ex)
	}
	return total
}

func ExerciseVolume(ex models.Exercise) float64 {
	var total float64
	for _, s := range ex.Sets {
		if s.Completed {
			total += s.CurrentReps * s.CurrentWeight
		}
	}
	return total
}

func CompletedSets(w *models.Workout) int {
	if w == nil {
		return 0
	}
	n := 0
	for _, ex := range w.Exercises {
		for _, s := range ex.Sets {
			if s.Completed {
				n++
			}
		}
	}
	return n
}

// Duration is completedAt (or now, for an open workout) minus startTime.
func Duration(w *models.Workout, now time.Time) time.Duration {
	if w == nil {
		return 0
	}
	end := models.Millis(now)
	if w.CompletedAt != nil {
		end = *w.CompletedAt
	}
	return time.Duration(end-w.StartTime) * time.Millisecond
}

// FormatDuration renders d as H:MM:SS, or M:SS under an hour.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	h, m, s := secs/3600, (secs%3600)/60, secs%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// ParseNonNegative coerces user input to a non-negative number. Anything that
// doesn't parse, or parses negative, becomes 0.
func ParseNonNegative(input string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
