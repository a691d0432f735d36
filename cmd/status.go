package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/ironlog/internal/models"
	"github.com/misterclayt0n/ironlog/internal/workout"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show totals: weight lifted, workout count, gym hours, week streak and sets per exercise (current week)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, st, err := openStorage(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		workouts, err := st.RecentWorkouts(ctx, 0)
		if err != nil {
			return fmt.Errorf("failed to retrieve workouts: %w", err)
		}

		var totalWeight float64
		var totalDuration time.Duration
		setsThisWeek := make(map[string]int)
		now := time.Now()
		currentYear, currentWeek := now.ISOWeek()

		// Aggregate data from each workout.
		for i := range workouts {
			w := &workouts[i]
			totalWeight += workout.TotalVolume(w)
			totalDuration += workout.Duration(w, now)

			// If the workout is in the current ISO week, tally completed sets by exercise.
			year, week := w.Started().ISOWeek()
			if year != currentYear || week != currentWeek {
				continue
			}
			for _, ex := range w.Exercises {
				for _, s := range ex.Sets {
					if s.Completed {
						setsThisWeek[ex.Name]++
					}
				}
			}
		}

		printBoxedHeader("STATUS")

		printMetric("Total weight lifted", fmt.Sprintf("%.1f kg", totalWeight))
		printMetric("Total workouts", len(workouts))
		printMetric("Total time at gym", totalDuration.Round(time.Minute))
		printMetric("Week streak", fmt.Sprintf("%d weeks", computeWeekStreak(workouts, now)))
		fmt.Println()

		header := color.New(color.FgGreen, color.Bold).Sprintf("Sets per exercise (current week):")
		fmt.Println(header)
		var names []string
		for n := range setsThisWeek {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Printf("  • %s: %d sets\n", color.New(color.FgMagenta, color.Bold).Sprint(n), setsThisWeek[n])
		}
		fmt.Println()

		return nil
	},
}

// printBoxedHeader prints the title in a Unicode box with a fixed width.
func printBoxedHeader(title string) {
	width := 40
	cyanBold := color.New(color.FgCyan, color.Bold).SprintFunc()
	border := strings.Repeat("═", width)
	fmt.Println(cyanBold("╔" + border + "╗"))
	fmt.Println(cyanBold("║" + centerText(title, width) + "║"))
	fmt.Println(cyanBold("╚" + border + "╝"))
}

func centerText(s string, width int) string {
	if len(s) >= width {
		return s
	}
	padding := (width - len(s)) / 2
	return strings.Repeat(" ", padding) + s + strings.Repeat(" ", width-len(s)-padding)
}

// printMetric prints a label and value using bold yellow for the label.
func printMetric(label string, value any) {
	yellowBold := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Printf("  %s: %v\n", yellowBold(label), value)
}

// computeWeekStreak counts consecutive ISO weeks, ending with the week of now,
// that have at least one workout.
func computeWeekStreak(workouts []models.Workout, now time.Time) int {
	weekSet := make(map[string]bool)
	for _, w := range workouts {
		year, week := w.Started().ISOWeek()
		weekSet[fmt.Sprintf("%d-%02d", year, week)] = true
	}

	streak := 0
	year, week := now.ISOWeek()
	for weekSet[fmt.Sprintf("%d-%02d", year, week)] {
		streak++
		now = now.AddDate(0, 0, -7)
		year, week = now.ISOWeek()
	}
	return streak
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
