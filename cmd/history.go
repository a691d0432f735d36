package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/ironlog/internal/models"
	"github.com/misterclayt0n/ironlog/internal/workout"
	"github.com/spf13/cobra"
)

var (
	filterTemplate string
	filterDay      string
	historyLimit   int
)

// historyCmd shows finished workouts grouped by day, newest first.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Display finished workouts, optionally filtered by template and/or day",
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

		templates, err := st.ListTemplates(ctx)
		if err != nil {
			return err
		}
		templateNames := make(map[string]string, len(templates))
		for _, t := range templates {
			templateNames[t.ID] = t.Name
		}
		nameOf := func(w models.Workout) string {
			if w.TemplateID == nil {
				return "Empty workout"
			}
			if n, ok := templateNames[*w.TemplateID]; ok {
				return n
			}
			return "Deleted template"
		}

		// Case insensitive filtering by template name.
		if filterTemplate != "" {
			var filtered []models.Workout
			for _, w := range workouts {
				if strings.EqualFold(nameOf(w), filterTemplate) {
					filtered = append(filtered, w)
				}
			}
			workouts = filtered
		}

		// If filtering by day.
		if filterDay != "" {
			parsedDay, err := time.ParseInLocation("2006-01-02", filterDay, time.Local)
			if err != nil {
				parsedDay, err = time.ParseInLocation("02/01/06", filterDay, time.Local)
			}
			if err != nil {
				return fmt.Errorf("failed to parse day: %w", err)
			}

			var filtered []models.Workout
			for _, w := range workouts {
				if w.Started().Format("2006-01-02") == parsedDay.Format("2006-01-02") {
					filtered = append(filtered, w)
				}
			}
			workouts = filtered
		}

		if historyLimit > 0 && len(workouts) > historyLimit {
			workouts = workouts[:historyLimit]
		}
		if len(workouts) == 0 {
			fmt.Println("No workouts found")
			return nil
		}

		yellow := color.New(color.FgYellow).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()

		lastDay := ""
		for _, w := range workouts {
			day := w.Started().Format("2006-01-02")
			if day != lastDay {
				fmt.Printf("%s %s\n", yellow("Date:"), day)
				lastDay = day
			}
			fmt.Printf("  %s | Start: %s | Duration: %s | Sets: %d | Volume: %.1f kg\n",
				cyan(nameOf(w)),
				w.Started().Format("15:04"),
				workout.FormatDuration(workout.Duration(&w, time.Now())),
				workout.CompletedSets(&w),
				workout.TotalVolume(&w),
			)
			for _, ex := range w.Exercises {
				fmt.Printf("      • %s: %s\n", ex.Name, summarizeSets(ex))
			}
		}
		return nil
	},
}

// summarizeSets renders the completed sets of ex as "60kg × 8, 60kg × 7".
func summarizeSets(ex models.Exercise) string {
	var parts []string
	for _, s := range ex.Sets {
		if s.Completed {
			parts = append(parts, fmt.Sprintf("%gkg × %g", s.CurrentWeight, s.CurrentReps))
		}
	}
	if len(parts) == 0 {
		return "no completed sets"
	}
	return strings.Join(parts, ", ")
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVarP(&filterTemplate, "template", "t", "", "Filter by template name (case insensitive)")
	historyCmd.Flags().StringVarP(&filterDay, "day", "d", "", "Filter by day (e.g. 2025-02-07 or 07/02/25)")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Show at most this many workouts")
}
