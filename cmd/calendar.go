package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/ironlog/internal/models"
	"github.com/misterclayt0n/ironlog/internal/workout"
	"github.com/spf13/cobra"
)

// details is a flag to enable verbose workout details.
var details bool

// calendarCmd prints the month grid. Training days are colored by the
// template the workout was started from; a legend follows the grid.
var calendarCmd = &cobra.Command{
	Use:   "calendar [month] [year]",
	Short: "Display a calendar of training days with a legend mapping colors to templates",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Determine month and year (default to current month/year).
		now := time.Now()
		month := now.Month()
		year := now.Year()
		if len(args) >= 1 {
			m, err := strconv.Atoi(args[0])
			if err != nil || m < 1 || m > 12 {
				return fmt.Errorf("invalid month: %s", args[0])
			}
			month = time.Month(m)
		}
		if len(args) == 2 {
			y, err := strconv.Atoi(args[1])
			if err != nil || y < 1 {
				return fmt.Errorf("invalid year: %s", args[1])
			}
			year = y
		}

		firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
		lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

		ctx := cmd.Context()
		_, st, err := openStorage(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		all, err := st.RecentWorkouts(ctx, 0)
		if err != nil {
			return fmt.Errorf("failed to get workouts: %w", err)
		}
		templates, err := st.ListTemplates(ctx)
		if err != nil {
			return err
		}
		templateNames := make(map[string]string, len(templates))
		for _, t := range templates {
			templateNames[t.ID] = t.Name
		}
		labelOf := func(w models.Workout) string {
			if w.TemplateID != nil {
				if n, ok := templateNames[*w.TemplateID]; ok {
					return n
				}
			}
			return "Default"
		}

		// Group workouts of this month by day and collect the labels.
		byDay := make(map[int][]models.Workout)
		var labels []string
		seen := make(map[string]bool)
		for _, w := range all {
			start := w.Started().In(time.Local)
			if start.Year() != year || start.Month() != month {
				continue
			}
			byDay[start.Day()] = append(byDay[start.Day()], w)
			if l := labelOf(w); !seen[l] {
				seen[l] = true
				labels = append(labels, l)
			}
		}
		sort.Strings(labels)

		// Define a fixed palette of colors.
		colorPalette := []color.Attribute{
			color.FgRed, color.FgGreen, color.FgYellow,
			color.FgBlue, color.FgMagenta, color.FgCyan,
		}
		labelColors := make(map[string]func(a ...any) string)
		for i, l := range labels {
			labelColors[l] = color.New(colorPalette[i%len(colorPalette)]).SprintFunc()
		}

		// Print the calendar header.
		fmt.Println(centerText(fmt.Sprintf("%s %d", month.String(), year), 20))
		fmt.Println("Su Mo Tu We Th Fr Sa")

		// Determine weekday of first day (0 = Sunday).
		weekday := int(firstOfMonth.Weekday())
		for range weekday {
			fmt.Print("   ")
		}

		for day := 1; day <= lastOfMonth.Day(); day++ {
			dayStr := fmt.Sprintf("%2d", day)
			if ws, ok := byDay[day]; ok {
				// Oldest workout of the day picks the color.
				dayStr = labelColors[labelOf(ws[len(ws)-1])](dayStr + "*")
			}
			fmt.Printf("%s ", dayStr)
			weekday++
			if weekday%7 == 0 {
				fmt.Println()
			}
		}
		fmt.Print("\n\n")

		if len(labels) > 0 {
			fmt.Println("Legend:")
			for _, l := range labels {
				fmt.Printf("  %s: %s\n", labelColors[l]("██"), l)
			}
		}

		if details {
			fmt.Println("\nWorkout Details:")
			var days []int
			for d := range byDay {
				days = append(days, d)
			}
			sort.Ints(days)
			for _, day := range days {
				dayDate := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
				fmt.Printf("\n%s:\n", dayDate.Format("Mon, 02 Jan 2006"))
				ws := byDay[day]
				for i := len(ws) - 1; i >= 0; i-- {
					w := ws[i]
					fmt.Printf("  %s at %s - %s (%d sets, %.1f kg)\n",
						labelOf(w),
						w.Started().Format("15:04"),
						w.Finished().Format("15:04"),
						workout.CompletedSets(&w),
						workout.TotalVolume(&w),
					)
				}
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(calendarCmd)
	calendarCmd.Flags().BoolVarP(&details, "details", "d", false, "Print additional workout details")
}
