package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/ironlog/internal/utils"
	"github.com/misterclayt0n/ironlog/internal/workout"
	"github.com/spf13/cobra"
)

var limitSessions int

var showExCmd = &cobra.Command{
	Use:   "show-exercise [exercise-name]",
	Short: "Display the best estimated 1RM and recent history of an exercise",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exName := strings.Join(args, " ")

		ctx := cmd.Context()
		_, st, err := openStorage(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		history, err := st.ExerciseHistory(ctx, exName, limitSessions)
		if err != nil {
			return fmt.Errorf("failed to retrieve exercise history: %w", err)
		}

		// Define color functions.
		boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
		boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		magenta := color.New(color.FgMagenta).SprintFunc()
		blue := color.New(color.FgBlue).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		if len(history) == 0 {
			fmt.Println(magenta("No workouts found with " + exName))
			return nil
		}

		var best float64
		for _, p := range history {
			for _, s := range p.Sets {
				if s.Completed {
					best = max(best, workout.CalculateEpley1RM(s.CurrentWeight, s.CurrentReps))
				}
			}
		}
		fmt.Printf("%s %s\n", boldGreen("History for"), history[0].Name)
		if best > 0 {
			fmt.Printf("  %s: %.1fkg\n", boldCyan("Best estimated 1RM"), best)
		}

		for i, p := range history {
			fmt.Printf("\n%s %d. %s\n", boldGreen("Workout"), i+1, utils.FormatDay(p.StartTime))
			fmt.Printf("   %s: %s\n", blue("Start Time"), utils.FormatMillis(p.StartTime))
			fmt.Printf("   %s: %s\n", red("Duration"), workout.FormatDuration(time.Duration(p.CompletedAt-p.StartTime)*time.Millisecond))

			fmt.Println("   " + boldCyan("Sets:"))
			fmt.Printf("      %-4s | %-12s | %-5s | %s\n", "Set", "Weight (kg)", "Reps", "Done")
			fmt.Println("      " + strings.Repeat("─", 36))
			for _, set := range p.Sets {
				done := ""
				if set.Completed {
					done = "✓"
				}
				fmt.Printf("      %-4d | %-12.1f | %-5g | %s\n", set.SetNumber, set.CurrentWeight, set.CurrentReps, done)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showExCmd)
	showExCmd.Flags().IntVarP(&limitSessions, "limit", "l", 5, "Number of workouts to display")
}
