package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/ironlog/internal/models"
	"github.com/misterclayt0n/ironlog/internal/utils"
	"github.com/misterclayt0n/ironlog/internal/workout"
	"github.com/spf13/cobra"
)

var showSessionCmd = &cobra.Command{
	Use:   "show-session",
	Short: "Show current session status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		w, err := a.active()
		if err != nil {
			return fmt.Errorf("No active session")
		}

		// Define color functions.
		cyan := color.New(color.FgCyan).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()

		// Print header info.
		title := "Empty workout"
		if w.TemplateID != nil {
			if tmpl, err := a.db.GetTemplate(ctx, *w.TemplateID); err == nil {
				title = tmpl.Name
			} else {
				title = "Template workout"
			}
		}
		fmt.Printf("%s\n", green(title))
		fmt.Printf("\n%s %s\n", red("Started:"), utils.FormatMillis(w.StartTime))
		fmt.Printf("%s %s\n", red("Duration:"), workout.FormatDuration(workout.Duration(w, time.Now())))
		fmt.Printf("%s %d sets | %.1f kg\n", yellow("Done:"), workout.CompletedSets(w), workout.TotalVolume(w))
		if a.rest.Active() {
			fmt.Printf("%s %s left\n", cyan("Rest:"), workout.FormatDuration(a.rest.Remaining()))
		}
		fmt.Println()

		if len(w.Exercises) == 0 {
			fmt.Println("No exercises yet. Add one with `ironlog add-exercise NAME`.")
			return nil
		}

		// Define table indent and column widths.
		tableIndent := "   "
		setColWidth := 6
		currentColWidth := 20
		prevColWidth := 15
		doneColWidth := 6
		widths := []int{setColWidth, currentColWidth, prevColWidth, doneColWidth}

		horizontalBorder := tableBorder(tableIndent, "┌", "┬", "┐", widths)
		headerLine := fmt.Sprintf(tableIndent+"│%-*s│%-*s│%-*s│%-*s│",
			setColWidth, "Set",
			currentColWidth, "Current",
			prevColWidth, "Prev Session",
			doneColWidth, "Done",
		)
		midBorder := tableBorder(tableIndent, "├", "┼", "┤", widths)
		bottomBorder := tableBorder(tableIndent, "└", "┴", "┘", widths)

		for i, ex := range w.Exercises {
			fmt.Printf("%d - %s\n", i+1, cyan(ex.Name))
			if best := workout.BestEstimated1RM(ex); best > 0 {
				fmt.Printf("   %s %.1fkg\n", cyan("Estimated 1RM:"), best)
			}

			fmt.Println(horizontalBorder)
			fmt.Println(headerLine)
			fmt.Println(midBorder)
			for _, set := range ex.Sets {
				printSetRow(set, tableIndent, setColWidth, currentColWidth, prevColWidth, doneColWidth)
			}
			fmt.Println(bottomBorder)
			fmt.Println()
		}
		return nil
	},
}

func tableBorder(indent, left, mid, right string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w)
	}
	return indent + left + strings.Join(parts, mid) + right
}

func printSetRow(set models.Set, tableIndent string, setColWidth, currentColWidth, prevColWidth, doneColWidth int) {
	// Build previous set string.
	prevSet := "N/A"
	if set.PreviousReps != nil && set.PreviousWeight != nil {
		if *set.PreviousWeight == 0 && *set.PreviousReps == 0 {
			prevSet = "First time"
		} else {
			prevSet = fmt.Sprintf("%.1fkg × %g", *set.PreviousWeight, *set.PreviousReps)
		}
	}

	// Build current set string.
	var setStr string
	if set.CurrentWeight == 0 && set.CurrentReps == 0 {
		setStr = "-"
	} else {
		setStr = fmt.Sprintf("%.1fkg × %g", set.CurrentWeight, set.CurrentReps)
		if set.PreviousReps != nil && set.PreviousWeight != nil &&
			workout.CalculateEpley1RM(set.CurrentWeight, set.CurrentReps) > workout.CalculateEpley1RM(*set.PreviousWeight, *set.PreviousReps) {
			setStr += " ★"
		}
	}

	done := ""
	if set.Completed {
		done = "✓"
	}

	fmt.Printf(tableIndent+"│%-*d│%-*s│%-*s│%-*s│\n",
		setColWidth, set.SetNumber,
		currentColWidth, setStr,
		prevColWidth, prevSet,
		doneColWidth, done,
	)
}

func init() {
	rootCmd.AddCommand(showSessionCmd)
}
