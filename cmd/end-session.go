package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/ironlog/internal/session"
	"github.com/misterclayt0n/ironlog/internal/workout"
	"github.com/spf13/cobra"
)

var endSessionCmd = &cobra.Command{
	Use:   "end-session",
	Short: "Finish the current workout and record it",
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
		if len(w.Exercises) == 0 {
			return fmt.Errorf("Add at least one exercise before finishing, or use `ironlog cancel-session`")
		}

		done, err := a.ctrl.Complete(ctx)
		if errors.Is(err, session.ErrNotRecorded) {
			// The session is closed either way; the record may be missing.
			color.Yellow("⚠️  Workout finished but could not be saved: %v", err)
		} else if err != nil {
			return fmt.Errorf("Failed to finish session: %w", err)
		} else {
			fmt.Println("✅ Session saved successfully")
		}

		fmt.Printf("   Duration: %s | Sets: %d | Volume: %.1f kg\n",
			workout.FormatDuration(workout.Duration(done, time.Now())),
			workout.CompletedSets(done),
			workout.TotalVolume(done),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(endSessionCmd)
}
