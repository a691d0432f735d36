package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var exerciseSets int

var addExerciseCmd = &cobra.Command{
	Use:   "add-exercise [name]",
	Short: "Add an exercise to the current workout",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		if _, err := a.active(); err != nil {
			return fmt.Errorf("No active session")
		}

		name := strings.Join(args, " ")
		ex, ok := a.ctrl.AddExercise(ctx, name)
		if !ok {
			return fmt.Errorf("Exercise name cannot be empty")
		}
		for i := 1; i < exerciseSets; i++ {
			a.ctrl.AddSet(ex.ID)
		}

		fmt.Printf("✅ Added exercise '%s'\n", ex.Name)
		if s := ex.Sets[0]; s.PreviousReps != nil && s.PreviousWeight != nil {
			fmt.Printf("   Last time: %gkg × %g\n", *s.PreviousWeight, *s.PreviousReps)
		}
		return nil
	},
}

var renameExerciseCmd = &cobra.Command{
	Use:   "rename-exercise [exercise-index] [new-name]",
	Short: "Rename an exercise in the current workout",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		w, err := a.active()
		if err != nil {
			return fmt.Errorf("No active session currently")
		}
		ex, err := exerciseAt(w, args[0])
		if err != nil {
			return err
		}

		name := strings.TrimSpace(strings.Join(args[1:], " "))
		if name == "" {
			return fmt.Errorf("Exercise name cannot be empty")
		}
		old := ex.Name
		ex.Name = name
		if !a.ctrl.UpdateExercise(ex.ID, ex) {
			return fmt.Errorf("Failed to rename exercise")
		}

		fmt.Printf("✅ Renamed '%s' to '%s'\n", old, name)
		return nil
	},
}

var deleteExerciseCmd = &cobra.Command{
	Use:   "delete-exercise [exercise-index]",
	Short: "Remove an exercise and its sets from the current workout",
	Args:  cobra.ExactArgs(1),
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
		ex, err := exerciseAt(w, args[0])
		if err != nil {
			return err
		}
		if !a.ctrl.DeleteExercise(ex.ID) {
			return fmt.Errorf("Failed to delete exercise")
		}

		fmt.Printf("✅ Removed '%s' from the workout\n", ex.Name)
		return nil
	},
}

func init() {
	addExerciseCmd.Flags().IntVarP(&exerciseSets, "sets", "s", 1, "Number of sets to start with")

	rootCmd.AddCommand(addExerciseCmd)
	rootCmd.AddCommand(renameExerciseCmd)
	rootCmd.AddCommand(deleteExerciseCmd)
}
