package cmd

import (
	"fmt"

	"github.com/misterclayt0n/ironlog/internal/models"
	"github.com/misterclayt0n/ironlog/internal/workout"
	"github.com/spf13/cobra"
)

var (
	setWeight string
	setReps   string
)

var addSetCmd = &cobra.Command{
	Use:   "add-set [exercise-index]",
	Short: "Add a new blank set to an exercise in the current workout",
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
		if !a.ctrl.AddSet(ex.ID) {
			return fmt.Errorf("Failed to add set")
		}

		fmt.Printf("✅ Added set %d to '%s'\n", len(ex.Sets)+1, ex.Name)
		return nil
	},
}

var deleteSetCmd = &cobra.Command{
	Use:   "delete-set [exercise-index] [set-index]",
	Short: "Remove a set; the remaining sets are renumbered",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		ex, set, err := resolveSet(a, args)
		if err != nil {
			return err
		}
		if len(ex.Sets) == 1 {
			return fmt.Errorf("An exercise needs at least one set. Use `ironlog delete-exercise` instead")
		}
		if !a.ctrl.DeleteSet(ex.ID, set.ID) {
			return fmt.Errorf("Failed to delete set")
		}

		fmt.Printf("✅ Removed set %d from '%s'\n", set.SetNumber, ex.Name)
		return nil
	},
}

var editSetCmd = &cobra.Command{
	Use:   "edit-set [exercise-index] [set-index]",
	Short: "Edit reps and weight of a set in the current workout",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		ex, set, err := resolveSet(a, args)
		if err != nil {
			return err
		}

		reps, weight := fmt.Sprint(set.CurrentReps), fmt.Sprint(set.CurrentWeight)
		if cmd.Flags().Changed("reps") {
			reps = setReps
		}
		if cmd.Flags().Changed("weight") {
			weight = setWeight
		}
		if !a.ctrl.UpdateSet(ex.ID, set.ID, reps, weight) {
			return fmt.Errorf("Failed to update set")
		}

		s := findSet(a.ctrl.Workout(), ex.ID, set.ID)
		fmt.Printf("✅ Set %d of '%s': %gkg × %g\n", set.SetNumber, ex.Name, s.CurrentWeight, s.CurrentReps)
		return nil
	},
}

var completeSetCmd = &cobra.Command{
	Use:   "complete-set [exercise-index] [set-index]",
	Short: "Mark a set as done and start the rest timer",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		ex, set, err := resolveSet(a, args)
		if err != nil {
			return err
		}
		if set.Completed {
			fmt.Printf("Set %d of '%s' is already done\n", set.SetNumber, ex.Name)
			return nil
		}
		if !a.ctrl.SetCompleted(ex.ID, set.ID, true) {
			return fmt.Errorf("Failed to complete set")
		}

		fmt.Printf("✅ Set %d of '%s' done: %gkg × %g\n", set.SetNumber, ex.Name, set.CurrentWeight, set.CurrentReps)
		if a.rest.Active() {
			fmt.Printf("⏱  Rest %s. Run `ironlog rest` to watch it.\n", workout.FormatDuration(a.rest.Remaining()))
		}
		return nil
	},
}

var uncompleteSetCmd = &cobra.Command{
	Use:   "uncomplete-set [exercise-index] [set-index]",
	Short: "Mark a set as not done",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		ex, set, err := resolveSet(a, args)
		if err != nil {
			return err
		}
		if !a.ctrl.SetCompleted(ex.ID, set.ID, false) {
			return fmt.Errorf("Failed to update set")
		}

		fmt.Printf("✅ Set %d of '%s' marked as not done\n", set.SetNumber, ex.Name)
		return nil
	},
}

func resolveSet(a *app, args []string) (models.Exercise, models.Set, error) {
	w, err := a.active()
	if err != nil {
		return models.Exercise{}, models.Set{}, fmt.Errorf("No active session")
	}
	ex, err := exerciseAt(w, args[0])
	if err != nil {
		return models.Exercise{}, models.Set{}, err
	}
	set, err := setAt(ex, args[1])
	if err != nil {
		return models.Exercise{}, models.Set{}, err
	}
	return ex, set, nil
}

func findSet(w *models.Workout, exerciseID, setID string) models.Set {
	if w == nil {
		return models.Set{}
	}
	for _, ex := range w.Exercises {
		if ex.ID != exerciseID {
			continue
		}
		for _, s := range ex.Sets {
			if s.ID == setID {
				return s
			}
		}
	}
	return models.Set{}
}

func init() {
	editSetCmd.Flags().StringVarP(&setWeight, "weight", "w", "", "Weight used")
	editSetCmd.Flags().StringVarP(&setReps, "reps", "r", "", "Reps performed")

	rootCmd.AddCommand(addSetCmd)
	rootCmd.AddCommand(deleteSetCmd)
	rootCmd.AddCommand(editSetCmd)
	rootCmd.AddCommand(completeSetCmd)
	rootCmd.AddCommand(uncompleteSetCmd)
}
