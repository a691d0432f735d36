package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/misterclayt0n/ironlog/internal/tui"
	"github.com/misterclayt0n/ironlog/internal/workout"
	"github.com/spf13/cobra"
)

var restCmd = &cobra.Command{
	Use:   "rest",
	Short: "Watch the running rest countdown",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		if !a.rest.Active() {
			fmt.Println("No rest timer running. Complete a set to start one.")
			return nil
		}

		final, err := tea.NewProgram(tui.NewRestModel(ctx, a.rest)).Run()
		if err != nil {
			return fmt.Errorf("Failed to run rest view: %w", err)
		}

		m := final.(tui.RestModel)
		switch m.Outcome() {
		case tui.RestFinished:
			color.Green("⏰ Rest over, next set!")
		case tui.RestSkipped:
			if m.Err() != nil {
				return fmt.Errorf("Failed to skip rest: %w", m.Err())
			}
			fmt.Println("✅ Rest skipped")
		default:
			fmt.Printf("Rest keeps running: %s left\n", workout.FormatDuration(a.rest.Remaining()))
		}
		return nil
	},
}

var skipRestCmd = &cobra.Command{
	Use:   "skip-rest",
	Short: "Stop the rest countdown early",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		if !a.rest.Active() {
			fmt.Println("No rest timer running")
			return nil
		}
		if err := a.rest.Skip(ctx); err != nil {
			return fmt.Errorf("Failed to skip rest: %w", err)
		}
		fmt.Println("✅ Rest skipped")
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live view of the current workout; tick sets off as you go",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		if _, err := a.active(); err != nil {
			return fmt.Errorf("No active session. Start one with `ironlog start-session`")
		}

		if _, err := tea.NewProgram(tui.NewSessionModel(ctx, a.ctrl, a.rest, nil)).Run(); err != nil {
			return fmt.Errorf("Failed to run session view: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(restCmd)
	rootCmd.AddCommand(skipRestCmd)
	rootCmd.AddCommand(watchCmd)
}
