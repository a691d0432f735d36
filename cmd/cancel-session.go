package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var cancelYes bool

var cancelSessionCmd = &cobra.Command{
	Use:   "cancel-session",
	Short: "Cancel the current workout without saving any data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		if _, err := a.active(); err != nil {
			return fmt.Errorf("No active session to cancel")
		}

		if !cancelYes {
			fmt.Print("Discard the current workout? All progress will be lost. [y/N] ")
			answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if ans := strings.ToLower(strings.TrimSpace(answer)); ans != "y" && ans != "yes" {
				fmt.Println("Kept the workout.")
				return nil
			}
		}

		if err := a.ctrl.Cancel(ctx); err != nil {
			return fmt.Errorf("Failed to cancel session: %w", err)
		}

		fmt.Println("✅ Session cancelled successfully")
		return nil
	},
}

func init() {
	cancelSessionCmd.Flags().BoolVarP(&cancelYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(cancelSessionCmd)
}
