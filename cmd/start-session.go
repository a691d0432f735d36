package cmd

import (
	"errors"
	"fmt"

	"github.com/misterclayt0n/ironlog/internal/models"
	"github.com/misterclayt0n/ironlog/internal/session"
	"github.com/misterclayt0n/ironlog/internal/storage"
	"github.com/spf13/cobra"
)

var templateName string

var startCmd = &cobra.Command{
	Use:   "start-session",
	Short: "Start a new workout, empty or from a template",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		var tmpl *models.WorkoutTemplate
		if templateName != "" {
			tmpl, err = a.db.GetTemplate(ctx, templateName)
			if errors.Is(err, storage.ErrTemplateNotFound) {
				return fmt.Errorf("Template %q not found", templateName)
			}
			if err != nil {
				return err
			}
		}

		w, err := a.ctrl.Start(ctx, tmpl)
		if errors.Is(err, session.ErrSessionActive) {
			return fmt.Errorf("A workout is already in progress. Finish it with `ironlog end-session` or discard it with `ironlog cancel-session`")
		}
		if err != nil {
			return fmt.Errorf("Failed to start session: %w", err)
		}

		if tmpl != nil {
			fmt.Printf("✅ Started workout from template '%s' with %d exercises\n", tmpl.Name, len(w.Exercises))
		} else {
			fmt.Println("✅ Started an empty workout")
		}
		return nil
	},
}

func init() {
	// Registers the command as a subcommand of rootCmd.
	rootCmd.AddCommand(startCmd)

	startCmd.Flags().StringVarP(&templateName, "template", "t", "", "Template name or ID")
}
