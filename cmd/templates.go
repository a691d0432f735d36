package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/ironlog/internal/storage"
	"github.com/misterclayt0n/ironlog/internal/utils"
	"github.com/misterclayt0n/ironlog/internal/workout"
	"github.com/spf13/cobra"
)

var saveTemplateCmd = &cobra.Command{
	Use:   "save-template [name]",
	Short: "Save the current workout's exercises as a reusable template",
	Args:  cobra.MinimumNArgs(1),
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

		tmpl, ok := workout.TemplateFromWorkout(strings.Join(args, " "), w, time.Now())
		if !ok {
			return fmt.Errorf("Template name cannot be empty")
		}
		if existing, err := a.db.GetTemplate(ctx, tmpl.Name); err == nil {
			tmpl.ID, tmpl.CreatedAt = existing.ID, existing.CreatedAt
		}
		if err := a.db.UpsertTemplate(ctx, tmpl); err != nil {
			return err
		}

		fmt.Printf("✅ Saved template '%s' with %d exercises\n", tmpl.Name, len(tmpl.Exercises))
		return nil
	},
}

var listTemplatesCmd = &cobra.Command{
	Use:   "list-templates",
	Short: "List all templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, st, err := openStorage(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		templates, err := st.ListTemplates(ctx)
		if err != nil {
			return err
		}
		if len(templates) == 0 {
			fmt.Println("No templates yet. Save one with `ironlog save-template NAME`.")
			return nil
		}

		for _, t := range templates {
			fmt.Printf("%s - %s (%d exercises)\n", t.ID, t.Name, len(t.Exercises))
		}
		return nil
	},
}

var showTemplateCmd = &cobra.Command{
	Use:   "show-template [name]",
	Short: "Display the exercises of a template",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, st, err := openStorage(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		name := strings.Join(args, " ")
		tmpl, err := st.GetTemplate(ctx, name)
		if errors.Is(err, storage.ErrTemplateNotFound) {
			return fmt.Errorf("Template %q not found", name)
		}
		if err != nil {
			return fmt.Errorf("failed to load template: %w", err)
		}

		// Set up color functions.
		green := color.New(color.FgGreen).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()

		fmt.Printf("\n%s\n", green(strings.ToUpper(tmpl.Name)))
		fmt.Printf("%s: %s\n", cyan("Created At"), utils.FormatMillis(tmpl.CreatedAt))
		fmt.Println(strings.Repeat("=", 60))
		for i, ex := range tmpl.Exercises {
			fmt.Printf("%d - %s: %d sets\n", i+1, ex.Name, ex.DefaultSets)
		}
		fmt.Println()
		return nil
	},
}

var deleteTemplateCmd = &cobra.Command{
	Use:   "delete-template [name]",
	Short: "Delete a template",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, st, err := openStorage(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		name := strings.Join(args, " ")
		tmpl, err := st.GetTemplate(ctx, name)
		if err == nil {
			err = st.DeleteTemplate(ctx, tmpl.ID)
		}
		if errors.Is(err, storage.ErrTemplateNotFound) {
			return fmt.Errorf("Template %q not found", name)
		}
		if err != nil {
			return fmt.Errorf("Failed to delete template: %w", err)
		}

		fmt.Printf("✅ Template '%s' deleted successfully\n", tmpl.Name)
		return nil
	},
}

var importTemplateCmd = &cobra.Command{
	Use:   "import-template [file]",
	Short: "Create or update templates from a TOML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, st, err := openStorage(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := st.ImportTemplatesTOML(ctx, args[0])
		if err != nil {
			return fmt.Errorf("Failed to import templates: %w", err)
		}
		fmt.Printf("✅ Imported %d templates\n", n)
		return nil
	},
}

var exportTemplatesCmd = &cobra.Command{
	Use:   "export-templates [output-file]",
	Short: "Export all templates to a TOML file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile := "templates.toml" // Default filename.
		if len(args) == 1 {
			outputFile = args[0]
		}

		ctx := cmd.Context()
		_, st, err := openStorage(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := st.ExportTemplatesTOML(ctx, outputFile)
		if err != nil {
			return fmt.Errorf("error exporting templates: %w", err)
		}
		fmt.Printf("✅ Exported %d templates to %s\n", n, outputFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(saveTemplateCmd)
	rootCmd.AddCommand(listTemplatesCmd)
	rootCmd.AddCommand(showTemplateCmd)
	rootCmd.AddCommand(deleteTemplateCmd)
	rootCmd.AddCommand(importTemplateCmd)
	rootCmd.AddCommand(exportTemplatesCmd)
}
