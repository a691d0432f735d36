package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/misterclayt0n/ironlog/internal/config"
	"github.com/spf13/cobra"
)

var initSetupCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file and create the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.GetConfigDir()
		if err != nil {
			return err
		}
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("Failed to create config dir: %w", err)
		}

		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("Failed to create config: %w", err)
			}
			err = toml.NewEncoder(f).Encode(config.Default(dir))
			f.Close()
			if err != nil {
				return fmt.Errorf("Failed to write config: %w", err)
			}
			fmt.Printf("✅ Wrote default config to %s\n", path)
		}

		ctx := cmd.Context()
		cfg, st, err := openStorage(ctx)
		if err != nil {
			return fmt.Errorf("Failed to initialize database: %w", err)
		}
		st.Close()

		fmt.Printf("✅ Database initialized successfully (%s)\n", cfg.DB.Driver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initSetupCmd)
}
