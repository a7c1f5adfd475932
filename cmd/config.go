package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sfmanifest/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the persisted configuration",
}

var configSetCmd = &cobra.Command{
	Use:   "set key=value",
	Short: "Set one configuration variable and persist it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := cfg.Set(args[0]); err != nil {
			return err
		}
		path := config.Path()
		if err := config.Save(path, cfg); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", path)
		return nil
	},
}

var configGetAllCmd = &cobra.Command{
	Use:   "get-all",
	Short: "Print all configuration values (app password masked)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load()
		for _, key := range config.Variables {
			value, err := cfg.Get(key)
			if err != nil {
				return err
			}
			fmt.Printf("%s=%s\n", key, value)
		}
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the configurable variable names",
	Run: func(cmd *cobra.Command, _ []string) {
		for _, key := range config.Variables {
			fmt.Println(key)
		}
	},
}

func init() {
	configCmd.AddCommand(configSetCmd, configGetAllCmd, configListCmd)
	rootCmd.AddCommand(configCmd)
}
