package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "sfmanifest",
	Short: "Salesforce deployment manifest generator",
	Long: "sfmanifest diffs a feature branch against a compare branch and turns the result\n" +
		"into package.xml and destructiveChanges.xml deployment manifests.",
	RunE:         runGenerate,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .sfmanifest.toml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	rootCmd.Flags().StringP("feature", "f", "", "feature branch to compare; defaults to the branch checked out in the working path")
	rootCmd.Flags().StringP("branch", "b", "qa", "compare branch the feature branch is being merged into")
	rootCmd.Flags().BoolP("string-only", "s", false, "print the manifests to stdout instead of writing files")
	rootCmd.Flags().StringP("bitbucket-user", "u", "", "Bitbucket username, overriding the configured one")
	rootCmd.Flags().BoolP("noclean", "n", false, "keep the temporary branch folders after a git-orchestrated run")
	rootCmd.Flags().StringP("automation", "a", "bitbucket", "diff source: bitbucket or git")
	rootCmd.Flags().String("events", "", "append run events to this JSONL file")
	rootCmd.Flags().String("log-file", "", "append log output to this file")
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".sfmanifest")
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("SFMANIFEST")
	viper.AutomaticEnv()

	// It's fine if no config file is found; the run prompts for anything missing.
	_ = viper.ReadInConfig()
}
