package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sfmanifest/internal/manifest"
)

var supportedCmd = &cobra.Command{
	Use:   "supported",
	Short: "List the metadata types that can appear in a manifest",
	Run: func(cmd *cobra.Command, _ []string) {
		for _, name := range manifest.NewTable().TypeNames() {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(supportedCmd)
}
