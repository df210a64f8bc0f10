package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gobemt/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gobemt",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gobemt v%s\n", version.Version)
		fmt.Println("Blade Element Momentum Theory Rotor Analysis Tool")
		if version.GitCommit != "unknown" {
			fmt.Printf("commit %s, built %s\n", version.GitCommit, version.BuildTime)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
