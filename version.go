package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of guide-creator",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "guide-creator %s\n", version)
	},
}

func init() {
	versionCmd.PersistentPreRunE = skipConfig
	rootCmd.AddCommand(versionCmd)
}
