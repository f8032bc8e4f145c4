package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chunkrelay/chunkrelay/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("relayctl %s\n", version.GetInfo())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
