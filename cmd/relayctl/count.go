package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chunkrelay/chunkrelay/internal/chunker"
)

var countCmd = &cobra.Command{
	Use:   "count [file]",
	Short: "Count readable lines (blank and fence lines excluded)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readInput(args)
		if err != nil {
			return err
		}
		fmt.Println(chunker.CountReadableLines(content))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countCmd)
}
