package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chunkrelay/chunkrelay/internal/chunker"
	"github.com/chunkrelay/chunkrelay/internal/config"
)

var (
	splitMaxChars int
	splitMaxLines int
)

var splitCmd = &cobra.Command{
	Use:   "split [file]",
	Short: "Split Markdown into chunks and print them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readInput(args)
		if err != nil {
			return err
		}
		if err := config.ValidateLimits(splitMaxChars, splitMaxLines); err != nil {
			return err
		}
		chunks, err := chunker.Split(content, chunker.Config{
			MaxChars: splitMaxChars,
			MaxLines: splitMaxLines,
		})
		if err != nil {
			return err
		}
		for i, chunk := range chunks {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("----- chunk %d/%d (%d chars) -----\n", i+1, len(chunks), len(chunk))
			fmt.Println(chunk)
		}
		return nil
	},
}

func init() {
	splitCmd.Flags().IntVar(&splitMaxChars, "max-chars", config.DefaultMaxChars, "maximum characters per chunk")
	splitCmd.Flags().IntVar(&splitMaxLines, "max-lines", config.DefaultMaxLines, "maximum readable lines per chunk (0 disables)")
	rootCmd.AddCommand(splitCmd)
}
