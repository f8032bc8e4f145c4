package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/chunkrelay/chunkrelay/internal/chunker"
	"github.com/chunkrelay/chunkrelay/internal/config"
)

var (
	previewMaxChars int
	previewMaxLines int
	previewStyle    string
)

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Split Markdown and render each chunk in the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readInput(args)
		if err != nil {
			return err
		}
		if err := config.ValidateLimits(previewMaxChars, previewMaxLines); err != nil {
			return err
		}
		chunks, err := chunker.Split(content, chunker.Config{
			MaxChars: previewMaxChars,
			MaxLines: previewMaxLines,
		})
		if err != nil {
			return err
		}
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(previewStyle),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			return fmt.Errorf("create renderer: %w", err)
		}
		for i, chunk := range chunks {
			fmt.Printf("----- chunk %d/%d (%d chars, %d readable lines) -----\n",
				i+1, len(chunks), len(chunk), chunker.CountReadableLines(chunk))
			out, err := renderer.Render(chunk)
			if err != nil {
				// Fall back to the raw chunk if rendering fails.
				fmt.Println(chunk)
				continue
			}
			fmt.Print(out)
		}
		return nil
	},
}

func init() {
	previewCmd.Flags().IntVar(&previewMaxChars, "max-chars", config.DefaultMaxChars, "maximum characters per chunk")
	previewCmd.Flags().IntVar(&previewMaxLines, "max-lines", config.DefaultMaxLines, "maximum readable lines per chunk (0 disables)")
	previewCmd.Flags().StringVar(&previewStyle, "style", "dark", "glamour style (dark, light, notty)")
	rootCmd.AddCommand(previewCmd)
}
