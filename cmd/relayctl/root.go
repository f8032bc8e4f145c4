// Package main provides the relayctl CLI application.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chunkrelay/chunkrelay/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "relayctl",
	Short: "Split long Markdown into Discord-sized chunks",
	Long: `relayctl splits long Markdown text into chunks that fit Discord's
message limits, keeping fenced code blocks intact across chunk boundaries.

Content is read from a file argument or from stdin.`,
	Version:       version.GetInfo(),
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// readInput returns the content from the optional file argument or stdin,
// with Windows line endings normalized.
func readInput(args []string) (string, error) {
	var data []byte
	var err error
	if len(args) > 0 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}
