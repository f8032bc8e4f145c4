package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chunkrelay/chunkrelay/internal/preview"
)

var curlBaseURL string

var curlCmd = &cobra.Command{
	Use:   "curl <webhook-url>",
	Short: "Convert a Discord webhook URL into a relay URL and curl command",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		relayURL, err := preview.RelayURL(curlBaseURL, args[0])
		if err != nil {
			return err
		}
		fmt.Println(relayURL)
		fmt.Println(preview.CurlCommand(relayURL))
		return nil
	},
}

func init() {
	curlCmd.Flags().StringVar(&curlBaseURL, "base", "http://localhost:8080", "base URL of the running relay")
	rootCmd.AddCommand(curlCmd)
}
