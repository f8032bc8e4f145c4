package chunker

import "strings"

// CountReadableLines returns the number of lines in text that are neither
// blank nor fence-delimiter lines. This is the unit the MaxLines limit
// constrains; callers can use it to pre-check content without splitting.
func CountReadableLines(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		if isReadableLine(line) {
			count++
		}
	}
	return count
}

func isReadableLine(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	return !isFenceLine(line)
}
