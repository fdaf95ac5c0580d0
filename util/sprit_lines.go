package util

import "strings"

// SplitLines splits a string by newline characters.
// A trailing newline does not produce an extra empty line.
func SplitLines(input string) []string {
	lines := strings.Split(input, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
