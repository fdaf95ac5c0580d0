package ui

import (
	"fmt"
)

// calculateLineNumberDigits calculates the number of digits needed for line numbers
func calculateLineNumberDigits(lineCount int) int {
	if lineCount < 1 {
		lineCount = 1
	}
	return len(fmt.Sprintf("%d", lineCount))
}
