package ui

import (
	"testing"
)

func TestCalculateLineNumberDigits(t *testing.T) {
	tests := []struct {
		name      string
		lineCount int
		want      int
	}{
		{
			name:      "1桁",
			lineCount: 9,
			want:      1,
		},
		{
			name:      "2桁",
			lineCount: 99,
			want:      2,
		},
		{
			name:      "3桁",
			lineCount: 100,
			want:      3,
		},
		{
			name:      "4桁",
			lineCount: 1000,
			want:      4,
		},
		{
			name:      "0行でも1桁",
			lineCount: 0,
			want:      1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateLineNumberDigits(tt.lineCount)
			if got != tt.want {
				t.Errorf("calculateLineNumberDigits(%d) = %d, want %d", tt.lineCount, got, tt.want)
			}
		})
	}
}
