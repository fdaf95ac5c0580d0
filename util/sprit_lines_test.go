package util

import (
	"reflect"
	"testing"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "改行終わり",
			input: "a\nb\n",
			want:  []string{"a", "b"},
		},
		{
			name:  "改行なし終わり",
			input: "a\nb",
			want:  []string{"a", "b"},
		},
		{
			name:  "空文字列",
			input: "",
			want:  []string{},
		},
		{
			name:  "空行を含む",
			input: "a\n\nb\n",
			want:  []string{"a", "", "b"},
		},
		{
			name:  "改行のみ",
			input: "\n\n",
			want:  []string{"", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLines(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
