package util

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/alecthomas/chroma/v2"
)

func TestTokenizeCode(t *testing.T) {
	tests := []struct {
		name     string
		filePath string
		code     []string
	}{
		{
			name:     "Goファイルのトークン化",
			filePath: "main.go",
			code:     []string{"func main() {", "	fmt.Println(\"hello\")", "}"},
		},
		{
			name:     "空のコード",
			filePath: "empty.go",
			code:     []string{""},
		},
		{
			name:     "Pythonファイル",
			filePath: "script.py",
			code:     []string{"def hello():", "    print('world')"},
		},
		{
			name:     "JSONファイル",
			filePath: "data.json",
			code:     []string{"{", "  \"key\": \"value\"", "}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TokenizeCode(tt.filePath, tt.code)
			if result == nil {
				t.Fatal("expected tokens, got nil")
			}
			if len(result) != len(tt.code) {
				t.Errorf("expected %d lines of tokens, got %d", len(tt.code), len(result))
			}
		})
	}
}

func TestTokenizeCodeCache(t *testing.T) {
	code := []string{"func foo() {}"}
	result1 := TokenizeCode("test.go", code)
	result2 := TokenizeCode("test.go", code)

	if result1 == nil || result2 == nil {
		t.Fatal("expected non-nil results")
	}
	if len(result1) != len(result2) {
		t.Errorf("cache miss: different lengths %d vs %d", len(result1), len(result2))
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name     string
		filePath string
		content  string
		want     string
	}{
		{
			name:     "Goファイル",
			filePath: "main.go",
			content:  "package main\n\nfunc main() {}\n",
			want:     "Go",
		},
		{
			name:     "Pythonファイル",
			filePath: "script.py",
			content:  "def hello():\n    pass\n",
			want:     "Python",
		},
		{
			name:     "Rubyファイル",
			filePath: "app.rb",
			content:  "puts 'hello'\n",
			want:     "Ruby",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectLanguage(tt.filePath, tt.content)
			if got != tt.want {
				t.Errorf("DetectLanguage(%q) = %q, want %q", tt.filePath, got, tt.want)
			}
		})
	}
}

func TestTokenStyle(t *testing.T) {
	base := tcell.StyleDefault.Background(BackgroundColor.ToTcellColor())

	keywordStyle := TokenStyle(chroma.Keyword, base)
	commentStyle := TokenStyle(chroma.Comment, base)

	kfg, _, _ := keywordStyle.Decompose()
	cfg, _, _ := commentStyle.Decompose()

	if kfg == cfg {
		t.Errorf("keyword and comment should have different colors, both got %v", kfg)
	}

	// 背景色はベーススタイルのまま維持される
	_, kbg, _ := keywordStyle.Decompose()
	_, wantBg, _ := base.Decompose()
	if kbg != wantBg {
		t.Errorf("background changed: got %v, want %v", kbg, wantBg)
	}
}
