package util

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// ReadFileContent ファイルの内容を読み取る
func ReadFileContent(filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}
	if !IsTextContent(content) {
		return "", fmt.Errorf("%s is not a text file", filePath)
	}
	return string(content), nil
}

// IsTextContent はバイト列がテキストとして表示可能か判定する
func IsTextContent(content []byte) bool {
	if bytes.IndexByte(content, 0) >= 0 {
		return false
	}
	return utf8.Valid(content)
}

// NormalizeNewlines は CRLF / CR を LF に揃える
func NormalizeNewlines(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(content, "\r", "\n")
}
