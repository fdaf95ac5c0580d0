package folding

import (
	"strings"

	"github.com/alecthomas/chroma/v2"

	"github.com/sukechannnn/origami/document"
	"github.com/sukechannnn/origami/util"
)

// braceLanguages は波括弧の対応で折りたたむ言語。それ以外はインデントで折りたたむ
var braceLanguages = map[string]bool{
	"C":          true,
	"C#":         true,
	"C++":        true,
	"Dart":       true,
	"Go":         true,
	"JSON":       true,
	"Java":       true,
	"JavaScript": true,
	"Kotlin":     true,
	"PHP":        true,
	"Rust":       true,
	"Scala":      true,
	"Swift":      true,
	"TSX":        true,
	"TypeScript": true,
	"Zig":        true,
}

// Detect computes foldable ranges for the file. The strategy is chosen
// from the detected language; brace languages fall back to indentation
// folding when no brace pair spans multiple lines.
func Detect(filePath string, doc *document.Document, tabWidth int) []Range {
	lang := util.DetectLanguage(filePath, doc.Slice(0, doc.RuneCount()))
	if braceLanguages[lang] {
		tokens := util.TokenizeCode(filePath, doc.LineTexts())
		if tokens != nil {
			if ranges := DetectBraces(doc, tokens); len(ranges) > 0 {
				return ranges
			}
		}
	}
	return DetectIndent(doc, tabWidth)
}

// DetectBraces は複数行にまたがる波括弧の組を折りたたみ範囲にする。
// 文字列リテラルとコメントの中の波括弧は数えない
func DetectBraces(doc *document.Document, tokens [][]chroma.Token) []Range {
	var stack []int
	var ranges []Range

	for i, lineTokens := range tokens {
		line, ok := doc.Line(i + 1)
		if !ok {
			break
		}
		col := 0
		for _, tok := range lineTokens {
			skip := tok.Type.InSubCategory(chroma.LiteralString) || tok.Type.InCategory(chroma.Comment)
			for _, r := range tok.Value {
				if !skip {
					switch r {
					case '{':
						stack = append(stack, line.Start+col)
					case '}':
						if len(stack) > 0 {
							start := stack[len(stack)-1]
							stack = stack[:len(stack)-1]
							if doc.LineContaining(start).Number < line.Number {
								ranges = append(ranges, Range{
									Start: start,
									End:   line.Start + col + 1,
									Title: "{⋯}",
								})
							}
						}
					}
				}
				col++
			}
		}
	}

	return ranges
}

// DetectIndent はインデントが深くなる行のまとまりを折りたたみ範囲にする。
// 空行は挟んでいても継続とみなし、末尾の空行は範囲に含めない
func DetectIndent(doc *document.Document, tabWidth int) []Range {
	if tabWidth <= 0 {
		tabWidth = 4
	}

	lineTexts := doc.LineTexts()
	indents := make([]int, len(lineTexts))
	for i, text := range lineTexts {
		if strings.TrimSpace(text) == "" {
			indents[i] = -1
			continue
		}
		indents[i] = indentWidth(text, tabWidth)
	}

	var ranges []Range
	for i := 0; i < len(indents); i++ {
		if indents[i] < 0 {
			continue
		}
		last := -1
		for j := i + 1; j < len(indents); j++ {
			if indents[j] < 0 {
				continue
			}
			if indents[j] <= indents[i] {
				break
			}
			last = j
		}
		if last >= 0 {
			header, _ := doc.Line(i + 1)
			lastLine, _ := doc.Line(last + 1)
			ranges = append(ranges, Range{Start: header.End, End: lastLine.End})
		}
	}

	return ranges
}

// indentWidth は行頭の空白の表示幅を返す
func indentWidth(text string, tabWidth int) int {
	w := 0
	for _, r := range text {
		switch r {
		case ' ':
			w++
		case '\t':
			w += tabWidth - w%tabWidth
		default:
			return w
		}
	}
	return w
}
