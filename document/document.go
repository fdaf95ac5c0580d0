package document

import (
	"sort"
	"unicode/utf8"

	"github.com/sukechannnn/origami/util"
)

// Line はドキュメント中の一行。Start / End はルーン単位のオフセットで、
// End は行末の改行位置（最後の内容ルーンの次）を指す
type Line struct {
	Number int // 1 始まり
	Start  int
	End    int
}

// Contains reports whether the rune offset falls on this line.
// The trailing newline position belongs to the line it terminates.
func (l Line) Contains(offset int) bool {
	return offset >= l.Start && offset <= l.End
}

// Document is an immutable text snapshot indexed by rune offsets.
type Document struct {
	runes     []rune
	lines     []Line
	lineTexts []string
}

// New はテキストから行インデックスを構築する
func New(text string) *Document {
	lineTexts := util.SplitLines(text)
	if len(lineTexts) == 0 {
		lineTexts = []string{""}
	}

	lines := make([]Line, len(lineTexts))
	offset := 0
	for i, lt := range lineTexts {
		n := utf8.RuneCountInString(lt)
		lines[i] = Line{Number: i + 1, Start: offset, End: offset + n}
		offset += n + 1
	}

	return &Document{
		runes:     []rune(text),
		lines:     lines,
		lineTexts: lineTexts,
	}
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// RuneCount returns the total number of runes in the document.
func (d *Document) RuneCount() int {
	return len(d.runes)
}

// Line returns the line with the given 1-based number.
func (d *Document) Line(number int) (Line, bool) {
	if number < 1 || number > len(d.lines) {
		return Line{}, false
	}
	return d.lines[number-1], true
}

// LineContaining はオフセットを含む行を返す。範囲外は端の行に丸める
func (d *Document) LineContaining(offset int) Line {
	if offset <= 0 {
		return d.lines[0]
	}
	idx := sort.Search(len(d.lines), func(i int) bool {
		return d.lines[i].End >= offset
	})
	if idx >= len(d.lines) {
		return d.lines[len(d.lines)-1]
	}
	return d.lines[idx]
}

// LineText returns the text of the line, without the trailing newline.
func (d *Document) LineText(l Line) string {
	if l.Number < 1 || l.Number > len(d.lineTexts) {
		return ""
	}
	return d.lineTexts[l.Number-1]
}

// LineTexts returns all line texts in order.
func (d *Document) LineTexts() []string {
	return d.lineTexts
}

// Slice はルーンオフセット [start, end) の範囲のテキストを返す
func (d *Document) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(d.runes) {
		end = len(d.runes)
	}
	if start >= end {
		return ""
	}
	return string(d.runes[start:end])
}
