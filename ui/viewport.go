package ui

import (
	"github.com/mattn/go-runewidth"

	"github.com/sukechannnn/origami/document"
	"github.com/sukechannnn/origami/folding"
)

// Cell は表示上の 1 ルーン。Offset は対応するドキュメント上のルーン位置で、
// タブ展開で増えた空白は元のタブの位置を指す
type Cell struct {
	Rune        rune
	Offset      int
	Placeholder bool
	Section     *folding.Section // Placeholder のときだけ設定される
}

// VisualLine は折りたたみによって 1 行に結合されたドキュメント行のまとまり。
// 折りたたみがなければ FirstLine と LastLine は同じ行を指す
type VisualLine struct {
	FirstLine document.Line
	LastLine  document.Line
	RowCount  int
}

// ViewRow は画面上の 1 行。折り返しがあると 1 つの VisualLine が複数の行になる
type ViewRow struct {
	Cells       []Cell
	Line        *VisualLine
	Index       int // VisualLine 内での折り返し位置（0 が先頭行）
	FirstOffset int
	LastOffset  int
}

// Viewport は画面に見えている行の索引
type Viewport struct {
	Lines  []*VisualLine
	Rows   []*ViewRow
	Width  int
	Height int
}

// FirstOffset returns the document offset of the first visible rune.
func (vp *Viewport) FirstOffset() int {
	if len(vp.Rows) == 0 {
		return 0
	}
	return vp.Rows[0].Line.FirstLine.Start
}

// LastOffset returns the document offset at the end of the last visible
// visual line, including rows of it that were cut off at the bottom edge.
func (vp *Viewport) LastOffset() int {
	if len(vp.Rows) == 0 {
		return 0
	}
	return vp.Rows[len(vp.Rows)-1].Line.LastLine.End
}

// RowIndexOfOffset はオフセットが表示されている行番号を返す。画面外なら -1
func (vp *Viewport) RowIndexOfOffset(offset int) int {
	last := -1
	for i, row := range vp.Rows {
		vl := row.Line
		if offset >= vl.FirstLine.Start && offset <= vl.LastLine.End {
			last = i
			if offset <= row.LastOffset {
				return i
			}
		} else if last >= 0 {
			break
		}
	}
	return last
}

// visualStartLine は lineNumber を含む表示行の先頭のドキュメント行を返す。
// 折りたたみに飲み込まれている行は、その折りたたみが始まる行まで遡る
func visualStartLine(doc *document.Document, mgr *folding.Manager, lineNumber int) document.Line {
	line, ok := doc.Line(lineNumber)
	if !ok {
		if lineNumber < 1 {
			line, _ = doc.Line(1)
		} else {
			line, _ = doc.Line(doc.LineCount())
		}
	}
	for {
		var swallower *folding.Section
		for _, s := range mgr.FoldingsContaining(line.Start) {
			// End ちょうどから始まる行は折りたたみの外
			if s.Collapsed && s.End > line.Start && doc.LineContaining(s.Start).Number < line.Number {
				swallower = s
				break
			}
		}
		if swallower == nil {
			return line
		}
		line = doc.LineContaining(swallower.Start)
	}
}

// buildVisualLine は startLine から始まる表示行を組み立てる。
// 折りたたまれたセクションはプレースホルダーの Cell に置き換えられ、
// セクションの終端行までが 1 つの表示行に結合される
func buildVisualLine(doc *document.Document, mgr *folding.Manager, startLine document.Line, tabWidth int) (*VisualLine, []Cell) {
	vl := &VisualLine{FirstLine: startLine, LastLine: startLine}
	var cells []Cell
	col := 0

	appendText := func(a, b int) {
		for a < b {
			line := doc.LineContaining(a)
			end := line.End
			if b < end {
				end = b
			}
			for _, r := range doc.Slice(a, end) {
				if r == '\t' {
					n := tabWidth - col%tabWidth
					for k := 0; k < n; k++ {
						cells = append(cells, Cell{Rune: ' ', Offset: a})
					}
					col += n
				} else {
					cells = append(cells, Cell{Rune: r, Offset: a})
					col += cellWidth(r)
				}
				a++
			}
			// 行をまたぐ場合、改行は表示されずテキストが続く
			a = line.End + 1
		}
	}

	pos := startLine.Start
	for {
		var next *folding.Section
		for _, s := range mgr.CollapsedStartingIn(pos, vl.LastLine.End) {
			next = s
			break
		}
		if next == nil {
			break
		}
		appendText(pos, next.Start)
		for _, r := range next.Placeholder() {
			cells = append(cells, Cell{Rune: r, Offset: next.Start, Placeholder: true, Section: next})
			col += cellWidth(r)
		}
		pos = next.End
		endLine := doc.LineContaining(next.End - 1)
		if endLine.Number > vl.LastLine.Number {
			vl.LastLine = endLine
		}
	}
	appendText(pos, vl.LastLine.End)

	return vl, cells
}

// cellWidth は表示幅を返す。結合文字などの幅 0 も 1 セルとして扱う
func cellWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w <= 0 {
		return 1
	}
	return w
}

// wrapCells は表示行の Cell 列を幅に合わせて折り返す
func wrapCells(vl *VisualLine, cells []Cell, width int, wrap bool) []*ViewRow {
	var rows []*ViewRow

	flush := func(cur []Cell) {
		row := &ViewRow{
			Cells:       cur,
			Line:        vl,
			Index:       len(rows),
			FirstOffset: vl.FirstLine.Start,
			LastOffset:  vl.FirstLine.Start,
		}
		if len(cur) > 0 {
			row.FirstOffset = cur[0].Offset
			last := cur[len(cur)-1]
			if last.Placeholder && last.Section != nil {
				row.LastOffset = last.Section.End - 1
			} else {
				row.LastOffset = last.Offset
			}
		}
		rows = append(rows, row)
	}

	if !wrap || width <= 0 {
		flush(cells)
		vl.RowCount = 1
		return rows
	}

	var cur []Cell
	curWidth := 0
	for _, c := range cells {
		w := cellWidth(c.Rune)
		if curWidth+w > width && len(cur) > 0 {
			flush(cur)
			cur = nil
			curWidth = 0
		}
		cur = append(cur, c)
		curWidth += w
	}
	if len(cur) > 0 || len(rows) == 0 {
		flush(cur)
	}

	vl.RowCount = len(rows)
	return rows
}

// BuildViewport は topLine から height 行ぶんの表示行を組み立てる
func BuildViewport(doc *document.Document, mgr *folding.Manager, topLine, width, height int, wrap bool, tabWidth int) *Viewport {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	vp := &Viewport{Width: width, Height: height}
	if height <= 0 {
		return vp
	}

	// 一番下の表示行は途中までしか見えなくても全ての折り返し行を持たせる。
	// 画面外にはみ出したぶんは描画時に切り捨てられる
	line := visualStartLine(doc, mgr, topLine)
	for len(vp.Rows) < height {
		vl, cells := buildVisualLine(doc, mgr, line, tabWidth)
		vp.Rows = append(vp.Rows, wrapCells(vl, cells, width, wrap)...)
		vp.Lines = append(vp.Lines, vl)

		next, ok := doc.Line(vl.LastLine.Number + 1)
		if !ok {
			break
		}
		line = next
	}

	return vp
}
