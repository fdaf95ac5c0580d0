package ui

import (
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/sukechannnn/origami/document"
	"github.com/sukechannnn/origami/folding"
	"github.com/sukechannnn/origami/util"
)

// CodeView はフォールドマージンと行番号つきでコードを表示する tview プリミティブ
type CodeView struct {
	*tview.Box

	doc      *document.Document
	mgr      *folding.Manager
	margin   *FoldingMargin
	filePath string

	topLine    int
	cursorLine int
	wrap       bool
	tabWidth   int

	vp      *Viewport
	tokens  [][]chroma.Token
	changed func()
}

// NewCodeView returns a new code view with an attached folding margin.
func NewCodeView() *CodeView {
	cv := &CodeView{
		Box:        tview.NewBox(),
		margin:     NewFoldingMargin(),
		topLine:    1,
		cursorLine: 1,
		tabWidth:   4,
	}
	cv.SetBackgroundColor(util.BackgroundColor.ToTcellColor())
	cv.margin.Attach(cv)
	return cv
}

// SetDocument sets the file to display and resets the cursor to the top.
func (cv *CodeView) SetDocument(filePath string, doc *document.Document, mgr *folding.Manager) *CodeView {
	cv.filePath = filePath
	cv.doc = doc
	cv.mgr = mgr
	cv.topLine = 1
	cv.cursorLine = 1
	cv.tokens = util.TokenizeCode(filePath, doc.LineTexts())
	return cv
}

// ReplaceDocument は表示中の内容を差し替えてカーソル位置を保つ
func (cv *CodeView) ReplaceDocument(doc *document.Document) {
	cv.doc = doc
	cv.tokens = util.TokenizeCode(cv.filePath, doc.LineTexts())
	cv.normalizeCursor()
}

// SetChangedFunc sets a handler which is called when folds or the cursor
// change through mouse interaction.
func (cv *CodeView) SetChangedFunc(handler func()) *CodeView {
	cv.changed = handler
	return cv
}

// SetTabWidth sets the number of columns a tab advances to.
func (cv *CodeView) SetTabWidth(width int) *CodeView {
	if width > 0 {
		cv.tabWidth = width
	}
	return cv
}

// SetWrap sets whether long lines are wrapped.
func (cv *CodeView) SetWrap(wrap bool) *CodeView {
	cv.wrap = wrap
	return cv
}

func (cv *CodeView) Document() *document.Document {
	return cv.doc
}

func (cv *CodeView) Manager() *folding.Manager {
	return cv.mgr
}

func (cv *CodeView) FilePath() string {
	return cv.filePath
}

func (cv *CodeView) CursorLine() int {
	return cv.cursorLine
}

func (cv *CodeView) TopLine() int {
	return cv.topLine
}

// RestorePosition は保存された表示位置に移動する
func (cv *CodeView) RestorePosition(topLine, cursorLine int) {
	if cv.doc == nil {
		return
	}
	if topLine >= 1 && topLine <= cv.doc.LineCount() {
		cv.topLine = visualStartLine(cv.doc, cv.mgr, topLine).Number
	}
	if cursorLine >= 1 && cursorLine <= cv.doc.LineCount() {
		cv.cursorLine = visualStartLine(cv.doc, cv.mgr, cursorLine).Number
	}
	if cv.cursorLine < cv.topLine {
		cv.topLine = cv.cursorLine
	}
}

func (cv *CodeView) Wrap() bool {
	return cv.wrap
}

func (cv *CodeView) notifyChanged() {
	if cv.changed != nil {
		cv.changed()
	}
}

// textWidth はマージンと行番号の列を除いた本文の幅を返す
func (cv *CodeView) textWidth(width int) int {
	digits := calculateLineNumberDigits(cv.doc.LineCount())
	w := width - FoldMarginWidth - digits - GutterPadding
	if w < 1 {
		w = 1
	}
	return w
}

// visualLineAt は lineNumber を含む表示行を返す
func (cv *CodeView) visualLineAt(lineNumber int) *VisualLine {
	start := visualStartLine(cv.doc, cv.mgr, lineNumber)
	vl, _ := buildVisualLine(cv.doc, cv.mgr, start, cv.tabWidth)
	return vl
}

// normalizeCursor はカーソルと先頭行を畳まれていない行に寄せる
func (cv *CodeView) normalizeCursor() {
	if cv.doc == nil {
		return
	}
	if cv.cursorLine < 1 {
		cv.cursorLine = 1
	}
	if cv.cursorLine > cv.doc.LineCount() {
		cv.cursorLine = cv.doc.LineCount()
	}
	cv.cursorLine = visualStartLine(cv.doc, cv.mgr, cv.cursorLine).Number
	if cv.topLine > cv.doc.LineCount() {
		cv.topLine = cv.doc.LineCount()
	}
	cv.topLine = visualStartLine(cv.doc, cv.mgr, cv.topLine).Number
	cv.ensureCursorVisible()
}

// ensureCursorVisible はカーソルの表示行が画面に収まるように先頭行を調整する
func (cv *CodeView) ensureCursorVisible() {
	_, _, width, height := cv.GetInnerRect()
	if cv.doc == nil || height <= 0 {
		return
	}
	textWidth := cv.textWidth(width)

	start := visualStartLine(cv.doc, cv.mgr, cv.cursorLine)
	if start.Number < cv.topLine {
		cv.topLine = start.Number
		return
	}

	// 先頭行からカーソルの表示行の末尾までの折り返し行数を数える
	rows := 0
	number := cv.topLine
	var tops []int
	var rowCounts []int
	for {
		line, ok := cv.doc.Line(number)
		if !ok {
			break
		}
		vl, cells := buildVisualLine(cv.doc, cv.mgr, line, cv.tabWidth)
		n := len(wrapCells(vl, cells, textWidth, cv.wrap))
		tops = append(tops, vl.FirstLine.Number)
		rowCounts = append(rowCounts, n)
		rows += n
		if vl.FirstLine.Number <= start.Number && start.Number <= vl.LastLine.Number {
			break
		}
		number = vl.LastLine.Number + 1
	}
	if len(tops) == 0 {
		return
	}

	// 上から表示行を削ってカーソルが収まる位置まで下げる
	i := 0
	for i < len(tops)-1 && rows > height {
		rows -= rowCounts[i]
		i++
	}
	cv.topLine = tops[i]
}

// clampCursorToView はスクロール後にカーソルを画面内へ引き戻す
func (cv *CodeView) clampCursorToView() {
	_, _, width, height := cv.GetInnerRect()
	if cv.doc == nil || height <= 0 {
		return
	}
	vp := BuildViewport(cv.doc, cv.mgr, cv.topLine, cv.textWidth(width), height, cv.wrap, cv.tabWidth)
	if len(vp.Lines) == 0 {
		return
	}
	first := vp.Lines[0]
	if cv.cursorLine < first.FirstLine.Number {
		cv.cursorLine = first.FirstLine.Number
		return
	}
	// 末尾まで画面に収まっている表示行のうち最後のものを探す
	rows := 0
	last := first
	for _, vl := range vp.Lines {
		rows += vl.RowCount
		if rows > height && vl != first {
			break
		}
		last = vl
	}
	if cv.cursorLine > last.LastLine.Number {
		cv.cursorLine = last.FirstLine.Number
	} else {
		cv.cursorLine = visualStartLine(cv.doc, cv.mgr, cv.cursorLine).Number
	}
}

// MoveCursorDown は次の表示行へカーソルを移動する
func (cv *CodeView) MoveCursorDown() {
	if cv.doc == nil {
		return
	}
	vl := cv.visualLineAt(cv.cursorLine)
	next := vl.LastLine.Number + 1
	if next > cv.doc.LineCount() {
		return
	}
	cv.cursorLine = next
	cv.ensureCursorVisible()
}

// MoveCursorUp は前の表示行へカーソルを移動する
func (cv *CodeView) MoveCursorUp() {
	if cv.doc == nil {
		return
	}
	start := visualStartLine(cv.doc, cv.mgr, cv.cursorLine)
	if start.Number > 1 {
		start = visualStartLine(cv.doc, cv.mgr, start.Number-1)
	}
	cv.cursorLine = start.Number
	cv.ensureCursorVisible()
}

// MoveToTop はファイルの先頭へ移動する
func (cv *CodeView) MoveToTop() {
	cv.cursorLine = 1
	cv.topLine = 1
}

// MoveToBottom はファイルの末尾の表示行へ移動する
func (cv *CodeView) MoveToBottom() {
	if cv.doc == nil {
		return
	}
	cv.cursorLine = visualStartLine(cv.doc, cv.mgr, cv.doc.LineCount()).Number
	cv.ensureCursorVisible()
}

// HalfPageDown は画面の半分だけ下へ移動する
func (cv *CodeView) HalfPageDown() {
	_, _, _, height := cv.GetInnerRect()
	n := height / 2
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		cv.MoveCursorDown()
	}
}

// HalfPageUp は画面の半分だけ上へ移動する
func (cv *CodeView) HalfPageUp() {
	_, _, _, height := cv.GetInnerRect()
	n := height / 2
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		cv.MoveCursorUp()
	}
}

// ScrollBy は表示行単位で画面をスクロールする
func (cv *CodeView) ScrollBy(delta int) {
	if cv.doc == nil {
		return
	}
	for ; delta < 0 && cv.topLine > 1; delta++ {
		start := visualStartLine(cv.doc, cv.mgr, cv.topLine)
		if start.Number <= 1 {
			cv.topLine = 1
			break
		}
		cv.topLine = visualStartLine(cv.doc, cv.mgr, start.Number-1).Number
	}
	for ; delta > 0; delta-- {
		vl := cv.visualLineAt(cv.topLine)
		next := vl.LastLine.Number + 1
		if next > cv.doc.LineCount() {
			break
		}
		cv.topLine = next
	}
	cv.clampCursorToView()
}

// ToggleFoldAtCursor はカーソル行のセクションを開閉する。カーソルの表示行で
// 始まるセクションがなければ、カーソルを含む一番内側のセクションを開閉する
func (cv *CodeView) ToggleFoldAtCursor() bool {
	if cv.doc == nil {
		return false
	}
	line, ok := cv.doc.Line(cv.cursorLine)
	if !ok {
		return false
	}
	vl := cv.visualLineAt(cv.cursorLine)
	s := cv.mgr.NextAtOrAfter(vl.FirstLine.Start)
	if s == nil || s.Start > vl.LastLine.End {
		s = cv.mgr.InnermostAt(line.Start)
	}
	if s == nil {
		return false
	}
	cv.mgr.Toggle(s)
	cv.normalizeCursor()
	return true
}

// CollapseAllFolds folds every section.
func (cv *CodeView) CollapseAllFolds() {
	if cv.mgr == nil {
		return
	}
	cv.mgr.CollapseAll()
	cv.normalizeCursor()
}

// ExpandAllFolds unfolds every section.
func (cv *CodeView) ExpandAllFolds() {
	if cv.mgr == nil {
		return
	}
	cv.mgr.ExpandAll()
	cv.normalizeCursor()
}

// ToggleWrap は折り返しを切り替えて新しい状態を返す
func (cv *CodeView) ToggleWrap() bool {
	cv.wrap = !cv.wrap
	cv.ensureCursorVisible()
	return cv.wrap
}

// ClearHover はマージンのホバー表示を消す
func (cv *CodeView) ClearHover() {
	cv.margin.Hover(-1)
}

// lineStyles は 1 行ぶんのトークンをルーンごとのスタイルに展開する
func (cv *CodeView) lineStyles(line document.Line, base tcell.Style) []tcell.Style {
	if line.Number-1 < 0 || line.Number-1 >= len(cv.tokens) {
		return nil
	}
	var styles []tcell.Style
	for _, token := range cv.tokens[line.Number-1] {
		style := util.TokenStyle(token.Type, base)
		for range token.Value {
			styles = append(styles, style)
		}
	}
	return styles
}

// cellStyle はセルのドキュメント位置に対応するトークンのスタイルを返す
func (cv *CodeView) cellStyle(cell Cell, base tcell.Style, cache map[int][]tcell.Style) tcell.Style {
	line := cv.doc.LineContaining(cell.Offset)
	styles, ok := cache[line.Number]
	if !ok {
		styles = cv.lineStyles(line, base)
		cache[line.Number] = styles
	}
	idx := cell.Offset - line.Start
	if idx < 0 || idx >= len(styles) {
		return base
	}
	return styles[idx]
}

// Draw draws this primitive onto the screen.
func (cv *CodeView) Draw(screen tcell.Screen) {
	cv.Box.DrawForSubclass(screen, cv)
	x, y, width, height := cv.GetInnerRect()
	if cv.doc == nil || width <= 0 || height <= 0 {
		return
	}

	digits := calculateLineNumberDigits(cv.doc.LineCount())
	textWidth := cv.textWidth(width)
	textX := x + FoldMarginWidth + digits + GutterPadding

	cv.vp = BuildViewport(cv.doc, cv.mgr, cv.topLine, textWidth, height, cv.wrap, cv.tabWidth)
	cv.margin.rebuild(cv.vp, cv.mgr)
	cv.margin.draw(screen, x, y, height)

	bg := util.BackgroundColor.ToTcellColor()
	styleCache := map[int][]tcell.Style{}

	for r, row := range cv.vp.Rows {
		if r >= height {
			break
		}
		onCursorLine := row.Line.FirstLine.Number <= cv.cursorLine && cv.cursorLine <= row.Line.LastLine.Number
		rowBg := bg
		if onCursorLine {
			rowBg = util.CursorLineColor.ToTcellColor()
		}
		base := tcell.StyleDefault.Background(rowBg).Foreground(util.TextColor.ToTcellColor())
		numberStyle := base.Foreground(util.LineNumberColor.ToTcellColor())

		// 行番号は表示行の先頭の段にだけ描く
		col := x + FoldMarginWidth
		if row.Index == 0 {
			for _, nr := range fmt.Sprintf("%*d", digits, row.Line.FirstLine.Number) {
				screen.SetContent(col, y+r, nr, nil, numberStyle)
				col++
			}
		} else {
			for i := 0; i < digits; i++ {
				screen.SetContent(col, y+r, ' ', nil, numberStyle)
				col++
			}
		}
		screen.SetContent(col, y+r, ' ', nil, base)

		tx := textX
		for _, cell := range row.Cells {
			w := cellWidth(cell.Rune)
			if tx+w > textX+textWidth {
				break
			}
			style := base
			if cell.Placeholder {
				style = base.Foreground(util.CollapsedMarkColor.ToTcellColor())
			} else {
				style = cv.cellStyle(cell, base, styleCache)
			}
			screen.SetContent(tx, y+r, cell.Rune, nil, style)
			tx += w
		}
		for ; tx < x+width; tx++ {
			screen.SetContent(tx, y+r, ' ', nil, base)
		}
	}
}

// clickRow はクリックされた行へカーソルを移動する。プレースホルダーの上なら展開する
func (cv *CodeView) clickRow(row, mx int) {
	if cv.vp == nil || row < 0 || row >= len(cv.vp.Rows) {
		return
	}
	vr := cv.vp.Rows[row]
	x, _, _, _ := cv.GetInnerRect()
	digits := calculateLineNumberDigits(cv.doc.LineCount())
	textX := x + FoldMarginWidth + digits + GutterPadding

	if mx >= textX {
		tx := textX
		for _, cell := range vr.Cells {
			w := cellWidth(cell.Rune)
			if mx < tx+w {
				if cell.Placeholder && cell.Section != nil {
					cv.mgr.Toggle(cell.Section)
					cv.normalizeCursor()
					cv.notifyChanged()
					return
				}
				break
			}
			tx += w
		}
	}
	cv.cursorLine = vr.Line.FirstLine.Number
	cv.notifyChanged()
}

// MouseHandler returns the mouse handler for this primitive.
func (cv *CodeView) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return cv.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (bool, tview.Primitive) {
		mx, my := event.Position()
		if !cv.InRect(mx, my) {
			return false, nil
		}
		x, y, _, _ := cv.GetInnerRect()
		row := my - y

		switch action {
		case tview.MouseLeftDown:
			setFocus(cv)
			if mx == x {
				if cv.margin.Click(row) {
					cv.normalizeCursor()
					cv.notifyChanged()
				}
			} else {
				cv.clickRow(row, mx)
			}
			return true, nil
		case tview.MouseMove:
			if mx == x {
				if cv.margin.Hover(row) {
					return true, nil
				}
			} else if cv.margin.Hover(-1) {
				return true, nil
			}
		case tview.MouseScrollUp:
			cv.ScrollBy(-WheelScrollLines)
			return true, nil
		case tview.MouseScrollDown:
			cv.ScrollBy(WheelScrollLines)
			return true, nil
		}
		return false, nil
	})
}
