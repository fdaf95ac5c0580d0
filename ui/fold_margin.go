package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/sukechannnn/origami/folding"
	"github.com/sukechannnn/origami/util"
)

// marker はフォールドの開始行に表示される開閉ウィジェット
type marker struct {
	section *folding.Section
	row     int
}

// FoldingMargin は行番号の左に表示されるフォールドマーカーとガイド線の列。
// CodeView に取り付けて使い、マウスによる開閉とホバー中の強調を受け持つ
type FoldingMargin struct {
	host    *CodeView
	markers []*marker
	hovered *folding.Section
}

func NewFoldingMargin() *FoldingMargin {
	return &FoldingMargin{}
}

// Attach binds the margin to a code view. The view draws the margin as part
// of its own draw pass and forwards mouse events that land on its column.
func (fm *FoldingMargin) Attach(host *CodeView) {
	fm.host = host
}

// Detach unbinds the margin. A detached margin draws nothing.
func (fm *FoldingMargin) Detach() {
	fm.host = nil
	fm.markers = nil
	fm.hovered = nil
}

// buildMarkers は各表示行の先頭で始まる最初のセクションにマーカーを置く。
// 以降にセクションがひとつも無くなったら走査を打ち切る
func buildMarkers(vp *Viewport, mgr *folding.Manager) []*marker {
	var markers []*marker
	row := 0
	for _, vl := range vp.Lines {
		fs := mgr.NextAtOrAfter(vl.FirstLine.Start)
		if fs == nil {
			break
		}
		if fs.Start <= vl.LastLine.End {
			markers = append(markers, &marker{section: fs, row: row})
		}
		row += vl.RowCount
	}
	return markers
}

// rebuild は表示範囲の変化に合わせてマーカーを作り直す
func (fm *FoldingMargin) rebuild(vp *Viewport, mgr *folding.Manager) {
	fm.markers = buildMarkers(vp, mgr)
	if fm.hovered == nil {
		return
	}
	// 画面から消えたセクションへのホバーは解除する
	for _, m := range fm.markers {
		if m.section == fm.hovered {
			return
		}
	}
	fm.hovered = nil
}

// markerAt は画面上の行にあるマーカーを返す
func (fm *FoldingMargin) markerAt(row int) *marker {
	for _, m := range fm.markers {
		if m.row == row {
			return m
		}
	}
	return nil
}

// Hover は行へのポインタ移動を処理し、表示が変わったら true を返す
func (fm *FoldingMargin) Hover(row int) bool {
	var section *folding.Section
	if m := fm.markerAt(row); m != nil {
		section = m.section
	}
	if section == fm.hovered {
		return false
	}
	fm.hovered = section
	return true
}

// Click は行へのクリックを処理し、マーカーを開閉したら true を返す
func (fm *FoldingMargin) Click(row int) bool {
	if fm.host == nil {
		return false
	}
	m := fm.markerAt(row)
	if m == nil {
		return false
	}
	fm.host.mgr.Toggle(m.section)
	return true
}

// draw はガイド線とマーカーを 1 列に描く
func (fm *FoldingMargin) draw(screen tcell.Screen, x, y, height int) {
	if fm.host == nil {
		return
	}
	vp := fm.host.vp
	if vp == nil {
		return
	}

	colors, endCaps := foldLineColors(vp, fm.host.mgr, fm.markers, fm.hovered)
	glyphs, pens := foldGlyphs(colors, endCaps, fm.markers, fm.hovered)

	bg := util.BackgroundColor.ToTcellColor()
	plain := tcell.StyleDefault.Background(bg).Foreground(util.FoldLineColor.ToTcellColor())
	hover := tcell.StyleDefault.Background(bg).Foreground(util.FoldLineHoverColor.ToTcellColor())

	for r := 0; r < height; r++ {
		glyph := ' '
		style := plain
		if r < len(glyphs) {
			glyph = glyphs[r]
			if pens[r] == penHovered {
				style = hover
			}
		}
		screen.SetContent(x, y+r, glyph, nil, style)
	}
}
