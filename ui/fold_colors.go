package ui

import (
	"github.com/sukechannnn/origami/folding"
)

// pen はフォールドガイドの描画状態。数値が大きいほど優先される
type pen uint8

const (
	penNone pen = iota
	penPlain
	penHovered
)

// foldLineColors は可視範囲のフォールドガイドの色を計算する。
// colors は行境界ごとの縦線の色で、先頭が画面上端、各要素 i が行 i の上端の境界。
// 最後の要素は一番下の行からさらに下へ続く線を表す。endCaps は行ごとの終端マーク
func foldLineColors(vp *Viewport, mgr *folding.Manager, markers []*marker, hovered *folding.Section) (colors []pen, endCaps []pen) {
	colors = make([]pen, len(vp.Rows)+1)
	endCaps = make([]pen, len(vp.Rows))
	if len(vp.Rows) == 0 {
		return colors, endCaps
	}

	ambientFoldColors(vp, mgr, colors, endCaps)

	sections := make([]*folding.Section, len(markers))
	for i, m := range markers {
		sections[i] = m.section
	}
	markerFoldColors(vp, sections, hovered, colors, endCaps)

	return colors, endCaps
}

// ambientFoldColors は画面より上で始まってまだ閉じていないセクションの
// 縦線と終端マークを書き込む
func ambientFoldColors(vp *Viewport, mgr *folding.Manager, colors, endCaps []pen) {
	viewStart := vp.FirstOffset()
	viewEnd := vp.LastOffset()

	maxEnd := 0
	for _, fs := range mgr.FoldingsContaining(viewStart) {
		end := fs.End
		if end-1 <= viewEnd && !fs.Collapsed {
			if idx := vp.RowIndexOfOffset(end - 1); idx >= 0 {
				endCaps[idx] = penPlain
			}
		}
		if end > maxEnd && fs.Start < viewStart {
			maxEnd = end
		}
	}

	if maxEnd == 0 {
		return
	}
	if maxEnd-1 > viewEnd {
		// 画面の下端を突き抜けて続く
		for i := range colors {
			colors[i] = penPlain
		}
	} else if idx := vp.RowIndexOfOffset(maxEnd - 1); idx >= 0 {
		for i := 0; i <= idx; i++ {
			colors[i] = penPlain
		}
	}
}

// markerFoldColors は画面内にマーカーを持つ各セクションの縦線と終端マークを
// 書き込む。ホバー中のセクションは常に上書きし、それ以外は空いている境界
// だけを塗る
func markerFoldColors(vp *Viewport, sections []*folding.Section, hovered *folding.Section, colors, endCaps []pen) {
	for _, fs := range sections {
		isHovered := fs == hovered

		endIdx := vp.RowIndexOfOffset(fs.End - 1)
		if !fs.Collapsed && endIdx >= 0 {
			if isHovered {
				endCaps[endIdx] = penHovered
			} else if endCaps[endIdx] == penNone {
				endCaps[endIdx] = penPlain
			}
		}

		startIdx := vp.RowIndexOfOffset(fs.Start)
		if startIdx < 0 {
			continue
		}
		// 終端が画面外なら一番下の境界まで塗り続ける
		for i := startIdx + 1; i < len(colors) && i-1 != endIdx; i++ {
			if isHovered {
				colors[i] = penHovered
			} else if colors[i] == penNone {
				colors[i] = penPlain
			}
		}
	}
}
