package ui

import (
	"github.com/sukechannnn/origami/folding"
)

// strokeRun は同じ色で連続する縦線の区間。top と bottom は行境界の索引で、
// 区間は境界 top から境界 bottom までを覆う
type strokeRun struct {
	pen    pen
	top    int
	bottom int
}

// mergeStrokes は行境界ごとの色から連続する縦線の区間をまとめる。
// 色が変わる境界で区間が分かれ、penNone の境界は区間に含まれない
func mergeStrokes(colors []pen) []strokeRun {
	var runs []strokeRun
	i := 0
	for i < len(colors) {
		if colors[i] == penNone {
			i++
			continue
		}
		j := i
		for j+1 < len(colors) && colors[j+1] == colors[i] {
			j++
		}
		runs = append(runs, strokeRun{pen: colors[i], top: i, bottom: j})
		i = j + 1
	}
	return runs
}

// strokeGlyph は行の上半分・下半分の縦線と終端マークの有無からグリフを選ぶ
func strokeGlyph(up, down, end bool) rune {
	switch {
	case up && down && end:
		return '├'
	case up && down:
		return '│'
	case up && end:
		return '╰'
	case down && end:
		return '┌'
	case end:
		return '╶'
	case up:
		return '╵'
	case down:
		return '╷'
	default:
		return ' '
	}
}

// maxPen は引数のうち最も優先度の高い色を返す
func maxPen(pens ...pen) pen {
	m := penNone
	for _, p := range pens {
		if p > m {
			m = p
		}
	}
	return m
}

// foldGlyphs は縦線の区間と終端マーク、マーカーから行ごとのグリフと色を
// 組み立てる。マーカーの行はガイド線よりマーカーのグリフが優先される
func foldGlyphs(colors, endCaps []pen, markers []*marker, hovered *folding.Section) ([]rune, []pen) {
	rows := len(endCaps)
	up := make([]pen, rows)
	down := make([]pen, rows)
	for _, run := range mergeStrokes(colors) {
		for b := run.top; b <= run.bottom; b++ {
			// 境界 b の縦線は行 b の上半分と行 b-1 の下半分にかかる
			if b < rows {
				up[b] = run.pen
			}
			if b > 0 && b-1 < rows {
				down[b-1] = run.pen
			}
		}
	}

	glyphs := make([]rune, rows)
	pens := make([]pen, rows)
	for r := 0; r < rows; r++ {
		glyphs[r] = strokeGlyph(up[r] != penNone, down[r] != penNone, endCaps[r] != penNone)
		pens[r] = maxPen(up[r], down[r], endCaps[r])
	}

	for _, m := range markers {
		if m.row < 0 || m.row >= rows {
			continue
		}
		if m.section.Collapsed {
			glyphs[m.row] = '▸'
		} else {
			glyphs[m.row] = '▾'
		}
		if hovered != nil && m.section == hovered {
			pens[m.row] = penHovered
		} else if pens[m.row] == penNone {
			pens[m.row] = penPlain
		}
	}

	return glyphs, pens
}
