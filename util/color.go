package util

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

type ColorColde string

const (
	BackgroundColor    = ColorColde("#272A32")
	TextColor          = ColorColde("#F8F8F2")
	CursorLineColor    = ColorColde("#383E50")
	LineNumberColor    = ColorColde("#495162")
	FoldLineColor      = ColorColde("#5C6370")
	CollapsedMarkColor = ColorColde("#C678DD")
	StatusMessageColor = ColorColde("#98C379")
	StatusErrorColor   = ColorColde("#E06C75")
)

func (c ColorColde) hex() string {
	return string(c)[1:]
}

func (c ColorColde) ToTcellColor() tcell.Color {
	hexValue, _ := strconv.ParseInt(c.hex(), 16, 32)
	return tcell.NewHexColor(int32(hexValue))
}

// Brighten は色を白方向に ratio (0.0〜1.0) だけ近づけた色を返す
func (c ColorColde) Brighten(ratio float64) ColorColde {
	base, err := colorful.Hex(string(c))
	if err != nil {
		return c
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	return ColorColde(base.BlendLab(white, ratio).Hex())
}

// FoldLineHoverColor はホバー中のフォールドガイドの色
var FoldLineHoverColor = FoldLineColor.Brighten(0.45)
