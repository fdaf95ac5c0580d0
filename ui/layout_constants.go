package ui

// レイアウト寸法の定数定義
const (
	// フォールドマージンの幅（マーカーとガイド線の 1 列）
	FoldMarginWidth = 1

	// 行番号と本文の間の空白
	GutterPadding = 1

	// マウスホイール 1 回分のスクロール行数
	WheelScrollLines = 3
)
