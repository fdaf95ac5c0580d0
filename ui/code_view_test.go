package ui

import (
	"strings"
	"testing"

	"github.com/sukechannnn/origami/document"
	"github.com/sukechannnn/origami/folding"
)

// newTestCodeView は 5 行のドキュメントと 2〜4 行目のセクションを持つビューを作る
func newTestCodeView(t *testing.T) (*CodeView, *folding.Section) {
	t.Helper()
	doc := document.New("aaaa\nbbbb\ncccc\ndddd\neeee\n")
	mgr := folding.NewManager(doc)
	s, err := mgr.Add(5, 20)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	cv := NewCodeView().SetDocument("notes.txt", doc, mgr)
	cv.SetRect(0, 0, 40, 10)
	return cv, s
}

func TestCodeViewMoveCursorSkipsCollapsed(t *testing.T) {
	cv, s := newTestCodeView(t)
	s.Collapsed = true

	cv.MoveCursorDown()
	if cv.CursorLine() != 2 {
		t.Errorf("CursorLine() = %d, want 2", cv.CursorLine())
	}

	// 畳まれた 2〜4 行目はひとつの表示行として飛び越える
	cv.MoveCursorDown()
	if cv.CursorLine() != 5 {
		t.Errorf("CursorLine() = %d, want 5", cv.CursorLine())
	}

	cv.MoveCursorUp()
	if cv.CursorLine() != 2 {
		t.Errorf("CursorLine() = %d, want 2", cv.CursorLine())
	}

	cv.MoveCursorUp()
	if cv.CursorLine() != 1 {
		t.Errorf("CursorLine() = %d, want 1", cv.CursorLine())
	}
}

func TestCodeViewMoveCursorStopsAtEdges(t *testing.T) {
	cv, _ := newTestCodeView(t)

	cv.MoveCursorUp()
	if cv.CursorLine() != 1 {
		t.Errorf("CursorLine() = %d, want 1", cv.CursorLine())
	}

	cv.MoveToBottom()
	if cv.CursorLine() != 5 {
		t.Errorf("CursorLine() = %d, want 5", cv.CursorLine())
	}

	cv.MoveCursorDown()
	if cv.CursorLine() != 5 {
		t.Errorf("CursorLine() = %d, want 5", cv.CursorLine())
	}
}

func TestCodeViewToggleFoldAtCursor(t *testing.T) {
	cv, s := newTestCodeView(t)

	// セクションの途中の行では一番内側のセクションを畳む
	cv.cursorLine = 3
	if !cv.ToggleFoldAtCursor() {
		t.Fatal("ToggleFoldAtCursor() = false, want true")
	}
	if !s.Collapsed {
		t.Error("section should be collapsed")
	}
	if cv.CursorLine() != 2 {
		t.Errorf("CursorLine() = %d, want 2", cv.CursorLine())
	}

	// マーカーのある表示行ではそのセクションを開く
	if !cv.ToggleFoldAtCursor() {
		t.Fatal("ToggleFoldAtCursor() = false, want true")
	}
	if s.Collapsed {
		t.Error("section should be expanded")
	}
}

func TestCodeViewToggleFoldOutsideSection(t *testing.T) {
	cv, _ := newTestCodeView(t)

	// どのセクションにも入っていない行では何も起きない
	cv.cursorLine = 1
	if cv.ToggleFoldAtCursor() {
		t.Error("ToggleFoldAtCursor() = true, want false")
	}
}

func TestCodeViewEnsureCursorVisibleScrolls(t *testing.T) {
	doc := document.New(strings.Repeat("aaaa\n", 20))
	mgr := folding.NewManager(doc)
	cv := NewCodeView().SetDocument("notes.txt", doc, mgr)
	cv.SetRect(0, 0, 20, 5)

	cv.MoveToBottom()
	if cv.CursorLine() != 20 {
		t.Fatalf("CursorLine() = %d, want 20", cv.CursorLine())
	}
	if cv.topLine != 16 {
		t.Errorf("topLine = %d, want 16", cv.topLine)
	}

	cv.MoveToTop()
	if cv.topLine != 1 || cv.CursorLine() != 1 {
		t.Errorf("topLine = %d, CursorLine() = %d, want 1, 1", cv.topLine, cv.CursorLine())
	}
}

func TestCodeViewScrollByClampsCursor(t *testing.T) {
	doc := document.New(strings.Repeat("aaaa\n", 20))
	mgr := folding.NewManager(doc)
	cv := NewCodeView().SetDocument("notes.txt", doc, mgr)
	cv.SetRect(0, 0, 20, 5)

	cv.ScrollBy(3)
	if cv.topLine != 4 {
		t.Errorf("topLine = %d, want 4", cv.topLine)
	}
	if cv.CursorLine() != 4 {
		t.Errorf("CursorLine() = %d, want 4", cv.CursorLine())
	}

	cv.ScrollBy(-10)
	if cv.topLine != 1 {
		t.Errorf("topLine = %d, want 1", cv.topLine)
	}
	if cv.CursorLine() != 4 {
		t.Errorf("CursorLine() = %d, want 4", cv.CursorLine())
	}
}

func TestCodeViewHalfPage(t *testing.T) {
	doc := document.New(strings.Repeat("aaaa\n", 20))
	mgr := folding.NewManager(doc)
	cv := NewCodeView().SetDocument("notes.txt", doc, mgr)
	cv.SetRect(0, 0, 20, 10)

	cv.HalfPageDown()
	if cv.CursorLine() != 6 {
		t.Errorf("CursorLine() = %d, want 6", cv.CursorLine())
	}

	cv.HalfPageUp()
	if cv.CursorLine() != 1 {
		t.Errorf("CursorLine() = %d, want 1", cv.CursorLine())
	}
}

func TestCodeViewCollapseAllMovesCursorToStart(t *testing.T) {
	cv, s := newTestCodeView(t)

	cv.cursorLine = 4
	cv.CollapseAllFolds()
	if !s.Collapsed {
		t.Error("section should be collapsed")
	}
	if cv.CursorLine() != 2 {
		t.Errorf("CursorLine() = %d, want 2", cv.CursorLine())
	}

	cv.ExpandAllFolds()
	if s.Collapsed {
		t.Error("section should be expanded")
	}
}
