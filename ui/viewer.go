package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/sukechannnn/origami/document"
	"github.com/sukechannnn/origami/folding"
	"github.com/sukechannnn/origami/ui/commands"
	"github.com/sukechannnn/origami/util"
)

// statusView をグローバルに定義
var statusView *tview.TextView
var statusInfo string

func updateStatus(message string, color string) {
	if statusView != nil {
		statusView.SetText(fmt.Sprintf("[%s]%s[-]", color, message))
		go func() {
			time.Sleep(5 * time.Second)
			statusView.SetText(statusInfo)
		}()
	}
}

// ViewerOptions は起動時に渡すビューアの設定
type ViewerOptions struct {
	TabWidth   int
	Wrap       bool
	Theme      string
	Ref        string
	TopLine    int
	CursorLine int
	OnQuit     func(topLine, cursorLine int)
}

// ViewerContext contains all the context needed for viewer key bindings
type ViewerContext struct {
	// UI Components
	CodeView *CodeView
	App      *tview.Application

	// Paths
	FilePath string

	// Key handling state
	GPressed  *bool
	LastGTime *time.Time
	ZPressed  *bool
	LastZTime *time.Time

	// Callbacks
	UpdateViewerStatus func()
	UpdateStatus       func(string, string)
	ReloadFile         func() error
	OnQuit             func(topLine, cursorLine int)
}

// SetupViewerKeyBindings sets up key bindings for the file viewer
func SetupViewerKeyBindings(ctx *ViewerContext) {
	keyHandler := func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlD:
			ctx.CodeView.HalfPageDown()
			ctx.UpdateViewerStatus()
			return nil
		case tcell.KeyCtrlU:
			ctx.CodeView.HalfPageUp()
			ctx.UpdateViewerStatus()
			return nil
		case tcell.KeyRune:
			// za / zM / zR の 2 打目
			if *ctx.ZPressed && time.Since(*ctx.LastZTime) < 500*time.Millisecond {
				*ctx.ZPressed = false
				switch event.Rune() {
				case 'a':
					if ctx.CodeView.ToggleFoldAtCursor() {
						ctx.UpdateViewerStatus()
					} else {
						ctx.UpdateStatus("No fold under cursor", "yellow")
					}
					return nil
				case 'M':
					ctx.CodeView.CollapseAllFolds()
					ctx.UpdateViewerStatus()
					return nil
				case 'R':
					ctx.CodeView.ExpandAllFolds()
					ctx.UpdateViewerStatus()
					return nil
				}
			}
			switch event.Rune() {
			case 'z':
				// 1回目のz
				*ctx.ZPressed = true
				*ctx.LastZTime = time.Now()
				return nil
			case 'g':
				now := time.Now()
				if *ctx.GPressed && now.Sub(*ctx.LastGTime) < 500*time.Millisecond {
					// gg → 最上部
					ctx.CodeView.MoveToTop()
					*ctx.GPressed = false
					ctx.UpdateViewerStatus()
				} else {
					// 1回目のg
					*ctx.GPressed = true
					*ctx.LastGTime = now
				}
				return nil
			case 'G': // 大文字G → 最下部へ
				ctx.CodeView.MoveToBottom()
				ctx.UpdateViewerStatus()
				return nil
			case 'j':
				// 下移動
				ctx.CodeView.MoveCursorDown()
				ctx.UpdateViewerStatus()
				return nil
			case 'k':
				// 上移動
				ctx.CodeView.MoveCursorUp()
				ctx.UpdateViewerStatus()
				return nil
			case 'w':
				// 折り返しのトグル
				wrap := ctx.CodeView.ToggleWrap()
				ctx.UpdateViewerStatus()
				if wrap {
					ctx.UpdateStatus("Wrap: on", "gold")
				} else {
					ctx.UpdateStatus("Wrap: off", "gold")
				}
				return nil
			case 'y':
				// カーソル行をコピー
				d := ctx.CodeView.Document()
				line, ok := d.Line(ctx.CodeView.CursorLine())
				if !ok {
					return nil
				}
				if err := commands.CopyToClipboard(d.LineText(line)); err != nil {
					ctx.UpdateStatus("Copy failed!", "firebrick")
				} else {
					ctx.UpdateStatus("Line copied!", "gold")
				}
				return nil
			case 'Y':
				// ファイルパスをコピー
				if err := commands.CopyFilePath(ctx.FilePath); err != nil {
					ctx.UpdateStatus("Copy failed!", "firebrick")
				} else {
					ctx.UpdateStatus("Path copied!", "gold")
				}
				return nil
			case 'r':
				// ファイルを読み直す
				if err := ctx.ReloadFile(); err != nil {
					ctx.UpdateStatus(fmt.Sprintf("Reload failed: %v", err), "firebrick")
				} else {
					ctx.UpdateViewerStatus()
					ctx.UpdateStatus("Reloaded!", "gold")
				}
				return nil
			case 'q':
				// アプリ終了
				if ctx.OnQuit != nil {
					ctx.OnQuit(ctx.CodeView.TopLine(), ctx.CodeView.CursorLine())
				}
				go func() {
					time.Sleep(100 * time.Millisecond)
					os.Exit(0)
				}()
				ctx.App.Stop()
				return nil
			}
		}
		return event
	}

	ctx.CodeView.SetInputCapture(keyHandler)
}

// ShowFileViewer はフォールドマージンつきのファイルビューアを組み立てる
func ShowFileViewer(app *tview.Application, filePath string, content string, opts ViewerOptions) tview.Primitive {
	util.SetSyntaxStyle(opts.Theme)

	tabWidth := opts.TabWidth
	if tabWidth <= 0 {
		tabWidth = 4
	}

	doc := document.New(content)
	mgr := folding.NewManager(doc)
	mgr.SetSections(folding.Detect(filePath, doc, tabWidth))

	codeView := NewCodeView().
		SetDocument(filePath, doc, mgr).
		SetTabWidth(tabWidth).
		SetWrap(opts.Wrap)
	if opts.TopLine > 0 || opts.CursorLine > 0 {
		codeView.RestorePosition(opts.TopLine, opts.CursorLine)
	}

	statusView = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	statusView.SetBorder(false)
	statusView.SetBackgroundColor(util.BackgroundColor.ToTcellColor())

	updateViewerStatus := func() {
		wrap := "off"
		if codeView.Wrap() {
			wrap = "on"
		}
		location := filePath
		if opts.Ref != "" {
			location = fmt.Sprintf("%s @ %s", filePath, opts.Ref)
		}
		d := codeView.Document()
		m := codeView.Manager()
		statusInfo = fmt.Sprintf(" %s | %d/%d | folds: %d (%d closed) | wrap: %s",
			location, codeView.CursorLine(), d.LineCount(), m.Count(), m.CollapsedCount(), wrap)
		statusView.SetText(statusInfo)
	}
	codeView.SetChangedFunc(updateViewerStatus)

	reloadFile := func() error {
		raw, err := util.ReadFileContent(filePath)
		if err != nil {
			return err
		}
		newDoc := document.New(util.NormalizeNewlines(raw))
		mgr.SetDocument(newDoc)
		mgr.SetSections(folding.Detect(filePath, newDoc, tabWidth))
		codeView.ReplaceDocument(newDoc)
		return nil
	}

	// マージンの外へポインタが出たらホバー表示を解除する
	app.EnableMouse(true)
	app.SetMouseCapture(func(event *tcell.EventMouse, action tview.MouseAction) (*tcell.EventMouse, tview.MouseAction) {
		if action == tview.MouseMove && !codeView.InRect(event.Position()) {
			codeView.ClearHover()
		}
		return event, action
	})

	var gPressed bool
	var lastGTime time.Time
	var zPressed bool
	var lastZTime time.Time

	ctx := &ViewerContext{
		CodeView:           codeView,
		App:                app,
		FilePath:           filePath,
		GPressed:           &gPressed,
		LastGTime:          &lastGTime,
		ZPressed:           &zPressed,
		LastZTime:          &lastZTime,
		UpdateViewerStatus: updateViewerStatus,
		UpdateStatus:       updateStatus,
		ReloadFile:         reloadFile,
		OnQuit:             opts.OnQuit,
	}
	SetupViewerKeyBindings(ctx)

	updateViewerStatus()

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(codeView, 0, 1, true).
		AddItem(statusView, 1, 0, false)

	return flex
}
