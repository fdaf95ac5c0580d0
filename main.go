package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/rivo/tview"
	"github.com/sukechannnn/origami/config"
	"github.com/sukechannnn/origami/git"
	"github.com/sukechannnn/origami/history"
	"github.com/sukechannnn/origami/ui"
	"github.com/sukechannnn/origami/util"
)

func main() {
	ref := flag.String("ref", "", "show the file as of a git revision")
	recent := flag.Bool("recent", false, "list recently opened files and exit")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var store *history.Store
	if cfg.History {
		store, err = history.Open(cfg.HistoryPath)
		if err != nil {
			log.Fatalf("Failed to open history: %v", err)
		}
		defer store.Close()
	}

	if *recent {
		if store == nil {
			log.Fatal("History is disabled in config")
		}
		entries, err := store.Recent(10)
		if err != nil {
			log.Fatalf("Failed to list recent files: %v", err)
		}
		for _, e := range entries {
			fmt.Printf("%s:%d\n", e.Path, e.CursorLine)
		}
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: origami [-ref revision] [-recent] <file>")
		os.Exit(1)
	}
	filePath := flag.Arg(0)

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		log.Fatalf("Failed to resolve path: %v", err)
	}

	var content string
	statusRef := ""
	if *ref != "" {
		// リポジトリルートからの相対パスに直して指定リビジョンの内容を読む
		repoRoot, err := git.FindRepoRoot(filepath.Dir(absPath))
		if err != nil {
			log.Fatalf("Failed to find repository: %v", err)
		}
		relPath, err := filepath.Rel(repoRoot, absPath)
		if err != nil {
			log.Fatalf("Failed to resolve path in repository: %v", err)
		}
		content, err = git.GetFileAtRef(repoRoot, filepath.ToSlash(relPath), *ref)
		if err != nil {
			log.Fatalf("Failed to read %s at %s: %v", filePath, *ref, err)
		}
		statusRef = *ref
	} else {
		content, err = util.ReadFileContent(absPath)
		if err != nil {
			log.Fatalf("Failed to read file: %v", err)
		}
		// リポジトリ内ならブランチ名をステータスバーに出す
		if branch, err := git.CurrentBranch(filepath.Dir(absPath)); err == nil {
			statusRef = branch
		}
	}

	if !util.IsTextContent([]byte(content)) {
		log.Fatalf("%s is not a text file", filePath)
	}
	content = util.NormalizeNewlines(content)

	// 前回の表示位置を復元する
	topLine, cursorLine := 0, 0
	if store != nil {
		if entry, ok, err := store.Lookup(absPath); err == nil && ok {
			topLine = entry.TopLine
			cursorLine = entry.CursorLine
		}
	}

	app := tview.NewApplication()
	root := ui.ShowFileViewer(app, filePath, content, ui.ViewerOptions{
		TabWidth:   cfg.TabWidth,
		Wrap:       cfg.Wrap,
		Theme:      cfg.Theme,
		Ref:        statusRef,
		TopLine:    topLine,
		CursorLine: cursorLine,
		OnQuit: func(topLine, cursorLine int) {
			if store != nil {
				store.Touch(absPath, topLine, cursorLine)
			}
		},
	})

	if err := app.SetRoot(root, true).Run(); err != nil {
		log.Fatalf("Failed to run application: %v", err)
	}
}
