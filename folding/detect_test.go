package folding

import (
	"testing"

	"github.com/sukechannnn/origami/document"
	"github.com/sukechannnn/origami/util"
)

func TestDetectBraces(t *testing.T) {
	text := "func main() {\n" + // { は 12
		"\tif x {\n" + // { は 20
		"\t\ty()\n" +
		"\t}\n" + // } は 29
		"}\n" // } は 31
	doc := document.New(text)
	tokens := util.TokenizeCode("main.go", doc.LineTexts())
	if tokens == nil {
		t.Fatal("expected tokens for Go source")
	}

	got := DetectBraces(doc, tokens)
	want := map[[2]int]bool{
		{20, 30}: true,
		{12, 32}: true,
	}
	if len(got) != len(want) {
		t.Fatalf("DetectBraces returned %d ranges, want %d: %+v", len(got), len(want), got)
	}
	for _, r := range got {
		if !want[[2]int{r.Start, r.End}] {
			t.Errorf("unexpected range [%d, %d)", r.Start, r.End)
		}
		if r.Title != "{⋯}" {
			t.Errorf("range [%d, %d) Title = %q, want %q", r.Start, r.End, r.Title, "{⋯}")
		}
	}
}

func TestDetectBracesIgnoresStringsAndComments(t *testing.T) {
	text := "s := \"{ not a brace\"\n" +
		"// { also not\n" +
		"m := map[string]int{\n" + // { は 54
		"\t\"a\": 1,\n" +
		"}\n" // } は 65
	doc := document.New(text)
	tokens := util.TokenizeCode("braces.go", doc.LineTexts())
	if tokens == nil {
		t.Fatal("expected tokens for Go source")
	}

	got := DetectBraces(doc, tokens)
	if len(got) != 1 {
		t.Fatalf("DetectBraces returned %d ranges, want 1: %+v", len(got), got)
	}
	if got[0].Start != 54 || got[0].End != 66 {
		t.Errorf("range = [%d, %d), want [54, 66)", got[0].Start, got[0].End)
	}
}

func TestDetectBracesSingleLineIgnored(t *testing.T) {
	text := "x := struct{ a int }{a: 1}\n"
	doc := document.New(text)
	tokens := util.TokenizeCode("single.go", doc.LineTexts())
	if tokens == nil {
		t.Fatal("expected tokens for Go source")
	}

	if got := DetectBraces(doc, tokens); len(got) != 0 {
		t.Errorf("単一行の波括弧は折りたたみ対象外: got %+v", got)
	}
}

func TestDetectIndent(t *testing.T) {
	text := "def outer():\n" +
		"    x = 1\n" +
		"    if x:\n" +
		"        return\n" +
		"\n" +
		"print(\"done\")\n"
	doc := document.New(text)

	got := DetectIndent(doc, 4)
	want := [][2]int{
		{12, 47}, // def outer(): の配下（末尾の空行は含まない）
		{32, 47}, // if x: の配下
	}
	if len(got) != len(want) {
		t.Fatalf("DetectIndent returned %d ranges, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Start != w[0] || got[i].End != w[1] {
			t.Errorf("got[%d] = [%d, %d), want [%d, %d)", i, got[i].Start, got[i].End, w[0], w[1])
		}
	}
}

func TestDetectIndentTabs(t *testing.T) {
	text := "header:\n" +
		"\tchild: 1\n" +
		"\tchild: 2\n" +
		"other:\n"
	doc := document.New(text)

	got := DetectIndent(doc, 4)
	if len(got) != 1 {
		t.Fatalf("DetectIndent returned %d ranges, want 1: %+v", len(got), got)
	}
	// header: (7ルーン) の改行位置 7 から 2 つ目の child 行の末尾まで
	if got[0].Start != 7 || got[0].End != 27 {
		t.Errorf("range = [%d, %d), want [7, 27)", got[0].Start, got[0].End)
	}
}

func TestDetectIndentFlatFile(t *testing.T) {
	doc := document.New("a\nb\nc\n")
	if got := DetectIndent(doc, 4); len(got) != 0 {
		t.Errorf("インデントのないファイルに範囲は不要: got %+v", got)
	}
}

func TestDetectChoosesStrategy(t *testing.T) {
	goText := "func f() {\n\tx()\n}\n"
	goDoc := document.New(goText)
	goRanges := Detect("strategy_test_a.go", goDoc, 4)
	if len(goRanges) != 1 || goRanges[0].Title != "{⋯}" {
		t.Errorf("Go ファイルは波括弧で折りたたむべき: %+v", goRanges)
	}

	pyText := "def f():\n    return 1\n"
	pyDoc := document.New(pyText)
	pyRanges := Detect("strategy_test_b.py", pyDoc, 4)
	if len(pyRanges) != 1 || pyRanges[0].Title != "" {
		t.Errorf("Python ファイルはインデントで折りたたむべき: %+v", pyRanges)
	}
}
