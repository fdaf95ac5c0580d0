package util

import (
	"hash/fnv"
	"path/filepath"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
	"github.com/go-enry/go-enry/v2"
)

// syntaxStyle is the chroma style used for syntax highlighting
var syntaxStyle = styles.Get("catppuccin-frappe")

// SetSyntaxStyle は設定ファイルで指定されたスタイル名に切り替える
func SetSyntaxStyle(name string) {
	if name == "" {
		return
	}
	if s := styles.Get(name); s != nil {
		syntaxStyle = s
	}
}

// DetectLanguage はファイル名と内容から言語名を判定する
func DetectLanguage(filePath string, content string) string {
	return enry.GetLanguage(filepath.Base(filePath), []byte(content))
}

// selectLexer はファイル名、言語判定、内容推定の順でレキサーを選ぶ
func selectLexer(filePath string, codeText string) chroma.Lexer {
	lexer := lexers.Match(filePath)
	if lexer == nil {
		if lang := DetectLanguage(filePath, codeText); lang != "" {
			lexer = lexers.Get(lang)
		}
	}
	if lexer == nil {
		lexer = lexers.Analyse(codeText)
	}
	return lexer
}

// tokenCache caches tokenized results using a hash key for fast comparison
var tokenCache struct {
	sync.Mutex
	key    uint64
	tokens [][]chroma.Token
}

// hashCacheKey computes a fast hash for the cache key
func hashCacheKey(filePath string, codeLines []string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(filePath))
	h.Write([]byte{0})
	for _, line := range codeLines {
		h.Write([]byte(line))
		h.Write([]byte{'\n'})
	}
	return h.Sum64()
}

// TokenizeCode tokenizes code lines using chroma.
// It caches the result for repeated calls with the same filePath and code.
func TokenizeCode(filePath string, codeLines []string) [][]chroma.Token {
	cacheKey := hashCacheKey(filePath, codeLines)

	tokenCache.Lock()
	if tokenCache.key == cacheKey {
		result := tokenCache.tokens
		tokenCache.Unlock()
		return result
	}
	tokenCache.Unlock()

	codeText := strings.Join(codeLines, "\n")

	lexer := selectLexer(filePath, codeText)
	if lexer == nil {
		return nil
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, codeText)
	if err != nil {
		return nil
	}

	// Build per-line token slices
	result := make([][]chroma.Token, len(codeLines))
	lineIdx := 0
	for _, tok := range iterator.Tokens() {
		if lineIdx >= len(codeLines) {
			break
		}
		// Split tokens that span multiple lines
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lineIdx++
				if lineIdx >= len(codeLines) {
					break
				}
			}
			if part != "" {
				result[lineIdx] = append(result[lineIdx], chroma.Token{
					Type:  tok.Type,
					Value: part,
				})
			}
		}
	}

	tokenCache.Lock()
	tokenCache.key = cacheKey
	tokenCache.tokens = result
	tokenCache.Unlock()

	return result
}

// TokenStyle はトークン種別に応じた描画スタイルを返す
func TokenStyle(tt chroma.TokenType, base tcell.Style) tcell.Style {
	if syntaxStyle == nil {
		return base.Foreground(TextColor.ToTcellColor())
	}
	entry := syntaxStyle.Get(tt)
	st := base
	if entry.Colour.IsSet() {
		st = st.Foreground(tcell.NewRGBColor(int32(entry.Colour.Red()), int32(entry.Colour.Green()), int32(entry.Colour.Blue())))
	} else {
		st = st.Foreground(TextColor.ToTcellColor())
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	return st
}
