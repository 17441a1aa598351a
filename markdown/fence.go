package markdown

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/yuin/goldmark/util"

	"github.com/miosa/osa-chatview/message"
)

// CodeFence is one code block extracted during a render pass.
type CodeFence struct {
	Language string
	Code     string
	Key      string
}

// Highlighter renders a code block. Implementations should fall back to
// unhighlighted output for languages they do not know.
type Highlighter interface {
	Highlight(w io.Writer, fence CodeFence) error
}

// HighlighterFunc adapts a function to Highlighter.
type HighlighterFunc func(w io.Writer, fence CodeFence) error

func (f HighlighterFunc) Highlight(w io.Writer, fence CodeFence) error { return f(w, fence) }

// PlainHighlighter writes the block as an escaped <pre><code>, without
// highlighting.
var PlainHighlighter = HighlighterFunc(func(w io.Writer, fence CodeFence) error {
	class := ""
	if fence.Language != "" {
		class = ` class="language-` + fence.Language + `"`
	}
	_, err := fmt.Fprintf(w, "<pre data-key=\"%s\"><code%s>%s</code></pre>\n",
		fence.Key, class, util.EscapeHTML([]byte(fence.Code)))
	return err
})

var languagePattern = regexp.MustCompile(`language-(\w+)`)

// LanguageFromClass extracts the language name from a class attribute
// holding a "language-<name>" token. Returns "" when there is none.
func LanguageFromClass(class string) string {
	if m := languagePattern.FindStringSubmatch(class); m != nil {
		return m[1]
	}
	return ""
}

// StripTrailingNewline removes exactly one trailing "\n".
func StripTrailingNewline(s string) string {
	return strings.TrimSuffix(s, "\n")
}

// UnescapeCursor replaces the first escaped streaming cursor with the glyph.
func UnescapeCursor(s string) string {
	return strings.Replace(s, message.EscapedCursor, message.Cursor, 1)
}

// IsCursor reports whether s is exactly the streaming cursor glyph.
func IsCursor(s string) bool {
	return s == message.Cursor
}

// fenceKey derives a block identity from its position in the document and
// its contents, so re-rendering a message yields the same keys.
func fenceKey(ordinal int, language, code string) string {
	d := xxhash.New()
	fmt.Fprintf(d, "%d\x00%s\x00", ordinal, language)
	_, _ = d.WriteString(code)
	return fmt.Sprintf("%016x", d.Sum64())
}
