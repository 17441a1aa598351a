// Package highlight renders message code blocks with Chroma.
package highlight

import (
	"fmt"
	"html"
	"io"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/miosa/osa-chatview/markdown"
)

// lexerCache maps lowercased language tags to a coalesced chroma.Lexer.
var lexerCache sync.Map // string -> chroma.Lexer

// lexerFor returns the lexer registered for language. Unknown or empty
// tags get the plain-text fallback, which leaves the code unhighlighted.
func lexerFor(language string) chroma.Lexer {
	key := strings.ToLower(language)
	if cached, ok := lexerCache.Load(key); ok {
		return cached.(chroma.Lexer)
	}

	var lexer chroma.Lexer
	if key != "" {
		lexer = lexers.Get(key)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)
	lexerCache.Store(key, lexer)
	return lexer
}

// HTML is the code block collaborator for the HTML renderer. Output uses
// CSS classes; serve WriteCSS alongside it.
type HTML struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

var _ markdown.Highlighter = (*HTML)(nil)

// NewHTML builds a highlighter for the named Chroma style. Unknown names
// resolve to Chroma's fallback style.
func NewHTML(styleName string) *HTML {
	return &HTML{
		style: styles.Get(styleName),
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.TabWidth(4),
		),
	}
}

// StyleName is the resolved Chroma style.
func (h *HTML) StyleName() string { return h.style.Name }

// Highlight writes fence as a code block with a language header and a copy
// button. The button's behaviour belongs to the host page.
func (h *HTML) Highlight(w io.Writer, fence markdown.CodeFence) error {
	it, err := lexerFor(fence.Language).Tokenise(nil, fence.Code)
	if err != nil {
		return fmt.Errorf("tokenise %q: %w", fence.Language, err)
	}

	label := fence.Language
	if label == "" {
		label = "text"
	}
	if _, err := fmt.Fprintf(w,
		`<div class="codeblock relative w-full font-sans" data-key="%s" data-language="%s">`+
			`<div class="codeblock-header flex w-full items-center justify-between px-6 py-2 pr-4">`+
			`<span class="text-xs lowercase">%s</span>`+
			`<button type="button" class="codeblock-copy" data-action="copy-code">Copy code</button>`+
			`</div>`,
		fence.Key, html.EscapeString(fence.Language), html.EscapeString(label),
	); err != nil {
		return err
	}
	if err := h.formatter.Format(w, h.style, it); err != nil {
		return fmt.Errorf("format %q: %w", fence.Language, err)
	}
	_, err = io.WriteString(w, "</div>\n")
	return err
}

// WriteCSS writes the stylesheet matching Highlight's class names.
func (h *HTML) WriteCSS(w io.Writer) error {
	return h.formatter.WriteCSS(w, h.style)
}
