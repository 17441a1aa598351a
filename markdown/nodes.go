package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

const pulsingCursor = `<span class="mt-1 animate-pulse cursor-default">▍</span>`

// nodeRenderer overrides paragraphs, code spans and code blocks. It is
// registered below the default HTML renderer's priority so it wins.
type nodeRenderer struct {
	highlighter Highlighter
}

func newNodeRenderer(h Highlighter) renderer.NodeRenderer {
	if h == nil {
		h = PlainHighlighter
	}
	return &nodeRenderer{highlighter: h}
}

func (r *nodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindParagraph, r.renderParagraph)
	reg.Register(ast.KindCodeSpan, r.renderCodeSpan)
	reg.Register(ast.KindFencedCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
}

// Paragraphs carry bottom spacing unless they close their container.
func (r *nodeRenderer) renderParagraph(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		if n.NextSibling() == nil {
			_, _ = w.WriteString("<p>")
		} else {
			_, _ = w.WriteString(`<p class="mb-2">`)
		}
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString("</p>\n")
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderCodeSpan(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	text := codeSpanText(n, source)
	if IsCursor(text) {
		_, _ = w.WriteString(pulsingCursor)
		return ast.WalkSkipChildren, nil
	}
	text = UnescapeCursor(text)
	_, _ = w.WriteString("<code>")
	_, _ = w.Write(util.EscapeHTML([]byte(text)))
	_, _ = w.WriteString("</code>")
	return ast.WalkSkipChildren, nil
}

func (r *nodeRenderer) renderCodeBlock(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	// Block lines keep their line endings; the cursor check sees the text
	// without the final one.
	code := StripTrailingNewline(blockText(n, source))
	if IsCursor(code) {
		_, _ = w.WriteString(pulsingCursor)
		return ast.WalkSkipChildren, nil
	}
	code = UnescapeCursor(code)

	lang := LanguageFromClass(blockClass(n, source))
	fence := CodeFence{
		Language: lang,
		Code:     code,
		Key:      fenceKey(blockOrdinal(n), lang, code),
	}
	if err := r.highlighter.Highlight(w, fence); err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkSkipChildren, nil
}

// codeSpanText mirrors goldmark's own code span output: a line ending inside
// the span becomes a single space.
func codeSpanText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		var value []byte
		switch t := c.(type) {
		case *ast.Text:
			value = t.Segment.Value(source)
		case *ast.String:
			value = t.Value
		default:
			continue
		}
		if bytes.HasSuffix(value, []byte("\n")) {
			buf.Write(value[:len(value)-1])
			buf.WriteByte(' ')
		} else {
			buf.Write(value)
		}
	}
	return buf.String()
}

func blockText(n ast.Node, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return sb.String()
}

// blockClass builds the class attribute a fenced block carries in HTML,
// "language-" followed by the first word of the info string.
func blockClass(n ast.Node, source []byte) string {
	fenced, ok := n.(*ast.FencedCodeBlock)
	if !ok {
		return ""
	}
	lang := fenced.Language(source)
	if len(lang) == 0 {
		return ""
	}
	return "language-" + string(lang)
}

// blockOrdinal counts the code blocks that precede n in document order.
func blockOrdinal(n ast.Node) int {
	root := n
	for root.Parent() != nil {
		root = root.Parent()
	}
	ordinal := 0
	_ = ast.Walk(root, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if c == n {
			return ast.WalkStop, nil
		}
		if c.Kind() == ast.KindFencedCodeBlock || c.Kind() == ast.KindCodeBlock {
			ordinal++
		}
		return ast.WalkContinue, nil
	})
	return ordinal
}
