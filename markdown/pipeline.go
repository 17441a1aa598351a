// Package markdown turns message content into HTML (goldmark) or styled
// terminal output (glamour).
package markdown

import (
	"fmt"
	"io"

	mathjax "github.com/litao91/goldmark-mathjax"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
	"go.abhg.dev/goldmark/mermaid"
)

// overridePriority sits below html.NewRenderer's 1000; renderers registered
// later replace earlier ones for the same node kind.
const overridePriority = 100

// Pipeline is a configured markdown-to-HTML converter. It is safe for
// concurrent use.
type Pipeline struct {
	md goldmark.Markdown
}

type options struct {
	mermaidScript bool
	hardWraps     bool
}

// Option configures a Pipeline.
type Option func(*options)

// WithMermaidScript emits the mermaid runtime <script> after documents that
// contain diagrams. Fragments embedded in a page that already loads mermaid
// should leave this off.
func WithMermaidScript(on bool) Option {
	return func(o *options) { o.mermaidScript = on }
}

// WithHardWraps renders soft line breaks as <br>.
func WithHardWraps(on bool) Option {
	return func(o *options) { o.hardWraps = on }
}

// New builds the message pipeline. Markdown-level extensions (GFM, math
// notation) come first, then the render-level ones: math markup for the
// typesetter, raw HTML passthrough and diagram blocks. h renders code blocks;
// nil falls back to PlainHighlighter.
func New(h Highlighter, opts ...Option) *Pipeline {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	rendererOpts := []renderer.Option{
		html.WithUnsafe(),
		renderer.WithNodeRenderers(util.Prioritized(newNodeRenderer(h), overridePriority)),
	}
	if o.hardWraps {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			mathjax.MathJax,
			&mermaid.Extender{
				RenderMode: mermaid.RenderModeClient,
				NoScript:   !o.mermaidScript,
			},
		),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	return &Pipeline{md: md}
}

// Convert renders content as HTML into w. Highlighter errors abort the
// render and are returned wrapped.
func (p *Pipeline) Convert(w io.Writer, content string) error {
	if err := p.md.Convert([]byte(content), w); err != nil {
		return fmt.Errorf("convert markdown: %w", err)
	}
	return nil
}
