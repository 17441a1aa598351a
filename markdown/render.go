package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// AutoStyle picks the glamour style from the terminal background.
const AutoStyle = "auto"

// Terminal converts markdown text to styled ANSI output. Renderers are
// built lazily per wrap width.
type Terminal struct {
	style string
	width int

	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
}

// NewTerminal returns a renderer for the named glamour standard style
// ("dark", "light", "notty", ...) wrapping at width columns.
func NewTerminal(style string, width int) *Terminal {
	return &Terminal{style: style, width: width, renderers: make(map[int]*glamour.TermRenderer)}
}

func newTermRenderer(style string, width int) (*glamour.TermRenderer, error) {
	styleOpt := glamour.WithStandardStyle(style)
	if style == "" || style == AutoStyle {
		styleOpt = glamour.WithAutoStyle()
	}
	return glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(width),
	)
}

// Render converts markdown text to styled ANSI output at the default width.
// Falls back to raw text if the renderer is unavailable.
func (t *Terminal) Render(md string) string {
	return t.RenderWidth(md, t.width)
}

// RenderWidth renders md wrapped at width columns.
func (t *Terminal) RenderWidth(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return md
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.renderers[width]
	if !ok {
		var err error
		r, err = newTermRenderer(t.style, width)
		if err != nil {
			// Cache the failure too; Render degrades to raw text.
			r = nil
		}
		if t.renderers == nil {
			t.renderers = make(map[int]*glamour.TermRenderer)
		}
		t.renderers[width] = r
	}
	if r == nil {
		return md
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	// glamour adds trailing newlines; trim for inline display.
	return strings.TrimRight(out, "\n")
}
