package render

import (
	"strings"

	"github.com/miosa/osa-chatview/actions"
	"github.com/miosa/osa-chatview/markdown"
	"github.com/miosa/osa-chatview/message"
	"github.com/miosa/osa-chatview/style"
)

// Terminal renders messages as ANSI text for a terminal chat view.
type Terminal struct {
	md          *markdown.Terminal
	showActions bool
}

// NewTerminal returns a terminal renderer using md for message bodies.
func NewTerminal(md *markdown.Terminal, showActions bool) *Terminal {
	return &Terminal{md: md, showActions: showActions}
}

// Render converts m to a display string wrapped at width columns. A
// non-positive width uses the markdown renderer's own width.
func (t *Terminal) Render(m message.Message, width int) string {
	av := AvatarFor(m)
	var header string
	if m.IsUser() {
		header = style.AvatarUser.Render(av.Glyph) + " " + style.UserLabel.Render(av.Label)
	} else {
		header = style.AvatarAssistant.Render(av.Glyph) + " " + style.AgentLabel.Render(av.Label)
	}

	content, streaming := splitCursor(m.Content)
	var body string
	if width > 0 {
		body = t.md.RenderWidth(content, width)
	} else {
		body = t.md.Render(content)
	}
	if streaming {
		cursor := style.Cursor.Render(message.Cursor)
		if strings.TrimSpace(body) == "" {
			body = cursor
		} else {
			body += " " + cursor
		}
	}

	out := header + "\n" + body
	if t.showActions {
		out += "\n" + actions.Hint(m)
	}
	return out
}

// splitCursor removes a trailing streaming cursor so it can be drawn after
// the rendered body, and unescapes any other cursor left in the text.
func splitCursor(content string) (string, bool) {
	trimmed := strings.TrimRight(content, " \n")
	switch {
	case strings.HasSuffix(trimmed, message.EscapedCursor):
		return markdown.UnescapeCursor(strings.TrimSuffix(trimmed, message.EscapedCursor)), true
	case markdown.IsCursor(trimmed):
		return "", true
	}
	return markdown.UnescapeCursor(content), false
}
