package render

import (
	"strings"
	"testing"

	"github.com/miosa/osa-chatview/icons"
	"github.com/miosa/osa-chatview/markdown"
	"github.com/miosa/osa-chatview/message"
)

func newTerminal(showActions bool) *Terminal {
	return NewTerminal(markdown.NewTerminal("notty", 80), showActions)
}

func TestTerminal_UserHeader(t *testing.T) {
	out := newTerminal(false).Render(message.Message{Role: message.RoleUser, Content: "hello"}, 0)
	first := strings.SplitN(out, "\n", 2)[0]
	if !strings.Contains(first, icons.UserGlyph) || !strings.Contains(first, "You") {
		t.Errorf("want user header, got %q", first)
	}
	if !strings.Contains(out, "hello") {
		t.Errorf("want body, got %q", out)
	}
}

func TestTerminal_AssistantHeaderForOtherRoles(t *testing.T) {
	out := newTerminal(false).Render(message.Message{Role: "system", Content: "x"}, 0)
	if !strings.Contains(out, icons.AssistantGlyph) {
		t.Errorf("want assistant glyph, got %q", out)
	}
}

func TestTerminal_StreamingCursorTrails(t *testing.T) {
	out := newTerminal(false).Render(message.Message{Role: message.RoleAssistant, Content: "partial `▍`"}, 0)
	if !strings.Contains(out, "partial") {
		t.Errorf("want body, got %q", out)
	}
	if !strings.HasSuffix(strings.TrimRight(out, " \n"), message.Cursor) {
		t.Errorf("want trailing cursor, got %q", out)
	}
	if strings.Contains(out, message.EscapedCursor) {
		t.Errorf("escaped cursor must not leak, got %q", out)
	}
}

func TestTerminal_CursorOnly(t *testing.T) {
	out := newTerminal(false).Render(message.Message{Role: message.RoleAssistant, Content: "`▍`"}, 0)
	body := strings.SplitN(out, "\n", 2)[1]
	if body != message.Cursor {
		t.Errorf("want bare cursor body, got %q", body)
	}
}

func TestTerminal_ActionsHint(t *testing.T) {
	out := newTerminal(true).Render(message.Message{Role: message.RoleAssistant, Content: "x"}, 0)
	if !strings.Contains(out, "regenerate") {
		t.Errorf("want actions hint, got %q", out)
	}
}

func TestSplitCursor(t *testing.T) {
	cases := []struct {
		in        string
		want      string
		streaming bool
	}{
		{"done", "done", false},
		{"partial `▍`", "partial ", true},
		{"`▍`\n", "", true},
		{"▍", "", true},
		{"a `▍` b", "a ▍ b", false},
	}
	for _, c := range cases {
		got, streaming := splitCursor(c.in)
		if got != c.want || streaming != c.streaming {
			t.Errorf("splitCursor(%q): want (%q,%v), got (%q,%v)", c.in, c.want, c.streaming, got, streaming)
		}
	}
}
