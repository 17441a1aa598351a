// Package actions renders the per-message control cluster. What the controls
// do (clipboard, regeneration) is up to the host.
package actions

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/miosa/osa-chatview/message"
	"github.com/miosa/osa-chatview/style"
)

// Kind names a message action.
type Kind string

const (
	Copy       Kind = "copy"
	Regenerate Kind = "regenerate"
)

// Action is one control in the row.
type Action struct {
	Kind  Kind
	Label string
	Key   string // terminal shortcut
}

// For lists the actions offered for m. Every message can be copied; only
// assistant output can be regenerated.
func For(m message.Message) []Action {
	list := []Action{{Kind: Copy, Label: "Copy message", Key: "y"}}
	if !m.IsUser() {
		list = append(list, Action{Kind: Regenerate, Label: "Regenerate response", Key: "r"})
	}
	return list
}

// Row writes the HTML actions row for m.
func Row(w io.Writer, m message.Message) error {
	var sb strings.Builder
	sb.WriteString(`<div class="chat-message-actions flex items-center justify-end transition-opacity group-hover:opacity-100 md:absolute md:-right-10 md:-top-2 md:opacity-0">`)
	for _, a := range For(m) {
		fmt.Fprintf(&sb,
			`<button type="button" class="h-8 w-8" data-action="%s" data-message-id="%s" title="%s"><span class="sr-only">%s</span></button>`,
			a.Kind, html.EscapeString(m.ID), a.Label, a.Label,
		)
	}
	sb.WriteString("</div>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// Hint renders the terminal hint line, e.g. "y copy  r regenerate".
func Hint(m message.Message) string {
	parts := make([]string, 0, 2)
	for _, a := range For(m) {
		parts = append(parts, style.ActionKey.Render(a.Key)+" "+style.ActionHint.Render(string(a.Kind)))
	}
	return strings.Join(parts, "  ")
}
