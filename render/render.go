// Package render composes a chat message view: avatar, markdown body and
// actions row.
package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/miosa/osa-chatview/actions"
	"github.com/miosa/osa-chatview/icons"
	"github.com/miosa/osa-chatview/markdown"
	"github.com/miosa/osa-chatview/message"
)

// Background is the avatar background treatment.
type Background string

const (
	Neutral Background = "bg-background"
	Accent  Background = "bg-primary text-primary-foreground"
)

// Avatar is the role-dependent icon shown beside a message.
type Avatar struct {
	Icon       string // SVG markup
	Glyph      string // terminal glyph
	Label      string
	Background Background
}

// AvatarFor picks the avatar for m. Only the user role is distinguished;
// everything else gets the assistant avatar.
func AvatarFor(m message.Message) Avatar {
	if m.IsUser() {
		return Avatar{Icon: icons.User, Glyph: icons.UserGlyph, Label: "You", Background: Neutral}
	}
	return Avatar{Icon: icons.Assistant, Glyph: icons.AssistantGlyph, Label: "Assistant", Background: Accent}
}

// ActionsFunc renders the actions row for a message.
type ActionsFunc func(w io.Writer, m message.Message) error

// Renderer writes a message as an HTML fragment. It holds no per-message
// state and is safe for concurrent use.
type Renderer struct {
	pipeline *markdown.Pipeline
	actions  ActionsFunc
	filter   func([]byte) []byte
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithActions replaces the actions row. nil omits it.
func WithActions(fn ActionsFunc) Option {
	return func(r *Renderer) { r.actions = fn }
}

// WithBodyFilter post-processes the rendered body, e.g. to sanitize it.
func WithBodyFilter(fn func([]byte) []byte) Option {
	return func(r *Renderer) { r.filter = fn }
}

// New returns a Renderer over pipeline.
func New(pipeline *markdown.Pipeline, opts ...Option) *Renderer {
	r := &Renderer{pipeline: pipeline, actions: actions.Row}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes m to w. Errors from the markdown pipeline or the actions row
// are returned, and nothing is written in that case.
func (r *Renderer) Render(w io.Writer, m message.Message) error {
	var body bytes.Buffer
	if err := r.pipeline.Convert(&body, m.Content); err != nil {
		return fmt.Errorf("render %s message: %w", m.Role, err)
	}
	content := body.Bytes()
	if r.filter != nil {
		content = r.filter(content)
	}

	av := AvatarFor(m)
	var out bytes.Buffer
	fmt.Fprintf(&out, `<div class="group relative mb-4 flex items-start md:-ml-12" data-role="%s">`+"\n", avatarRole(m))
	fmt.Fprintf(&out, `<div class="flex h-8 w-8 shrink-0 select-none items-center justify-center rounded-md border shadow %s">%s</div>`+"\n",
		av.Background, av.Icon)
	out.WriteString(`<div class="ml-4 flex-1 space-y-2 overflow-hidden px-1">` + "\n")
	out.WriteString(`<div class="prose break-words dark:prose-invert prose-p:leading-relaxed prose-pre:p-0">` + "\n")
	out.Write(content)
	out.WriteString("</div>\n")
	if r.actions != nil {
		if err := r.actions(&out, m); err != nil {
			return fmt.Errorf("render actions: %w", err)
		}
	}
	out.WriteString("</div>\n</div>\n")

	_, err := w.Write(out.Bytes())
	return err
}

// RenderConversation renders every message in order.
func (r *Renderer) RenderConversation(w io.Writer, conv message.Conversation) error {
	for i, m := range conv.Messages {
		if err := r.Render(w, m); err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
	}
	return nil
}

// avatarRole is the role as the view classifies it, not as stored.
func avatarRole(m message.Message) message.Role {
	if m.IsUser() {
		return message.RoleUser
	}
	return message.RoleAssistant
}
