// Package viewer is a scrollable terminal view over a conversation.
package viewer

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/miosa/osa-chatview/message"
	"github.com/miosa/osa-chatview/render"
	"github.com/miosa/osa-chatview/style"
)

// Model displays every message through the terminal renderer and tracks a
// selected message for the copy action.
type Model struct {
	vp       viewport.Model
	conv     message.Conversation
	renderer *render.Terminal
	keys     KeyMap
	copyFn   func(string) error

	selected int
	offsets  []int // first line of each rendered message
	status   string
	width    int
	height   int
}

// RegenerateMsg asks the host to regenerate the assistant message at Index.
type RegenerateMsg struct {
	Index int
}

// Option configures a Model.
type Option func(*Model)

// WithCopier replaces the system clipboard used by the copy action.
func WithCopier(fn func(string) error) Option {
	return func(m *Model) { m.copyFn = fn }
}

// WithSize sets the initial dimensions.
func WithSize(width, height int) Option {
	return func(m *Model) { m.width, m.height = width, height }
}

// New constructs a viewer with the last message selected.
func New(conv message.Conversation, r *render.Terminal, opts ...Option) Model {
	m := Model{
		conv:     conv,
		renderer: r,
		keys:     DefaultKeyMap(),
		copyFn:   clipboard.WriteAll,
		width:    80,
		height:   24,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.selected = len(conv.Messages) - 1
	m.vp = viewport.New(m.width, m.bodyHeight())
	m.refresh()
	m.vp.GotoBottom()
	return m
}

// Init satisfies tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles resizing, selection and the message actions. Regenerate is
// reported to the host as a RegenerateMsg; everything else scrolls the
// viewport.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.vp.Width = v.Width
		m.vp.Height = m.bodyHeight()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(v, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(v, m.keys.Next):
			m.selectMessage(m.selected + 1)
			return m, nil
		case key.Matches(v, m.keys.Prev):
			m.selectMessage(m.selected - 1)
			return m, nil
		case key.Matches(v, m.keys.Copy):
			m.copySelected()
			return m, nil
		case key.Matches(v, m.keys.Regenerate):
			return m, m.regenerateSelected()
		case key.Matches(v, m.keys.PageUp):
			m.vp.ViewUp()
			return m, nil
		case key.Matches(v, m.keys.PageDown):
			m.vp.ViewDown()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// View returns the viewport and a status line.
func (m Model) View() string {
	return m.vp.View() + "\n" + style.StatusLine.Render(m.statusText())
}

// Selected returns the index of the selected message, -1 when empty.
func (m Model) Selected() int { return m.selected }

// Status returns the last action feedback.
func (m Model) Status() string { return m.status }

func (m Model) bodyHeight() int {
	if m.height <= 1 {
		return 1
	}
	return m.height - 1
}

func (m Model) statusText() string {
	if m.status != "" {
		return m.status
	}
	if len(m.conv.Messages) == 0 {
		return "no messages"
	}
	return fmt.Sprintf("%d/%d  tab next  shift+tab prev  y copy  r regenerate  q quit", m.selected+1, len(m.conv.Messages))
}

func (m *Model) selectMessage(i int) {
	if i < 0 || i >= len(m.conv.Messages) {
		return
	}
	m.selected = i
	m.status = ""
	m.refresh()
	m.vp.SetYOffset(m.offsets[i])
}

func (m *Model) copySelected() {
	if m.selected < 0 {
		return
	}
	if err := m.copyFn(m.conv.Messages[m.selected].Content); err != nil {
		m.status = "copy failed: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("copied message %d", m.selected+1)
}

// regenerateSelected emits a RegenerateMsg for the selected message when it
// offers the regenerate action.
func (m *Model) regenerateSelected() tea.Cmd {
	if m.selected < 0 {
		return nil
	}
	if m.conv.Messages[m.selected].IsUser() {
		m.status = "only assistant messages can be regenerated"
		return nil
	}
	idx := m.selected
	m.status = fmt.Sprintf("regenerate requested for message %d", idx+1)
	return func() tea.Msg { return RegenerateMsg{Index: idx} }
}

// refresh re-renders all messages into the viewport.
func (m *Model) refresh() {
	m.vp.SetContent(m.renderAll())
}

// renderAll builds the full string of all rendered messages and records
// where each one starts.
func (m *Model) renderAll() string {
	m.offsets = make([]int, 0, len(m.conv.Messages))
	if len(m.conv.Messages) == 0 {
		return style.Faint.Render("  No messages.")
	}

	// Leave room for the selection border and padding.
	width := m.width - 3
	if width < 20 {
		width = 20
	}
	unselected := lipgloss.NewStyle().PaddingLeft(2)

	var sb strings.Builder
	line := 0
	for i, msg := range m.conv.Messages {
		if i > 0 {
			sb.WriteString("\n\n")
			line += 2
		}
		m.offsets = append(m.offsets, line)

		out := m.renderer.Render(msg, width)
		if i == m.selected {
			out = style.Selected.Render(out)
		} else {
			out = unselected.Render(out)
		}
		sb.WriteString(out)
		line += lipgloss.Height(out) - 1
	}
	return sb.String()
}
