package viewer

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/miosa/osa-chatview/markdown"
	"github.com/miosa/osa-chatview/message"
	"github.com/miosa/osa-chatview/render"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func testConv() message.Conversation {
	return message.Conversation{Messages: []message.Message{
		{Role: message.RoleUser, Content: "first question"},
		{Role: message.RoleAssistant, Content: "an answer"},
		{Role: message.RoleUser, Content: "follow up"},
	}}
}

func newModel(opts ...Option) Model {
	r := render.NewTerminal(markdown.NewTerminal("notty", 80), true)
	return New(testConv(), r, append([]Option{WithSize(80, 40)}, opts...)...)
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// ---------------------------------------------------------------------------
// Selection
// ---------------------------------------------------------------------------

func TestNew_SelectsLastMessage(t *testing.T) {
	m := newModel()
	if m.Selected() != 2 {
		t.Errorf("want selected=2, got %d", m.Selected())
	}
	if len(m.offsets) != 3 {
		t.Fatalf("want 3 offsets, got %d", len(m.offsets))
	}
	for i := 1; i < len(m.offsets); i++ {
		if m.offsets[i] <= m.offsets[i-1] {
			t.Errorf("offsets must increase: %v", m.offsets)
		}
	}
}

func TestUpdate_PrevNextClamp(t *testing.T) {
	m := newModel()
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Selected() != 2 {
		t.Errorf("next past end: want 2, got %d", m.Selected())
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.Selected() != 0 {
		t.Errorf("prev past start: want 0, got %d", m.Selected())
	}
}

func TestUpdate_PageUpDown(t *testing.T) {
	m := newModel(WithSize(80, 5))
	bottom := m.vp.YOffset
	if bottom == 0 {
		t.Fatal("want content taller than the viewport")
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyPgUp})
	if m.vp.YOffset >= bottom {
		t.Errorf("pgup: want offset below %d, got %d", bottom, m.vp.YOffset)
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyPgDown})
	if m.vp.YOffset != bottom {
		t.Errorf("pgdown: want offset %d, got %d", bottom, m.vp.YOffset)
	}
}

// ---------------------------------------------------------------------------
// Copy action
// ---------------------------------------------------------------------------

func TestUpdate_CopySelected(t *testing.T) {
	var copied string
	m := newModel(WithCopier(func(s string) error { copied = s; return nil }))
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = press(m, runes("y"))
	if copied != "an answer" {
		t.Errorf("want selected content copied, got %q", copied)
	}
	if !strings.Contains(m.Status(), "copied message 2") {
		t.Errorf("want copy status, got %q", m.Status())
	}
}

func TestUpdate_CopyFailure(t *testing.T) {
	m := newModel(WithCopier(func(string) error { return errors.New("no clipboard") }))
	m, _ = press(m, runes("y"))
	if !strings.Contains(m.Status(), "no clipboard") {
		t.Errorf("want failure status, got %q", m.Status())
	}
}

// ---------------------------------------------------------------------------
// Regenerate action
// ---------------------------------------------------------------------------

func TestUpdate_RegenerateAssistant(t *testing.T) {
	m := newModel()
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if !strings.Contains(m.View(), "r regenerate") {
		t.Fatalf("want regenerate hint for assistant message, got %q", m.View())
	}
	m, cmd := press(m, runes("r"))
	if cmd == nil {
		t.Fatal("want regenerate command")
	}
	got, ok := cmd().(RegenerateMsg)
	if !ok || got.Index != 1 {
		t.Errorf("want RegenerateMsg{Index: 1}, got %#v", got)
	}
	if !strings.Contains(m.Status(), "regenerate requested for message 2") {
		t.Errorf("want regenerate status, got %q", m.Status())
	}
}

func TestUpdate_RegenerateUserIgnored(t *testing.T) {
	m := newModel()
	m, cmd := press(m, runes("r"))
	if cmd != nil {
		t.Error("want no command for a user message")
	}
	if !strings.Contains(m.Status(), "only assistant messages") {
		t.Errorf("want explanatory status, got %q", m.Status())
	}
}

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

func TestUpdate_Quit(t *testing.T) {
	m := newModel()
	_, cmd := press(m, runes("q"))
	if cmd == nil {
		t.Fatal("want quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("want tea.QuitMsg")
	}
}

func TestUpdate_WindowSize(t *testing.T) {
	m := newModel()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = next.(Model)
	if m.vp.Width != 60 || m.vp.Height != 19 {
		t.Errorf("want viewport 60x19, got %dx%d", m.vp.Width, m.vp.Height)
	}
}

func TestView_ShowsMessagesAndStatus(t *testing.T) {
	m := newModel()
	m.vp.GotoTop()
	out := m.View()
	if !strings.Contains(out, "first question") {
		t.Errorf("want first message visible, got %q", out)
	}
	if !strings.Contains(out, "3/3") {
		t.Errorf("want status position, got %q", out)
	}
}

func TestNew_EmptyConversation(t *testing.T) {
	r := render.NewTerminal(markdown.NewTerminal("notty", 80), false)
	m := New(message.Conversation{}, r)
	if m.Selected() != -1 {
		t.Errorf("want selected=-1, got %d", m.Selected())
	}
	m, _ = press(m, runes("y"))
	if !strings.Contains(m.View(), "No messages") {
		t.Errorf("want empty placeholder, got %q", m.View())
	}
}
