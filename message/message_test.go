package message

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Roles
// ---------------------------------------------------------------------------

func TestIsUser_BinaryClassification(t *testing.T) {
	cases := []struct {
		role Role
		want bool
	}{
		{RoleUser, true},
		{RoleAssistant, false},
		{"system", false},
		{"tool", false},
		{"User", false},
	}
	for _, c := range cases {
		if got := (Message{Role: c.role}).IsUser(); got != c.want {
			t.Errorf("role %q: want IsUser=%v, got %v", c.role, c.want, got)
		}
	}
}

// ---------------------------------------------------------------------------
// Decode
// ---------------------------------------------------------------------------

func TestDecode_SingleMessage(t *testing.T) {
	conv, err := Decode(strings.NewReader(`{"role":"user","content":"hi"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(conv.Messages) != 1 {
		t.Fatalf("want 1 message, got %d", len(conv.Messages))
	}
	if conv.Messages[0].Content != "hi" {
		t.Errorf("want content hi, got %q", conv.Messages[0].Content)
	}
}

func TestDecode_Array(t *testing.T) {
	in := `[{"role":"user","content":"a"},{"role":"assistant","content":"b"}]`
	conv, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(conv.Messages) != 2 {
		t.Fatalf("want 2 messages, got %d", len(conv.Messages))
	}
	if conv.Messages[1].Role != RoleAssistant {
		t.Errorf("want assistant, got %q", conv.Messages[1].Role)
	}
}

func TestDecode_Wrapped(t *testing.T) {
	in := `{"messages":[{"id":"m1","role":"assistant","content":"x"}]}`
	conv, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conv.Messages[0].ID != "m1" {
		t.Errorf("want id m1, got %q", conv.Messages[0].ID)
	}
}

func TestDecode_Errors(t *testing.T) {
	if _, err := Decode(strings.NewReader("  ")); !errors.Is(err, ErrEmptyConversation) {
		t.Errorf("blank input: want ErrEmptyConversation, got %v", err)
	}
	if _, err := Decode(strings.NewReader(`{"messages":[]}`)); !errors.Is(err, ErrEmptyConversation) {
		t.Errorf("empty list: want ErrEmptyConversation, got %v", err)
	}
	if _, err := Decode(strings.NewReader(`[{"content":"x"}]`)); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("missing role: want ErrInvalidRole, got %v", err)
	}
	if _, err := Decode(strings.NewReader(`"nope"`)); err == nil {
		t.Error("want error for scalar input")
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conv.json")
	if err := os.WriteFile(path, []byte(`[{"role":"user","content":"hello"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	conv, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conv.Messages[0].Content != "hello" {
		t.Errorf("want hello, got %q", conv.Messages[0].Content)
	}
}
