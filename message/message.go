// Package message defines the chat message record rendered by the view layer.
// It has no upstream imports so every renderer can depend on it.
package message

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Role identifies who sent a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Streaming cursor markers. Upstream appends the escaped form to partial
// assistant output while a response is still arriving.
const (
	Cursor        = "▍"
	EscapedCursor = "`▍`"
)

var (
	ErrEmptyConversation = errors.New("conversation has no messages")
	ErrInvalidRole       = errors.New("invalid message role")
)

// Message is a single entry in the conversation history.
type Message struct {
	ID      string `json:"id,omitempty"`
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// IsUser reports whether the message was written by the human side of the
// conversation. Every other role, known or not, is treated as the assistant.
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

// Validate rejects records without a role. Unknown roles are accepted.
func (m Message) Validate() error {
	if m.Role == "" {
		return fmt.Errorf("%w: role is empty", ErrInvalidRole)
	}
	return nil
}

// Conversation is an ordered list of messages.
type Conversation struct {
	Messages []Message `json:"messages"`
}

// Decode reads either a single message object, an array of messages, or an
// object of the form {"messages": [...]}.
func Decode(r io.Reader) (Conversation, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Conversation{}, fmt.Errorf("read conversation: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Conversation{}, ErrEmptyConversation
	}

	var conv Conversation
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &conv.Messages); err != nil {
			return Conversation{}, fmt.Errorf("decode messages: %w", err)
		}
	case '{':
		var probe struct {
			Messages json.RawMessage `json:"messages"`
		}
		if err := json.Unmarshal(data, &probe); err != nil {
			return Conversation{}, fmt.Errorf("decode conversation: %w", err)
		}
		if probe.Messages != nil {
			if err := json.Unmarshal(probe.Messages, &conv.Messages); err != nil {
				return Conversation{}, fmt.Errorf("decode messages: %w", err)
			}
			break
		}
		var m Message
		if err := json.Unmarshal(data, &m); err != nil {
			return Conversation{}, fmt.Errorf("decode message: %w", err)
		}
		conv.Messages = []Message{m}
	default:
		return Conversation{}, fmt.Errorf("decode conversation: unexpected %q", data[0])
	}

	if len(conv.Messages) == 0 {
		return Conversation{}, ErrEmptyConversation
	}
	for i, m := range conv.Messages {
		if err := m.Validate(); err != nil {
			return Conversation{}, fmt.Errorf("message %d: %w", i, err)
		}
	}
	return conv, nil
}

// Load reads a conversation file. A path of "-" reads stdin.
func Load(path string) (Conversation, error) {
	if path == "-" {
		return Decode(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return Conversation{}, err
	}
	defer f.Close()
	return Decode(f)
}
