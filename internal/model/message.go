package model

import "strings"

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// Message is one turn of a conversation. Identity is its position in the history.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// History is an ordered, chronological list of messages.
type History []Message

// FilterHistory drops entries without a known role or with blank content.
// Surviving entries keep their order and their original content.
func FilterHistory(h History) History {
	filtered := make(History, 0, len(h))
	for _, m := range h {
		if !m.Role.Valid() || strings.TrimSpace(m.Content) == "" {
			continue
		}
		filtered = append(filtered, m)
	}
	return filtered
}

// SystemMessage is the persona instruction prepended to every relay call.
func SystemMessage() Message {
	return Message{Role: RoleSystem, Content: SystemPrompt}
}
