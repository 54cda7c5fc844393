// Package domain contains core concepts of the marketplace chat system.
// Messages are immutable once constructed.
package domain

import (
	"time"

	"github.com/google/uuid"
)

type MessageKind string

const (
	KindText   MessageKind = "text"
	KindVoice  MessageKind = "voice"
	KindSystem MessageKind = "system"
	KindAI     MessageKind = "ai"
)

// SystemSender is the sender identity of registry-generated messages
// such as the join welcome.
const SystemSender = "system"

// Message represents an immutable chat event within a session.
type Message struct {
	ID        uuid.UUID   `json:"message_id"`
	SessionID string      `json:"session_id"`
	SenderID  string      `json:"sender_id"`
	Content   string      `json:"content"`
	Kind      MessageKind `json:"message_type"`
	AudioURL  string      `json:"audio_url,omitempty"`
	CreatedAt time.Time   `json:"timestamp"`
}

func NewMessage(sessionID, senderID, content string, kind MessageKind, audioURL string) Message {
	return Message{
		ID:        uuid.New(),
		SessionID: sessionID,
		SenderID:  senderID,
		Content:   content,
		Kind:      kind,
		AudioURL:  audioURL,
		CreatedAt: time.Now().UTC(),
	}
}
