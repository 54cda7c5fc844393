// Package event defines the closed set of boundary events exchanged over a
// chat connection, with their JSON wire encoding. Unknown inbound types
// decode to Unknown so the dispatcher can apply its ignore rule explicitly
// instead of falling through a default branch.
package event

import (
	"encoding/json"
	"time"

	"openmandi/domain"
	"openmandi/errors"
)

// Inbound is an event received from a connected client.
type Inbound interface{ isInbound() }

type JoinSession struct {
	SessionID   string `json:"session_id,omitempty"`
	ProductType string `json:"product_type,omitempty"`
}

type ChatMessage struct {
	Content     string `json:"content"`
	MessageType string `json:"message_type,omitempty"`
	AudioURL    string `json:"audio_url,omitempty"`
}

type VoiceMessage struct {
	Transcription string `json:"transcription"`
	AudioURL      string `json:"audio_url,omitempty"`
}

// Unknown carries the unmatched type discriminator of a structurally valid
// frame. It is not an error.
type Unknown struct {
	Type string
}

func (JoinSession) isInbound()  {}
func (ChatMessage) isInbound()  {}
func (VoiceMessage) isInbound() {}
func (Unknown) isInbound()      {}

// ParseInbound decodes one wire frame. A frame that is not a JSON object
// with a string "type" field is malformed; a frame with an unmatched type
// decodes to Unknown.
func ParseInbound(data []byte) (Inbound, error) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.ErrMalformedEvent
	}
	switch env.Type {
	case "join_session":
		var e JoinSession
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, errors.ErrMalformedEvent
		}
		return e, nil
	case "chat_message":
		var e ChatMessage
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, errors.ErrMalformedEvent
		}
		return e, nil
	case "voice_message":
		var e VoiceMessage
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, errors.ErrMalformedEvent
		}
		return e, nil
	default:
		return Unknown{Type: env.Type}, nil
	}
}

// Outbound is an event pushed to a connected client.
type Outbound interface{ isOutbound() }

type SessionJoined struct {
	Type        string `json:"type"`
	SessionID   string `json:"session_id"`
	ProductType string `json:"product_type"`
}

type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type MessageEvent struct {
	Type        string    `json:"type"`
	MessageID   string    `json:"message_id"`
	SessionID   string    `json:"session_id"`
	SenderID    string    `json:"sender_id"`
	Content     string    `json:"content"`
	MessageType string    `json:"message_type"`
	AudioURL    string    `json:"audio_url,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

func (SessionJoined) isOutbound() {}
func (Error) isOutbound()         {}
func (MessageEvent) isOutbound()  {}

func NewSessionJoined(sessionID, productType string) SessionJoined {
	return SessionJoined{Type: "session_joined", SessionID: sessionID, ProductType: productType}
}

func NewError(message string) Error {
	return Error{Type: "error", Message: message}
}

func NewMessageEvent(m domain.Message) MessageEvent {
	return MessageEvent{
		Type:        "message",
		MessageID:   m.ID.String(),
		SessionID:   m.SessionID,
		SenderID:    m.SenderID,
		Content:     m.Content,
		MessageType: string(m.Kind),
		AudioURL:    m.AudioURL,
		Timestamp:   m.CreatedAt,
	}
}

// EncodeOutbound renders one wire frame.
func EncodeOutbound(e Outbound) ([]byte, error) {
	return json.Marshal(e)
}
