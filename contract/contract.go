// Package contract holds the interfaces that decouple the chat runtime from
// its transports and collaborators.
package contract

import (
	"context"

	"openmandi/domain"
	"openmandi/domain/event"
)

// Conn is one participant's bidirectional channel as the dispatcher sees it.
// ReadEvent blocks until the next inbound frame arrives; a read error of any
// kind is treated as a disconnect, except ErrMalformedEvent which triggers
// the error-and-close sequence.
type Conn interface {
	domain.Conn
	ReadEvent() (event.Inbound, error)
	WriteEvent(e event.Outbound) error
}

// Registry is the session registry surface the dispatcher depends on.
type Registry interface {
	CreateSession(userID, productType string) *domain.Session
	JoinSession(sessionID, userID string, conn domain.Conn) (*domain.Session, bool)
	LeaveSession(userID string)
	SendMessage(userID, content string, kind domain.MessageKind, audioURL string) (domain.Message, bool)
	SendAssistantMessage(userID, content string) (domain.Message, bool)
}

// Responder turns a user utterance into an optional assistant reply.
type Responder interface {
	Reply(text string) string
}

// Transcriber is the speech-to-text collaborator boundary.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string) (Transcription, error)
}

// Transcription is the transcriber's result record.
type Transcription struct {
	Transcription    string  `json:"transcription"`
	Language         string  `json:"language"`
	DetectedLanguage string  `json:"detected_language"`
	Confidence       float64 `json:"confidence"`
	Duration         float64 `json:"duration"`
}
