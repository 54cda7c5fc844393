package runtime

import (
	"context"
	stderrors "errors"
	"log/slog"

	"openmandi/contract"
	"openmandi/domain"
	"openmandi/domain/event"
	"openmandi/errors"
)

// connState is the dispatcher's position in a connection's lifecycle.
type connState int

const (
	awaitingJoin connState = iota
	active
	closed
)

// Dispatcher runs one event loop per connection. It is stateless across
// connections; all shared state lives in the registry.
type Dispatcher struct {
	log       *slog.Logger
	registry  contract.Registry
	responder contract.Responder
}

func NewDispatcher(log *slog.Logger, registry contract.Registry, responder contract.Responder) *Dispatcher {
	return &Dispatcher{log: log, registry: registry, responder: responder}
}

// Run consumes the connection's inbound events until disconnect or context
// cancellation. The user always leaves their session on the way out, whatever
// path closed the loop.
func (d *Dispatcher) Run(ctx context.Context, userID string, conn contract.Conn) {
	defer d.registry.LeaveSession(userID)

	state := awaitingJoin
	for state != closed {
		select {
		case <-ctx.Done():
			return
		default:
		}

		ev, err := conn.ReadEvent()
		if err != nil {
			if stderrors.Is(err, errors.ErrMalformedEvent) {
				_ = conn.WriteEvent(event.NewError("malformed event"))
			}
			return
		}

		switch state {
		case awaitingJoin:
			state = d.handleJoin(userID, conn, ev)
		case active:
			state = d.handleActive(userID, ev)
		}
	}
}

// handleJoin admits exactly one join event. A join without a session id
// creates a session first; any other event type closes the connection after
// a single error frame.
func (d *Dispatcher) handleJoin(userID string, conn contract.Conn, ev event.Inbound) connState {
	join, ok := ev.(event.JoinSession)
	if !ok {
		_ = conn.WriteEvent(event.NewError("join a session first"))
		return closed
	}

	sessionID := join.SessionID
	if sessionID == "" {
		sessionID = d.registry.CreateSession(userID, join.ProductType).ID()
	}

	session, ok := d.registry.JoinSession(sessionID, userID, conn)
	if !ok {
		d.log.Warn("join rejected", "session_id", sessionID, "user_id", userID)
		_ = conn.WriteEvent(event.NewError("session not found"))
		return closed
	}

	if err := conn.WriteEvent(event.NewSessionJoined(session.ID(), session.ProductType())); err != nil {
		return closed
	}
	return active
}

// handleActive processes post-join traffic. Chat messages are broadcast as-is;
// only voice messages go through the responder. Unknown events and repeated
// join events are ignored without closing the connection.
func (d *Dispatcher) handleActive(userID string, ev event.Inbound) connState {
	switch e := ev.(type) {
	case event.ChatMessage:
		kind := domain.MessageKind(e.MessageType)
		if kind != domain.KindVoice {
			kind = domain.KindText
		}
		d.registry.SendMessage(userID, e.Content, kind, e.AudioURL)
	case event.VoiceMessage:
		d.relay(userID, e.Transcription, domain.KindVoice, e.AudioURL)
	}
	return active
}

// relay broadcasts the transcription, then asks the responder for a reply
// and broadcasts that under the assistant identity when one is produced.
func (d *Dispatcher) relay(userID, content string, kind domain.MessageKind, audioURL string) {
	if _, ok := d.registry.SendMessage(userID, content, kind, audioURL); !ok {
		return
	}
	if reply := d.responder.Reply(content); reply != "" {
		d.registry.SendAssistantMessage(userID, reply)
	}
}
