package domain

import (
	"fmt"
	"sync"
	"time"
)

// Conn is the delivery side of a participant's bidirectional channel.
// A failed Deliver marks the participant for pruning.
type Conn interface {
	Deliver(msg Message) error
}

// Session is a logical chat room scoped to one trading conversation.
// All state is guarded by a single mutex so that participant changes and
// message appends are serialized per session.
type Session struct {
	mu sync.Mutex

	id          string
	productType string
	createdAt   time.Time

	participants map[string]struct{}
	conns        map[string]Conn
	messages     []Message

	active     bool
	everJoined bool
}

func NewSession(id, productType string) *Session {
	return &Session{
		id:           id,
		productType:  productType,
		createdAt:    time.Now().UTC(),
		participants: make(map[string]struct{}),
		conns:        make(map[string]Conn),
		active:       true,
	}
}

func (s *Session) ID() string           { return s.id }
func (s *Session) ProductType() string  { return s.productType }
func (s *Session) CreatedAt() time.Time { return s.createdAt }

func (s *Session) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Session) ParticipantCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.participants)
}

func (s *Session) MessageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// EverJoined reports whether the session has ever had a participant.
// A session created but never joined stays active with zero participants
// until the registry's reaper claims it.
func (s *Session) EverJoined() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.everJoined
}

// HasParticipant reports whether the user is currently joined.
func (s *Session) HasParticipant(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.participants[userID]
	return ok
}

// History returns a copy of the message log in append order.
func (s *Session) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// AddParticipant records the participant and its channel, then broadcasts a
// system welcome message referencing the session's product type. The active
// check happens under the same lock hold as the add, so a join can never land
// in a session that broadcast pruning deactivated concurrently. Reports false
// when the session is no longer active.
func (s *Session) AddParticipant(userID string, conn Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return false
	}

	s.participants[userID] = struct{}{}
	s.conns[userID] = conn
	s.everJoined = true

	topic := s.productType
	if topic == "" {
		topic = "agricultural products"
	}
	welcome := NewMessage(s.id, SystemSender,
		fmt.Sprintf("Welcome %s! You can discuss %s here.", userID, topic),
		KindSystem, "")
	s.broadcastLocked(welcome)
	return true
}

// RemoveParticipant deletes the user from participants and connections.
// Removing an absent user is a no-op. Emptying the participant set
// deactivates the session permanently.
func (s *Session) RemoveParticipant(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeParticipantLocked(userID)
}

func (s *Session) removeParticipantLocked(userID string) {
	if _, ok := s.participants[userID]; !ok {
		return
	}
	delete(s.participants, userID)
	delete(s.conns, userID)
	if len(s.participants) == 0 {
		s.active = false
	}
}

// AddMessage constructs a message and broadcasts it to every participant.
func (s *Session) AddMessage(senderID, content string, kind MessageKind, audioURL string) Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := NewMessage(s.id, senderID, content, kind, audioURL)
	s.broadcastLocked(msg)
	return msg
}

// Broadcast appends the message to the log and delivers it to all connected
// participants. Every delivery is attempted before any pruning happens, so a
// single broken channel cannot shadow later failures.
func (s *Session) Broadcast(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.broadcastLocked(msg)
}

func (s *Session) broadcastLocked(msg Message) {
	s.messages = append(s.messages, msg)

	var failed []string
	for userID, conn := range s.conns {
		if err := conn.Deliver(msg); err != nil {
			failed = append(failed, userID)
		}
	}
	for _, userID := range failed {
		s.removeParticipantLocked(userID)
	}
}

// SessionSummary is the registry's listing view of an active session.
type SessionSummary struct {
	SessionID    string    `json:"session_id"`
	ProductType  string    `json:"product_type"`
	Participants int       `json:"participants"`
	CreatedAt    time.Time `json:"created_at"`
	MessageCount int       `json:"message_count"`
}

func (s *Session) Summary() SessionSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionSummary{
		SessionID:    s.id,
		ProductType:  s.productType,
		Participants: len(s.participants),
		CreatedAt:    s.createdAt,
		MessageCount: len(s.messages),
	}
}
