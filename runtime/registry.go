// Package runtime owns session lifecycles and per-connection dispatch loops.
// It contains no pricing or scoring logic.
package runtime

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"openmandi/domain"
	"openmandi/observability"
)

// SessionRegistry maps session ids to sessions and user ids to their current
// session. Registry-level operations are serialized by a single mutex;
// per-session state is additionally guarded by the session's own lock, and
// the registry lock is never acquired while a session lock is held.
type SessionRegistry struct {
	mu           sync.Mutex
	log          *slog.Logger
	monitor      *observability.Monitor
	assistantID  string
	sessions     map[string]*domain.Session
	userSessions map[string]string
}

func NewSessionRegistry(log *slog.Logger, monitor *observability.Monitor, assistantID string) *SessionRegistry {
	return &SessionRegistry{
		log:          log,
		monitor:      monitor,
		assistantID:  assistantID,
		sessions:     make(map[string]*domain.Session),
		userSessions: make(map[string]string),
	}
}

// CreateSession registers a fresh empty session and records the creator's
// current session. The creator is NOT added as a participant; joining is a
// separate step, otherwise the creator would never see its own welcome.
func (r *SessionRegistry) CreateSession(userID, productType string) *domain.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessionID := uuid.NewString()
	session := domain.NewSession(sessionID, productType)
	r.sessions[sessionID] = session
	r.userSessions[userID] = sessionID

	r.monitor.IncrSessionsCreated()
	r.log.Info("session created", "session_id", sessionID, "user_id", userID, "product_type", productType)
	return session
}

// JoinSession adds the user to an existing active session. An unknown or
// inactive session id reports (nil, false) and leaves the registry untouched.
func (r *SessionRegistry) JoinSession(sessionID, userID string, conn domain.Conn) (*domain.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, false
	}
	if !session.AddParticipant(userID, conn) {
		return nil, false
	}
	r.userSessions[userID] = sessionID

	r.monitor.IncrJoins()
	r.log.Info("participant joined", "session_id", sessionID, "user_id", userID)
	return session, true
}

// LeaveSession removes the user from their current session, if any. A session
// emptied by the departure is deleted from the registry immediately. The
// user's current-session entry is always removed last.
func (r *SessionRegistry) LeaveSession(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessionID, ok := r.userSessions[userID]
	if !ok {
		return
	}
	if session, ok := r.sessions[sessionID]; ok {
		session.RemoveParticipant(userID)
		if !session.IsActive() {
			delete(r.sessions, sessionID)
			r.log.Info("session closed", "session_id", sessionID)
		}
	}
	delete(r.userSessions, userID)
}

// SendMessage appends a message to the user's current session and broadcasts
// it. Reports false when the user is not in a session.
func (r *SessionRegistry) SendMessage(userID, content string, kind domain.MessageKind, audioURL string) (domain.Message, bool) {
	session, ok := r.sessionOf(userID)
	if !ok {
		return domain.Message{}, false
	}
	msg := session.AddMessage(userID, content, kind, audioURL)
	r.monitor.IncrMessages()
	return msg, true
}

// SendAssistantMessage appends a generated reply to the user's current
// session, sent under the configured assistant identity.
func (r *SessionRegistry) SendAssistantMessage(userID, content string) (domain.Message, bool) {
	session, ok := r.sessionOf(userID)
	if !ok {
		return domain.Message{}, false
	}
	msg := session.AddMessage(r.assistantID, content, domain.KindAI, "")
	r.monitor.IncrMessages()
	return msg, true
}

func (r *SessionRegistry) sessionOf(userID string) (*domain.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sessionID, ok := r.userSessions[userID]
	if !ok {
		return nil, false
	}
	session, ok := r.sessions[sessionID]
	return session, ok
}

// SessionHistory returns the ordered message log of an active session,
// empty for unknown ids and for sessions already deactivated.
func (r *SessionRegistry) SessionHistory(sessionID string) []domain.Message {
	r.mu.Lock()
	session, ok := r.sessions[sessionID]
	r.mu.Unlock()
	if !ok || !session.IsActive() {
		return nil
	}
	return session.History()
}

// ActiveSessions returns one summary per active session.
func (r *SessionRegistry) ActiveSessions() []domain.SessionSummary {
	r.mu.Lock()
	sessions := lo.Values(r.sessions)
	r.mu.Unlock()

	active := lo.Filter(sessions, func(s *domain.Session, _ int) bool { return s.IsActive() })
	return lo.Map(active, func(s *domain.Session, _ int) domain.SessionSummary { return s.Summary() })
}

// Reap removes sessions that were created before the cutoff and never joined,
// and drops sessions deactivated by broadcast pruning whose record is still
// around. Stale current-session entries pointing at removed sessions are
// cleaned up as well. Returns the number of sessions removed.
func (r *SessionRegistry) Reap(ttl time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().UTC().Add(-ttl)
	removed := 0
	for id, session := range r.sessions {
		neverJoined := !session.EverJoined() && session.CreatedAt().Before(cutoff)
		if neverJoined || !session.IsActive() {
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		for userID, sessionID := range r.userSessions {
			if _, ok := r.sessions[sessionID]; !ok {
				delete(r.userSessions, userID)
			}
		}
		r.monitor.AddReaped(removed)
	}
	return removed
}
