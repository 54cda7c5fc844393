package runtime

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"openmandi/domain"
	"openmandi/observability"
)

type stubConn struct {
	delivered []domain.Message
	failing   bool
}

func (c *stubConn) Deliver(msg domain.Message) error {
	if c.failing {
		return fmt.Errorf("broken pipe")
	}
	c.delivered = append(c.delivered, msg)
	return nil
}

func newTestRegistry() *SessionRegistry {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSessionRegistry(log, observability.NewMonitor(log), "ai_assistant")
}

func TestRegistry_Create_Then_Join(t *testing.T) {
	req := require.New(t)
	registry := newTestRegistry()
	conn := &stubConn{}

	// Given farmer A creates a session about onions
	session := registry.CreateSession("farmer_a", "onion")
	req.True(session.IsActive())
	req.Equal(0, session.ParticipantCount())

	// When A joins it
	joined, ok := registry.JoinSession(session.ID(), "farmer_a", conn)

	// Then A receives the system welcome
	req.True(ok)
	req.Equal(session.ID(), joined.ID())
	req.Len(conn.delivered, 1)
	req.Equal(domain.KindSystem, conn.delivered[0].Kind)
	req.Contains(conn.delivered[0].Content, "farmer_a")
	req.Contains(conn.delivered[0].Content, "onion")
}

func TestRegistry_Second_Join_Broadcasts_Welcome(t *testing.T) {
	req := require.New(t)
	registry := newTestRegistry()
	connA := &stubConn{}
	connB := &stubConn{}

	// Given A is already in the session
	session := registry.CreateSession("farmer_a", "onion")
	registry.JoinSession(session.ID(), "farmer_a", connA)

	// When B joins
	_, ok := registry.JoinSession(session.ID(), "trader_b", connB)

	// Then both receive B's welcome
	req.True(ok)
	req.Len(connA.delivered, 2)
	req.Contains(connA.delivered[1].Content, "trader_b")
	req.Len(connB.delivered, 1)
	req.Contains(connB.delivered[0].Content, "trader_b")
}

func TestRegistry_Join_Unknown_Session(t *testing.T) {
	req := require.New(t)
	registry := newTestRegistry()
	conn := &stubConn{}

	// When a user joins a session id that was never created
	session, ok := registry.JoinSession("no-such-session", "farmer_a", conn)

	// Then the join is rejected without side effects
	req.False(ok)
	req.Nil(session)
	_, sent := registry.SendMessage("farmer_a", "hello", domain.KindText, "")
	req.False(sent)
}

func TestRegistry_SendMessage_Broadcasts_To_All(t *testing.T) {
	req := require.New(t)
	registry := newTestRegistry()
	connA := &stubConn{}
	connB := &stubConn{}

	session := registry.CreateSession("farmer_a", "wheat")
	registry.JoinSession(session.ID(), "farmer_a", connA)
	registry.JoinSession(session.ID(), "trader_b", connB)

	// When A sends a message
	msg, ok := registry.SendMessage("farmer_a", "selling 50 quintals", domain.KindText, "")

	// Then everyone receives it and it lands in the history
	req.True(ok)
	req.Equal("farmer_a", msg.SenderID)
	req.Equal(msg.Content, connA.delivered[len(connA.delivered)-1].Content)
	req.Equal(msg.Content, connB.delivered[len(connB.delivered)-1].Content)

	history := registry.SessionHistory(session.ID())
	req.Equal(msg.ID, history[len(history)-1].ID)
}

func TestRegistry_SendAssistantMessage(t *testing.T) {
	req := require.New(t)
	registry := newTestRegistry()
	conn := &stubConn{}

	session := registry.CreateSession("farmer_a", "rice")
	registry.JoinSession(session.ID(), "farmer_a", conn)

	// When the assistant replies to A
	msg, ok := registry.SendAssistantMessage("farmer_a", "rice trades around 2500")

	// Then the message carries the assistant identity
	req.True(ok)
	req.Equal("ai_assistant", msg.SenderID)
	req.Equal(domain.KindAI, msg.Kind)
	req.Equal(msg.Content, conn.delivered[len(conn.delivered)-1].Content)
}

func TestRegistry_Leave_Last_Participant_Closes_Session(t *testing.T) {
	req := require.New(t)
	registry := newTestRegistry()
	connA := &stubConn{}
	connB := &stubConn{}

	session := registry.CreateSession("farmer_a", "cotton")
	registry.JoinSession(session.ID(), "farmer_a", connA)
	registry.JoinSession(session.ID(), "trader_b", connB)

	// When A leaves, the session stays active
	registry.LeaveSession("farmer_a")
	req.Len(registry.ActiveSessions(), 1)

	// When the last participant leaves
	registry.LeaveSession("trader_b")

	// Then the session is gone
	req.Empty(registry.ActiveSessions())
	req.Empty(registry.SessionHistory(session.ID()))
	_, sent := registry.SendMessage("trader_b", "anyone?", domain.KindText, "")
	req.False(sent)
}

func TestRegistry_Broadcast_Failure_Prunes_Participant(t *testing.T) {
	req := require.New(t)
	registry := newTestRegistry()
	connA := &stubConn{}
	connB := &stubConn{}
	connC := &stubConn{}

	session := registry.CreateSession("farmer_a", "tomato")
	registry.JoinSession(session.ID(), "farmer_a", connA)
	registry.JoinSession(session.ID(), "trader_b", connB)
	registry.JoinSession(session.ID(), "trader_c", connC)

	// Given B's channel breaks after joining
	connB.failing = true

	// When a broadcast hits B's broken channel
	_, ok := registry.SendMessage("farmer_a", "fresh stock today", domain.KindText, "")

	// Then B is pruned and the others keep receiving
	req.True(ok)
	req.Equal(2, session.ParticipantCount())
	req.False(session.HasParticipant("trader_b"))
	req.True(session.HasParticipant("farmer_a"))
	req.True(session.HasParticipant("trader_c"))
}

func TestRegistry_Join_Deactivated_Session_Is_Rejected(t *testing.T) {
	req := require.New(t)
	registry := newTestRegistry()

	// Given a session deactivated by pruning its sole participant
	session := registry.CreateSession("farmer_a", "rice")
	registry.JoinSession(session.ID(), "farmer_a", &stubConn{failing: true})
	req.False(session.IsActive())

	// When another user tries to join it
	joined, ok := registry.JoinSession(session.ID(), "trader_b", &stubConn{})

	// Then the join is rejected and the user is not tracked
	req.False(ok)
	req.Nil(joined)
	req.False(session.HasParticipant("trader_b"))
	_, sent := registry.SendMessage("trader_b", "hello", domain.KindText, "")
	req.False(sent)
}

func TestRegistry_Concurrent_Senders_Keep_Order(t *testing.T) {
	req := require.New(t)
	registry := newTestRegistry()

	session := registry.CreateSession("farmer_a", "rice")
	const senders = 8
	const perSender = 25
	for i := 0; i < senders; i++ {
		_, ok := registry.JoinSession(session.ID(), fmt.Sprintf("trader_%d", i), &stubConn{})
		req.True(ok)
	}

	// When every participant sends a burst of messages at once
	var wg sync.WaitGroup
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func(sender int) {
			defer wg.Done()
			userID := fmt.Sprintf("trader_%d", sender)
			for n := 0; n < perSender; n++ {
				registry.SendMessage(userID, fmt.Sprintf("offer %d", n), domain.KindText, "")
			}
		}(i)
	}
	wg.Wait()

	// Then no message is lost: one welcome per join plus every send
	history := registry.SessionHistory(session.ID())
	req.Len(history, senders+senders*perSender)

	// And each sender's messages appear in the order they were sent
	next := make(map[string]int)
	for _, msg := range history {
		if msg.Kind != domain.KindText {
			continue
		}
		var n int
		_, err := fmt.Sscanf(msg.Content, "offer %d", &n)
		req.NoError(err)
		req.Equal(next[msg.SenderID], n)
		next[msg.SenderID]++
	}
	for i := 0; i < senders; i++ {
		req.Equal(perSender, next[fmt.Sprintf("trader_%d", i)])
	}
}

func TestRegistry_Reap_Never_Joined_Sessions(t *testing.T) {
	req := require.New(t)
	registry := newTestRegistry()
	conn := &stubConn{}

	// Given one abandoned session and one joined session
	registry.CreateSession("farmer_a", "rice")
	joined := registry.CreateSession("trader_b", "wheat")
	registry.JoinSession(joined.ID(), "trader_b", conn)

	// When the reaper runs with a zero TTL
	removed := registry.Reap(0)

	// Then only the never-joined session is removed
	req.Equal(1, removed)
	req.Len(registry.ActiveSessions(), 1)
	req.Equal(joined.ID(), registry.ActiveSessions()[0].SessionID)

	// And the abandoned creator's session entry is cleared
	_, sent := registry.SendMessage("farmer_a", "hello?", domain.KindText, "")
	req.False(sent)
}
