package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"openmandi/domain"
)

type stubConn struct{}

func (stubConn) Deliver(domain.Message) error { return nil }

func TestCreateSession_Returns_Identifier(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/chat/sessions",
		map[string]any{"user_id": "farmer_1", "product_type": "rice"})
	req.Equal(http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	req.NotEmpty(body["session_id"])
	req.Equal("rice", body["product_type"])
}

func TestCreateSession_Requires_UserID(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/chat/sessions", map[string]any{"product_type": "rice"})
	req.Equal(http.StatusBadRequest, rec.Code)
}

func TestSessionHistory_Empty_Session(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	session := s.deps.Registry.CreateSession("farmer_1", "wheat")

	rec := doJSON(t, s, http.MethodGet, "/api/v1/chat/sessions/"+session.ID()+"/history", nil)
	req.Equal(http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	req.Equal(session.ID(), body["session_id"])
	req.Equal(float64(0), body["total"])
}

func TestSessionHistory_Unknown_Session(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/v1/chat/sessions/no-such-session/history", nil)
	req.Equal(http.StatusNotFound, rec.Code)
}

func TestActiveSessions_Lists_Created_Session(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	s.deps.Registry.CreateSession("farmer_1", "onion")

	rec := doJSON(t, s, http.MethodGet, "/api/v1/chat/sessions/active", nil)
	req.Equal(http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	req.Equal(float64(1), body["total"])
}

func TestVoiceMessage_Requires_Session(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	form, contentType := audioForm(t, 16, map[string]string{"user_id": "stranger"})
	httpReq := httptest.NewRequest(http.MethodPost, "/api/v1/chat/sessions/any/voice", form)
	httpReq.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, httpReq)

	req.Equal(http.StatusBadRequest, rec.Code)
}

func TestVoiceMessage_Relays_Transcription(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	session := s.deps.Registry.CreateSession("farmer_1", "rice")
	_, ok := s.deps.Registry.JoinSession(session.ID(), "farmer_1", stubConn{})
	req.True(ok)

	form, contentType := audioForm(t, 16, map[string]string{"user_id": "farmer_1", "language": "en"})
	httpReq := httptest.NewRequest(http.MethodPost, "/api/v1/chat/sessions/"+session.ID()+"/voice", form)
	httpReq.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, httpReq)

	req.Equal(http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	req.Contains(body, "user_message")
	req.Contains(body, "transcription")

	messages := s.deps.Registry.SessionHistory(session.ID())
	req.NotEmpty(messages)
}

func TestVoiceMessage_Rejects_Non_Audio(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	session := s.deps.Registry.CreateSession("farmer_1", "rice")
	_, ok := s.deps.Registry.JoinSession(session.ID(), "farmer_1", stubConn{})
	req.True(ok)

	form, contentType := textForm(t, "audio", "clip.txt", `{"not":"audio"}`,
		map[string]string{"user_id": "farmer_1"})
	httpReq := httptest.NewRequest(http.MethodPost, "/api/v1/chat/sessions/"+session.ID()+"/voice", form)
	httpReq.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, httpReq)

	req.Equal(http.StatusBadRequest, rec.Code)
}
