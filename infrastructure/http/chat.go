package http

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/net/websocket"

	"openmandi/domain"
	apperrors "openmandi/errors"
	"openmandi/sink"
)

// handleChatWS upgrades the connection and hands it to the dispatcher. The
// writer pump runs on its own goroutine; the dispatcher owns the read loop
// and blocks until disconnect.
func (s *Server) handleChatWS(c echo.Context) error {
	userID := c.Param("user_id")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	websocket.Handler(func(ws *websocket.Conn) {
		conn := sink.NewWsConn(ws, s.log, s.deps.Monitor,
			s.deps.ConnectionBufferSize, s.deps.DeliveryTimeout)
		defer conn.Close()

		go conn.WritePump()
		s.deps.Dispatcher.Run(c.Request().Context(), userID, conn)
	}).ServeHTTP(c.Response(), c.Request())
	return nil
}

type createSessionRequest struct {
	UserID      string `form:"user_id" json:"user_id" validate:"required"`
	ProductType string `form:"product_type" json:"product_type"`
}

func (s *Server) handleCreateSession(c echo.Context) error {
	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	session := s.deps.Registry.CreateSession(req.UserID, req.ProductType)
	summary := session.Summary()
	return c.JSON(http.StatusOK, echo.Map{
		"session_id":   summary.SessionID,
		"product_type": summary.ProductType,
		"created_at":   summary.CreatedAt,
	})
}

func (s *Server) handleActiveSessions(c echo.Context) error {
	sessions := s.deps.Registry.ActiveSessions()
	return c.JSON(http.StatusOK, echo.Map{
		"sessions": sessions,
		"total":    len(sessions),
	})
}

func (s *Server) handleSessionHistory(c echo.Context) error {
	sessionID := c.Param("session_id")
	messages := s.deps.Registry.SessionHistory(sessionID)
	if messages == nil {
		return mapError(apperrors.ErrSessionNotFound)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"session_id": sessionID,
		"messages":   messages,
		"total":      len(messages),
	})
}

// handleVoiceMessage transcribes an uploaded clip, relays the transcription
// into the caller's session and returns both the user message and the
// assistant's reply.
func (s *Server) handleVoiceMessage(c echo.Context) error {
	userID := c.FormValue("user_id")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}
	language := c.FormValue("language")

	audio, err := formFileBytes(c, "audio")
	if err != nil {
		return err
	}

	transcription, err := s.deps.Speech.Transcribe(c.Request().Context(), audio, language)
	if err != nil {
		return mapError(err)
	}
	if transcription.Transcription == "" {
		return mapError(apperrors.ErrEmptyTranscription)
	}

	userMessage, ok := s.deps.Registry.SendMessage(userID, transcription.Transcription, domain.KindVoice, "")
	if !ok {
		return mapError(apperrors.ErrNotInSession)
	}

	response := echo.Map{
		"user_message":  userMessage,
		"transcription": transcription,
	}
	if reply := s.deps.Responder.Reply(transcription.Transcription); reply != "" {
		if aiMessage, ok := s.deps.Registry.SendAssistantMessage(userID, reply); ok {
			response["ai_response"] = aiMessage
		}
	}
	return c.JSON(http.StatusOK, response)
}

func formFileBytes(c echo.Context, field string) ([]byte, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, field+" file is required")
	}
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
