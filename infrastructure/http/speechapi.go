package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) handleTranscribe(c echo.Context) error {
	audio, err := formFileBytes(c, "audio")
	if err != nil {
		return err
	}
	language := c.FormValue("language")
	if language == "" {
		language = "en"
	}

	result, err := s.deps.Speech.Transcribe(c.Request().Context(), audio, language)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, result)
}

type synthesizeRequest struct {
	Text         string `form:"text" json:"text" validate:"required"`
	Language     string `form:"language" json:"language"`
	VoiceProfile string `form:"voice_profile" json:"voice_profile"`
}

func (s *Server) handleSynthesize(c echo.Context) error {
	var req synthesizeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := s.deps.Speech.Synthesize(req.Text, req.Language, req.VoiceProfile)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleDetectLanguage(c echo.Context) error {
	audio, err := formFileBytes(c, "audio")
	if err != nil {
		return err
	}
	result, err := s.deps.Speech.DetectLanguage(audio)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleLanguages(c echo.Context) error {
	languages := s.deps.Speech.SupportedLanguages()
	return c.JSON(http.StatusOK, echo.Map{
		"languages": languages,
		"total":     len(languages),
	})
}

type translateTermsRequest struct {
	Text           string `form:"text" json:"text" validate:"required"`
	SourceLanguage string `form:"source_language" json:"source_language"`
	TargetLanguage string `form:"target_language" json:"target_language"`
}

func (s *Server) handleTranslateTerms(c echo.Context) error {
	var req translateTermsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if req.SourceLanguage == "" {
		req.SourceLanguage = "en"
	}
	if req.TargetLanguage == "" {
		req.TargetLanguage = "hi"
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.deps.Speech.ProcessAgriculturalTerms(req.Text, req.SourceLanguage, req.TargetLanguage))
}
