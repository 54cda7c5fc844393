package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranscribe_Wav_Upload(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	form, contentType := audioForm(t, 16, map[string]string{"language": "en"})
	httpReq := httptest.NewRequest(http.MethodPost, "/api/v1/speech/transcribe", form)
	httpReq.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, httpReq)

	req.Equal(http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	req.NotEmpty(body["transcription"])
	req.Equal("en", body["language"])
	req.Equal(0.85, body["confidence"])
}

func TestTranscribe_Rejects_Text_Payload(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	form, contentType := textForm(t, "audio", "note.txt", "just words", nil)
	httpReq := httptest.NewRequest(http.MethodPost, "/api/v1/speech/transcribe", form)
	httpReq.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, httpReq)

	req.Equal(http.StatusBadRequest, rec.Code)
}

func TestTranscribe_Requires_Audio_File(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/speech/transcribe", map[string]any{})
	req.Equal(http.StatusBadRequest, rec.Code)
}

func TestSynthesize(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/speech/synthesize", map[string]any{
		"text":     "Hello farmer",
		"language": "hi",
	})
	req.Equal(http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	req.True(strings.HasPrefix(body["audio_url"].(string), "/api/v1/speech/tts/"))
	req.Equal("hi", body["language"])
	req.Equal("default", body["voice_profile"])
}

func TestSynthesize_Rejects_Blank_Text(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/speech/synthesize", map[string]any{})
	req.Equal(http.StatusBadRequest, rec.Code)
}

func TestDetectLanguage_Endpoint(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	form, contentType := audioForm(t, 32, nil)
	httpReq := httptest.NewRequest(http.MethodPost, "/api/v1/speech/detect-language", form)
	httpReq.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, httpReq)

	req.Equal(http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	req.Equal("en", body["detected_language"])
	req.NotEmpty(body["alternatives"])
}

func TestLanguages_Endpoint(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/v1/speech/languages", nil)
	req.Equal(http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	req.Equal(float64(6), body["total"])
	languages := body["languages"].(map[string]any)
	req.Equal("hi-IN", languages["hi"])
}

func TestTranslateTerms_Defaults_To_Hindi(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/speech/translate-terms", map[string]any{
		"text": "What is the price of rice?",
	})
	req.Equal(http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	req.Equal("en", body["source_language"])
	req.Equal("hi", body["target_language"])
	translations := body["translations"].(map[string]any)
	req.Equal("चावल", translations["rice"])
	req.Equal("कीमत", translations["price"])
}
