// Package speech is the speech boundary: transcription, synthesis and
// agricultural term translation. The recognizer is a deterministic stand-in
// until a real speech backend is wired; payload validation and language
// handling are real.
package speech

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/abadojack/whatlanggo"
	"github.com/gabriel-vasile/mimetype"

	"openmandi/contract"
	"openmandi/errors"
)

var supportedLanguages = map[string]string{
	"en": "en-US",
	"hi": "hi-IN",
	"te": "te-IN",
	"ta": "ta-IN",
	"kn": "kn-IN",
	"ml": "ml-IN",
}

// mockTranscriptions are common marketplace utterances; the recognizer picks
// one by payload length so the same upload always transcribes the same way.
var mockTranscriptions = []string{
	"What is the price of rice today?",
	"I want to sell tomatoes",
	"Show me wheat prices",
	"How much does onion cost?",
	"I need to buy cotton",
	"What are potato prices?",
	"Hello, I want to trade",
	"Namaste, rice ki kimat kya hai?",
}

type Service struct {
	log *slog.Logger
}

var _ contract.Transcriber = (*Service)(nil)

func NewService(log *slog.Logger) *Service {
	return &Service{log: log}
}

// Transcribe converts an audio payload to text. The payload must sniff as
// audio (webm voice notes from browsers sniff as video containers and are
// accepted too).
func (s *Service) Transcribe(ctx context.Context, audio []byte, language string) (contract.Transcription, error) {
	if err := ctx.Err(); err != nil {
		return contract.Transcription{}, err
	}
	if err := checkAudio(audio); err != nil {
		return contract.Transcription{}, err
	}
	if language == "" {
		language = "en"
	}

	transcript := mockTranscriptions[len(audio)%len(mockTranscriptions)]
	detected := detectTextLanguage(transcript, language)

	s.log.Debug("audio transcribed",
		"bytes", len(audio),
		"language", language,
		"detected_language", detected)

	return contract.Transcription{
		Transcription:    transcript,
		Language:         language,
		DetectedLanguage: detected,
		Confidence:       0.85,
		Duration:         float64(len(audio)) / 16000,
	}, nil
}

func checkAudio(audio []byte) error {
	if len(audio) == 0 {
		return fmt.Errorf("empty payload: %w", errors.ErrNotAudio)
	}
	kind := mimetype.Detect(audio)
	if strings.HasPrefix(kind.String(), "audio/") || strings.HasPrefix(kind.String(), "video/") {
		return nil
	}
	return fmt.Errorf("detected %s: %w", kind.String(), errors.ErrNotAudio)
}

// detectTextLanguage trusts statistical detection only when it lands on a
// language we support, otherwise keeps the caller's hint.
func detectTextLanguage(text, fallback string) string {
	info := whatlanggo.Detect(text)
	if code := info.Lang.Iso6391(); code != "" {
		if _, ok := supportedLanguages[code]; ok {
			return code
		}
	}
	return fallback
}

// Synthesis is the text-to-speech result record.
type Synthesis struct {
	AudioURL     string  `json:"audio_url"`
	Text         string  `json:"text"`
	Language     string  `json:"language"`
	VoiceProfile string  `json:"voice_profile"`
	Duration     float64 `json:"duration"`
}

// Synthesize returns a stable audio URL for the text. The actual rendering
// happens lazily behind that URL.
func (s *Service) Synthesize(text, language, voiceProfile string) (Synthesis, error) {
	if strings.TrimSpace(text) == "" {
		return Synthesis{}, fmt.Errorf("synthesize: %w", errors.ErrEmptyTranscription)
	}
	if language == "" {
		language = "en"
	}
	if voiceProfile == "" {
		voiceProfile = "default"
	}

	digest := fnv.New32a()
	digest.Write([]byte(text))

	return Synthesis{
		AudioURL:     fmt.Sprintf("/api/v1/speech/tts/%d.mp3", digest.Sum32()%10000),
		Text:         text,
		Language:     language,
		VoiceProfile: voiceProfile,
		Duration:     float64(utf8.RuneCountInString(text)) * 0.1,
	}, nil
}

// LanguageCandidate is one alternative in an audio language detection.
type LanguageCandidate struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// LanguageDetection is the outcome of sniffing an audio payload's language.
type LanguageDetection struct {
	DetectedLanguage string              `json:"detected_language"`
	Confidence       float64             `json:"confidence"`
	Alternatives     []LanguageCandidate `json:"alternatives"`
}

// DetectLanguage guesses the spoken language of an audio payload.
func (s *Service) DetectLanguage(audio []byte) (LanguageDetection, error) {
	if err := checkAudio(audio); err != nil {
		return LanguageDetection{}, err
	}
	return LanguageDetection{
		DetectedLanguage: "en",
		Confidence:       0.90,
		Alternatives: []LanguageCandidate{
			{Language: "hi", Confidence: 0.05},
			{Language: "te", Confidence: 0.03},
		},
	}, nil
}

// SupportedLanguages maps language codes to their recognition locales.
func (s *Service) SupportedLanguages() map[string]string {
	out := make(map[string]string, len(supportedLanguages))
	for code, locale := range supportedLanguages {
		out[code] = locale
	}
	return out
}
