package errors

import "fmt"

var (
	ErrSessionNotFound      = fmt.Errorf("session not found or inactive")
	ErrNotInSession         = fmt.Errorf("user has no current session")
	ErrMalformedEvent       = fmt.Errorf("malformed event payload")
	ErrUnknownProduct       = fmt.Errorf("product not found in market database")
	ErrUnknownUnit          = fmt.Errorf("unknown unit")
	ErrUnitCategoryMismatch = fmt.Errorf("units belong to different categories")
	ErrNotAudio             = fmt.Errorf("payload is not an audio file")
	ErrEmptyTranscription   = fmt.Errorf("transcription is empty")
	ErrMissingBearerToken   = fmt.Errorf("missing or malformed bearer token")
)
