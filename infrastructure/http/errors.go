package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "openmandi/errors"
)

// mapError translates domain sentinels to HTTP status codes.
func mapError(err error) error {
	switch {
	case errors.Is(err, apperrors.ErrSessionNotFound),
		errors.Is(err, apperrors.ErrUnknownProduct):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrNotInSession),
		errors.Is(err, apperrors.ErrMalformedEvent),
		errors.Is(err, apperrors.ErrUnknownUnit),
		errors.Is(err, apperrors.ErrUnitCategoryMismatch),
		errors.Is(err, apperrors.ErrNotAudio),
		errors.Is(err, apperrors.ErrEmptyTranscription):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrMissingBearerToken):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return err
	}
}
