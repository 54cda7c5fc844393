package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"openmandi/accessible"
)

type accessibleErrorRequest struct {
	ErrorType         string `form:"error_type" json:"error_type"`
	Product           string `form:"product" json:"product"`
	Price             string `form:"price" json:"price"`
	RetryAction       string `form:"retry_action" json:"retry_action"`
	AlternativeAction string `form:"alternative_action" json:"alternative_action"`
	LowLiteracy       bool   `form:"low_literacy" json:"low_literacy"`
	VisualImpairment  bool   `form:"visual_impairment" json:"visual_impairment"`
}

func (r accessibleErrorRequest) context() accessible.Context {
	return accessible.Context{
		Product:           r.Product,
		Price:             r.Price,
		RetryAction:       r.RetryAction,
		AlternativeAction: r.AlternativeAction,
		LowLiteracy:       r.LowLiteracy,
		VisualImpairment:  r.VisualImpairment,
	}
}

func (s *Server) bindAccessibleError(c echo.Context, defaultType string) (accessibleErrorRequest, error) {
	var req accessibleErrorRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if req.ErrorType == "" {
		req.ErrorType = defaultType
	}
	return req, nil
}

func (s *Server) handleNetworkError(c echo.Context) error {
	req, err := s.bindAccessibleError(c, "connection_failed")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.deps.Accessible.NetworkError(req.ErrorType, req.context()))
}

func (s *Server) handleValidationError(c echo.Context) error {
	req, err := s.bindAccessibleError(c, "invalid_price")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.deps.Accessible.ValidationError(req.ErrorType, req.context()))
}

func (s *Server) handleSpeechError(c echo.Context) error {
	req, err := s.bindAccessibleError(c, "speech_not_recognized")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.deps.Accessible.SpeechError(req.ErrorType, req.context()))
}

func (s *Server) handlePriceError(c echo.Context) error {
	req, err := s.bindAccessibleError(c, "price_unavailable")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.deps.Accessible.PriceError(req.ErrorType, req.context()))
}

func (s *Server) handleNegotiationWarning(c echo.Context) error {
	req, err := s.bindAccessibleError(c, "unfair_offer")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.deps.Accessible.NegotiationWarning(req.ErrorType, req.context()))
}

type criticalErrorRequest struct {
	Message string `form:"message" json:"message" validate:"required"`
}

func (s *Server) handleCriticalError(c echo.Context) error {
	var req criticalErrorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.deps.Accessible.CriticalError(req.Message))
}

func (s *Server) handleErrorStatistics(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"statistics": s.deps.Accessible.Statistics(),
		"accessibility_features": echo.Map{
			"audio_feedback":    "Available for all error messages",
			"simple_language":   "Automatically enabled for low-literacy users",
			"multilingual":      "Supports Hindi, Telugu, Tamil, Kannada",
			"visual_indicators": "Color-coded with animations",
			"voice_guidance":    "Step-by-step audio instructions",
			"high_contrast":     "Available for visually impaired users",
		},
		"supported_categories": []accessible.Category{
			accessible.CategoryNetwork, accessible.CategoryValidation,
			accessible.CategorySpeechProcessing, accessible.CategoryPriceData,
			accessible.CategoryNegotiation, accessible.CategorySystem,
		},
		"supported_severities": []accessible.Severity{
			accessible.SeverityInfo, accessible.SeverityWarning,
			accessible.SeverityError, accessible.SeverityCritical,
		},
	})
}
