// Package http exposes the marketplace over REST and websocket endpoints.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"openmandi/accessible"
	"openmandi/auth"
	"openmandi/contract"
	"openmandi/negotiation"
	"openmandi/observability"
	"openmandi/pricing"
	"openmandi/repositories"
	"openmandi/runtime"
	"openmandi/safeguards"
	"openmandi/speech"
)

// Deps carries the collaborators the handlers delegate to.
type Deps struct {
	Registry   *runtime.SessionRegistry
	Dispatcher *runtime.Dispatcher
	Responder  contract.Responder
	Monitor    *observability.Monitor
	Speech     *speech.Service
	Analyzer   *pricing.Analyzer
	Prices     repositories.PriceRepository
	Negotiator *negotiation.Service
	Guard      *safeguards.Service
	Accessible *accessible.Service
	Tokens     auth.Tokens

	ConnectionBufferSize int
	DeliveryTimeout      time.Duration
}

type Server struct {
	echo *echo.Echo
	log  *slog.Logger
	deps Deps
}

func NewServer(log *slog.Logger, deps Deps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Validator = NewValidator()

	s := &Server{echo: e, log: log, deps: deps}
	s.routes()
	return s
}

func (s *Server) routes() {
	v1 := s.echo.Group("/api/v1")

	v1.GET("/health", s.handleHealth)
	v1.POST("/auth/token", s.handleIssueToken)
	v1.GET("/stats", s.handleStats, s.requireAuth)

	chat := v1.Group("/chat")
	chat.GET("/ws/:user_id", s.handleChatWS)
	chat.POST("/sessions", s.handleCreateSession)
	chat.GET("/sessions/active", s.handleActiveSessions)
	chat.GET("/sessions/:session_id/history", s.handleSessionHistory)
	chat.POST("/sessions/:session_id/voice", s.handleVoiceMessage)

	price := v1.Group("/price")
	price.GET("/trends", s.handlePriceTrends)
	price.GET("/mandi-data", s.handleMandiData)
	price.GET("/suggestion/:product", s.handlePriceSuggestion)
	price.GET("/products", s.handleProducts)
	price.GET("/markets", s.handleMarkets)

	nego := v1.Group("/negotiation")
	nego.POST("/analyze-offer", s.handleAnalyzeOffer)
	nego.POST("/negotiation-advice", s.handleNegotiationAdvice)
	nego.POST("/evaluate-deal", s.handleEvaluateDeal)
	nego.GET("/market-insights/:product", s.handleMarketInsights)

	guard := v1.Group("/safeguards")
	guard.POST("/assess-vulnerability", s.handleAssessVulnerability)
	guard.POST("/analyze-price-fairness", s.handleAnalyzePriceFairness)
	guard.POST("/detect-predatory-pricing", s.handleDetectPredatoryPricing)
	guard.GET("/protection-guidance/:user_id", s.handleProtectionGuidance)
	guard.GET("/user-protection-status/:user_id", s.handleProtectionStatus)

	errs := v1.Group("/errors")
	errs.POST("/network", s.handleNetworkError)
	errs.POST("/validation", s.handleValidationError)
	errs.POST("/speech", s.handleSpeechError)
	errs.POST("/price", s.handlePriceError)
	errs.POST("/negotiation", s.handleNegotiationWarning)
	errs.POST("/critical", s.handleCriticalError)
	errs.GET("/statistics", s.handleErrorStatistics)

	sp := v1.Group("/speech")
	sp.POST("/transcribe", s.handleTranscribe)
	sp.POST("/synthesize", s.handleSynthesize)
	sp.POST("/detect-language", s.handleDetectLanguage)
	sp.GET("/languages", s.handleLanguages)
	sp.POST("/translate-terms", s.handleTranslateTerms)

	units := v1.Group("/units")
	units.POST("/convert", s.handleUnitConvert)
	units.POST("/detect", s.handleUnitDetect)
	units.GET("/recommendations", s.handleUnitRecommendations)
}

func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":          "healthy",
		"version":         "1.0.0",
		"active_sessions": len(s.deps.Registry.ActiveSessions()),
	})
}

func (s *Server) handleStats(c echo.Context) error {
	return c.JSON(http.StatusOK, s.deps.Monitor.Snapshot())
}
