package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"openmandi/safeguards"
)

type assessVulnerabilityRequest struct {
	UserID              string  `form:"user_id" json:"user_id" validate:"required"`
	LiteracyLevel       string  `form:"literacy_level" json:"literacy_level"`
	TradingExperience   string  `form:"trading_experience" json:"trading_experience"`
	LanguageProficiency float64 `form:"language_proficiency" json:"language_proficiency"`
	Location            string  `form:"location" json:"location"`
	PrimaryLanguage     string  `form:"primary_language" json:"primary_language"`
}

func (s *Server) handleAssessVulnerability(c echo.Context) error {
	var req assessVulnerabilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile := s.deps.Guard.AssessVulnerability(req.UserID, safeguards.UserData{
		LiteracyLevel:       req.LiteracyLevel,
		TradingExperience:   req.TradingExperience,
		LanguageProficiency: req.LanguageProficiency,
		Location:            req.Location,
		PrimaryLanguage:     req.PrimaryLanguage,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"user_id":              profile.UserID,
		"vulnerability_score":  profile.VulnerabilityScore,
		"literacy_level":       profile.LiteracyLevel,
		"experience_level":     profile.ExperienceLevel,
		"language_proficiency": profile.LanguageProficiency,
		"protection_measures":  profile.ProtectionMeasures,
		"risk_category":        vulnerabilityCategory(profile.VulnerabilityScore),
	})
}

type priceFairnessRequest struct {
	Product             string  `form:"product" json:"product" validate:"required"`
	OfferedPrice        float64 `form:"offered_price" json:"offered_price" validate:"gt=0"`
	MarketPrice         float64 `form:"market_price" json:"market_price" validate:"gte=0"`
	UserID              string  `form:"user_id" json:"user_id" validate:"required"`
	Urgency             string  `form:"urgency" json:"urgency"`
	NegotiationPressure bool    `form:"negotiation_pressure" json:"negotiation_pressure"`
}

func (s *Server) handleAnalyzePriceFairness(c echo.Context) error {
	var req priceFairnessRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if req.Urgency == "" {
		req.Urgency = "normal"
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	analysis := s.deps.Guard.AnalyzePriceFairness(req.Product, req.OfferedPrice,
		req.MarketPrice, req.UserID, safeguards.FairnessContext{
			Urgency:             req.Urgency,
			NegotiationPressure: req.NegotiationPressure,
		})

	actionRequired := analysis.ExploitationRisk == safeguards.RiskHigh ||
		analysis.ExploitationRisk == safeguards.RiskCritical

	return c.JSON(http.StatusOK, echo.Map{
		"product":           analysis.Product,
		"offered_price":     analysis.OfferedPrice,
		"market_price":      analysis.MarketPrice,
		"fairness_score":    analysis.FairnessScore,
		"exploitation_risk": analysis.ExploitationRisk,
		"factors":           analysis.Factors,
		"recommendations":   analysis.Recommendations,
		"verdict":           fairnessVerdict(analysis.FairnessScore),
		"action_required":   actionRequired,
	})
}

type detectPredatoryRequest struct {
	SessionID    string                  `json:"session_id" validate:"required"`
	UserID       string                  `json:"user_id" validate:"required"`
	PriceHistory []safeguards.PricePoint `json:"price_history"`
	Conversation string                  `json:"conversation_context"`
}

func (s *Server) handleDetectPredatoryPricing(c echo.Context) error {
	var req detectPredatoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	alerts := s.deps.Guard.DetectPredatoryPricing(req.SessionID, req.UserID, req.PriceHistory, req.Conversation)
	return c.JSON(http.StatusOK, echo.Map{
		"session_id":      req.SessionID,
		"alerts_detected": len(alerts),
		"alerts":          alerts,
		"overall_risk":    safeguards.HighestRisk(alerts),
	})
}

func (s *Server) handleProtectionGuidance(c echo.Context) error {
	userID := c.Param("user_id")
	levelParam := c.QueryParam("risk_level")
	if levelParam == "" {
		levelParam = "medium"
	}
	risk, ok := safeguards.ParseRiskLevel(levelParam)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid risk_level, use: low, medium, high, critical")
	}
	return c.JSON(http.StatusOK, s.deps.Guard.GenerateProtectionGuidance(userID, risk))
}

func (s *Server) handleProtectionStatus(c echo.Context) error {
	status := s.deps.Guard.UserProtectionStatus(c.Param("user_id"))

	return c.JSON(http.StatusOK, echo.Map{
		"user_id":                 status.UserID,
		"vulnerability_score":     status.VulnerabilityScore,
		"protection_level":        protectionLevel(status.VulnerabilityScore),
		"active_alerts":           status.ActiveAlerts,
		"recent_risk_level":       status.RecentRiskLevel,
		"protection_measures":     status.ProtectionMeasures,
		"current_recommendations": status.Recommendations,
		"status_summary":          statusSummary(status),
	})
}

func vulnerabilityCategory(score float64) string {
	switch {
	case score > 0.6:
		return "high"
	case score > 0.3:
		return "medium"
	default:
		return "low"
	}
}

func protectionLevel(score float64) string {
	switch {
	case score > 0.6:
		return "high"
	case score > 0.3:
		return "medium"
	default:
		return "standard"
	}
}

func fairnessVerdict(score float64) string {
	switch {
	case score >= 0.9:
		return "Fair price - within normal market range"
	case score >= 0.7:
		return "Acceptable price - minor deviation from market rate"
	case score >= 0.5:
		return "Questionable price - significant deviation from market rate"
	case score >= 0.3:
		return "Unfair price - major deviation from market rate"
	default:
		return "Extremely unfair price - potential exploitation"
	}
}

func statusSummary(status safeguards.ProtectionStatus) string {
	highRisk := status.RecentRiskLevel == safeguards.RiskHigh ||
		status.RecentRiskLevel == safeguards.RiskCritical
	switch {
	case status.ActiveAlerts > 0 && highRisk:
		return "High risk - Enhanced protection measures active"
	case status.VulnerabilityScore > 0.6:
		return "Vulnerable user - Additional safeguards enabled"
	case status.ActiveAlerts > 0:
		return "Monitoring active - Recent alerts detected"
	default:
		return "Normal protection - Standard safeguards active"
	}
}
