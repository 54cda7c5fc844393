// Package safeguards scores exploitation risk: user vulnerability profiles,
// price fairness bands and predatory pattern detection.
package safeguards

import (
	"log/slog"
	"sync"
	"time"
)

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// rank orders risk levels for max comparisons.
func (r RiskLevel) rank() int {
	switch r {
	case RiskCritical:
		return 3
	case RiskHigh:
		return 2
	case RiskMedium:
		return 1
	default:
		return 0
	}
}

// ParseRiskLevel validates a caller-provided level string.
func ParseRiskLevel(s string) (RiskLevel, bool) {
	switch RiskLevel(s) {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return RiskLevel(s), true
	}
	return "", false
}

// HighestRisk returns the most severe level among the alerts, low when empty.
func HighestRisk(alerts []Alert) RiskLevel {
	highest := RiskLow
	for _, alert := range alerts {
		if alert.RiskLevel.rank() > highest.rank() {
			highest = alert.RiskLevel
		}
	}
	return highest
}

type AlertType string

const (
	AlertPredatoryPricing   AlertType = "predatory_pricing"
	AlertPriceExploitation  AlertType = "price_exploitation"
	AlertVulnerableUser     AlertType = "vulnerable_user"
	AlertMarketManipulation AlertType = "market_manipulation"
)

// Alert is one detected ethical risk event.
type Alert struct {
	AlertID              string         `json:"alert_id"`
	AlertType            AlertType      `json:"alert_type"`
	RiskLevel            RiskLevel      `json:"risk_level"`
	UserID               string         `json:"user_id"`
	SessionID            string         `json:"session_id,omitempty"`
	Description          string         `json:"description"`
	Evidence             map[string]any `json:"evidence"`
	Recommendations      []string       `json:"recommendations"`
	Timestamp            time.Time      `json:"timestamp"`
	RequiresIntervention bool           `json:"requires_intervention"`
}

// UserData carries the self-declared indicators used for vulnerability scoring.
type UserData struct {
	LiteracyLevel       string  `json:"literacy_level"`
	TradingExperience   string  `json:"trading_experience"`
	LanguageProficiency float64 `json:"language_proficiency"`
	AvgTransactionSize  float64 `json:"avg_transaction_size"`
	TradingFrequency    string  `json:"trading_frequency"`
	Location            string  `json:"location"`
	PrimaryLanguage     string  `json:"primary_language"`
}

// EconomicIndicators is the profile's descriptive context.
type EconomicIndicators struct {
	TransactionSize float64 `json:"transaction_size"`
	Frequency       string  `json:"frequency"`
	Location        string  `json:"location"`
	PrimaryLanguage string  `json:"primary_language"`
}

// VulnerabilityProfile is the scored exploitation exposure of one user.
type VulnerabilityProfile struct {
	UserID              string             `json:"user_id"`
	LiteracyLevel       string             `json:"literacy_level"`
	ExperienceLevel     string             `json:"experience_level"`
	LanguageProficiency float64            `json:"language_proficiency"`
	EconomicIndicators  EconomicIndicators `json:"economic_indicators"`
	VulnerabilityScore  float64            `json:"vulnerability_score"`
	ProtectionMeasures  []string           `json:"protection_measures"`
}

var literacyWeights = map[string]float64{
	"low": 0.8, "basic": 0.6, "intermediate": 0.4, "high": 0.2,
}

var experienceWeights = map[string]float64{
	"new": 0.7, "beginner": 0.5, "intermediate": 0.3, "experienced": 0.1,
}

var protectionMeasures = map[string][]string{
	"high_vulnerability": {
		"Require price explanation before acceptance",
		"Mandatory cooling-off period (24 hours)",
		"Automatic market price comparison",
		"Simplified language explanations",
		"Audio warnings for unfair deals",
		"Suggest seeking second opinion",
	},
	"medium_vulnerability": {
		"Price comparison with market rates",
		"Negotiation guidance",
		"Risk factor highlighting",
		"Educational content suggestions",
	},
	"low_vulnerability": {
		"Standard market information",
		"Optional detailed analysis",
		"Advanced negotiation tools",
	},
}

// AlertStore persists alerts beyond the in-memory cache.
type AlertStore interface {
	SaveAlert(alert Alert) error
}

// Service holds the profile and alert caches. Both are best-effort
// in-memory state; alerts are additionally written to the store.
type Service struct {
	log      *slog.Logger
	store    AlertStore
	detector *pressureDetector

	mu       sync.RWMutex
	profiles map[string]VulnerabilityProfile
	alerts   map[string]Alert
}

// NewService builds the service. The store may be nil; alerts then live only
// in memory.
func NewService(log *slog.Logger, store AlertStore) (*Service, error) {
	detector, err := newPressureDetector()
	if err != nil {
		return nil, err
	}
	return &Service{
		log:      log,
		store:    store,
		detector: detector,
		profiles: make(map[string]VulnerabilityProfile),
		alerts:   make(map[string]Alert),
	}, nil
}

// AssessVulnerability scores a user's exposure from literacy, experience and
// language proficiency, then caches the profile.
func (s *Service) AssessVulnerability(userID string, data UserData) VulnerabilityProfile {
	literacy := data.LiteracyLevel
	if literacy == "" {
		literacy = "intermediate"
	}
	experience := data.TradingExperience
	if experience == "" {
		experience = "beginner"
	}
	proficiency := data.LanguageProficiency
	if proficiency == 0 {
		proficiency = 0.7
	}

	score := 0.0
	if w, ok := literacyWeights[literacy]; ok {
		score += w * 0.4
	}
	if w, ok := experienceWeights[experience]; ok {
		score += w * 0.3
	}
	switch {
	case proficiency < 0.5:
		score += 0.3
	case proficiency < 0.7:
		score += 0.2
	case proficiency < 0.9:
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}

	level := "low_vulnerability"
	if score >= 0.7 {
		level = "high_vulnerability"
	} else if score >= 0.4 {
		level = "medium_vulnerability"
	}

	profile := VulnerabilityProfile{
		UserID:              userID,
		LiteracyLevel:       literacy,
		ExperienceLevel:     experience,
		LanguageProficiency: proficiency,
		EconomicIndicators: EconomicIndicators{
			TransactionSize: data.AvgTransactionSize,
			Frequency:       orDefault(data.TradingFrequency, "occasional"),
			Location:        orDefault(data.Location, "unknown"),
			PrimaryLanguage: orDefault(data.PrimaryLanguage, "unknown"),
		},
		VulnerabilityScore: score,
		ProtectionMeasures: protectionMeasures[level],
	}

	s.mu.Lock()
	s.profiles[userID] = profile
	s.mu.Unlock()

	return profile
}

func (s *Service) profileOf(userID string) (VulnerabilityProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	return p, ok
}

// recordAlert caches the alert and writes it through to the store.
func (s *Service) recordAlert(alert Alert) {
	s.mu.Lock()
	s.alerts[alert.AlertID] = alert
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.SaveAlert(alert); err != nil {
			s.log.Error("alert persistence failed", "alert_id", alert.AlertID, "error", err)
		}
	}

	s.log.Warn("ethical alert",
		"type", alert.AlertType,
		"risk_level", alert.RiskLevel,
		"user_id", alert.UserID,
		"requires_intervention", alert.RequiresIntervention,
	)
}

// ProtectionStatus summarizes a user's standing over the alerts of the last
// 24 hours. Users without a profile get a neutral 0.5 score.
type ProtectionStatus struct {
	UserID             string    `json:"user_id"`
	VulnerabilityScore float64   `json:"vulnerability_score"`
	ProtectionMeasures []string  `json:"protection_measures"`
	ActiveAlerts       int       `json:"active_alerts"`
	RecentRiskLevel    RiskLevel `json:"recent_risk_level"`
	Recommendations    []string  `json:"recommendations"`
}

func (s *Service) UserProtectionStatus(userID string) ProtectionStatus {
	s.mu.RLock()
	cutoff := time.Now().UTC().Add(-24 * time.Hour)
	var recent []Alert
	for _, alert := range s.alerts {
		if alert.UserID == userID && alert.Timestamp.After(cutoff) {
			recent = append(recent, alert)
		}
	}
	profile, hasProfile := s.profiles[userID]
	s.mu.RUnlock()

	status := ProtectionStatus{
		UserID:             userID,
		VulnerabilityScore: 0.5,
		ActiveAlerts:       len(recent),
		RecentRiskLevel:    RiskLow,
		Recommendations:    currentRecommendations(recent),
	}
	if hasProfile {
		status.VulnerabilityScore = profile.VulnerabilityScore
		status.ProtectionMeasures = profile.ProtectionMeasures
	}
	for _, alert := range recent {
		if alert.RiskLevel.rank() > status.RecentRiskLevel.rank() {
			status.RecentRiskLevel = alert.RiskLevel
		}
	}
	return status
}

func currentRecommendations(alerts []Alert) []string {
	if len(alerts) == 0 {
		return []string{"Continue trading with normal caution"}
	}
	for _, alert := range alerts {
		if alert.RiskLevel == RiskHigh || alert.RiskLevel == RiskCritical {
			return []string{
				"Exercise extreme caution in current negotiations",
				"Verify all offers against market rates",
				"Consider seeking experienced trader advice",
				"Take time before making decisions",
			}
		}
	}
	return []string{
		"Stay alert to market conditions",
		"Continue monitoring price fairness",
		"Use available educational resources",
	}
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
