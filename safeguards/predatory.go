package safeguards

import (
	"fmt"
	"strings"
	"time"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/google/uuid"
)

var pressureKeywords = []string{"urgent", "last offer", "take it or leave it", "limited time"}

// pressureDetector matches pressure-tactic phrases with an Aho-Corasick
// automaton over the lowercased conversation text.
type pressureDetector struct {
	matcher *goahocorasick.Machine
}

func newPressureDetector() (*pressureDetector, error) {
	patterns := make([][]rune, len(pressureKeywords))
	for i, kw := range pressureKeywords {
		patterns[i] = []rune(kw)
	}
	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, fmt.Errorf("build pressure automaton: %w", err)
	}
	return &pressureDetector{matcher: m}, nil
}

// detect returns the distinct matched phrases in first-hit order.
func (d *pressureDetector) detect(text string) []string {
	terms := d.matcher.MultiPatternSearch([]rune(strings.ToLower(text)), false)
	seen := make(map[string]struct{}, len(terms))
	var matched []string
	for _, term := range terms {
		word := string(term.Word)
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		matched = append(matched, word)
	}
	return matched
}

// PricePoint is one step of a session's offer history.
type PricePoint struct {
	OfferedPrice float64 `json:"offered_price"`
	MarketPrice  float64 `json:"market_price"`
}

// DetectPredatoryPricing inspects an offer history and the conversation text
// for known exploitation patterns. Every alert raised is recorded.
func (s *Service) DetectPredatoryPricing(sessionID, userID string, history []PricePoint, conversation string) []Alert {
	var alerts []Alert

	if len(history) > 0 {
		latest := history[len(history)-1]
		if latest.MarketPrice > 0 && latest.OfferedPrice < latest.MarketPrice*0.6 {
			alerts = append(alerts, Alert{
				AlertID:     "predatory_" + uuid.NewString(),
				AlertType:   AlertPredatoryPricing,
				RiskLevel:   RiskHigh,
				UserID:      userID,
				SessionID:   sessionID,
				Description: "Extremely low offer detected - potential exploitation",
				Evidence: map[string]any{
					"offered_price":     latest.OfferedPrice,
					"market_price":      latest.MarketPrice,
					"deviation_percent": (latest.MarketPrice - latest.OfferedPrice) / latest.MarketPrice * 100,
				},
				Recommendations: []string{
					"Do not accept this offer",
					"The price is significantly below market rate",
					"Consider seeking alternative buyers",
				},
				Timestamp:            time.Now().UTC(),
				RequiresIntervention: true,
			})
		}
	}

	if len(history) >= 3 {
		recent := history[len(history)-3:]
		if recent[0].OfferedPrice > recent[1].OfferedPrice && recent[1].OfferedPrice > recent[2].OfferedPrice {
			reduction := (recent[0].OfferedPrice - recent[2].OfferedPrice) / recent[0].OfferedPrice
			if reduction > 0.15 {
				alerts = append(alerts, Alert{
					AlertID:     "gradual_reduction_" + uuid.NewString(),
					AlertType:   AlertPredatoryPricing,
					RiskLevel:   RiskMedium,
					UserID:      userID,
					SessionID:   sessionID,
					Description: "Gradual price reduction pattern detected",
					Evidence: map[string]any{
						"price_history":  []float64{recent[0].OfferedPrice, recent[1].OfferedPrice, recent[2].OfferedPrice},
						"reduction_rate": reduction * 100,
					},
					Recommendations: []string{
						"Be aware of gradual price reduction tactics",
						"Set a minimum acceptable price and stick to it",
						"Don't let pressure tactics influence your decision",
					},
					Timestamp: time.Now().UTC(),
				})
			}
		}
	}

	if matched := s.detector.detect(conversation); len(matched) > 0 {
		// Truncate on runes so Hindi or Telugu text is never cut mid-character.
		excerpt := conversation
		if runes := []rune(excerpt); len(runes) > 200 {
			excerpt = string(runes[:200])
		}
		alerts = append(alerts, Alert{
			AlertID:     "pressure_tactics_" + uuid.NewString(),
			AlertType:   AlertPredatoryPricing,
			RiskLevel:   RiskMedium,
			UserID:      userID,
			SessionID:   sessionID,
			Description: "High-pressure negotiation tactics detected",
			Evidence: map[string]any{
				"detected_keywords":    matched,
				"conversation_context": excerpt,
			},
			Recommendations: []string{
				"Take your time to make decisions",
				"Don't be pressured by urgency claims",
				"Verify market conditions independently",
			},
			Timestamp: time.Now().UTC(),
		})
	}

	for _, alert := range alerts {
		s.recordAlert(alert)
	}
	return alerts
}
