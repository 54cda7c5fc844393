package pricing

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"openmandi/errors"
)

// Trend describes the current market direction for a product.
type Trend struct {
	Direction  string   `json:"direction"`
	Strength   float64  `json:"strength"`
	Confidence float64  `json:"confidence"`
	Factors    []string `json:"factors"`
}

// ConfidenceBand brackets a suggested price by market volatility.
type ConfidenceBand struct {
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Conservative float64 `json:"conservative"`
	Aggressive   float64 `json:"aggressive"`
}

type SeasonEdge struct {
	Month         string  `json:"month"`
	Multiplier    float64 `json:"multiplier"`
	ChangePercent float64 `json:"change_percent"`
}

type SeasonalFactors struct {
	CurrentMonth       string     `json:"current_month"`
	CurrentMultiplier  float64    `json:"current_multiplier"`
	PeakSeason         SeasonEdge `json:"peak_season"`
	LowSeason          SeasonEdge `json:"low_season"`
	SeasonalVolatility float64    `json:"seasonal_volatility"`
}

type QualityAdjustment struct {
	BaseAdjustment float64 `json:"base_adjustment"`
	Grade          string  `json:"grade"`
	ImpactPercent  float64 `json:"impact_percent"`
}

type RiskAssessment struct {
	Level              string   `json:"level"`
	Factors            []string `json:"factors"`
	Volatility         float64  `json:"volatility"`
	ConfidenceInterval string   `json:"confidence_interval"`
	Recommendation     string   `json:"recommendation"`
}

// Analysis is the full price suggestion report for one product.
type Analysis struct {
	Product            string            `json:"product"`
	CurrentPrice       float64           `json:"current_price"`
	SuggestedPrice     float64           `json:"suggested_price"`
	ConfidenceBand     ConfidenceBand    `json:"confidence_band"`
	MarketTrend        Trend             `json:"market_trend"`
	SeasonalFactors    SeasonalFactors   `json:"seasonal_factors"`
	QualityAdjustments QualityAdjustment `json:"quality_adjustments"`
	Explanation        string            `json:"explanation"`
	RiskAssessment     RiskAssessment    `json:"risk_assessment"`
}

// Request carries the inputs of a price analysis.
type Request struct {
	Product      string  `json:"product" validate:"required"`
	Quantity     float64 `json:"quantity" validate:"gte=0"`
	QualityGrade string  `json:"quality_grade"`
	Location     string  `json:"location"`
	Urgency      string  `json:"urgency"`
}

// Analyzer computes price suggestions from the market tables.
// The clock is injected so seasonal behavior is testable.
type Analyzer struct {
	now func() time.Time
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{now: time.Now}
}

func NewAnalyzerAt(now func() time.Time) *Analyzer {
	return &Analyzer{now: now}
}

// Analyze builds the suggestion for one product. Unknown products fail with
// ErrUnknownProduct.
func (a *Analyzer) Analyze(req Request) (Analysis, error) {
	product := strings.ToLower(req.Product)
	market, ok := marketData[product]
	if !ok {
		return Analysis{}, fmt.Errorf("analyze %q: %w", req.Product, errors.ErrUnknownProduct)
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 100
	}
	grade := strings.ToLower(req.QualityGrade)
	if grade == "" {
		grade = "good"
	}

	month := monthKey(a.now())
	seasonal := multiplierOr(market.SeasonalMultipliers, month, 1.0)
	quality := multiplierOr(market.QualityGrades, grade, 1.0)
	qty := quantityAdjustment(quantity)
	urgency := urgencyAdjustment(req.Urgency)
	location := locationAdjustment(req.Location)

	suggested := market.BasePrice * seasonal * quality * qty * urgency * location
	volatility := market.Volatility

	trend := analyzeTrend(seasonal)

	analysis := Analysis{
		Product:        req.Product,
		CurrentPrice:   market.BasePrice,
		SuggestedPrice: round2(suggested),
		ConfidenceBand: ConfidenceBand{
			Min:          round2(suggested * (1 - volatility)),
			Max:          round2(suggested * (1 + volatility)),
			Conservative: round2(suggested * (1 - volatility*0.5)),
			Aggressive:   round2(suggested * (1 + volatility*0.5)),
		},
		MarketTrend:     trend,
		SeasonalFactors: seasonalFactors(market, month),
		QualityAdjustments: QualityAdjustment{
			BaseAdjustment: quality - 1.0,
			Grade:          grade,
			ImpactPercent:  (quality - 1.0) * 100,
		},
		Explanation:    explain(req.Product, suggested, market.BasePrice, seasonal, quality, qty, trend),
		RiskAssessment: assessRisks(suggested, volatility, trend, a.now()),
	}
	return analysis, nil
}

func monthKey(t time.Time) string {
	return strings.ToLower(t.Format("Jan"))
}

func multiplierOr(table map[string]float64, key string, fallback float64) float64 {
	if v, ok := table[key]; ok {
		return v
	}
	return fallback
}

func quantityAdjustment(quantity float64) float64 {
	switch {
	case quantity >= 1000:
		return 0.95
	case quantity >= 500:
		return 0.97
	case quantity >= 100:
		return 0.99
	case quantity < 10:
		return 1.05
	default:
		return 1.0
	}
}

func urgencyAdjustment(urgency string) float64 {
	switch strings.ToLower(urgency) {
	case "urgent":
		return 1.08
	case "flexible":
		return 0.95
	default:
		return 1.0
	}
}

func locationAdjustment(location string) float64 {
	adjustments := map[string]float64{
		"mumbai":    1.10,
		"delhi":     1.08,
		"bangalore": 1.06,
		"pune":      1.04,
		"rural":     0.92,
		"remote":    0.88,
	}
	if v, ok := adjustments[strings.ToLower(location)]; ok {
		return v
	}
	return 1.0
}

func analyzeTrend(seasonal float64) Trend {
	var trend Trend
	switch {
	case seasonal > 1.1:
		trend.Direction = "up"
		trend.Strength = math.Min((seasonal-1.0)*2, 1.0)
		trend.Factors = []string{"Seasonal demand increase", "Supply constraints", "Festival season"}
	case seasonal < 0.9:
		trend.Direction = "down"
		trend.Strength = math.Min((1.0-seasonal)*2, 1.0)
		trend.Factors = []string{"Harvest season", "Increased supply", "Lower demand"}
	default:
		trend.Direction = "stable"
		trend.Strength = 0.3
		trend.Factors = []string{"Balanced supply-demand", "Normal market conditions"}
	}
	trend.Confidence = 0.75 + trend.Strength*0.2
	return trend
}

func seasonalFactors(market productMarket, month string) SeasonalFactors {
	months := make([]string, 0, len(market.SeasonalMultipliers))
	for m := range market.SeasonalMultipliers {
		months = append(months, m)
	}
	sort.Strings(months)

	peak, low := months[0], months[0]
	for _, m := range months {
		if market.SeasonalMultipliers[m] > market.SeasonalMultipliers[peak] {
			peak = m
		}
		if market.SeasonalMultipliers[m] < market.SeasonalMultipliers[low] {
			low = m
		}
	}

	return SeasonalFactors{
		CurrentMonth:      month,
		CurrentMultiplier: multiplierOr(market.SeasonalMultipliers, month, 1.0),
		PeakSeason: SeasonEdge{
			Month:         peak,
			Multiplier:    market.SeasonalMultipliers[peak],
			ChangePercent: (market.SeasonalMultipliers[peak] - 1.0) * 100,
		},
		LowSeason: SeasonEdge{
			Month:         low,
			Multiplier:    market.SeasonalMultipliers[low],
			ChangePercent: (1.0 - market.SeasonalMultipliers[low]) * 100,
		},
		SeasonalVolatility: market.SeasonalMultipliers[peak] - market.SeasonalMultipliers[low],
	}
}

func explain(product string, suggested, base, seasonal, quality, quantity float64, trend Trend) string {
	parts := []string{
		fmt.Sprintf("Base market price for %s: ₹%.0f per quintal", product, base),
	}

	if seasonal > 1.05 {
		parts = append(parts, fmt.Sprintf("Seasonal premium: +%.1f%% (high demand period)", (seasonal-1)*100))
	} else if seasonal < 0.95 {
		parts = append(parts, fmt.Sprintf("Seasonal discount: %.1f%% (harvest/low demand period)", (1-seasonal)*100))
	}

	if quality > 1.05 {
		parts = append(parts, fmt.Sprintf("Quality premium: +%.1f%% (above standard grade)", (quality-1)*100))
	} else if quality < 0.95 {
		parts = append(parts, fmt.Sprintf("Quality discount: %.1f%% (below standard grade)", (1-quality)*100))
	}

	if quantity < 0.98 {
		parts = append(parts, fmt.Sprintf("Bulk discount: %.1f%% (large quantity)", (1-quantity)*100))
	} else if quantity > 1.02 {
		parts = append(parts, fmt.Sprintf("Small quantity premium: +%.1f%%", (quantity-1)*100))
	}

	parts = append(parts, fmt.Sprintf("Market trend: %s (%.0f%% confidence)", trend.Direction, trend.Confidence*100))

	change := (suggested - base) / base * 100
	if math.Abs(change) > 1 {
		parts = append(parts, fmt.Sprintf("Final suggested price: ₹%.0f (%+.1f%% vs base)", suggested, change))
	} else {
		parts = append(parts, fmt.Sprintf("Final suggested price: ₹%.0f (close to base price)", suggested))
	}

	return strings.Join(parts, " | ")
}

func assessRisks(suggested, volatility float64, trend Trend, now time.Time) RiskAssessment {
	var factors []string
	level := "low"

	if volatility > 0.3 {
		factors = append(factors, "High price volatility - prices may change rapidly")
		level = "high"
	} else if volatility > 0.2 {
		factors = append(factors, "Moderate price volatility - monitor market closely")
		level = "medium"
	}

	if trend.Strength > 0.7 {
		if trend.Direction == "up" {
			factors = append(factors, "Strong upward trend - prices may continue rising")
		} else {
			factors = append(factors, "Strong downward trend - prices may continue falling")
		}
		if level != "high" {
			level = "medium"
		}
	}

	switch now.Month() {
	case time.November, time.December, time.January, time.February:
		factors = append(factors, "Winter season - potential supply chain disruptions")
	case time.June, time.July, time.August:
		factors = append(factors, "Monsoon season - weather-related price fluctuations possible")
	}

	return RiskAssessment{
		Level:              level,
		Factors:            factors,
		Volatility:         volatility,
		ConfidenceInterval: fmt.Sprintf("±%.0f%%", volatility*100),
		Recommendation:     riskRecommendation(level),
	}
}

func riskRecommendation(level string) string {
	switch level {
	case "medium":
		return "Monitor market closely - consider smaller quantities initially"
	case "high":
		return "High risk period - consider waiting or hedging strategies"
	default:
		return "Stable market conditions - good time for trading"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
