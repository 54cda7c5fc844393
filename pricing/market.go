// Package pricing holds the market intelligence tables and the price
// analysis heuristics built on them. All prices are INR per quintal.
package pricing

// productMarket is the per-product intelligence record backing the analyzer.
type productMarket struct {
	BasePrice           float64
	SeasonalMultipliers map[string]float64
	QualityGrades       map[string]float64
	Volatility          float64
	DemandElasticity    float64
}

var marketData = map[string]productMarket{
	"rice": {
		BasePrice: 2500,
		SeasonalMultipliers: map[string]float64{
			"jan": 1.05, "feb": 1.03, "mar": 1.0, "apr": 0.98,
			"may": 0.95, "jun": 0.93, "jul": 0.95, "aug": 0.98,
			"sep": 1.02, "oct": 1.08, "nov": 1.12, "dec": 1.10,
		},
		QualityGrades:    map[string]float64{"premium": 1.25, "good": 1.0, "standard": 0.85, "low": 0.70},
		Volatility:       0.15,
		DemandElasticity: -0.8,
	},
	"wheat": {
		BasePrice: 2200,
		SeasonalMultipliers: map[string]float64{
			"jan": 1.08, "feb": 1.10, "mar": 1.05, "apr": 1.0,
			"may": 0.95, "jun": 0.90, "jul": 0.92, "aug": 0.95,
			"sep": 1.0, "oct": 1.05, "nov": 1.08, "dec": 1.10,
		},
		QualityGrades:    map[string]float64{"premium": 1.20, "good": 1.0, "standard": 0.88, "low": 0.75},
		Volatility:       0.12,
		DemandElasticity: -0.6,
	},
	"onion": {
		BasePrice: 3000,
		SeasonalMultipliers: map[string]float64{
			"jan": 1.20, "feb": 1.25, "mar": 1.15, "apr": 1.0,
			"may": 0.85, "jun": 0.80, "jul": 0.75, "aug": 0.80,
			"sep": 0.90, "oct": 1.05, "nov": 1.15, "dec": 1.18,
		},
		QualityGrades:    map[string]float64{"premium": 1.30, "good": 1.0, "standard": 0.80, "low": 0.60},
		Volatility:       0.35,
		DemandElasticity: -1.2,
	},
	"potato": {
		BasePrice: 1800,
		SeasonalMultipliers: map[string]float64{
			"jan": 1.15, "feb": 1.20, "mar": 1.10, "apr": 1.0,
			"may": 0.90, "jun": 0.85, "jul": 0.80, "aug": 0.85,
			"sep": 0.95, "oct": 1.05, "nov": 1.10, "dec": 1.12,
		},
		QualityGrades:    map[string]float64{"premium": 1.25, "good": 1.0, "standard": 0.85, "low": 0.70},
		Volatility:       0.25,
		DemandElasticity: -1.0,
	},
	"tomato": {
		BasePrice: 4000,
		SeasonalMultipliers: map[string]float64{
			"jan": 1.30, "feb": 1.35, "mar": 1.20, "apr": 1.0,
			"may": 0.80, "jun": 0.70, "jul": 0.65, "aug": 0.70,
			"sep": 0.85, "oct": 1.10, "nov": 1.25, "dec": 1.28,
		},
		QualityGrades:    map[string]float64{"premium": 1.40, "good": 1.0, "standard": 0.75, "low": 0.50},
		Volatility:       0.45,
		DemandElasticity: -1.5,
	},
	"cotton": {
		BasePrice: 5500,
		SeasonalMultipliers: map[string]float64{
			"jan": 1.05, "feb": 1.03, "mar": 1.0, "apr": 0.98,
			"may": 0.95, "jun": 0.93, "jul": 0.95, "aug": 0.98,
			"sep": 1.02, "oct": 1.08, "nov": 1.10, "dec": 1.08,
		},
		QualityGrades:    map[string]float64{"premium": 1.35, "good": 1.0, "standard": 0.80, "low": 0.65},
		Volatility:       0.20,
		DemandElasticity: -0.7,
	},
}
