package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"openmandi/errors"
)

func fixedClock(month time.Month) func() time.Time {
	return func() time.Time {
		return time.Date(2025, month, 15, 12, 0, 0, 0, time.UTC)
	}
}

func TestAnalyzer_Unknown_Product(t *testing.T) {
	req := require.New(t)
	analyzer := NewAnalyzer()

	_, err := analyzer.Analyze(Request{Product: "saffron"})

	req.ErrorIs(err, errors.ErrUnknownProduct)
}

func TestAnalyzer_November_Rice_Peaks(t *testing.T) {
	req := require.New(t)
	analyzer := NewAnalyzerAt(fixedClock(time.November))

	// When analyzing rice in its peak month at default quantity and grade
	analysis, err := analyzer.Analyze(Request{Product: "rice"})
	req.NoError(err)

	// Then base * nov 1.12 * good 1.0 * qty>=100 0.99
	req.InDelta(2500*1.12*0.99, analysis.SuggestedPrice, 0.01)
	req.Equal("up", analysis.MarketTrend.Direction)
	req.InDelta(0.24, analysis.MarketTrend.Strength, 1e-9)

	// And the band follows the 0.15 volatility
	req.InDelta(analysis.SuggestedPrice*0.85, analysis.ConfidenceBand.Min, 0.01)
	req.InDelta(analysis.SuggestedPrice*1.15, analysis.ConfidenceBand.Max, 0.01)

	// And winter shows up in the risk factors
	req.Contains(analysis.RiskAssessment.Factors, "Winter season - potential supply chain disruptions")
}

func TestAnalyzer_July_Tomato_Is_High_Risk(t *testing.T) {
	req := require.New(t)
	analyzer := NewAnalyzerAt(fixedClock(time.July))

	analysis, err := analyzer.Analyze(Request{Product: "tomato", Quantity: 50})
	req.NoError(err)

	// Then the harvest discount drives the trend down
	req.Equal("down", analysis.MarketTrend.Direction)
	req.Equal("high", analysis.RiskAssessment.Level)
	req.Equal("±45%", analysis.RiskAssessment.ConfidenceInterval)
	req.Contains(analysis.RiskAssessment.Recommendation, "High risk period")
}

func TestAnalyzer_Adjustment_Multipliers(t *testing.T) {
	req := require.New(t)
	analyzer := NewAnalyzerAt(fixedClock(time.March))

	// When selling premium wheat in Mumbai urgently in bulk
	analysis, err := analyzer.Analyze(Request{
		Product:      "wheat",
		Quantity:     1200,
		QualityGrade: "premium",
		Location:     "Mumbai",
		Urgency:      "urgent",
	})
	req.NoError(err)

	// Then every multiplier applies: 2200 * mar 1.05 * 1.20 * 0.95 * 1.08 * 1.10
	req.InDelta(2200*1.05*1.20*0.95*1.08*1.10, analysis.SuggestedPrice, 0.01)
	req.InDelta(0.20, analysis.QualityAdjustments.BaseAdjustment, 1e-9)
}

func TestAnalyzer_Seasonal_Factors_Report(t *testing.T) {
	req := require.New(t)
	analyzer := NewAnalyzerAt(fixedClock(time.April))

	analysis, err := analyzer.Analyze(Request{Product: "onion"})
	req.NoError(err)

	factors := analysis.SeasonalFactors
	req.Equal("apr", factors.CurrentMonth)
	req.Equal("feb", factors.PeakSeason.Month)
	req.InDelta(1.25, factors.PeakSeason.Multiplier, 1e-9)
	req.Equal("jul", factors.LowSeason.Month)
	req.InDelta(0.75, factors.LowSeason.Multiplier, 1e-9)
	req.InDelta(0.5, factors.SeasonalVolatility, 1e-9)
}

func TestAnalyzer_Explanation_Mentions_Base_And_Trend(t *testing.T) {
	req := require.New(t)
	analyzer := NewAnalyzerAt(fixedClock(time.November))

	analysis, err := analyzer.Analyze(Request{Product: "rice", Quantity: 5})
	req.NoError(err)

	req.Contains(analysis.Explanation, "Base market price for rice: ₹2500 per quintal")
	req.Contains(analysis.Explanation, "Small quantity premium")
	req.Contains(analysis.Explanation, "Market trend: up")
}

func TestCatalog_Sample_Records(t *testing.T) {
	req := require.New(t)

	records := GenerateSampleRecords(2)

	req.NotEmpty(records)
	for _, record := range records {
		req.True(KnownProduct(record.ProductName))
		req.Greater(record.ModalPrice, 0.0)
		req.LessOrEqual(record.MinPrice, record.MaxPrice)
		req.Equal("quintal", record.Unit)
	}
}

func TestCatalog_Trends_Cover_All_Products(t *testing.T) {
	req := require.New(t)

	trends := CurrentTrends()

	req.Len(trends, 8)
	for _, trend := range trends {
		req.Contains([]string{"up", "down", "stable"}, trend.Trend)
		req.Greater(trend.CurrentPrice, 0.0)
	}
}
