package units

import (
	"testing"

	"github.com/stretchr/testify/require"

	"openmandi/errors"
)

func TestNormalize_Colloquial_And_Fuzzy(t *testing.T) {
	req := require.New(t)

	cases := map[string]string{
		"quintal":  "quintal",
		"QTL":      "quintal",
		"q":        "quintal",
		"क्विंटल":  "quintal",
		"బ్యాగ్":   "bag",
		"கிலோ":     "kg",
		"kwintal":  "quintal",
		"litre":    "liter",
		"ha":       "hectare",
		"kilogram": "kg",
	}

	for input, want := range cases {
		got, ok := Normalize(input)
		req.True(ok, "input %q", input)
		req.Equal(want, got, "input %q", input)
	}

	_, ok := Normalize("furlong")
	req.False(ok)
}

func TestConvert_Quintal_To_Maund(t *testing.T) {
	req := require.New(t)

	// When converting 5 quintals to maunds
	result, err := Convert(5, "quintal", "maund", "north_india")
	req.NoError(err)

	// Then 500 kg / 37.32 kg per maund
	req.InDelta(500.0/37.32, result.ConvertedValue, 0.0001)
	req.Equal("quintal", result.OriginalUnit)
	req.Equal("maund", result.ConvertedUnit)

	// And the traditional unit discount with the regional boost: 0.95 - 0.1 + 0.05
	req.InDelta(0.9, result.Confidence, 1e-9)
	req.Contains(result.RegionalContext, "quintal is commonly used in north_india")
	req.Contains(result.RegionalContext, "maund is preferred in north_india")
}

func TestConvert_Standard_Units_High_Confidence(t *testing.T) {
	req := require.New(t)

	result, err := Convert(2, "tonne", "kg", "")
	req.NoError(err)

	req.InDelta(2000, result.ConvertedValue, 1e-9)
	req.InDelta(0.95, result.Confidence, 1e-9)
}

func TestConvert_Colloquial_Input(t *testing.T) {
	req := require.New(t)

	// Devanagari quintal to bags
	result, err := Convert(1, "क्विंटल", "बोरी", "south_india")
	req.NoError(err)

	req.InDelta(2.0, result.ConvertedValue, 1e-9)
	req.Equal("bag", result.ConvertedUnit)
}

func TestConvert_Unknown_Unit(t *testing.T) {
	req := require.New(t)

	_, err := Convert(1, "furlong", "kg", "")

	req.ErrorIs(err, errors.ErrUnknownUnit)
}

func TestConvert_Category_Mismatch(t *testing.T) {
	req := require.New(t)

	_, err := Convert(1, "quintal", "acre", "")

	req.ErrorIs(err, errors.ErrUnitCategoryMismatch)
}

func TestParseQuantities(t *testing.T) {
	req := require.New(t)

	parsed := ParseQuantities("I want to sell 50 quintal of rice and 2.5 बीघा of land")

	req.Len(parsed, 2)
	req.InDelta(50, parsed[0].Value, 1e-9)
	req.Equal("quintal", parsed[0].Unit)
	req.InDelta(1.0, parsed[0].ParseConfidence, 1e-9)
	req.InDelta(2.5, parsed[1].Value, 1e-9)
	req.Equal("bigha", parsed[1].Unit)
}

func TestParseQuantities_Skips_Non_Units(t *testing.T) {
	req := require.New(t)

	parsed := ParseQuantities("price is 2500 rupees for 10 bags")

	req.Len(parsed, 1)
	req.Equal("bag", parsed[0].Unit)
	req.InDelta(10, parsed[0].Value, 1e-9)
}

func TestRecommendUnits_Product_Regional_Variation(t *testing.T) {
	req := require.New(t)

	recs := RecommendUnits("rice", "south_india", "quintal")

	req.Equal([]string{"bag", "quintal"}, recs.RecommendedUnits)
	req.NotNil(recs.CurrentUnitAnalysis)
	req.True(recs.CurrentUnitAnalysis.RegionallyAppropriate)

	// Suggestions exclude the current unit itself
	req.Len(recs.ConversionSuggestions, 1)
	req.Equal("bag", recs.ConversionSuggestions[0].ToUnit)
	req.InDelta(2.0, recs.ConversionSuggestions[0].ConversionFactor, 1e-9)
}

func TestRecommendUnits_Falls_Back_To_Regional_Weight_Units(t *testing.T) {
	req := require.New(t)

	recs := RecommendUnits("turmeric", "east_india", "")

	req.Equal([]string{"maund", "quintal", "bag", "kg"}, recs.RecommendedUnits)
	req.Nil(recs.CurrentUnitAnalysis)
}

func TestDetectAndConvert(t *testing.T) {
	req := require.New(t)

	result := DetectAndConvert("selling 3 quintal rice", "east_india", "rice")

	req.Len(result.DetectedQuantities, 1)
	req.NotEmpty(result.ConversionSuggestions)
	req.Equal("3 quintal", result.ConversionSuggestions[0].Original)
	req.NotNil(result.PreferredUnits)
	req.Contains(result.PreferredUnits[CategoryWeight], "maund")
}
