package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnitConvert_Quintal_To_Kg(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/units/convert", map[string]any{
		"value":     2,
		"from_unit": "quintal",
		"to_unit":   "kg",
	})
	req.Equal(http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	req.Equal(float64(200), body["converted_value"])
	req.Equal("kg", body["converted_unit"])
}

func TestUnitConvert_Unknown_Unit(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/units/convert", map[string]any{
		"value":     1,
		"from_unit": "parsec",
		"to_unit":   "kg",
	})
	req.Equal(http.StatusBadRequest, rec.Code)
}

func TestUnitConvert_Category_Mismatch(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/units/convert", map[string]any{
		"value":     1,
		"from_unit": "quintal",
		"to_unit":   "acre",
	})
	req.Equal(http.StatusBadRequest, rec.Code)
}

func TestUnitDetect_Finds_Quantities(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/units/detect", map[string]any{
		"text":          "selling 50 quintal rice and 2 bigha land",
		"target_region": "north_india",
		"product":       "rice",
	})
	req.Equal(http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	quantities := body["detected_quantities"].([]any)
	req.Len(quantities, 2)
}

func TestUnitRecommendations_Requires_Product(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/v1/units/recommendations", nil)
	req.Equal(http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/v1/units/recommendations?product=rice&region=south_india&current_unit=kg", nil)
	req.Equal(http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	req.Equal("rice", body["product"])
	req.NotEmpty(body["recommended_units"])
	req.NotEmpty(body["conversion_suggestions"])
}
