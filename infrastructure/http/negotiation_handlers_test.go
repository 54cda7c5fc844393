package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnalyzeOffer_Fair_Price(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/negotiation/analyze-offer", map[string]any{
		"session_id":     "s1",
		"user_id":        "farmer_1",
		"product":        "rice",
		"quantity":       10,
		"price_per_unit": 2500,
		"offer_type":     "buy",
	})
	req.Equal(http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	req.Contains(body, "offer")
	req.Contains(body, "analysis")
	req.NotEmpty(body["recommendation"])

	analysis := body["analysis"].(map[string]any)
	req.Greater(analysis["fairness_score"].(float64), 0.5)
}

func TestAnalyzeOffer_Defaults_Type_And_Unit(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/negotiation/analyze-offer", map[string]any{
		"session_id":     "s1",
		"user_id":        "farmer_1",
		"product":        "wheat",
		"quantity":       5,
		"price_per_unit": 2200,
	})
	req.Equal(http.StatusOK, rec.Code)

	offer := decodeBody(t, rec)["offer"].(map[string]any)
	req.Equal("buy", offer["offer_type"])
	req.Equal("quintal", offer["unit"])
}

func TestAnalyzeOffer_Rejects_Bad_Type(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/negotiation/analyze-offer", map[string]any{
		"session_id":     "s1",
		"user_id":        "farmer_1",
		"product":        "rice",
		"quantity":       10,
		"price_per_unit": 2500,
		"offer_type":     "barter",
	})
	req.Equal(http.StatusBadRequest, rec.Code)
}

func TestNegotiationAdvice(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/negotiation/negotiation-advice", map[string]any{
		"user_role":     "seller",
		"product":       "rice",
		"current_offer": 2000,
	})
	req.Equal(http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	req.NotEmpty(body["advice"])
	req.NotEmpty(body["strategy"])
	req.NotEmpty(body["general_tips"])
}

func TestEvaluateDeal_Unknown_Product(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/negotiation/evaluate-deal", map[string]any{
		"product":     "plutonium",
		"quantity":    10,
		"final_price": 100,
		"buyer_id":    "b1",
		"seller_id":   "s1",
	})
	req.Equal(http.StatusNotFound, rec.Code)
}

func TestEvaluateDeal_Known_Product(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/negotiation/evaluate-deal", map[string]any{
		"product":     "rice",
		"quantity":    10,
		"final_price": 2500,
		"buyer_id":    "b1",
		"seller_id":   "s1",
	})
	req.Equal(http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	req.Equal(float64(25000), body["total_value"])
	req.NotEmpty(body["deal_quality"])
}

func TestMarketInsights(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/v1/negotiation/market-insights/rice", nil)
	req.Equal(http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	req.Equal("rice", body["product"])
	req.Contains(body, "market_data")
	req.NotEmpty(body["trading_tips"])

	rec = doJSON(t, s, http.MethodGet, "/api/v1/negotiation/market-insights/plutonium", nil)
	req.Equal(http.StatusNotFound, rec.Code)
}
