package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"openmandi/negotiation"
)

type analyzeOfferRequest struct {
	SessionID    string  `form:"session_id" json:"session_id" validate:"required"`
	UserID       string  `form:"user_id" json:"user_id" validate:"required"`
	Product      string  `form:"product" json:"product" validate:"required"`
	Quantity     float64 `form:"quantity" json:"quantity" validate:"gt=0"`
	Unit         string  `form:"unit" json:"unit"`
	PricePerUnit float64 `form:"price_per_unit" json:"price_per_unit" validate:"gt=0"`
	OfferType    string  `form:"offer_type" json:"offer_type" validate:"oneof=buy sell"`
}

func (s *Server) handleAnalyzeOffer(c echo.Context) error {
	var req analyzeOfferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if req.OfferType == "" {
		req.OfferType = "buy"
	}
	if req.Unit == "" {
		req.Unit = "quintal"
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	offer := negotiation.NewOffer(req.SessionID, req.UserID, req.Product,
		req.Quantity, req.Unit, req.PricePerUnit, req.OfferType)
	analysis := s.deps.Negotiator.AnalyzeOffer(offer)

	return c.JSON(http.StatusOK, echo.Map{
		"offer":          offer,
		"analysis":       analysis,
		"recommendation": recommendationText(analysis.FairnessScore, offer.OfferType),
	})
}

type adviceRequest struct {
	UserRole     string  `form:"user_role" json:"user_role" validate:"oneof=buyer seller"`
	Product      string  `form:"product" json:"product" validate:"required"`
	CurrentOffer float64 `form:"current_offer" json:"current_offer" validate:"gt=0"`
}

func (s *Server) handleNegotiationAdvice(c echo.Context) error {
	var req adviceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.deps.Negotiator.GenerateAdvice(req.UserRole, req.Product, req.CurrentOffer))
}

type evaluateDealRequest struct {
	Product    string  `form:"product" json:"product" validate:"required"`
	Quantity   float64 `form:"quantity" json:"quantity" validate:"gt=0"`
	FinalPrice float64 `form:"final_price" json:"final_price" validate:"gt=0"`
	BuyerID    string  `form:"buyer_id" json:"buyer_id" validate:"required"`
	SellerID   string  `form:"seller_id" json:"seller_id" validate:"required"`
}

func (s *Server) handleEvaluateDeal(c echo.Context) error {
	var req evaluateDealRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	summary, err := s.deps.Negotiator.EvaluateDeal(req.FinalPrice, req.Product, req.Quantity, req.BuyerID, req.SellerID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, summary)
}

func (s *Server) handleMarketInsights(c echo.Context) error {
	product := c.Param("product")
	base, min, max, ok := negotiation.MarketOf(product)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "product not found in market database")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"product": product,
		"market_data": echo.Map{
			"base_price": base,
			"range":      [2]float64{min, max},
			"unit":       "quintal",
		},
		"insights": echo.Map{
			"volatility":     "moderate",
			"seasonal_trend": "stable",
			"demand_level":   "high",
			"supply_status":  "adequate",
		},
		"trading_tips": []string{
			fmt.Sprintf("Current market range: ₹%.0f - ₹%.0f per quintal", min, max),
			fmt.Sprintf("Average price: ₹%.0f per quintal", base),
			"Consider quality factors when negotiating price",
			"Payment terms can be as important as price",
		},
	})
}

// recommendationText turns a fairness score into advice for the offer's side.
func recommendationText(score float64, offerType string) string {
	buying := offerType == "buy"
	switch {
	case score >= 0.8:
		if buying {
			return "This is an excellent offer for you as a buyer. Consider accepting it."
		}
		return "This is a great price for you as a seller. You should accept this offer."
	case score >= 0.6:
		if buying {
			return "This is a reasonable offer. You might try to negotiate slightly lower, but it's acceptable."
		}
		return "This is a fair offer. You could try to get a bit more, but it's within market range."
	case score >= 0.4:
		if buying {
			return "The price is higher than ideal. Try to negotiate down to market average."
		}
		return "The price is lower than you should accept. Negotiate for a higher price."
	default:
		if buying {
			return "This offer is significantly overpriced. Make a strong counter-offer closer to market rates."
		}
		return "This offer is too low. Don't accept it - counter with a much higher price."
	}
}
