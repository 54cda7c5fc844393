// Package negotiation scores offers against market ranges and produces
// counter-offer and strategy advice.
package negotiation

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"openmandi/errors"
)

// marketPrice is the negotiation-side market table: base price plus the
// band considered fair. Prices are INR per quintal.
type marketPrice struct {
	BasePrice float64
	Min       float64
	Max       float64
	Unit      string
}

var marketPrices = map[string]marketPrice{
	"rice":      {BasePrice: 2500, Min: 2200, Max: 2800, Unit: "quintal"},
	"wheat":     {BasePrice: 2200, Min: 2000, Max: 2400, Unit: "quintal"},
	"onion":     {BasePrice: 3000, Min: 2500, Max: 3500, Unit: "quintal"},
	"potato":    {BasePrice: 1800, Min: 1500, Max: 2100, Unit: "quintal"},
	"tomato":    {BasePrice: 4000, Min: 3200, Max: 4800, Unit: "quintal"},
	"cotton":    {BasePrice: 5500, Min: 5000, Max: 6000, Unit: "quintal"},
	"sugarcane": {BasePrice: 350, Min: 320, Max: 380, Unit: "quintal"},
	"turmeric":  {BasePrice: 8000, Min: 7200, Max: 8800, Unit: "quintal"},
}

// Offer is one party's proposal inside a session.
type Offer struct {
	OfferID      string    `json:"offer_id"`
	SessionID    string    `json:"session_id"`
	UserID       string    `json:"user_id"`
	Product      string    `json:"product" validate:"required"`
	Quantity     float64   `json:"quantity" validate:"gt=0"`
	Unit         string    `json:"unit"`
	PricePerUnit float64   `json:"price_per_unit" validate:"gt=0"`
	TotalPrice   float64   `json:"total_price"`
	OfferType    string    `json:"offer_type" validate:"oneof=buy sell"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewOffer fills the derived fields.
func NewOffer(sessionID, userID, product string, quantity float64, unit string, pricePerUnit float64, offerType string) Offer {
	return Offer{
		OfferID:      uuid.NewString(),
		SessionID:    sessionID,
		UserID:       userID,
		Product:      product,
		Quantity:     quantity,
		Unit:         unit,
		PricePerUnit: pricePerUnit,
		TotalPrice:   pricePerUnit * quantity,
		OfferType:    offerType,
		Timestamp:    time.Now().UTC(),
	}
}

// MarketComparison relates the offered price to the market band.
type MarketComparison struct {
	MarketPrice            float64    `json:"market_price"`
	MarketRange            [2]float64 `json:"market_range"`
	OfferedPrice           float64    `json:"offered_price"`
	PriceDifference        float64    `json:"price_difference"`
	PriceDifferencePercent float64    `json:"price_difference_percent"`
}

// CounterOffer is the suggested response to an unfair offer.
type CounterOffer struct {
	PricePerUnit float64 `json:"price_per_unit"`
	TotalPrice   float64 `json:"total_price"`
	Reasoning    string  `json:"reasoning"`
}

// Analysis is the fairness verdict over one offer.
type Analysis struct {
	FairnessScore    float64           `json:"fairness_score"`
	MarketComparison *MarketComparison `json:"market_comparison,omitempty"`
	SuggestedCounter *CounterOffer     `json:"suggested_counter,omitempty"`
	Reasoning        []string          `json:"reasoning"`
	RiskFactors      []string          `json:"risk_factors"`
	UnknownProduct   bool              `json:"unknown_product,omitempty"`
}

// Service scores offers against the market table.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// AnalyzeOffer scores one offer. Unknown products get a neutral 0.5 score
// rather than an error so the chat flow keeps moving.
func (s *Service) AnalyzeOffer(offer Offer) Analysis {
	market, ok := marketPrices[strings.ToLower(offer.Product)]
	if !ok {
		return Analysis{
			FairnessScore:  0.5,
			Reasoning:      []string{"Product not found in market database"},
			RiskFactors:    []string{"Unknown market conditions"},
			UnknownProduct: true,
		}
	}

	offered := offer.PricePerUnit
	score := FairnessScore(offered, market)

	analysis := Analysis{
		FairnessScore: score,
		MarketComparison: &MarketComparison{
			MarketPrice:            market.BasePrice,
			MarketRange:            [2]float64{market.Min, market.Max},
			OfferedPrice:           offered,
			PriceDifference:        offered - market.BasePrice,
			PriceDifferencePercent: (offered - market.BasePrice) / market.BasePrice * 100,
		},
		Reasoning:   reasoning(offered, market),
		RiskFactors: riskFactors(offer, score, market),
	}
	analysis.SuggestedCounter = counterOffer(offer, score, market)
	return analysis
}

// FairnessScore maps an offered price onto [0.1, 1.0]: inside the band it
// decays linearly from the base price, outside it halves the ratio to the
// nearest bound.
func FairnessScore(offered float64, market marketPrice) float64 {
	switch {
	case offered >= market.Min && offered <= market.Max:
		return 0.7 + 0.3*(1-math.Abs(offered-market.BasePrice)/(market.Max-market.Min))
	case offered < market.Min:
		return math.Max(0.1, 0.5*(offered/market.Min))
	default:
		return math.Max(0.1, 0.5*(market.Max/offered))
	}
}

func reasoning(offered float64, market marketPrice) []string {
	switch {
	case offered < market.Min:
		return []string{
			fmt.Sprintf("Offered price (₹%v) is %.0f below market minimum", offered, market.Min-offered),
			"This is significantly below fair market value",
		}
	case offered > market.Max:
		return []string{
			fmt.Sprintf("Offered price (₹%v) is %.0f above market maximum", offered, offered-market.Max),
			"This is significantly above fair market value",
		}
	}

	out := []string{fmt.Sprintf("Offered price (₹%v) is within market range", offered)}
	switch {
	case math.Abs(offered-market.BasePrice) < 100:
		out = append(out, "Price is very close to market average")
	case offered > market.BasePrice:
		out = append(out, "Price is above market average but reasonable")
	default:
		out = append(out, "Price is below market average but acceptable")
	}
	return out
}

func counterOffer(offer Offer, score float64, market marketPrice) *CounterOffer {
	if score >= 0.6 {
		return nil
	}
	offered := offer.PricePerUnit

	if offer.OfferType == "buy" && offered < market.BasePrice {
		price := math.Min(market.BasePrice, offered*1.15)
		return &CounterOffer{
			PricePerUnit: price,
			TotalPrice:   price * offer.Quantity,
			Reasoning:    fmt.Sprintf("Counter with ₹%.0f per %s (closer to market rate)", price, offer.Unit),
		}
	}
	if offer.OfferType == "sell" && offered > market.BasePrice {
		price := math.Max(market.BasePrice, offered*0.9)
		return &CounterOffer{
			PricePerUnit: price,
			TotalPrice:   price * offer.Quantity,
			Reasoning:    fmt.Sprintf("Counter with ₹%.0f per %s (more competitive rate)", price, offer.Unit),
		}
	}
	return nil
}

func riskFactors(offer Offer, score float64, market marketPrice) []string {
	var risks []string
	if score < 0.4 {
		risks = append(risks, "Significant price deviation from market rates")
	}
	if offer.Quantity > 100 {
		risks = append(risks, "Large quantity transaction - verify logistics capacity")
	}
	if offer.PricePerUnit < market.Min*0.8 {
		risks = append(risks, "Extremely low price - potential quality concerns")
	}
	if offer.PricePerUnit > market.Max*1.2 {
		risks = append(risks, "Extremely high price - verify product quality justification")
	}
	return risks
}

// Advice is a role-aware negotiation strategy recommendation.
type Advice struct {
	Advice        []string       `json:"advice"`
	Strategy      string         `json:"strategy"`
	GeneralTips   []string       `json:"general_tips"`
	MarketContext *MarketContext `json:"market_context,omitempty"`
}

type MarketContext struct {
	BasePrice    float64    `json:"base_price"`
	PriceRange   [2]float64 `json:"price_range"`
	CurrentOffer float64    `json:"current_offer"`
}

var generalTips = []string{
	"Be polite and respectful throughout the negotiation",
	"Highlight the quality and benefits of the product",
	"Be prepared to walk away if the deal isn't fair",
	"Consider non-price factors like payment terms and delivery",
}

// GenerateAdvice recommends a strategy for the user's side of the table.
func (s *Service) GenerateAdvice(userRole, product string, currentOffer float64) Advice {
	market, ok := marketPrices[strings.ToLower(product)]
	if !ok {
		return Advice{
			Advice:   []string{"Product not found in market database. Research current market rates before negotiating."},
			Strategy: "information_gathering",
		}
	}

	var lines []string
	strategy := "balanced"

	if userRole == "buyer" {
		switch {
		case currentOffer > market.Max:
			lines = append(lines,
				"The current offer is above market maximum. You have strong negotiating position.",
				fmt.Sprintf("Consider countering with ₹%.0f per quintal (market average).", market.BasePrice))
			strategy = "aggressive"
		case currentOffer > market.BasePrice:
			lines = append(lines,
				"The offer is above market average but reasonable.",
				"You can try to negotiate down slightly, but don't push too hard.")
			strategy = "moderate"
		default:
			lines = append(lines,
				"This is a fair or good price for you as a buyer.",
				"Consider accepting or making a small counter-offer.")
			strategy = "conservative"
		}
	} else {
		switch {
		case currentOffer < market.Min:
			lines = append(lines,
				"The current offer is below market minimum. Don't accept this.",
				fmt.Sprintf("Counter with at least ₹%.0f per quintal.", market.Min))
			strategy = "aggressive"
		case currentOffer < market.BasePrice:
			lines = append(lines,
				"The offer is below market average.",
				"You should negotiate for a higher price.")
			strategy = "moderate"
		default:
			lines = append(lines,
				"This is a good price for you as a seller.",
				"Consider accepting or asking for a small premium.")
			strategy = "conservative"
		}
	}

	return Advice{
		Advice:      lines,
		Strategy:    strategy,
		GeneralTips: generalTips,
		MarketContext: &MarketContext{
			BasePrice:    market.BasePrice,
			PriceRange:   [2]float64{market.Min, market.Max},
			CurrentOffer: currentOffer,
		},
	}
}

// DealSummary records the outcome of a completed negotiation.
type DealSummary struct {
	DealID                string    `json:"deal_id"`
	Product               string    `json:"product"`
	Quantity              float64   `json:"quantity"`
	Unit                  string    `json:"unit"`
	FinalPrice            float64   `json:"final_price"`
	TotalValue            float64   `json:"total_value"`
	MarketPrice           float64   `json:"market_price"`
	PriceVsMarketPercent  float64   `json:"price_vs_market_percent"`
	DealQuality           string    `json:"deal_quality"`
	BuyerID               string    `json:"buyer_id"`
	SellerID              string    `json:"seller_id"`
	Timestamp             time.Time `json:"timestamp"`
}

// EvaluateDeal summarizes a closed deal against the market band. Unknown
// products fail with ErrUnknownProduct.
func (s *Service) EvaluateDeal(finalPrice float64, product string, quantity float64, buyerID, sellerID string) (DealSummary, error) {
	market, ok := marketPrices[strings.ToLower(product)]
	if !ok {
		return DealSummary{}, fmt.Errorf("evaluate deal for %q: %w", product, errors.ErrUnknownProduct)
	}

	quality := "fair"
	if finalPrice < market.Min {
		quality = "buyer_favored"
	} else if finalPrice > market.Max {
		quality = "seller_favored"
	}

	now := time.Now().UTC()
	return DealSummary{
		DealID:               "deal_" + now.Format("20060102_150405"),
		Product:              product,
		Quantity:             quantity,
		Unit:                 market.Unit,
		FinalPrice:           finalPrice,
		TotalValue:           finalPrice * quantity,
		MarketPrice:          market.BasePrice,
		PriceVsMarketPercent: (finalPrice - market.BasePrice) / market.BasePrice * 100,
		DealQuality:          quality,
		BuyerID:              buyerID,
		SellerID:             sellerID,
		Timestamp:            now,
	}, nil
}

// MarketOf exposes the negotiation band for a product, for callers that need
// the raw numbers (the safeguards use it as their market reference).
func MarketOf(product string) (basePrice, min, max float64, ok bool) {
	market, found := marketPrices[strings.ToLower(product)]
	if !found {
		return 0, 0, 0, false
	}
	return market.BasePrice, market.Min, market.Max, true
}
