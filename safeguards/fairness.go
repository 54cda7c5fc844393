package safeguards

// FairnessContext is the negotiation situation around a price check.
type FairnessContext struct {
	Urgency             string `json:"urgency"`
	NegotiationPressure bool   `json:"negotiation_pressure"`
}

// FairnessAnalysis is the exploitation check over a single offered price.
type FairnessAnalysis struct {
	Product          string    `json:"product"`
	OfferedPrice     float64   `json:"offered_price"`
	MarketPrice      float64   `json:"market_price"`
	FairnessScore    float64   `json:"fairness_score"`
	ExploitationRisk RiskLevel `json:"exploitation_risk"`
	Factors          []string  `json:"factors"`
	Recommendations  []string  `json:"recommendations"`
}

// AnalyzePriceFairness bands the offered/market ratio into a fairness score
// and risk level, and folds in the user's cached vulnerability profile.
func (s *Service) AnalyzePriceFairness(product string, offeredPrice, marketPrice float64, userID string, ctx FairnessContext) FairnessAnalysis {
	score := ratioFairness(offeredPrice, marketPrice)

	risk := RiskCritical
	switch {
	case score >= 0.8:
		risk = RiskLow
	case score >= 0.6:
		risk = RiskMedium
	case score >= 0.4:
		risk = RiskHigh
	}

	var factors, recommendations []string
	if marketPrice > 0 && offeredPrice < marketPrice*0.7 {
		factors = append(factors, "Offered price significantly below market rate")
		recommendations = append(recommendations, "Reject this offer - it's well below fair market value")
	} else if marketPrice > 0 && offeredPrice > marketPrice*1.3 {
		factors = append(factors, "Offered price significantly above market rate")
		recommendations = append(recommendations, "This price is much higher than market rate - negotiate down")
	}

	if profile, ok := s.profileOf(userID); ok && profile.VulnerabilityScore > 0.6 {
		factors = append(factors, "User has high vulnerability to exploitation")
		recommendations = append(recommendations,
			"Take time to consider this offer",
			"Seek advice from experienced traders",
			"Compare with multiple market sources",
		)
	}

	if ctx.Urgency == "high" {
		factors = append(factors, "High urgency may lead to poor decisions")
		recommendations = append(recommendations, "Avoid making rushed decisions under pressure")
	}
	if ctx.NegotiationPressure {
		factors = append(factors, "High-pressure negotiation tactics detected")
		recommendations = append(recommendations, "Be wary of pressure tactics - take your time")
	}

	return FairnessAnalysis{
		Product:          product,
		OfferedPrice:     offeredPrice,
		MarketPrice:      marketPrice,
		FairnessScore:    score,
		ExploitationRisk: risk,
		Factors:          factors,
		Recommendations:  recommendations,
	}
}

// ratioFairness maps the price ratio onto the fixed fairness bands.
// A missing market price yields the neutral 0.5.
func ratioFairness(offered, market float64) float64 {
	if market <= 0 {
		return 0.5
	}
	ratio := offered / market
	switch {
	case ratio >= 0.9 && ratio <= 1.1:
		return 1.0
	case ratio >= 0.8 && ratio <= 1.2:
		return 0.8
	case ratio >= 0.7 && ratio <= 1.3:
		return 0.6
	case ratio >= 0.5 && ratio <= 1.5:
		return 0.4
	default:
		return 0.2
	}
}

// Guidance is the risk-level-driven protection playbook for one user.
type Guidance struct {
	RiskLevel            RiskLevel `json:"risk_level"`
	ImmediateActions     []string  `json:"immediate_actions"`
	EducationalContent   []string  `json:"educational_content"`
	SupportResources     []string  `json:"support_resources"`
	AutomatedProtections []string  `json:"automated_protections"`
}

// GenerateProtectionGuidance builds the playbook for a risk level, extended
// with education and support entries for highly vulnerable users.
func (s *Service) GenerateProtectionGuidance(userID string, risk RiskLevel) Guidance {
	guidance := Guidance{RiskLevel: risk}

	switch risk {
	case RiskCritical:
		guidance.ImmediateActions = []string{
			"STOP - Do not proceed with this transaction",
			"The terms are extremely unfavorable",
			"Seek immediate assistance from experienced traders",
			"Report this interaction if you suspect fraud",
		}
		guidance.AutomatedProtections = []string{
			"Transaction temporarily blocked",
			"Administrator notification sent",
			"Cooling-off period activated",
		}
	case RiskHigh:
		guidance.ImmediateActions = []string{
			"Proceed with extreme caution",
			"Get a second opinion before accepting",
			"Verify market prices from multiple sources",
			"Consider waiting for better offers",
		}
		guidance.AutomatedProtections = []string{
			"24-hour cooling-off period recommended",
			"Additional price comparisons provided",
			"Educational content highlighted",
		}
	case RiskMedium:
		guidance.ImmediateActions = []string{
			"Review the offer carefully",
			"Compare with current market rates",
			"Consider negotiating for better terms",
			"Take time to make your decision",
		}
	}

	if profile, ok := s.profileOf(userID); ok && profile.VulnerabilityScore > 0.6 {
		guidance.EducationalContent = []string{
			"Understanding fair market prices",
			"Recognizing exploitation tactics",
			"Effective negotiation strategies",
			"When to seek help",
		}
		guidance.SupportResources = []string{
			"Connect with experienced trader mentors",
			"Access to market price databases",
			"Legal assistance contacts",
			"Community support groups",
		}
	}

	return guidance
}
