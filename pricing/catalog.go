package pricing

import (
	"math/rand"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Product is a catalog entry with its regional vocabulary.
type Product struct {
	Name                 string            `json:"name"`
	Category             string            `json:"category"`
	RegionalNames        map[string]string `json:"regional_names"`
	SeasonalAvailability []time.Month      `json:"seasonal_availability"`
	StandardUnits        []string          `json:"standard_units"`
	QualityGrades        []string          `json:"quality_grades"`
}

// Market is a physical mandi.
type Market struct {
	Name     string `json:"name"`
	State    string `json:"state"`
	District string `json:"district"`
}

// MandiRecord is one market's daily quote for a product.
type MandiRecord struct {
	MarketName      string    `json:"market_name"`
	State           string    `json:"state"`
	District        string    `json:"district"`
	ProductName     string    `json:"product_name"`
	Variety         string    `json:"variety"`
	MinPrice        float64   `json:"min_price"`
	MaxPrice        float64   `json:"max_price"`
	ModalPrice      float64   `json:"modal_price"`
	Date            time.Time `json:"date"`
	ArrivalQuantity float64   `json:"arrival_quantity"`
	Unit            string    `json:"unit"`
}

// PriceTrend is the display-oriented trend snapshot for one product.
type PriceTrend struct {
	CurrentPrice float64 `json:"current_price"`
	Trend        string  `json:"trend"`
	TrendSymbol  string  `json:"trend_symbol"`
	Unit         string  `json:"unit"`
}

type basePrice struct {
	Min, Max, Modal float64
}

var catalogProducts = []Product{
	{
		Name: "Rice", Category: "grains",
		RegionalNames:        map[string]string{"hi": "चावल", "te": "బియ్యం", "ta": "அரிசி", "kn": "ಅಕ್ಕಿ", "ml": "അരി"},
		SeasonalAvailability: []time.Month{1, 2, 3, 10, 11, 12},
		StandardUnits:        []string{"quintal", "kg", "bag"},
		QualityGrades:        []string{"premium", "good", "average"},
	},
	{
		Name: "Wheat", Category: "grains",
		RegionalNames:        map[string]string{"hi": "गेहूं", "te": "గోధుమ", "ta": "கோதுமை", "kn": "ಗೋಧಿ", "ml": "ഗോതമ്പ്"},
		SeasonalAvailability: []time.Month{3, 4, 5, 6},
		StandardUnits:        []string{"quintal", "kg", "bag"},
		QualityGrades:        []string{"premium", "good", "average"},
	},
	{
		Name: "Onion", Category: "vegetables",
		RegionalNames:        map[string]string{"hi": "प्याज", "te": "ఉల్లిపాయ", "ta": "வெங்காயம்", "kn": "ಈರುಳ್ಳಿ", "ml": "സവാള"},
		SeasonalAvailability: []time.Month{1, 2, 3, 10, 11, 12},
		StandardUnits:        []string{"quintal", "kg"},
		QualityGrades:        []string{"premium", "good", "average", "below_average"},
	},
	{
		Name: "Potato", Category: "vegetables",
		RegionalNames:        map[string]string{"hi": "आलू", "te": "బంగాళాదుంప", "ta": "உருளைக்கிழங்கு", "kn": "ಆಲೂಗಡ್ಡೆ", "ml": "ഉരുളക്കിഴങ്ങ്"},
		SeasonalAvailability: []time.Month{1, 2, 3, 11, 12},
		StandardUnits:        []string{"quintal", "kg"},
		QualityGrades:        []string{"premium", "good", "average"},
	},
	{
		Name: "Tomato", Category: "vegetables",
		RegionalNames:        map[string]string{"hi": "टमाटर", "te": "టమాటో", "ta": "தக்காளி", "kn": "ಟೊಮೇಟೊ", "ml": "തക്കാളി"},
		SeasonalAvailability: []time.Month{1, 2, 3, 4, 10, 11, 12},
		StandardUnits:        []string{"quintal", "kg"},
		QualityGrades:        []string{"premium", "good", "average", "below_average"},
	},
	{
		Name: "Cotton", Category: "cash_crops",
		RegionalNames:        map[string]string{"hi": "कपास", "te": "పత్తి", "ta": "பருத்தி", "kn": "ಹತ್ತಿ", "ml": "പരുത്തി"},
		SeasonalAvailability: []time.Month{10, 11, 12, 1, 2},
		StandardUnits:        []string{"quintal", "kg"},
		QualityGrades:        []string{"premium", "good", "average"},
	},
	{
		Name: "Sugarcane", Category: "cash_crops",
		RegionalNames:        map[string]string{"hi": "गन्ना", "te": "చెరకు", "ta": "கரும்பு", "kn": "ಕಬ್ಬು", "ml": "കരിമ്പ്"},
		SeasonalAvailability: []time.Month{1, 2, 3, 4, 11, 12},
		StandardUnits:        []string{"quintal", "ton"},
		QualityGrades:        []string{"premium", "good", "average"},
	},
	{
		Name: "Turmeric", Category: "spices",
		RegionalNames:        map[string]string{"hi": "हल्दी", "te": "పసుపు", "ta": "மஞ்சள்", "kn": "ಅರಿಶಿನ", "ml": "മഞ്ഞൾ"},
		SeasonalAvailability: []time.Month{1, 2, 3, 4},
		StandardUnits:        []string{"quintal", "kg"},
		QualityGrades:        []string{"premium", "good", "average"},
	},
}

var catalogMarkets = []Market{
	{Name: "Azadpur Mandi", State: "Delhi", District: "Delhi"},
	{Name: "Vashi APMC", State: "Maharashtra", District: "Mumbai"},
	{Name: "Koyambedu Market", State: "Tamil Nadu", District: "Chennai"},
	{Name: "Yeshwanthpur Market", State: "Karnataka", District: "Bangalore"},
	{Name: "Gaddiannaram Market", State: "Telangana", District: "Hyderabad"},
	{Name: "Kochi Spices Market", State: "Kerala", District: "Kochi"},
	{Name: "Lasalgaon Market", State: "Maharashtra", District: "Nashik"},
	{Name: "Indore Mandi", State: "Madhya Pradesh", District: "Indore"},
	{Name: "Siliguri Market", State: "West Bengal", District: "Siliguri"},
	{Name: "Ludhiana Grain Market", State: "Punjab", District: "Ludhiana"},
}

var basePrices = map[string]basePrice{
	"Rice":      {Min: 2000, Max: 3500, Modal: 2500},
	"Wheat":     {Min: 1800, Max: 2800, Modal: 2200},
	"Onion":     {Min: 1500, Max: 4000, Modal: 2500},
	"Potato":    {Min: 1200, Max: 2500, Modal: 1800},
	"Tomato":    {Min: 2000, Max: 6000, Modal: 3500},
	"Cotton":    {Min: 5000, Max: 8000, Modal: 6200},
	"Sugarcane": {Min: 300, Max: 400, Modal: 350},
	"Turmeric":  {Min: 8000, Max: 15000, Modal: 12000},
}

// Products lists the catalog.
func Products() []Product {
	out := make([]Product, len(catalogProducts))
	copy(out, catalogProducts)
	return out
}

// Markets lists the known mandis.
func Markets() []Market {
	out := make([]Market, len(catalogMarkets))
	copy(out, catalogMarkets)
	return out
}

// KnownProduct reports whether the catalog carries the product.
func KnownProduct(name string) bool {
	return lo.ContainsBy(catalogProducts, func(p Product) bool {
		return strings.EqualFold(p.Name, name)
	})
}

// GenerateSampleRecords produces demo mandi quotes for the last daysBack days,
// 3 to 5 markets per product per day with seasonal and daily variation.
func GenerateSampleRecords(daysBack int) []MandiRecord {
	var records []MandiRecord
	today := time.Now().UTC().Truncate(24 * time.Hour)

	for i := 0; i < daysBack; i++ {
		day := today.AddDate(0, 0, -i)
		for _, product := range catalogProducts {
			base := basePrices[product.Name]
			markets := sampleMarkets(3 + rand.Intn(3))

			for _, market := range markets {
				seasonal := rangeFloat(1.1, 1.4)
				if inSeason(product, day.Month()) {
					seasonal = rangeFloat(0.8, 1.0)
				}
				modal := base.Modal * seasonal * rangeFloat(0.9, 1.1)

				records = append(records, MandiRecord{
					MarketName:      market.Name,
					State:           market.State,
					District:        market.District,
					ProductName:     product.Name,
					Variety:         product.Name + " Grade A",
					MinPrice:        round2(modal * rangeFloat(0.85, 0.95)),
					MaxPrice:        round2(modal * rangeFloat(1.05, 1.15)),
					ModalPrice:      round2(modal),
					Date:            day,
					ArrivalQuantity: round2(rangeFloat(50, 500)),
					Unit:            "quintal",
				})
			}
		}
	}
	return records
}

// CurrentTrends simulates a per-product trend snapshot around modal prices.
func CurrentTrends() map[string]PriceTrend {
	trends := make(map[string]PriceTrend, len(basePrices))
	for name, base := range basePrices {
		var trend PriceTrend
		switch rand.Intn(3) {
		case 0:
			trend = PriceTrend{CurrentPrice: base.Modal * rangeFloat(1.05, 1.2), Trend: "up", TrendSymbol: "↑"}
		case 1:
			trend = PriceTrend{CurrentPrice: base.Modal * rangeFloat(0.8, 0.95), Trend: "down", TrendSymbol: "↓"}
		default:
			trend = PriceTrend{CurrentPrice: base.Modal * rangeFloat(0.95, 1.05), Trend: "stable", TrendSymbol: "→"}
		}
		trend.CurrentPrice = round2(trend.CurrentPrice)
		trend.Unit = "quintal"
		trends[name] = trend
	}
	return trends
}

func inSeason(p Product, m time.Month) bool {
	return lo.Contains(p.SeasonalAvailability, m)
}

func sampleMarkets(n int) []Market {
	idx := rand.Perm(len(catalogMarkets))
	picked := lo.Map(idx[:n], func(i int, _ int) Market { return catalogMarkets[i] })
	return picked
}

func rangeFloat(min, max float64) float64 {
	return min + rand.Float64()*(max-min)
}
