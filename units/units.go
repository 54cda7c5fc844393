// Package units converts between the regional quantity units used in Indian
// agricultural trade, with colloquial-name normalization across scripts.
package units

import "strings"

type Category string

const (
	CategoryWeight Category = "weight"
	CategoryArea   Category = "area"
	CategoryVolume Category = "volume"
)

// Definition describes one unit: its conversion to the category's base unit
// (kg for weight, m² for area, liter for volume) and where it is used.
type Definition struct {
	Name            string   `json:"name"`
	Category        Category `json:"category"`
	BaseConversion  float64  `json:"base_conversion"`
	RegionalUsage   []string `json:"regional_usage"`
	CommonNames     []string `json:"common_names"`
	CulturalContext string   `json:"cultural_context"`
}

var definitions = map[string]Definition{
	"kg": {
		Name: "kg", Category: CategoryWeight, BaseConversion: 1.0,
		RegionalUsage:   []string{"all_regions"},
		CommonNames:     []string{"kg", "kilo", "kilogram"},
		CulturalContext: "Metric base weight unit",
	},
	"quintal": {
		Name: "quintal", Category: CategoryWeight, BaseConversion: 100.0,
		RegionalUsage:   []string{"north_india", "west_india", "south_india", "central_india"},
		CommonNames:     []string{"quintal", "q", "qtl"},
		CulturalContext: "Standard agricultural trading unit across India",
	},
	"maund": {
		Name: "maund", Category: CategoryWeight, BaseConversion: 37.32,
		RegionalUsage:   []string{"north_india", "east_india"},
		CommonNames:     []string{"maund", "man", "मन"},
		CulturalContext: "Traditional North Indian weight unit",
	},
	"ser": {
		Name: "ser", Category: CategoryWeight, BaseConversion: 0.933,
		RegionalUsage:   []string{"north_india", "central_india"},
		CommonNames:     []string{"ser", "seer", "सेर"},
		CulturalContext: "Traditional small weight unit",
	},
	"candy": {
		Name: "candy", Category: CategoryWeight, BaseConversion: 254.0,
		RegionalUsage:   []string{"west_india", "south_india"},
		CommonNames:     []string{"candy", "kandi", "कैंडी"},
		CulturalContext: "Traditional South/West Indian large weight unit",
	},
	"bag": {
		Name: "bag", Category: CategoryWeight, BaseConversion: 50.0,
		RegionalUsage:   []string{"south_india", "east_india"},
		CommonNames:     []string{"bag", "bori", "बोरी"},
		CulturalContext: "Common packaging unit in South India",
	},
	"tonne": {
		Name: "tonne", Category: CategoryWeight, BaseConversion: 1000.0,
		RegionalUsage:   []string{"all_regions"},
		CommonNames:     []string{"tonne", "ton", "mt", "metric ton"},
		CulturalContext: "International standard for large quantities",
	},
	"acre": {
		Name: "acre", Category: CategoryArea, BaseConversion: 4047.0,
		RegionalUsage:   []string{"all_regions"},
		CommonNames:     []string{"acre", "ac"},
		CulturalContext: "Standard land measurement unit",
	},
	"hectare": {
		Name: "hectare", Category: CategoryArea, BaseConversion: 10000.0,
		RegionalUsage:   []string{"all_regions"},
		CommonNames:     []string{"hectare", "ha"},
		CulturalContext: "Metric system land unit",
	},
	"bigha": {
		Name: "bigha", Category: CategoryArea, BaseConversion: 2529.0,
		RegionalUsage:   []string{"north_india", "east_india"},
		CommonNames:     []string{"bigha", "बीघा"},
		CulturalContext: "Traditional North Indian land unit",
	},
	"guntha": {
		Name: "guntha", Category: CategoryArea, BaseConversion: 101.17,
		RegionalUsage:   []string{"west_india"},
		CommonNames:     []string{"guntha", "gunta", "गुंठा"},
		CulturalContext: "Traditional Maharashtra land unit",
	},
	"cent": {
		Name: "cent", Category: CategoryArea, BaseConversion: 40.47,
		RegionalUsage:   []string{"south_india"},
		CommonNames:     []string{"cent", "cents"},
		CulturalContext: "Common South Indian land unit",
	},
	"katha": {
		Name: "katha", Category: CategoryArea, BaseConversion: 338.0,
		RegionalUsage:   []string{"east_india"},
		CommonNames:     []string{"katha", "cottah", "कठा"},
		CulturalContext: "Traditional Bengali land unit",
	},
	"liter": {
		Name: "liter", Category: CategoryVolume, BaseConversion: 1.0,
		RegionalUsage:   []string{"all_regions"},
		CommonNames:     []string{"liter", "litre", "l"},
		CulturalContext: "Standard liquid measurement",
	},
	"gallon": {
		Name: "gallon", Category: CategoryVolume, BaseConversion: 3.785,
		RegionalUsage:   []string{"north_india", "east_india"},
		CommonNames:     []string{"gallon", "gal"},
		CulturalContext: "Traditional liquid measurement",
	},
	"kalash": {
		Name: "kalash", Category: CategoryVolume, BaseConversion: 12.0,
		RegionalUsage:   []string{"south_india"},
		CommonNames:     []string{"kalash", "kalasa", "कलश"},
		CulturalContext: "Traditional South Indian volume unit",
	},
	"pot": {
		Name: "pot", Category: CategoryVolume, BaseConversion: 10.0,
		RegionalUsage:   []string{"west_india"},
		CommonNames:     []string{"pot", "ghada", "घड़ा"},
		CulturalContext: "Traditional water/grain storage unit",
	},
}

var colloquialMappings = map[string]string{
	// Hindi
	"किलो": "kg", "क्विंटल": "quintal", "मन": "maund", "सेर": "ser",
	"बोरी": "bag", "एकड़": "acre", "बीघा": "bigha", "लीटर": "liter",
	// Telugu
	"కిలో": "kg", "క్వింటల్": "quintal", "బ్యాగ్": "bag", "ఎకరం": "acre", "లీటర్": "liter",
	// Tamil
	"கிலோ": "kg", "குவிண்டல்": "quintal", "பை": "bag", "ஏக்கர்": "acre", "லிட்டர்": "liter",
	// Kannada
	"ಕಿಲೋ": "kg", "ಕ್ವಿಂಟಲ್": "quintal", "ಬ್ಯಾಗ್": "bag", "ಎಕರೆ": "acre", "ಲೀಟರ್": "liter",
	// Abbreviations
	"qtl": "quintal", "q": "quintal", "mt": "tonne", "ha": "hectare",
	"ac": "acre", "l": "liter", "gal": "gallon",
}

var regionalPreferences = map[string]map[Category][]string{
	"north_india": {
		CategoryWeight: {"quintal", "maund", "ser", "kg"},
		CategoryArea:   {"bigha", "acre", "hectare"},
		CategoryVolume: {"liter", "gallon"},
	},
	"south_india": {
		CategoryWeight: {"quintal", "bag", "candy", "kg"},
		CategoryArea:   {"acre", "cent", "hectare"},
		CategoryVolume: {"liter", "kalash"},
	},
	"west_india": {
		CategoryWeight: {"quintal", "candy", "kg"},
		CategoryArea:   {"acre", "guntha", "hectare"},
		CategoryVolume: {"liter", "pot"},
	},
	"east_india": {
		CategoryWeight: {"maund", "quintal", "bag", "kg"},
		CategoryArea:   {"bigha", "katha", "acre"},
		CategoryVolume: {"liter", "gallon"},
	},
	"central_india": {
		CategoryWeight: {"quintal", "maund", "ser", "kg"},
		CategoryArea:   {"acre", "bigha", "hectare"},
		CategoryVolume: {"liter", "gallon"},
	},
}

type productUnits struct {
	Primary  []string
	Regional map[string][]string
}

var productUnitPreferences = map[string]productUnits{
	"rice": {
		Primary: []string{"quintal", "bag", "tonne"},
		Regional: map[string][]string{
			"north_india": {"quintal", "maund"},
			"south_india": {"bag", "quintal"},
			"west_india":  {"quintal", "candy"},
			"east_india":  {"maund", "quintal"},
		},
	},
	"wheat": {
		Primary: []string{"quintal", "tonne"},
		Regional: map[string][]string{
			"north_india": {"quintal", "maund"},
			"south_india": {"quintal", "bag"},
			"west_india":  {"quintal"},
			"east_india":  {"maund", "quintal"},
		},
	},
	"onion": {
		Primary: []string{"quintal", "bag"},
		Regional: map[string][]string{
			"north_india": {"quintal", "maund"},
			"south_india": {"bag", "quintal"},
			"west_india":  {"quintal"},
			"east_india":  {"quintal", "bag"},
		},
	},
	"cotton": {
		Primary: []string{"quintal", "candy"},
		Regional: map[string][]string{
			"north_india": {"quintal"},
			"south_india": {"candy", "quintal"},
			"west_india":  {"candy", "quintal"},
			"east_india":  {"quintal"},
		},
	},
}

var fuzzyVariations = map[string][]string{
	"quintal": {"quintal", "quntal", "kwintal", "kwintl"},
	"maund":   {"maund", "mand", "mann", "mon"},
	"acre":    {"acre", "acer", "aker"},
	"hectare": {"hectare", "hector", "hektare"},
	"liter":   {"liter", "litre", "ltr"},
	"kg":      {"kg", "kilo", "kilogram"},
}

// Normalize resolves a colloquial, abbreviated or misspelled unit name to its
// canonical form. Reports false for unrecognized units.
func Normalize(unit string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(unit))

	if canonical, ok := colloquialMappings[lower]; ok {
		return canonical, true
	}

	for name, def := range definitions {
		for _, common := range def.CommonNames {
			if lower == strings.ToLower(common) {
				return name, true
			}
		}
	}

	for canonical, variations := range fuzzyVariations {
		for _, v := range variations {
			if strings.Contains(lower, v) {
				return canonical, true
			}
		}
	}

	return "", false
}

// Lookup returns the canonical definition of a possibly-colloquial unit name.
func Lookup(unit string) (Definition, bool) {
	canonical, ok := Normalize(unit)
	if !ok {
		return Definition{}, false
	}
	def, ok := definitions[canonical]
	return def, ok
}
