package units

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"openmandi/errors"
)

// ConversionResult reports one unit conversion with its regional context.
type ConversionResult struct {
	OriginalValue    float64 `json:"original_value"`
	OriginalUnit     string  `json:"original_unit"`
	ConvertedValue   float64 `json:"converted_value"`
	ConvertedUnit    string  `json:"converted_unit"`
	ConversionFactor float64 `json:"conversion_factor"`
	RegionalContext  string  `json:"regional_context"`
	Confidence       float64 `json:"confidence"`
}

var traditionalUnits = []string{"maund", "bigha", "katha", "guntha", "candy", "kalash", "pot"}

// Convert translates a value between two units of the same category via the
// category's base unit. Region is optional and only affects context and
// confidence.
func Convert(value float64, fromUnit, toUnit, region string) (ConversionResult, error) {
	from, ok := Lookup(fromUnit)
	if !ok {
		return ConversionResult{}, fmt.Errorf("convert from %q: %w", fromUnit, errors.ErrUnknownUnit)
	}
	to, ok := Lookup(toUnit)
	if !ok {
		return ConversionResult{}, fmt.Errorf("convert to %q: %w", toUnit, errors.ErrUnknownUnit)
	}
	if from.Category != to.Category {
		return ConversionResult{}, fmt.Errorf("convert %s to %s: %w", from.Category, to.Category, errors.ErrUnitCategoryMismatch)
	}

	factor := from.BaseConversion / to.BaseConversion
	converted := math.Round(value*factor*10000) / 10000

	return ConversionResult{
		OriginalValue:    value,
		OriginalUnit:     from.Name,
		ConvertedValue:   converted,
		ConvertedUnit:    to.Name,
		ConversionFactor: factor,
		RegionalContext:  regionalContext(from, to, region),
		Confidence:       conversionConfidence(from, to, region),
	}, nil
}

func regionalContext(from, to Definition, region string) string {
	var parts []string

	if prefs, ok := regionalPreferences[region]; ok {
		categoryPrefs := prefs[from.Category]
		if lo.Contains(categoryPrefs, from.Name) {
			parts = append(parts, fmt.Sprintf("%s is commonly used in %s", from.Name, region))
		}
		if lo.Contains(categoryPrefs, to.Name) {
			parts = append(parts, fmt.Sprintf("%s is preferred in %s", to.Name, region))
		} else if len(categoryPrefs) > 0 {
			parts = append(parts, fmt.Sprintf("Consider using %s (common in %s)", categoryPrefs[0], region))
		}
	}

	if from.CulturalContext != to.CulturalContext {
		parts = append(parts, fmt.Sprintf("Converting from %s to %s",
			strings.ToLower(from.CulturalContext), strings.ToLower(to.CulturalContext)))
	}

	if len(parts) == 0 {
		return "Standard conversion"
	}
	return strings.Join(parts, " | ")
}

// conversionConfidence starts high and discounts traditional units, whose
// factors vary by region.
func conversionConfidence(from, to Definition, region string) float64 {
	confidence := 0.95
	if lo.Contains(traditionalUnits, from.Name) || lo.Contains(traditionalUnits, to.Name) {
		confidence -= 0.1
	}
	if prefs, ok := regionalPreferences[region]; ok {
		categoryPrefs := prefs[from.Category]
		if lo.Contains(categoryPrefs, from.Name) && lo.Contains(categoryPrefs, to.Name) {
			confidence += 0.05
		}
	}
	return math.Min(confidence, 1.0)
}

// ParsedQuantity is one value-unit pair extracted from free text.
type ParsedQuantity struct {
	Value           float64 `json:"value"`
	Unit            string  `json:"unit"`
	ParseConfidence float64 `json:"parse_confidence"`
}

var quantityPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([\p{L}]+)`)

// ParseQuantities extracts quantity expressions like "100 quintal" or
// "50 क्विंटल" from free text, skipping tokens that are not units.
func ParseQuantities(text string) []ParsedQuantity {
	var results []ParsedQuantity
	for _, match := range quantityPattern.FindAllStringSubmatch(text, -1) {
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		canonical, ok := Normalize(match[2])
		if !ok {
			continue
		}
		results = append(results, ParsedQuantity{
			Value:           value,
			Unit:            canonical,
			ParseConfidence: parseConfidence(match[2], canonical),
		})
	}
	return results
}

func parseConfidence(original, canonical string) float64 {
	lower := strings.ToLower(original)
	if lower == canonical {
		return 1.0
	}
	if _, ok := colloquialMappings[lower]; ok {
		return 0.9
	}
	if def, ok := definitions[canonical]; ok {
		for _, common := range def.CommonNames {
			if lower == strings.ToLower(common) {
				return 0.85
			}
		}
	}
	return 0.7
}

// ConversionSuggestion proposes a regionally preferred alternative unit.
type ConversionSuggestion struct {
	ToUnit           string  `json:"to_unit"`
	ConversionFactor float64 `json:"conversion_factor"`
	Example          string  `json:"example"`
	Confidence       float64 `json:"confidence"`
}

// UnitAnalysis describes how a unit fits a region.
type UnitAnalysis struct {
	Unit                  string   `json:"unit"`
	Category              Category `json:"category"`
	RegionallyAppropriate bool     `json:"regional_appropriateness"`
	CulturalContext       string   `json:"cultural_context"`
}

// Recommendations bundles the preferred units for a product in a region.
type Recommendations struct {
	Product               string                 `json:"product"`
	Region                string                 `json:"region"`
	RecommendedUnits      []string               `json:"recommended_units"`
	CurrentUnitAnalysis   *UnitAnalysis          `json:"current_unit_analysis,omitempty"`
	ConversionSuggestions []ConversionSuggestion `json:"conversion_suggestions"`
}

// RecommendUnits lists the units a product is usually traded in within a
// region, and how the caller's current unit converts to them.
func RecommendUnits(product, region, currentUnit string) Recommendations {
	rec := Recommendations{Product: product, Region: region}

	if prefs, ok := productUnitPreferences[strings.ToLower(product)]; ok {
		if regional, found := prefs.Regional[region]; found {
			rec.RecommendedUnits = regional
		} else {
			rec.RecommendedUnits = prefs.Primary
		}
	} else if prefs, ok := regionalPreferences[region]; ok {
		rec.RecommendedUnits = prefs[CategoryWeight]
	}

	if currentUnit == "" {
		return rec
	}
	current, ok := Lookup(currentUnit)
	if !ok {
		return rec
	}

	rec.CurrentUnitAnalysis = &UnitAnalysis{
		Unit:     current.Name,
		Category: current.Category,
		RegionallyAppropriate: lo.Contains(current.RegionalUsage, region) ||
			lo.Contains(current.RegionalUsage, "all_regions"),
		CulturalContext: current.CulturalContext,
	}

	top := rec.RecommendedUnits
	if len(top) > 3 {
		top = top[:3]
	}
	for _, unit := range top {
		if unit == current.Name {
			continue
		}
		conversion, err := Convert(1.0, current.Name, unit, region)
		if err != nil {
			continue
		}
		rec.ConversionSuggestions = append(rec.ConversionSuggestions, ConversionSuggestion{
			ToUnit:           unit,
			ConversionFactor: conversion.ConversionFactor,
			Example:          fmt.Sprintf("1 %s = %v %s", current.Name, conversion.ConvertedValue, unit),
			Confidence:       conversion.Confidence,
		})
	}
	return rec
}

// TextConversion is the outcome of scanning a message for quantities.
type TextConversion struct {
	OriginalText          string                `json:"original_text"`
	TargetRegion          string                `json:"target_region"`
	DetectedQuantities    []ParsedQuantity      `json:"detected_quantities"`
	ConversionSuggestions []TextSuggestion      `json:"conversion_suggestions"`
	PreferredUnits        map[Category][]string `json:"preferred_units,omitempty"`
}

type TextSuggestion struct {
	Original    string  `json:"original"`
	Converted   string  `json:"converted"`
	Explanation string  `json:"explanation"`
	Confidence  float64 `json:"confidence"`
}

// DetectAndConvert scans free text for quantities and suggests the region's
// preferred equivalents for the given product.
func DetectAndConvert(text, targetRegion, product string) TextConversion {
	result := TextConversion{
		OriginalText:       text,
		TargetRegion:       targetRegion,
		DetectedQuantities: ParseQuantities(text),
	}

	if product != "" {
		for _, quantity := range result.DetectedQuantities {
			recs := RecommendUnits(product, targetRegion, quantity.Unit)
			for _, suggestion := range recs.ConversionSuggestions {
				converted := quantity.Value * suggestion.ConversionFactor
				result.ConversionSuggestions = append(result.ConversionSuggestions, TextSuggestion{
					Original:    fmt.Sprintf("%v %s", quantity.Value, quantity.Unit),
					Converted:   fmt.Sprintf("%.2f %s", converted, suggestion.ToUnit),
					Explanation: fmt.Sprintf("In %s, %s is commonly used", targetRegion, suggestion.ToUnit),
					Confidence:  suggestion.Confidence,
				})
			}
		}
	}

	if prefs, ok := regionalPreferences[targetRegion]; ok {
		result.PreferredUnits = prefs
	}
	return result
}
