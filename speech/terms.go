package speech

import "strings"

// agriculturalTerms maps the english canonical term to its local form per
// language. Languages without a table fall back to english.
var agriculturalTerms = map[string]map[string]string{
	"en": {
		"rice": "rice", "wheat": "wheat", "onion": "onion",
		"potato": "potato", "tomato": "tomato", "cotton": "cotton",
		"price": "price", "cost": "cost", "sell": "sell", "buy": "buy",
	},
	"hi": {
		"rice": "चावल", "wheat": "गेहूं", "onion": "प्याज",
		"potato": "आलू", "tomato": "टमाटर", "cotton": "कपास",
		"price": "कीमत", "cost": "लागत", "sell": "बेचना", "buy": "खरीदना",
	},
	"te": {
		"rice": "బియ్యం", "wheat": "గోధుమ", "onion": "ఉల్లిపాయ",
		"potato": "బంగాళాదుంప", "tomato": "టమాటో", "cotton": "పత్తి",
		"price": "ధర", "cost": "ఖర్చు", "sell": "అమ్ము", "buy": "కొను",
	},
}

// TermTranslation lists the agricultural terms found in a text and their
// equivalents in the target language.
type TermTranslation struct {
	OriginalText   string            `json:"original_text"`
	ProcessedText  string            `json:"processed_text"`
	Translations   map[string]string `json:"translations"`
	SourceLanguage string            `json:"source_language"`
	TargetLanguage string            `json:"target_language"`
}

// ProcessAgriculturalTerms scans a text for known trade vocabulary in the
// source language and maps each found term to the target language.
func (s *Service) ProcessAgriculturalTerms(text, sourceLanguage, targetLanguage string) TermTranslation {
	result := TermTranslation{
		OriginalText:   text,
		ProcessedText:  strings.ToLower(text),
		Translations:   make(map[string]string),
		SourceLanguage: sourceLanguage,
		TargetLanguage: targetLanguage,
	}

	sourceTerms, ok := agriculturalTerms[sourceLanguage]
	if !ok {
		return result
	}
	targetTerms, ok := agriculturalTerms[targetLanguage]
	if !ok {
		targetTerms = agriculturalTerms["en"]
	}

	for englishTerm, sourceTerm := range sourceTerms {
		if strings.Contains(result.ProcessedText, strings.ToLower(sourceTerm)) {
			translated, found := targetTerms[englishTerm]
			if !found {
				translated = englishTerm
			}
			result.Translations[sourceTerm] = translated
		}
	}
	return result
}
