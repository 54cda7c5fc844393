// Package ai generates assistant replies from keyword classification.
// It is deliberately deterministic; no external model is involved.
package ai

import (
	"fmt"
	"strings"
)

var (
	priceKeywords    = []string{"price", "cost", "rate", "kimat"}
	tradeKeywords    = []string{"sell", "buy", "trade"}
	greetingKeywords = []string{"hello", "hi", "namaste", "namaskar"}

	knownProducts = []string{"rice", "wheat", "onion", "potato", "tomato", "cotton"}
)

const (
	productPriceReply = "The current market price for %s is around ₹2,500 per quintal. " +
		"Would you like detailed price analysis or want to discuss trading?"
	genericPriceReply = "I can help you with current market prices. Which product are you interested in? " +
		"I have data for rice, wheat, onion, potato, tomato, and cotton."
	tradeReply = "Great! I can help you with trading. Let me know what product and quantity " +
		"you're interested in, and I'll provide current market rates and connect you with " +
		"potential buyers or sellers."
	greetingReply = "Hello! Welcome to OpenMandi. I'm your AI trading assistant. I can help you " +
		"with current market prices, trading advice, and connecting with other traders. " +
		"What would you like to know?"
	fallbackReply = "I understand you're interested in agricultural trading. I can help with " +
		"current prices, market trends, and trading advice. Try asking about specific " +
		"products or say 'hello' to get started."
)

// Responder classifies an utterance by keyword class, first match wins:
// price, trade, greeting, then the fallback.
type Responder struct{}

func NewResponder() *Responder {
	return &Responder{}
}

// Reply produces the assistant's answer. Blank input gets no reply.
func (r *Responder) Reply(text string) string {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return ""
	}

	switch {
	case containsAny(lower, priceKeywords):
		for _, product := range knownProducts {
			if strings.Contains(lower, product) {
				return fmt.Sprintf(productPriceReply, product)
			}
		}
		return genericPriceReply
	case containsAny(lower, tradeKeywords):
		return tradeReply
	case containsAny(lower, greetingKeywords):
		return greetingReply
	default:
		return fallbackReply
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
