package ai

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResponder_Price_Question_Names_The_Product(t *testing.T) {
	req := require.New(t)
	responder := NewResponder()

	// When the user asks for a product price
	reply := responder.Reply("What is the price of rice?")

	// Then the reply reports that product's price
	req.Contains(reply, "market price for rice")
	req.Contains(reply, "₹2,500")
}

func TestResponder_Price_Question_Without_Product(t *testing.T) {
	req := require.New(t)
	responder := NewResponder()

	reply := responder.Reply("kimat batao")

	req.Contains(reply, "Which product are you interested in?")
}

func TestResponder_Trade_Intent(t *testing.T) {
	req := require.New(t)
	responder := NewResponder()

	reply := responder.Reply("I want to sell my stock")

	req.Contains(reply, "help you with trading")
}

func TestResponder_Price_Wins_Over_Trade(t *testing.T) {
	req := require.New(t)
	responder := NewResponder()

	// When both classes match, the price class is checked first
	reply := responder.Reply("what rate can I sell wheat at")

	req.Contains(reply, "market price for wheat")
}

func TestResponder_Greeting(t *testing.T) {
	req := require.New(t)
	responder := NewResponder()

	reply := responder.Reply("Namaste!")

	req.Contains(reply, "Welcome to OpenMandi")
}

func TestResponder_Fallback(t *testing.T) {
	req := require.New(t)
	responder := NewResponder()

	reply := responder.Reply("how is the weather")

	req.Contains(reply, "agricultural trading")
}

func TestResponder_Blank_Input_Gets_No_Reply(t *testing.T) {
	req := require.New(t)
	responder := NewResponder()

	req.Empty(responder.Reply("   "))
}
