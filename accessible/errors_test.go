package accessible

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreate_Known_Template(t *testing.T) {
	req := require.New(t)
	service := NewService()

	// When rendering a known network error
	err := service.NetworkError("connection_failed", Context{})

	// Then all message layers come from the template
	req.Equal("Connection Problem", err.Title)
	req.Equal("Cannot connect to server", err.SimpleMessage)
	req.Contains(err.DetailedMessage, "OpenMandi server")
	req.Len(err.RecoverySteps, 4)
	req.Len(err.AudioRecoverySteps, 3)

	// And severity drives the visual indicator
	req.Equal(SeverityError, err.Severity)
	req.Equal("#EF4444", err.VisualIndicators.Color)
	req.Equal("shake", err.VisualIndicators.Animation)

	// And the three translations are attached
	req.Len(err.MultilingualMessages, 3)
	req.Contains(err.MultilingualMessages, "hindi")
}

func TestCreate_Unknown_Key_Falls_Back(t *testing.T) {
	req := require.New(t)
	service := NewService()

	err := service.Create("quantum_flux", CategoryNetwork, SeverityInfo, Context{})

	req.Equal("Error Occurred", err.Title)
	req.Equal("Something went wrong", err.SimpleMessage)
	req.Equal(SeverityInfo, err.Severity)
	req.Equal("#3B82F6", err.VisualIndicators.Color)
	req.Empty(err.MultilingualMessages)
}

func TestCreate_Context_Substitution(t *testing.T) {
	req := require.New(t)
	service := NewService()

	// When the product is known at render time
	err := service.ValidationError("missing_product", Context{Product: "onion"})

	req.Equal("Please select a onion", err.SimpleMessage)
	req.Contains(err.DetailedMessage, "agricultural onion")
}

func TestCreate_Context_Recovery_Steps(t *testing.T) {
	req := require.New(t)
	service := NewService()

	err := service.PriceError("price_unavailable", Context{
		RetryAction:       "fetching prices",
		AlternativeAction: "another market",
	})

	// Then the retry step comes first and the alternative last
	req.Equal("Try fetching prices again", err.RecoverySteps[0])
	req.Equal("Alternatively, try another market", err.RecoverySteps[len(err.RecoverySteps)-1])
}

func TestCreate_Audio_Recovery_Defaults_To_First_Three(t *testing.T) {
	req := require.New(t)
	service := NewService()

	// timeout has no dedicated audio recovery list
	err := service.NetworkError("timeout", Context{})

	req.Len(err.AudioRecoverySteps, 3)
	req.Equal("Try the request again", err.AudioRecoverySteps[0])
}

func TestCreate_Accessibility_Flags(t *testing.T) {
	req := require.New(t)
	service := NewService()

	err := service.SpeechError("microphone_access", Context{LowLiteracy: true, VisualImpairment: true})

	req.True(err.AccessibilityFeatures["audio_priority"])
	req.True(err.AccessibilityFeatures["screen_reader_priority"])
	req.True(err.AccessibilityFeatures["screen_reader_support"])
}

func TestCriticalError(t *testing.T) {
	req := require.New(t)
	service := NewService()

	err := service.CriticalError("database unreachable")

	req.Equal(CategorySystem, err.Category)
	req.Equal(SeverityCritical, err.Severity)
	req.Equal("database unreachable", err.DetailedMessage)
	req.Equal("flash", err.VisualIndicators.Animation)
	req.Contains(err.RecoverySteps, "Contact support immediately")
}

func TestStatistics_Track_Rendered_Errors(t *testing.T) {
	req := require.New(t)
	service := NewService()

	service.NetworkError("connection_failed", Context{})
	service.NetworkError("timeout", Context{})
	service.NegotiationWarning("unfair_offer", Context{})
	service.CriticalError("boom")

	stats := service.Statistics()

	req.Equal(uint64(4), stats.TotalErrors)
	req.Equal(uint64(2), stats.ByCategory[CategoryNetwork])
	req.Equal(uint64(1), stats.ByCategory[CategoryNegotiation])
	req.Equal(uint64(1), stats.BySeverity[SeverityCritical])
	req.InDelta(0.95, stats.ResolutionRate, 1e-9)
}
