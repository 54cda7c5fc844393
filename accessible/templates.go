package accessible

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

type Category string

const (
	CategoryNetwork          Category = "network"
	CategoryValidation       Category = "validation"
	CategoryAuthentication   Category = "authentication"
	CategoryPermission       Category = "permission"
	CategoryPriceData        Category = "price_data"
	CategorySpeechProcessing Category = "speech_processing"
	CategoryNegotiation      Category = "negotiation"
	CategorySystem           Category = "system"
)

type template struct {
	Title         string
	Simple        string
	Detailed      string
	Audio         string
	Recovery      []string
	AudioRecovery []string
}

var errorTemplates = map[Category]map[string]template{
	CategoryNetwork: {
		"connection_failed": {
			Title:    "Connection Problem",
			Simple:   "Cannot connect to server",
			Detailed: "Unable to establish connection with the OpenMandi server. This may be due to internet connectivity issues or server maintenance.",
			Audio:    "Connection problem. Please check your internet and try again.",
			Recovery: []string{
				"Check your internet connection",
				"Try refreshing the page",
				"Wait a moment and try again",
				"Contact support if problem persists",
			},
			AudioRecovery: []string{
				"First, check your internet connection",
				"Then, try refreshing the page",
				"If that doesn't work, wait a moment and try again",
			},
		},
		"timeout": {
			Title:    "Request Timeout",
			Simple:   "Request took too long",
			Detailed: "The server is taking longer than expected to respond. This might be due to high traffic or server load.",
			Audio:    "The request is taking too long. Please try again.",
			Recovery: []string{
				"Try the request again",
				"Check your internet speed",
				"Try during off-peak hours",
				"Contact support if issue continues",
			},
		},
	},
	CategoryValidation: {
		"invalid_price": {
			Title:    "Invalid Price",
			Simple:   "Price format is incorrect",
			Detailed: "The price you entered is not in a valid format. Please enter a positive number without special characters.",
			Audio:    "Invalid price format. Please enter a valid number.",
			Recovery: []string{
				"Enter only numbers for price",
				"Use decimal point for cents (e.g., 2500.50)",
				"Don't include currency symbols",
				"Make sure price is greater than zero",
			},
		},
		"missing_product": {
			Title:    "Product Not Specified",
			Simple:   "Please select a product",
			Detailed: "You need to specify which agricultural product you want to trade before proceeding.",
			Audio:    "Please select a product first.",
			Recovery: []string{
				"Choose a product from the list",
				"Or say the product name clearly",
				"Make sure the product is supported",
				"Try spelling the product name differently",
			},
		},
	},
	CategorySpeechProcessing: {
		"microphone_access": {
			Title:    "Microphone Access Denied",
			Simple:   "Cannot access microphone",
			Detailed: "OpenMandi needs microphone access to process your voice commands. Please allow microphone access in your browser settings.",
			Audio:    "Microphone access is needed for voice features. Please allow access in your browser.",
			Recovery: []string{
				"Click 'Allow' when browser asks for microphone access",
				"Check browser settings for microphone permissions",
				"Make sure microphone is connected and working",
				"Try refreshing the page and allowing access again",
			},
		},
		"speech_not_recognized": {
			Title:    "Speech Not Recognized",
			Simple:   "Could not understand speech",
			Detailed: "The speech recognition system could not understand what you said. This might be due to background noise, unclear speech, or language settings.",
			Audio:    "Sorry, I couldn't understand what you said. Please try speaking clearly.",
			Recovery: []string{
				"Speak more clearly and slowly",
				"Reduce background noise",
				"Check your language settings",
				"Try typing your message instead",
			},
		},
	},
	CategoryPriceData: {
		"price_unavailable": {
			Title:    "Price Data Unavailable",
			Simple:   "Cannot get current prices",
			Detailed: "Current market price data is not available for this product. This might be due to market closure, data source issues, or product not being traded today.",
			Audio:    "Price data is not available right now. Please try again later.",
			Recovery: []string{
				"Try again in a few minutes",
				"Check if market is open",
				"Try a different product",
				"Use historical price data as reference",
			},
		},
		"stale_data": {
			Title:    "Old Price Data",
			Simple:   "Price data may be outdated",
			Detailed: "The price information shown is from earlier today and may not reflect current market conditions. Use with caution.",
			Audio:    "Warning: Price data may be outdated. Please verify current prices.",
			Recovery: []string{
				"Refresh to get latest prices",
				"Verify prices from other sources",
				"Consider market timing",
				"Proceed with caution",
			},
		},
	},
	CategoryNegotiation: {
		"unfair_offer": {
			Title:    "Potentially Unfair Offer",
			Simple:   "This offer seems unfair",
			Detailed: "The offered price is significantly different from current market rates. Please review carefully before accepting.",
			Audio:    "Warning: This offer may not be fair. Please review carefully.",
			Recovery: []string{
				"Compare with current market prices",
				"Ask for explanation of the price",
				"Consider negotiating",
				"Seek second opinion if unsure",
			},
		},
		"high_risk_deal": {
			Title:    "High Risk Transaction",
			Simple:   "This deal has high risk",
			Detailed: "Our analysis indicates this transaction has higher than normal risk factors. Please review all terms carefully.",
			Audio:    "High risk transaction detected. Please review carefully.",
			Recovery: []string{
				"Review all transaction details",
				"Verify the other party's credentials",
				"Consider smaller test transaction first",
				"Get advice from experienced traders",
			},
		},
	},
}

var fallbackTemplate = template{
	Title:    "Error Occurred",
	Simple:   "Something went wrong",
	Detailed: "An unexpected error occurred. Please try again or contact support.",
	Audio:    "An error occurred. Please try again.",
	Recovery: []string{"Try again", "Contact support if problem persists"},
}

var multilingualTemplates = map[string]map[string]string{
	"hindi": {
		"connection_failed":     "कनेक्शन की समस्या। कृपया अपना इंटरनेट जांचें और फिर कोशिश करें।",
		"invalid_price":         "गलत कीमत। कृपया सही संख्या दर्ज करें।",
		"microphone_access":     "माइक्रोफोन की अनुमति चाहिए। कृपया ब्राउज़र में अनुमति दें।",
		"speech_not_recognized": "आपकी बात समझ नहीं आई। कृपया स्पष्ट रूप से बोलें।",
		"unfair_offer":          "चेतावनी: यह ऑफर उचित नहीं लग रहा। कृपया सावधानी से देखें।",
	},
	"telugu": {
		"connection_failed":     "కనెక్షన్ సమస్య. దయచేసి మీ ఇంటర్నెట్ చెక్ చేసి మళ్లీ ప్రయత్నించండి.",
		"invalid_price":         "తప్పు ధర. దయచేసి సరైన సంఖ్య నమోదు చేయండి.",
		"microphone_access":     "మైక్రోఫోన్ అనుమతి అవసరం. దయచేసి బ్రౌజర్‌లో అనుమతించండి.",
		"speech_not_recognized": "మీ మాట అర్థం కాలేదు. దయచేసి స్పష్టంగా మాట్లాడండి.",
		"unfair_offer":          "హెచ్చరిక: ఈ ఆఫర్ న్యాయంగా లేదు. దయచేసి జాగ్రత్తగా చూడండి.",
	},
	"tamil": {
		"connection_failed":     "இணைப்பு பிரச்சனை. தயவுசெய்து உங்கள் இணையத்தை சரிபார்த்து மீண்டும் முயற்சிக்கவும்.",
		"invalid_price":         "தவறான விலை. தயவுசெய்து சரியான எண்ணை உள்ளிடவும்.",
		"microphone_access":     "மைக்ரோஃபோன் அனுமதி தேவை. தயவுசெய்து உலாவியில் அனுமதிக்கவும்.",
		"speech_not_recognized": "உங்கள் பேச்சு புரியவில்லை. தயவுசெய்து தெளிவாக பேசவும்.",
		"unfair_offer":          "எச்சரிக்கை: இந்த சலுகை நியாயமானதாக தெரியவில்லை. தயவுசெய்து கவனமாக பார்க்கவும்.",
	},
}

// VisualIndicator drives the frontend rendering of an error by severity.
type VisualIndicator struct {
	Color      string `json:"color"`
	Icon       string `json:"icon"`
	Animation  string `json:"animation"`
	DurationMS int    `json:"duration"`
}

var visualIndicators = map[Severity]VisualIndicator{
	SeverityInfo:     {Color: "#3B82F6", Icon: "info", Animation: "fade-in", DurationMS: 3000},
	SeverityWarning:  {Color: "#F59E0B", Icon: "warning", Animation: "pulse", DurationMS: 5000},
	SeverityError:    {Color: "#EF4444", Icon: "error", Animation: "shake", DurationMS: 7000},
	SeverityCritical: {Color: "#DC2626", Icon: "critical", Animation: "flash", DurationMS: 10000},
}

var preventionTips = map[Category][]string{
	CategoryNetwork: {
		"Ensure stable internet connection before trading",
		"Use WiFi instead of mobile data when possible",
		"Close other apps that use internet heavily",
	},
	CategorySpeechProcessing: {
		"Speak clearly and at moderate pace",
		"Reduce background noise when using voice features",
		"Check microphone settings regularly",
		"Have backup text input ready",
	},
	CategoryValidation: {
		"Double-check all entered information",
		"Use suggested formats for prices and quantities",
		"Save frequently used values for quick access",
	},
	CategoryNegotiation: {
		"Always verify market prices before negotiating",
		"Set your minimum acceptable price beforehand",
		"Take time to consider offers carefully",
		"Seek advice for large transactions",
	},
}
