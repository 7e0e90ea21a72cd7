// Package nlu defines the natural-language-understanding port consumed by
// the dialogue engine. Providers classify an utterance into an intent with
// a confidence score, extracted entities, and a sentiment label.
package nlu

import (
	"context"

	"github.com/voltline/swapvoice/pkg/ai"
)

// NLU-specific error variables for convenience
var (
	ErrRecoverable = ai.ErrRecoverable
	ErrFatal       = ai.ErrFatal
)

// Intent is the user's classified goal for the current exchange.
type Intent string

const (
	IntentGetSwapHistory     Intent = "GetSwapHistory"
	IntentExplainInvoice     Intent = "ExplainInvoice"
	IntentFindNearestStation Intent = "FindNearestStation"
	IntentCheckAvailability  Intent = "CheckAvailability"
	IntentCheckSubscription  Intent = "CheckSubscription"
	IntentRenewSubscription  Intent = "RenewSubscription"
	IntentPricingInfo        Intent = "PricingInfo"
	IntentLeaveInfo          Intent = "LeaveInfo"
	IntentFindDSK            Intent = "FindDSK"
	IntentUnknown            Intent = "Unknown"
)

// ParseIntent maps a provider-supplied intent label to a known Intent.
// Unrecognized labels map to IntentUnknown rather than failing.
func ParseIntent(s string) Intent {
	switch Intent(s) {
	case IntentGetSwapHistory, IntentExplainInvoice, IntentFindNearestStation,
		IntentCheckAvailability, IntentCheckSubscription, IntentRenewSubscription,
		IntentPricingInfo, IntentLeaveInfo, IntentFindDSK:
		return Intent(s)
	default:
		return IntentUnknown
	}
}

// Sentiment is the emotional tone detected in an utterance.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
	SentimentAngry    Sentiment = "angry"
)

// ParseSentiment maps a provider-supplied sentiment label to a known
// Sentiment, defaulting to neutral.
func ParseSentiment(s string) Sentiment {
	switch Sentiment(s) {
	case SentimentPositive, SentimentNegative, SentimentAngry:
		return Sentiment(s)
	default:
		return SentimentNeutral
	}
}

// Result is one analysis of one utterance. Immutable once produced.
type Result struct {
	Intent     Intent
	Confidence float64 // 0.0 to 1.0
	Entities   map[string]string
	Sentiment  Sentiment
}

// NLU is the main interface for natural-language-understanding providers.
type NLU interface {
	// Analyze classifies a single utterance.
	Analyze(ctx context.Context, text string) (Result, error)
}
