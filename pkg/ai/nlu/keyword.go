package nlu

import (
	"context"
	"strings"
)

// KeywordNLU is a deterministic keyword-matching analyzer covering Hindi,
// Hinglish and English driver-support phrasing. It serves both as the
// zero-dependency default provider and as the degraded path when a hosted
// NLU provider errors or is not configured.
type KeywordNLU struct{}

// NewKeywordNLU creates a keyword-based NLU analyzer.
func NewKeywordNLU() *KeywordNLU {
	return &KeywordNLU{}
}

var (
	stationKeywords  = []string{"station", "sthan", "kendra", "स्टेशन"}
	locationKeywords = []string{"noida", "delhi", "gurgaon", "नोएडा", "दिल्ली", "गुरुग्राम"}
	swapKeywords     = []string{"swap", "history", "itihas", "इतिहास", "बदलाव"}
	greetingKeywords = []string{"namaste", "namaskar", "kaise ho", "hello", "hi", "नमस्ते", "नमस्कार"}
	angerKeywords    = []string{"angry", "bad", "गुस्सा"}

	yesterdayKeywords = []string{"yesterday", "kal", "कल"}
)

// Analyze classifies text by keyword lookup. It never returns an error.
func (k *KeywordNLU) Analyze(ctx context.Context, text string) (Result, error) {
	lower := strings.ToLower(text)

	if containsAny(lower, stationKeywords) || containsAny(lower, locationKeywords) {
		entities := map[string]string{}
		for _, loc := range locationKeywords {
			if strings.Contains(lower, loc) {
				entities["location"] = titleCase(loc)
				break
			}
		}
		intent := IntentUnknown
		if containsAny(lower, stationKeywords) {
			intent = IntentFindNearestStation
		}
		return Result{Intent: intent, Confidence: 0.9, Entities: entities, Sentiment: SentimentNeutral}, nil
	}

	if containsAny(lower, swapKeywords) {
		entities := map[string]string{}
		if containsAny(lower, yesterdayKeywords) {
			entities["date_range"] = "yesterday"
		}
		return Result{Intent: IntentGetSwapHistory, Confidence: 0.85, Entities: entities, Sentiment: SentimentNeutral}, nil
	}

	// Anger outranks greetings: "hi" is a substring of too many words to
	// let the greeting match win.
	if containsAny(lower, angerKeywords) {
		return Result{Intent: IntentUnknown, Confidence: 0.5, Entities: map[string]string{}, Sentiment: SentimentAngry}, nil
	}

	// Greetings are not an intent but should not look like noise either.
	if containsAny(lower, greetingKeywords) {
		return Result{Intent: IntentUnknown, Confidence: 0.7, Entities: map[string]string{}, Sentiment: SentimentPositive}, nil
	}

	return Result{Intent: IntentUnknown, Confidence: 0.3, Entities: map[string]string{}, Sentiment: SentimentNeutral}, nil
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// titleCase uppercases the first byte of ASCII keywords; Devanagari
// keywords pass through unchanged.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return strings.ToUpper(s[:1]) + s[1:]
	}
	return s
}
