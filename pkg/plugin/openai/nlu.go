package openai

import (
	"context"
	"encoding/json"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"github.com/voltline/swapvoice/pkg/ai/nlu"
)

const nluSystemPrompt = `You are an NLU system for a driver support voicebot.
Analyze the user's message and extract:
1. Intent (one of: GetSwapHistory, FindNearestStation, CheckSubscription, ExplainInvoice, CheckAvailability, RenewSubscription, PricingInfo, LeaveInfo, FindDSK, Unknown)
2. Entities (location, date_range, etc.)
3. Sentiment (positive, neutral, negative, angry)
4. Confidence (0.0 to 1.0)

IMPORTANT: Understand casual Hinglish and natural speech patterns.

Respond in JSON format:
{
    "intent": "IntentType",
    "confidence": 0.9,
    "entities": {"location": "Noida", "date_range": "yesterday"},
    "sentiment": "neutral"
}

Examples:
- "station chahiye noida me" -> {"intent": "FindNearestStation", "entities": {"location": "Noida"}, "confidence": 0.9}
- "swap history kal ka" -> {"intent": "GetSwapHistory", "entities": {"date_range": "yesterday"}, "confidence": 0.9}
- "hello kya jarurat hai?" -> {"intent": "Unknown", "confidence": 0.8, "sentiment": "neutral"}`

// NLU classifies utterances with a GPT chat completion in JSON mode,
// falling back to keyword analysis on any API or parse failure.
type NLU struct {
	client   *openai.Client
	model    string
	fallback *nlu.KeywordNLU
	logger   *slog.Logger
}

// NewNLU creates a GPT-backed NLU provider.
func NewNLU(cfg Config) *NLU {
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &NLU{
		client:   openai.NewClient(cfg.APIKey),
		model:    model,
		fallback: nlu.NewKeywordNLU(),
		logger:   slog.Default(),
	}
}

type nluReply struct {
	Intent     string            `json:"intent"`
	Confidence float64           `json:"confidence"`
	Entities   map[string]string `json:"entities"`
	Sentiment  string            `json:"sentiment"`
}

// Analyze classifies one utterance. It never returns an error: a failed
// or malformed API reply degrades to the keyword analyzer.
func (n *NLU) Analyze(ctx context.Context, text string) (nlu.Result, error) {
	resp, err := n.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       n.model,
		Temperature: 0.3,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: nluSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		n.logger.Warn("OpenAI NLU failed, using keyword fallback",
			slog.String("error", err.Error()))
		return n.fallback.Analyze(ctx, text)
	}
	if len(resp.Choices) == 0 {
		return n.fallback.Analyze(ctx, text)
	}

	var reply nluReply
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &reply); err != nil {
		n.logger.Warn("OpenAI NLU returned malformed JSON, using keyword fallback",
			slog.String("error", err.Error()))
		return n.fallback.Analyze(ctx, text)
	}

	confidence := reply.Confidence
	if confidence == 0 {
		confidence = 0.7
	}
	entities := reply.Entities
	if entities == nil {
		entities = map[string]string{}
	}
	return nlu.Result{
		Intent:     nlu.ParseIntent(reply.Intent),
		Confidence: confidence,
		Entities:   entities,
		Sentiment:  nlu.ParseSentiment(reply.Sentiment),
	}, nil
}
