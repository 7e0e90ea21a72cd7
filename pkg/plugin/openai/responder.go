package openai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/voltline/swapvoice/pkg/ai"
	"github.com/voltline/swapvoice/pkg/ai/responder"
)

const responderSystemPrompt = `You are a friendly, casual voice assistant for drivers. Talk EXACTLY like a normal friend would - casual, natural, helpful.

CRITICAL RULES:
- Use CASUAL language ONLY (like friends talking on phone)
- Keep responses VERY SHORT (max 1 sentence, 5-10 words)
- Be friendly like a friend, not a formal assistant
- For Hindi, use casual Hinglish naturally ("station chahiye", "kya help") and never formal words like "कृपया" or "बताइए"
- Sound like you're talking to a friend, not a customer

Language: %s`

// Responder generates casual context-aware phrasings with GPT.
type Responder struct {
	client *openai.Client
	model  string
}

// NewResponder creates a GPT-backed response generator.
func NewResponder(cfg Config) *Responder {
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &Responder{client: openai.NewClient(cfg.APIKey), model: model}
}

// Generate produces one short casual reply for the dialogue branch.
func (r *Responder) Generate(ctx context.Context, req responder.Request) (string, error) {
	langNote := "English - talk casually"
	if req.Language == "hi" {
		langNote = "Hindi/Hinglish - talk casually"
	}

	var history strings.Builder
	for _, h := range req.History {
		fmt.Fprintf(&history, "User: %s\n", h)
	}

	userPrompt := fmt.Sprintf(`User said: %q

Intent: %s
Entities: %v
Previous conversation:
%s
Generate a natural, casual response (1-2 sentences, friendly tone):`,
		req.UserMessage, req.Intent, req.Entities, history.String())

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.model,
		Temperature: 0.9,
		MaxTokens:   50,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: fmt.Sprintf(responderSystemPrompt, langNote)},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", ai.NewRecoverableError(err, fmt.Sprintf("response generation failed: %v", err))
	}
	if len(resp.Choices) == 0 {
		return "", ai.NewRecoverableError(nil, "response generation returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	return strings.ReplaceAll(text, `"`, ""), nil
}
