package voice

import "sync"

// Nudge prompt data per language bucket: an ordered list of increasingly
// direct prompts, plus a fixed final warning once the caller has stayed
// silent too long.
var (
	defaultNudgePrompts = map[string][]string{
		"en": {
			"Hello? I'm listening, go ahead?",
			"Are you there?",
			"What do you need?",
			"I'm here, what's up?",
		},
		"hi": {
			"हैलो? सुन रहा हूं, बोलो?",
			"क्या वहाँ हो?",
			"बताओ, क्या चाहिए?",
			"यहाँ हूं, बोलो क्या help चाहिए?",
		},
	}

	defaultFinalWarnings = map[string]string{
		"en": "If you need help, speak up. Otherwise, I'll end the call.",
		"hi": "अगर help चाहिए तो बोलो, वरना call बंद कर रहा हूं",
	}
)

// NudgePolicy tracks consecutive no-response turns per conversation and
// selects the next proactive prompt. The counter only resets on a
// successful transcription.
type NudgePolicy struct {
	mu            sync.Mutex
	counts        map[string]int
	prompts       map[string][]string
	finalWarnings map[string]string
}

// NewNudgePolicy creates a policy with the built-in prompt lists.
func NewNudgePolicy() *NudgePolicy {
	return &NudgePolicy{
		counts:        make(map[string]int),
		prompts:       defaultNudgePrompts,
		finalWarnings: defaultFinalWarnings,
	}
}

// NewNudgePolicyWithPrompts creates a policy with custom prompt lists.
// Missing languages fall back to English.
func NewNudgePolicyWithPrompts(prompts map[string][]string, finalWarnings map[string]string) *NudgePolicy {
	p := NewNudgePolicy()
	if len(prompts) > 0 {
		p.prompts = prompts
	}
	if len(finalWarnings) > 0 {
		p.finalWarnings = finalWarnings
	}
	return p
}

// Next increments the conversation's no-response counter and returns the
// prompt for it: the ordered list while the caller may still respond,
// then the fixed final warning once every listed prompt has been spent.
func (p *NudgePolicy) Next(conversationID, language string) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.counts[conversationID]++
	count := p.counts[conversationID]

	prompts, ok := p.prompts[language]
	if !ok {
		prompts = p.prompts["en"]
	}
	if count > len(prompts)-1 {
		if warning, ok := p.finalWarnings[language]; ok {
			return warning
		}
		return p.finalWarnings["en"]
	}

	idx := count - 1
	if idx > len(prompts)-1 {
		idx = len(prompts) - 1
	}
	return prompts[idx]
}

// Reset clears the counter after a successful transcription.
func (p *NudgePolicy) Reset(conversationID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.counts, conversationID)
}

// Count returns the current no-response count for a conversation.
func (p *NudgePolicy) Count(conversationID string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counts[conversationID]
}
