package dialog

import "strings"

// KeywordTable drives the greeting and agent-request classifiers. Lists
// are keyed by language bucket so new languages are additive; classifiers
// scan every bucket because callers often speak a different language than
// the channel reports.
type KeywordTable struct {
	// Greetings are opener phrases ("hello", "namaste").
	Greetings map[string][]string `yaml:"greetings"`
	// NeedWords read as "I need something" ("jarurat", "chahiye").
	NeedWords map[string][]string `yaml:"need_words"`
	// QuestionWords combined with HelpWords read as "what help" phrasing.
	QuestionWords map[string][]string `yaml:"question_words"`
	HelpWords     map[string][]string `yaml:"help_words"`
	// AgentWords are explicit requests for a human agent.
	AgentWords map[string][]string `yaml:"agent_words"`
}

// DefaultKeywordTable returns the built-in English/Hindi/Hinglish table.
func DefaultKeywordTable() *KeywordTable {
	return &KeywordTable{
		Greetings: map[string][]string{
			"en": {"hello", "hi", "hey", "hii", "hello kya", "hello kya jarurat", "hello kya chahiye"},
			"hi": {"namaste", "namaskar", "kaise ho", "नमस्ते", "नमस्कार", "हैलो"},
		},
		NeedWords: map[string][]string{
			"hi": {"jarurat", "chahiye"},
		},
		QuestionWords: map[string][]string{
			"hi": {"kya"},
		},
		HelpWords: map[string][]string{
			"en": {"help"},
			"hi": {"madad"},
		},
		AgentWords: map[string][]string{
			"en": {"agent"},
			"hi": {"एजेंट"},
		},
	}
}

// IsGreeting reports whether text reads as a greeting or a general
// "what do you need" opener in any configured language.
func (t *KeywordTable) IsGreeting(text string) bool {
	lower := strings.ToLower(text)

	if matchAny(lower, t.Greetings) || matchAny(lower, t.NeedWords) {
		return true
	}
	return matchAny(lower, t.QuestionWords) && matchAny(lower, t.HelpWords)
}

// WantsAgent reports whether text explicitly asks for a human agent.
func (t *KeywordTable) WantsAgent(text string) bool {
	return matchAny(strings.ToLower(text), t.AgentWords)
}

func matchAny(text string, table map[string][]string) bool {
	for _, words := range table {
		for _, w := range words {
			if strings.Contains(text, w) {
				return true
			}
		}
	}
	return false
}

// containsDevanagari reports whether text contains Devanagari script,
// used to pick a Hindi phrasing when the channel claims English.
func containsDevanagari(text string) bool {
	for _, r := range text {
		if r >= 0x0900 && r <= 0x097F {
			return true
		}
	}
	return false
}
