package dialog

import (
	"fmt"
	"math/rand"
)

// Dialogue branch labels shared with the response generator.
const (
	BranchGreeting    = "GREETING"
	BranchUnknown     = "UNKNOWN"
	BranchFindStation = "FIND_NEAREST_STATION"
	BranchSwapHistory = "GET_SWAP_HISTORY"
	BranchEscalate    = "ESCALATE"
)

// Internal phrase set keys. The formatted sets hold fmt templates.
const (
	phraseGreeting     = "greeting"
	phraseClarify      = "clarify"
	phraseNoIntent     = "no_intent"
	phraseAskLocation  = "ask_location"
	phraseAskDate      = "ask_date"
	phraseStationFound = "station_found"
	phraseHistoryFound = "history_found"
	phraseEscalation   = "escalation"
)

// fallbackPhrases maps phrase key -> language bucket -> equivalence set.
// Any member of a set is an acceptable reply for its branch; callers and
// tests treat the set, not a specific string, as the contract.
var fallbackPhrases = map[string]map[string][]string{
	phraseGreeting: {
		"en": {
			"Hey! What do you need?",
			"Hello! What's up?",
			"Hi! How can I help?",
		},
		"hi": {
			"हैलो! क्या चाहिए?",
			"हैलो! बताओ क्या help चाहिए?",
			"हैलो! क्या जरूरत है?",
		},
	},
	phraseClarify: {
		"en": {
			"Sorry, didn't catch that. Can you repeat?",
			"What was that? Say again?",
			"Didn't get it, can you say it again?",
		},
		"hi": {
			"अरे, साफ नहीं सुनाई दिया। दोबारा बोलो?",
			"क्या फिर से बोल सकते हो?",
			"समझ नहीं आया, थोड़ा साफ बोलो?",
		},
	},
	phraseNoIntent: {
		"en": {
			"What do you need? Station or something else?",
			"Tell me, what do you want?",
			"What are you looking for? Station?",
		},
		"hi": {
			"क्या चाहिए? Station चाहिए या कुछ और?",
			"बताओ, क्या help चाहिए?",
			"क्या जरूरत है? Station या swap history?",
		},
	},
	phraseAskLocation: {
		"en": {
			"Sure, where are you?",
			"Okay, what's your location?",
			"Tell me, where are you?",
		},
		"hi": {
			"ठीक है, बताओ कहाँ हो?",
			"चलो, किस जगह पर हो?",
			"बताओ location क्या है?",
		},
	},
	phraseAskDate: {
		"en": {
			"Which day?",
			"What date?",
			"When do you want to see?",
		},
		"hi": {
			"किस दिन का देखना है?",
			"कब का history चाहिए?",
			"बताओ किस date का?",
		},
	},
	// Templates: station name, address, location.
	phraseStationFound: {
		"en": {
			"Got it! %[1]s is at %[2]s in %[3]s",
			"Found it! %[1]s station at %[2]s",
			"Okay, %[1]s is at %[2]s",
		},
		"hi": {
			"मिल गया! %[3]s में %[1]s है, %[2]s पर",
			"ठीक है, %[1]s स्टेशन %[2]s पर मिलेगा",
			"चलो, %[1]s है %[2]s पर",
		},
	},
	// Templates: swap count, last swap time.
	phraseHistoryFound: {
		"en": {
			"Got it! %[1]d swaps that day, last one at %[2]s",
			"Found %[1]d swaps, latest was at %[2]s",
			"Okay, %[1]d swaps, last at %[2]s",
		},
		"hi": {
			"चलो देखता हूं... %[1]d swaps हुए थे, आखिरी %[2]s पर",
			"ठीक है, %[1]d swaps मिले, last one %[2]s पर था",
			"मिल गया! %[1]d swaps थे, latest %[2]s पर",
		},
	},
	phraseEscalation: {
		"en": {
			"Okay, connecting you to an agent, hold on",
			"Let me connect you to someone who can help, wait a sec",
			"Transferring to agent, stay on the line",
		},
		"hi": {
			"ठीक है, मैं आपको agent से connect कर रहा हूं, wait करो",
			"चलो, agent से बात करवाता हूं, थोड़ा wait करो",
			"Agent से connect कर रहा हूं, line पर रहो",
		},
	},
}

// Phrasebook picks deterministic fallback phrasings when the response
// generator is unavailable. Which member of a set is picked carries no
// meaning; correctness only depends on set membership.
type Phrasebook struct{}

// NewPhrasebook creates the built-in phrasebook.
func NewPhrasebook() *Phrasebook {
	return &Phrasebook{}
}

func (p *Phrasebook) pick(key, lang string) string {
	set := FallbackSet(key, lang)
	if len(set) == 0 {
		return ""
	}
	return set[rand.Intn(len(set))]
}

// Greeting returns a first-turn opener.
func (p *Phrasebook) Greeting(lang string) string { return p.pick(phraseGreeting, lang) }

// Clarify asks the caller to repeat a low-confidence utterance.
func (p *Phrasebook) Clarify(lang string) string { return p.pick(phraseClarify, lang) }

// NoIntent prompts the caller to state what they want.
func (p *Phrasebook) NoIntent(lang string) string { return p.pick(phraseNoIntent, lang) }

// AskLocation asks for the missing location slot.
func (p *Phrasebook) AskLocation(lang string) string { return p.pick(phraseAskLocation, lang) }

// AskDate asks for the missing date-range slot.
func (p *Phrasebook) AskDate(lang string) string { return p.pick(phraseAskDate, lang) }

// StationFound reports a resolved station lookup.
func (p *Phrasebook) StationFound(lang, name, address, location string) string {
	return fmt.Sprintf(p.pick(phraseStationFound, lang), name, address, location)
}

// HistoryFound reports a resolved swap-history lookup.
func (p *Phrasebook) HistoryFound(lang string, count int, lastTime string) string {
	return fmt.Sprintf(p.pick(phraseHistoryFound, lang), count, lastTime)
}

// Escalation apologizes and announces the agent handoff.
func (p *Phrasebook) Escalation(lang string) string { return p.pick(phraseEscalation, lang) }

// FallbackSet exposes the equivalence set for a phrase key and language,
// so tests assert membership instead of exact strings. Unknown languages
// fall back to English.
func FallbackSet(key, lang string) []string {
	byLang, ok := fallbackPhrases[key]
	if !ok {
		return nil
	}
	if set, ok := byLang[lang]; ok {
		return set
	}
	return byLang["en"]
}

// Exported phrase set keys for tests and callers that need the raw sets.
const (
	PhraseGreeting     = phraseGreeting
	PhraseClarify      = phraseClarify
	PhraseNoIntent     = phraseNoIntent
	PhraseAskLocation  = phraseAskLocation
	PhraseAskDate      = phraseAskDate
	PhraseStationFound = phraseStationFound
	PhraseHistoryFound = phraseHistoryFound
	PhraseEscalation   = phraseEscalation
)
