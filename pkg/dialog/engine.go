// Package dialog implements the conversation state machine: it consumes
// an NLU analysis of each utterance, tracks per-conversation intent and
// slots across turns, and decides whether to answer, ask a follow-up
// question, or escalate to a human agent.
package dialog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/voltline/swapvoice/pkg/ai"
	"github.com/voltline/swapvoice/pkg/ai/nlu"
	"github.com/voltline/swapvoice/pkg/ai/responder"
	"github.com/voltline/swapvoice/pkg/backend"
	"github.com/voltline/swapvoice/pkg/handoff"
	"github.com/voltline/swapvoice/pkg/session"
)

const (
	// DefaultConfidenceThreshold is the NLU confidence below which a turn
	// is treated as unclear.
	DefaultConfidenceThreshold = 0.6

	// DefaultMaxRetries is the number of unclear turns tolerated before
	// escalating.
	DefaultMaxRetries = 2

	// DefaultDriverID stands in until caller identity wiring exists.
	// TODO: resolve the driver id from the telephony caller id.
	DefaultDriverID = "driver_123"
)

// Escalation reasons forwarded in the handoff summary.
const (
	reasonAngryOrAgent  = "User requested agent or is angry"
	reasonLowConfidence = "Low confidence after multiple attempts"
	reasonUnsupported   = "Unsupported intent or complex query"
	reasonBackendError  = "Backend call failed"
)

// Response is the engine's decision for one turn. Never mutated after
// construction.
type Response struct {
	Text            string
	ShouldEnd       bool
	NeedsEscalation bool
	Data            map[string]any
}

// Config holds the collaborators and tunables for an Engine.
type Config struct {
	Store     session.Store
	NLU       nlu.NLU
	Backend   backend.Backend
	Handoff   handoff.Handoff
	Responder responder.Responder // optional; nil means always use the phrasebook
	Logger    *slog.Logger        // optional

	Keywords            *KeywordTable // optional; defaults to the built-in table
	ConfidenceThreshold float64       // optional; defaults to DefaultConfidenceThreshold
	MaxRetries          int           // optional; defaults to DefaultMaxRetries
	DriverID            string        // optional; defaults to DefaultDriverID
}

// Engine is the conversation state machine. Safe for concurrent use:
// turns within one conversation are serialized, turns across distinct
// conversations run in parallel.
type Engine struct {
	store     session.Store
	nlu       nlu.NLU
	backend   backend.Backend
	handoff   handoff.Handoff
	responder responder.Responder
	logger    *slog.Logger

	keywords   *KeywordTable
	phrases    *Phrasebook
	confidence float64
	maxRetries int
	driverID   string

	locks sync.Map // conversation id -> *sync.Mutex
}

// New creates an Engine from the given configuration.
func New(cfg Config) (*Engine, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if cfg.NLU == nil {
		return nil, fmt.Errorf("NLU is required")
	}
	if cfg.Backend == nil {
		return nil, fmt.Errorf("backend is required")
	}
	if cfg.Handoff == nil {
		return nil, fmt.Errorf("handoff is required")
	}

	e := &Engine{
		store:      cfg.Store,
		nlu:        cfg.NLU,
		backend:    cfg.Backend,
		handoff:    cfg.Handoff,
		responder:  cfg.Responder,
		logger:     cfg.Logger,
		keywords:   cfg.Keywords,
		phrases:    NewPhrasebook(),
		confidence: cfg.ConfidenceThreshold,
		maxRetries: cfg.MaxRetries,
		driverID:   cfg.DriverID,
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.keywords == nil {
		e.keywords = DefaultKeywordTable()
	}
	if e.confidence == 0 {
		e.confidence = DefaultConfidenceThreshold
	}
	if e.maxRetries == 0 {
		e.maxRetries = DefaultMaxRetries
	}
	if e.driverID == "" {
		e.driverID = DefaultDriverID
	}
	return e, nil
}

// HandleMessage processes one user turn for a conversation and returns
// the next system action. Collaborator failures degrade to deterministic
// fallbacks; an error is returned only when session state cannot be read
// or written.
func (e *Engine) HandleMessage(ctx context.Context, conversationID, text, language string) (Response, error) {
	mu := e.lockFor(conversationID)
	mu.Lock()
	defer mu.Unlock()

	sess, isNew, err := e.lookup(ctx, conversationID)
	if err != nil {
		return Response{}, err
	}

	result := e.analyze(ctx, text)
	sess.History = append(sess.History, text)

	// The first utterance of a conversation is always answered as a
	// greeting, even when it carries an actionable intent; intent
	// extraction starts on the second turn.
	if isNew {
		return e.greet(ctx, sess, text, language)
	}

	if result.Sentiment == nlu.SentimentAngry || e.keywords.WantsAgent(text) {
		return e.escalate(ctx, sess, reasonAngryOrAgent, text, language)
	}

	if result.Confidence < e.confidence {
		return e.clarify(ctx, sess, text, language)
	}

	if result.Intent != nlu.IntentUnknown {
		sess.CurrentIntent = result.Intent
	}
	for k, v := range result.Entities {
		sess.Slots[k] = v
	}

	if sess.CurrentIntent == "" || sess.CurrentIntent == nlu.IntentUnknown {
		if err := e.store.Put(ctx, sess); err != nil {
			return Response{}, err
		}
		reply := e.respond(ctx, sess, BranchUnknown, text, nil, language, func() string {
			return e.phrases.NoIntent(language)
		})
		return Response{Text: reply}, nil
	}

	return e.dispatch(ctx, sess, text, language)
}

// DeleteConversation removes all engine state for a conversation id.
// Session expiry policy is the caller's concern.
func (e *Engine) DeleteConversation(ctx context.Context, conversationID string) error {
	if err := e.store.Delete(ctx, conversationID); err != nil {
		return err
	}
	e.locks.Delete(conversationID)
	return nil
}

func (e *Engine) lockFor(id string) *sync.Mutex {
	v, _ := e.locks.LoadOrStore(id, &sync.Mutex{})
	return v.(*sync.Mutex)
}

func (e *Engine) lookup(ctx context.Context, id string) (*session.Session, bool, error) {
	sess, err := e.store.Get(ctx, id)
	if errors.Is(err, session.ErrNotFound) {
		s := session.New(id)
		s.DriverID = e.driverID
		return s, true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load session %q: %w", id, err)
	}
	return sess, false, nil
}

// analyze runs NLU, degrading an erroring provider to an unknown,
// zero-confidence result so the turn continues down the clarify path.
func (e *Engine) analyze(ctx context.Context, text string) nlu.Result {
	result, err := e.nlu.Analyze(ctx, text)
	if err != nil {
		e.logger.Warn("NLU analysis failed, degrading to unknown",
			slog.String("error", err.Error()))
		return nlu.Result{Intent: nlu.IntentUnknown, Sentiment: nlu.SentimentNeutral}
	}
	if result.Entities == nil {
		result.Entities = map[string]string{}
	}
	return result
}

func (e *Engine) greet(ctx context.Context, sess *session.Session, text, language string) (Response, error) {
	if err := e.store.Put(ctx, sess); err != nil {
		return Response{}, err
	}

	e.logger.Debug("new conversation",
		slog.String("conversation_id", sess.ID),
		slog.Bool("classified_greeting", e.keywords.IsGreeting(text)))

	lang := language
	if lang != "hi" && containsDevanagari(text) {
		lang = "hi"
	}
	reply := e.respond(ctx, sess, BranchGreeting, text, nil, lang, func() string {
		return e.phrases.Greeting(lang)
	})
	return Response{Text: reply}, nil
}

func (e *Engine) clarify(ctx context.Context, sess *session.Session, text, language string) (Response, error) {
	sess.RetryCount++
	if sess.RetryCount > e.maxRetries {
		return e.escalate(ctx, sess, reasonLowConfidence, text, language)
	}
	if err := e.store.Put(ctx, sess); err != nil {
		return Response{}, err
	}

	reply := e.respond(ctx, sess, BranchUnknown, text, nil, language, func() string {
		return e.phrases.Clarify(language)
	})
	return Response{Text: reply}, nil
}

func (e *Engine) dispatch(ctx context.Context, sess *session.Session, text, language string) (Response, error) {
	switch sess.CurrentIntent {
	case nlu.IntentFindNearestStation:
		return e.findStation(ctx, sess, text, language)
	case nlu.IntentGetSwapHistory:
		return e.swapHistory(ctx, sess, text, language)
	default:
		return e.escalate(ctx, sess, reasonUnsupported, text, language)
	}
}

func (e *Engine) findStation(ctx context.Context, sess *session.Session, text, language string) (Response, error) {
	location, ok := sess.Slots["location"]
	if !ok {
		if err := e.store.Put(ctx, sess); err != nil {
			return Response{}, err
		}
		reply := e.respond(ctx, sess, BranchFindStation, text, nil, language, func() string {
			return e.phrases.AskLocation(language)
		})
		return Response{Text: reply}, nil
	}

	station, err := e.backend.FindNearestStation(ctx, location)
	if err != nil {
		e.logger.Error("station lookup failed",
			slog.String("conversation_id", sess.ID),
			slog.String("location", location),
			slog.String("error", err.Error()))
		return e.escalate(ctx, sess, reasonBackendError, text, language)
	}
	if err := e.store.Put(ctx, sess); err != nil {
		return Response{}, err
	}

	entities := map[string]string{
		"location":        location,
		"station_name":    station.Name,
		"station_address": station.Address,
	}
	reply := e.respond(ctx, sess, BranchFindStation, text, entities, language, func() string {
		return e.phrases.StationFound(language, station.Name, station.Address, location)
	})
	return Response{Text: reply, Data: map[string]any{"station": station}}, nil
}

func (e *Engine) swapHistory(ctx context.Context, sess *session.Session, text, language string) (Response, error) {
	dateRange, ok := sess.Slots["date_range"]
	if !ok {
		if err := e.store.Put(ctx, sess); err != nil {
			return Response{}, err
		}
		reply := e.respond(ctx, sess, BranchSwapHistory, text, nil, language, func() string {
			return e.phrases.AskDate(language)
		})
		return Response{Text: reply}, nil
	}

	records, err := e.backend.GetSwapHistory(ctx, sess.DriverID, dateRange)
	if err != nil {
		e.logger.Error("swap history lookup failed",
			slog.String("conversation_id", sess.ID),
			slog.String("date_range", dateRange),
			slog.String("error", err.Error()))
		return e.escalate(ctx, sess, reasonBackendError, text, language)
	}
	if err := e.store.Put(ctx, sess); err != nil {
		return Response{}, err
	}

	lastSwap := "N/A"
	if len(records) > 0 {
		lastSwap = records[0].Time
	}
	entities := map[string]string{
		"date_range":     dateRange,
		"swap_count":     fmt.Sprintf("%d", len(records)),
		"last_swap_time": lastSwap,
	}
	reply := e.respond(ctx, sess, BranchSwapHistory, text, entities, language, func() string {
		return e.phrases.HistoryFound(language, len(records), lastSwap)
	})
	return Response{Text: reply, Data: map[string]any{"swaps": records}}, nil
}

// escalate marks the session escalated, forwards the handoff summary and
// returns the apology reply. Escalated is terminal for the session;
// repeated escalations simply resend the summary.
func (e *Engine) escalate(ctx context.Context, sess *session.Session, reason, text, language string) (Response, error) {
	sess.Status = session.StatusEscalated
	if err := e.store.Put(ctx, sess); err != nil {
		return Response{}, err
	}

	summary := handoff.Summary{
		Reason:  reason,
		Intent:  string(sess.CurrentIntent),
		Slots:   sess.Slots,
		History: sess.History,
	}
	accepted, err := e.handoff.Escalate(ctx, sess.ID, summary)
	if err != nil {
		e.logger.Error("handoff delivery failed",
			slog.String("conversation_id", sess.ID),
			slog.String("reason", reason),
			slog.String("error", err.Error()))
	} else if !accepted {
		e.logger.Warn("handoff rejected escalation",
			slog.String("conversation_id", sess.ID),
			slog.String("reason", reason))
	} else {
		e.logger.Info("conversation escalated",
			slog.String("conversation_id", sess.ID),
			slog.String("reason", reason))
	}

	reply := e.respond(ctx, sess, BranchEscalate, text, nil, language, func() string {
		return e.phrases.Escalation(language)
	})
	return Response{Text: reply, NeedsEscalation: true}, nil
}

// respond asks the response generator for a context-aware phrasing and
// falls back to the deterministic phrasebook when it is unavailable,
// errors, or returns an empty string.
func (e *Engine) respond(ctx context.Context, sess *session.Session, branch, userMessage string, entities map[string]string, language string, fallback func() string) string {
	if e.responder != nil {
		text, err := e.responder.Generate(ctx, responder.Request{
			UserMessage: userMessage,
			Intent:      branch,
			Entities:    entities,
			History:     sess.RecentHistory(2),
			Language:    language,
		})
		if err == nil && strings.TrimSpace(text) != "" {
			return text
		}
		if err != nil && !errors.Is(err, ai.ErrUnavailable) {
			e.logger.Warn("response generation failed, using fallback",
				slog.String("branch", branch),
				slog.String("error", err.Error()))
		}
	}
	return fallback()
}
