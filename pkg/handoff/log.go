package handoff

import (
	"context"
	"log/slog"
)

// LogHandoff records escalations to the log. It stands in for a real
// agent-desk integration in demos and single-binary deployments.
type LogHandoff struct {
	logger *slog.Logger
}

// NewLogHandoff creates a logging handoff sink.
func NewLogHandoff(logger *slog.Logger) *LogHandoff {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogHandoff{logger: logger}
}

// Escalate logs the summary and reports success.
func (l *LogHandoff) Escalate(ctx context.Context, conversationID string, summary Summary) (bool, error) {
	l.logger.Info("escalation",
		slog.String("conversation_id", conversationID),
		slog.String("reason", summary.Reason),
		slog.String("intent", summary.Intent),
		slog.Any("slots", summary.Slots))
	return true, nil
}
