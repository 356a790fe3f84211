package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded events. It is used
// when no webhook is configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards events with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// NotifyJob logs and discards a job event.
func (n *NoOpNotifier) NotifyJob(_ context.Context, ev JobEvent) error {
	n.log.Debug("notification discarded (no backend configured)",
		"job", ev.JobName,
		"status", ev.Status,
	)
	return nil
}
