// Package notify delivers operational notifications about scheduled job
// outcomes.
package notify

import (
	"context"
)

// JobEvent describes a finished scheduled job run.
type JobEvent struct {
	JobName string
	Status  string // success or error
	Error   string
	Rows    int
}

// Notifier defines the interface for delivering job notifications.
type Notifier interface {
	NotifyJob(ctx context.Context, ev JobEvent) error
}
