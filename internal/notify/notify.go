// Package notify is the seam where the dashboard's transient toasts would
// hang off. The core only decides what to announce; presentation is someone
// else's job, so the default sink just logs.
package notify

import "log/slog"

type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Notification is surfaced exactly once per triggering action; nothing here
// retries on the user's behalf.
type Notification struct {
	Title  string
	Detail string
	Status Status
}

type Notifier interface {
	Notify(n Notification)
}

// LogNotifier writes notifications to a structured logger.
type LogNotifier struct {
	Log *slog.Logger
}

func (l LogNotifier) Notify(n Notification) {
	logger := l.Log
	if logger == nil {
		logger = slog.Default()
	}
	if n.Status == StatusError {
		logger.Warn(n.Title, "detail", n.Detail)
		return
	}
	logger.Info(n.Title, "detail", n.Detail)
}

// Noop discards notifications.
type Noop struct{}

func (Noop) Notify(Notification) {}
