package tui

import (
	"sync"
	"time"
)

// NotificationSeverity represents the urgency level of a notification.
type NotificationSeverity int

const (
	// SeverityInfo indicates a success or informational notification.
	SeverityInfo NotificationSeverity = iota
	// SeverityError indicates a failed operation.
	SeverityError
)

// Notification is a transient, user-facing banner message.
type Notification struct {
	Message   string
	Severity  NotificationSeverity
	Timestamp time.Time
}

// NotificationManager centralizes transient notification handling.
// It manages a queue of notifications and auto-dismisses the current
// one after a configurable timeout.
type NotificationManager struct {
	mu sync.RWMutex

	// Queue of pending notifications
	queue []*Notification

	// Current notification being displayed (if any)
	current *Notification

	// How long before the current notification auto-dismisses
	autoDismiss time.Duration

	// Timestamp when current notification was displayed
	currentDisplayedAt time.Time
}

// NewNotificationManager creates a new NotificationManager with the given
// auto-dismiss timeout.
func NewNotificationManager(autoDismiss time.Duration) *NotificationManager {
	return &NotificationManager{
		autoDismiss: autoDismiss,
		queue:       make([]*Notification, 0),
	}
}

// Add adds a notification to the queue.
// If there's no current notification, this becomes the current notification.
func (nm *NotificationManager) Add(n Notification) {
	nm.mu.Lock()
	defer nm.mu.Unlock()

	n.Timestamp = time.Now()
	nm.queue = append(nm.queue, &n)

	// If no current notification, promote from queue immediately
	if nm.current == nil {
		nm.promoteFromQueue()
	}
}

// Info adds an informational notification.
func (nm *NotificationManager) Info(message string) {
	nm.Add(Notification{Message: message, Severity: SeverityInfo})
}

// Error adds an error notification.
func (nm *NotificationManager) Error(message string) {
	nm.Add(Notification{Message: message, Severity: SeverityError})
}

// Current returns the current notification, or nil if none.
func (nm *NotificationManager) Current() *Notification {
	nm.mu.RLock()
	defer nm.mu.RUnlock()
	return nm.current
}

// Dismiss dismisses the current notification and promotes the next one
// from the queue if available.
func (nm *NotificationManager) Dismiss() {
	nm.mu.Lock()
	defer nm.mu.Unlock()

	nm.current = nil
	nm.currentDisplayedAt = time.Time{}
	nm.promoteFromQueue()
}

// CheckTimeout checks if the current notification should be auto-dismissed.
// Returns true if the notification was dismissed.
func (nm *NotificationManager) CheckTimeout() bool {
	nm.mu.Lock()
	defer nm.mu.Unlock()

	if nm.current == nil {
		return false
	}

	if nm.currentDisplayedAt.IsZero() {
		return false
	}

	if time.Since(nm.currentDisplayedAt) >= nm.autoDismiss {
		nm.current = nil
		nm.currentDisplayedAt = time.Time{}
		nm.promoteFromQueue()
		return true
	}

	return false
}

// promoteFromQueue moves the next notification from the queue to current.
// Must be called with lock held.
func (nm *NotificationManager) promoteFromQueue() {
	if len(nm.queue) > 0 {
		nm.current = nm.queue[0]
		nm.queue = nm.queue[1:]
		nm.currentDisplayedAt = time.Now()
	}
}

// QueueLength returns the number of pending notifications in the queue
// (not including the current notification).
func (nm *NotificationManager) QueueLength() int {
	nm.mu.RLock()
	defer nm.mu.RUnlock()
	return len(nm.queue)
}

// ClearAll clears all notifications (current and queued).
func (nm *NotificationManager) ClearAll() {
	nm.mu.Lock()
	defer nm.mu.Unlock()

	nm.current = nil
	nm.queue = nm.queue[:0]
	nm.currentDisplayedAt = time.Time{}
}
