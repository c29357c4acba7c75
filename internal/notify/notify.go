// Package notify defines the contract the engines use to record their
// recommendations for human review. Implementations append; they never mutate
// or re-read what the engines hand them.
package notify

import (
	"context"
	"fmt"
)

// Notification categories.
const (
	CategoryLineup  = "lineup"
	CategoryWaivers = "waivers"
	CategoryTrades  = "trades"
	CategoryInfo    = "info"
)

// Notifier records one structured recommendation message and returns its id.
// Implementations provide append-only, safely retryable semantics; callers
// surface failures instead of suppressing them and do not retry internally,
// since recomputing a recommendation is cheap and idempotent.
type Notifier interface {
	Notify(ctx context.Context, category, title, body string, payload map[string]any) (string, error)
}

// Error wraps a failure to record a notification.
type Error struct {
	Category string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("recording %s notification: %v", e.Category, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
