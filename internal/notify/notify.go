// Package notify holds the single transient UI message surfaced after an
// operation, with optional auto-dismiss.
package notify

import (
	"sync"
	"time"

	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/model"
)

// DefaultDuration is the auto-dismiss delay applied by callers that do not
// pick their own.
const DefaultDuration = 5 * time.Second

type Notification struct {
	Visible  bool           `json:"visible"`
	Title    string         `json:"title"`
	Message  string         `json:"message"`
	Severity model.Severity `json:"severity"`
}

// Center owns one notification and at most one pending dismissal timer.
// Showing a new notification always cancels the previous timer, so an old
// auto-hide can never dismiss a newer message.
type Center struct {
	mu      sync.Mutex
	current Notification
	timer   *time.Timer
}

func NewCenter() *Center {
	return &Center{current: Notification{Severity: model.SeverityInfo}}
}

// Show replaces the current notification. A duration greater than zero arms
// auto-dismissal; zero or negative means the message stays until Hide.
func (c *Center) Show(title, message string, severity model.Severity, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.current = Notification{
		Visible:  true,
		Title:    title,
		Message:  message,
		Severity: severity,
	}
	if duration > 0 {
		c.timer = time.AfterFunc(duration, c.Hide)
	}
}

// Hide dismisses the notification and cancels any pending timer. Safe to call
// when nothing is visible.
func (c *Center) Hide() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current.Visible = false
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// Current returns a snapshot of the notification state.
func (c *Center) Current() Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}
