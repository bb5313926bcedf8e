package portal

import (
	"sync"
	"time"
)

// StatusKind is the visual category of the status line.
type StatusKind string

const (
	StatusNone    StatusKind = "none"
	StatusInfo    StatusKind = "info"
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// StatusMessage is the single transient feedback line shown to the user.
// The token identifies the particular message so that a stale clear timer
// never stomps a newer message.
type StatusMessage struct {
	Token uint64
	Text  string
	Kind  StatusKind
}

// StatusChannel holds the one status line every action reports through.
type StatusChannel struct {
	mu      sync.Mutex
	current StatusMessage
	next    uint64
	notify  func(StatusMessage)
}

// NewStatusChannel creates an empty status channel.
func NewStatusChannel() *StatusChannel {
	return &StatusChannel{current: StatusMessage{Kind: StatusNone}}
}

// SetNotify registers a callback invoked whenever the status line changes.
func (c *StatusChannel) SetNotify(fn func(StatusMessage)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notify = fn
}

// Set replaces the current message and its kind immediately and returns the
// message it displayed.
func (c *StatusChannel) Set(text string, kind StatusKind) StatusMessage {
	c.mu.Lock()
	c.next++
	c.current = StatusMessage{Token: c.next, Text: text, Kind: kind}
	msg, notify := c.current, c.notify
	c.mu.Unlock()

	if notify != nil {
		notify(msg)
	}
	return msg
}

// Current returns the message currently displayed.
func (c *StatusChannel) Current() StatusMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// ScheduleClear arms a timer that clears the currently displayed message
// after delay, unless a newer message has replaced it in the meantime.
func (c *StatusChannel) ScheduleClear(delay time.Duration) {
	armed := c.Current().Token
	time.AfterFunc(delay, func() {
		c.clearIf(armed)
	})
}

func (c *StatusChannel) clearIf(token uint64) {
	c.mu.Lock()
	if c.current.Token != token {
		c.mu.Unlock()
		return
	}
	c.current = StatusMessage{Kind: StatusNone}
	msg, notify := c.current, c.notify
	c.mu.Unlock()

	if notify != nil {
		notify(msg)
	}
}
