// Package notify defines user notifications and the hub that delivers
// them and keeps their action callbacks.
package notify

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// Level is the severity of a notification.
type Level string

// Levels.
const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// PositionTopRight is the screen position used by every notification this
// module raises.
const PositionTopRight = "tr"

// Action is the single actionable button a notification may carry.
type Action struct {
	Label    string
	Callback func()
}

// Message is a notification body: either one string or an ordered list of
// fragments to be joined.
type Message struct {
	parts []string
	list  bool
}

// Text returns a single-string message.
func Text(s string) Message { return Message{parts: []string{s}} }

// Lines returns a message made of ordered fragments.
func Lines(parts ...string) Message { return Message{parts: parts, list: true} }

// String joins the fragments.
func (m Message) String() string { return strings.Join(m.parts, "") }

// Parts returns the fragments.
func (m Message) Parts() []string { return m.parts }

// IsList reports whether the message was built from fragments.
func (m Message) IsList() bool { return m.list }

// MarshalJSON encodes a string or a list of strings.
func (m Message) MarshalJSON() ([]byte, error) {
	if m.list {
		return json.Marshal(m.parts)
	}
	return json.Marshal(m.String())
}

// Notification is the shape consumed by notification front-ends.
type Notification struct {
	Title       string
	Message     Message
	Dismissible bool
	Position    string
	Level       Level
	Action      *Action
}

// Notifier delivers notifications.
type Notifier interface {
	Notify(n Notification)
}

// Wire is the JSON form of a notification. The action callback is replaced
// by an id that can be invoked later through Hub.Invoke.
type Wire struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Message     Message     `json:"message"`
	Dismissible bool        `json:"dismissible"`
	Position    string      `json:"position"`
	Level       Level       `json:"level"`
	Action      *WireAction `json:"action,omitempty"`
}

// WireAction is the JSON form of an action.
type WireAction struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Publisher sends encoded notifications to front-ends.
type Publisher interface {
	PublishNotification(w Wire)
}

// MaxPending bounds the callbacks a Hub keeps; the oldest is dropped first.
const MaxPending = 32

// Hub is a Notifier that assigns ids, keeps pending action callbacks and
// forwards notifications to a Publisher. A new action replaces a pending one
// raised under the same title.
type Hub struct {
	pub    Publisher
	logger *slog.Logger

	mu      sync.Mutex
	seq     int
	pending map[string]func()
	order   []string          // pending ids, oldest first
	byTitle map[string]string // title -> pending id
}

// NewHub creates a hub. pub may be nil.
func NewHub(pub Publisher, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		pub:     pub,
		logger:  logger,
		pending: make(map[string]func()),
		byTitle: make(map[string]string),
	}
}

// Notify implements Notifier.
func (h *Hub) Notify(n Notification) {
	h.mu.Lock()
	h.seq++
	w := Wire{
		ID:          strconv.Itoa(h.seq),
		Title:       n.Title,
		Message:     n.Message,
		Dismissible: n.Dismissible,
		Position:    n.Position,
		Level:       n.Level,
	}
	if n.Action != nil {
		id := w.ID + "/action"
		if old, ok := h.byTitle[n.Title]; ok {
			h.forget(old)
		}
		if len(h.order) >= MaxPending {
			h.forget(h.order[0])
		}
		h.pending[id] = n.Action.Callback
		h.order = append(h.order, id)
		h.byTitle[n.Title] = id
		w.Action = &WireAction{ID: id, Label: n.Action.Label}
	}
	h.mu.Unlock()

	h.logger.Info("notify: notification",
		slog.String("title", n.Title),
		slog.String("severity", string(n.Level)),
		slog.String("message", n.Message.String()))
	if h.pub != nil {
		h.pub.PublishNotification(w)
	}
}

// Invoke runs and forgets the callback registered under id. It reports
// whether one was found.
func (h *Hub) Invoke(id string) bool {
	h.mu.Lock()
	cb, ok := h.pending[id]
	h.forget(id)
	h.mu.Unlock()
	if !ok {
		return false
	}
	if cb != nil {
		cb()
	}
	return true
}

// forget drops id from the pending set. Callers hold h.mu.
func (h *Hub) forget(id string) {
	if _, ok := h.pending[id]; !ok {
		return
	}
	delete(h.pending, id)
	for i, o := range h.order {
		if o == id {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
	for title, o := range h.byTitle {
		if o == id {
			delete(h.byTitle, title)
			break
		}
	}
}

// Pending returns the number of callbacks awaiting invocation.
func (h *Hub) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.pending)
}

// Recorder is a Notifier that keeps every notification.
type Recorder struct {
	mu            sync.Mutex
	Notifications []Notification
}

// Notify implements Notifier.
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Notifications = append(r.Notifications, n)
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Notifications) == 0 {
		return Notification{}, false
	}
	return r.Notifications[len(r.Notifications)-1], true
}
