package session

import (
	"sync"
	"time"

	"github.com/vetdesk-app/vetdesk/internal/domain"
)

// EventType enumerates session lifecycle events.
type EventType string

const (
	EventSessionStarted EventType = "session_started"
	EventSessionCleared EventType = "session_cleared"
	EventSessionExpired EventType = "session_expired"
	EventUserUpdated    EventType = "user_updated"
)

// Event describes a session state change delivered to subscribers.
type Event struct {
	Type      EventType
	User      *domain.User
	Timestamp time.Time
}

// EventHandler handles a published event. Handlers run synchronously on the
// publishing goroutine.
type EventHandler func(Event)

// dispatcher is a simple synchronous fan-out, one subscriber list per type.
type dispatcher struct {
	mu        sync.RWMutex
	listeners map[EventType][]EventHandler
}

func newDispatcher() *dispatcher {
	return &dispatcher{listeners: make(map[EventType][]EventHandler)}
}

func (d *dispatcher) publish(event Event) {
	d.mu.RLock()
	handlers := append([]EventHandler{}, d.listeners[event.Type]...)
	d.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

func (d *dispatcher) subscribe(eventType EventType, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[eventType] = append(d.listeners[eventType], handler)
}
