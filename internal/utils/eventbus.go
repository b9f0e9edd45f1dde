package utils

import (
	"sync"
)

type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type Handler func(event Event)

// EventBus is an in-process publish/subscribe fan-out. Handlers run on the
// publisher's goroutine and must not block.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[string]map[uint64]Handler
	nextID      uint64
}

func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string]map[uint64]Handler),
	}
}

func (eb *EventBus) Publish(event string, data interface{}) {
	eb.mu.RLock()
	handlers := make([]Handler, 0, len(eb.subscribers[event]))
	for _, h := range eb.subscribers[event] {
		handlers = append(handlers, h)
	}
	eb.mu.RUnlock()

	e := Event{Event: event, Data: data}
	for _, h := range handlers {
		h(e)
	}
}

// Subscribe registers a handler and returns a function that removes it.
// The returned function is safe to call more than once.
func (eb *EventBus) Subscribe(event string, handler Handler) func() {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.subscribers[event] == nil {
		eb.subscribers[event] = make(map[uint64]Handler)
	}
	eb.nextID++
	id := eb.nextID
	eb.subscribers[event][id] = handler

	return func() {
		eb.mu.Lock()
		defer eb.mu.Unlock()
		delete(eb.subscribers[event], id)
	}
}
