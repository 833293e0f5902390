package events

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Handler processes the payload delivered for an event name.
type Handler func(data json.RawMessage)

// Bus is an in-memory event bus mapping event names to ordered subscriber
// lists. Trigger fans out synchronously in registration order. A name with
// no subscribers is a silent no-op.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]*Subscription
	log      *zap.Logger
}

// Subscription is a handle to a registered handler. Cancel removes it from
// the bus; remaining subscribers keep their relative order.
type Subscription struct {
	bus     *Bus
	name    string
	handler Handler
}

// NewBus creates an event bus reporting handler failures to log.
func NewBus(log *zap.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]*Subscription),
		log:      log,
	}
}

// On registers handler for name, after any handlers already registered.
func (b *Bus) On(name string, handler Handler) *Subscription {
	sub := &Subscription{bus: b, name: name, handler: handler}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], sub)
	return sub
}

// Trigger invokes every handler registered for name, in registration order,
// passing data to each. A panicking handler is recovered and logged; its
// siblings still run.
func (b *Bus) Trigger(name string, data json.RawMessage) {
	b.mu.RLock()
	subs := make([]*Subscription, len(b.handlers[name]))
	copy(subs, b.handlers[name])
	b.mu.RUnlock()

	for _, sub := range subs {
		b.invoke(name, sub, data)
	}
}

// SubscriberCount reports how many handlers are registered for name.
func (b *Bus) SubscriberCount(name string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[name])
}

func (b *Bus) invoke(name string, sub *Subscription, data json.RawMessage) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event handler panicked",
				zap.String("event", name),
				zap.Any("panic", r))
		}
	}()
	sub.handler(data)
}

// Cancel removes the subscription from the bus. Canceling twice is a no-op.
func (s *Subscription) Cancel() {
	b := s.bus
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.handlers[s.name]
	for i, sub := range subs {
		if sub == s {
			b.handlers[s.name] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(b.handlers[s.name]) == 0 {
		delete(b.handlers, s.name)
	}
}
