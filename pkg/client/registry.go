package client

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// StateHandler is invoked with a component's new state, verbatim as sent by
// the server.
type StateHandler func(state json.RawMessage)

// StateRegistry maps component ids to their state handlers. At most one
// handler per component; the last registration wins.
type StateRegistry struct {
	mu       sync.RWMutex
	handlers map[string]StateHandler
	log      *zap.Logger
}

// NewStateRegistry creates an empty registry.
func NewStateRegistry(log *zap.Logger) *StateRegistry {
	return &StateRegistry{
		handlers: make(map[string]StateHandler),
		log:      log,
	}
}

// OnStateChange registers handler for componentID, replacing any previous
// handler for that id.
func (r *StateRegistry) OnStateChange(componentID string, handler StateHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[componentID] = handler
}

// Dispatch invokes the handler registered for componentID with state and
// reports whether one was registered. A panicking handler is recovered and
// logged.
func (r *StateRegistry) Dispatch(componentID string, state json.RawMessage) bool {
	r.mu.RLock()
	handler := r.handlers[componentID]
	r.mu.RUnlock()

	if handler == nil {
		return false
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("state handler panicked",
				zap.String("component_id", componentID),
				zap.Any("panic", rec))
		}
	}()
	handler(state)
	return true
}
