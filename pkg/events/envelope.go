package events

import (
	"encoding/json"
	"errors"

	scorpijson "github.com/scorpiui/scorpiui-go/pkg/json"
)

// Channel names exchanged with the server. All are server to client except
// ChannelComponentEvent, the single outbound channel.
const (
	ChannelConnect            = "connect"
	ChannelConnectionResponse = "connection_response"
	ChannelEventResponse      = "event_response"
	ChannelStateChange        = "state_change"
	ChannelTitleUpdate        = "title_update"
	ChannelError              = "error"
	ChannelDisconnect         = "disconnect"
	ChannelComponentEvent     = "component_event"
)

var (
	// ErrEmptyChannel is returned when a frame carries no channel name.
	ErrEmptyChannel = errors.New("frame has no channel name")
	// ErrMissingEventID is returned when an event payload has no event_id.
	ErrMissingEventID = errors.New("payload has no event_id")
	// ErrMissingComponentID is returned when a state change has no component_id.
	ErrMissingComponentID = errors.New("state change has no component_id")
)

// Frame is the transport-level message: one named channel plus its payload.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// DecodeFrame parses a raw transport message into a Frame.
func DecodeFrame(raw []byte) (Frame, error) {
	var f Frame
	if err := scorpijson.Unmarshal(raw, &f); err != nil {
		return Frame{}, err
	}
	if f.Event == "" {
		return Frame{}, ErrEmptyChannel
	}
	return f, nil
}

// EncodeFrame serializes a channel name and payload into one transport message.
func EncodeFrame(event string, data interface{}) ([]byte, error) {
	payload, err := scorpijson.Marshal(data)
	if err != nil {
		return nil, err
	}
	return scorpijson.Marshal(Frame{Event: event, Data: payload})
}

// EventResponse is the server's reply to a component event. The response
// field is redistributed verbatim to subscribers of ResponseEvent(event_id).
type EventResponse struct {
	EventID  string          `json:"event_id"`
	Response json.RawMessage `json:"response"`
}

// Validate checks the fixed field set for the event_response channel.
func (e *EventResponse) Validate() error {
	if e.EventID == "" {
		return ErrMissingEventID
	}
	return nil
}

// StateChange carries a new state value for one component instance.
type StateChange struct {
	ComponentID string          `json:"component_id"`
	State       json.RawMessage `json:"state"`
}

// Validate checks the fixed field set for the state_change channel.
func (s *StateChange) Validate() error {
	if s.ComponentID == "" {
		return ErrMissingComponentID
	}
	return nil
}

// TitleUpdate carries document title state. Empty base_title and separator
// mean "keep the stored value"; an empty page_title clears the page title.
type TitleUpdate struct {
	PageTitle string `json:"page_title"`
	BaseTitle string `json:"base_title"`
	Separator string `json:"separator"`
}

// ErrorMessage is a non-fatal transport-level error surfaced by the server.
type ErrorMessage struct {
	Message string `json:"message"`
}

// ResponseEvent derives the bus name under which the reply to eventID is
// fanned out.
func ResponseEvent(eventID string) string {
	return eventID + "_response"
}

// ComponentEnvelope builds the outbound envelope {event_id, ...payload}.
// The event_id tag always wins over a payload key of the same name.
func ComponentEnvelope(eventID string, payload map[string]interface{}) (json.RawMessage, error) {
	if eventID == "" {
		return nil, ErrMissingEventID
	}
	envelope := make(map[string]interface{}, len(payload)+1)
	for k, v := range payload {
		envelope[k] = v
	}
	envelope["event_id"] = eventID
	return scorpijson.Marshal(envelope)
}
