package client

import (
	"go.uber.org/zap"

	"github.com/scorpiui/scorpiui-go/pkg/events"
	scorpijson "github.com/scorpiui/scorpiui-go/pkg/json"
)

// route redistributes one inbound frame. Each payload is decoded and
// validated as the tagged variant for its channel before dispatch;
// malformed frames are logged and dropped. Unknown channels are not an
// error.
func (c *Client) route(frame events.Frame) {
	c.metrics.FramesReceived.WithLabelValues(frame.Event).Inc()

	switch frame.Event {
	case events.ChannelEventResponse:
		var msg events.EventResponse
		if err := scorpijson.Unmarshal(frame.Data, &msg); err != nil {
			c.log.Warn("dropping malformed event_response", zap.Error(err))
			return
		}
		if err := msg.Validate(); err != nil {
			c.log.Warn("dropping malformed event_response", zap.Error(err))
			return
		}
		c.bus.Trigger(events.ResponseEvent(msg.EventID), msg.Response)

	case events.ChannelStateChange:
		var msg events.StateChange
		if err := scorpijson.Unmarshal(frame.Data, &msg); err != nil {
			c.log.Warn("dropping malformed state_change", zap.Error(err))
			return
		}
		if err := msg.Validate(); err != nil {
			c.log.Warn("dropping malformed state_change", zap.Error(err))
			return
		}
		if !c.registry.Dispatch(msg.ComponentID, msg.State) {
			c.log.Debug("state change for unregistered component",
				zap.String("component_id", msg.ComponentID))
		}

	case events.ChannelTitleUpdate:
		var msg events.TitleUpdate
		if err := scorpijson.Unmarshal(frame.Data, &msg); err != nil {
			c.log.Warn("dropping malformed title_update", zap.Error(err))
			return
		}
		c.title.Update(msg.PageTitle, msg.BaseTitle, msg.Separator)

	case events.ChannelError:
		var msg events.ErrorMessage
		if err := scorpijson.Unmarshal(frame.Data, &msg); err != nil {
			c.log.Warn("dropping malformed error frame", zap.Error(err))
			return
		}
		c.log.Error("server error", zap.String("message", msg.Message))

	case events.ChannelConnect, events.ChannelConnectionResponse, events.ChannelDisconnect:
		c.log.Info("server lifecycle event", zap.String("channel", frame.Event))

	default:
		c.log.Debug("unhandled channel", zap.String("channel", frame.Event))
	}
}
