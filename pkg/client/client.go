package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/scorpiui/scorpiui-go/pkg/events"
	scorpijson "github.com/scorpiui/scorpiui-go/pkg/json"
)

var (
	// ErrAlreadyConnected is returned when Connect is called on a live client.
	ErrAlreadyConnected = errors.New("client already connected")
	// ErrNotConnected is returned by operations that need a live connection.
	ErrNotConnected = errors.New("client not connected")
)

const defaultHandshakeTimeout = 10 * time.Second

// Config holds configuration for a Client.
type Config struct {
	// URL is the ws:// or wss:// endpoint of the ScorpiUI server.
	URL string
	// ClientID identifies this client on the handshake URL. A UUID is
	// generated when empty.
	ClientID string
	// TitleSeparator joins page and base title. Defaults to " | ".
	TitleSeparator string
	// HandshakeTimeout bounds the WebSocket handshake. Defaults to 10s.
	HandshakeTimeout time.Duration
	// Header carries extra handshake headers, if any.
	Header http.Header
	// Registerer receives the client's Prometheus collectors. When nil the
	// collectors go to a private registry and are effectively disabled.
	Registerer prometheus.Registerer
}

// Client is the ScorpiUI client runtime: it owns the transport connection,
// relays component events to the server, and applies server-pushed state and
// title updates. Construct with New, open with Connect, release with Close.
type Client struct {
	cfg      Config
	clientID string
	log      *zap.Logger
	bus      *events.Bus
	registry *StateRegistry
	title    *TitleController
	metrics  *Metrics

	mu     sync.Mutex // guards conn lifecycle
	conn   *websocket.Conn
	sendMu sync.Mutex // serializes transport writes
}

// New creates a client. sink receives rendered document titles; it may be
// nil when the embedding application has no title surface.
func New(cfg Config, log *zap.Logger, sink TitleSink) *Client {
	if cfg.ClientID == "" {
		cfg.ClientID = uuid.NewString()
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = defaultHandshakeTimeout
	}
	log = log.With(zap.String("client_id", cfg.ClientID))
	return &Client{
		cfg:      cfg,
		clientID: cfg.ClientID,
		log:      log,
		bus:      events.NewBus(log),
		registry: NewStateRegistry(log),
		title:    NewTitleController(sink, cfg.TitleSeparator, log),
		metrics:  NewMetrics(cfg.Registerer),
	}
}

// Connect establishes the transport connection and starts the read loop.
// Calling Connect on an already-connected client returns ErrAlreadyConnected.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return ErrAlreadyConnected
	}

	u, err := url.Parse(c.cfg.URL)
	if err != nil {
		return fmt.Errorf("parse server url: %w", err)
	}
	q := u.Query()
	q.Set("client_id", c.clientID)
	u.RawQuery = q.Encode()

	dialer := websocket.Dialer{HandshakeTimeout: c.cfg.HandshakeTimeout}
	conn, resp, err := dialer.DialContext(ctx, u.String(), c.cfg.Header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("dial %s (status %d): %w", u.String(), resp.StatusCode, err)
		}
		return fmt.Errorf("dial %s: %w", u.String(), err)
	}

	c.conn = conn
	c.metrics.Connects.Inc()
	c.log.Info("connected to server", zap.String("url", u.String()))

	go c.readLoop(conn)
	return nil
}

// Close tears down the transport connection. Closing an unconnected client
// is a no-op.
func (c *Client) Close() error {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn == nil {
		return nil
	}

	c.sendMu.Lock()
	deadline := time.Now().Add(time.Second)
	err := conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	c.sendMu.Unlock()
	if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		c.log.Debug("close handshake failed", zap.Error(err))
	}
	return conn.Close()
}

// Emit serializes a local UI action into the envelope {event_id, ...data}
// and transmits it on the component_event channel. With no live connection
// the call is dropped and reported to the diagnostic sink; nothing is
// queued and no error is raised to the caller.
func (c *Client) Emit(eventID string, data map[string]interface{}) {
	conn := c.connection()
	if conn == nil {
		c.metrics.FramesDropped.Inc()
		c.log.Warn("emit dropped, no live connection", zap.String("event_id", eventID))
		return
	}

	envelope, err := events.ComponentEnvelope(eventID, data)
	if err != nil {
		c.log.Error("failed to build event envelope",
			zap.String("event_id", eventID), zap.Error(err))
		return
	}
	buf, err := scorpijson.Marshal(events.Frame{
		Event: events.ChannelComponentEvent,
		Data:  envelope,
	})
	if err != nil {
		c.log.Error("failed to encode component event",
			zap.String("event_id", eventID), zap.Error(err))
		return
	}

	c.sendMu.Lock()
	err = conn.WriteMessage(websocket.TextMessage, buf)
	c.sendMu.Unlock()
	if err != nil {
		c.log.Error("failed to send component event",
			zap.String("event_id", eventID), zap.Error(err))
		return
	}
	c.metrics.FramesEmitted.Inc()
}

// EmitWithResponse emits eventID and waits for the server's reply on the
// derived <event_id>_response bus name. The wire contract is unchanged;
// this only spares callers the one-shot subscription bookkeeping. Returns
// ErrNotConnected with no live connection, or ctx.Err() when the context
// expires before the reply arrives.
func (c *Client) EmitWithResponse(ctx context.Context, eventID string, data map[string]interface{}) (json.RawMessage, error) {
	if c.connection() == nil {
		return nil, ErrNotConnected
	}

	replies := make(chan json.RawMessage, 1)
	var once sync.Once
	sub := c.bus.On(events.ResponseEvent(eventID), func(data json.RawMessage) {
		once.Do(func() { replies <- data })
	})
	defer sub.Cancel()

	c.Emit(eventID, data)

	select {
	case reply := <-replies:
		return reply, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// On registers a handler on the event bus. Responses to Emit(eventID) fan
// out under events.ResponseEvent(eventID).
func (c *Client) On(name string, handler events.Handler) *events.Subscription {
	return c.bus.On(name, handler)
}

// OnStateChange registers the state handler for a component. At most one
// handler per component; the last registration wins.
func (c *Client) OnStateChange(componentID string, handler StateHandler) {
	c.registry.OnStateChange(componentID, handler)
}

// Title exposes the title controller.
func (c *Client) Title() *TitleController {
	return c.title
}

// readLoop consumes transport messages until the connection drops and
// dispatches each frame sequentially, preserving arrival order.
func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			active := c.conn == conn
			if active {
				c.conn = nil
			}
			c.mu.Unlock()

			c.metrics.Disconnects.Inc()
			if active && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Error("connection lost", zap.Error(err))
			} else {
				c.log.Info("disconnected from server")
			}
			return
		}

		frame, err := events.DecodeFrame(raw)
		if err != nil {
			c.log.Warn("dropping malformed frame", zap.Error(err))
			continue
		}
		c.route(frame)
	}
}

func (c *Client) connection() *websocket.Conn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn
}
