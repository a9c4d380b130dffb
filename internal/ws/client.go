// Package ws maintains the real-time messaging connection: one STOMP
// session over a websocket per logged-in identity, a per-user inbound
// subscription, and fan-out to registered handlers.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fant-market/client/internal/api"
	"github.com/fant-market/client/internal/logger"
	"github.com/fant-market/client/types"
	"github.com/go-stomp/stomp/v3"
	"go.uber.org/zap"
)

const (
	// sendDestination is the application endpoint chat messages are
	// published to.
	sendDestination = "/app/chat.send"

	// heartBeat matches the intervals the backend's STOMP broker is
	// configured with.
	heartBeat = 4 * time.Second
)

var (
	// ErrNoToken is returned by Connect when the session has no token.
	ErrNoToken = errors.New("no authentication token available")

	// ErrNotConnected is returned by SendMessage when no session is
	// established.
	ErrNotConnected = errors.New("websocket not connected")
)

// Handler receives each inbound message for a subscribed user.
type Handler func(types.Message)

// Registration is the handle returned when a handler is registered.
// Removing through the handle is the only way to unregister, which keeps
// the registry free of the duplicate-accumulation problem an append-only
// handler list has.
type Registration struct {
	client  *Client
	userID  string
	handler Handler
	once    sync.Once
}

// Remove unregisters the handler. Safe to call more than once.
func (r *Registration) Remove() {
	if r == nil {
		return
	}
	r.once.Do(func() {
		r.client.remove(r)
	})
}

// Client is the messaging transport owner. Exactly one STOMP session
// exists per authenticated identity.
type Client struct {
	socketURL string
	tokens    api.TokenSource
	dialer    Dialer

	mu       sync.Mutex
	conn     *stomp.Conn
	stream   io.ReadWriteCloser
	userID   string
	handlers map[string][]*Registration
}

// NewClient constructs a messaging client. A nil dialer selects the
// websocket transport.
func NewClient(socketURL string, tokens api.TokenSource, dialer Dialer) *Client {
	if dialer == nil {
		dialer = WebSocketDialer{}
	}
	return &Client{
		socketURL: socketURL,
		tokens:    tokens,
		dialer:    dialer,
		handlers:  make(map[string][]*Registration),
	}
}

// Connect establishes the STOMP session and subscribes to the user's
// personal message topic. It returns only once the broker has confirmed
// the connection. Connecting again for the same user is a no-op; a
// different user must disconnect first.
func (c *Client) Connect(ctx context.Context, userID string) error {
	token := c.tokens.Token()
	if token == "" {
		return ErrNoToken
	}

	c.mu.Lock()
	if c.conn != nil {
		defer c.mu.Unlock()
		if c.userID == userID {
			return nil
		}
		return fmt.Errorf("already connected as user %s", c.userID)
	}
	c.mu.Unlock()

	stream, err := c.dialer.Dial(ctx, c.socketURL, token)
	if err != nil {
		return fmt.Errorf("websocket connection error: %w", err)
	}

	conn, err := stomp.Connect(stream,
		stomp.ConnOpt.Header("Authorization", "Bearer "+token),
		stomp.ConnOpt.HeartBeat(heartBeat, heartBeat),
	)
	if err != nil {
		_ = stream.Close()
		return fmt.Errorf("stomp error: %w", err)
	}

	sub, err := conn.Subscribe("/topic/messages/"+userID, stomp.AckAuto)
	if err != nil {
		_ = conn.Disconnect()
		_ = stream.Close()
		return fmt.Errorf("subscribe: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.stream = stream
	c.userID = userID
	c.mu.Unlock()

	go c.readLoop(conn, sub, userID)

	logger.Debug("messaging connected", zap.String("userId", userID))
	return nil
}

// Connected reports whether a STOMP session is currently established.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// SendMessage publishes a message to the chat send destination. There is
// no acknowledgment; delivery is fire-and-forget.
func (c *Client) SendMessage(msg types.OutboundMessage) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		return ErrNotConnected
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	if err := conn.Send(sendDestination, "application/json", body); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// OnMessage registers a handler for inbound messages addressed to the
// given user. Handlers run in registration order.
func (c *Client) OnMessage(userID string, handler Handler) *Registration {
	reg := &Registration{client: c, userID: userID, handler: handler}
	c.mu.Lock()
	c.handlers[userID] = append(c.handlers[userID], reg)
	c.mu.Unlock()
	return reg
}

func (c *Client) remove(reg *Registration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	regs := c.handlers[reg.userID]
	for i, candidate := range regs {
		if candidate == reg {
			c.handlers[reg.userID] = append(regs[:i:i], regs[i+1:]...)
			break
		}
	}
	if len(c.handlers[reg.userID]) == 0 {
		delete(c.handlers, reg.userID)
	}
}

// Disconnect tears down the session and clears every subscription and
// handler. Disconnecting while already disconnected is a no-op.
func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	stream := c.stream
	c.conn = nil
	c.stream = nil
	c.userID = ""
	c.handlers = make(map[string][]*Registration)
	c.mu.Unlock()

	if conn != nil {
		_ = conn.Disconnect()
	}
	if stream != nil {
		_ = stream.Close()
	}
}

// readLoop consumes the personal topic until the subscription closes.
// There is no automatic reconnect; a lost transport leaves the client
// disconnected until the caller connects again.
func (c *Client) readLoop(conn *stomp.Conn, sub *stomp.Subscription, userID string) {
	for frame := range sub.C {
		if frame == nil {
			break
		}
		if frame.Err != nil {
			logger.Warn("messaging subscription error", zap.Error(frame.Err))
			break
		}

		var msg types.Message
		if err := json.Unmarshal(frame.Body, &msg); err != nil {
			logger.Warn("dropping malformed message frame", zap.Error(err))
			continue
		}
		c.dispatch(userID, msg)
	}

	c.mu.Lock()
	if c.conn == conn {
		c.conn = nil
		c.stream = nil
		c.userID = ""
	}
	c.mu.Unlock()
	logger.Debug("messaging read loop ended", zap.String("userId", userID))
}

func (c *Client) dispatch(userID string, msg types.Message) {
	c.mu.Lock()
	regs := make([]*Registration, len(c.handlers[userID]))
	copy(regs, c.handlers[userID])
	c.mu.Unlock()

	for _, reg := range regs {
		reg.handler(msg)
	}
}
