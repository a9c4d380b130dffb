package ws

import (
	"context"
	"io"
	"net/url"

	"github.com/gorilla/websocket"
)

// Dialer opens the byte stream the STOMP session runs over. Abstracting
// the transport lets tests run against an in-process server.
type Dialer interface {
	Dial(ctx context.Context, socketURL, token string) (io.ReadWriteCloser, error)
}

// WebSocketDialer dials the backend's websocket endpoint with the session
// token attached as a query parameter, matching what the server's
// handshake interceptor expects.
type WebSocketDialer struct{}

func (WebSocketDialer) Dial(ctx context.Context, socketURL, token string) (io.ReadWriteCloser, error) {
	target := socketURL
	if token != "" {
		target += "?token=" + url.QueryEscape(token)
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, target, nil)
	if err != nil {
		return nil, err
	}
	return NewStream(conn), nil
}

// Stream adapts a websocket connection to the io.ReadWriteCloser the
// STOMP library expects. STOMP frames may span or share websocket
// messages; both ends treat the socket as a byte stream.
type Stream struct {
	conn   *websocket.Conn
	reader io.Reader
}

func NewStream(conn *websocket.Conn) *Stream {
	return &Stream{conn: conn}
}

func (s *Stream) Read(p []byte) (int, error) {
	for {
		if s.reader == nil {
			_, r, err := s.conn.NextReader()
			if err != nil {
				return 0, err
			}
			s.reader = r
		}
		n, err := s.reader.Read(p)
		if err == io.EOF {
			s.reader = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (s *Stream) Write(p []byte) (int, error) {
	if err := s.conn.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (s *Stream) Close() error {
	return s.conn.Close()
}
