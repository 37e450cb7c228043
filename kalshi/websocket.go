package kalshi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const pingInterval = 10 * time.Second

type WSMessageCallback func(message []byte)

// WebSocketFeed is an authenticated subscription to the Kalshi websocket API.
type WebSocketFeed struct {
	url      string
	signer   *Signer
	channels []string
	callback WSMessageCallback

	mu     sync.Mutex
	conn   *websocket.Conn
	nextID int
}

// NewWebSocketFeed derives the websocket URL from a REST base URL, e.g.
// https://api.elections.kalshi.com -> wss://api.elections.kalshi.com/trade-api/ws/v2.
func NewWebSocketFeed(baseURL string, signer *Signer, channels []string, callback WSMessageCallback) (*WebSocketFeed, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	}
	u.Path = WSPath
	return &WebSocketFeed{
		url:      u.String(),
		signer:   signer,
		channels: channels,
		callback: callback,
	}, nil
}

func (w *WebSocketFeed) URL() string {
	return w.url
}

// Run dials, subscribes and pumps messages into the callback until ctx is done
// or the connection fails.
func (w *WebSocketFeed) Run(ctx context.Context) error {
	if w.signer == nil {
		return ErrAuthUnavailable
	}
	headers, err := CreateAuthHeaders(w.signer, http.MethodGet, WSPath, time.Now())
	if err != nil {
		return err
	}
	header := http.Header{}
	for key, value := range headers {
		header.Set(key, value)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, w.url, header)
	if err != nil {
		return fmt.Errorf("websocket handshake failed: %w res:%v", err, resp)
	}

	w.mu.Lock()
	w.conn = conn
	w.mu.Unlock()
	defer conn.Close()

	if len(w.channels) > 0 {
		if err := w.Subscribe(w.channels...); err != nil {
			return err
		}
	}

	done := make(chan struct{})
	defer close(done)
	go w.pingLoop(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		if w.callback != nil {
			w.callback(message)
		}
	}
}

func (w *WebSocketFeed) Subscribe(channels ...string) error {
	return w.command("subscribe", map[string]any{"channels": channels})
}

func (w *WebSocketFeed) command(cmd string, params map[string]any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn == nil {
		return fmt.Errorf("websocket not connected")
	}
	w.nextID++
	payload := map[string]any{
		"id":     w.nextID,
		"cmd":    cmd,
		"params": params,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return w.conn.WriteMessage(websocket.TextMessage, data)
}

func (w *WebSocketFeed) pingLoop(done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			w.mu.Lock()
			err := w.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(pingInterval))
			w.mu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

type wsEnvelope struct {
	Type string          `json:"type"`
	SID  int             `json:"sid"`
	Msg  json.RawMessage `json:"msg"`
}

// ParseFill decodes a websocket message. ok is false for anything other than
// a fill.
func ParseFill(message []byte) (Fill, bool, error) {
	var env wsEnvelope
	if err := json.Unmarshal(message, &env); err != nil {
		return Fill{}, false, err
	}
	if env.Type != FillChannel {
		return Fill{}, false, nil
	}
	var fill Fill
	if err := json.Unmarshal(env.Msg, &fill); err != nil {
		return Fill{}, false, fmt.Errorf("decode fill: %w", err)
	}
	return fill, true, nil
}
