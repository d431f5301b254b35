package yahoo

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/bobmcallan/yfinance-mcp/internal/common"
)

const defaultStreamURL = "wss://streamer.finance.yahoo.com/?version=2"

// Streamer subscribes to the Yahoo streaming quote feed.
type Streamer struct {
	url    string
	dialer *websocket.Dialer
	header http.Header
	logger *common.Logger
}

// StreamOption is a configuration option for Streamer.
type StreamOption func(*Streamer)

// WithStreamURL sets the websocket endpoint.
func WithStreamURL(u string) StreamOption {
	return func(s *Streamer) {
		if u != "" {
			s.url = u
		}
	}
}

// WithStreamLogger sets the streamer logger.
func WithStreamLogger(logger *common.Logger) StreamOption {
	return func(s *Streamer) {
		s.logger = logger
	}
}

// WithStreamUserAgent sets the User-Agent sent on the websocket handshake.
func WithStreamUserAgent(ua string) StreamOption {
	return func(s *Streamer) {
		if ua != "" {
			s.header.Set("User-Agent", ua)
		}
	}
}

// NewStreamer creates a Streamer.
func NewStreamer(options ...StreamOption) *Streamer {
	s := &Streamer{
		url:    defaultStreamURL,
		dialer: websocket.DefaultDialer,
		header: http.Header{},
		logger: common.NewSilentLogger(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Subscription is an open feed for a fixed set of symbols.
type Subscription struct {
	conn   *websocket.Conn
	logger *common.Logger
}

type subscribeMessage struct {
	Subscribe []string `json:"subscribe"`
}

type envelope struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Subscribe dials the feed and subscribes to symbols.
func (s *Streamer) Subscribe(ctx context.Context, symbols ...string) (*Subscription, error) {
	if len(symbols) == 0 {
		return nil, errors.New("yahoo stream: at least one symbol is required")
	}

	conn, _, err := s.dialer.DialContext(ctx, s.url, s.header)
	if err != nil {
		return nil, fmt.Errorf("yahoo stream dial: %w", err)
	}
	if err := conn.WriteJSON(subscribeMessage{Subscribe: symbols}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("yahoo stream subscribe: %w", err)
	}

	s.logger.Info().Strs("symbols", symbols).Str("url", s.url).Msg("Subscribed to Yahoo stream")
	return &Subscription{conn: conn, logger: s.logger}, nil
}

// Listen calls handler for every tick in arrival order until the stream
// closes, ctx is cancelled, or handler returns an error. A normal close
// from the server returns nil.
func (sub *Subscription) Listen(ctx context.Context, handler func(Tick) error) error {
	stop := context.AfterFunc(ctx, func() { sub.conn.Close() })
	defer stop()
	defer sub.conn.Close()

	for {
		_, data, err := sub.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("yahoo stream read: %w", err)
		}

		tick, err := decodeFrame(data)
		if err != nil {
			return err
		}
		if tick == nil {
			continue
		}
		if err := handler(tick); err != nil {
			return err
		}
	}
}

// Close closes the underlying connection.
func (sub *Subscription) Close() error {
	return sub.conn.Close()
}

// decodeFrame handles both the v2 JSON envelope and bare base64 frames.
// Non-pricing envelopes yield a nil tick.
func decodeFrame(data []byte) (Tick, error) {
	payload := strings.TrimSpace(string(data))
	if strings.HasPrefix(payload, "{") {
		var env envelope
		if err := json.Unmarshal([]byte(payload), &env); err != nil {
			return nil, fmt.Errorf("yahoo stream envelope: %w", err)
		}
		if env.Type != "" && env.Type != "pricing" {
			return nil, nil
		}
		payload = env.Message
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("yahoo stream base64: %w", err)
	}
	return DecodePricing(raw)
}
