package graphql

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// graphql-transport-ws protocol message types.
const (
	wsProtocol       = "graphql-transport-ws"
	wsConnectionInit = "connection_init"
	wsConnectionAck  = "connection_ack"
	wsSubscribe      = "subscribe"
	wsNext           = "next"
	wsError          = "error"
	wsComplete       = "complete"
	wsPing           = "ping"
	wsPong           = "pong"
)

const (
	wsAckTimeout       = 2 * time.Second
	wsHandshakeTimeout = 10 * time.Second
)

type wsMessage struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type subscribePayload struct {
	Query         string `json:"query"`
	OperationName string `json:"operationName,omitempty"`
}

// SubscriptionHandler receives the data payload of one "next" message.
type SubscriptionHandler func(data json.RawMessage)

// SubscriptionClient maintains one graphql-transport-ws connection and
// dispatches subscription payloads to registered handlers. Handlers do
// not survive a reconnect; callers watching Done must resubscribe after
// calling Connect again.
type SubscriptionClient struct {
	wsURL    string
	apiKey   string
	insecure bool

	mu       sync.Mutex
	writeMu  sync.Mutex // gorilla permits a single concurrent writer
	conn     *websocket.Conn
	handlers map[string]SubscriptionHandler
	done     chan struct{}
}

// NewSubscriptionClient builds a subscription client for the GraphQL
// endpoint (an http or https URL, converted to ws/wss).
func NewSubscriptionClient(endpoint, apiKey string, insecure bool) (*SubscriptionClient, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", errInvalidEndpoint, endpoint, err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return nil, fmt.Errorf("%w: %q", errInvalidEndpoint, endpoint)
	}

	return &SubscriptionClient{
		wsURL:    u.String(),
		apiKey:   apiKey,
		insecure: insecure,
		handlers: make(map[string]SubscriptionHandler),
	}, nil
}

// Connect dials the server, performs the connection_init handshake, and
// starts the read loop.
func (s *SubscriptionClient) Connect(ctx context.Context) error {
	s.mu.Lock()
	if s.conn != nil {
		s.mu.Unlock()
		return errAlreadyStarted
	}

	apiKey := s.apiKey
	s.mu.Unlock()

	dialer := websocket.Dialer{
		Subprotocols:     []string{wsProtocol},
		HandshakeTimeout: wsHandshakeTimeout,
	}
	if s.insecure {
		dialer.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // mirrors the HTTP transport fallback
	}

	conn, resp, err := dialer.DialContext(ctx, s.wsURL, nil)
	if err != nil {
		return fmt.Errorf("websocket dial %s: %w", s.wsURL, err)
	}

	if resp != nil && resp.Body != nil {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Printf("Error closing websocket handshake body: %v", closeErr)
		}
	}

	if err := s.handshake(conn, apiKey); err != nil {
		_ = conn.Close()
		return err
	}

	s.mu.Lock()
	s.conn = conn
	s.handlers = make(map[string]SubscriptionHandler)
	s.done = make(chan struct{})
	s.mu.Unlock()

	go s.readLoop(conn)

	return nil
}

func (*SubscriptionClient) handshake(conn *websocket.Conn, apiKey string) error {
	initPayload, err := json.Marshal(map[string]string{"x-api-key": apiKey})
	if err != nil {
		return fmt.Errorf("marshal connection_init payload: %w", err)
	}

	if err := conn.WriteJSON(&wsMessage{Type: wsConnectionInit, Payload: initPayload}); err != nil {
		return fmt.Errorf("send connection_init: %w", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(wsAckTimeout)); err != nil {
		return err
	}

	var ack wsMessage
	if err := conn.ReadJSON(&ack); err != nil {
		return fmt.Errorf("%w: %w", errAckTimeout, err)
	}

	if ack.Type != wsConnectionAck {
		return fmt.Errorf("%w: got %q", errUnexpectedAck, ack.Type)
	}

	return conn.SetReadDeadline(time.Time{})
}

// Subscribe registers a handler and sends the subscribe operation.
// The returned operation ID can be passed to Unsubscribe.
func (s *SubscriptionClient) Subscribe(query, operationName string, handler SubscriptionHandler) (string, error) {
	opID := uuid.NewString()

	payload, err := json.Marshal(subscribePayload{Query: query, OperationName: operationName})
	if err != nil {
		return "", fmt.Errorf("marshal subscribe payload: %w", err)
	}

	s.mu.Lock()
	if s.conn == nil {
		s.mu.Unlock()
		return "", errNotConnected
	}

	s.handlers[opID] = handler
	s.mu.Unlock()

	if err := s.writeMessage(&wsMessage{ID: opID, Type: wsSubscribe, Payload: payload}); err != nil {
		s.dropHandler(opID)
		return "", fmt.Errorf("send subscribe: %w", err)
	}

	return opID, nil
}

// Unsubscribe completes the operation and removes its handler. Unknown
// IDs are a no-op.
func (s *SubscriptionClient) Unsubscribe(opID string) error {
	if !s.dropHandler(opID) {
		return nil
	}

	return s.writeMessage(&wsMessage{ID: opID, Type: wsComplete})
}

// Done is closed when the connection is lost. A new Connect call
// replaces the channel.
func (s *SubscriptionClient) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.done
}

// UpdateAPIKey swaps the credential used by the next Connect.
func (s *SubscriptionClient) UpdateAPIKey(apiKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.apiKey = apiKey
}

// Close tears down the connection. The read loop closes Done shortly
// after.
func (s *SubscriptionClient) Close() error {
	s.mu.Lock()
	conn := s.conn
	s.conn = nil
	s.handlers = make(map[string]SubscriptionHandler)
	s.mu.Unlock()

	if conn == nil {
		return nil
	}

	return conn.Close()
}

func (s *SubscriptionClient) readLoop(conn *websocket.Conn) {
	defer func() {
		s.mu.Lock()
		if s.conn == conn {
			s.conn = nil
		}

		done := s.done
		s.mu.Unlock()

		if done != nil {
			close(done)
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Printf("Websocket read loop ended: %v", err)
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("Ignoring malformed websocket message: %v", err)
			continue
		}

		s.dispatch(&msg)
	}
}

func (s *SubscriptionClient) dispatch(msg *wsMessage) {
	switch msg.Type {
	case wsNext:
		var payload struct {
			Data json.RawMessage `json:"data"`
		}

		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			log.Printf("Malformed next payload for operation %s: %v", msg.ID, err)
			return
		}

		s.mu.Lock()
		handler := s.handlers[msg.ID]
		s.mu.Unlock()

		if handler != nil {
			handler(payload.Data)
		}
	case wsPing:
		if err := s.writeMessage(&wsMessage{Type: wsPong}); err != nil {
			log.Printf("Failed to answer websocket ping: %v", err)
		}
	case wsError:
		log.Printf("Subscription %s failed: %s", msg.ID, string(msg.Payload))
		s.dropHandler(msg.ID)
	case wsComplete:
		s.dropHandler(msg.ID)
	}
}

func (s *SubscriptionClient) writeMessage(msg *wsMessage) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	if conn == nil {
		return errNotConnected
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return conn.WriteJSON(msg)
}

func (s *SubscriptionClient) dropHandler(opID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.handlers[opID]; !ok {
		return false
	}

	delete(s.handlers, opID)

	return true
}
