package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"moa/pkg/channels"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // decoupled UI, allow all origins
	},
}

// WebConfig maps the "web" entry of the channels config.
type WebConfig struct {
	Port int `json:"port"`
}

type incomingMessage struct {
	Text string `json:"text"`
}

type outgoingMessage struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// safeConn serializes concurrent writers onto one websocket connection.
type safeConn struct {
	*websocket.Conn
	mu sync.Mutex
}

func (sc *safeConn) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.Conn.WriteMessage(websocket.TextMessage, data)
}

// WebChannel exposes the pipeline over a websocket endpoint: one text
// message in, one synthesized answer out.
type WebChannel struct {
	config     WebConfig
	server     *http.Server
	stopCtx    context.Context
	stopCancel context.CancelFunc
}

// NewWebChannel creates a web channel listening on the configured port.
func NewWebChannel(cfg WebConfig) *WebChannel {
	ctx, cancel := context.WithCancel(context.Background())
	return &WebChannel{
		config:     cfg,
		stopCtx:    ctx,
		stopCancel: cancel,
	}
}

func (c *WebChannel) ID() string {
	return "web"
}

// Start implements channels.Channel.
func (c *WebChannel) Start(h channels.Handler) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		c.handleWebSocket(w, r, h)
	})

	addr := fmt.Sprintf(":%d", c.config.Port)
	c.server = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	slog.Info("Web API listening", "port", c.config.Port)

	go func() {
		if err := c.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Web API server error", "error", err)
		}
	}()

	return nil
}

// Stop implements channels.Channel. Cancelling stopCtx releases in-flight
// engine runs; closing the server alone would leave them waiting out their
// per-call timeout.
func (c *WebChannel) Stop() error {
	c.stopCancel()
	if c.server != nil {
		return c.server.Close()
	}
	return nil
}

func (c *WebChannel) handleWebSocket(w http.ResponseWriter, r *http.Request, h channels.Handler) {
	rawConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("WS upgrade failed", "error", err)
		return
	}

	conn := &safeConn{Conn: rawConn}
	defer conn.Close()

	session := channels.Session{
		ChannelID: "web",
		UserID:    r.RemoteAddr,
		ChatID:    "global",
		Username:  "WebUser",
	}

	for {
		_, msgBytes, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var content string
		var incoming incomingMessage
		if err := json.Unmarshal(msgBytes, &incoming); err == nil && incoming.Text != "" {
			content = incoming.Text
		} else {
			// Plain text fallback for minimal clients.
			content = string(msgBytes)
		}

		if err := conn.writeJSON(outgoingMessage{Type: "working"}); err != nil {
			break
		}

		answer := h(c.stopCtx, session, content)

		if err := conn.writeJSON(outgoingMessage{Type: "answer", Text: answer}); err != nil {
			break
		}
	}
}
