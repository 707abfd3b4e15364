// Package httpserver delivers the rendered projection to the browser and
// routes browser messages back to the editor.
package httpserver

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"mdlive/internal/contracts"
)

type renderPayload struct {
	html     string
	filename string
	rev      uint64
}

// Server coordinates HTTP serving and WebSocket updates. A single browser
// connection is kept; a new connection replaces the old one and immediately
// receives the latest render.
type Server struct {
	addr  string
	shell string

	// mu guards started, server and stopLoop: StartOrUpdate and Stop are
	// called from the host thread while the debounce timer goroutine
	// re-enters StartOrUpdate.
	mu      sync.Mutex
	started bool
	server  *http.Server

	// OnGoToLine is invoked when the browser requests a jump to a source line.
	OnGoToLine func(contracts.GoToLineMessage)

	browserInbound chan []byte
	updates        chan renderPayload
	cursors        chan contracts.CursorMessage
	register       chan *websocket.Conn
	unregister     chan *websocket.Conn
	stopLoop       chan struct{}

	upgrader websocket.Upgrader
}

// NewServer creates a preview server bound to addr, serving shell as the
// initial page.
func NewServer(addr, shell string) *Server {
	return &Server{
		addr:  addr,
		shell: shell,

		browserInbound: make(chan []byte, 64),
		updates:        make(chan renderPayload, 8),
		cursors:        make(chan contracts.CursorMessage, 32),
		register:       make(chan *websocket.Conn),
		unregister:     make(chan *websocket.Conn),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// URL returns the browser URL for the preview.
func (s *Server) URL() string {
	return "http://" + s.addr
}

// StartOrUpdate starts the server when it is not running and publishes a
// rendered fragment under the given revision token. A stopped server restarts
// with a fresh run loop.
func (s *Server) StartOrUpdate(fragment, filename string, rev uint64) error {
	s.mu.Lock()
	if !s.started {
		mux := http.NewServeMux()
		mux.HandleFunc("/", s.handleIndex)
		mux.HandleFunc("/ws", s.handleWS)

		srv := &http.Server{Addr: s.addr, Handler: mux}
		stop := make(chan struct{})
		s.server = srv
		s.stopLoop = stop
		s.started = true

		go s.runLoop(stop)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("[mdlive] preview server: %v", err)
			}
		}()
	}
	s.mu.Unlock()

	s.updates <- renderPayload{html: fragment, filename: filename, rev: rev}
	return nil
}

// UpdateCursor publishes a cursor update to the connected browser.
func (s *Server) UpdateCursor(msg contracts.CursorMessage) error {
	if !s.Running() {
		return nil
	}
	msg.Type = contracts.MessageTypeCursor
	s.cursors <- msg
	return nil
}

// Running reports whether the server is currently serving.
func (s *Server) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Stop gracefully shuts down the HTTP server and the run loop.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	close(s.stopLoop)

	s.started = false
	s.server = nil
	return err
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(s.shell))
}

// handleWS upgrades the connection and forwards browser messages to the run
// loop until the connection dies.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	s.register <- conn
	defer func() {
		s.unregister <- conn
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		s.browserInbound <- msg
	}
}

// runLoop serializes state updates and websocket writes on one goroutine.
// stop is the stop channel of the run this loop belongs to; a restart gets a
// fresh one.
func (s *Server) runLoop(stop <-chan struct{}) {
	var conn *websocket.Conn

	lastRender := contracts.RenderMessage{Type: contracts.MessageTypeRender}
	lastCursor := contracts.CursorMessage{Type: contracts.MessageTypeCursor}
	haveCursor := false

	for {
		select {
		case update := <-s.updates:
			if update.rev < lastRender.Rev {
				continue // stale render, a newer one already went out
			}
			lastRender.Rev = update.rev
			lastRender.HTML = update.html
			lastRender.Filename = update.filename

			if conn == nil {
				continue
			}
			if !writeJSON(conn, lastRender) {
				conn = nil
				continue
			}
			if haveCursor {
				lastCursor.Rev = lastRender.Rev
				if !writeJSON(conn, lastCursor) {
					conn = nil
				}
			}

		case cursor := <-s.cursors:
			lastCursor = cursor
			haveCursor = true

			if conn == nil || lastRender.Rev == 0 {
				continue
			}
			lastCursor.Rev = lastRender.Rev
			if !writeJSON(conn, lastCursor) {
				conn = nil
			}

		case c := <-s.register:
			if conn != nil {
				_ = conn.Close()
			}
			conn = c

			if !writeJSON(conn, lastRender) {
				conn = nil
				continue
			}
			if haveCursor && lastRender.Rev > 0 {
				lastCursor.Rev = lastRender.Rev
				if !writeJSON(conn, lastCursor) {
					conn = nil
				}
			}

		case c := <-s.unregister:
			if conn == c {
				_ = conn.Close()
				conn = nil
			}

		case raw := <-s.browserInbound:
			var envelope contracts.IncomingMessage
			if err := json.Unmarshal(raw, &envelope); err != nil {
				continue
			}
			if envelope.Type != contracts.MessageTypeGoToLine {
				continue
			}
			var msg contracts.GoToLineMessage
			if err := json.Unmarshal(raw, &msg); err != nil {
				continue
			}
			if s.OnGoToLine != nil {
				s.OnGoToLine(msg)
			}

		case <-stop:
			if conn != nil {
				_ = conn.Close()
			}
			return
		}
	}
}

// writeJSON writes a message and reports whether the connection is usable.
func writeJSON(conn *websocket.Conn, v any) bool {
	if err := conn.WriteJSON(v); err != nil {
		_ = conn.Close()
		return false
	}
	return true
}
