package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/ledgerline/ynab-mcp/internal/platform/id"
	"github.com/ledgerline/ynab-mcp/internal/platform/timeouts"
	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// sessionHeader carries the session identifier between HTTP requests.
const sessionHeader = "X-MCP-Session-ID"

// HTTPTransport implements mcp.Transport over plain HTTP. JSON-RPC messages
// arrive as POST bodies and server-initiated messages stream out over
// Server-Sent Events.
//
// TODO: Require a bearer token on the /mcp endpoints before binding beyond localhost.
type HTTPTransport struct {
	addr         string
	server       *mcp.Server
	sessions     map[string]*httpSession
	sessionsMu   sync.RWMutex
	httpServer   *http.Server
	serverCtx    context.Context
	serverCancel context.CancelFunc
	serverOnceMu sync.Mutex
	serverOnce   map[string]*sync.Once
}

// httpSession tracks one HTTP client's connection.
//
// TODO: Evict sessions idle past a deadline; lastUsed is tracked but nothing prunes yet.
type httpSession struct {
	id        string
	conn      *httpConnection
	createdAt time.Time
	lastUsed  time.Time
}

// httpConnection implements mcp.Connection for HTTP-based sessions.
type httpConnection struct {
	sessionID  string
	reqChan    chan jsonrpc.Message
	respChan   chan jsonrpc.Message
	closed     chan struct{}
	mu         sync.Mutex
	closedFlag bool
}

// NewHTTPTransport creates an HTTP transport that listens on addr.
func NewHTTPTransport(addr string) *HTTPTransport {
	// Localhost-only default; the listener carries no authentication.
	if addr == "" {
		addr = "localhost:8081"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &HTTPTransport{
		addr:         addr,
		sessions:     make(map[string]*httpSession),
		serverCtx:    ctx,
		serverCancel: cancel,
		serverOnce:   make(map[string]*sync.Once),
	}
}

// NewHTTPTransportWithServer creates an HTTP transport bound to an MCP server.
func NewHTTPTransportWithServer(addr string, server *mcp.Server) *HTTPTransport {
	transport := NewHTTPTransport(addr)
	transport.server = server
	return transport
}

// Connect implements mcp.Transport. Each call opens a session whose channels
// bridge HTTP requests to the MCP server's run loop.
func (t *HTTPTransport) Connect(ctx context.Context) (mcp.Connection, error) {
	conn := &httpConnection{
		sessionID: newSessionID(),
		reqChan:   make(chan jsonrpc.Message, 10),
		respChan:  make(chan jsonrpc.Message, 10),
		closed:    make(chan struct{}),
	}

	now := time.Now()
	session := &httpSession{
		id:        conn.sessionID,
		conn:      conn,
		createdAt: now,
		lastUsed:  now,
	}

	t.sessionsMu.Lock()
	t.sessions[conn.sessionID] = session
	t.sessionsMu.Unlock()

	return conn, nil
}

// Start runs the HTTP server until the context ends or the listener fails.
func (t *HTTPTransport) Start(ctx context.Context) error {
	// Reparent the session context so cancelling ctx also stops every
	// per-session MCP run loop.
	t.serverCtx, t.serverCancel = context.WithCancel(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/mcp/messages", t.handleMessages)
	mux.HandleFunc("/mcp/sse", t.handleSSE)
	mux.HandleFunc("/mcp/health", t.handleHealth)

	t.httpServer = &http.Server{
		Addr:              t.addr,
		Handler:           mux,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	log.Printf("Starting MCP HTTP server on %s", t.addr)

	errChan := make(chan error, 1)
	go func() {
		if err := t.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Printf("Shutting down MCP HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := t.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown HTTP server: %w", err)
		}
		if t.serverCancel != nil {
			t.serverCancel()
		}
		return nil
	case err := <-errChan:
		return fmt.Errorf("HTTP server error: %w", err)
	}
}

// lookupSession finds an existing session by identifier.
func (t *HTTPTransport) lookupSession(sessionID string) *httpSession {
	if sessionID == "" {
		return nil
	}
	t.sessionsMu.RLock()
	defer t.sessionsMu.RUnlock()
	return t.sessions[sessionID]
}

// getOrCreateSession resolves the session named by sessionID, creating a
// fresh one when the identifier is blank or unknown.
func (t *HTTPTransport) getOrCreateSession(ctx context.Context, sessionID string) (*httpSession, error) {
	if session := t.lookupSession(sessionID); session != nil {
		return session, nil
	}
	conn, err := t.Connect(ctx)
	if err != nil {
		return nil, err
	}
	session := t.lookupSession(conn.SessionID())
	if session == nil {
		return nil, fmt.Errorf("session %s disappeared after connect", conn.SessionID())
	}
	return session, nil
}

// touchSession records that the session handled a request.
func (t *HTTPTransport) touchSession(session *httpSession) {
	t.sessionsMu.Lock()
	session.lastUsed = time.Now()
	t.sessionsMu.Unlock()
}

// handleMessages handles POST /mcp/messages for JSON-RPC requests. Requests
// carrying an ID block until a response is available; notifications return
// immediately with no content.
func (t *HTTPTransport) handleMessages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := t.getOrCreateSession(r.Context(), r.Header.Get(sessionHeader))
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to create session: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set(sessionHeader, session.id)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to read request: %v", err), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	msg, err := jsonrpc.DecodeMessage(body)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON-RPC message: %v", err), http.StatusBadRequest)
		return
	}

	t.touchSession(session)

	// The MCP run loop for this session starts on first use and keeps
	// draining reqChan afterwards.
	t.ensureServerRunning(session)

	select {
	case session.conn.reqChan <- msg:
	case <-r.Context().Done():
		http.Error(w, "Request cancelled", http.StatusRequestTimeout)
		return
	}

	// Only requests with an ID expect a response on this round trip.
	var isRequest bool
	switch v := msg.(type) {
	case *jsonrpc.Request:
		isRequest = v.ID != jsonrpc.ID{}
	case *jsonrpc.Response:
		http.Error(w, "Invalid message type: response", http.StatusBadRequest)
		return
	default:
		isRequest = true
	}

	if !isRequest {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	select {
	case resp := <-session.conn.respChan:
		data, err := jsonrpc.EncodeMessage(resp)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to encode response: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write(data); err != nil {
			log.Printf("Failed to write response: %v", err)
		}
	case <-r.Context().Done():
		http.Error(w, "Request cancelled", http.StatusRequestTimeout)
	}
}

// handleSSE handles GET /mcp/sse and streams server-initiated messages, such
// as resource update notifications, to the session named by the "session"
// query parameter.
func (t *HTTPTransport) handleSSE(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := t.getOrCreateSession(r.Context(), r.URL.Query().Get("session"))
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to create session: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set(sessionHeader, session.id)

	flusher, _ := w.(http.Flusher)
	if flusher != nil {
		flusher.Flush()
	}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-session.conn.closed:
			return
		case msg := <-session.conn.respChan:
			data, err := jsonrpc.EncodeMessage(msg)
			if err != nil {
				log.Printf("Failed to encode SSE message: %v", err)
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}

// handleHealth handles GET /mcp/health for liveness checks.
func (t *HTTPTransport) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		log.Printf("Failed to write health response: %v", err)
	}
}

// Read implements mcp.Connection. It hands the MCP server the next message
// posted to this session.
func (c *httpConnection) Read(ctx context.Context) (jsonrpc.Message, error) {
	select {
	case msg := <-c.reqChan:
		return msg, nil
	case <-c.closed:
		return nil, fmt.Errorf("connection closed")
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Write implements mcp.Connection. Messages queue on the response channel
// until the POST round trip or the SSE stream picks them up.
func (c *httpConnection) Write(ctx context.Context, msg jsonrpc.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closedFlag {
		return fmt.Errorf("connection closed")
	}

	select {
	case c.respChan <- msg:
		return nil
	case <-c.closed:
		return fmt.Errorf("connection closed")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close implements mcp.Connection.
func (c *httpConnection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closedFlag {
		return nil
	}

	c.closedFlag = true
	close(c.closed)
	return nil
}

// SessionID implements mcp.Connection.
func (c *httpConnection) SessionID() string {
	return c.sessionID
}

// ensureServerRunning starts the MCP run loop for the session exactly once.
// The loop reads from reqChan and writes to respChan until the server
// context ends.
func (t *HTTPTransport) ensureServerRunning(session *httpSession) {
	if t.server == nil {
		return
	}

	t.serverOnceMu.Lock()
	once, exists := t.serverOnce[session.id]
	if !exists {
		once = &sync.Once{}
		t.serverOnce[session.id] = once
	}
	t.serverOnceMu.Unlock()

	once.Do(func() {
		transport := &sessionTransport{conn: session.conn}
		go func() {
			if err := t.server.Run(t.serverCtx, transport); err != nil && t.serverCtx.Err() == nil {
				log.Printf("MCP session %s ended: %v", session.id, err)
			}
		}()
	})
}

// sessionTransport adapts a live connection to mcp.Transport so Server.Run
// can drive a session that already exists.
type sessionTransport struct {
	conn mcp.Connection
}

// Connect implements mcp.Transport by returning the pre-built connection.
func (st *sessionTransport) Connect(ctx context.Context) (mcp.Connection, error) {
	return st.conn, nil
}

// newSessionID returns a unique session identifier.
func newSessionID() string {
	sid, err := id.NewID()
	if err != nil {
		// Keeps sessions distinguishable if the randomness source fails.
		return fmt.Sprintf("session_%d", time.Now().UnixNano())
	}
	return sid
}
