package relay

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Server is a minimal relay hub: every message received from one connection
// is rebroadcast verbatim to all other connections. It keeps no history and
// never acknowledges, so a participant that connects late starts from an
// empty view, consistent with the bus's at-most-once design.
type Server struct {
	upgrader websocket.Upgrader

	mu     sync.Mutex
	conns  map[*serverConn]struct{}
	closed bool
}

type serverConn struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func NewServer() *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		conns: map[*serverConn]struct{}{},
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "relay connection")
	defer span.End()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("Failed to upgrade relay connection", "error", err)
		return
	}

	sc := &serverConn{conn: conn}
	if !s.attach(sc) {
		_ = conn.Close()
		return
	}
	defer s.detach(sc)

	s.readPump(ctx, sc)
}

func (s *Server) attach(sc *serverConn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	s.conns[sc] = struct{}{}
	return true
}

func (s *Server) detach(sc *serverConn) {
	s.mu.Lock()
	delete(s.conns, sc)
	s.mu.Unlock()

	_ = sc.conn.Close()
}

func (s *Server) readPump(_ context.Context, from *serverConn) {
	for {
		msgType, msg, err := from.conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		s.broadcast(from, msg)
	}
}

func (s *Server) broadcast(from *serverConn, msg []byte) {
	s.mu.Lock()
	conns := make([]*serverConn, 0, len(s.conns))
	for sc := range s.conns {
		if sc != from {
			conns = append(conns, sc)
		}
	}
	s.mu.Unlock()

	for _, sc := range conns {
		sc.writeMu.Lock()
		err := sc.conn.WriteMessage(websocket.TextMessage, msg)
		sc.writeMu.Unlock()
		if err != nil {
			// Best-effort fan-out: a dead subscriber loses the event.
			logger.Debug("Dropping relay subscriber after write failure", "error", err)
		}
	}
}

// Close drops every connection. In-flight events may be lost.
func (s *Server) Close() error {
	s.mu.Lock()
	s.closed = true
	conns := make([]*serverConn, 0, len(s.conns))
	for sc := range s.conns {
		conns = append(conns, sc)
	}
	s.conns = map[*serverConn]struct{}{}
	s.mu.Unlock()

	for _, sc := range conns {
		_ = sc.conn.Close()
	}
	return nil
}
