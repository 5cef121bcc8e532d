package mpd

import (
	"fmt"
	"net"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/famish99/fakempd/internal/player"
)

// Product is the daemon name announced in the greeting line
const Product = "MPD"

// Server implements an emulated MPD protocol server
type Server struct {
	// mu is the global lock: it guards the shared state, the session set and
	// every session's pending events.
	mu       sync.Mutex
	state    *player.State
	sessions map[*Session]struct{}
	nextID   uint64

	runMu    sync.Mutex
	listener net.Listener
	addr     string
	version  string
	running  bool
	done     chan struct{}
}

// NewServer creates a new protocol server over state
func NewServer(addr, version string, state *player.State) *Server {
	return &Server{
		state:    state,
		sessions: make(map[*Session]struct{}),
		addr:     addr,
		version:  version,
		done:     make(chan struct{}),
	}
}

// Start starts listening and accepting connections
func (s *Server) Start() error {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if s.running {
		return fmt.Errorf("server already running")
	}
	select {
	case <-s.done:
		return fmt.Errorf("server already stopped")
	default:
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to start MPD server: %w", err)
	}

	s.listener = listener
	s.running = true

	log.Info().Str("addr", listener.Addr().String()).Msg("MPD server listening")

	go s.acceptLoop(listener)

	return nil
}

// Addr returns the bound listen address, nil before Start
func (s *Server) Addr() net.Addr {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop closes the listener and every open connection
func (s *Server) Stop() error {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false
	err := s.listener.Close()

	s.mu.Lock()
	for sess := range s.sessions {
		sess.conn.Close()
	}
	s.mu.Unlock()

	close(s.done)
	log.Info().Msg("MPD server stopped")
	return err
}

// Done is closed once the server has stopped, including through kill
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop(listener net.Listener) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			s.runMu.Lock()
			running := s.running
			s.runMu.Unlock()
			if !running {
				return
			}
			log.Warn().Err(err).Msg("Accept error")
			continue
		}

		go s.handleConnection(conn)
	}
}

// register adds a session for conn to the session set
func (s *Server) register(conn net.Conn) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	sess := newSession(s.nextID, conn)
	s.sessions[sess] = struct{}{}
	return sess
}

// unregister removes a session and releases its wake channel. Holding the
// lock keeps an in-flight broadcast from signalling a released channel.
func (s *Server) unregister(sess *Session) {
	s.mu.Lock()
	delete(s.sessions, sess)
	if !sess.closed {
		sess.closed = true
		close(sess.wake)
	}
	s.mu.Unlock()

	close(sess.done)
	sess.conn.Close()
}

// SessionCount returns the number of connected clients
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
