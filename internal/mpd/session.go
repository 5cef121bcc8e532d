package mpd

import (
	"bufio"
	"net"
)

// listMode tracks whether a session is collecting a command list
type listMode int

const (
	listOff listMode = iota
	listSilent
	listAcked
)

// Session is the server-side state of one client connection.
//
// Fields marked "guarded" are only touched with Server.mu held. The rest
// belong to the connection goroutine.
type Session struct {
	id   uint64
	conn net.Conn
	w    *bufio.Writer

	// lines delivers client input from the reader goroutine; closed on EOF
	lines chan string
	// done stops the reader goroutine when the session ends first
	done chan struct{}

	listMode  listMode
	listLines []string

	// guarded
	args              []Arg
	command           string
	events            []Subsystem // pending, in arrival order, no duplicates
	wake              chan struct{}
	suppressNextEvent bool
	extraEvents       []Subsystem
	tagTypes          map[string]bool
	closed            bool
}

func newSession(id uint64, conn net.Conn) *Session {
	return &Session{
		id:       id,
		conn:     conn,
		w:        bufio.NewWriter(conn),
		lines:    make(chan string),
		done:     make(chan struct{}),
		wake:     make(chan struct{}, 1),
		tagTypes: defaultTagTypes(),
	}
}

// readLoop feeds client lines into sess.lines until EOF or session end
func (sess *Session) readLoop() {
	defer close(sess.lines)

	scanner := bufio.NewScanner(sess.conn)
	for scanner.Scan() {
		select {
		case sess.lines <- scanner.Text():
		case <-sess.done:
			return
		}
	}
}

// addEvents merges categories into the pending set. Caller holds Server.mu.
func (sess *Session) addEvents(events []Subsystem) {
	for _, ev := range events {
		if !containsSubsystem(sess.events, ev) {
			sess.events = append(sess.events, ev)
		}
	}
}

// takeEvents removes and returns pending events accepted by filter (all
// events when filter is empty). Caller holds Server.mu.
func (sess *Session) takeEvents(filter []Subsystem) []Subsystem {
	if len(filter) == 0 {
		events := sess.events
		sess.events = nil
		return events
	}

	var taken, kept []Subsystem
	for _, ev := range sess.events {
		if containsSubsystem(filter, ev) {
			taken = append(taken, ev)
		} else {
			kept = append(kept, ev)
		}
	}
	sess.events = kept
	return taken
}

// signal wakes the session's idle wait without blocking. Caller holds Server.mu.
func (sess *Session) signal() {
	if sess.closed {
		return
	}
	select {
	case sess.wake <- struct{}{}:
	default:
	}
}

// write sends raw protocol text to the client
func (sess *Session) write(text string) error {
	if _, err := sess.w.WriteString(text); err != nil {
		return err
	}
	return sess.w.Flush()
}

// writeResult writes a successful response or its ACK
func (sess *Session) writeResult(resp *Response, err *ProtocolError) error {
	if err != nil {
		return sess.write(err.Error() + "\n")
	}
	return sess.write(resp.String() + "OK\n")
}
