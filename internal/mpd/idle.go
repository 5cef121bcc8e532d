package mpd

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Subsystem is an event category reported by idle
type Subsystem string

const (
	// the song database has been modified
	SubsystemDatabase Subsystem = "database"
	// a database update has started or finished
	SubsystemUpdate Subsystem = "update"
	// a stored playlist has been modified, created or deleted
	SubsystemStoredPlaylist Subsystem = "stored_playlist"
	// the queue has been modified
	SubsystemPlaylist Subsystem = "playlist"
	// the player has been started, stopped or seeked
	SubsystemPlayer Subsystem = "player"
	// the volume has been changed
	SubsystemMixer Subsystem = "mixer"
	// an audio output has been enabled or disabled
	SubsystemOutput Subsystem = "output"
	// options like repeat, random, crossfade
	SubsystemOptions Subsystem = "options"
)

var knownSubsystems = []Subsystem{
	SubsystemDatabase,
	SubsystemUpdate,
	SubsystemStoredPlaylist,
	SubsystemPlaylist,
	SubsystemPlayer,
	SubsystemMixer,
	SubsystemOutput,
	SubsystemOptions,
}

func containsSubsystem(list []Subsystem, sub Subsystem) bool {
	for _, s := range list {
		if s == sub {
			return true
		}
	}
	return false
}

// parseSubsystems validates the arguments of an idle command
func parseSubsystems(args []Arg) ([]Subsystem, error) {
	var subs []Subsystem
	for _, arg := range args {
		sub := Subsystem(strings.ToLower(arg.Text))
		if !containsSubsystem(knownSubsystems, sub) {
			return nil, argumentError("Unrecognized idle event: %s", arg.Text)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// broadcastLocked queues events on every session, including the one that
// caused them, and wakes them. Caller holds s.mu.
func (s *Server) broadcastLocked(events []Subsystem) {
	if len(events) == 0 {
		return
	}

	for sess := range s.sessions {
		sess.addEvents(events)
		sess.signal()
	}

	log.Debug().
		Interface("events", events).
		Int("sessions", len(s.sessions)).
		Msg("Broadcast subsystem change")
}

// NotifySubsystemChange notifies every connection about subsystem changes
// made outside of a command handler
func (s *Server) NotifySubsystemChange(subsystems ...Subsystem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.broadcastLocked(subsystems)
}

// idle blocks until a pending event matches filter or the client sends
// input. It returns false when the connection must be closed.
func (s *Server) idle(sess *Session, filter []Subsystem) bool {
	for {
		s.mu.Lock()
		events := sess.takeEvents(filter)
		s.mu.Unlock()

		if len(events) > 0 {
			var out strings.Builder
			for _, ev := range events {
				fmt.Fprintf(&out, "changed: %s\n", ev)
			}
			out.WriteString("OK\n")
			return sess.write(out.String()) == nil
		}

		select {
		case <-sess.wake:
			// re-check pending events

		case line, ok := <-sess.lines:
			if !ok {
				return false
			}
			name := commandName(line)
			if name == "noidle" {
				return sess.write("OK\n") == nil
			}

			log.Warn().
				Uint64("session", sess.id).
				Str("command", name).
				Msg("Command received while idle, closing connection")
			fatal := &ProtocolError{
				Code:    ErrorConnectionClosed,
				Command: name,
				Message: `only "noidle" is allowed while idle`,
			}
			_ = sess.write(fatal.Error() + "\n")
			return false
		}
	}
}
