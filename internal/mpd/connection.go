package mpd

import (
	"fmt"
	"net"
	"strings"

	"github.com/rs/zerolog/log"
)

// handleConnection handles a single MPD client connection
func (s *Server) handleConnection(conn net.Conn) {
	sess := s.register(conn)
	defer s.unregister(sess)

	logger := log.With().
		Str("remote", conn.RemoteAddr().String()).
		Uint64("session", sess.id).
		Logger()
	logger.Info().Msg("New MPD client connected")

	// Send MPD greeting
	if err := sess.write(fmt.Sprintf("OK %s %s\n", Product, s.version)); err != nil {
		logger.Warn().Err(err).Msg("Failed to send greeting")
		return
	}

	go sess.readLoop()

	for line := range sess.lines {
		if !s.serveLine(sess, strings.TrimSpace(line)) {
			break
		}
	}

	logger.Info().Msg("MPD client disconnected")
}

// serveLine handles one input line. It returns false when the connection
// must end.
func (s *Server) serveLine(sess *Session, line string) bool {
	// Collecting a command list: everything up to the end marker is queued
	if sess.listMode != listOff {
		if commandName(line) == "command_list_end" {
			return s.endCommandList(sess) == nil
		}
		sess.listLines = append(sess.listLines, line)
		return true
	}

	switch commandName(line) {
	case "command_list_begin":
		sess.beginCommandList(listSilent)
		return true

	case "command_list_ok_begin":
		sess.beginCommandList(listAcked)
		return true

	case "command_list_end":
		perr := &ProtocolError{Code: ErrorArgument, Command: "command_list_end", Message: "not in command list"}
		return sess.writeResult(nil, perr) == nil

	case "idle":
		_, args, err := parseLine(line)
		if err != nil {
			return sess.writeResult(nil, toProtocolError(err, "idle", 0)) == nil
		}
		filter, err := parseSubsystems(args)
		if err != nil {
			return sess.writeResult(nil, toProtocolError(err, "idle", 0)) == nil
		}
		return s.idle(sess, filter)

	case "noidle":
		// not idling: nothing to cancel and nothing to answer
		return true

	case "close":
		return false

	case "kill":
		log.Info().Uint64("session", sess.id).Msg("Kill requested by client")
		_ = s.Stop()
		return false
	}

	resp, perr := s.dispatch(sess, line)
	if err := sess.writeResult(resp, perr); err != nil {
		log.Warn().Err(err).Uint64("session", sess.id).Msg("Write failed")
		return false
	}
	return true
}
