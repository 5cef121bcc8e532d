package mpd

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// listOK terminates each response inside a command_list_ok_begin list
const listOK = "list_OK\n"

// beginCommandList switches the session into collecting mode
func (sess *Session) beginCommandList(mode listMode) {
	sess.listMode = mode
	sess.listLines = sess.listLines[:0]
}

// endCommandList runs the collected commands and writes their responses.
//
// The whole list executes under one hold of the global lock, so no other
// connection observes a partially applied list. Execution stops at the first
// failing command; its ACK carries the command's position in the list and
// replaces the final OK. Lines after the failure were already read off the
// socket and are discarded.
func (s *Server) endCommandList(sess *Session) error {
	lines := sess.listLines
	acked := sess.listMode == listAcked
	sess.listMode = listOff
	sess.listLines = nil

	var out strings.Builder
	failed := false

	s.mu.Lock()
	for i, line := range lines {
		resp, perr := s.dispatchLocked(sess, line, i)
		if perr != nil {
			out.WriteString(perr.Error() + "\n")
			failed = true
			log.Debug().
				Uint64("session", sess.id).
				Int("index", i).
				Int("skipped", len(lines)-i-1).
				Msg("Command list aborted")
			break
		}
		out.WriteString(resp.String())
		if acked {
			out.WriteString(listOK)
		}
	}
	s.mu.Unlock()

	if !failed {
		out.WriteString("OK\n")
	}

	// written outside the lock: network I/O never happens while holding it
	return sess.write(out.String())
}
