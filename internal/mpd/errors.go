package mpd

import (
	"errors"
	"fmt"

	"github.com/famish99/fakempd/internal/player"
)

// ErrorCode is the numeric error id carried in an ACK line
type ErrorCode int

const (
	ErrorSuccess ErrorCode = iota
	ErrorOutOfMemory
	ErrorArgument
	ErrorState
	ErrorTimeout
	ErrorSystem
	ErrorResolver
	ErrorMalformed
	ErrorConnectionClosed
	ErrorServer
)

var errorCodeNames = [...]string{
	"SUCCESS",
	"OUT_OF_MEMORY",
	"ARGUMENT",
	"STATE",
	"TIMEOUT",
	"SYSTEM",
	"RESOLVER",
	"MALFORMED",
	"CONNECTION_CLOSED",
	"SERVER",
}

func (c ErrorCode) String() string {
	if c < 0 || int(c) >= len(errorCodeNames) {
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
	return errorCodeNames[c]
}

// ProtocolError is a failure reported to the client as an ACK line
type ProtocolError struct {
	Code    ErrorCode
	Index   int    // position of the failing command within a command list
	Command string // command being processed, empty if none
	Message string
}

// Error renders the ACK line without its trailing newline
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("ACK [%d@%d] {%s} %s", int(e.Code), e.Index, e.Command, e.Message)
}

func newError(code ErrorCode, format string, args ...interface{}) *ProtocolError {
	return &ProtocolError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func argumentError(format string, args ...interface{}) *ProtocolError {
	return newError(ErrorArgument, format, args...)
}

// toProtocolError converts a handler failure into an ACK for command at index
func toProtocolError(err error, command string, index int) *ProtocolError {
	var perr *ProtocolError
	if errors.As(err, &perr) {
		out := *perr
		out.Command = command
		out.Index = index
		return &out
	}

	code := ErrorArgument
	if errors.Is(err, player.ErrNotPlaying) {
		code = ErrorState
	}
	return &ProtocolError{Code: code, Index: index, Command: command, Message: err.Error()}
}
