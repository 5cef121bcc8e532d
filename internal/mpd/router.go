package mpd

import (
	"github.com/rs/zerolog/log"

	"github.com/famish99/fakempd/internal/player"
)

// call is the context a command handler runs with. It is only valid during
// one dispatch, with the global lock held.
type call struct {
	server  *Server
	session *Session
	state   *player.State
	args    []Arg
}

// SuppressEvent marks this invocation as a no-op: no broadcast follows
func (c *call) SuppressEvent() {
	c.session.suppressNextEvent = true
}

// Notify adds categories to the broadcast that follows this invocation
func (c *call) Notify(subsystems ...Subsystem) {
	c.session.extraEvents = append(c.session.extraEvents, subsystems...)
}

type handlerFunc func(*Server, *call) (*Response, error)

// command is one registry entry. maxArgs < 0 means unbounded.
type command struct {
	minArgs int
	maxArgs int
	handler handlerFunc
	events  []Subsystem
}

var (
	noEvents       []Subsystem
	queueEvents    = []Subsystem{SubsystemPlaylist}
	playerEvents   = []Subsystem{SubsystemPlayer}
	optionsEvents  = []Subsystem{SubsystemOptions}
	mixerEvents    = []Subsystem{SubsystemMixer}
	outputEvents   = []Subsystem{SubsystemOutput}
	storedPlEvents = []Subsystem{SubsystemStoredPlaylist}
)

// commands is the static command registry
var commands = map[string]command{
	"ping":        {0, 0, (*Server).cmdPing, noEvents},
	"status":      {0, 0, (*Server).cmdStatus, noEvents},
	"currentsong": {0, 0, (*Server).cmdCurrentSong, noEvents},
	"stats":       {0, 0, (*Server).cmdStats, noEvents},
	"tagtypes":    {0, -1, (*Server).cmdTagTypes, noEvents},
	"decoders":    {0, 0, (*Server).cmdDecoders, noEvents},

	"add":          {1, 1, (*Server).cmdAdd, queueEvents},
	"addid":        {1, 2, (*Server).cmdAddID, queueEvents},
	"clear":        {0, 0, (*Server).cmdClear, queueEvents},
	"delete":       {1, 1, (*Server).cmdDelete, queueEvents},
	"deleteid":     {1, 1, (*Server).cmdDeleteID, queueEvents},
	"playlistinfo": {0, 1, (*Server).cmdPlaylistInfo, noEvents},
	"playlistid":   {0, 1, (*Server).cmdPlaylistID, noEvents},
	"plchanges":    {1, 1, (*Server).cmdPlChanges, noEvents},

	"consume":   {1, 1, (*Server).cmdConsume, optionsEvents},
	"random":    {1, 1, (*Server).cmdRandom, optionsEvents},
	"single":    {1, 1, (*Server).cmdSingle, optionsEvents},
	"repeat":    {1, 1, (*Server).cmdRepeat, optionsEvents},
	"crossfade": {1, 1, (*Server).cmdCrossfade, optionsEvents},
	"setvol":    {1, 1, (*Server).cmdSetVol, mixerEvents},

	"play":     {0, 1, (*Server).cmdPlay, playerEvents},
	"playid":   {0, 1, (*Server).cmdPlayID, playerEvents},
	"pause":    {0, 1, (*Server).cmdPause, playerEvents},
	"stop":     {0, 0, (*Server).cmdStop, playerEvents},
	"next":     {0, 0, (*Server).cmdNext, playerEvents},
	"previous": {0, 0, (*Server).cmdPrevious, playerEvents},
	"seek":     {2, 2, (*Server).cmdSeek, playerEvents},
	"seekid":   {2, 2, (*Server).cmdSeekID, playerEvents},
	"seekcur":  {1, 1, (*Server).cmdSeekCur, playerEvents},

	"outputs":       {0, 0, (*Server).cmdOutputs, noEvents},
	"enableoutput":  {1, 1, (*Server).cmdEnableOutput, outputEvents},
	"disableoutput": {1, 1, (*Server).cmdDisableOutput, outputEvents},
	"toggleoutput":  {1, 1, (*Server).cmdToggleOutput, outputEvents},

	"listplaylists":    {0, 0, (*Server).cmdListPlaylists, noEvents},
	"listplaylist":     {1, 1, (*Server).cmdListPlaylist, noEvents},
	"listplaylistinfo": {1, 1, (*Server).cmdListPlaylistInfo, noEvents},
	"save":             {1, 1, (*Server).cmdSave, storedPlEvents},
	"load":             {1, 1, (*Server).cmdLoad, queueEvents},
	"rm":               {1, 1, (*Server).cmdRm, storedPlEvents},
	"playlistadd":      {2, 2, (*Server).cmdPlaylistAdd, storedPlEvents},
	"playlistclear":    {1, 1, (*Server).cmdPlaylistClear, storedPlEvents},

	"listall":     {0, 1, (*Server).cmdListAll, noEvents},
	"listallinfo": {0, 1, (*Server).cmdListAllInfo, noEvents},
	"lsinfo":      {0, 1, (*Server).cmdLsInfo, noEvents},
}

// unimplemented commands are accepted with an empty OK
var unimplemented = map[string]bool{
	"password":         true,
	"update":           true,
	"rescan":           true,
	"replay_gain_mode": true,
	"mixrampdb":        true,
	"mixrampdelay":     true,
	"clearerror":       true,
	"subscribe":        true,
	"unsubscribe":      true,
	"sendmessage":      true,
	"readmessages":     true,
	"channels":         true,
	"urlhandlers":      true,
	"config":           true,
	"commands":         true,
	"notcommands":      true,
	"binarylimit":      true,
}

// connectionCommands are handled by the session loop, never the registry
var connectionCommands = map[string]bool{
	"idle":                  true,
	"noidle":                true,
	"close":                 true,
	"kill":                  true,
	"command_list_begin":    true,
	"command_list_ok_begin": true,
	"command_list_end":      true,
}

// dispatch runs one request line under the global lock
func (s *Server) dispatch(sess *Session, line string) (*Response, *ProtocolError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatchLocked(sess, line, 0)
}

// dispatchLocked parses line, validates arity, runs the handler and
// broadcasts its events. index is the command's position within a command
// list. Caller holds s.mu.
func (s *Server) dispatchLocked(sess *Session, line string, index int) (*Response, *ProtocolError) {
	sess.command = ""

	name, args, err := parseLine(line)
	if err != nil {
		return nil, toProtocolError(err, "", index)
	}
	if name == "" {
		return nil, &ProtocolError{Code: ErrorArgument, Index: index, Message: "no command given"}
	}

	cmd, ok := commands[name]
	if !ok {
		if unimplemented[name] {
			log.Debug().Uint64("session", sess.id).Str("command", name).Msg("Ignoring unimplemented command")
			return &Response{}, nil
		}
		if connectionCommands[name] {
			return nil, &ProtocolError{
				Code:    ErrorArgument,
				Index:   index,
				Command: name,
				Message: "not allowed in command list",
			}
		}
		return nil, &ProtocolError{
			Code:    ErrorArgument,
			Index:   index,
			Message: "unknown command \"" + name + "\"",
		}
	}

	sess.command = name
	if len(args) < cmd.minArgs || (cmd.maxArgs >= 0 && len(args) > cmd.maxArgs) {
		return nil, &ProtocolError{
			Code:    ErrorArgument,
			Index:   index,
			Command: name,
			Message: "wrong number of arguments for \"" + name + "\"",
		}
	}

	log.Debug().Uint64("session", sess.id).Str("command", name).Int("args", len(args)).Msg("MPD command")

	sess.args = args
	sess.suppressNextEvent = false
	sess.extraEvents = nil
	defer func() {
		sess.args = nil
		sess.extraEvents = nil
	}()

	c := &call{server: s, session: sess, state: s.state, args: args}
	resp, err := cmd.handler(s, c)
	if err != nil {
		return nil, toProtocolError(err, name, index)
	}
	if resp == nil {
		resp = &Response{}
	}

	if sess.suppressNextEvent {
		sess.suppressNextEvent = false
	} else {
		events := make([]Subsystem, 0, len(cmd.events)+len(sess.extraEvents))
		events = append(events, cmd.events...)
		events = append(events, sess.extraEvents...)
		s.broadcastLocked(events)
	}
	return resp, nil
}
