package mpd

import (
	"strings"
)

// cmdPing handles the 'ping' command
func (s *Server) cmdPing(_ *call) (*Response, error) {
	return nil, nil
}

// cmdStatus handles the 'status' command
func (s *Server) cmdStatus(c *call) (*Response, error) {
	var r Response
	formatStatus(&r, c.state.Status())
	return &r, nil
}

// cmdCurrentSong handles the 'currentsong' command
func (s *Server) cmdCurrentSong(c *call) (*Response, error) {
	track, ok := c.state.CurrentSong()
	if !ok {
		return nil, nil // No current song
	}

	var r Response
	formatTrackInfo(&r, &track, c.session.tagTypes)
	return &r, nil
}

// cmdStats handles the 'stats' command
func (s *Server) cmdStats(c *call) (*Response, error) {
	var r Response
	formatStats(&r, c.state.Stats())
	return &r, nil
}

// cmdOutputs handles the 'outputs' command
func (s *Server) cmdOutputs(c *call) (*Response, error) {
	var r Response
	formatOutputs(&r, c.state.Outputs())
	return &r, nil
}

// cmdEnableOutput handles 'enableoutput ID'
func (s *Server) cmdEnableOutput(c *call) (*Response, error) {
	return s.setOutput(c, true)
}

// cmdDisableOutput handles 'disableoutput ID'
func (s *Server) cmdDisableOutput(c *call) (*Response, error) {
	return s.setOutput(c, false)
}

func (s *Server) setOutput(c *call, enabled bool) (*Response, error) {
	id, err := parseUint(c.args[0], "output id")
	if err != nil {
		return nil, err
	}
	changed, err := c.state.SetOutput(id, enabled)
	if err != nil {
		return nil, err
	}
	if !changed {
		c.SuppressEvent()
	}
	return nil, nil
}

// cmdToggleOutput handles 'toggleoutput ID'
func (s *Server) cmdToggleOutput(c *call) (*Response, error) {
	id, err := parseUint(c.args[0], "output id")
	if err != nil {
		return nil, err
	}
	return nil, c.state.ToggleOutput(id)
}

// cmdTagTypes handles the 'tagtypes' command
// Controls which metadata tags this connection receives in song responses
func (s *Server) cmdTagTypes(c *call) (*Response, error) {
	enabled := c.session.tagTypes

	if len(c.args) == 0 {
		// List all enabled tag types
		var r Response
		for _, tag := range songTags {
			if enabled[strings.ToLower(tag.name)] {
				r.Field("tagtype", tag.name)
			}
		}
		return &r, nil
	}

	subcommand := strings.ToLower(c.args[0].Text)
	names := c.args[1:]

	switch subcommand {
	case "clear", "all":
		for tag := range enabled {
			enabled[tag] = subcommand == "all"
		}
		return nil, nil

	case "enable", "disable":
		if len(names) == 0 {
			return nil, argumentError("Not enough arguments")
		}
		for _, name := range names {
			tag := strings.ToLower(name.Text)
			if _, known := enabled[tag]; !known {
				return nil, argumentError("Unknown tag type: %s", name.Text)
			}
		}
		for _, name := range names {
			enabled[strings.ToLower(name.Text)] = subcommand == "enable"
		}
		return nil, nil

	default:
		return nil, argumentError("Unknown sub command: %s", c.args[0].Text)
	}
}

// cmdDecoders handles the 'decoders' command
func (s *Server) cmdDecoders(_ *call) (*Response, error) {
	var r Response
	formatDecoders(&r)
	return &r, nil
}
