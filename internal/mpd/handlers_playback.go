package mpd

import (
	"github.com/famish99/fakempd/internal/player"
)

// cmdPlay handles the 'play' command
// play [POS] - start playback at optional position
func (s *Server) cmdPlay(c *call) (*Response, error) {
	pos := -1
	if len(c.args) > 0 {
		var err error
		if pos, err = parseUint(c.args[0], "position"); err != nil {
			return nil, err
		}
	}

	changed, err := c.state.Play(pos)
	if err != nil {
		return nil, err
	}
	if !changed {
		c.SuppressEvent()
	}
	return nil, nil
}

// cmdPlayID handles the 'playid' command
// playid [SONGID] - start playback of the song with SONGID
func (s *Server) cmdPlayID(c *call) (*Response, error) {
	id := -1
	if len(c.args) > 0 {
		var err error
		if id, err = parseInt(c.args[0], "song id"); err != nil {
			return nil, err
		}
	}

	changed, err := c.state.PlayID(id)
	if err != nil {
		return nil, err
	}
	if !changed {
		c.SuppressEvent()
	}
	return nil, nil
}

// cmdPause handles the 'pause' command
// pause 0 = resume, pause 1 = pause, no arg = toggle
func (s *Server) cmdPause(c *call) (*Response, error) {
	mode := player.PauseToggle
	if len(c.args) > 0 {
		pause, err := parseBool(c.args[0])
		if err != nil {
			return nil, err
		}
		mode = player.PauseOff
		if pause {
			mode = player.PauseOn
		}
	}

	if !c.state.Pause(mode) {
		c.SuppressEvent()
	}
	return nil, nil
}

// cmdStop handles the 'stop' command
func (s *Server) cmdStop(c *call) (*Response, error) {
	if !c.state.Stop() {
		c.SuppressEvent()
	}
	return nil, nil
}

// cmdNext handles the 'next' command
func (s *Server) cmdNext(c *call) (*Response, error) {
	before := c.state.Status().Playlist
	if !c.state.Next() {
		c.SuppressEvent()
		return nil, nil
	}
	// consume mode drops the finished song from the queue
	if c.state.Status().Playlist != before {
		c.Notify(SubsystemPlaylist)
	}
	return nil, nil
}

// cmdPrevious handles the 'previous' command
func (s *Server) cmdPrevious(c *call) (*Response, error) {
	if !c.state.Previous() {
		c.SuppressEvent()
	}
	return nil, nil
}

// cmdSeek handles the 'seek' command
// seek {SONGPOS} {TIME} - seek to TIME (in seconds) within song SONGPOS
func (s *Server) cmdSeek(c *call) (*Response, error) {
	pos, err := parseUint(c.args[0], "song position")
	if err != nil {
		return nil, err
	}
	seconds, _, err := parseSeconds(c.args[1])
	if err != nil {
		return nil, err
	}
	return nil, c.state.Seek(pos, seconds)
}

// cmdSeekID handles the 'seekid' command
// seekid {SONGID} {TIME} - seek to TIME within song SONGID
func (s *Server) cmdSeekID(c *call) (*Response, error) {
	id, err := parseUint(c.args[0], "song id")
	if err != nil {
		return nil, err
	}
	seconds, _, err := parseSeconds(c.args[1])
	if err != nil {
		return nil, err
	}
	return nil, c.state.SeekID(id, seconds)
}

// cmdSeekCur handles the 'seekcur' command
// seekcur {TIME} - seek to TIME within the current song
// TIME can be:
//   - absolute: "120" = seek to 120 seconds
//   - relative positive: "+10" = seek forward 10 seconds
//   - relative negative: "-10" = seek backward 10 seconds
func (s *Server) cmdSeekCur(c *call) (*Response, error) {
	seconds, relative, err := parseSeconds(c.args[0])
	if err != nil {
		return nil, err
	}
	return nil, c.state.SeekCur(seconds, relative)
}

// setOption applies an on/off option and skips the broadcast when the value
// is unchanged
func (s *Server) setOption(c *call, opt player.Option) (*Response, error) {
	on, err := parseBool(c.args[0])
	if err != nil {
		return nil, err
	}
	if !c.state.SetOption(opt, on) {
		c.SuppressEvent()
	}
	return nil, nil
}

// cmdConsume handles the 'consume' command
// Sets consume mode (remove songs from the queue after playing)
func (s *Server) cmdConsume(c *call) (*Response, error) {
	return s.setOption(c, player.OptionConsume)
}

// cmdRandom handles the 'random' command
func (s *Server) cmdRandom(c *call) (*Response, error) {
	return s.setOption(c, player.OptionRandom)
}

// cmdSingle handles the 'single' command
// Sets single mode (play one song and stop)
func (s *Server) cmdSingle(c *call) (*Response, error) {
	return s.setOption(c, player.OptionSingle)
}

// cmdRepeat handles the 'repeat' command
func (s *Server) cmdRepeat(c *call) (*Response, error) {
	return s.setOption(c, player.OptionRepeat)
}

// cmdCrossfade handles 'crossfade SECONDS'
func (s *Server) cmdCrossfade(c *call) (*Response, error) {
	seconds, err := parseInt(c.args[0], "crossfade")
	if err != nil {
		return nil, err
	}
	changed, err := c.state.SetCrossfade(seconds)
	if err != nil {
		return nil, err
	}
	if !changed {
		c.SuppressEvent()
	}
	return nil, nil
}

// cmdSetVol handles 'setvol VOL'
func (s *Server) cmdSetVol(c *call) (*Response, error) {
	volume, err := parseInt(c.args[0], "volume")
	if err != nil {
		return nil, err
	}
	changed, err := c.state.SetVolume(volume)
	if err != nil {
		return nil, err
	}
	if !changed {
		c.SuppressEvent()
	}
	return nil, nil
}
