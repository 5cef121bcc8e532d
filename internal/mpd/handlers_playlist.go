package mpd

import (
	"math"

	"github.com/famish99/fakempd/internal/player"
)

// cmdAdd handles the 'add' command
// add {URI} - add a song, a directory (recursively) or a stream URL
func (s *Server) cmdAdd(c *call) (*Response, error) {
	if _, err := c.state.Add(c.args[0].Text); err != nil {
		return nil, err
	}
	return nil, nil
}

// cmdAddID handles the 'addid' command
// Like 'add' but for a single song, returning its id
// Supports optional position argument: addid URI [POS]
func (s *Server) cmdAddID(c *call) (*Response, error) {
	pos := -1
	if len(c.args) > 1 {
		var err error
		if pos, err = parseUint(c.args[1], "position"); err != nil {
			return nil, err
		}
	}

	track, err := c.state.AddID(c.args[0].Text, pos)
	if err != nil {
		return nil, err
	}
	if pos >= 0 {
		// inserting can move the current song
		c.Notify(SubsystemPlayer)
	}

	var r Response
	r.Field("Id", track.ID)
	return &r, nil
}

// cmdClear handles the 'clear' command
func (s *Server) cmdClear(c *call) (*Response, error) {
	queueChanged, playerChanged := c.state.Clear()
	if !queueChanged {
		c.SuppressEvent()
		return nil, nil
	}
	if playerChanged {
		c.Notify(SubsystemPlayer)
	}
	return nil, nil
}

// cmdDelete handles 'delete POS' and 'delete START:END'
func (s *Server) cmdDelete(c *call) (*Response, error) {
	start, end, err := parseRange(c.args[0])
	if err != nil {
		return nil, err
	}
	if end < 0 {
		end = c.state.Status().PlaylistLength
	}

	playerChanged, err := c.state.Delete(start, end)
	if err != nil {
		return nil, err
	}
	if playerChanged {
		c.Notify(SubsystemPlayer)
	}
	return nil, nil
}

// cmdDeleteID handles 'deleteid SONGID'
func (s *Server) cmdDeleteID(c *call) (*Response, error) {
	id, err := parseUint(c.args[0], "song id")
	if err != nil {
		return nil, err
	}
	playerChanged, err := c.state.DeleteID(id)
	if err != nil {
		return nil, err
	}
	if playerChanged {
		c.Notify(SubsystemPlayer)
	}
	return nil, nil
}

// cmdPlaylistInfo handles the 'playlistinfo' command
// playlistinfo [POS|START:END]
func (s *Server) cmdPlaylistInfo(c *call) (*Response, error) {
	tracks := c.state.Queue()

	start, end := 0, len(tracks)
	if len(c.args) > 0 {
		var err error
		if start, end, err = parseRange(c.args[0]); err != nil {
			return nil, err
		}
		if end < 0 || end > len(tracks) {
			end = len(tracks)
		}
		if start >= len(tracks) {
			return nil, player.ErrBadSongIndex
		}
	}

	var r Response
	for i := start; i < end; i++ {
		formatTrackInfo(&r, &tracks[i], c.session.tagTypes)
	}
	return &r, nil
}

// cmdPlaylistID handles 'playlistid [SONGID]'
func (s *Server) cmdPlaylistID(c *call) (*Response, error) {
	var r Response
	if len(c.args) == 0 {
		for _, track := range c.state.Queue() {
			formatTrackInfo(&r, &track, c.session.tagTypes)
		}
		return &r, nil
	}

	id, err := parseUint(c.args[0], "song id")
	if err != nil {
		return nil, err
	}
	track, err := c.state.QueueByID(id)
	if err != nil {
		return nil, err
	}
	formatTrackInfo(&r, &track, c.session.tagTypes)
	return &r, nil
}

// cmdPlChanges handles the 'plchanges' command
// Returns the queue entries changed since the given queue version
func (s *Server) cmdPlChanges(c *call) (*Response, error) {
	version, err := parseUint(c.args[0], "playlist version")
	if err != nil {
		return nil, err
	}
	if uint64(version) > math.MaxUint32 {
		return nil, argumentError("Number too large for playlist version: %s", c.args[0].Text)
	}

	var r Response
	for _, track := range c.state.QueueChanges(uint32(version)) {
		formatTrackInfo(&r, &track, c.session.tagTypes)
	}
	return &r, nil
}
