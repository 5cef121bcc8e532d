package mpd

import (
	"errors"
	"strings"

	"github.com/famish99/fakempd/internal/library"
	"github.com/famish99/fakempd/internal/player"
)

func uriArg(c *call) string {
	if len(c.args) == 0 {
		return ""
	}
	return c.args[0].Text
}

func lookupError(err error) error {
	if errors.Is(err, library.ErrNotFound) {
		return player.ErrNoSuchDirectory
	}
	return err
}

// cmdListAll handles 'listall [URI]': every directory and file below URI
func (s *Server) cmdListAll(c *call) (*Response, error) {
	entries, err := c.state.Database().Walk(uriArg(c))
	if err != nil {
		return nil, lookupError(err)
	}
	var r Response
	formatEntries(&r, entries, false, nil)
	return &r, nil
}

// cmdListAllInfo handles 'listallinfo [URI]': like listall with song tags
func (s *Server) cmdListAllInfo(c *call) (*Response, error) {
	entries, err := c.state.Database().Walk(uriArg(c))
	if err != nil {
		return nil, lookupError(err)
	}
	var r Response
	formatEntries(&r, entries, true, c.session.tagTypes)
	return &r, nil
}

// cmdLsInfo handles 'lsinfo [URI]': the direct children of URI. The root
// listing also carries the stored playlists.
func (s *Server) cmdLsInfo(c *call) (*Response, error) {
	uri := uriArg(c)
	entries, err := c.state.Database().List(uri)
	if err != nil {
		return nil, lookupError(err)
	}
	var r Response
	formatEntries(&r, entries, true, c.session.tagTypes)
	if strings.Trim(uri, "/") == "" {
		formatPlaylists(&r, c.state.Playlists())
	}
	return &r, nil
}

// cmdListPlaylists handles the 'listplaylists' command
func (s *Server) cmdListPlaylists(c *call) (*Response, error) {
	var r Response
	formatPlaylists(&r, c.state.Playlists())
	return &r, nil
}

// cmdListPlaylist handles 'listplaylist NAME': file names only
func (s *Server) cmdListPlaylist(c *call) (*Response, error) {
	songs, err := c.state.PlaylistSongs(c.args[0].Text)
	if err != nil {
		return nil, err
	}
	var r Response
	for _, song := range songs {
		r.Field("file", song.File)
	}
	return &r, nil
}

// cmdListPlaylistInfo handles 'listplaylistinfo NAME'
func (s *Server) cmdListPlaylistInfo(c *call) (*Response, error) {
	songs, err := c.state.PlaylistSongs(c.args[0].Text)
	if err != nil {
		return nil, err
	}
	var r Response
	for i := range songs {
		formatSong(&r, &songs[i], c.session.tagTypes)
	}
	return &r, nil
}

// cmdSave handles 'save NAME'
func (s *Server) cmdSave(c *call) (*Response, error) {
	return nil, c.state.Save(c.args[0].Text)
}

// cmdLoad handles 'load NAME'
func (s *Server) cmdLoad(c *call) (*Response, error) {
	n, err := c.state.Load(c.args[0].Text)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		c.SuppressEvent()
	}
	return nil, nil
}

// cmdRm handles 'rm NAME'
func (s *Server) cmdRm(c *call) (*Response, error) {
	return nil, c.state.Remove(c.args[0].Text)
}

// cmdPlaylistAdd handles 'playlistadd NAME URI'
func (s *Server) cmdPlaylistAdd(c *call) (*Response, error) {
	if err := c.state.PlaylistAdd(c.args[0].Text, c.args[1].Text); err != nil {
		return nil, lookupError(err)
	}
	return nil, nil
}

// cmdPlaylistClear handles 'playlistclear NAME'
func (s *Server) cmdPlaylistClear(c *call) (*Response, error) {
	return nil, c.state.PlaylistClear(c.args[0].Text)
}
