package player

import (
	"github.com/famish99/fakempd/internal/library"
	"github.com/famish99/fakempd/internal/playlist"
)

// PlaylistSongs returns the songs of a stored playlist
func (s *State) PlaylistSongs(name string) ([]library.Song, error) {
	pl, ok := s.playlists[name]
	if !ok {
		return nil, ErrNoSuchPlaylist
	}
	return pl.Songs.Songs(), nil
}

// Save stores the queue under name
func (s *State) Save(name string) error {
	if _, exists := s.playlists[name]; exists {
		return ErrPlaylistExists
	}
	pl := playlist.NewPlaylist()
	for _, song := range s.queue.Songs() {
		pl.Add(song)
	}
	s.playlists[name] = &StoredPlaylist{Name: name, Songs: pl, LastModified: s.now()}
	return nil
}

// Load appends a stored playlist to the queue
func (s *State) Load(name string) (int, error) {
	pl, ok := s.playlists[name]
	if !ok {
		return 0, ErrNoSuchPlaylist
	}
	songs := pl.Songs.Songs()
	for _, song := range songs {
		s.queue.Add(song)
	}
	return len(songs), nil
}

// Remove deletes a stored playlist
func (s *State) Remove(name string) error {
	if _, ok := s.playlists[name]; !ok {
		return ErrNoSuchPlaylist
	}
	delete(s.playlists, name)
	return nil
}

// PlaylistAdd appends uri to a stored playlist, creating it if needed
func (s *State) PlaylistAdd(name, uri string) error {
	songs, err := s.resolve(uri)
	if err != nil {
		return err
	}
	pl, ok := s.playlists[name]
	if !ok {
		pl = &StoredPlaylist{Name: name, Songs: playlist.NewPlaylist()}
		s.playlists[name] = pl
	}
	for _, song := range songs {
		pl.Songs.Add(song)
	}
	pl.LastModified = s.now()
	return nil
}

// PlaylistClear empties a stored playlist
func (s *State) PlaylistClear(name string) error {
	pl, ok := s.playlists[name]
	if !ok {
		return ErrNoSuchPlaylist
	}
	pl.Songs.Clear()
	pl.LastModified = s.now()
	return nil
}
