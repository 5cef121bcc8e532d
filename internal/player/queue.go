package player

import (
	"errors"
	"strings"

	"github.com/famish99/fakempd/internal/library"
	"github.com/famish99/fakempd/internal/playlist"
)

// resolve maps a URI to songs. Database files and directories resolve through
// the database; anything with a scheme is accepted as a remote stream.
func (s *State) resolve(uri string) ([]library.Song, error) {
	songs, err := s.db.Find(uri)
	if err == nil {
		if len(songs) == 0 {
			return nil, ErrNoSuchDirectory
		}
		return songs, nil
	}
	if strings.Contains(uri, "://") {
		return []library.Song{{File: uri}}, nil
	}
	if errors.Is(err, library.ErrNotFound) {
		return nil, ErrNoSuchDirectory
	}
	return nil, err
}

// Add appends a song, every song of a directory, or a stream URL to the queue
func (s *State) Add(uri string) ([]playlist.Track, error) {
	songs, err := s.resolve(uri)
	if err != nil {
		return nil, err
	}
	added := make([]playlist.Track, 0, len(songs))
	for _, song := range songs {
		added = append(added, s.queue.Add(song))
	}
	return added, nil
}

// AddID adds a single song, appending when position is negative
func (s *State) AddID(uri string, position int) (playlist.Track, error) {
	song, ok := s.db.Lookup(uri)
	if !ok {
		if !strings.Contains(uri, "://") {
			return playlist.Track{}, ErrNoSuchSong
		}
		song = library.Song{File: uri}
	}
	if position < 0 {
		return s.queue.Add(song), nil
	}
	return s.queue.AddAt(song, position)
}

// Clear empties the queue and stops playback. It reports whether the queue
// and the player changed.
func (s *State) Clear() (queueChanged, playerChanged bool) {
	if s.queue.Length() == 0 {
		return false, false
	}
	s.queue.Clear()
	playerChanged = s.Stop()
	return true, playerChanged
}

// Delete removes queue positions [start, end). Removing the current song
// stops playback, reported through playerChanged.
func (s *State) Delete(start, end int) (playerChanged bool, err error) {
	if err := s.queue.DeleteRange(start, end); err != nil {
		return false, err
	}
	return s.dropCurrentIfGone(), nil
}

// DeleteID removes the queue entry with id
func (s *State) DeleteID(id int) (playerChanged bool, err error) {
	if err := s.queue.DeleteID(id); err != nil {
		return false, err
	}
	return s.dropCurrentIfGone(), nil
}

func (s *State) dropCurrentIfGone() bool {
	if s.queue.CurrentIndex() >= 0 {
		return false
	}
	return s.Stop()
}

// Queue returns every queue entry
func (s *State) Queue() []playlist.Track {
	return s.queue.GetAll()
}

// QueueAt returns the queue entry at position
func (s *State) QueueAt(position int) (playlist.Track, error) {
	return s.queue.Get(position)
}

// QueueByID returns the queue entry with id
func (s *State) QueueByID(id int) (playlist.Track, error) {
	pos := s.queue.FindID(id)
	if pos < 0 {
		return playlist.Track{}, ErrNoSuchSongID
	}
	return s.queue.Get(pos)
}

// QueueChanges returns entries changed after queue version
func (s *State) QueueChanges(version uint32) []playlist.Track {
	return s.queue.ChangesSince(version)
}
