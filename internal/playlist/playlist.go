package playlist

import (
	"errors"

	"github.com/famish99/fakempd/internal/library"
)

var (
	// ErrBadIndex is returned for a position outside the playlist
	ErrBadIndex = errors.New("bad song index")
	// ErrNoSuchID is returned when no track carries the requested id
	ErrNoSuchID = errors.New("no such song id")
)

// Track represents a single entry of a playlist
type Track struct {
	library.Song
	ID      int
	Pos     int
	Version uint32 // playlist version in which this position last changed
}

// Playlist is an ordered list of tracks without holes. Deleting a track
// shifts every following track down by one position.
//
// Playlist does no locking of its own; the owner serializes access.
type Playlist struct {
	tracks  []Track
	current int
	version uint32
	nextID  int
}

// NewPlaylist creates a new empty playlist
func NewPlaylist() *Playlist {
	return &Playlist{
		tracks:  make([]Track, 0),
		current: -1,
		version: 1,
	}
}

// Add appends a song and returns the new track
func (p *Playlist) Add(song library.Song) Track {
	p.version++
	track := Track{
		Song:    song,
		ID:      p.nextID,
		Pos:     len(p.tracks),
		Version: p.version,
	}
	p.nextID++
	p.tracks = append(p.tracks, track)
	return track
}

// AddAt inserts a song at position, shifting later tracks up
func (p *Playlist) AddAt(song library.Song, position int) (Track, error) {
	if position < 0 || position > len(p.tracks) {
		return Track{}, ErrBadIndex
	}

	p.version++
	track := Track{Song: song, ID: p.nextID, Version: p.version}
	p.nextID++

	p.tracks = append(p.tracks, Track{})
	copy(p.tracks[position+1:], p.tracks[position:])
	p.tracks[position] = track

	if p.current >= position {
		p.current++
	}
	p.reindex(position)
	return p.tracks[position], nil
}

// Delete removes the track at position
func (p *Playlist) Delete(position int) error {
	return p.DeleteRange(position, position+1)
}

// DeleteRange removes tracks in [start, end)
func (p *Playlist) DeleteRange(start, end int) error {
	if start < 0 || end > len(p.tracks) || start >= end {
		return ErrBadIndex
	}

	p.version++
	p.tracks = append(p.tracks[:start], p.tracks[end:]...)

	switch {
	case p.current >= end:
		p.current -= end - start
	case p.current >= start:
		p.current = -1
	}
	p.reindex(start)
	return nil
}

// DeleteID removes the track with the given id
func (p *Playlist) DeleteID(id int) error {
	pos := p.FindID(id)
	if pos < 0 {
		return ErrNoSuchID
	}
	return p.Delete(pos)
}

// Clear removes all tracks
func (p *Playlist) Clear() {
	p.version++
	p.tracks = make([]Track, 0)
	p.current = -1
}

// Current returns the current track
func (p *Playlist) Current() (*Track, error) {
	if p.current < 0 || p.current >= len(p.tracks) {
		return nil, errors.New("no current track")
	}

	return &p.tracks[p.current], nil
}

// CurrentIndex returns the current track index, -1 if none
func (p *Playlist) CurrentIndex() int {
	return p.current
}

// SetCurrent moves the current marker to index; -1 clears it
func (p *Playlist) SetCurrent(index int) error {
	if index < -1 || index >= len(p.tracks) {
		return ErrBadIndex
	}
	p.current = index
	return nil
}

// Get returns the track at position
func (p *Playlist) Get(position int) (Track, error) {
	if position < 0 || position >= len(p.tracks) {
		return Track{}, ErrBadIndex
	}
	return p.tracks[position], nil
}

// FindID returns the position of the track with id, or -1
func (p *Playlist) FindID(id int) int {
	for i := range p.tracks {
		if p.tracks[i].ID == id {
			return i
		}
	}
	return -1
}

// Length returns the number of tracks
func (p *Playlist) Length() int {
	return len(p.tracks)
}

// GetAll returns all tracks
func (p *Playlist) GetAll() []Track {
	// Return a copy to prevent external modification
	tracks := make([]Track, len(p.tracks))
	copy(tracks, p.tracks)
	return tracks
}

// Songs returns the songs in playlist order
func (p *Playlist) Songs() []library.Song {
	songs := make([]library.Song, len(p.tracks))
	for i := range p.tracks {
		songs[i] = p.tracks[i].Song
	}
	return songs
}

// HasNext returns true if there are more tracks after current
func (p *Playlist) HasNext() bool {
	return p.current+1 < len(p.tracks)
}

// Version returns the change counter, bumped by every mutation
func (p *Playlist) Version() uint32 {
	return p.version
}

// ChangesSince returns the tracks whose position changed after version
func (p *Playlist) ChangesSince(version uint32) []Track {
	var changed []Track
	for _, track := range p.tracks {
		if track.Version > version {
			changed = append(changed, track)
		}
	}
	return changed
}

// reindex rewrites positions from start onwards and stamps them as changed
func (p *Playlist) reindex(start int) {
	for i := start; i < len(p.tracks); i++ {
		p.tracks[i].Pos = i
		p.tracks[i].Version = p.version
	}
}
