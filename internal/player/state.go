// Package player is the emulator's single source of truth: playback status,
// options, mixer, outputs, the queue and stored playlists.
//
// Nothing in this package locks. Every method must be called while holding
// the server's global lock.
package player

import (
	"fmt"
	"sort"
	"time"

	"github.com/famish99/fakempd/internal/library"
	"github.com/famish99/fakempd/internal/playlist"
)

// PlaybackState represents the current playback state
type PlaybackState int

const (
	StateUnknown PlaybackState = iota
	StateStopped
	StatePlaying
	StatePaused
)

func (s PlaybackState) String() string {
	switch s {
	case StatePlaying:
		return "play"
	case StatePaused:
		return "pause"
	case StateStopped:
		return "stop"
	default:
		return "unknown"
	}
}

// Option is one of the on/off playback options
type Option int

const (
	OptionRepeat Option = iota
	OptionRandom
	OptionSingle
	OptionConsume
)

// AudioFormat describes the decoded stream
type AudioFormat struct {
	SampleRate int
	Bits       int
	Channels   int
}

func (f AudioFormat) String() string {
	return fmt.Sprintf("%d:%d:%d", f.SampleRate, f.Bits, f.Channels)
}

// Status is a snapshot of the player as reported by the status command
type Status struct {
	State          PlaybackState
	Repeat         bool
	Random         bool
	Single         bool
	Consume        bool
	Playlist       uint32 // queue version
	PlaylistLength int
	Crossfade      int
	Volume         int
	Song           int // -1 if none
	SongID         int
	NextSong       int // -1 if none
	NextSongID     int
	Elapsed        float64
	Duration       int
	Bitrate        int
	Audio          AudioFormat
}

// Output is an audio output device
type Output struct {
	ID      int
	Name    string
	Enabled bool
}

// StoredPlaylist is a named playlist kept outside the queue
type StoredPlaylist struct {
	Name         string
	Songs        *playlist.Playlist
	LastModified time.Time
}

// Stats is the statistics snapshot
type Stats struct {
	library.Stats
	Uptime   time.Duration
	Playtime time.Duration
}

// State holds all shared emulator state
type State struct {
	state     PlaybackState
	options   [4]bool
	crossfade int
	volume    int
	elapsed   float64
	bitrate   int
	audio     AudioFormat

	queue     *playlist.Playlist
	db        *library.Database
	outputs   []Output
	playlists map[string]*StoredPlaylist

	now          func() time.Time
	started      time.Time
	playtime     time.Duration
	playingSince time.Time
}

// New creates the shared state from a database and fixture content
func New(db *library.Database, fixture *library.Fixture) *State {
	return newState(db, fixture, time.Now)
}

// NewWithClock is New with an injectable clock
func NewWithClock(db *library.Database, fixture *library.Fixture, now func() time.Time) *State {
	return newState(db, fixture, now)
}

func newState(db *library.Database, fixture *library.Fixture, now func() time.Time) *State {
	s := &State{
		state:     StateStopped,
		volume:    100,
		bitrate:   1411,
		audio:     AudioFormat{SampleRate: 44100, Bits: 16, Channels: 2},
		queue:     playlist.NewPlaylist(),
		db:        db,
		playlists: make(map[string]*StoredPlaylist),
		now:       now,
		started:   now(),
	}

	if fixture == nil {
		return s
	}

	for i, out := range fixture.Outputs {
		s.outputs = append(s.outputs, Output{ID: i, Name: out.Name, Enabled: out.Enabled})
	}
	for _, spec := range fixture.Playlists {
		pl := playlist.NewPlaylist()
		for _, file := range spec.Files {
			if song, ok := db.Lookup(file); ok {
				pl.Add(song)
			}
		}
		s.playlists[spec.Name] = &StoredPlaylist{
			Name:         spec.Name,
			Songs:        pl,
			LastModified: s.started,
		}
	}
	return s
}

// Status returns the current status snapshot
func (s *State) Status() Status {
	st := Status{
		State:          s.state,
		Repeat:         s.options[OptionRepeat],
		Random:         s.options[OptionRandom],
		Single:         s.options[OptionSingle],
		Consume:        s.options[OptionConsume],
		Playlist:       s.queue.Version(),
		PlaylistLength: s.queue.Length(),
		Crossfade:      s.crossfade,
		Volume:         s.volume,
		Song:           -1,
		SongID:         -1,
		NextSong:       -1,
		NextSongID:     -1,
	}

	cur, err := s.queue.Current()
	if err != nil {
		return st
	}
	st.Song = cur.Pos
	st.SongID = cur.ID

	if next := s.nextIndex(); next >= 0 {
		if track, err := s.queue.Get(next); err == nil {
			st.NextSong = track.Pos
			st.NextSongID = track.ID
		}
	}

	if s.state == StatePlaying || s.state == StatePaused {
		st.Elapsed = s.elapsed
		st.Duration = cur.Time
		st.Bitrate = s.bitrate
		st.Audio = s.audio
	}
	return st
}

// CurrentSong returns the track under the current marker
func (s *State) CurrentSong() (playlist.Track, bool) {
	cur, err := s.queue.Current()
	if err != nil {
		return playlist.Track{}, false
	}
	return *cur, true
}

// Stats returns the statistics snapshot
func (s *State) Stats() Stats {
	now := s.now()
	playtime := s.playtime
	if s.state == StatePlaying {
		playtime += now.Sub(s.playingSince)
	}
	return Stats{
		Stats:    s.db.Stats(),
		Uptime:   now.Sub(s.started),
		Playtime: playtime,
	}
}

// Database returns the read-only music database
func (s *State) Database() *library.Database {
	return s.db
}

// SetOption sets an on/off option and reports whether it changed
func (s *State) SetOption(opt Option, on bool) bool {
	if s.options[opt] == on {
		return false
	}
	s.options[opt] = on
	return true
}

// SetCrossfade sets the crossfade in seconds
func (s *State) SetCrossfade(seconds int) (bool, error) {
	if seconds < 0 {
		return false, ErrBadCrossfade
	}
	if s.crossfade == seconds {
		return false, nil
	}
	s.crossfade = seconds
	return true, nil
}

// SetVolume sets the mixer volume (0-100)
func (s *State) SetVolume(volume int) (bool, error) {
	if volume < 0 || volume > 100 {
		return false, ErrBadVolume
	}
	if s.volume == volume {
		return false, nil
	}
	s.volume = volume
	return true, nil
}

// Outputs returns the audio outputs in id order
func (s *State) Outputs() []Output {
	outputs := make([]Output, len(s.outputs))
	copy(outputs, s.outputs)
	return outputs
}

// SetOutput enables or disables an output by id
func (s *State) SetOutput(id int, enabled bool) (bool, error) {
	if id < 0 || id >= len(s.outputs) {
		return false, ErrNoSuchOutput
	}
	if s.outputs[id].Enabled == enabled {
		return false, nil
	}
	s.outputs[id].Enabled = enabled
	return true, nil
}

// ToggleOutput flips an output by id
func (s *State) ToggleOutput(id int) error {
	if id < 0 || id >= len(s.outputs) {
		return ErrNoSuchOutput
	}
	s.outputs[id].Enabled = !s.outputs[id].Enabled
	return nil
}

// Playlists returns the stored playlists sorted by name
func (s *State) Playlists() []StoredPlaylist {
	list := make([]StoredPlaylist, 0, len(s.playlists))
	for _, pl := range s.playlists {
		list = append(list, *pl)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}
