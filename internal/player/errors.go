package player

import (
	"errors"

	"github.com/famish99/fakempd/internal/playlist"
)

var (
	ErrBadSongIndex    = playlist.ErrBadIndex
	ErrNoSuchSongID    = playlist.ErrNoSuchID
	ErrNoSuchSong      = errors.New("no such song")
	ErrNoSuchDirectory = errors.New("no such directory")
	ErrNotPlaying      = errors.New("not playing")
	ErrBadVolume       = errors.New("invalid volume value")
	ErrBadCrossfade    = errors.New("invalid crossfade value")
	ErrNoSuchOutput    = errors.New("no such audio output")
	ErrNoSuchPlaylist  = errors.New("no such playlist")
	ErrPlaylistExists  = errors.New("playlist already exists")
)
