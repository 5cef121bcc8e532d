package mpd

import (
	"fmt"
	"strings"
	"time"

	"github.com/famish99/fakempd/internal/library"
	"github.com/famish99/fakempd/internal/player"
	"github.com/famish99/fakempd/internal/playlist"
)

// Response is a command's body: "key: value" lines, written before OK
type Response struct {
	body strings.Builder
}

// Field appends one "key: value" line
func (r *Response) Field(key string, value interface{}) {
	fmt.Fprintf(&r.body, "%s: %v\n", key, value)
}

// Len returns the body size in bytes
func (r *Response) Len() int {
	if r == nil {
		return 0
	}
	return r.body.Len()
}

func (r *Response) String() string {
	if r == nil {
		return ""
	}
	return r.body.String()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// tagField pairs a tagtypes name with its accessor
type tagField struct {
	name  string
	value func(*library.Song) string
}

// songTags lists the tags in the order they appear in song responses
var songTags = []tagField{
	{"Artist", func(s *library.Song) string { return s.Artist }},
	{"AlbumArtist", func(s *library.Song) string { return s.AlbumArtist }},
	{"Title", func(s *library.Song) string { return s.Title }},
	{"Album", func(s *library.Song) string { return s.Album }},
	{"Track", func(s *library.Song) string { return s.Track }},
	{"Date", func(s *library.Song) string { return s.Date }},
	{"Genre", func(s *library.Song) string { return s.Genre }},
	{"Composer", func(s *library.Song) string { return s.Composer }},
	{"Performer", func(s *library.Song) string { return s.Performer }},
	{"Disc", func(s *library.Song) string { return s.Disc }},
}

func defaultTagTypes() map[string]bool {
	enabled := make(map[string]bool, len(songTags))
	for _, tag := range songTags {
		enabled[strings.ToLower(tag.name)] = true
	}
	return enabled
}

// formatStatus writes the status response:
// volume, repeat, random, single, consume, playlist, playlistlength, xfade,
// state, song, songid, time, elapsed, bitrate, duration, audio, nextsong,
// nextsongid. Fields without a value in the current state are omitted.
func formatStatus(r *Response, st player.Status) {
	r.Field("volume", st.Volume)
	r.Field("repeat", boolInt(st.Repeat))
	r.Field("random", boolInt(st.Random))
	r.Field("single", boolInt(st.Single))
	r.Field("consume", boolInt(st.Consume))
	r.Field("playlist", st.Playlist)
	r.Field("playlistlength", st.PlaylistLength)
	if st.Crossfade > 0 {
		r.Field("xfade", st.Crossfade)
	}
	r.Field("state", st.State)

	if st.Song >= 0 {
		r.Field("song", st.Song)
		r.Field("songid", st.SongID)
	}
	if st.State == player.StatePlaying || st.State == player.StatePaused {
		r.Field("time", fmt.Sprintf("%d:%d", int(st.Elapsed), st.Duration))
		r.Field("elapsed", fmt.Sprintf("%.3f", st.Elapsed))
		r.Field("bitrate", st.Bitrate)
		r.Field("duration", fmt.Sprintf("%.3f", float64(st.Duration)))
		r.Field("audio", st.Audio)
	}
	if st.NextSong >= 0 {
		r.Field("nextsong", st.NextSong)
		r.Field("nextsongid", st.NextSongID)
	}
}

// formatSong writes a database song: file, enabled tags, Time, duration
func formatSong(r *Response, song *library.Song, tags map[string]bool) {
	r.Field("file", song.File)
	for _, tag := range songTags {
		if !tags[strings.ToLower(tag.name)] {
			continue
		}
		if value := tag.value(song); value != "" {
			r.Field(tag.name, value)
		}
	}
	if song.Time > 0 {
		r.Field("Time", song.Time)
		r.Field("duration", fmt.Sprintf("%.3f", float64(song.Time)))
	}
}

// formatTrackInfo writes a queue entry: the song followed by Pos and Id
func formatTrackInfo(r *Response, track *playlist.Track, tags map[string]bool) {
	formatSong(r, &track.Song, tags)
	r.Field("Pos", track.Pos)
	r.Field("Id", track.ID)
}

// formatStats writes: artists, albums, songs, uptime, playtime, db_playtime, db_update
func formatStats(r *Response, st player.Stats) {
	r.Field("artists", st.Artists)
	r.Field("albums", st.Albums)
	r.Field("songs", st.Songs)
	r.Field("uptime", int64(st.Uptime/time.Second))
	r.Field("playtime", int64(st.Playtime/time.Second))
	r.Field("db_playtime", st.Stats.Playtime)
	r.Field("db_update", st.Updated.Unix())
}

// formatOutputs writes outputid, outputname, outputenabled per output
func formatOutputs(r *Response, outputs []player.Output) {
	for _, out := range outputs {
		r.Field("outputid", out.ID)
		r.Field("outputname", out.Name)
		r.Field("outputenabled", boolInt(out.Enabled))
	}
}

// formatPlaylists writes playlist and Last-Modified per stored playlist
func formatPlaylists(r *Response, playlists []player.StoredPlaylist) {
	for _, pl := range playlists {
		r.Field("playlist", pl.Name)
		r.Field("Last-Modified", pl.LastModified.UTC().Format(time.RFC3339))
	}
}

// formatEntries writes a directory walk. Songs get full tags when withTags is set.
func formatEntries(r *Response, entries []library.Entry, withTags bool, tags map[string]bool) {
	for _, e := range entries {
		switch {
		case e.Song == nil:
			r.Field("directory", e.Directory)
		case withTags:
			formatSong(r, e.Song, tags)
		default:
			r.Field("file", e.Song.File)
		}
	}
}

// decoderInfo represents a decoder plugin with its supported formats
type decoderInfo struct {
	plugin    string
	suffixes  []string
	mimeTypes []string
}

// supportedDecoders is the canned decoder list reported to clients
var supportedDecoders = []decoderInfo{
	{
		plugin:    "flac",
		suffixes:  []string{"flac"},
		mimeTypes: []string{"audio/flac", "audio/x-flac"},
	},
	{
		plugin:    "mad",
		suffixes:  []string{"mp3", "mp2"},
		mimeTypes: []string{"audio/mpeg"},
	},
	{
		plugin:    "vorbis",
		suffixes:  []string{"ogg", "oga"},
		mimeTypes: []string{"audio/ogg", "audio/vorbis", "application/ogg"},
	},
	{
		plugin:    "sndfile",
		suffixes:  []string{"wav", "aiff", "aif"},
		mimeTypes: []string{"audio/wav", "audio/x-wav", "audio/aiff"},
	},
}

func formatDecoders(r *Response) {
	for _, decoder := range supportedDecoders {
		r.Field("plugin", decoder.plugin)
		for _, suffix := range decoder.suffixes {
			r.Field("suffix", suffix)
		}
		for _, mimeType := range decoder.mimeTypes {
			r.Field("mime_type", mimeType)
		}
	}
}
