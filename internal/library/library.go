// Package library holds the read-only music database the emulator serves.
package library

import (
	"errors"
	"path"
	"sort"
	"strings"
	"time"
)

// ErrNotFound is returned when a URI names neither a song nor a directory
var ErrNotFound = errors.New("no such file or directory")

// Song is one entry of the music database
type Song struct {
	File        string `yaml:"file"`
	Title       string `yaml:"title,omitempty"`
	Artist      string `yaml:"artist,omitempty"`
	Album       string `yaml:"album,omitempty"`
	AlbumArtist string `yaml:"albumartist,omitempty"`
	Track       string `yaml:"track,omitempty"`
	Date        string `yaml:"date,omitempty"`
	Genre       string `yaml:"genre,omitempty"`
	Composer    string `yaml:"composer,omitempty"`
	Performer   string `yaml:"performer,omitempty"`
	Disc        string `yaml:"disc,omitempty"`
	Time        int    `yaml:"time"` // seconds
}

// Entry is one line of a directory walk: either a directory or a song
type Entry struct {
	Directory string
	Song      *Song
}

// Stats summarizes the database
type Stats struct {
	Artists  int
	Albums   int
	Songs    int
	Playtime int // sum of song times in seconds
	Updated  time.Time
}

// Database is an immutable snapshot of songs sorted by file name
type Database struct {
	songs   []Song
	byFile  map[string]int
	updated time.Time
}

// NewDatabase builds a database from a song list
func NewDatabase(songs []Song, updated time.Time) *Database {
	sorted := make([]Song, len(songs))
	copy(sorted, songs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].File < sorted[j].File })

	byFile := make(map[string]int, len(sorted))
	for i, song := range sorted {
		byFile[song.File] = i
	}

	return &Database{
		songs:   sorted,
		byFile:  byFile,
		updated: updated,
	}
}

// Lookup returns the song stored under file
func (d *Database) Lookup(file string) (Song, bool) {
	i, ok := d.byFile[file]
	if !ok {
		return Song{}, false
	}
	return d.songs[i], true
}

// Len returns the number of songs
func (d *Database) Len() int {
	return len(d.songs)
}

// Find resolves a URI to songs: a file yields itself, a directory yields every
// song below it, and the empty URI yields the whole database.
func (d *Database) Find(uri string) ([]Song, error) {
	uri = cleanURI(uri)
	if song, ok := d.Lookup(uri); ok {
		return []Song{song}, nil
	}

	var found []Song
	for _, song := range d.songs {
		if inDirectory(song.File, uri) {
			found = append(found, song)
		}
	}
	if len(found) == 0 && uri != "" {
		return nil, ErrNotFound
	}
	return found, nil
}

// Walk lists uri recursively: every directory is emitted before its contents.
func (d *Database) Walk(uri string) ([]Entry, error) {
	uri = cleanURI(uri)
	if song, ok := d.Lookup(uri); ok {
		return []Entry{{Song: &song}}, nil
	}

	var entries []Entry
	seen := make(map[string]bool)
	for i := range d.songs {
		song := &d.songs[i]
		if !inDirectory(song.File, uri) {
			continue
		}
		for _, dir := range parents(song.File, uri) {
			if !seen[dir] {
				seen[dir] = true
				entries = append(entries, Entry{Directory: dir})
			}
		}
		s := *song
		entries = append(entries, Entry{Song: &s})
	}
	if len(entries) == 0 && uri != "" {
		return nil, ErrNotFound
	}
	return entries, nil
}

// List returns the immediate children of uri
func (d *Database) List(uri string) ([]Entry, error) {
	uri = cleanURI(uri)
	if song, ok := d.Lookup(uri); ok {
		return []Entry{{Song: &song}}, nil
	}

	var entries []Entry
	seen := make(map[string]bool)
	found := false
	for i := range d.songs {
		song := d.songs[i]
		if !inDirectory(song.File, uri) {
			continue
		}
		found = true
		rest := strings.TrimPrefix(song.File, uri)
		rest = strings.TrimPrefix(rest, "/")
		if idx := strings.Index(rest, "/"); idx >= 0 {
			dir := path.Join(uri, rest[:idx])
			if !seen[dir] {
				seen[dir] = true
				entries = append(entries, Entry{Directory: dir})
			}
			continue
		}
		entries = append(entries, Entry{Song: &song})
	}
	if !found && uri != "" {
		return nil, ErrNotFound
	}
	return entries, nil
}

// Stats computes database statistics
func (d *Database) Stats() Stats {
	artists := make(map[string]bool)
	albums := make(map[string]bool)
	playtime := 0
	for _, song := range d.songs {
		if song.Artist != "" {
			artists[song.Artist] = true
		}
		if song.Album != "" {
			albums[song.Album] = true
		}
		playtime += song.Time
	}
	return Stats{
		Artists:  len(artists),
		Albums:   len(albums),
		Songs:    len(d.songs),
		Playtime: playtime,
		Updated:  d.updated,
	}
}

func cleanURI(uri string) string {
	uri = strings.Trim(uri, "/")
	if uri == "" {
		return ""
	}
	return path.Clean(uri)
}

func inDirectory(file, dir string) bool {
	return dir == "" || strings.HasPrefix(file, dir+"/")
}

// parents lists the directories between root (exclusive) and file
func parents(file, root string) []string {
	var dirs []string
	for dir := path.Dir(file); dir != "." && dir != root; dir = path.Dir(dir) {
		dirs = append(dirs, dir)
	}
	// outermost first
	for i, j := 0, len(dirs)-1; i < j; i, j = i+1, j-1 {
		dirs[i], dirs[j] = dirs[j], dirs[i]
	}
	return dirs
}
