package library_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/famish99/fakempd/internal/library"
)

func testDatabase() *library.Database {
	return library.NewDatabase([]library.Song{
		{File: "b/y/2.flac", Artist: "B", Album: "Y", Time: 20},
		{File: "a/1.flac", Artist: "A", Album: "X", Time: 10},
		{File: "b/y/1.flac", Artist: "B", Album: "Y", Time: 30},
		{File: "top.wav", Time: 5},
	}, time.Unix(1700000000, 0))
}

func TestDefaultFixtureLoads(t *testing.T) {
	f, err := library.DefaultFixture()
	if err != nil {
		t.Fatalf("DefaultFixture returned error: %v", err)
	}
	if len(f.Songs) == 0 {
		t.Error("expected songs in default fixture")
	}
	if len(f.Outputs) == 0 {
		t.Error("expected outputs in default fixture")
	}
}

func TestParseFixtureRejectsUnknownPlaylistSong(t *testing.T) {
	data := []byte(`
songs:
  - file: a.flac
playlists:
  - name: broken
    files: [missing.flac]
`)
	if _, err := library.ParseFixture(data); err == nil {
		t.Error("expected error for playlist referencing unknown song")
	}
}

func TestParseFixtureRejectsDuplicateSongs(t *testing.T) {
	data := []byte(`
songs:
  - file: a.flac
  - file: a.flac
`)
	if _, err := library.ParseFixture(data); err == nil {
		t.Error("expected error for duplicate song")
	}
}

func TestLoadFixtureFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	data := []byte("songs:\n  - file: x/y.mp3\n    title: Y\n    time: 12\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	f, err := library.LoadFixture(path)
	if err != nil {
		t.Fatalf("LoadFixture returned error: %v", err)
	}
	if len(f.Songs) != 1 || f.Songs[0].Title != "Y" || f.Songs[0].Time != 12 {
		t.Errorf("unexpected songs: %+v", f.Songs)
	}
}

func TestDatabaseLookup(t *testing.T) {
	db := testDatabase()

	song, ok := db.Lookup("a/1.flac")
	if !ok || song.Artist != "A" {
		t.Errorf("expected a/1.flac by A, got %+v ok=%v", song, ok)
	}
	if _, ok := db.Lookup("nope.flac"); ok {
		t.Error("expected lookup miss")
	}
}

func TestDatabaseFind(t *testing.T) {
	db := testDatabase()

	tests := []struct {
		uri  string
		want []string
	}{
		{"", []string{"a/1.flac", "b/y/1.flac", "b/y/2.flac", "top.wav"}},
		{"b", []string{"b/y/1.flac", "b/y/2.flac"}},
		{"b/y/", []string{"b/y/1.flac", "b/y/2.flac"}},
		{"top.wav", []string{"top.wav"}},
	}

	for _, tt := range tests {
		songs, err := db.Find(tt.uri)
		if err != nil {
			t.Errorf("Find(%q) returned error: %v", tt.uri, err)
			continue
		}
		if len(songs) != len(tt.want) {
			t.Errorf("Find(%q) returned %d songs, want %d", tt.uri, len(songs), len(tt.want))
			continue
		}
		for i := range songs {
			if songs[i].File != tt.want[i] {
				t.Errorf("Find(%q)[%d] = %s, want %s", tt.uri, i, songs[i].File, tt.want[i])
			}
		}
	}

	if _, err := db.Find("missing"); !errors.Is(err, library.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDatabaseWalk(t *testing.T) {
	entries, err := testDatabase().Walk("")
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}

	want := []string{"dir a", "file a/1.flac", "dir b", "dir b/y", "file b/y/1.flac", "file b/y/2.flac", "file top.wav"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, e := range entries {
		got := "dir " + e.Directory
		if e.Song != nil {
			got = "file " + e.Song.File
		}
		if got != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got, want[i])
		}
	}
}

func TestDatabaseList(t *testing.T) {
	entries, err := testDatabase().List("b")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(entries) != 1 || entries[0].Directory != "b/y" {
		t.Errorf("expected only directory b/y, got %+v", entries)
	}

	entries, err = testDatabase().List("")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("expected a, b and top.wav at root, got %d entries", len(entries))
	}

	if _, err := testDatabase().List("zzz"); !errors.Is(err, library.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDatabaseStats(t *testing.T) {
	stats := testDatabase().Stats()

	if stats.Artists != 2 {
		t.Errorf("expected 2 artists, got %d", stats.Artists)
	}
	if stats.Albums != 2 {
		t.Errorf("expected 2 albums, got %d", stats.Albums)
	}
	if stats.Songs != 4 {
		t.Errorf("expected 4 songs, got %d", stats.Songs)
	}
	if stats.Playtime != 65 {
		t.Errorf("expected playtime 65, got %d", stats.Playtime)
	}
}
