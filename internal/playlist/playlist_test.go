package playlist_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/famish99/fakempd/internal/library"
	"github.com/famish99/fakempd/internal/playlist"
)

func filled(n int) *playlist.Playlist {
	pl := playlist.NewPlaylist()
	for i := 0; i < n; i++ {
		pl.Add(library.Song{File: fmt.Sprintf("song%d.flac", i)})
	}
	return pl
}

func TestDeleteKeepsPositionsContiguous(t *testing.T) {
	for n := 1; n <= 5; n++ {
		for k := 0; k < n; k++ {
			pl := filled(n)
			before := pl.GetAll()

			if err := pl.Delete(k); err != nil {
				t.Fatalf("n=%d k=%d: Delete returned error: %v", n, k, err)
			}

			after := pl.GetAll()
			if len(after) != n-1 {
				t.Fatalf("n=%d k=%d: expected length %d, got %d", n, k, n-1, len(after))
			}
			for i, track := range after {
				if track.Pos != i {
					t.Errorf("n=%d k=%d: track %d has Pos %d", n, k, i, track.Pos)
				}
				orig := i
				if i >= k {
					orig = i + 1
				}
				if track.File != before[orig].File || track.ID != before[orig].ID {
					t.Errorf("n=%d k=%d: position %d holds %s, want %s", n, k, i, track.File, before[orig].File)
				}
			}
		}
	}
}

func TestDeleteRange(t *testing.T) {
	pl := filled(5)
	if err := pl.DeleteRange(1, 3); err != nil {
		t.Fatalf("DeleteRange returned error: %v", err)
	}

	got := pl.Songs()
	want := []string{"song0.flac", "song3.flac", "song4.flac"}
	if len(got) != len(want) {
		t.Fatalf("expected %d songs, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].File != want[i] {
			t.Errorf("position %d = %s, want %s", i, got[i].File, want[i])
		}
	}
}

func TestDeleteOutOfRange(t *testing.T) {
	pl := filled(2)
	for _, pos := range []int{-1, 2, 10} {
		if err := pl.Delete(pos); !errors.Is(err, playlist.ErrBadIndex) {
			t.Errorf("Delete(%d): expected ErrBadIndex, got %v", pos, err)
		}
	}
	if pl.Length() != 2 {
		t.Errorf("failed deletes must not change length, got %d", pl.Length())
	}
}

func TestDeleteAdjustsCurrent(t *testing.T) {
	pl := filled(4)
	if err := pl.SetCurrent(2); err != nil {
		t.Fatal(err)
	}

	if err := pl.Delete(0); err != nil {
		t.Fatal(err)
	}
	if pl.CurrentIndex() != 1 {
		t.Errorf("expected current to shift to 1, got %d", pl.CurrentIndex())
	}
	cur, err := pl.Current()
	if err != nil || cur.File != "song2.flac" {
		t.Errorf("expected current song2.flac, got %v err=%v", cur, err)
	}

	if err := pl.Delete(1); err != nil {
		t.Fatal(err)
	}
	if pl.CurrentIndex() != -1 {
		t.Errorf("deleting current track should clear current, got %d", pl.CurrentIndex())
	}
}

func TestAddAt(t *testing.T) {
	pl := filled(3)
	if err := pl.SetCurrent(1); err != nil {
		t.Fatal(err)
	}

	track, err := pl.AddAt(library.Song{File: "new.flac"}, 0)
	if err != nil {
		t.Fatalf("AddAt returned error: %v", err)
	}
	if track.Pos != 0 {
		t.Errorf("expected Pos 0, got %d", track.Pos)
	}
	if pl.CurrentIndex() != 2 {
		t.Errorf("expected current shifted to 2, got %d", pl.CurrentIndex())
	}
	if _, err := pl.AddAt(library.Song{File: "x"}, 99); !errors.Is(err, playlist.ErrBadIndex) {
		t.Errorf("expected ErrBadIndex, got %v", err)
	}
}

func TestIDsAreStable(t *testing.T) {
	pl := filled(3)
	id := pl.GetAll()[2].ID

	if err := pl.Delete(0); err != nil {
		t.Fatal(err)
	}
	if pos := pl.FindID(id); pos != 1 {
		t.Errorf("expected id %d at position 1, got %d", id, pos)
	}
	if err := pl.DeleteID(id); err != nil {
		t.Fatalf("DeleteID returned error: %v", err)
	}
	if err := pl.DeleteID(id); !errors.Is(err, playlist.ErrNoSuchID) {
		t.Errorf("expected ErrNoSuchID, got %v", err)
	}
}

func TestVersionAndChanges(t *testing.T) {
	pl := filled(3)
	v := pl.Version()

	if changes := pl.ChangesSince(v); len(changes) != 0 {
		t.Errorf("expected no changes, got %d", len(changes))
	}

	if err := pl.Delete(0); err != nil {
		t.Fatal(err)
	}
	if pl.Version() <= v {
		t.Errorf("expected version to advance past %d, got %d", v, pl.Version())
	}

	changes := pl.ChangesSince(v)
	if len(changes) != 2 {
		t.Fatalf("expected both shifted tracks reported, got %d", len(changes))
	}
	if changes[0].Pos != 0 || changes[1].Pos != 1 {
		t.Errorf("unexpected positions %d, %d", changes[0].Pos, changes[1].Pos)
	}
}

func TestClear(t *testing.T) {
	pl := filled(3)
	_ = pl.SetCurrent(0)
	pl.Clear()

	if pl.Length() != 0 {
		t.Errorf("expected empty playlist, got %d", pl.Length())
	}
	if pl.CurrentIndex() != -1 {
		t.Errorf("expected no current track, got %d", pl.CurrentIndex())
	}
	if _, err := pl.Current(); err == nil {
		t.Error("expected error for Current on empty playlist")
	}
}
