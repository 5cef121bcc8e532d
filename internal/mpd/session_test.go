package mpd

import (
	"testing"
)

func TestSessionEventsDeduplicated(t *testing.T) {
	sess := newSession(1, nil)
	sess.addEvents([]Subsystem{SubsystemMixer, SubsystemPlayer})
	sess.addEvents([]Subsystem{SubsystemMixer, SubsystemOptions})

	got := sess.takeEvents(nil)
	want := []Subsystem{SubsystemMixer, SubsystemPlayer, SubsystemOptions}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, got[i], want[i])
		}
	}
	if len(sess.events) != 0 {
		t.Errorf("pending events not cleared: %v", sess.events)
	}
}

func TestSessionTakeEventsFilter(t *testing.T) {
	sess := newSession(1, nil)
	sess.addEvents([]Subsystem{SubsystemMixer, SubsystemPlayer, SubsystemPlaylist})

	got := sess.takeEvents([]Subsystem{SubsystemPlayer})
	if len(got) != 1 || got[0] != SubsystemPlayer {
		t.Errorf("filtered take = %v, want [player]", got)
	}

	rest := sess.takeEvents(nil)
	if len(rest) != 2 || rest[0] != SubsystemMixer || rest[1] != SubsystemPlaylist {
		t.Errorf("remaining = %v, want [mixer playlist]", rest)
	}
}

func TestSessionSignalNonBlocking(t *testing.T) {
	sess := newSession(1, nil)

	// repeated signals coalesce into one wake-up
	sess.signal()
	sess.signal()
	sess.signal()

	select {
	case <-sess.wake:
	default:
		t.Fatal("expected a pending wake-up")
	}
	select {
	case <-sess.wake:
		t.Fatal("signals should coalesce")
	default:
	}

	sess.closed = true
	sess.signal()
	select {
	case <-sess.wake:
		t.Fatal("closed session must not be signalled")
	default:
	}
}
