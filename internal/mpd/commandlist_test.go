package mpd

import (
	"strings"
	"testing"
)

func TestEmptyCommandList(t *testing.T) {
	_, addr := startServer(t)
	c := dialRaw(t, addr)

	c.send("command_list_begin", "command_list_end", "status")
	if got := c.readLine(); got != "OK" {
		t.Fatalf("empty list = %q, want OK", got)
	}
	// nothing else was written before the status reply
	if got := c.readLine(); !strings.HasPrefix(got, "volume: ") {
		t.Errorf("expected status body next, got %q", got)
	}
}

func TestCommandListSilent(t *testing.T) {
	_, addr := startServer(t)
	c := dialRaw(t, addr)

	c.send("command_list_begin", `addid "a/1.flac"`, "setvol 30", `addid "a/2.flac"`, "command_list_end")
	got := c.readResponse()
	if want := []string{"Id: 0", "Id: 1", "OK"}; !equalLines(got, want) {
		t.Fatalf("list response = %q, want %q", got, want)
	}

	st := attrs(c.command("status"))
	if st["playlistlength"] != "2" || st["volume"] != "30" {
		t.Errorf("status after list = %v", st)
	}
}

func TestCommandListOK(t *testing.T) {
	_, addr := startServer(t)
	c := dialRaw(t, addr)

	c.send("command_list_ok_begin", "ping", `addid "b/4.flac"`, "command_list_end")
	got := c.readResponse()
	if want := []string{"list_OK", "Id: 0", "list_OK", "OK"}; !equalLines(got, want) {
		t.Errorf("list response = %q, want %q", got, want)
	}
}

func TestCommandListStopsAtFirstError(t *testing.T) {
	_, addr := startServer(t)
	c := dialRaw(t, addr)

	c.send("command_list_begin", `addid "a/1.flac"`, "setvol 200", "setvol 10", `add "a/2.flac"`, "command_list_end")
	got := c.readResponse()
	if want := []string{"Id: 0", "ACK [2@1] {setvol} invalid volume value"}; !equalLines(got, want) {
		t.Fatalf("list response = %q, want %q", got, want)
	}

	// commands before the failure took effect, later ones did not
	st := attrs(c.command("status"))
	if st["playlistlength"] != "1" {
		t.Errorf("playlistlength = %s, want 1", st["playlistlength"])
	}
	if st["volume"] != "100" {
		t.Errorf("volume = %s, want 100", st["volume"])
	}
}

func TestCommandListAckIndex(t *testing.T) {
	_, addr := startServer(t)
	c := dialRaw(t, addr)

	c.send("command_list_ok_begin", "ping", "status", "frobnicate", "ping", "command_list_end")
	got := c.readResponse()

	if n := len(got); n < 3 {
		t.Fatalf("short response %q", got)
	}
	if got[0] != "list_OK" {
		t.Errorf("first reply = %q, want list_OK", got[0])
	}
	if got[len(got)-2] != "list_OK" {
		t.Errorf("status reply not acknowledged: %q", got)
	}
	if last, want := got[len(got)-1], `ACK [2@2] {} unknown command "frobnicate"`; last != want {
		t.Errorf("ack = %q, want %q", last, want)
	}
}

func TestCommandListRejectsConnectionCommands(t *testing.T) {
	_, addr := startServer(t)
	c := dialRaw(t, addr)

	c.send("command_list_begin", "ping", "idle", "command_list_end")
	got := c.readResponse()
	if want := []string{"ACK [2@1] {idle} not allowed in command list"}; !equalLines(got, want) {
		t.Errorf("list response = %q, want %q", got, want)
	}
	c.expectOK("ping")
}

func TestCommandListEventsBroadcast(t *testing.T) {
	_, addr := startServer(t)
	a := dialRaw(t, addr)
	b := dialRaw(t, addr)

	b.send("command_list_begin", "setvol 60", "repeat 1", "setvol 60", "command_list_end")
	if got := b.readResponse(); !equalLines(got, []string{"OK"}) {
		t.Fatalf("list response = %q", got)
	}

	got := a.command("idle")
	if want := []string{"changed: mixer", "changed: options", "OK"}; !equalLines(got, want) {
		t.Errorf("idle = %q, want %q", got, want)
	}
}

func TestCommandListIsAtomic(t *testing.T) {
	_, addr := startServer(t)
	a := dialRaw(t, addr)
	b := dialRaw(t, addr)

	lines := []string{"command_list_begin"}
	for i := 0; i < 50; i++ {
		lines = append(lines, `add "a/1.flac"`)
	}
	lines = append(lines, "command_list_end")

	// a observes the queue length while b's list runs; it never sees a
	// partially applied list
	b.send(lines...)
	for i := 0; i < 20; i++ {
		n := attrs(a.command("status"))["playlistlength"]
		if n != "0" && n != "50" {
			t.Fatalf("observed partial list: playlistlength %s", n)
		}
	}
	if got := b.readResponse(); !equalLines(got, []string{"OK"}) {
		t.Errorf("list response = %q", got)
	}
}
