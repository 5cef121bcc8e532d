package player

// PauseMode selects what the pause command does
type PauseMode int

const (
	PauseToggle PauseMode = iota
	PauseOn
	PauseOff
)

// Play starts playback at position, or resumes/starts from the current song
// when position is negative. Playing an empty queue is a no-op.
func (s *State) Play(position int) (bool, error) {
	if position >= 0 {
		if position >= s.queue.Length() {
			return false, ErrBadSongIndex
		}
		s.startAt(position, StatePlaying)
		return true, nil
	}

	switch s.state {
	case StatePlaying:
		return false, nil
	case StatePaused:
		s.setState(StatePlaying)
		return true, nil
	}

	if s.queue.Length() == 0 {
		return false, nil
	}
	cur := s.queue.CurrentIndex()
	if cur < 0 {
		cur = 0
	}
	s.startAt(cur, StatePlaying)
	return true, nil
}

// PlayID starts playback of the track with id, or like Play(-1) when id is negative
func (s *State) PlayID(id int) (bool, error) {
	if id < 0 {
		return s.Play(-1)
	}
	pos := s.queue.FindID(id)
	if pos < 0 {
		return false, ErrNoSuchSongID
	}
	return s.Play(pos)
}

// Pause pauses or resumes. A stopped player is left alone.
func (s *State) Pause(mode PauseMode) bool {
	if s.state != StatePlaying && s.state != StatePaused {
		return false
	}

	target := StatePaused
	switch mode {
	case PauseToggle:
		if s.state == StatePaused {
			target = StatePlaying
		}
	case PauseOff:
		target = StatePlaying
	}

	if target == s.state {
		return false
	}
	s.setState(target)
	return true
}

// Stop stops playback, keeping the current song marker
func (s *State) Stop() bool {
	if s.state == StateStopped {
		return false
	}
	s.setState(StateStopped)
	s.elapsed = 0
	return true
}

// Next moves to the next song. Consume removes the finished song first;
// past the end the queue wraps with repeat or stops without it.
func (s *State) Next() bool {
	if s.state != StatePlaying && s.state != StatePaused {
		return false
	}

	cur := s.queue.CurrentIndex()
	next := cur + 1
	if s.options[OptionConsume] && cur >= 0 {
		if err := s.queue.Delete(cur); err == nil {
			next = cur
		}
	}

	if next >= s.queue.Length() {
		if !s.options[OptionRepeat] || s.queue.Length() == 0 {
			s.stopAtEnd()
			return true
		}
		next = 0
	}
	s.startAt(next, s.state)
	return true
}

// Previous moves to the previous song, restarting the first one
func (s *State) Previous() bool {
	if s.state != StatePlaying && s.state != StatePaused {
		return false
	}

	prev := s.queue.CurrentIndex() - 1
	if prev < 0 {
		prev = 0
		if s.options[OptionRepeat] {
			prev = s.queue.Length() - 1
		}
	}
	if prev < 0 {
		s.stopAtEnd()
		return true
	}
	s.startAt(prev, s.state)
	return true
}

// Seek jumps to seconds within the song at position and plays it
func (s *State) Seek(position int, seconds float64) error {
	if position < 0 || position >= s.queue.Length() {
		return ErrBadSongIndex
	}
	target := s.state
	if target != StatePaused {
		target = StatePlaying
	}
	if position != s.queue.CurrentIndex() || s.state != target {
		s.startAt(position, target)
	}
	s.seekTo(seconds)
	return nil
}

// SeekID is Seek addressed by song id
func (s *State) SeekID(id int, seconds float64) error {
	pos := s.queue.FindID(id)
	if pos < 0 {
		return ErrNoSuchSongID
	}
	return s.Seek(pos, seconds)
}

// SeekCur seeks within the current song, absolute or relative
func (s *State) SeekCur(seconds float64, relative bool) error {
	if s.state != StatePlaying && s.state != StatePaused {
		return ErrNotPlaying
	}
	if relative {
		seconds += s.elapsed
	}
	s.seekTo(seconds)
	return nil
}

func (s *State) seekTo(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	if cur, err := s.queue.Current(); err == nil && cur.Time > 0 && seconds > float64(cur.Time) {
		seconds = float64(cur.Time)
	}
	s.elapsed = seconds
}

// nextIndex returns the position that follows the current song, or -1
func (s *State) nextIndex() int {
	cur := s.queue.CurrentIndex()
	if cur < 0 {
		return -1
	}
	if s.options[OptionSingle] && !s.options[OptionRepeat] {
		return -1
	}
	if s.queue.HasNext() {
		return cur + 1
	}
	if s.options[OptionRepeat] && s.queue.Length() > 0 {
		return 0
	}
	return -1
}

func (s *State) startAt(position int, state PlaybackState) {
	_ = s.queue.SetCurrent(position)
	s.elapsed = 0
	s.setState(state)
}

func (s *State) stopAtEnd() {
	_ = s.queue.SetCurrent(-1)
	s.elapsed = 0
	s.setState(StateStopped)
}

// setState switches playback state, accounting play time
func (s *State) setState(state PlaybackState) {
	now := s.now()
	if s.state == StatePlaying && state != StatePlaying {
		s.playtime += now.Sub(s.playingSince)
	}
	if s.state != StatePlaying && state == StatePlaying {
		s.playingSince = now
	}
	s.state = state
}
