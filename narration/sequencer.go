package narration

import (
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/wayfarerhq/wayfarer/speech"
	"github.com/wayfarerhq/wayfarer/tour"
)

// Sequencer drives turn-by-turn narration of a stop's description. Utterances
// are issued strictly one at a time; the next unit is only requested after the
// speaker reports completion of the current one. The speaker delivers
// completion callbacks on its own goroutine, so cursor and state are guarded
// by a single mutex, and every callback carries the playback session id it was
// issued under: a callback whose session no longer matches is dropped.
type Sequencer struct {
	mu      sync.Mutex
	speaker speech.Speaker
	opts    speech.Options
	notify  func(tea.Msg)

	units   []string
	cursor  int
	state   State
	session uint64
}

// NewSequencer creates a sequencer speaking through the given speaker. notify
// receives playback messages and may be nil; with Bubble Tea it is typically
// Program.Send.
func NewSequencer(speaker speech.Speaker, opts speech.Options, notify func(tea.Msg)) *Sequencer {
	return &Sequencer{
		speaker: speaker,
		opts:    opts,
		notify:  notify,
		state:   StateIdle,
	}
}

// SelectStop cancels any in-flight speech, builds a fresh script from the
// stop's description and begins speaking. The opening utterance is the stop's
// title followed by the first unit; playback then continues unit by unit.
// Prior state is always discarded, whatever it was.
func (s *Sequencer) SelectStop(stop tour.Stop) {
	s.mu.Lock()
	s.session++
	sid := s.session
	if err := s.speaker.Cancel(); err != nil {
		log.Debug("speaker cancel before selection", "err", err)
	}
	s.units = Segment(stop.Description)
	s.cursor = 0
	s.state = StateSpeaking
	first := s.units[0]
	total := len(s.units)
	s.mu.Unlock()

	log.Debug("narration selected", "stop", stop.Title, "units", total, "session", sid)
	s.emit(UnitStartedMsg{Session: sid, Index: 0, Text: first, Total: total})
	s.issue(openingUtterance(stop.Title, first), sid, 1)
}

// TogglePlayback pauses a speaking narration or resumes a paused one. The
// cursor never moves: resuming re-issues the whole unit at the cursor rather
// than unpausing mid-utterance, since engines generally cannot resume at an
// exact word. Toggling while Idle returns ErrNoScript.
func (s *Sequencer) TogglePlayback() error {
	s.mu.Lock()
	switch s.state {
	case StateSpeaking:
		s.state = StatePaused
		sid := s.session
		idx := s.cursor
		s.mu.Unlock()

		if err := s.speaker.Pause(); err != nil {
			log.Debug("speaker pause", "err", err)
		}
		s.emit(PausedMsg{Session: sid, Index: idx})
		return nil

	case StatePaused:
		// Invalidate the suspended utterance so its completion, if the
		// engine still delivers one, cannot advance past the re-issue.
		s.session++
		sid := s.session
		idx := s.cursor
		text := s.units[idx]
		s.state = StateSpeaking
		s.mu.Unlock()

		if err := s.speaker.Cancel(); err != nil {
			log.Debug("speaker cancel before resume", "err", err)
		}
		s.emit(ResumedMsg{Session: sid, Index: idx})
		s.issue(text, sid, idx+1)
		return nil

	default:
		s.mu.Unlock()
		return ErrNoScript
	}
}

// Stop halts the speaker unconditionally, clears the script and resets to
// Idle. Safe to call in any state.
func (s *Sequencer) Stop() {
	s.mu.Lock()
	s.session++
	sid := s.session
	s.reset()
	s.mu.Unlock()

	if err := s.speaker.Cancel(); err != nil {
		log.Debug("speaker cancel on stop", "err", err)
	}
	s.emit(StoppedMsg{Session: sid})
}

// State returns the current playback state.
func (s *Sequencer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Cursor returns the index of the unit currently speaking or about to speak.
// Meaningful only while State is not Idle.
func (s *Sequencer) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Session returns the current playback session id.
func (s *Sequencer) Session() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Script returns a copy of the current narration units.
func (s *Sequencer) Script() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	units := make([]string, len(s.units))
	copy(units, s.units)
	return units
}

// issue hands one utterance to the speaker. A synchronous Speak failure is
// funneled through the same completion path as an asynchronous one.
func (s *Sequencer) issue(text string, sid uint64, next int) {
	err := s.speaker.Speak(text, s.opts, func(err error) {
		s.utteranceDone(sid, next, err)
	})
	if err != nil {
		s.utteranceDone(sid, next, err)
	}
}

// utteranceDone is the single completion path for every utterance. next is
// the unit index that follows the utterance that just finished.
func (s *Sequencer) utteranceDone(sid uint64, next int, err error) {
	s.mu.Lock()
	if sid != s.session {
		s.mu.Unlock()
		log.Debug("dropping stale utterance callback", "session", sid)
		return
	}

	if err != nil {
		unit := s.cursor
		s.session++
		s.reset()
		s.mu.Unlock()
		s.emit(PlaybackErrorMsg{Session: sid, Err: &PlaybackError{Err: err, Unit: unit}})
		return
	}

	if s.state != StateSpeaking {
		// Paused while the utterance was in flight. Do not advance:
		// resuming must re-issue the unit at the current cursor.
		s.mu.Unlock()
		return
	}

	if next >= len(s.units) {
		s.session++
		s.reset()
		s.mu.Unlock()
		if cerr := s.speaker.Cancel(); cerr != nil {
			log.Debug("speaker cancel at end of script", "err", cerr)
		}
		s.emit(FinishedMsg{Session: sid})
		return
	}

	s.cursor = next
	text := s.units[next]
	total := len(s.units)
	s.mu.Unlock()

	s.emit(UnitStartedMsg{Session: sid, Index: next, Text: text, Total: total})
	s.issue(text, sid, next+1)
}

// reset clears script and cursor. Caller holds the mutex.
func (s *Sequencer) reset() {
	s.units = nil
	s.cursor = 0
	s.state = StateIdle
}

func (s *Sequencer) emit(msg tea.Msg) {
	if s.notify != nil {
		s.notify(msg)
	}
}

// openingUtterance joins a stop title and the first unit into the single
// combined utterance spoken on selection.
func openingUtterance(title, first string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return first
	}
	if !strings.HasSuffix(title, ".") && !strings.HasSuffix(title, "!") && !strings.HasSuffix(title, "?") {
		title += "."
	}
	return title + " " + first
}
