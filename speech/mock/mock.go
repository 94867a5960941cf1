// Package mock provides a deterministic speaker for tests and for running the
// client without a speech synthesizer installed.
package mock

import (
	"sync"
	"time"

	"github.com/wayfarerhq/wayfarer/speech"
)

// Utterance records one Speak call.
type Utterance struct {
	Text string
	Opts speech.Options

	done     func(error)
	canceled bool
}

// Speaker implements speech.Speaker. In manual mode (New) utterances never
// complete until the test fires them with Complete; in auto mode (NewAuto)
// each utterance completes after a fixed delay unless paused or canceled
// first.
type Speaker struct {
	mu         sync.Mutex
	utterances []Utterance
	pauses     int
	cancels    int
	paused     bool

	auto     bool
	delay    time.Duration
	speakErr error
}

// New creates a manual-completion speaker for tests.
func New() *Speaker {
	return &Speaker{}
}

// NewAuto creates a speaker that completes each utterance after delay.
func NewAuto(delay time.Duration) *Speaker {
	return &Speaker{auto: true, delay: delay}
}

// Speak records the utterance. In auto mode completion is scheduled.
func (s *Speaker) Speak(text string, opts speech.Options, done func(err error)) error {
	s.mu.Lock()
	if s.speakErr != nil {
		err := s.speakErr
		s.mu.Unlock()
		return err
	}
	s.paused = false
	s.utterances = append(s.utterances, Utterance{Text: text, Opts: opts, done: done})
	idx := len(s.utterances) - 1
	s.mu.Unlock()

	if s.auto {
		go func() {
			time.Sleep(s.delay)
			s.Complete(idx, nil)
		}()
	}
	return nil
}

// Pause suspends the current utterance. Its completion will not fire until
// the speaker is asked to speak again or the test fires it explicitly.
func (s *Speaker) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pauses++
	s.paused = true
	return nil
}

// Cancel discards the in-flight utterance; its completion callback is dropped.
func (s *Speaker) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancels++
	s.paused = false
	if n := len(s.utterances); n > 0 {
		s.utterances[n-1].canceled = true
	}
	return nil
}

// Complete fires the completion callback of utterance i, unless it was
// canceled or the speaker is paused. The callback runs without the speaker's
// lock held, mirroring an engine callback goroutine.
func (s *Speaker) Complete(i int, err error) {
	s.mu.Lock()
	if i < 0 || i >= len(s.utterances) || s.utterances[i].canceled || s.paused {
		s.mu.Unlock()
		return
	}
	done := s.utterances[i].done
	s.utterances[i].done = nil
	s.mu.Unlock()

	if done != nil {
		done(err)
	}
}

// ForceComplete fires utterance i's callback even if it was canceled or the
// speaker is paused. Tests use it to model an engine that delivers a stale
// completion despite cancellation.
func (s *Speaker) ForceComplete(i int, err error) {
	s.mu.Lock()
	var done func(error)
	if i >= 0 && i < len(s.utterances) {
		done = s.utterances[i].done
		s.utterances[i].done = nil
	}
	s.mu.Unlock()

	if done != nil {
		done(err)
	}
}

// SetSpeakError makes subsequent Speak calls fail synchronously.
func (s *Speaker) SetSpeakError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speakErr = err
}

// Texts returns the texts of all recorded utterances in order.
func (s *Speaker) Texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	texts := make([]string, len(s.utterances))
	for i, u := range s.utterances {
		texts[i] = u.Text
	}
	return texts
}

// Count returns the number of Speak calls recorded.
func (s *Speaker) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.utterances)
}

// Pauses returns the number of Pause calls.
func (s *Speaker) Pauses() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pauses
}

// Cancels returns the number of Cancel calls.
func (s *Speaker) Cancels() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancels
}
