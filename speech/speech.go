// Package speech defines the speaker abstraction used by the narration
// sequencer, plus the playback options shared by all engine implementations.
package speech

import (
	"fmt"

	"golang.org/x/text/language"
)

// Speaker is an asynchronous text-to-speech engine handle. Speak returns as
// soon as the utterance has been issued; done is invoked exactly once from an
// engine-owned goroutine when the utterance finishes or fails. Pause suspends
// the current utterance in place. Cancel discards the current utterance
// immediately, with no completion callback for it.
type Speaker interface {
	Speak(text string, opts Options, done func(err error)) error
	Pause() error
	Cancel() error
}

// Options controls how an utterance is rendered.
type Options struct {
	Language string  // BCP-47 tag, e.g. "en-US"
	Pitch    float64 // 1.0 = neutral
	Rate     float64 // 1.0 = normal speed
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Language: "en-US",
		Pitch:    1.0,
		Rate:     1.0,
	}
}

// Validate checks option values for sanity.
func (o Options) Validate() error {
	if _, err := language.Parse(o.Language); err != nil {
		return fmt.Errorf("invalid language tag %q: %w", o.Language, err)
	}
	if o.Pitch < 0.5 || o.Pitch > 2.0 {
		return fmt.Errorf("pitch must be between 0.5 and 2.0, got %g", o.Pitch)
	}
	if o.Rate < 0.25 || o.Rate > 4.0 {
		return fmt.Errorf("rate must be between 0.25 and 4.0, got %g", o.Rate)
	}
	return nil
}
