package narration

import "errors"

// ErrNoScript is returned when playback is toggled with no stop selected.
var ErrNoScript = errors.New("no narration script loaded")

// PlaybackError wraps a speech-engine failure with the unit it occurred on.
// It is always non-fatal: the sequencer transitions to Idle and the UI shows
// a notice. There is no retry; the user re-selects the stop to try again.
type PlaybackError struct {
	Err  error
	Unit int // index of the unit that was speaking, -1 if unknown
}

// Error implements the error interface.
func (e *PlaybackError) Error() string {
	if e.Err != nil {
		return "speech playback failed: " + e.Err.Error()
	}
	return "speech playback failed"
}

// Unwrap returns the underlying engine error.
func (e *PlaybackError) Unwrap() error {
	return e.Err
}
