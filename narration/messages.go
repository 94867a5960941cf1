package narration

// Messages emitted by the sequencer for Bubble Tea consumption. The UI
// forwards them into the program with Program.Send; every message carries the
// playback session it belongs to so stale deliveries can be recognized.

// UnitStartedMsg indicates a narration unit has started speaking.
type UnitStartedMsg struct {
	Session uint64
	Index   int    // cursor position of the unit
	Text    string // unit text as spoken
	Total   int    // total units in the script
}

// PausedMsg indicates playback was paused at the current unit.
type PausedMsg struct {
	Session uint64
	Index   int
}

// ResumedMsg indicates playback resumed by re-issuing the current unit.
type ResumedMsg struct {
	Session uint64
	Index   int
}

// StoppedMsg indicates playback was stopped and the script discarded.
type StoppedMsg struct {
	Session uint64
}

// FinishedMsg indicates the script played through to the end.
type FinishedMsg struct {
	Session uint64
}

// PlaybackErrorMsg surfaces a speech-engine failure as a user-visible,
// non-fatal notice. The sequencer is already Idle when this is delivered.
type PlaybackErrorMsg struct {
	Session uint64
	Err     *PlaybackError
}
