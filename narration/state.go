package narration

// State represents the playback state of the sequencer.
type State int

const (
	// StateIdle indicates nothing is playing and no script is loaded.
	StateIdle State = iota
	// StateSpeaking indicates a unit is being spoken or about to be spoken.
	StateSpeaking
	// StatePaused indicates playback is suspended at the current unit.
	StatePaused
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSpeaking:
		return "speaking"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// CanToggle returns true if TogglePlayback has an effect in this state.
func (s State) CanToggle() bool {
	return s == StateSpeaking || s == StatePaused
}

// Active returns true if a script is loaded and the cursor is meaningful.
func (s State) Active() bool {
	return s != StateIdle
}
