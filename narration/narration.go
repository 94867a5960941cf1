// Package narration turns a stop's description into a spoken, interruptible,
// progress-tracked narration. It owns the playback state machine and the
// cursor into the segmented script; speech synthesis itself is delegated to a
// speech.Speaker.
package narration
