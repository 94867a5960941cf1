package ui

import (
	"github.com/wayfarerhq/wayfarer/tour"
)

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

// statusMessageTimeoutMsg expires a transient status bar message.
type statusMessageTimeoutMsg struct{}

type toursLoadedMsg struct {
	tours []tour.Tour
}

type stopsLoadedMsg struct {
	tourID string
	stops  []tour.Stop
}

// openTourMsg opens a tour directly, bypassing the tour list.
type openTourMsg struct {
	tour  tour.Tour
	stops []tour.Stop
}

// agentReplyMsg carries the agent's reply fragments for one sent message.
type agentReplyMsg struct {
	replies []string
}

// agentErrMsg is a non-fatal chat notice; the conversation stays usable.
type agentErrMsg struct{ err error }

type draftListMsg struct {
	paths []string
}

type draftChangedMsg struct {
	path string
}

type draftWatchStartedMsg struct {
	events chan draftChangedMsg
}

// editorFinishedMsg is delivered when the external $EDITOR exits.
type editorFinishedMsg struct {
	stopID string
	err    error
}

type descriptionSavedMsg struct {
	stop tour.Stop
}

type copiedShareURLMsg struct {
	url string
	err error
}
