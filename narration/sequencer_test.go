package narration

import (
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wayfarerhq/wayfarer/speech"
	"github.com/wayfarerhq/wayfarer/speech/mock"
	"github.com/wayfarerhq/wayfarer/tour"
)

type recorder struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recorder) send(msg tea.Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recorder) all() []tea.Msg {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]tea.Msg, len(r.msgs))
	copy(out, r.msgs)
	return out
}

func (r *recorder) last() tea.Msg {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.msgs) == 0 {
		return nil
	}
	return r.msgs[len(r.msgs)-1]
}

func newTestSequencer() (*Sequencer, *mock.Speaker, *recorder) {
	spk := mock.New()
	rec := &recorder{}
	return NewSequencer(spk, speech.DefaultOptions(), rec.send), spk, rec
}

func stopWith(title, desc string) tour.Stop {
	return tour.Stop{Title: title, Description: desc}
}

func TestSelectStopBeginsSpeaking(t *testing.T) {
	seq, spk, rec := newTestSequencer()

	seq.SelectStop(stopWith("The Arch", "See the arch. Built in 1900!"))

	if got := seq.State(); got != StateSpeaking {
		t.Fatalf("state = %v, want %v", got, StateSpeaking)
	}
	if got := seq.Cursor(); got != 0 {
		t.Errorf("cursor = %d, want 0", got)
	}
	if got := spk.Count(); got != 1 {
		t.Fatalf("speak calls = %d, want 1", got)
	}
	if got, want := spk.Texts()[0], "The Arch. See the arch."; got != want {
		t.Errorf("opening utterance = %q, want %q", got, want)
	}

	msg, ok := rec.last().(UnitStartedMsg)
	if !ok {
		t.Fatalf("last message = %T, want UnitStartedMsg", rec.last())
	}
	if msg.Index != 0 || msg.Total != 2 || msg.Text != "See the arch." {
		t.Errorf("unexpected UnitStartedMsg: %+v", msg)
	}
}

func TestSelectStopEmptyDescriptionSpeaksPlaceholder(t *testing.T) {
	seq, spk, _ := newTestSequencer()

	seq.SelectStop(stopWith("Quiet Corner", ""))

	if got, want := spk.Texts()[0], "Quiet Corner. "+Placeholder; got != want {
		t.Errorf("opening utterance = %q, want %q", got, want)
	}
	if got := seq.Script(); len(got) != 1 || got[0] != Placeholder {
		t.Errorf("script = %q, want single placeholder unit", got)
	}
}

func TestAdvanceThroughScript(t *testing.T) {
	seq, spk, rec := newTestSequencer()

	seq.SelectStop(stopWith("Fountain", "One. Two. Three."))

	spk.Complete(0, nil)
	if got := seq.Cursor(); got != 1 {
		t.Fatalf("cursor after first unit = %d, want 1", got)
	}
	if got, want := spk.Texts()[1], "Two."; got != want {
		t.Errorf("second utterance = %q, want %q", got, want)
	}

	spk.Complete(1, nil)
	if got := seq.Cursor(); got != 2 {
		t.Fatalf("cursor after second unit = %d, want 2", got)
	}

	spk.Complete(2, nil)
	if got := seq.State(); got != StateIdle {
		t.Errorf("state after script end = %v, want %v", got, StateIdle)
	}
	if _, ok := rec.last().(FinishedMsg); !ok {
		t.Errorf("last message = %T, want FinishedMsg", rec.last())
	}
	if got := seq.Script(); len(got) != 0 {
		t.Errorf("script after finish = %q, want empty", got)
	}
}

func TestTogglePauseAndResume(t *testing.T) {
	seq, spk, rec := newTestSequencer()

	seq.SelectStop(stopWith("Fountain", "One. Two. Three."))
	spk.Complete(0, nil) // now speaking unit 1

	if err := seq.TogglePlayback(); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if got := seq.State(); got != StatePaused {
		t.Fatalf("state = %v, want %v", got, StatePaused)
	}
	if got := spk.Pauses(); got != 1 {
		t.Errorf("pause calls = %d, want 1", got)
	}
	if msg, ok := rec.last().(PausedMsg); !ok || msg.Index != 1 {
		t.Errorf("last message = %#v, want PausedMsg at index 1", rec.last())
	}

	if err := seq.TogglePlayback(); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if got := seq.State(); got != StateSpeaking {
		t.Fatalf("state = %v, want %v", got, StateSpeaking)
	}
	// Resume re-issues the whole unit at the cursor.
	if got := seq.Cursor(); got != 1 {
		t.Errorf("cursor after resume = %d, want 1", got)
	}
	texts := spk.Texts()
	if got, want := texts[len(texts)-1], "Two."; got != want {
		t.Errorf("re-issued utterance = %q, want %q", got, want)
	}

	// And playback continues from there.
	spk.Complete(len(texts)-1, nil)
	if got := seq.Cursor(); got != 2 {
		t.Errorf("cursor after resumed unit = %d, want 2", got)
	}
}

func TestToggleWhileIdleReturnsError(t *testing.T) {
	seq, _, _ := newTestSequencer()
	if err := seq.TogglePlayback(); !errors.Is(err, ErrNoScript) {
		t.Errorf("toggle while idle = %v, want ErrNoScript", err)
	}
}

func TestCompletionWhilePausedDoesNotAdvance(t *testing.T) {
	seq, spk, _ := newTestSequencer()

	seq.SelectStop(stopWith("Fountain", "One. Two."))
	if err := seq.TogglePlayback(); err != nil {
		t.Fatalf("pause: %v", err)
	}

	// The engine delivers the suspended utterance's completion anyway.
	spk.ForceComplete(0, nil)

	if got := seq.Cursor(); got != 0 {
		t.Errorf("cursor = %d, want 0 after completion while paused", got)
	}
	if got := seq.State(); got != StatePaused {
		t.Errorf("state = %v, want %v", got, StatePaused)
	}
}

func TestStaleCompletionAfterResumeIsDropped(t *testing.T) {
	seq, spk, _ := newTestSequencer()

	seq.SelectStop(stopWith("Fountain", "One. Two. Three."))
	if err := seq.TogglePlayback(); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if err := seq.TogglePlayback(); err != nil {
		t.Fatalf("resume: %v", err)
	}

	// The pre-pause utterance completes late. It belongs to the old
	// session, so it must not advance past the re-issued unit.
	spk.ForceComplete(0, nil)

	if got := seq.Cursor(); got != 0 {
		t.Errorf("cursor = %d, want 0", got)
	}
	// Only the re-issued utterance's completion advances.
	spk.Complete(1, nil)
	if got := seq.Cursor(); got != 1 {
		t.Errorf("cursor = %d, want 1", got)
	}
}

func TestSelectStopDiscardsPriorScript(t *testing.T) {
	seq, spk, _ := newTestSequencer()

	seq.SelectStop(stopWith("A", "A one. A two. A three."))
	spk.Complete(0, nil)

	seq.SelectStop(stopWith("B", "B one. B two."))

	if got := seq.Cursor(); got != 0 {
		t.Fatalf("cursor = %d, want 0", got)
	}
	if got := seq.Script(); len(got) != 2 || got[0] != "B one." {
		t.Fatalf("script = %q, want B's units", got)
	}

	// A's in-flight utterance reports completion after the switch; it
	// must not advance B's narration.
	before := spk.Count()
	spk.ForceComplete(1, nil)
	if got := seq.Cursor(); got != 0 {
		t.Errorf("cursor = %d, want 0 after stale completion", got)
	}
	if got := spk.Count(); got != before {
		t.Errorf("speak calls = %d, want %d (stale callback issued speech)", got, before)
	}
}

func TestStopResetsToIdle(t *testing.T) {
	seq, spk, rec := newTestSequencer()

	seq.SelectStop(stopWith("A", "A one. A two."))
	seq.Stop()

	if got := seq.State(); got != StateIdle {
		t.Errorf("state = %v, want %v", got, StateIdle)
	}
	if got := spk.Cancels(); got == 0 {
		t.Error("expected speaker cancel on stop")
	}
	if _, ok := rec.last().(StoppedMsg); !ok {
		t.Errorf("last message = %T, want StoppedMsg", rec.last())
	}

	// The stopped script's utterance must stay dead.
	spk.ForceComplete(0, nil)
	if got := seq.State(); got != StateIdle {
		t.Errorf("state after stale completion = %v, want %v", got, StateIdle)
	}
}

func TestPlaybackErrorResetsAndReports(t *testing.T) {
	seq, spk, rec := newTestSequencer()

	seq.SelectStop(stopWith("A", "A one. A two."))
	boom := errors.New("device gone")
	spk.Complete(0, boom)

	if got := seq.State(); got != StateIdle {
		t.Errorf("state = %v, want %v", got, StateIdle)
	}
	msg, ok := rec.last().(PlaybackErrorMsg)
	if !ok {
		t.Fatalf("last message = %T, want PlaybackErrorMsg", rec.last())
	}
	if !errors.Is(msg.Err, boom) {
		t.Errorf("error = %v, want wrapped %v", msg.Err, boom)
	}
	if msg.Err.Unit != 0 {
		t.Errorf("failing unit = %d, want 0", msg.Err.Unit)
	}
}

func TestSynchronousSpeakFailure(t *testing.T) {
	seq, spk, rec := newTestSequencer()
	spk.SetSpeakError(errors.New("no synthesizer"))

	seq.SelectStop(stopWith("A", "A one."))

	if got := seq.State(); got != StateIdle {
		t.Errorf("state = %v, want %v", got, StateIdle)
	}
	found := false
	for _, m := range rec.all() {
		if _, ok := m.(PlaybackErrorMsg); ok {
			found = true
		}
	}
	if !found {
		t.Error("expected a PlaybackErrorMsg for synchronous speak failure")
	}
}
