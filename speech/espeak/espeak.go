// Package espeak drives an espeak-ng binary as the speech engine. Each
// utterance is synthesized in a fresh process and played through an oto
// audio context; completion is reported asynchronously once the audio drains.
package espeak

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"

	"github.com/wayfarerhq/wayfarer/speech"
	"github.com/wayfarerhq/wayfarer/speech/cache"
)

const (
	sampleRate    = 22050
	wavHeaderSize = 44
	baseWPM       = 175
	pollInterval  = 50 * time.Millisecond
)

// Config configures the espeak speaker.
type Config struct {
	Binary   string // espeak-ng binary, defaults to "espeak-ng"
	CacheDir string // empty disables the audio cache
	CacheMax int64  // cache cap in bytes
}

// Speaker implements speech.Speaker on top of espeak-ng and oto.
type Speaker struct {
	cfg Config

	ctxOnce sync.Once
	ctxErr  error
	otoCtx  *oto.Context

	audio *cache.Disk

	mu         sync.Mutex
	player     *oto.Player
	generation uint64
	paused     bool
}

// New creates an espeak speaker. The audio context is initialized lazily on
// the first utterance.
func New(cfg Config) (*Speaker, error) {
	if cfg.Binary == "" {
		cfg.Binary = "espeak-ng"
	}
	s := &Speaker{cfg: cfg}
	if cfg.CacheDir != "" {
		audio, err := cache.New(cfg.CacheDir, cfg.CacheMax)
		if err != nil {
			return nil, fmt.Errorf("failed to open audio cache: %w", err)
		}
		s.audio = audio
	}
	return s, nil
}

// Available reports whether the espeak binary can be executed.
func (s *Speaker) Available() bool {
	return exec.Command(s.cfg.Binary, "--version").Run() == nil
}

// Speak synthesizes text and starts playback. done fires from a watcher
// goroutine when the audio has fully drained, unless the utterance is
// canceled or replaced first.
func (s *Speaker) Speak(text string, opts speech.Options, done func(err error)) error {
	pcm, err := s.synthesize(text, opts)
	if err != nil {
		return err
	}

	if err := s.ensureContext(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.player != nil {
		_ = s.player.Close()
		s.player = nil
	}
	s.generation++
	gen := s.generation
	s.paused = false
	p := s.otoCtx.NewPlayer(bytes.NewReader(pcm))
	s.player = p
	s.mu.Unlock()

	p.Play()
	go s.watch(p, gen, done)
	return nil
}

// Pause suspends the current utterance in place.
func (s *Speaker) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player == nil {
		return nil
	}
	s.paused = true
	s.player.Pause()
	return nil
}

// Cancel discards the current utterance. Its completion callback never fires.
func (s *Speaker) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.paused = false
	if s.player != nil {
		_ = s.player.Close()
		s.player = nil
	}
	return nil
}

// watch polls the player until the audio drains, then reports completion.
// A generation bump (cancel or a newer utterance) ends the watch silently.
func (s *Speaker) watch(p *oto.Player, gen uint64, done func(error)) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		if gen != s.generation {
			s.mu.Unlock()
			return
		}
		if s.paused {
			s.mu.Unlock()
			continue
		}
		drained := !p.IsPlaying() && p.UnplayedBufferSize() == 0
		if drained {
			_ = p.Close()
			s.player = nil
		}
		s.mu.Unlock()

		if drained {
			done(nil)
			return
		}
	}
}

func (s *Speaker) ensureContext() error {
	s.ctxOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 1,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			s.ctxErr = fmt.Errorf("failed to create audio context: %w", err)
			return
		}
		<-ready
		s.otoCtx = ctx
	})
	return s.ctxErr
}

// synthesize runs espeak-ng and returns raw 16-bit mono PCM.
func (s *Speaker) synthesize(text string, opts speech.Options) ([]byte, error) {
	var key string
	if s.audio != nil {
		key = cache.Key(text, opts.Language, fmt.Sprintf("%g", opts.Pitch), fmt.Sprintf("%g", opts.Rate))
		if pcm, ok := s.audio.Get(key); ok {
			return pcm, nil
		}
	}

	args := []string{
		"--stdin",
		"--stdout",
		"-v", voiceFor(opts.Language),
		"-p", strconv.Itoa(pitchFor(opts.Pitch)),
		"-s", strconv.Itoa(wpmFor(opts.Rate)),
	}
	cmd := exec.Command(s.cfg.Binary, args...)
	cmd.Stdin = strings.NewReader(text)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("espeak failed: %w", err)
	}
	pcm, err := pcmFromWAV(out)
	if err != nil {
		return nil, err
	}

	if s.audio != nil {
		if err := s.audio.Put(key, pcm); err != nil {
			log.Debug("audio cache write failed", "err", err)
		}
	}
	return pcm, nil
}

// pcmFromWAV strips the RIFF header espeak writes ahead of the samples.
func pcmFromWAV(out []byte) ([]byte, error) {
	if len(out) <= wavHeaderSize {
		return nil, fmt.Errorf("espeak produced no audio")
	}
	return out[wavHeaderSize:], nil
}

// voiceFor maps a BCP-47 tag onto an espeak voice name.
func voiceFor(lang string) string {
	if lang == "" {
		return "en-us"
	}
	return strings.ToLower(lang)
}

// pitchFor maps the neutral-1.0 pitch scale onto espeak's 0-99 range.
func pitchFor(pitch float64) int {
	p := int(pitch * 50)
	if p < 0 {
		p = 0
	}
	if p > 99 {
		p = 99
	}
	return p
}

// wpmFor maps the neutral-1.0 rate scale onto words per minute.
func wpmFor(rate float64) int {
	return int(float64(baseWPM) * rate)
}
