// Package soundtrack plays an optional looping background track behind the wall.
package soundtrack

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/keuio/PhotoWall3D/internal/errors"
)

// DuckVolume is the gain applied while a card is zoomed, in powers of two.
const DuckVolume = -1.5

type decoder func(io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)

var decoders = map[string]decoder{
	".wav":  func(r io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(r) },
	".mp3":  mp3.Decode,
	".flac": func(r io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) { return flac.Decode(r) },
}

// Track is a decoded audio file. Playback state changes go through the
// speaker lock once Play has been called.
type Track struct {
	path     string
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	logger   *log.Logger

	playing bool
	paused  bool
	ducked  bool
}

// Open decodes path by its extension. Supported formats are wav, mp3 and flac.
func Open(path string, logger *log.Logger) (*Track, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unsupported audio file type %q", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "open soundtrack")
	}
	streamer, format, err := decode(f)
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s", filepath.Base(path))
	}

	t := &Track{
		path:     path,
		file:     f,
		streamer: streamer,
		format:   format,
		logger:   logger,
	}
	t.volume = &effects.Volume{Streamer: beep.Loop(-1, streamer), Base: 2}
	t.ctrl = &beep.Ctrl{Streamer: t.volume}

	logger.Debug("soundtrack decoded", "path", path, "rate", int(format.SampleRate), "duration", t.Duration())
	return t, nil
}

// Format returns the decoded stream format.
func (t *Track) Format() beep.Format { return t.format }

// Duration is the length of one pass through the track.
func (t *Track) Duration() time.Duration {
	return t.format.SampleRate.D(t.streamer.Len())
}

// Play initialises the speaker at the track's sample rate and starts looping.
func (t *Track) Play() error {
	if t.playing {
		return nil
	}
	if err := speaker.Init(t.format.SampleRate, t.format.SampleRate.N(time.Second/20)); err != nil {
		return errors.Wrap(errors.ErrCodeConfiguration, err, "init speaker")
	}
	t.playing = true
	speaker.Play(t.ctrl)
	t.logger.Info("soundtrack playing", "path", t.path)
	return nil
}

func (t *Track) locked(fn func()) {
	if !t.playing {
		fn()
		return
	}
	speaker.Lock()
	fn()
	speaker.Unlock()
}

// TogglePause flips the paused state and reports the new value.
func (t *Track) TogglePause() bool {
	t.locked(func() {
		t.paused = !t.paused
		t.ctrl.Paused = t.paused
	})
	return t.paused
}

// Paused reports whether playback is paused.
func (t *Track) Paused() bool { return t.paused }

// Duck lowers the volume while on is true.
func (t *Track) Duck(on bool) {
	if on == t.ducked {
		return
	}
	t.locked(func() {
		t.ducked = on
		if on {
			t.volume.Volume = DuckVolume
		} else {
			t.volume.Volume = 0
		}
	})
}

// Ducked reports whether the volume is currently lowered.
func (t *Track) Ducked() bool { return t.ducked }

// Close stops playback and releases the stream and file.
func (t *Track) Close() error {
	if t.playing {
		speaker.Clear()
		t.playing = false
	}
	err := t.streamer.Close()
	_ = t.file.Close() // the decoders close it too
	return err
}
