package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

// Sink is an output device that mixes streamers on its own goroutine.
// Lock and Unlock guard streamer state shared with that goroutine.
type Sink interface {
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
	Close()
}

type speakerSink struct{}

func (speakerSink) Play(s ...beep.Streamer) { speaker.Play(s...) }
func (speakerSink) Lock()                   { speaker.Lock() }
func (speakerSink) Unlock()                 { speaker.Unlock() }
func (speakerSink) Close()                  { speaker.Close() }

// OpenSpeaker initialises the system audio device at the asset sample rate.
func OpenSpeaker() (Sink, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: open speaker: %w", err)
	}
	return speakerSink{}, nil
}

// Manager owns the decoded assets and plays them on a Sink. Every method is
// safe to call when audio is unavailable; it then does nothing.
type Manager struct {
	mu      sync.Mutex
	sink    Sink
	logger  *log.Logger
	buffers map[Sound]*beep.Buffer

	enabled bool
	volume  float64

	music    *beep.Ctrl
	musicVol *effects.Volume
}

// NewManager decodes the assets found in dir for playback on sink. A nil
// sink gives a silent manager. Missing or undecodable files are logged and
// only that sound is disabled.
func NewManager(dir string, sink Sink, enabled bool, volume float64, logger *log.Logger) *Manager {
	m := &Manager{
		sink:    sink,
		logger:  logger,
		buffers: make(map[Sound]*beep.Buffer),
		enabled: enabled,
		volume:  clampVolume(volume),
	}
	if sink == nil {
		return m
	}
	for _, s := range AllSounds {
		buf, err := load(filepath.Join(dir, s.FileName()))
		if err != nil {
			logger.Warn("sound disabled", "sound", s, "error", err)
			continue
		}
		m.buffers[s] = buf
	}
	return m
}

// Open creates a manager on the system speaker. If the device cannot be
// opened audio is disabled for the session.
func Open(dir string, enabled bool, volume float64, logger *log.Logger) *Manager {
	sink, err := OpenSpeaker()
	if err != nil {
		logger.Warn("audio unavailable", "error", err)
		return Silent()
	}
	return NewManager(dir, sink, enabled, volume, logger)
}

// Silent returns a manager that never plays anything.
func Silent() *Manager {
	return &Manager{buffers: map[Sound]*beep.Buffer{}}
}

func load(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	stream, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("audio: decode %s: %w", path, err)
	}
	defer stream.Close()

	var src beep.Streamer = stream
	if format.SampleRate != SampleRate {
		src = beep.Resample(4, format.SampleRate, SampleRate, stream)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: SampleRate, NumChannels: format.NumChannels, Precision: format.Precision})
	buf.Append(src)
	return buf, nil
}

// Available reports whether a device is attached.
func (m *Manager) Available() bool { return m.sink != nil }

// Loaded reports whether a sound was decoded.
func (m *Manager) Loaded(s Sound) bool {
	_, ok := m.buffers[s]
	return ok
}

// Enabled reports whether sounds are played.
func (m *Manager) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

// Volume returns the master volume.
func (m *Manager) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

// Play starts a sound effect and returns immediately.
func (m *Manager) Play(s Sound) {
	m.mu.Lock()
	defer m.mu.Unlock()

	buf, ok := m.buffers[s]
	if !ok || !m.enabled || m.sink == nil {
		return
	}
	m.sink.Play(newVolume(buf.Streamer(0, buf.Len()), s.volumeFactor()*m.volume))
}

// PlayPaddleHit plays the paddle sound.
func (m *Manager) PlayPaddleHit() { m.Play(SoundPaddleHit) }

// PlayWallHit plays the wall sound.
func (m *Manager) PlayWallHit() { m.Play(SoundWallHit) }

// PlayScore plays the point sound.
func (m *Manager) PlayScore() { m.Play(SoundScore) }

// PlayGameStart plays the start jingle.
func (m *Manager) PlayGameStart() { m.Play(SoundGameStart) }

// PlayGameOver plays the end jingle.
func (m *Manager) PlayGameOver() { m.Play(SoundGameOver) }

// StartMusic loops the background track until StopMusic. Calling it while
// the music is playing does nothing.
func (m *Manager) StartMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()

	buf, ok := m.buffers[SoundMusic]
	if !ok || !m.enabled || m.sink == nil || m.music != nil {
		return
	}
	ctrl := &beep.Ctrl{Streamer: beep.Loop(-1, buf.Streamer(0, buf.Len()))}
	vol := newVolume(ctrl, SoundMusic.volumeFactor()*m.volume)
	m.music = ctrl
	m.musicVol = vol
	m.sink.Play(vol)
}

// StopMusic silences the background track.
func (m *Manager) StopMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopMusicLocked()
}

func (m *Manager) stopMusicLocked() {
	if m.music == nil {
		return
	}
	m.sink.Lock()
	m.music.Paused = true
	m.music.Streamer = nil
	m.sink.Unlock()
	m.music = nil
	m.musicVol = nil
}

// MusicPlaying reports whether the background track is running.
func (m *Manager) MusicPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.music != nil
}

// Toggle flips sound on or off and returns the new state. Turning sound
// off stops the music.
func (m *Manager) Toggle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = !m.enabled
	if !m.enabled {
		m.stopMusicLocked()
	}
	return m.enabled
}

// SetEnabled turns sound on or off.
func (m *Manager) SetEnabled(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = on
	if !on {
		m.stopMusicLocked()
	}
}

// SetVolume changes the master volume, clamped to [0, 1]. Running music
// follows the change.
func (m *Manager) SetVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clampVolume(v)
	if m.musicVol != nil {
		m.sink.Lock()
		setGain(m.musicVol, SoundMusic.volumeFactor()*m.volume)
		m.sink.Unlock()
	}
}

// Close stops the music and releases the device.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopMusicLocked()
	if m.sink != nil {
		m.sink.Close()
		m.sink = nil
	}
}

func clampVolume(v float64) float64 {
	return max(0, min(1, v))
}

// newVolume wraps s with a linear gain. effects.Volume works in log2, so a
// zero gain is expressed as Silent.
func newVolume(s beep.Streamer, gain float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	setGain(v, gain)
	return v
}

func setGain(v *effects.Volume, gain float64) {
	if gain <= 0 {
		v.Silent = true
		v.Volume = 0
		return
	}
	v.Silent = false
	v.Volume = math.Log2(gain)
}
