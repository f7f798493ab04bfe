package petal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/tanema/gween/ease"
)

const (
	sampleRate     = 44100
	bytesPerSample = 4 // 16-bit stereo
)

// Global mix levels, 0 to 100.
var (
	mixMu       sync.Mutex
	soundMix    = 100
	musicVolume = 100
	musicPlayed []*Music
)

func audioContext() *audio.Context {
	if c := audio.CurrentContext(); c != nil {
		return c
	}
	return audio.NewContext(sampleRate)
}

// clampVolume limits v to [0, 100].
func clampVolume(v int) int {
	return min(max(v, 0), 100)
}

// gain combines percentage levels into a player volume in [0, 1].
func gain(levels ...int) float64 {
	g := 1.0
	for _, l := range levels {
		g *= float64(clampVolume(l)) / 100
	}
	return g
}

type audioStream interface {
	io.ReadSeeker
	Length() int64
}

// openAudio decodes a wav, mp3 or ogg vorbis file resampled to the
// context rate.
func openAudio(path string) (audioStream, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrAudioNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("petal: read audio %s: %w", path, err)
	}
	r := bytes.NewReader(data)
	var s audioStream
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		s, err = wav.DecodeWithSampleRate(sampleRate, r)
	case ".mp3":
		s, err = mp3.DecodeWithSampleRate(sampleRate, r)
	case ".ogg":
		s, err = vorbis.DecodeWithSampleRate(sampleRate, r)
	default:
		return nil, fmt.Errorf("petal: unsupported audio format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("petal: decode audio %s: %w", path, err)
	}
	return s, nil
}

func streamLength(n int64) time.Duration {
	return time.Duration(n) * time.Second / (sampleRate * bytesPerSample)
}

// SetSoundMixVolume scales every Sound, 0 to 100.
func SetSoundMixVolume(v int) {
	mixMu.Lock()
	soundMix = clampVolume(v)
	mixMu.Unlock()
}

// SoundMixVolume returns the sound mix level.
func SoundMixVolume() int {
	mixMu.Lock()
	defer mixMu.Unlock()
	return soundMix
}

// --- Sound ---

// Sound is a short clip decoded fully into memory. Each Play starts a new
// voice, so plays may overlap.
type Sound struct {
	Path   string
	pcm    []byte
	volume int

	mu     sync.Mutex
	voices []*audio.Player
}

// NewSound decodes a wav, mp3 or ogg file.
func NewSound(path string) (*Sound, error) {
	s, err := openAudio(path)
	if err != nil {
		return nil, err
	}
	pcm, err := io.ReadAll(s)
	if err != nil {
		return nil, fmt.Errorf("petal: decode audio %s: %w", path, err)
	}
	return &Sound{Path: path, pcm: pcm, volume: 100}, nil
}

// Length returns the clip duration.
func (s *Sound) Length() time.Duration {
	return streamLength(int64(len(s.pcm)))
}

// Volume returns the clip level, 0 to 100.
func (s *Sound) Volume() int { return s.volume }

// SetVolume sets the clip level, clamped to 0..100. Playing voices follow.
func (s *Sound) SetVolume(v int) {
	s.volume = clampVolume(v)
	g := gain(s.volume, SoundMixVolume())
	s.mu.Lock()
	for _, p := range s.voices {
		p.SetVolume(g)
	}
	s.mu.Unlock()
}

// Play starts a new voice.
func (s *Sound) Play() {
	p := audioContext().NewPlayerFromBytes(s.pcm)
	p.SetVolume(gain(s.volume, SoundMixVolume()))
	p.Play()

	s.mu.Lock()
	live := s.voices[:0]
	for _, v := range s.voices {
		if v.IsPlaying() {
			live = append(live, v)
		} else {
			_ = v.Close()
		}
	}
	s.voices = append(live, p)
	s.mu.Unlock()
}

// Stop silences every voice.
func (s *Sound) Stop() {
	s.mu.Lock()
	for _, v := range s.voices {
		v.Pause()
		_ = v.Close()
	}
	s.voices = nil
	s.mu.Unlock()
}

// --- Music ---

// Music is a streamed track. Only one track plays at a time; starting
// one stops the others.
type Music struct {
	Path string
	Loop bool

	stream audioStream
	player *audio.Player
	fade   *TweenGroup
	mu     sync.Mutex
}

// NewMusic opens a wav, mp3 or ogg file for streaming.
func NewMusic(path string) (*Music, error) {
	s, err := openAudio(path)
	if err != nil {
		return nil, err
	}
	return &Music{Path: path, stream: s}, nil
}

// SetMusicVolume sets the level shared by all music, clamped to 0..100.
func SetMusicVolume(v int) {
	mixMu.Lock()
	musicVolume = clampVolume(v)
	tracks := append([]*Music(nil), musicPlayed...)
	mixMu.Unlock()
	for _, m := range tracks {
		m.mu.Lock()
		if m.player != nil && m.fade == nil {
			m.player.SetVolume(gain(MusicVolume()))
		}
		m.mu.Unlock()
	}
}

// MusicVolume returns the music level.
func MusicVolume() int {
	mixMu.Lock()
	defer mixMu.Unlock()
	return musicVolume
}

// Length returns the track duration.
func (m *Music) Length() time.Duration {
	return streamLength(m.stream.Length())
}

// Play starts the track from the beginning, looping if Loop is set.
func (m *Music) Play() error {
	mixMu.Lock()
	others := append([]*Music(nil), musicPlayed...)
	musicPlayed = []*Music{m}
	mixMu.Unlock()
	for _, o := range others {
		if o != m {
			o.Stop()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopFade()
	if m.player != nil {
		m.player.Pause()
		_ = m.player.Close()
		m.player = nil
	}
	if _, err := m.stream.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("petal: rewind %s: %w", m.Path, err)
	}
	var src io.Reader = m.stream
	if m.Loop {
		src = audio.NewInfiniteLoop(m.stream, m.stream.Length())
	}
	p, err := audioContext().NewPlayer(src)
	if err != nil {
		return fmt.Errorf("petal: play %s: %w", m.Path, err)
	}
	p.SetVolume(gain(MusicVolume()))
	p.Play()
	m.player = p
	return nil
}

// Playing reports whether the track is audible.
func (m *Music) Playing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.player != nil && m.player.IsPlaying()
}

// Pause holds the track at its position.
func (m *Music) Pause() {
	m.mu.Lock()
	if m.player != nil {
		m.player.Pause()
	}
	m.mu.Unlock()
}

// Resume continues a paused track.
func (m *Music) Resume() {
	m.mu.Lock()
	if m.player != nil {
		m.player.Play()
	}
	m.mu.Unlock()
}

// Stop halts the track and rewinds it.
func (m *Music) Stop() {
	m.mu.Lock()
	m.stopFade()
	if m.player != nil {
		m.player.Pause()
		_ = m.player.Rewind()
	}
	m.mu.Unlock()
}

// fadeStep is how often Fadeout lowers the volume.
const fadeStep = 10 * time.Millisecond

// Fadeout lowers the volume to silence over d, then stops the track.
func (m *Music) Fadeout(d time.Duration) {
	m.mu.Lock()
	if m.player == nil || !m.player.IsPlaying() {
		m.mu.Unlock()
		return
	}
	m.stopFade()
	p := m.player
	g := TweenValue(p.Volume(), 0, float32(d.Seconds()), ease.Linear, p.SetVolume)
	m.fade = g
	m.mu.Unlock()

	go func() {
		tick := time.NewTicker(fadeStep)
		defer tick.Stop()
		for range tick.C {
			m.mu.Lock()
			if m.fade != g {
				m.mu.Unlock()
				return
			}
			g.Update(float32(fadeStep.Seconds()))
			if g.Done {
				m.fade = nil
				p.Pause()
				_ = p.Rewind()
				p.SetVolume(gain(MusicVolume()))
				m.mu.Unlock()
				return
			}
			m.mu.Unlock()
		}
	}()
}

// stopFade cancels a running fade. Callers hold m.mu.
func (m *Music) stopFade() {
	if m.fade != nil {
		m.fade.Stop()
		m.fade = nil
	}
}
