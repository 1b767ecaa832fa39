// Package audioplayer owns the single live playback handle for the whole
// process. It decodes the synthesis service's base64 PCM payloads and plays
// them through an external player command; acquiring a new handle always
// releases the previous one, so two audio streams can never sound at once.
package audioplayer

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/hungerhelper/hungerhelper/internal/helpers"
)

// Fixed output profile of the speech-synthesis service.
const (
	SampleRate    = 24000
	NumChannels   = 1
	BitsPerSample = 16

	bytesPerSecond = SampleRate * NumChannels * BitsPerSample / 8
)

var (
	// ErrNoPlayerCommand means no playback command is configured or detectable.
	ErrNoPlayerCommand = errors.New("audio player command not configured")
	// ErrNoAudioData means an empty payload was handed to Play.
	ErrNoAudioData = errors.New("no audio data provided")
)

// Decode converts a base64 payload from the synthesis service into raw
// s16le PCM bytes.
func Decode(encoded string) ([]byte, error) {
	pcm, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode audio payload: %w", err)
	}
	if len(pcm)%2 != 0 {
		return nil, fmt.Errorf("audio payload truncated: %d bytes is not whole 16-bit samples", len(pcm))
	}
	return pcm, nil
}

// Samples converts raw s16le PCM into samples normalized to [-1, 1].
func Samples(pcm []byte) []float64 {
	samples := make([]float64, len(pcm)/2)
	for i := range samples {
		v := int16(uint16(pcm[2*i]) | uint16(pcm[2*i+1])<<8)
		samples[i] = float64(v) / 32768.0
	}
	return samples
}

// Duration estimates playback time for a PCM payload.
func Duration(pcm []byte) time.Duration {
	return time.Duration(float64(len(pcm)) / bytesPerSecond * float64(time.Second))
}

// PeakLevel reports the loudest normalized sample magnitude in a payload,
// in [0, 1]. Zero means silence.
func PeakLevel(pcm []byte) float64 {
	var peak float64
	for _, s := range Samples(pcm) {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	return peak
}

// Player runs decoded audio through an external player process. At most one
// handle is live at a time.
type Player struct {
	// PlayerCmd is the playback command, e.g.
	// "ffplay -autoexit -nodisp -f s16le -ar 24000 -i -". The bare command
	// "afplay" is special-cased to play from a temporary WAV file since it
	// cannot read raw PCM from stdin.
	PlayerCmd string

	mu     sync.Mutex
	active *handle
}

type handle struct {
	cmd      *exec.Cmd
	tempFile string
	stopped  bool
}

// Playing reports whether a handle is currently live.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active != nil
}

// Play starts playback of a PCM payload. Any prior handle is stopped first.
// onDone fires once when playback ends on its own (nil error) or the player
// process fails; it does not fire after a deliberate Stop.
func (p *Player) Play(pcm []byte, onDone func(err error)) error {
	if strings.TrimSpace(p.PlayerCmd) == "" {
		return ErrNoPlayerCommand
	}
	if len(pcm) == 0 {
		return ErrNoAudioData
	}

	p.Stop()

	cmd, tempFile, err := p.buildCommand(pcm)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		if tempFile != "" {
			os.Remove(tempFile)
		}
		return fmt.Errorf("start audio player: %w", err)
	}

	h := &handle{cmd: cmd, tempFile: tempFile}
	p.mu.Lock()
	p.active = h
	p.mu.Unlock()

	if helpers.IsAudioTraceEnabled() {
		log.Printf("[AUDIO_PIPE] Playback started: %d bytes (%s), peak level %.3f",
			len(pcm), Duration(pcm), PeakLevel(pcm))
	}

	go func() {
		waitErr := cmd.Wait()
		if h.tempFile != "" {
			os.Remove(h.tempFile)
		}

		p.mu.Lock()
		if p.active == h {
			p.active = nil
		}
		stopped := h.stopped
		p.mu.Unlock()

		if stopped {
			return
		}
		if onDone != nil {
			onDone(waitErr)
		}
	}()
	return nil
}

// Stop halts the live handle, if any. Safe to call repeatedly.
func (p *Player) Stop() {
	p.mu.Lock()
	h := p.active
	p.active = nil
	if h != nil {
		h.stopped = true
	}
	p.mu.Unlock()

	if h == nil {
		return
	}
	if h.cmd.Process != nil {
		if err := h.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			log.Printf("Error stopping audio player: %v", err)
		}
	}
}

func (p *Player) buildCommand(pcm []byte) (*exec.Cmd, string, error) {
	fields := strings.Fields(p.PlayerCmd)
	if filepath.Base(fields[0]) == "afplay" {
		path, err := writeTempWAV(pcm)
		if err != nil {
			return nil, "", err
		}
		return exec.Command(fields[0], path), path, nil
	}
	cmd := exec.Command(fields[0], fields[1:]...)
	cmd.Stdin = bytes.NewReader(pcm)
	return cmd, "", nil
}

// writeTempWAV wraps raw PCM in a WAV container for players that cannot
// consume headerless audio from stdin.
func writeTempWAV(pcm []byte) (string, error) {
	f, err := os.CreateTemp("", "hungerhelper-audio-*.wav")
	if err != nil {
		return "", fmt.Errorf("create temp audio file: %w", err)
	}
	header := helpers.CreateWavHeader(len(pcm), NumChannels, SampleRate, BitsPerSample)
	if _, err := f.Write(header); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write WAV header: %w", err)
	}
	if _, err := f.Write(pcm); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write WAV data: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
