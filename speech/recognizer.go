// Package speech defines the speech-to-text capability used to populate the
// input field by voice. The chat core only sees the narrow Recognizer
// interface; concrete engines are adapters behind it, and a missing engine
// just leaves the mic affordance inert.
package speech

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// Handlers receives recognizer lifecycle and transcript callbacks. Transcript
// semantics are last-value-wins: each OnResult carries the full current
// transcript, not a delta.
type Handlers struct {
	OnResult func(transcript string, final bool)
	OnStart  func()
	OnEnd    func()
	OnError  func(err error)
}

// Recognizer is the capability boundary for speech capture.
type Recognizer interface {
	Start() error
	Stop()
	SetHandlers(h Handlers)
}

// ErrUnavailable indicates no recognition engine exists in this environment.
var ErrUnavailable = errors.New("speech recognition is not available")

// CommandRecognizer adapts any external program that prints one transcript
// line per utterance to stdout (e.g. a whisper or vosk CLI wrapper) into a
// Recognizer. Lines are forwarded as final results; the accumulated text of
// the session is what OnResult reports.
type CommandRecognizer struct {
	// Command is the program plus arguments, e.g.
	// "whisper-stream --model tiny --language en".
	Command string

	mu       sync.Mutex
	handlers Handlers
	cmd      *exec.Cmd
	cancel   context.CancelFunc
	running  bool
}

// NewCommandRecognizer returns a recognizer for cmdline, or ErrUnavailable
// when the binary cannot be found.
func NewCommandRecognizer(cmdline string) (*CommandRecognizer, error) {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return nil, ErrUnavailable
	}
	if _, err := exec.LookPath(fields[0]); err != nil {
		return nil, fmt.Errorf("%w: %s not found", ErrUnavailable, fields[0])
	}
	return &CommandRecognizer{Command: cmdline}, nil
}

// SetHandlers installs the callback set. Must be called before Start.
func (r *CommandRecognizer) SetHandlers(h Handlers) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = h
}

// Start launches the recognition process and begins forwarding transcripts.
func (r *CommandRecognizer) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return errors.New("recognizer already running")
	}

	fields := strings.Fields(r.Command)
	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, fields[0], fields[1:]...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("recognizer stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("start recognizer: %w", err)
	}

	r.cmd = cmd
	r.cancel = cancel
	r.running = true
	handlers := r.handlers

	if handlers.OnStart != nil {
		handlers.OnStart()
	}

	go func() {
		var transcript strings.Builder
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if transcript.Len() > 0 {
				transcript.WriteByte(' ')
			}
			transcript.WriteString(line)
			if handlers.OnResult != nil {
				handlers.OnResult(transcript.String(), true)
			}
		}
		scanErr := scanner.Err()
		waitErr := cmd.Wait()

		r.mu.Lock()
		r.running = false
		r.cmd = nil
		stopped := ctx.Err() != nil
		r.mu.Unlock()

		if !stopped && handlers.OnError != nil {
			if scanErr != nil {
				handlers.OnError(scanErr)
			} else if waitErr != nil {
				handlers.OnError(waitErr)
			}
		}
		if handlers.OnEnd != nil {
			handlers.OnEnd()
		}
	}()

	return nil
}

// Stop terminates the recognition process. Safe to call when not running.
func (r *CommandRecognizer) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}
