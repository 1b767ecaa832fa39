package speech

import (
	"errors"
	"runtime"
	"sync"
	"testing"
	"time"
)

func TestNewCommandRecognizerUnavailable(t *testing.T) {
	if _, err := NewCommandRecognizer(""); !errors.Is(err, ErrUnavailable) {
		t.Errorf("empty command: got %v, want ErrUnavailable", err)
	}
	if _, err := NewCommandRecognizer("definitely-not-a-real-binary-xyz"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("missing binary: got %v, want ErrUnavailable", err)
	}
}

func TestCommandRecognizerTranscript(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test relies on a POSIX shell")
	}

	var (
		mu      sync.Mutex
		results []string
		ended   = make(chan struct{})
	)
	r := &CommandRecognizer{Command: "echo hello world"}

	r.SetHandlers(Handlers{
		OnResult: func(transcript string, final bool) {
			mu.Lock()
			results = append(results, transcript)
			mu.Unlock()
			if !final {
				t.Error("command recognizer should only emit final results")
			}
		},
		OnEnd: func() { close(ended) },
	})

	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	select {
	case <-ended:
	case <-time.After(5 * time.Second):
		t.Fatal("recognizer did not end")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(results) == 0 {
		t.Fatal("no transcripts received")
	}
	if got := results[len(results)-1]; got != "hello world" {
		t.Errorf("final transcript = %q, want %q", got, "hello world")
	}
}

func TestCommandRecognizerStopIsQuiet(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test relies on a POSIX sleep")
	}

	ended := make(chan struct{})
	r := &CommandRecognizer{Command: "sleep 30"}
	r.SetHandlers(Handlers{
		OnError: func(err error) {
			t.Errorf("OnError fired after deliberate Stop: %v", err)
		},
		OnEnd: func() { close(ended) },
	})
	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	r.Stop()
	r.Stop() // idempotent

	select {
	case <-ended:
	case <-time.After(5 * time.Second):
		t.Fatal("recognizer did not end after Stop")
	}
}
