package hungerhelper

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hungerhelper/hungerhelper/api"
	"github.com/hungerhelper/hungerhelper/speech"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("FullFile", func(t *testing.T) {
		path := writeConfig(t, `
api_key: test-key
model: gemini-2.5-pro
voice: Kore
player_command: "ffplay -i -"
location: "39.9612,-82.9988"
show_logo: false
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if cfg.APIKey != "test-key" || cfg.Voice != "Kore" {
			t.Errorf("cfg = %+v", cfg)
		}
		if cfg.ShowLogo == nil || *cfg.ShowLogo {
			t.Error("show_logo: false not parsed")
		}
	})

	t.Run("BadBackend", func(t *testing.T) {
		path := writeConfig(t, "backend: azure\n")
		if _, err := LoadConfig(path); err == nil {
			t.Error("unknown backend accepted")
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("missing file accepted")
		}
	})
}

func TestWithConfigFile(t *testing.T) {
	path := writeConfig(t, `
api_key: from-file
model: custom-model
voice: Zephyr
location: "40.0,-83.0"
`)

	m := New(WithConfigFile(path))
	if m.client.APIKey != "from-file" || m.client.Model != "custom-model" || m.client.Voice != "Zephyr" {
		t.Errorf("client = %+v", m.client)
	}
	if m.location == nil || m.location.Latitude != 40.0 {
		t.Errorf("location = %v", m.location)
	}

	// Later options win over the file.
	m = New(WithConfigFile(path), WithVoice("Kore"))
	if m.client.Voice != "Kore" {
		t.Errorf("Voice = %q, want flag value to win", m.client.Voice)
	}
}

func TestOptions(t *testing.T) {
	t.Run("VertexRequiresProject", func(t *testing.T) {
		m := New()
		if err := WithVertexBackend("", "us-central1")(m); err == nil {
			t.Error("vertex without project accepted")
		}
		if err := WithVertexBackend("proj", "us-central1")(m); err != nil {
			t.Errorf("WithVertexBackend: %v", err)
		}
		if m.client.Backend != api.BackendVertexAI {
			t.Error("backend not set")
		}
	})

	t.Run("BadStaticLocation", func(t *testing.T) {
		m := New()
		if err := WithStaticLocation("not-coords")(m); err == nil {
			t.Error("garbage location accepted")
		}
	})

	t.Run("EmptyVoiceInputCommand", func(t *testing.T) {
		m := New(WithVoiceInputCommand(""))
		if m.recognizer != nil {
			t.Error("empty command created a recognizer")
		}
	})

	t.Run("VoiceInputMissingBinary", func(t *testing.T) {
		m := New()
		err := WithVoiceInputCommand("definitely-not-a-real-binary-xyz --flag")(m)
		if !errors.Is(err, speech.ErrUnavailable) {
			t.Errorf("got %v, want ErrUnavailable at configuration time", err)
		}
		if m.recognizer != nil {
			t.Error("unavailable command still produced a recognizer")
		}
	})

	t.Run("VoiceInputAvailableBinary", func(t *testing.T) {
		m := New()
		if err := WithVoiceInputCommand("echo transcript")(m); err != nil {
			t.Fatalf("WithVoiceInputCommand: %v", err)
		}
		if m.recognizer == nil {
			t.Error("available command produced no recognizer")
		}
	})
}
