package hungerhelper

import (
	"fmt"

	"github.com/hungerhelper/hungerhelper/api"
	"github.com/hungerhelper/hungerhelper/geo"
	"github.com/hungerhelper/hungerhelper/speech"
)

// WithAPIKey sets the Gemini API key for the client.
func WithAPIKey(key string) Option {
	return func(m *Model) error {
		if m.client == nil {
			m.client = &api.Client{}
		}
		m.client.APIKey = key
		return nil
	}
}

// WithVertexBackend routes requests through Vertex AI instead of the Gemini
// API.
func WithVertexBackend(projectID, region string) Option {
	return func(m *Model) error {
		if projectID == "" {
			return fmt.Errorf("vertex backend requires a project id")
		}
		m.client.Backend = api.BackendVertexAI
		m.client.ProjectID = projectID
		m.client.Region = region
		return nil
	}
}

// WithModel sets the completion model name.
func WithModel(name string) Option {
	return func(m *Model) error {
		m.client.Model = name
		return nil
	}
}

// WithTTSModel sets the speech-synthesis model name.
func WithTTSModel(name string) Option {
	return func(m *Model) error {
		m.client.TTSModel = name
		return nil
	}
}

// WithVoice sets the synthesis voice.
func WithVoice(name string) Option {
	return func(m *Model) error {
		m.client.Voice = name
		return nil
	}
}

// WithAudioPlayerCommand sets the external command used for audio playback.
func WithAudioPlayerCommand(cmd string) Option {
	return func(m *Model) error {
		m.playerCmd = cmd
		return nil
	}
}

// WithStaticLocation pins the user location to fixed "lat,lng" coordinates.
func WithStaticLocation(spec string) Option {
	return func(m *Model) error {
		static, err := geo.ParseStatic(spec)
		if err != nil {
			return err
		}
		coords := static.Coords
		m.locator = static
		m.location = &coords
		return nil
	}
}

// WithIPGeolocation resolves the user location from their public IP address
// when they ask for it.
func WithIPGeolocation() Option {
	return func(m *Model) error {
		m.locator = &geo.IPLocator{}
		return nil
	}
}

// WithGeoProvider sets a custom geolocation provider.
func WithGeoProvider(p geo.Provider) Option {
	return func(m *Model) error {
		m.locator = p
		return nil
	}
}

// WithVoiceInputCommand enables voice input through an external
// speech-to-text command that prints transcript lines to stdout. A command
// whose binary cannot be found fails here, at configuration time, leaving
// the mic key inert.
func WithVoiceInputCommand(cmd string) Option {
	return func(m *Model) error {
		if cmd == "" {
			return nil
		}
		rec, err := speech.NewCommandRecognizer(cmd)
		if err != nil {
			return err
		}
		m.recognizer = rec
		return nil
	}
}

// WithRecognizer sets a custom speech recognizer.
func WithRecognizer(r speech.Recognizer) Option {
	return func(m *Model) error {
		m.recognizer = r
		return nil
	}
}

// WithProvider overrides the completion/synthesis provider. Used by tests to
// run the orchestrator against scripted streams.
func WithProvider(p api.StreamProvider) Option {
	return func(m *Model) error {
		m.provider = p
		return nil
	}
}

// WithLogo enables or disables the logo display.
func WithLogo(showLogo bool) Option {
	return func(m *Model) error {
		m.showLogo = showLogo
		return nil
	}
}

// WithLogMessages enables or disables the log messages display.
func WithLogMessages(show bool, maxEntries ...int) Option {
	return func(m *Model) error {
		m.showLogMessages = show
		if len(maxEntries) > 0 && maxEntries[0] > 0 {
			m.maxLogMessages = maxEntries[0]
		} else if m.maxLogMessages == 0 {
			m.maxLogMessages = 10
		}
		return nil
	}
}

// WithConfigFile applies settings from a YAML config file. Options applied
// after this one win over the file.
func WithConfigFile(path string) Option {
	return func(m *Model) error {
		cfg, err := LoadConfig(path)
		if err != nil {
			return err
		}
		opts, err := cfg.Options()
		if err != nil {
			return err
		}
		for _, opt := range opts {
			if err := opt(m); err != nil {
				return err
			}
		}
		return nil
	}
}
