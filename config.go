package hungerhelper

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config mirrors the optional YAML config file. Zero values mean "not set";
// flags and options applied after the file win.
type Config struct {
	APIKey    string `yaml:"api_key"`
	Backend   string `yaml:"backend"` // "gemini" (default) or "vertex"
	ProjectID string `yaml:"project_id"`
	Region    string `yaml:"region"`

	Model    string `yaml:"model"`
	TTSModel string `yaml:"tts_model"`
	Voice    string `yaml:"voice"`

	PlayerCommand     string `yaml:"player_command"`
	Location          string `yaml:"location"` // "lat,lng"
	IPGeolocation     bool   `yaml:"ip_geolocation"`
	VoiceInputCommand string `yaml:"voice_input_command"`

	ShowLogo        *bool `yaml:"show_logo"`
	ShowLogMessages bool  `yaml:"show_log_messages"`
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Backend != "" && cfg.Backend != "gemini" && cfg.Backend != "vertex" {
		return nil, fmt.Errorf("config %s: unknown backend %q", path, cfg.Backend)
	}
	return &cfg, nil
}

// Options converts the parsed file into the equivalent functional options.
func (c *Config) Options() ([]Option, error) {
	var opts []Option
	if c.APIKey != "" {
		opts = append(opts, WithAPIKey(c.APIKey))
	}
	if c.Backend == "vertex" {
		opts = append(opts, WithVertexBackend(c.ProjectID, c.Region))
	}
	if c.Model != "" {
		opts = append(opts, WithModel(c.Model))
	}
	if c.TTSModel != "" {
		opts = append(opts, WithTTSModel(c.TTSModel))
	}
	if c.Voice != "" {
		opts = append(opts, WithVoice(c.Voice))
	}
	if c.PlayerCommand != "" {
		opts = append(opts, WithAudioPlayerCommand(c.PlayerCommand))
	}
	if c.Location != "" {
		opts = append(opts, WithStaticLocation(c.Location))
	} else if c.IPGeolocation {
		opts = append(opts, WithIPGeolocation())
	}
	if c.VoiceInputCommand != "" {
		opts = append(opts, WithVoiceInputCommand(c.VoiceInputCommand))
	}
	if c.ShowLogo != nil {
		opts = append(opts, WithLogo(*c.ShowLogo))
	}
	if c.ShowLogMessages {
		opts = append(opts, WithLogMessages(true))
	}
	return opts, nil
}
