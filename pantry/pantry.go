// Package pantry holds the trusted reference list of food-assistance
// providers. The list is compiled into the binary, read-only, and handed to
// the completion service whole as prompt context; the application itself
// never filters or ranks it.
package pantry

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data.json
var rawData []byte

// Provider is one food-assistance location from the trusted list.
type Provider struct {
	Name     string `json:"Name"`
	Location string `json:"Location"`
	Hours    string `json:"Hours"`
	Phone    string `json:"Phone Number"`
	Notes    string `json:"Additional Notes"`
}

// Load decodes the embedded provider list.
func Load() ([]Provider, error) {
	var providers []Provider
	if err := json.Unmarshal(rawData, &providers); err != nil {
		return nil, fmt.Errorf("decode embedded pantry data: %w", err)
	}
	return providers, nil
}

// ForPrompt returns the provider list as the indented JSON block embedded in
// the model prompt. The original field names are preserved so the model sees
// the same schema the list was curated with.
func ForPrompt() (string, error) {
	providers, err := Load()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(providers); err != nil {
		return "", fmt.Errorf("encode pantry data for prompt: %w", err)
	}
	return buf.String(), nil
}
