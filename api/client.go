// Package api wraps the Gemini generative client behind the two capability
// boundaries the application consumes: a grounded streaming completion call
// and a one-shot speech synthesis call. Everything upstream of this package
// works in terms of StreamChunk values and never sees SDK types.
package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/genai"
)

// Defaults for the two model endpoints and the synthesis voice.
const (
	DefaultModel    = "gemini-2.5-pro"
	DefaultTTSModel = "gemini-2.5-flash-preview-tts"
	DefaultVoice    = "Kore"
)

// Backend selects which Gemini service family the client talks to.
type Backend int

const (
	BackendGeminiAPI Backend = iota
	BackendVertexAI
)

func (b Backend) String() string {
	switch b {
	case BackendVertexAI:
		return "VertexAI"
	default:
		return "GeminiAPI"
	}
}

// Client wraps the Google genai client.
type Client struct {
	APIKey  string // Optional API Key; env fallbacks apply in Init.
	Backend Backend

	// Vertex AI settings, used only when Backend is BackendVertexAI.
	ProjectID string
	Region    string

	// Model is the completion model; TTSModel and Voice drive synthesis.
	// Empty fields fall back to the package defaults.
	Model    string
	TTSModel string
	Voice    string

	// ProviderList is the JSON block of trusted providers included whole in
	// every completion prompt.
	ProviderList string

	genai *genai.Client
}

// Init initializes the underlying genai client. Calling it twice is a no-op.
func (c *Client) Init(ctx context.Context) error {
	if c.genai != nil {
		return nil
	}

	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GOOGLE_API_KEY")
	}

	cfg := &genai.ClientConfig{}
	switch c.Backend {
	case BackendVertexAI:
		if c.ProjectID == "" {
			return errors.New("vertex backend requires a project ID")
		}
		cfg.Backend = genai.BackendVertexAI
		cfg.Project = c.ProjectID
		cfg.Location = c.Region
		log.Printf("Initializing genai client (Vertex AI, project=%s, region=%s)", c.ProjectID, c.Region)
	default:
		if c.APIKey == "" {
			return errors.New("no API key provided (set GEMINI_API_KEY)")
		}
		cfg.APIKey = c.APIKey
		log.Println("Initializing genai client (Gemini API)")
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("create genai client: %w", err)
	}
	c.genai = client
	return nil
}

func (c *Client) model() string {
	if c.Model != "" {
		return c.Model
	}
	return DefaultModel
}

func (c *Client) ttsModel() string {
	if c.TTSModel != "" {
		return c.TTSModel
	}
	return DefaultTTSModel
}

func (c *Client) voice() string {
	if c.Voice != "" {
		return c.Voice
	}
	return DefaultVoice
}

// unwrapAPIError strips the gax wrapper so callers log the service's own
// error rather than the transport envelope.
func unwrapAPIError(err error) error {
	if e, ok := err.(*apierror.APIError); ok {
		if inner := e.Unwrap(); inner != nil {
			return inner
		}
	}
	return err
}
