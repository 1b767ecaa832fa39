package api

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"

	"google.golang.org/genai"
)

// SynthesizeSpeech converts a finished reply into audio. The returned
// payload is base64-encoded 24 kHz mono s16le PCM, the synthesis model's
// fixed output profile; decoding happens at playback time.
func (c *Client) SynthesizeSpeech(ctx context.Context, text string) (string, error) {
	if c.genai == nil {
		if err := c.Init(ctx); err != nil {
			return "", err
		}
	}

	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: c.voice()},
			},
		},
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.ttsModel(), genai.Text(text), cfg)
	if err != nil {
		return "", fmt.Errorf("speech synthesis failed: %w", unwrapAPIError(err))
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("speech synthesis returned no candidates")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			log.Printf("Synthesized %d bytes of audio (%s)", len(part.InlineData.Data), part.InlineData.MIMEType)
			return base64.StdEncoding.EncodeToString(part.InlineData.Data), nil
		}
	}
	return "", errors.New("speech synthesis returned no audio data")
}
