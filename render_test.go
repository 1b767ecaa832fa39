package hungerhelper

import (
	"strings"
	"testing"

	"github.com/hungerhelper/hungerhelper/api"
)

func TestRenderMessage(t *testing.T) {
	t.Run("ThinkingSteps", func(t *testing.T) {
		reply := newReplyPlaceholder()
		out := renderMessage(reply)
		if !strings.Contains(out, stepAnalyzing) || !strings.Contains(out, stepConsulting) {
			t.Errorf("thinking steps missing from render:\n%s", out)
		}
		if !strings.Contains(out, "HungerHelper") {
			t.Errorf("sender label missing:\n%s", out)
		}
	})

	t.Run("StepsHiddenOnceFinalized", func(t *testing.T) {
		reply := finalizeReply(newReplyPlaceholder(), nil)
		reply.Text = "answer"
		out := renderMessage(reply)
		if strings.Contains(out, stepAnalyzing) {
			t.Errorf("finalized reply still shows thinking steps:\n%s", out)
		}
		if !strings.Contains(out, "answer") {
			t.Errorf("body missing:\n%s", out)
		}
	})

	t.Run("Sources", func(t *testing.T) {
		reply := finalizeReply(newReplyPlaceholder(), []api.Source{
			{URI: "https://example.com", Title: "Example", Kind: api.SourceWeb},
			{URI: "https://maps.example", Title: "Reeb Center", Kind: api.SourceMaps},
		})
		reply.Text = "answer"
		out := renderMessage(reply)
		for _, want := range []string{"Sources:", "Example", "https://example.com", "Reeb Center"} {
			if !strings.Contains(out, want) {
				t.Errorf("render missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("AudioStates", func(t *testing.T) {
		msg := newModelMessage("hello")
		if audioStatusLine(msg) != "" {
			t.Error("plain message should have no audio line")
		}
		msg.IsGeneratingAudio = true
		if !strings.Contains(audioStatusLine(msg), "Generating") {
			t.Error("generating state not rendered")
		}
		msg.IsGeneratingAudio = false
		msg.AudioData = "AAAA"
		if !strings.Contains(audioStatusLine(msg), "ready") {
			t.Error("cached state not rendered")
		}
		msg.IsPlayingAudio = true
		if !strings.Contains(audioStatusLine(msg), "Playing") {
			t.Error("playing state not rendered")
		}
	})

	t.Run("UserMessage", func(t *testing.T) {
		out := renderMessage(newUserMessage("where can I eat?"))
		if !strings.Contains(out, "You") || !strings.Contains(out, "where can I eat?") {
			t.Errorf("user render:\n%s", out)
		}
	})
}

func TestStatusLine(t *testing.T) {
	m := newTestModel(t, &scriptedProvider{})

	if !strings.Contains(m.statusLine(), "Ready") {
		t.Error("idle status missing")
	}
	m.sending = true
	if !strings.Contains(m.statusLine(), "Thinking") {
		t.Error("sending status missing")
	}
	m.sending = false
	m.recording = true
	if !strings.Contains(m.statusLine(), "Listening") {
		t.Error("recording status missing")
	}
}
