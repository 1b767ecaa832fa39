package settings

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestViewContents(t *testing.T) {
	m := New()
	m.Width = 40
	m.Height = 20
	m.CurrentModel = "gemini-2.5-pro"
	m.CurrentVoice = "Kore"
	m.LocationKnown = true

	out := m.View()
	for _, want := range []string{"gemini-2.5-pro", "Kore", "shared", "(none detected)", "unavailable"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestEscBlurs(t *testing.T) {
	m := New()
	m.Focus()
	if !m.Focused {
		t.Fatal("Focus did not take")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Focused {
		t.Error("esc should blur the panel")
	}
}

func TestUnfocusedIgnoresKeys(t *testing.T) {
	m := New()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Focused {
		t.Error("unfocused panel changed state")
	}
}
