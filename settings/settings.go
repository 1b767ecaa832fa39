// Package settings renders the side panel summarizing the session's
// configuration: models, voice, playback command, and capability state.
package settings

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model represents the settings panel state
type Model struct {
	Width   int
	Height  int
	Focused bool

	CurrentModel  string
	CurrentVoice  string
	PlayerCommand string
	LocationKnown bool
	VoiceInput    bool
}

// New creates a new settings model
func New() Model {
	return Model{}
}

// Init initializes the settings model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles updating the settings model
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width / 3
		m.Height = msg.Height
	case tea.KeyMsg:
		if !m.Focused {
			return m, nil
		}
		if msg.String() == "esc" {
			m.Focused = false
		}
	}
	return m, nil
}

// View renders the settings panel
func (m Model) View() string {
	style := lipgloss.NewStyle().
		Width(m.Width).
		Height(m.Height).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("2")).
		Padding(1, 2)

	player := m.PlayerCommand
	if player == "" {
		player = "(none detected)"
	}
	location := "not shared"
	if m.LocationKnown {
		location = "shared"
	}
	voiceInput := "unavailable"
	if m.VoiceInput {
		voiceInput = "available (Ctrl+T)"
	}

	content := fmt.Sprintf(
		"Settings\n\nModel: %s\nVoice: %s\nAudio player: %s\nLocation: %s\nVoice input: %s\n\nPress ESC to close",
		m.CurrentModel, m.CurrentVoice, player, location, voiceInput)

	return style.Render(content)
}

// Focus sets focus on the settings panel
func (m *Model) Focus() {
	m.Focused = true
}

// Blur removes focus from the settings panel
func (m *Model) Blur() {
	m.Focused = false
}
