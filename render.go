package hungerhelper

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hungerhelper/hungerhelper/api"
)

const helpText = "Enter: send • Ctrl+G: share location • Ctrl+T: voice input • Ctrl+P: play reply • Ctrl+S: settings • Ctrl+C: quit"

// resize recomputes component dimensions after a window size change.
func (m *Model) resize() {
	contentWidth := m.width
	if m.showSettingsPanel {
		contentWidth = m.width * 2 / 3
	}
	m.textarea.SetWidth(contentWidth - 2)
	m.viewport.Width = contentWidth
	chrome := 4 // header, status, input, help
	if m.showLogo {
		chrome += 2
	}
	if m.showLogMessages {
		chrome += m.maxLogMessages
	}
	if h := m.height - chrome; h > 0 {
		m.viewport.Height = h
	}
}

// View renders the full application frame.
func (m *Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder
	if m.showLogo {
		b.WriteString(logoStyle.Render("HungerHelper") + statusStyle.Render("  find food assistance near you"))
		b.WriteString("\n\n")
	}
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.textarea.View())
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(helpText))

	if m.showLogMessages && len(m.logMessages) > 0 {
		b.WriteString("\n")
		for _, line := range m.logMessages {
			b.WriteString(logMessageStyle.Render(line))
			b.WriteString("\n")
		}
	}

	main := b.String()
	if m.showSettingsPanel {
		return lipgloss.JoinHorizontal(lipgloss.Top, main, m.settingsPanel.View())
	}
	return main
}

// statusLine summarizes turn, recording, and location state in one line.
func (m *Model) statusLine() string {
	var parts []string
	switch {
	case m.sending:
		parts = append(parts, m.spinner.View()+statusStyle.Render(" Thinking..."))
	case m.locating:
		parts = append(parts, m.spinner.View()+statusStyle.Render(" Locating..."))
	default:
		parts = append(parts, statusStyle.Render("Ready"))
	}
	if m.recording {
		parts = append(parts, recordingStyle.Render("● Listening"))
	}
	if m.location != nil {
		parts = append(parts, locationOnStyle.Render(fmt.Sprintf("📍 %.4f, %.4f", m.location.Latitude, m.location.Longitude)))
	}
	if m.err != nil {
		parts = append(parts, errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}
	return strings.Join(parts, "  ")
}

// renderMessages renders the whole transcript for the viewport.
func (m *Model) renderMessages() string {
	msgs := m.conversation.Messages()
	rendered := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		rendered = append(rendered, renderMessage(msg))
	}
	return strings.Join(rendered, "\n\n")
}

// renderMessage renders one chat bubble: sender line, thinking steps while
// streaming, body text, citations, and the audio status line.
func renderMessage(msg Message) string {
	var b strings.Builder

	if msg.Role == RoleUser {
		b.WriteString(senderYouStyle.Render(msg.Role.String() + ":"))
	} else {
		b.WriteString(senderModelStyle.Render(msg.Role.String() + ":"))
	}
	b.WriteString("\n")

	if msg.IsThinking {
		for _, step := range msg.ThinkingSteps {
			b.WriteString(thinkingStyle.Render("  • " + step))
			b.WriteString("\n")
		}
	}

	if msg.Text != "" {
		b.WriteString(msg.Text)
	}

	if len(msg.Sources) > 0 {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render("Sources:"))
		for _, src := range msg.Sources {
			b.WriteString("\n")
			b.WriteString(sourceStyle.Render("  " + sourceIcon(src.Kind) + " " + src.Title + " — " + src.URI))
		}
	}

	if line := audioStatusLine(msg); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
	}

	return b.String()
}

func sourceIcon(kind api.SourceKind) string {
	if kind == api.SourceMaps {
		return "📍"
	}
	return "🌐"
}

// audioStatusLine renders the per-message audio indicator, empty when the
// message has no audio state worth showing.
func audioStatusLine(msg Message) string {
	switch {
	case msg.IsPlayingAudio:
		return audioPlayIcon + audioTimeStyle.Render(" Playing...")
	case msg.IsGeneratingAudio:
		return audioPendingIcon + audioTimeStyle.Render(" Generating audio...")
	case msg.AudioData != "":
		return audioReadyIcon + audioTimeStyle.Render(" Audio ready (Ctrl+P)")
	}
	return ""
}
