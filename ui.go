package hungerhelper

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg processes a key press in the main UI. The returned bool
// reports whether the application should quit.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		m.stopPlayback()
		if m.recording && m.recognizer != nil {
			m.recognizer.Stop()
		}
		if m.streamCtxCancel != nil {
			m.streamCtxCancel()
		}
		return nil, true

	case "enter":
		return m.submitQuery(m.textarea.Value()), false

	case "ctrl+g":
		if m.locating {
			return nil, false
		}
		return m.requestLocationCmd(), false

	case "ctrl+t":
		return m.toggleRecordingCmd(), false

	case "ctrl+p":
		// Play (or stop) the most recent finished reply.
		reply, ok := m.conversation.LastCompletedModel()
		if !ok {
			return nil, false
		}
		return m.requestAudio(reply), false

	case "ctrl+s":
		m.showSettingsPanel = !m.showSettingsPanel
		if m.showSettingsPanel {
			m.focusedComponent = "settings"
			m.settingsPanel.Focus()
			m.textarea.Blur()
		} else {
			m.focusedComponent = "input"
			m.textarea.Focus()
		}
		return nil, false

	case "tab":
		if m.showSettingsPanel {
			if m.focusedComponent == "input" {
				m.focusedComponent = "settings"
				m.settingsPanel.Focus()
				m.textarea.Blur()
			} else {
				m.focusedComponent = "input"
				m.settingsPanel.Blur()
				m.textarea.Focus()
			}
		}
		return nil, false
	}
	return nil, false
}

// toggleRecordingCmd starts or stops voice input. Without a recognizer the
// key is inert.
func (m *Model) toggleRecordingCmd() tea.Cmd {
	rec := m.recognizer
	if rec == nil {
		log.Println("Voice input requested but no recognizer is configured")
		return nil
	}
	if m.recording {
		return func() tea.Msg {
			rec.Stop()
			return nil
		}
	}
	return func() tea.Msg {
		if err := rec.Start(); err != nil {
			return recognitionErrorMsg{err: err}
		}
		return nil
	}
}

// syncViewport re-renders the transcript into the viewport and keeps the
// view pinned to the latest message.
func (m *Model) syncViewport() {
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}
