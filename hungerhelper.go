// Package hungerhelper implements a terminal chat client that helps people
// find nearby food-assistance providers. Replies stream from a grounded
// completion service and can be read aloud through an external audio player.
package hungerhelper

import (
	"log"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hungerhelper/hungerhelper/api"
	"github.com/hungerhelper/hungerhelper/audioplayer"
	"github.com/hungerhelper/hungerhelper/pantry"
	"github.com/hungerhelper/hungerhelper/settings"
	"github.com/hungerhelper/hungerhelper/speech"
)

// New creates a new Model instance with default settings and applies options.
func New(opts ...Option) *Model {
	ta := textarea.New()
	ta.Placeholder = "Ask for food assistance..."
	ta.Focus()
	ta.Prompt = "┃ "
	ta.CharLimit = 0
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)

	vp := viewport.New(50, 5)
	vp.SetContent("Initializing...")

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	settingsPanel := settings.New()

	m := &Model{
		textarea:         ta,
		viewport:         vp,
		spinner:          s,
		client:           &api.Client{},
		player:           &audioplayer.Player{},
		showLogo:         true,
		maxLogMessages:   10,
		uiUpdateChan:     make(chan tea.Msg, 10),
		settingsPanel:    &settingsPanel,
		focusedComponent: "input",
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			log.Printf("Warning: Error applying option: %v", err)
		}
	}

	return m
}

// InitModel finishes wiring before the Bubble Tea program starts: provider
// defaults, the embedded provider list, player detection, recognizer
// handlers, and the greeting message.
func (m *Model) InitModel() (tea.Model, error) {
	if m.client == nil {
		m.client = &api.Client{}
	}
	if m.client.ProviderList == "" {
		list, err := pantry.ForPrompt()
		if err != nil {
			return nil, err
		}
		m.client.ProviderList = list
	}
	if m.provider == nil {
		m.provider = m.client
	}

	if m.playerCmd == "" {
		m.playerCmd = detectAudioPlayer()
		if m.playerCmd == "" {
			log.Println("Warning: Could not auto-detect audio player. Audio output may fail.")
		}
	}
	m.player.PlayerCmd = m.playerCmd

	if m.recognizer != nil {
		ch := m.uiUpdateChan
		m.recognizer.SetHandlers(speech.Handlers{
			OnResult: func(transcript string, final bool) {
				ch <- transcriptMsg{text: transcript, final: final}
			},
			OnStart: func() { ch <- recordingStartedMsg{} },
			OnEnd:   func() { ch <- recordingStoppedMsg{} },
			OnError: func(err error) { ch <- recognitionErrorMsg{err: err} },
		})
	}

	if m.showLogMessages {
		interceptor := &logInterceptor{
			model:    m,
			original: log.Writer(),
		}
		log.SetOutput(interceptor)
		log.Println("Log messages display enabled")
	}

	m.settingsPanel.CurrentModel = m.client.Model
	if m.settingsPanel.CurrentModel == "" {
		m.settingsPanel.CurrentModel = api.DefaultModel
	}
	m.settingsPanel.CurrentVoice = m.client.Voice
	if m.settingsPanel.CurrentVoice == "" {
		m.settingsPanel.CurrentVoice = api.DefaultVoice
	}
	m.settingsPanel.PlayerCommand = m.playerCmd
	m.settingsPanel.LocationKnown = m.location != nil
	m.settingsPanel.VoiceInput = m.recognizer != nil

	m.conversation.Append(newModelMessage(greetingText))

	m.textarea.Focus()
	m.focusedComponent = "input"

	log.Printf("Using model: %s", m.settingsPanel.CurrentModel)
	log.Printf("Voice: %s", m.settingsPanel.CurrentVoice)
	log.Printf("Audio player command: %q", m.playerCmd)
	log.Printf("Location known at startup: %t", m.location != nil)
	log.Printf("Voice input available: %t", m.recognizer != nil)

	return m, nil
}

// listenForUIUpdatesCmd returns a command that listens on the uiUpdateChan
// and forwards messages to the main Bubble Tea update loop.
func (m *Model) listenForUIUpdatesCmd() tea.Cmd {
	return func() tea.Msg {
		return <-m.uiUpdateChan
	}
}

// Init is the initial command called by Bubble Tea.
func (m *Model) Init() tea.Cmd {
	m.textarea.Focus()
	return tea.Batch(
		m.spinner.Tick,
		m.listenForUIUpdatesCmd(),
	)
}

// Update handles incoming messages and updates the model state.
// It acts as the main dispatcher.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		if m.settingsPanel != nil {
			var settingsCmd tea.Cmd
			*m.settingsPanel, settingsCmd = m.settingsPanel.Update(msg)
			cmds = append(cmds, settingsCmd)
		}

	case tea.KeyMsg:
		if m.showSettingsPanel && m.focusedComponent == "settings" {
			var settingsCmd tea.Cmd
			*m.settingsPanel, settingsCmd = m.settingsPanel.Update(msg)
			cmds = append(cmds, settingsCmd)
			if !m.settingsPanel.Focused {
				m.showSettingsPanel = false
				m.focusedComponent = "input"
				m.textarea.Focus()
			}
			// Global keys still work while the panel is up.
			if s := msg.String(); s != "ctrl+c" && s != "ctrl+s" && s != "tab" {
				break
			}
		}

		cmd, quit := m.handleKeyMsg(msg)
		if quit {
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)

		if m.focusedComponent == "input" {
			var taCmd tea.Cmd
			m.textarea, taCmd = m.textarea.Update(msg)
			cmds = append(cmds, taCmd)
		}

	case spinner.TickMsg:
		var spCmd tea.Cmd
		m.spinner, spCmd = m.spinner.Update(msg)
		cmds = append(cmds, spCmd)

	case locationResultMsg:
		m.handleLocationResult(msg)

	case transcriptMsg:
		// Last transcript wins; interim and final results both land here.
		m.textarea.SetValue(msg.text)
		m.textarea.CursorEnd()
		cmds = append(cmds, m.listenForUIUpdatesCmd())

	case recordingStartedMsg:
		m.recording = true
		cmds = append(cmds, m.listenForUIUpdatesCmd())

	case recordingStoppedMsg:
		m.recording = false
		cmds = append(cmds, m.listenForUIUpdatesCmd())

	case recognitionErrorMsg:
		log.Printf("Speech recognition error: %v", msg.err)
		m.recording = false
		cmds = append(cmds, m.listenForUIUpdatesCmd())

	case logMessageMsg:
		m.appendLogMessage(msg.message)
		cmds = append(cmds, m.listenForUIUpdatesCmd())

	case audioPlaybackFinishedMsg:
		cmd, _ := m.handleAudioMsg(msg)
		cmds = append(cmds, cmd, m.listenForUIUpdatesCmd())

	default:
		if cmd, ok := m.handleStreamMsg(msg); ok {
			cmds = append(cmds, cmd)
		} else if cmd, ok := m.handleAudioMsg(msg); ok {
			cmds = append(cmds, cmd)
		} else {
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			cmds = append(cmds, vpCmd)
		}
	}

	m.syncViewport()
	return m, tea.Batch(cmds...)
}

// appendLogMessage keeps the rolling in-UI log buffer trimmed.
func (m *Model) appendLogMessage(message string) {
	m.logMessages = append(m.logMessages, message)
	if len(m.logMessages) > m.maxLogMessages {
		m.logMessages = m.logMessages[len(m.logMessages)-m.maxLogMessages:]
	}
}
