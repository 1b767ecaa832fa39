package hungerhelper

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hungerhelper/hungerhelper/api"
	"github.com/hungerhelper/hungerhelper/audioplayer"
	"github.com/hungerhelper/hungerhelper/geo"
	"github.com/hungerhelper/hungerhelper/settings"
	"github.com/hungerhelper/hungerhelper/speech"
)

// Role identifies the author of a chat message.
type Role int

const (
	RoleUser Role = iota
	RoleModel
)

func (r Role) String() string {
	if r == RoleUser {
		return "You"
	}
	return "HungerHelper"
}

// Message is one entry in the conversation. Replies start as thinking
// placeholders and are grown chunk by chunk until they finalize; audio
// synthesized for a finished reply is cached on the message in its wire form.
type Message struct {
	ID   string
	Role Role
	Text string

	// Grounding citations attached when the reply finalizes. Mid-stream
	// updates replace the whole slice.
	Sources []api.Source

	// Streaming state
	IsThinking    bool
	ThinkingSteps []string

	// Audio state
	IsGeneratingAudio bool
	AudioData         string // base64 24 kHz mono s16le PCM, empty until synthesized
	IsPlayingAudio    bool

	Timestamp time.Time
}

// Model is the Bubble Tea application state.
type Model struct {
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	client   *api.Client
	provider api.StreamProvider

	conversation Conversation

	// One turn in flight at a time. activeReplyID names the placeholder
	// message the open stream feeds.
	sending       bool
	activeReplyID string
	stream        *api.Stream

	streamCtx       context.Context
	streamCtxCancel context.CancelFunc

	// Location state
	locator   geo.Provider
	location  *geo.Coordinates
	locating  bool

	// Voice input
	recognizer speech.Recognizer
	recording  bool

	// Audio output
	player    *audioplayer.Player
	playerCmd string

	width    int
	height   int
	quitting bool
	err      error

	showLogo bool

	// Log Messages
	logMessages     []string
	maxLogMessages  int
	showLogMessages bool

	// Channel for goroutines to send messages back to the UI loop
	uiUpdateChan chan tea.Msg

	settingsPanel     *settings.Model
	showSettingsPanel bool
	focusedComponent  string // One of "input", "settings"
}

// Option defines a functional option for configuring the Model.
type Option func(*Model) error

// --- Messages ---

// Stream-related messages are defined in stream.go, audio messages in
// audio.go.

// locationResultMsg reports the outcome of a geolocation request.
type locationResultMsg struct {
	coords geo.Coordinates
	err    error
}

// Voice-input messages, delivered via uiUpdateChan from recognizer handlers.
type transcriptMsg struct {
	text  string
	final bool
}
type recordingStartedMsg struct{}
type recordingStoppedMsg struct{}
type recognitionErrorMsg struct{ err error }

// logMessageMsg is for internal logging captured via interceptor
type logMessageMsg struct {
	message string
}
