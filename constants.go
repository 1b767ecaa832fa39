package hungerhelper

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// --- Canned conversation text ---

// greetingText is the model message seeded into every new conversation.
const greetingText = "Hello! I'm HungerHelper. I can help you find food pantries near you. To get started, please share your location or tell me your address or zip code."

// locationAcquiredText is appended after a successful geolocation request.
const locationAcquiredText = "Thank you! I've got your location. How can I help you find food today?"

// locationErrorFmt is appended when geolocation fails; the verb takes the
// underlying error.
const locationErrorFmt = "I couldn't get your location automatically. Error: %v. Please enter your address or zip code."

// apologyText replaces the reply body when a stream fails partway through.
const apologyText = "I'm sorry, I encountered an error while processing your request. Please try again later."

// --- Thinking-step labels ---

// The first two are seeded on every placeholder reply; stepFormatting is
// appended exactly once when a reply finalizes. Tool-derived labels live in
// the api package.
const (
	stepAnalyzing  = "Analyzing your request..."
	stepConsulting = "Consulting internal pantry list..."
	stepFormatting = "Formatting the response..."
)

// locationTimeout bounds a single geolocation lookup.
const locationTimeout = 10 * time.Second

// synthesisTimeout bounds a single speech-synthesis request.
const synthesisTimeout = 60 * time.Second

// Styles
var (
	senderYouStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))  // Cyan
	senderModelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))  // Green
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)  // Red
	statusStyle       = lipgloss.NewStyle().Faint(true)
	thinkingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Faint(true) // Magenta
	sourceStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))            // Blue
	logoStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	logMessageStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Faint(true) // Gray
	recordingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	locationOnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	audioTimeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // Gray
	audioIconStyle    = lipgloss.NewStyle().Bold(true)
	audioPlayIcon     = audioIconStyle.Foreground(lipgloss.Color("10")).Render("▶")
	audioReadyIcon    = audioIconStyle.Foreground(lipgloss.Color("5")).Render("🔊")
	audioPendingIcon  = audioIconStyle.Foreground(lipgloss.Color("11")).Render("…")
)
