// Command hungerhelper runs the terminal chat client for finding nearby
// food-assistance providers.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/hungerhelper/hungerhelper"
	"github.com/hungerhelper/hungerhelper/api"
)

// setupLogging directs log output to a file for easier debugging.
func setupLogging() *os.File {
	logFilePath := "hungerhelper-debug.log"
	f, err := tea.LogToFile(logFilePath, "hungerhelper")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file '%s': %v\n", logFilePath, err)
		return nil
	}
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(f)
	return f
}

func main() {
	// .env is optional; flags and real env vars win over it.
	_ = godotenv.Load()

	modelFlag := flag.String("model", api.DefaultModel, "Gemini model ID for replies.")
	ttsModelFlag := flag.String("tts-model", api.DefaultTTSModel, "Model ID for speech synthesis.")
	voiceFlag := flag.String("voice", api.DefaultVoice, "Voice for audio playback.")
	apiKeyFlag := flag.String("api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var).")
	playerCmdFlag := flag.String("player", "", "Override command for audio playback (e.g., 'ffplay ...'). Auto-detected if empty.")
	locationFlag := flag.String("location", "", "Fixed location as 'lat,lng' (skips geolocation lookup).")
	ipLocationFlag := flag.Bool("ip-location", true, "Allow IP-based geolocation when Ctrl+G is pressed.")
	voiceInputFlag := flag.String("voice-input-cmd", "", "External speech-to-text command printing transcript lines to stdout.")
	configFlag := flag.String("config", "", "Path to YAML config file.")
	vertexFlag := flag.Bool("vertex", false, "Use the Vertex AI backend.")
	projectFlag := flag.String("project", os.Getenv("GOOGLE_CLOUD_PROJECT"), "Vertex AI project ID.")
	regionFlag := flag.String("region", "us-central1", "Vertex AI region.")
	logoFlag := flag.Bool("logo", true, "Show the header logo.")
	logMessagesFlag := flag.Bool("log-messages", false, "Show recent log messages in the UI.")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Chat assistant for locating nearby food pantries.\n\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  GEMINI_API_KEY: API key (used if --api-key is not set).\n")
		fmt.Fprintf(os.Stderr, "  GOOGLE_CLOUD_PROJECT: Vertex project (used if --project is not set).\n")
	}
	flag.Parse()

	logFile := setupLogging()
	if logFile != nil {
		defer logFile.Close()
		log.Println("--- Application Start ---")
	} else {
		log.SetOutput(io.Discard)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "hungerhelper needs an interactive terminal")
		os.Exit(1)
	}

	apiKey := *apiKeyFlag
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	opts := []hungerhelper.Option{}
	if *configFlag != "" {
		opts = append(opts, hungerhelper.WithConfigFile(*configFlag))
	}
	opts = append(opts,
		hungerhelper.WithAPIKey(apiKey),
		hungerhelper.WithModel(*modelFlag),
		hungerhelper.WithTTSModel(*ttsModelFlag),
		hungerhelper.WithVoice(*voiceFlag),
		hungerhelper.WithLogo(*logoFlag),
		hungerhelper.WithLogMessages(*logMessagesFlag),
	)
	if *vertexFlag {
		opts = append(opts, hungerhelper.WithVertexBackend(*projectFlag, *regionFlag))
	}
	if *playerCmdFlag != "" {
		opts = append(opts, hungerhelper.WithAudioPlayerCommand(*playerCmdFlag))
	}
	if *locationFlag != "" {
		opts = append(opts, hungerhelper.WithStaticLocation(*locationFlag))
	} else if *ipLocationFlag {
		opts = append(opts, hungerhelper.WithIPGeolocation())
	}
	if *voiceInputFlag != "" {
		opts = append(opts, hungerhelper.WithVoiceInputCommand(*voiceInputFlag))
	}

	component := hungerhelper.New(opts...)
	model, err := component.InitModel()
	if err != nil {
		log.Printf("Failed to initialize model: %v", err)
		fmt.Fprintf(os.Stderr, "Error initializing model: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	log.Println("Starting Bubble Tea program...")
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Println("--- Application End ---")
}
