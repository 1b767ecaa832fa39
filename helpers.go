package hungerhelper

import (
	"fmt"
	"io"
	"log"
	"os/exec"
	"runtime"
	"strings"

	"github.com/hungerhelper/hungerhelper/audioplayer"
)

// audioFormat is the ffmpeg/pulse name for the synthesis output encoding.
const audioFormat = "s16le"

// detectAudioPlayer attempts to find a suitable audio player command
func detectAudioPlayer() string {
	var cmd string
	var playerPath string
	var err error

	// Try ffplay (FFmpeg) first - handles stdin well
	if playerPath, err = exec.LookPath("ffplay"); err == nil {
		// `-i -` reads raw PCM from stdin with the format flags.
		cmd = fmt.Sprintf("%s -autoexit -nodisp -loglevel error -f %s -ar %d -ac %d -i -",
			playerPath, audioFormat, audioplayer.SampleRate, audioplayer.NumChannels)
		log.Printf("Auto-detected audio player: %s (using ffplay)", cmd)
		return cmd
	}

	// Try Linux-specific players
	if runtime.GOOS == "linux" {
		if playerPath, err = exec.LookPath("aplay"); err == nil {
			cmd = fmt.Sprintf("%s -q -c %d -r %d -f S16_LE -", playerPath, audioplayer.NumChannels, audioplayer.SampleRate)
			log.Printf("Auto-detected audio player: %s (using aplay)", cmd)
			return cmd
		}
		if playerPath, err = exec.LookPath("paplay"); err == nil {
			cmd = fmt.Sprintf("%s --raw --channels=%d --rate=%d --format=%s",
				playerPath, audioplayer.NumChannels, audioplayer.SampleRate, audioFormat)
			log.Printf("Auto-detected audio player: %s (using paplay)", cmd)
			return cmd
		}
	}

	// Try macOS player (afplay) - requires temp files
	if runtime.GOOS == "darwin" {
		if _, err = exec.LookPath("afplay"); err == nil {
			log.Println("Detected 'afplay'. Will use temp files for playback.")
			return "afplay"
		}
		log.Println("Info: 'ffplay' not found. For best audio on macOS, install FFmpeg (`brew install ffmpeg`).")
	}

	log.Println("Warning: Could not auto-detect a suitable audio player. Please install ffplay, aplay, or paplay, or configure one explicitly.")
	return ""
}

// logInterceptor implements io.Writer to capture log output for display in UI
type logInterceptor struct {
	model    *Model
	original io.Writer // The original log output
}

func (li *logInterceptor) Write(p []byte) (n int, err error) {
	if li.model != nil && li.model.maxLogMessages > 0 {
		trimmed := strings.TrimSpace(string(p))
		if trimmed != "" {
			// Hand off through the UI channel; log writes can come from any
			// goroutine. Drop when the channel is full rather than block.
			select {
			case li.model.uiUpdateChan <- logMessageMsg{message: trimmed}:
			default:
			}
		}
	}

	// Write to the original log output (e.g., file)
	if li.original != nil {
		return li.original.Write(p)
	}
	return len(p), nil
}
