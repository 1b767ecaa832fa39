package hungerhelper

import (
	"context"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hungerhelper/hungerhelper/audioplayer"
)

// --- Audio Messages ---

type audioSynthesizedMsg struct {
	id   string
	data string // base64 PCM
}

type audioSynthesisErrorMsg struct {
	id  string
	err error
}

// audioPlaybackFinishedMsg arrives via uiUpdateChan when the player process
// ends on its own.
type audioPlaybackFinishedMsg struct {
	id  string
	err error
}

// --- Audio Commands ---

// requestAudio handles the play/stop key for a reply. A playing message
// toggles off; a message with cached audio replays it; otherwise synthesis
// starts and playback follows when it lands.
func (m *Model) requestAudio(msg Message) tea.Cmd {
	if msg.Role != RoleModel || msg.IsThinking || msg.Text == "" {
		return nil
	}
	if msg.IsPlayingAudio {
		m.stopPlayback()
		return nil
	}
	if msg.AudioData != "" {
		m.startPlayback(msg.ID, msg.AudioData)
		return nil
	}
	if msg.IsGeneratingAudio {
		return nil
	}

	m.conversation.Update(msg.ID, func(r Message) Message {
		r.IsGeneratingAudio = true
		return r
	})
	return m.synthesizeCmd(msg.ID, msg.Text)
}

// synthesizeCmd returns a command that converts reply text to speech.
func (m *Model) synthesizeCmd(id, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), synthesisTimeout)
		defer cancel()
		data, err := m.provider.SynthesizeSpeech(ctx, text)
		if err != nil {
			return audioSynthesisErrorMsg{id: id, err: err}
		}
		return audioSynthesizedMsg{id: id, data: data}
	}
}

// startPlayback decodes cached audio and hands it to the player, displacing
// whatever was playing. Playback failures reset the message state and are
// otherwise swallowed; audio is best-effort.
func (m *Model) startPlayback(id, data string) {
	pcm, err := audioplayer.Decode(data)
	if err != nil {
		log.Printf("Cannot decode cached audio for %s: %v", id, err)
		return
	}

	m.conversation.ClearPlayback()
	err = m.player.Play(pcm, func(playErr error) {
		m.uiUpdateChan <- audioPlaybackFinishedMsg{id: id, err: playErr}
	})
	if err != nil {
		log.Printf("Audio playback failed to start: %v", err)
		return
	}
	m.conversation.Update(id, func(r Message) Message {
		r.IsPlayingAudio = true
		return r
	})
}

// stopPlayback halts the player and clears every playing flag.
func (m *Model) stopPlayback() {
	m.player.Stop()
	m.conversation.ClearPlayback()
}

// handleAudioMsg routes audio lifecycle messages. The second return value
// reports whether the message was one of ours.
func (m *Model) handleAudioMsg(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case audioSynthesizedMsg:
		m.conversation.Update(msg.id, func(r Message) Message {
			r.AudioData = msg.data
			r.IsGeneratingAudio = false
			return r
		})
		m.startPlayback(msg.id, msg.data)
		return nil, true

	case audioSynthesisErrorMsg:
		log.Printf("Speech synthesis failed for %s: %v", msg.id, msg.err)
		m.conversation.Update(msg.id, func(r Message) Message {
			r.IsGeneratingAudio = false
			return r
		})
		return nil, true

	case audioPlaybackFinishedMsg:
		if msg.err != nil {
			log.Printf("Audio player exited with error: %v", msg.err)
		}
		m.conversation.Update(msg.id, func(r Message) Message {
			r.IsPlayingAudio = false
			return r
		})
		return nil, true
	}
	return nil, false
}
