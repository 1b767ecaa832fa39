package hungerhelper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hungerhelper/hungerhelper/api"
	"github.com/hungerhelper/hungerhelper/geo"
)

// --- Stream Messages ---

type streamStartedMsg struct {
	id     string
	stream *api.Stream
}

type streamChunkMsg struct {
	id    string
	chunk api.StreamChunk
}

type streamClosedMsg struct{ id string }

type streamErrorMsg struct {
	id  string
	err error
}

// --- Stream Commands ---

// submitQuery starts a new turn for the given input. Blank input and input
// arriving while a turn is already in flight are ignored; the returned
// command is nil in both cases.
func (m *Model) submitQuery(input string) tea.Cmd {
	query := strings.TrimSpace(input)
	if query == "" {
		return nil
	}
	if m.sending {
		log.Println("Ignoring submit: a turn is already in flight")
		return nil
	}

	m.conversation.Append(newUserMessage(query))
	reply := newReplyPlaceholder()
	m.conversation.Append(reply)

	m.sending = true
	m.activeReplyID = reply.ID
	m.textarea.Reset()

	log.Printf("Submitting query (%d chars), reply %s", len(query), reply.ID)
	return m.openStreamCmd(reply.ID, query)
}

// openStreamCmd returns a command that opens the completion stream for a
// reply. The stream context lives until the turn ends.
func (m *Model) openStreamCmd(id, query string) tea.Cmd {
	loc := m.location
	return func() tea.Msg {
		if m.streamCtxCancel != nil {
			m.streamCtxCancel()
		}
		m.streamCtx, m.streamCtxCancel = context.WithCancel(context.Background())

		stream, err := m.provider.GenerateStream(m.streamCtx, query, loc)
		if err != nil {
			log.Printf("Stream open error: %v", err)
			return streamErrorMsg{id: id, err: fmt.Errorf("open stream: %w", err)}
		}
		return streamStartedMsg{id: id, stream: stream}
	}
}

// receiveStreamCmd returns a command that receives one chunk from the open
// stream.
func (m *Model) receiveStreamCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if m.stream == nil {
			log.Println("receiveStreamCmd: stream is nil")
			return streamClosedMsg{id: id}
		}
		chunk, err := m.stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return streamClosedMsg{id: id}
			}
			log.Printf("Stream Recv error: %v", err)
			return streamErrorMsg{id: id, err: fmt.Errorf("receive failed: %w", err)}
		}
		return streamChunkMsg{id: id, chunk: chunk}
	}
}

// handleStreamMsg routes stream lifecycle messages. The second return value
// reports whether the message was one of ours.
func (m *Model) handleStreamMsg(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case streamStartedMsg:
		if msg.id != m.activeReplyID {
			log.Printf("Dropping stream for stale reply %s", msg.id)
			return nil, true
		}
		m.stream = msg.stream
		return m.receiveStreamCmd(msg.id), true

	case streamChunkMsg:
		if msg.id != m.activeReplyID {
			return nil, true
		}
		m.conversation.Update(msg.id, func(reply Message) Message {
			return mergeChunk(reply, msg.chunk)
		})
		// Keep draining until EOF even after the terminal chunk.
		return m.receiveStreamCmd(msg.id), true

	case streamClosedMsg:
		if msg.id != m.activeReplyID {
			return nil, true
		}
		// Finalize defensively in case the stream ended without a terminal
		// chunk; a no-op when the terminal chunk already ran.
		m.conversation.Update(msg.id, func(reply Message) Message {
			return finalizeReply(reply, reply.Sources)
		})
		m.endTurn()
		return nil, true

	case streamErrorMsg:
		if msg.id != m.activeReplyID {
			return nil, true
		}
		log.Printf("Turn failed, replacing reply %s with apology: %v", msg.id, msg.err)
		m.conversation.Update(msg.id, failReply)
		m.endTurn()
		return nil, true
	}
	return nil, false
}

// endTurn releases the in-flight guard and tears down the stream context.
func (m *Model) endTurn() {
	m.sending = false
	m.activeReplyID = ""
	m.stream = nil
	if m.streamCtxCancel != nil {
		m.streamCtxCancel()
		m.streamCtxCancel = nil
		m.streamCtx = nil
	}
}

// requestLocationCmd asks the configured geolocation provider for
// coordinates.
func (m *Model) requestLocationCmd() tea.Cmd {
	locator := m.locator
	m.locating = true
	return func() tea.Msg {
		if locator == nil {
			return locationResultMsg{err: geo.ErrUnavailable}
		}
		ctx, cancel := context.WithTimeout(context.Background(), locationTimeout)
		defer cancel()
		coords, err := locator.Locate(ctx)
		return locationResultMsg{coords: coords, err: err}
	}
}

// handleLocationResult records the coordinates (or the failure) and appends
// the matching affordance message to the conversation.
func (m *Model) handleLocationResult(msg locationResultMsg) {
	m.locating = false
	if msg.err != nil {
		log.Printf("Geolocation failed: %v", msg.err)
		m.conversation.Append(newModelMessage(fmt.Sprintf(locationErrorFmt, msg.err)))
		return
	}
	coords := msg.coords
	m.location = &coords
	log.Printf("Geolocation acquired: %.4f, %.4f", coords.Latitude, coords.Longitude)
	m.conversation.Append(newModelMessage(locationAcquiredText))
	if m.settingsPanel != nil {
		m.settingsPanel.LocationKnown = true
	}
}
