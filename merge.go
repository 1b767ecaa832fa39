package hungerhelper

import (
	"time"

	"github.com/google/uuid"
	"github.com/hungerhelper/hungerhelper/api"
)

// newModelMessage creates a completed model message, used for the greeting
// and location affordance text.
func newModelMessage(text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleModel,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// newUserMessage creates a message from user input.
func newUserMessage(text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// newReplyPlaceholder creates the thinking message a stream will fill in.
// Both seed steps are visible before the first chunk arrives.
func newReplyPlaceholder() Message {
	return Message{
		ID:            uuid.NewString(),
		Role:          RoleModel,
		IsThinking:    true,
		ThinkingSteps: []string{stepAnalyzing, stepConsulting},
		Timestamp:     time.Now(),
	}
}

// mergeChunk folds one stream chunk into a reply. It is a pure function:
// the input message is not mutated and the result is a fresh value.
//
// Rules:
//   - a message that has already finalized ignores every further chunk
//   - text concatenates in arrival order, duplicates included
//   - steps append only on first occurrence (exact string match)
//   - a chunk carrying sources replaces the slice wholesale
//   - the terminal chunk merges any text/steps it carries, then finalizes
func mergeChunk(msg Message, chunk api.StreamChunk) Message {
	if !msg.IsThinking {
		return msg
	}
	if chunk.Final {
		out := msg
		if chunk.Text != "" || len(chunk.Steps) > 0 {
			partial := chunk
			partial.Final = false
			partial.Sources = nil
			out = mergeChunk(out, partial)
		}
		return finalizeReply(out, chunk.Sources)
	}
	if chunk.Empty() {
		return msg
	}

	out := msg
	out.ThinkingSteps = append([]string(nil), msg.ThinkingSteps...)
	out.Text += chunk.Text
	for _, step := range chunk.Steps {
		if !hasStep(out.ThinkingSteps, step) {
			out.ThinkingSteps = append(out.ThinkingSteps, step)
		}
	}
	if chunk.Sources != nil {
		out.Sources = chunk.Sources
	}
	return out
}

// finalizeReply ends the thinking phase: the formatting step is appended
// exactly once, the citation list is set wholesale, and the message stops
// accepting chunks.
func finalizeReply(msg Message, sources []api.Source) Message {
	if !msg.IsThinking {
		return msg
	}
	out := msg
	out.ThinkingSteps = append(append([]string(nil), msg.ThinkingSteps...), stepFormatting)
	out.Sources = sources
	if out.Sources == nil {
		out.Sources = []api.Source{}
	}
	out.IsThinking = false
	return out
}

// failReply turns a streaming reply into the apology message. Any partial
// text is discarded along with its citations.
func failReply(msg Message) Message {
	if !msg.IsThinking {
		return msg
	}
	out := msg
	out.Text = apologyText
	out.Sources = nil
	return finalizeReply(out, nil)
}

func hasStep(steps []string, step string) bool {
	for _, s := range steps {
		if s == step {
			return true
		}
	}
	return false
}
