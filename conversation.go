package hungerhelper

// Conversation is the append-only message store backing the chat view. All
// access happens on the Bubble Tea update loop, so no locking is needed;
// updates replace whole Message values rather than mutating fields in place.
type Conversation struct {
	messages []Message
}

// Append adds a message to the end of the transcript.
func (c *Conversation) Append(msg Message) {
	c.messages = append(c.messages, msg)
}

// Update replaces the message with the given id using fn. It reports whether
// a message matched. fn receives a copy and its return value replaces the
// stored message wholesale.
func (c *Conversation) Update(id string, fn func(Message) Message) bool {
	for i := range c.messages {
		if c.messages[i].ID == id {
			c.messages[i] = fn(c.messages[i])
			return true
		}
	}
	return false
}

// Get returns a copy of the message with the given id.
func (c *Conversation) Get(id string) (Message, bool) {
	for i := range c.messages {
		if c.messages[i].ID == id {
			return c.messages[i], true
		}
	}
	return Message{}, false
}

// Messages returns a snapshot of the transcript in insertion order.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len reports the number of messages.
func (c *Conversation) Len() int { return len(c.messages) }

// ClearPlayback drops the playing flag from every message. At most one
// message should ever carry it, but clearing all of them keeps the playback
// invariant true even if state drifted.
func (c *Conversation) ClearPlayback() {
	for i := range c.messages {
		if c.messages[i].IsPlayingAudio {
			msg := c.messages[i]
			msg.IsPlayingAudio = false
			c.messages[i] = msg
		}
	}
}

// LastCompletedModel returns the most recent model message that has finished
// streaming and has text to speak.
func (c *Conversation) LastCompletedModel() (Message, bool) {
	for i := len(c.messages) - 1; i >= 0; i-- {
		msg := c.messages[i]
		if msg.Role == RoleModel && !msg.IsThinking && msg.Text != "" {
			return msg, true
		}
	}
	return Message{}, false
}
