package providers

// History is the ordered conversation of one client.
//
// Adapters build request payloads from Snapshot plus the pending user turn
// and call Commit only after the reply has been parsed, so a failed call
// never leaves a dangling user message behind.
type History struct {
	messages []Message
}

// Snapshot returns a copy of the messages recorded so far.
func (h *History) Snapshot() []Message {
	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Commit appends one completed exchange: the user turn, then the reply.
func (h *History) Commit(userText, reply string) {
	h.messages = append(h.messages,
		Message{Role: RoleUser, Content: userText},
		Message{Role: RoleAssistant, Content: reply},
	)
}

// Clear discards every recorded message.
func (h *History) Clear() {
	h.messages = nil
}

// Len returns the number of recorded messages.
func (h *History) Len() int {
	return len(h.messages)
}

// WithPending returns a snapshot with the pending user turn appended.
func (h *History) WithPending(userText string) []Message {
	out := make([]Message, 0, len(h.messages)+1)
	out = append(out, h.messages...)
	return append(out, Message{Role: RoleUser, Content: userText})
}
