package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistory(t *testing.T) {
	var h History
	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Snapshot())

	pending := h.WithPending("hello")
	assert.Equal(t, []Message{{Role: RoleUser, Content: "hello"}}, pending)
	assert.Equal(t, 0, h.Len(), "WithPending must not record the turn")

	h.Commit("hello", "hi there")
	assert.Equal(t, []Message{
		{Role: RoleUser, Content: "hello"},
		{Role: RoleAssistant, Content: "hi there"},
	}, h.Snapshot())

	snap := h.Snapshot()
	snap[0].Content = "mutated"
	assert.Equal(t, "hello", h.Snapshot()[0].Content, "snapshot must be a copy")

	h.Commit("again", "sure")
	assert.Equal(t, 4, h.Len())
	assert.Len(t, h.WithPending("third"), 5)

	h.Clear()
	assert.Equal(t, 0, h.Len())
}
