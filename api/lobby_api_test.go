package api

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mc "github.com/fleetduel/fleetduel-backend/models/connection"
)

// mockChannel records everything sent through it.
type mockChannel struct {
	id     string
	sent   []any
	closed bool
	mu     sync.Mutex
}

var _ mc.Channel = (*mockChannel)(nil)

func newMockChannel(id string) *mockChannel {
	return &mockChannel{id: id}
}

func (m *mockChannel) Id() string { return m.id }

func (m *mockChannel) SendJSON(v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, v)
	return nil
}

func (m *mockChannel) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

func (m *mockChannel) messages() []any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]any(nil), m.sent...)
}

// lastOfType returns the most recent message of the given wire type.
func (m *mockChannel) lastOfType(t *testing.T, wireType string) map[string]any {
	t.Helper()

	var found map[string]any
	for _, v := range m.messages() {
		payload, err := json.Marshal(v)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(payload, &decoded))
		if decoded["type"] == wireType {
			found = decoded
		}
	}
	require.NotNil(t, found, "no %s message sent", wireType)
	return found
}

func TestLobbyLoginLogout(t *testing.T) {
	lm := NewLobbyManager()

	lm.Login("alice", newMockChannel("c1"))
	lm.Login("bob", newMockChannel("c2"))
	assert.Equal(t, []string{"alice", "bob"}, lm.Users())

	lm.Logout("alice")
	assert.Equal(t, []string{"bob"}, lm.Users())
	assert.False(t, lm.IsOnline("alice"))
}

func TestLobbyLoginOverwritesSameUsername(t *testing.T) {
	lm := NewLobbyManager()
	first := newMockChannel("c1")
	second := newMockChannel("c2")

	lm.Login("alice", first)
	lm.Login("alice", second)
	require.Equal(t, []string{"alice"}, lm.Users())

	lm.Broadcast(nil)
	assert.Empty(t, first.messages(), "overwritten channel no longer receives snapshots")
	assert.Len(t, second.messages(), 1)
}

func TestLobbyBroadcast(t *testing.T) {
	lm := NewLobbyManager()
	aliceChannel := newMockChannel("c1")
	bobChannel := newMockChannel("c2")
	lm.Login("alice", aliceChannel)
	lm.Login("bob", bobChannel)

	games := []mc.GameSummary{
		{Id: "room1", Player1: "alice", Player2: "bob", Status: mc.GameStatusInProgress},
	}
	lm.Broadcast(games)

	for _, ch := range []*mockChannel{aliceChannel, bobChannel} {
		snapshot := ch.lastOfType(t, mc.TypeLobbyUpdate)
		assert.Equal(t, []any{"alice", "bob"}, snapshot["users"])

		gamesField, ok := snapshot["games"].([]any)
		require.True(t, ok)
		require.Len(t, gamesField, 1)
		game := gamesField[0].(map[string]any)
		assert.Equal(t, "room1", game["id"])
		assert.Equal(t, mc.GameStatusInProgress, game["status"])
	}
}
