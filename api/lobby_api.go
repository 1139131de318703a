package api

import (
	"sort"
	"sync"

	mc "github.com/fleetduel/fleetduel-backend/models/connection"
)

// LobbyManager owns the set of online identities. Usernames are
// self-declared and not unique: a second login with the same name
// overwrites the first one's channel, matching the original
// protocol's behavior.
type LobbyManager struct {
	online map[string]mc.Channel
	mu     sync.RWMutex
}

func NewLobbyManager() *LobbyManager {
	return &LobbyManager{
		online: make(map[string]mc.Channel, 10),
	}
}

func (lm *LobbyManager) Login(username string, ch mc.Channel) {
	lm.mu.Lock()
	lm.online[username] = ch
	lm.mu.Unlock()
}

func (lm *LobbyManager) Logout(username string) {
	lm.mu.Lock()
	delete(lm.online, username)
	lm.mu.Unlock()
}

func (lm *LobbyManager) IsOnline(username string) bool {
	lm.mu.RLock()
	defer lm.mu.RUnlock()
	_, prs := lm.online[username]
	return prs
}

// Users returns every online identity, sorted so snapshots are
// deterministic.
func (lm *LobbyManager) Users() []string {
	lm.mu.RLock()
	defer lm.mu.RUnlock()

	users := make([]string, 0, len(lm.online))
	for username := range lm.online {
		users = append(users, username)
	}
	sort.Strings(users)
	return users
}

// Broadcast pushes a full lobby snapshot to every online client.
// The snapshot is recomputed from scratch on every trigger rather
// than maintained incrementally; at this scale drift-free beats fast.
func (lm *LobbyManager) Broadcast(games []mc.GameSummary) {
	users := lm.Users()
	snapshot := mc.NewRespLobbyUpdate(users, games)

	lm.mu.RLock()
	channels := make([]mc.Channel, 0, len(lm.online))
	for _, ch := range lm.online {
		channels = append(channels, ch)
	}
	lm.mu.RUnlock()

	for _, ch := range channels {
		_ = ch.SendJSON(snapshot)
	}
}
