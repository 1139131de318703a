package api

import (
	"sort"
	"sync"

	cerr "github.com/fleetduel/fleetduel-backend/internal/error"
	mb "github.com/fleetduel/fleetduel-backend/models/battleship"
	mc "github.com/fleetduel/fleetduel-backend/models/connection"
)

// GameSession pairs one game's state machine with the live channels
// of its participants. The channels map is the only place connection
// references live; the game itself stays transport-free.
type GameSession struct {
	game     *mb.Game
	channels map[mb.Role]mc.Channel
}

func newGameSession(game *mb.Game, hostChannel mc.Channel) *GameSession {
	return &GameSession{
		game: game,
		channels: map[mb.Role]mc.Channel{
			mb.RolePlayer1: hostChannel,
		},
	}
}

// broadcast sends v to every participant currently attached.
func (gs *GameSession) broadcast(v any) {
	for _, role := range []mb.Role{mb.RolePlayer1, mb.RolePlayer2} {
		if ch, prs := gs.channels[role]; prs {
			_ = ch.SendJSON(v)
		}
	}
}

// GameManager is the session registry. A single mutex serializes
// every command against every session; at the expected scale (a
// handful of concurrent games) a global serialization point is
// simpler than per-session actors and rules out races on game state
// by construction.
type GameManager struct {
	games map[string]*GameSession
	mu    sync.Mutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*GameSession, 10),
	}
}

// Join creates the session on first join and attaches the second
// player on the next. A third joiner gets the only explicit error of
// the protocol and no state changes. The joined return tells the
// router whether the caller is now a participant of gameId; created
// tells it a new session came into existence.
func (gm *GameManager) Join(gameId, username string, ch mc.Channel) (joined, created bool) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	session, prs := gm.games[gameId]
	if !prs {
		game := mb.NewGame(gameId, username)
		gm.games[gameId] = newGameSession(game, ch)
		_ = ch.SendJSON(mc.NewRespJoined(mb.RolePlayer1, gameId, "", game.State()))
		return true, true
	}

	joinPlayer, err := session.game.AddPlayer2(username)
	if err != nil {
		_ = ch.SendJSON(mc.NewRespError(cerr.MsgGameIsFull))
		return false, false
	}
	session.channels[mb.RolePlayer2] = ch

	hostUsername := session.game.Player1.Username
	if hostChannel, prs := session.channels[mb.RolePlayer1]; prs {
		_ = hostChannel.SendJSON(mc.NewRespPlayerJoined(username, session.game.State()))
	}
	_ = ch.SendJSON(mc.NewRespJoined(joinPlayer.Role, gameId, hostUsername, session.game.State()))
	return true, false
}

// PlaceBoard stores the caller's board and pushes the resulting
// state to both participants. Unknown sessions and non-participants
// are dropped silently.
func (gm *GameManager) PlaceBoard(gameId, username string, board mb.Board) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	session, prs := gm.games[gameId]
	if !prs {
		return
	}
	player := session.game.PlayerByUsername(username)
	if player == nil {
		return
	}

	session.game.PlaceBoard(player.Role, board)
	session.broadcast(mc.NewRespGameUpdate(session.game.State(), nil))
}

// Fire applies a shot. Out-of-turn or out-of-phase shots are silently
// ignored with no broadcast. Returns whether the game ended on this
// shot.
func (gm *GameManager) Fire(gameId, username string, board mb.Board) (ended bool) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	session, prs := gm.games[gameId]
	if !prs {
		return false
	}
	player := session.game.PlayerByUsername(username)
	if player == nil {
		return false
	}

	result := session.game.Fire(player.Role, board)
	if !result.Accepted {
		return false
	}

	session.broadcast(mc.NewRespGameUpdate(session.game.State(), result.NewlySunk))
	if result.Ended {
		session.broadcast(mc.NewRespGameEnded(result.Winner.Username))
	}
	return result.Ended
}

// Restart resets the session to the placing phase and notifies both
// participants with the fresh state plus a distinct restart notice.
func (gm *GameManager) Restart(gameId string) (restarted bool) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	session, prs := gm.games[gameId]
	if !prs {
		return false
	}

	session.game.Restart()
	session.broadcast(mc.NewRespGameUpdate(session.game.State(), nil))
	session.broadcast(mc.NewRespGameRestarted())
	return true
}

// HandleDisconnect tears the session down when a participant's
// channel closes. The survivor gets exactly one disconnect notice
// and is left without a session; there is no reconnection.
func (gm *GameManager) HandleDisconnect(gameId, username string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	session, prs := gm.games[gameId]
	if !prs {
		return
	}

	player := session.game.PlayerByUsername(username)
	if player != nil {
		if otherChannel, prs := session.channels[player.Role.Other()]; prs {
			_ = otherChannel.SendJSON(mc.NewRespOpponentDisconnected())
		}
	}
	delete(gm.games, gameId)
}

// Summaries computes the lobby view of every registered session,
// sorted by id.
func (gm *GameManager) Summaries() []mc.GameSummary {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	summaries := make([]mc.GameSummary, 0, len(gm.games))
	for id, session := range gm.games {
		summary := mc.GameSummary{
			Id:      id,
			Player1: session.game.Player1.Username,
			Status:  mc.GameStatusWaiting,
		}
		if session.game.Player2 != nil {
			summary.Player2 = session.game.Player2.Username
		}
		if session.game.Phase != mb.PhasePlacing {
			summary.Status = mc.GameStatusInProgress
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Id < summaries[j].Id })
	return summaries
}

// FindGame exposes a session's game for tests and diagnostics.
func (gm *GameManager) FindGame(gameId string) (*mb.Game, bool) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	session, prs := gm.games[gameId]
	if !prs {
		return nil, false
	}
	return session.game, true
}
