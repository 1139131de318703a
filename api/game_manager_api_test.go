package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mb "github.com/fleetduel/fleetduel-backend/models/battleship"
	mc "github.com/fleetduel/fleetduel-backend/models/connection"
)

func fullyPlacedBoard() mb.Board {
	b := mb.NewBoard()
	for i, spec := range mb.ShipRoster {
		for j := 0; j < spec.Size; j++ {
			b[i][j] = mb.Cell{IsShip: true, ShipId: spec.Id}
		}
	}
	return b
}

func sinkAll(b mb.Board) mb.Board {
	clone := make(mb.Board, len(b))
	for i, row := range b {
		clone[i] = make([]mb.Cell, len(row))
		copy(clone[i], row)
		for j := range clone[i] {
			if clone[i][j].IsShip {
				clone[i][j].IsHit = true
			}
		}
	}
	return clone
}

func joinedPair(t *testing.T, gm *GameManager) (*mockChannel, *mockChannel) {
	t.Helper()

	aliceChannel := newMockChannel("c1")
	bobChannel := newMockChannel("c2")

	joined, created := gm.Join("room1", "alice", aliceChannel)
	require.True(t, joined)
	require.True(t, created)

	joined, created = gm.Join("room1", "bob", bobChannel)
	require.True(t, joined)
	require.False(t, created)

	return aliceChannel, bobChannel
}

func TestJoinCreatesGame(t *testing.T) {
	gm := NewGameManager()
	ch := newMockChannel("c1")

	joined, created := gm.Join("room1", "alice", ch)
	assert.True(t, joined)
	assert.True(t, created)

	resp := ch.lastOfType(t, mc.TypeJoined)
	assert.Equal(t, "player1", resp["playerId"])
	assert.Equal(t, "room1", resp["gameId"])
	assert.Nil(t, resp["opponent"])

	game, prs := gm.FindGame("room1")
	require.True(t, prs)
	assert.Equal(t, mb.PhasePlacing, game.Phase)
}

func TestJoinSecondPlayer(t *testing.T) {
	gm := NewGameManager()
	aliceChannel, bobChannel := joinedPair(t, gm)

	notice := aliceChannel.lastOfType(t, mc.TypePlayerJoined)
	assert.Equal(t, "bob", notice["opponent"])

	resp := bobChannel.lastOfType(t, mc.TypeJoined)
	assert.Equal(t, "player2", resp["playerId"])
	assert.Equal(t, "alice", resp["opponent"])
}

func TestJoinFullGame(t *testing.T) {
	gm := NewGameManager()
	joinedPair(t, gm)

	carolChannel := newMockChannel("c3")
	joined, created := gm.Join("room1", "carol", carolChannel)
	assert.False(t, joined)
	assert.False(t, created)

	resp := carolChannel.lastOfType(t, mc.TypeError)
	assert.Equal(t, "Game is full", resp["message"])

	game, prs := gm.FindGame("room1")
	require.True(t, prs)
	assert.Equal(t, "bob", game.Player2.Username)
}

func TestPlaceBoardBroadcasts(t *testing.T) {
	gm := NewGameManager()
	aliceChannel, bobChannel := joinedPair(t, gm)

	gm.PlaceBoard("room1", "alice", fullyPlacedBoard())
	gm.PlaceBoard("room1", "bob", fullyPlacedBoard())

	for _, ch := range []*mockChannel{aliceChannel, bobChannel} {
		update := ch.lastOfType(t, mc.TypeGameUpdate)
		state := update["gameState"].(map[string]any)
		assert.Equal(t, string(mb.PhaseBattle), state["phase"])
		assert.Equal(t, "player1", state["currentTurn"])
	}
}

func TestPlaceBoardUnknownSessionDropped(t *testing.T) {
	gm := NewGameManager()
	ch := newMockChannel("c1")
	gm.Join("room1", "alice", ch)
	sentBefore := len(ch.messages())

	gm.PlaceBoard("nosuch", "alice", fullyPlacedBoard())
	gm.PlaceBoard("room1", "stranger", fullyPlacedBoard())
	assert.Len(t, ch.messages(), sentBefore)
}

func TestFireOutOfTurnNoBroadcast(t *testing.T) {
	gm := NewGameManager()
	aliceChannel, bobChannel := joinedPair(t, gm)
	gm.PlaceBoard("room1", "alice", fullyPlacedBoard())
	gm.PlaceBoard("room1", "bob", fullyPlacedBoard())

	aliceSent := len(aliceChannel.messages())
	bobSent := len(bobChannel.messages())

	game, _ := gm.FindGame("room1")
	ended := gm.Fire("room1", "bob", sinkAll(game.Player1Board))
	assert.False(t, ended)
	assert.Len(t, aliceChannel.messages(), aliceSent)
	assert.Len(t, bobChannel.messages(), bobSent)
}

func TestFireWinBroadcastsGameEnded(t *testing.T) {
	gm := NewGameManager()
	aliceChannel, bobChannel := joinedPair(t, gm)
	gm.PlaceBoard("room1", "alice", fullyPlacedBoard())
	gm.PlaceBoard("room1", "bob", fullyPlacedBoard())

	game, _ := gm.FindGame("room1")
	ended := gm.Fire("room1", "alice", sinkAll(game.Player2Board))
	assert.True(t, ended)

	for _, ch := range []*mockChannel{aliceChannel, bobChannel} {
		update := ch.lastOfType(t, mc.TypeGameUpdate)
		state := update["gameState"].(map[string]any)
		assert.Equal(t, string(mb.PhaseEnded), state["phase"])
		assert.Equal(t, "player1", state["winner"])

		endedMsg := ch.lastOfType(t, mc.TypeGameEnded)
		assert.Equal(t, "alice", endedMsg["winner"])
	}
}

func TestRestartBroadcasts(t *testing.T) {
	gm := NewGameManager()
	aliceChannel, bobChannel := joinedPair(t, gm)
	gm.PlaceBoard("room1", "alice", fullyPlacedBoard())
	gm.PlaceBoard("room1", "bob", fullyPlacedBoard())

	gm.Restart("room1")

	game, prs := gm.FindGame("room1")
	require.True(t, prs)
	assert.Equal(t, mb.PhasePlacing, game.Phase)

	for _, ch := range []*mockChannel{aliceChannel, bobChannel} {
		update := ch.lastOfType(t, mc.TypeGameUpdate)
		state := update["gameState"].(map[string]any)
		assert.Equal(t, string(mb.PhasePlacing), state["phase"])
		ch.lastOfType(t, mc.TypeGameRestarted)
	}
}

func TestHandleDisconnect(t *testing.T) {
	gm := NewGameManager()
	_, bobChannel := joinedPair(t, gm)

	gm.HandleDisconnect("room1", "alice")

	bobChannel.lastOfType(t, mc.TypeOpponentDisconnected)
	_, prs := gm.FindGame("room1")
	assert.False(t, prs, "session removed from registry")

	// survivor has no session left; a second teardown is a no-op
	gm.HandleDisconnect("room1", "bob")
	count := 0
	for _, v := range bobChannel.messages() {
		if _, ok := v.(mc.RespOpponentDisconnected); ok {
			count++
		}
	}
	assert.Equal(t, 1, count, "exactly one disconnect notice")
}

func TestSummaries(t *testing.T) {
	gm := NewGameManager()
	gm.Join("room2", "carol", newMockChannel("c3"))
	joinedPair(t, gm)
	gm.PlaceBoard("room1", "alice", fullyPlacedBoard())
	gm.PlaceBoard("room1", "bob", fullyPlacedBoard())

	summaries := gm.Summaries()
	require.Len(t, summaries, 2)

	assert.Equal(t, mc.GameSummary{
		Id: "room1", Player1: "alice", Player2: "bob", Status: mc.GameStatusInProgress,
	}, summaries[0])
	assert.Equal(t, mc.GameSummary{
		Id: "room2", Player1: "carol", Status: mc.GameStatusWaiting,
	}, summaries[1])
}
