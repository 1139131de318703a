package connection

import (
	mb "github.com/fleetduel/fleetduel-backend/models/battleship"
)

const (
	GameStatusWaiting    = "waiting"
	GameStatusInProgress = "in_progress"
)

// GameSummary is one row of the lobby snapshot.
type GameSummary struct {
	Id      string `json:"id"`
	Player1 string `json:"player1"`
	Player2 string `json:"player2,omitempty"`
	Status  string `json:"status"`
}

type RespLoginSuccess struct {
	Type     string `json:"type"`
	Username string `json:"username"`
}

func NewRespLoginSuccess(username string) RespLoginSuccess {
	return RespLoginSuccess{Type: TypeLoginSuccess, Username: username}
}

type RespLobbyUpdate struct {
	Type  string        `json:"type"`
	Users []string      `json:"users"`
	Games []GameSummary `json:"games"`
}

func NewRespLobbyUpdate(users []string, games []GameSummary) RespLobbyUpdate {
	return RespLobbyUpdate{Type: TypeLobbyUpdate, Users: users, Games: games}
}

type RespJoined struct {
	Type      string       `json:"type"`
	PlayerId  mb.Role      `json:"playerId"`
	GameId    string       `json:"gameId"`
	Opponent  string       `json:"opponent,omitempty"`
	GameState mb.GameState `json:"gameState"`
}

func NewRespJoined(playerId mb.Role, gameId, opponent string, state mb.GameState) RespJoined {
	return RespJoined{
		Type:      TypeJoined,
		PlayerId:  playerId,
		GameId:    gameId,
		Opponent:  opponent,
		GameState: state,
	}
}

type RespPlayerJoined struct {
	Type      string       `json:"type"`
	Opponent  string       `json:"opponent"`
	GameState mb.GameState `json:"gameState"`
}

func NewRespPlayerJoined(opponent string, state mb.GameState) RespPlayerJoined {
	return RespPlayerJoined{Type: TypePlayerJoined, Opponent: opponent, GameState: state}
}

type RespError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewRespError(message string) RespError {
	return RespError{Type: TypeError, Message: message}
}

type RespGameUpdate struct {
	Type           string       `json:"type"`
	GameState      mb.GameState `json:"gameState"`
	NewlySunkShips []int        `json:"newlySunkShips,omitempty"`
}

func NewRespGameUpdate(state mb.GameState, newlySunk []int) RespGameUpdate {
	return RespGameUpdate{Type: TypeGameUpdate, GameState: state, NewlySunkShips: newlySunk}
}

type RespGameEnded struct {
	Type   string `json:"type"`
	Winner string `json:"winner"`
}

func NewRespGameEnded(winner string) RespGameEnded {
	return RespGameEnded{Type: TypeGameEnded, Winner: winner}
}

type RespOpponentDisconnected struct {
	Type string `json:"type"`
}

func NewRespOpponentDisconnected() RespOpponentDisconnected {
	return RespOpponentDisconnected{Type: TypeOpponentDisconnected}
}

type RespGameRestarted struct {
	Type string `json:"type"`
}

func NewRespGameRestarted() RespGameRestarted {
	return RespGameRestarted{Type: TypeGameRestarted}
}
