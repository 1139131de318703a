package battleship

import (
	cerr "github.com/fleetduel/fleetduel-backend/internal/error"
)

type Phase string

const (
	PhasePlacing Phase = "placing"
	PhaseBattle  Phase = "battle"
	PhaseEnded   Phase = "ended"
)

// Game is the state machine of one two-player match. It holds no
// transport references; the api layer owns the mapping from roles to
// live connections and serializes every call into this struct.
type Game struct {
	Id           string
	Phase        Phase
	Player1      *Player
	Player2      *Player
	Player1Board Board
	Player2Board Board
	CurrentTurn  Role
	Winner       Role
}

// GameState is the wire representation of a game pushed to both
// participants after every accepted transition.
type GameState struct {
	Player1Board Board `json:"player1Board"`
	Player2Board Board `json:"player2Board"`
	CurrentTurn  Role  `json:"currentTurn"`
	Phase        Phase `json:"phase"`
	Winner       Role  `json:"winner,omitempty"`
}

// FireResult describes the outcome of a Fire transition.
type FireResult struct {
	Accepted  bool
	Hit       bool
	NewlySunk []int
	Ended     bool
	Winner    *Player
}

// NewGame creates a game in the placing phase with the caller as
// player1 and two empty boards.
func NewGame(id, hostUsername string) *Game {
	return &Game{
		Id:           id,
		Phase:        PhasePlacing,
		Player1:      NewPlayer(hostUsername, RolePlayer1),
		Player1Board: NewBoard(),
		Player2Board: NewBoard(),
		CurrentTurn:  RolePlayer1,
	}
}

// AddPlayer2 attaches the second participant. It fails only when
// both slots are already taken, in which case nothing is mutated.
func (g *Game) AddPlayer2(username string) (*Player, error) {
	if g.Player2 != nil {
		return nil, cerr.ErrGameIsFull(g.Id)
	}
	g.Player2 = NewPlayer(username, RolePlayer2)
	return g.Player2, nil
}

func (g *Game) IsFull() bool {
	return g.Player1 != nil && g.Player2 != nil
}

// PlayerByUsername resolves a participant's role from their display
// name. Returns nil for usernames not part of this game.
func (g *Game) PlayerByUsername(username string) *Player {
	if g.Player1 != nil && g.Player1.Username == username {
		return g.Player1
	}
	if g.Player2 != nil && g.Player2.Username == username {
		return g.Player2
	}
	return nil
}

func (g *Game) PlayerByRole(role Role) *Player {
	if role == RolePlayer1 {
		return g.Player1
	}
	if role == RolePlayer2 {
		return g.Player2
	}
	return nil
}

func (g *Game) BoardOf(role Role) Board {
	if role == RolePlayer1 {
		return g.Player1Board
	}
	return g.Player2Board
}

func (g *Game) setBoard(role Role, b Board) {
	if role == RolePlayer1 {
		g.Player1Board = b
	} else {
		g.Player2Board = b
	}
}

// PlaceBoard overwrites the caller's board verbatim. The server does
// not validate placement legality; the client UI enforces it and the
// trust model of the original protocol is preserved. When both boards
// carry the full roster the game moves to the battle phase with
// player1 to act.
func (g *Game) PlaceBoard(role Role, b Board) (started bool) {
	g.setBoard(role, b)

	if g.Phase == PhasePlacing &&
		CountDistinctShips(g.Player1Board) == TotalShips &&
		CountDistinctShips(g.Player2Board) == TotalShips {
		g.Phase = PhaseBattle
		g.CurrentTurn = RolePlayer1
		return true
	}
	return false
}

// Fire applies a shot submitted by the player holding role. The
// incoming board is the opponent's board as mutated by the shooter
// client, accepted wholesale. The shot is silently rejected outside
// the battle phase or out of turn.
func (g *Game) Fire(role Role, opponentBoard Board) FireResult {
	if g.Phase != PhaseBattle || role != g.CurrentTurn {
		return FireResult{}
	}

	target := role.Other()
	oldBoard := g.BoardOf(target)
	g.setBoard(target, opponentBoard)

	result := FireResult{
		Accepted:  true,
		NewlySunk: NewlySunkShips(opponentBoard, oldBoard),
	}

	player1Won := AllShipsSunk(g.Player2Board)
	player2Won := AllShipsSunk(g.Player1Board)
	if player1Won || player2Won {
		g.Phase = PhaseEnded
		if player1Won {
			g.Winner = RolePlayer1
		} else {
			g.Winner = RolePlayer2
		}
		result.Ended = true
		result.Winner = g.PlayerByRole(g.Winner)
		return result
	}

	// A connecting shot keeps the turn, a miss hands it over.
	if x, y, ok := DiffHit(opponentBoard, oldBoard); ok {
		result.Hit = WasHit(opponentBoard, oldBoard, x, y)
	}
	if !result.Hit {
		g.CurrentTurn = g.CurrentTurn.Other()
	}
	return result
}

// Restart resets the game to the placing phase with fresh boards.
// Calling it on an already reset game is a no-op in effect.
func (g *Game) Restart() {
	g.Phase = PhasePlacing
	g.Player1Board = NewBoard()
	g.Player2Board = NewBoard()
	g.CurrentTurn = RolePlayer1
	g.Winner = RoleNone
}

func (g *Game) State() GameState {
	return GameState{
		Player1Board: g.Player1Board,
		Player2Board: g.Player2Board,
		CurrentTurn:  g.CurrentTurn,
		Phase:        g.Phase,
		Winner:       g.Winner,
	}
}
