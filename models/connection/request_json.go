package connection

import (
	mb "github.com/fleetduel/fleetduel-backend/models/battleship"
)

type ReqLogin struct {
	Username string `json:"username"`
}

type ReqJoinGame struct {
	GameId   string `json:"gameId"`
	Username string `json:"username"`
}

type ReqPlaceShip struct {
	Board mb.Board `json:"board"`
}

type ReqMakeMove struct {
	Board mb.Board `json:"board"`
}
