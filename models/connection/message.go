package connection

// Client to server message types.
const (
	TypeLogin       = "login"
	TypeJoinGame    = "join_game"
	TypePlaceShip   = "place_ship"
	TypeMakeMove    = "make_move"
	TypeRestartGame = "restart_game"
)

// Server to client message types.
const (
	TypeLoginSuccess         = "login_success"
	TypeLobbyUpdate          = "lobby_update"
	TypeJoined               = "joined"
	TypePlayerJoined         = "player_joined"
	TypeError                = "error"
	TypeGameUpdate           = "game_update"
	TypeGameEnded            = "game_ended"
	TypeOpponentDisconnected = "opponent_disconnected"
	TypeGameRestarted        = "game_restarted"
)

// Envelope is the probe decode of an incoming frame; the full typed
// request is unmarshalled in a second pass once the type is known.
type Envelope struct {
	Type string `json:"type"`
}
