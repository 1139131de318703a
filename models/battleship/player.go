package battleship

type Role string

const (
	RoleNone    Role = ""
	RolePlayer1 Role = "player1"
	RolePlayer2 Role = "player2"
)

func (r Role) Other() Role {
	switch r {
	case RolePlayer1:
		return RolePlayer2
	case RolePlayer2:
		return RolePlayer1
	default:
		return RoleNone
	}
}

// Player is one participant of a game. The username is the
// self-declared display name registered at login, the role is
// assigned by join order and never changes for the game's lifetime.
type Player struct {
	Username string
	Role     Role
}

func NewPlayer(username string, role Role) *Player {
	return &Player{Username: username, Role: role}
}
