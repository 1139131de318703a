package error

import "fmt"

// MsgGameIsFull is the only error text surfaced to clients; every
// other illegal command is dropped without a reply.
const MsgGameIsFull = "Game is full"

func ErrGameNotExists(gameId string) error {
	return fmt.Errorf("game with this id does not exist, id: %s", gameId)
}

func ErrGameIsFull(gameId string) error {
	return fmt.Errorf("game already has two players, id: %s", gameId)
}

func ErrPlayerNotInGame(username, gameId string) error {
	return fmt.Errorf("player is not a participant of this game\tusername: %s\tgame id: %s", username, gameId)
}

func ErrInvalidBoard(rows int) error {
	return fmt.Errorf("incoming board does not have valid dimensions\trows: %d", rows)
}
