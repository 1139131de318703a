package battleship

// BoardSize is fixed for every game. The clients render a 10x10
// grid and the wire format assumes it.
const BoardSize = 10

// ShipIdNone marks a cell that belongs to no ship.
const ShipIdNone = 0

type Cell struct {
	IsShip bool `json:"isShip"`
	IsHit  bool `json:"isHit"`
	ShipId int  `json:"shipId,omitempty"`
}

// Board is a row-major BoardSize x BoardSize matrix of cells.
type Board [][]Cell

// NewBoard creates an empty board, every cell unoccupied and unhit.
func NewBoard() Board {
	board := make(Board, BoardSize)
	for i := 0; i < BoardSize; i++ {
		board[i] = make([]Cell, BoardSize)
	}
	return board
}

// HasValidDimensions reports whether the board is a full
// BoardSize x BoardSize matrix. Boards arriving off the wire are
// checked with this before any other helper touches them.
func (b Board) HasValidDimensions() bool {
	if len(b) != BoardSize {
		return false
	}
	for _, row := range b {
		if len(row) != BoardSize {
			return false
		}
	}
	return true
}

// CountDistinctShips returns the number of unique ship ids present
// on the board. Placement is complete when this equals the roster size.
func CountDistinctShips(b Board) int {
	seen := make(map[int]bool, TotalShips)
	for _, row := range b {
		for _, cell := range row {
			if cell.ShipId != ShipIdNone {
				seen[cell.ShipId] = true
			}
		}
	}
	return len(seen)
}

// AllShipsSunk reports whether every ship cell has been hit. A board
// with no ships at all satisfies this vacuously.
func AllShipsSunk(b Board) bool {
	for _, row := range b {
		for _, cell := range row {
			if cell.IsShip && !cell.IsHit {
				return false
			}
		}
	}
	return true
}

// IsShipSunk reports whether every cell bearing shipId has been hit.
// A ship with no cells on the board is not considered sunk.
func IsShipSunk(b Board, shipId int) bool {
	found := false
	for _, row := range b {
		for _, cell := range row {
			if cell.ShipId != shipId {
				continue
			}
			if !cell.IsHit {
				return false
			}
			found = true
		}
	}
	return found
}

// NewlySunkShips returns the ids of ships that are sunk on newBoard
// but were not yet sunk on oldBoard, in roster order.
func NewlySunkShips(newBoard, oldBoard Board) []int {
	present := make(map[int]bool, TotalShips)
	for _, row := range newBoard {
		for _, cell := range row {
			if cell.ShipId != ShipIdNone {
				present[cell.ShipId] = true
			}
		}
	}

	var sunk []int
	for _, spec := range ShipRoster {
		if !present[spec.Id] {
			continue
		}
		if IsShipSunk(newBoard, spec.Id) && !IsShipSunk(oldBoard, spec.Id) {
			sunk = append(sunk, spec.Id)
		}
	}
	return sunk
}

// WasHit reports whether the cell at (x, y) transitioned from unhit
// to hit and belongs to a ship. A hit lets the shooter keep the turn.
func WasHit(newBoard, oldBoard Board, x, y int) bool {
	if x < 0 || x >= BoardSize || y < 0 || y >= BoardSize {
		return false
	}
	newCell := newBoard[x][y]
	oldCell := oldBoard[x][y]
	return newCell.IsHit && !oldCell.IsHit && newCell.IsShip
}

// DiffHit locates the cell whose IsHit flag flipped between oldBoard
// and newBoard. The wire carries whole boards rather than shot
// coordinates, so the shot position has to be recovered by diffing.
func DiffHit(newBoard, oldBoard Board) (x, y int, ok bool) {
	for i := 0; i < BoardSize; i++ {
		for j := 0; j < BoardSize; j++ {
			if newBoard[i][j].IsHit && !oldBoard[i][j].IsHit {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}
