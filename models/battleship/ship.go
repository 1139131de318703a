package battleship

// TotalShips is the number of ships each player must place before
// the battle phase can begin.
const TotalShips = 5

type ShipSpec struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
	Size int    `json:"size"`
}

// ShipRoster is the fixed fleet both clients place. It is shared
// configuration mirrored on the client side, never mutated.
var ShipRoster = []ShipSpec{
	{Id: 1, Name: "Carrier", Size: 5},
	{Id: 2, Name: "Battleship", Size: 4},
	{Id: 3, Name: "Cruiser", Size: 3},
	{Id: 4, Name: "Submarine", Size: 3},
	{Id: 5, Name: "Destroyer", Size: 2},
}
