package components

// Direction is one of the eight compass headings, clockwise from north.
// Directions compare by value; never by their vectors.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
	NumDirections
)

// directionVectors is indexed by Direction. Screen coordinates: y grows southward.
var directionVectors = [NumDirections][2]int{
	{0, -1},  // N
	{1, -1},  // NE
	{1, 0},   // E
	{1, 1},   // SE
	{0, 1},   // S
	{-1, 1},  // SW
	{-1, 0},  // W
	{-1, -1}, // NW
}

var directionNames = [NumDirections]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Vector returns the unit step for the direction.
func (d Direction) Vector() (dx, dy int) {
	v := directionVectors[d%NumDirections]
	return v[0], v[1]
}

// Left returns the direction one step counter-clockwise.
func (d Direction) Left() Direction {
	return (d + NumDirections - 1) % NumDirections
}

// Right returns the direction one step clockwise.
func (d Direction) Right() Direction {
	return (d + 1) % NumDirections
}

// Opposite returns the direction rotated by 180 degrees.
func (d Direction) Opposite() Direction {
	return (d + NumDirections/2) % NumDirections
}

func (d Direction) String() string {
	if d >= NumDirections {
		return "?"
	}
	return directionNames[d]
}
