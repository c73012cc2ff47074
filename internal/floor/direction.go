package floor

// Direction represents one of a room's four exit slots
type Direction int

// Declaration order is the order slots are reported in.
const (
	North Direction = iota
	South
	West
	East
)

// String returns the string representation of a Direction
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case West:
		return "west"
	case East:
		return "east"
	default:
		return "unknown"
	}
}

// Opposite returns the direction a neighbor uses to point back
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case West:
		return East
	case East:
		return West
	default:
		return d
	}
}

// AllDirections returns all four directions in slot order
func AllDirections() []Direction {
	return []Direction{North, South, West, East}
}
