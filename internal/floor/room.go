package floor

import (
	"fmt"
	"strings"
)

// Room is a single node of a generated floor. Exits hold the index of the
// neighboring room in each direction; a missing key means the slot is open.
type Room struct {
	Index      int
	IsStart    bool
	IsGoal     bool
	IsTreasure bool
	exits      map[Direction]int
}

// NewRoom creates an unconnected room with the given index
func NewRoom(index int) *Room {
	return &Room{
		Index: index,
		exits: make(map[Direction]int, 4),
	}
}

// Neighbor returns the index of the room in the given direction
func (r *Room) Neighbor(dir Direction) (int, bool) {
	idx, ok := r.exits[dir]
	return idx, ok
}

// HasExit returns true if the slot in the given direction is connected
func (r *Room) HasExit(dir Direction) bool {
	_, ok := r.exits[dir]
	return ok
}

// setExit links one side of a connection. Callers keep both sides in sync.
func (r *Room) setExit(dir Direction, neighbor int) {
	if r.exits == nil {
		r.exits = make(map[Direction]int, 4)
	}
	r.exits[dir] = neighbor
}

// ConnectedRooms returns neighbor indices in north, south, west, east order
func (r *Room) ConnectedRooms() []int {
	rooms := make([]int, 0, len(r.exits))
	for _, dir := range AllDirections() {
		if idx, ok := r.exits[dir]; ok {
			rooms = append(rooms, idx)
		}
	}
	return rooms
}

// OpenDirections returns the directions that have no neighbor yet
func (r *Room) OpenDirections() []Direction {
	open := make([]Direction, 0, 4)
	for _, dir := range AllDirections() {
		if !r.HasExit(dir) {
			open = append(open, dir)
		}
	}
	return open
}

// NumberOfOpenDirections returns len(OpenDirections())
func (r *Room) NumberOfOpenDirections() int {
	return len(r.OpenDirections())
}

// Tags returns the room's tags as display labels
func (r *Room) Tags() []string {
	var tags []string
	if r.IsStart {
		tags = append(tags, "start")
	}
	if r.IsGoal {
		tags = append(tags, "goal")
	}
	if r.IsTreasure {
		tags = append(tags, "treasure")
	}
	return tags
}

// String renders the room's tags and exits for display
func (r *Room) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Room %d", r.Index))
	if tags := r.Tags(); len(tags) > 0 {
		sb.WriteString(" [" + strings.Join(tags, ", ") + "]")
	}
	sb.WriteString("\n")

	if len(r.exits) == 0 {
		sb.WriteString("  (no exits)\n")
		return sb.String()
	}
	for _, dir := range AllDirections() {
		if idx, ok := r.exits[dir]; ok {
			sb.WriteString(fmt.Sprintf("  %s -> room %d\n", dir, idx))
		}
	}
	return sb.String()
}
