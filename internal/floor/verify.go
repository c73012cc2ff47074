package floor

import "fmt"

// Verify checks that a finished floor is well formed: start at index 0,
// goal at the last index, symmetric exits, no self or duplicate links,
// and every room reachable from the start.
func Verify(rooms []*Room) error {
	if len(rooms) == 0 {
		return fmt.Errorf("%w: no rooms", ErrInvalidFloor)
	}

	// Exits are followed below, so every room must be present first
	for i, room := range rooms {
		if room == nil {
			return fmt.Errorf("%w: room %d is nil", ErrInvalidFloor, i)
		}
		if room.Index != i {
			return fmt.Errorf("%w: room at position %d has index %d", ErrInvalidFloor, i, room.Index)
		}
	}

	last := len(rooms) - 1
	for i, room := range rooms {
		if room.IsStart != (i == 0) {
			return fmt.Errorf("%w: room %d start=%v", ErrInvalidFloor, i, room.IsStart)
		}
		if room.IsGoal != (i == last) && last > 0 {
			return fmt.Errorf("%w: room %d goal=%v", ErrInvalidFloor, i, room.IsGoal)
		}

		seen := make(map[int]bool, 4)
		for _, dir := range AllDirections() {
			idx, ok := room.Neighbor(dir)
			if !ok {
				continue
			}
			if idx < 0 || idx > last {
				return fmt.Errorf("%w: room %d %s exit %d out of range", ErrInvalidFloor, i, dir, idx)
			}
			if idx == i {
				return fmt.Errorf("%w: room %d links to itself", ErrInvalidFloor, i)
			}
			if seen[idx] {
				return fmt.Errorf("%w: room %d links to room %d more than once", ErrInvalidFloor, i, idx)
			}
			seen[idx] = true

			back, ok := rooms[idx].Neighbor(dir.Opposite())
			if !ok || back != i {
				return fmt.Errorf("%w: room %d %s -> %d is not mirrored", ErrInvalidFloor, i, dir, idx)
			}
		}
	}

	for i, ok := range Reachable(rooms, 0) {
		if !ok {
			return fmt.Errorf("%w: room %d is not reachable from the start", ErrInvalidFloor, i)
		}
	}

	return nil
}

// Reachable returns, for each room, whether it can be reached from the
// room at index from by following exits
func Reachable(rooms []*Room, from int) []bool {
	visited := make([]bool, len(rooms))
	if from < 0 || from >= len(rooms) || rooms[from] == nil {
		return visited
	}

	// BFS from the given room
	queue := []int{from}
	visited[from] = true

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, idx := range rooms[current].ConnectedRooms() {
			if idx < 0 || idx >= len(rooms) || visited[idx] || rooms[idx] == nil {
				continue
			}
			visited[idx] = true
			queue = append(queue, idx)
		}
	}

	return visited
}
