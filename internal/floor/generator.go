package floor

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/lawnchairsociety/floorgen/internal/logger"
)

var (
	ErrNilConfig         = errors.New("floor: nil config")
	ErrTooFewRooms       = errors.New("floor: room count must be at least 2")
	ErrNegativeCount     = errors.New("floor: path length and treasure count must not be negative")
	ErrPathTooLong       = errors.New("floor: path length exceeds the rooms between start and goal")
	ErrNoOpenSlot        = errors.New("floor: no matching open slot")
	ErrAttemptsExhausted = errors.New("floor: exhausted connection attempts")
	ErrInvalidFloor      = errors.New("floor: generated floor failed verification")
)

// DefaultMaxAttempts is the per-room retry ceiling when attaching rooms
// off the main path.
const DefaultMaxAttempts = 1000

// Config contains parameters for floor generation
type Config struct {
	RoomCount     int   // Total rooms, including start and goal
	PathLength    int   // Rooms chained between start and goal
	TreasureCount int   // Rooms flagged as treasure
	Seed          int64 // Seed for the generator's random source
	MaxAttempts   int   // Per-room retry ceiling (0 = DefaultMaxAttempts)
}

// DefaultConfig returns the stock 15 room floor with a 4 room main path
// and 3 treasure rooms
func DefaultConfig(seed int64) *Config {
	return &Config{
		RoomCount:     15,
		PathLength:    4,
		TreasureCount: 3,
		Seed:          seed,
		MaxAttempts:   DefaultMaxAttempts,
	}
}

// Validate rejects configurations that cannot produce a floor.
// A treasure count larger than the middle of the floor is accepted and
// simply flags every middle room.
func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}
	if c.RoomCount < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewRooms, c.RoomCount)
	}
	if c.PathLength < 0 || c.TreasureCount < 0 || c.MaxAttempts < 0 {
		return fmt.Errorf("%w: path=%d treasure=%d attempts=%d", ErrNegativeCount, c.PathLength, c.TreasureCount, c.MaxAttempts)
	}
	if c.PathLength > c.RoomCount-2 {
		return fmt.Errorf("%w: path=%d, at most %d", ErrPathTooLong, c.PathLength, c.RoomCount-2)
	}
	return nil
}

// Generator builds connected floors. It is not safe for concurrent use.
type Generator struct {
	config      Config
	rng         *rand.Rand
	maxAttempts int
	mainPath    []int
}

// NewGenerator creates a generator seeded from config.Seed
func NewGenerator(config *Config) (*Generator, error) {
	if config == nil {
		return nil, ErrNilConfig
	}
	return NewGeneratorWithRand(config, rand.New(rand.NewSource(config.Seed)))
}

// NewGeneratorWithRand creates a generator that draws from rng
func NewGeneratorWithRand(config *Config, rng *rand.Rand) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(config.Seed))
	}

	maxAttempts := config.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = DefaultMaxAttempts
	}

	return &Generator{
		config:      *config,
		rng:         rng,
		maxAttempts: maxAttempts,
	}, nil
}

// Config returns a copy of the generator's configuration
func (g *Generator) Config() Config {
	return g.config
}

// MainPath returns the room indices of the last generated main path,
// start through goal
func (g *Generator) MainPath() []int {
	path := make([]int, len(g.mainPath))
	copy(path, g.mainPath)
	return path
}

// Generate creates a floor of connected rooms
func (g *Generator) Generate() ([]*Room, error) {
	rooms := g.allocateRooms()

	g.mainPath = nil

	mainPath, err := g.connectRooms(rooms)
	if err != nil {
		return nil, err
	}

	if err := Verify(rooms); err != nil {
		return nil, err
	}
	g.mainPath = mainPath

	logger.Info("Floor generated",
		"rooms", len(rooms),
		"path_length", g.config.PathLength,
		"treasure", g.config.TreasureCount,
		"seed", g.config.Seed)

	return rooms, nil
}

// allocateRooms creates the start, goal, treasure and plain rooms.
// Treasure goes to the lowest middle indices.
func (g *Generator) allocateRooms() []*Room {
	count := g.config.RoomCount
	rooms := make([]*Room, count)
	treasureAdded := 0

	for i := range rooms {
		room := NewRoom(i)
		switch {
		case i == 0:
			room.IsStart = true
		case i == count-1:
			room.IsGoal = true
		case treasureAdded < g.config.TreasureCount:
			room.IsTreasure = true
			treasureAdded++
		}
		rooms[i] = room
	}

	return rooms
}

// connectRooms links the main path, the goal, then every remaining room.
// It returns the main path's room indices.
func (g *Generator) connectRooms(rooms []*Room) ([]int, error) {
	start := rooms[0]
	goal := rooms[len(rooms)-1]

	connected := make([]*Room, 0, len(rooms))
	connected = append(connected, start)

	// The goal is attached explicitly once the main path is done
	pending := make([]*Room, 0, len(rooms))
	pending = append(pending, rooms[1:len(rooms)-1]...)

	for i := 0; i < g.config.PathLength; i++ {
		idx := g.rng.Intn(len(pending))
		next := pending[idx]
		last := connected[len(connected)-1]

		if !g.ConnectRooms(last, next) {
			return nil, fmt.Errorf("%w: main path could not link room %d to room %d", ErrNoOpenSlot, last.Index, next.Index)
		}

		connected = append(connected, next)
		pending = append(pending[:idx], pending[idx+1:]...)
	}

	last := connected[len(connected)-1]
	if !g.ConnectRooms(last, goal) {
		return nil, fmt.Errorf("%w: could not attach goal room %d to room %d", ErrNoOpenSlot, goal.Index, last.Index)
	}
	connected = append(connected, goal)

	mainPath := make([]int, len(connected))
	for i, room := range connected {
		mainPath[i] = room.Index
	}
	logger.Debug("Main path built", "path", mainPath)

	for len(pending) > 0 {
		next := pending[0]

		attached := false
		for attempt := 0; attempt < g.maxAttempts; attempt++ {
			candidate := connected[g.rng.Intn(len(connected))]
			if g.ConnectRooms(next, candidate) {
				attached = true
				break
			}
		}
		if !attached {
			logger.Warning("Room could not be attached", "room", next.Index, "attempts", g.maxAttempts)
			return nil, fmt.Errorf("%w: room %d after %d attempts", ErrAttemptsExhausted, next.Index, g.maxAttempts)
		}

		connected = append(connected, next)
		pending = pending[1:]
	}

	return mainPath, nil
}

// ConnectRooms tries to link main to other through a single direction
// drawn at random from main's open slots. It succeeds only when other has
// the opposite slot open; otherwise nothing changes and false is returned.
func (g *Generator) ConnectRooms(main, other *Room) bool {
	if main == nil || other == nil || main == other || main.Index == other.Index {
		return false
	}

	otherOpen := other.NumberOfOpenDirections()
	if otherOpen == 0 {
		return false
	}

	// Two rooms share at most one pair of slots
	for _, idx := range main.ConnectedRooms() {
		if idx == other.Index {
			return false
		}
	}

	mainOpen := main.OpenDirections()
	if len(mainOpen) == 0 {
		return false
	}

	dir := mainOpen[g.rng.Intn(len(mainOpen))]
	if other.HasExit(dir.Opposite()) {
		return false
	}

	main.setExit(dir, other.Index)
	other.setExit(dir.Opposite(), main.Index)
	return true
}
