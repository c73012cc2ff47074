package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/floorgen/internal/floor"
)

// FloorgenConfig holds the settings read from the floorgen config file.
// The file's logging section is read separately by the logger package.
type FloorgenConfig struct {
	Generation GenerationConfig `yaml:"generation"`
}

// GenerationConfig holds the inputs of one floor generation run.
type GenerationConfig struct {
	// RoomCount is the total number of rooms, start and goal included.
	RoomCount int `yaml:"room_count"`

	// PathLength is the number of rooms chained between start and goal.
	PathLength int `yaml:"path_length"`

	// TreasureCount is the number of middle rooms flagged as treasure.
	TreasureCount int `yaml:"treasure_count"`

	// Seed seeds the random source. 0 means pick one from the clock.
	Seed int64 `yaml:"seed"`

	// MaxAttempts bounds the retries when attaching a room off the main path.
	MaxAttempts int `yaml:"max_attempts"`
}

// Environment variables that override the config file
const (
	EnvRoomCount     = "FLOORGEN_ROOMS"
	EnvPathLength    = "FLOORGEN_PATH_LENGTH"
	EnvTreasureCount = "FLOORGEN_TREASURE"
	EnvSeed          = "FLOORGEN_SEED"
)

// DefaultConfig returns a FloorgenConfig matching floor.DefaultConfig.
func DefaultConfig() *FloorgenConfig {
	defaults := floor.DefaultConfig(0)
	return &FloorgenConfig{
		Generation: GenerationConfig{
			RoomCount:     defaults.RoomCount,
			PathLength:    defaults.PathLength,
			TreasureCount: defaults.TreasureCount,
			Seed:          defaults.Seed,
			MaxAttempts:   defaults.MaxAttempts,
		},
	}
}

// LoadConfig loads floorgen configuration from a YAML file, then applies
// environment overrides. A missing file is not an error.
func LoadConfig(path string) (*FloorgenConfig, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return config, fmt.Errorf("read config %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, config); err != nil {
				return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := config.applyEnv(); err != nil {
		return config, err
	}

	return config, nil
}

func (c *FloorgenConfig) applyEnv() error {
	ints := []struct {
		name string
		dst  *int
	}{
		{EnvRoomCount, &c.Generation.RoomCount},
		{EnvPathLength, &c.Generation.PathLength},
		{EnvTreasureCount, &c.Generation.TreasureCount},
	}
	for _, v := range ints {
		raw := os.Getenv(v.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", v.name, err)
		}
		*v.dst = n
	}

	if raw := os.Getenv(EnvSeed); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSeed, err)
		}
		c.Generation.Seed = seed
	}

	return nil
}

// FloorConfig converts the generation settings into a floor.Config.
func (g GenerationConfig) FloorConfig() *floor.Config {
	return &floor.Config{
		RoomCount:     g.RoomCount,
		PathLength:    g.PathLength,
		TreasureCount: g.TreasureCount,
		Seed:          g.Seed,
		MaxAttempts:   g.MaxAttempts,
	}
}
