package main

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/floorgen/internal/floor"
)

// FloorYAML is the YAML view of a generated floor
type FloorYAML struct {
	Seed          int64      `yaml:"seed"`
	RoomCount     int        `yaml:"room_count"`
	PathLength    int        `yaml:"path_length"`
	TreasureCount int        `yaml:"treasure_count"`
	Start         int        `yaml:"start"`
	Goal          int        `yaml:"goal"`
	MainPath      []int      `yaml:"main_path,flow"`
	Treasure      []int      `yaml:"treasure,flow,omitempty"`
	Rooms         []RoomYAML `yaml:"rooms"`
}

// RoomYAML is one room of a FloorYAML. Exits is an ordered mapping so
// exits come out north, south, west, east.
type RoomYAML struct {
	Index int       `yaml:"index"`
	Tags  []string  `yaml:"tags,flow,omitempty"`
	Exits yaml.Node `yaml:"exits"`
}

// NewFloorYAML converts generated rooms to their YAML view
func NewFloorYAML(gen floor.Config, mainPath []int, rooms []*floor.Room) *FloorYAML {
	out := &FloorYAML{
		Seed:          gen.Seed,
		RoomCount:     len(rooms),
		PathLength:    gen.PathLength,
		TreasureCount: gen.TreasureCount,
		MainPath:      mainPath,
		Rooms:         make([]RoomYAML, 0, len(rooms)),
	}

	for _, room := range rooms {
		if room.IsStart {
			out.Start = room.Index
		}
		if room.IsGoal {
			out.Goal = room.Index
		}
		if room.IsTreasure {
			out.Treasure = append(out.Treasure, room.Index)
		}
		out.Rooms = append(out.Rooms, RoomYAML{
			Index: room.Index,
			Tags:  room.Tags(),
			Exits: exitsNode(room),
		})
	}

	return out
}

func exitsNode(room *floor.Room) yaml.Node {
	node := yaml.Node{Kind: yaml.MappingNode}
	for _, dir := range floor.AllDirections() {
		idx, ok := room.Neighbor(dir)
		if !ok {
			continue
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: dir.String()},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(idx)},
		)
	}
	return node
}

// WriteFloorYAML writes a floor as YAML with a short header comment
func WriteFloorYAML(w io.Writer, out *FloorYAML) error {
	fmt.Fprintf(w, "# Generated with seed: %d\n", out.Seed)
	fmt.Fprintf(w, "# Room count: %d\n\n", out.RoomCount)

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return encoder.Close()
}
