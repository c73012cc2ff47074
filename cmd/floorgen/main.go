package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lawnchairsociety/floorgen/internal/config"
	"github.com/lawnchairsociety/floorgen/internal/floor"
	"github.com/lawnchairsociety/floorgen/internal/logger"
)

// errUsage marks errors caused by bad flags or configuration
var errUsage = errors.New("usage error")

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("floorgen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configFile := fs.String("config", "data/floorgen.yaml", "Path to floorgen config YAML file")
	rooms := fs.Int("rooms", 0, "Total number of rooms, start and goal included")
	pathLength := fs.Int("path", 0, "Number of rooms between start and goal")
	treasure := fs.Int("treasure", 0, "Number of treasure rooms")
	seed := fs.Int64("seed", 0, "Generation seed (default: random based on current time)")
	attempts := fs.Int("attempts", 0, "Connection attempts per room before giving up")
	format := fs.String("format", "text", "Output format: text or yaml")
	wait := fs.Bool("wait", false, "Wait for Enter before exiting")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	if *format != "text" && *format != "yaml" {
		return fmt.Errorf("%w: unknown format %q", errUsage, *format)
	}

	// Initialize logger first (before any logging)
	logConfig, err := logger.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: %v (using default logging)\n", err)
	}
	if err := logger.InitializeWithConsole(logConfig, stderr); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	// Flags given on the command line win over the config file
	gen := cfg.Generation
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rooms":
			gen.RoomCount = *rooms
		case "path":
			gen.PathLength = *pathLength
		case "treasure":
			gen.TreasureCount = *treasure
		case "seed":
			gen.Seed = *seed
		case "attempts":
			gen.MaxAttempts = *attempts
		}
	})

	if gen.Seed == 0 {
		gen.Seed = time.Now().UnixNano()
		logger.Info("Seed selected", "seed", gen.Seed, "random", true)
	} else {
		logger.Info("Seed selected", "seed", gen.Seed, "random", false)
	}

	generator, err := floor.NewGenerator(gen.FloorConfig())
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	generated, err := generator.Generate()
	if err != nil {
		logger.Error("Floor generation failed", "error", err, "seed", gen.Seed)
		return err
	}

	switch *format {
	case "yaml":
		if err := WriteFloorYAML(stdout, NewFloorYAML(generator.Config(), generator.MainPath(), generated)); err != nil {
			return err
		}
	default:
		writeText(stdout, generated)
	}

	if *wait {
		fmt.Fprintln(stderr, "Press Enter to exit")
		if _, err := bufio.NewReader(stdin).ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
	}

	return nil
}

// writeText prints every room's summary
func writeText(w io.Writer, rooms []*floor.Room) {
	fmt.Fprintln(w, "Floor generated")
	for _, room := range rooms {
		fmt.Fprintln(w, room.String())
	}
}
