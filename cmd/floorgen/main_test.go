package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type decodedFloor struct {
	Seed      int64 `yaml:"seed"`
	RoomCount int   `yaml:"room_count"`
	Start     int   `yaml:"start"`
	Goal      int   `yaml:"goal"`
	MainPath  []int `yaml:"main_path"`
	Treasure  []int `yaml:"treasure"`
	Rooms     []struct {
		Index int            `yaml:"index"`
		Tags  []string       `yaml:"tags"`
		Exits map[string]int `yaml:"exits"`
	} `yaml:"rooms"`
}

func missingConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "none.yaml")
}

func TestRunText(t *testing.T) {
	var stdout, stderr bytes.Buffer
	args := []string{"-config", missingConfig(t), "-rooms", "5", "-path", "2", "-treasure", "1", "-seed", "3"}

	if err := run(args, strings.NewReader(""), &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v (stderr: %s)", err, stderr.String())
	}

	out := stdout.String()
	for _, want := range []string{"Floor generated", "Room 0 [start]", "Room 1 [treasure]", "Room 4 [goal]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "Room ") != 5 {
		t.Errorf("expected 5 room summaries:\n%s", out)
	}
}

func TestRunYAML(t *testing.T) {
	var stdout, stderr bytes.Buffer
	args := []string{"-config", missingConfig(t), "-rooms", "8", "-path", "3", "-treasure", "2", "-seed", "11", "-format", "yaml"}

	if err := run(args, strings.NewReader(""), &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v (stderr: %s)", err, stderr.String())
	}

	var decoded decodedFloor
	if err := yaml.Unmarshal(stdout.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, stdout.String())
	}

	if decoded.Seed != 11 || decoded.RoomCount != 8 {
		t.Errorf("seed/room_count = %d/%d, want 11/8", decoded.Seed, decoded.RoomCount)
	}
	if decoded.Start != 0 || decoded.Goal != 7 {
		t.Errorf("start/goal = %d/%d, want 0/7", decoded.Start, decoded.Goal)
	}
	if len(decoded.MainPath) != 5 {
		t.Errorf("main_path = %v, want 5 rooms", decoded.MainPath)
	}
	if len(decoded.Treasure) != 2 || decoded.Treasure[0] != 1 || decoded.Treasure[1] != 2 {
		t.Errorf("treasure = %v, want [1 2]", decoded.Treasure)
	}

	opposite := map[string]string{"north": "south", "south": "north", "east": "west", "west": "east"}
	for _, room := range decoded.Rooms {
		if len(room.Exits) == 0 {
			t.Errorf("room %d has no exits", room.Index)
		}
		for dir, idx := range room.Exits {
			back := decoded.Rooms[idx].Exits[opposite[dir]]
			if back != room.Index {
				t.Errorf("room %d %s -> %d not mirrored (got %d)", room.Index, dir, idx, back)
			}
		}
	}
}

func TestRunYAMLExitOrder(t *testing.T) {
	var stdout, stderr bytes.Buffer
	args := []string{"-config", missingConfig(t), "-rooms", "30", "-path", "5", "-seed", "4", "-format", "yaml"}

	if err := run(args, strings.NewReader(""), &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// Within each exits block keys follow slot order
	order := map[string]int{"north": 0, "south": 1, "west": 2, "east": 3}
	last := -1
	for _, line := range strings.Split(stdout.String(), "\n") {
		trimmed := strings.TrimSpace(line)
		key, _, found := strings.Cut(trimmed, ":")
		rank, isDir := order[key]
		switch {
		case found && isDir:
			if rank <= last {
				t.Fatalf("exit %q out of order:\n%s", key, stdout.String())
			}
			last = rank
		case strings.HasPrefix(trimmed, "exits:"):
			last = -1
		}
	}
}

func TestRunConfigFileAndOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "floorgen.yaml")
	content := "generation:\n  room_count: 6\n  path_length: 2\n  treasure_count: 4\n  seed: 21\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	var stdout, stderr bytes.Buffer
	args := []string{"-config", path, "-treasure", "0", "-format", "yaml"}
	if err := run(args, strings.NewReader(""), &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	var decoded decodedFloor
	if err := yaml.Unmarshal(stdout.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded.RoomCount != 6 || decoded.Seed != 21 {
		t.Errorf("room_count/seed = %d/%d, want 6/21 from config", decoded.RoomCount, decoded.Seed)
	}
	if len(decoded.Treasure) != 0 {
		t.Errorf("treasure = %v, want none (flag override)", decoded.Treasure)
	}
	if len(decoded.MainPath) != 4 {
		t.Errorf("main_path = %v, want 4 rooms from config", decoded.MainPath)
	}
}

func TestRunUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"too few rooms", []string{"-rooms", "1"}},
		{"path too long", []string{"-rooms", "4", "-path", "3"}},
		{"negative treasure", []string{"-rooms", "4", "-treasure", "-1"}},
		{"bad format", []string{"-format", "xml"}},
		{"unknown flag", []string{"-bogus"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			args := append([]string{"-config", missingConfig(t), "-seed", "1"}, tc.args...)
			err := run(args, strings.NewReader(""), &stdout, &stderr)
			if !errors.Is(err, errUsage) {
				t.Errorf("run(%v) error = %v, want usage error", tc.args, err)
			}
			if stdout.Len() != 0 {
				t.Errorf("unexpected output on error: %s", stdout.String())
			}
		})
	}
}

func TestRunWait(t *testing.T) {
	var stdout, stderr bytes.Buffer
	args := []string{"-config", missingConfig(t), "-rooms", "3", "-path", "0", "-seed", "2", "-wait"}

	if err := run(args, strings.NewReader("\n"), &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(stderr.String(), "Press Enter to exit") {
		t.Errorf("missing prompt on stderr: %s", stderr.String())
	}

	// Closed stdin still lets the program exit
	stderr.Reset()
	if err := run(args, strings.NewReader(""), &stdout, &stderr); err != nil {
		t.Fatalf("run with empty stdin failed: %v", err)
	}
}

func TestRunLogsToStderr(t *testing.T) {
	t.Setenv("LOG_LEVEL", "INFO")

	var stdout, stderr bytes.Buffer
	args := []string{"-config", missingConfig(t), "-rooms", "4", "-path", "1", "-seed", "13"}
	if err := run(args, strings.NewReader(""), &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	logs := stderr.String()
	if !strings.Contains(logs, "Seed selected") || !strings.Contains(logs, "seed=13") {
		t.Errorf("stderr missing seed log: %s", logs)
	}
	if !strings.Contains(logs, "Floor generated") {
		t.Errorf("stderr missing generation log: %s", logs)
	}
	if strings.Contains(stdout.String(), "level=INFO") {
		t.Errorf("log records leaked to stdout: %s", stdout.String())
	}
}
