package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/mcp-training/snakesladders/game/engine"
)

func testLayout() *engine.Layout {
	return &engine.Layout{
		Name:    "Test Board",
		Snakes:  map[int]int{16: 6, 47: 26, 62: 19, 98: 78},
		Ladders: map[int]int{4: 14, 21: 42, 80: 100},
	}
}

func TestSimulate(t *testing.T) {
	res, err := simulate(testLayout(), 50, 3, 7)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	if res.Games != 50 {
		t.Errorf("Expected 50 games, got %d", res.Games)
	}
	if res.MinTurns <= 0 || res.MinTurns > res.MaxTurns {
		t.Errorf("Unexpected turn range %d..%d", res.MinTurns, res.MaxTurns)
	}
	if res.MeanTurns < float64(res.MinTurns) || res.MeanTurns > float64(res.MaxTurns) {
		t.Errorf("Mean %.1f outside range %d..%d", res.MeanTurns, res.MinTurns, res.MaxTurns)
	}

	wins := 0
	for id, n := range res.Wins {
		if id < 1 || id > 3 {
			t.Errorf("Unexpected winner ID %d", id)
		}
		wins += n
	}
	if wins != 50 {
		t.Errorf("Expected 50 wins in total, got %d", wins)
	}
}

func TestSimulate_Deterministic(t *testing.T) {
	a, err := simulate(testLayout(), 20, 2, 42)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	b, err := simulate(testLayout(), 20, 2, 42)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	if a.MeanTurns != b.MeanTurns || a.MinTurns != b.MinTurns || a.MaxTurns != b.MaxTurns {
		t.Errorf("Same seed produced different results: %+v vs %+v", a, b)
	}
}

func TestSimulate_InvalidInput(t *testing.T) {
	if _, err := simulate(testLayout(), 0, 2, 1); !errors.Is(err, engine.ErrInvalidConfiguration) {
		t.Errorf("Expected ErrInvalidConfiguration for zero games, got %v", err)
	}
	if _, err := simulate(testLayout(), 1, 7, 1); !errors.Is(err, engine.ErrInvalidConfiguration) {
		t.Errorf("Expected ErrInvalidConfiguration for 7 players, got %v", err)
	}
}

func TestRun_BuiltInTiers(t *testing.T) {
	var out bytes.Buffer
	if err := run(&out, "", 5, 2, 1); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	text := out.String()
	for _, want := range []string{"=== Tier Easy ===", "=== Tier Medium ===", "=== Tier Hard ===", "Simulated 5 games"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in output", want)
		}
	}
}

func TestRun_Directory(t *testing.T) {
	dir := t.TempDir()
	tier := `name: Custom
description: One board
boards:
  - name: Custom 1
    snakes: {30: 10}
    ladders: {5: 25}
`
	if err := os.WriteFile(filepath.Join(dir, "custom.yaml"), []byte(tier), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := run(&out, dir, 3, 2, 1); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out.String(), "--- Custom 1 ---") {
		t.Errorf("Expected board header, got: %s", out.String())
	}
	if !strings.Contains(out.String(), "5→25") {
		t.Errorf("Expected jump list, got: %s", out.String())
	}
}

func TestRun_MissingDirectory(t *testing.T) {
	var out bytes.Buffer
	if err := run(&out, "/non/existent/path", 1, 2, 1); err == nil {
		t.Error("Expected error for missing directory")
	}
}
