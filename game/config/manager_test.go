package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/wricardo/mcp-training/snakesladders/game/engine"
)

const validTierYAML = `name: Test
description: Test tier
boards:
  - name: Test 1
    snakes: {16: 6, 47: 26}
    ladders: {4: 14, 21: 42}
  - name: Test 2
    snakes: {62: 19}
    ladders: {80: 100}
`

func createValidTier() *engine.Tier {
	return &engine.Tier{
		Name:        "Custom",
		Description: "Custom tier",
		Boards: []*engine.Layout{{
			Name:    "Custom 1",
			Snakes:  map[int]int{30: 5},
			Ladders: map[int]int{8: 40},
		}},
	}
}

func writeTierFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write tier file: %v", err)
	}
}

func TestDefaultTiers(t *testing.T) {
	manager, err := NewDefaultManager()
	if err != nil {
		t.Fatalf("NewDefaultManager failed: %v", err)
	}
	if !manager.ReadOnly() {
		t.Error("Expected the built-in catalog to be read-only")
	}

	for _, name := range []string{"Easy", "Medium", "Hard"} {
		tier, err := manager.LoadTier(name)
		if err != nil {
			t.Fatalf("LoadTier(%s) failed: %v", name, err)
		}
		if tier.Name != name {
			t.Errorf("Expected tier name %s, got %s", name, tier.Name)
		}
		if len(tier.Boards) != 3 {
			t.Errorf("%s: expected 3 boards, got %d", name, len(tier.Boards))
		}
		for _, board := range tier.Boards {
			if err := board.Validate(); err != nil {
				t.Errorf("%s: board %q invalid: %v", name, board.Name, err)
			}
		}
	}
}

func TestDefaultTiers_ValidateFS(t *testing.T) {
	results, err := ValidateFS(DefaultFS())
	if err != nil {
		t.Fatalf("ValidateFS failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 tier files, got %d", len(results))
	}
	for _, res := range results {
		if !res.Valid() {
			t.Errorf("%s: %v", res.File, res.Err)
		}
	}
}

func TestManager_LoadTier_CaseInsensitive(t *testing.T) {
	manager := NewFSManager(fstest.MapFS{
		"test.yaml": {Data: []byte(validTierYAML)},
	})

	for _, name := range []string{"test", "TEST", " Test ", "test.yaml"} {
		tier, err := manager.LoadTier(name)
		if err != nil {
			t.Fatalf("LoadTier(%q) failed: %v", name, err)
		}
		if len(tier.Boards) != 2 {
			t.Errorf("Expected 2 boards, got %d", len(tier.Boards))
		}
		if tier.Boards[1].Ladders[80] != 100 {
			t.Errorf("Expected ladder 80->100, got %v", tier.Boards[1].Ladders)
		}
	}
}

func TestManager_LoadTier_ReturnsCopies(t *testing.T) {
	manager := NewFSManager(fstest.MapFS{
		"test.yaml": {Data: []byte(validTierYAML)},
	})

	first, err := manager.LoadTier("test")
	if err != nil {
		t.Fatalf("LoadTier failed: %v", err)
	}
	first.Boards[0].Snakes[50] = 1

	second, err := manager.LoadTier("test")
	if err != nil {
		t.Fatalf("LoadTier failed: %v", err)
	}
	if _, ok := second.Boards[0].Snakes[50]; ok {
		t.Error("Mutating a loaded tier changed the cache")
	}
}

func TestManager_LoadTier_Errors(t *testing.T) {
	manager := NewFSManager(fstest.MapFS{
		"broken.yaml":  {Data: []byte("name: Broken\nboards: [\n")},
		"chained.yaml": {Data: []byte("name: Chained\nboards:\n  - snakes: {49: 15, 15: 2}\n")},
		"unknown.yaml": {Data: []byte("name: Unknown\ncolor: red\nboards:\n  - snakes: {20: 3}\n")},
		"empty.yml":    {Data: []byte("name: Empty\nboards: []\n")},
	})

	tests := []struct {
		name      string
		tier      string
		wantErr   error
		wantInner error
	}{
		{"not found", "missing", ErrTierNotFound, nil},
		{"malformed yaml", "broken", ErrInvalidTier, nil},
		{"chained jump", "chained", ErrInvalidTier, engine.ErrInvalidLayout},
		{"unknown field", "unknown", ErrInvalidTier, nil},
		{"no boards", "empty", ErrInvalidTier, engine.ErrInvalidLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.LoadTier(tt.tier)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantInner != nil && !errors.Is(err, tt.wantInner) {
				t.Errorf("Expected error to also match %v, got %v", tt.wantInner, err)
			}
		})
	}
}

func TestManager_ListTiers(t *testing.T) {
	manager := NewFSManager(fstest.MapFS{
		"test.yaml":   {Data: []byte(validTierYAML)},
		"broken.yaml": {Data: []byte("name: Broken\n")},
		"README.md":   {Data: []byte("# tiers")},
	})

	tiers, err := manager.ListTiers()
	if err != nil {
		t.Fatalf("ListTiers failed: %v", err)
	}
	if len(tiers) != 1 {
		t.Fatalf("Expected only the valid tier, got %d", len(tiers))
	}

	info := tiers[0]
	if info.ID != "test" || info.Name != "Test" || info.Boards != 2 {
		t.Errorf("Unexpected tier info %+v", info)
	}
	if strings.Join(info.BoardNames, ",") != "Test 1,Test 2" {
		t.Errorf("Unexpected board names %v", info.BoardNames)
	}
}

func TestManager_SaveTier(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	if err := manager.SaveTier("Custom", createValidTier()); err != nil {
		t.Fatalf("SaveTier failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "custom.yaml")); err != nil {
		t.Fatalf("Expected custom.yaml to be written: %v", err)
	}

	// A fresh manager reads the file back from disk
	fresh, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	tier, err := fresh.LoadTier("custom")
	if err != nil {
		t.Fatalf("LoadTier failed: %v", err)
	}
	if tier.Boards[0].Snakes[30] != 5 || tier.Boards[0].Ladders[8] != 40 {
		t.Errorf("Round trip lost jumps: %+v", tier.Boards[0])
	}
}

func TestManager_SaveTier_Errors(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	invalid := createValidTier()
	invalid.Boards[0].Ladders[5] = 30

	if err := manager.SaveTier("custom", invalid); !errors.Is(err, engine.ErrInvalidLayout) {
		t.Errorf("Expected ErrInvalidLayout, got %v", err)
	}
	if err := manager.SaveTier("../escape", createValidTier()); !errors.Is(err, ErrInvalidTier) {
		t.Errorf("Expected ErrInvalidTier for a bad id, got %v", err)
	}

	readOnly, _ := NewDefaultManager()
	if err := readOnly.SaveTier("custom", createValidTier()); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Expected ErrReadOnly, got %v", err)
	}
}

func TestManager_RefreshCache(t *testing.T) {
	dir := t.TempDir()
	writeTierFile(t, dir, "test.yaml", validTierYAML)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if _, err := manager.LoadTier("test"); err != nil {
		t.Fatalf("LoadTier failed: %v", err)
	}

	writeTierFile(t, dir, "test.yaml", strings.Replace(validTierYAML, "name: Test\n", "name: Renamed\n", 1))

	tier, _ := manager.LoadTier("test")
	if tier.Name != "Test" {
		t.Errorf("Expected cached tier before refresh, got %s", tier.Name)
	}

	manager.RefreshCache()
	tier, err = manager.LoadTier("test")
	if err != nil {
		t.Fatalf("LoadTier failed: %v", err)
	}
	if tier.Name != "Renamed" {
		t.Errorf("Expected reloaded tier after refresh, got %s", tier.Name)
	}
}

func TestNewManager_MissingDir(t *testing.T) {
	if _, err := NewManager(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Expected error for a missing directory")
	}
}

func TestManager_ConcurrentLoad(t *testing.T) {
	manager, _ := NewDefaultManager()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := manager.LoadTier("medium"); err != nil {
				t.Errorf("LoadTier failed: %v", err)
			}
			if _, err := manager.ListTiers(); err != nil {
				t.Errorf("ListTiers failed: %v", err)
			}
		}()
	}

	wg.Wait()
}

func TestValidateFS_Reports(t *testing.T) {
	results, err := ValidateFS(fstest.MapFS{
		"a.yaml": {Data: []byte(validTierYAML)},
		"b.yaml": {Data: []byte(validTierYAML)},
		"c.yaml": {Data: []byte("name: Bad\nboards:\n  - ladders: {30: 20}\n")},
	})
	if err != nil {
		t.Fatalf("ValidateFS failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}

	if !results[0].Valid() || results[0].Boards != 2 {
		t.Errorf("Expected a.yaml to be valid, got %+v", results[0])
	}
	if results[1].Valid() || !strings.Contains(results[1].Err.Error(), "already used by a.yaml") {
		t.Errorf("Expected b.yaml to be rejected as a duplicate, got %+v", results[1])
	}
	if !errors.Is(results[2].Err, engine.ErrInvalidLayout) {
		t.Errorf("Expected c.yaml to fail layout validation, got %v", results[2].Err)
	}
}
