package engine

import "testing"

func TestNewSource_Deterministic(t *testing.T) {
	a := NewSource(7)
	b := NewSource(7)

	for i := 0; i < 100; i++ {
		if x, y := RollDie(a), RollDie(b); x != y {
			t.Fatalf("roll %d: same seed produced %d and %d", i, x, y)
		}
	}
}

func TestRollDie_Range(t *testing.T) {
	src := NewSource(1)
	seen := make(map[int]int)

	for i := 0; i < 6000; i++ {
		v := RollDie(src)
		if v < 1 || v > DieSides {
			t.Fatalf("die value %d out of range", v)
		}
		seen[v]++
	}
	for face := 1; face <= DieSides; face++ {
		if seen[face] == 0 {
			t.Errorf("face %d never rolled", face)
		}
	}
}

func TestNewSeed(t *testing.T) {
	a, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed failed: %v", err)
	}
	b, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed failed: %v", err)
	}
	if a == b {
		t.Errorf("Expected distinct seeds, got %d twice", a)
	}
}

func TestSameSeedSameGame(t *testing.T) {
	play := func(seed int64) []TurnRecord {
		game, err := NewGame(3, createTestLayout(), NewSource(seed))
		if err != nil {
			t.Fatalf("Failed to create game: %v", err)
		}
		for i := 0; i < 50 && !game.IsGameOver(); i++ {
			if _, err := game.RequestRoll(); err != nil {
				t.Fatalf("RequestRoll failed: %v", err)
			}
		}
		return game.History()
	}

	first, second := play(99), play(99)
	if len(first) != len(second) {
		t.Fatalf("Expected equal history length, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].DieValue != second[i].DieValue || first[i].To != second[i].To {
			t.Fatalf("turn %d differs between runs with the same seed", i+1)
		}
	}
}
