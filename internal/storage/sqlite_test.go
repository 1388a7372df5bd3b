package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/vovakirdan/tui-dash/internal/core"
	"github.com/vovakirdan/tui-dash/internal/progress"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func run(level, score int) RunEntry {
	return RunEntry{Player: LocalPlayer, Level: level, LevelName: "Stereo Madness", Score: score, Reason: "died"}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{10, 5, 20} {
		if _, err := store.SaveRun(run(0, score)); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if _, err := store.SaveRun(run(1, 50)); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.TopRuns(0, 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	// Should be sorted descending
	if runs[0].Score != 20 || runs[1].Score != 10 || runs[2].Score != 5 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
	if runs[0].CreatedAt.IsZero() {
		t.Error("created_at should be populated")
	}

	other, err := store.TopRuns(1, 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("Expected 1 run on level 1, got %d", len(other))
	}
}

func TestStoreTopRunsLimitAndTies(t *testing.T) {
	store := openTestStore(t)

	first, _ := store.SaveRun(run(0, 7))
	for i := 0; i < 5; i++ {
		store.SaveRun(run(0, i))
	}
	store.SaveRun(run(0, 7))

	runs, err := store.TopRuns(0, 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].ID != first || runs[1].Score != 7 || runs[2].Score != 4 {
		t.Errorf("ties should keep insertion order: %v", runs)
	}
}

func TestNewRunEntry(t *testing.T) {
	store := openTestStore(t)

	summary := core.RunSummary{Level: 2, LevelName: "Polargeist", Score: 14, Jumps: 30, ModesUsed: 3, LivesLeft: 1, Ticks: 4000, Reason: "forfeit"}
	id, err := store.SaveRun(NewRunEntry("alice", summary))
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, _ := store.TopRuns(2, 1)
	got := runs[0]
	want := RunEntry{ID: id, Player: "alice", Level: 2, LevelName: "Polargeist", Score: 14, Jumps: 30,
		ModesUsed: 3, LivesLeft: 1, Ticks: 4000, Reason: "forfeit", CreatedAt: got.CreatedAt}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("stored run = %+v, want %+v", got, want)
	}
}

func TestStoreBestScore(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestScore(0)
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected best score of 0 for an unplayed level, got %d", best)
	}

	store.SaveRun(run(0, 10))
	store.SaveRun(run(0, 30))
	store.SaveRun(run(0, 20))

	best, err = store.BestScore(0)
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 30 {
		t.Errorf("Expected best score of 30, got %d", best)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(run(0, 10))
	store.SaveRun(run(0, 20))
	store.SaveRun(run(1, 30))

	if err := store.ClearRuns(0); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	if runs, _ := store.TopRuns(0, 10); len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	if runs, _ := store.TopRuns(1, 10); len(runs) != 1 {
		t.Errorf("Level 1 should not be affected by clearing level 0")
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.LevelStats(0)
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unplayed level stats = %+v", empty)
	}

	a := run(0, 10)
	a.Jumps = 12
	b := run(0, 20)
	b.Jumps = 8
	b.Reason = "forfeit"
	store.SaveRun(a)
	store.SaveRun(b)

	stats, err := store.LevelStats(0)
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.BestScore != 20 || stats.AvgScore != 15 || stats.Deaths != 1 || stats.TotalJumps != 20 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestProgressRoundTrip(t *testing.T) {
	store := openTestStore(t)

	p, err := store.LoadProgress("alice")
	if err != nil {
		t.Fatalf("LoadProgress() failed: %v", err)
	}
	if len(p.HighScores) != 0 || len(p.Challenges) != 0 {
		t.Errorf("unknown player should have empty progress, got %+v", p)
	}

	want := progress.Progress{HighScores: []int{12, 3, 0}, Challenges: []bool{true, false, false, false, true, false}}
	if err := store.SaveProgress("alice", want); err != nil {
		t.Fatalf("SaveProgress() failed: %v", err)
	}
	if err := store.SaveProgress("bob", progress.Progress{HighScores: []int{99}}); err != nil {
		t.Fatalf("SaveProgress() failed: %v", err)
	}

	got, err := store.LoadProgress("alice")
	if err != nil {
		t.Fatalf("LoadProgress() failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadProgress() = %+v, want %+v", got, want)
	}

	// Saving again updates in place, never appends
	want.HighScores[1] = 11
	store.SaveProgress("alice", want)
	got, _ = store.LoadProgress("alice")
	if got.HighScores[1] != 11 || len(got.HighScores) != 3 {
		t.Errorf("second save = %+v", got)
	}
}

func TestProgressForPlayer(t *testing.T) {
	store := openTestStore(t)

	var s progress.Store = store.ProgressFor("carol")
	if err := s.Save(progress.Progress{HighScores: []int{5, 0, 0}, Challenges: []bool{true}}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got.HighScores[0] != 5 || !got.Challenges[0] {
		t.Errorf("Load() = %+v", got)
	}

	other, _ := store.ProgressFor("dave").Load()
	if len(other.HighScores) != 0 {
		t.Error("players must not share progress")
	}
}

func TestProgressNeverGoesBackwards(t *testing.T) {
	store := openTestStore(t)

	// Two sessions of one player, each holding its own copy
	first := store.ProgressFor("alice")
	second := store.ProgressFor("alice")

	if err := first.Save(progress.Progress{
		HighScores: []int{12, 0, 0},
		Challenges: []bool{true, true, false, false, true, false},
	}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if err := second.Save(progress.Progress{
		HighScores: []int{3, 7, 0},
		Challenges: []bool{false, false, true, false, false, false},
	}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, err := first.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	want := progress.Progress{
		HighScores: []int{12, 7, 0},
		Challenges: []bool{true, true, true, false, true, false},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestStoreConcurrentRuns(t *testing.T) {
	store := openTestStore(t)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.SaveRun(run(0, i))
		}()
	}
	wg.Wait()

	stats, err := store.LevelStats(0)
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if stats.Runs != 8 {
		t.Errorf("Expected 8 runs, got %d", stats.Runs)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
