package progress

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFileMissingLoadsEmpty(t *testing.T) {
	f, err := NewFile(filepath.Join(t.TempDir(), "save.json"))
	if err != nil {
		t.Fatal(err)
	}

	p, err := f.Load()
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	p = p.Normalize(3, 6)
	if !reflect.DeepEqual(p, New(3, 6)) {
		t.Errorf("missing file should normalize to zero progress, got %+v", p)
	}
}

func TestFileSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "save.json")
	f, err := NewFile(path)
	if err != nil {
		t.Fatal(err)
	}

	want := Progress{HighScores: []int{12, 4, 0}, Challenges: []bool{true, true, false, false, false, false}}
	if err := f.Save(want); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	const wantJSON = `{"high_scores":[12,4,0],"challenges":[true,true,false,false,false,false]}`
	if string(raw) != wantJSON {
		t.Errorf("file contents = %s, want %s", raw, wantJSON)
	}

	got, err := f.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}

	// No temp files left behind
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected only the save file, found %d entries", len(entries))
	}
}

func TestFileCorruptIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	f, _ := NewFile(path)
	if _, err := f.Load(); err == nil {
		t.Error("corrupt file should report an error so the caller can log it")
	}
}

func TestNormalize(t *testing.T) {
	p := Progress{HighScores: []int{5, -2, 7, 9}, Challenges: []bool{true}}
	got := p.Normalize(3, 2)

	want := Progress{HighScores: []int{5, 0, 7}, Challenges: []bool{true, false}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize() = %+v, want %+v", got, want)
	}
	if p.HighScores[1] != -2 {
		t.Error("Normalize must not modify the receiver")
	}
}

func TestMemoryStore(t *testing.T) {
	m := NewMemory(New(1, 1))
	p, _ := m.Load()
	p.HighScores[0] = 3
	if err := m.Save(p); err != nil {
		t.Fatal(err)
	}
	p.HighScores[0] = 99

	got, _ := m.Load()
	if got.HighScores[0] != 3 {
		t.Errorf("store should keep its own copy, got %d", got.HighScores[0])
	}

	boom := errors.New("disk full")
	m.FailWith(boom)
	if err := m.Save(got); !errors.Is(err, boom) {
		t.Errorf("Save() = %v, want injected error", err)
	}
	if m.Saves() != 2 {
		t.Errorf("Saves() = %d, want 2", m.Saves())
	}
}
