// Package progress persists per-level high scores and challenge completion.
//
// The on-disk format is a small JSON record:
//
//	{"high_scores": [12, 3, 0], "challenges": [true, false, false, false, false, false]}
//
// high_scores follows level catalog order and challenges follows challenge
// catalog order. Missing or corrupt files load as all-zero progress.
package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Progress is the persisted player record.
type Progress struct {
	HighScores []int  `json:"high_scores"`
	Challenges []bool `json:"challenges"`
}

// New returns zeroed progress sized to the catalogs.
func New(levels, challenges int) Progress {
	return Progress{
		HighScores: make([]int, levels),
		Challenges: make([]bool, challenges),
	}
}

// Normalize returns a copy sized to the catalogs. Extra entries are dropped,
// missing ones default to zero/false, negative scores clamp to zero.
func (p Progress) Normalize(levels, challenges int) Progress {
	out := New(levels, challenges)
	copy(out.HighScores, p.HighScores)
	copy(out.Challenges, p.Challenges)
	for i, s := range out.HighScores {
		if s < 0 {
			out.HighScores[i] = 0
		}
	}
	return out
}

// Clone returns a deep copy.
func (p Progress) Clone() Progress {
	return Progress{
		HighScores: append([]int(nil), p.HighScores...),
		Challenges: append([]bool(nil), p.Challenges...),
	}
}

// Store loads and saves progress. Implementations must be safe to call from
// the simulation tick; they are expected to be fast and local.
type Store interface {
	Load() (Progress, error)
	Save(p Progress) error
}

// File stores progress as JSON at a fixed path.
type File struct {
	path string
}

// NewFile creates a file store. A leading ~ expands to the home directory.
func NewFile(path string) (*File, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("progress: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	return &File{path: path}, nil
}

// Path returns the resolved file path.
func (f *File) Path() string {
	return f.path
}

// Load reads the save file. A missing file yields empty progress and no error.
func (f *File) Load() (Progress, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return Progress{}, nil
	}
	if err != nil {
		return Progress{}, fmt.Errorf("progress: cannot read %s: %w", f.path, err)
	}

	var p Progress
	if err := json.Unmarshal(data, &p); err != nil {
		return Progress{}, fmt.Errorf("progress: corrupt save %s: %w", f.path, err)
	}
	return p, nil
}

// Save writes the record through a temp file and rename so a crash never
// leaves a half-written save behind.
func (f *File) Save(p Progress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("progress: cannot encode: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("progress: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".save-*.json")
	if err != nil {
		return fmt.Errorf("progress: cannot create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // Gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("progress: cannot write save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("progress: cannot write save: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("progress: cannot replace %s: %w", f.path, err)
	}
	return nil
}

// Memory keeps progress in memory. Used when no persistent store is
// available and in tests.
type Memory struct {
	mu    sync.Mutex
	p     Progress
	saves int
	err   error
}

// NewMemory creates an in-memory store seeded with p.
func NewMemory(p Progress) *Memory {
	return &Memory{p: p.Clone()}
}

// Load returns a copy of the stored progress.
func (m *Memory) Load() (Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.p.Clone(), nil
}

// Save stores a copy of p, or returns the injected failure.
func (m *Memory) Save(p Progress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.err != nil {
		return m.err
	}
	m.p = p.Clone()
	return nil
}

// Saves returns how many times Save was called.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// FailWith makes subsequent saves return err. Nil restores normal behavior.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}
