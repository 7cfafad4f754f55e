package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// maxEntries caps how many past runs the store retains.
const maxEntries = 100

// Entry records one run attempt. JSON field names match the document the
// desktop front end reads.
type Entry struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
	Mode      string `json:"mode"`
	Target    string `json:"target"`
	OutputDir string `json:"outputDir"`
}

// Store is an append-at-head, size-bounded run log persisted as a single
// JSON document. The on-disk file is read once per process; a missing or
// corrupt file yields an empty list rather than an error.
type Store struct {
	path string

	mu      sync.Mutex
	loaded  bool
	entries []Entry
}

func NewStore(dataDir string) *Store {
	return &Store{path: filepath.Join(dataDir, "history.json")}
}

// Record inserts e at the head, truncates to the retention cap, and persists
// the full list. A persistence failure is returned to the caller.
func (s *Store) Record(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLoadedLocked()
	s.entries = append([]Entry{e}, s.entries...)
	if len(s.entries) > maxEntries {
		s.entries = s.entries[:maxEntries]
	}
	return s.persistLocked()
}

// List returns a snapshot of the recorded entries, newest first.
func (s *Store) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLoadedLocked()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) ensureLoadedLocked() {
	if s.loaded {
		return
	}
	s.loaded = true
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return
	}
	s.entries = entries
}

func (s *Store) persistLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return err
	}
	raw = append(raw, '\n')
	return os.WriteFile(s.path, raw, 0o644)
}
