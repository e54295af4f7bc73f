// Package records persists the leaderboard of finished runs.
package records

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	recordsObject   = "leaderboard"
	recordsProperty = "runs"

	// MaxStored is the number of best runs kept on disk.
	MaxStored = 100
)

// RunRecord is one finished playthrough.
type RunRecord struct {
	Username   string    `yaml:"username" json:"username"`
	SessionID  string    `yaml:"sessionId" json:"sessionId"`
	Level      uint32    `yaml:"level" json:"level"`
	Year       int32     `yaml:"year" json:"year"`
	FinishedAt time.Time `yaml:"finishedAt" json:"finishedAt"`
}

// Less orders runs best first: higher level, then the earlier finish.
func Less(a, b RunRecord) bool {
	if a.Level != b.Level {
		return a.Level > b.Level
	}
	return a.FinishedAt.Before(b.FinishedAt)
}

type fileFormat struct {
	Runs []RunRecord `yaml:"runs"`
}

// Store keeps the best runs in memory and mirrors them to gdata storage.
// A store without a gdata manager works in memory only.
// Store is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	manager *gdata.Manager // nil in degrade mode
	runs    []RunRecord
}

// Open opens the gdata storage of appName and loads saved runs.
// When the storage cannot be opened or read, a memory-only store is
// returned together with the error so the caller can log it and go on.
func Open(appName string) (*Store, error) {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return NewStore(nil), fmt.Errorf("open record storage: %w", err)
	}
	s := NewStore(manager)
	if err := s.Load(); err != nil {
		return s, err
	}
	return s, nil
}

// NewStore creates a store on top of manager, which may be nil.
// Saved runs are not read until Load is called.
func NewStore(manager *gdata.Manager) *Store {
	return &Store{manager: manager}
}

// Persistent reports whether records are written to disk.
func (s *Store) Persistent() bool {
	return s.manager != nil
}

// Load replaces the in-memory runs with the saved ones.
// A missing file leaves the store empty.
func (s *Store) Load() error {
	if s.manager == nil {
		return nil
	}
	if !s.manager.ObjectPropExists(recordsObject, recordsProperty) {
		return nil
	}

	data, err := s.manager.LoadObjectProp(recordsObject, recordsProperty)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}

	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("unmarshal records: %w", err)
	}

	sort.SliceStable(f.Runs, func(i, j int) bool { return Less(f.Runs[i], f.Runs[j]) })
	if len(f.Runs) > MaxStored {
		f.Runs = f.Runs[:MaxStored]
	}

	s.mu.Lock()
	s.runs = f.Runs
	s.mu.Unlock()
	return nil
}

// Add records a finished run and saves the leaderboard.
// The run is kept in memory even if saving fails.
func (s *Store) Add(r RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := sort.Search(len(s.runs), func(i int) bool { return Less(r, s.runs[i]) })
	s.runs = append(s.runs, RunRecord{})
	copy(s.runs[i+1:], s.runs[i:])
	s.runs[i] = r
	if len(s.runs) > MaxStored {
		s.runs = s.runs[:MaxStored]
	}

	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(fileFormat{Runs: s.runs})
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	if err := s.manager.SaveObjectProp(recordsObject, recordsProperty, data); err != nil {
		return fmt.Errorf("save records: %w", err)
	}
	return nil
}

// Top returns up to n best runs, best first.
func (s *Store) Top(n int) []RunRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	n = min(max(n, 0), len(s.runs))
	out := make([]RunRecord, n)
	copy(out, s.runs[:n])
	return out
}

// Len returns the number of stored runs.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.runs)
}
