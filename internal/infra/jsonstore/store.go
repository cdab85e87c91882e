// Package jsonstore provides a JSON file-based implementation of SummaryCache.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"github.com/runoshun/jiractl/internal/domain"
)

// storeData represents the JSON file structure.
type storeData struct {
	Issues map[domain.IssueKey]domain.CachedSummary `json:"issues"`
	Meta   meta                                     `json:"meta"`
}

// meta contains store metadata.
type meta struct {
	Version int `json:"version"`
}

const storeVersion = 1

// Store implements domain.SummaryCache using a JSON file.
type Store struct {
	clock    domain.Clock
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file does not need to exist; it will be created on first write.
func New(path string, clock domain.Clock) *Store {
	if clock == nil {
		clock = domain.RealClock{}
	}
	return &Store{
		clock:    clock,
		path:     path,
		lockPath: path + ".lock",
	}
}

// Path returns the cache file path.
func (s *Store) Path() string {
	return s.path
}

// Get retrieves a cached summary.
func (s *Store) Get(key domain.IssueKey) (string, bool, error) {
	var summary string
	var found bool
	err := s.withLock(func(data *storeData) error {
		if e, ok := data.Issues[key]; ok {
			summary = e.Summary
			found = true
		}
		return nil
	})
	return summary, found, err
}

// Put caches one summary.
func (s *Store) Put(key domain.IssueKey, summary string) error {
	return s.PutAll(map[domain.IssueKey]string{key: summary})
}

// PutAll caches many summaries under a single lock.
func (s *Store) PutAll(summaries map[domain.IssueKey]string) error {
	if len(summaries) == 0 {
		return nil
	}
	now := s.clock.Now()
	return s.withLockWrite(func(data *storeData) error {
		for key, summary := range summaries {
			data.Issues[key] = domain.CachedSummary{Key: key, Summary: summary, Cached: now}
		}
		return nil
	})
}

// List returns all entries sorted by key.
func (s *Store) List() ([]domain.CachedSummary, error) {
	var out []domain.CachedSummary
	err := s.withLock(func(data *storeData) error {
		for key, e := range data.Issues {
			e.Key = key
			out = append(out, e)
		}
		return nil
	})

	// Sort by key for consistent ordering
	slices.SortFunc(out, func(a, b domain.CachedSummary) int {
		return compareKeys(a.Key, b.Key)
	})

	return out, err
}

// Clear removes every entry.
func (s *Store) Clear() error {
	return s.withLockWrite(func(data *storeData) error {
		clear(data.Issues)
		return nil
	})
}

// compareKeys orders by project, then numerically by issue number.
func compareKeys(a, b domain.IssueKey) int {
	if c := strings.Compare(a.Project(), b.Project()); c != 0 {
		return c
	}
	na, nb := len(a), len(b)
	if na != nb {
		return na - nb
	}
	return strings.Compare(string(a), string(b))
}

// withLock executes fn with a shared (read) lock.
func (s *Store) withLock(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	return fn(data)
}

// withLockWrite executes fn with an exclusive (write) lock and writes the result.
func (s *Store) withLockWrite(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	if err := fn(data); err != nil {
		return err
	}

	return s.write(data)
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	// Ensure lock file directory exists
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

// read loads the cache file. A missing file is an empty cache.
func (s *Store) read() (*storeData, error) {
	data := &storeData{Meta: meta{Version: storeVersion}}

	content, err := os.ReadFile(s.path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read cache file: %w", err)
	}
	if len(content) > 0 {
		if err := json.Unmarshal(content, data); err != nil {
			return nil, fmt.Errorf("parse cache file: %w", err)
		}
	}

	if data.Issues == nil {
		data.Issues = make(map[domain.IssueKey]domain.CachedSummary)
	}

	return data, nil
}

func (s *Store) write(data *storeData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache data: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Ensure Store implements SummaryCache.
var _ domain.SummaryCache = (*Store)(nil)
