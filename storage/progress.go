package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"venue-scraper/models"
)

// ProgressStore persists the run progress snapshot so an operator can see
// how far the last run got, even across restarts.
type ProgressStore struct {
	mu   sync.Mutex
	path string
}

// NewProgressStore prepares a store for the given path. Intermediate
// directories are created automatically.
func NewProgressStore(path string) (*ProgressStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("progress: create output dir: %w", err)
	}
	return &ProgressStore{path: path}, nil
}

// Save replaces the snapshot file.
func (s *ProgressStore) Save(snap models.ProgressSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.ScrapedCities == nil {
		snap.ScrapedCities = []string{}
	}
	if snap.FailedCities == nil {
		snap.FailedCities = []string{}
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("progress: marshal: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("progress: write %q: %w", s.path, err)
	}
	return nil
}

// Load reads the last persisted snapshot. A missing file yields a zero
// snapshot with LastUpdated set to "Never".
func (s *ProgressStore) Load() (models.ProgressSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	empty := models.ProgressSnapshot{
		ScrapedCities: []string{},
		FailedCities:  []string{},
		LastUpdated:   "Never",
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return empty, nil
	}
	if err != nil {
		return empty, fmt.Errorf("progress: read %q: %w", s.path, err)
	}
	var snap models.ProgressSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return empty, fmt.Errorf("progress: parse %q: %w", s.path, err)
	}
	if snap.ScrapedCities == nil {
		snap.ScrapedCities = []string{}
	}
	if snap.FailedCities == nil {
		snap.FailedCities = []string{}
	}
	if snap.LastUpdated == "" {
		snap.LastUpdated = "Never"
	}
	return snap, nil
}
