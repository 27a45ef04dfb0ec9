package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"venue-scraper/models"
)

// JSONWriter snapshots the full dataset to a JSON file on every write, so
// the file on disk always reflects the latest completed city.
// It is safe for concurrent use.
type JSONWriter struct {
	mu   sync.Mutex
	path string
}

// NewJSONWriter prepares a writer for the given path. Intermediate
// directories are created automatically.
func NewJSONWriter(path string) (*JSONWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("json: create output dir: %w", err)
	}
	return &JSONWriter{path: path}, nil
}

// Write replaces the file contents with the given records.
func (w *JSONWriter) Write(records []models.VenueRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if records == nil {
		records = []models.VenueRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("json: marshal records: %w", err)
	}
	if err := os.WriteFile(w.path, data, 0644); err != nil {
		return fmt.Errorf("json: write %q: %w", w.path, err)
	}
	return nil
}

// Load reads the dataset back from disk. A missing file is an empty dataset.
func (w *JSONWriter) Load() ([]models.VenueRecord, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	data, err := os.ReadFile(w.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("json: read %q: %w", w.path, err)
	}
	var records []models.VenueRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("json: parse %q: %w", w.path, err)
	}
	return records, nil
}

// Close is a no-op; the writer holds no open handle between writes.
func (w *JSONWriter) Close() error {
	return nil
}
