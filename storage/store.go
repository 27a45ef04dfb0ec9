package storage

import (
	"fmt"

	"venue-scraper/config"
	"venue-scraper/models"
	"venue-scraper/utils"
)

// Store fans one persistence call out to every configured backend: the JSON
// dataset, the CSV export, the progress snapshot, and optionally PostgreSQL.
type Store struct {
	logger   *utils.Logger
	records  *JSONWriter
	export   *CSVWriter
	progress *ProgressStore
	db       *PostgresWriter
}

// NewStore builds the store from the configured output paths. The PostgreSQL
// sink is attached only when a host is configured; an unreachable database
// is a startup error rather than a silently dropped backend.
func NewStore(cfg *config.Config, logger *utils.Logger) (*Store, error) {
	records, err := NewJSONWriter(cfg.RecordsPath())
	if err != nil {
		return nil, err
	}
	export, err := NewCSVWriter(cfg.ExportPath())
	if err != nil {
		return nil, err
	}
	progress, err := NewProgressStore(cfg.ProgressPath())
	if err != nil {
		return nil, err
	}

	st := &Store{
		logger:   logger,
		records:  records,
		export:   export,
		progress: progress,
	}

	if cfg.PostgresEnabled() {
		db, err := NewPostgresWriter(cfg.DSN(), logger)
		if err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		st.db = db
		logger.Info("[storage] PostgreSQL sink enabled — %s/%s", cfg.PostgresHost, cfg.PostgresDB)
	}

	return st, nil
}

// Persist writes the cumulative dataset and progress snapshot to every
// backend. All backends are attempted even when one fails; the first error
// is returned.
func (s *Store) Persist(progress *models.RunProgress) error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	keep(s.records.Write(progress.Records))
	keep(s.export.Write(progress.Records))
	keep(s.progress.Save(progress.Snapshot()))
	if s.db != nil {
		keep(s.db.Write(progress.Records))
	}

	if firstErr == nil {
		s.logger.Debug("[storage] Persisted %d records", len(progress.Records))
	}
	return firstErr
}

// LoadRecords reads the dataset back from the primary backend: PostgreSQL
// when configured, the JSON file otherwise.
func (s *Store) LoadRecords() ([]models.VenueRecord, error) {
	if s.db != nil {
		return s.db.FetchAll()
	}
	return s.records.Load()
}

// LoadProgress reads the last persisted progress snapshot.
func (s *Store) LoadProgress() (models.ProgressSnapshot, error) {
	return s.progress.Load()
}

// Close releases the database connection, if any.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
