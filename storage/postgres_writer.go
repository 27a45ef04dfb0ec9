package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"venue-scraper/models"
	"venue-scraper/utils"
)

// PostgresWriter persists venue records to PostgreSQL. Records are keyed by
// source URL, so re-persisting the cumulative dataset after every city only
// inserts the new rows.
type PostgresWriter struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string, logger *utils.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db, logger: logger}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS venues (
			id               SERIAL PRIMARY KEY,
			name             TEXT NOT NULL,
			price            TEXT NOT NULL DEFAULT '',
			timing           TEXT NOT NULL DEFAULT '',
			address          TEXT NOT NULL DEFAULT '',
			rating           TEXT NOT NULL DEFAULT '',
			raters           TEXT NOT NULL DEFAULT '',
			about_venue      TEXT NOT NULL DEFAULT '',
			available_sports TEXT NOT NULL DEFAULT '',
			highlights       TEXT NOT NULL DEFAULT '',
			amenities        TEXT NOT NULL DEFAULT '',
			offer            TEXT NOT NULL DEFAULT '',
			facilities       TEXT NOT NULL DEFAULT '',
			venue_rules      TEXT NOT NULL DEFAULT '',
			city             TEXT NOT NULL DEFAULT '',
			scraped_at       TEXT NOT NULL DEFAULT '',
			source_url       TEXT UNIQUE NOT NULL,
			created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_venues_city ON venues(city);
		CREATE INDEX IF NOT EXISTS idx_venues_name ON venues(name);
	`)
	return err
}

// Write batch-inserts the dataset in one transaction. Rows already present
// (same source URL) are left untouched; rows without a usable source URL are
// skipped because they cannot be deduplicated.
func (pw *PostgresWriter) Write(records []models.VenueRecord) error {
	insertable := make([]models.VenueRecord, 0, len(records))
	for _, rec := range records {
		if rec.SourceURL == "" || rec.SourceURL == models.Unavailable {
			continue
		}
		insertable = append(insertable, rec)
	}
	if skipped := len(records) - len(insertable); skipped > 0 {
		pw.logger.Warn("[postgres] Skipping %d records without a usable source URL", skipped)
	}
	if len(insertable) == 0 {
		return nil
	}

	tx, err := pw.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}

	const batchSize = 50
	for i := 0; i < len(insertable); i += batchSize {
		end := i + batchSize
		if end > len(insertable) {
			end = len(insertable)
		}
		if err := pw.insertBatch(tx, insertable[i:end]); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (pw *PostgresWriter) insertBatch(tx *sql.Tx, batch []models.VenueRecord) error {
	cols := len(models.FieldOrder)
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, rec := range batch {
		base := idx * cols
		placeholders := make([]string, 0, cols)
		for i := 1; i <= cols; i++ {
			placeholders = append(placeholders, fmt.Sprintf("$%d", base+i))
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		for _, field := range models.FieldOrder {
			valueArgs = append(valueArgs, rec.Get(field))
		}
	}

	// Column names are the schema wire keys, in export order.
	query := fmt.Sprintf(`
		INSERT INTO venues (%s)
		VALUES %s
		ON CONFLICT (source_url) DO NOTHING
	`, strings.Join(models.FieldOrder, ", "), strings.Join(valueStrings, ","))

	if _, err := tx.Exec(query, valueArgs...); err != nil {
		return fmt.Errorf("postgres: insert batch: %w", err)
	}
	return nil
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchAll retrieves all stored venues, ordered by insertion.
func (pw *PostgresWriter) FetchAll() ([]models.VenueRecord, error) {
	rows, err := pw.db.Query(`
		SELECT name, price, timing, address, rating, raters,
		       about_venue, available_sports, highlights, amenities, offer,
		       facilities, venue_rules, city, scraped_at, source_url
		FROM venues
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var records []models.VenueRecord
	for rows.Next() {
		rec := models.NewVenueRecord()
		if err := rows.Scan(
			&rec.Name, &rec.Price, &rec.Timing, &rec.Address, &rec.Rating, &rec.Raters,
			&rec.AboutVenue, &rec.AvailableSports, &rec.Highlights, &rec.Amenities, &rec.Offer,
			&rec.Facilities, &rec.VenueRules, &rec.City, &rec.ScrapedAt, &rec.SourceURL,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
