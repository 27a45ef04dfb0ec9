package storage

import "venue-scraper/models"

// RecordWriter is the interface any venue storage backend must satisfy.
// Write always receives the full cumulative dataset, so backends overwrite
// rather than append.
type RecordWriter interface {
	Write(records []models.VenueRecord) error
	Close() error
}
