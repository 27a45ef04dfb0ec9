package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if len(cfg.Cities) != len(DefaultCities) {
		t.Errorf("cities: got %d, want %d", len(cfg.Cities), len(DefaultCities))
	}
	if cfg.MaxPaginationAttempts != 50 {
		t.Errorf("pagination budget: got %d, want 50", cfg.MaxPaginationAttempts)
	}
	if cfg.MaxItemRetries != 3 {
		t.Errorf("item retries: got %d, want 3", cfg.MaxItemRetries)
	}
	if cfg.InterCityDelay != 10*time.Second {
		t.Errorf("inter-city delay: got %v, want 10s", cfg.InterCityDelay)
	}
	if !cfg.Headless {
		t.Error("headless should default to true")
	}
	if cfg.PostgresEnabled() {
		t.Error("postgres should be disabled without POSTGRES_HOST")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CITIES", "pune, mumbai ,surat")
	t.Setenv("MAX_PAGINATION_ATTEMPTS", "7")
	t.Setenv("INTER_CITY_DELAY", "250ms")
	t.Setenv("HEADLESS", "false")
	t.Setenv("POSTGRES_HOST", "db.internal")

	cfg := Load()

	if len(cfg.Cities) != 3 || cfg.Cities[1] != "mumbai" {
		t.Errorf("cities: got %v, want [pune mumbai surat]", cfg.Cities)
	}
	if cfg.MaxPaginationAttempts != 7 {
		t.Errorf("pagination budget: got %d, want 7", cfg.MaxPaginationAttempts)
	}
	if cfg.InterCityDelay != 250*time.Millisecond {
		t.Errorf("inter-city delay: got %v, want 250ms", cfg.InterCityDelay)
	}
	if cfg.Headless {
		t.Error("headless override not applied")
	}
	if !cfg.PostgresEnabled() {
		t.Error("postgres should be enabled with POSTGRES_HOST set")
	}
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("MAX_ITEM_RETRIES", "many")
	t.Setenv("SETTLE_DELAY", "soon")
	t.Setenv("DEBUG", "yep")

	cfg := Load()

	if cfg.MaxItemRetries != 3 {
		t.Errorf("invalid int should fall back: got %d, want 3", cfg.MaxItemRetries)
	}
	if cfg.SettleDelay != 3*time.Second {
		t.Errorf("invalid duration should fall back: got %v, want 3s", cfg.SettleDelay)
	}
	if cfg.Debug {
		t.Error("invalid bool should fall back to false")
	}
}

func TestListingURL(t *testing.T) {
	cfg := Load()

	got := cfg.ListingURL("navi-mumbai")
	want := "https://www.khelomore.com/sports-venues/navi-mumbai/sports/all"
	if got != want {
		t.Errorf("ListingURL: got %q, want %q", got, want)
	}
}

func TestDSN(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "localhost")
	t.Setenv("POSTGRES_USER", "venues")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "venuedb")

	cfg := Load()

	want := "host=localhost port=5432 user=venues password=secret dbname=venuedb sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN: got %q, want %q", got, want)
	}
}
