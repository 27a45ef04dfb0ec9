package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultCities is the full set of city slugs the listing site serves.
var DefaultCities = []string{
	"bengaluru", "pune", "mumbai", "surat", "hyderabad", "delhi-&-ncr",
	"ahmedabad", "nagpur", "kolkata", "navi-mumbai", "gurugram", "noida",
	"delhi", "faridabad", "secunderabad", "ghaziabad", "kochi", "jabalpur",
	"jaipur", "chitilappilly", "thrissur", "thiruvananthapuram", "nashik",
	"chandigarh", "kolhapur", "warangal", "margao", "vadodara", "kannur",
	"kollam", "kottayam", "chennai", "nellore", "wayanad", "indore",
	"kozhikode", "malappuram", "palakkad", "coimbatore", "jalgaon",
	"sangli", "nagaur",
}

// defaultListingURLFormat is the city listing address; the single %s slot
// takes the city slug.
const defaultListingURLFormat = "https://www.khelomore.com/sports-venues/%s/sports/all"

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Cities           []string
	ListingURLFormat string

	Headless  bool
	ChromeBin string

	PageLoadTimeout time.Duration
	ElementTimeout  time.Duration
	SettleDelay     time.Duration
	PacingDelay     time.Duration
	RetryBaseDelay  time.Duration

	MaxPaginationAttempts int
	StableRounds          int
	MaxNoProgress         int
	MaxItemRetries        int
	NavRetries            int
	MaxVenuesPerCity      int
	InterCityDelay        time.Duration

	OutputDir string
	Port      string
	Debug     bool

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		Cities:           getEnvList("CITIES", DefaultCities),
		ListingURLFormat: getEnv("LISTING_URL_FORMAT", defaultListingURLFormat),

		Headless:  getEnvBool("HEADLESS", true),
		ChromeBin: getEnv("CHROME_BIN", ""),

		PageLoadTimeout: getEnvDuration("PAGE_LOAD_TIMEOUT", 60*time.Second),
		ElementTimeout:  getEnvDuration("ELEMENT_TIMEOUT", 5*time.Second),
		SettleDelay:     getEnvDuration("SETTLE_DELAY", 3*time.Second),
		PacingDelay:     getEnvDuration("PACING_DELAY", time.Second),
		RetryBaseDelay:  getEnvDuration("RETRY_BASE_DELAY", 2*time.Second),

		MaxPaginationAttempts: getEnvInt("MAX_PAGINATION_ATTEMPTS", 50),
		StableRounds:          getEnvInt("STABLE_ROUNDS", 3),
		MaxNoProgress:         getEnvInt("MAX_NO_PROGRESS", 5),
		MaxItemRetries:        getEnvInt("MAX_ITEM_RETRIES", 3),
		NavRetries:            getEnvInt("NAV_RETRIES", 3),
		MaxVenuesPerCity:      getEnvInt("MAX_VENUES_PER_CITY", 0),
		InterCityDelay:        getEnvDuration("INTER_CITY_DELAY", 10*time.Second),

		OutputDir: getEnv("OUTPUT_DIR", "data"),
		Port:      getEnv("PORT", "8080"),
		Debug:     getEnvBool("DEBUG", false),

		PostgresHost:     getEnv("POSTGRES_HOST", ""),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "venues_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
}

// ListingURL returns the listing address for a city slug.
func (c *Config) ListingURL(city string) string {
	return fmt.Sprintf(c.ListingURLFormat, city)
}

// RecordsPath is the cumulative JSON dataset file.
func (c *Config) RecordsPath() string {
	return filepath.Join(c.OutputDir, "venues_data.json")
}

// ExportPath is the tabular CSV export file.
func (c *Config) ExportPath() string {
	return filepath.Join(c.OutputDir, "venues_data.csv")
}

// ProgressPath is the run progress snapshot file.
func (c *Config) ProgressPath() string {
	return filepath.Join(c.OutputDir, "progress.json")
}

// PostgresEnabled reports whether a database sink is configured.
func (c *Config) PostgresEnabled() bool {
	return c.PostgresHost != ""
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
