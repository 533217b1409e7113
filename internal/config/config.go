// Package config loads application configuration from environment
// variables.  A local .env file is honored when present so that
// development setups do not need exported variables.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Required variables are enforced by must()
// and abort startup when missing.
type Config struct {
	Env             string         // application environment ("dev", "prod")
	Port            string         // HTTP port to listen on
	DBUser          string         // database username
	DBPass          string         // database password (optional)
	DBHost          string         // database host address
	DBPort          string         // database port number
	DBName          string         // database name
	MigrationsDir   string         // goose migrations directory
	JWTSecret       string         // secret used to sign JWTs
	AccessTTLMin    int            // access token time-to-live in minutes
	RefreshTTLDays  int            // refresh token time-to-live in days
	BcryptCost      int            // bcrypt cost for password hashing
	DisplayTimezone *time.Location // timezone used for availability grids
}

// Load reads configuration from the environment.  It first attempts to
// load a .env file; absence of the file is not an error.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, using environment variables")
	}
	return Config{
		Env:             must("APP_ENV"),
		Port:            must("APP_PORT"),
		DBUser:          must("DB_USER"),
		DBPass:          os.Getenv("DB_PASS"), // empty allowed
		DBHost:          must("DB_HOST"),
		DBPort:          must("DB_PORT"),
		DBName:          must("DB_NAME"),
		MigrationsDir:   getenv("MIGRATIONS_DIR", "migrations"),
		JWTSecret:       must("JWT_SECRET"),
		AccessTTLMin:    mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays:  mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:      mustInt("BCRYPT_COST"),
		DisplayTimezone: mustLocation(getenv("DISPLAY_TIMEZONE", "UTC")),
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the value to an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// mustLocation resolves an IANA timezone name or exits.
func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Fatalf("invalid timezone %q: %v", name, err)
	}
	return loc
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
