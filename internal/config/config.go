package config // package config loads application configuration from environment variables

import (
    "fmt"
    "log"
    "os"
    "time"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The MySQL fields are optional: when DB_HOST is
// empty the service keeps its data in Redis instead.
type Config struct {
    Env            string // application environment (e.g. "dev", "prod")
    Port           string // HTTP port to listen on
    DBUser         string // database username
    DBPass         string // database password (optional)
    DBHost         string // database host address; empty selects the Redis store
    DBPort         string // database port number
    DBName         string // database name
    JWTSecret      string // secret used to sign admin JWTs
    AdminSecret    string // shared secret exchanged for an admin token
    AccessTTLMin   int    // admin token time-to-live in minutes
    BcryptCost     int    // bcrypt cost for hashing the admin secret
    WindowDays     int    // length of the booking window in days
    EnforceWindow  bool   // reject server-side bookings outside the window
    Timezone       string // IANA zone used for statement day boundaries
    RabbitURL      string // AMQP URL; empty disables events
    StorePrefix    string // key prefix of the Redis store
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
    return Config{
        Env:           must("APP_ENV"),
        Port:          must("APP_PORT"),
        DBUser:        getenv("DB_USER", "root"),
        DBPass:        os.Getenv("DB_PASS"),
        DBHost:        os.Getenv("DB_HOST"),
        DBPort:        getenv("DB_PORT", "3306"),
        DBName:        getenv("DB_NAME", "club"),
        JWTSecret:     must("JWT_SECRET"),
        AdminSecret:   must("ADMIN_SECRET"),
        AccessTTLMin:  envInt("ACCESS_TOKEN_TTL_MIN", 60),
        BcryptCost:    envInt("BCRYPT_COST", 10),
        WindowDays:    envInt("BOOKING_WINDOW_DAYS", 30),
        EnforceWindow: envBool("ENFORCE_BOOKING_WINDOW", false),
        Timezone:      getenv("APP_TIMEZONE", "Europe/Madrid"),
        RabbitURL:     os.Getenv("RABBITMQ_URL"),
        StorePrefix:   getenv("STORE_PREFIX", "club"),
    }
}

// UseMySQL reports whether a MySQL host is configured.
func (c Config) UseMySQL() bool { return c.DBHost != "" }

// AccessTTL is AccessTTLMin as a duration.
func (c Config) AccessTTL() time.Duration { return time.Duration(c.AccessTTLMin) * time.Minute }

// Location resolves Timezone.  An unknown zone yields UTC together with the
// lookup error so the caller can report it.
func (c Config) Location() (*time.Location, error) {
    loc, err := time.LoadLocation(c.Timezone)
    if err != nil {
        return time.UTC, fmt.Errorf("APP_TIMEZONE %q: %w", c.Timezone, err)
    }
    return loc, nil
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}
