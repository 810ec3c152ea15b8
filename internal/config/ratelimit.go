package config

import (
    "os"
    "strconv"
    "strings"
    "time"
)

// Rate-limit key strategies.  Every limited route is anonymous, so keys are
// built from the client address and the route only.
const (
    KeyByIP      = "ip"
    KeyByRoute   = "route"
    KeyByIPRoute = "ip_route"
)

// RateLimitConfig configures one Redis token bucket.  The public /v1 routes
// read it from RATE_LIMIT_*, the admin login from LOGIN_RATE_LIMIT_*:
//
//	<P>ENABLED          true/false
//	<P>CAPACITY         bucket size
//	<P>REFILL_TOKENS    tokens added per interval
//	<P>REFILL_INTERVAL  Go duration between refills
//	<P>TTL              idle bucket expiry, never below 5 intervals
//	<P>KEY_STRATEGY     ip, route or ip_route
//	<P>PREFIX           Redis key prefix
//	<P>DEBUG            log decisions and expose X-RateLimit-Key
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int
    RefillTokens   int
    RefillInterval time.Duration
    TTL            time.Duration
    KeyStrategy    string
    Prefix         string
    Debug          bool
}

// LoadRateLimitConfig returns the bucket of the public endpoints: 60
// requests per client and route, one token back per second.
func LoadRateLimitConfig() RateLimitConfig {
    return loadBucket("RATE_LIMIT_", RateLimitConfig{
        Enabled:        true,
        Capacity:       60,
        RefillTokens:   1,
        RefillInterval: time.Second,
        TTL:            10 * time.Minute,
        KeyStrategy:    KeyByIPRoute,
        Prefix:         "club:rl",
    })
}

// LoadLoginRateLimitConfig returns the bucket of POST /v1/admin/login: five
// attempts per client address, one more each minute.
func LoadLoginRateLimitConfig() RateLimitConfig {
    return loadBucket("LOGIN_RATE_LIMIT_", RateLimitConfig{
        Enabled:        true,
        Capacity:       5,
        RefillTokens:   1,
        RefillInterval: time.Minute,
        TTL:            time.Hour,
        KeyStrategy:    KeyByIP,
        Prefix:         "club:rl:login",
    })
}

func loadBucket(p string, def RateLimitConfig) RateLimitConfig {
    cfg := RateLimitConfig{
        Enabled:        envBool(p+"ENABLED", def.Enabled),
        Capacity:       envInt(p+"CAPACITY", def.Capacity),
        RefillTokens:   envInt(p+"REFILL_TOKENS", def.RefillTokens),
        RefillInterval: envDur(p+"REFILL_INTERVAL", def.RefillInterval),
        TTL:            envDur(p+"TTL", def.TTL),
        KeyStrategy:    strings.ToLower(getenv(p+"KEY_STRATEGY", def.KeyStrategy)),
        Prefix:         getenv(p+"PREFIX", def.Prefix),
        Debug:          envBool(p+"DEBUG", def.Debug),
    }
    switch cfg.KeyStrategy {
    case KeyByIP, KeyByRoute, KeyByIPRoute:
    default:
        cfg.KeyStrategy = def.KeyStrategy
    }
    cfg.Capacity = max(cfg.Capacity, 1)
    cfg.RefillTokens = max(cfg.RefillTokens, 1)
    if cfg.RefillInterval <= 0 {
        cfg.RefillInterval = def.RefillInterval
    }
    cfg.TTL = max(cfg.TTL, 5*cfg.RefillInterval)
    return cfg
}

func envBool(k string, d bool) bool {
    switch strings.ToLower(os.Getenv(k)) {
    case "1", "true", "yes", "on":
        return true
    case "0", "false", "no", "off":
        return false
    }
    return d
}

func envInt(k string, d int) int {
    n, err := strconv.Atoi(os.Getenv(k))
    if err != nil {
        return d
    }
    return n
}

func envDur(k string, d time.Duration) time.Duration {
    dur, err := time.ParseDuration(os.Getenv(k))
    if err != nil {
        return d
    }
    return dur
}
