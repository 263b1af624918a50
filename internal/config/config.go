package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Matching MatchingConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	LogJSON     bool
}

type DatabaseConfig struct {
	Host           string
	Port           string
	Name           string
	User           string
	Password       string
	SSLMode        string
	ConnectTimeout time.Duration
	PoolMaxConns   int32
	PoolMinConns   int32
	MigrationsDir  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

// MatchingConfig drives the daily run: when it fires, in which timezone, how
// wide the per-seeker fan-out is, and the manual-request daily cap.
type MatchingConfig struct {
	DailyAt        string // "HH:MM" local to Timezone
	Timezone       string
	Workers        int
	SeekerPageSize int
	ManualDailyCap int
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	optInt := func(key string, def int) int {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return def
		}
		return n
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME", "fitwork"),
		Environment: opt("APP_ENV", "development"),
		HTTPPort:    req("HTTP_PORT"),
		LogJSON:     strings.EqualFold(opt("LOG_JSON", "false"), "true"),
	}

	cfg.Database = DatabaseConfig{
		Host:           req("DB_HOST"),
		Port:           opt("DB_PORT", "5432"),
		Name:           req("DB_NAME"),
		User:           req("DB_USER"),
		Password:       os.Getenv("DB_PASSWORD"),
		SSLMode:        opt("DB_SSL_MODE", "disable"),
		ConnectTimeout: time.Duration(optInt("DB_CONNECT_TIMEOUT_SECONDS", 5)) * time.Second,
		PoolMaxConns:   int32(optInt("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:   int32(optInt("DB_POOL_MIN_CONNS", 0)),
		MigrationsDir:  opt("DB_MIGRATIONS_DIR", "migrations"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}

	cfg.Matching = MatchingConfig{
		DailyAt:        opt("MATCHING_DAILY_AT", "19:00"),
		Timezone:       opt("MATCHING_TIMEZONE", "Asia/Seoul"),
		Workers:        optInt("MATCHING_WORKERS", 8),
		SeekerPageSize: optInt("MATCHING_SEEKER_PAGE_SIZE", 500),
		ManualDailyCap: optInt("MATCHING_MANUAL_DAILY_CAP", 3),
	}

	if _, _, err := ParseDailyAt(cfg.Matching.DailyAt); err != nil {
		return Config{}, err
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	return cfg, nil
}

// ParseDailyAt splits an "HH:MM" trigger time.
func ParseDailyAt(v string) (hour, minute int, err error) {
	parts := strings.SplitN(strings.TrimSpace(v), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid MATCHING_DAILY_AT %q, want HH:MM", v)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid MATCHING_DAILY_AT %q, want HH:MM", v)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid MATCHING_DAILY_AT %q, want HH:MM", v)
	}
	return hour, minute, nil
}
