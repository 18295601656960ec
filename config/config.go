package config

import (
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // image distroless tidak punya zoneinfo

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DatabaseURL       string
	MaxOpenConns      int
	MaxIdleConns      int
	RedisAddress      string
	LogLevel          string
	CORSOrigins       []string
	SeedAdminPassword string
	Location          *time.Location
	LocationErr       error // terisi kalau APP_TIMEZONE gagal dimuat dan Location jatuh ke UTC
}

// Load membaca .env (kalau ada) lalu environment.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		MaxOpenConns:      getEnvInt("DB_MAX_OPEN_CONNS", 20),
		MaxIdleConns:      getEnvInt("DB_MAX_IDLE_CONNS", 5),
		RedisAddress:      os.Getenv("REDIS_ADDRESS"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", "admin123"),
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DB_URL") // fallback kalau diset sendiri
	}

	for _, o := range strings.Split(getEnv("CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	loc, err := time.LoadLocation(getEnv("APP_TIMEZONE", "Asia/Jakarta"))
	if err != nil {
		loc = time.UTC
		cfg.LocationErr = err
	}
	cfg.Location = loc

	return cfg
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
