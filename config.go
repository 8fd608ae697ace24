package main

import (
	"log"
	"net"
	"os"
	"strconv"
	"time"
)

// config is the process configuration, read from the environment.
type config struct {
	HTTPPort        int
	CORSOrigins     string
	DBPath          string
	SeedDemo        bool
	JetStreamDir    string
	RedisAddr       string
	SessionPrefix   string
	SessionTTL      time.Duration
	IdleTimeout     time.Duration
	SweepInterval   time.Duration
	CartTTL         time.Duration
	CatalogCacheTTL time.Duration
}

func loadConfig() config {
	return config{
		HTTPPort:        getEnvInt("HTTP_PORT", 3000),
		CORSOrigins:     getEnv("CORS_ALLOWED_ORIGINS", "*"),
		DBPath:          getEnv("DB_PATH", "./catalog.db"),
		SeedDemo:        getEnvBool("SEED_DEMO_CATALOG", true),
		JetStreamDir:    getEnv("JETSTREAM_DIR", "/tmp/furniture-configurator"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		SessionPrefix:   getEnv("SESSION_PREFIX", "configurator:session:"),
		SessionTTL:      getEnvDuration("SESSION_TTL", 24*time.Hour),
		IdleTimeout:     getEnvDuration("SESSION_IDLE_TIMEOUT", 2*time.Hour),
		SweepInterval:   getEnvDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),
		CartTTL:         getEnvDuration("CART_TTL", 72*time.Hour),
		CatalogCacheTTL: getEnvDuration("CATALOG_CACHE_TTL", 30*time.Second),
	}
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvBool returns environment variable as bool or default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
		log.Printf("Warning: invalid bool value for %s: %s, using default: %t", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}

// parseRedisAddr parses "host:port" into host and port.
// Returns defaults (127.0.0.1:6379) for invalid or missing values.
func parseRedisAddr(addr string) (string, int) {
	const defaultHost = "127.0.0.1"
	const defaultPort = 6379

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return defaultHost, defaultPort
	}
	if host == "" {
		host = defaultHost
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = defaultPort
	}
	return host, port
}
