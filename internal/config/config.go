package config

import (
	"os"
	"strconv"
	"strings"
)

// Server configuration
type ServerConfig struct {
	Port string
	Host string
}

// MongoDB configuration
type MongoConfig struct {
	URI      string
	Database string
}

// Firebase identity provider configuration
type FirebaseConfig struct {
	APIKey    string
	ProjectID string
}

// CORS configuration
type CORSConfig struct {
	AllowOrigins []string
}

// Rate limit configuration for the public auth endpoints
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Mongo     MongoConfig
	Firebase  FirebaseConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

// Default configuration values
const (
	DefaultServerPort       = "5000"
	DefaultServerHost       = ""
	DefaultMongoURI         = "mongodb://localhost:27017"
	DefaultMongoDB          = "campbook"
	DefaultCORSAllowOrigins = "*"
	DefaultRateLimitPerMin  = 60
	DefaultRateLimitBurst   = 20
)

// New returns a new Config with values from the environment, falling back to defaults
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", DefaultServerPort),
			Host: getEnv("SERVER_HOST", DefaultServerHost),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", DefaultMongoURI),
			Database: getEnv("MONGO_DB", DefaultMongoDB),
		},
		Firebase: FirebaseConfig{
			APIKey:    getEnv("FIREBASE_API_KEY", ""),
			ProjectID: getEnv("FIREBASE_PROJECT_ID", ""),
		},
		CORS: CORSConfig{
			AllowOrigins: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", DefaultCORSAllowOrigins)),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvInt("RATE_LIMIT_RPM", DefaultRateLimitPerMin),
			Burst:             getEnvInt("RATE_LIMIT_BURST", DefaultRateLimitBurst),
		},
	}
}

// Address returns the server address string
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
