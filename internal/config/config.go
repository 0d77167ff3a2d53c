package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Search modes. Each one reproduces one of the two historical route sets.
const (
	SearchModeSession = "session"
	SearchModeDirect  = "direct"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	LinkedIn LinkedInConfig
	Gemini   GeminiConfig
	Outreach OutreachConfig
	Log      LogConfig
	Session  SessionConfig

	// EnvFileLoaded reports whether a .env file was read. The process
	// environment is used either way.
	EnvFileLoaded bool
}

type ServerConfig struct {
	Port       string
	Env        string
	SearchMode string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	StateTTL time.Duration
	LockTTL  time.Duration
}

type LinkedInConfig struct {
	Username           string
	Password           string
	BaseURL            string
	DispatchRPS        float64
	BreakerMaxFailures int
	BreakerTimeout     time.Duration
}

// HasCredentials reports whether both username and password are set.
func (c LinkedInConfig) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}

type GeminiConfig struct {
	APIKey          string
	Model           string
	BaseURL         string
	MaxOutputTokens int
	// ThinkingBudget is nil unless GEMINI_THINKING_BUDGET is set.
	ThinkingBudget *int
}

type OutreachConfig struct {
	SenderName string
}

type LogConfig struct {
	Level  string
	Format string
}

type SessionConfig struct {
	TTL time.Duration
}

func Load() *Config {
	envFileLoaded := godotenv.Load() == nil

	return &Config{
		EnvFileLoaded: envFileLoaded,
		Server: ServerConfig{
			Port:       getEnv("PORT", "5000"),
			Env:        getEnv("ENV", "development"),
			SearchMode: normalizeSearchMode(getEnv("SEARCH_MODE", SearchModeSession)),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "outreach_assistant"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			StateTTL: getEnvAsDuration("SEARCH_STATE_TTL", "1h"),
			LockTTL:  getEnvAsDuration("SEARCH_LOCK_TTL", "5m"),
		},
		LinkedIn: LinkedInConfig{
			Username:           getEnv("LINKEDIN_USERNAME", ""),
			Password:           getEnv("LINKEDIN_PASSWORD", ""),
			BaseURL:            getEnv("LINKEDIN_BASE_URL", "https://www.linkedin.com"),
			DispatchRPS:        getEnvAsFloat("LINKEDIN_DISPATCH_RPS", 0),
			BreakerMaxFailures: getEnvAsInt("LINKEDIN_BREAKER_MAX_FAILURES", 5),
			BreakerTimeout:     getEnvAsDuration("LINKEDIN_BREAKER_TIMEOUT", "60s"),
		},
		Gemini: GeminiConfig{
			APIKey:          getEnv("GEMINI_API_KEY", ""),
			Model:           getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			BaseURL:         getEnv("GEMINI_BASE_URL", ""),
			MaxOutputTokens: getEnvAsInt("DRAFT_MAX_TOKENS", 400),
			ThinkingBudget:  getEnvAsOptionalInt("GEMINI_THINKING_BUDGET"),
		},
		Outreach: OutreachConfig{
			SenderName: getEnv("OUTREACH_SENDER_NAME", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		Session: SessionConfig{
			TTL: getEnvAsDuration("SESSION_TTL", "24h"),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func normalizeSearchMode(mode string) string {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case SearchModeDirect:
		return SearchModeDirect
	default:
		return SearchModeSession
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsOptionalInt(key string) *int {
	value, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return nil
	}
	return &value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
