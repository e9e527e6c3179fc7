package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port             string
	AllowedOrigins   []string
	FrontendURL      string
	RedisURL         string
	RedisPassword    string
	MoveCacheTTL     time.Duration
	EngineDepth      int
	BotDifficulty    string
	RandomTieBreak   bool
	MatchIdleTimeout time.Duration
	BenchmarkDepths  []int
	ResultsDir       string
	LogLevel         string
}

var AppConfig *Config

// MaxEngineDepth is the deepest search the move service accepts.
const MaxEngineDepth = 8

// LoadEnv reads .env from the working directory or its parent. A missing
// file is not an error.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Debug().Str("component", "CONFIG").Msg("no .env file found")
		}
	}
}

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOriginsStr := GetEnv("ALLOWED_ORIGINS", "")

	// Build allowed origins list (Frontend URL + CSV values)
	allowedOrigins := []string{frontendURL}
	if allowedOriginsStr != "" {
		extras := strings.Split(allowedOriginsStr, ",")
		for _, origin := range extras {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	// Cache
	redisURL := GetEnv("REDIS_URL", "localhost:6379")
	redisPassword := GetEnv("REDIS_PASSWORD", "")
	moveCacheTTLMin := GetEnvAsInt("MOVE_CACHE_TTL_MINUTES", 60)

	// Engine
	engineDepth := GetEnvAsIntInRange("ENGINE_DEPTH", 5, 1, MaxEngineDepth)
	botDifficulty := GetEnv("BOT_DIFFICULTY", "medium")
	randomTieBreak := GetEnvAsBool("RANDOM_TIE_BREAK", false)
	matchIdleMin := GetEnvAsInt("MATCH_IDLE_TIMEOUT_MINUTES", 30)

	// Benchmark
	benchmarkDepths := GetEnvAsIntList("BENCHMARK_DEPTHS", []int{1, 2, 3, 4, 5})
	resultsDir := GetEnv("RESULTS_DIR", "results")

	AppConfig = &Config{
		Port:             port,
		AllowedOrigins:   allowedOrigins,
		FrontendURL:      frontendURL,
		RedisURL:         redisURL,
		RedisPassword:    redisPassword,
		MoveCacheTTL:     time.Duration(moveCacheTTLMin) * time.Minute,
		EngineDepth:      engineDepth,
		BotDifficulty:    botDifficulty,
		RandomTieBreak:   randomTieBreak,
		MatchIdleTimeout: time.Duration(matchIdleMin) * time.Minute,
		BenchmarkDepths:  benchmarkDepths,
		ResultsDir:       resultsDir,
		LogLevel:         GetEnv("LOG_LEVEL", "info"),
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("component", "CONFIG").Msgf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsIntInRange is GetEnvAsInt clamped to [lo, hi].
func GetEnvAsIntInRange(key string, defaultValue, lo, hi int) int {
	value := GetEnvAsInt(key, defaultValue)
	if value < lo || value > hi {
		clamped := min(max(value, lo), hi)
		log.Warn().Str("component", "CONFIG").Msgf("%s=%d is outside [%d, %d], using %d", key, value, lo, hi, clamped)
		return clamped
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Warn().Str("component", "CONFIG").Msgf("Invalid boolean value for %s: %s, using default: %t", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsIntList parses a comma separated list such as "1,2,3".
func GetEnvAsIntList(key string, defaultValue []int) []int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	values, err := ParseIntList(valueStr)
	if err != nil {
		log.Warn().Str("component", "CONFIG").Msgf("Invalid list value for %s: %s, using default: %v", key, valueStr, defaultValue)
		return defaultValue
	}
	return values
}

func ParseIntList(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
