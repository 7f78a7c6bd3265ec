package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all process configuration, loaded once at startup from the
// environment (optionally seeded from a .env file).
type Config struct {
	Port     string
	LogLevel string

	// Gemini generative API
	GeminiAPIKey        string
	GenerativeModelName string

	// Google Cloud speech services
	TTSVoice      string
	TTSLanguage   string
	STTModel      string
	STTSampleRate int

	// Every outbound gateway call is bounded by this timeout; expiry is
	// treated the same as an upstream failure.
	GatewayTimeout time.Duration

	// Session persistence
	SessionsDir  string
	QuestionsCSV string

	// SessionTTL > 0 enables the retention janitor; 0 keeps sessions forever.
	SessionTTL time.Duration

	// Response caching
	EnableCaching bool
	CacheTTL      time.Duration
	RedisAddr     string

	// Audio artifact storage: "local" (under SessionsDir) or "gcs".
	AudioStorage string
	GCSBucket    string

	CORSOrigins []string
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		GeminiAPIKey:        getEnv("GEMINI_API_KEY", os.Getenv("GOOGLE_API_KEY")),
		GenerativeModelName: getEnv("GENERATIVE_MODEL_NAME", "gemini-1.5-pro-latest"),

		TTSVoice:      getEnv("TTS_VOICE", "en-US-Studio-O"),
		TTSLanguage:   getEnv("TTS_LANGUAGE", "en-US"),
		STTModel:      getEnv("STT_MODEL", "latest_long"),
		STTSampleRate: getEnvInt("STT_SAMPLE_RATE", 16000),

		GatewayTimeout: getEnvDuration("GATEWAY_TIMEOUT", 30*time.Second),

		SessionsDir:  getEnv("SESSIONS_DIR", "sessions"),
		QuestionsCSV: getEnv("QUESTIONS_CSV", "data/questions.csv"),

		SessionTTL: getEnvDuration("SESSION_TTL", 0),

		EnableCaching: getEnvBool("ENABLE_CACHING", true),
		CacheTTL:      getEnvDuration("CACHE_TTL", time.Hour),
		RedisAddr:     getEnv("REDIS_ADDR", ""),

		AudioStorage: getEnv("AUDIO_STORAGE", "local"),
		GCSBucket:    getEnv("GCS_BUCKET", ""),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := strings.ToLower(os.Getenv(key))
	switch v {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return fallback
}

// getEnvDuration accepts Go duration strings ("45s", "24h") and, for
// compatibility with older deployments, bare integers interpreted as seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return fallback
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
