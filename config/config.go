package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every externally configurable value. It is built once in
// main and passed down; nothing in the codebase reads os.Getenv after Load.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Google   GoogleCloudConfig
	Upload   UploadConfig
}

type ServerConfig struct {
	Port        string
	Env         string
	FrontendURL string
}

type DatabaseConfig struct {
	// PostgresURI takes precedence when set; otherwise the service runs on a
	// file-backed SQLite database at SQLitePath.
	PostgresURI string
	SQLitePath  string
}

type RedisConfig struct {
	Addr string
}

type AuthConfig struct {
	JWTSecret       string
	GoogleClientID  string
	TokenTTL        time.Duration
	RecruiterEmails []string
}

type GoogleCloudConfig struct {
	ProjectID     string
	Location      string
	GeminiModel   string
	TTSVoice      string
	StorageBucket string
}

type UploadConfig struct {
	MaxFileSize int64
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			Env:         getEnv("ENV", "development"),
			FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			PostgresURI: getEnv("POSTGRES_URI", ""),
			SQLitePath:  getEnv("SQLITE_PATH", "voicehire.db"),
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", ""),
		},
		Auth: AuthConfig{
			JWTSecret:       getEnv("JWT_SECRET_KEY", ""),
			GoogleClientID:  getEnv("GOOGLE_CLIENT_ID", ""),
			TokenTTL:        getEnvAsDuration("TOKEN_TTL", "24h"),
			RecruiterEmails: splitList(getEnv("RECRUITER_EMAILS", "")),
		},
		Google: GoogleCloudConfig{
			ProjectID:     getEnv("GCP_PROJECT_ID", ""),
			Location:      getEnv("GCP_LOCATION", "us-central1"),
			GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			TTSVoice:      getEnv("TTS_VOICE", "en-US-Neural2-D"),
			StorageBucket: getEnv("GCS_BUCKET", ""),
		},
		Upload: UploadConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 5<<20),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsDuration(key, fallback string) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		v = fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		p = strings.TrimSpace(strings.ToLower(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
