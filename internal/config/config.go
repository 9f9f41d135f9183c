package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ConfigPath is the default YAML config location.
const ConfigPath = "config.yaml"

// FileConfig represents configuration loaded from YAML plus env overrides.
type FileConfig struct {
	Port        string `yaml:"port"`
	LogLevel    string `yaml:"logLevel"`
	Environment string `yaml:"environment"`

	DatabaseURL string `yaml:"databaseURL"`
	JWTSecret   string `yaml:"jwtSecret"`

	GeminiAPIKey string `yaml:"geminiApiKey"`
	GeminiModel  string `yaml:"geminiModel"`

	UploadDir        string   `yaml:"uploadDir"`
	MaxUploadBytes   int64    `yaml:"maxUploadBytes"`
	AllowedMimeTypes []string `yaml:"allowedMimeTypes"`

	RedisAddr           string `yaml:"redisAddr"`
	RedisPassword       string `yaml:"redisPassword"`
	RateLimitMax        int    `yaml:"rateLimitMax"`
	RateLimitWindowSecs int    `yaml:"rateLimitWindowSecs"`

	MinioEndpoint  string `yaml:"minioEndpoint"`
	MinioAccessKey string `yaml:"minioAccessKey"`
	MinioSecretKey string `yaml:"minioSecretKey"`
	MinioBucket    string `yaml:"minioBucket"`
	MinioUseSSL    bool   `yaml:"minioUseSSL"`

	TrustedProxies []string `yaml:"trustedProxies"`
}

var defaultAllowedMimeTypes = []string{
	"audio/mpeg", "audio/wav", "audio/ogg", "audio/mp3", "audio/webm",
	"video/mp4", "video/webm", "video/ogg", "video/avi", "video/mov",
}

// Load reads config from path (defaults to config.yaml). A missing file is
// fine; everything can come from the environment. A .env file is loaded
// first when present.
func Load(path string) (FileConfig, error) {
	_ = godotenv.Load()

	cfg := FileConfig{
		Port:                "3001",
		LogLevel:            "info",
		Environment:         "development",
		GeminiModel:         "gemini-2.0-flash",
		UploadDir:           "uploads",
		MaxUploadBytes:      50 << 20,
		RateLimitMax:        100,
		RateLimitWindowSecs: 900,
	}
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	// Override with environment variables
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("NODE_ENV"); v != "" {
		cfg.Environment = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Environment = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.GeminiAPIKey = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.GeminiModel = v
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		cfg.UploadDir = v
	}
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.MaxUploadBytes = n
		}
	}
	if v := os.Getenv("ALLOWED_MIME_TYPES"); v != "" {
		cfg.AllowedMimeTypes = splitCSV(v)
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("RATE_LIMIT_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitMax = n
		}
	}
	if v := os.Getenv("RATE_LIMIT_WINDOW_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitWindowSecs = n
		}
	}
	if v := os.Getenv("MINIO_ENDPOINT"); v != "" {
		cfg.MinioEndpoint = v
	}
	if v := os.Getenv("MINIO_ACCESS_KEY"); v != "" {
		cfg.MinioAccessKey = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		cfg.MinioSecretKey = v
	}
	if v := os.Getenv("MINIO_BUCKET"); v != "" {
		cfg.MinioBucket = v
	}
	if v := os.Getenv("MINIO_USE_SSL"); v == "true" {
		cfg.MinioUseSSL = true
	}
	if v := os.Getenv("TRUSTED_PROXIES"); v != "" {
		cfg.TrustedProxies = splitCSV(v)
	}

	if len(cfg.AllowedMimeTypes) == 0 {
		cfg.AllowedMimeTypes = append([]string(nil), defaultAllowedMimeTypes...)
	}
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Development reports whether the server runs in development mode.
func (c FileConfig) Development() bool {
	return strings.EqualFold(c.Environment, "development")
}

func validateConfig(cfg FileConfig) error {
	if cfg.Port == "" {
		return errors.New("config: port is required (set in config.yaml or PORT)")
	}
	if cfg.DatabaseURL == "" {
		return errors.New("config: databaseURL is required (set in config.yaml or DATABASE_URL)")
	}
	if cfg.JWTSecret == "" {
		return errors.New("config: jwtSecret is required (set in config.yaml or JWT_SECRET)")
	}
	if cfg.MaxUploadBytes <= 0 {
		return errors.New("config: maxUploadBytes must be positive")
	}
	if cfg.MinioEndpoint != "" {
		if cfg.MinioAccessKey == "" || cfg.MinioSecretKey == "" || cfg.MinioBucket == "" {
			return errors.New("config: minio endpoint set but access key, secret key or bucket missing")
		}
	}
	return nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
