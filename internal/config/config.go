package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Upload  UploadConfig
	Parser  ParserConfig
	Storage StorageConfig
	CORS    CORSConfig
	Log     LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// UploadConfig holds upload validation settings.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// MaxFileSizeBytes returns the upload size limit in bytes.
func (u *UploadConfig) MaxFileSizeBytes() int64 {
	return u.MaxFileSizeMB * 1024 * 1024
}

// ParserConfig holds LLM extraction provider settings.
type ParserConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// StorageConfig holds upload store settings. Backend is "local" or "s3".
type StorageConfig struct {
	Backend   string `mapstructure:"backend"`
	UploadDir string `mapstructure:"upload_dir"`
	S3        S3Config
}

// S3Config holds AWS S3 settings for the s3 storage backend.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the INVOTAB_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INVOTAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 16)

	// Parser defaults
	v.SetDefault("parser.provider", "gemini")
	v.SetDefault("parser.api_key", "")
	v.SetDefault("parser.default_model", "")
	v.SetDefault("parser.timeout_secs", 120)

	// Storage defaults
	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.upload_dir", "uploads")
	v.SetDefault("storage.s3.region", "us-east-1")
	v.SetDefault("storage.s3.bucket", "")
	v.SetDefault("storage.s3.prefix", "uploads")
	v.SetDefault("storage.s3.endpoint", "")
	v.SetDefault("storage.s3.access_key", "")
	v.SetDefault("storage.s3.secret_key", "")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "INVOTAB_SERVER_PORT",
		"server.read_timeout":     "INVOTAB_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "INVOTAB_SERVER_WRITE_TIMEOUT",
		"server.environment":      "INVOTAB_SERVER_ENVIRONMENT",
		"upload.max_file_size_mb": "INVOTAB_UPLOAD_MAX_FILE_SIZE_MB",
		"parser.provider":         "INVOTAB_PARSER_PROVIDER",
		"parser.api_key":          "INVOTAB_PARSER_API_KEY",
		"parser.default_model":    "INVOTAB_PARSER_DEFAULT_MODEL",
		"parser.timeout_secs":     "INVOTAB_PARSER_TIMEOUT_SECS",
		"storage.backend":         "INVOTAB_STORAGE_BACKEND",
		"storage.upload_dir":      "INVOTAB_STORAGE_UPLOAD_DIR",
		"storage.s3.region":       "INVOTAB_STORAGE_S3_REGION",
		"storage.s3.bucket":       "INVOTAB_STORAGE_S3_BUCKET",
		"storage.s3.prefix":       "INVOTAB_STORAGE_S3_PREFIX",
		"storage.s3.endpoint":     "INVOTAB_STORAGE_S3_ENDPOINT",
		"storage.s3.access_key":   "INVOTAB_STORAGE_S3_ACCESS_KEY",
		"storage.s3.secret_key":   "INVOTAB_STORAGE_S3_SECRET_KEY",
		"cors.allowed_origins":    "INVOTAB_CORS_ALLOWED_ORIGINS",
		"log.level":               "INVOTAB_LOG_LEVEL",
		"log.format":              "INVOTAB_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if INVOTAB_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INVOTAB_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.Parser = ParserConfig{
		Provider:     v.GetString("parser.provider"),
		APIKey:       v.GetString("parser.api_key"),
		DefaultModel: v.GetString("parser.default_model"),
		TimeoutSecs:  v.GetInt("parser.timeout_secs"),
	}
	cfg.Storage = StorageConfig{
		Backend:   v.GetString("storage.backend"),
		UploadDir: v.GetString("storage.upload_dir"),
		S3: S3Config{
			Region:    v.GetString("storage.s3.region"),
			Bucket:    v.GetString("storage.s3.bucket"),
			Prefix:    v.GetString("storage.s3.prefix"),
			Endpoint:  v.GetString("storage.s3.endpoint"),
			AccessKey: v.GetString("storage.s3.access_key"),
			SecretKey: v.GetString("storage.s3.secret_key"),
		},
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitOrigins(v.GetString("cors.allowed_origins")),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}

// splitOrigins parses a comma-separated origin list, dropping empty entries.
func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
