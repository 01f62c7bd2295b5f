package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Estimation flow configuration
	EstimationAPIURL     string
	EstimationAPIVersion string
	EstimationAPIKey     string
	EstimationRateLimit  int

	// Export storage
	S3Bucket  string
	AWSRegion string

	// Logging
	LogLevel  string
	LogFormat string
}

// DefaultEstimationAPIURL is the hosted food-tracker flow
const DefaultEstimationAPIURL = "https://flow-api.mira.network/v1/flows/flows/cosmic-labs/food-tracker"

// secret names and the environment variables they fall back to
var secretEnv = map[string]string{
	"db_password":        "DB_PASSWORD",
	"jwt_secret":         "JWT_SECRET",
	"redis_password":     "REDIS_PASSWORD",
	"estimation_api_key": "ESTIMATION_API_KEY",
}

// LoadConfig creates a new Config from the environment, an optional .env file
// and Docker secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	if env == Development || env == Test {
		// .env is optional; a missing file is not an error
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	v := newViper()
	cfg := &Config{
		Environment:          env,
		ServerPort:           v.GetString("SERVER_PORT"),
		ServerHost:           v.GetString("SERVER_HOST"),
		CORSOrigins:          splitList(v.GetString("CORS_ORIGINS")),
		DBHost:               v.GetString("DB_HOST"),
		DBPort:               v.GetString("DB_PORT"),
		DBUser:               v.GetString("DB_USER"),
		DBName:               v.GetString("DB_NAME"),
		DBSSLMode:            v.GetString("DB_SSL_MODE"),
		RedisHost:            v.GetString("REDIS_HOST"),
		RedisPort:            v.GetString("REDIS_PORT"),
		RedisDB:              v.GetInt("REDIS_DB"),
		RedisURL:             v.GetString("REDIS_URL"),
		EstimationAPIURL:     v.GetString("ESTIMATION_API_URL"),
		EstimationAPIVersion: v.GetString("ESTIMATION_API_VERSION"),
		EstimationRateLimit:  v.GetInt("ESTIMATION_RATE_LIMIT"),
		S3Bucket:             v.GetString("S3_BUCKET_NAME"),
		AWSRegion:            v.GetString("AWS_REGION"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		LogFormat:            v.GetString("LOG_FORMAT"),
	}

	secrets := loadSecrets(env, v)
	cfg.DBPassword = secrets["db_password"]
	cfg.JWTSecret = secrets["jwt_secret"]
	cfg.RedisPassword = secrets["redis_password"]
	cfg.EstimationAPIKey = secrets["estimation_api_key"]

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "macrotracker")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("ESTIMATION_API_URL", DefaultEstimationAPIURL)
	v.SetDefault("ESTIMATION_API_VERSION", "1.0.1")
	v.SetDefault("ESTIMATION_RATE_LIMIT", 30)
	v.SetDefault("S3_BUCKET_NAME", "macro-tracker-exports")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	return v
}

// loadSecrets reads each secret from the secrets directory, falling back to
// its environment variable. CI only uses environment variables.
func loadSecrets(env Environment, v *viper.Viper) map[string]string {
	out := make(map[string]string, len(secretEnv))
	for name, envVar := range secretEnv {
		if env.UsesSecretsDir() {
			if value := readSecret(name); value != "" {
				out[name] = value
				continue
			}
		}
		out[name] = v.GetString(envVar)
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	data, err := os.ReadFile(filepath.Join(secretsDir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// DSN returns the postgres connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}
