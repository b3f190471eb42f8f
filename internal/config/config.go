package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for our application
type Config struct {
	Port               string
	Origin             string
	Environment        string
	JWTSecret          string
	JWTExpirationHours int
	PhoneRegion        string
	Database           DatabaseConfig
	Logging            LoggingConfig
	Mailer             MailerConfig
	Storage            StorageConfig
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Driver                 string
	Host                   string
	Port                   string
	Username               string
	Password               string
	Name                   string
	SSLMode                string
	DSN                    string
	MaxOpenConns           int
	MaxIdleConns           int
	ConnMaxLifetimeMinutes int
}

// LoggingConfig controls the slog handler and optional rotating file output.
type LoggingConfig struct {
	Level          string
	Format         string
	File           string
	FileMaxSizeMB  int
	FileMaxBackups int
	FileMaxAgeDays int
}

// MailerConfig holds email service configuration
type MailerConfig struct {
	Enabled     bool
	Host        string
	Port        int
	Username    string
	Password    string
	DefaultFrom string
}

// StorageConfig holds the object storage settings used for doctor images.
type StorageConfig struct {
	Enabled          bool
	Endpoint         string
	AccessKey        string
	SecretKey        string
	Bucket           string
	UseSSL           bool
	URLExpiryMinutes int
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	var errs []error
	intEnv := func(key string, def int) int {
		v, err := strconv.Atoi(getEnv(key, strconv.Itoa(def)))
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s: %w", key, err))
			return def
		}
		return v
	}

	dbConfig := DatabaseConfig{
		Driver:                 strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		Host:                   getEnv("DB_HOST", "localhost"),
		Username:               getEnv("DB_USERNAME", "root"),
		Password:               getEnv("DB_PASSWORD", ""),
		Name:                   getEnv("DB_NAME", "medibook"),
		SSLMode:                getEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:           intEnv("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:           intEnv("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetimeMinutes: intEnv("DB_CONN_MAX_LIFETIME_MINUTES", 30),
	}

	switch dbConfig.Driver {
	case "mysql":
		dbConfig.Port = getEnv("DB_PORT", "3306")
		dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)
	case "postgres":
		dbConfig.Port = getEnv("DB_PORT", "5432")
		dbConfig.DSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			dbConfig.Host, dbConfig.Username, dbConfig.Password, dbConfig.Name, dbConfig.Port, dbConfig.SSLMode)
	case "sqlite":
		dbConfig.DSN = dbConfig.Name + ".db"
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", dbConfig.Driver))
	}
	if dsn := getEnv("DB_DSN", ""); dsn != "" {
		dbConfig.DSN = dsn
	}

	loggingConfig := LoggingConfig{
		Level:          getEnv("LOG_LEVEL", "info"),
		Format:         getEnv("LOG_FORMAT", "json"),
		File:           getEnv("LOG_FILE", ""),
		FileMaxSizeMB:  intEnv("LOG_FILE_MAX_SIZE_MB", 100),
		FileMaxBackups: intEnv("LOG_FILE_MAX_BACKUPS", 5),
		FileMaxAgeDays: intEnv("LOG_FILE_MAX_AGE_DAYS", 28),
	}

	mailerConfig := MailerConfig{
		Enabled:     getEnvBool("MAILER_ENABLED", false),
		Host:        getEnv("MAILER_HOST", "localhost"),
		Port:        intEnv("MAILER_PORT", 587),
		Username:    getEnv("MAILER_USERNAME", ""),
		Password:    getEnv("MAILER_PASSWORD", ""),
		DefaultFrom: getEnv("MAILER_DEFAULT_FROM", "no-reply@medibook.local"),
	}

	storageConfig := StorageConfig{
		Enabled:          getEnvBool("MINIO_ENABLED", false),
		Endpoint:         getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:        getEnv("MINIO_ACCESS_KEY", ""),
		SecretKey:        getEnv("MINIO_SECRET_KEY", ""),
		Bucket:           getEnv("MINIO_BUCKET", "doctor-images"),
		UseSSL:           getEnvBool("MINIO_USE_SSL", false),
		URLExpiryMinutes: intEnv("MINIO_URL_EXPIRY_MINUTES", 60),
	}

	cfg := &Config{
		Port:               getEnv("PORT", "5000"),
		Origin:             getEnv("ORIGIN", "http://localhost:3000"),
		Environment:        getEnv("APP_ENV", "development"),
		JWTSecret:          getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTExpirationHours: intEnv("JWT_EXPIRATION_HOURS", 24),
		PhoneRegion:        strings.ToUpper(getEnv("PHONE_DEFAULT_REGION", "US")),
		Database:           dbConfig,
		Logging:            loggingConfig,
		Mailer:             mailerConfig,
		Storage:            storageConfig,
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if cfg.JWTExpirationHours <= 0 {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: must be positive")
	}
	return cfg, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}
	return b
}
