package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config covers all four binaries. Each service reads the sections it
// needs; unused sections keep their defaults.
type Config struct {
	HTTP struct {
		Addr string
	}
	DBEnabled bool
	Database  DatabaseConfig
	Redis     struct {
		Addr     string
		Password string
		DB       int
	}
	Log struct {
		Level  string
		Format string
	}
	PatientDependency PatientDependencyConfig
	Gateway           GatewayConfig
}

// DatabaseConfig PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// GetDSN builds the lib/pq connection string.
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// PatientDependencyConfig controls the cross-service existence check
// against patient-service (client timeout, breaker and retry knobs).
type PatientDependencyConfig struct {
	BaseURL          string
	Timeout          time.Duration
	FailureThreshold int
	OpenTimeout      time.Duration
	RetryMaxAttempts int
	RetryWait        time.Duration
	RetryMaxWait     time.Duration
	ExistsCacheTTL   time.Duration
}

// GatewayConfig static routing table: path prefix -> backend base URL.
type GatewayConfig struct {
	PatientURL       string
	AppointmentURL   string
	MedicalRecordURL string
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	cfg.DBEnabled = getEnv("DB_ENABLED", "true") == "true"
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "hospital")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "10"), 10)
	cfg.Database.MaxIdle = parseInt(getEnv("DB_MAX_IDLE", "5"), 5)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.PatientDependency.BaseURL = getEnv("PATIENT_SERVICE_URL", "http://localhost:8081")
	cfg.PatientDependency.Timeout = parseDuration(getEnv("PATIENT_SERVICE_TIMEOUT", "3s"), 3*time.Second)
	cfg.PatientDependency.FailureThreshold = parseInt(getEnv("PATIENT_BREAKER_FAILURE_THRESHOLD", "5"), 5)
	cfg.PatientDependency.OpenTimeout = parseDuration(getEnv("PATIENT_BREAKER_OPEN_TIMEOUT", "30s"), 30*time.Second)
	cfg.PatientDependency.RetryMaxAttempts = parseInt(getEnv("PATIENT_RETRY_MAX_ATTEMPTS", "3"), 3)
	cfg.PatientDependency.RetryWait = parseDuration(getEnv("PATIENT_RETRY_WAIT", "1s"), 1*time.Second)
	cfg.PatientDependency.RetryMaxWait = parseDuration(getEnv("PATIENT_RETRY_MAX_WAIT", "5s"), 5*time.Second)
	cfg.PatientDependency.ExistsCacheTTL = parseDuration(getEnv("PATIENT_EXISTS_CACHE_TTL", "30s"), 30*time.Second)

	cfg.Gateway.PatientURL = getEnv("GATEWAY_PATIENT_SERVICE_URL", "http://localhost:8081")
	cfg.Gateway.AppointmentURL = getEnv("GATEWAY_APPOINTMENT_SERVICE_URL", "http://localhost:8082")
	cfg.Gateway.MedicalRecordURL = getEnv("GATEWAY_MEDICAL_RECORD_SERVICE_URL", "http://localhost:8083")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
