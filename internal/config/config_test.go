package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	os.Clearenv()

	cfg := Load()
	require.NotNil(t, cfg)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)

	assert.True(t, cfg.DBEnabled)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, "postgres", cfg.Database.Password)
	assert.Equal(t, "hospital", cfg.Database.Database)
	assert.Equal(t, "disable", cfg.Database.SSLMode)

	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "", cfg.Redis.Password)
	assert.Equal(t, 0, cfg.Redis.DB)

	assert.Equal(t, "http://localhost:8081", cfg.PatientDependency.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.PatientDependency.Timeout)
	assert.Equal(t, 5, cfg.PatientDependency.FailureThreshold)
	assert.Equal(t, 30*time.Second, cfg.PatientDependency.OpenTimeout)
	assert.Equal(t, 3, cfg.PatientDependency.RetryMaxAttempts)
	assert.Equal(t, 1*time.Second, cfg.PatientDependency.RetryWait)
	assert.Equal(t, 5*time.Second, cfg.PatientDependency.RetryMaxWait)
	assert.Equal(t, 30*time.Second, cfg.PatientDependency.ExistsCacheTTL)

	assert.Equal(t, "http://localhost:8081", cfg.Gateway.PatientURL)
	assert.Equal(t, "http://localhost:8082", cfg.Gateway.AppointmentURL)
	assert.Equal(t, "http://localhost:8083", cfg.Gateway.MedicalRecordURL)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("DB_ENABLED", "false")
	os.Setenv("DB_HOST", "test-host")
	os.Setenv("DB_NAME", "test-db")
	os.Setenv("REDIS_ADDR", "test-redis:6380")
	os.Setenv("PATIENT_SERVICE_URL", "http://patient:8081")
	os.Setenv("PATIENT_SERVICE_TIMEOUT", "500ms")
	os.Setenv("PATIENT_BREAKER_FAILURE_THRESHOLD", "3")
	os.Setenv("PATIENT_BREAKER_OPEN_TIMEOUT", "10s")
	os.Setenv("PATIENT_RETRY_MAX_ATTEMPTS", "2")
	os.Setenv("GATEWAY_PATIENT_SERVICE_URL", "http://patient.internal")
	defer os.Clearenv()

	cfg := Load()
	require.NotNil(t, cfg)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.False(t, cfg.DBEnabled)
	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, "test-db", cfg.Database.Database)
	assert.Equal(t, "test-redis:6380", cfg.Redis.Addr)
	assert.Equal(t, "http://patient:8081", cfg.PatientDependency.BaseURL)
	assert.Equal(t, 500*time.Millisecond, cfg.PatientDependency.Timeout)
	assert.Equal(t, 3, cfg.PatientDependency.FailureThreshold)
	assert.Equal(t, 10*time.Second, cfg.PatientDependency.OpenTimeout)
	assert.Equal(t, 2, cfg.PatientDependency.RetryMaxAttempts)
	assert.Equal(t, "http://patient.internal", cfg.Gateway.PatientURL)
}

func TestLoad_InvalidNumbersFallBackToDefaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("DB_PORT", "not-a-port")
	os.Setenv("PATIENT_BREAKER_OPEN_TIMEOUT", "soon")
	defer os.Clearenv()

	cfg := Load()
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 30*time.Second, cfg.PatientDependency.OpenTimeout)
}
