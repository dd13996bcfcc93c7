package httpapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/httpapi"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/repository"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/resilience"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/service"
)

// End-to-end create flow: appointment handler -> validator -> breaker
// -> retry -> real HTTP client -> a stand-in patient-service.

func newPatientBackend(t *testing.T, calls *atomic.Int64, mode *atomic.Value) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		switch mode.Load().(string) {
		case "found":
			_, _ = w.Write([]byte(`{"code":"ok","type":"success","message":"ok","result":{"id":7,"first_name":"Alice","last_name":"Martin"}}`))
		case "missing":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"code":"not_found","type":"error","message":"patient not found"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
}

func newCreateFlowRouter(backendURL string, failureThreshold int) (*httpapi.Router, *repository.MemoryAppointmentsRepository) {
	client := service.NewPatientClient(backendURL, time.Second, zap.NewNop())
	breaker := resilience.NewBreaker("patient-service", failureThreshold, time.Hour, zap.NewNop())
	retry := resilience.RetryPolicy{MaxAttempts: 3, Wait: time.Millisecond}
	validator := service.NewDependencyValidator("patient-service", client, breaker, retry, nil, 0, zap.NewNop())

	repo := repository.NewMemoryAppointmentsRepository()
	router := httpapi.NewRouter(zap.NewNop())
	router.RegisterAppointmentRoutes(httpapi.NewAppointmentHandler(repo, validator, zap.NewNop()))
	return router, repo
}

func postAppointment(router *httpapi.Router, patientID string) *httptest.ResponseRecorder {
	body := `{"scheduled_at":"2025-06-01T09:30:00Z","patient_id":` + patientID + `}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(body)))
	return rec
}

func TestCreateFlow_ExistingPatientPersists(t *testing.T) {
	var calls atomic.Int64
	var mode atomic.Value
	mode.Store("found")
	backend := newPatientBackend(t, &calls, &mode)
	defer backend.Close()

	router, repo := newCreateFlowRouter(backend.URL, 3)

	rec := postAppointment(router, "7")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(1), calls.Load())

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateFlow_MissingPatientIsDefinitiveRejection(t *testing.T) {
	var calls atomic.Int64
	var mode atomic.Value
	mode.Store("missing")
	backend := newPatientBackend(t, &calls, &mode)
	defer backend.Close()

	router, repo := newCreateFlowRouter(backend.URL, 3)

	rec := postAppointment(router, "999")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, int64(1), calls.Load(), "a 404 must not be retried")

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateFlow_BreakerOpensAfterFailuresAndBlocksWithoutNetwork(t *testing.T) {
	var calls atomic.Int64
	var mode atomic.Value
	mode.Store("error")
	backend := newPatientBackend(t, &calls, &mode)
	defer backend.Close()

	// failureThreshold=3 and MaxAttempts=3: one create burns exactly
	// three permits and opens the breaker
	router, repo := newCreateFlowRouter(backend.URL, 3)

	rec := postAppointment(router, "7")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, int64(3), calls.Load())

	// breaker is OPEN now: the next create fails fast with no network call
	rec = postAppointment(router, "7")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, int64(3), calls.Load(), "open breaker must reject before the network")

	// even a now-healthy backend is not consulted while OPEN
	mode.Store("found")
	rec = postAppointment(router, "7")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, int64(3), calls.Load())

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}
