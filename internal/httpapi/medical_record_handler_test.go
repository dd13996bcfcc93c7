package httpapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/domain"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/httpapi"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/repository"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/service"
)

func newMedicalRecordRouter(repo repository.MedicalRecordsRepository, checker service.ExistenceChecker) *httpapi.Router {
	router := httpapi.NewRouter(zap.NewNop())
	router.RegisterMedicalRecordRoutes(httpapi.NewMedicalRecordHandler(repo, checker, zap.NewNop()))
	return router
}

func TestMedicalRecordHandler_CreateConfirmedSetsCreatedAt(t *testing.T) {
	repo := repository.NewMemoryMedicalRecordsRepository()
	router := newMedicalRecordRouter(repo, &fakeChecker{result: service.ExistenceConfirmed})

	before := time.Now().UTC()
	body := `{"patient_id":7,"diagnostics":"seasonal allergy"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/medical-records", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	var stored domain.MedicalRecord
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Result, &stored))
	assert.Equal(t, int64(1), stored.ID)
	assert.Equal(t, "seasonal allergy", stored.Diagnostics)
	assert.False(t, stored.CreatedAt.Before(before))
	assert.False(t, stored.CreatedAt.After(time.Now().UTC()))
}

func TestMedicalRecordHandler_CreateUnknownPatientRejected(t *testing.T) {
	repo := repository.NewMemoryMedicalRecordsRepository()
	router := newMedicalRecordRouter(repo, &fakeChecker{result: service.ExistenceNotFound})

	body := `{"patient_id":999,"diagnostics":"x"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/medical-records", strings.NewReader(body)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, httpapi.CodeReferencedEntityNotFound, decodeEnvelope(t, rec).Code)

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMedicalRecordHandler_CreateDependencyUnavailable(t *testing.T) {
	router := newMedicalRecordRouter(repository.NewMemoryMedicalRecordsRepository(), &fakeChecker{result: service.ExistenceUnavailable})

	body := `{"patient_id":7,"diagnostics":"x"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/medical-records", strings.NewReader(body)))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, httpapi.CodeDependencyUnavailable, decodeEnvelope(t, rec).Code)
}

func TestMedicalRecordHandler_CreateValidation(t *testing.T) {
	checker := &fakeChecker{result: service.ExistenceConfirmed}
	router := newMedicalRecordRouter(repository.NewMemoryMedicalRecordsRepository(), checker)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/medical-records", strings.NewReader(`{"patient_id":7}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, httpapi.CodeValidationError, decodeEnvelope(t, rec).Code)
	assert.Equal(t, 0, checker.calls)
}

func TestMedicalRecordHandler_ListByPatient(t *testing.T) {
	repo := repository.NewMemoryMedicalRecordsRepository()
	_, err := repo.Save(context.Background(), domain.MedicalRecord{PatientID: 7, Diagnostics: "a", CreatedAt: time.Now().UTC()})
	require.NoError(t, err)
	_, err = repo.Save(context.Background(), domain.MedicalRecord{PatientID: 8, Diagnostics: "b", CreatedAt: time.Now().UTC()})
	require.NoError(t, err)

	router := newMedicalRecordRouter(repo, &fakeChecker{result: service.ExistenceConfirmed})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/medical-records/patient/7", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var records []domain.MedicalRecord
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Result, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0].Diagnostics)
}
