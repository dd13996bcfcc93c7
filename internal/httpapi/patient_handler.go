package httpapi

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/domain"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/repository"
)

// PatientHandler serves the patient-service CRUD surface. Patients are
// local-only; no cross-service check is needed here.
type PatientHandler struct {
	repo   repository.PatientsRepository
	logger *zap.Logger
}

func NewPatientHandler(repo repository.PatientsRepository, logger *zap.Logger) *PatientHandler {
	return &PatientHandler{repo: repo, logger: logger}
}

// List handles GET /api/patients.
func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	patients, err := h.repo.FindAll(r.Context())
	if err != nil {
		h.logger.Error("list patients failed", zap.Error(err))
		WriteJSON(w, http.StatusInternalServerError, Fail(CodeInternalError, "failed to list patients"))
		return
	}
	WriteJSON(w, http.StatusOK, Ok(patients))
}

// Get handles GET /api/patients/{id}.
func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, "/api/patients/")
	if !ok {
		WriteJSON(w, http.StatusBadRequest, Fail(CodeValidationError, "invalid patient id"))
		return
	}

	patient, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			WriteJSON(w, http.StatusNotFound, Fail(CodeNotFound, "patient not found"))
			return
		}
		h.logger.Error("get patient failed", zap.Int64("patient_id", id), zap.Error(err))
		WriteJSON(w, http.StatusInternalServerError, Fail(CodeInternalError, "failed to get patient"))
		return
	}
	WriteJSON(w, http.StatusOK, Ok(patient))
}

// Create handles POST /api/patients.
func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var patient domain.Patient
	if err := readBodyJSON(r, 1<<20, &patient); err != nil {
		WriteJSON(w, http.StatusBadRequest, Fail(CodeValidationError, "invalid request body"))
		return
	}

	if patient.FirstName == "" || patient.LastName == "" {
		WriteJSON(w, http.StatusBadRequest, Fail(CodeValidationError, "first_name and last_name are required"))
		return
	}
	if patient.DateOfBirth != "" {
		if _, err := time.Parse("2006-01-02", patient.DateOfBirth); err != nil {
			WriteJSON(w, http.StatusBadRequest, Fail(CodeValidationError, "date_of_birth must be YYYY-MM-DD"))
			return
		}
	}

	patient.ID = 0 // the store assigns ids
	stored, err := h.repo.Save(r.Context(), patient)
	if err != nil {
		h.logger.Error("save patient failed", zap.Error(err))
		WriteJSON(w, http.StatusInternalServerError, Fail(CodeInternalError, "failed to save patient"))
		return
	}

	h.logger.Info("patient created", zap.Int64("patient_id", stored.ID))
	WriteJSON(w, http.StatusCreated, Ok(stored))
}
