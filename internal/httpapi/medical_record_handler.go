package httpapi

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/domain"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/repository"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/service"
)

// MedicalRecordHandler serves the medical-record-service surface. Same
// shape as appointments: local reads plus a dependency-checked create.
type MedicalRecordHandler struct {
	repo    repository.MedicalRecordsRepository
	checker service.ExistenceChecker
	logger  *zap.Logger
}

func NewMedicalRecordHandler(repo repository.MedicalRecordsRepository, checker service.ExistenceChecker, logger *zap.Logger) *MedicalRecordHandler {
	return &MedicalRecordHandler{repo: repo, checker: checker, logger: logger}
}

// List handles GET /api/medical-records.
func (h *MedicalRecordHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.repo.FindAll(r.Context())
	if err != nil {
		h.logger.Error("list medical records failed", zap.Error(err))
		WriteJSON(w, http.StatusInternalServerError, Fail(CodeInternalError, "failed to list medical records"))
		return
	}
	WriteJSON(w, http.StatusOK, Ok(records))
}

// ListByPatient handles GET /api/medical-records/patient/{patientId}.
func (h *MedicalRecordHandler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := idFromPath(r.URL.Path, "/api/medical-records/patient/")
	if !ok {
		WriteJSON(w, http.StatusBadRequest, Fail(CodeValidationError, "invalid patient id"))
		return
	}

	records, err := h.repo.FindByPatientID(r.Context(), patientID)
	if err != nil {
		h.logger.Error("list medical records by patient failed",
			zap.Int64("patient_id", patientID), zap.Error(err))
		WriteJSON(w, http.StatusInternalServerError, Fail(CodeInternalError, "failed to list medical records"))
		return
	}
	WriteJSON(w, http.StatusOK, Ok(records))
}

type createMedicalRecordRequest struct {
	PatientID   int64  `json:"patient_id"`
	Diagnostics string `json:"diagnostics"`
}

// Create handles POST /api/medical-records.
func (h *MedicalRecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMedicalRecordRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		WriteJSON(w, http.StatusBadRequest, Fail(CodeValidationError, "invalid request body"))
		return
	}
	if req.PatientID <= 0 {
		WriteJSON(w, http.StatusBadRequest, Fail(CodeValidationError, "patient_id is required"))
		return
	}
	if req.Diagnostics == "" {
		WriteJSON(w, http.StatusBadRequest, Fail(CodeValidationError, "diagnostics is required"))
		return
	}

	switch h.checker.ValidateExists(r.Context(), req.PatientID) {
	case service.ExistenceNotFound:
		WriteJSON(w, http.StatusUnprocessableEntity,
			Fail(CodeReferencedEntityNotFound, "referenced patient does not exist"))
		return
	case service.ExistenceUnavailable:
		WriteJSON(w, http.StatusServiceUnavailable,
			Fail(CodeDependencyUnavailable, "patient service temporarily unavailable, retry later"))
		return
	}

	stored, err := h.repo.Save(r.Context(), domain.MedicalRecord{
		PatientID:   req.PatientID,
		Diagnostics: req.Diagnostics,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		h.logger.Error("save medical record failed",
			zap.Int64("patient_id", req.PatientID), zap.Error(err))
		WriteJSON(w, http.StatusInternalServerError, Fail(CodeInternalError, "failed to save medical record"))
		return
	}

	h.logger.Info("medical record created",
		zap.Int64("record_id", stored.ID),
		zap.Int64("patient_id", stored.PatientID),
	)
	WriteJSON(w, http.StatusCreated, Ok(stored))
}
