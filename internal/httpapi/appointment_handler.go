package httpapi

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/domain"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/repository"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/service"
)

// AppointmentHandler serves the appointment-service surface. Create
// validates the referenced patient against patient-service before
// persisting; the other operations are local reads.
type AppointmentHandler struct {
	repo    repository.AppointmentsRepository
	checker service.ExistenceChecker
	logger  *zap.Logger
}

func NewAppointmentHandler(repo repository.AppointmentsRepository, checker service.ExistenceChecker, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{repo: repo, checker: checker, logger: logger}
}

// List handles GET /api/appointments.
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.repo.FindAll(r.Context())
	if err != nil {
		h.logger.Error("list appointments failed", zap.Error(err))
		WriteJSON(w, http.StatusInternalServerError, Fail(CodeInternalError, "failed to list appointments"))
		return
	}
	WriteJSON(w, http.StatusOK, Ok(appointments))
}

// ListByPatient handles GET /api/appointments/patient/{patientId}.
func (h *AppointmentHandler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := idFromPath(r.URL.Path, "/api/appointments/patient/")
	if !ok {
		WriteJSON(w, http.StatusBadRequest, Fail(CodeValidationError, "invalid patient id"))
		return
	}

	appointments, err := h.repo.FindByPatientID(r.Context(), patientID)
	if err != nil {
		h.logger.Error("list appointments by patient failed",
			zap.Int64("patient_id", patientID), zap.Error(err))
		WriteJSON(w, http.StatusInternalServerError, Fail(CodeInternalError, "failed to list appointments"))
		return
	}
	WriteJSON(w, http.StatusOK, Ok(appointments))
}

type createAppointmentRequest struct {
	ScheduledAt time.Time `json:"scheduled_at"`
	PatientID   int64     `json:"patient_id"`
}

// Create handles POST /api/appointments. Outcomes are exhaustive:
// 201 with the stored entity, 422 referenced_entity_not_found, or
// 503 dependency_unavailable.
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAppointmentRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		WriteJSON(w, http.StatusBadRequest, Fail(CodeValidationError, "invalid request body"))
		return
	}
	if req.PatientID <= 0 {
		WriteJSON(w, http.StatusBadRequest, Fail(CodeValidationError, "patient_id is required"))
		return
	}
	if req.ScheduledAt.IsZero() {
		WriteJSON(w, http.StatusBadRequest, Fail(CodeValidationError, "scheduled_at is required"))
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

	stored, err := h.repo.Save(r.Context(), domain.Appointment{
		ScheduledAt: req.ScheduledAt,
		PatientID:   req.PatientID,
	})
	if err != nil {
		h.logger.Error("save appointment failed",
			zap.Int64("patient_id", req.PatientID), zap.Error(err))
		WriteJSON(w, http.StatusInternalServerError, Fail(CodeInternalError, "failed to save appointment"))
		return
	}

	h.logger.Info("appointment created",
		zap.Int64("appointment_id", stored.ID),
		zap.Int64("patient_id", stored.PatientID),
	)
	WriteJSON(w, http.StatusCreated, Ok(stored))
}
