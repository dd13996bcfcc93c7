package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/domain"
)

// ErrPatientNotFound is the definitive business answer from
// patient-service: the id does not exist. Never retried.
var ErrPatientNotFound = errors.New("patient not found")

// TransportError marks a retryable remote failure: timeout, connection
// error, or a non-2xx/non-404 status.
type TransportError struct {
	StatusCode int
	Cause      error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("patient-service transport failure: %v", e.Cause)
	}
	return fmt.Sprintf("patient-service transport failure: status %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// IsTransportError reports whether err is a retryable transport failure.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// patientEnvelope matches the Result wrapper patient-service responds with.
type patientEnvelope struct {
	Code   string         `json:"code"`
	Result domain.Patient `json:"result"`
}

// PatientClient fetches one patient by id from patient-service. Each
// call is exactly one outbound request with a bounded timeout; retries
// belong to the caller's RetryPolicy, not to the client.
type PatientClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

func NewPatientClient(baseURL string, timeout time.Duration, logger *zap.Logger) *PatientClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &PatientClient{
		httpClient: client,
		logger:     logger,
	}
}

// GetPatient returns the patient, ErrPatientNotFound on a definitive
// 404, or a *TransportError for anything else.
func (c *PatientClient) GetPatient(ctx context.Context, patientID int64) (*domain.Patient, error) {
	var envelope patientEnvelope
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&envelope).
		Get(fmt.Sprintf("/api/patients/%d", patientID))

	if err != nil {
		c.logger.Warn("patient-service call failed",
			zap.Int64("patient_id", patientID),
			zap.Error(err),
		)
		return nil, &TransportError{Cause: err}
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, ErrPatientNotFound
	case resp.IsSuccess():
		return &envelope.Result, nil
	default:
		c.logger.Warn("patient-service returned unexpected status",
			zap.Int64("patient_id", patientID),
			zap.Int("status_code", resp.StatusCode()),
		)
		return nil, &TransportError{StatusCode: resp.StatusCode()}
	}
}
