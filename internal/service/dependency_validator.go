package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/domain"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/resilience"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/store"
)

// ExistenceResult is the exhaustive outcome of a dependency check.
type ExistenceResult int

const (
	// ExistenceConfirmed: the referenced patient exists; proceed to persist.
	ExistenceConfirmed ExistenceResult = iota
	// ExistenceNotFound: the remote definitively reported absence.
	ExistenceNotFound
	// ExistenceUnavailable: breaker rejected the call or retries were
	// exhausted; the caller should surface a retry-later error.
	ExistenceUnavailable
)

func (r ExistenceResult) String() string {
	switch r {
	case ExistenceConfirmed:
		return "confirmed"
	case ExistenceNotFound:
		return "not_found"
	case ExistenceUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// ExistenceChecker is what the create handlers depend on.
type ExistenceChecker interface {
	ValidateExists(ctx context.Context, patientID int64) ExistenceResult
}

// PatientFetcher is the remote call the validator wraps.
type PatientFetcher interface {
	GetPatient(ctx context.Context, patientID int64) (*domain.Patient, error)
}

// DependencyValidator answers "does patient X exist" for a write path,
// composing breaker -> retry -> client. Each retry attempt consumes one
// breaker permit/report cycle; a breaker rejection aborts the loop
// immediately (rejections are not retryable failures).
//
// A confirmed id is cached in the KV store with a short TTL. The check
// is point-in-time advisory either way, so a cached confirmation is as
// good as a fresh one; cache errors degrade to a miss.
type DependencyValidator struct {
	dependency string
	client     PatientFetcher
	breaker    *resilience.Breaker
	retry      resilience.RetryPolicy
	cache      store.KV
	cacheTTL   time.Duration
	logger     *zap.Logger
}

func NewDependencyValidator(
	dependency string,
	client PatientFetcher,
	breaker *resilience.Breaker,
	retry resilience.RetryPolicy,
	cache store.KV,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *DependencyValidator {
	if retry.RetryIf == nil {
		retry.RetryIf = IsTransportError
	}
	return &DependencyValidator{
		dependency: dependency,
		client:     client,
		breaker:    breaker,
		retry:      retry,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// ValidateExists returns exactly one of Confirmed, NotFound, Unavailable.
func (v *DependencyValidator) ValidateExists(ctx context.Context, patientID int64) ExistenceResult {
	cacheKey := fmt.Sprintf("%s:exists:%d", v.dependency, patientID)
	if v.cache != nil {
		if val, err := v.cache.Get(ctx, cacheKey); err == nil && val == "1" {
			return ExistenceConfirmed
		}
	}

	err := v.retry.Do(ctx, func(ctx context.Context) error {
		if err := v.breaker.Attempt(); err != nil {
			return err
		}
		_, err := v.client.GetPatient(ctx, patientID)
		switch {
		case err == nil:
			v.breaker.RecordSuccess()
			return nil
		case errors.Is(err, ErrPatientNotFound):
			// the dependency answered; that is a healthy call
			v.breaker.RecordSuccess()
			return err
		default:
			v.breaker.RecordFailure()
			return err
		}
	})

	switch {
	case err == nil:
		if v.cache != nil {
			if cerr := v.cache.Set(ctx, cacheKey, "1", v.cacheTTL); cerr != nil {
				v.logger.Debug("existence cache write failed", zap.Error(cerr))
			}
		}
		return ExistenceConfirmed
	case errors.Is(err, ErrPatientNotFound):
		return ExistenceNotFound
	default:
		v.logger.Warn("dependency unavailable",
			zap.String("dependency", v.dependency),
			zap.Int64("patient_id", patientID),
			zap.String("breaker_state", v.breaker.State().String()),
			zap.Error(err),
		)
		return ExistenceUnavailable
	}
}
