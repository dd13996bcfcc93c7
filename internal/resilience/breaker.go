package resilience

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrOpen is returned by Attempt when the circuit is open and the call
// must be rejected without touching the network.
var ErrOpen = errors.New("circuit breaker is open")

// BreakerState represents the circuit breaker state.
type BreakerState int

const (
	StateClosed   BreakerState = iota // normal operation, failures counted
	StateOpen                         // calls rejected immediately
	StateHalfOpen                     // a single probe call allowed
)

func (s BreakerState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Breaker guards one named dependency. Every Attempt that returns nil
// hands out a permit and MUST be paired with exactly one RecordSuccess
// or RecordFailure once the permitted call completes.
//
// The OPEN -> HALF_OPEN transition happens lazily on the next Attempt
// after openTimeout has elapsed; there is no background timer. While a
// half-open probe is in flight all other Attempts are rejected.
type Breaker struct {
	name             string
	failureThreshold int
	openTimeout      time.Duration
	logger           *zap.Logger
	now              func() time.Time

	mu       sync.Mutex
	state    BreakerState
	failures int
	openedAt time.Time
	probing  bool
}

func NewBreaker(name string, failureThreshold int, openTimeout time.Duration, logger *zap.Logger) *Breaker {
	if failureThreshold <= 0 {
		failureThreshold = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Breaker{
		name:             name,
		failureThreshold: failureThreshold,
		openTimeout:      openTimeout,
		logger:           logger,
		now:              time.Now,
		state:            StateClosed,
	}
}

// Attempt reports whether a call may proceed. nil means a permit was
// granted; ErrOpen means the call is rejected without a network attempt.
func (b *Breaker) Attempt() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		return nil
	case StateOpen:
		if b.now().Sub(b.openedAt) < b.openTimeout {
			return ErrOpen
		}
		b.transition(StateHalfOpen)
		b.probing = true
		return nil
	case StateHalfOpen:
		if b.probing {
			// one probe at a time
			return ErrOpen
		}
		b.probing = true
		return nil
	}
	return ErrOpen
}

// RecordSuccess reports a permitted call that succeeded. Any success
// resets the failure count and closes the circuit.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures = 0
	b.probing = false
	if b.state != StateClosed {
		b.transition(StateClosed)
	}
}

// RecordFailure reports a permitted call that failed. A failed probe
// reopens the circuit and restarts the open timeout; in closed state
// the circuit opens once failures reach the threshold.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateHalfOpen {
		b.probing = false
		b.openedAt = b.now()
		b.transition(StateOpen)
		return
	}

	b.failures++
	if b.state == StateClosed && b.failures >= b.failureThreshold {
		b.openedAt = b.now()
		b.transition(StateOpen)
	}
}

// State returns the current state.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Reset forces the breaker back to closed with a clean failure count.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.probing = false
	if b.state != StateClosed {
		b.transition(StateClosed)
	}
}

// transition must be called with b.mu held.
func (b *Breaker) transition(to BreakerState) {
	from := b.state
	b.state = to
	b.logger.Info("circuit breaker state change",
		zap.String("dependency", b.name),
		zap.String("from", from.String()),
		zap.String("to", to.String()),
	)
}
