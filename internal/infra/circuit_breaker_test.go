package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRelay = errors.New("relay down")

func fail() error   { return errRelay }
func sendOK() error { return nil }

func TestCircuitBreaker_AbreTrasFallosConsecutivos(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, SuccessThreshold: 1, OpenTimeout: time.Minute})

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(fail), errRelay)
	}

	assert.Equal(t, CBOpen, cb.State())
	assert.ErrorIs(t, cb.Execute(sendOK), ErrCircuitOpen)
}

func TestCircuitBreaker_ExitoResetea(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, SuccessThreshold: 1, OpenTimeout: time.Minute})

	require.Error(t, cb.Execute(fail))
	require.Error(t, cb.Execute(fail))
	require.NoError(t, cb.Execute(sendOK))

	// counter reset: two more failures should not trip it
	require.Error(t, cb.Execute(fail))
	require.Error(t, cb.Execute(fail))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_RecuperaPorHalfOpen(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, SuccessThreshold: 2, OpenTimeout: 10 * time.Millisecond})

	require.Error(t, cb.Execute(fail))
	require.Equal(t, CBOpen, cb.State())

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, CBHalfOpen, cb.State())

	require.NoError(t, cb.Execute(sendOK))
	assert.Equal(t, CBHalfOpen, cb.State(), "one success is not enough to close")
	require.NoError(t, cb.Execute(sendOK))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_ProbeFallidoReabre(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, SuccessThreshold: 1, OpenTimeout: 10 * time.Millisecond})

	require.Error(t, cb.Execute(fail))
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	require.Error(t, cb.Execute(fail))
	assert.Equal(t, CBOpen, cb.State())
	assert.ErrorIs(t, cb.Execute(sendOK), ErrCircuitOpen)
}

func TestCircuitBreaker_ConfigInvalidaUsaDefaults(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{})

	def := DefaultCBConfig()
	assert.Equal(t, def.FailureThreshold, cb.cfg.FailureThreshold)
	assert.Equal(t, def.SuccessThreshold, cb.cfg.SuccessThreshold)
	assert.Equal(t, def.OpenTimeout, cb.cfg.OpenTimeout)
	assert.Equal(t, "closed", cb.State().String())
}
