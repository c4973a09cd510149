package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError(BadHorizon, "end date precedes start date")
	assert.Equal(t, BadHorizon, err.Kind)
	assert.Contains(t, err.Error(), "BadHorizon")
	assert.Contains(t, err.Error(), "end date precedes start date")
}

func TestValidationError(t *testing.T) {
	err := NewValidationError(InvalidWorker, "fte out of range")
	assert.Equal(t, InvalidWorker, err.Kind)
	assert.Contains(t, err.Error(), "InvalidWorker")
}

func TestPreSolveInfeasible_Error(t *testing.T) {
	err := &PreSolveInfeasible{Issues: []FeasibilityIssue{
		{Severity: SeverityFatal, Kind: "NO_WORKERS", Message: "no active workers"},
		{Severity: SeverityWarn, Kind: "LOW_COVERAGE", Message: "ignored in message"},
	}}

	msg := err.Error()
	assert.Contains(t, msg, "2 issue(s)")
	assert.Contains(t, msg, "NO_WORKERS")
	assert.Contains(t, msg, "no active workers")
	assert.NotContains(t, msg, "ignored in message")
}

func TestBackendError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &BackendError{Message: "solver crashed", Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "solver crashed")
}

func TestBackendError_NoCause(t *testing.T) {
	err := &BackendError{Message: "solver crashed"}
	assert.Equal(t, "backend error: solver crashed", err.Error())
}

func TestKeyError(t *testing.T) {
	err := &KeyError{Kind: UnknownWorker, Key: "w99"}
	assert.Contains(t, err.Error(), "UnknownWorker")
	assert.Contains(t, err.Error(), "w99")
}

func TestCoreInvariantBroken(t *testing.T) {
	err := &CoreInvariantBroken{Description: "variable count mismatch"}
	assert.Contains(t, err.Error(), "variable count mismatch")
}
