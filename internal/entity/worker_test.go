package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorker(t *testing.T) {
	w, err := NewWorker("w1", "Alice", "NURSE", 1.0, true, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "w1", w.ID)
	assert.False(t, w.IsRestrictedFrom("NIGHT"))
}

func TestNewWorker_EmptyID(t *testing.T) {
	_, err := NewWorker("", "Alice", "NURSE", 1.0, true, nil, nil, nil)
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, InvalidWorker, verr.Kind)
}

func TestNewWorker_FTEOutOfRange(t *testing.T) {
	_, err := NewWorker("w1", "Alice", "NURSE", 0, true, nil, nil, nil)
	require.Error(t, err)

	_, err = NewWorker("w1", "Alice", "NURSE", 1.5, true, nil, nil, nil)
	require.Error(t, err)
}

func TestNewWorker_RestrictedPreferredOverlap(t *testing.T) {
	_, err := NewWorker("w1", "Alice", "NURSE", 1.0, true, []string{"NIGHT"}, []string{"NIGHT"}, nil)
	require.Error(t, err)
}

func TestWorker_IsRestrictedFrom(t *testing.T) {
	w, err := NewWorker("w1", "Alice", "NURSE", 1.0, true, []string{"NIGHT", "ON_CALL"}, nil, nil)
	require.NoError(t, err)

	assert.True(t, w.IsRestrictedFrom("NIGHT"))
	assert.True(t, w.IsRestrictedFrom("ON_CALL"))
	assert.False(t, w.IsRestrictedFrom("DAY"))
}
