package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("instance.json", underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "instance.json", parseErr.Path)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "instance.json")
}

func TestValidationErrorAggregatesFields(t *testing.T) {
	t.Parallel()

	err := NewValidationError("mac_addr", "must be a valid MAC address", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "mac_addr", validationErr.Field)
	require.Contains(t, validationErr.Message, "must be a valid MAC address")
}

func TestStepErrorIncludesStepContext(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("command failed")
	err := NewStepError("login iSCSI", underlying)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	require.Equal(t, "login iSCSI", stepErr.StepName)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "login iSCSI")
}

func TestCleanupErrorIncludesStepContext(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("device busy")
	err := NewCleanupError("prepare rootfs", underlying)

	var cleanupErr *CleanupError
	require.ErrorAs(t, err, &cleanupErr)
	require.Equal(t, "prepare rootfs", cleanupErr.StepName)
	require.True(t, stdErrors.Is(err, underlying))
}
