package exporter

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgumentError(t *testing.T) {
	err := NewNilCustomersError()

	assert.Equal(t, "argument is nil: `customers`", err.Error())
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.NotErrorIs(t, err, ErrInvalidConfig)

	wrapped := fmt.Errorf("failed to export: %w", err)
	var argErr *ArgumentError
	assert.True(t, errors.As(wrapped, &argErr))
	assert.Equal(t, "customers", argErr.Param)
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Field: "batch_size", Value: 0, Reason: "must be greater than zero"}

	assert.Equal(t, "invalid batch_size (0): must be greater than zero", err.Error())
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.NotErrorIs(t, err, ErrInvalidArgument)
}
