package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := NewEndpointError("summary", &StatusError{Endpoint: "summary", StatusCode: 404, Body: "not found"})

	assert.True(t, errors.Is(err, ErrEndpoint))
	assert.False(t, errors.Is(err, ErrBackend))
}

func TestError_WrappedThroughFmt(t *testing.T) {
	err := fmt.Errorf("loading: %w", NewBackendError(errors.New("connection refused")))

	assert.True(t, errors.Is(err, ErrBackend))
}

func TestError_Format(t *testing.T) {
	err := WrapError(ErrConfigInvalid, errors.New("port out of range"))
	assert.Equal(t, "[CONFIG_INVALID] configuration invalid: port out of range", err.Error())

	assert.Equal(t, "[NOT_FOUND] not found", ErrNotFound.Error())
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{
			"endpoint",
			NewEndpointError("summary", &StatusError{Endpoint: "summary", StatusCode: 404, Body: "not found"}),
			"summary endpoint error: 404 - not found",
		},
		{
			"backend without body",
			NewBackendError(&StatusError{Endpoint: "health", StatusCode: 500}),
			"backend server error: 500",
		},
		{"plain", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.err))
		})
	}
}

func TestStatusOf(t *testing.T) {
	err := NewEndpointError("predictions", &StatusError{Endpoint: "predictions", StatusCode: 503, Body: " down \n"})

	se, ok := StatusOf(err)
	require.True(t, ok)
	assert.Equal(t, "predictions", se.Endpoint)
	assert.Equal(t, 503, se.StatusCode)
	assert.Equal(t, "503 - down", se.Error())

	_, ok = StatusOf(errors.New("other"))
	assert.False(t, ok)
}
