package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	t.Run("Error includes wrapped error", func(t *testing.T) {
		err := Internal("finalize failed", errors.New("tx aborted"))
		assert.Equal(t, "finalize failed: tx aborted", err.Error())
	})

	t.Run("Is matches code", func(t *testing.T) {
		a := Conflict("ALREADY_PAID", "listing fee already paid")
		b := Conflict("ALREADY_PAID", "other message")
		assert.True(t, errors.Is(a, b))
		assert.False(t, errors.Is(a, Conflict("INVALID_TRANSITION", "")))
	})

	t.Run("renders details", func(t *testing.T) {
		err := ValidationError("bad days").WithDetails(map[string]any{"allowed": []int{7, 14, 30}})
		resp := err.ToResponse()
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		assert.Equal(t, "bad days", resp.Error.Message)
		assert.Contains(t, resp.Error.Details, "allowed")
	})
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
		class  error
	}{
		{"not found", NotFound("payment"), "NOT_FOUND", http.StatusNotFound, ErrNotFound},
		{"unauthorized", Unauthorized(""), "UNAUTHORIZED", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", Forbidden(""), "FORBIDDEN", http.StatusForbidden, ErrForbidden},
		{"validation", ValidationError("x"), "VALIDATION_ERROR", http.StatusBadRequest, ErrBadRequest},
		{"conflict default code", Conflict("", "x"), "CONFLICT", http.StatusConflict, ErrConflict},
		{"bad gateway", BadGateway("GATEWAY_REJECTED", "x"), "GATEWAY_REJECTED", http.StatusBadGateway, ErrBadGateway},
		{"unavailable", ServiceUnavailable("", ""), "SERVICE_UNAVAILABLE", http.StatusServiceUnavailable, ErrServiceUnavail},
		{"rate limited", RateLimited(""), "RATE_LIMITED", http.StatusTooManyRequests, ErrRateLimited},
		{"internal", Internal("x", nil), "INTERNAL_ERROR", http.StatusInternalServerError, ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.StatusCode)
			assert.ErrorIs(t, tt.err, tt.class)
			assert.Equal(t, tt.status, StatusOf(tt.err))
		})
	}

	assert.Equal(t, "payment not found", NotFound("payment").Message)
	assert.Equal(t, "authentication required", Unauthorized("").Message)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusConflict, StatusOf(ErrConflict))
	assert.Equal(t, http.StatusBadGateway, StatusOf(fmt.Errorf("initialize: %w", ErrBadGateway)))
	assert.Equal(t, http.StatusNotFound, StatusOf(fmt.Errorf("lookup: %w", NotFound("listing"))))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("unknown")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(Internal("boom", errors.New("tx aborted"))))
}
