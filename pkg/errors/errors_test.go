package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		check  func(error) bool
		status int
	}{
		{"invalid argument", NewInvalidArgumentError("bad"), IsInvalidArgument, http.StatusBadRequest},
		{"not found", NewNotFoundError("image 'x.png'"), IsNotFound, http.StatusNotFound},
		{"type mismatch", NewTypeMismatchError("wrong type"), IsTypeMismatch, http.StatusUnprocessableEntity},
		{"unsupported", NewUnsupportedOperationError("delete", "model"), IsUnsupported, http.StatusMethodNotAllowed},
		{"conflict", NewConflictError("busy"), IsConflict, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.NotEmpty(t, tt.err.StackTrace)

			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.True(t, tt.check(wrapped), "predicate must see through wrapping")
		})
	}
}

func TestNotFoundMessage(t *testing.T) {
	err := NewNotFoundError("specialization 'Special'")
	assert.Equal(t, "NOT_FOUND: specialization 'Special' not found", err.Error())
}

func TestWithDetails(t *testing.T) {
	err := NewValidationError("bad body").WithDetails(map[string]any{"fields": map[string]any{"name": "name is required"}})
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Details, "fields")
}

func TestErrorHandler_Handle(t *testing.T) {
	h := NewErrorHandler(zap.NewNop(), false)

	t.Run("app error keeps its status", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)

		h.Handle(rec, req, NewTypeMismatchError("declared for node"))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, "TYPE_MISMATCH", body.Type)
		assert.Equal(t, "declared for node", body.Message)
	})

	t.Run("plain error is hidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)

		h.Handle(rec, req, fmt.Errorf("secret detail"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "secret detail")
	})

	t.Run("context errors", func(t *testing.T) {
		tests := []struct {
			err    error
			status int
			typ    string
		}{
			{fmt.Errorf("run: %w", context.Canceled), StatusClientClosedRequest, "CANCELLED"},
			{context.DeadlineExceeded, http.StatusGatewayTimeout, "TIMEOUT"},
		}
		for _, tt := range tests {
			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodPost, "/x", nil), tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.typ, body.Type)
		}
	})

	t.Run("debug exposes stack and keeps details", func(t *testing.T) {
		debug := NewErrorHandler(zap.NewNop(), true)
		appErr := NewValidationError("bad").WithDetails(map[string]any{"fields": "x"})

		rec := httptest.NewRecorder()
		debug.Handle(rec, httptest.NewRequest(http.MethodGet, "/x", nil), appErr)

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "x", body.Details["fields"])
		assert.NotEmpty(t, body.Details["stack_trace"])
		assert.NotContains(t, appErr.Details, "stack_trace", "the error itself is not mutated")
	})
}
