package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// StatusClientClosedRequest is answered when the caller went away before a
// script finished.
const StatusClientClosedRequest = 499

// ErrorResponse represents the API error response format
type ErrorResponse struct {
	Success   bool           `json:"success"`
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Code      string         `json:"code,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
}

// ErrorHandler renders errors as JSON responses. In debug mode internal
// messages and stack traces are exposed.
type ErrorHandler struct {
	logger *zap.Logger
	debug  bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *zap.Logger, debug bool) *ErrorHandler {
	return &ErrorHandler{logger: logger, debug: debug}
}

// Handle writes err to w. Nil is ignored.
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	status, resp := h.classify(err)
	resp.RequestID = middleware.GetReqID(r.Context())

	fields := []zap.Field{
		zap.String("error_type", resp.Type),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("request_id", resp.RequestID),
		zap.Error(err),
	}
	switch {
	case status >= 500:
		h.logger.Error("Request failed", fields...)
	case status == StatusClientClosedRequest:
		h.logger.Debug("Request cancelled", fields...)
	default:
		h.logger.Warn("Request rejected", fields...)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("Failed to encode error response", zap.Error(err))
	}
}

func (h *ErrorHandler) classify(err error) (int, ErrorResponse) {
	if appErr := GetAppError(err); appErr != nil {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		resp := ErrorResponse{
			Type:    string(appErr.Type),
			Message: appErr.Message,
			Code:    appErr.Code,
			Details: appErr.Details,
		}
		if h.debug && appErr.StackTrace != "" {
			details := make(map[string]any, len(resp.Details)+1)
			for k, v := range resp.Details {
				details[k] = v
			}
			details["stack_trace"] = appErr.StackTrace
			resp.Details = details
		}
		return status, resp
	}

	switch {
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, ErrorResponse{Type: "CANCELLED", Message: "request cancelled"}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ErrorResponse{Type: "TIMEOUT", Message: "script timed out"}
	}

	resp := ErrorResponse{Type: string(ErrorTypeInternal), Message: "An internal error occurred"}
	if h.debug {
		resp.Message = err.Error()
	}
	return http.StatusInternalServerError, resp
}
