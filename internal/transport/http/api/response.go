package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"hrms/internal/domain/errs"
)

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     *Error `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func Success(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Created(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Message(w http.ResponseWriter, message, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Message: message, RequestID: requestID})
}

func Fail(w http.ResponseWriter, status int, code, message, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message}, RequestID: requestID})
}

func FailWithDetails(w http.ResponseWriter, status int, code, message string, details any, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message, Details: details}, RequestID: requestID})
}

// FailError maps a service error onto the HTTP status taxonomy. Anything
// outside the client-error set is logged and reported as a 500 without
// leaking its text.
func FailError(w http.ResponseWriter, err error, requestID string) {
	status, code := Classify(err)
	if errs.IsClientError(err) {
		slog.Debug("request rejected", "requestId", requestID, "code", code, "err", err)
	}
	switch {
	case status >= http.StatusInternalServerError:
		slog.Error("request failed", "requestId", requestID, "err", err)
		Fail(w, status, code, "internal server error", requestID)
	case errors.Is(err, errs.ErrInsufficientBalance):
		var shortfall *errs.InsufficientBalanceError
		if errors.As(err, &shortfall) {
			FailWithDetails(w, status, code, err.Error(), map[string]any{
				"leaveType": shortfall.Category,
				"available": shortfall.Available,
				"requested": shortfall.Requested,
			}, requestID)
			return
		}
		Fail(w, status, code, err.Error(), requestID)
	case errors.Is(err, errs.ErrValidation):
		var invalid *errs.ValidationError
		if errors.As(err, &invalid) && invalid.Field != "" {
			FailWithDetails(w, status, code, err.Error(), map[string]string{"field": invalid.Field, "reason": invalid.Reason}, requestID)
			return
		}
		Fail(w, status, code, err.Error(), requestID)
	default:
		Fail(w, status, code, err.Error(), requestID)
	}
}

// Classify returns the HTTP status and machine-readable code for err.
func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, errs.ErrInsufficientBalance):
		return http.StatusBadRequest, "insufficient_balance"
	case errors.Is(err, errs.ErrInvalidState):
		return http.StatusBadRequest, "invalid_state"
	case errors.Is(err, errs.ErrInvalidRange):
		return http.StatusBadRequest, "invalid_range"
	case errors.Is(err, errs.ErrAlreadyClockedIn):
		return http.StatusBadRequest, "already_clocked_in"
	case errors.Is(err, errs.ErrAlreadyClockedOut):
		return http.StatusBadRequest, "already_clocked_out"
	case errors.Is(err, errs.ErrNotClockedIn):
		return http.StatusBadRequest, "not_clocked_in"
	case errors.Is(err, errs.ErrDuplicateRecord):
		return http.StatusBadRequest, "duplicate_record"
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, errs.ErrStoreUnavailable):
		return http.StatusInternalServerError, "store_unavailable"
	}
	return http.StatusInternalServerError, "internal_error"
}
