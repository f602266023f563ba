package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/domain/errs"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{errs.ErrNotFound, http.StatusNotFound},
		{errs.ErrUnauthorized, http.StatusUnauthorized},
		{fmt.Errorf("approve: %w", errs.ErrForbidden), http.StatusForbidden},
		{&errs.InsufficientBalanceError{Category: "Annual", Available: 1, Requested: 3}, http.StatusBadRequest},
		{errs.ErrInvalidState, http.StatusBadRequest},
		{errs.ErrInvalidRange, http.StatusBadRequest},
		{errs.ErrAlreadyClockedIn, http.StatusBadRequest},
		{errs.ErrAlreadyClockedOut, http.StatusBadRequest},
		{errs.ErrNotClockedIn, http.StatusBadRequest},
		{errs.ErrDuplicateRecord, http.StatusBadRequest},
		{errs.Invalid("email", "is required"), http.StatusBadRequest},
		{errs.ErrStoreUnavailable, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		status, _ := Classify(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
	}
}

func TestFailErrorHidesInternalText(t *testing.T) {
	rec := httptest.NewRecorder()
	FailError(rec, errors.New("pq: password authentication failed"), "req-1")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "internal server error", body.Error.Message)
	assert.Equal(t, "req-1", body.RequestID)
}

func TestFailErrorIncludesShortfall(t *testing.T) {
	rec := httptest.NewRecorder()
	FailError(rec, &errs.InsufficientBalanceError{Category: "Annual", Available: 1, Requested: 3}, "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Error struct {
			Code    string         `json:"code"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "insufficient_balance", body.Error.Code)
	assert.EqualValues(t, 1, body.Error.Details["available"])
	assert.EqualValues(t, 3, body.Error.Details["requested"])
}
