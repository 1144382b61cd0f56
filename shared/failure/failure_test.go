package failure_test

import (
	"errors"
	"fmt"
	"hotel/shared/failure"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("check_out_date must be after check_in_date")), code: http.StatusBadRequest, message: "check_out_date must be after check_in_date"},
		{name: "bad request from string", err: failure.BadRequestFromString("invalid date"), code: http.StatusBadRequest, message: "invalid date"},
		{name: "unauthorized", err: failure.Unauthorized("Token has expired"), code: http.StatusUnauthorized, message: "Token has expired"},
		{name: "forbidden", err: failure.Forbidden("cannot deactivate yourself"), code: http.StatusForbidden, message: "cannot deactivate yourself"},
		{name: "forbidden error", err: failure.ForbiddenError, code: http.StatusForbidden, message: "You don't have the required permissions"},
		{name: "not found", err: failure.NotFound("room not found"), code: http.StatusNotFound, message: "room not found"},
		{name: "conflict", err: failure.Conflict("room is already booked"), code: http.StatusConflict, message: "room is already booked"},
		{name: "custom", err: failure.New(http.StatusUnprocessableEntity, "nope"), code: http.StatusUnprocessableEntity, message: "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.message, tt.err.Error())
			assert.True(t, failure.IsFailure(tt.err))
		})
	}
}

func TestBadRequestNil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}

func TestGetCode(t *testing.T) {
	wrapped := fmt.Errorf("create booking: %w", failure.Conflict("room is already booked"))

	assert.Equal(t, http.StatusConflict, failure.GetCode(wrapped))
	assert.True(t, failure.IsFailure(wrapped))

	plain := errors.New("connection reset")

	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(plain))
	assert.False(t, failure.IsFailure(plain))
}

func TestFromPqError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantNil  bool
	}{
		{name: "unique violation", err: &pq.Error{Code: "23505", Constraint: "rooms_room_number_key"}, wantCode: http.StatusBadRequest},
		{name: "exclusion violation", err: fmt.Errorf("insert booking: %w", &pq.Error{Code: "23P01"}), wantCode: http.StatusConflict},
		{name: "serialization failure", err: &pq.Error{Code: "40001"}, wantCode: http.StatusConflict},
		{name: "check violation", err: &pq.Error{Code: "23514", Constraint: "bookings_dates_check"}, wantCode: http.StatusBadRequest},
		{name: "foreign key violation", err: &pq.Error{Code: "23503"}, wantCode: http.StatusBadRequest},
		{name: "other postgres error", err: &pq.Error{Code: "42P01"}, wantNil: true},
		{name: "plain error", err: errors.New("connection refused"), wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := failure.FromPqError(tt.err, "room is already booked")

			if tt.wantNil {
				assert.NoError(t, got)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(got))
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, failure.IsUniqueViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})))
	assert.False(t, failure.IsUniqueViolation(&pq.Error{Code: "23P01"}))
	assert.False(t, failure.IsUniqueViolation(errors.New("boom")))
}
