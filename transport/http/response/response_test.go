package response_test

import (
	"errors"
	"fmt"
	"hotel/shared/failure"
	"hotel/transport/http/response"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type roomPayload struct {
	ID         string `json:"id"`
	RoomNumber string `json:"room_number"`
}

func TestWithJSON(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		send     func(w http.ResponseWriter, code int)
		wantBody string
	}{
		{
			name:     "struct",
			code:     http.StatusCreated,
			send:     func(w http.ResponseWriter, code int) { response.WithJSON(w, code, roomPayload{ID: "r1", RoomNumber: "101"}) },
			wantBody: `{"data":{"id":"r1","room_number":"101"}}`,
		},
		{
			name:     "struct pointer",
			code:     http.StatusOK,
			send:     func(w http.ResponseWriter, code int) { response.WithJSON(w, code, &roomPayload{ID: "r2"}) },
			wantBody: `{"data":{"id":"r2","room_number":""}}`,
		},
		{
			name:     "string",
			code:     http.StatusOK,
			send:     func(w http.ResponseWriter, code int) { response.WithJSON(w, code, "ok") },
			wantBody: `{"data":"ok"}`,
		},
		{
			name:     "map",
			code:     http.StatusOK,
			send:     func(w http.ResponseWriter, code int) { response.WithJSON(w, code, map[string]int{"a": 1}) },
			wantBody: `{"data":{"a":1}}`,
		},
		{
			name: "interface value",
			code: http.StatusOK,
			send: func(w http.ResponseWriter, code int) {
				var payload any = []string{"101", "102"}
				response.WithJSON(w, code, payload)
			},
			wantBody: `{"data":["101","102"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			assert.NotPanics(t, func() { tt.send(recorder, tt.code) })

			assert.Equal(t, tt.code, recorder.Code)
			assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, recorder.Body.String())
		})
	}
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "conflict failure",
			err:      failure.Conflict("room is already booked for the selected dates"),
			wantCode: http.StatusConflict,
			wantBody: `{"message":"room is already booked for the selected dates"}`,
		},
		{
			name:     "wrapped not found",
			err:      fmt.Errorf("get booking: %w", failure.NotFound("booking not found")),
			wantCode: http.StatusNotFound,
			wantBody: `{"message":"get booking: booking not found"}`,
		},
		{
			name:     "storage error is masked",
			err:      errors.New("pq: relation \"bookings\" does not exist"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"message":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			response.WithError(recorder, tt.err)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.JSONEq(t, tt.wantBody, recorder.Body.String())
		})
	}
}
