package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hotel/internal/domains/booking/model"
)

func date(value string) time.Time {
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}

	return parsed
}

func TestBooking_ReleasedCheckOut(t *testing.T) {
	booking := model.Booking{
		CheckInDate:  date("2025-01-10"),
		CheckOutDate: date("2025-01-15"),
	}

	tests := []struct {
		name string
		day  string
		want string
	}{
		{name: "leaves two nights early", day: "2025-01-13", want: "2025-01-13"},
		{name: "leaves on check-in day keeps one night", day: "2025-01-10", want: "2025-01-11"},
		{name: "leaves on the booked date", day: "2025-01-15", want: "2025-01-15"},
		{name: "overstay keeps the booked date", day: "2025-01-17", want: "2025-01-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, date(tt.want), booking.ReleasedCheckOut(date(tt.day)))
		})
	}
}

func TestStatus_Blocking(t *testing.T) {
	assert.True(t, model.StatusConfirmed.Blocking())
	assert.True(t, model.StatusCheckedIn.Blocking())
	assert.True(t, model.StatusCheckedOut.Blocking())
	assert.False(t, model.StatusCancelled.Blocking())
	assert.False(t, model.StatusNoShow.Blocking())
}
