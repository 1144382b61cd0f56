package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/infras/otel/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/calendar/model"
	"hotel/internal/domains/calendar/model/dto"
	"hotel/internal/domains/calendar/service"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/failure"
	"hotel/shared/timezone"
)

func date(value string) time.Time {
	parsed, err := timezone.ParseDate(value)
	if err != nil {
		panic(err)
	}

	return parsed
}

func intPtr(value int) *int {
	return &value
}

func newService(t *testing.T) (service.Calendar, *roomMocks.MockRoom, *bookingMocks.MockBooking) {
	t.Helper()

	ctrl := gomock.NewController(t)
	rooms := roomMocks.NewMockRoom(ctrl)
	bookings := bookingMocks.NewMockBooking(ctrl)

	return service.New(rooms, bookings, mocks.NewOtel()), rooms, bookings
}

func TestGrid(t *testing.T) {
	svc, rooms, bookings := newService(t)

	rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]roomModel.Room{{ID: "r1", RoomNumber: "101", RoomType: roomModel.RoomTypeDeluxe, Status: roomModel.StatusActive}}, nil)
	bookings.EXPECT().GetOverlapping(gomock.Any(), date("2025-01-01"), date("2025-01-03")).
		Return([]bookingModel.Booking{{
			ID:           "b1",
			RoomID:       "r1",
			GuestName:    "Asha",
			CheckInDate:  date("2025-01-02"),
			CheckOutDate: date("2025-01-04"),
			Status:       bookingModel.StatusConfirmed,
		}}, nil)

	res, err := svc.Grid(context.Background(), dto.GridRequest{Start: "2025-01-01", Days: intPtr(3)})
	require.NoError(t, err)

	assert.Equal(t, "2025-01-01", res.Start)
	assert.Equal(t, "2025-01-03", res.End)
	assert.Equal(t, []string{"2025-01-01", "2025-01-02", "2025-01-03"}, res.Dates)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "101", res.Rows[0].Room.RoomNumber)
	assert.Equal(t, model.StateAvailable, res.Rows[0].Cells[0].State)
	assert.Equal(t, model.StateBooked, res.Rows[0].Cells[1].State)
	assert.True(t, res.Rows[0].Cells[1].IsArrival)
	assert.Equal(t, "Asha", *res.Rows[0].Cells[2].GuestName)
	assert.Equal(t, dto.TotalResponse{Date: "2025-01-02", Occupied: 1, Available: 0}, res.Totals[1])
}

func TestGridDefaults(t *testing.T) {
	svc, rooms, bookings := newService(t)

	today := timezone.Today()

	rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	bookings.EXPECT().GetOverlapping(gomock.Any(), today, today.AddDate(0, 0, model.DefaultDays-1)).Return(nil, nil)

	res, err := svc.Grid(context.Background(), dto.GridRequest{})
	require.NoError(t, err)

	assert.Equal(t, model.DefaultDays, res.Days)
	assert.Len(t, res.Totals, model.DefaultDays)
	assert.Empty(t, res.Rows)
}

func TestGridRejectsInvalidRequest(t *testing.T) {
	tests := []struct {
		name string
		req  dto.GridRequest
	}{
		{name: "zero days", req: dto.GridRequest{Days: intPtr(0)}},
		{name: "too many days", req: dto.GridRequest{Days: intPtr(model.MaxDays + 1)}},
		{name: "bad start", req: dto.GridRequest{Start: "01/02/2025"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newService(t)

			_, err := svc.Grid(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestGridRoomError(t *testing.T) {
	svc, rooms, _ := newService(t)

	rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	_, err := svc.Grid(context.Background(), dto.GridRequest{})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}
