package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/calendar/model"
	roomModel "hotel/internal/domains/room/model"
)

func date(value string) time.Time {
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}

	return parsed
}

func booking(id, roomID, checkIn, checkOut string, status bookingModel.Status) bookingModel.Booking {
	return bookingModel.Booking{
		ID:           id,
		RoomID:       roomID,
		GuestName:    "Guest " + id,
		CheckInDate:  date(checkIn),
		CheckOutDate: date(checkOut),
		Status:       status,
	}
}

func states(row model.Row) []model.State {
	res := make([]model.State, len(row.Cells))
	for i, cell := range row.Cells {
		res[i] = cell.State
	}

	return res
}

func TestBuildGrid(t *testing.T) {
	rooms := []roomModel.Room{
		{ID: "r1", RoomNumber: "101", Status: roomModel.StatusActive},
		{ID: "r2", RoomNumber: "102", Status: roomModel.StatusUnderMaintenance},
		{ID: "r3", RoomNumber: "103", Status: roomModel.StatusInactive},
		{ID: "r4", RoomNumber: "104", Status: roomModel.StatusActive},
	}

	bookings := []bookingModel.Booking{
		booking("b1", "r1", "2025-01-01", "2025-01-03", bookingModel.StatusCheckedOut),
		booking("b2", "r1", "2025-01-03", "2025-01-05", bookingModel.StatusCheckedIn),
		booking("b3", "r4", "2025-01-04", "2025-01-06", bookingModel.StatusConfirmed),
		booking("b4", "r4", "2025-01-01", "2025-01-03", bookingModel.StatusCancelled),
	}

	grid := model.BuildGrid(rooms, bookings, date("2025-01-01"), 5)

	require.Len(t, grid.Rows, 3)
	require.Len(t, grid.Dates, 5)
	assert.Equal(t, date("2025-01-05"), grid.Dates[4])

	assert.Equal(t, []model.State{
		model.StateDeparted, model.StateDeparted, model.StateOccupied, model.StateOccupied, model.StateAvailable,
	}, states(grid.Rows[0]))
	assert.Equal(t, []model.State{
		model.StateMaintenance, model.StateMaintenance, model.StateMaintenance, model.StateMaintenance, model.StateMaintenance,
	}, states(grid.Rows[1]))
	assert.Equal(t, []model.State{
		model.StateAvailable, model.StateAvailable, model.StateAvailable, model.StateBooked, model.StateBooked,
	}, states(grid.Rows[2]))

	arrival := grid.Rows[0].Cells[2]
	assert.True(t, arrival.IsArrival)
	require.NotNil(t, arrival.BookingID)
	assert.Equal(t, "b2", *arrival.BookingID)
	assert.Equal(t, "Guest b2", *arrival.GuestName)
	assert.False(t, grid.Rows[0].Cells[3].IsArrival)
	assert.Nil(t, grid.Rows[0].Cells[4].BookingID)

	wantTotals := []model.Total{
		{Date: date("2025-01-01"), Occupied: 1, Available: 1},
		{Date: date("2025-01-02"), Occupied: 1, Available: 1},
		{Date: date("2025-01-03"), Occupied: 1, Available: 1},
		{Date: date("2025-01-04"), Occupied: 2, Available: 0},
		{Date: date("2025-01-05"), Occupied: 1, Available: 1},
	}
	assert.Equal(t, wantTotals, grid.Totals)
}

func TestBuildGridWithoutRooms(t *testing.T) {
	grid := model.BuildGrid(nil, nil, date("2025-01-01"), 3)

	assert.Empty(t, grid.Rows)
	assert.Len(t, grid.Totals, 3)

	for _, total := range grid.Totals {
		assert.Zero(t, total.Occupied)
		assert.Zero(t, total.Available)
	}
}

func TestBuildGridCheckoutDayIsFree(t *testing.T) {
	rooms := []roomModel.Room{{ID: "r1", Status: roomModel.StatusActive}}
	bookings := []bookingModel.Booking{booking("b1", "r1", "2024-12-30", "2025-01-01", bookingModel.StatusConfirmed)}

	grid := model.BuildGrid(rooms, bookings, date("2025-01-01"), 1)

	assert.Equal(t, model.StateAvailable, grid.Rows[0].Cells[0].State)
}

func TestBuildGridBookingStartedBeforeWindowIsNotArrival(t *testing.T) {
	rooms := []roomModel.Room{{ID: "r1", Status: roomModel.StatusActive}}
	bookings := []bookingModel.Booking{booking("b1", "r1", "2024-12-30", "2025-01-02", bookingModel.StatusCheckedIn)}

	grid := model.BuildGrid(rooms, bookings, date("2025-01-01"), 1)

	cell := grid.Rows[0].Cells[0]
	assert.Equal(t, model.StateOccupied, cell.State)
	assert.False(t, cell.IsArrival)
}
