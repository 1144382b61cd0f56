package model

import (
	bookingModel "hotel/internal/domains/booking/model"
	roomModel "hotel/internal/domains/room/model"
	"time"
)

const (
	DefaultDays = 14
	MaxDays     = 62
)

type State string

const (
	StateAvailable   State = "available"
	StateBooked      State = "booked"
	StateOccupied    State = "occupied"
	StateDeparted    State = "departed"
	StateMaintenance State = "maintenance"
)

// Taken reports whether the cell counts against availability.
func (s State) Taken() bool {
	return s == StateBooked || s == StateOccupied || s == StateDeparted
}

func stateOf(status bookingModel.Status) State {
	switch status {
	case bookingModel.StatusCheckedIn:
		return StateOccupied
	case bookingModel.StatusCheckedOut:
		return StateDeparted
	default:
		return StateBooked
	}
}

type Cell struct {
	Date      time.Time
	State     State
	BookingID *string
	GuestName *string
	IsArrival bool
}

type Row struct {
	Room  roomModel.Room
	Cells []Cell
}

type Total struct {
	Date      time.Time
	Occupied  int
	Available int
}

type Grid struct {
	Start  time.Time
	Days   int
	Dates  []time.Time
	Rows   []Row
	Totals []Total
}

// BuildGrid lays bookings over a room by date grid starting at start. Inactive rooms are left
// out and only blocking bookings fill cells. A booking covers the nights [check_in, check_out).
func BuildGrid(rooms []roomModel.Room, bookings []bookingModel.Booking, start time.Time, days int) Grid {
	grid := Grid{
		Start:  start,
		Days:   days,
		Dates:  make([]time.Time, days),
		Rows:   []Row{},
		Totals: make([]Total, days),
	}

	for i := range days {
		grid.Dates[i] = start.AddDate(0, 0, i)
		grid.Totals[i] = Total{Date: grid.Dates[i]}
	}

	byRoom := map[string][]bookingModel.Booking{}

	for _, booking := range bookings {
		if booking.Status.Blocking() {
			byRoom[booking.RoomID] = append(byRoom[booking.RoomID], booking)
		}
	}

	for _, room := range rooms {
		if room.Status == roomModel.StatusInactive {
			continue
		}

		row := Row{Room: room, Cells: make([]Cell, days)}

		for i, date := range grid.Dates {
			row.Cells[i] = cellOf(room, byRoom[room.ID], date)

			switch {
			case row.Cells[i].State.Taken():
				grid.Totals[i].Occupied++
			case row.Cells[i].State == StateAvailable:
				grid.Totals[i].Available++
			}
		}

		grid.Rows = append(grid.Rows, row)
	}

	return grid
}

func cellOf(room roomModel.Room, bookings []bookingModel.Booking, date time.Time) Cell {
	if room.Status == roomModel.StatusUnderMaintenance {
		return Cell{Date: date, State: StateMaintenance}
	}

	for _, booking := range bookings {
		if date.Before(booking.CheckInDate) || !date.Before(booking.CheckOutDate) {
			continue
		}

		return Cell{
			Date:      date,
			State:     stateOf(booking.Status),
			BookingID: &booking.ID,
			GuestName: &booking.GuestName,
			IsArrival: date.Equal(booking.CheckInDate),
		}
	}

	return Cell{Date: date, State: StateAvailable}
}
