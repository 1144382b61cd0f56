package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingModel "hotel/internal/domains/booking/model"
	eventModel "hotel/internal/domains/eventbooking/model"
	expenseModel "hotel/internal/domains/expense/model"
	"hotel/internal/domains/report/model"
)

func date(value string) time.Time {
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}

	return parsed
}

func amount(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, amount(want).Equal(got), "want %s, got %s", want, got)
}

func stay(roomID, checkIn, checkOut, total, paid string, status bookingModel.Status) bookingModel.Booking {
	return bookingModel.Booking{
		ID:           roomID + checkIn,
		RoomID:       roomID,
		CheckInDate:  date(checkIn),
		CheckOutDate: date(checkOut),
		TotalAmount:  amount(total),
		AmountPaid:   amount(paid),
		Status:       status,
	}
}

func input(reportType model.Type) model.Input {
	inHouse := stay("r1", "2025-01-09", "2025-01-12", "3000", "1000", bookingModel.StatusCheckedIn)
	confirmed := stay("r2", "2025-01-30", "2025-02-03", "4000", "0", bookingModel.StatusConfirmed)

	return model.Input{
		From:        date("2025-01-01"),
		To:          date("2025-01-31"),
		Today:       date("2025-01-10"),
		Type:        reportType,
		ActiveRooms: 4,
		Stays:       []bookingModel.Booking{inHouse, confirmed},
		Arrivals: []bookingModel.Booking{
			inHouse,
			confirmed,
			stay("r3", "2025-01-15", "2025-01-16", "500", "0", bookingModel.StatusCancelled),
		},
		InHouse: []bookingModel.Booking{inHouse},
		Expenses: []expenseModel.Expense{
			{Category: expenseModel.CategoryUtilities, Amount: amount("1200")},
			{Category: expenseModel.CategoryUtilities, Amount: amount("300")},
			{Category: expenseModel.CategoryStaffSalaries, Amount: amount("2000")},
		},
		Events: []eventModel.EventBooking{
			{ID: "e1", Status: eventModel.StatusConfirmed},
			{ID: "e2", Status: eventModel.StatusCancelled},
		},
		EventChildren: eventModel.Children{
			Services: []eventModel.Service{
				{ID: "s1", EventBookingID: "e1", CustomerPrice: amount("10000"), VendorCost: amount("6000")},
				{ID: "s2", EventBookingID: "e2", CustomerPrice: amount("99999"), VendorCost: amount("1")},
			},
			CustomerPayments: []eventModel.CustomerPayment{
				{EventBookingID: "e1", Amount: amount("2500")},
			},
		},
	}
}

func TestOccupancyRate(t *testing.T) {
	tests := []struct {
		name     string
		occupied int
		active   int
		want     string
	}{
		{name: "no active rooms", occupied: 3, active: 0, want: "0"},
		{name: "empty", occupied: 0, active: 10, want: "0"},
		{name: "partial", occupied: 1, active: 3, want: "33.33"},
		{name: "full", occupied: 8, active: 8, want: "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertAmount(t, tt.want, model.OccupancyRate(tt.occupied, tt.active))
		})
	}
}

func TestOccupiedOnIsHalfOpen(t *testing.T) {
	bookings := []bookingModel.Booking{
		stay("r1", "2025-01-09", "2025-01-10", "0", "0", bookingModel.StatusCheckedIn),
		stay("r2", "2025-01-10", "2025-01-11", "0", "0", bookingModel.StatusCheckedIn),
		stay("r2", "2025-01-08", "2025-01-12", "0", "0", bookingModel.StatusCheckedIn),
	}

	assert.Equal(t, 1, model.OccupiedOn(bookings, date("2025-01-10")))
	assert.Equal(t, 2, model.OccupiedOn(bookings, date("2025-01-09")))
	assert.Equal(t, 0, model.OccupiedOn(bookings, date("2025-01-12")))
}

func TestBuildBoth(t *testing.T) {
	res := model.Build(input(model.TypeBoth))

	// r1 has 3 nights in the window, r2 has 2 of its 4
	assertAmount(t, "5000", res.Hotel.Revenue)
	assertAmount(t, "1000", res.Hotel.Collected)
	assertAmount(t, "4000", res.Hotel.Pending)

	assertAmount(t, "10000", res.Events.Revenue)
	assertAmount(t, "2500", res.Events.Collected)
	assertAmount(t, "7500", res.Events.Pending)

	assertAmount(t, "15000", res.Total.Revenue)
	assertAmount(t, "3500", res.Total.Collected)

	assertAmount(t, "1500", res.ExpensesByCategory[string(expenseModel.CategoryUtilities)])
	assertAmount(t, "6000", res.ExpensesByCategory[model.EventVendorCosts])
	assertAmount(t, "9500", res.TotalExpenses)
	assertAmount(t, "5500", res.Profit)

	assert.Equal(t, 1, res.BookingsByStatus[bookingModel.StatusCancelled])
	assert.Equal(t, 1, res.EventsByStatus[eventModel.StatusCancelled])

	assert.Equal(t, 1, res.Occupancy.OccupiedRooms)
	assertAmount(t, "25", res.Occupancy.Rate)
	assert.Equal(t, 5, res.Occupancy.RoomNights)
	assertAmount(t, "4.03", res.Occupancy.AverageRate)
}

func TestBuildHotelOnly(t *testing.T) {
	res := model.Build(input(model.TypeHotel))

	assertAmount(t, "0", res.Events.Revenue)
	assertAmount(t, "5000", res.Total.Revenue)
	assert.NotContains(t, res.ExpensesByCategory, model.EventVendorCosts)
	assertAmount(t, "3500", res.TotalExpenses)
	assertAmount(t, "1500", res.Profit)
	assert.Empty(t, res.EventsByStatus)
}

func TestBuildEventsOnly(t *testing.T) {
	res := model.Build(input(model.TypeEvents))

	assertAmount(t, "0", res.Hotel.Revenue)
	assertAmount(t, "10000", res.Total.Revenue)
	assertAmount(t, "6000", res.TotalExpenses)
	assertAmount(t, "4000", res.Profit)
	assert.Empty(t, res.BookingsByStatus)
	assert.Equal(t, 0, res.Occupancy.ActiveRooms)
}

func TestBuildWithoutRooms(t *testing.T) {
	in := input(model.TypeHotel)
	in.ActiveRooms = 0

	res := model.Build(in)

	assertAmount(t, "0", res.Occupancy.Rate)
	assertAmount(t, "0", res.Occupancy.AverageRate)
}

func TestBuildIsIdempotent(t *testing.T) {
	first := model.Build(input(model.TypeBoth))
	second := model.Build(input(model.TypeBoth))

	require.True(t, first.Profit.Equal(second.Profit))
	assert.Equal(t, first.BookingsByStatus, second.BookingsByStatus)
	assert.True(t, first.Total.Revenue.Equal(second.Total.Revenue))
}

func TestType(t *testing.T) {
	assert.True(t, model.TypeBoth.IncludesHotel())
	assert.True(t, model.TypeBoth.IncludesEvents())
	assert.False(t, model.TypeHotel.IncludesEvents())
	assert.False(t, model.TypeEvents.IncludesHotel())
	assert.False(t, model.Type("all").Valid())
}
