// Package model folds the booking, expense and event ledgers into the dashboard
// figures. Every function is pure: the same records and window give the same report.
package model

import (
	"hotel/internal/domains/booking/ledger"
	bookingModel "hotel/internal/domains/booking/model"
	eventModel "hotel/internal/domains/eventbooking/model"
	expenseModel "hotel/internal/domains/expense/model"
	"hotel/shared/money"
	"hotel/shared/timezone"
	"time"

	"github.com/shopspring/decimal"
)

// EventVendorCosts is the expense line under which event vendor costs are reported.
const EventVendorCosts = "Event Vendor Costs"

type Type string

const (
	TypeHotel  Type = "hotel"
	TypeEvents Type = "events"
	TypeBoth   Type = "both"
)

func (t Type) Valid() bool {
	return t == TypeHotel || t == TypeEvents || t == TypeBoth
}

func (t Type) IncludesHotel() bool {
	return t == TypeHotel || t == TypeBoth
}

func (t Type) IncludesEvents() bool {
	return t == TypeEvents || t == TypeBoth
}

// Input is everything a dashboard is computed from.
type Input struct {
	From        time.Time
	To          time.Time
	Today       time.Time
	Type        Type
	ActiveRooms int
	// Stays are the blocking bookings with at least one night in the window.
	Stays []bookingModel.Booking
	// Arrivals are the bookings of any status checking in inside the window.
	Arrivals []bookingModel.Booking
	// InHouse are the Checked In bookings.
	InHouse       []bookingModel.Booking
	Expenses      []expenseModel.Expense
	Events        []eventModel.EventBooking
	EventChildren eventModel.Children
}

type Revenue struct {
	Revenue   decimal.Decimal
	Collected decimal.Decimal
	Pending   decimal.Decimal
}

func (r Revenue) plus(other Revenue) Revenue {
	return Revenue{
		Revenue:   money.Round(r.Revenue.Add(other.Revenue)),
		Collected: money.Round(r.Collected.Add(other.Collected)),
		Pending:   money.Round(r.Pending.Add(other.Pending)),
	}
}

type Occupancy struct {
	ActiveRooms   int
	OccupiedRooms int
	Rate          decimal.Decimal
	RoomNights    int
	AverageRate   decimal.Decimal
}

type Report struct {
	From               time.Time
	To                 time.Time
	Type               Type
	Total              Revenue
	Hotel              Revenue
	Events             Revenue
	Occupancy          Occupancy
	BookingsByStatus   map[bookingModel.Status]int
	EventsByStatus     map[eventModel.Status]int
	ExpensesByCategory map[string]decimal.Decimal
	TotalExpenses      decimal.Decimal
	Profit             decimal.Decimal
}

// OccupancyRate is occupied/active*100, and zero when there are no active rooms.
func OccupancyRate(occupied, active int) decimal.Decimal {
	if active <= 0 {
		return money.Zero
	}

	return money.Percent(decimal.NewFromInt(int64(occupied)), decimal.NewFromInt(int64(active)))
}

// OccupiedOn counts the rooms held on date by bookings whose [check_in, check_out)
// contains it. A room is counted once.
func OccupiedOn(bookings []bookingModel.Booking, date time.Time) int {
	date = timezone.DateOf(date)
	rooms := make(map[string]struct{})

	for _, booking := range bookings {
		if ledger.Overlaps(booking.CheckInDate, booking.CheckOutDate, date, date.AddDate(0, 0, 1)) {
			rooms[booking.RoomID] = struct{}{}
		}
	}

	return len(rooms)
}

// Build folds the input into a dashboard. Sections excluded by the type filter stay zero.
func Build(in Input) Report {
	res := Report{
		From:               in.From,
		To:                 in.To,
		Type:               in.Type,
		Total:              zeroRevenue(),
		Hotel:              zeroRevenue(),
		Events:             zeroRevenue(),
		BookingsByStatus:   map[bookingModel.Status]int{},
		EventsByStatus:     map[eventModel.Status]int{},
		ExpensesByCategory: map[string]decimal.Decimal{},
		TotalExpenses:      money.Zero,
		Occupancy:          Occupancy{Rate: money.Zero, AverageRate: money.Zero},
	}

	if in.Type.IncludesHotel() {
		res.Hotel, res.Occupancy = hotel(in)

		for _, booking := range in.Arrivals {
			res.BookingsByStatus[booking.Status]++
		}

		for _, expense := range in.Expenses {
			category := string(expense.Category)
			res.ExpensesByCategory[category] = res.ExpensesByCategory[category].Add(expense.Amount)
		}
	}

	if in.Type.IncludesEvents() {
		var vendorCost decimal.Decimal

		res.Events, vendorCost = events(in)

		for _, event := range in.Events {
			res.EventsByStatus[event.Status]++
		}

		res.ExpensesByCategory[EventVendorCosts] = vendorCost
	}

	for category, amount := range res.ExpensesByCategory {
		res.ExpensesByCategory[category] = money.Round(amount)
		res.TotalExpenses = res.TotalExpenses.Add(amount)
	}

	res.TotalExpenses = money.Round(res.TotalExpenses)
	res.Total = res.Hotel.plus(res.Events)
	res.Profit = money.Round(res.Total.Revenue.Sub(res.TotalExpenses))

	return res
}

func hotel(in Input) (Revenue, Occupancy) {
	revenue := zeroRevenue()
	roomNights := 0

	for _, booking := range in.Stays {
		share := ledger.RevenueInWindow(ledger.StayOf(booking), in.From, in.To)

		revenue = revenue.plus(Revenue{Revenue: share.Revenue, Collected: share.Collected, Pending: share.Pending})
		roomNights += share.RoomNights
	}

	occupied := OccupiedOn(in.InHouse, in.Today)
	days := ledger.Nights(in.From, in.To) + 1

	return revenue, Occupancy{
		ActiveRooms:   in.ActiveRooms,
		OccupiedRooms: occupied,
		Rate:          OccupancyRate(occupied, in.ActiveRooms),
		RoomNights:    roomNights,
		AverageRate:   OccupancyRate(roomNights, in.ActiveRooms*days),
	}
}

// events folds the non-cancelled events and returns their revenue and vendor cost.
func events(in Input) (Revenue, decimal.Decimal) {
	revenue := zeroRevenue()
	vendorCost := money.Zero

	for _, event := range in.Events {
		if event.Status == eventModel.StatusCancelled {
			continue
		}

		financials := in.EventChildren.Of(event.ID).Financials()

		revenue = revenue.plus(Revenue{
			Revenue:   financials.TotalCustomerPrice,
			Collected: financials.TotalCollected,
			Pending:   financials.CustomerPending,
		})
		vendorCost = vendorCost.Add(financials.TotalVendorCost)
	}

	return revenue, money.Round(vendorCost)
}

func zeroRevenue() Revenue {
	return Revenue{Revenue: money.Zero, Collected: money.Zero, Pending: money.Zero}
}
