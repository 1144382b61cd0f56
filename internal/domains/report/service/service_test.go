package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/infras/otel/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	eventMocks "hotel/internal/domains/eventbooking/mocks"
	eventModel "hotel/internal/domains/eventbooking/model"
	expenseMocks "hotel/internal/domains/expense/mocks"
	expenseModel "hotel/internal/domains/expense/model"
	"hotel/internal/domains/report/model"
	"hotel/internal/domains/report/model/dto"
	"hotel/internal/domains/report/service"
	roomMocks "hotel/internal/domains/room/mocks"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
)

type fixture struct {
	svc      service.Report
	rooms    *roomMocks.MockRoom
	bookings *bookingMocks.MockBooking
	expenses *expenseMocks.MockExpense
	events   *eventMocks.MockEventBooking
}

func newService(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		rooms:    roomMocks.NewMockRoom(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
		expenses: expenseMocks.NewMockExpense(ctrl),
		events:   eventMocks.NewMockEventBooking(ctrl),
	}

	f.svc = service.New(f.rooms, f.bookings, f.expenses, f.events, mocks.NewOtel())

	return f
}

func amount(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, amount(want).Equal(got), "want %s, got %s", want, got)
}

func date(value string) time.Time {
	parsed, err := timezone.ParseDate(value)
	if err != nil {
		panic(err)
	}

	return parsed
}

func isArrivalFilter(filter gDto.FilterGroup) bool {
	first, ok := filter.Filters[0].(gDto.Filter)

	return ok && first.Field == bookingModel.FieldCheckInDate
}

func TestDashboardBoth(t *testing.T) {
	f := newService(t)

	stay := bookingModel.Booking{
		ID:           "b1",
		RoomID:       "r1",
		CheckInDate:  date("2025-01-05"),
		CheckOutDate: date("2025-01-07"),
		TotalAmount:  amount("2000"),
		AmountPaid:   amount("500"),
		Status:       bookingModel.StatusCheckedOut,
	}

	f.rooms.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	f.bookings.EXPECT().GetOverlapping(gomock.Any(), date("2025-01-01"), date("2025-01-31")).
		Return([]bookingModel.Booking{stay}, nil)
	f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]bookingModel.Booking, error) {
			if isArrivalFilter(filter) {
				return []bookingModel.Booking{stay}, nil
			}

			return nil, nil
		}).Times(2)
	f.expenses.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]expenseModel.Expense{{Category: expenseModel.CategoryUtilities, Amount: amount("700")}}, nil)
	f.events.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]eventModel.EventBooking{{ID: "e1", Status: eventModel.StatusConfirmed}}, nil)
	f.events.EXPECT().GetChildren(gomock.Any(), []string{"e1"}).
		Return(eventModel.Children{
			Services: []eventModel.Service{
				{ID: "s1", EventBookingID: "e1", CustomerPrice: amount("3000"), VendorCost: amount("1000")},
			},
			CustomerPayments: []eventModel.CustomerPayment{{EventBookingID: "e1", Amount: amount("3000")}},
		}, nil)

	res, err := f.svc.Dashboard(context.Background(), dto.DashboardRequest{DateFrom: "2025-01-01", DateTo: "2025-01-31"})
	require.NoError(t, err)

	assert.Equal(t, model.TypeBoth, res.Type)
	assert.Equal(t, "2025-01-01", res.DateFrom)
	assertAmount(t, "5000", res.TotalRevenue)
	assertAmount(t, "3500", res.RevenueCollected)
	assertAmount(t, "1700", res.TotalExpenses)
	assertAmount(t, "3300", res.Profit)
	assert.Equal(t, 2, res.Occupancy.ActiveRooms)
	assert.Equal(t, 1, res.BookingsByStatus[bookingModel.StatusCheckedOut])
}

func TestDashboardEventsOnlySkipsHotelSources(t *testing.T) {
	f := newService(t)

	f.events.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	f.events.EXPECT().GetChildren(gomock.Any(), []string{}).Return(eventModel.Children{}, nil)

	res, err := f.svc.Dashboard(context.Background(), dto.DashboardRequest{
		DateFrom: "2025-01-01",
		DateTo:   "2025-01-31",
		Type:     model.TypeEvents,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, res.Occupancy.ActiveRooms)
	assertAmount(t, "0", res.TotalRevenue)
}

func TestDashboardRejectsReversedWindow(t *testing.T) {
	f := newService(t)

	_, err := f.svc.Dashboard(context.Background(), dto.DashboardRequest{DateFrom: "2025-02-01", DateTo: "2025-01-01"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestDashboardPropagatesRepositoryError(t *testing.T) {
	f := newService(t)

	f.rooms.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("db down")).AnyTimes()
	f.bookings.EXPECT().GetOverlapping(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	f.expenses.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	_, err := f.svc.Dashboard(context.Background(), dto.DashboardRequest{
		DateFrom: "2025-01-01",
		DateTo:   "2025-01-31",
		Type:     model.TypeHotel,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to count active rooms")
}

func TestOccupancyForToday(t *testing.T) {
	f := newService(t)

	today := timezone.Today()

	f.rooms.EXPECT().Count(gomock.Any(), gomock.Any()).Return(4, nil)
	f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]bookingModel.Booking{
		{RoomID: "r1", CheckInDate: today.AddDate(0, 0, -1), CheckOutDate: today.AddDate(0, 0, 1), Status: bookingModel.StatusCheckedIn},
	}, nil)

	res, err := f.svc.Occupancy(context.Background(), dto.OccupancyRequest{})
	require.NoError(t, err)

	assert.Equal(t, timezone.FormatDate(today), res.Date)
	assert.Equal(t, 1, res.OccupiedRooms)
	assertAmount(t, "25", res.OccupancyRate)
}

func TestOccupancyForOtherDate(t *testing.T) {
	f := newService(t)

	f.rooms.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	f.bookings.EXPECT().GetOverlapping(gomock.Any(), date("2025-03-10"), date("2025-03-10")).Return([]bookingModel.Booking{
		{RoomID: "r1", CheckInDate: date("2025-03-09"), CheckOutDate: date("2025-03-11"), Status: bookingModel.StatusConfirmed},
		{RoomID: "r2", CheckInDate: date("2025-03-08"), CheckOutDate: date("2025-03-10"), Status: bookingModel.StatusConfirmed},
	}, nil)

	res, err := f.svc.Occupancy(context.Background(), dto.OccupancyRequest{Date: "2025-03-10"})
	require.NoError(t, err)

	assert.Equal(t, 1, res.OccupiedRooms)
	assertAmount(t, "50", res.OccupancyRate)
}

func TestOccupancyWithoutRooms(t *testing.T) {
	f := newService(t)

	f.rooms.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
	f.bookings.EXPECT().GetOverlapping(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	res, err := f.svc.Occupancy(context.Background(), dto.OccupancyRequest{Date: "2025-03-10"})
	require.NoError(t, err)

	assertAmount(t, "0", res.OccupancyRate)
}
