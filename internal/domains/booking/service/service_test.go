package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	kafkaMocks "hotel/infras/kafka/mocks"
	"hotel/infras/otel/mocks"
	txMocks "hotel/infras/postgres/mocks"
	"hotel/internal/domains/booking/ledger"
	bookingMocks "hotel/internal/domains/booking/mocks"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/service"
	guestMocks "hotel/internal/domains/guest/mocks"
	guestModel "hotel/internal/domains/guest/model"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
)

var errCacheMiss = errors.New("cache miss")

type fixture struct {
	svc    service.Booking
	repo   *bookingMocks.MockBooking
	rooms  *roomMocks.MockRoom
	guests *guestMocks.MockGuest
	cache  *cacheMocks.MockRedisCache
}

func newService(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:   bookingMocks.NewMockBooking(ctrl),
		rooms:  roomMocks.NewMockRoom(ctrl),
		guests: guestMocks.NewMockGuest(ctrl),
		cache:  cacheMocks.NewMockRedisCache(ctrl),
	}

	tx := txMocks.NewMockTransactor(ctrl)
	tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(*sqlx.Tx) error) error {
			return fn(nil)
		}).AnyTimes()

	kafka := kafkaMocks.NewMockClient(ctrl)
	kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Topic.BookingEvents = "hotel.booking.events"

	f.svc = service.New(f.repo, f.rooms, f.guests, tx, kafka, cfg, f.cache, mocks.NewOtel())

	return f
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
}

func date(value string) time.Time {
	parsed, err := timezone.ParseDate(value)
	if err != nil {
		panic(err)
	}

	return parsed
}

func room101() roomModel.Room {
	return roomModel.Room{
		ID:           "room-1",
		RoomNumber:   "101",
		RoomType:     roomModel.RoomTypeDeluxe,
		FloorNumber:  1,
		MaxOccupancy: 2,
		BasePrice:    decimal.NewFromInt(2000),
		Status:       roomModel.StatusActive,
	}
}

func confirmedBooking() model.Booking {
	return model.Booking{
		ID:               "booking-1",
		GuestName:        "Asha Rao",
		GuestPhone:       "9876543210",
		RoomID:           "room-1",
		CheckInDate:      date("2025-01-10"),
		CheckOutDate:     date("2025-01-12"),
		Adults:           1,
		RoomRatePerNight: decimal.NewFromInt(2000),
		TotalNights:      2,
		RoomCharges:      decimal.NewFromInt(4000),
		TotalAmount:      decimal.NewFromInt(4000),
		BalanceDue:       decimal.NewFromInt(4000),
		PaymentStatus:    model.PaymentStatusUnpaid,
		Status:           model.StatusConfirmed,
	}
}

// expectCreate wires the repository calls of a booking creation against the stays already
// held by room 101, checking overlap on half-open ranges.
func expectCreate(f fixture, held []model.Booking) {
	f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room101(), nil)
	f.repo.EXPECT().HasOverlapTx(gomock.Any(), gomock.Any(), "room-1", gomock.Any(), gomock.Any(), constant.Empty).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, _ string, checkIn, checkOut time.Time, _ string) (bool, error) {
			for _, booking := range held {
				if booking.Status.Blocking() && ledger.Overlaps(booking.CheckInDate, booking.CheckOutDate, checkIn, checkOut) {
					return true, nil
				}
			}

			return false, nil
		})
}

func TestBookingService_Create(t *testing.T) {
	held := []model.Booking{confirmedBooking()}

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(f fixture)
		wantCode  int
		wantTotal string
	}{
		{
			name: "two nights at the base rate",
			req: dto.CreateBookingRequest{
				GuestName:    "Asha Rao",
				GuestPhone:   "9876543210",
				RoomID:       "room-1",
				CheckInDate:  "2025-01-10",
				CheckOutDate: "2025-01-12",
			},
			setupMock: func(f fixture) {
				expectCreate(f, nil)
				f.guests.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(guestModel.Guest{}, nil)
				f.guests.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, guest guestModel.Guest) error {
						assert.Equal(t, "9876543210", guest.Phone)

						return nil
					})
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
						assert.Equal(t, model.StatusConfirmed, booking.Status)
						assert.Equal(t, model.SourceWalkIn, booking.BookingSource)
						assert.Equal(t, 2, booking.TotalNights)
						assert.Equal(t, model.PaymentStatusUnpaid, booking.PaymentStatus)
						assert.NotNil(t, booking.GuestID)

						return nil
					})
			},
			wantTotal: "4000.00",
		},
		{
			name: "overlapping stay is rejected",
			req: dto.CreateBookingRequest{
				GuestName:    "Ravi Kumar",
				GuestPhone:   "9123456780",
				RoomID:       "room-1",
				CheckInDate:  "2025-01-11",
				CheckOutDate: "2025-01-13",
			},
			setupMock: func(f fixture) {
				expectCreate(f, held)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "check-in on the day another guest checks out",
			req: dto.CreateBookingRequest{
				GuestName:        "Ravi Kumar",
				GuestPhone:       "9123456780",
				RoomID:           "room-1",
				CheckInDate:      "2025-01-12",
				CheckOutDate:     "2025-01-13",
				RoomRatePerNight: decimalPtr("2500"),
				AdvancePayment:   decimal.NewFromInt(500),
			},
			setupMock: func(f fixture) {
				expectCreate(f, held)
				f.guests.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(guestModel.Guest{ID: "guest-2"}, nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
						assert.Equal(t, "guest-2", *booking.GuestID)
						assert.Equal(t, model.PaymentStatusPartiallyPaid, booking.PaymentStatus)
						assert.Equal(t, "2000.00", booking.BalanceDue.StringFixed(2))

						return nil
					})
			},
			wantTotal: "2500.00",
		},
		{
			name: "check-out before check-in",
			req: dto.CreateBookingRequest{
				GuestName:    "Asha Rao",
				GuestPhone:   "9876543210",
				RoomID:       "room-1",
				CheckInDate:  "2025-01-12",
				CheckOutDate: "2025-01-12",
			},
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "room not found",
			req: dto.CreateBookingRequest{
				GuestName:    "Asha Rao",
				GuestPhone:   "9876543210",
				RoomID:       "missing",
				CheckInDate:  "2025-01-10",
				CheckOutDate: "2025-01-12",
			},
			setupMock: func(f fixture) {
				f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "room under maintenance",
			req: dto.CreateBookingRequest{
				GuestName:    "Asha Rao",
				GuestPhone:   "9876543210",
				RoomID:       "room-1",
				CheckInDate:  "2025-01-10",
				CheckOutDate: "2025-01-12",
			},
			setupMock: func(f fixture) {
				room := room101()
				room.Status = roomModel.StatusUnderMaintenance
				f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "too many guests",
			req: dto.CreateBookingRequest{
				GuestName:    "Asha Rao",
				GuestPhone:   "9876543210",
				RoomID:       "room-1",
				CheckInDate:  "2025-01-10",
				CheckOutDate: "2025-01-12",
				Adults:       2,
				Children:     1,
			},
			setupMock: func(f fixture) {
				f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room101(), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "advance larger than the total",
			req: dto.CreateBookingRequest{
				GuestName:      "Asha Rao",
				GuestPhone:     "9876543210",
				RoomID:         "room-1",
				CheckInDate:    "2025-01-10",
				CheckOutDate:   "2025-01-11",
				AdvancePayment: decimal.NewFromInt(5000),
			},
			setupMock: func(f fixture) {
				expectCreate(f, nil)
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newService(t)
			tt.setupMock(f)

			res, err := f.svc.Create(userContext(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, tt.wantTotal, res.TotalAmount.StringFixed(2))
			assert.Equal(t, "101", res.Room.RoomNumber)
		})
	}
}

func TestBookingService_AddService(t *testing.T) {
	tests := []struct {
		name      string
		status    model.Status
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name:   "extra raises the total",
			status: model.StatusConfirmed,
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetServicesTx(gomock.Any(), gomock.Any(), "booking-1").Return(nil, nil)
				f.repo.EXPECT().GetPaymentsTx(gomock.Any(), gomock.Any(), "booking-1").Return(nil, nil)
				f.repo.EXPECT().InsertServiceTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, service model.Service) error {
						assert.Equal(t, "100.00", service.TotalPrice.StringFixed(2))
						assert.Equal(t, 2, service.Quantity)

						return nil
					})
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						total, _ := fields[model.FieldTotalAmount].(decimal.Decimal)
						assert.Equal(t, "4100.00", total.StringFixed(2))

						return nil
					})
			},
		},
		{
			name:      "checked-out booking",
			status:    model.StatusCheckedOut,
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newService(t)

			booking := confirmedBooking()
			booking.Status = tt.status
			f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking, nil)
			tt.setupMock(f)

			res, err := f.svc.AddService(userContext(), dto.AddServiceRequest{
				ServiceName: "Laundry",
				Quantity:    2,
				UnitPrice:   decimal.NewFromInt(50),
			}, "booking-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "4100.00", res.TotalAmount.StringFixed(2))
			assert.Equal(t, "100.00", res.AdditionalCharges.StringFixed(2))
			require.NotNil(t, res.Service)
			assert.Equal(t, "Laundry", res.Service.ServiceName)
		})
	}
}

func TestBookingService_RemoveService(t *testing.T) {
	laundry := model.Service{ID: "service-1", BookingID: "booking-1", ServiceName: "Laundry", TotalPrice: decimal.NewFromInt(100)}

	tests := []struct {
		name      string
		serviceID string
		payments  []model.Payment
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name:      "removed",
			serviceID: "service-1",
			setupMock: func(f fixture) {
				f.repo.EXPECT().DeleteServiceTx(gomock.Any(), gomock.Any(), "booking-1", "service-1").Return(nil)
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:      "unknown service",
			serviceID: "service-9",
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusNotFound,
		},
		{
			name:      "would leave the booking overpaid",
			serviceID: "service-1",
			payments:  []model.Payment{{Amount: decimal.NewFromInt(4100)}},
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newService(t)

			booking := confirmedBooking()
			f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking, nil)
			f.repo.EXPECT().GetServicesTx(gomock.Any(), gomock.Any(), "booking-1").Return([]model.Service{laundry}, nil)
			f.repo.EXPECT().GetPaymentsTx(gomock.Any(), gomock.Any(), "booking-1").Return(tt.payments, nil).MaxTimes(1)
			tt.setupMock(f)

			res, err := f.svc.RemoveService(userContext(), "booking-1", tt.serviceID)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "4000.00", res.TotalAmount.StringFixed(2))
		})
	}
}

func TestBookingService_CollectPayment(t *testing.T) {
	tests := []struct {
		name      string
		status    model.Status
		amount    int64
		setupMock func(f fixture)
		wantCode  int
		wantState model.PaymentStatus
	}{
		{
			name:   "partial payment",
			status: model.StatusCheckedIn,
			amount: 1500,
			setupMock: func(f fixture) {
				f.repo.EXPECT().InsertPaymentTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantState: model.PaymentStatusPartiallyPaid,
		},
		{
			name:   "settles the balance",
			status: model.StatusCheckedIn,
			amount: 4000,
			setupMock: func(f fixture) {
				f.repo.EXPECT().InsertPaymentTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantState: model.PaymentStatusPaid,
		},
		{
			name:      "more than the balance due",
			status:    model.StatusCheckedIn,
			amount:    4001,
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "cancelled booking",
			status:    model.StatusCancelled,
			amount:    100,
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newService(t)

			booking := confirmedBooking()
			booking.Status = tt.status
			f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking, nil)
			f.repo.EXPECT().GetServicesTx(gomock.Any(), gomock.Any(), "booking-1").Return(nil, nil).AnyTimes()
			f.repo.EXPECT().GetPaymentsTx(gomock.Any(), gomock.Any(), "booking-1").Return(nil, nil).AnyTimes()
			tt.setupMock(f)

			res, err := f.svc.CollectPayment(userContext(), dto.CollectPaymentRequest{Amount: decimal.NewFromInt(tt.amount)}, "booking-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantState, res.PaymentStatus)
			assert.Equal(t, decimal.NewFromInt(4000-tt.amount).StringFixed(2), res.BalanceDue.StringFixed(2))
			require.NotNil(t, res.Payment)
		})
	}
}

func TestBookingService_Transitions(t *testing.T) {
	tests := []struct {
		name     string
		status   model.Status
		call     func(svc service.Booking) (dto.BookingResponse, error)
		wantCode int
		want     model.Status
	}{
		{
			name:   "check in a confirmed booking",
			status: model.StatusConfirmed,
			call: func(svc service.Booking) (dto.BookingResponse, error) {
				return svc.CheckIn(userContext(), "booking-1")
			},
			want: model.StatusCheckedIn,
		},
		{
			name:   "check out a checked-in booking",
			status: model.StatusCheckedIn,
			call: func(svc service.Booking) (dto.BookingResponse, error) {
				return svc.CheckOut(userContext(), "booking-1")
			},
			want: model.StatusCheckedOut,
		},
		{
			name:   "check out a confirmed booking",
			status: model.StatusConfirmed,
			call: func(svc service.Booking) (dto.BookingResponse, error) {
				return svc.CheckOut(userContext(), "booking-1")
			},
			wantCode: http.StatusConflict,
		},
		{
			name:   "no-show after check-in",
			status: model.StatusCheckedIn,
			call: func(svc service.Booking) (dto.BookingResponse, error) {
				return svc.MarkNoShow(userContext(), "booking-1")
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newService(t)

			booking := confirmedBooking()
			booking.Status = tt.status
			f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking, nil)

			if tt.wantCode == 0 {
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, tt.want, fields[model.FieldStatus])

						return nil
					})

				updated := booking
				updated.Status = tt.want
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(updated, nil)
				f.repo.EXPECT().GetServices(gomock.Any(), "booking-1").Return(nil, nil)
				f.repo.EXPECT().GetPayments(gomock.Any(), "booking-1").Return(nil, nil)
			}

			res, err := tt.call(f.svc)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Status)
		})
	}
}

func TestBookingService_CheckOutEarly(t *testing.T) {
	today := timezone.Today()

	tests := []struct {
		name      string
		checkIn   time.Time
		checkOut  time.Time
		wantFreed time.Time
		wantMoved bool
	}{
		{
			name:      "early departure frees the remaining nights",
			checkIn:   today.AddDate(0, 0, -2),
			checkOut:  today.AddDate(0, 0, 3),
			wantFreed: today,
			wantMoved: true,
		},
		{
			name:      "departure on arrival day keeps one night",
			checkIn:   today,
			checkOut:  today.AddDate(0, 0, 4),
			wantFreed: today.AddDate(0, 0, 1),
			wantMoved: true,
		},
		{
			name:     "overstay keeps the booked date",
			checkIn:  today.AddDate(0, 0, -3),
			checkOut: today.AddDate(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newService(t)

			booking := confirmedBooking()
			booking.Status = model.StatusCheckedIn
			booking.CheckInDate = tt.checkIn
			booking.CheckOutDate = tt.checkOut

			f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking, nil)
			f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
					assert.Equal(t, model.StatusCheckedOut, fields[model.FieldStatus])
					assert.NotNil(t, fields[model.FieldActualCheckOut])

					freed, moved := fields[model.FieldCheckOutDate]
					assert.Equal(t, tt.wantMoved, moved)

					if tt.wantMoved {
						assert.Equal(t, tt.wantFreed, freed)
					}

					return nil
				})

			updated := booking
			updated.Status = model.StatusCheckedOut

			if tt.wantMoved {
				updated.CheckOutDate = tt.wantFreed
			}

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(updated, nil)
			f.repo.EXPECT().GetServices(gomock.Any(), "booking-1").Return(nil, nil)
			f.repo.EXPECT().GetPayments(gomock.Any(), "booking-1").Return(nil, nil)

			res, err := f.svc.CheckOut(userContext(), "booking-1")

			require.NoError(t, err)
			assert.Equal(t, model.StatusCheckedOut, res.Status)
			assert.Equal(t, booking.TotalAmount.StringFixed(2), res.TotalAmount.StringFixed(2))
		})
	}
}

func TestBookingService_Cancel(t *testing.T) {
	f := newService(t)

	booking := confirmedBooking()
	booking.AdvancePayment = decimal.NewFromInt(1000)
	booking.AmountPaid = decimal.NewFromInt(1000)

	f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking, nil)
	f.repo.EXPECT().GetServicesTx(gomock.Any(), gomock.Any(), "booking-1").Return(nil, nil)
	f.repo.EXPECT().GetPaymentsTx(gomock.Any(), gomock.Any(), "booking-1").Return(nil, nil)
	f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])

			paid, _ := fields[model.FieldAmountPaid].(decimal.Decimal)
			assert.True(t, paid.IsZero())

			return nil
		})

	cancelled := booking
	cancelled.Status = model.StatusCancelled
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil)
	f.repo.EXPECT().GetServices(gomock.Any(), "booking-1").Return(nil, nil)
	f.repo.EXPECT().GetPayments(gomock.Any(), "booking-1").Return(nil, nil)

	reason := "plans changed"
	res, err := f.svc.Cancel(userContext(), dto.CancelBookingRequest{RefundAdvance: true, Reason: &reason}, "booking-1")

	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, res.Status)
}

func TestBookingService_Update(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.UpdateBookingRequest
		status    model.Status
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "extend the stay",
			req:  dto.UpdateBookingRequest{CheckOutDate: stringPtr("2025-01-13")},
			setupMock: func(f fixture) {
				f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room101(), nil)
				f.repo.EXPECT().HasOverlapTx(gomock.Any(), gomock.Any(), "room-1", date("2025-01-10"), date("2025-01-13"), "booking-1").
					Return(false, nil)
				f.repo.EXPECT().GetServicesTx(gomock.Any(), gomock.Any(), "booking-1").Return(nil, nil)
				f.repo.EXPECT().GetPaymentsTx(gomock.Any(), gomock.Any(), "booking-1").Return(nil, nil)
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, 3, fields[model.FieldTotalNights])

						return nil
					})
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(), nil)
				f.repo.EXPECT().GetServices(gomock.Any(), "booking-1").Return(nil, nil)
				f.repo.EXPECT().GetPayments(gomock.Any(), "booking-1").Return(nil, nil)
			},
		},
		{
			name: "extension collides with the next guest",
			req:  dto.UpdateBookingRequest{CheckOutDate: stringPtr("2025-01-14")},
			setupMock: func(f fixture) {
				f.rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room101(), nil)
				f.repo.EXPECT().HasOverlapTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "booking-1").
					Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name:      "moving a checked-out stay",
			req:       dto.UpdateBookingRequest{CheckInDate: stringPtr("2025-01-11")},
			status:    model.StatusCheckedOut,
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusConflict,
		},
		{
			name:      "dates reversed",
			req:       dto.UpdateBookingRequest{CheckOutDate: stringPtr("2025-01-09")},
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newService(t)

			booking := confirmedBooking()
			if tt.status != "" {
				booking.Status = tt.status
			}

			f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking, nil)
			tt.setupMock(f)

			_, err := f.svc.Update(userContext(), tt.req, "booking-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestBookingService_Delete(t *testing.T) {
	tests := []struct {
		name     string
		booking  model.Booking
		wantCode int
	}{
		{
			name:    "cancelled booking",
			booking: model.Booking{ID: "booking-1", Status: model.StatusCancelled},
		},
		{
			name:     "active booking",
			booking:  model.Booking{ID: "booking-1", Status: model.StatusConfirmed},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing booking",
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newService(t)
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.booking, nil)

			if tt.wantCode == 0 {
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			}

			err := f.svc.Delete(userContext(), "booking-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	f := newService(t)

	f.cache.EXPECT().Get(gomock.Any(), "booking:get:booking-1", gomock.Any()).Return(errCacheMiss)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(), nil)
	f.repo.EXPECT().GetServices(gomock.Any(), "booking-1").
		Return([]model.Service{{ID: "service-1", ServiceName: "Laundry", TotalPrice: decimal.NewFromInt(100)}}, nil)
	f.repo.EXPECT().GetPayments(gomock.Any(), "booking-1").Return(nil, nil)

	res, err := f.svc.Get(userContext(), "booking-1")

	require.NoError(t, err)
	assert.Equal(t, "2025-01-10", res.CheckInDate)
	assert.Len(t, res.Services, 1)
}

func TestBookingService_RevenueSummary(t *testing.T) {
	tests := []struct {
		name        string
		req         dto.DateRangeRequest
		bookings    []model.Booking
		wantCode    int
		wantRevenue string
	}{
		{
			name: "only nights inside the window count",
			req:  dto.DateRangeRequest{DateFrom: "2025-01-11", DateTo: "2025-01-31"},
			bookings: []model.Booking{
				{
					CheckInDate:  date("2025-01-10"),
					CheckOutDate: date("2025-01-12"),
					TotalAmount:  decimal.NewFromInt(4000),
					AmountPaid:   decimal.NewFromInt(4000),
				},
			},
			wantRevenue: "2000.00",
		},
		{
			name:     "reversed window",
			req:      dto.DateRangeRequest{DateFrom: "2025-02-01", DateTo: "2025-01-01"},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newService(t)

			if tt.wantCode == 0 {
				f.repo.EXPECT().GetOverlapping(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.bookings, nil)
			}

			res, err := f.svc.RevenueSummary(userContext(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantRevenue, res.TotalRevenue.StringFixed(2))
			assert.Equal(t, len(tt.bookings), res.BookingsCount)
		})
	}
}

func decimalPtr(value string) *decimal.Decimal {
	amount := decimal.RequireFromString(value)

	return &amount
}

func stringPtr(value string) *string {
	return &value
}
