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
	"hotel/infras/otel/mocks"
	txMocks "hotel/infras/postgres/mocks"
	eventMocks "hotel/internal/domains/eventbooking/mocks"
	"hotel/internal/domains/eventbooking/model"
	"hotel/internal/domains/eventbooking/model/dto"
	"hotel/internal/domains/eventbooking/service"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
)

var errCacheMiss = errors.New("cache miss")

type fixture struct {
	svc   service.EventBooking
	repo  *eventMocks.MockEventBooking
	cache *cacheMocks.MockRedisCache
}

func newService(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  eventMocks.NewMockEventBooking(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	tx := txMocks.NewMockTransactor(ctrl)
	tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(*sqlx.Tx) error) error {
			return fn(nil)
		}).AnyTimes()

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, tx, cfg, f.cache, mocks.NewOtel())

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

func stringPtr(value string) *string {
	return &value
}

func wedding(status model.Status) model.EventBooking {
	return model.EventBooking{
		ID:           "evt-1",
		BookingName:  "Sharma Wedding",
		BookingDate:  date("2025-02-14"),
		ContactName:  "R. Sharma",
		ContactPhone: "9876543210",
		Status:       status,
	}
}

func tenting() model.Service {
	return model.Service{
		ID:             "svc-1",
		EventBookingID: "evt-1",
		ServiceType:    model.ServiceTenting,
		CustomerPrice:  decimal.NewFromInt(50000),
		VendorCost:     decimal.NewFromInt(30000),
	}
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name     string
		services []dto.ServiceRequest
		wantCode int
	}{
		{
			name: "with services",
			services: []dto.ServiceRequest{
				{ServiceType: model.ServiceTenting, CustomerPrice: decimal.NewFromInt(50000), VendorCost: decimal.NewFromInt(30000)},
				{ServiceType: model.ServiceCustom, CustomServiceName: stringPtr("Fireworks"), CustomerPrice: decimal.NewFromInt(10000)},
			},
		},
		{
			name:     "custom without name",
			services: []dto.ServiceRequest{{ServiceType: model.ServiceCustom, CustomServiceName: stringPtr(" ")}},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newService(t)

			if tt.wantCode == 0 {
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.repo.EXPECT().InsertServicesTx(gomock.Any(), gomock.Any(), gomock.Len(len(tt.services))).Return(nil)
			}

			res, err := f.svc.Create(userContext(), dto.CreateEventBookingRequest{
				BookingName:  "Sharma Wedding",
				BookingDate:  "2025-02-14",
				ContactName:  "R. Sharma",
				ContactPhone: "9876543210",
				Services:     tt.services,
			})

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, model.StatusConfirmed, res.Status)
			assert.Len(t, res.Services, 2)
			assert.True(t, decimal.NewFromInt(60000).Equal(res.TotalCustomerPrice))
			assert.True(t, decimal.NewFromInt(30000).Equal(res.ProfitMargin))
			assert.True(t, decimal.NewFromInt(60000).Equal(res.CustomerPending))
		})
	}
}

func TestGetWithFinancials(t *testing.T) {
	f := newService(t)

	f.cache.EXPECT().Get(gomock.Any(), "event_booking:get:evt-1", gomock.Any()).Return(errCacheMiss)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(wedding(model.StatusConfirmed), nil)
	f.repo.EXPECT().GetChildren(gomock.Any(), []string{"evt-1"}).Return(model.Children{
		Services:         []model.Service{tenting()},
		VendorPayments:   []model.VendorPayment{{ID: "vp-1", EventServiceID: "svc-1", Amount: decimal.NewFromInt(10000)}},
		CustomerPayments: []model.CustomerPayment{{ID: "cp-1", EventBookingID: "evt-1", Amount: decimal.NewFromInt(20000)}},
	}, nil)

	res, err := f.svc.Get(userContext(), "evt-1")

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(30000).Equal(res.CustomerPending))
	assert.True(t, decimal.NewFromInt(20000).Equal(res.VendorPending))
	require.Len(t, res.Services, 1)
	assert.True(t, decimal.NewFromInt(10000).Equal(res.Services[0].VendorTotalPaid))
	assert.Len(t, res.Services[0].VendorPayments, 1)
	assert.Len(t, res.CustomerPayments, 1)
}

func TestGetNotFound(t *testing.T) {
	f := newService(t)

	f.cache.EXPECT().Get(gomock.Any(), "event_booking:get:missing", gomock.Any()).Return(errCacheMiss)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.EventBooking{}, nil)

	_, err := f.svc.Get(userContext(), "missing")

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestGetAllMarksCollapsed(t *testing.T) {
	f := newService(t)

	past := wedding(model.StatusCompleted)
	past.BookingDate = timezone.Today().AddDate(0, 0, -10)

	upcoming := wedding(model.StatusConfirmed)
	upcoming.ID = "evt-2"
	upcoming.BookingDate = timezone.Today().AddDate(0, 0, 5)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.EventBooking, error) {
			assert.Equal(t, model.FieldBookingDate, params.SortBy)

			return []model.EventBooking{upcoming, past}, nil
		})
	f.repo.EXPECT().GetChildren(gomock.Any(), []string{"evt-2", "evt-1"}).Return(model.Children{}, nil)

	res, err := f.svc.GetAll(userContext(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	require.NoError(t, err)
	require.Len(t, res.EventBookings, 2)
	assert.False(t, res.EventBookings[0].IsCollapsed)
	assert.True(t, res.EventBookings[1].IsCollapsed)
	assert.Equal(t, 2, res.TotalData)
}

func TestSummary(t *testing.T) {
	f := newService(t)

	cancelled := wedding(model.StatusCancelled)
	cancelled.ID = "evt-2"

	f.cache.EXPECT().Get(gomock.Any(), "event_booking:summary:2025-02-01:2025-02-28", gomock.Any()).Return(errCacheMiss)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.EventBooking{wedding(model.StatusConfirmed), cancelled}, nil)
	f.repo.EXPECT().GetChildren(gomock.Any(), gomock.Any()).Return(model.Children{
		Services: []model.Service{
			tenting(),
			{ID: "svc-2", EventBookingID: "evt-2", CustomerPrice: decimal.NewFromInt(99999)},
		},
	}, nil)

	res, err := f.svc.Summary(userContext(), dto.SummaryRequest{DateFrom: "2025-02-01", DateTo: "2025-02-28"})

	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalEvents)
	assert.Equal(t, 1, res.CancelledEvents)
	assert.True(t, decimal.NewFromInt(50000).Equal(res.TotalRevenue))
	assert.True(t, decimal.NewFromInt(20000).Equal(res.TotalProfit))
}

func TestSummaryRejectsReversedWindow(t *testing.T) {
	f := newService(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)

	_, err := f.svc.Summary(userContext(), dto.SummaryRequest{DateFrom: "2025-03-01", DateTo: "2025-02-01"})

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestUpdate(t *testing.T) {
	f := newService(t)

	gomock.InOrder(
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(wedding(model.StatusConfirmed), nil),
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, date("2025-03-01"), fields[model.FieldBookingDate])
				assert.Equal(t, stringPtr("Sharma Reception"), fields[model.FieldBookingName])

				return nil
			}),
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(wedding(model.StatusConfirmed), nil),
	)
	f.repo.EXPECT().GetChildren(gomock.Any(), gomock.Any()).Return(model.Children{}, nil)

	_, err := f.svc.Update(userContext(), dto.UpdateEventBookingRequest{
		BookingName: stringPtr("Sharma Reception"),
		BookingDate: stringPtr("2025-03-01"),
	}, "evt-1")

	require.NoError(t, err)
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name     string
		status   model.Status
		wantCode int
	}{
		{name: "cancelled", status: model.StatusCancelled},
		{name: "confirmed", status: model.StatusConfirmed, wantCode: http.StatusBadRequest},
		{name: "completed", status: model.StatusCompleted, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newService(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(wedding(tt.status), nil)

			if tt.wantCode == 0 {
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			}

			err := f.svc.Delete(userContext(), "evt-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestAddServiceRejectsCancelledEvent(t *testing.T) {
	f := newService(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(wedding(model.StatusCancelled), nil)

	_, err := f.svc.AddService(userContext(), dto.ServiceRequest{ServiceType: model.ServiceLabour}, "evt-1")

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestAddService(t *testing.T) {
	f := newService(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(wedding(model.StatusConfirmed), nil)
	f.repo.EXPECT().InsertService(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, service model.Service) error {
			assert.Equal(t, "evt-1", service.EventBookingID)
			assert.Equal(t, "test-user-id", service.CreatedBy)

			return nil
		})

	res, err := f.svc.AddService(userContext(), dto.ServiceRequest{
		ServiceType:   model.ServiceGenerator,
		CustomerPrice: decimal.NewFromInt(8000),
		VendorCost:    decimal.NewFromInt(5000),
	}, "evt-1")

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5000).Equal(res.VendorPending))
	assert.Empty(t, res.VendorPayments)
}

func TestUpdateServiceRequiresCustomName(t *testing.T) {
	f := newService(t)

	f.repo.EXPECT().GetService(gomock.Any(), "evt-1", "svc-1").Return(tenting(), nil)

	custom := model.ServiceCustom

	_, err := f.svc.UpdateService(userContext(), dto.UpdateServiceRequest{ServiceType: &custom}, "evt-1", "svc-1")

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestUpdateService(t *testing.T) {
	f := newService(t)

	price := decimal.NewFromInt(55000)

	f.repo.EXPECT().GetService(gomock.Any(), "evt-1", "svc-1").Return(tenting(), nil)
	f.repo.EXPECT().UpdateService(gomock.Any(), gomock.Any(), "evt-1", "svc-1").
		DoAndReturn(func(_ context.Context, fields map[string]any, _, _ string) error {
			assert.True(t, price.Equal(fields[model.FieldCustomerPrice].(decimal.Decimal)))
			assert.NotContains(t, fields, model.FieldVendorCost)

			return nil
		})
	f.repo.EXPECT().GetChildren(gomock.Any(), []string{"evt-1"}).Return(model.Children{
		VendorPayments: []model.VendorPayment{{ID: "vp-1", EventServiceID: "svc-1", Amount: decimal.NewFromInt(30000)}},
	}, nil)

	res, err := f.svc.UpdateService(userContext(), dto.UpdateServiceRequest{CustomerPrice: &price}, "evt-1", "svc-1")

	require.NoError(t, err)
	assert.True(t, price.Equal(res.CustomerPrice))
	assert.True(t, decimal.Zero.Equal(res.VendorPending))
}

func TestRemoveServiceNotFound(t *testing.T) {
	f := newService(t)

	f.repo.EXPECT().GetService(gomock.Any(), "evt-1", "missing").Return(model.Service{}, nil)

	err := f.svc.RemoveService(userContext(), "evt-1", "missing")

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestAddCustomerPayment(t *testing.T) {
	tests := []struct {
		name     string
		status   model.Status
		wantCode int
	}{
		{name: "confirmed", status: model.StatusConfirmed},
		{name: "completed", status: model.StatusCompleted},
		{name: "cancelled", status: model.StatusCancelled, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newService(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(wedding(tt.status), nil)

			if tt.wantCode == 0 {
				f.repo.EXPECT().InsertCustomerPayment(gomock.Any(), gomock.Any()).Return(nil)
			}

			res, err := f.svc.AddCustomerPayment(userContext(), dto.PaymentRequest{
				PaymentDate: "2025-02-01",
				Amount:      decimal.NewFromInt(25000),
			}, "evt-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "2025-02-01", res.PaymentDate)
		})
	}
}

func TestRemoveCustomerPayment(t *testing.T) {
	f := newService(t)

	f.repo.EXPECT().GetCustomerPayment(gomock.Any(), "evt-1", "cp-1").Return(model.CustomerPayment{ID: "cp-1"}, nil)
	f.repo.EXPECT().DeleteCustomerPayment(gomock.Any(), "evt-1", "cp-1").Return(nil)

	require.NoError(t, f.svc.RemoveCustomerPayment(userContext(), "evt-1", "cp-1"))
}

func TestAddVendorPaymentUnknownService(t *testing.T) {
	f := newService(t)

	f.repo.EXPECT().GetService(gomock.Any(), "evt-1", "svc-9").Return(model.Service{}, nil)

	_, err := f.svc.AddVendorPayment(userContext(), dto.PaymentRequest{
		PaymentDate: "2025-02-01",
		Amount:      decimal.NewFromInt(100),
	}, "evt-1", "svc-9")

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestRemoveVendorPaymentNotFound(t *testing.T) {
	f := newService(t)

	f.repo.EXPECT().GetService(gomock.Any(), "evt-1", "svc-1").Return(tenting(), nil)
	f.repo.EXPECT().GetVendorPayment(gomock.Any(), "svc-1", "vp-9").Return(model.VendorPayment{}, nil)

	err := f.svc.RemoveVendorPayment(userContext(), "evt-1", "svc-1", "vp-9")

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
