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

	"hotel/config"
	"hotel/infras/otel/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	guestMocks "hotel/internal/domains/guest/mocks"
	"hotel/internal/domains/guest/model"
	"hotel/internal/domains/guest/model/dto"
	"hotel/internal/domains/guest/service"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
)

var errCacheMiss = errors.New("cache miss")

func newService(t *testing.T) (service.Guest, *guestMocks.MockGuest, *bookingMocks.MockBooking, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := guestMocks.NewMockGuest(ctrl)
	mockBookings := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, mockBookings, cfg, mockCache, mocks.NewOtel()), mockRepo, mockBookings, mockCache
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
}

func stay(guestID, checkIn string, total int64, status bookingModel.Status) bookingModel.Booking {
	date, _ := time.Parse(time.DateOnly, checkIn)

	return bookingModel.Booking{
		ID:           guestID + "-" + checkIn,
		GuestID:      &guestID,
		CheckInDate:  date,
		CheckOutDate: date.AddDate(0, 0, 1),
		TotalAmount:  decimal.NewFromInt(total),
		Status:       status,
	}
}

func TestGuestService_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *guestMocks.MockGuest)
		wantCode  int
	}{
		{
			name: "successful creation",
			setupMock: func(repo *guestMocks.MockGuest) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, guest model.Guest) error {
						assert.Equal(t, "Asha Rao", guest.FullName)
						assert.Equal(t, "9876543210", guest.Phone)

						return nil
					})
			},
		},
		{
			name: "duplicate phone",
			setupMock: func(repo *guestMocks.MockGuest) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "repository error",
			setupMock: func(repo *guestMocks.MockGuest) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, _ := newService(t)
			tt.setupMock(repo)

			res, err := svc.Create(userContext(), dto.CreateGuestRequest{FullName: " Asha Rao ", Phone: "9876543210"})

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Zero(t, res.TotalBookings)
			assert.Nil(t, res.LastVisit)
		})
	}
}

func TestGuestService_Get(t *testing.T) {
	tests := []struct {
		name        string
		guest       model.Guest
		bookings    []bookingModel.Booking
		wantCode    int
		wantCount   int
		wantSpent   string
		wantFirst   string
		wantLastVis string
	}{
		{
			name:  "statistics skip cancelled stays",
			guest: model.Guest{ID: "guest-1", FullName: "Asha Rao"},
			bookings: []bookingModel.Booking{
				stay("guest-1", "2025-03-01", 3000, bookingModel.StatusConfirmed),
				stay("guest-1", "2025-02-01", 5000, bookingModel.StatusCancelled),
				stay("guest-1", "2025-01-01", 2000, bookingModel.StatusCheckedOut),
			},
			wantCount:   2,
			wantSpent:   "5000.00",
			wantFirst:   "2025-01-01",
			wantLastVis: "2025-03-01",
		},
		{
			name:     "missing guest",
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, bookings, cache := newService(t)

			cache.EXPECT().Get(gomock.Any(), "guest:get:guest-1", gomock.Any()).Return(errCacheMiss)
			repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.guest, nil)

			if tt.wantCode == 0 {
				bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.bookings, nil)
			}

			res, err := svc.Get(userContext(), "guest-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, res.TotalBookings)
			assert.Equal(t, tt.wantSpent, res.TotalSpent.StringFixed(2))
			require.NotNil(t, res.FirstVisit)
			assert.Equal(t, tt.wantFirst, *res.FirstVisit)
			assert.Equal(t, tt.wantLastVis, *res.LastVisit)
		})
	}
}

func TestGuestService_GetAll(t *testing.T) {
	guests := []model.Guest{
		{ID: "guest-1", FullName: "Asha Rao"},
		{ID: "guest-2", FullName: "Ravi Kumar"},
		{ID: "guest-3", FullName: "Meera Iyer"},
	}
	bookings := []bookingModel.Booking{
		stay("guest-1", "2025-01-05", 2000, bookingModel.StatusCheckedOut),
		stay("guest-2", "2025-02-05", 4000, bookingModel.StatusCheckedOut),
		stay("guest-2", "2025-03-05", 4000, bookingModel.StatusConfirmed),
	}

	tests := []struct {
		name      string
		params    gDto.QueryParams
		aggregate dto.ListGuestsRequest
		wantIDs   []string
		wantTotal int
	}{
		{
			name:      "latest visitor first and never-stayed last",
			wantIDs:   []string{"guest-2", "guest-1", "guest-3"},
			wantTotal: 3,
		},
		{
			name:      "minimum bookings",
			aggregate: dto.ListGuestsRequest{MinBookings: 2},
			wantIDs:   []string{"guest-2"},
			wantTotal: 1,
		},
		{
			name:      "minimum spent",
			aggregate: dto.ListGuestsRequest{MinSpent: decimalPtr(2000)},
			wantIDs:   []string{"guest-2", "guest-1"},
			wantTotal: 2,
		},
		{
			name:      "second page",
			params:    gDto.QueryParams{Page: 2, Limit: 2},
			wantIDs:   []string{"guest-3"},
			wantTotal: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, bookingRepo, cache := newService(t)

			cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
			repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(guests, nil)
			bookingRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookings, nil)

			res, err := svc.GetAll(userContext(), tt.params, gDto.FilterGroup{}, tt.aggregate)

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, res.TotalData)

			ids := make([]string, len(res.Guests))
			for i, guest := range res.Guests {
				ids[i] = guest.ID
			}

			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestGuestService_Search(t *testing.T) {
	svc, _, _, _ := newService(t)

	_, err := svc.Search(userContext(), " a ")

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestGuestService_Top(t *testing.T) {
	svc, repo, bookingRepo, cache := newService(t)

	cache.EXPECT().Get(gomock.Any(), "guest:top:spent:2", gomock.Any()).Return(errCacheMiss)
	bookingRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]bookingModel.Booking{
		stay("guest-1", "2025-01-05", 9000, bookingModel.StatusCheckedOut),
		stay("guest-2", "2025-02-05", 1000, bookingModel.StatusCheckedOut),
		stay("guest-2", "2025-03-05", 1000, bookingModel.StatusCheckedOut),
		stay("guest-3", "2025-03-05", 500, bookingModel.StatusCheckedOut),
	}, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Guest{
		{ID: "guest-2", FullName: "Ravi Kumar"},
		{ID: "guest-1", FullName: "Asha Rao"},
	}, nil)

	res, err := svc.Top(userContext(), dto.TopGuestsRequest{By: dto.TopGuestsBySpent, Limit: 2})

	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "guest-1", res[0].ID)
	assert.Equal(t, "guest-2", res[1].ID)
	assert.Equal(t, 2, res[1].TotalBookings)
}

func TestGuestService_Update(t *testing.T) {
	phone := "9123456780"

	tests := []struct {
		name      string
		setupMock func(repo *guestMocks.MockGuest, bookings *bookingMocks.MockBooking)
		wantCode  int
	}{
		{
			name: "phone taken by another guest",
			setupMock: func(repo *guestMocks.MockGuest, _ *bookingMocks.MockBooking) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{ID: "guest-1"}, nil)
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "successful update",
			setupMock: func(repo *guestMocks.MockGuest, bookings *bookingMocks.MockBooking) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{ID: "guest-1"}, nil)
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, &phone, fields[model.FieldPhone])
						assert.Equal(t, "test-user-id", fields[constant.FieldModifiedBy])

						return nil
					})
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{ID: "guest-1", Phone: phone}, nil)
				bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
			},
		},
		{
			name: "missing guest",
			setupMock: func(repo *guestMocks.MockGuest, _ *bookingMocks.MockBooking) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, bookings, _ := newService(t)
			tt.setupMock(repo, bookings)

			res, err := svc.Update(userContext(), dto.UpdateGuestRequest{Phone: &phone}, "guest-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, phone, res.Phone)
		})
	}
}

func TestGuestService_Delete(t *testing.T) {
	svc, repo, _, _ := newService(t)

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{ID: "guest-1"}, nil)
	repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, svc.Delete(userContext(), "guest-1"))
}

func decimalPtr(value int64) *decimal.Decimal {
	amount := decimal.NewFromInt(value)

	return &amount
}
