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
	roomMocks "hotel/internal/domains/room/mocks"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
)

var errCacheMiss = errors.New("cache miss")

func newService(t *testing.T) (service.Room, *roomMocks.MockRoom, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
}

func TestRoomService_Create(t *testing.T) {
	req := dto.CreateRoomRequest{
		RoomNumber:       "101",
		RoomType:         model.RoomTypeDeluxe,
		BedConfiguration: model.BedKing,
		FloorNumber:      1,
		BasePrice:        decimal.RequireFromString("2000.005"),
	}

	tests := []struct {
		name      string
		setupMock func(repo *roomMocks.MockRoom)
		wantCode  int
	}{
		{
			name: "successful creation",
			setupMock: func(repo *roomMocks.MockRoom) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, room model.Room) error {
						assert.Equal(t, model.StatusActive, room.Status)
						assert.Equal(t, 2, room.MaxOccupancy)
						assert.Equal(t, "2000.01", room.BasePrice.StringFixed(2))
						assert.Equal(t, "test-user-id", room.CreatedBy)

						return nil
					})
			},
		},
		{
			name: "duplicate room number",
			setupMock: func(repo *roomMocks.MockRoom) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "repository error",
			setupMock: func(repo *roomMocks.MockRoom) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			tt.setupMock(repo)

			res, err := svc.Create(userContext(), req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, "Deluxe", res.DisplayType)
		})
	}
}

func TestRoomService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache)
		wantCode  int
		wantRoom  string
	}{
		{
			name: "cache hit",
			setupMock: func(_ *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), "room:get:room-1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						value.(*dto.RoomResponse).RoomNumber = "101"

						return nil
					})
			},
			wantRoom: "101",
		},
		{
			name: "loaded from repository",
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).
					Return(model.Room{ID: "room-1", RoomNumber: "102", RoomType: model.RoomTypeSuite}, nil)
			},
			wantRoom: "102",
		},
		{
			name: "not found",
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache := newService(t)
			tt.setupMock(repo, cache)

			res, err := svc.Get(userContext(), "room-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantRoom, res.RoomNumber)
		})
	}
}

func TestRoomService_GetAll(t *testing.T) {
	svc, repo, cache := newService(t)

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss).Times(2)
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(12, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Room, error) {
			assert.Equal(t, model.FieldRoomNumber, params.SortBy)
			assert.Equal(t, gDto.SortDirAsc, params.SortDir)

			return []model.Room{{ID: "room-1", RoomNumber: "101"}}, nil
		})

	res, err := svc.GetAll(userContext(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, 12, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Rooms, 1)
}

func TestRoomService_Update(t *testing.T) {
	custom := model.RoomTypeCustom
	number := "202"

	tests := []struct {
		name      string
		req       dto.UpdateRoomRequest
		setupMock func(repo *roomMocks.MockRoom)
		wantCode  int
	}{
		{
			name: "custom type without a name",
			req:  dto.UpdateRoomRequest{RoomType: &custom},
			setupMock: func(repo *roomMocks.MockRoom) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).
					Return(model.Room{ID: "room-1", RoomNumber: "101", RoomType: model.RoomTypeDouble}, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "room number taken",
			req:  dto.UpdateRoomRequest{RoomNumber: &number},
			setupMock: func(repo *roomMocks.MockRoom) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).
					Return(model.Room{ID: "room-1", RoomNumber: "101", RoomType: model.RoomTypeDouble}, nil)
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "successful update",
			req:  dto.UpdateRoomRequest{RoomNumber: &number},
			setupMock: func(repo *roomMocks.MockRoom) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).
					Return(model.Room{ID: "room-1", RoomNumber: "101", RoomType: model.RoomTypeDouble}, nil)
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, &number, fields[model.FieldRoomNumber])
						assert.Equal(t, "test-user-id", fields[constant.FieldModifiedBy])

						return nil
					})
			},
		},
		{
			name: "not found",
			req:  dto.UpdateRoomRequest{RoomNumber: &number},
			setupMock: func(repo *roomMocks.MockRoom) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			tt.setupMock(repo)

			err := svc.Update(userContext(), tt.req, "room-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestRoomService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *roomMocks.MockRoom)
		wantCode  int
	}{
		{
			name: "never booked room is deleted",
			setupMock: func(repo *roomMocks.MockRoom) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().HasBookings(gomock.Any(), "room-1").Return(false, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "booked room is deactivated",
			setupMock: func(repo *roomMocks.MockRoom) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().HasBookings(gomock.Any(), "room-1").Return(true, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.StatusInactive, fields[model.FieldStatus])

						return nil
					})
			},
		},
		{
			name: "not found",
			setupMock: func(repo *roomMocks.MockRoom) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			tt.setupMock(repo)

			err := svc.Delete(userContext(), "room-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestRoomService_Summary(t *testing.T) {
	svc, repo, cache := newService(t)

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
	repo.EXPECT().CountGroupedBy(gomock.Any(), model.FieldStatus).Return([]model.StatusCount{
		{Key: "Active", Count: 8},
		{Key: "Inactive", Count: 1},
		{Key: "Under Maintenance", Count: 2},
	}, nil)
	repo.EXPECT().CountGroupedBy(gomock.Any(), model.FieldRoomType).Return([]model.StatusCount{
		{Key: "Deluxe", Count: 6},
		{Key: "Suite", Count: 5},
	}, nil)

	res, err := svc.Summary(userContext())

	require.NoError(t, err)
	assert.Equal(t, 11, res.TotalRooms)
	assert.Equal(t, 8, res.ActiveRooms)
	assert.Equal(t, 1, res.InactiveRooms)
	assert.Equal(t, 2, res.UnderMaintenance)
	assert.Equal(t, map[string]int{"Deluxe": 6, "Suite": 5}, res.RoomTypes)
}

func TestRoomService_Available(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.AvailabilityRequest
		setupMock func(repo *roomMocks.MockRoom)
		wantCode  int
		wantRooms int
	}{
		{
			name: "checkout before checkin",
			req:  dto.AvailabilityRequest{CheckIn: "2024-01-12", CheckOut: "2024-01-10"},
			setupMock: func(_ *roomMocks.MockRoom) {
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "same day stay",
			req:  dto.AvailabilityRequest{CheckIn: "2024-01-12", CheckOut: "2024-01-12"},
			setupMock: func(_ *roomMocks.MockRoom) {
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "window passed as dates",
			req:  dto.AvailabilityRequest{CheckIn: "2024-01-10", CheckOut: "2024-01-12"},
			setupMock: func(repo *roomMocks.MockRoom) {
				repo.EXPECT().
					GetAvailable(gomock.Any(),
						time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
						time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)).
					Return([]model.Room{{ID: "room-1"}, {ID: "room-2"}}, nil)
			},
			wantRooms: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			tt.setupMock(repo)

			res, err := svc.Available(userContext(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Len(t, res, tt.wantRooms)
		})
	}
}
