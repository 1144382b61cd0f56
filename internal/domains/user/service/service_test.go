package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	userMocks "hotel/internal/domains/user/mocks"
	"hotel/internal/domains/user/model"
	"hotel/internal/domains/user/model/dto"
	"hotel/internal/domains/user/service"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/password"
)

var errCacheMiss = errors.New("cache miss")

func newService(t *testing.T) (service.User, *userMocks.MockUser, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := userMocks.NewMockUser(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(repo, cfg, cache, mocks.NewOtel()), repo, cache
}

func adminContext(id string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, id)
}

func boolPtr(value bool) *bool {
	return &value
}

func rolePtr(value model.Role) *model.Role {
	return &value
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateUserRequest
		setupMock func(repo *userMocks.MockUser)
		wantCode  int
		wantRole  model.Role
	}{
		{
			name: "defaults to staff",
			req:  dto.CreateUserRequest{Email: "Desk@Hotel.test", Password: "password123", FullName: "Front Desk"},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().GetByEmail(gomock.Any(), "Desk@Hotel.test").Return(model.User{}, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, user model.User) error {
					assert.Equal(t, "desk@hotel.test", user.Email)
					assert.NoError(t, password.Verify("password123", user.Password))
					assert.Equal(t, "admin-1", user.CreatedBy)

					return nil
				})
			},
			wantRole: model.RoleStaff,
		},
		{
			name: "duplicate email",
			req:  dto.CreateUserRequest{Email: "desk@hotel.test", Password: "password123", FullName: "Front Desk"},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(model.User{ID: "u1"}, nil)
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			tt.setupMock(repo)

			res, err := svc.Create(adminContext("admin-1"), tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, res.Role)
			assert.True(t, res.Active)
		})
	}
}

func TestSeed(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(model.User{}, nil)
	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, user model.User) error {
		assert.Equal(t, model.RoleAdmin, user.Role)

		return nil
	})

	created, err := svc.Seed(adminContext("system"), dto.CreateUserRequest{Email: "admin@hotel.test", Password: "password123", FullName: "Admin"})
	require.NoError(t, err)
	assert.True(t, created)
}

func TestSeedIsIdempotent(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(model.User{ID: "admin-1"}, nil)

	created, err := svc.Seed(adminContext("system"), dto.CreateUserRequest{Email: "admin@hotel.test", Password: "password123", FullName: "Admin"})
	require.NoError(t, err)
	assert.False(t, created)
}

func TestGetAll(t *testing.T) {
	svc, repo, cache := newService(t)

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss).Times(2)
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.User, error) {
			assert.Equal(t, model.FieldFullName, params.SortBy)

			return []model.User{{ID: "u1", Role: model.RoleAdmin}, {ID: "u2", Role: model.RoleStaff}}, nil
		})

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Len(t, res.Users, 2)
	assert.Equal(t, 1, res.TotalPage)
}

func TestGetNotFound(t *testing.T) {
	svc, repo, cache := newService(t)

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name      string
		actor     string
		req       dto.UpdateUserRequest
		setupMock func(repo *userMocks.MockUser)
		wantCode  int
	}{
		{
			name:  "empty request",
			actor: "admin-1",
			req:   dto.UpdateUserRequest{},
			setupMock: func(_ *userMocks.MockUser) {
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:  "cannot deactivate self",
			actor: "u1",
			req:   dto.UpdateUserRequest{Active: boolPtr(false)},
			setupMock: func(_ *userMocks.MockUser) {
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:  "cannot demote self",
			actor: "u1",
			req:   dto.UpdateUserRequest{Role: rolePtr(model.RoleStaff)},
			setupMock: func(_ *userMocks.MockUser) {
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:  "not found",
			actor: "admin-1",
			req:   dto.UpdateUserRequest{Active: boolPtr(false)},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:  "deactivate and reset password",
			actor: "admin-1",
			req:   dto.UpdateUserRequest{Active: boolPtr(false), Password: stringPtr("new-password")},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u1", Role: model.RoleStaff, Active: true}, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, false, *(fields[model.FieldActive].(*bool)))
						hashed, _ := fields[model.FieldPassword].(string)
						assert.NoError(t, password.Verify("new-password", hashed))

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			tt.setupMock(repo)

			res, err := svc.Update(adminContext(tt.actor), tt.req, "u1")
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.False(t, res.Active)
		})
	}
}

func TestDelete(t *testing.T) {
	t.Run("cannot delete self", func(t *testing.T) {
		svc, _, _ := newService(t)

		err := svc.Delete(adminContext("u1"), "u1")
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("deletes other account", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u2"}, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, svc.Delete(adminContext("u1"), "u2"))
	})
}

func stringPtr(value string) *string {
	return &value
}
