package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	"hotel/infras/otel/mocks"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/domains/auth/service"
	userMocks "hotel/internal/domains/user/mocks"
	userModel "hotel/internal/domains/user/model"
	"hotel/shared/cache"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/password"
)

type fixture struct {
	svc   service.Auth
	users *userMocks.MockUser
	jwt   *jwtMocks.MockJWT
	cache *cacheMocks.MockRedisCache
}

func newService(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		users: userMocks.NewMockUser(ctrl),
		jwt:   jwtMocks.NewMockJWT(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	f.svc = service.New(f.users, &config.Config{}, f.cache, mocks.NewOtel(), f.jwt)

	return f
}

func staff(t *testing.T, active bool) userModel.User {
	t.Helper()

	hashed, err := password.Hash("password123")
	require.NoError(t, err)

	return userModel.User{
		ID:       "user-1",
		Email:    "desk@hotel.test",
		Password: hashed,
		FullName: "Front Desk",
		Role:     userModel.RoleStaff,
		Active:   active,
	}
}

func tokenPair() *jwt.TokenPair {
	return &jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 3600}
}

func sessionContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, "desk@hotel.test")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, "staff")
	ctx = context.WithValue(ctx, constant.ContextKeyTokenID, "access-id")

	return context.WithValue(ctx, constant.ContextKeyTokenExp, time.Now().Add(time.Hour))
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(t *testing.T, f fixture)
		wantCode  int
	}{
		{
			name: "successful login with remember me",
			req:  dto.LoginRequest{Email: "desk@hotel.test", Password: "password123", RememberMe: true},
			setupMock: func(t *testing.T, f fixture) {
				f.users.EXPECT().GetByEmail(gomock.Any(), "desk@hotel.test").Return(staff(t, true), nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), "user-1", "desk@hotel.test", "staff", true).Return(tokenPair(), nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@hotel.test", Password: "password123"},
			setupMock: func(_ *testing.T, f fixture) {
				f.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "desk@hotel.test", Password: "wrong-password"},
			setupMock: func(t *testing.T, f fixture) {
				f.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(staff(t, true), nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "deactivated account",
			req:  dto.LoginRequest{Email: "desk@hotel.test", Password: "password123"},
			setupMock: func(t *testing.T, f fixture) {
				f.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(staff(t, false), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "last login failure is not fatal",
			req:  dto.LoginRequest{Email: "desk@hotel.test", Password: "password123"},
			setupMock: func(t *testing.T, f fixture) {
				f.users.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(staff(t, true), nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), false).Return(tokenPair(), nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newService(t)
			tt.setupMock(t, f)

			res, err := f.svc.Login(context.Background(), tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access", res.AccessToken)
			assert.Equal(t, "user-1", res.User.ID)
			assert.Equal(t, userModel.RoleStaff, res.User.Role)
		})
	}
}

func TestRefreshToken(t *testing.T) {
	refreshClaims := func() *jwt.Claims {
		claims := &jwt.Claims{UserID: "user-1", TokenID: "refresh-id", Type: jwt.RefreshToken, RememberMe: true}
		claims.ExpiresAt = nil

		return claims
	}

	t.Run("rotates with the current role", func(t *testing.T) {
		f := newService(t)

		claims := refreshClaims()
		claims.Role = "admin"

		f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh", jwt.RefreshToken).Return(claims, nil)
		f.cache.EXPECT().Get(gomock.Any(), "auth:revoked:refresh-id", gomock.Any()).Return(cache.Nil)
		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staff(t, true), nil)
		f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), "user-1", "desk@hotel.test", "staff", true).Return(tokenPair(), nil)

		res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})
		require.NoError(t, err)
		assert.Equal(t, "refresh", res.RefreshToken)
	})

	t.Run("revoked token", func(t *testing.T) {
		f := newService(t)

		f.jwt.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), jwt.RefreshToken).Return(refreshClaims(), nil)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				*(value.(*bool)) = true

				return nil
			})

		_, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("deactivated user", func(t *testing.T) {
		f := newService(t)

		f.jwt.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), jwt.RefreshToken).Return(refreshClaims(), nil)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staff(t, false), nil)

		_, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("invalid token", func(t *testing.T) {
		f := newService(t)

		f.jwt.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), jwt.RefreshToken).Return(nil, jwt.ErrExpiredToken)

		_, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestLogout(t *testing.T) {
	t.Run("revokes access token only", func(t *testing.T) {
		f := newService(t)

		f.cache.EXPECT().Save(gomock.Any(), "auth:revoked:access-id", true, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ any, seconds int) error {
				assert.InDelta(t, 3600, seconds, 5)

				return nil
			})

		require.NoError(t, f.svc.Logout(sessionContext(), dto.LogoutRequest{}))
	})

	t.Run("revokes refresh token of the same user", func(t *testing.T) {
		f := newService(t)

		claims := &jwt.Claims{UserID: "user-1", TokenID: "refresh-id"}
		claims.ExpiresAt = nil

		f.cache.EXPECT().Save(gomock.Any(), "auth:revoked:access-id", true, gomock.Any()).Return(nil)
		f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh", jwt.RefreshToken).Return(claims, nil)

		require.NoError(t, f.svc.Logout(sessionContext(), dto.LogoutRequest{RefreshToken: "refresh"}))
	})

	t.Run("missing token", func(t *testing.T) {
		f := newService(t)

		err := f.svc.Logout(context.Background(), dto.LogoutRequest{})
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestMe(t *testing.T) {
	f := newService(t)

	f.users.EXPECT().Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (userModel.User, error) {
			assert.Equal(t, "user-1", filter.Filters[0].(gDto.Filter).Value)

			return staff(t, true), nil
		})

	res, err := f.svc.Me(sessionContext())
	require.NoError(t, err)
	assert.Equal(t, "Front Desk", res.FullName)
}

func TestVerify(t *testing.T) {
	f := newService(t)

	res, err := f.svc.Verify(sessionContext())
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, "staff", res.Role)
	assert.False(t, res.ExpiresAt.IsZero())

	_, err = f.svc.Verify(context.Background())
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
}

func TestChangePassword(t *testing.T) {
	t.Run("updates hash", func(t *testing.T) {
		f := newService(t)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staff(t, true), nil)
		f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				hashed, _ := fields[userModel.FieldPassword].(string)
				assert.NoError(t, password.Verify("new-password", hashed))

				return nil
			})

		err := f.svc.ChangePassword(sessionContext(), dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "new-password"})
		require.NoError(t, err)
	})

	t.Run("wrong current password", func(t *testing.T) {
		f := newService(t)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staff(t, true), nil)

		err := f.svc.ChangePassword(sessionContext(), dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "new-password"})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestIsRevokedFailsOpen(t *testing.T) {
	f := newService(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	assert.False(t, f.svc.IsRevoked(context.Background(), "token"))
}
