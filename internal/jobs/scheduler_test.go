package jobs_test

import (
	"context"
	"errors"
	"hotel/config"
	otelMocks "hotel/infras/otel/mocks"
	"hotel/internal/jobs"
	"hotel/internal/jobs/mocks"
	"hotel/shared/constant"
	"hotel/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestScheduler_GenerateRecurringExpenses(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "generates as the system user"},
		{name: "logs failures", err: errors.New("db down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			expenses := mocks.NewMockRecurringExpenses(ctrl)

			expenses.EXPECT().
				GenerateRecurring(gomock.Any(), timezone.Today()).
				DoAndReturn(func(ctx context.Context, _ time.Time) (int, error) {
					assert.Equal(t, constant.SystemUser, ctx.Value(constant.ContextKeyUserID))

					return 2, tt.err
				})

			scheduler := jobs.New(&config.Config{}, expenses, otelMocks.NewOtel())
			scheduler.GenerateRecurringExpenses()
		})
	}
}

func TestScheduler_StartDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	scheduler := jobs.New(&config.Config{}, mocks.NewMockRecurringExpenses(ctrl), otelMocks.NewOtel())

	require.NoError(t, scheduler.Start())
}

func TestScheduler_StartRejectsInvalidSpec(t *testing.T) {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Jobs.Enable = true
	cfg.Jobs.RecurringExpenseSpec = "every now and then"

	scheduler := jobs.New(cfg, mocks.NewMockRecurringExpenses(ctrl), otelMocks.NewOtel())

	require.Error(t, scheduler.Start())
}

func TestScheduler_StartAndStop(t *testing.T) {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Jobs.Enable = true
	cfg.Jobs.RecurringExpenseSpec = "5 0 * * *"

	scheduler := jobs.New(cfg, mocks.NewMockRecurringExpenses(ctrl), otelMocks.NewOtel())

	require.NoError(t, scheduler.Start())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	scheduler.Stop(ctx)
}
